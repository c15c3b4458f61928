package models

import "time"

// LocalSession is the client's persisted session row. It holds the bearer
// token and the key-present marker, never key material.
type LocalSession struct {
	Email      string
	Token      string
	KeyPresent bool
	UpdatedAt  time.Time
}
