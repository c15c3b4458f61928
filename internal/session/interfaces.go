// Package session owns the lifecycle of the client's session key.
//
// A [Manager] derives the key from the master password and the account
// salt, keeps it sealed in memory and destroys it on lock, logout or
// re-login. A persisted marker tells the UI whether an unlocked session is
// expected; the marker never holds key material and on its own is never
// trusted.
package session

import "context"

// SaltSource fetches the public per-account salt.
type SaltSource interface {
	FetchSalt(ctx context.Context, email string) (string, error)
}
