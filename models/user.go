package models

import (
	"strings"
	"time"
)

// User represents a vault account as persisted by the server.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the server-assigned UUIDv7 of the account. It becomes the
	// "sub" claim of issued tokens and the owner id of every vault record.
	UserID string `json:"-" bson:"_id"`

	// Email is the unique account identifier, stored lower-cased and trimmed.
	Email string `json:"email" bson:"email"`

	// PasswordHash is the bcrypt hash of the login password. It is unrelated
	// to the encryption key and never leaves the server.
	PasswordHash string `json:"-" bson:"password_hash"`

	// Salt is the base64 form of the 32-byte public key-derivation salt.
	// It is written once when the account is created and never rewritten.
	Salt string `json:"-" bson:"salt"`

	CreatedAt time.Time `json:"-" bson:"created_at"`
	UpdatedAt time.Time `json:"-" bson:"updated_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Credentials is the body of the signup and login requests.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// NormalizeEmail lower-cases and trims an account email so lookups and the
// unique constraint agree on a single spelling.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// AuthResponse is returned by signup and login.
type AuthResponse struct {
	Token string `json:"token"`
	Salt  string `json:"salt"`
}

// SaltResponse is returned by the pre-authentication salt endpoint.
type SaltResponse struct {
	Salt string `json:"salt"`
}

// ErrorResponse is the JSON body written on every non-2xx API response.
type ErrorResponse struct {
	Error string `json:"error"`
}
