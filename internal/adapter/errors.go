package adapter

import "errors"

// Status-class errors. Every non-2xx response wraps one of these together
// with the server's {"error": ...} message.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrTooManyRequests     = errors.New("too many requests")
	ErrInternalServerError = errors.New("internal server error")
)

// Cause errors, matched on the server message on top of the status class.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrSessionExpired     = errors.New("session expired")
	ErrAccountNotFound    = errors.New("account not found")
	ErrRecordNotFound     = errors.New("vault record not found")
	ErrEmailTaken         = errors.New("email already registered")

	// ErrServerUnavailable wraps transport failures: refused connections,
	// timeouts and exhausted retries.
	ErrServerUnavailable = errors.New("server unavailable")

	ErrEmptyAddress   = errors.New("empty address")
	ErrInvalidURL     = errors.New("address must include host and scheme")
	ErrMissingToken   = errors.New("response carries no bearer token")
	ErrDecodeResponse = errors.New("cannot decode server response")
)
