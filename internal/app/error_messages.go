// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the message strings shared by the vault server and
// the terminal client.
//
// The server writes the Msg* API constants into {"error": ...} response
// bodies; the client adapter reads them back to pick a sentinel error. The
// User* constants are what the terminal UI shows for client-side crypto
// failures. None of them ever carries key material or plaintext.
package app

// API error messages.
const (
	// MsgInvalidDataProvided is returned when the request fails validation.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInvalidJSON is returned when the request body cannot be decoded.
	MsgInvalidJSON = "invalid JSON was passed"

	// MsgMissingCipher and MsgMissingIV are returned when an envelope lacks
	// one of its halves.
	MsgMissingCipher = "cipher is required"
	MsgMissingIV     = "iv is required"

	// MsgInvalidEnvelope is returned when iv or cipher are not valid base64
	// or decode to the wrong length.
	MsgInvalidEnvelope = "invalid envelope"

	// MsgInvalidEmailPassword is returned for an unknown email and for a
	// wrong password alike.
	MsgInvalidEmailPassword = "invalid email/password"

	// MsgEmailAlreadyExists is returned when signing up with a taken email.
	MsgEmailAlreadyExists = "email already registered"

	// MsgAccountNotFound is returned by the salt endpoint for unknown emails.
	MsgAccountNotFound = "account not found"

	// MsgVaultRecordNotFound covers both a missing record and one owned by
	// another account.
	MsgVaultRecordNotFound = "vault record not found"

	// MsgTokenIsExpired is returned when a bearer token is valid but past its
	// expiry time.
	MsgTokenIsExpired = "token is expired"

	// MsgTokenIsExpiredOrInvalid is returned when a bearer token cannot be
	// verified.
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"

	// MsgUnauthorized is returned when the Authorization header is missing
	// or malformed.
	MsgUnauthorized = "unauthorized"

	MsgTooManyRequests = "too many requests"
	MsgNotFound        = "not found"

	// MsgInternalServerError is returned for every unexpected failure.
	MsgInternalServerError = "internal server error"
)

// Messages shown by the terminal client.
const (
	UserKeyAbsent         = "vault is locked, log in again"
	UserTagVerification   = "item could not be decrypted: wrong key or corrupted data"
	UserMalformedItem     = "item decrypted but its content is corrupted"
	UserEnvelopeFormat    = "item is stored in an unknown format"
	UserDerivationInput   = "could not derive the vault key from this password and salt"
	UserSealFailure       = "encryption failed, nothing was saved"
	UserWrongCredentials  = "wrong email or password"
	UserEmailTaken        = "this email is already registered"
	UserServerUnavailable = "server is unavailable, try again later"
	UserSessionExpired    = "session expired, log in again"
	UserRecordGone        = "the item no longer exists"
	UserAccountNotFound   = "no account is registered with this email"
	UserTooManyRequests   = "too many attempts, wait a moment and retry"
	UserInvalidInput      = "check the entered data"
	UserUnexpected        = "something went wrong, see the log file"
)
