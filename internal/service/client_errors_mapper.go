// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"

	"github.com/MKhiriev/go-zk-vault/internal/adapter"
	"github.com/MKhiriev/go-zk-vault/internal/app"
	"github.com/MKhiriev/go-zk-vault/internal/crypto"
	"github.com/MKhiriev/go-zk-vault/internal/session"
	"github.com/MKhiriev/go-zk-vault/internal/store"
)

type userMessage struct {
	target  error
	message string
}

// userMessages is matched in order; cause errors precede their status class.
var userMessages = []userMessage{
	{crypto.ErrKeyAbsent, app.UserKeyAbsent},
	{session.ErrAcquireSuperseded, app.UserKeyAbsent},
	{crypto.ErrTagVerification, app.UserTagVerification},
	{crypto.ErrMalformedPlaintext, app.UserMalformedItem},
	{crypto.ErrEnvelopeFormat, app.UserEnvelopeFormat},
	{crypto.ErrDerivationInput, app.UserDerivationInput},
	{crypto.ErrSealFailure, app.UserSealFailure},

	{adapter.ErrInvalidCredentials, app.UserWrongCredentials},
	{adapter.ErrEmailTaken, app.UserEmailTaken},
	{adapter.ErrSessionExpired, app.UserSessionExpired},
	{adapter.ErrRecordNotFound, app.UserRecordGone},
	{adapter.ErrAccountNotFound, app.UserAccountNotFound},
	{store.ErrLocalSessionNotFound, app.UserSessionExpired},

	{adapter.ErrTooManyRequests, app.UserTooManyRequests},
	{adapter.ErrUnauthorized, app.UserSessionExpired},
	{adapter.ErrNotFound, app.UserRecordGone},
	{adapter.ErrBadRequest, app.UserInvalidInput},
	{ErrInvalidDataProvided, app.UserInvalidInput},
	{adapter.ErrServerUnavailable, app.UserServerUnavailable},
	{adapter.ErrInternalServerError, app.UserServerUnavailable},
}

// UserMessage turns a client-side error into the text shown in the UI. It
// never includes the wrapped error text.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	for _, m := range userMessages {
		if errors.Is(err, m.target) {
			return m.message
		}
	}
	return app.UserUnexpected
}

// IsSessionLost reports whether err means the user has to unlock or log in
// again before continuing.
func IsSessionLost(err error) bool {
	return errors.Is(err, crypto.ErrKeyAbsent) ||
		errors.Is(err, session.ErrAcquireSuperseded) ||
		errors.Is(err, adapter.ErrUnauthorized)
}
