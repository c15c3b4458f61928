// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import "errors"

// Error taxonomy of the client crypto core. Messages never carry key
// material, plaintext or partially decrypted bytes; wrap them with %w and
// add only lengths or field names as context.
var (
	// ErrDerivationInput is returned when the salt is missing or malformed
	// or the password is empty. It is fatal to login.
	ErrDerivationInput = errors.New("invalid key derivation input")

	// ErrSealFailure reports a failure of the underlying cipher or the
	// randomness source. It is not expected in normal operation.
	ErrSealFailure = errors.New("seal failure")

	// ErrTagVerification is the expected outcome of opening an envelope
	// with the wrong key, or one that was tampered with or corrupted.
	ErrTagVerification = errors.New("tag verification failed")

	// ErrMalformedPlaintext means the envelope authenticated but its
	// content is not a valid vault item.
	ErrMalformedPlaintext = errors.New("malformed plaintext")

	// ErrEnvelopeFormat means cipher or iv are not valid base64 or decode
	// to the wrong length.
	ErrEnvelopeFormat = errors.New("malformed envelope")

	// ErrKeyAbsent is returned when a crypto operation is attempted without
	// an installed session key, including after the key was destroyed.
	ErrKeyAbsent = errors.New("session key is absent")
)
