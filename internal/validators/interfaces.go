// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks inbound payloads of the vault server before they
// reach the service layer: account credentials, sealed envelopes and record
// ids. Validation is structural only; the server cannot and does not look
// inside ciphertext.
package validators

import "context"

// Validator validates arbitrary input values. Optional field names restrict
// validation to those fields.
type Validator interface {
	Validate(context.Context, any, ...string) error
}
