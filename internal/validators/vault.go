package validators

import (
	"context"
	"fmt"
	"net/mail"

	"github.com/MKhiriev/go-zk-vault/internal/crypto"
	"github.com/MKhiriev/go-zk-vault/internal/utils"
	"github.com/MKhiriev/go-zk-vault/models"
)

// Field names accepted by VaultValidator.Validate to restrict validation to
// a subset of fields.
const (
	FieldEmail     = "email"
	FieldPassword  = "password"
	FieldCipher    = "cipher"
	FieldIV        = "iv"
	FieldTitleHint = "title_hint"
	FieldRecordID  = "id"
)

// VaultValidator checks request payloads of the vault API. It knows the
// envelope wire format but never anything about plaintext.
type VaultValidator struct{}

func NewVaultValidator() Validator {
	return &VaultValidator{}
}

// Validate dispatches on the type of obj. Supported: models.Credentials,
// models.Envelope and a record id given as string (pointers accepted).
func (v *VaultValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Credentials:
		return v.validateCredentials(value, fields...)
	case *models.Credentials:
		return v.validateCredentials(*value, fields...)

	case models.Envelope:
		return v.validateEnvelope(value, fields...)
	case *models.Envelope:
		return v.validateEnvelope(*value, fields...)

	case string:
		return v.validateRecordID(value)
	}

	return fmt.Errorf("%w: %T", ErrUnsupportedType, obj)
}

func (v *VaultValidator) validateCredentials(creds models.Credentials, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldPassword}
	}

	for _, field := range fields {
		switch field {
		case FieldEmail:
			email := models.NormalizeEmail(creds.Email)
			if email == "" {
				return ErrEmptyEmail
			}
			addr, err := mail.ParseAddress(email)
			if err != nil || addr.Address != email {
				return fmt.Errorf("%w: %q", ErrInvalidEmail, email)
			}
		case FieldPassword:
			if creds.Password == "" {
				return ErrEmptyPassword
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
	}

	return nil
}

func (v *VaultValidator) validateEnvelope(envelope models.Envelope, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldCipher, FieldIV, FieldTitleHint}
	}

	for _, field := range fields {
		switch field {
		case FieldCipher:
			if envelope.Cipher == "" {
				return ErrEmptyCipher
			}
		case FieldIV:
			if envelope.IV == "" {
				return ErrEmptyIV
			}
		case FieldTitleHint:
			if envelope.TitleHint != models.TitleHint(envelope.TitleHint) {
				return ErrTitleHintFormat
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
	}

	// length checks only make sense once both halves are present
	if envelope.Cipher != "" && envelope.IV != "" {
		if err := crypto.ValidateEnvelope(envelope); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidEnvelope, err)
		}
	}

	return nil
}

func (v *VaultValidator) validateRecordID(id string) error {
	if !utils.IsValidUUID(id) {
		return fmt.Errorf("%w: %q", ErrInvalidRecordID, id)
	}
	return nil
}
