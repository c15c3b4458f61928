package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyEmail      = errors.New("email is required")
	ErrInvalidEmail    = errors.New("invalid email")
	ErrEmptyPassword   = errors.New("password is required")
	ErrEmptyCipher     = errors.New("cipher is required")
	ErrEmptyIV         = errors.New("iv is required")
	ErrInvalidEnvelope = errors.New("invalid envelope")
	ErrInvalidRecordID = errors.New("invalid record id")
	ErrTitleHintFormat = errors.New("title hint must be lower-cased and trimmed")
)
