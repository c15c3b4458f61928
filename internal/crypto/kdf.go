package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// KeySize is the length of the derived AES-256 key in bytes.
	KeySize = 32
	// SaltSize is the length of the per-account salt in bytes.
	SaltSize = 32
	// PBKDF2Iterations is the PBKDF2-HMAC-SHA256 work factor.
	PBKDF2Iterations = 100_000
)

type keyDerivationService struct {
	iterations int
}

// NewKeyDerivationService returns the PBKDF2-HMAC-SHA256 derivation service
// with [PBKDF2Iterations] rounds.
func NewKeyDerivationService() KeyDerivationService {
	return &keyDerivationService{iterations: PBKDF2Iterations}
}

func (s *keyDerivationService) DeriveKey(password string, salt []byte) (*Key, error) {
	if password == "" {
		return nil, fmt.Errorf("%w: empty password", ErrDerivationInput)
	}
	if len(salt) == 0 {
		return nil, fmt.Errorf("%w: missing salt", ErrDerivationInput)
	}
	if len(salt) != SaltSize {
		return nil, fmt.Errorf("%w: salt must be %d bytes, got %d", ErrDerivationInput, SaltSize, len(salt))
	}

	raw := pbkdf2.Key([]byte(password), salt, s.iterations, KeySize, sha256.New)
	return newKey(raw)
}

func (s *keyDerivationService) DeriveKeyFromEncoded(password, encodedSalt string) (*Key, error) {
	salt, err := DecodeSalt(encodedSalt)
	if err != nil {
		return nil, err
	}

	return s.DeriveKey(password, salt)
}

// GenerateSalt returns [SaltSize] bytes from the system CSPRNG.
func GenerateSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}

	return salt, nil
}

// EncodeSalt renders a salt in the standard base64 form used on the wire
// and in storage.
func EncodeSalt(salt []byte) string {
	return base64.StdEncoding.EncodeToString(salt)
}

// DecodeSalt parses a base64 salt and checks its length.
func DecodeSalt(encoded string) ([]byte, error) {
	if encoded == "" {
		return nil, fmt.Errorf("%w: missing salt", ErrDerivationInput)
	}

	salt, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: salt is not valid base64", ErrDerivationInput)
	}
	if len(salt) != SaltSize {
		return nil, fmt.Errorf("%w: salt must be %d bytes, got %d", ErrDerivationInput, SaltSize, len(salt))
	}

	return salt, nil
}
