package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-zk-vault/internal/logger"
	"github.com/MKhiriev/go-zk-vault/internal/store"
	"github.com/MKhiriev/go-zk-vault/internal/validators"
	"github.com/MKhiriev/go-zk-vault/models"
)

type saltRegistry struct {
	userRepository store.UserRepository
	validator      validators.Validator

	logger *logger.Logger
}

func NewSaltRegistry(userRepository store.UserRepository, logger *logger.Logger) SaltRegistry {
	return &saltRegistry{
		userRepository: userRepository,
		validator:      validators.NewVaultValidator(),
		logger:         logger,
	}
}

// SaltFor returns the stored base64 salt of the account. The salt is public;
// the endpoint serving it is rate-limited rather than authenticated.
func (s *saltRegistry) SaltFor(ctx context.Context, email string) (string, error) {
	creds := models.Credentials{Email: email}
	if err := s.validator.Validate(ctx, creds, validators.FieldEmail); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	user, err := s.userRepository.FindUserByEmail(ctx, models.NormalizeEmail(email))
	if err != nil {
		return "", fmt.Errorf("salt lookup failed: %w", err)
	}

	return user.Salt, nil
}
