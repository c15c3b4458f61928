// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/go-zk-vault/internal/config"
	"github.com/MKhiriev/go-zk-vault/internal/crypto"
	"github.com/MKhiriev/go-zk-vault/internal/logger"
	"github.com/MKhiriev/go-zk-vault/internal/store"
	"github.com/MKhiriev/go-zk-vault/internal/utils"
	"github.com/MKhiriev/go-zk-vault/internal/validators"
	"github.com/MKhiriev/go-zk-vault/models"
)

// dummyHash is compared against when the account does not exist so that an
// unknown email costs the same bcrypt work as a wrong password.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)

// authService is the concrete implementation of AuthService.
type authService struct {
	userRepository store.UserRepository
	validator      validators.Validator
	ids            *utils.UUIDGenerator

	// bcryptCost is the work factor for new password hashes.
	bcryptCost int

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given UserRepository
// and populated with token parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		validator:      validators.NewVaultValidator(),
		ids:            utils.NewUUIDGenerator(),
		bcryptCost:     bcrypt.DefaultCost,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		logger:         logger,
	}
}

// SignUp creates a new account.
//
// The email is normalized, the password is bcrypt-hashed and a fresh 32-byte
// salt is generated. This is the only place a salt is ever produced for an
// account; no later operation rewrites it.
//
// Returns the persisted user or:
//   - ErrInvalidDataProvided if the email or password is unusable.
//   - store.ErrEmailAlreadyExists (wrapped) if the email is taken.
func (a *authService) SignUp(ctx context.Context, creds models.Credentials) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, creds); err != nil {
		log.Err(err).Str("func", "authService.SignUp").Msg("invalid credentials provided")
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), a.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
		}
		return models.User{}, fmt.Errorf("error hashing password: %w", err)
	}

	salt, err := crypto.GenerateSalt()
	if err != nil {
		log.Err(err).Str("func", "authService.SignUp").Msg("salt generation failed")
		return models.User{}, fmt.Errorf("%w: %w", ErrSaltGeneration, err)
	}

	now := time.Now().UTC()
	user := models.User{
		UserID:       a.ids.Generate(),
		Email:        models.NormalizeEmail(creds.Email),
		PasswordHash: string(hash),
		Salt:         crypto.EncodeSalt(salt),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("func", "authService.SignUp").Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	log.Info().Str("user_id", registeredUser.UserID).Msg("user registered")
	return registeredUser, nil
}

// Login authenticates an existing account. An unknown email and a wrong
// password both yield ErrWrongPassword.
func (a *authService) Login(ctx context.Context, creds models.Credentials) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, creds); err != nil {
		log.Err(err).Str("func", "authService.Login").Msg("invalid credentials provided")
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	foundUser, err := a.userRepository.FindUserByEmail(ctx, models.NormalizeEmail(creds.Email))
	if errors.Is(err, store.ErrUserNotFound) {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(creds.Password))
		return models.User{}, ErrWrongPassword
	}
	if err != nil {
		log.Err(err).Str("func", "authService.Login").Msg("user search by email failed")
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(foundUser.PasswordHash), []byte(creds.Password)); err != nil {
		log.Warn().Str("user_id", foundUser.UserID).Msg("wrong password")
		return models.User{}, ErrWrongPassword
	}

	return foundUser, nil
}

// CreateToken issues a signed JWT whose subject is the account's user id.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.UserID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates a raw JWT. Expired tokens yield ErrTokenIsExpired,
// every other failure ErrTokenIsExpiredOrInvalid.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.Token{}, ErrTokenIsExpired
		}
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}
