package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-zk-vault/internal/adapter"
	"github.com/MKhiriev/go-zk-vault/internal/logger"
	"github.com/MKhiriev/go-zk-vault/internal/store"
	"github.com/MKhiriev/go-zk-vault/internal/validators"
	"github.com/MKhiriev/go-zk-vault/models"
)

type clientAuthService struct {
	adapter   adapter.ServerAdapter
	sessions  store.SessionRepository
	keys      KeySession
	validator validators.Validator

	logger *logger.Logger
}

func NewClientAuthService(serverAdapter adapter.ServerAdapter, sessions store.SessionRepository, keys KeySession, logger *logger.Logger) ClientAuthService {
	return &clientAuthService{
		adapter:   serverAdapter,
		sessions:  sessions,
		keys:      keys,
		validator: validators.NewVaultValidator(),
		logger:    logger,
	}
}

func (a *clientAuthService) SignUp(ctx context.Context, creds models.Credentials) error {
	creds, err := a.prepare(ctx, creds)
	if err != nil {
		return err
	}

	resp, err := a.adapter.SignUp(ctx, creds)
	if err != nil {
		return fmt.Errorf("sign up: %w", err)
	}

	if err = a.sessions.SaveSession(ctx, creds.Email, resp.Token); err != nil {
		return a.abort(ctx, fmt.Errorf("save session: %w", err))
	}
	if err = a.keys.AcquireWithSalt(ctx, creds.Password, resp.Salt); err != nil {
		return a.abort(ctx, fmt.Errorf("unlock after sign up: %w", err))
	}

	a.logger.Info().Msg("account registered")
	return nil
}

func (a *clientAuthService) Login(ctx context.Context, creds models.Credentials) error {
	creds, err := a.prepare(ctx, creds)
	if err != nil {
		return err
	}

	resp, err := a.adapter.Login(ctx, creds)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}

	if err = a.sessions.SaveSession(ctx, creds.Email, resp.Token); err != nil {
		return a.abort(ctx, fmt.Errorf("save session: %w", err))
	}
	if err = a.keys.Acquire(ctx, creds.Email, creds.Password); err != nil {
		return a.abort(ctx, fmt.Errorf("unlock after login: %w", err))
	}

	a.logger.Info().Msg("logged in")
	return nil
}

// prepare normalizes the email and rejects input the server would refuse.
func (a *clientAuthService) prepare(ctx context.Context, creds models.Credentials) (models.Credentials, error) {
	creds.Email = models.NormalizeEmail(creds.Email)
	if err := a.validator.Validate(ctx, creds, validators.FieldEmail, validators.FieldPassword); err != nil {
		return creds, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return creds, nil
}

// abort forgets a half-established session and returns cause.
func (a *clientAuthService) abort(ctx context.Context, cause error) error {
	a.keys.Clear()
	a.adapter.SetToken("")
	if err := a.sessions.ClearSession(ctx); err != nil {
		a.logger.Err(err).Str("func", "*clientAuthService.abort").Msg("failed to clear session")
	}
	return cause
}

func (a *clientAuthService) Restore(ctx context.Context) (models.LocalSession, error) {
	session, err := a.sessions.LoadSession(ctx)
	if err != nil {
		return models.LocalSession{}, err
	}
	if session.Token == "" || session.Email == "" {
		return models.LocalSession{}, store.ErrLocalSessionNotFound
	}

	a.adapter.SetToken(session.Token)
	return session, nil
}

func (a *clientAuthService) Unlock(ctx context.Context, password string) error {
	session, err := a.sessions.LoadSession(ctx)
	if errors.Is(err, store.ErrLocalSessionNotFound) {
		return fmt.Errorf("unlock: %w", err)
	}
	if err != nil {
		return fmt.Errorf("unlock: load session: %w", err)
	}

	return a.Login(ctx, models.Credentials{Email: session.Email, Password: password})
}

func (a *clientAuthService) Lock() {
	a.keys.Clear()
	a.logger.Info().Msg("vault locked")
}

func (a *clientAuthService) Logout(ctx context.Context) error {
	a.keys.Clear()
	a.adapter.SetToken("")

	if err := a.sessions.ClearSession(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	a.logger.Info().Msg("logged out")
	return nil
}

func (a *clientAuthService) IsUnlocked() bool {
	return a.keys.IsPresent()
}
