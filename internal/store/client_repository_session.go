package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-zk-vault/internal/logger"
	"github.com/MKhiriev/go-zk-vault/models"
)

// sessionRepository keeps the client session in a single SQLite row.
type sessionRepository struct {
	*DB
	logger *logger.Logger
}

func NewSessionRepository(db *DB, logger *logger.Logger) SessionRepository {
	return &sessionRepository{
		DB:     db,
		logger: logger,
	}
}

func (s *sessionRepository) SaveSession(ctx context.Context, email, token string) error {
	if _, err := s.ExecContext(ctx, saveSession, email, token); err != nil {
		s.logger.Err(err).Str("func", "sessionRepository.SaveSession").Msg("failed to save session")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (s *sessionRepository) LoadSession(ctx context.Context) (models.LocalSession, error) {
	var session models.LocalSession
	err := s.QueryRowContext(ctx, loadSession).Scan(&session.Email, &session.Token, &session.KeyPresent, &session.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.LocalSession{}, ErrLocalSessionNotFound
	}
	if err != nil {
		s.logger.Err(err).Str("func", "sessionRepository.LoadSession").Msg("failed to load session")
		return models.LocalSession{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return session, nil
}

// LoadMarker returns false, without error, when no session row exists.
func (s *sessionRepository) LoadMarker(ctx context.Context) (bool, error) {
	session, err := s.LoadSession(ctx)
	if errors.Is(err, ErrLocalSessionNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return session.KeyPresent, nil
}

func (s *sessionRepository) SetMarker(ctx context.Context, present bool) error {
	if _, err := s.ExecContext(ctx, setMarker, present); err != nil {
		s.logger.Err(err).Str("func", "sessionRepository.SetMarker").Bool("present", present).Msg("failed to set key marker")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (s *sessionRepository) ClearSession(ctx context.Context) error {
	if _, err := s.ExecContext(ctx, clearSession); err != nil {
		s.logger.Err(err).Str("func", "sessionRepository.ClearSession").Msg("failed to clear session")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
