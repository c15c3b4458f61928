package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-zk-vault/internal/config"
	"github.com/MKhiriev/go-zk-vault/internal/logger"
)

// ClientStorages groups the client-side repositories.
type ClientStorages struct {
	// SessionRepository holds the bearer token and the key-present marker.
	SessionRepository SessionRepository

	db *DB
}

// NewClientStorages opens (creating if needed) the SQLite file named by
// cfg.DBDSN, applies migrations and wires the repositories.
func NewClientStorages(ctx context.Context, cfg config.Client, logger *logger.Logger) (*ClientStorages, error) {
	logger.Debug().Msg("creating client storages...")

	db, err := NewConnectSQLite(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ClientStorages{
		SessionRepository: NewSessionRepository(db, logger),
		db:                db,
	}, nil
}

func (s *ClientStorages) Close() error {
	return s.db.Close()
}
