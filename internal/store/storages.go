package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-zk-vault/internal/config"
	"github.com/MKhiriev/go-zk-vault/internal/logger"
)

// Storages groups the server repositories of the selected backend.
type Storages struct {
	UserRepository  UserRepository
	VaultRepository VaultRepository
	HealthChecker   HealthChecker

	close func(ctx context.Context) error
}

// NewStorages connects to the backend named by cfg.Driver, prepares its
// schema and wires the repositories.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	log.Info().Str("driver", cfg.Driver).Msg("creating new storages...")

	switch cfg.Driver {
	case config.DriverPostgres:
		db, err := NewConnectPostgres(ctx, cfg.DB, log)
		if err != nil {
			return nil, fmt.Errorf("postgres connection error: %w", err)
		}
		if err := db.Migrate(); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migration failed: %w", err)
		}

		return &Storages{
			UserRepository:  NewUserRepository(db, log),
			VaultRepository: NewVaultRepository(db, log),
			HealthChecker:   db,
			close:           func(context.Context) error { return db.Close() },
		}, nil

	case config.DriverMongo:
		m, err := NewConnectMongo(ctx, cfg.Mongo, log)
		if err != nil {
			return nil, fmt.Errorf("mongo connection error: %w", err)
		}
		if err := m.EnsureIndexes(ctx); err != nil {
			_ = m.Close(ctx)
			return nil, err
		}

		return &Storages{
			UserRepository:  NewMongoUserRepository(m),
			VaultRepository: NewMongoVaultRepository(m),
			HealthChecker:   m,
			close:           m.Close,
		}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}

// Close releases the backend connection.
func (s *Storages) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}
