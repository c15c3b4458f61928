package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/MKhiriev/go-zk-vault/internal/logger"
	"github.com/MKhiriev/go-zk-vault/migrations"
)

// readRetryDelays are the pauses before each attempt of a retried read.
var readRetryDelays = []time.Duration{0, 100 * time.Millisecond, 300 * time.Millisecond}

// DB wraps a *sql.DB with the dialect used for migrations and an optional
// error classifier that decides which failures are transient.
type DB struct {
	*sql.DB
	dialect            migrations.Dialect
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// Migrate applies the embedded migrations for the connection's dialect.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect)
}

// Ping implements [HealthChecker].
func (db *DB) Ping(ctx context.Context) error {
	return db.PingContext(ctx)
}

// retryRead runs a read-only query function, repeating it while the
// classifier reports the failure as retryable.
func (db *DB) retryRead(ctx context.Context, fn func() error) error {
	var err error
	for _, delay := range readRetryDelays {
		if delay > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		err = fn()
		if err == nil || db.errorClassificator == nil || db.errorClassificator.Classify(err) != Retryable {
			return err
		}
		logger.FromContext(ctx).Warn().Err(err).Dur("delay", delay).Msg("retrying read after transient database error")
	}

	return err
}
