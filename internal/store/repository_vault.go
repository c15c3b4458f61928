package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-zk-vault/internal/logger"
	"github.com/MKhiriev/go-zk-vault/models"
)

// vaultRepository is the PostgreSQL-backed implementation of
// [VaultRepository] over the "vault_items" table.
type vaultRepository struct {
	*DB
	logger *logger.Logger
}

func NewVaultRepository(db *DB, logger *logger.Logger) VaultRepository {
	logger.Debug().Msg("creating vault repository")
	return &vaultRepository{
		DB:     db,
		logger: logger,
	}
}

// ListVaultRecords returns the owner's records ordered by updated_at
// descending. An empty vault yields an empty, non-nil slice.
func (v *vaultRepository) ListVaultRecords(ctx context.Context, filter models.VaultFilter) ([]models.VaultRecord, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListVaultQuery(filter)
	if err != nil {
		log.Err(err).Str("func", "vaultRepository.ListVaultRecords").Str("owner_id", filter.OwnerID).Msg("failed to build query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var records []models.VaultRecord
	err = v.retryRead(ctx, func() error {
		records, err = v.queryRecords(ctx, query, args...)
		return err
	})
	if err != nil {
		log.Err(err).
			Str("func", "vaultRepository.ListVaultRecords").
			Str("owner_id", filter.OwnerID).
			Msg("failed to list vault records")
		return nil, err
	}

	return records, nil
}

func (v *vaultRepository) queryRecords(ctx context.Context, query string, args ...any) ([]models.VaultRecord, error) {
	rows, err := v.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	records := make([]models.VaultRecord, 0, 32)
	for rows.Next() {
		var r models.VaultRecord
		if err := rows.Scan(&r.ID, &r.OwnerID, &r.Cipher, &r.IV, &r.TitleHint, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return records, nil
}

func (v *vaultRepository) CreateVaultRecord(ctx context.Context, record models.VaultRecord) (models.VaultRecord, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCreateVaultQuery(record)
	if err != nil {
		return models.VaultRecord{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	created, err := v.scanRecord(v.QueryRowContext(ctx, query, args...))
	if err != nil {
		log.Err(err).
			Str("func", "vaultRepository.CreateVaultRecord").
			Str("owner_id", record.OwnerID).
			Str("id", record.ID).
			Msg("failed to insert vault record")
		return models.VaultRecord{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return created, nil
}

// UpdateVaultRecord replaces cipher, iv and title hint of a record the owner
// holds. No matching row, including a row of another owner, is
// [ErrVaultRecordNotFound].
func (v *vaultRepository) UpdateVaultRecord(ctx context.Context, record models.VaultRecord) (models.VaultRecord, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateVaultQuery(record)
	if err != nil {
		return models.VaultRecord{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	updated, err := v.scanRecord(v.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.VaultRecord{}, ErrVaultRecordNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "vaultRepository.UpdateVaultRecord").
			Str("owner_id", record.OwnerID).
			Str("id", record.ID).
			Msg("failed to update vault record")
		return models.VaultRecord{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return updated, nil
}

func (v *vaultRepository) DeleteVaultRecord(ctx context.Context, id, ownerID string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteVaultQuery(id, ownerID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := v.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "vaultRepository.DeleteVaultRecord").
			Str("owner_id", ownerID).
			Str("id", id).
			Msg("failed to delete vault record")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrVaultRecordNotFound
	}

	return nil
}

func (v *vaultRepository) scanRecord(row *sql.Row) (models.VaultRecord, error) {
	var r models.VaultRecord
	err := row.Scan(&r.ID, &r.OwnerID, &r.Cipher, &r.IV, &r.TitleHint, &r.CreatedAt, &r.UpdatedAt)
	return r, err
}
