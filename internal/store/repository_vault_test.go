package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-zk-vault/internal/logger"
	"github.com/MKhiriev/go-zk-vault/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestVaultRepo(t *testing.T) (*vaultRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	l := logger.Nop()
	return &vaultRepository{DB: &DB{DB: db, logger: l}, logger: l}, mock, db
}

func testRecord(id string, updated time.Time) models.VaultRecord {
	return models.VaultRecord{
		ID:        id,
		OwnerID:   "owner-1",
		Cipher:    "Y2lwaGVydGV4dC1hbmQtdGFnLTE2Ynl0ZXM=",
		IV:        "AAAAAAAAAAAAAAAA",
		TitleHint: "bank",
		CreatedAt: updated.Add(-time.Hour),
		UpdatedAt: updated,
	}
}

func recordRows(records ...models.VaultRecord) *sqlmock.Rows {
	rows := sqlmock.NewRows(vaultColumns)
	for _, r := range records {
		rows.AddRow(r.ID, r.OwnerID, r.Cipher, r.IV, r.TitleHint, r.CreatedAt, r.UpdatedAt)
	}
	return rows
}

func TestListVaultRecords_KeepsServerOrder(t *testing.T) {
	repo, mock, db := newTestVaultRepo(t)
	defer db.Close()

	now := time.Now().UTC()
	newer := testRecord("id-2", now)
	older := testRecord("id-1", now.Add(-time.Minute))

	mock.ExpectQuery(`SELECT (.+) FROM vault_items WHERE owner_id = \$1 ORDER BY updated_at DESC`).
		WithArgs("owner-1").
		WillReturnRows(recordRows(newer, older))

	records, err := repo.ListVaultRecords(context.Background(), models.VaultFilter{OwnerID: "owner-1"})
	require.NoError(t, err)
	assert.Equal(t, []models.VaultRecord{newer, older}, records)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListVaultRecords_EmptyVault(t *testing.T) {
	repo, mock, db := newTestVaultRepo(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT (.+) FROM vault_items`).
		WithArgs("owner-1").
		WillReturnRows(recordRows())

	records, err := repo.ListVaultRecords(context.Background(), models.VaultFilter{OwnerID: "owner-1"})
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestListVaultRecords_HintPrefix(t *testing.T) {
	repo, mock, db := newTestVaultRepo(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT (.+) FROM vault_items WHERE owner_id = \$1 AND title_hint LIKE \$2`).
		WithArgs("owner-1", "ba%").
		WillReturnRows(recordRows(testRecord("id-1", time.Now())))

	records, err := repo.ListVaultRecords(context.Background(), models.VaultFilter{OwnerID: "owner-1", HintPrefix: "Ba"})
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestListVaultRecords_QueryError(t *testing.T) {
	repo, mock, db := newTestVaultRepo(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT (.+) FROM vault_items`).WillReturnError(errors.New("boom"))

	_, err := repo.ListVaultRecords(context.Background(), models.VaultFilter{OwnerID: "owner-1"})
	assert.ErrorIs(t, err, ErrExecutingQuery)
}

func TestListVaultRecords_ScanError(t *testing.T) {
	repo, mock, db := newTestVaultRepo(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT (.+) FROM vault_items`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("id-1"))

	_, err := repo.ListVaultRecords(context.Background(), models.VaultFilter{OwnerID: "owner-1"})
	assert.ErrorIs(t, err, ErrScanningRow)
}

func TestCreateVaultRecord(t *testing.T) {
	repo, mock, db := newTestVaultRepo(t)
	defer db.Close()

	record := testRecord("id-1", time.Now().UTC())
	mock.ExpectQuery(`INSERT INTO vault_items`).
		WithArgs(record.ID, record.OwnerID, record.Cipher, record.IV, record.TitleHint, record.CreatedAt, record.UpdatedAt).
		WillReturnRows(recordRows(record))

	created, err := repo.CreateVaultRecord(context.Background(), record)
	require.NoError(t, err)
	assert.Equal(t, record, created)
}

func TestCreateVaultRecord_Error(t *testing.T) {
	repo, mock, db := newTestVaultRepo(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO vault_items`).WillReturnError(errors.New("boom"))

	_, err := repo.CreateVaultRecord(context.Background(), testRecord("id-1", time.Now()))
	assert.ErrorIs(t, err, ErrExecutingStatement)
}

func TestUpdateVaultRecord(t *testing.T) {
	repo, mock, db := newTestVaultRepo(t)
	defer db.Close()

	record := testRecord("id-1", time.Now().UTC())
	mock.ExpectQuery(`UPDATE vault_items SET (.+) WHERE id = \$5 AND owner_id = \$6`).
		WithArgs(record.Cipher, record.IV, record.TitleHint, record.UpdatedAt, record.ID, record.OwnerID).
		WillReturnRows(recordRows(record))

	updated, err := repo.UpdateVaultRecord(context.Background(), record)
	require.NoError(t, err)
	assert.Equal(t, record, updated)
}

// TestUpdateVaultRecord_ForeignOwner covers both a missing id and an id owned
// by someone else: the owner-scoped UPDATE returns no row either way.
func TestUpdateVaultRecord_ForeignOwner(t *testing.T) {
	repo, mock, db := newTestVaultRepo(t)
	defer db.Close()

	record := testRecord("id-1", time.Now().UTC())
	record.OwnerID = "intruder"
	mock.ExpectQuery(`UPDATE vault_items`).
		WithArgs(record.Cipher, record.IV, record.TitleHint, record.UpdatedAt, record.ID, "intruder").
		WillReturnRows(recordRows())

	_, err := repo.UpdateVaultRecord(context.Background(), record)
	assert.ErrorIs(t, err, ErrVaultRecordNotFound)
}

func TestDeleteVaultRecord(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		execErr  error
		wantErr  error
	}{
		{name: "deleted", affected: 1},
		{name: "missing or foreign", affected: 0, wantErr: ErrVaultRecordNotFound},
		{name: "exec error", execErr: errors.New("boom"), wantErr: ErrExecutingStatement},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, db := newTestVaultRepo(t)
			defer db.Close()

			exp := mock.ExpectExec(`DELETE FROM vault_items WHERE id = \$1 AND owner_id = \$2`).
				WithArgs("id-1", "owner-1")
			if tt.execErr != nil {
				exp.WillReturnError(tt.execErr)
			} else {
				exp.WillReturnResult(sqlmock.NewResult(0, tt.affected))
			}

			err := repo.DeleteVaultRecord(context.Background(), "id-1", "owner-1")
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
