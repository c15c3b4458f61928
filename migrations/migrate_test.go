// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package migrations

import (
	"database/sql"
	"io/fs"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_DBError(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// no expectations are registered, so goose's first query fails
	err = Migrate(db, DialectPostgres)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migration error")
}

func TestMigrate_NilDB(t *testing.T) {
	var db *sql.DB

	err := Migrate(db, DialectPostgres)
	require.ErrorIs(t, err, ErrNilDB)
	assert.Contains(t, err.Error(), "db is nil")
}

func TestMigrate_UnsupportedDialect(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	err = Migrate(db, Dialect("oracle"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported dialect")
}

func TestEmbeddedMigrations(t *testing.T) {
	for _, dir := range []string{"postgres", "sqlite"} {
		entries, err := fs.ReadDir(embedMigrations, dir)
		require.NoError(t, err)
		require.NotEmpty(t, entries, dir)

		for _, e := range entries {
			body, err := fs.ReadFile(embedMigrations, dir+"/"+e.Name())
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(string(body), "-- +goose Up"), "%s/%s must start with a goose Up marker", dir, e.Name())
			assert.Contains(t, string(body), "-- +goose Down")
		}
	}
}

// TestPostgresMigrations_NoSaltUpdate guards the rule that an account salt is
// written once: no migration may contain an UPDATE of users.
func TestPostgresMigrations_NoSaltUpdate(t *testing.T) {
	entries, err := fs.ReadDir(embedMigrations, "postgres")
	require.NoError(t, err)

	for _, e := range entries {
		body, err := fs.ReadFile(embedMigrations, "postgres/"+e.Name())
		require.NoError(t, err)
		assert.NotContains(t, strings.ToUpper(string(body)), "UPDATE USERS SET")
	}
}
