package store

import (
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-zk-vault/models"
)

const (
	createUser = `INSERT INTO users (user_id, email, password_hash, salt, created_at, updated_at)
    VALUES ($1, $2, $3, $4, $5, $6)
    RETURNING user_id, email, password_hash, salt, created_at, updated_at;`

	findUserByEmail = `SELECT user_id, email, password_hash, salt, created_at, updated_at
    FROM users
    WHERE email = $1;`

	vaultItemsTable = "vault_items"

	loadSession = `SELECT email, token, key_present, updated_at FROM session WHERE id = 1;`

	saveSession = `INSERT INTO session (id, email, token, key_present, updated_at)
    VALUES (1, ?, ?, 0, CURRENT_TIMESTAMP)
    ON CONFLICT (id) DO UPDATE SET email = excluded.email, token = excluded.token, updated_at = excluded.updated_at;`

	setMarker = `INSERT INTO session (id, key_present, updated_at)
    VALUES (1, ?, CURRENT_TIMESTAMP)
    ON CONFLICT (id) DO UPDATE SET key_present = excluded.key_present, updated_at = excluded.updated_at;`

	clearSession = `DELETE FROM session WHERE id = 1;`
)

var vaultColumns = []string{"id", "owner_id", "cipher", "iv", "title_hint", "created_at", "updated_at"}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// buildListVaultQuery selects an owner's records, newest change first.
// A hint prefix is matched literally: LIKE wildcards in it are escaped.
func buildListVaultQuery(filter models.VaultFilter) (string, []any, error) {
	query := psql.Select(vaultColumns...).
		From(vaultItemsTable).
		Where(sq.Eq{"owner_id": filter.OwnerID})

	if prefix := models.TitleHint(filter.HintPrefix); prefix != "" {
		query = query.Where(sq.Like{"title_hint": escapeLike(prefix) + "%"})
	}

	return query.OrderBy("updated_at DESC", "id DESC").ToSql()
}

func buildCreateVaultQuery(record models.VaultRecord) (string, []any, error) {
	return psql.Insert(vaultItemsTable).
		Columns(vaultColumns...).
		Values(record.ID, record.OwnerID, record.Cipher, record.IV, record.TitleHint, record.CreatedAt, record.UpdatedAt).
		Suffix("RETURNING " + strings.Join(vaultColumns, ", ")).
		ToSql()
}

// buildUpdateVaultQuery replaces the envelope of a record in full. The owner
// check is part of the WHERE clause so a foreign record is never touched.
func buildUpdateVaultQuery(record models.VaultRecord) (string, []any, error) {
	return psql.Update(vaultItemsTable).
		Set("cipher", record.Cipher).
		Set("iv", record.IV).
		Set("title_hint", record.TitleHint).
		Set("updated_at", record.UpdatedAt).
		Where(sq.Eq{"id": record.ID, "owner_id": record.OwnerID}).
		Suffix("RETURNING " + strings.Join(vaultColumns, ", ")).
		ToSql()
}

func buildDeleteVaultQuery(id, ownerID string) (string, []any, error) {
	return psql.Delete(vaultItemsTable).
		Where(sq.Eq{"id": id, "owner_id": ownerID}).
		ToSql()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
