package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestMigrate_Idempotent(t *testing.T) {
	conn := openTestDB(t)

	require.NoError(t, Migrate(conn))
	require.NoError(t, Migrate(conn))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	conn := openTestDB(t)

	for _, table := range []string{"dataset_documents", "dataset_imports"} {
		var name string
		err := conn.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_ForeignKeysEnabled(t *testing.T) {
	conn := openTestDB(t)

	var on int
	require.NoError(t, conn.QueryRow(`PRAGMA foreign_keys`).Scan(&on))
	assert.Equal(t, 1, on)
}

func TestMigrate_DocumentNameConstraint(t *testing.T) {
	conn := openTestDB(t)

	_, err := conn.Exec(`INSERT INTO dataset_imports (id, source, imported_at) VALUES ('imp-1', 'test', '2026-01-01T00:00:00Z')`)
	require.NoError(t, err)

	_, err = conn.Exec(`INSERT INTO dataset_documents (name, body, sha256, import_id, updated_at)
		VALUES ('templates.json', '{}', 'x', 'imp-1', '2026-01-01T00:00:00Z')`)
	require.NoError(t, err)

	_, err = conn.Exec(`INSERT INTO dataset_documents (name, body, sha256, import_id, updated_at)
		VALUES ('notes.txt', '{}', 'x', 'imp-1', '2026-01-01T00:00:00Z')`)
	assert.Error(t, err, "unknown document names are rejected")
}

func TestMigrate_DocumentRequiresImport(t *testing.T) {
	conn := openTestDB(t)

	_, err := conn.Exec(`INSERT INTO dataset_documents (name, body, sha256, import_id, updated_at)
		VALUES ('lexicon.json', '{}', 'x', 'missing', '2026-01-01T00:00:00Z')`)
	assert.Error(t, err)
}
