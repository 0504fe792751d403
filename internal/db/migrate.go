package db

import (
	"database/sql"
	"fmt"
)

// Migrate applies every schema statement. Statements are idempotent so the
// whole list runs on each open.
func Migrate(conn *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := conn.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS dataset_imports (
		id TEXT PRIMARY KEY,
		source TEXT NOT NULL,
		concept_count INTEGER NOT NULL DEFAULT 0,
		cluster_count INTEGER NOT NULL DEFAULT 0,
		template_count INTEGER NOT NULL DEFAULT 0,
		invalid_patterns INTEGER NOT NULL DEFAULT 0,
		imported_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS dataset_documents (
		name TEXT PRIMARY KEY
			CHECK (name IN ('concepts.json', 'clusters.json', 'concept_cluster_map.json', 'templates.json', 'lexicon.json')),
		body TEXT NOT NULL,
		sha256 TEXT NOT NULL,
		import_id TEXT NOT NULL REFERENCES dataset_imports(id),
		updated_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_dataset_imports_imported_at ON dataset_imports(imported_at)`,
}
