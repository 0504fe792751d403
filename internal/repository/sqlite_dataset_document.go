package repository

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/questgen/internal/dataset"
	"github.com/alexanderramin/questgen/internal/db"
)

// SQLiteDatasetDocumentRepo stores raw dataset documents keyed by name.
type SQLiteDatasetDocumentRepo struct {
	db db.DBTX
}

var _ dataset.Source = (*SQLiteDatasetDocumentRepo)(nil)

func NewSQLiteDatasetDocumentRepo(conn db.DBTX) *SQLiteDatasetDocumentRepo {
	return &SQLiteDatasetDocumentRepo{db: conn}
}

func (r *SQLiteDatasetDocumentRepo) Put(ctx context.Context, name dataset.DocumentName, body []byte, importID string) error {
	sum := sha256.Sum256(body)
	query := `INSERT INTO dataset_documents (name, body, sha256, import_id, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			body = excluded.body,
			sha256 = excluded.sha256,
			import_id = excluded.import_id,
			updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		string(name),
		string(body),
		hex.EncodeToString(sum[:]),
		importID,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("storing document %s: %w", name, err)
	}
	return nil
}

func (r *SQLiteDatasetDocumentRepo) Get(ctx context.Context, name dataset.DocumentName) ([]byte, error) {
	var body string
	err := r.db.QueryRowContext(ctx, `SELECT body FROM dataset_documents WHERE name = ?`, string(name)).Scan(&body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", name, ErrDocumentNotFound)
		}
		return nil, fmt.Errorf("reading document %s: %w", name, err)
	}
	return []byte(body), nil
}

func (r *SQLiteDatasetDocumentRepo) List(ctx context.Context) ([]StoredDocument, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT name, sha256, length(body), import_id, updated_at FROM dataset_documents ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	var out []StoredDocument
	for rows.Next() {
		var d StoredDocument
		var name string
		if err := rows.Scan(&name, &d.SHA256, &d.Size, &d.ImportID, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning document row: %w", err)
		}
		d.Name = dataset.DocumentName(name)
		out = append(out, d)
	}
	return out, rows.Err()
}

// LoadDocuments returns all five documents or ErrDocumentNotFound naming the
// first missing one.
func (r *SQLiteDatasetDocumentRepo) LoadDocuments(ctx context.Context) (dataset.Documents, error) {
	docs := make(dataset.Documents, len(dataset.DocumentNames))
	for _, name := range dataset.DocumentNames {
		body, err := r.Get(ctx, name)
		if err != nil {
			return nil, err
		}
		docs[name] = body
	}
	return docs, nil
}
