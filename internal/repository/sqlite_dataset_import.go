package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/questgen/internal/db"
	"github.com/alexanderramin/questgen/internal/domain"
)

// SQLiteDatasetImportRepo keeps the history of dataset imports.
type SQLiteDatasetImportRepo struct {
	db db.DBTX
}

func NewSQLiteDatasetImportRepo(conn db.DBTX) *SQLiteDatasetImportRepo {
	return &SQLiteDatasetImportRepo{db: conn}
}

// importedAtLayout has a fixed-width fraction so stored values sort as text.
const importedAtLayout = "2006-01-02T15:04:05.000000000Z07:00"

const importColumns = `id, source, concept_count, cluster_count, template_count, invalid_patterns, imported_at`

func (r *SQLiteDatasetImportRepo) Create(ctx context.Context, imp *domain.DatasetImport) error {
	query := `INSERT INTO dataset_imports (` + importColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		imp.ID,
		imp.Source,
		imp.ConceptCount,
		imp.ClusterCount,
		imp.TemplateCount,
		imp.InvalidPatterns,
		imp.ImportedAt.UTC().Format(importedAtLayout),
	)
	if err != nil {
		return fmt.Errorf("inserting dataset import: %w", err)
	}
	return nil
}

func (r *SQLiteDatasetImportRepo) Latest(ctx context.Context) (*domain.DatasetImport, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+importColumns+` FROM dataset_imports ORDER BY imported_at DESC, id DESC LIMIT 1`)
	imp, err := scanImport(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrImportNotFound
		}
		return nil, err
	}
	return imp, nil
}

func (r *SQLiteDatasetImportRepo) List(ctx context.Context) ([]*domain.DatasetImport, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+importColumns+` FROM dataset_imports ORDER BY imported_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing dataset imports: %w", err)
	}
	defer rows.Close()

	var out []*domain.DatasetImport
	for rows.Next() {
		imp, err := scanImport(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, imp)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanImport(s rowScanner) (*domain.DatasetImport, error) {
	var imp domain.DatasetImport
	var importedAt string
	err := s.Scan(
		&imp.ID,
		&imp.Source,
		&imp.ConceptCount,
		&imp.ClusterCount,
		&imp.TemplateCount,
		&imp.InvalidPatterns,
		&importedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning dataset import: %w", err)
	}
	imp.ImportedAt, err = time.Parse(importedAtLayout, importedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing imported_at %q: %w", importedAt, err)
	}
	return &imp, nil
}
