package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/questgen/internal/dataset"
	"github.com/alexanderramin/questgen/internal/domain"
)

var (
	// ErrDocumentNotFound is returned when the store lacks a dataset document.
	ErrDocumentNotFound = errors.New("dataset document not found")
	// ErrImportNotFound is returned when no import has been recorded.
	ErrImportNotFound = errors.New("dataset import not found")
)

// StoredDocument is a dataset document as persisted, without its body.
type StoredDocument struct {
	Name      dataset.DocumentName
	SHA256    string
	Size      int
	ImportID  string
	UpdatedAt string
}

type DatasetDocumentRepo interface {
	Put(ctx context.Context, name dataset.DocumentName, body []byte, importID string) error
	Get(ctx context.Context, name dataset.DocumentName) ([]byte, error)
	List(ctx context.Context) ([]StoredDocument, error)
	// LoadDocuments satisfies dataset.Source.
	LoadDocuments(ctx context.Context) (dataset.Documents, error)
}

type DatasetImportRepo interface {
	Create(ctx context.Context, imp *domain.DatasetImport) error
	Latest(ctx context.Context) (*domain.DatasetImport, error)
	List(ctx context.Context) ([]*domain.DatasetImport, error)
}
