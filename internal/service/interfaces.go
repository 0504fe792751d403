package service

import (
	"context"

	"github.com/alexanderramin/questgen/internal/dataset"
	"github.com/alexanderramin/questgen/internal/domain"
	"github.com/alexanderramin/questgen/internal/ranking"
	"github.com/alexanderramin/questgen/internal/route"
)

// QuestService is the entry point callers use to turn a quest description
// into dataset templates. Errors are only returned when the dataset cannot
// be loaded; query content never produces an error.
type QuestService interface {
	// Rank returns up to limit candidates, best first. limit < 1 means 5.
	Rank(ctx context.Context, input string, limit int) ([]ranking.Candidate, error)
	// Select returns the single auto-selected candidate. Selection.Candidate
	// is nil when the query is ambiguous.
	Select(ctx context.Context, input string) (ranking.Selection, error)
	// FindTemplate returns ErrTemplateNotFound for unknown ids.
	FindTemplate(ctx context.Context, id string) (*domain.Template, error)
	Profile(ctx context.Context, input string) (route.Profile, error)
	// Explain returns ErrTemplateNotFound when the id is unknown or the
	// input is blank.
	Explain(ctx context.Context, input, templateID string) (*ranking.Breakdown, error)
	Stats(ctx context.Context) (dataset.Stats, error)
}

// CheckResult summarises a dataset validation run.
type CheckResult struct {
	Stats    dataset.Stats `json:"stats" yaml:"stats"`
	Problems []string      `json:"problems" yaml:"problems"`
}

// OK reports whether the dataset passed every check.
func (r *CheckResult) OK() bool {
	return len(r.Problems) == 0
}

// DatasetService validates datasets and manages the SQLite document store.
type DatasetService interface {
	// Check reports every decode, struct and reference problem in src. The
	// error is reserved for documents that cannot be read at all.
	Check(ctx context.Context, src dataset.Source) (*CheckResult, error)
	// Import validates src and replaces the stored documents atomically.
	Import(ctx context.Context, src dataset.Source, label string) (*domain.DatasetImport, error)
	History(ctx context.Context) ([]*domain.DatasetImport, error)
}
