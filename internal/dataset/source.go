package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Source supplies the raw dataset documents.
type Source interface {
	LoadDocuments(ctx context.Context) (Documents, error)
}

// DirSource reads the documents from one directory.
type DirSource struct {
	Dir string
}

// LoadDocuments reads all five files concurrently.
func (s DirSource) LoadDocuments(ctx context.Context) (Documents, error) {
	var mu sync.Mutex
	docs := make(Documents, len(DocumentNames))

	g, gctx := errgroup.WithContext(ctx)
	for _, name := range DocumentNames {
		name := name
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(filepath.Join(s.Dir, string(name)))
			if err != nil {
				return fmt.Errorf("reading %s: %w", name, err)
			}
			mu.Lock()
			docs[name] = data
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}

// Load reads, parses, validates and indexes a dataset. Any failure here is
// meant to stop startup.
func Load(ctx context.Context, src Source, logger *slog.Logger) (*Index, error) {
	docs, err := src.LoadDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading dataset documents: %w", err)
	}
	ds, err := Parse(docs)
	if err != nil {
		return nil, err
	}
	idx, err := Build(ds)
	if err != nil {
		return nil, err
	}

	if logger != nil {
		st := idx.Stats()
		logger.InfoContext(ctx, "dataset loaded",
			slog.Int("concepts", st.Concepts),
			slog.Int("clusters", st.Clusters),
			slog.Int("templates", st.Templates),
			slog.Int("lexemes", st.Lexemes),
		)
		if st.InvalidPatterns > 0 {
			logger.WarnContext(ctx, "lexicon patterns skipped", slog.Int("invalid_patterns", st.InvalidPatterns))
		}
	}
	return idx, nil
}
