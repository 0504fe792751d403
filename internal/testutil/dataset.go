package testutil

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/alexanderramin/questgen/internal/dataset"
)

// FixtureDir is the absolute path of the shared test dataset.
func FixtureDir() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "testdata", "dataset")
}

// FixtureSource reads the shared test dataset from disk.
func FixtureSource() dataset.Source {
	return dataset.DirSource{Dir: FixtureDir()}
}

// LoadFixtureDocuments returns the raw fixture documents.
func LoadFixtureDocuments(t *testing.T) dataset.Documents {
	t.Helper()
	docs, err := FixtureSource().LoadDocuments(context.Background())
	if err != nil {
		t.Fatalf("loading fixture documents: %v", err)
	}
	return docs
}

// LoadFixtureDataset parses and indexes the shared test dataset.
func LoadFixtureDataset(t *testing.T) *dataset.Index {
	t.Helper()
	idx, err := dataset.Load(context.Background(), FixtureSource(), nil)
	if err != nil {
		t.Fatalf("loading fixture dataset: %v", err)
	}
	return idx
}

// CopyFixtureDir copies the fixture documents into a fresh temp directory so
// a test can corrupt them.
func CopyFixtureDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range LoadFixtureDocuments(t) {
		if err := os.WriteFile(filepath.Join(dir, string(name)), body, 0o644); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
	return dir
}

// StaticSource serves documents from memory.
type StaticSource dataset.Documents

func (s StaticSource) LoadDocuments(context.Context) (dataset.Documents, error) {
	return dataset.Documents(s), nil
}
