package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/questgen/internal/dataset"
	"github.com/alexanderramin/questgen/internal/domain"
	"github.com/alexanderramin/questgen/internal/testutil"
)

func seedImport(t *testing.T, repo *SQLiteDatasetImportRepo, id string, at time.Time) *domain.DatasetImport {
	t.Helper()
	imp := &domain.DatasetImport{
		ID:            id,
		Source:        "testdata",
		ConceptCount:  3,
		ClusterCount:  2,
		TemplateCount: 4,
		ImportedAt:    at,
	}
	require.NoError(t, repo.Create(context.Background(), imp))
	return imp
}

func TestDatasetImportRepo_CreateAndLatest(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteDatasetImportRepo(testutil.NewTestDB(t))

	_, err := repo.Latest(ctx)
	require.ErrorIs(t, err, ErrImportNotFound)

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	seedImport(t, repo, "imp-1", base)
	want := seedImport(t, repo, "imp-2", base.Add(1500*time.Millisecond))
	seedImport(t, repo, "imp-0", base.Add(-time.Hour))

	got, err := repo.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, 4, got.TemplateCount)
	assert.True(t, want.ImportedAt.Equal(got.ImportedAt))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "imp-2", list[0].ID)
	assert.Equal(t, "imp-1", list[1].ID)
	assert.Equal(t, "imp-0", list[2].ID)
}

func TestDatasetImportRepo_SubsecondOrdering(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteDatasetImportRepo(testutil.NewTestDB(t))

	base := time.Date(2026, 3, 1, 9, 0, 0, 900_000_000, time.UTC)
	seedImport(t, repo, "a", base)
	seedImport(t, repo, "b", base.Add(200*time.Millisecond))

	got, err := repo.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, "b", got.ID)
}

func TestDatasetImportRepo_DuplicateID(t *testing.T) {
	repo := NewSQLiteDatasetImportRepo(testutil.NewTestDB(t))
	seedImport(t, repo, "dup", time.Now())

	err := repo.Create(context.Background(), &domain.DatasetImport{ID: "dup", ImportedAt: time.Now()})
	assert.Error(t, err)
}

func TestDatasetDocumentRepo_PutGetUpsert(t *testing.T) {
	ctx := context.Background()
	database := testutil.NewTestDB(t)
	imports := NewSQLiteDatasetImportRepo(database)
	docs := NewSQLiteDatasetDocumentRepo(database)
	seedImport(t, imports, "imp-1", time.Now())
	seedImport(t, imports, "imp-2", time.Now())

	require.NoError(t, docs.Put(ctx, dataset.DocLexicon, []byte(`{"v":1}`), "imp-1"))
	require.NoError(t, docs.Put(ctx, dataset.DocLexicon, []byte(`{"v":22}`), "imp-2"))

	body, err := docs.Get(ctx, dataset.DocLexicon)
	require.NoError(t, err)
	assert.Equal(t, `{"v":22}`, string(body))

	list, err := docs.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	sum := sha256.Sum256([]byte(`{"v":22}`))
	assert.Equal(t, hex.EncodeToString(sum[:]), list[0].SHA256)
	assert.Equal(t, 8, list[0].Size)
	assert.Equal(t, "imp-2", list[0].ImportID)
	assert.Equal(t, dataset.DocLexicon, list[0].Name)
}

func TestDatasetDocumentRepo_PutRequiresImport(t *testing.T) {
	docs := NewSQLiteDatasetDocumentRepo(testutil.NewTestDB(t))

	err := docs.Put(context.Background(), dataset.DocConcepts, []byte(`{}`), "missing")
	assert.Error(t, err)
}

func TestDatasetDocumentRepo_LoadDocuments(t *testing.T) {
	ctx := context.Background()
	database := testutil.NewTestDB(t)
	imports := NewSQLiteDatasetImportRepo(database)
	docs := NewSQLiteDatasetDocumentRepo(database)
	seedImport(t, imports, "imp-1", time.Now())

	fixture := testutil.LoadFixtureDocuments(t)
	for _, name := range dataset.DocumentNames[:len(dataset.DocumentNames)-1] {
		require.NoError(t, docs.Put(ctx, name, fixture[name], "imp-1"))
	}

	_, err := docs.LoadDocuments(ctx)
	require.ErrorIs(t, err, ErrDocumentNotFound)
	assert.Contains(t, err.Error(), string(dataset.DocLexicon))

	last := dataset.DocumentNames[len(dataset.DocumentNames)-1]
	require.NoError(t, docs.Put(ctx, last, fixture[last], "imp-1"))

	loaded, err := docs.LoadDocuments(ctx)
	require.NoError(t, err)
	assert.Equal(t, fixture, loaded)

	idx, err := dataset.Load(ctx, docs, nil)
	require.NoError(t, err)
	assert.Equal(t, 12, idx.Stats().Templates)
}
