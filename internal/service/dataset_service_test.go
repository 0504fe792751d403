package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/questgen/internal/dataset"
	"github.com/alexanderramin/questgen/internal/repository"
	"github.com/alexanderramin/questgen/internal/testutil"
)

func brokenTemplatesSource(t *testing.T) dataset.Source {
	t.Helper()
	docs := testutil.LoadFixtureDocuments(t)
	broken := make(testutil.StaticSource, len(docs))
	for name, body := range docs {
		broken[name] = body
	}
	broken[dataset.DocTemplates] = []byte(strings.Replace(
		string(docs[dataset.DocTemplates]),
		`"clusterKey": "trip_prep"`, `"clusterKey": "moon_trip"`, 1))
	return broken
}

func TestDatasetService_CheckFixture(t *testing.T) {
	svc := NewDatasetService(nil, nil)

	res, err := svc.Check(context.Background(), testutil.FixtureSource())
	require.NoError(t, err)
	assert.True(t, res.OK(), "problems: %v", res.Problems)
	assert.Equal(t, 12, res.Stats.Concepts)
	assert.Equal(t, 5, res.Stats.Clusters)
	assert.Equal(t, 12, res.Stats.Templates)
	assert.Equal(t, 1, res.Stats.InvalidPatterns)
}

func TestDatasetService_CheckReportsReferenceProblems(t *testing.T) {
	svc := NewDatasetService(nil, nil)

	res, err := svc.Check(context.Background(), brokenTemplatesSource(t))
	require.NoError(t, err)
	require.False(t, res.OK())
	assert.Contains(t, strings.Join(res.Problems, "\n"), "moon_trip")
}

func TestDatasetService_CheckReportsDecodeProblems(t *testing.T) {
	dir := testutil.CopyFixtureDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, string(dataset.DocClusters)), []byte(`{"clusters": [], "extra": 1}`), 0o644))

	res, err := NewDatasetService(nil, nil).Check(context.Background(), dataset.DirSource{Dir: dir})
	require.NoError(t, err)
	require.Len(t, res.Problems, 1)
	assert.Contains(t, res.Problems[0], "clusters.json")
}

func TestDatasetService_CheckMissingDirectory(t *testing.T) {
	_, err := NewDatasetService(nil, nil).Check(context.Background(), dataset.DirSource{Dir: filepath.Join(t.TempDir(), "absent")})
	assert.Error(t, err)
}

func TestDatasetService_ImportAndHistory(t *testing.T) {
	ctx := context.Background()
	database := testutil.NewTestDB(t)
	imports := repository.NewSQLiteDatasetImportRepo(database)
	obs := &recordingObserver{}
	svc := NewDatasetService(testutil.NewTestUoW(database), imports, obs)

	first, err := svc.Import(ctx, testutil.FixtureSource(), "fixture")
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, "fixture", first.Source)
	assert.Equal(t, 12, first.TemplateCount)
	assert.Equal(t, 1, first.InvalidPatterns)

	second, err := svc.Import(ctx, testutil.FixtureSource(), "fixture-again")
	require.NoError(t, err)

	history, err := svc.History(ctx)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, second.ID, history[0].ID, "newest first")
	assert.Equal(t, first.ID, history[1].ID)

	docs := repository.NewSQLiteDatasetDocumentRepo(database)
	stored, err := docs.List(ctx)
	require.NoError(t, err)
	require.Len(t, stored, len(dataset.DocumentNames))
	for _, d := range stored {
		assert.Equal(t, second.ID, d.ImportID, d.Name)
	}

	events := obs.named("import-dataset")
	require.Len(t, events, 2)
	assert.Equal(t, first.ID, events[0].Fields["import_id"])
	assert.True(t, events[1].Success)
}

func TestDatasetService_ImportedStoreServesQueries(t *testing.T) {
	ctx := context.Background()
	database := testutil.NewTestDB(t)
	svc := NewDatasetService(testutil.NewTestUoW(database), repository.NewSQLiteDatasetImportRepo(database))

	_, err := svc.Import(ctx, testutil.FixtureSource(), "fixture")
	require.NoError(t, err)

	quests, err := NewQuestService(repository.NewSQLiteDatasetDocumentRepo(database), QuestServiceOptions{})
	require.NoError(t, err)
	got, err := quests.Rank(ctx, "소파에 쌓인 빨래", 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "t_sofa_laundry", got[0].ID)
}

func TestDatasetService_ImportRejectsInvalidDataset(t *testing.T) {
	ctx := context.Background()
	database := testutil.NewTestDB(t)
	imports := repository.NewSQLiteDatasetImportRepo(database)
	svc := NewDatasetService(testutil.NewTestUoW(database), imports)

	_, err := svc.Import(ctx, brokenTemplatesSource(t), "broken")
	require.ErrorIs(t, err, dataset.ErrInvalidDataset)

	history, err := imports.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestDatasetService_ImportRollsBackOnWriteFailure(t *testing.T) {
	ctx := context.Background()
	database := testutil.NewTestDB(t)
	imports := repository.NewSQLiteDatasetImportRepo(database)
	svc := NewDatasetService(testutil.NewTestUoW(database), imports)

	original, err := svc.Import(ctx, testutil.FixtureSource(), "original")
	require.NoError(t, err)

	injected := errors.New("disk full")
	failing := &testutil.FailOnNthExecUoW{DB: database, FailOn: 4, Err: injected}
	_, err = NewDatasetService(failing, imports).Import(ctx, testutil.FixtureSource(), "doomed")
	require.ErrorIs(t, err, injected)

	history, err := imports.List(ctx)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, original.ID, history[0].ID)

	stored, err := repository.NewSQLiteDatasetDocumentRepo(database).List(ctx)
	require.NoError(t, err)
	for _, d := range stored {
		assert.Equal(t, original.ID, d.ImportID, "document %s left half-replaced", d.Name)
	}
}

func TestDatasetService_NoStore(t *testing.T) {
	svc := NewDatasetService(nil, nil)

	_, err := svc.Import(context.Background(), testutil.FixtureSource(), "x")
	assert.Error(t, err)
	_, err = svc.History(context.Background())
	assert.Error(t, err)
}
