package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/questgen/internal/dataset"
	"github.com/alexanderramin/questgen/internal/ranking"
	"github.com/alexanderramin/questgen/internal/testutil"
)

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingObserver) named(name string) []UseCaseEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []UseCaseEvent
	for _, e := range r.events {
		if e.Name == name {
			out = append(out, e)
		}
	}
	return out
}

type failingSource struct {
	calls int
}

func (f *failingSource) LoadDocuments(context.Context) (dataset.Documents, error) {
	f.calls++
	return nil, errors.New("disk on fire")
}

func newFixtureQuestService(t *testing.T, cacheSize int, observers ...UseCaseObserver) QuestService {
	t.Helper()
	svc, err := NewQuestService(testutil.FixtureSource(), QuestServiceOptions{CacheSize: cacheSize}, observers...)
	require.NoError(t, err)
	return svc
}

func TestQuestService_RankMatchesEngine(t *testing.T) {
	ctx := context.Background()
	svc := newFixtureQuestService(t, 0)
	engine := ranking.NewEngine(testutil.LoadFixtureDataset(t))

	got, err := svc.Rank(ctx, "소파에 쌓인 빨래", 3)
	require.NoError(t, err)
	assert.Equal(t, engine.Rank("소파에 쌓인 빨래", 3), got)
	require.NotEmpty(t, got)
	assert.Equal(t, "t_sofa_laundry", got[0].ID)
}

func TestQuestService_RankDefaultsLimit(t *testing.T) {
	obs := &recordingObserver{}
	svc := newFixtureQuestService(t, 0, obs)

	got, err := svc.Rank(context.Background(), "정리", 0)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(got), ranking.DefaultRankLimit)

	events := obs.named("rank")
	require.Len(t, events, 1)
	assert.Equal(t, ranking.DefaultRankLimit, events[0].Fields["limit"])
	assert.NotContains(t, events[0].Fields, "cache_hit", "no cache configured")
}

func TestQuestService_RankCache(t *testing.T) {
	ctx := context.Background()
	obs := &recordingObserver{}
	svc := newFixtureQuestService(t, 16, obs)

	first, err := svc.Rank(ctx, "빨래 개기", 5)
	require.NoError(t, err)
	second, err := svc.Rank(ctx, "  빨래 개기 ", 5)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	events := obs.named("rank")
	require.Len(t, events, 2)
	assert.Equal(t, false, events[0].Fields["cache_hit"])
	assert.Equal(t, true, events[1].Fields["cache_hit"])
	assert.NotEqual(t, events[0].Fields["query_id"], events[1].Fields["query_id"])

	// Callers own the returned slice.
	second[0].ID = "mutated"
	third, err := svc.Rank(ctx, "빨래 개기", 5)
	require.NoError(t, err)
	assert.Equal(t, first[0].ID, third[0].ID)
}

func TestQuestService_RankCacheKeyIncludesLimit(t *testing.T) {
	ctx := context.Background()
	obs := &recordingObserver{}
	svc := newFixtureQuestService(t, 16, obs)

	_, err := svc.Rank(ctx, "빨래", 2)
	require.NoError(t, err)
	got, err := svc.Rank(ctx, "빨래", 4)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(got), 4)

	events := obs.named("rank")
	require.Len(t, events, 2)
	assert.Equal(t, false, events[1].Fields["cache_hit"])
}

func TestQuestService_Select(t *testing.T) {
	obs := &recordingObserver{}
	svc := newFixtureQuestService(t, 8, obs)

	sel, err := svc.Select(context.Background(), "소파에 쌓인 빨래")
	require.NoError(t, err)
	require.NotNil(t, sel.Candidate)
	assert.Equal(t, "t_sofa_laundry", sel.Candidate.ID)
	assert.Equal(t, ranking.RuleExactTitle, sel.Rule)

	events := obs.named("select")
	require.Len(t, events, 1)
	assert.Equal(t, "exact_title", events[0].Fields["rule"])
	assert.Equal(t, "t_sofa_laundry", events[0].Fields["outcome"])
	assert.NotEmpty(t, events[0].Fields["query_id"])
}

func TestQuestService_SelectNoCandidates(t *testing.T) {
	obs := &recordingObserver{}
	svc := newFixtureQuestService(t, 0, obs)

	sel, err := svc.Select(context.Background(), "xq zj vv")
	require.NoError(t, err)
	assert.Nil(t, sel.Candidate)
	assert.Equal(t, ranking.RuleNoCandidates, sel.Rule)

	events := obs.named("select")
	require.Len(t, events, 1)
	assert.Equal(t, "none", events[0].Fields["outcome"])
	assert.True(t, events[0].Success)
}

func TestQuestService_FindTemplate(t *testing.T) {
	ctx := context.Background()
	svc := newFixtureQuestService(t, 0)

	tmpl, err := svc.FindTemplate(ctx, "t_stretch")
	require.NoError(t, err)
	assert.Equal(t, "5분 스트레칭", tmpl.Title)

	_, err = svc.FindTemplate(ctx, "t_nope")
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestQuestService_Explain(t *testing.T) {
	ctx := context.Background()
	svc := newFixtureQuestService(t, 0)

	b, err := svc.Explain(ctx, "5분 스트레칭", "t_stretch")
	require.NoError(t, err)
	assert.True(t, b.IsExactTitleMatch)
	assert.True(t, b.Kept)

	_, err = svc.Explain(ctx, "5분 스트레칭", "t_nope")
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestQuestService_ProfileAndStats(t *testing.T) {
	ctx := context.Background()
	svc := newFixtureQuestService(t, 0)

	prof, err := svc.Profile(ctx, "10-20분 정도 집에서")
	require.NoError(t, err)
	require.NotNil(t, prof.PreferredMinutes)
	assert.Equal(t, 15, *prof.PreferredMinutes)

	st, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 12, st.Templates)
	assert.Equal(t, 1, st.InvalidPatterns)
}

func TestQuestService_LoadsDatasetOnce(t *testing.T) {
	ctx := context.Background()
	obs := &recordingObserver{}
	svc := newFixtureQuestService(t, 0, obs)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Rank(ctx, "스트레칭", 3)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	loads := obs.named("load-dataset")
	require.Len(t, loads, 1)
	assert.True(t, loads[0].Success)
	assert.Equal(t, 12, loads[0].Fields["templates"])
}

func TestQuestService_LoadFailureIsSticky(t *testing.T) {
	ctx := context.Background()
	src := &failingSource{}
	obs := &recordingObserver{}
	svc, err := NewQuestService(src, QuestServiceOptions{}, obs)
	require.NoError(t, err)

	_, err = svc.Rank(ctx, "빨래", 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk on fire")

	_, err = svc.Select(ctx, "빨래")
	require.Error(t, err)
	_, err = svc.Stats(ctx)
	require.Error(t, err)

	assert.Equal(t, 1, src.calls)
	loads := obs.named("load-dataset")
	require.Len(t, loads, 1)
	assert.False(t, loads[0].Success)
	ranks := obs.named("rank")
	require.Len(t, ranks, 1)
	assert.False(t, ranks[0].Success)
}

func TestQuestService_FromIndex(t *testing.T) {
	svc, err := NewQuestServiceFromIndex(testutil.LoadFixtureDataset(t), QuestServiceOptions{})
	require.NoError(t, err)

	got, err := svc.Rank(context.Background(), "여권과 티켓 확인", 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "t_trip_docs", got[0].ID)
}

func TestQuestService_NilSource(t *testing.T) {
	svc, err := NewQuestService(nil, QuestServiceOptions{})
	require.NoError(t, err)

	_, err = svc.Rank(context.Background(), "빨래", 3)
	assert.Error(t, err)
}
