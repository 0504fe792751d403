package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru"

	"github.com/alexanderramin/questgen/internal/dataset"
	"github.com/alexanderramin/questgen/internal/domain"
	"github.com/alexanderramin/questgen/internal/ranking"
	"github.com/alexanderramin/questgen/internal/route"
)

// ErrTemplateNotFound is returned when a template id is not in the dataset.
var ErrTemplateNotFound = errors.New("template not found")

// QuestServiceOptions tunes a QuestService. The zero value disables the
// rank cache and logging.
type QuestServiceOptions struct {
	CacheSize int
	Logger    *slog.Logger
}

type questService struct {
	src      dataset.Source
	logger   *slog.Logger
	observer UseCaseObserver
	cache    *lru.Cache

	once    sync.Once
	engine  *ranking.Engine
	initErr error
}

// NewQuestService returns a service backed by src. The dataset is loaded on
// first use and the result, success or failure, is kept for the lifetime of
// the service.
func NewQuestService(src dataset.Source, opts QuestServiceOptions, observers ...UseCaseObserver) (QuestService, error) {
	s := &questService{
		src:      src,
		logger:   opts.Logger,
		observer: useCaseObserverOrNoop(observers),
	}
	if opts.CacheSize > 0 {
		cache, err := lru.New(opts.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("creating rank cache: %w", err)
		}
		s.cache = cache
	}
	return s, nil
}

// NewQuestServiceFromIndex wraps an already-built dataset index.
func NewQuestServiceFromIndex(idx *dataset.Index, opts QuestServiceOptions, observers ...UseCaseObserver) (QuestService, error) {
	svc, err := NewQuestService(nil, opts, observers...)
	if err != nil {
		return nil, err
	}
	s := svc.(*questService)
	s.once.Do(func() { s.engine = ranking.NewEngine(idx) })
	return s, nil
}

func (s *questService) getEngine(ctx context.Context) (*ranking.Engine, error) {
	s.once.Do(func() {
		if s.src == nil {
			s.initErr = errors.New("no dataset source configured")
			return
		}
		startedAt := time.Now().UTC()
		var idx *dataset.Index
		idx, s.initErr = dataset.Load(ctx, s.src, s.logger)
		fields := map[string]any{}
		if s.initErr == nil {
			s.engine = ranking.NewEngine(idx)
			st := idx.Stats()
			fields["templates"] = st.Templates
			fields["invalid_patterns"] = st.InvalidPatterns
		}
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "load-dataset",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   s.initErr == nil,
			Err:       s.initErr,
			Fields:    fields,
		})
	})
	return s.engine, s.initErr
}

func (s *questService) Rank(ctx context.Context, input string, limit int) (candidates []ranking.Candidate, err error) {
	if limit < 1 {
		limit = ranking.DefaultRankLimit
	}
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"query_id": uuid.NewString(),
		"limit":    limit,
	}
	defer func() {
		fields["candidates"] = len(candidates)
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "rank",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	var engine *ranking.Engine
	engine, err = s.getEngine(ctx)
	if err != nil {
		return nil, err
	}
	var hit bool
	candidates, hit = s.rank(engine, input, limit)
	if s.cache != nil {
		fields["cache_hit"] = hit
	}
	return candidates, nil
}

// rank consults the cache before the engine. Returned slices are copies so
// callers may reorder them freely.
func (s *questService) rank(engine *ranking.Engine, input string, limit int) ([]ranking.Candidate, bool) {
	if s.cache == nil {
		return engine.Rank(input, limit), false
	}
	key := strings.TrimSpace(input) + "\x00" + strconv.Itoa(limit)
	if v, ok := s.cache.Get(key); ok {
		return cloneCandidates(v.([]ranking.Candidate)), true
	}
	out := engine.Rank(input, limit)
	s.cache.Add(key, cloneCandidates(out))
	return out, false
}

func cloneCandidates(in []ranking.Candidate) []ranking.Candidate {
	out := make([]ranking.Candidate, len(in))
	copy(out, in)
	return out
}

func (s *questService) Select(ctx context.Context, input string) (sel ranking.Selection, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"query_id": uuid.NewString(),
	}
	defer func() {
		fields["candidates"] = len(sel.Pool)
		fields["rule"] = string(sel.Rule)
		outcome := "none"
		if sel.Candidate != nil {
			outcome = sel.Candidate.ID
		}
		fields["outcome"] = outcome
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "select",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	var engine *ranking.Engine
	engine, err = s.getEngine(ctx)
	if err != nil {
		return ranking.Selection{}, err
	}
	pool, hit := s.rank(engine, input, ranking.SelectPoolSize)
	if s.cache != nil {
		fields["cache_hit"] = hit
	}
	sel = ranking.SelectCandidate(pool)
	return sel, nil
}

func (s *questService) FindTemplate(ctx context.Context, id string) (t *domain.Template, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "find-template",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"template_id": id},
		})
	}()

	var engine *ranking.Engine
	engine, err = s.getEngine(ctx)
	if err != nil {
		return nil, err
	}
	t, ok := engine.FindTemplate(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, id)
	}
	return t, nil
}

func (s *questService) Profile(ctx context.Context, input string) (route.Profile, error) {
	engine, err := s.getEngine(ctx)
	if err != nil {
		return route.Profile{}, err
	}
	return engine.Profile(input), nil
}

func (s *questService) Explain(ctx context.Context, input, templateID string) (*ranking.Breakdown, error) {
	engine, err := s.getEngine(ctx)
	if err != nil {
		return nil, err
	}
	b, ok := engine.Explain(input, templateID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, templateID)
	}
	return &b, nil
}

func (s *questService) Stats(ctx context.Context) (dataset.Stats, error) {
	engine, err := s.getEngine(ctx)
	if err != nil {
		return dataset.Stats{}, err
	}
	return engine.Dataset().Stats(), nil
}
