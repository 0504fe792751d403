// Package ranking ranks dataset templates against a free-text quest
// description and decides whether one of them can be picked automatically.
package ranking

import (
	"math"
	"strings"

	"github.com/alexanderramin/questgen/internal/concept"
	"github.com/alexanderramin/questgen/internal/dataset"
	"github.com/alexanderramin/questgen/internal/domain"
	"github.com/alexanderramin/questgen/internal/normalize"
	"github.com/alexanderramin/questgen/internal/route"
)

// Candidate is one ranked template. Candidates are produced per query and
// carry no identity beyond the template they point at.
type Candidate struct {
	ID                string             `json:"id" yaml:"id"`
	Intent            string             `json:"intent" yaml:"intent"`
	Title             string             `json:"title" yaml:"title"`
	Persona           domain.Persona     `json:"persona" yaml:"persona"`
	Type              domain.RouteType   `json:"type" yaml:"type"`
	Domain            domain.RouteDomain `json:"domain" yaml:"domain"`
	State             domain.State       `json:"state" yaml:"state"`
	TimeContext       domain.TimeContext `json:"timeContext" yaml:"timeContext"`
	TotalScore        float64            `json:"totalScore" yaml:"totalScore"`
	Similarity        float64            `json:"similarity" yaml:"similarity"`
	RerankConfidence  float64            `json:"rerankConfidence" yaml:"rerankConfidence"`
	RouteConfidence   float64            `json:"routeConfidence" yaml:"routeConfidence"`
	Priority          int                `json:"priority" yaml:"priority"`
	Difficulty        int                `json:"difficulty" yaml:"difficulty"`
	EstimatedTimeMin  int                `json:"estimatedTimeMin" yaml:"estimatedTimeMin"`
	IsExactTitleMatch bool               `json:"isExactTitleMatch" yaml:"isExactTitleMatch"`
	ClusterKey        string             `json:"clusterKey" yaml:"clusterKey"`

	Template *domain.Template `json:"-" yaml:"-"`
}

// Engine is the constructed-once ranking service. All state is read-only
// after NewEngine, so one Engine serves concurrent queries without locks.
type Engine struct {
	idx        *dataset.Index
	templates  *TemplateIndex
	normalizer *normalize.Normalizer
	profiler   *route.Profiler
}

// NewEngine builds the template index and the lexicon-driven helpers.
func NewEngine(idx *dataset.Index) *Engine {
	profiler, _ := route.NewProfiler(&idx.Lexicon)
	return &Engine{
		idx:        idx,
		templates:  BuildTemplateIndex(idx),
		normalizer: normalize.NewNormalizer(&idx.Lexicon),
		profiler:   profiler,
	}
}

// Dataset exposes the underlying dataset index.
func (e *Engine) Dataset() *dataset.Index {
	return e.idx
}

// query is the per-request analysis shared by every template evaluation.
type query struct {
	raw           string
	normalized    string
	profile       route.Profile
	conceptScores concept.Scores
	clusterScores concept.ClusterScores
	clusterMax    float64
	vector        SparseVector
	tokens        map[string]struct{}
	exact         map[string]bool
}

// Normalize applies the lexicon normalization to input.
func (e *Engine) Normalize(input string) string {
	return e.normalizer.Normalize(input)
}

// Profile returns the route profile of input.
func (e *Engine) Profile(input string) route.Profile {
	return e.profiler.Profile(e.normalizer.Normalize(input))
}

func (e *Engine) analyze(input string) (*query, bool) {
	if strings.TrimSpace(input) == "" {
		return nil, false
	}
	normalized := e.normalizer.Normalize(input)
	if strings.TrimSpace(normalized) == "" {
		return nil, false
	}

	q := &query{
		raw:        input,
		normalized: normalized,
		profile:    e.profiler.Profile(normalized),
		vector:     BuildVector(normalized),
		tokens:     normalize.TokenSet(normalized),
		exact:      make(map[string]bool),
	}
	q.conceptScores = concept.Score(e.idx, normalized)
	q.clusterScores = concept.Aggregate(e.idx, q.conceptScores, q.profile)
	q.clusterMax = math.Max(q.clusterScores.Max(), ClusterNormalizerFloor)

	for _, s := range []string{input, normalized} {
		for _, id := range e.idx.ExactTitleMatches(s) {
			q.exact[id] = true
		}
	}
	return q, true
}

// Breakdown is every signal that went into one template's ranking.
type Breakdown struct {
	TemplateID        string  `json:"templateId" yaml:"templateId"`
	ClusterScore      float64 `json:"clusterScore" yaml:"clusterScore"`
	ClusterNormalized float64 `json:"clusterNormalized" yaml:"clusterNormalized"`
	Similarity        float64 `json:"similarity" yaml:"similarity"`
	TitleSimilarity   float64 `json:"titleSimilarity" yaml:"titleSimilarity"`
	MissionSimilarity float64 `json:"missionSimilarity" yaml:"missionSimilarity"`
	TokenOverlap      float64 `json:"tokenOverlap" yaml:"tokenOverlap"`
	ConceptSum        float64 `json:"conceptSum" yaml:"conceptSum"`
	ContextBonus      float64 `json:"contextBonus" yaml:"contextBonus"`
	ModeBonus         float64 `json:"modeBonus" yaml:"modeBonus"`
	PreferredBonus    float64 `json:"preferredBonus" yaml:"preferredBonus"`
	TemplateScore     float64 `json:"templateScore" yaml:"templateScore"`
	RouteAlignment    float64 `json:"routeAlignment" yaml:"routeAlignment"`
	RouteConfidence   float64 `json:"routeConfidence" yaml:"routeConfidence"`
	RerankConfidence  float64 `json:"rerankConfidence" yaml:"rerankConfidence"`
	SignalScore       float64 `json:"signalScore" yaml:"signalScore"`
	TotalScore        float64 `json:"totalScore" yaml:"totalScore"`
	IsExactTitleMatch bool    `json:"isExactTitleMatch" yaml:"isExactTitleMatch"`
	Kept              bool    `json:"kept" yaml:"kept"`
}

func (e *Engine) evaluate(q *query, t *IndexedTemplate) Breakdown {
	tmpl := t.Template
	b := Breakdown{
		TemplateID:        tmpl.ID,
		ClusterScore:      finite(q.clusterScores[tmpl.ClusterKey]),
		Similarity:        CosineSimilarity(q.vector, t.FullVector),
		TitleSimilarity:   CosineSimilarity(q.vector, t.TitleVector),
		MissionSimilarity: CosineSimilarity(q.vector, t.MissionVector),
		TokenOverlap:      TokenOverlapRatio(q.tokens, t.Tokens),
		IsExactTitleMatch: q.exact[tmpl.ID],
	}
	b.ClusterNormalized = finite(b.ClusterScore / q.clusterMax)

	for _, id := range tmpl.ConceptIDs {
		b.ConceptSum += q.conceptScores[id]
	}
	for _, c := range tmpl.Contexts {
		if q.profile.HasContext(c) {
			b.ContextBonus = ContextMatchBonus
			break
		}
	}
	if q.profile.QuickMode && t.EstimatedMinutes <= QuickModeMaxMinutes {
		b.ModeBonus += QuickModeBonus
	}
	if q.profile.DeepMode && t.EstimatedMinutes >= DeepModeMinMinutes {
		b.ModeBonus += DeepModeBonus
	}
	b.PreferredBonus = preferredMinutesBonus(q.profile.PreferredMinutes, t.EstimatedMinutes)
	b.TemplateScore = finite(b.ClusterScore + ConceptSumWeight*b.ConceptSum + b.ContextBonus + b.ModeBonus + b.PreferredBonus)

	b.RouteAlignment = routeAlignment(q.profile, t)

	if b.IsExactTitleMatch {
		b.RouteConfidence = 1
		b.RerankConfidence = 1
	} else {
		b.RouteConfidence = clamp01(RouteConfBase + b.RouteAlignment*RouteConfAlignment + b.ClusterNormalized*RouteConfCluster)
		b.RerankConfidence = clamp01(
			b.Similarity*RerankSimilarity +
				b.TitleSimilarity*RerankTitle +
				b.MissionSimilarity*RerankMission +
				b.TokenOverlap*RerankOverlap +
				b.ClusterNormalized*RerankCluster +
				b.RouteAlignment*RerankAlignment)
	}

	total := b.Similarity*TotalSimilarity +
		b.TitleSimilarity*TotalTitle +
		b.MissionSimilarity*TotalMission +
		b.TokenOverlap*TotalOverlap +
		b.TemplateScore*TotalTemplate +
		b.RouteConfidence*TotalRouteConf +
		b.RerankConfidence*TotalRerankConf +
		float64(t.Priority)*TotalPriority
	if b.IsExactTitleMatch {
		total += ExactTitleScoreBonus
	}
	b.TotalScore = round4(total)

	b.SignalScore = max(b.Similarity, b.TitleSimilarity, b.MissionSimilarity, b.TokenOverlap) +
		b.ClusterNormalized*SignalClusterWeight + b.RouteAlignment*SignalAlignmentWeight
	b.Kept = b.IsExactTitleMatch || keepCandidate(b)
	return b
}

func keepCandidate(b Breakdown) bool {
	if b.SignalScore < MinSignalScore {
		return false
	}
	if b.ClusterScore <= 0 && b.RerankConfidence < WeakRerankConfidence && b.RouteConfidence < WeakRouteConfidence {
		return false
	}
	return true
}

func preferredMinutesBonus(pref *int, est int) float64 {
	if pref == nil {
		return 0
	}
	diff := *pref - est
	if diff < 0 {
		diff = -diff
	}
	switch {
	case diff <= PreferredExactWindow:
		return PreferredExactBonus
	case diff <= PreferredNearWindow:
		return PreferredNearBonus
	case diff <= PreferredLooseWindow:
		return PreferredLooseBonus
	default:
		return PreferredMissPenalty
	}
}

func (e *Engine) candidate(t *IndexedTemplate, b Breakdown) Candidate {
	intent := t.Template.ClusterKey
	if t.Cluster != nil && t.Cluster.Label != "" {
		intent = t.Cluster.Label
	}
	return Candidate{
		ID:                t.Template.ID,
		Intent:            intent,
		Title:             t.Template.Title,
		Persona:           t.Persona,
		Type:              t.Type,
		Domain:            t.Domain,
		State:             t.State,
		TimeContext:       t.TimeContext,
		TotalScore:        b.TotalScore,
		Similarity:        round4(b.Similarity),
		RerankConfidence:  b.RerankConfidence,
		RouteConfidence:   b.RouteConfidence,
		Priority:          t.Priority,
		Difficulty:        t.Difficulty,
		EstimatedTimeMin:  t.EstimatedMinutes,
		IsExactTitleMatch: b.IsExactTitleMatch,
		ClusterKey:        t.Template.ClusterKey,
		Template:          t.Template,
	}
}

// Rank returns the best-matching templates for input, at most limit of them.
// A limit below 1 means DefaultRankLimit. Blank input ranks nothing.
func (e *Engine) Rank(input string, limit int) []Candidate {
	if limit < 1 {
		limit = DefaultRankLimit
	}
	all := e.rankAll(input)
	if len(all) > limit {
		all = all[:limit]
	}
	return all
}

func (e *Engine) rankAll(input string) []Candidate {
	q, ok := e.analyze(input)
	if !ok {
		return []Candidate{}
	}
	out := make([]Candidate, 0, len(e.templates.Entries))
	for _, t := range e.templates.Entries {
		b := e.evaluate(q, t)
		if !b.Kept {
			continue
		}
		out = append(out, e.candidate(t, b))
	}
	SortCandidates(out)
	return out
}

// Explain returns the full signal breakdown for one template, whether or not
// it survived filtering. ok is false for an unknown id or blank input.
func (e *Engine) Explain(input, templateID string) (Breakdown, bool) {
	q, ok := e.analyze(input)
	if !ok {
		return Breakdown{}, false
	}
	for _, t := range e.templates.Entries {
		if t.Template.ID == templateID {
			return e.evaluate(q, t), true
		}
	}
	return Breakdown{}, false
}

// FindTemplate looks a template up by id.
func (e *Engine) FindTemplate(id string) (*domain.Template, bool) {
	t, ok := e.idx.TemplateByID[id]
	return t, ok
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

func round4(v float64) float64 {
	return math.Round(finite(v)*10000) / 10000
}
