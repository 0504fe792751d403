package ranking

import (
	"strings"

	"github.com/alexanderramin/questgen/internal/dataset"
	"github.com/alexanderramin/questgen/internal/domain"
	"github.com/alexanderramin/questgen/internal/normalize"
	"github.com/alexanderramin/questgen/internal/route"
)

// IndexedTemplate is a template with its precomputed search features and
// resolved route attributes.
type IndexedTemplate struct {
	Template *domain.Template
	Cluster  *domain.Cluster

	SearchText    string
	FullVector    SparseVector
	TitleVector   SparseVector
	MissionVector SparseVector
	Tokens        map[string]struct{}

	Domain      domain.RouteDomain
	Persona     domain.Persona
	Type        domain.RouteType
	State       domain.State
	TimeContext domain.TimeContext

	Priority         int
	Difficulty       int
	EstimatedMinutes int
}

// TemplateIndex holds one IndexedTemplate per dataset template, in dataset
// order. Immutable after BuildTemplateIndex.
type TemplateIndex struct {
	Entries []*IndexedTemplate
}

// BuildTemplateIndex precomputes vectors, token sets and route attributes.
func BuildTemplateIndex(idx *dataset.Index) *TemplateIndex {
	ti := &TemplateIndex{Entries: make([]*IndexedTemplate, 0, len(idx.Templates))}
	for _, t := range idx.Templates {
		ti.Entries = append(ti.Entries, indexTemplate(idx, t))
	}
	return ti
}

func indexTemplate(idx *dataset.Index, t *domain.Template) *IndexedTemplate {
	cl := idx.ClusterByKey[t.ClusterKey]

	parts := []string{t.Title, t.ClusterKey}
	parts = append(parts, t.Contexts...)
	parts = append(parts, t.StateIDs...)
	if t.Meta != nil {
		parts = append(parts, t.Meta.GoalFocus, t.Meta.StateMode)
	}
	actions := make([]string, 0, len(t.Missions))
	for _, m := range t.Missions {
		actions = append(actions, m.Action)
	}
	parts = append(parts, actions...)

	priority := 0
	for _, id := range t.ConceptIDs {
		c := idx.ConceptByID[id]
		if c == nil {
			continue
		}
		parts = append(parts, c.Label, c.Description)
		parts = append(parts, c.Tags...)
		if c.Priority > priority {
			priority = c.Priority
		}
	}

	search := normalize.SearchText(parts...)
	missionText := normalize.SearchText(actions...)

	entry := &IndexedTemplate{
		Template:         t,
		Cluster:          cl,
		SearchText:       search,
		FullVector:       BuildVector(search),
		TitleVector:      BuildVector(normalize.TitleKey(t.Title)),
		MissionVector:    BuildVector(missionText),
		Tokens:           normalize.TokenSet(search),
		Type:             domain.RouteType(t.Type),
		Priority:         priority,
		Difficulty:       t.Difficulty(),
		EstimatedMinutes: t.EstimatedMinutes(),
	}
	resolveRoute(entry, t, cl, search)
	return entry
}

// resolveRoute fills the template's route attributes, preferring authored
// data (cluster domain, meta.stateMode, time-band contexts) over rule-table
// classification of the search text.
func resolveRoute(e *IndexedTemplate, t *domain.Template, cl *domain.Cluster, search string) {
	attrs := route.Classify(search)

	e.Domain = attrs.Domain
	if cl != nil && domain.ValidDomains[cl.Domain] {
		e.Domain = domain.RouteDomain(cl.Domain)
	}

	e.Persona = attrs.Persona
	if !attrs.ExplicitPersona {
		e.Persona = route.DefaultPersona(e.Domain)
	}

	e.State = attrs.State
	switch {
	case t.Meta != nil && domain.ValidStates[t.Meta.StateMode]:
		e.State = domain.State(t.Meta.StateMode)
	default:
		for _, id := range t.StateIDs {
			if s := strings.TrimPrefix(id, "state_"); domain.ValidStates[s] {
				e.State = domain.State(s)
				break
			}
		}
	}

	e.TimeContext = attrs.TimeContext
	if tc, ok := firstTimeContext(t.Contexts); ok {
		e.TimeContext = tc
	} else if cl != nil {
		if tc, ok := firstTimeContext(cl.DefaultTimeBands); ok {
			e.TimeContext = tc
		}
	}
}

func firstTimeContext(values []string) (domain.TimeContext, bool) {
	for _, v := range values {
		if domain.ValidTimeContexts[v] {
			return domain.TimeContext(v), true
		}
	}
	return "", false
}
