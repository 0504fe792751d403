package cli

import (
	"github.com/alexanderramin/questgen/internal/domain"
	"github.com/alexanderramin/questgen/internal/ranking"
	"github.com/alexanderramin/questgen/internal/route"
)

// Structured (json/yaml) shapes of command results.

type rankedItem struct {
	ranking.Candidate `yaml:",inline"`
	Breakdown         *ranking.Breakdown `json:"breakdown,omitempty" yaml:"breakdown,omitempty"`
}

type rankView struct {
	Query      string       `json:"query" yaml:"query"`
	Candidates []rankedItem `json:"candidates" yaml:"candidates"`
}

type selectionView struct {
	Query     string              `json:"query" yaml:"query"`
	Rule      string              `json:"rule" yaml:"rule"`
	Candidate *ranking.Candidate  `json:"candidate" yaml:"candidate"`
	Pool      []ranking.Candidate `json:"pool" yaml:"pool"`
}

func newSelectionView(query string, sel ranking.Selection) selectionView {
	pool := sel.Pool
	if pool == nil {
		pool = []ranking.Candidate{}
	}
	return selectionView{Query: query, Rule: string(sel.Rule), Candidate: sel.Candidate, Pool: pool}
}

type missionView struct {
	Action     string `json:"action" yaml:"action"`
	EstMinutes int    `json:"estMinutes" yaml:"estMinutes"`
}

type templateView struct {
	ID               string        `json:"id" yaml:"id"`
	Title            string        `json:"title" yaml:"title"`
	ClusterKey       string        `json:"clusterKey" yaml:"clusterKey"`
	Type             string        `json:"type" yaml:"type"`
	EstimatedMinutes int           `json:"estimatedMinutes" yaml:"estimatedMinutes"`
	Difficulty       int           `json:"difficulty" yaml:"difficulty"`
	Contexts         []string      `json:"contexts" yaml:"contexts"`
	ConceptIDs       []string      `json:"conceptIds" yaml:"conceptIds"`
	Missions         []missionView `json:"missions" yaml:"missions"`
}

func newTemplateView(t *domain.Template) templateView {
	v := templateView{
		ID:               t.ID,
		Title:            t.Title,
		ClusterKey:       t.ClusterKey,
		Type:             t.Type,
		EstimatedMinutes: t.EstimatedMinutes(),
		Difficulty:       t.Difficulty(),
		Contexts:         t.Contexts,
		ConceptIDs:       t.ConceptIDs,
	}
	for _, m := range t.Missions {
		v.Missions = append(v.Missions, missionView{Action: m.Action, EstMinutes: m.EstMinutes})
	}
	return v
}

type profileView struct {
	Query            string   `json:"query" yaml:"query"`
	Domain           string   `json:"domain" yaml:"domain"`
	Persona          string   `json:"persona" yaml:"persona"`
	Type             string   `json:"type" yaml:"type"`
	State            string   `json:"state" yaml:"state"`
	TimeContext      string   `json:"timeContext" yaml:"timeContext"`
	Explicit         []string `json:"explicit" yaml:"explicit"`
	PreferredMinutes *int     `json:"preferredMinutes" yaml:"preferredMinutes"`
	QuickMode        bool     `json:"quickMode" yaml:"quickMode"`
	DeepMode         bool     `json:"deepMode" yaml:"deepMode"`
	Contexts         []string `json:"contexts" yaml:"contexts"`
	SignalCount      int      `json:"signalCount" yaml:"signalCount"`
}

func newProfileView(query string, p route.Profile) profileView {
	explicit := []string{}
	for _, axis := range []struct {
		name string
		set  bool
	}{
		{"domain", p.ExplicitDomain},
		{"persona", p.ExplicitPersona},
		{"type", p.ExplicitType},
		{"state", p.ExplicitState},
		{"time", p.ExplicitTime},
	} {
		if axis.set {
			explicit = append(explicit, axis.name)
		}
	}
	contexts := p.Contexts
	if contexts == nil {
		contexts = []string{}
	}
	return profileView{
		Query:            query,
		Domain:           string(p.Domain),
		Persona:          string(p.Persona),
		Type:             string(p.Type),
		State:            string(p.State),
		TimeContext:      string(p.TimeContext),
		Explicit:         explicit,
		PreferredMinutes: p.PreferredMinutes,
		QuickMode:        p.QuickMode,
		DeepMode:         p.DeepMode,
		Contexts:         contexts,
		SignalCount:      p.SignalCount,
	}
}
