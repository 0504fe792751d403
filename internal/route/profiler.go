// Package route classifies a normalized query into a route profile: the
// domain, persona, activity type, state and time-of-day it most likely
// belongs to, plus any explicit time preference.
package route

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/alexanderramin/questgen/internal/domain"
)

// MinMissionMinutes is the shortest mission the dataset authors; extracted
// minute preferences never go below it.
const MinMissionMinutes = 2

// Attributes is the rule-table classification of a piece of text. The
// Explicit* flags distinguish a rule hit from a default.
type Attributes struct {
	Domain      domain.RouteDomain
	Persona     domain.Persona
	Type        domain.RouteType
	State       domain.State
	TimeContext domain.TimeContext

	ExplicitDomain  bool
	ExplicitPersona bool
	ExplicitType    bool
	ExplicitState   bool
	ExplicitTime    bool
}

// Classify runs every axis table over text.
func Classify(text string) Attributes {
	var a Attributes

	if label, ok := stateTable.match(text); ok {
		a.State, a.ExplicitState = domain.State(label), true
	} else {
		a.State = domain.StateInProgress
	}

	if label, ok := timeTable.match(text); ok {
		a.TimeContext, a.ExplicitTime = domain.TimeContext(label), true
	} else {
		a.TimeContext = domain.TimeWorkPM
	}

	if label, ok := domainTable.match(text); ok {
		a.Domain, a.ExplicitDomain = domain.RouteDomain(label), true
	} else {
		a.Domain = domain.DomainProductivityGrowth
	}

	if label, ok := personaTable.match(text); ok {
		a.Persona, a.ExplicitPersona = domain.Persona(label), true
	} else {
		a.Persona = DefaultPersona(a.Domain)
	}

	_, leisure := leisureTable.match(text)
	switch {
	case a.Domain == domain.DomainNonRoutine,
		a.Persona == domain.PersonaTravel,
		a.Persona == domain.PersonaEntertainment,
		leisure:
		a.Type = domain.TypeNonRoutine
	default:
		a.Type = domain.TypeRoutine
	}
	a.ExplicitType = leisure

	return a
}

// explicitAxes counts the axes decided by a rule rather than a default.
func (a Attributes) explicitAxes() int {
	n := 0
	for _, b := range []bool{a.ExplicitState, a.ExplicitTime, a.ExplicitDomain, a.ExplicitPersona, a.ExplicitType} {
		if b {
			n++
		}
	}
	return n
}

// Profile is the route classification of one query.
type Profile struct {
	Attributes
	PreferredMinutes *int
	QuickMode        bool
	DeepMode         bool
	// Contexts are the lexicon context-hint categories found in the query.
	Contexts    []string
	SignalCount int
}

// Profiler holds the lexicon-driven parts of route inference. Safe for
// concurrent use after construction.
type Profiler struct {
	rangePatterns []*regexp.Regexp
	minsPatterns  []*regexp.Regexp
	quickTokens   []string
	deepTokens    []string
	contextHints  []contextHint
}

type contextHint struct {
	category string
	keywords []string
}

// NewProfiler compiles the lexicon time hints. Patterns that fail to compile
// are skipped; the returned count reports how many were dropped.
func NewProfiler(lex *domain.Lexicon) (*Profiler, int) {
	p := &Profiler{}
	if lex == nil {
		return p, 0
	}
	invalid := 0
	compile := func(patterns []string) []*regexp.Regexp {
		var out []*regexp.Regexp
		for _, src := range patterns {
			re, err := regexp.Compile("(?i)" + src)
			if err != nil {
				invalid++
				continue
			}
			out = append(out, re)
		}
		return out
	}
	p.rangePatterns = compile(lex.TimeHints.RangePatterns)
	p.minsPatterns = compile(lex.TimeHints.MinsPatterns)
	p.quickTokens = lowerAll(append(append([]string{}, lex.TimeHints.QuickTokens...), lex.TimeHints.NowTokens...))
	p.deepTokens = lowerAll(lex.TimeHints.DeepTokens)

	categories := make([]string, 0, len(lex.ContextHints))
	for c := range lex.ContextHints {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	for _, c := range categories {
		p.contextHints = append(p.contextHints, contextHint{category: c, keywords: lowerAll(lex.ContextHints[c])})
	}
	return p, invalid
}

// Profile classifies an already-normalized query.
func (p *Profiler) Profile(input string) Profile {
	prof := Profile{Attributes: Classify(input)}
	lower := strings.ToLower(input)

	prof.PreferredMinutes = p.preferredMinutes(lower)
	prof.QuickMode = containsAny(lower, p.quickTokens)
	prof.DeepMode = containsAny(lower, p.deepTokens)
	for _, h := range p.contextHints {
		if containsAny(lower, h.keywords) {
			prof.Contexts = append(prof.Contexts, h.category)
		}
	}

	prof.SignalCount = prof.explicitAxes()
	if prof.QuickMode {
		prof.SignalCount++
	}
	if prof.DeepMode {
		prof.SignalCount++
	}
	if prof.PreferredMinutes != nil {
		prof.SignalCount++
	}
	return prof
}

// HasContext reports whether the query mentioned context category c.
func (p Profile) HasContext(c string) bool {
	for _, have := range p.Contexts {
		if have == c {
			return true
		}
	}
	return false
}

// preferredMinutes tries range patterns (midpoint) before single-value
// patterns. Each pattern's first one or two capture groups carry the numbers.
func (p *Profiler) preferredMinutes(s string) *int {
	for _, re := range p.rangePatterns {
		m := re.FindStringSubmatch(s)
		if len(m) < 3 {
			continue
		}
		lo, err1 := strconv.Atoi(m[1])
		hi, err2 := strconv.Atoi(m[2])
		if err1 != nil || err2 != nil {
			continue
		}
		v := clampMinutes((lo + hi) / 2)
		return &v
	}
	for _, re := range p.minsPatterns {
		m := re.FindStringSubmatch(s)
		if len(m) < 2 {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		v := clampMinutes(n)
		return &v
	}
	return nil
}

func clampMinutes(n int) int {
	if n < MinMissionMinutes {
		return MinMissionMinutes
	}
	return n
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if n != "" && strings.Contains(s, n) {
			return true
		}
	}
	return false
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// DefaultPersona is the persona assumed for d when no persona rule matches.
func DefaultPersona(d domain.RouteDomain) domain.Persona {
	if p, ok := defaultPersonaByDomain[d]; ok {
		return p
	}
	return domain.PersonaWorker
}
