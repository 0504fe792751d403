package ranking

import (
	"github.com/alexanderramin/questgen/internal/domain"
	"github.com/alexanderramin/questgen/internal/route"
)

var routinePersonas = map[domain.Persona]bool{
	domain.PersonaWorker:       true,
	domain.PersonaOfficeWorker: true,
	domain.PersonaDeveloper:    true,
	domain.PersonaWriter:       true,
}

var nonRoutinePersonas = map[domain.Persona]bool{
	domain.PersonaTravel:        true,
	domain.PersonaEntertainment: true,
	domain.PersonaExercise:      true,
}

// PersonasCompatible reports whether two distinct personas are close enough
// to earn partial persona credit.
func PersonasCompatible(a, b domain.Persona) bool {
	if a == b {
		return false
	}
	switch {
	case routinePersonas[a] && routinePersonas[b]:
		return true
	case nonRoutinePersonas[a] && nonRoutinePersonas[b]:
		return true
	}
	pair := func(x, y domain.Persona) bool {
		return (a == x && b == y) || (a == y && b == x)
	}
	return pair(domain.PersonaStudent, domain.PersonaWriter) ||
		pair(domain.PersonaHomemaker, domain.PersonaWorker)
}

var timeNeighborGroups = [][]domain.TimeContext{
	{domain.TimeMorning, domain.TimeCommute, domain.TimeWorkAM},
	{domain.TimeWorkAM, domain.TimeLunch, domain.TimeWorkPM},
	{domain.TimeWorkPM, domain.TimeEvening, domain.TimeNight},
	{domain.TimeWeekendAM, domain.TimeWeekendPM, domain.TimeWeekendNight},
	{domain.TimePreEvent, domain.TimeWeekendPM, domain.TimePostEvent},
}

// TimeContextsNeighbor reports whether two distinct time contexts share an
// adjacency group.
func TimeContextsNeighbor(a, b domain.TimeContext) bool {
	if a == b {
		return false
	}
	for _, g := range timeNeighborGroups {
		var hasA, hasB bool
		for _, tc := range g {
			hasA = hasA || tc == a
			hasB = hasB || tc == b
		}
		if hasA && hasB {
			return true
		}
	}
	return false
}

// routeAlignment scores how well a template's route attributes agree with
// the query profile, in [0,1]. Only axes the query expressed through a rule
// earn credit; a defaulted axis says nothing about the user.
func routeAlignment(p route.Profile, e *IndexedTemplate) float64 {
	var a float64

	if p.ExplicitDomain && p.Domain == e.Domain {
		a += AlignDomain
	}

	if p.ExplicitPersona || p.ExplicitDomain {
		switch {
		case p.Persona == e.Persona:
			a += AlignPersonaExact
		case PersonasCompatible(p.Persona, e.Persona):
			a += AlignPersonaCompatible
		}
	}

	if (p.ExplicitType || p.ExplicitDomain || p.ExplicitPersona) && p.Type == e.Type {
		a += AlignType
	}

	if p.ExplicitTime {
		switch {
		case p.TimeContext == e.TimeContext:
			a += AlignTimeExact
		case TimeContextsNeighbor(p.TimeContext, e.TimeContext):
			a += AlignTimeNeighbor
		}
	}

	if p.ExplicitState && p.State == e.State {
		a += AlignState
	}

	if p.ExplicitState && p.State == domain.StateAvoidanceRefusal &&
		e.Difficulty <= SafeDefaultMaxDiff && e.EstimatedMinutes <= SafeDefaultMaxMinutes {
		a += AlignAvoidanceEasy
	}

	return clamp01(a)
}
