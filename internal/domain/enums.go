package domain

type RouteDomain string

const (
	DomainRecoveryHealth     RouteDomain = "recovery_health"
	DomainProductivityGrowth RouteDomain = "productivity_growth"
	DomainLifeOps            RouteDomain = "life_ops"
	DomainNonRoutine         RouteDomain = "non_routine"
)

type Persona string

const (
	PersonaStudent       Persona = "student"
	PersonaDeveloper     Persona = "developer"
	PersonaWriter        Persona = "writer"
	PersonaHomemaker     Persona = "homemaker"
	PersonaOfficeWorker  Persona = "office_worker"
	PersonaEntertainment Persona = "entertainment"
	PersonaTravel        Persona = "travel"
	PersonaExercise      Persona = "exercise"
	PersonaWorker        Persona = "worker"
)

type RouteType string

const (
	TypeRoutine    RouteType = "routine"
	TypeNonRoutine RouteType = "non_routine"
)

type State string

const (
	StateAvoidanceRefusal State = "avoidance_refusal"
	StateStartDelay       State = "start_delay"
	StateBlocked          State = "blocked"
	StateFatigued         State = "fatigued"
	StateCompletionPush   State = "completion_push"
	StateResetNeeded      State = "reset_needed"
	StateInProgress       State = "in_progress"
)

type TimeContext string

const (
	TimeCommute      TimeContext = "commute"
	TimeMorning      TimeContext = "morning"
	TimeWorkAM       TimeContext = "work_am"
	TimeLunch        TimeContext = "lunch"
	TimeWorkPM       TimeContext = "work_pm"
	TimeEvening      TimeContext = "evening"
	TimeNight        TimeContext = "night"
	TimeWeekendAM    TimeContext = "weekend_am"
	TimeWeekendPM    TimeContext = "weekend_pm"
	TimeWeekendNight TimeContext = "weekend_night"
	TimePreEvent     TimeContext = "pre_event"
	TimePostEvent    TimeContext = "post_event"
)

// ValidStates is the canonical set of accepted state strings.
var ValidStates = map[string]bool{
	"avoidance_refusal": true, "start_delay": true, "blocked": true, "fatigued": true,
	"completion_push": true, "reset_needed": true, "in_progress": true,
}

// ValidTimeContexts is the canonical set of accepted time-context strings.
var ValidTimeContexts = map[string]bool{
	"commute": true, "morning": true, "work_am": true, "lunch": true, "work_pm": true,
	"evening": true, "night": true, "weekend_am": true, "weekend_pm": true,
	"weekend_night": true, "pre_event": true, "post_event": true,
}

// ValidDomains is the canonical set of accepted route-domain strings.
var ValidDomains = map[string]bool{
	"recovery_health": true, "productivity_growth": true, "life_ops": true, "non_routine": true,
}

// ValidRouteTypes is the canonical set of accepted template type strings.
var ValidRouteTypes = map[string]bool{
	"routine": true, "non_routine": true,
}
