package ranking

// Tuned ranking weights. They are pinned by regression tests; change them
// only together with the expectations.
const (
	// templateScore components
	ConceptSumWeight       = 0.7
	ContextMatchBonus      = 2.0
	QuickModeBonus         = 2.4
	QuickModeMaxMinutes    = 10
	DeepModeBonus          = 1.8
	DeepModeMinMinutes     = 20
	PreferredExactBonus    = 2.8
	PreferredExactWindow   = 2
	PreferredNearBonus     = 1.6
	PreferredNearWindow    = 5
	PreferredLooseBonus    = 0.8
	PreferredLooseWindow   = 8
	PreferredMissPenalty   = -0.8
	ExactTitleScoreBonus   = 10000.0
	SafeDefaultMaxMinutes  = 10
	SafeDefaultMaxDiff     = 1
	ClusterNormalizerFloor = 1.0

	// routeAlignment components
	AlignDomain            = 0.35
	AlignPersonaExact      = 0.2
	AlignPersonaCompatible = 0.1
	AlignType              = 0.1
	AlignTimeExact         = 0.2
	AlignTimeNeighbor      = 0.1
	AlignState             = 0.15
	AlignAvoidanceEasy     = 0.2

	// routeConfidence
	RouteConfBase      = 0.05
	RouteConfAlignment = 0.62
	RouteConfCluster   = 0.33

	// rerankConfidence
	RerankSimilarity = 0.68
	RerankTitle      = 0.58
	RerankMission    = 0.4
	RerankOverlap    = 0.3
	RerankCluster    = 0.34
	RerankAlignment  = 0.52

	// totalScore
	TotalSimilarity = 125.0
	TotalTitle      = 88.0
	TotalMission    = 52.0
	TotalOverlap    = 28.0
	TotalTemplate   = 6.0
	TotalRouteConf  = 44.0
	TotalRerankConf = 38.0
	TotalPriority   = 3.0

	// filtering
	MinSignalScore        = 0.08
	SignalClusterWeight   = 0.4
	SignalAlignmentWeight = 0.4
	WeakRerankConfidence  = 0.28
	WeakRouteConfidence   = 0.24
)

// Selection gates.
const (
	DefaultRankLimit = 5
	SelectPoolSize   = 12

	SelectRerankStrong     = 0.76
	SelectRerankGap        = 0.06
	SelectRouteStrong      = 0.58
	SelectRouteMinRerank   = 0.34
	SelectSafeMinRoute     = 0.34
	SelectFallbackRerank   = 0.44
	SelectFallbackRouteMin = 0.62
)
