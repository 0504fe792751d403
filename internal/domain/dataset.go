package domain

// Concept is a leaf semantic unit such as "정리" or "수면".
type Concept struct {
	ID          string   `json:"id" validate:"required"`
	Type        string   `json:"type" validate:"required"`
	Domain      string   `json:"domain" validate:"required"`
	Priority    int      `json:"priority"`
	Label       string   `json:"label" validate:"required"`
	Description string   `json:"description,omitempty"`
	ParentID    *string  `json:"parentId,omitempty"`
	Tags        []string `json:"tags"`
}

// VariantAxes lists the variant dimensions a cluster's templates vary along.
type VariantAxes struct {
	Intensity []string `json:"intensity,omitempty"`
	Context   []string `json:"context,omitempty"`
	GoalFocus []string `json:"goalFocus,omitempty"`
	StateMode []string `json:"stateMode,omitempty"`
}

// Cluster groups templates that share a theme.
type Cluster struct {
	Key              string       `json:"key" validate:"required"`
	Domain           string       `json:"domain" validate:"required"`
	PrimaryType      string       `json:"primaryType" validate:"required"`
	Label            string       `json:"label" validate:"required"`
	ConceptIDs       []string     `json:"conceptIds"`
	DefaultTimeBands []string     `json:"defaultTimeBands,omitempty"`
	VariantAxes      *VariantAxes `json:"variantAxes,omitempty"`
}

// ConceptClusterMapEntry fans a concept out to clusters. Order encodes rank.
type ConceptClusterMapEntry struct {
	ConceptID   string   `json:"conceptId" validate:"required"`
	ClusterKeys []string `json:"clusterKeys" validate:"required,min=1"`
}

type TimeRange struct {
	Min     int `json:"min" validate:"gte=0"`
	Max     int `json:"max" validate:"gtefield=Min"`
	Default int `json:"default" validate:"gte=0"`
}

type Mission struct {
	Action     string `json:"action" validate:"required"`
	EstMinutes int    `json:"estMinutes" validate:"gte=0"`
}

type TemplateMeta struct {
	Intensity      string `json:"intensity,omitempty"`
	GoalFocus      string `json:"goalFocus,omitempty"`
	ContextVariant string `json:"contextVariant,omitempty"`
	StateMode      string `json:"stateMode,omitempty"`
}

// Template is a concrete suggested activity broken into timed missions.
type Template struct {
	ID         string        `json:"id" validate:"required"`
	ClusterKey string        `json:"clusterKey" validate:"required"`
	Type       string        `json:"type" validate:"required"`
	Title      string        `json:"title" validate:"required"`
	ConceptIDs []string      `json:"conceptIds"`
	Contexts   []string      `json:"contexts"`
	StateIDs   []string      `json:"stateIds"`
	Time       TimeRange     `json:"time"`
	Missions   []Mission     `json:"missions" validate:"required,min=1,dive"`
	Meta       *TemplateMeta `json:"meta,omitempty"`
}

// EstimatedMinutes is the template's default duration.
func (t *Template) EstimatedMinutes() int {
	return t.Time.Default
}

// Difficulty maps meta.intensity onto 1..3. Templates without an intensity
// are graded by their default duration.
func (t *Template) Difficulty() int {
	if t.Meta != nil {
		switch t.Meta.Intensity {
		case "low", "light", "easy":
			return 1
		case "medium", "normal", "moderate":
			return 2
		case "high", "hard", "intense":
			return 3
		}
	}
	est := t.EstimatedMinutes()
	switch {
	case est <= 10:
		return 1
	case est <= 25:
		return 2
	default:
		return 3
	}
}

// LexiconNormalization toggles the InputNormalizer steps.
type LexiconNormalization struct {
	Lowercase      bool `json:"lowercase"`
	RemoveFillers  bool `json:"removeFillers"`
	CollapseSpaces bool `json:"collapseSpaces"`
}

type TimeHints struct {
	MinsPatterns  []string `json:"minsPatterns"`
	RangePatterns []string `json:"rangePatterns"`
	QuickTokens   []string `json:"quickTokens"`
	DeepTokens    []string `json:"deepTokens"`
	NowTokens     []string `json:"nowTokens"`
}

// Lexeme holds the matching rules for one concept.
type Lexeme struct {
	Keywords         []string `json:"keywords"`
	Variants         []string `json:"variants"`
	Patterns         []string `json:"patterns"`
	NegativePatterns []string `json:"negativePatterns"`
}

// Lexicon drives normalization, route hints and concept matching.
type Lexicon struct {
	Normalization  LexiconNormalization `json:"normalization"`
	Fillers        []string             `json:"fillers"`
	Typos          map[string]string    `json:"typos"`
	TimeHints      TimeHints            `json:"timeHints"`
	ContextHints   map[string][]string  `json:"contextHints"`
	StateHints     map[string][]string  `json:"stateHints"`
	Lexemes        map[string]Lexeme    `json:"lexemes"`
	ConceptAliases map[string][]string  `json:"conceptAliases"`
}
