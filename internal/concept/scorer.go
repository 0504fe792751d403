// Package concept scores dataset concepts against a query and projects those
// scores onto clusters.
package concept

import (
	"math"
	"strings"

	"github.com/alexanderramin/questgen/internal/dataset"
	"github.com/alexanderramin/questgen/internal/normalize"
)

// Rule weights for concept matching.
const (
	KeywordWeight         = 3.0
	VariantWeight         = 2.0
	PatternWeight         = 4.0
	NegativePatternWeight = -4.0
	LabelWeight           = 2.0
	TagWeight             = 1.2
	AliasWeight           = 1.2
	StateHintWeight       = 2.0
	TagOverlapWeight      = 0.75
)

// Scores maps concept id to a positive relevance score.
type Scores map[string]float64

// Score evaluates every concept against an already-normalized input.
func Score(idx *dataset.Index, input string) Scores {
	lower := strings.ToLower(input)
	tokens := normalize.Tokenize(lower)
	scores := make(Scores)
	if strings.TrimSpace(lower) == "" {
		return scores
	}

	for _, c := range idx.Concepts {
		var score float64

		if lx := idx.LexemeByConcept[c.ID]; lx != nil {
			score += KeywordWeight * float64(countContained(lower, lx.Keywords))
			score += VariantWeight * float64(countContained(lower, lx.Variants))
			for _, re := range lx.Patterns {
				if re.MatchString(lower) {
					score += PatternWeight
				}
			}
			for _, re := range lx.NegativePatterns {
				if re.MatchString(lower) {
					score += NegativePatternWeight
				}
			}
			if label := strings.ToLower(strings.TrimSpace(c.Label)); label != "" && strings.Contains(lower, label) {
				score += LabelWeight
			}
			score += TagWeight * float64(countContained(lower, lowered(c.Tags)))
			score += AliasWeight * float64(countContained(lower, lowered(idx.Lexicon.ConceptAliases[c.ID])))
		}

		if countContained(lower, lowered(idx.Lexicon.StateHints[c.ID])) > 0 {
			score += StateHintWeight
		}

		if score == 0 && len(tokens) > 0 {
			score = TagOverlapWeight * float64(tagOverlap(c.Tags, tokens))
		}

		score = round4(score)
		if score > 0 {
			scores[c.ID] = score
		}
	}
	return scores
}

// tagOverlap counts tags that contain, or are contained in, any query token.
func tagOverlap(tags, tokens []string) int {
	n := 0
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		for _, tok := range tokens {
			if strings.Contains(tag, tok) || strings.Contains(tok, tag) {
				n++
				break
			}
		}
	}
	return n
}

func countContained(s string, needles []string) int {
	n := 0
	for _, needle := range needles {
		if needle != "" && strings.Contains(s, needle) {
			n++
		}
	}
	return n
}

func lowered(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, strings.ToLower(strings.TrimSpace(s)))
	}
	return out
}

func round4(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Round(v*10000) / 10000
}
