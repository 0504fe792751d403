// Package normalize turns raw quest descriptions into the canonical text form
// every other stage of the engine matches against.
package normalize

import (
	"regexp"
	"sort"
	"strings"

	"github.com/alexanderramin/questgen/internal/domain"
	"golang.org/x/text/unicode/norm"
)

type typoRule struct {
	re          *regexp.Regexp
	replacement string
}

// Normalizer applies the lexicon's normalization flags, typo table and filler
// list. It is immutable after construction and safe for concurrent use.
type Normalizer struct {
	lowercase      bool
	removeFillers  bool
	collapseSpaces bool
	typos          []typoRule
	fillers        []string
}

// NewNormalizer compiles the lexicon rules once. Typo keys are applied longest
// first so overlapping entries resolve the same way on every run.
func NewNormalizer(lex *domain.Lexicon) *Normalizer {
	n := &Normalizer{}
	if lex == nil {
		return n
	}
	n.lowercase = lex.Normalization.Lowercase
	n.removeFillers = lex.Normalization.RemoveFillers
	n.collapseSpaces = lex.Normalization.CollapseSpaces

	keys := make([]string, 0, len(lex.Typos))
	for k := range lex.Typos {
		if strings.TrimSpace(k) != "" {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	for _, k := range keys {
		n.typos = append(n.typos, typoRule{
			re:          regexp.MustCompile("(?i)" + regexp.QuoteMeta(k)),
			replacement: lex.Typos[k],
		})
	}

	for _, f := range lex.Fillers {
		f = CollapseSpaces(strings.ToLower(f))
		if f != "" {
			n.fillers = append(n.fillers, f)
		}
	}
	sort.Slice(n.fillers, func(i, j int) bool {
		return len(n.fillers[i]) > len(n.fillers[j])
	})
	return n
}

// Normalize runs lowercase → typo substitution → filler removal → whitespace
// collapse, in that order.
func (n *Normalizer) Normalize(input string) string {
	out := norm.NFC.String(input)
	if n.lowercase {
		out = strings.ToLower(out)
	}
	for _, t := range n.typos {
		out = t.re.ReplaceAllLiteralString(out, t.replacement)
	}
	if n.removeFillers && len(n.fillers) > 0 {
		out = removeWholeWords(out, n.fillers)
	}
	if n.collapseSpaces {
		out = CollapseSpaces(out)
	}
	return out
}

// removeWholeWords deletes each filler where it is bounded by whitespace or
// the string edges. Multi-word fillers are matched across single spaces.
func removeWholeWords(s string, fillers []string) string {
	padded := " " + strings.Join(strings.Fields(s), " ") + " "
	for _, f := range fillers {
		needle := " " + f + " "
		for strings.Contains(padded, needle) {
			padded = strings.ReplaceAll(padded, needle, " ")
		}
	}
	return strings.TrimSpace(padded)
}
