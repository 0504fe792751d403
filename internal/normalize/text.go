package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// stopWords are dropped from word tokens. Single-rune tokens never survive
// tokenization, so only multi-rune entries are listed.
var stopWords = map[string]bool{
	"그리고": true, "그냥": true, "너무": true, "정말": true, "진짜": true,
	"하고": true, "해야": true, "해야돼": true, "해야지": true, "하기": true,
	"있는": true, "없는": true, "그거": true, "이거": true, "저거": true,
	"같은": true, "위한": true, "하는": true,
}

// IsStopWord reports whether tok is excluded from word features.
func IsStopWord(tok string) bool {
	return stopWords[tok]
}

// CollapseSpaces folds every whitespace run into one space and trims the ends.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// TitleKey is the exact-title lookup form: NFC, lowercase, collapsed spaces.
func TitleKey(s string) string {
	return CollapseSpaces(strings.ToLower(norm.NFC.String(s)))
}

// CompactKey is TitleKey with all spaces removed.
func CompactKey(s string) string {
	return strings.ReplaceAll(TitleKey(s), " ", "")
}

// SearchText joins parts into one lowercased, whitespace-collapsed string.
func SearchText(parts ...string) string {
	return TitleKey(strings.Join(parts, " "))
}

// Tokenize splits s on anything that is not a letter or digit and keeps
// tokens longer than one rune that are not stop words. Order and duplicates
// are preserved.
func Tokenize(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if len([]rune(f)) <= 1 || stopWords[f] {
			continue
		}
		out = append(out, f)
	}
	return out
}

// TokenSet returns the distinct tokens of s.
func TokenSet(s string) map[string]struct{} {
	toks := Tokenize(s)
	set := make(map[string]struct{}, len(toks))
	for _, t := range toks {
		set[t] = struct{}{}
	}
	return set
}
