package ranking

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/alexanderramin/questgen/internal/normalize"
)

// Feature weights for sparse text vectors.
const (
	WordFeatureWeight    = 1.0
	BigramFeatureWeight  = 0.45
	TrigramFeatureWeight = 0.25
)

// SparseVector maps a feature key to its accumulated weight. Word features
// and character n-grams live in separate key spaces.
type SparseVector map[string]float64

// BuildVector derives word unigram and character bi/trigram features from
// text. N-grams are taken over the text with all whitespace removed.
func BuildVector(text string) SparseVector {
	text = strings.ToLower(text)
	v := make(SparseVector)
	for _, tok := range normalize.Tokenize(text) {
		v["w:"+tok] += WordFeatureWeight
	}

	compact := []rune(strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, text))
	for i := 0; i+2 <= len(compact); i++ {
		v["b:"+string(compact[i:i+2])] += BigramFeatureWeight
	}
	for i := 0; i+3 <= len(compact); i++ {
		v["t:"+string(compact[i:i+3])] += TrigramFeatureWeight
	}
	return v
}

// Norm is the Euclidean length of v. Terms are summed in key order so the
// result does not depend on map iteration.
func (v SparseVector) Norm() float64 {
	var sum float64
	for _, k := range sortedKeys(v) {
		sum += v[k] * v[k]
	}
	return math.Sqrt(sum)
}

func sortedKeys(v SparseVector) []string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// CosineSimilarity is dot(a,b)/(|a||b|), or 0 when either vector has zero
// norm. Shared keys are found from the smaller map and summed in key order.
func CosineSimilarity(a, b SparseVector) float64 {
	na, nb := a.Norm(), b.Norm()
	if na == 0 || nb == 0 {
		return 0
	}
	small, large := a, b
	if len(small) > len(large) {
		small, large = large, small
	}
	shared := make([]string, 0, len(small))
	for k := range small {
		if _, ok := large[k]; ok {
			shared = append(shared, k)
		}
	}
	sort.Strings(shared)
	var dot float64
	for _, k := range shared {
		dot += a[k] * b[k]
	}
	return finite(dot / (na * nb))
}

// TokenOverlapRatio is |A∩B| / max(|A|,|B|), or 0 when either set is empty.
func TokenOverlapRatio(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	small, large := a, b
	if len(small) > len(large) {
		small, large = large, small
	}
	shared := 0
	for tok := range small {
		if _, ok := large[tok]; ok {
			shared++
		}
	}
	return float64(shared) / float64(len(large))
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
