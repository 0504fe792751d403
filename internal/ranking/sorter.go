package ranking

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortCandidates orders candidates by the deterministic canonical rules:
// 1. Total score: higher first
// 2. Rerank confidence: higher first
// 3. Route confidence: higher first
// 4. Priority: higher first
// 5. Difficulty: lower first
// 6. Estimated minutes: lower first
// 7. Template ID: Korean collation ascending
func SortCandidates(candidates []Candidate) {
	// Collators carry internal buffers and are not safe to share.
	col := collate.New(language.Korean)
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]

		if a.TotalScore != b.TotalScore {
			return a.TotalScore > b.TotalScore
		}
		if a.RerankConfidence != b.RerankConfidence {
			return a.RerankConfidence > b.RerankConfidence
		}
		if a.RouteConfidence != b.RouteConfidence {
			return a.RouteConfidence > b.RouteConfidence
		}
		if a.Priority != b.Priority {
			return a.Priority > b.Priority
		}
		if a.Difficulty != b.Difficulty {
			return a.Difficulty < b.Difficulty
		}
		if a.EstimatedTimeMin != b.EstimatedTimeMin {
			return a.EstimatedTimeMin < b.EstimatedTimeMin
		}
		if c := col.CompareString(a.ID, b.ID); c != 0 {
			return c < 0
		}
		return a.ID < b.ID
	})
}
