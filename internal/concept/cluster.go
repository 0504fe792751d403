package concept

import (
	"sort"

	"github.com/alexanderramin/questgen/internal/dataset"
	"github.com/alexanderramin/questgen/internal/route"
)

// Fan-out weights by a cluster's position in a concept's map entry.
const (
	FirstClusterWeight  = 1.0
	SecondClusterWeight = 0.8
	OtherClusterWeight  = 0.6

	// Flat scores given to every cluster of the route domain when no concept
	// matched but the route profile carried some explicit signal.
	QuickFallbackScore   = 2.2
	DefaultFallbackScore = 1.6
)

// ClusterScores maps cluster key to an aggregated relevance score.
type ClusterScores map[string]float64

// Max returns the largest score, or 0 for an empty map.
func (c ClusterScores) Max() float64 {
	var m float64
	for _, v := range c {
		if v > m {
			m = v
		}
	}
	return m
}

// Aggregate projects concept scores onto clusters through the concept→cluster
// map. Concepts are visited in id order so float sums are reproducible.
func Aggregate(idx *dataset.Index, scores Scores, prof route.Profile) ClusterScores {
	out := make(ClusterScores)

	ids := make([]string, 0, len(scores))
	for id := range scores {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		for rank, key := range idx.ConceptToClusters[id] {
			out[key] += scores[id] * rankWeight(rank)
		}
	}

	if len(out) == 0 && prof.SignalCount > 0 {
		flat := DefaultFallbackScore
		if prof.QuickMode {
			flat = QuickFallbackScore
		}
		for _, cl := range idx.Clusters {
			if cl.Domain == string(prof.Domain) {
				out[cl.Key] = flat
			}
		}
	}
	return out
}

func rankWeight(rank int) float64 {
	switch rank {
	case 0:
		return FirstClusterWeight
	case 1:
		return SecondClusterWeight
	default:
		return OtherClusterWeight
	}
}
