package ranking

// DiversityReport counts candidates per cluster, in ranked order of first
// appearance. The ranking does not cap clusters; this only reports.
type DiversityReport struct {
	Clusters []string
	Counts   map[string]int
}

// MaxPerCluster is the largest candidate count any single cluster holds.
func (r DiversityReport) MaxPerCluster() int {
	m := 0
	for _, n := range r.Counts {
		if n > m {
			m = n
		}
	}
	return m
}

// Diversity builds a DiversityReport for candidates.
func Diversity(candidates []Candidate) DiversityReport {
	r := DiversityReport{Counts: make(map[string]int)}
	for _, c := range candidates {
		if r.Counts[c.ClusterKey] == 0 {
			r.Clusters = append(r.Clusters, c.ClusterKey)
		}
		r.Counts[c.ClusterKey]++
	}
	return r
}
