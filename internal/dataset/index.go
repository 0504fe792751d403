package dataset

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/alexanderramin/questgen/internal/domain"
	"github.com/alexanderramin/questgen/internal/normalize"
)

// Lexeme is a concept's lexicon entry with its patterns compiled.
// Patterns that failed to compile are absent, so they never match.
type Lexeme struct {
	Keywords         []string
	Variants         []string
	Patterns         []*regexp.Regexp
	NegativePatterns []*regexp.Regexp
}

// Index is the immutable, query-ready view of a dataset. Build it once and
// share it; every method is safe for concurrent use.
type Index struct {
	Lexicon domain.Lexicon

	Concepts  []*domain.Concept
	Clusters  []*domain.Cluster
	Templates []*domain.Template

	ClusterByKey       map[string]*domain.Cluster
	ConceptByID        map[string]*domain.Concept
	ConceptToClusters  map[string][]string
	TemplateByID       map[string]*domain.Template
	TemplatesByCluster map[string][]*domain.Template
	LexemeByConcept    map[string]*Lexeme

	// InvalidPatterns counts lexicon regexes dropped at build time.
	InvalidPatterns int

	titleExact   map[string][]string
	titleCompact map[string][]string
}

// Build validates references and constructs every index. A dataset with
// dangling references is rejected with ErrInvalidDataset.
func Build(ds *Dataset) (*Index, error) {
	if errs := ValidateReferences(ds); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDataset, errors.Join(errs...))
	}

	idx := &Index{
		Lexicon:            ds.Lexicon,
		ClusterByKey:       make(map[string]*domain.Cluster, len(ds.Clusters)),
		ConceptByID:        make(map[string]*domain.Concept, len(ds.Concepts)),
		ConceptToClusters:  make(map[string][]string, len(ds.ClusterMap)),
		TemplateByID:       make(map[string]*domain.Template, len(ds.Templates)),
		TemplatesByCluster: make(map[string][]*domain.Template, len(ds.Clusters)),
		LexemeByConcept:    make(map[string]*Lexeme, len(ds.Lexicon.Lexemes)),
		titleExact:         make(map[string][]string, len(ds.Templates)),
		titleCompact:       make(map[string][]string, len(ds.Templates)),
	}

	for i := range ds.Concepts {
		c := &ds.Concepts[i]
		idx.Concepts = append(idx.Concepts, c)
		idx.ConceptByID[c.ID] = c
	}
	for i := range ds.Clusters {
		cl := &ds.Clusters[i]
		idx.Clusters = append(idx.Clusters, cl)
		idx.ClusterByKey[cl.Key] = cl
	}
	for _, e := range ds.ClusterMap {
		idx.ConceptToClusters[e.ConceptID] = append(idx.ConceptToClusters[e.ConceptID], e.ClusterKeys...)
	}
	for i := range ds.Templates {
		t := &ds.Templates[i]
		idx.Templates = append(idx.Templates, t)
		idx.TemplateByID[t.ID] = t
		idx.TemplatesByCluster[t.ClusterKey] = append(idx.TemplatesByCluster[t.ClusterKey], t)

		exact := normalize.TitleKey(t.Title)
		compact := normalize.CompactKey(t.Title)
		idx.titleExact[exact] = appendUnique(idx.titleExact[exact], t.ID)
		idx.titleCompact[compact] = appendUnique(idx.titleCompact[compact], t.ID)
	}

	for id, lx := range ds.Lexicon.Lexemes {
		compiled := &Lexeme{
			Keywords: lowerNonEmpty(lx.Keywords),
			Variants: lowerNonEmpty(lx.Variants),
		}
		compiled.Patterns = idx.compileAll(lx.Patterns)
		compiled.NegativePatterns = idx.compileAll(lx.NegativePatterns)
		idx.LexemeByConcept[id] = compiled
	}
	idx.compileAll(ds.Lexicon.TimeHints.MinsPatterns)
	idx.compileAll(ds.Lexicon.TimeHints.RangePatterns)

	return idx, nil
}

func (idx *Index) compileAll(patterns []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, src := range patterns {
		if src == "" {
			continue
		}
		re, err := regexp.Compile("(?i)" + src)
		if err != nil {
			idx.InvalidPatterns++
			continue
		}
		out = append(out, re)
	}
	return out
}

// ExactTitleMatches returns the ids of templates whose title equals s after
// title normalization, either verbatim or with spaces removed. Ids are sorted.
func (idx *Index) ExactTitleMatches(s string) []string {
	key := normalize.TitleKey(s)
	if key == "" {
		return nil
	}
	var ids []string
	for _, id := range idx.titleExact[key] {
		ids = appendUnique(ids, id)
	}
	for _, id := range idx.titleCompact[strings.ReplaceAll(key, " ", "")] {
		ids = appendUnique(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Stats summarises the index for logging and the dataset check command.
type Stats struct {
	Concepts        int `json:"concepts" yaml:"concepts"`
	Clusters        int `json:"clusters" yaml:"clusters"`
	Templates       int `json:"templates" yaml:"templates"`
	Lexemes         int `json:"lexemes" yaml:"lexemes"`
	InvalidPatterns int `json:"invalidPatterns" yaml:"invalidPatterns"`
}

func (idx *Index) Stats() Stats {
	return Stats{
		Concepts:        len(idx.Concepts),
		Clusters:        len(idx.Clusters),
		Templates:       len(idx.Templates),
		Lexemes:         len(idx.LexemeByConcept),
		InvalidPatterns: idx.InvalidPatterns,
	}
}

func appendUnique(list []string, v string) []string {
	for _, have := range list {
		if have == v {
			return list
		}
	}
	return append(list, v)
}

func lowerNonEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}
