package dataset

import (
	"fmt"

	"github.com/alexanderramin/questgen/internal/domain"
)

// ValidateReferences checks that every cross-document reference resolves.
// Returns a slice of errors (empty if valid).
func ValidateReferences(ds *Dataset) []error {
	var errs []error

	concepts := make(map[string]bool, len(ds.Concepts))
	for i, c := range ds.Concepts {
		if concepts[c.ID] {
			errs = append(errs, fmt.Errorf("concept[%d]: duplicate id %q", i, c.ID))
		}
		concepts[c.ID] = true
	}
	for i, c := range ds.Concepts {
		if c.ParentID != nil && *c.ParentID != "" && !concepts[*c.ParentID] {
			errs = append(errs, fmt.Errorf("concept[%d] %q: unknown parent %q", i, c.ID, *c.ParentID))
		}
	}

	clusters := make(map[string]bool, len(ds.Clusters))
	for i, cl := range ds.Clusters {
		if clusters[cl.Key] {
			errs = append(errs, fmt.Errorf("cluster[%d]: duplicate key %q", i, cl.Key))
		}
		clusters[cl.Key] = true
		if !domain.ValidDomains[cl.Domain] {
			errs = append(errs, fmt.Errorf("cluster %q: unknown domain %q", cl.Key, cl.Domain))
		}
		for _, id := range cl.ConceptIDs {
			if !concepts[id] {
				errs = append(errs, fmt.Errorf("cluster %q: unknown concept %q", cl.Key, id))
			}
		}
	}

	for i, e := range ds.ClusterMap {
		if !concepts[e.ConceptID] {
			errs = append(errs, fmt.Errorf("map[%d]: unknown concept %q", i, e.ConceptID))
		}
		for _, key := range e.ClusterKeys {
			if !clusters[key] {
				errs = append(errs, fmt.Errorf("map[%d] %q: unknown cluster %q", i, e.ConceptID, key))
			}
		}
	}

	templates := make(map[string]bool, len(ds.Templates))
	for i, t := range ds.Templates {
		if templates[t.ID] {
			errs = append(errs, fmt.Errorf("template[%d]: duplicate id %q", i, t.ID))
		}
		templates[t.ID] = true
		if !clusters[t.ClusterKey] {
			errs = append(errs, fmt.Errorf("template %q: unknown cluster %q", t.ID, t.ClusterKey))
		}
		if !domain.ValidRouteTypes[t.Type] {
			errs = append(errs, fmt.Errorf("template %q: unknown type %q", t.ID, t.Type))
		}
		for _, id := range t.ConceptIDs {
			if !concepts[id] {
				errs = append(errs, fmt.Errorf("template %q: unknown concept %q", t.ID, id))
			}
		}
		for _, id := range t.StateIDs {
			if !concepts[id] {
				errs = append(errs, fmt.Errorf("template %q: unknown state concept %q", t.ID, id))
			}
		}
	}

	for id := range ds.Lexicon.Lexemes {
		if !concepts[id] {
			errs = append(errs, fmt.Errorf("lexicon: lexeme for unknown concept %q", id))
		}
	}
	for id := range ds.Lexicon.ConceptAliases {
		if !concepts[id] {
			errs = append(errs, fmt.Errorf("lexicon: aliases for unknown concept %q", id))
		}
	}

	return errs
}
