// Package dataset loads the five static quest dataset documents and builds
// the read-only indices the ranking engine queries.
package dataset

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alexanderramin/questgen/internal/domain"
	"github.com/go-playground/validator/v10"
)

// DocumentName identifies one of the dataset documents.
type DocumentName string

const (
	DocConcepts   DocumentName = "concepts.json"
	DocClusters   DocumentName = "clusters.json"
	DocClusterMap DocumentName = "concept_cluster_map.json"
	DocTemplates  DocumentName = "templates.json"
	DocLexicon    DocumentName = "lexicon.json"
)

// DocumentNames lists every document a complete dataset carries.
var DocumentNames = []DocumentName{DocConcepts, DocClusters, DocClusterMap, DocTemplates, DocLexicon}

// Documents holds the raw bytes of each dataset document.
type Documents map[DocumentName][]byte

// ErrInvalidDataset wraps every decode and validation failure.
var ErrInvalidDataset = errors.New("invalid dataset")

type conceptsDoc struct {
	Concepts []domain.Concept `json:"concepts" validate:"required,dive"`
}

type clustersDoc struct {
	Clusters []domain.Cluster `json:"clusters" validate:"required,dive"`
}

type clusterMapDoc struct {
	Map []domain.ConceptClusterMapEntry `json:"map" validate:"required,dive"`
}

type templatesDoc struct {
	Templates []domain.Template `json:"templates" validate:"required,dive"`
}

// Dataset is the decoded, struct-validated content of all documents.
type Dataset struct {
	Concepts   []domain.Concept
	Clusters   []domain.Cluster
	ClusterMap []domain.ConceptClusterMapEntry
	Templates  []domain.Template
	Lexicon    domain.Lexicon
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Parse decodes every document, rejecting unknown fields, and applies the
// struct-level rules. Referential integrity is checked by Build.
func Parse(docs Documents) (*Dataset, error) {
	var (
		ds       Dataset
		concepts conceptsDoc
		clusters clustersDoc
		cmap     clusterMapDoc
		tmpls    templatesDoc
	)
	targets := []struct {
		name DocumentName
		dst  any
	}{
		{DocConcepts, &concepts},
		{DocClusters, &clusters},
		{DocClusterMap, &cmap},
		{DocTemplates, &tmpls},
		{DocLexicon, &ds.Lexicon},
	}
	for _, t := range targets {
		raw, ok := docs[t.name]
		if !ok {
			return nil, fmt.Errorf("%w: missing document %s", ErrInvalidDataset, t.name)
		}
		if err := decodeStrict(raw, t.dst); err != nil {
			return nil, fmt.Errorf("%w: parsing %s: %v", ErrInvalidDataset, t.name, err)
		}
		if t.name == DocLexicon {
			continue
		}
		if err := validate.Struct(t.dst); err != nil {
			return nil, fmt.Errorf("%w: validating %s: %v", ErrInvalidDataset, t.name, err)
		}
	}

	ds.Concepts = concepts.Concepts
	ds.Clusters = clusters.Clusters
	ds.ClusterMap = cmap.Map
	ds.Templates = tmpls.Templates
	return &ds, nil
}

func decodeStrict(raw []byte, dst any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("trailing data after document")
	}
	return nil
}
