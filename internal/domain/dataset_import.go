package domain

import "time"

// DatasetImport records one dataset snapshot written to the document store.
type DatasetImport struct {
	ID              string    `json:"id" yaml:"id"`
	Source          string    `json:"source" yaml:"source"`
	ConceptCount    int       `json:"conceptCount" yaml:"conceptCount"`
	ClusterCount    int       `json:"clusterCount" yaml:"clusterCount"`
	TemplateCount   int       `json:"templateCount" yaml:"templateCount"`
	InvalidPatterns int       `json:"invalidPatterns" yaml:"invalidPatterns"`
	ImportedAt      time.Time `json:"importedAt" yaml:"importedAt"`
}
