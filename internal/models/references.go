package models

import "askdata.insights.org/internal/catalog"

// ReferencesModel carries the metadata an entry or list was built from.
type ReferencesModel struct {
	Provenance []catalog.DataProvenance `json:"provenance"`
	Quality    []DatasetQuality         `json:"quality"`
}

// DatasetQuality is the quality badge of one dataset.
type DatasetQuality struct {
	Dataset catalog.Dataset `json:"dataset"`
	catalog.DataQuality
}

// NewEmptyReferences creates a new empty References model with initialized empty slices
func NewEmptyReferences() ReferencesModel {
	return ReferencesModel{
		Provenance: []catalog.DataProvenance{},
		Quality:    []DatasetQuality{},
	}
}

// NewDatasetReferences references the quality and provenance of each dataset.
// Provenance records shared between datasets appear once.
func NewDatasetReferences(datasets ...catalog.Dataset) ReferencesModel {
	refs := NewEmptyReferences()
	seen := make(map[string]bool)
	for _, dataset := range datasets {
		quality, ok := catalog.Quality(dataset)
		if !ok {
			continue
		}
		refs.Quality = append(refs.Quality, DatasetQuality{Dataset: dataset, DataQuality: quality})
		if seen[quality.Source] {
			continue
		}
		if provenance, ok := catalog.Provenance(quality.Source); ok {
			seen[quality.Source] = true
			refs.Provenance = append(refs.Provenance, provenance)
		}
	}
	return refs
}
