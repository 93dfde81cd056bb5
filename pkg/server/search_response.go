package server

import (
	"github.com/blubolt/blubolt-centra-frontend/pkg/facet"
	"github.com/blubolt/blubolt-centra-frontend/pkg/types"
)

type SearchResponse struct {
	Items     []types.Product   `json:"items"`
	Facets    []facet.JsonFacet `json:"facets,omitempty"`
	Sort      types.SortOption  `json:"sort"`
	Page      int               `json:"page"`
	PageSize  int               `json:"pageSize"`
	TotalHits int               `json:"totalHits"`
}

type FacetResponse struct {
	Facets    []facet.JsonFacet `json:"facets"`
	TotalHits int               `json:"totalHits"`
}

type SortOptionResponse struct {
	Value types.SortOption `json:"value"`
	Label string           `json:"label"`
}
