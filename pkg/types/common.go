package types

import "strings"

type FacetName string

const (
	PriceRangeFacet FacetName = "Price Range"
	ColorsFacet     FacetName = "Colors"
	SizesFacet      FacetName = "Sizes"
	MaterialFacet   FacetName = "Material"
)

// FacetNames lists the storefront facets in display order.
var FacetNames = []FacetName{PriceRangeFacet, ColorsFacet, SizesFacet, MaterialFacet}

func (f FacetName) IsValid() bool {
	for _, name := range FacetNames {
		if name == f {
			return true
		}
	}
	return false
}

// ParseFacetName matches a facet name case-insensitively, ignoring surrounding space.
func ParseFacetName(value string) (FacetName, bool) {
	value = strings.TrimSpace(value)
	for _, name := range FacetNames {
		if strings.EqualFold(string(name), value) {
			return name, true
		}
	}
	return "", false
}

const (
	FacetKeyType   = "key"
	FacetRangeType = "range"
)

type BaseField struct {
	Name        FacetName `json:"name"`
	Description string    `json:"description,omitempty"`
	Priority    float64   `json:"prio,omitempty"`
	Type        string    `json:"valueType,omitempty"`
	HideFacet   bool      `json:"hide,omitempty"`
}

func (b *BaseField) UpdateFrom(field *BaseField) {
	if field == nil {
		return
	}
	if field.Description != "" {
		b.Description = field.Description
	}
	if field.Type != "" {
		b.Type = field.Type
	}
	b.Priority = field.Priority
	b.HideFacet = field.HideFacet
}
