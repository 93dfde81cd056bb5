package facet

import (
	"fmt"
	"slices"

	"github.com/blubolt/blubolt-centra-frontend/pkg/types"
)

// FacetHandler keeps the registered facets in display order.
type FacetHandler struct {
	facets map[types.FacetName]Facet
	order  []types.FacetName
}

func NewFacetHandler() *FacetHandler {
	return &FacetHandler{
		facets: make(map[types.FacetName]Facet),
	}
}

// DefaultHandler registers the storefront facets: price range, colors, sizes and material.
func DefaultHandler() *FacetHandler {
	h := NewFacetHandler()
	h.AddPriceField(&types.BaseField{Name: types.PriceRangeFacet, Priority: 400}, types.PriceRanges)
	h.AddKeyField(&types.BaseField{Name: types.ColorsFacet, Priority: 300}, ColorValues)
	h.AddKeyField(&types.BaseField{Name: types.SizesFacet, Priority: 200}, SizeValues)
	h.AddKeyField(&types.BaseField{Name: types.MaterialFacet, Priority: 100}, MaterialValues)
	return h
}

func (h *FacetHandler) Add(f Facet) {
	name := f.GetName()
	if _, ok := h.facets[name]; !ok {
		h.order = append(h.order, name)
	}
	h.facets[name] = f
}

func (h *FacetHandler) AddKeyField(field *types.BaseField, values ValueGetter) {
	h.Add(NewKeyField(field, values))
}

func (h *FacetHandler) AddPriceField(field *types.BaseField, ranges []types.PriceRange) {
	h.Add(NewPriceField(field, ranges))
}

func (h *FacetHandler) GetFacet(name types.FacetName) (Facet, bool) {
	f, ok := h.facets[name]
	return f, ok
}

// MustGetFacet panics when no facet is registered under name.
func (h *FacetHandler) MustGetFacet(name types.FacetName) Facet {
	f, ok := h.facets[name]
	if !ok {
		panic(fmt.Sprintf("unknown facet %q", name))
	}
	return f
}

func (h *FacetHandler) Names() []types.FacetName {
	return slices.Clone(h.order)
}

func (h *FacetHandler) Facets() []Facet {
	ret := make([]Facet, 0, len(h.order))
	for _, name := range h.order {
		ret = append(ret, h.facets[name])
	}
	return ret
}

// UpdateFields applies display settings to registered facets. Unknown names are skipped.
func (h *FacetHandler) UpdateFields(fields []types.BaseField) {
	for i := range fields {
		if f, ok := h.facets[fields[i].Name]; ok {
			f.GetBaseField().UpdateFrom(&fields[i])
		}
	}
}
