package index

import (
	"github.com/blubolt/blubolt-centra-frontend/pkg/facet"
	"github.com/blubolt/blubolt-centra-frontend/pkg/types"
)

// Pass answers every question of one render against a fixed catalog and selection. The
// filtered set and each facet's excluding-self set are computed at most once. A Pass is
// not safe for concurrent use.
type Pass struct {
	engine    *Engine
	catalog   []types.Product
	selection types.Selection
	filtered  []types.Product
	excluding map[types.FacetName][]types.Product
}

func (e *Engine) NewPass(catalog []types.Product, selection types.Selection) *Pass {
	e.active(selection)
	return &Pass{
		engine:    e,
		catalog:   catalog,
		selection: selection,
		excluding: make(map[types.FacetName][]types.Product),
	}
}

func (p *Pass) Selection() types.Selection {
	return p.selection
}

func (p *Pass) Filtered() []types.Product {
	if p.filtered == nil {
		p.filtered = p.engine.Filter(p.catalog, p.selection)
	}
	return p.filtered
}

// Products returns a sorted copy of the filtered set.
func (p *Pass) Products(sort types.SortOption) []types.Product {
	return SortProducts(p.Filtered(), sort)
}

func (p *Pass) Excluding(name types.FacetName) []types.Product {
	if ret, ok := p.excluding[name]; ok {
		return ret
	}
	ret := p.engine.ExcludingSelf(p.catalog, p.selection, name)
	p.excluding[name] = ret
	return ret
}

func (p *Pass) Options(name types.FacetName) []string {
	return p.engine.Facets.MustGetFacet(name).Options(p.Excluding(name))
}

func (p *Pass) Count(name types.FacetName, option string) int {
	f := p.engine.Facets.MustGetFacet(name)
	canonical := mustOption(f, option)
	products := p.Excluding(name)
	count := 0
	for i := range products {
		if f.Match(&products[i], canonical) {
			count++
		}
	}
	return count
}

func (p *Pass) Available() map[types.FacetName][]string {
	ret := make(map[types.FacetName][]string)
	for _, name := range p.engine.Facets.Names() {
		ret[name] = p.Options(name)
	}
	return ret
}

// Facets renders every facet with its available options and live counts. Selected options
// that are no longer available are kept, with a zero count, so they can be deselected.
func (p *Pass) Facets() []facet.JsonFacet {
	return buildFacets(p.engine.Facets, p.selection, p.Options, p.Count)
}

func buildFacets(handler *facet.FacetHandler, selection types.Selection, options func(types.FacetName) []string, count func(types.FacetName, string) int) []facet.JsonFacet {
	ret := make([]facet.JsonFacet, 0, len(handler.Names()))
	for _, f := range handler.Facets() {
		base := f.GetBaseField()
		if base.HideFacet {
			continue
		}
		name := f.GetName()
		selected := make(map[string]struct{})
		for option := range selection.Options(name) {
			selected[mustOption(f, option)] = struct{}{}
		}
		available := options(name)
		result := facet.JsonFacet{
			BaseField: base,
			Options:   make([]facet.OptionResult, 0, len(available)),
		}
		for _, option := range available {
			_, isSelected := selected[option]
			delete(selected, option)
			result.Options = append(result.Options, facet.OptionResult{
				Value:    option,
				Count:    count(name, option),
				Selected: isSelected,
			})
		}
		for _, option := range types.OptionSet(selected).Values() {
			result.Options = append(result.Options, facet.OptionResult{
				Value:    option,
				Selected: true,
			})
		}
		ret = append(ret, result)
	}
	return ret
}
