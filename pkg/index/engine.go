package index

import (
	"fmt"

	"github.com/blubolt/blubolt-centra-frontend/pkg/facet"
	"github.com/blubolt/blubolt-centra-frontend/pkg/types"
)

// Engine filters and sorts a catalog against a facet selection. All methods are pure:
// nothing is cached between calls and inputs are never modified.
type Engine struct {
	Facets *facet.FacetHandler
}

func NewEngine(facets *facet.FacetHandler) *Engine {
	return &Engine{Facets: facets}
}

var defaultEngine = NewEngine(facet.DefaultHandler())

func Default() *Engine {
	return defaultEngine
}

func FilterAndSort(catalog []types.Product, selection types.Selection, sort types.SortOption) []types.Product {
	return defaultEngine.FilterAndSort(catalog, selection, sort)
}

func AvailableFacets(catalog []types.Product, selection types.Selection) map[types.FacetName][]string {
	return defaultEngine.AvailableFacets(catalog, selection)
}

func OptionCount(catalog []types.Product, selection types.Selection, name types.FacetName, option string) int {
	return defaultEngine.OptionCount(catalog, selection, name, option)
}

func ToggleOption(selection types.Selection, name types.FacetName, option string) types.Selection {
	return defaultEngine.ToggleOption(selection, name, option)
}

type activeFacet struct {
	facet   facet.Facet
	options types.OptionSet
}

// mustOption returns the canonical form of option and panics when the facet can never
// carry it.
func mustOption(f facet.Facet, option string) string {
	canonical, ok := f.Normalize(option)
	if !ok {
		panic(fmt.Sprintf("facet %s: invalid option %q", f.GetName(), option))
	}
	return canonical
}

// active resolves the facets of the selection that impose a constraint, in display order.
func (e *Engine) active(selection types.Selection) []activeFacet {
	for name, options := range selection {
		f := e.Facets.MustGetFacet(name)
		for option := range options {
			mustOption(f, option)
		}
	}
	ret := make([]activeFacet, 0, len(selection))
	for _, f := range e.Facets.Facets() {
		if options := selection[f.GetName()]; len(options) > 0 {
			ret = append(ret, activeFacet{facet: f, options: options})
		}
	}
	return ret
}

func matchesAll(p *types.Product, active []activeFacet) bool {
	for _, a := range active {
		if !a.facet.MatchAny(p, a.options) {
			return false
		}
	}
	return true
}

// Filter keeps the products passing every active facet, in catalog order.
func (e *Engine) Filter(catalog []types.Product, selection types.Selection) []types.Product {
	active := e.active(selection)
	ret := make([]types.Product, 0, len(catalog))
	for i := range catalog {
		if matchesAll(&catalog[i], active) {
			ret = append(ret, catalog[i])
		}
	}
	return ret
}

func (e *Engine) FilterAndSort(catalog []types.Product, selection types.Selection, sort types.SortOption) []types.Product {
	ret := e.Filter(catalog, selection)
	sortInPlace(ret, sort)
	return ret
}

// ExcludingSelf filters by every facet except name.
func (e *Engine) ExcludingSelf(catalog []types.Product, selection types.Selection, name types.FacetName) []types.Product {
	e.Facets.MustGetFacet(name)
	return e.Filter(catalog, selection.WithOut(name))
}

func (e *Engine) AvailableFacets(catalog []types.Product, selection types.Selection) map[types.FacetName][]string {
	return e.NewPass(catalog, selection).Available()
}

func (e *Engine) OptionCount(catalog []types.Product, selection types.Selection, name types.FacetName, option string) int {
	f := e.Facets.MustGetFacet(name)
	canonical := mustOption(f, option)
	count := 0
	excluding := e.ExcludingSelf(catalog, selection, name)
	for i := range excluding {
		if f.Match(&excluding[i], canonical) {
			count++
		}
	}
	return count
}

// ToggleOption flips option in its facet and returns the new selection. Price ranges are
// stored under their canonical label.
func (e *Engine) ToggleOption(selection types.Selection, name types.FacetName, option string) types.Selection {
	f := e.Facets.MustGetFacet(name)
	return selection.Toggle(name, mustOption(f, option))
}
