package index

import (
	"sync"

	"github.com/blubolt/blubolt-centra-frontend/pkg/facet"
	"github.com/blubolt/blubolt-centra-frontend/pkg/types"
)

// Index keeps, per facet and option, the ids of the products carrying that option, so
// matching a selection is set intersection instead of a catalog scan. Results are the
// same as the Engine's. Product ids must be unique.
type Index struct {
	mu       sync.RWMutex
	facets   *facet.FacetHandler
	products []types.Product
	all      types.ItemList
	values   map[types.FacetName]map[string]types.ItemList
}

func NewIndex(facets *facet.FacetHandler, catalog []types.Product) *Index {
	i := &Index{facets: facets}
	i.Rebuild(catalog)
	return i
}

// Rebuild replaces the indexed catalog.
func (i *Index) Rebuild(catalog []types.Product) {
	all := make(types.ItemList, len(catalog))
	values := make(map[types.FacetName]map[string]types.ItemList)
	for _, f := range i.facets.Facets() {
		values[f.GetName()] = make(map[string]types.ItemList)
	}
	for idx := range catalog {
		p := &catalog[idx]
		all.AddId(p.Id)
		for _, f := range i.facets.Facets() {
			byValue := values[f.GetName()]
			for _, v := range f.GetValues(p) {
				ids, ok := byValue[v]
				if !ok {
					ids = make(types.ItemList)
					byValue[v] = ids
				}
				ids.AddId(p.Id)
			}
		}
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	i.products = catalog
	i.all = all
	i.values = values
}

func (i *Index) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.products)
}

func (i *Index) Products() []types.Product {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.products
}

func (i *Index) optionIds(f facet.Facet, option string) types.ItemList {
	return i.values[f.GetName()][mustOption(f, option)]
}

func (i *Index) match(selection types.Selection) types.ItemList {
	for name := range selection {
		i.facets.MustGetFacet(name)
	}
	ret := i.all.Clone()
	for name, options := range selection {
		if len(options) == 0 {
			continue
		}
		f := i.facets.MustGetFacet(name)
		union := make(types.ItemList)
		for option := range options {
			union.Merge(i.optionIds(f, option))
		}
		ret.Intersect(union)
	}
	return ret
}

func (i *Index) inCatalogOrder(ids types.ItemList) []types.Product {
	ret := make([]types.Product, 0, ids.Len())
	for idx := range i.products {
		if ids.Contains(i.products[idx].Id) {
			ret = append(ret, i.products[idx])
		}
	}
	return ret
}

// Match returns the ids of the products passing the selection.
func (i *Index) Match(selection types.Selection) types.ItemList {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.match(selection)
}

func (i *Index) FilterAndSort(selection types.Selection, sort types.SortOption) []types.Product {
	i.mu.RLock()
	defer i.mu.RUnlock()
	ret := i.inCatalogOrder(i.match(selection))
	sortInPlace(ret, sort)
	return ret
}

func (i *Index) OptionCount(selection types.Selection, name types.FacetName, option string) int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	f := i.facets.MustGetFacet(name)
	return i.match(selection.WithOut(name)).IntersectionLen(i.optionIds(f, option))
}

func (i *Index) options(selection types.Selection, name types.FacetName) []string {
	f := i.facets.MustGetFacet(name)
	return f.Options(i.inCatalogOrder(i.match(selection.WithOut(name))))
}

func (i *Index) AvailableFacets(selection types.Selection) map[types.FacetName][]string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	ret := make(map[types.FacetName][]string)
	for _, name := range i.facets.Names() {
		ret[name] = i.options(selection, name)
	}
	return ret
}

// Facets renders the facets of the selection like Pass.Facets, counting by intersection.
func (i *Index) Facets(selection types.Selection) []facet.JsonFacet {
	i.mu.RLock()
	defer i.mu.RUnlock()
	excluding := make(map[types.FacetName]types.ItemList)
	exclude := func(name types.FacetName) types.ItemList {
		ids, ok := excluding[name]
		if !ok {
			ids = i.match(selection.WithOut(name))
			excluding[name] = ids
		}
		return ids
	}
	options := func(name types.FacetName) []string {
		return i.facets.MustGetFacet(name).Options(i.inCatalogOrder(exclude(name)))
	}
	count := func(name types.FacetName, option string) int {
		return exclude(name).IntersectionLen(i.optionIds(i.facets.MustGetFacet(name), option))
	}
	return buildFacets(i.facets, selection, options, count)
}
