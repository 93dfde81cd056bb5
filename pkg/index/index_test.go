package index

import (
	"testing"

	"github.com/blubolt/blubolt-centra-frontend/pkg/facet"
	"github.com/blubolt/blubolt-centra-frontend/pkg/types"
	"github.com/google/go-cmp/cmp"
)

func TestIndexEqualsEngine(t *testing.T) {
	catalog := largerCatalog()
	idx := NewIndex(facet.DefaultHandler(), catalog)
	engine := Default()
	for _, sel := range selections() {
		for _, sort := range types.SortOptions {
			want := ids(engine.FilterAndSort(catalog, sel, sort))
			if diff := cmp.Diff(want, ids(idx.FilterAndSort(sel, sort))); diff != "" {
				t.Errorf("%s %s (-want +got):\n%s", sel.Key(), sort, diff)
			}
		}
		if diff := cmp.Diff(engine.AvailableFacets(catalog, sel), idx.AvailableFacets(sel)); diff != "" {
			t.Errorf("%s: available (-want +got):\n%s", sel.Key(), diff)
		}
		if diff := cmp.Diff(engine.NewPass(catalog, sel).Facets(), idx.Facets(sel)); diff != "" {
			t.Errorf("%s: facets (-want +got):\n%s", sel.Key(), diff)
		}
		for _, name := range types.FacetNames {
			for _, option := range engine.NewPass(catalog, types.NewSelection()).Options(name) {
				if want, got := engine.OptionCount(catalog, sel, name, option), idx.OptionCount(sel, name, option); want != got {
					t.Errorf("%s %s/%s: expected %d, got %d", sel.Key(), name, option, want, got)
				}
			}
		}
	}
}

func TestIndexRebuild(t *testing.T) {
	idx := NewIndex(facet.DefaultHandler(), twoProducts())
	if idx.Len() != 2 {
		t.Fatalf("expected 2 products, got %d", idx.Len())
	}
	idx.Rebuild(largerCatalog())
	got := idx.Match(types.Selection{types.MaterialFacet: types.NewOptionSet("Wool")})
	if got.Len() != 1 || !got.Contains(5) {
		t.Errorf("expected only the overcoat, got %v", got)
	}
}

func TestIndexPanicsOnUnknownFacet(t *testing.T) {
	idx := NewIndex(facet.DefaultHandler(), twoProducts())
	expectPanic(t, "unknown facet", func() {
		idx.Match(types.Selection{"Brand": types.NewOptionSet("Acme")})
	})
}
