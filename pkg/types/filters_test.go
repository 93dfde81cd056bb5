package types

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestToggleAddsAndRemoves(t *testing.T) {
	sel := NewSelection()
	added := sel.Toggle(ColorsFacet, "Black")
	if !added.Has(ColorsFacet, "Black") {
		t.Fatalf("expected Black to be selected, got %v", added)
	}
	if len(sel) != 0 {
		t.Errorf("toggle modified the input selection: %v", sel)
	}
	removed := added.Toggle(ColorsFacet, "Black")
	if removed.IsActive(ColorsFacet) {
		t.Errorf("expected Colors to be inactive after second toggle, got %v", removed)
	}
	if !added.Has(ColorsFacet, "Black") {
		t.Errorf("second toggle modified its input: %v", added)
	}
}

func TestToggleIsItsOwnInverse(t *testing.T) {
	start := Selection{
		ColorsFacet: NewOptionSet("Black", "Navy"),
		SizesFacet:  NewOptionSet("XS"),
	}
	cases := []struct {
		facet  FacetName
		option string
	}{
		{ColorsFacet, "Black"},
		{ColorsFacet, "White"},
		{SizesFacet, "XS"},
		{MaterialFacet, "Cotton"},
		{PriceRangeFacet, "Under $50"},
	}
	for _, c := range cases {
		got := start.Toggle(c.facet, c.option).Toggle(c.facet, c.option)
		if diff := cmp.Diff(start, got); diff != "" {
			t.Errorf("toggle %s/%s twice changed selection (-want +got):\n%s", c.facet, c.option, diff)
		}
	}
}

func TestWithOut(t *testing.T) {
	sel := Selection{
		ColorsFacet: NewOptionSet("Black"),
		SizesFacet:  NewOptionSet("XS"),
	}
	without := sel.WithOut(ColorsFacet)
	if without.IsActive(ColorsFacet) {
		t.Errorf("expected Colors to be removed, got %v", without)
	}
	if !without.Has(SizesFacet, "XS") {
		t.Errorf("expected Sizes to be kept, got %v", without)
	}
	if !sel.IsActive(ColorsFacet) {
		t.Errorf("WithOut modified the receiver")
	}
}

func TestSelectionKeyIsCanonical(t *testing.T) {
	a := Selection{
		SizesFacet:    NewOptionSet("XS", "M"),
		ColorsFacet:   NewOptionSet("Navy", "Black"),
		MaterialFacet: OptionSet{},
	}
	b := NewSelection().
		Toggle(ColorsFacet, "Black").
		Toggle(SizesFacet, "M").
		Toggle(ColorsFacet, "Navy").
		Toggle(SizesFacet, "XS")
	if a.Key() != b.Key() {
		t.Errorf("expected equal keys, got %q and %q", a.Key(), b.Key())
	}
	if want := "Colors:Black||Navy;Sizes:M||XS"; a.Key() != want {
		t.Errorf("expected %q, got %q", want, a.Key())
	}
}

func TestIsEmpty(t *testing.T) {
	if !(Selection{ColorsFacet: OptionSet{}}).IsEmpty() {
		t.Errorf("expected selection with only empty sets to be empty")
	}
	if NewSelection().Toggle(SizesFacet, "S").IsEmpty() {
		t.Errorf("expected selection to be non empty")
	}
}
