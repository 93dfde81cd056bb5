package types

import (
	"math"
	"testing"
)

func TestPriceRangeContains(t *testing.T) {
	tests := []struct {
		label string
		price float64
		want  bool
	}{
		{"Under $50", 0, true},
		{"Under $50", 29.99, true},
		{"Under $50", 50, true},
		{"Under $50", 50.01, false},
		{"$50 - $100", 50, true},
		{"$50 - $100", 79.99, true},
		{"$50 - $100", 100, true},
		{"$100 - $200", 99.99, false},
		{"$100 - $200", 200, true},
		{"Over $200", 200, true},
		{"Over $200", 1e9, true},
		{"Over $200", 199.99, false},
		{"Over $200", math.NaN(), false},
	}
	for _, tt := range tests {
		r, ok := LookupPriceRange(PriceRanges, tt.label)
		if !ok {
			t.Fatalf("range %q not found", tt.label)
		}
		if got := r.Contains(tt.price); got != tt.want {
			t.Errorf("%s contains %v: expected %v, got %v", tt.label, tt.price, tt.want, got)
		}
	}
}

func TestLookupPriceRangeTolerantLabels(t *testing.T) {
	for _, label := range []string{"$50–$100", "$50-$100", " $50 - $100 ", "$50 -  $100"} {
		r, ok := LookupPriceRange(PriceRanges, label)
		if !ok {
			t.Errorf("expected %q to resolve", label)
			continue
		}
		if r.Label != "$50 - $100" {
			t.Errorf("expected canonical label for %q, got %q", label, r.Label)
		}
	}
	if _, ok := LookupPriceRange(PriceRanges, "Under $20"); ok {
		t.Errorf("expected unknown label to fail")
	}
}

func TestParseSortOption(t *testing.T) {
	if s, ok := ParseSortOption(""); !ok || s != SortFeatured {
		t.Errorf("expected empty to default to featured, got %q", s)
	}
	if s, ok := ParseSortOption("Price-Desc"); !ok || s != SortPriceDesc {
		t.Errorf("expected price-desc, got %q", s)
	}
	if _, ok := ParseSortOption("popular"); ok {
		t.Errorf("expected popular to be rejected")
	}
}

func TestParseFacetName(t *testing.T) {
	if f, ok := ParseFacetName(" price range "); !ok || f != PriceRangeFacet {
		t.Errorf("expected Price Range, got %q", f)
	}
	if _, ok := ParseFacetName("Brand"); ok {
		t.Errorf("expected Brand to be unknown")
	}
}
