package facet

import (
	"fmt"

	"github.com/blubolt/blubolt-centra-frontend/pkg/types"
)

// PriceField buckets products into a fixed list of price ranges. A price on a shared
// bound belongs to both neighbouring ranges.
type PriceField struct {
	*types.BaseField
	Ranges []types.PriceRange
}

func NewPriceField(field *types.BaseField, ranges []types.PriceRange) *PriceField {
	if field.Type == "" {
		field.Type = types.FacetRangeType
	}
	return &PriceField{
		BaseField: field,
		Ranges:    ranges,
	}
}

func (f *PriceField) GetName() types.FacetName {
	return f.Name
}

func (f *PriceField) GetBaseField() *types.BaseField {
	return f.BaseField
}

// mustRange panics on labels outside the enumeration. Callers validate input first.
func (f *PriceField) mustRange(option string) types.PriceRange {
	r, ok := types.LookupPriceRange(f.Ranges, option)
	if !ok {
		panic(fmt.Sprintf("facet %s: unknown price range %q", f.Name, option))
	}
	return r
}

func (f *PriceField) GetValues(p *types.Product) []string {
	ret := make([]string, 0, 2)
	for _, r := range f.Ranges {
		if r.Contains(p.Price) {
			ret = append(ret, r.Label)
		}
	}
	return ret
}

func (f *PriceField) Match(p *types.Product, option string) bool {
	return f.mustRange(option).Contains(p.Price)
}

func (f *PriceField) MatchAny(p *types.Product, options types.OptionSet) bool {
	found := false
	for option := range options {
		if f.Match(p, option) {
			found = true
		}
	}
	return found
}

// Options returns the ranges holding at least one product, in enumeration order.
func (f *PriceField) Options(products []types.Product) []string {
	ret := make([]string, 0, len(f.Ranges))
	for _, r := range f.Ranges {
		for i := range products {
			if r.Contains(products[i].Price) {
				ret = append(ret, r.Label)
				break
			}
		}
	}
	return ret
}

func (f *PriceField) Normalize(option string) (string, bool) {
	r, ok := types.LookupPriceRange(f.Ranges, option)
	if !ok {
		return "", false
	}
	return r.Label, true
}
