package types

import (
	"math"
	"strings"
)

// PriceRange is a price bucket of the Price Range facet. Both bounds are inclusive; an
// open ended range has no upper bound.
type PriceRange struct {
	Label     string  `json:"label"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max,omitempty"`
	OpenEnded bool    `json:"openEnded,omitempty"`
}

func (r PriceRange) Contains(price float64) bool {
	if math.IsNaN(price) || price < r.Min {
		return false
	}
	return r.OpenEnded || price <= r.Max
}

var PriceRanges = []PriceRange{
	{Label: "Under $50", Min: 0, Max: 50},
	{Label: "$50 - $100", Min: 50, Max: 100},
	{Label: "$100 - $200", Min: 100, Max: 200},
	{Label: "Over $200", Min: 200, OpenEnded: true},
}

func normalizeRangeLabel(label string) string {
	label = strings.ReplaceAll(label, "–", "-")
	return strings.ToLower(strings.Join(strings.Fields(strings.ReplaceAll(label, "-", " - ")), " "))
}

// LookupPriceRange finds a range by label. Spacing, case and an en dash in place of the
// hyphen are tolerated, so "$50–$100" resolves to "$50 - $100".
func LookupPriceRange(ranges []PriceRange, label string) (PriceRange, bool) {
	want := normalizeRangeLabel(label)
	for _, r := range ranges {
		if normalizeRangeLabel(r.Label) == want {
			return r, true
		}
	}
	return PriceRange{}, false
}
