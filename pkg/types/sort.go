package types

import "strings"

type SortOption string

const (
	SortFeatured  SortOption = "featured"
	SortNewest    SortOption = "newest"
	SortPriceAsc  SortOption = "price-asc"
	SortPriceDesc SortOption = "price-desc"
)

var SortOptions = []SortOption{SortFeatured, SortNewest, SortPriceAsc, SortPriceDesc}

func (s SortOption) Label() string {
	switch s {
	case SortFeatured:
		return "Featured"
	case SortNewest:
		return "Newest"
	case SortPriceAsc:
		return "Price: Low to High"
	case SortPriceDesc:
		return "Price: High to Low"
	}
	return string(s)
}

// ParseSortOption resolves a sort value. Empty input means the default, featured.
func ParseSortOption(value string) (SortOption, bool) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return SortFeatured, true
	}
	for _, s := range SortOptions {
		if string(s) == value {
			return s, true
		}
	}
	return "", false
}
