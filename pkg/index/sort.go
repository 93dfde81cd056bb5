package index

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/blubolt/blubolt-centra-frontend/pkg/types"
)

func sortInPlace(products []types.Product, sort types.SortOption) {
	switch sort {
	case types.SortFeatured, "":
	case types.SortNewest:
		slices.SortStableFunc(products, func(a, b types.Product) int {
			return cmp.Compare(b.Id, a.Id)
		})
	case types.SortPriceAsc:
		slices.SortStableFunc(products, func(a, b types.Product) int {
			return cmp.Compare(a.Price, b.Price)
		})
	case types.SortPriceDesc:
		slices.SortStableFunc(products, func(a, b types.Product) int {
			return cmp.Compare(b.Price, a.Price)
		})
	default:
		panic(fmt.Sprintf("unknown sort %q", sort))
	}
}

// SortProducts returns a sorted copy. Ties keep catalog order.
func SortProducts(products []types.Product, sort types.SortOption) []types.Product {
	ret := slices.Clone(products)
	sortInPlace(ret, sort)
	return ret
}
