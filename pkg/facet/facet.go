package facet

import "github.com/blubolt/blubolt-centra-frontend/pkg/types"

// Facet is a filterable product attribute. Matching is OR within the options given to
// MatchAny; combining facets is left to the caller.
type Facet interface {
	GetName() types.FacetName
	GetBaseField() *types.BaseField
	// GetValues returns the options the product carries for this facet.
	GetValues(p *types.Product) []string
	Match(p *types.Product, option string) bool
	MatchAny(p *types.Product, options types.OptionSet) bool
	// Options lists the options present in products, in the facet's display order.
	Options(products []types.Product) []string
	// Normalize returns the canonical form of an option, or false when the facet can
	// never carry it.
	Normalize(option string) (string, bool)
}
