package facet

import (
	"slices"

	"github.com/blubolt/blubolt-centra-frontend/pkg/types"
)

type ValueGetter func(p *types.Product) []string

// KeyField is a facet whose options are the distinct string values found in the catalog.
type KeyField struct {
	*types.BaseField
	values ValueGetter
}

func NewKeyField(field *types.BaseField, values ValueGetter) *KeyField {
	if field.Type == "" {
		field.Type = types.FacetKeyType
	}
	return &KeyField{
		BaseField: field,
		values:    values,
	}
}

func (f *KeyField) GetName() types.FacetName {
	return f.Name
}

func (f *KeyField) GetBaseField() *types.BaseField {
	return f.BaseField
}

func (f *KeyField) GetValues(p *types.Product) []string {
	return f.values(p)
}

func (f *KeyField) Match(p *types.Product, option string) bool {
	return slices.Contains(f.values(p), option)
}

func (f *KeyField) MatchAny(p *types.Product, options types.OptionSet) bool {
	for _, v := range f.values(p) {
		if options.Has(v) {
			return true
		}
	}
	return false
}

// Options returns the distinct values in order of first appearance.
func (f *KeyField) Options(products []types.Product) []string {
	seen := make(map[string]struct{})
	ret := make([]string, 0)
	for i := range products {
		for _, v := range f.values(&products[i]) {
			if v == "" {
				continue
			}
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			ret = append(ret, v)
		}
	}
	return ret
}

func (f *KeyField) Normalize(option string) (string, bool) {
	return option, option != ""
}

func ColorValues(p *types.Product) []string {
	return p.Colors
}

func SizeValues(p *types.Product) []string {
	return p.Sizes
}

func MaterialValues(p *types.Product) []string {
	if p.Material == "" {
		return nil
	}
	return []string{p.Material}
}
