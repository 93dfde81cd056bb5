package facet

import "github.com/blubolt/blubolt-centra-frontend/pkg/types"

type OptionResult struct {
	Value    string `json:"value"`
	Count    int    `json:"count"`
	Selected bool   `json:"selected,omitempty"`
}

// JsonFacet is a facet as rendered to clients: its settings plus the options still
// available under the current selection.
type JsonFacet struct {
	*types.BaseField
	Options []OptionResult `json:"options"`
}
