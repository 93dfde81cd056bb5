package types

import (
	"maps"
	"slices"
	"strings"
)

// OptionSet holds the selected options of one facet.
type OptionSet map[string]struct{}

func NewOptionSet(values ...string) OptionSet {
	ret := make(OptionSet, len(values))
	for _, v := range values {
		ret[v] = struct{}{}
	}
	return ret
}

func (s OptionSet) Has(value string) bool {
	_, ok := s[value]
	return ok
}

// Values returns the options sorted, for stable output.
func (s OptionSet) Values() []string {
	return slices.Sorted(maps.Keys(s))
}

// Selection maps each facet to its selected options. Facets without options impose no
// constraint. A Selection is treated as a value: Toggle and WithOut return new selections
// and never modify the receiver.
type Selection map[FacetName]OptionSet

func NewSelection() Selection {
	return Selection{}
}

func (s Selection) Has(facet FacetName, option string) bool {
	return s[facet].Has(option)
}

func (s Selection) Options(facet FacetName) OptionSet {
	return s[facet]
}

func (s Selection) IsActive(facet FacetName) bool {
	return len(s[facet]) > 0
}

func (s Selection) IsEmpty() bool {
	for _, options := range s {
		if len(options) > 0 {
			return false
		}
	}
	return true
}

func (s Selection) Clone() Selection {
	ret := make(Selection, len(s))
	for facet, options := range s {
		ret[facet] = maps.Clone(options)
	}
	return ret
}

// Toggle adds the option when absent and removes it when present. A facet left without
// options is dropped from the result.
func (s Selection) Toggle(facet FacetName, option string) Selection {
	ret := s.Clone()
	options, ok := ret[facet]
	if !ok {
		options = OptionSet{}
		ret[facet] = options
	}
	if options.Has(option) {
		delete(options, option)
		if len(options) == 0 {
			delete(ret, facet)
		}
	} else {
		options[option] = struct{}{}
	}
	return ret
}

// WithOut returns the selection minus one facet. Option sets are shared with the receiver.
func (s Selection) WithOut(facet FacetName) Selection {
	ret := make(Selection, len(s))
	for f, options := range s {
		if f != facet {
			ret[f] = options
		}
	}
	return ret
}

// Key is a canonical encoding of the active facets, usable as a cache key.
func (s Selection) Key() string {
	var buffer strings.Builder
	names := slices.Sorted(maps.Keys(s))
	for _, name := range names {
		options := s[name]
		if len(options) == 0 {
			continue
		}
		if buffer.Len() > 0 {
			buffer.WriteString(";")
		}
		buffer.WriteString(string(name))
		buffer.WriteString(":")
		buffer.WriteString(strings.Join(options.Values(), "||"))
	}
	return buffer.String()
}
