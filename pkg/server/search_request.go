package server

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/blubolt/blubolt-centra-frontend/pkg/common/jsoncompat"
	"github.com/blubolt/blubolt-centra-frontend/pkg/facet"
	"github.com/blubolt/blubolt-centra-frontend/pkg/types"
	"github.com/gorilla/schema"
)

var (
	ErrUnknownFacet    = errors.New("unknown facet")
	ErrUnknownOption   = errors.New("unknown option")
	ErrUnknownSort     = errors.New("unknown sort")
	ErrMalformedFilter = errors.New("malformed filter")
)

const (
	defaultPageSize = 40
	maxPageSize     = 200
)

type StringFilter struct {
	Facet  string   `json:"facet"`
	Values []string `json:"values"`
}

type FacetRequest struct {
	Filters  []StringFilter `json:"filters" schema:"-"`
	Category string         `json:"category" schema:"category"`
	Sub      string         `json:"sub" schema:"sub"`
}

type SearchRequest struct {
	*FacetRequest
	Sort     string `json:"sort" schema:"sort,default:featured"`
	Page     int    `json:"page" schema:"page"`
	PageSize int    `json:"pageSize" schema:"size,default:40"`
}

func makeBaseFacetRequest() *FacetRequest {
	return &FacetRequest{
		Filters: []StringFilter{},
	}
}

func makeBaseSearchRequest() *SearchRequest {
	return &SearchRequest{
		FacetRequest: makeBaseFacetRequest(),
		Sort:         string(types.SortFeatured),
		PageSize:     defaultPageSize,
	}
}

func newDecoder() *schema.Decoder {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)
	return decoder
}

func GetQueryFromRequest(r *http.Request, searchRequest *SearchRequest) error {
	if r.Method == http.MethodGet {
		return queryFromRequestQuery(r.URL.Query(), searchRequest)
	}
	return jsoncompat.NewDecoder(r.Body).Decode(searchRequest)
}

func GetFacetQueryFromRequest(r *http.Request, facetRequest *FacetRequest) error {
	if r.Method == http.MethodGet {
		return facetQueryFromRequestQuery(r.URL.Query(), facetRequest)
	}
	return jsoncompat.NewDecoder(r.Body).Decode(facetRequest)
}

// decodeFiltersFromRequest reads str=<facet>:<option>||<option> parameters.
func decodeFiltersFromRequest(query url.Values, result *FacetRequest) error {
	for _, v := range query["str"] {
		name, options, ok := strings.Cut(v, ":")
		if !ok || name == "" || options == "" {
			return fmt.Errorf("%w: %q", ErrMalformedFilter, v)
		}
		result.Filters = append(result.Filters, StringFilter{
			Facet:  name,
			Values: strings.Split(options, "||"),
		})
	}
	return nil
}

func facetQueryFromRequestQuery(query url.Values, result *FacetRequest) error {
	if err := newDecoder().Decode(result, query); err != nil {
		return err
	}
	return decodeFiltersFromRequest(query, result)
}

func queryFromRequestQuery(query url.Values, result *SearchRequest) error {
	if err := newDecoder().Decode(result, query); err != nil {
		return err
	}
	return decodeFiltersFromRequest(query, result.FacetRequest)
}

// Selection validates the filters against the registered facets. Options are stored in
// their canonical form.
func (f *FacetRequest) Selection(handler *facet.FacetHandler) (types.Selection, error) {
	ret := types.NewSelection()
	for _, filter := range f.Filters {
		name, ok := types.ParseFacetName(filter.Facet)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownFacet, filter.Facet)
		}
		fc, ok := handler.GetFacet(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownFacet, filter.Facet)
		}
		for _, value := range filter.Values {
			option, ok := fc.Normalize(value)
			if !ok {
				return nil, fmt.Errorf("%w: %q for %s", ErrUnknownOption, value, name)
			}
			if _, ok := ret[name]; !ok {
				ret[name] = types.OptionSet{}
			}
			ret[name][option] = struct{}{}
		}
	}
	return ret, nil
}

func (s *SearchRequest) SortOption() (types.SortOption, error) {
	sort, ok := types.ParseSortOption(s.Sort)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownSort, s.Sort)
	}
	return sort, nil
}

// Window returns the bounds of the requested page within total items.
func (s *SearchRequest) Window(total int) (start, end int) {
	size := s.PageSize
	if size <= 0 {
		size = defaultPageSize
	}
	size = min(size, maxPageSize)
	page := max(s.Page, 0)
	if total <= 0 || page > (total-1)/size {
		return total, total
	}
	start = page * size
	end = min(start+size, total)
	return start, end
}
