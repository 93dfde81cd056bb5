package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/blubolt/blubolt-centra-frontend/pkg/common/jsoncompat"
	"github.com/blubolt/blubolt-centra-frontend/pkg/facet"
	"github.com/blubolt/blubolt-centra-frontend/pkg/index"
	"github.com/blubolt/blubolt-centra-frontend/pkg/types"
)

//go:embed data/catalog.json
var sampleCatalog []byte

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidProduct  = errors.New("invalid product")
)

// Snapshot is one immutable version of the catalog together with its facet index.
type Snapshot struct {
	Version  uint64
	Products []types.Product
	Index    *index.Index
	byId     map[types.ProductId]int
}

func (s *Snapshot) Get(id types.ProductId) (*types.Product, error) {
	idx, ok := s.byId[id]
	if !ok {
		return nil, fmt.Errorf("product %d: %w", id, ErrProductNotFound)
	}
	return &s.Products[idx], nil
}

func (s *Snapshot) Len() int {
	return len(s.Products)
}

// InCategory returns the products of a category, and of a sub category when sub is set,
// comparing slugs. An empty category returns the whole catalog.
func (s *Snapshot) InCategory(category, sub string) []types.Product {
	if category == "" && sub == "" {
		return s.Products
	}
	category, sub = Slug(category), Slug(sub)
	ret := make([]types.Product, 0)
	for _, p := range s.Products {
		if category != "" && Slug(p.Category) != category {
			continue
		}
		if sub != "" && Slug(p.Subcategory) != sub {
			continue
		}
		ret = append(ret, p)
	}
	return ret
}

func Validate(products []types.Product) error {
	seen := make(map[types.ProductId]struct{}, len(products))
	for _, p := range products {
		if _, ok := seen[p.Id]; ok {
			return fmt.Errorf("%w: duplicate id %d", ErrInvalidProduct, p.Id)
		}
		seen[p.Id] = struct{}{}
		if p.Name == "" {
			return fmt.Errorf("%w: product %d has no name", ErrInvalidProduct, p.Id)
		}
		if math.IsNaN(p.Price) || math.IsInf(p.Price, 0) || p.Price < 0 {
			return fmt.Errorf("%w: product %d has price %v", ErrInvalidProduct, p.Id, p.Price)
		}
		if slices.Contains(p.Colors, "") {
			return fmt.Errorf("%w: product %d has an empty color", ErrInvalidProduct, p.Id)
		}
	}
	return nil
}

// Store holds the current catalog snapshot. Readers never block; replacements are
// serialized and bump the version.
type Store struct {
	mu        sync.Mutex
	current   atomic.Pointer[Snapshot]
	facets    *facet.FacetHandler
	listeners []func(*Snapshot)
}

func NewStore(facets *facet.FacetHandler) *Store {
	s := &Store{facets: facets}
	s.current.Store(&Snapshot{
		Index: index.NewIndex(facets, nil),
		byId:  map[types.ProductId]int{},
	})
	return s
}

func (s *Store) Current() *Snapshot {
	return s.current.Load()
}

// OnChange registers fn to be called with every new snapshot.
func (s *Store) OnChange(fn func(*Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Store) Replace(products []types.Product) (*Snapshot, error) {
	if err := Validate(products); err != nil {
		return nil, err
	}
	products = slices.Clone(products)
	byId := make(map[types.ProductId]int, len(products))
	for i, p := range products {
		byId[p.Id] = i
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	next := &Snapshot{
		Version:  s.current.Load().Version + 1,
		Products: products,
		Index:    index.NewIndex(s.facets, products),
		byId:     byId,
	}
	s.current.Store(next)
	for _, fn := range s.listeners {
		fn(next)
	}
	return next, nil
}

func Decode(data []byte) ([]types.Product, error) {
	var products []types.Product
	if err := jsoncompat.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return products, nil
}

func SampleProducts() []types.Product {
	products, err := Decode(sampleCatalog)
	if err != nil {
		panic(err)
	}
	return products
}

func LoadFile(path string) ([]types.Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}
