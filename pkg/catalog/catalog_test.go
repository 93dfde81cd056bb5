package catalog

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/blubolt/blubolt-centra-frontend/pkg/facet"
	"github.com/blubolt/blubolt-centra-frontend/pkg/types"
	"github.com/google/go-cmp/cmp"
)

func TestSampleCatalog(t *testing.T) {
	products := SampleProducts()
	if err := Validate(products); err != nil {
		t.Fatalf("sample catalog is invalid: %v", err)
	}
	if products[0].Name != "Classic Cotton T-Shirt" || products[0].Price != 29.99 {
		t.Errorf("unexpected first product %+v", products[0])
	}
}

func TestReplaceBumpsVersion(t *testing.T) {
	store := NewStore(facet.DefaultHandler())
	if store.Current().Version != 0 || store.Current().Len() != 0 {
		t.Fatalf("expected empty initial snapshot")
	}
	var notified []uint64
	store.OnChange(func(s *Snapshot) {
		notified = append(notified, s.Version)
	})
	first, err := store.Replace(SampleProducts())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := store.Replace(SampleProducts()[:2])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Version != 1 || second.Version != 2 {
		t.Errorf("expected versions 1 and 2, got %d and %d", first.Version, second.Version)
	}
	if store.Current() != second {
		t.Errorf("expected the latest snapshot to be current")
	}
	if first.Len() != 8 {
		t.Errorf("old snapshot changed, got %d products", first.Len())
	}
	if diff := cmp.Diff([]uint64{1, 2}, notified); diff != "" {
		t.Errorf("notifications (-want +got):\n%s", diff)
	}
	if second.Index.Len() != 2 {
		t.Errorf("expected index to follow the snapshot")
	}
}

func TestReplaceRejectsInvalid(t *testing.T) {
	store := NewStore(facet.DefaultHandler())
	tests := map[string][]types.Product{
		"duplicate id": {{Id: 1, Name: "a"}, {Id: 1, Name: "b"}},
		"negative":     {{Id: 1, Name: "a", Price: -1}},
		"nan":          {{Id: 1, Name: "a", Price: math.NaN()}},
		"no name":      {{Id: 1}},
		"empty color":  {{Id: 1, Name: "a", Colors: []string{""}}},
	}
	for name, products := range tests {
		if _, err := store.Replace(products); !errors.Is(err, ErrInvalidProduct) {
			t.Errorf("%s: expected ErrInvalidProduct, got %v", name, err)
		}
	}
	if store.Current().Version != 0 {
		t.Errorf("invalid catalogs must not be installed")
	}
}

func TestGet(t *testing.T) {
	store := NewStore(facet.DefaultHandler())
	snapshot, _ := store.Replace(SampleProducts())
	p, err := snapshot.Get(3)
	if err != nil || p.Name != "Cotton Blend Sweater" {
		t.Errorf("unexpected product %v %v", p, err)
	}
	if _, err := snapshot.Get(404); !errors.Is(err, ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
}

func TestInCategory(t *testing.T) {
	store := NewStore(facet.DefaultHandler())
	snapshot, _ := store.Replace(SampleProducts())
	ids := func(products []types.Product) []types.ProductId {
		ret := make([]types.ProductId, 0, len(products))
		for _, p := range products {
			ret = append(ret, p.Id)
		}
		return ret
	}
	if diff := cmp.Diff([]types.ProductId{1, 3, 5}, ids(snapshot.InCategory("women", ""))); diff != "" {
		t.Errorf("women (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]types.ProductId{4}, ids(snapshot.InCategory("Men", "new-arrivals"))); diff != "" {
		t.Errorf("men new arrivals (-want +got):\n%s", diff)
	}
	if got := snapshot.InCategory("", ""); len(got) != snapshot.Len() {
		t.Errorf("expected whole catalog, got %d", len(got))
	}
}

func TestHandleChange(t *testing.T) {
	store := NewStore(facet.DefaultHandler())
	body := []byte(`{"products":[{"id":9,"name":"Canvas Tote","price":25,"colors":["Natural"],"sizes":[],"material":"Canvas"}]}`)
	if err := store.HandleChange(body); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p, err := store.Current().Get(9); err != nil || p.Material != "Canvas" {
		t.Errorf("expected tote to be installed, got %v %v", p, err)
	}
	if err := store.HandleChange([]byte(`{"products":`)); err == nil {
		t.Errorf("expected decode error")
	}
}

func TestConcurrentReaders(t *testing.T) {
	store := NewStore(facet.DefaultHandler())
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				s := store.Current()
				_ = s.InCategory("women", "")
			}
		}()
	}
	for j := 0; j < 10; j++ {
		if _, err := store.Replace(SampleProducts()); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	}
	wg.Wait()
	if store.Current().Version != 10 {
		t.Errorf("expected version 10, got %d", store.Current().Version)
	}
}
