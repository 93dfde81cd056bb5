package cart

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/blubolt/blubolt-centra-frontend/pkg/types"
	"github.com/google/go-cmp/cmp"
)

var sweater = types.Product{
	Id:     3,
	Name:   "Cotton Blend Sweater",
	Price:  89.99,
	Colors: []string{"Black", "Gray", "Navy"},
	Sizes:  []string{"XS", "S", "M", "L", "XL"},
	Image:  "/images/placeholder.jpg",
}

var tee = types.Product{
	Id:     1,
	Name:   "Classic Cotton T-Shirt",
	Price:  29.99,
	Colors: []string{"White", "Black", "Navy"},
	Sizes:  []string{"XS", "S", "M", "L", "XL"},
}

func mustLine(t *testing.T, p *types.Product, color, size string, quantity int) CartItem {
	t.Helper()
	line, err := NewLine(p, color, size, quantity)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return line
}

func TestNewLineValidation(t *testing.T) {
	tests := []struct {
		color, size string
		quantity    int
		want        error
	}{
		{"", "M", 1, ErrSelectionRequired},
		{"Black", "", 1, ErrSelectionRequired},
		{"Red", "M", 1, ErrInvalidVariant},
		{"Black", "XXL", 1, ErrInvalidVariant},
		{"Black", "M", 0, ErrInvalidQuantity},
		{"Black", "M", 2, nil},
	}
	for _, tt := range tests {
		_, err := NewLine(&sweater, tt.color, tt.size, tt.quantity)
		if !errors.Is(err, tt.want) {
			t.Errorf("%s/%s/%d: expected %v, got %v", tt.color, tt.size, tt.quantity, tt.want, err)
		}
	}
}

func TestAddItemMergesSameVariant(t *testing.T) {
	c := NewCart()
	if c.MiniCartOpen() {
		t.Fatalf("mini cart should start closed")
	}
	c.AddItem(mustLine(t, &sweater, "Black", "M", 1))
	c.AddItem(mustLine(t, &sweater, "Black", "M", 2))
	c.AddItem(mustLine(t, &sweater, "Navy", "M", 1))
	items := c.Items()
	if len(items) != 2 {
		t.Fatalf("expected two lines, got %v", items)
	}
	if items[0].Quantity != 3 || items[1].Color != "Navy" {
		t.Errorf("unexpected lines %v", items)
	}
	if c.Count() != 4 {
		t.Errorf("expected 4 items, got %d", c.Count())
	}
	if !c.MiniCartOpen() {
		t.Errorf("expected mini cart to open on add")
	}
	if err := c.AddItem(CartItem{LineKey: LineKey{Id: 3}, Quantity: 0}); !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("expected ErrInvalidQuantity, got %v", err)
	}
}

func TestUpdateAndRemove(t *testing.T) {
	c := NewCart()
	c.AddItem(mustLine(t, &sweater, "Black", "M", 1))
	c.AddItem(mustLine(t, &tee, "White", "S", 1))
	key := LineKey{Id: 3, Color: "Black", Size: "M"}
	if err := c.UpdateQuantity(key, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Items()[0].Quantity != 5 {
		t.Errorf("expected quantity 5, got %v", c.Items())
	}
	if err := c.UpdateQuantity(key, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(c.Items()) != 1 {
		t.Errorf("expected quantity 0 to remove the line, got %v", c.Items())
	}
	if err := c.UpdateQuantity(key, 1); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("expected ErrItemNotFound, got %v", err)
	}
	if err := c.UpdateQuantity(key, -1); !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("expected ErrInvalidQuantity, got %v", err)
	}
	if err := c.RemoveItem(LineKey{Id: 1, Color: "White", Size: "S"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.RemoveItem(LineKey{Id: 1, Color: "White", Size: "S"}); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("expected ErrItemNotFound, got %v", err)
	}
}

func TestSummary(t *testing.T) {
	c := NewCart()
	c.AddItem(mustLine(t, &sweater, "Black", "M", 1))
	c.AddItem(mustLine(t, &tee, "White", "S", 2))
	if got := c.Total(); got != 149.97 {
		t.Errorf("expected total 149.97, got %v", got)
	}
	want := Summary{Subtotal: 149.97, Shipping: 0, Tax: 15, Total: 164.97}
	if diff := cmp.Diff(want, c.Summary()); diff != "" {
		t.Errorf("summary (-want +got):\n%s", diff)
	}
}

func TestItemsIsACopy(t *testing.T) {
	c := NewCart()
	c.AddItem(mustLine(t, &tee, "White", "S", 1))
	items := c.Items()
	items[0].Quantity = 99
	if c.Items()[0].Quantity != 1 {
		t.Errorf("cart was modified through Items")
	}
}

func TestSessionStoreLifecycle(t *testing.T) {
	s := NewSessionStore()
	a := s.Start("a")
	if s.Start("a") != a {
		t.Errorf("expected the same cart for the same session")
	}
	if _, ok := s.Get("b"); ok {
		t.Errorf("expected no cart for unknown session")
	}
	s.Start("b")
	if s.Len() != 2 {
		t.Errorf("expected two sessions, got %d", s.Len())
	}
	if !s.End("a") || s.End("a") {
		t.Errorf("expected End to report the session once")
	}
	if s.Start("a") == a {
		t.Errorf("expected a fresh cart after the session ended")
	}
}

func TestQuantityIsCapped(t *testing.T) {
	if _, err := NewLine(&sweater, "Black", "M", MaxQuantity+1); !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("expected ErrInvalidQuantity above the cap, got %v", err)
	}
	c := NewCart()
	if err := c.AddItem(CartItem{LineKey: LineKey{Id: 3, Color: "Black", Size: "M"}, Price: 89.99, Quantity: 1 << 62}); !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("expected ErrInvalidQuantity for a huge line, got %v", err)
	}
	line := mustLine(t, &sweater, "Black", "M", 60)
	if err := c.AddItem(line); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.AddItem(line); !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("expected merging past the cap to fail, got %v", err)
	}
	if err := c.UpdateQuantity(line.LineKey, 1<<62); !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("expected ErrInvalidQuantity on update, got %v", err)
	}
	if err := c.UpdateQuantity(line.LineKey, MaxQuantity); err != nil {
		t.Errorf("expected the cap itself to be allowed, got %v", err)
	}
	if c.Count() != MaxQuantity {
		t.Errorf("expected %d items, got %d", MaxQuantity, c.Count())
	}
	if s := c.Summary(); s.Subtotal != 8909.01 || s.Total <= s.Subtotal {
		t.Errorf("unexpected summary %+v", s)
	}
}

func TestViewIsConsistent(t *testing.T) {
	c := NewCart()
	lines := make([]CartItem, 0, 200)
	for i := 0; i < 200; i++ {
		lines = append(lines, mustLine(t, &sweater, sweater.Colors[i%3], sweater.Sizes[i%5], 1))
	}
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for _, line := range lines {
			c.AddItem(line)
		}
	}()
	for i := 0; i < 200; i++ {
		view := c.View()
		sum := 0
		for _, item := range view.Items {
			sum += item.Quantity
		}
		if sum != view.Count {
			t.Fatalf("view count %d disagrees with its items %d", view.Count, sum)
		}
	}
	wg.Wait()
}

func withClock(t *testing.T, at *time.Time) {
	t.Helper()
	prev := now
	now = func() time.Time { return *at }
	t.Cleanup(func() { now = prev })
}

func TestSessionStoreEvictsIdleSessions(t *testing.T) {
	clock := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	withClock(t, &clock)
	s := NewSessionStore()
	s.IdleTimeout = time.Hour
	s.Start("idle")
	s.Start("active")

	clock = clock.Add(45 * time.Minute)
	s.Start("active")
	clock = clock.Add(30 * time.Minute)

	if n := s.Evict(); n != 1 {
		t.Errorf("expected one eviction, got %d", n)
	}
	if _, ok := s.Get("idle"); ok {
		t.Errorf("expected the idle session to be dropped")
	}
	if _, ok := s.Get("active"); !ok {
		t.Errorf("expected the active session to be kept")
	}
}

func TestSessionStoreCap(t *testing.T) {
	clock := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	withClock(t, &clock)
	s := NewSessionStore()
	s.MaxSessions = 3
	for _, id := range []string{"a", "b", "c"} {
		s.Start(id)
		clock = clock.Add(time.Second)
	}
	s.Start("a")
	clock = clock.Add(time.Second)
	s.Start("d")
	if s.Len() != 3 {
		t.Fatalf("expected the store to stay at 3 sessions, got %d", s.Len())
	}
	if _, ok := s.Get("b"); ok {
		t.Errorf("expected the least recently used session to be dropped")
	}
	for _, id := range []string{"a", "c", "d"} {
		if _, ok := s.Get(id); !ok {
			t.Errorf("expected session %s to be kept", id)
		}
	}
}

func TestSessionStoreStartEviction(t *testing.T) {
	clock := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	withClock(t, &clock)
	s := NewSessionStore()
	s.IdleTimeout = time.Minute
	s.Start("a")
	clock = clock.Add(2 * time.Minute)
	s.StartEviction(time.Millisecond)
	defer s.Stop()
	deadline := time.Now().Add(2 * time.Second)
	for s.Len() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("expected the sweep to evict the idle session")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
