package cart

import (
	"errors"
	"math"
	"slices"
	"sync"

	"github.com/blubolt/blubolt-centra-frontend/pkg/types"
)

var (
	ErrItemNotFound      = errors.New("item not in cart")
	ErrSelectionRequired = errors.New("please select both color and size")
	ErrInvalidVariant    = errors.New("color or size not available for product")
	ErrInvalidQuantity   = errors.New("invalid quantity")
)

const TaxRate = 0.1

// MaxQuantity caps the quantity of a single cart line.
const MaxQuantity = 99

// LineKey identifies a cart line: the same product in another color or size is a
// separate line.
type LineKey struct {
	Id    types.ProductId `json:"id"`
	Color string          `json:"color"`
	Size  string          `json:"size"`
}

type CartItem struct {
	LineKey
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Image    string  `json:"image,omitempty"`
}

// NewLine builds a cart line for a product variant. Both color and size must be chosen
// and must belong to the product.
func NewLine(p *types.Product, color, size string, quantity int) (CartItem, error) {
	if color == "" || size == "" {
		return CartItem{}, ErrSelectionRequired
	}
	if !p.HasColor(color) || !p.HasSize(size) {
		return CartItem{}, ErrInvalidVariant
	}
	if quantity <= 0 || quantity > MaxQuantity {
		return CartItem{}, ErrInvalidQuantity
	}
	return CartItem{
		LineKey:  LineKey{Id: p.Id, Color: color, Size: size},
		Name:     p.Name,
		Price:    p.Price,
		Quantity: quantity,
		Image:    p.Image,
	}, nil
}

type Summary struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// Cart is the cart of one session. It is safe for concurrent use.
type Cart struct {
	mu           sync.Mutex
	items        []CartItem
	miniCartOpen bool
}

func NewCart() *Cart {
	return &Cart{items: make([]CartItem, 0)}
}

func (c *Cart) indexOf(key LineKey) int {
	return slices.IndexFunc(c.items, func(item CartItem) bool {
		return item.LineKey == key
	})
}

// AddItem merges the quantity into an existing line or appends a new one, and opens the
// mini cart. A line never holds more than MaxQuantity.
func (c *Cart) AddItem(item CartItem) error {
	if item.Quantity <= 0 || item.Quantity > MaxQuantity {
		return ErrInvalidQuantity
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if idx := c.indexOf(item.LineKey); idx >= 0 {
		if c.items[idx].Quantity+item.Quantity > MaxQuantity {
			return ErrInvalidQuantity
		}
		c.items[idx].Quantity += item.Quantity
	} else {
		c.items = append(c.items, item)
	}
	c.miniCartOpen = true
	return nil
}

func (c *Cart) RemoveItem(key LineKey) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx := c.indexOf(key)
	if idx < 0 {
		return ErrItemNotFound
	}
	c.items = slices.Delete(c.items, idx, idx+1)
	return nil
}

// UpdateQuantity sets the quantity of a line; zero removes it.
func (c *Cart) UpdateQuantity(key LineKey, quantity int) error {
	if quantity < 0 || quantity > MaxQuantity {
		return ErrInvalidQuantity
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	idx := c.indexOf(key)
	if idx < 0 {
		return ErrItemNotFound
	}
	if quantity == 0 {
		c.items = slices.Delete(c.items, idx, idx+1)
	} else {
		c.items[idx].Quantity = quantity
	}
	return nil
}

func (c *Cart) Items() []CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.items)
}

func (c *Cart) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count()
}

func (c *Cart) count() int {
	count := 0
	for _, item := range c.items {
		count += item.Quantity
	}
	return count
}

func toCents(v float64) int64 {
	return int64(math.Round(v * 100))
}

func fromCents(v int64) float64 {
	return float64(v) / 100
}

func (c *Cart) subtotalCents() int64 {
	var total int64
	for _, item := range c.items {
		total += toCents(item.Price) * int64(item.Quantity)
	}
	return total
}

// Total is the sum of price times quantity over all lines.
func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return fromCents(c.subtotalCents())
}

// Summary adds free shipping and tax at TaxRate to the total.
func (c *Cart) Summary() Summary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.summary()
}

func (c *Cart) summary() Summary {
	subtotal := c.subtotalCents()
	tax := int64(math.Round(float64(subtotal) * TaxRate))
	return Summary{
		Subtotal: fromCents(subtotal),
		Shipping: 0,
		Tax:      fromCents(tax),
		Total:    fromCents(subtotal + tax),
	}
}

func (c *Cart) SetMiniCartOpen(open bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.miniCartOpen = open
}

func (c *Cart) MiniCartOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.miniCartOpen
}

type CartView struct {
	Items        []CartItem `json:"items"`
	Count        int        `json:"count"`
	MiniCartOpen bool       `json:"miniCartOpen"`
	Summary      Summary    `json:"summary"`
}

// View is a consistent snapshot of the cart.
func (c *Cart) View() CartView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CartView{
		Items:        slices.Clone(c.items),
		Count:        c.count(),
		MiniCartOpen: c.miniCartOpen,
		Summary:      c.summary(),
	}
}
