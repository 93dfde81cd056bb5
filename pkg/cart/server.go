package cart

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/blubolt/blubolt-centra-frontend/pkg/common"
	"github.com/blubolt/blubolt-centra-frontend/pkg/common/jsoncompat"
	"github.com/blubolt/blubolt-centra-frontend/pkg/tracking"
	"github.com/blubolt/blubolt-centra-frontend/pkg/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	itemsAdded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_cart_items_added_total",
		Help: "Number of items added to carts",
	})
)

type ProductLookup func(id types.ProductId) (*types.Product, error)

type CartServer struct {
	Sessions *SessionStore
	Products ProductLookup
	Tracking tracking.Tracking
}

type CartInput struct {
	LineKey
	Quantity int `json:"quantity"`
}

type MiniCartInput struct {
	Open bool `json:"open"`
}

func decodeBody(r *http.Request, v any) error {
	if err := jsoncompat.NewDecoder(r.Body).Decode(v); err != nil {
		return common.BadRequest(fmt.Errorf("invalid body: %w", err))
	}
	return nil
}

func cartError(err error) error {
	switch {
	case errors.Is(err, ErrItemNotFound):
		return common.NotFound(err)
	case errors.Is(err, ErrSelectionRequired), errors.Is(err, ErrInvalidVariant), errors.Is(err, ErrInvalidQuantity):
		return common.BadRequest(err)
	}
	return err
}

func (s *CartServer) tracker() common.SessionTracker {
	if s.Tracking == nil {
		return nil
	}
	return s.Tracking
}

func (s *CartServer) GetCart(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	return enc.Encode(s.Sessions.Start(sessionId).View())
}

// AddItem adds a product variant; quantity defaults to one.
func (s *CartServer) AddItem(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	var input CartInput
	if err := decodeBody(r, &input); err != nil {
		return err
	}
	if input.Quantity == 0 {
		input.Quantity = 1
	}
	p, err := s.Products(input.Id)
	if err != nil {
		return common.NotFound(err)
	}
	line, err := NewLine(p, input.Color, input.Size, input.Quantity)
	if err != nil {
		return cartError(err)
	}
	c := s.Sessions.Start(sessionId)
	if err := c.AddItem(line); err != nil {
		return cartError(err)
	}
	itemsAdded.Add(float64(line.Quantity))
	if s.Tracking != nil {
		s.Tracking.TrackAddToCart(sessionId, line.Id, line.Quantity)
	}
	return enc.Encode(c.View())
}

func (s *CartServer) UpdateQuantity(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	var input CartInput
	if err := decodeBody(r, &input); err != nil {
		return err
	}
	c := s.Sessions.Start(sessionId)
	if err := c.UpdateQuantity(input.LineKey, input.Quantity); err != nil {
		return cartError(err)
	}
	return enc.Encode(c.View())
}

func (s *CartServer) RemoveItem(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	var key LineKey
	if err := decodeBody(r, &key); err != nil {
		return err
	}
	c := s.Sessions.Start(sessionId)
	if err := c.RemoveItem(key); err != nil {
		return cartError(err)
	}
	return enc.Encode(c.View())
}

func (s *CartServer) SetMiniCart(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	var input MiniCartInput
	if err := decodeBody(r, &input); err != nil {
		return err
	}
	c := s.Sessions.Start(sessionId)
	c.SetMiniCartOpen(input.Open)
	return enc.Encode(c.View())
}

// EndSession drops the session's cart and clears the session cookie.
func (s *CartServer) EndSession(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(common.SessionCookieName); err == nil {
		s.Sessions.End(c.Value)
	}
	common.ClearSessionCookie(w, r)
	w.WriteHeader(http.StatusNoContent)
}

// Register adds the cart routes to mux.
func (s *CartServer) Register(mux *http.ServeMux) {
	trk := s.tracker()
	mux.HandleFunc("GET /cart", common.JsonHandler(trk, s.GetCart))
	mux.HandleFunc("POST /cart", common.JsonHandler(trk, s.AddItem))
	mux.HandleFunc("PUT /cart", common.JsonHandler(trk, s.UpdateQuantity))
	mux.HandleFunc("DELETE /cart", common.JsonHandler(trk, s.RemoveItem))
	mux.HandleFunc("OPTIONS /cart", common.RespondToOptions)
	mux.HandleFunc("POST /cart/mini", common.JsonHandler(trk, s.SetMiniCart))
	mux.HandleFunc("DELETE /session", s.EndSession)
}

func (s *CartServer) CartHandler() *http.ServeMux {
	mux := http.NewServeMux()
	s.Register(mux)
	return mux
}
