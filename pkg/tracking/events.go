package tracking

import (
	"net/http"
	"time"

	"github.com/blubolt/blubolt-centra-frontend/pkg/types"
)

const (
	SessionEventType uint16 = iota
	FilterEventType
	AddToCartEventType
)

type BaseEvent struct {
	SessionId string `json:"session_id"`
	Country   string `json:"country,omitempty"`
	Context   string `json:"context,omitempty"`
	Event     uint16 `json:"event"`
	Timestamp int64  `json:"ts"`
}

type SessionEvent struct {
	*BaseEvent
	UserAgent    string `json:"user_agent,omitempty"`
	Ip           string `json:"ip,omitempty"`
	Language     string `json:"language,omitempty"`
	PragmaHeader string `json:"pragma,omitempty"`
}

type FilterEvent struct {
	*BaseEvent
	Filters         map[types.FacetName][]string `json:"filters,omitempty"`
	Sort            types.SortOption             `json:"sort"`
	NumberOfResults int                          `json:"noi"`
	Referer         string                       `json:"referer,omitempty"`
}

type CartEvent struct {
	*BaseEvent
	Item     types.ProductId `json:"item"`
	Quantity int             `json:"quantity"`
}

var now = time.Now

func newBase(country, sessionId string, event uint16) *BaseEvent {
	return &BaseEvent{
		SessionId: sessionId,
		Country:   country,
		Context:   "b2c",
		Event:     event,
		Timestamp: now().Unix(),
	}
}

func clientIp(r *http.Request) string {
	if ip := r.Header.Get("X-Real-Ip"); ip != "" {
		return ip
	}
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return ip
	}
	return r.RemoteAddr
}

func NewSessionEvent(country, sessionId string, r *http.Request) *SessionEvent {
	return &SessionEvent{
		BaseEvent:    newBase(country, sessionId, SessionEventType),
		Language:     r.Header.Get("Accept-Language"),
		UserAgent:    r.UserAgent(),
		Ip:           clientIp(r),
		PragmaHeader: r.Header.Get("Pragma"),
	}
}

func NewFilterEvent(country, sessionId string, selection types.Selection, sort types.SortOption, results int, r *http.Request) *FilterEvent {
	filters := make(map[types.FacetName][]string)
	for name, options := range selection {
		if len(options) > 0 {
			filters[name] = options.Values()
		}
	}
	ret := &FilterEvent{
		BaseEvent:       newBase(country, sessionId, FilterEventType),
		Filters:         filters,
		Sort:            sort,
		NumberOfResults: results,
	}
	if r != nil {
		ret.Referer = r.Header.Get("Referer")
	}
	return ret
}

func NewCartEvent(country, sessionId string, id types.ProductId, quantity int) *CartEvent {
	return &CartEvent{
		BaseEvent: newBase(country, sessionId, AddToCartEventType),
		Item:      id,
		Quantity:  quantity,
	}
}
