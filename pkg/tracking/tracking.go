package tracking

import (
	"net/http"

	"github.com/blubolt/blubolt-centra-frontend/pkg/types"
)

type Tracking interface {
	TrackSession(sessionId string, r *http.Request)
	TrackFilter(sessionId string, selection types.Selection, sort types.SortOption, results int, r *http.Request)
	TrackAddToCart(sessionId string, id types.ProductId, quantity int)
	Close() error
}
