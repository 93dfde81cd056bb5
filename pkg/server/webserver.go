package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/blubolt/blubolt-centra-frontend/pkg/cart"
	"github.com/blubolt/blubolt-centra-frontend/pkg/catalog"
	"github.com/blubolt/blubolt-centra-frontend/pkg/common"
	"github.com/blubolt/blubolt-centra-frontend/pkg/common/jsoncompat"
	"github.com/blubolt/blubolt-centra-frontend/pkg/facet"
	"github.com/blubolt/blubolt-centra-frontend/pkg/index"
	"github.com/blubolt/blubolt-centra-frontend/pkg/tracking"
	"github.com/blubolt/blubolt-centra-frontend/pkg/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var (
	noSearches = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_searches_total",
		Help: "The total number of processed product listings",
	})
	facetSearches = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_facets_total",
		Help: "The total number of processed facet requests",
	})
	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_cache_hits_total",
		Help: "Responses served from the cache",
	})
	searchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "storefront_search_duration_seconds",
		Help:    "Time spent filtering, sorting and counting facets",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
	})
)

const tracerName = "storefront/server"

var tracer = otel.Tracer(tracerName)

type WebServer struct {
	Catalog  *catalog.Store
	Engine   *index.Engine
	Cache    ResponseCache
	CacheTTL time.Duration
	Tracking tracking.Tracking
	Cart     *cart.CartServer
}

type searchResult struct {
	items  []types.Product
	facets []facet.JsonFacet
}

// search filters the snapshot. Category pages scan their slice of the catalog with a
// render pass; the full catalog is answered from the snapshot's index.
func (ws *WebServer) search(ctx context.Context, snapshot *catalog.Snapshot, category, sub string, sel types.Selection, sort types.SortOption, withItems bool) searchResult {
	start := time.Now()
	defer func() {
		searchDuration.Observe(time.Since(start).Seconds())
	}()
	_, span := tracer.Start(ctx, "search")
	defer span.End()
	span.SetAttributes(
		attribute.String("category", category),
		attribute.String("sub", sub),
		attribute.String("selection", sel.Key()),
		attribute.Int64("catalog.version", int64(snapshot.Version)),
	)

	var ret searchResult
	if category == "" && sub == "" {
		if withItems {
			ret.items = snapshot.Index.FilterAndSort(sel, sort)
		}
		ret.facets = snapshot.Index.Facets(sel)
	} else {
		pass := ws.Engine.NewPass(snapshot.InCategory(category, sub), sel)
		if withItems {
			ret.items = pass.Products(sort)
		}
		ret.facets = pass.Facets()
	}
	span.SetAttributes(attribute.Int("hits", len(ret.items)))
	return ret
}

func (ws *WebServer) tracker() common.SessionTracker {
	if ws.Tracking == nil {
		return nil
	}
	return ws.Tracking
}

// cached writes the cached response for key, or encodes and stores the result of fn.
func (ws *WebServer) cached(ctx context.Context, w http.ResponseWriter, key string, fn func() any) error {
	if ws.Cache != nil {
		data, err := ws.Cache.Get(ctx, key)
		if err == nil {
			cacheHits.Inc()
			w.Header().Set("X-Cache", "HIT")
			_, err = w.Write(data)
			return err
		}
		if !errors.Is(err, ErrCacheMiss) {
			zap.S().Warnf("cache get failed: %v", err)
		}
	}
	var buf bytes.Buffer
	if err := jsoncompat.NewEncoder(&buf).Encode(fn()); err != nil {
		return err
	}
	if ws.Cache != nil {
		if err := ws.Cache.Set(ctx, key, buf.Bytes(), ws.CacheTTL); err != nil {
			zap.S().Warnf("cache set failed: %v", err)
		}
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func (ws *WebServer) Products(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	sr := makeBaseSearchRequest()
	if err := GetQueryFromRequest(r, sr); err != nil {
		return common.BadRequest(err)
	}
	sel, err := sr.Selection(ws.Engine.Facets)
	if err != nil {
		return common.BadRequest(err)
	}
	sort, err := sr.SortOption()
	if err != nil {
		return common.BadRequest(err)
	}
	noSearches.Inc()
	snapshot := ws.Catalog.Current()
	category, sub := catalog.Slug(sr.Category), catalog.Slug(sr.Sub)
	key := cacheKey("products", snapshot.Version, category, sub, sel.Key(), sort, sr.Page, sr.PageSize)
	total := -1
	w.Header().Set("Cache-Control", "public, stale-while-revalidate=120")
	err = ws.cached(r.Context(), w, key, func() any {
		result := ws.search(r.Context(), snapshot, category, sub, sel, sort, true)
		total = len(result.items)
		from, to := sr.Window(total)
		return SearchResponse{
			Items:     result.items[from:to],
			Facets:    result.facets,
			Sort:      sort,
			Page:      sr.Page,
			PageSize:  to - from,
			TotalHits: total,
		}
	})
	if err == nil && total >= 0 && ws.Tracking != nil && !sel.IsEmpty() {
		ws.Tracking.TrackFilter(sessionId, sel, sort, total, r)
	}
	return err
}

func (ws *WebServer) Facets(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	fr := makeBaseFacetRequest()
	if err := GetFacetQueryFromRequest(r, fr); err != nil {
		return common.BadRequest(err)
	}
	sel, err := fr.Selection(ws.Engine.Facets)
	if err != nil {
		return common.BadRequest(err)
	}
	facetSearches.Inc()
	snapshot := ws.Catalog.Current()
	category, sub := catalog.Slug(fr.Category), catalog.Slug(fr.Sub)
	key := cacheKey("facets", snapshot.Version, category, sub, sel.Key())
	return ws.cached(r.Context(), w, key, func() any {
		result := ws.search(r.Context(), snapshot, category, sub, sel, types.SortFeatured, false)
		return FacetResponse{
			Facets:    result.facets,
			TotalHits: ws.countMatches(snapshot, category, sub, sel),
		}
	})
}

func (ws *WebServer) countMatches(snapshot *catalog.Snapshot, category, sub string, sel types.Selection) int {
	if category == "" && sub == "" {
		return snapshot.Index.Match(sel).Len()
	}
	return len(ws.Engine.Filter(snapshot.InCategory(category, sub), sel))
}

func (ws *WebServer) GetProduct(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil {
		return common.BadRequest(fmt.Errorf("invalid product id %q", r.PathValue("id")))
	}
	p, err := ws.Catalog.Current().Get(types.ProductId(id))
	if err != nil {
		return common.NotFound(err)
	}
	return enc.Encode(p)
}

func (ws *WebServer) Navigation(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	w.Header().Set("Cache-Control", "public, max-age=3600")
	return enc.Encode(catalog.Menu())
}

func (ws *WebServer) SortOptions(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	ret := make([]SortOptionResponse, 0, len(types.SortOptions))
	for _, s := range types.SortOptions {
		ret = append(ret, SortOptionResponse{Value: s, Label: s.Label()})
	}
	return enc.Encode(ret)
}

func (ws *WebServer) ClientHandler() *http.ServeMux {
	trk := ws.tracker()
	srv := http.NewServeMux()
	srv.HandleFunc("/products", common.JsonHandler(trk, ws.Products))
	srv.HandleFunc("/facets", common.JsonHandler(trk, ws.Facets))
	srv.HandleFunc("GET /products/{id}", common.JsonHandler(trk, ws.GetProduct))
	srv.HandleFunc("GET /navigation", common.JsonHandler(trk, ws.Navigation))
	srv.HandleFunc("GET /sort-options", common.JsonHandler(trk, ws.SortOptions))
	if ws.Cart != nil {
		ws.Cart.Register(srv)
	}
	return srv
}
