package main

import (
	"context"
	"flag"
	"net/http"
	"net/http/pprof"
	"os"
	"strconv"
	"time"

	"github.com/blubolt/blubolt-centra-frontend/pkg/cart"
	"github.com/blubolt/blubolt-centra-frontend/pkg/catalog"
	"github.com/blubolt/blubolt-centra-frontend/pkg/common"
	"github.com/blubolt/blubolt-centra-frontend/pkg/facet"
	"github.com/blubolt/blubolt-centra-frontend/pkg/index"
	"github.com/blubolt/blubolt-centra-frontend/pkg/server"
	"github.com/blubolt/blubolt-centra-frontend/pkg/tracking"
	"github.com/blubolt/blubolt-centra-frontend/pkg/types"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

var enableProfiling = flag.Bool("profiling", false, "enable profiling endpoints")
var rabbitUrl = os.Getenv("RABBIT_URL")
var redisUrl = os.Getenv("REDIS_URL")
var redisPassword = os.Getenv("REDIS_PASSWORD")
var catalogFile = os.Getenv("CATALOG_FILE")
var country = envOrDefault("COUNTRY", "se")
var listenAddress = envOrDefault("LISTEN_ADDRESS", ":8080")
var debugAddress = envOrDefault("DEBUG_ADDRESS", ":8081")
var debug = os.Getenv("DEBUG") == "1"

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func cacheTTL() time.Duration {
	if n, err := strconv.Atoi(os.Getenv("CACHE_TTL_SECONDS")); err == nil && n > 0 {
		return time.Duration(n) * time.Second
	}
	return 5 * time.Minute
}

func loadProducts() ([]types.Product, error) {
	if catalogFile == "" {
		return catalog.SampleProducts(), nil
	}
	return catalog.LoadFile(catalogFile)
}

func main() {
	flag.Parse()

	logger, err := common.NewLogger(debug)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	facets := facet.DefaultHandler()
	store := catalog.NewStore(facets)
	products, err := loadProducts()
	if err != nil {
		zap.S().Fatalf("Failed to load catalog: %v", err)
	}
	snapshot, err := store.Replace(products)
	if err != nil {
		zap.S().Fatalf("Invalid catalog: %v", err)
	}
	zap.S().Infof("Catalog loaded, %d products", snapshot.Len())

	srv := &server.WebServer{
		Catalog:  store,
		Engine:   index.NewEngine(facets),
		CacheTTL: cacheTTL(),
	}
	sessions := cart.NewSessionStore()
	sessions.StartEviction(5 * time.Minute)
	cartServer := &cart.CartServer{
		Sessions: sessions,
		Products: func(id types.ProductId) (*types.Product, error) {
			return store.Current().Get(id)
		},
	}
	hooks := []common.ShutdownHook{func(ctx context.Context) error {
		sessions.Stop()
		return nil
	}}

	if redisUrl != "" {
		cache := server.NewCache(redisUrl, redisPassword, 0)
		if err := cache.Ping(context.Background()); err != nil {
			zap.S().Warnf("Redis not reachable, continuing without cache: %v", err)
			cache.Close()
		} else {
			srv.Cache = cache
			hooks = append(hooks, func(ctx context.Context) error {
				return cache.Close()
			})
			zap.S().Infof("Response cache enabled, url: %s", redisUrl)
		}
	}

	if rabbitUrl != "" {
		conn, err := amqp.Dial(rabbitUrl)
		if err != nil {
			zap.S().Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		if err := store.ConnectAmqp(conn, country); err != nil {
			zap.S().Errorf("Failed to listen for catalog changes: %v", err)
		}
		trk, err := tracking.NewRabbitTracking(conn, country)
		if err != nil {
			zap.S().Errorf("Failed to create rabbit tracking: %v", err)
		} else {
			srv.Tracking = trk
			cartServer.Tracking = trk
			hooks = append(hooks, func(ctx context.Context) error {
				return trk.Close()
			})
		}
		hooks = append(hooks, func(ctx context.Context) error {
			return conn.Close()
		})
	}
	srv.Cart = cartServer

	go func() {
		debugMux := http.NewServeMux()
		debugMux.Handle("/metrics", promhttp.Handler())
		if *enableProfiling {
			debugMux.HandleFunc("/debug/pprof/", pprof.Index)
			debugMux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
			debugMux.HandleFunc("/debug/pprof/profile", pprof.Profile)
			debugMux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
			debugMux.HandleFunc("/debug/pprof/trace", pprof.Trace)
		}
		if err := http.ListenAndServe(debugAddress, debugMux); err != nil {
			zap.S().Errorf("debug server stopped: %v", err)
		}
	}()

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.Handle("/api/", http.StripPrefix("/api", srv.ClientHandler()))

	timeouts := common.LoadTimeoutConfig(common.TimeoutConfig{
		ReadHeader: 5 * time.Second,
		Read:       15 * time.Second,
		Write:      30 * time.Second,
		Idle:       60 * time.Second,
		Shutdown:   20 * time.Second,
		Hook:       5 * time.Second,
	})
	httpServer := common.NewServerWithTimeouts(&http.Server{Addr: listenAddress, Handler: mux}, timeouts)
	common.RunServerWithShutdown(httpServer, "storefront", timeouts.Shutdown, timeouts.Hook, hooks...)
}
