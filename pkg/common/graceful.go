package common

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// ShutdownHook runs after a termination signal and before the HTTP server shuts down.
// Errors are logged; shutdown continues regardless.
type ShutdownHook func(ctx context.Context) error

// RunServerWithShutdown serves until SIGINT or SIGTERM, then runs hooks in order, each
// with its own hookTimeout inside the shared shutdownTimeout, and finally shuts the
// server down gracefully.
//
//	server := common.NewServerWithTimeouts(&http.Server{Addr: ":8080", Handler: mux}, cfg)
//	common.RunServerWithShutdown(server, "storefront", cfg.Shutdown, cfg.Hook, closeTracking)
func RunServerWithShutdown(server *http.Server, name string, shutdownTimeout, hookTimeout time.Duration, hooks ...ShutdownHook) {
	if hookTimeout <= 0 {
		hookTimeout = 5 * time.Second
	}

	go func() {
		zap.S().Infof("starting %s on %s", name, server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.S().Fatalf("%s listen error: %v", name, err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	zap.S().Infof("shutdown signal received for %s", name)

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	runHooks(ctx, hookTimeout, hooks...)

	if err := server.Shutdown(ctx); err != nil {
		zap.S().Errorf("graceful shutdown failed: %v", err)
	} else {
		zap.S().Infof("%s shutdown complete", name)
	}
}

func runHooks(ctx context.Context, hookTimeout time.Duration, hooks ...ShutdownHook) {
	for i, h := range hooks {
		if h == nil {
			continue
		}
		hCtx, hCancel := context.WithTimeout(ctx, hookTimeout)
		if err := h(hCtx); err != nil {
			zap.S().Errorf("shutdown hook %d failed: %v", i, err)
		}
		if errors.Is(hCtx.Err(), context.DeadlineExceeded) {
			zap.S().Warnf("shutdown hook %d timed out", i)
		}
		hCancel()
	}
}

// TimeoutConfig holds the server and shutdown timeouts.
type TimeoutConfig struct {
	ReadHeader time.Duration
	Read       time.Duration
	Write      time.Duration
	Idle       time.Duration
	Shutdown   time.Duration
	Hook       time.Duration
}

// LoadTimeoutConfig overrides defaults from READ_HEADER_TIMEOUT, READ_TIMEOUT,
// WRITE_TIMEOUT, IDLE_TIMEOUT, SHUTDOWN_TIMEOUT and HOOK_TIMEOUT, each a whole number of
// seconds. Unparsable or non-positive values keep the default.
func LoadTimeoutConfig(defaults TimeoutConfig) TimeoutConfig {
	apply := func(curr *time.Duration, env string) {
		if v := os.Getenv(env); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				*curr = time.Duration(n) * time.Second
			}
		}
	}
	apply(&defaults.ReadHeader, "READ_HEADER_TIMEOUT")
	apply(&defaults.Read, "READ_TIMEOUT")
	apply(&defaults.Write, "WRITE_TIMEOUT")
	apply(&defaults.Idle, "IDLE_TIMEOUT")
	apply(&defaults.Shutdown, "SHUTDOWN_TIMEOUT")
	apply(&defaults.Hook, "HOOK_TIMEOUT")
	return defaults
}

func NewServerWithTimeouts(base *http.Server, cfg TimeoutConfig) *http.Server {
	if base == nil {
		base = &http.Server{}
	}
	base.ReadHeaderTimeout = cfg.ReadHeader
	base.ReadTimeout = cfg.Read
	base.WriteTimeout = cfg.Write
	base.IdleTimeout = cfg.Idle
	return base
}
