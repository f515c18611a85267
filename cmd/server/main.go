package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/SARVESHVARADKAR123/leetproxy/internal/cache"
	"github.com/SARVESHVARADKAR123/leetproxy/internal/config"
	"github.com/SARVESHVARADKAR123/leetproxy/internal/handler"
	"github.com/SARVESHVARADKAR123/leetproxy/internal/observability"
	"github.com/SARVESHVARADKAR123/leetproxy/internal/service"
	"github.com/SARVESHVARADKAR123/leetproxy/internal/upstream"
)

func main() {
	cfg := config.Load()

	// Observability
	observability.InitLogger(cfg.ServiceName, cfg.LogLevel)
	log := observability.Log
	defer log.Sync()

	if cfg.TracingEnabled {
		tp, err := observability.InitTracer(cfg.ServiceName, cfg.JaegerURL)
		if err != nil {
			log.Fatal("failed to initialize tracer", zap.Error(err))
		}
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				log.Error("failed to shutdown tracer provider", zap.Error(err))
			}
		}()
	}

	ctx, cancel := setupSignalHandler(log)
	defer cancel()

	// Cache
	store := newStore(ctx, cfg, log)
	profileCache := &cache.ProfileCache{
		Store:   store,
		Prefix:  cfg.CacheKeyPrefix,
		TTL:     cfg.CacheTTL,
		Timeout: cfg.CacheTimeout,
	}

	// Upstream
	client := upstream.NewClient(cfg.UpstreamURL, cfg.UpstreamUserAgent, cfg.UpstreamTimeout)
	fetcher := upstream.NewBreaker(client, upstream.BreakerSettings{})

	profileSvc := &service.ProfileService{
		Cache:        profileCache,
		Upstream:     fetcher,
		FetchTimeout: cfg.UpstreamTimeout + cfg.CacheTimeout,
	}

	// HTTP Observability server (metrics + health)
	obsMux := chi.NewRouter()
	obsMux.Use(observability.MetricsMiddleware(cfg.ServiceName))
	obsMux.Handle("/metrics", promhttp.Handler())
	obsMux.Get("/health/live", observability.HealthLiveHandler)
	obsMux.Get("/health/ready", observability.HealthReadyHandler(profileCache))

	obsSrv := &http.Server{Addr: cfg.ObsHTTPAddr, Handler: obsMux}
	go func() {
		log.Info("starting observability server", zap.String("addr", cfg.ObsHTTPAddr))
		if err := obsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("observability server error", zap.Error(err))
		}
	}()

	// API server
	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           handler.NewRouter(cfg, profileSvc, profileCache),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Info("leetproxy HTTP started", zap.String("port", cfg.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	performGracefulShutdown(srv, obsSrv, store, log)
}

// newStore connects the configured cache backend. An unreachable Redis is
// logged but not fatal: every request then falls through to upstream.
func newStore(ctx context.Context, cfg *config.Config, log *zap.Logger) cache.Store {
	if cfg.CacheBackend == config.CacheBackendMemory {
		log.Info("using in-memory cache")
		return cache.NewMemory()
	}

	rs := cache.NewRedis(cfg.RedisAddr(), cfg.RedisPassword, cfg.RedisDB)
	pingCtx, cancel := context.WithTimeout(ctx, cfg.CacheTimeout)
	defer cancel()
	if err := rs.Ping(pingCtx); err != nil {
		log.Warn("redis unreachable, continuing without cache hits", zap.String("addr", cfg.RedisAddr()), zap.Error(err))
	} else {
		log.Info("connected to redis", zap.String("addr", cfg.RedisAddr()))
	}
	return rs
}

func setupSignalHandler(log *zap.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Info("received signal, initiating shutdown", zap.String("signal", sig.String()))
		cancel()
	}()
	return ctx, cancel
}

func performGracefulShutdown(api, obs *http.Server, store cache.Store, log *zap.Logger) {
	log.Info("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := api.Shutdown(ctx); err != nil {
		log.Error("error during API server shutdown", zap.Error(err))
	}
	if err := obs.Shutdown(ctx); err != nil {
		log.Error("error during observability server shutdown", zap.Error(err))
	}
	if err := store.Close(); err != nil {
		log.Error("error closing cache", zap.Error(err))
	}
	log.Info("shutdown complete, exiting")
}
