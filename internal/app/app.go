package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/arunpandian9159/Booking-agent/internal/catalog"
	"github.com/arunpandian9159/Booking-agent/internal/config"
	"github.com/arunpandian9159/Booking-agent/internal/handler"
	"github.com/arunpandian9159/Booking-agent/internal/middleware"
	"github.com/arunpandian9159/Booking-agent/internal/obs"
	"github.com/arunpandian9159/Booking-agent/internal/providers"
	"github.com/arunpandian9159/Booking-agent/internal/search"
	"github.com/arunpandian9159/Booking-agent/internal/search/cache"
	"github.com/arunpandian9159/Booking-agent/internal/search/ratelimit"
)

// Server is the wired dev backend.
type Server struct {
	Handler http.Handler
	cleanup []func()
}

// Close releases background resources.
func (s *Server) Close() {
	for _, f := range s.cleanup {
		f()
	}
}

// New wires the dev backend from cfg. Without provider URLs it prices trips
// with two in-process static providers.
func New(cfg config.Server, logger *slog.Logger) *Server {
	metrics := obs.NewMetrics(logger)

	var providersList []providers.Provider
	for i, u := range cfg.ProviderURLs {
		providersList = append(providersList,
			providers.NewHTTPProvider(fmt.Sprintf("provider%d", i+1), u, cfg.ProviderTimeout))
	}
	if len(providersList) == 0 {
		providersList = []providers.Provider{
			providers.NewStatic("static1"),
			providers.NewStatic("static2"),
		}
	}

	aggregator := search.NewAggregator(providersList, cfg.ProviderTimeout, metrics, logger)
	offerCache := cache.NewCache(cfg.CacheTTL)
	limiter := ratelimit.New(cfg.RateLimit, time.Minute)

	h := handler.New(catalog.Default(), aggregator, offerCache, limiter, metrics, logger, cfg.ResultFormat)

	mux := http.NewServeMux()
	h.Routes(mux)
	mux.HandleFunc("GET /healthz", obs.HealthHandler(logger))
	mux.HandleFunc("GET /metrics", metrics.MetricsHandler())

	return &Server{
		Handler: middleware.Logging(logger)(middleware.Recover(logger)(mux)),
		cleanup: []func(){offerCache.Close, limiter.Close},
	}
}

// Run loads configuration, serves until SIGINT or SIGTERM and shuts down
// gracefully.
func Run(configPath string) error {
	cfg, err := config.LoadServer(configPath)
	if err != nil {
		return err
	}

	logger, err := config.NewServerLogger(os.Stdout, cfg.LogLevel)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	server := New(cfg, logger)
	defer server.Close()

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      server.Handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server",
			"addr", srv.Addr,
			"result_format", cfg.ResultFormat,
			"providers", len(cfg.ProviderURLs),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-errCh:
		logger.Error("server error", "error", err)
		return err
	}

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
		return err
	}

	logger.Info("server stopped")
	return nil
}
