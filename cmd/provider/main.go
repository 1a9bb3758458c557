package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/arunpandian9159/Booking-agent/internal/config"
	"github.com/arunpandian9159/Booking-agent/internal/middleware"
)

func main() {
	configPath := pflag.String("config", "", "path to booking-provider.yaml")
	pflag.Parse()

	if err := run(*configPath); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.LoadProvider(configPath)
	if err != nil {
		return err
	}
	logger, err := config.NewServerLogger(os.Stdout, cfg.LogLevel)
	if err != nil {
		return err
	}

	p, ok := profiles[cfg.Profile]
	if !ok {
		return fmt.Errorf("unknown provider type %q", cfg.Profile)
	}
	mock := NewMock(cfg.Profile, p, logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      middleware.Logging(logger)(mock.Routes()),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("provider listening", "type", cfg.Profile, "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("provider stopped")
	return nil
}
