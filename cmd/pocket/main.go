package main

import (
	"context"
	"errors"
	"net/http"
	"os"

	"golang.org/x/sync/errgroup"

	"pocket/internal/cache"
	"pocket/internal/cli"
	"pocket/internal/core"
	apphttp "pocket/internal/http"
	"pocket/internal/i18n"
	"pocket/internal/log"
	"pocket/internal/services"
	"pocket/internal/session"
)

func main() {
	boot := log.New(log.DefaultConfig())

	if err := cli.LoadEnvFile(); err != nil {
		boot.Warn("Failed to load .env file", log.FieldError, err)
	}

	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		boot.Error("Invalid configuration", log.FieldError, err)
		os.Exit(1)
	}

	logger := cli.SetupLogger(cfg)

	sessions := session.NewStore(
		session.StoreConfig{MaxSessions: cfg.MaxSessions, IdleTTL: cfg.SessionTTL},
		session.WithStoreLogger(logger),
		session.WithTrackerOptions(
			services.WithCurrency(core.Currency(cfg.DefaultCurrency)),
			services.WithLogger(logger),
		),
	)

	caches := cache.NewManager(logger)
	caches.Register(sessions.Cleaner())
	caches.StartCleanup(cfg.CleanupInterval)
	defer caches.Stop()

	srv, err := apphttp.NewServer(apphttp.Options{
		Addr:               ":" + cfg.Port,
		DefaultLanguage:    i18n.Parse(cfg.DefaultLanguage),
		RateLimitPerMinute: cfg.RateLimitPerMinute,
	}, sessions, logger)
	if err != nil {
		logger.Error("Failed to initialize server", log.FieldError, err)
		os.Exit(1)
	}

	ctx, cancel := cli.SignalContext(context.Background(), logger)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting pocket server",
			"port", cfg.Port,
			"currency", cfg.DefaultCurrency,
			"language", cfg.DefaultLanguage,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer shutdownCancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
