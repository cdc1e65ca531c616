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

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"

	"github.com/maxviazov/storefront-views/internal/config"
	"github.com/maxviazov/storefront-views/internal/handler"
	"github.com/maxviazov/storefront-views/internal/logger"
	"github.com/maxviazov/storefront-views/internal/repository"
	"github.com/maxviazov/storefront-views/internal/repository/postgres"
	"github.com/maxviazov/storefront-views/internal/service"
	"github.com/maxviazov/storefront-views/internal/session"
)

func main() {
	cfg, err := config.Load(configPath())
	if err != nil {
		log.Fatalf("config loading failed: %v", err)
	}

	appLogger, err := logger.New(&cfg.Logger)
	if err != nil {
		log.Fatalf("logger initialization failed: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, appLogger); err != nil {
		appLogger.Fatal().Err(err).Msg("service stopped with error")
	}
	appLogger.Info().Msg("service stopped")
}

func configPath() string {
	if p := os.Getenv("APP_CONFIG"); p != "" {
		return p
	}
	return "config.yaml"
}

func run(ctx context.Context, cfg *config.Config, appLogger zerolog.Logger) error {
	repo, err := repository.New(ctx, cfg.Postgres, &appLogger)
	if err != nil {
		return fmt.Errorf("postgres connection failed: %w", err)
	}
	defer repo.Close()

	sessions, err := session.NewManager(cfg.Session)
	if err != nil {
		return err
	}

	pool := repo.Pool()
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	if cfg.App.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	err = handler.Register(engine, handler.Deps{
		Pinger:        repo,
		Products:      service.NewProductService(postgres.NewProductRepository(pool), appLogger),
		Carts:         service.NewCartService(postgres.NewCartRepository(pool), appLogger),
		Users:         service.NewUserService(postgres.NewUserRepository(pool), appLogger),
		Sessions:      sessions,
		DefaultCartID: cfg.App.DefaultCartID,
		Logger:        appLogger,
		Registry:      reg,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		appLogger.Info().Str("addr", srv.Addr).Str("version", cfg.App.Version).Msg("storefront views listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	appLogger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.App.ShutdownTimeout)*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
