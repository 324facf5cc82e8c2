package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/catalog-lab/catalog-api/internal/api"
	"github.com/catalog-lab/catalog-api/internal/catalog"
	"github.com/catalog-lab/catalog-api/internal/router"
	"github.com/catalog-lab/catalog-api/internal/store"
	"github.com/catalog-lab/catalog-api/pkg/config"
	"github.com/catalog-lab/catalog-api/pkg/logger"
	"github.com/catalog-lab/catalog-api/pkg/secrets"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Load configuration ---
	cfg := config.Load()

	logger.Init(cfg.ServiceName, cfg.Env, cfg.LogLevel)
	defer logger.Sync()
	logg := logger.S()
	logg.Info("starting [catalog-api]...")

	// --- Optional config overlay from AWS Secrets Manager ---
	stopCleaner := make(chan struct{})
	if cfg.SecretName != "" {
		provider, err := secrets.NewAWSProvider(ctx, cfg.AWSRegion)
		if err != nil {
			logg.Fatalw("failed to create AWS Secrets Manager provider", "error", err)
		}
		cache := secrets.NewCache[map[string]string](cfg.CacheTTL)
		go cache.StartCleaner(cfg.CleanupFreq, stopCleaner)

		resolver := secrets.NewResolver(provider, cache, logger.L())
		values, err := resolver.Resolve(ctx, cfg.SecretName)
		if err != nil {
			logg.Fatalw("failed to resolve config secret", "secret", cfg.SecretName, "error", err)
		}
		cfg.ApplySecret(values)
		logg.Infow("applied config secret", "secret", cfg.SecretName)
	}

	// --- Store ---
	st, err := newStore(ctx, cfg)
	if err != nil {
		logg.Fatalw("failed to init store", "backend", cfg.StoreBackend, "error", err)
	}
	logg.Infow("store initialized", "backend", cfg.StoreBackend, "table", cfg.TableName)

	// --- Catalog service + router ---
	svc := catalog.NewService(st, logger.L())
	rt := router.New(svc, cfg.StagePrefix, cfg.CORSOrigin, logger.L())

	// --- Fiber HTTP server ---
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
		BodyLimit:    cfg.HTTPBodyLimit,
	})

	handler := api.NewHandler(rt, st, logger.L())
	api.RegisterRoutes(app, handler, cfg.StaticDir)

	go func() {
		logg.Infof("HTTP API listening on :%d", cfg.Port)
		if err := app.Listen(fmt.Sprintf(":%d", cfg.Port)); err != nil {
			logg.Fatalw("fiber.listen_failed", "error", err)
		}
	}()

	logg.Infow("[catalog-api] running",
		"env", cfg.Env,
		"table", cfg.TableName,
		"store", cfg.StoreBackend)

	<-ctx.Done()
	logg.Info("shutting down [catalog-api]...")

	close(stopCleaner)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logg.Warnw("fiber.shutdown_failed", "error", err)
	}
}

// newStore picks the storage backend from config: DynamoDB by default,
// in-memory for local development.
func newStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.StoreBackend {
	case "memory":
		return store.NewMemory(), nil
	default:
		return store.NewDynamo(ctx, cfg.AWSRegion, cfg.TableName, cfg.DynamoEndpoint, logger.L())
	}
}
