// Command server runs the sales reporting API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"ventasapi/internal/config"
	"ventasapi/internal/domain/auth"
	"ventasapi/internal/domain/sales"
	"ventasapi/internal/infrastructure/cache"
	v1 "ventasapi/internal/infrastructure/http/v1"
	"ventasapi/internal/infrastructure/storage/postgres"
	"ventasapi/internal/infrastructure/storage/postgres/auth_repo"
	"ventasapi/internal/infrastructure/storage/postgres/catalog_repo"
	"ventasapi/internal/infrastructure/storage/postgres/report_repo"
	"ventasapi/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Default().Fatalw("failed to load configuration", "error", err)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Development: cfg.IsDevelopment(),
	})
	if err != nil {
		logger.Default().Fatalw("failed to create logger", "error", err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = logger.WithLogger(ctx, log)

	if err := run(ctx, cfg, log); err != nil {
		log.Fatalw("server failed", "error", err)
	}
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	// The point-of-sale database is someone else's system; every
	// session on that pool is forced read-only.
	reportingPool, err := postgres.NewPool(ctx, postgres.ReadOnlyPoolConfig(cfg.ReportingDSN))
	if err != nil {
		return err
	}
	defer reportingPool.Close()
	log.Infow("connected to reporting database")

	authPool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(cfg.AuthDSN))
	if err != nil {
		return err
	}
	defer authPool.Close()
	log.Infow("connected to auth database")

	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				postgres.LogPoolStats(ctx, "reporting", reportingPool.Pool)
				postgres.LogPoolStats(ctx, "auth", authPool.Pool)
			}
		}
	}()

	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.JWTTTL)
	authService := auth.NewService(auth_repo.NewUserRepo(authPool.Pool), jwtService)

	auditService, err := postgres.NewAuditService(authPool.Pool)
	if err != nil {
		return err
	}

	catalog := cache.NewCatalogCache(
		catalog_repo.NewCatalogRepo(reportingPool.Pool),
		cfg.CatalogCacheTTL,
		cfg.CatalogCacheSize,
	)
	salesRepo := report_repo.NewSalesRepo(reportingPool.Pool)
	salesService := sales.NewService(salesRepo, salesRepo, catalog, auditService)

	router := v1.NewRouter(v1.RouterConfig{
		Logger:         log,
		ReportingPool:  reportingPool.Pool,
		AuthPool:       authPool.Pool,
		TokenValidator: jwtService,
		AuthService:    authService,
		SalesService:   salesService,
		CORSOrigins:    cfg.CORSOrigins,
		Development:    cfg.IsDevelopment(),
	})

	server := &http.Server{
		Addr:         ":" + cfg.AppPort,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infow("http server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Infow("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Infow("server stopped")
	return nil
}
