package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	identityapp "github.com/mesafacil/backend/internal/application/identity"
	menuapp "github.com/mesafacil/backend/internal/application/menu"
	"github.com/mesafacil/backend/internal/application/policy"
	"github.com/mesafacil/backend/internal/domain/ratelimit"
	"github.com/mesafacil/backend/internal/infrastructure/cache"
	"github.com/mesafacil/backend/internal/infrastructure/config"
	"github.com/mesafacil/backend/internal/infrastructure/logger"
	"github.com/mesafacil/backend/internal/infrastructure/persistence"
	"github.com/mesafacil/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log := logger.New(cfg.Log)
	defer func() { _ = log.Sync() }()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	if err := db.AutoMigrate(); err != nil {
		log.Fatal("failed to migrate schema", zap.Error(err))
	}

	tenantRepo := persistence.NewTenantRepository(db.DB)
	menuRepo := persistence.NewMenuRepository(db.DB)
	windowStore := persistence.NewRateWindowRepository(db.DB)

	limiter := ratelimit.NewLimiter(windowStore, log)
	snapshotCache := cache.NewSnapshotCache(cfg.Redis)

	policyService := policy.NewService(tenantRepo, menuRepo, limiter, policy.ServiceConfig{
		Cache:    snapshotCache,
		CacheTTL: cfg.Policy.SnapshotCacheTTL,
		Logger:   log,
	})
	tenantService := identityapp.NewTenantService(tenantRepo, log)
	menuService := menuapp.NewService(menuRepo, log)

	engine := router.New(router.Dependencies{
		Logger:  log,
		Policy:  policyService,
		Tenants: tenantService,
		Menus:   menuService,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	go func() {
		log.Info("server starting",
			zap.String("app", cfg.App.Name),
			zap.String("port", cfg.App.Port),
			zap.String("env", cfg.App.Env),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
	log.Info("server stopped")
}
