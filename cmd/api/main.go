package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lazyfood/internal/api"
	"lazyfood/internal/core/ai/cache"
	aiService "lazyfood/internal/core/ai/service"
	"lazyfood/internal/core/catalog"
	"lazyfood/internal/infrastructure/config"
	"lazyfood/internal/pkg/common"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := common.InitLogger(cfg.LogLevel); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	common.LogInfo("starting application",
		zap.String("version", cfg.App.Version),
		zap.String("env", cfg.App.Env),
		zap.String("model", cfg.Gemini.Model),
		zap.String("database_driver", cfg.Database.Driver),
	)

	responseCache, err := cache.New(cfg)
	if err != nil {
		common.LogFatal("Failed to initialize response cache", zap.Error(err))
	}

	store, err := newStore(cfg)
	if err != nil {
		common.LogFatal("Failed to initialize recipe catalog store", zap.Error(err))
	}
	defer store.Close()

	svc := aiService.NewService(cfg, responseCache)
	defer svc.Close()

	router, err := api.SetupRouter(cfg, svc, store)
	if err != nil {
		common.LogError("Failed to setup router", zap.Error(err))
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		common.LogInfo("listening",
			zap.Int("port", cfg.Server.Port),
			zap.Bool("debug", cfg.App.Debug),
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			common.LogError("Failed to start server",
				zap.Error(err),
			)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	common.LogInfo("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		common.LogError("Server forced to shutdown",
			zap.Error(err),
		)
		os.Exit(1)
	}

	common.LogInfo("Server exited")
}

func newStore(cfg *config.Config) (catalog.Store, error) {
	switch cfg.Database.Driver {
	case config.DatabaseDriverSQLite:
		return catalog.NewSQLiteStore(cfg.Database.Path)
	case config.DatabaseDriverMemory:
		return catalog.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown database driver: %s", cfg.Database.Driver)
	}
}
