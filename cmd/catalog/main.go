package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/narwhalmedia/catalog/internal/config"
	"github.com/narwhalmedia/catalog/internal/container"
	"github.com/narwhalmedia/catalog/internal/infrastructure/rest"
	"github.com/narwhalmedia/catalog/internal/logger"
)

const serviceName = "catalog-api"

func main() {
	cfg, err := config.Load(serviceName)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	log, err := logger.New(cfg.Server, cfg.Logger)
	if err != nil {
		panic(fmt.Sprintf("failed to create logger: %v", err))
	}
	defer log.Sync()

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	log.Info("starting service",
		zap.String("environment", cfg.Server.Environment),
		zap.String("events_transport", cfg.Events.Transport),
		zap.String("storage", cfg.Storage.Type),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c, cleanup, err := container.InitializeCatalog(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to initialize service", zap.Error(err))
	}
	defer cleanup()

	errCh := make(chan error, 1)
	go func() {
		errCh <- c.Server.Start()
	}()

	if err := waitForShutdown(cfg, c.Server, errCh, log); err != nil {
		log.Error("server stopped with error", zap.Error(err))
	}
	log.Info("service stopped")
}

func waitForShutdown(cfg *config.Config, server *rest.Server, errCh <-chan error, logger *zap.Logger) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}
	return nil
}
