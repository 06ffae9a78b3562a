package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/narwhalmedia/catalog/internal/config"
	"github.com/narwhalmedia/catalog/internal/container"
	"github.com/narwhalmedia/catalog/internal/logger"
)

const serviceName = "catalog-encoder-results"

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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c, cleanup, err := container.InitializeEncoderResults(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to initialize consumer", zap.Error(err))
	}
	defer cleanup()

	log.Info("consuming encoder results", zap.String("transport", cfg.Events.Transport))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return c.Consumer.Consumer.Run(gctx)
	})
	g.Go(func() error {
		return c.Health.Run(gctx)
	})

	if err := g.Wait(); err != nil && ctx.Err() == nil {
		log.Error("consumer stopped with error", zap.Error(err))
		return
	}
	log.Info("consumer stopped")
}
