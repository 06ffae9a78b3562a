// Package storage provides the asset stores used for video files and images.
package storage

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/narwhalmedia/catalog/internal/application/catalog"
	"github.com/narwhalmedia/catalog/internal/config"
)

var (
	_ catalog.AssetStore = (*LocalStorage)(nil)
	_ catalog.AssetStore = (*S3Storage)(nil)
)

// New returns the store selected by cfg.Storage.Type
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (catalog.AssetStore, error) {
	switch cfg.Storage.Type {
	case "local":
		return NewLocalStorage(cfg.Storage.LocalPath, logger)
	case "s3":
		return NewS3Storage(ctx, cfg.S3, logger)
	default:
		return nil, fmt.Errorf("unknown storage type: %q", cfg.Storage.Type)
	}
}
