//go:build wireinject
// +build wireinject

package container

import (
	"context"

	"github.com/google/wire"
	"go.uber.org/zap"

	"github.com/narwhalmedia/catalog/internal/config"
)

// InitializeCatalog builds the HTTP API process
func InitializeCatalog(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*CatalogContainer, func(), error) {
	wire.Build(
		PersistenceSet,
		ApplicationSet,
		HTTPSet,
		wire.Struct(new(CatalogContainer), "*"),
	)
	return nil, nil, nil
}

// InitializeEncoderResults builds the encoder result consumer process
func InitializeEncoderResults(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*ConsumerContainer, func(), error) {
	wire.Build(
		PersistenceSet,
		ApplicationSet,
		ConsumerSet,
		wire.Struct(new(ConsumerContainer), "*"),
	)
	return nil, nil, nil
}
