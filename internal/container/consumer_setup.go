package container

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/narwhalmedia/catalog/internal/config"
	grpcinfra "github.com/narwhalmedia/catalog/internal/infrastructure/grpc"
	"github.com/narwhalmedia/catalog/internal/infrastructure/messaging"
	natsmsg "github.com/narwhalmedia/catalog/internal/infrastructure/messaging/nats"
	"github.com/narwhalmedia/catalog/internal/infrastructure/messaging/rabbitmq"
)

// ResultConsumer runs until its context is cancelled
type ResultConsumer interface {
	Run(ctx context.Context) error
}

// ConsumerWithHealth pairs the consumer with the checks of its broker
type ConsumerWithHealth struct {
	Consumer ResultConsumer
	Checks   map[string]grpcinfra.Check
}

// ProvideResultConsumer connects the inbound transport selected by
// events.transport. Kafka is supported for publishing only.
func ProvideResultConsumer(
	ctx context.Context,
	cfg *config.Config,
	handler *messaging.ResultHandler,
	db *gorm.DB,
	logger *zap.Logger,
) (ConsumerWithHealth, func(), error) {
	checks := map[string]grpcinfra.Check{"database": DatabaseCheck(db)}

	switch cfg.Events.Transport {
	case config.TransportRabbitMQ:
		client, cleanup, err := rabbitmq.NewClient(ctx, cfg, logger)
		if err != nil {
			return ConsumerWithHealth{}, nil, err
		}
		checks["rabbitmq"] = func(context.Context) error { return client.Health() }
		return ConsumerWithHealth{
			Consumer: rabbitmq.NewConsumer(client, handler, logger),
			Checks:   checks,
		}, cleanup, nil

	case config.TransportNATS:
		client, cleanup, err := natsmsg.NewClient(ctx, cfg, logger)
		if err != nil {
			return ConsumerWithHealth{}, nil, err
		}
		checks["nats"] = client.Health
		return ConsumerWithHealth{
			Consumer: natsmsg.NewConsumer(client, handler, logger),
			Checks:   checks,
		}, cleanup, nil

	default:
		return ConsumerWithHealth{}, nil, fmt.Errorf("events transport %q cannot consume encoder results", cfg.Events.Transport)
	}
}

// ProvideHealthServer exposes the consumer's health over gRPC
func ProvideHealthServer(cfg *config.Config, consumer ConsumerWithHealth, logger *zap.Logger) *grpcinfra.HealthServer {
	return grpcinfra.NewHealthServer(cfg.Server.GRPCPort, consumer.Checks, logger)
}
