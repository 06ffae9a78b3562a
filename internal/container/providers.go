// Package container wires the catalog processes together with google/wire.
package container

import (
	"context"
	"fmt"

	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	app "github.com/narwhalmedia/catalog/internal/application/catalog"
	"github.com/narwhalmedia/catalog/internal/config"
	"github.com/narwhalmedia/catalog/internal/domain/catalog"
	"github.com/narwhalmedia/catalog/internal/infrastructure/messaging"
	"github.com/narwhalmedia/catalog/internal/infrastructure/messaging/kafka"
	natsmsg "github.com/narwhalmedia/catalog/internal/infrastructure/messaging/nats"
	"github.com/narwhalmedia/catalog/internal/infrastructure/messaging/rabbitmq"
	gormrepo "github.com/narwhalmedia/catalog/internal/infrastructure/persistence/gorm"
	"github.com/narwhalmedia/catalog/internal/infrastructure/rest"
	"github.com/narwhalmedia/catalog/internal/infrastructure/storage"
	"github.com/narwhalmedia/catalog/internal/metrics"
)

// PersistenceSet provides the database and repositories
var PersistenceSet = wire.NewSet(
	gormrepo.NewDB,
	gormrepo.NewVideoRepository,
	wire.Bind(new(catalog.VideoRepository), new(*gormrepo.VideoRepository)),
	gormrepo.NewCategoryRepository,
	wire.Bind(new(catalog.CategoryRepository), new(*gormrepo.CategoryRepository)),
	gormrepo.NewGenreRepository,
	wire.Bind(new(catalog.GenreRepository), new(*gormrepo.GenreRepository)),
	gormrepo.NewCastMemberRepository,
	wire.Bind(new(catalog.CastMemberRepository), new(*gormrepo.CastMemberRepository)),
	gormrepo.NewUnitOfWork,
	wire.Bind(new(app.UnitOfWork), new(*gormrepo.UnitOfWork)),
)

// ApplicationSet provides the catalog use cases
var ApplicationSet = wire.NewSet(
	ProvideRegistry,
	ProvideMetrics,
	wire.Bind(new(app.Recorder), new(*metrics.Metrics)),
	storage.New,
	ProvideSender,
	messaging.NewEventPublisher,
	wire.Bind(new(app.EventPublisher), new(*messaging.EventPublisher)),
	app.NewEventRegistry,
	app.NewRelationValidator,
	ProvideSettings,
	app.NewApplicationService,
)

// ProvideRegistry returns a registry carrying the Go runtime collectors
func ProvideRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// ProvideMetrics registers the catalog collectors on reg
func ProvideMetrics(reg *prometheus.Registry) *metrics.Metrics {
	return metrics.New(reg)
}

// ProvideSettings extracts the service settings from cfg
func ProvideSettings(cfg *config.Config) app.Settings {
	return app.Settings{EncodedVideoFolder: cfg.Encoder.EncodedVideoFolder}
}

// ProvideSender connects the outbound transport selected by events.transport
// behind a circuit breaker.
func ProvideSender(ctx context.Context, cfg *config.Config, logger *zap.Logger) (messaging.Sender, func(), error) {
	sender, cleanup, err := connectSender(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return messaging.NewBreakerSender(cfg.Events.Transport, sender, logger), cleanup, nil
}

func connectSender(ctx context.Context, cfg *config.Config, logger *zap.Logger) (messaging.Sender, func(), error) {
	switch cfg.Events.Transport {
	case config.TransportRabbitMQ:
		client, closeClient, err := rabbitmq.NewClient(ctx, cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		publisher, closePublisher, err := rabbitmq.NewPublisher(client, logger)
		if err != nil {
			closeClient()
			return nil, nil, err
		}
		return publisher, func() {
			closePublisher()
			closeClient()
		}, nil

	case config.TransportNATS:
		client, cleanup, err := natsmsg.NewClient(ctx, cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		return natsmsg.NewPublisher(client), cleanup, nil

	case config.TransportKafka:
		publisher, err := kafka.NewPublisher(cfg.Kafka.BrokerList(), cfg.Kafka.Topic)
		if err != nil {
			return nil, nil, err
		}
		return publisher, func() {
			if err := publisher.Close(); err != nil {
				logger.Error("failed to close kafka producer", zap.Error(err))
			}
		}, nil

	default:
		return nil, nil, fmt.Errorf("unknown events transport: %q", cfg.Events.Transport)
	}
}

// DatabaseCheck pings the database
func DatabaseCheck(db *gorm.DB) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}

// HTTPSet provides the REST server
var HTTPSet = wire.NewSet(
	app.NewRelationsService,
	wire.Bind(new(rest.VideoService), new(*app.ApplicationService)),
	wire.Bind(new(rest.RelationService), new(*app.RelationsService)),
	ProvideRouterOptions,
	rest.NewRouter,
	rest.NewServer,
)

// ConsumerSet provides the encoder result consumer and its health server
var ConsumerSet = wire.NewSet(
	wire.Bind(new(messaging.MediaStatusUpdater), new(*app.ApplicationService)),
	wire.Bind(new(messaging.OutcomeRecorder), new(*metrics.Metrics)),
	messaging.NewResultHandler,
	ProvideResultConsumer,
	ProvideHealthServer,
)

// ProvideRouterOptions exposes metrics on the API router when enabled
func ProvideRouterOptions(cfg *config.Config, reg *prometheus.Registry, m *metrics.Metrics) rest.RouterOptions {
	opts := rest.RouterOptions{
		MaxUploadBytes: cfg.Server.MaxUploadBytes,
		Observer:       m,
	}
	if cfg.Metrics.Enabled {
		opts.MetricsPath = cfg.Metrics.Path
		opts.Gatherer = reg
	}
	return opts
}
