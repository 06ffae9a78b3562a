package container

import (
	"gorm.io/gorm"

	app "github.com/narwhalmedia/catalog/internal/application/catalog"
	grpcinfra "github.com/narwhalmedia/catalog/internal/infrastructure/grpc"
	"github.com/narwhalmedia/catalog/internal/infrastructure/rest"
)

// CatalogContainer holds the dependencies of the HTTP API process
type CatalogContainer struct {
	DB      *gorm.DB
	Service *app.ApplicationService
	Server  *rest.Server
}

// ConsumerContainer holds the dependencies of the encoder result consumer
type ConsumerContainer struct {
	DB       *gorm.DB
	Consumer ConsumerWithHealth
	Health   *grpcinfra.HealthServer
}
