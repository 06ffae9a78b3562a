package catalog

import (
	"context"
	"fmt"

	"github.com/narwhalmedia/catalog/internal/domain/catalog"
	"github.com/narwhalmedia/catalog/internal/domain/events"
)

// NewEventRegistry registers the handlers every catalog process runs after commit.
func NewEventRegistry(publisher EventPublisher) *events.Registry {
	registry := events.NewRegistry()
	registry.Register(catalog.KindVideoUploaded, publishVideoUploaded(publisher))
	return registry
}

func publishVideoUploaded(publisher EventPublisher) events.HandlerFunc {
	return func(ctx context.Context, event events.Event) error {
		uploaded, ok := event.(*catalog.VideoUploaded)
		if !ok {
			return fmt.Errorf("unexpected payload %T for %s", event, event.Kind())
		}
		return publisher.PublishVideoUploaded(ctx, uploaded)
	}
}
