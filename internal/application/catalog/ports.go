package catalog

import (
	"context"
	"io"

	"github.com/narwhalmedia/catalog/internal/domain/catalog"
)

// AssetStore stores binary assets. Implementations do not retry.
type AssetStore interface {
	Upload(ctx context.Context, name string, content io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, path string) error
}

// EventPublisher sends integration messages to the encoder
type EventPublisher interface {
	PublishVideoUploaded(ctx context.Context, event *catalog.VideoUploaded) error
}

// Recorder receives operational counters
type Recorder interface {
	PublishFailed(kind string)
	Compensated(operation string, cleanupFailed bool)
}

// NopRecorder discards everything
type NopRecorder struct{}

func (NopRecorder) PublishFailed(string)     {}
func (NopRecorder) Compensated(string, bool) {}
