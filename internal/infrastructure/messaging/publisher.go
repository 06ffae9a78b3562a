package messaging

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	app "github.com/narwhalmedia/catalog/internal/application/catalog"
	"github.com/narwhalmedia/catalog/internal/domain/catalog"
)

// Message is an encoded outbound message
type Message struct {
	// ID is unique per event; transports that support it dedupe on it
	ID string
	// Key is the video id, used for partitioning
	Key  string
	Body []byte
}

// Sender delivers a Message over a broker
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// EventPublisher encodes catalog events and hands them to a Sender
type EventPublisher struct {
	sender Sender
	logger *zap.Logger
}

var _ app.EventPublisher = (*EventPublisher)(nil)

// NewEventPublisher creates an EventPublisher on top of sender
func NewEventPublisher(sender Sender, logger *zap.Logger) *EventPublisher {
	return &EventPublisher{sender: sender, logger: logger.Named("event_publisher")}
}

// PublishVideoUploaded sends the encoder request for a new media file
func (p *EventPublisher) PublishVideoUploaded(ctx context.Context, event *catalog.VideoUploaded) error {
	body, err := json.Marshal(NewVideoUploadedMessage(event))
	if err != nil {
		return fmt.Errorf("marshaling video uploaded message: %w", err)
	}

	if err := p.sender.Send(ctx, Message{
		ID:   event.ID().String(),
		Key:  event.AggregateID().String(),
		Body: body,
	}); err != nil {
		return fmt.Errorf("publishing video uploaded message: %w", err)
	}

	p.logger.Debug("published video uploaded",
		zap.String("video_id", event.AggregateID().String()),
		zap.String("file_path", event.FilePath),
	)
	return nil
}
