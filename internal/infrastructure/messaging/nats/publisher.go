package nats

import (
	"context"
	"fmt"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/narwhalmedia/catalog/internal/infrastructure/messaging"
)

// Publisher sends encoder requests to the upload subject. The message id
// lets JetStream drop duplicates inside the stream's duplicate window.
type Publisher struct {
	js      jetstream.JetStream
	subject string
}

var _ messaging.Sender = (*Publisher)(nil)

// NewPublisher creates a Publisher
func NewPublisher(client *Client) *Publisher {
	return &Publisher{js: client.js, subject: client.cfg.UploadSubject}
}

// Send publishes msg and waits for the stream ack
func (p *Publisher) Send(ctx context.Context, msg messaging.Message) error {
	if _, err := p.js.Publish(ctx, p.subject, msg.Body, jetstream.WithMsgID(msg.ID)); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", p.subject, err)
	}
	return nil
}
