package rabbitmq

import (
	"context"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/narwhalmedia/catalog/internal/infrastructure/messaging"
)

// Publisher sends encoder requests to the configured exchange and routing key
type Publisher struct {
	mu         sync.Mutex
	channel    *amqp.Channel
	exchange   string
	routingKey string
	logger     *zap.Logger
}

var _ messaging.Sender = (*Publisher)(nil)

// NewPublisher opens a dedicated channel for publishing
func NewPublisher(client *Client, logger *zap.Logger) (*Publisher, func(), error) {
	ch, err := client.Channel()
	if err != nil {
		return nil, nil, err
	}

	p := &Publisher{
		channel:    ch,
		exchange:   client.cfg.Exchange,
		routingKey: client.cfg.RoutingKey,
		logger:     logger.Named("rabbitmq_publisher"),
	}
	cleanup := func() {
		if err := ch.Close(); err != nil && err != amqp.ErrClosed {
			p.logger.Error("failed to close publisher channel", zap.Error(err))
		}
	}
	return p, cleanup, nil
}

// Send publishes msg as a persistent JSON message
func (p *Publisher) Send(ctx context.Context, msg messaging.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	err := p.channel.PublishWithContext(ctx,
		p.exchange,
		p.routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    msg.ID,
			Timestamp:    time.Now().UTC(),
			Body:         msg.Body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish to %s/%s: %w", p.exchange, p.routingKey, err)
	}
	return nil
}
