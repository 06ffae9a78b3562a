package rabbitmq

import (
	"context"
	"errors"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/narwhalmedia/catalog/internal/infrastructure/messaging"
	"github.com/narwhalmedia/catalog/internal/logger"
)

// ErrDeliveriesClosed is returned when the broker closes the delivery stream
var ErrDeliveriesClosed = errors.New("rabbitmq delivery channel closed")

// DeliveryHandler decides how a delivery is settled
type DeliveryHandler interface {
	Handle(ctx context.Context, body []byte) (messaging.Outcome, error)
}

// Consumer reads encoder results from the result queue with manual acks
type Consumer struct {
	client  *Client
	handler DeliveryHandler
	logger  *zap.Logger
}

// NewConsumer creates a Consumer
func NewConsumer(client *Client, handler DeliveryHandler, logger *zap.Logger) *Consumer {
	return &Consumer{
		client:  client,
		handler: handler,
		logger:  logger.Named("rabbitmq_consumer"),
	}
}

// Run consumes until ctx is cancelled. The prefetch count keeps at most that
// many unacknowledged messages on the channel.
func (c *Consumer) Run(ctx context.Context) error {
	cfg := c.client.cfg

	ch, err := c.client.Channel()
	if err != nil {
		return err
	}
	defer func() {
		if err := ch.Close(); err != nil && err != amqp.ErrClosed {
			c.logger.Error("failed to close consumer channel", zap.Error(err))
		}
	}()

	if err := ch.Qos(cfg.Prefetch, 0, false); err != nil {
		return fmt.Errorf("failed to set qos: %w", err)
	}
	if _, err := ch.QueueDeclare(cfg.ResultQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", cfg.ResultQueue, err)
	}
	if cfg.Exchange != "" {
		if err := ch.QueueBind(cfg.ResultQueue, cfg.ResultQueue, cfg.Exchange, false, nil); err != nil {
			return fmt.Errorf("failed to bind queue %s: %w", cfg.ResultQueue, err)
		}
	}

	deliveries, err := ch.ConsumeWithContext(ctx,
		cfg.ResultQueue,
		cfg.ConsumerTag,
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to consume %s: %w", cfg.ResultQueue, err)
	}

	c.logger.Info("consuming encoder results",
		zap.String("queue", cfg.ResultQueue),
		zap.Int("prefetch", cfg.Prefetch),
	)
	return c.consume(ctx, deliveries)
}

func (c *Consumer) consume(ctx context.Context, deliveries <-chan amqp.Delivery) error {
	for {
		select {
		case <-ctx.Done():
			c.logger.Info("consumer stopped")
			return nil
		case d, ok := <-deliveries:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return ErrDeliveriesClosed
			}
			c.process(ctx, d)
		}
	}
}

func (c *Consumer) process(ctx context.Context, d amqp.Delivery) {
	log := logger.WithDelivery(c.logger, "rabbitmq", d.DeliveryTag)

	outcome, err := c.handler.Handle(ctx, d.Body)
	if err != nil {
		log.Error("failed to process encoder result",
			zap.ByteString("body", d.Body),
			zap.Stringer("outcome", outcome),
			zap.Error(err),
		)
	}

	var settleErr error
	switch outcome {
	case messaging.Ack:
		settleErr = d.Ack(false)
	case messaging.NackDiscard:
		settleErr = d.Nack(false, false)
	default:
		settleErr = d.Nack(false, true)
	}
	if settleErr != nil {
		log.Error("failed to settle delivery", zap.Stringer("outcome", outcome), zap.Error(settleErr))
	}
}
