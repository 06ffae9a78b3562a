package rabbitmq

import (
	"context"
	"fmt"

	"github.com/cenkalti/backoff/v4"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/narwhalmedia/catalog/internal/config"
)

// Client owns the AMQP connection shared by the publisher and consumer
type Client struct {
	conn   *amqp.Connection
	cfg    config.RabbitMQConfig
	logger *zap.Logger
}

// NewClient dials the broker, retrying with exponential backoff until
// cfg.ConnectTimeout elapses or ctx is cancelled.
func NewClient(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Client, func(), error) {
	logger = logger.Named("rabbitmq")

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = cfg.RabbitMQ.ConnectTimeout

	var conn *amqp.Connection
	attempt := 0
	err := backoff.Retry(func() error {
		attempt++
		c, err := amqp.Dial(cfg.RabbitMQ.URL)
		if err != nil {
			logger.Warn("rabbitmq connect failed", zap.Int("attempt", attempt), zap.Error(err))
			return err
		}
		conn = c
		return nil
	}, backoff.WithContext(policy, ctx))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	client := &Client{conn: conn, cfg: cfg.RabbitMQ, logger: logger}

	cleanup := func() {
		if err := conn.Close(); err != nil && err != amqp.ErrClosed {
			logger.Error("failed to close rabbitmq connection", zap.Error(err))
		}
	}

	logger.Info("rabbitmq client initialized", zap.Int("attempts", attempt))
	return client, cleanup, nil
}

// Channel opens a new channel on the shared connection
func (c *Client) Channel() (*amqp.Channel, error) {
	ch, err := c.conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}
	return ch, nil
}

// Health reports whether the connection is still open
func (c *Client) Health() error {
	if c.conn.IsClosed() {
		return fmt.Errorf("rabbitmq connection is closed")
	}
	return nil
}
