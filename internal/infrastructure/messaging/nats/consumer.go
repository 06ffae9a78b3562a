package nats

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"

	"github.com/narwhalmedia/catalog/internal/infrastructure/messaging"
	"github.com/narwhalmedia/catalog/internal/logger"
)

const fetchWait = 5 * time.Second

// DeliveryHandler decides how a message is settled
type DeliveryHandler interface {
	Handle(ctx context.Context, body []byte) (messaging.Outcome, error)
}

// delivery is the part of jetstream.Msg the consumer settles with
type delivery interface {
	Data() []byte
	Ack() error
	Nak() error
	Term() error
}

// Consumer reads encoder results from a durable pull consumer
type Consumer struct {
	client  *Client
	handler DeliveryHandler
	logger  *zap.Logger

	newRetry func() backoff.BackOff
}

// NewConsumer creates a Consumer
func NewConsumer(client *Client, handler DeliveryHandler, logger *zap.Logger) *Consumer {
	return &Consumer{
		client:  client,
		handler: handler,
		logger:  logger.Named("nats_consumer"),
	}
}

// Run fetches one message at a time until ctx is cancelled
func (c *Consumer) Run(ctx context.Context) error {
	cfg := c.client.cfg
	consumer, err := c.client.js.CreateOrUpdateConsumer(ctx, cfg.Stream, jetstream.ConsumerConfig{
		Durable:       cfg.Durable,
		FilterSubject: cfg.ResultSubject,
		AckPolicy:     jetstream.AckExplicitPolicy,
		AckWait:       time.Minute,
		MaxAckPending: 1,
		DeliverPolicy: jetstream.DeliverAllPolicy,
	})
	if err != nil {
		return fmt.Errorf("failed to create consumer: %w", err)
	}

	c.logger.Info("consuming encoder results", zap.String("subject", cfg.ResultSubject))
	return c.loop(ctx, consumer)
}

// fetcher is the part of jetstream.Consumer the fetch loop uses
type fetcher interface {
	Fetch(batch int, opts ...jetstream.FetchOpt) (jetstream.MessageBatch, error)
}

// loop fetches until ctx is cancelled. Fetch failures other than an empty
// poll are retried with exponential backoff.
func (c *Consumer) loop(ctx context.Context, f fetcher) error {
	retry := c.retryPolicy()
	for {
		if ctx.Err() != nil {
			c.logger.Info("consumer stopped")
			return nil
		}

		batch, err := f.Fetch(1, jetstream.FetchMaxWait(fetchWait))
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, jetstream.ErrNoMessages) {
				continue
			}
			wait := retry.NextBackOff()
			c.logger.Error("failed to fetch messages", zap.Duration("retry_in", wait), zap.Error(err))
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(wait):
			}
			continue
		}
		retry.Reset()

		for msg := range batch.Messages() {
			var seq uint64
			if meta, err := msg.Metadata(); err == nil {
				seq = meta.Sequence.Stream
			}
			c.process(ctx, msg, seq)
		}
	}
}

func (c *Consumer) retryPolicy() backoff.BackOff {
	if c.newRetry != nil {
		return c.newRetry()
	}
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 500 * time.Millisecond
	policy.MaxInterval = 30 * time.Second
	policy.MaxElapsedTime = 0
	return policy
}

func (c *Consumer) process(ctx context.Context, msg delivery, seq uint64) {
	log := logger.WithDelivery(c.logger, "nats", seq)

	outcome, err := c.handler.Handle(ctx, msg.Data())
	if err != nil {
		log.Error("failed to process encoder result",
			zap.ByteString("body", msg.Data()),
			zap.Stringer("outcome", outcome),
			zap.Error(err),
		)
	}

	var settleErr error
	switch outcome {
	case messaging.Ack:
		settleErr = msg.Ack()
	case messaging.NackDiscard:
		settleErr = msg.Term()
	default:
		settleErr = msg.Nak()
	}
	if settleErr != nil {
		log.Error("failed to settle message", zap.Stringer("outcome", outcome), zap.Error(settleErr))
	}
}
