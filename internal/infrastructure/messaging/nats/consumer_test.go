package nats

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/narwhalmedia/catalog/internal/infrastructure/messaging"
)

type fakeMsg struct {
	body    string
	settled string
}

func (m *fakeMsg) Data() []byte { return []byte(m.body) }
func (m *fakeMsg) Ack() error   { m.settled = "ack"; return nil }
func (m *fakeMsg) Nak() error   { m.settled = "nak"; return nil }
func (m *fakeMsg) Term() error  { m.settled = "term"; return nil }

type fixedHandler messaging.Outcome

func (h fixedHandler) Handle(context.Context, []byte) (messaging.Outcome, error) {
	return messaging.Outcome(h), nil
}

func TestConsumer_Process(t *testing.T) {
	tests := []struct {
		outcome messaging.Outcome
		want    string
	}{
		{messaging.Ack, "ack"},
		{messaging.NackDiscard, "term"},
		{messaging.NackRequeue, "nak"},
	}

	for _, tt := range tests {
		t.Run(tt.outcome.String(), func(t *testing.T) {
			consumer := &Consumer{handler: fixedHandler(tt.outcome), logger: zaptest.NewLogger(t)}
			msg := &fakeMsg{body: "{}"}

			consumer.process(context.Background(), msg, 7)

			assert.Equal(t, tt.want, msg.settled)
		})
	}
}

type failingFetcher struct {
	calls atomic.Int32
}

func (f *failingFetcher) Fetch(int, ...jetstream.FetchOpt) (jetstream.MessageBatch, error) {
	f.calls.Add(1)
	return nil, nats.ErrConnectionClosed
}

func TestConsumer_LoopWaitsBetweenFailedFetches(t *testing.T) {
	consumer := &Consumer{
		logger: zaptest.NewLogger(t),
		newRetry: func() backoff.BackOff {
			return backoff.NewConstantBackOff(50 * time.Millisecond)
		},
	}
	f := &failingFetcher{}

	ctx, cancel := context.WithTimeout(context.Background(), 275*time.Millisecond)
	defer cancel()

	require.NoError(t, consumer.loop(ctx, f))

	calls := f.calls.Load()
	assert.GreaterOrEqual(t, calls, int32(2))
	assert.LessOrEqual(t, calls, int32(7))
}

func TestConsumer_LoopStopsDuringRetryWait(t *testing.T) {
	consumer := &Consumer{
		logger: zaptest.NewLogger(t),
		newRetry: func() backoff.BackOff {
			return backoff.NewConstantBackOff(time.Hour)
		},
	}
	f := &failingFetcher{}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- consumer.loop(ctx, f) }()

	require.Eventually(t, func() bool { return f.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("loop did not stop after cancel")
	}
	assert.Equal(t, int32(1), f.calls.Load())
}
