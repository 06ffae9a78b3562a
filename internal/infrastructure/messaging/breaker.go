package messaging

import (
	"context"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

const (
	breakerFailures = 5
	breakerTimeout  = 30 * time.Second
)

// BreakerSender stops calling a failing broker for a while so uploads do not
// each wait out a dead connection. Rejected sends return gobreaker.ErrOpenState.
type BreakerSender struct {
	next    Sender
	breaker *gobreaker.CircuitBreaker
}

// NewBreakerSender wraps next. The circuit opens after consecutive failures
// and lets a single probe through once breakerTimeout has passed.
func NewBreakerSender(name string, next Sender, logger *zap.Logger) *BreakerSender {
	logger = logger.Named("breaker")
	return &BreakerSender{
		next: next,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        name,
			MaxRequests: 1,
			Timeout:     breakerTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= breakerFailures
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				logger.Warn("circuit breaker state change",
					zap.String("name", name),
					zap.String("from", from.String()),
					zap.String("to", to.String()),
				)
			},
		}),
	}
}

// Send forwards msg unless the circuit is open
func (s *BreakerSender) Send(ctx context.Context, msg Message) error {
	_, err := s.breaker.Execute(func() (interface{}, error) {
		return nil, s.next.Send(ctx, msg)
	})
	return err
}

// State reports the circuit state
func (s *BreakerSender) State() gobreaker.State {
	return s.breaker.State()
}
