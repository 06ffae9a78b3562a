package events_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/narwhalmedia/catalog/internal/domain/events"
)

type testEvent struct {
	events.BaseEvent
}

func TestRegistryDispatchesInOrder(t *testing.T) {
	registry := events.NewRegistry()
	var calls []string

	registry.Register("thing.happened", func(ctx context.Context, e events.Event) error {
		calls = append(calls, "first")
		return nil
	})
	registry.Register("thing.happened", func(ctx context.Context, e events.Event) error {
		calls = append(calls, "second")
		return nil
	})
	registry.Register("other", func(ctx context.Context, e events.Event) error {
		calls = append(calls, "other")
		return nil
	})

	err := registry.Dispatch(context.Background(), testEvent{events.NewBaseEvent(uuid.New(), "thing.happened")})

	assert.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, calls)
	assert.Equal(t, 2, registry.Handlers("thing.happened"))
}

func TestRegistryRunsAllHandlersOnError(t *testing.T) {
	registry := events.NewRegistry()
	boom := errors.New("boom")
	ran := false

	registry.Register("k", func(ctx context.Context, e events.Event) error { return boom })
	registry.Register("k", func(ctx context.Context, e events.Event) error {
		ran = true
		return nil
	})

	err := registry.Dispatch(context.Background(), testEvent{events.NewBaseEvent(uuid.New(), "k")})

	assert.ErrorIs(t, err, boom)
	assert.True(t, ran)
}

func TestRegistryUnknownKindIsNoop(t *testing.T) {
	registry := events.NewRegistry()

	err := registry.Dispatch(context.Background(), testEvent{events.NewBaseEvent(uuid.New(), "nobody.listens")})

	assert.NoError(t, err)
}
