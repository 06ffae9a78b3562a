package events

import (
	"context"
	"errors"
	"fmt"
)

// HandlerFunc handles one event.
type HandlerFunc func(ctx context.Context, event Event) error

// Registry maps event kinds to an ordered list of handlers. It is populated
// once during process start and read-only afterwards, so it needs no lock.
type Registry struct {
	handlers map[Kind][]HandlerFunc
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[Kind][]HandlerFunc)}
}

// Register appends handler to the list for kind.
func (r *Registry) Register(kind Kind, handler HandlerFunc) {
	r.handlers[kind] = append(r.handlers[kind], handler)
}

// Handlers returns the number of handlers registered for kind.
func (r *Registry) Handlers(kind Kind) int {
	return len(r.handlers[kind])
}

// Dispatch runs every handler registered for the event's kind in
// registration order. All handlers run; their errors are joined.
func (r *Registry) Dispatch(ctx context.Context, event Event) error {
	var errs []error
	for _, handle := range r.handlers[event.Kind()] {
		if err := handle(ctx, event); err != nil {
			errs = append(errs, fmt.Errorf("handle %s: %w", event.Kind(), err))
		}
	}
	return errors.Join(errs...)
}
