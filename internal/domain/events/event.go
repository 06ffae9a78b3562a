package events

import (
	"time"

	"github.com/google/uuid"
)

// Kind tags an event type. Dispatch switches on the tag, never on Go types.
type Kind string

// Event represents a domain event
type Event interface {
	ID() uuid.UUID
	AggregateID() uuid.UUID
	Kind() Kind
	OccurredOn() time.Time
}

// BaseEvent provides common event functionality
type BaseEvent struct {
	id          uuid.UUID
	aggregateID uuid.UUID
	kind        Kind
	occurredOn  time.Time
}

// NewBaseEvent creates a new base event
func NewBaseEvent(aggregateID uuid.UUID, kind Kind) BaseEvent {
	return BaseEvent{
		id:          uuid.New(),
		aggregateID: aggregateID,
		kind:        kind,
		occurredOn:  time.Now().UTC(),
	}
}

// ID returns the event ID
func (e BaseEvent) ID() uuid.UUID {
	return e.id
}

// AggregateID returns the aggregate ID
func (e BaseEvent) AggregateID() uuid.UUID {
	return e.aggregateID
}

// Kind returns the event tag
func (e BaseEvent) Kind() Kind {
	return e.kind
}

// OccurredOn returns the event creation time
func (e BaseEvent) OccurredOn() time.Time {
	return e.occurredOn
}
