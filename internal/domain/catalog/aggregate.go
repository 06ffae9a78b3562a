package catalog

import (
	"bytes"
	"slices"
	"time"

	"github.com/google/uuid"
)

// BaseAggregate provides common fields for all aggregates
type BaseAggregate struct {
	ID        uuid.UUID `json:"id"`
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GetID returns the aggregate's ID
func (a BaseAggregate) GetID() uuid.UUID {
	return a.ID
}

// GetVersion returns the aggregate's version
func (a BaseAggregate) GetVersion() int {
	return a.Version
}

// NewBaseAggregate creates a new base aggregate with a new UUID and current timestamps
func NewBaseAggregate() BaseAggregate {
	now := time.Now().UTC()
	return BaseAggregate{
		ID:        uuid.New(),
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (a *BaseAggregate) touch() {
	a.UpdatedAt = time.Now().UTC()
}

// idSet is a set of aggregate ids with deterministic iteration order.
type idSet map[uuid.UUID]struct{}

func (s *idSet) add(id uuid.UUID) {
	if *s == nil {
		*s = make(idSet)
	}
	(*s)[id] = struct{}{}
}

func (s *idSet) clear() {
	*s = nil
}

func (s idSet) has(id uuid.UUID) bool {
	_, ok := s[id]
	return ok
}

func (s idSet) sorted() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b uuid.UUID) int {
		return bytes.Compare(a[:], b[:])
	})
	return ids
}
