package catalog

import (
	"context"
)

// UnitOfWork defines the interface for managing transactions across repositories
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) (Transaction, error)
}

// Transaction represents a database transaction
type Transaction interface {
	// Commit commits the transaction
	Commit() error
	// Rollback rolls back the transaction; it is a no-op after Commit
	Rollback() error
	// Context returns a context carrying the transaction; repositories
	// called with it join the transaction
	Context() context.Context
}
