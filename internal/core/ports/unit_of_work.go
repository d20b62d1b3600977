package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a transaction boundary. Callers Begin, defer Rollback and Commit.
// Rollback after a successful Commit leaves the data untouched; its error can be ignored.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	// OrderRepository returns a repository bound to the transaction started by Begin.
	OrderRepository() OrderRepository
}
