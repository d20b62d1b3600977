// Package commands contains the use cases that modify orders.
// Every command is built through its New... constructor, validated by its handler,
// and executed inside a unit of work: Begin, deferred Rollback, Commit.
package commands

import (
	"context"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"
)

type (
	// OrderUoW is a transaction that exposes the order repository.
	OrderUoW = ports.UnitOfWork

	// OrderUoWFactory creates a new OrderUoW per command.
	OrderUoWFactory = ports.UnitOfWorkFactory

	// OrderStateMachine is the part of services.StateMachine the append-status use case needs.
	OrderStateMachine interface {
		CancelOrder(ctx context.Context, current order.Status, orderID kernel.UUID) (*order.Order, error)
		TransitionOrder(ctx context.Context, current order.Status, orderID kernel.UUID) (*order.Order, error)
	}
)
