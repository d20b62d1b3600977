package ports

import (
	"context"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
)

// StatusAppender is the only mutator of an order's status history.
type StatusAppender interface {
	// Append loads the order, appends one status record and persists it.
	// Returns the updated order.
	Append(ctx context.Context, orderID kernel.UUID, name order.Status, origin order.Origin) (*order.Order, error)
}
