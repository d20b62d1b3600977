package ports

import (
	"context"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
)

// OrderCache is a read-through cache in front of the order store.
// Implementations must treat cache failures as misses on the read path.
type OrderCache interface {
	// Get returns (nil, false, nil) on a miss.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, bool, error)
	Set(ctx context.Context, aggregate *order.Order) error
	Invalidate(ctx context.Context, id kernel.UUID) error
}
