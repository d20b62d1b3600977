// Package ports defines the contracts between the order domain and the
// infrastructure that persists, caches and announces orders.
package ports

import (
	"context"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order.
	// Returns errs.ObjectAlreadyExistsError when an order with the same id is stored.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update writes the order back only if the stored version still equals aggregate.Version().
	// On success the stored version is incremented and aggregate.AdvanceVersion is called.
	//
	// Returns:
	//   - errs.ObjectNotFoundError if the order no longer exists
	//   - errs.VersionIsInvalidError if another writer updated the order first
	Update(ctx context.Context, aggregate *order.Order) error

	// Get loads an order by id. Returns errs.ObjectNotFoundError when absent.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// Delete removes an order permanently. Returns errs.ObjectNotFoundError when absent.
	Delete(ctx context.Context, id kernel.UUID) error
}
