package ports

import (
	"context"

	"orders/internal/core/domain/model/order"
)

// OrderEventPublisher announces committed status changes to other services.
type OrderEventPublisher interface {
	PublishStatusChanged(ctx context.Context, event order.StatusChangedEvent) error
}
