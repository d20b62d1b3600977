package ports

import "orders/internal/core/domain/model/order"

// StatusMetrics records status transitions and the per-status order counts.
type StatusMetrics interface {
	ObserveTransition(from, to order.Status)
	SetOrdersByStatus(counts map[order.Status]int64)
}
