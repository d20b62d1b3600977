package queries

import (
	"context"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListOrdersQueryHandler reads a page of orders straight from the orders table.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListOrdersQueryHandler(db *gorm.DB) *ListOrdersQueryHandler {
	return &ListOrdersQueryHandler{db: db}
}

// Handle returns an empty, non-nil slice when nothing matches.
func (h *ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var status string
	if query.Status() != order.Unknown {
		status = query.Status().String()
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			store_id,
			details,
			version,
			created_at,
			updated_at
		FROM orders
		WHERE (? = '' OR last_status_name = ?)
		ORDER BY created_at, id
		LIMIT ? OFFSET ?
	`, status, status, query.Limit(), query.Offset()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]*order.Order, 0, query.Limit())
	for rows.Next() {
		var (
			id                   uuid.UUID
			storeID, rawDetails  string
			version              int64
			createdAt, updatedAt time.Time
		)

		if err = rows.Scan(&id, &storeID, &rawDetails, &version, &createdAt, &updatedAt); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromGoogle(id)
		if idErr != nil {
			return nil, idErr
		}

		details, detailsErr := order.ParseDetails([]byte(rawDetails))
		if detailsErr != nil {
			return nil, detailsErr
		}

		restored, restoreErr := order.RestoreOrder(orderID, storeID, details, version, createdAt.UTC(), updatedAt.UTC())
		if restoreErr != nil {
			return nil, restoreErr
		}
		orders = append(orders, restored)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
