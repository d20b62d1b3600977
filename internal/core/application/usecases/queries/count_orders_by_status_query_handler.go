package queries

import (
	"context"

	"orders/internal/core/domain/model/order"

	"gorm.io/gorm"
)

type CountOrdersByStatusQueryHandler struct {
	db *gorm.DB
}

func NewCountOrdersByStatusQueryHandler(db *gorm.DB) *CountOrdersByStatusQueryHandler {
	return &CountOrdersByStatusQueryHandler{db: db}
}

// Handle returns a count for every known status, zero included.
// A stored status name the service does not know is reported as an error.
func (h *CountOrdersByStatusQueryHandler) Handle(
	ctx context.Context,
	query CountOrdersByStatusQuery,
) (map[order.Status]int64, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	counts := make(map[order.Status]int64, len(order.AllStatuses()))
	for _, status := range order.AllStatuses() {
		counts[status] = 0
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			last_status_name,
			COUNT(*)
		FROM orders
		GROUP BY last_status_name
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			name  string
			count int64
		)
		if err = rows.Scan(&name, &count); err != nil {
			return nil, err
		}

		status, parseErr := order.ParseStatus(name)
		if parseErr != nil {
			return nil, parseErr
		}
		counts[status] = count
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}
