// Package orderrepo persists order aggregates with GORM.
//
// One row per order. The details document is stored as jsonb and its
// last_status_name is copied into an indexed column for filtering and reports.
// The version column backs the conditional update in Update.
package orderrepo

import (
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the row shape of the orders table.
type OrderDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	StoreID        string    `gorm:"not null"`
	Details        string    `gorm:"type:jsonb;not null"`
	LastStatusName string    `gorm:"not null;index"`
	Version        int64     `gorm:"not null;default:0"`
	CreatedAt      time.Time `gorm:"not null"`
	UpdatedAt      time.Time `gorm:"not null"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(aggregate *order.Order) (OrderDTO, error) {
	details, err := aggregate.Details().MarshalJSON()
	if err != nil {
		return OrderDTO{}, err
	}

	return OrderDTO{
		ID:             aggregate.ID().Google(),
		StoreID:        aggregate.StoreID(),
		Details:        string(details),
		LastStatusName: aggregate.LastStatus().String(),
		Version:        aggregate.Version(),
		CreatedAt:      aggregate.CreatedAt(),
		UpdatedAt:      aggregate.UpdatedAt(),
	}, nil
}

// ToDomain rebuilds an aggregate from a row. Exported for read-side queries
// that scan rows themselves.
func ToDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}

	details, err := order.ParseDetails([]byte(dto.Details))
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(id, dto.StoreID, details, dto.Version, dto.CreatedAt.UTC(), dto.UpdatedAt.UTC())
}
