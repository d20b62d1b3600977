package order

import (
	"time"

	"orders/internal/core/domain/model/kernel"
)

// StatusChangedEvent describes one committed status append.
type StatusChangedEvent struct {
	OrderID        kernel.UUID
	StoreID        string
	Status         Status
	PreviousStatus Status
	Origin         Origin
	OccurredAt     time.Time
}

// NewStatusChangedEvent builds the event for the last record of o. previous is the
// status the order had before the append.
func NewStatusChangedEvent(o *Order, previous Status) StatusChangedEvent {
	statuses := o.details.statuses
	last := statuses[len(statuses)-1]
	return StatusChangedEvent{
		OrderID:        o.id,
		StoreID:        o.storeID,
		Status:         last.Name(),
		PreviousStatus: previous,
		Origin:         last.Origin(),
		OccurredAt:     time.UnixMilli(last.CreatedAt()).UTC(),
	}
}
