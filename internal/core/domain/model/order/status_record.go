package order

import (
	"encoding/json"
	"errors"
	"time"
)

// StatusRecord is one entry of an order's status history.
// Records are immutable once built and are only ever appended to the history.
type StatusRecord struct {
	createdAt int64
	name      Status
	orderID   string
	origin    Origin
}

type statusRecordJSON struct {
	CreatedAt int64  `json:"created_at"`
	Name      Status `json:"name"`
	OrderID   string `json:"order_id"`
	Origin    Origin `json:"origin"`
}

// NewStatusRecord stamps name with at, truncated to epoch milliseconds.
func NewStatusRecord(name Status, orderID string, origin Origin, at time.Time) (StatusRecord, error) {
	if err := errors.Join(name.Validate(), origin.Validate()); err != nil {
		return StatusRecord{}, err
	}
	return StatusRecord{
		createdAt: at.UnixMilli(),
		name:      name,
		orderID:   orderID,
		origin:    origin,
	}, nil
}

// CreatedAt is the append time in epoch milliseconds.
func (r StatusRecord) CreatedAt() int64 {
	return r.createdAt
}

func (r StatusRecord) Name() Status {
	return r.name
}

func (r StatusRecord) OrderID() string {
	return r.orderID
}

func (r StatusRecord) Origin() Origin {
	return r.origin
}

func (r StatusRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(statusRecordJSON{
		CreatedAt: r.createdAt,
		Name:      r.name,
		OrderID:   r.orderID,
		Origin:    r.origin,
	})
}

func (r *StatusRecord) UnmarshalJSON(data []byte) error {
	var raw statusRecordJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = StatusRecord{
		createdAt: raw.CreatedAt,
		name:      raw.Name,
		orderID:   raw.OrderID,
		origin:    raw.Origin,
	}
	return nil
}
