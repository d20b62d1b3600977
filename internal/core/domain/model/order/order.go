package order

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned by Validate for orders not built by NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("order must be created via NewOrder or RestoreOrder")

	// ErrOrderIsTerminal is returned by AppendStatus once the order is DELIVERED or CANCELED.
	ErrOrderIsTerminal = errors.New("order is in a terminal status")
)

// Order is the aggregate root of the service. It owns the details document and,
// through it, the append-only status history.
//
// Invariants held by every constructed Order:
//   - the status history is never empty and starts with RECEIVED
//   - last_status_name equals the name of the last history entry
//   - history entries are only ever appended
//   - nothing is appended after a terminal status
//
// Order does not consult the transition table; deciding which status comes next is the
// job of services.StateMachine.
type Order struct {
	id      kernel.UUID
	storeID string
	details Details

	// version is the optimistic lock counter read from storage.
	version int64

	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// TimestampPrecision is the resolution of created_at and updated_at. It matches the
// PostgreSQL timestamp column, so a freshly created order reads back unchanged.
const TimestampPrecision = time.Microsecond

// NewOrder creates an order in the RECEIVED status.
//
// Parameters:
//   - id: identifier of the order, mirrored into details.order_id
//   - storeID: opaque owner reference, must not be blank
//   - fields: caller-supplied details; must not be nil. Values under the reserved keys
//     order_id, statuses and last_status_name are discarded.
//   - at: creation time, used for the timestamps and the initial status record
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), "s1", map[string]json.RawMessage{
//	    "items": json.RawMessage(`[]`),
//	}, clock.Now())
//	// o.Statuses() has a single RECEIVED record with origin STORE
func NewOrder(id kernel.UUID, storeID string, fields map[string]json.RawMessage, at time.Time) (*Order, error) {
	at = at.Truncate(TimestampPrecision)
	o := &Order{
		version:       0,
		createdAt:     at,
		updatedAt:     at,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setStoreID(storeID),
		validateFields(fields),
	); err != nil {
		return nil, err
	}

	o.details = newDetails(id.String(), fields)

	initial, err := NewStatusRecord(Received, o.details.OrderID(), OriginStore, at)
	if err != nil {
		return nil, err
	}
	o.details = o.details.withStatus(initial)

	return o, nil
}

// RestoreOrder rebuilds an order loaded from storage and checks the history invariants.
func RestoreOrder(
	id kernel.UUID,
	storeID string,
	details Details,
	version int64,
	createdAt, updatedAt time.Time,
) (*Order, error) {
	o := &Order{
		details:       details,
		version:       version,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setStoreID(storeID),
		details.validate(),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the order came out of a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) StoreID() string {
	return o.storeID
}

func (o *Order) Details() Details {
	return o.details
}

// Statuses returns a copy of the status history.
func (o *Order) Statuses() []StatusRecord {
	return o.details.Statuses()
}

// LastStatus returns details.last_status_name.
func (o *Order) LastStatus() Status {
	return o.details.LastStatusName()
}

func (o *Order) IsTerminal() bool {
	return o.LastStatus().IsTerminal()
}

// Version returns the optimistic lock counter the order was loaded with.
func (o *Order) Version() int64 {
	return o.version
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// AppendStatus appends exactly one status record stamped with at.
// The record's order_id is taken from details.order_id.
//
// Returns:
//   - ValueIsInvalidError or ValueIsRequiredError for a bad name or origin
//   - ErrOrderIsTerminal when the order is already DELIVERED or CANCELED
//
// Whether name is a legal successor of the current status is not checked here.
func (o *Order) AppendStatus(name Status, origin Origin, at time.Time) error {
	if err := errors.Join(name.Validate(), origin.Validate()); err != nil {
		return err
	}
	if o.IsTerminal() {
		return fmt.Errorf("%w: %s", ErrOrderIsTerminal, o.LastStatus())
	}

	record, err := NewStatusRecord(name, o.details.OrderID(), origin, at)
	if err != nil {
		return err
	}

	o.details = o.details.withStatus(record)
	o.updatedAt = at.Truncate(TimestampPrecision)
	return nil
}

// AdvanceVersion records that a conditional update bumped the stored version.
// It is called by the repository after a successful write.
func (o *Order) AdvanceVersion() {
	o.version++
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setStoreID(storeID string) error {
	if strings.TrimSpace(storeID) == "" {
		return errs.NewValueIsRequiredError("store_id")
	}
	o.storeID = storeID
	return nil
}

func validateFields(fields map[string]json.RawMessage) error {
	if fields == nil {
		return errs.NewValueIsRequiredError("details")
	}
	return nil
}
