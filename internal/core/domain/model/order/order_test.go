package order_test

import (
	"encoding/json"
	"testing"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var createdAt = time.Date(2026, 2, 20, 20, 28, 47, 123_000_000, time.UTC)

func itemsFields() map[string]json.RawMessage {
	return map[string]json.RawMessage{"items": json.RawMessage(`[]`)}
}

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), "s1", itemsFields(), createdAt)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("should start with a single RECEIVED status from STORE", func(t *testing.T) {
		id := kernel.NewUUID()

		o, err := order.NewOrder(id, "s1", itemsFields(), createdAt)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(id))
		assert.Equal(t, "s1", o.StoreID())
		assert.Equal(t, int64(0), o.Version())
		assert.Equal(t, createdAt, o.CreatedAt())
		assert.Equal(t, order.Received, o.LastStatus())
		assert.False(t, o.IsTerminal())

		statuses := o.Statuses()
		require.Len(t, statuses, 1)
		assert.Equal(t, order.Received, statuses[0].Name())
		assert.Equal(t, order.OriginStore, statuses[0].Origin())
		assert.Equal(t, id.String(), statuses[0].OrderID())
		assert.Equal(t, createdAt.UnixMilli(), statuses[0].CreatedAt())
		assert.Equal(t, id.String(), o.Details().OrderID())
	})

	t.Run("should overwrite reserved keys supplied by the caller", func(t *testing.T) {
		fields := map[string]json.RawMessage{
			"order_id":         json.RawMessage(`"spoofed"`),
			"statuses":         json.RawMessage(`[{"name":"DELIVERED"}]`),
			"last_status_name": json.RawMessage(`"DELIVERED"`),
			"items":            json.RawMessage(`[{"sku":"A1","qty":2}]`),
		}

		o, err := order.NewOrder(kernel.NewUUID(), "s1", fields, createdAt)

		require.NoError(t, err)
		assert.Equal(t, o.ID().String(), o.Details().OrderID())
		assert.Len(t, o.Statuses(), 1)
		assert.Equal(t, order.Received, o.LastStatus())
		items, ok := o.Details().Field("items")
		require.True(t, ok)
		assert.JSONEq(t, `[{"sku":"A1","qty":2}]`, string(items))
		_, ok = o.Details().Field("order_id")
		assert.False(t, ok)
	})

	t.Run("should accept empty details object", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), "s1", map[string]json.RawMessage{}, createdAt)
		require.NoError(t, err)
	})

	t.Run("should require store_id", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), "  ", itemsFields(), createdAt)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "store_id")
	})

	t.Run("should require details", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), "s1", nil, createdAt)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "details")
	})

	t.Run("should join all validation errors", func(t *testing.T) {
		var zeroID kernel.UUID

		_, err := order.NewOrder(zeroID, "", nil, createdAt)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "UUID must be created")
		assert.Contains(t, err.Error(), "store_id")
		assert.Contains(t, err.Error(), "details")
	})
}

func TestNewOrder_TruncatesTimestampsToStoragePrecision(t *testing.T) {
	at := time.Date(2026, 2, 20, 20, 28, 47, 123_456_789, time.UTC)

	o, err := order.NewOrder(kernel.NewUUID(), "s1", itemsFields(), at)
	require.NoError(t, err)

	want := time.Date(2026, 2, 20, 20, 28, 47, 123_456_000, time.UTC)
	assert.Equal(t, want, o.CreatedAt())
	assert.Equal(t, want, o.UpdatedAt())

	later := at.Add(time.Minute + 999*time.Nanosecond)
	require.NoError(t, o.AppendStatus(order.Confirmed, order.OriginStore, later))
	assert.Equal(t, later.Truncate(time.Microsecond), o.UpdatedAt())
	assert.Zero(t, o.UpdatedAt().Nanosecond()%1000)
}

func TestOrder_Validate(t *testing.T) {
	var nilOrder *order.Order
	assert.Equal(t, order.ErrOrderIsNotConstructed, nilOrder.Validate())

	var zero order.Order
	assert.Equal(t, order.ErrOrderIsNotConstructed, zero.Validate())

	assert.NoError(t, newTestOrder(t).Validate())
}

func TestOrder_AppendStatus(t *testing.T) {
	t.Run("should append one record per call and move the pointer", func(t *testing.T) {
		o := newTestOrder(t)
		path := []order.Status{order.Confirmed, order.Dispatched, order.Delivered}

		for i, s := range path {
			at := createdAt.Add(time.Duration(i+1) * time.Minute)
			require.NoError(t, o.AppendStatus(s, order.OriginStore, at))

			statuses := o.Statuses()
			require.Len(t, statuses, i+2)
			assert.Equal(t, s, o.LastStatus())
			assert.Equal(t, statuses[len(statuses)-1].Name(), o.LastStatus())
			assert.Equal(t, at.UnixMilli(), statuses[len(statuses)-1].CreatedAt())
			assert.Equal(t, at, o.UpdatedAt())
		}

		names := make([]order.Status, 0, 4)
		for _, r := range o.Statuses() {
			names = append(names, r.Name())
		}
		assert.Equal(t, []order.Status{order.Received, order.Confirmed, order.Dispatched, order.Delivered}, names)
		assert.True(t, o.IsTerminal())
	})

	t.Run("should stamp the embedded order_id", func(t *testing.T) {
		o := newTestOrder(t)

		require.NoError(t, o.AppendStatus(order.Canceled, "COURIER", createdAt))

		last := o.Statuses()[1]
		assert.Equal(t, o.Details().OrderID(), last.OrderID())
		assert.Equal(t, order.Origin("COURIER"), last.Origin())
	})

	t.Run("should refuse appends after a terminal status", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.AppendStatus(order.Canceled, order.OriginStore, createdAt))

		err := o.AppendStatus(order.Confirmed, order.OriginStore, createdAt)

		require.ErrorIs(t, err, order.ErrOrderIsTerminal)
		assert.Len(t, o.Statuses(), 2)
		assert.Equal(t, order.Canceled, o.LastStatus())
	})

	t.Run("should reject unknown status and blank origin", func(t *testing.T) {
		o := newTestOrder(t)

		err := o.AppendStatus(order.Unknown, "", createdAt)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Len(t, o.Statuses(), 1)
	})

	t.Run("should not leak history through Statuses", func(t *testing.T) {
		o := newTestOrder(t)

		statuses := o.Statuses()
		statuses[0] = order.StatusRecord{}

		assert.Equal(t, order.Received, o.Statuses()[0].Name())
	})
}

func TestOrder_AdvanceVersion(t *testing.T) {
	o := newTestOrder(t)

	o.AdvanceVersion()
	o.AdvanceVersion()

	assert.Equal(t, int64(2), o.Version())
}

func TestRestoreOrder(t *testing.T) {
	source := newTestOrder(t)
	require.NoError(t, source.AppendStatus(order.Confirmed, order.OriginStore, createdAt))

	t.Run("should rebuild an order from its details", func(t *testing.T) {
		data, err := json.Marshal(source.Details())
		require.NoError(t, err)
		details, err := order.ParseDetails(data)
		require.NoError(t, err)

		restored, err := order.RestoreOrder(source.ID(), "s1", details, 7, createdAt, createdAt)

		require.NoError(t, err)
		assert.True(t, restored.IsEqual(source))
		assert.Equal(t, int64(7), restored.Version())
		assert.Equal(t, order.Confirmed, restored.LastStatus())
		assert.Len(t, restored.Statuses(), 2)
	})

	t.Run("should reject empty history", func(t *testing.T) {
		details, err := order.ParseDetails([]byte(`{"order_id":"x","statuses":[],"items":[]}`))
		require.NoError(t, err)

		_, err = order.RestoreOrder(source.ID(), "s1", details, 0, createdAt, createdAt)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject a stale last_status_name", func(t *testing.T) {
		details, err := order.ParseDetails([]byte(`{
			"order_id":"x",
			"statuses":[{"created_at":1,"name":"RECEIVED","order_id":"x","origin":"STORE"}],
			"last_status_name":"CONFIRMED"
		}`))
		require.NoError(t, err)

		_, err = order.RestoreOrder(source.ID(), "s1", details, 0, createdAt, createdAt)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "last_status_name")
	})
}
