package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockStatusAppender struct{ mock.Mock }

func (m *MockStatusAppender) Append(
	ctx context.Context,
	orderID kernel.UUID,
	name order.Status,
	origin order.Origin,
) (*order.Order, error) {
	args := m.Called(ctx, orderID, name, origin)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func newStateMachine(t *testing.T) (*services.StateMachine, *MockStatusAppender) {
	t.Helper()
	appender := new(MockStatusAppender)
	sm, err := services.NewStateMachine(appender)
	require.NoError(t, err)
	return sm, appender
}

func TestNewStateMachine_RequiresAppender(t *testing.T) {
	sm, err := services.NewStateMachine(nil)

	assert.Nil(t, sm)
	require.ErrorIs(t, err, services.ErrStatusAppenderIsRequired)
}

func TestStateMachine_IsValidTransition(t *testing.T) {
	sm, _ := newStateMachine(t)

	tests := []struct {
		current  order.Status
		target   order.Status
		expected bool
	}{
		{order.Received, order.Confirmed, true},
		{order.Received, order.Canceled, true},
		{order.Received, order.Delivered, false},
		{order.Confirmed, order.Received, false},
		{order.Confirmed, order.Dispatched, true},
		{order.Dispatched, order.Delivered, true},
		{order.Delivered, order.Canceled, false},
		{order.Canceled, order.Received, false},
		{order.Unknown, order.Received, false},
	}

	for _, tt := range tests {
		t.Run(tt.current.String()+"->"+tt.target.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, sm.IsValidTransition(tt.current, tt.target))
		})
	}
}

func TestStateMachine_IsTerminal(t *testing.T) {
	sm, _ := newStateMachine(t)

	for _, s := range order.AllStatuses() {
		expected := s == order.Delivered || s == order.Canceled
		assert.Equal(t, expected, sm.IsTerminal(s), s.String())
	}
}

func TestStateMachine_TransitionOrder(t *testing.T) {
	forward := []struct {
		current order.Status
		next    order.Status
	}{
		{order.Received, order.Confirmed},
		{order.Confirmed, order.Dispatched},
		{order.Dispatched, order.Delivered},
	}

	for _, tt := range forward {
		t.Run("advances "+tt.current.String(), func(t *testing.T) {
			ctx := t.Context()
			sm, appender := newStateMachine(t)
			id := kernel.NewUUID()
			updated := &order.Order{}
			appender.On("Append", ctx, id, tt.next, order.OriginStore).Return(updated, nil).Once()

			result, err := sm.TransitionOrder(ctx, tt.current, id)

			require.NoError(t, err)
			assert.Same(t, updated, result)
			appender.AssertExpectations(t)
		})
	}

	for _, current := range []order.Status{order.Delivered, order.Canceled, order.Unknown} {
		t.Run("ignores "+current.String(), func(t *testing.T) {
			sm, appender := newStateMachine(t)

			result, err := sm.TransitionOrder(t.Context(), current, kernel.NewUUID())

			require.NoError(t, err)
			assert.Nil(t, result)
			appender.AssertNotCalled(t, "Append", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}

	t.Run("propagates appender errors", func(t *testing.T) {
		ctx := t.Context()
		sm, appender := newStateMachine(t)
		id := kernel.NewUUID()
		appender.On("Append", ctx, id, order.Confirmed, order.OriginStore).Return(nil, errors.New("db down")).Once()

		_, err := sm.TransitionOrder(ctx, order.Received, id)

		require.EqualError(t, err, "db down")
	})
}

func TestStateMachine_CancelOrder(t *testing.T) {
	for _, current := range []order.Status{order.Received, order.Confirmed, order.Dispatched} {
		t.Run("cancels "+current.String(), func(t *testing.T) {
			ctx := t.Context()
			sm, appender := newStateMachine(t)
			id := kernel.NewUUID()
			appender.On("Append", ctx, id, order.Canceled, order.OriginStore).Return(&order.Order{}, nil).Once()

			result, err := sm.CancelOrder(ctx, current, id)

			require.NoError(t, err)
			assert.NotNil(t, result)
			appender.AssertExpectations(t)
		})
	}

	for _, current := range []order.Status{order.Delivered, order.Canceled, order.Unknown} {
		t.Run("ignores "+current.String(), func(t *testing.T) {
			sm, appender := newStateMachine(t)

			result, err := sm.CancelOrder(t.Context(), current, kernel.NewUUID())

			require.NoError(t, err)
			assert.Nil(t, result)
			appender.AssertNotCalled(t, "Append", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

// memoryAppender applies appends to orders held in memory.
type memoryAppender struct {
	orders map[string]*order.Order
	now    time.Time
}

func newMemoryAppender() *memoryAppender {
	return &memoryAppender{
		orders: make(map[string]*order.Order),
		now:    time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (a *memoryAppender) Append(
	_ context.Context,
	orderID kernel.UUID,
	name order.Status,
	origin order.Origin,
) (*order.Order, error) {
	o, ok := a.orders[orderID.String()]
	if !ok {
		return nil, errors.New("order not found")
	}
	a.now = a.now.Add(time.Second)
	if err := o.AppendStatus(name, origin, a.now); err != nil {
		return nil, err
	}
	return o, nil
}

func TestStateMachine_FullLifecycle(t *testing.T) {
	ctx := t.Context()
	appender := newMemoryAppender()
	sm, err := services.NewStateMachine(appender)
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), "s1", map[string]json.RawMessage{}, appender.now)
	require.NoError(t, err)
	appender.orders[o.ID().String()] = o

	for n := 1; n <= 5; n++ {
		_, err = sm.TransitionOrder(ctx, o.LastStatus(), o.ID())
		require.NoError(t, err)
		statuses := o.Statuses()
		assert.Equal(t, statuses[len(statuses)-1].Name(), o.LastStatus())
	}

	assert.Len(t, o.Statuses(), 4)
	assert.Equal(t, order.Delivered, o.LastStatus())
	for i, r := range o.Statuses()[1:] {
		assert.Greater(t, r.CreatedAt(), o.Statuses()[i].CreatedAt())
		assert.Equal(t, order.OriginStore, r.Origin())
	}
}
