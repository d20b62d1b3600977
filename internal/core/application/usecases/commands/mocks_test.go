package commands_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 2, 20, 21, 17, 32, 0, time.UTC)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() ports.UnitOfWork {
	args := m.Called()
	return args.Get(0).(ports.UnitOfWork)
}

type MockOrderCache struct{ mock.Mock }

func (m *MockOrderCache) Get(ctx context.Context, id kernel.UUID) (*order.Order, bool, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Bool(1), args.Error(2)
}

func (m *MockOrderCache) Set(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderCache) Invalidate(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) PublishStatusChanged(ctx context.Context, event order.StatusChangedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockStatusMetrics struct{ mock.Mock }

func (m *MockStatusMetrics) ObserveTransition(from, to order.Status) {
	m.Called(from, to)
}

func (m *MockStatusMetrics) SetOrdersByStatus(counts map[order.Status]int64) {
	m.Called(counts)
}

type MockStateMachine struct{ mock.Mock }

func (m *MockStateMachine) CancelOrder(ctx context.Context, current order.Status, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, current, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockStateMachine) TransitionOrder(ctx context.Context, current order.Status, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, current, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

// newOrderIn builds an order advanced through path.
func newOrderIn(t *testing.T, path ...order.Status) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), "s1", map[string]json.RawMessage{"items": json.RawMessage(`[]`)}, testNow)
	require.NoError(t, err)
	for _, s := range path {
		require.NoError(t, o.AppendStatus(s, order.OriginStore, testNow))
	}
	return o
}

// txMocks wires a factory returning one unit of work bound to repo.
func txMocks(repo *MockOrderRepository) (*MockOrderUoWFactory, *MockOrderUoW) {
	uow := new(MockOrderUoW)
	uow.On("OrderRepository").Return(repo).Maybe()
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow)
	return factory, uow
}
