package seed_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"orders/internal/adapters/out/kafka/orderevents"
	"orders/internal/adapters/out/postgres"
	"orders/internal/adapters/out/postgres/orderrepo"
	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/clock"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/logger"
	"orders/internal/seed"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const seedFile = `[
  {"order_id": "0b6c7a52-0d7e-4a64-9b0f-3f0f6e0c2d11", "store_id": "store-1", "order": {"items": [{"sku": "A-1", "qty": 2}]}},
  {"order_id": "7e1f8c3a-5b2d-4c9e-8a71-2d4b6f9e0a33", "store_id": "store-2", "order": {"items": [], "notes": "ring twice"}}
]`

func newLoader(t *testing.T) (*seed.Loader, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "seed.db")), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&orderrepo.OrderDTO{}))

	create := commands.NewCreateOrderCommandHandler(
		postgres.NewGormUnitOfWorkFactory(db),
		clock.NewFixed(time.Date(2026, 2, 20, 12, 0, 0, 0, time.UTC)),
		orderevents.NoopPublisher{},
		logger.Nop(),
	)
	return seed.NewLoader(create, logger.Nop()), db
}

func countOrders(t *testing.T, db *gorm.DB) int64 {
	t.Helper()

	var n int64
	require.NoError(t, db.Model(&orderrepo.OrderDTO{}).Count(&n).Error)
	return n
}

func TestLoader_LoadIsIdempotent(t *testing.T) {
	loader, db := newLoader(t)
	ctx := context.Background()

	first, err := loader.Load(ctx, strings.NewReader(seedFile))
	require.NoError(t, err)
	assert.Equal(t, seed.Result{Created: 2}, first)

	second, err := loader.Load(ctx, strings.NewReader(seedFile))
	require.NoError(t, err)
	assert.Equal(t, seed.Result{Skipped: 2}, second)

	assert.Equal(t, int64(2), countOrders(t, db))
}

func TestLoader_SeededOrdersStartReceived(t *testing.T) {
	loader, db := newLoader(t)

	_, err := loader.Load(context.Background(), strings.NewReader(seedFile))
	require.NoError(t, err)

	id, err := kernel.UUIDFromString("7e1f8c3a-5b2d-4c9e-8a71-2d4b6f9e0a33")
	require.NoError(t, err)
	stored, err := orderrepo.NewGormOrderRepository(db).Get(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, "store-2", stored.StoreID())
	assert.Equal(t, order.Received, stored.LastStatus())
	notes, ok := stored.Details().Field("notes")
	require.True(t, ok)
	assert.JSONEq(t, `"ring twice"`, string(notes))
}

func TestLoader_LoadFile(t *testing.T) {
	loader, _ := newLoader(t)
	path := filepath.Join(t.TempDir(), "orders.json")
	require.NoError(t, os.WriteFile(path, []byte(seedFile), 0o600))

	result, err := loader.LoadFile(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, 2, result.Created)
}

func TestLoader_LoadFileMissing(t *testing.T) {
	loader, _ := newLoader(t)

	_, err := loader.LoadFile(context.Background(), filepath.Join(t.TempDir(), "missing.json"))

	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoader_InvalidEntriesWriteNothing(t *testing.T) {
	tests := map[string]struct {
		file    string
		wantErr error
	}{
		"malformed json": {
			file:    `{"order_id":`,
			wantErr: errs.ErrValueIsInvalid,
		},
		"missing store id": {
			file:    `[{"order_id": "0b6c7a52-0d7e-4a64-9b0f-3f0f6e0c2d11", "order": {}}]`,
			wantErr: errs.ErrValueIsRequired,
		},
		"missing order": {
			file:    `[{"order_id": "0b6c7a52-0d7e-4a64-9b0f-3f0f6e0c2d11", "store_id": "s"}]`,
			wantErr: errs.ErrValueIsRequired,
		},
		"bad order id": {
			file:    `[{"order_id": "pedido-1", "store_id": "s", "order": {}}]`,
			wantErr: errs.ErrValueIsInvalid,
		},
		"one bad entry among good ones": {
			file: `[
			  {"order_id": "0b6c7a52-0d7e-4a64-9b0f-3f0f6e0c2d11", "store_id": "s", "order": {}},
			  {"order_id": "", "store_id": "s", "order": {}}
			]`,
			wantErr: errs.ErrValueIsRequired,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			loader, db := newLoader(t)

			_, err := loader.Load(context.Background(), strings.NewReader(tt.file))

			require.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, countOrders(t, db))
		})
	}
}

type mockCreator struct{ mock.Mock }

func (m *mockCreator) Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func TestLoader_StopsOnUnexpectedError(t *testing.T) {
	boom := errors.New("connection reset")
	creator := new(mockCreator)
	creator.On("Handle", mock.Anything, mock.Anything).Return(nil, boom).Once()

	result, err := seed.NewLoader(creator, logger.Nop()).Load(context.Background(), strings.NewReader(seedFile))

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, seed.Result{}, result)
	creator.AssertNumberOfCalls(t, "Handle", 1)
}
