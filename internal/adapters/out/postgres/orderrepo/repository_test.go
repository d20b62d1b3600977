package orderrepo_test

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"orders/internal/adapters/out/postgres/orderrepo"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var createdAt = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "orders.db")), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&orderrepo.OrderDTO{}))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func newOrder(t *testing.T) *order.Order {
	t.Helper()

	o, err := order.NewOrder(kernel.NewUUID(), "store-1", map[string]json.RawMessage{
		"items":    json.RawMessage(`[{"sku":"A-1","qty":2}]`),
		"customer": json.RawMessage(`{"name":"Ada"}`),
	}, createdAt)
	require.NoError(t, err)
	return o
}

func TestGormOrderRepository_AddAndGet(t *testing.T) {
	ctx := context.Background()
	repo := orderrepo.NewGormOrderRepository(newTestDB(t))
	o := newOrder(t)

	require.NoError(t, repo.Add(ctx, o))

	loaded, err := repo.Get(ctx, o.ID())
	require.NoError(t, err)

	assert.True(t, loaded.IsEqual(o))
	assert.Equal(t, "store-1", loaded.StoreID())
	assert.Equal(t, int64(0), loaded.Version())
	assert.Equal(t, order.Received, loaded.LastStatus())
	assert.Equal(t, o.ID().String(), loaded.Details().OrderID())
	require.Len(t, loaded.Statuses(), 1)
	assert.Equal(t, order.OriginStore, loaded.Statuses()[0].Origin())

	items, ok := loaded.Details().Field("items")
	require.True(t, ok)
	assert.JSONEq(t, `[{"sku":"A-1","qty":2}]`, string(items))
}

func TestGormOrderRepository_Add_Duplicate(t *testing.T) {
	ctx := context.Background()
	repo := orderrepo.NewGormOrderRepository(newTestDB(t))
	o := newOrder(t)

	require.NoError(t, repo.Add(ctx, o))

	err := repo.Add(ctx, o)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrObjectAlreadyExists)
}

func TestGormOrderRepository_Get_NotFound(t *testing.T) {
	repo := orderrepo.NewGormOrderRepository(newTestDB(t))

	_, err := repo.Get(context.Background(), kernel.NewUUID())

	var notFound *errs.ObjectNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "order", notFound.ParamName)
}

func TestGormOrderRepository_Get_InvalidID(t *testing.T) {
	repo := orderrepo.NewGormOrderRepository(newTestDB(t))

	_, err := repo.Get(context.Background(), kernel.UUID{})

	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestGormOrderRepository_Update_AdvancesVersion(t *testing.T) {
	ctx := context.Background()
	repo := orderrepo.NewGormOrderRepository(newTestDB(t))
	o := newOrder(t)
	require.NoError(t, repo.Add(ctx, o))

	require.NoError(t, o.AppendStatus(order.Confirmed, order.OriginStore, createdAt.Add(time.Minute)))
	require.NoError(t, repo.Update(ctx, o))
	assert.Equal(t, int64(1), o.Version())

	loaded, err := repo.Get(ctx, o.ID())
	require.NoError(t, err)
	assert.Equal(t, int64(1), loaded.Version())
	assert.Equal(t, order.Confirmed, loaded.LastStatus())
	assert.Len(t, loaded.Statuses(), 2)
	assert.True(t, loaded.UpdatedAt().Equal(createdAt.Add(time.Minute)))
}

func TestGormOrderRepository_Update_StaleVersion(t *testing.T) {
	ctx := context.Background()
	repo := orderrepo.NewGormOrderRepository(newTestDB(t))
	o := newOrder(t)
	require.NoError(t, repo.Add(ctx, o))

	// two readers observe version 0
	first, err := repo.Get(ctx, o.ID())
	require.NoError(t, err)
	second, err := repo.Get(ctx, o.ID())
	require.NoError(t, err)

	require.NoError(t, first.AppendStatus(order.Confirmed, order.OriginStore, createdAt.Add(time.Second)))
	require.NoError(t, second.AppendStatus(order.Canceled, order.OriginStore, createdAt.Add(time.Second)))

	require.NoError(t, repo.Update(ctx, first))
	err = repo.Update(ctx, second)

	var conflict *errs.VersionIsInvalidError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, int64(0), second.Version())

	stored, err := repo.Get(ctx, o.ID())
	require.NoError(t, err)
	assert.Equal(t, order.Confirmed, stored.LastStatus())
	assert.Len(t, stored.Statuses(), 2)
}

func TestGormOrderRepository_Update_Missing(t *testing.T) {
	repo := orderrepo.NewGormOrderRepository(newTestDB(t))

	err := repo.Update(context.Background(), newOrder(t))

	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestGormOrderRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := orderrepo.NewGormOrderRepository(newTestDB(t))
	o := newOrder(t)
	require.NoError(t, repo.Add(ctx, o))

	require.NoError(t, repo.Delete(ctx, o.ID()))

	_, err := repo.Get(ctx, o.ID())
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)

	err = repo.Delete(ctx, o.ID())
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestToDomain_RejectsCorruptDetails(t *testing.T) {
	o := newOrder(t)

	_, err := orderrepo.ToDomain(orderrepo.OrderDTO{
		ID:             o.ID().Google(),
		StoreID:        "store-1",
		Details:        `{"statuses":[]}`,
		LastStatusName: "RECEIVED",
		CreatedAt:      createdAt,
		UpdatedAt:      createdAt,
	})

	assert.Error(t, err)
}
