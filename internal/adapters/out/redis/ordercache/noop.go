package ordercache

import (
	"context"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
)

// NoopOrderCache always misses. Used when REDIS_ADDR is not configured.
type NoopOrderCache struct{}

func (NoopOrderCache) Get(context.Context, kernel.UUID) (*order.Order, bool, error) {
	return nil, false, nil
}

func (NoopOrderCache) Set(context.Context, *order.Order) error {
	return nil
}

func (NoopOrderCache) Invalidate(context.Context, kernel.UUID) error {
	return nil
}
