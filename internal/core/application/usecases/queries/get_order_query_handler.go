package queries

import (
	"context"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"
	"orders/internal/pkg/logger"
)

// OrderReader loads one order from the store of record.
type OrderReader interface {
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}

// GetOrderQueryHandler reads through the cache. Cache failures are logged and
// treated as misses so that an unavailable cache never fails a read.
type GetOrderQueryHandler struct {
	reader OrderReader
	cache  ports.OrderCache
	log    *logger.Logger
}

func NewGetOrderQueryHandler(reader OrderReader, cache ports.OrderCache, log *logger.Logger) *GetOrderQueryHandler {
	return &GetOrderQueryHandler{
		reader: reader,
		cache:  cache,
		log:    log,
	}
}

// Handle returns errs.ObjectNotFoundError when the order does not exist.
func (h *GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	ctx = h.log.WithOrderID(ctx, query.OrderID().String())

	cached, ok, err := h.cache.Get(ctx, query.OrderID())
	if err != nil {
		h.log.Warn(ctx, "order cache read failed", err)
	}
	if ok {
		return cached, nil
	}

	loaded, err := h.reader.Get(ctx, query.OrderID())
	if err != nil {
		return nil, err
	}

	if err = h.cache.Set(ctx, loaded); err != nil {
		h.log.Warn(ctx, "order cache write failed", err)
		return loaded, nil
	}

	h.dropIfStale(ctx, loaded)

	return loaded, nil
}

// dropIfStale re-reads the order after the snapshot was cached. A write that
// committed between the read and the Set may have invalidated the entry before
// the Set landed; when the stored version moved on, the snapshot is dropped.
func (h *GetOrderQueryHandler) dropIfStale(ctx context.Context, cached *order.Order) {
	current, err := h.reader.Get(ctx, cached.ID())
	if err == nil && current.Version() == cached.Version() {
		return
	}

	if err = h.cache.Invalidate(ctx, cached.ID()); err != nil {
		h.log.Warn(ctx, "order cache invalidate failed", err)
	}
}
