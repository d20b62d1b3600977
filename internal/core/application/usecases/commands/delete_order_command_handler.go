package commands

import (
	"context"

	"orders/internal/core/ports"
	"orders/internal/pkg/logger"
)

// DeleteOrderCommandHandler hard-deletes an order and drops its cached copy.
type DeleteOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	cache      ports.OrderCache
	log        *logger.Logger
}

func NewDeleteOrderCommandHandler(
	uowFactory OrderUoWFactory,
	cache ports.OrderCache,
	log *logger.Logger,
) *DeleteOrderCommandHandler {
	return &DeleteOrderCommandHandler{
		uowFactory: uowFactory,
		cache:      cache,
		log:        log,
	}
}

// Handle returns errs.ObjectNotFoundError when the order does not exist.
func (h *DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OrderRepository().Delete(ctx, cmd.OrderID()); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	logCtx := h.log.WithOrderID(ctx, cmd.OrderID().String())
	if err := h.cache.Invalidate(logCtx, cmd.OrderID()); err != nil {
		h.log.Warn(logCtx, "failed to invalidate cached order", err)
	}
	h.log.Info(logCtx, "order deleted")

	return nil
}
