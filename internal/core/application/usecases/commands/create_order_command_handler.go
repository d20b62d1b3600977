package commands

import (
	"context"

	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"
	"orders/internal/pkg/logger"
)

// CreateOrderCommandHandler stores a new order with its initial RECEIVED status
// and announces that status once the transaction is committed.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      ports.Clock
	publisher  ports.OrderEventPublisher
	log        *logger.Logger
}

func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	clock ports.Clock,
	publisher ports.OrderEventPublisher,
	log *logger.Logger,
) *CreateOrderCommandHandler {
	return &CreateOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		publisher:  publisher,
		log:        log,
	}
}

// Handle returns errs.ObjectAlreadyExistsError when the id is taken.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	created, err := order.NewOrder(cmd.OrderID(), cmd.StoreID(), cmd.Details(), h.clock.Now())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, created); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	logCtx := h.log.WithOrderID(ctx, created.ID().String())
	if err = h.publisher.PublishStatusChanged(logCtx, order.NewStatusChangedEvent(created, order.Unknown)); err != nil {
		h.log.Warn(logCtx, "failed to publish order created event", err)
	}
	h.log.Info(logCtx, "order created")

	return created, nil
}
