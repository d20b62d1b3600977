package commands

import (
	"context"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
)

// AppendOrderStatusCommandHandler loads the order, asks the state machine for the
// next step and returns the order as stored afterwards.
//
// A terminal order is returned unchanged without an error, and so is an order the
// state machine decided not to touch.
//
// Example:
//
//	cmd, _ := NewAppendOrderStatusCommand(id, false)
//	o, err := handler.Handle(ctx, cmd)
//	// RECEIVED -> CONFIRMED
type AppendOrderStatusCommandHandler struct {
	uowFactory   OrderUoWFactory
	stateMachine OrderStateMachine
}

func NewAppendOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	stateMachine OrderStateMachine,
) *AppendOrderStatusCommandHandler {
	return &AppendOrderStatusCommandHandler{
		uowFactory:   uowFactory,
		stateMachine: stateMachine,
	}
}

func (h *AppendOrderStatusCommandHandler) Handle(ctx context.Context, cmd AppendOrderStatusCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	current, err := h.load(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if current.IsTerminal() {
		return current, nil
	}

	if cmd.Cancel() {
		_, err = h.stateMachine.CancelOrder(ctx, current.LastStatus(), current.ID())
	} else {
		_, err = h.stateMachine.TransitionOrder(ctx, current.LastStatus(), current.ID())
	}
	if err != nil {
		return nil, err
	}

	return h.load(ctx, cmd.OrderID())
}

func (h *AppendOrderStatusCommandHandler) load(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return uow.OrderRepository().Get(ctx, id)
}
