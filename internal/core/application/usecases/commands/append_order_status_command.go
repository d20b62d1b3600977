package commands

import (
	"errors"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/guard"
)

var ErrAppendOrderStatusCommandIsNotConstructed = errors.New(
	"AppendOrderStatusCommand must be created via NewAppendOrderStatusCommand constructor",
)

// AppendOrderStatusCommand advances an order one step, or cancels it when cancel is set.
type AppendOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	cancel  bool

	guard guard.ConstructorGuard
}

func NewAppendOrderStatusCommand(orderID kernel.UUID, cancel bool) (AppendOrderStatusCommand, error) {
	if err := orderID.Validate(); err != nil {
		return AppendOrderStatusCommand{}, err
	}

	return AppendOrderStatusCommand{
		orderID: orderID,
		cancel:  cancel,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c AppendOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrAppendOrderStatusCommandIsNotConstructed)
}

func (c AppendOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c AppendOrderStatusCommand) Cancel() bool {
	return c.cancel
}
