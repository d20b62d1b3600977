package commands

import (
	"encoding/json"
	"errors"
	"strings"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand asks for a new order in the RECEIVED status.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), "s1", map[string]json.RawMessage{
//	    "items": json.RawMessage(`[]`),
//	})
//	if err != nil {
//	    return err // store_id or details missing
//	}
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	storeID string
	details map[string]json.RawMessage

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the request. Pass kernel.NewUUID() when the caller
// did not choose an id.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	storeID string,
	details map[string]json.RawMessage,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setStoreID(storeID),
		cmd.setDetails(details),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateOrderCommand) StoreID() string {
	return c.storeID
}

// Details returns the caller-supplied details fields.
func (c CreateOrderCommand) Details() map[string]json.RawMessage {
	return c.details
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setStoreID(storeID string) error {
	if strings.TrimSpace(storeID) == "" {
		return errs.NewValueIsRequiredError("store_id")
	}
	c.storeID = storeID
	return nil
}

func (c *CreateOrderCommand) setDetails(details map[string]json.RawMessage) error {
	if details == nil {
		return errs.NewValueIsRequiredError("details")
	}
	c.details = details
	return nil
}
