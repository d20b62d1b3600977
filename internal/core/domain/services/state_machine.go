package services

import (
	"context"
	"errors"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"
)

// ErrStatusAppenderIsRequired is returned by NewStateMachine when appender is nil.
var ErrStatusAppenderIsRequired = errors.New("status appender is required")

// StateMachine decides which status an order moves to next and delegates the
// actual append to a ports.StatusAppender. Every transition it requests is
// attributed to order.OriginStore.
//
// Requests that the transition table does not allow are ignored rather than
// rejected: both CancelOrder and TransitionOrder return (nil, nil) when there is
// nothing to do, so repeated calls on a finished order are harmless.
//
// Example:
//
//	sm, _ := services.NewStateMachine(appender)
//	updated, err := sm.TransitionOrder(ctx, o.LastStatus(), o.ID())
//	if err != nil {
//	    return err
//	}
//	if updated == nil {
//	    // o was terminal, nothing appended
//	}
type StateMachine struct {
	appender ports.StatusAppender
	origin   order.Origin
}

func NewStateMachine(appender ports.StatusAppender) (*StateMachine, error) {
	if appender == nil {
		return nil, ErrStatusAppenderIsRequired
	}
	return &StateMachine{
		appender: appender,
		origin:   order.OriginStore,
	}, nil
}

// IsValidTransition reports whether target is in the allowed set of current.
// An unknown current status has an empty allowed set.
func (sm *StateMachine) IsValidTransition(current, target order.Status) bool {
	return current.CanTransitionTo(target)
}

// IsTerminal reports whether current has no outgoing transitions.
func (sm *StateMachine) IsTerminal(current order.Status) bool {
	return current.IsTerminal()
}

// CancelOrder appends CANCELED when current allows it and is a silent no-op otherwise.
func (sm *StateMachine) CancelOrder(ctx context.Context, current order.Status, orderID kernel.UUID) (*order.Order, error) {
	if !current.IsCancelable() {
		return nil, nil
	}
	return sm.appender.Append(ctx, orderID, order.Canceled, sm.origin)
}

// TransitionOrder appends the single forward successor of current:
// RECEIVED to CONFIRMED, CONFIRMED to DISPATCHED, DISPATCHED to DELIVERED.
// Terminal and unknown statuses are a silent no-op.
func (sm *StateMachine) TransitionOrder(ctx context.Context, current order.Status, orderID kernel.UUID) (*order.Order, error) {
	if sm.IsTerminal(current) {
		return nil, nil
	}
	next, ok := current.Next()
	if !ok {
		return nil, nil
	}
	return sm.appender.Append(ctx, orderID, next, sm.origin)
}
