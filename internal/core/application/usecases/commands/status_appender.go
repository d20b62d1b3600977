package commands

import (
	"context"
	"errors"
	"fmt"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/logger"
)

// ErrStatusChanged is the cause attached to the conflict returned when the stored
// status no longer allows the requested one.
var ErrStatusChanged = errors.New("order status changed concurrently")

// StatusAppender implements ports.StatusAppender.
//
// Load, append and save run in one transaction, and the save is a conditional
// update on the version the order was loaded with. Two writers that read the same
// version cannot both succeed: the loser gets errs.VersionIsInvalidError and the
// history keeps exactly one of the two records.
//
// After commit the cached copy is dropped, a StatusChangedEvent is published and
// the transition counter is incremented. Failures of those side effects are logged
// and do not fail the append.
type StatusAppender struct {
	uowFactory OrderUoWFactory
	clock      ports.Clock
	cache      ports.OrderCache
	publisher  ports.OrderEventPublisher
	metrics    ports.StatusMetrics
	log        *logger.Logger
}

func NewStatusAppender(
	uowFactory OrderUoWFactory,
	clock ports.Clock,
	cache ports.OrderCache,
	publisher ports.OrderEventPublisher,
	metrics ports.StatusMetrics,
	log *logger.Logger,
) *StatusAppender {
	return &StatusAppender{
		uowFactory: uowFactory,
		clock:      clock,
		cache:      cache,
		publisher:  publisher,
		metrics:    metrics,
		log:        log,
	}
}

// Append returns:
//   - errs.ObjectNotFoundError if the order does not exist
//   - errs.VersionIsInvalidError if another writer changed the order since it was loaded,
//     or if the stored status does not allow name
//   - a validation error for an invalid name or origin
func (a *StatusAppender) Append(
	ctx context.Context,
	orderID kernel.UUID,
	name order.Status,
	origin order.Origin,
) (*order.Order, error) {
	if err := errors.Join(orderID.Validate(), name.Validate(), origin.Validate()); err != nil {
		return nil, err
	}

	uow := a.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	current, err := repo.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	previous := current.LastStatus()
	if !previous.CanTransitionTo(name) {
		return nil, errs.NewVersionIsInvalidErrorWithCause(
			"order",
			fmt.Errorf("%w: %s cannot follow %s", ErrStatusChanged, name, previous),
		)
	}

	if err = current.AppendStatus(name, origin, a.clock.Now()); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, current); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	a.afterCommit(ctx, current, previous)

	return current, nil
}

func (a *StatusAppender) afterCommit(ctx context.Context, updated *order.Order, previous order.Status) {
	ctx = a.log.WithFields(ctx, map[string]any{
		"order_id": updated.ID().String(),
		"from":     previous.String(),
		"to":       updated.LastStatus().String(),
	})

	if err := a.cache.Invalidate(ctx, updated.ID()); err != nil {
		a.log.Warn(ctx, "failed to invalidate cached order", err)
	}

	if err := a.publisher.PublishStatusChanged(ctx, order.NewStatusChangedEvent(updated, previous)); err != nil {
		a.log.Warn(ctx, "failed to publish status changed event", err)
	}

	a.metrics.ObserveTransition(previous, updated.LastStatus())
	a.log.Info(ctx, "order status appended")
}
