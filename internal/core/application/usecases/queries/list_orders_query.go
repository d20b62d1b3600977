package queries

import (
	"errors"

	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery pages through orders ordered by creation time, then id.
// A status of order.Unknown disables the status filter.
type ListOrdersQuery struct {
	limit  int
	offset int
	status order.Status

	guard guard.ConstructorGuard
}

func NewListOrdersQuery(limit, offset int, status order.Status) (ListOrdersQuery, error) {
	var validationErrors []error

	if limit < 1 || limit > MaxListLimit {
		validationErrors = append(validationErrors, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxListLimit))
	}
	if offset < 0 {
		validationErrors = append(validationErrors, errs.NewValueIsOutOfRangeError("offset", offset, 0, "unbounded"))
	}
	if status != order.Unknown {
		if err := status.Validate(); err != nil {
			validationErrors = append(validationErrors, err)
		}
	}

	if len(validationErrors) > 0 {
		return ListOrdersQuery{}, errors.Join(validationErrors...)
	}

	return ListOrdersQuery{
		limit:  limit,
		offset: offset,
		status: status,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Limit() int {
	return q.limit
}

func (q ListOrdersQuery) Offset() int {
	return q.offset
}

// Status returns the filter, or order.Unknown when every status is listed.
func (q ListOrdersQuery) Status() order.Status {
	return q.status
}
