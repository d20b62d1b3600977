package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"orders/internal/core/domain/model/order"
	"orders/internal/generated/servers"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/logger"

	"github.com/labstack/echo/v4"
)

// statusOf maps domain errors to response codes:
//
//	ObjectNotFound                                     404
//	VersionIsInvalid, ErrOrderIsTerminal               409
//	ValueIsRequired/Invalid/OutOfRange, AlreadyExists  422
//	anything else                                      500
func statusOf(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrVersionIsInvalid),
		errors.Is(err, order.ErrOrderIsTerminal):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrObjectAlreadyExists):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(ctx echo.Context, err error) error {
	status := statusOf(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		s.log.Error(ctx.Request().Context(), "request failed", err)
		message = "Internal server error"
	}

	return ctx.JSON(status, servers.Error{
		Code:    status,
		Message: singleLine(message),
	})
}

// errorHandler renders errors that escape the handlers, such as routing and
// parameter binding failures, in the API error format.
func errorHandler(log *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		if ctx.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := "Internal server error"

		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			status = httpErr.Code
			message = fmt.Sprint(httpErr.Message)
		} else {
			log.Error(ctx.Request().Context(), "unhandled error", err)
		}

		var writeErr error
		if ctx.Request().Method == http.MethodHead {
			writeErr = ctx.NoContent(status)
		} else {
			writeErr = ctx.JSON(status, servers.Error{Code: status, Message: singleLine(message)})
		}
		if writeErr != nil {
			log.Warn(ctx.Request().Context(), "failed to write error response", writeErr)
		}
	}
}

func singleLine(message string) string {
	if i := strings.IndexByte(message, '\n'); i >= 0 {
		return message[:i]
	}
	return message
}
