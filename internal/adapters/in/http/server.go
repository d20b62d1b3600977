package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/generated/servers"
	"orders/internal/pkg/logger"

	"github.com/labstack/echo/v4"
)

type CreateOrderHandler interface {
	Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)
}

type AppendOrderStatusHandler interface {
	Handle(ctx context.Context, cmd commands.AppendOrderStatusCommand) (*order.Order, error)
}

type DeleteOrderHandler interface {
	Handle(ctx context.Context, cmd commands.DeleteOrderCommand) error
}

type GetOrderHandler interface {
	Handle(ctx context.Context, query queries.GetOrderQuery) (*order.Order, error)
}

type ListOrdersHandler interface {
	Handle(ctx context.Context, query queries.ListOrdersQuery) ([]*order.Order, error)
}

// Server implements servers.ServerInterface on top of the order use cases.
type Server struct {
	// Command handlers
	createOrderHandler       CreateOrderHandler
	appendOrderStatusHandler AppendOrderStatusHandler
	deleteOrderHandler       DeleteOrderHandler

	// Query handlers
	getOrderHandler   GetOrderHandler
	listOrdersHandler ListOrdersHandler

	log *logger.Logger
}

var _ servers.ServerInterface = (*Server)(nil)

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler CreateOrderHandler,
	appendOrderStatusHandler AppendOrderStatusHandler,
	deleteOrderHandler DeleteOrderHandler,
	getOrderHandler GetOrderHandler,
	listOrdersHandler ListOrdersHandler,
	log *logger.Logger,
) *Server {
	return &Server{
		createOrderHandler:       createOrderHandler,
		appendOrderStatusHandler: appendOrderStatusHandler,
		deleteOrderHandler:       deleteOrderHandler,
		getOrderHandler:          getOrderHandler,
		listOrdersHandler:        listOrdersHandler,
		log:                      log,
	}
}

// ListOrders handles GET /api/v1/orders.
func (s *Server) ListOrders(ctx echo.Context, params servers.ListOrdersParams) error {
	limit := queries.DefaultListLimit
	if params.Limit != nil {
		limit = *params.Limit
	}

	offset := 0
	if params.Offset != nil {
		offset = *params.Offset
	}

	status := order.Unknown
	if params.Status != nil {
		parsed, err := order.ParseStatus(string(*params.Status))
		if err != nil {
			return s.writeError(ctx, err)
		}
		status = parsed
	}

	query, err := queries.NewListOrdersQuery(limit, offset, status)
	if err != nil {
		return s.writeError(ctx, err)
	}

	orders, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	response := make([]servers.Order, len(orders))
	for i, o := range orders {
		if response[i], err = toResponse(o); err != nil {
			return s.writeError(ctx, err)
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateOrder handles POST /api/v1/orders. A missing id is generated.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body servers.CreateOrderJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	orderID := kernel.NewUUID()
	if body.Id != nil {
		id, err := kernel.UUIDFromGoogle(*body.Id)
		if err != nil {
			return s.writeError(ctx, err)
		}
		orderID = id
	}

	cmd, err := commands.NewCreateOrderCommand(orderID, body.StoreId, body.Details)
	if err != nil {
		return s.writeError(ctx, err)
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return s.writeOrder(ctx, http.StatusCreated, created)
}

// GetOrder handles GET /api/v1/orders/{id}.
func (s *Server) GetOrder(ctx echo.Context, id servers.OrderID) error {
	orderID, err := kernel.UUIDFromGoogle(id)
	if err != nil {
		return s.writeError(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return s.writeError(ctx, err)
	}

	found, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return s.writeOrder(ctx, http.StatusOK, found)
}

// AppendOrderStatus handles PATCH /api/v1/orders/{id}/status. The order is
// canceled when cancel is true or "true" in the query or the body, and moved
// one step forward otherwise.
func (s *Server) AppendOrderStatus(ctx echo.Context, id servers.OrderID, params servers.AppendOrderStatusParams) error {
	orderID, err := kernel.UUIDFromGoogle(id)
	if err != nil {
		return s.writeError(ctx, err)
	}

	cancel := params.Cancel != nil && *params.Cancel == "true"

	var body servers.AppendOrderStatusJSONRequestBody
	if err = json.NewDecoder(ctx.Request().Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if body.Cancel != nil {
		cancel = cancel || isTruthy(*body.Cancel)
	}

	cmd, err := commands.NewAppendOrderStatusCommand(orderID, cancel)
	if err != nil {
		return s.writeError(ctx, err)
	}

	updated, err := s.appendOrderStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return s.writeOrder(ctx, http.StatusOK, updated)
}

// DeleteOrder handles DELETE /api/v1/orders/{id}.
func (s *Server) DeleteOrder(ctx echo.Context, id servers.OrderID) error {
	orderID, err := kernel.UUIDFromGoogle(id)
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewDeleteOrderCommand(orderID)
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err = s.deleteOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) writeOrder(ctx echo.Context, status int, o *order.Order) error {
	response, err := toResponse(o)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.JSON(status, response)
}

func toResponse(o *order.Order) (servers.Order, error) {
	details, err := o.Details().MarshalJSON()
	if err != nil {
		return servers.Order{}, err
	}

	return servers.Order{
		Id:        o.ID().Google(),
		StoreId:   o.StoreID(),
		Details:   details,
		CreatedAt: o.CreatedAt(),
		UpdatedAt: o.UpdatedAt(),
	}, nil
}

func isTruthy(raw json.RawMessage) bool {
	var flag bool
	if err := json.Unmarshal(raw, &flag); err == nil {
		return flag
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text == "true"
	}

	return false
}
