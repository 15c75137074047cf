// Package http contains the inbound HTTP adapter. It binds and validates
// request payloads at the edge, so malformed input never reaches the
// decision engine.
package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/dehanf/Smart-takeout-system/internal/core/application/usecases/commands"
	"github.com/dehanf/Smart-takeout-system/internal/core/application/usecases/queries"
	"github.com/dehanf/Smart-takeout-system/internal/core/domain/model/kernel"
	"github.com/dehanf/Smart-takeout-system/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler           commands.CreateOrderCommandHandler
	processLocationUpdateHandler commands.ProcessLocationUpdateCommandHandler
	markOrderReadyHandler        commands.MarkOrderReadyCommandHandler
	completeOrderHandler         commands.CompleteOrderCommandHandler

	// Query handlers
	getTrackedOrdersHandler queries.GetTrackedOrdersQueryHandler
	getOrderHandler         queries.GetOrderQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	processLocationUpdateHandler commands.ProcessLocationUpdateCommandHandler,
	markOrderReadyHandler commands.MarkOrderReadyCommandHandler,
	completeOrderHandler commands.CompleteOrderCommandHandler,
	getTrackedOrdersHandler queries.GetTrackedOrdersQueryHandler,
	getOrderHandler queries.GetOrderQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:           createOrderHandler,
		processLocationUpdateHandler: processLocationUpdateHandler,
		markOrderReadyHandler:        markOrderReadyHandler,
		completeOrderHandler:         completeOrderHandler,
		getTrackedOrdersHandler:      getTrackedOrdersHandler,
		getOrderHandler:              getOrderHandler,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/active", s.GetActiveOrders)
	api.GET("/orders/:orderId", s.GetOrder)
	api.POST("/orders/:orderId/location", s.UpdateLocation)
	api.POST("/orders/:orderId/ready", s.MarkOrderReady)
	api.POST("/orders/:orderId/complete", s.CompleteOrder)

	e.GET("/health", s.Health)
}

// CreateOrder handles POST /api/v1/orders - registers a new order for tracking.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req NewOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	shopLocation, err := kernel.NewGeoPoint(req.ShopLocation.Latitude, req.ShopLocation.Longitude)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid shop coordinates: " + err.Error(),
		})
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID, req.CustomerName, shopLocation, req.ShopLocation.Address, req.PrepTimeMinutes)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid order data: " + err.Error(),
		})
	}

	if handleErr := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to create order",
		})
	}

	return ctx.JSON(http.StatusCreated, CreatedOrderResponse{ID: orderID.String()})
}

// UpdateLocation handles POST /api/v1/orders/:orderId/location - one live
// position sample. Always 202 once the payload passes validation: the
// engine treats unknown and finished orders as silent no-ops, and a caller
// resending stale samples learns nothing it can act on.
func (s *Server) UpdateLocation(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id",
		})
	}

	var req LocationUpdateRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	position, err := kernel.NewGeoPoint(req.Latitude, req.Longitude)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid coordinates: " + err.Error(),
		})
	}

	cmd, err := commands.NewProcessLocationUpdateCommand(orderID, position, time.Now().UTC())
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid position sample: " + err.Error(),
		})
	}

	if handleErr := s.processLocationUpdateHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to process position sample",
		})
	}

	return ctx.NoContent(http.StatusAccepted)
}

// MarkOrderReady handles POST /api/v1/orders/:orderId/ready - the kitchen
// finished cooking.
func (s *Server) MarkOrderReady(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id",
		})
	}

	cmd, err := commands.NewMarkOrderReadyCommand(orderID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id",
		})
	}

	if handleErr := s.markOrderReadyHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return s.transitionError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CompleteOrder handles POST /api/v1/orders/:orderId/complete - the
// customer picked the order up.
func (s *Server) CompleteOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id",
		})
	}

	cmd, err := commands.NewCompleteOrderCommand(orderID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id",
		})
	}

	if handleErr := s.completeOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return s.transitionError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetActiveOrders handles GET /api/v1/orders/active - retrieves all orders
// not yet picked up.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	query := queries.NewGetTrackedOrdersQuery()

	orders, err := s.getTrackedOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve orders",
		})
	}

	response := make([]OrderSummaryResponse, len(orders))
	for i, o := range orders {
		response[i] = OrderSummaryResponse{
			ID:           o.ID.String(),
			CustomerName: o.CustomerName,
			ShopLocation: LocationResponse{
				Latitude:  o.ShopLocation.Latitude(),
				Longitude: o.ShopLocation.Longitude(),
			},
			PrepTimeMinutes:   o.PrepTimeMinutes,
			Status:            o.Status.String(),
			LastProviderCheck: o.LastProviderCheck,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrder handles GET /api/v1/orders/:orderId - retrieves one order.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id",
		})
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id",
		})
	}

	o, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ctx.JSON(http.StatusNotFound, ErrorResponse{
				Code:    http.StatusNotFound,
				Message: "Order not found",
			})
		}
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve order",
		})
	}

	return ctx.JSON(http.StatusOK, OrderResponse{
		ID:           o.ID.String(),
		CustomerName: o.CustomerName,
		ShopLocation: LocationResponse{
			Latitude:  o.ShopLocation.Latitude(),
			Longitude: o.ShopLocation.Longitude(),
		},
		ShopAddress:       o.ShopAddress,
		PrepTimeMinutes:   o.PrepTimeMinutes,
		Status:            o.Status.String(),
		LastProviderCheck: o.LastProviderCheck,
		CreatedAt:         o.CreatedAt,
	})
}

// Health handles GET /health - liveness probe.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) transitionError(ctx echo.Context, err error) error {
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ctx.JSON(http.StatusNotFound, ErrorResponse{
			Code:    http.StatusNotFound,
			Message: "Order not found",
		})
	}

	return ctx.JSON(http.StatusConflict, ErrorResponse{
		Code:    http.StatusConflict,
		Message: "Invalid status transition: " + err.Error(),
	})
}
