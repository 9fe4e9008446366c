package http

import (
	"context"
	"net/http"

	"riderdispatch/internal/core/application/usecases/commands"
	"riderdispatch/internal/core/application/usecases/queries"
	"riderdispatch/internal/core/domain/model/kernel"
	"riderdispatch/internal/core/domain/model/order"
	"riderdispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// CommandHandler is satisfied by every command handler of the application layer.
type CommandHandler[C any] interface {
	Handle(ctx context.Context, cmd C) error
}

// QueryHandler is satisfied by every query handler of the application layer.
type QueryHandler[Q, R any] interface {
	Handle(ctx context.Context, query Q) (R, error)
}

// Handlers groups the use cases the API exposes.
type Handlers struct {
	CreateOrder         CommandHandler[commands.CreateOrderCommand]
	AdvanceDelivery     CommandHandler[commands.AdvanceDeliveryCommand]
	CancelOrder         CommandHandler[commands.CancelOrderCommand]
	CreateRider         CommandHandler[commands.CreateRiderCommand]
	ApproveRider        CommandHandler[commands.ApproveRiderCommand]
	SetRiderOnline      CommandHandler[commands.SetRiderOnlineCommand]
	AcceptNotification  CommandHandler[commands.AcceptNotificationCommand]
	DeclineNotification CommandHandler[commands.DeclineNotificationCommand]

	GetOrder              QueryHandler[queries.GetOrderQuery, queries.OrderResponse]
	GetRider              QueryHandler[queries.GetRiderQuery, queries.RiderResponse]
	GetRiderNotifications QueryHandler[queries.GetRiderNotificationsQuery, []queries.NotificationResponse]
}

// Server translates HTTP requests into application commands and queries.
type Server struct {
	h     Handlers
	newID func() kernel.UUID
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(handlers Handlers) *Server {
	return &Server{h: handlers, newID: kernel.NewUUID}
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req NewOrderRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return respondBadRequest(ctx, err.Error())
	}

	customerID, err := kernel.UUIDFromString(req.CustomerID)
	if err != nil {
		return respondError(ctx, err)
	}
	restaurantID, err := kernel.UUIDFromString(req.RestaurantID)
	if err != nil {
		return respondError(ctx, err)
	}

	orderID := s.newID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID,
		customerID,
		restaurantID,
		req.RestaurantName,
		req.Items,
		req.Total,
		req.DeliveryAddress,
	)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.h.CreateOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return respond(ctx, http.StatusCreated, CreatedResponse{ID: orderID.String()})
}

// GetOrder handles GET /api/v1/orders/{orderId}. Riders see only orders
// assigned to them; any other order reads as not found.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return respondBadRequest(ctx, err.Error())
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	o, err := s.h.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	if !canReadOrder(ctx, o) {
		return respondError(ctx, errs.NewObjectNotFoundError("order", orderID))
	}

	return respond(ctx, http.StatusOK, toOrderResponse(o))
}

// AdvanceOrder handles POST /api/v1/orders/{orderId}/advance for the rider in the token.
func (s *Server) AdvanceOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return respondBadRequest(ctx, err.Error())
	}

	var req AdvanceOrderRequest
	if err = bindAndValidate(ctx, &req); err != nil {
		return respondBadRequest(ctx, err.Error())
	}

	action, err := order.ParseAction(req.Action)
	if err != nil {
		return respondError(ctx, err)
	}

	riderID, err := riderFromToken(ctx)
	if err != nil {
		return respondFailure(ctx, http.StatusUnauthorized, codeUnauthorized, "Token carries no rider id")
	}

	cmd, err := commands.NewAdvanceDeliveryCommand(riderID, orderID, action)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.h.AdvanceDelivery.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return s.renderOrder(ctx, orderID)
}

// CancelOrder handles POST /api/v1/orders/{orderId}/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return respondBadRequest(ctx, err.Error())
	}

	var req CancelOrderRequest
	if err = bindAndValidate(ctx, &req); err != nil {
		return respondBadRequest(ctx, err.Error())
	}

	status, err := order.ParseStatus(req.Status)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, status)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.h.CancelOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return s.renderOrder(ctx, orderID)
}

// CreateRider handles POST /api/v1/riders. The rider starts in pending approval.
func (s *Server) CreateRider(ctx echo.Context) error {
	var req NewRiderRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return respondBadRequest(ctx, err.Error())
	}

	userID, err := kernel.UUIDFromString(req.UserID)
	if err != nil {
		return respondError(ctx, err)
	}

	riderID := s.newID()
	cmd, err := commands.NewCreateRiderCommand(riderID, userID, req.Name)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.h.CreateRider.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return respond(ctx, http.StatusCreated, CreatedResponse{ID: riderID.String()})
}

// GetRider handles GET /api/v1/riders/{riderId}.
func (s *Server) GetRider(ctx echo.Context) error {
	riderID, err := pathUUID(ctx, "riderId")
	if err != nil {
		return respondBadRequest(ctx, err.Error())
	}
	return s.renderRider(ctx, riderID)
}

// ApproveRider handles POST /api/v1/riders/{riderId}/approve.
func (s *Server) ApproveRider(ctx echo.Context) error {
	riderID, err := pathUUID(ctx, "riderId")
	if err != nil {
		return respondBadRequest(ctx, err.Error())
	}

	cmd, err := commands.NewApproveRiderCommand(riderID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.h.ApproveRider.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return s.renderRider(ctx, riderID)
}

// SetRiderOnline handles PUT /api/v1/riders/{riderId}/online.
func (s *Server) SetRiderOnline(ctx echo.Context) error {
	riderID, err := pathUUID(ctx, "riderId")
	if err != nil {
		return respondBadRequest(ctx, err.Error())
	}

	var req SetOnlineRequest
	if err = bindAndValidate(ctx, &req); err != nil {
		return respondBadRequest(ctx, err.Error())
	}

	cmd, err := commands.NewSetRiderOnlineCommand(riderID, *req.Online)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.h.SetRiderOnline.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return s.renderRider(ctx, riderID)
}

// ListRiderNotifications handles GET /api/v1/riders/{riderId}/notifications.
func (s *Server) ListRiderNotifications(ctx echo.Context) error {
	riderID, err := pathUUID(ctx, "riderId")
	if err != nil {
		return respondBadRequest(ctx, err.Error())
	}

	query, err := queries.NewGetRiderNotificationsQuery(riderID)
	if err != nil {
		return respondError(ctx, err)
	}

	feed, err := s.h.GetRiderNotifications.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return respond(ctx, http.StatusOK, toNotificationResponses(feed))
}

// AcceptNotification handles POST /api/v1/riders/{riderId}/notifications/{notificationId}/accept.
// The response is the rider with its new current order.
func (s *Server) AcceptNotification(ctx echo.Context) error {
	riderID, notificationID, err := notificationPath(ctx)
	if err != nil {
		return respondBadRequest(ctx, err.Error())
	}

	cmd, err := commands.NewAcceptNotificationCommand(riderID, notificationID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.h.AcceptNotification.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return s.renderRider(ctx, riderID)
}

// DeclineNotification handles POST /api/v1/riders/{riderId}/notifications/{notificationId}/decline.
func (s *Server) DeclineNotification(ctx echo.Context) error {
	riderID, notificationID, err := notificationPath(ctx)
	if err != nil {
		return respondBadRequest(ctx, err.Error())
	}

	cmd, err := commands.NewDeclineNotificationCommand(riderID, notificationID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.h.DeclineNotification.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) renderOrder(ctx echo.Context, orderID kernel.UUID) error {
	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	o, err := s.h.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return respond(ctx, http.StatusOK, toOrderResponse(o))
}

func canReadOrder(ctx echo.Context, o queries.OrderResponse) bool {
	claims, ok := claimsFrom(ctx)
	if !ok {
		return false
	}
	if claims.Role == RoleAdmin {
		return true
	}

	riderID, err := riderFromToken(ctx)
	if err != nil || claims.Role != RoleRider {
		return false
	}
	return o.RiderID != nil && o.RiderID.IsEqual(riderID)
}

func (s *Server) renderRider(ctx echo.Context, riderID kernel.UUID) error {
	query, err := queries.NewGetRiderQuery(riderID)
	if err != nil {
		return respondError(ctx, err)
	}

	r, err := s.h.GetRider.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return respond(ctx, http.StatusOK, toRiderResponse(r))
}

func notificationPath(ctx echo.Context) (kernel.UUID, kernel.UUID, error) {
	riderID, err := pathUUID(ctx, "riderId")
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}
	notificationID, err := pathUUID(ctx, "notificationId")
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}
	return riderID, notificationID, nil
}
