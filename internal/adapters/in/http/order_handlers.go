package http

import (
	"net/http"
	"strings"

	"flowlog/internal/core/application/usecases/commands"
	"flowlog/internal/core/domain/model/kernel"
	"flowlog/internal/core/domain/model/notification"
	"flowlog/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// CreateOrderRequest is the body of POST /api/v1/tenants/:tenantID/orders.
// TotalValue is in centavos. OrderID is optional: integrations that need
// idempotent creation supply their own id, everyone else gets one generated.
type CreateOrderRequest struct {
	OrderID         string `json:"order_id,omitempty"`
	SellerID        string `json:"seller_id,omitempty"`
	CustomerName    string `json:"customer_name"`
	CustomerPhone   string `json:"customer_phone"`
	TotalValue      int64  `json:"total_value"`
	DeliveryType    string `json:"delivery_type"`
	DeliveryAddress string `json:"delivery_address,omitempty"`
	Notes           string `json:"notes,omitempty"`
}

// CreateOrderResponse returns the id of the created order.
type CreateOrderResponse struct {
	ID string `json:"id"`
}

// HandleCreateOrder handles POST /api/v1/tenants/:tenantID/orders.
func (s *Server) HandleCreateOrder(ctx echo.Context) error {
	tenantID, err := tenantIDParam(ctx)
	if err != nil {
		return badRequest(ctx, "invalid tenant id")
	}

	var req CreateOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	orderID := kernel.NewUUID()
	if strings.TrimSpace(req.OrderID) != "" {
		if orderID, err = kernel.UUIDFromString(req.OrderID); err != nil {
			return badRequest(ctx, "invalid order id")
		}
	}

	var sellerID *kernel.UUID
	if strings.TrimSpace(req.SellerID) != "" {
		id, idErr := kernel.UUIDFromString(req.SellerID)
		if idErr != nil {
			return badRequest(ctx, "invalid seller id")
		}
		sellerID = &id
	}

	phone, err := kernel.NewPhone(req.CustomerPhone)
	if err != nil {
		return fail(ctx, err)
	}
	total, err := kernel.NewMoney(req.TotalValue)
	if err != nil {
		return fail(ctx, err)
	}
	deliveryType, err := parseDeliveryType(req.DeliveryType)
	if err != nil {
		return fail(ctx, err)
	}

	cmd, err := commands.NewCreateOrderCommand(
		orderID, tenantID, sellerID,
		req.CustomerName, phone, total,
		deliveryType, req.DeliveryAddress, req.Notes,
	)
	if err != nil {
		return fail(ctx, err)
	}

	if err = s.h.CreateOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateOrderResponse{ID: orderID.String()})
}

// HandleConfirmOrder handles POST .../orders/:orderID/confirm.
func (s *Server) HandleConfirmOrder(ctx echo.Context) error {
	tenantID, orderID, actorID, err := lifecycleScope(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewConfirmOrderCommand(tenantID, orderID, actorID)
	if err != nil {
		return fail(ctx, err)
	}
	if err = s.h.ConfirmOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// ShipOrderRequest is the body of POST .../orders/:orderID/ship.
type ShipOrderRequest struct {
	TrackingCode string `json:"tracking_code"`
}

// HandleShipOrder handles POST .../orders/:orderID/ship.
func (s *Server) HandleShipOrder(ctx echo.Context) error {
	tenantID, orderID, actorID, err := lifecycleScope(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var req ShipOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewShipOrderCommand(tenantID, orderID, actorID, req.TrackingCode)
	if err != nil {
		return fail(ctx, err)
	}
	if err = s.h.ShipOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// HandleMarkOutForDelivery handles POST .../orders/:orderID/out-for-delivery.
func (s *Server) HandleMarkOutForDelivery(ctx echo.Context) error {
	tenantID, orderID, actorID, err := lifecycleScope(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewMarkOutForDeliveryCommand(tenantID, orderID, actorID)
	if err != nil {
		return fail(ctx, err)
	}
	if err = s.h.MarkOutForDelivery.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// HandleMarkReadyForPickup handles POST .../orders/:orderID/ready-for-pickup.
func (s *Server) HandleMarkReadyForPickup(ctx echo.Context) error {
	tenantID, orderID, actorID, err := lifecycleScope(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewMarkReadyForPickupCommand(tenantID, orderID, actorID)
	if err != nil {
		return fail(ctx, err)
	}
	if err = s.h.MarkReadyForPickup.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// HandleMarkPickedUp handles POST .../orders/:orderID/picked-up.
func (s *Server) HandleMarkPickedUp(ctx echo.Context) error {
	tenantID, orderID, actorID, err := lifecycleScope(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewMarkPickedUpCommand(tenantID, orderID, actorID)
	if err != nil {
		return fail(ctx, err)
	}
	if err = s.h.MarkPickedUp.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// HandleMarkDelivered handles POST .../orders/:orderID/delivered.
func (s *Server) HandleMarkDelivered(ctx echo.Context) error {
	tenantID, orderID, actorID, err := lifecycleScope(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewMarkDeliveredCommand(tenantID, orderID, actorID)
	if err != nil {
		return fail(ctx, err)
	}
	if err = s.h.MarkDelivered.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// MarkFailedAttemptRequest is the body of POST .../orders/:orderID/failed-attempt.
type MarkFailedAttemptRequest struct {
	Reason string `json:"reason"`
}

// HandleMarkFailedAttempt handles POST .../orders/:orderID/failed-attempt.
func (s *Server) HandleMarkFailedAttempt(ctx echo.Context) error {
	tenantID, orderID, actorID, err := lifecycleScope(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var req MarkFailedAttemptRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewMarkFailedAttemptCommand(tenantID, orderID, actorID, req.Reason)
	if err != nil {
		return fail(ctx, err)
	}
	if err = s.h.MarkFailedAttempt.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// HandleMarkAsPaid handles POST .../orders/:orderID/paid, the manual
// mark-as-paid path. Webhook-driven payments go through the webhook route.
func (s *Server) HandleMarkAsPaid(ctx echo.Context) error {
	tenantID, orderID, actorID, err := lifecycleScope(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewMarkAsPaidCommand(tenantID, orderID, actorID)
	if err != nil {
		return fail(ctx, err)
	}
	if err = s.h.MarkAsPaid.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrderRequest is the body of POST .../orders/:orderID/cancel.
type CancelOrderRequest struct {
	Reason   string `json:"reason"`
	Refunded bool   `json:"refunded,omitempty"`
}

// HandleCancelOrder handles POST .../orders/:orderID/cancel.
func (s *Server) HandleCancelOrder(ctx echo.Context) error {
	tenantID, orderID, actorID, err := lifecycleScope(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var req CancelOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewCancelOrderCommand(tenantID, orderID, actorID, req.Reason, req.Refunded)
	if err != nil {
		return fail(ctx, err)
	}
	if err = s.h.CancelOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// ReturnOrderRequest is the body of POST .../orders/:orderID/return.
type ReturnOrderRequest struct {
	Reason string `json:"reason"`
	Refund bool   `json:"refund,omitempty"`
}

// HandleReturnOrder handles POST .../orders/:orderID/return.
func (s *Server) HandleReturnOrder(ctx echo.Context) error {
	tenantID, orderID, actorID, err := lifecycleScope(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var req ReturnOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewReturnOrderCommand(tenantID, orderID, actorID, req.Reason, req.Refund)
	if err != nil {
		return fail(ctx, err)
	}
	if err = s.h.ReturnOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// ChangeDeliveryTypeRequest is the body of POST .../orders/:orderID/delivery-type.
type ChangeDeliveryTypeRequest struct {
	DeliveryType    string `json:"delivery_type"`
	DeliveryAddress string `json:"delivery_address,omitempty"`
}

// HandleChangeDeliveryType handles POST .../orders/:orderID/delivery-type.
func (s *Server) HandleChangeDeliveryType(ctx echo.Context) error {
	tenantID, orderID, actorID, err := lifecycleScope(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var req ChangeDeliveryTypeRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	newType, err := parseDeliveryType(req.DeliveryType)
	if err != nil {
		return fail(ctx, err)
	}

	cmd, err := commands.NewChangeDeliveryTypeCommand(tenantID, orderID, actorID, newType, req.DeliveryAddress)
	if err != nil {
		return fail(ctx, err)
	}
	if err = s.h.ChangeDeliveryType.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// ResendNotificationRequest is the body of POST .../orders/:orderID/notifications/resend.
// Kind is one of the event kind wire names ("order_shipped", ...).
type ResendNotificationRequest struct {
	Kind string `json:"kind"`
}

// HandleResendNotification handles POST .../orders/:orderID/notifications/resend.
func (s *Server) HandleResendNotification(ctx echo.Context) error {
	tenantID, orderID, actorID, err := lifecycleScope(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var req ResendNotificationRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewResendNotificationCommand(
		tenantID, orderID, actorID,
		notification.EventKind(strings.TrimSpace(req.Kind)),
	)
	if err != nil {
		return fail(ctx, err)
	}
	if err = s.h.ResendNotification.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}
	return ctx.NoContent(http.StatusAccepted)
}

// lifecycleScope parses the shared addressing of every single-order route.
func lifecycleScope(ctx echo.Context) (tenantID, orderID kernel.UUID, actorID *kernel.UUID, err error) {
	if tenantID, err = tenantIDParam(ctx); err != nil {
		return tenantID, orderID, nil, errs.NewValueIsInvalidErrorWithCause("tenantID", err)
	}
	if orderID, err = orderIDParam(ctx); err != nil {
		return tenantID, orderID, nil, errs.NewValueIsInvalidErrorWithCause("orderID", err)
	}
	if actorID, err = actorIDParam(ctx); err != nil {
		return tenantID, orderID, nil, errs.NewValueIsInvalidErrorWithCause("actorID", err)
	}
	return tenantID, orderID, actorID, nil
}
