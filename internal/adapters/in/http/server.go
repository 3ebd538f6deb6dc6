package http

import (
	"errors"
	"net/http"
	"strings"

	"flowlog/internal/core/application/usecases/commands"
	"flowlog/internal/core/application/usecases/queries"
	"flowlog/internal/core/domain/model/kernel"
	"flowlog/internal/core/domain/model/order"
	"flowlog/internal/core/domain/model/tenant"
	"flowlog/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// actorHeader carries the acting user's id on lifecycle requests. Absent
// for gateway integrations; those commands record a nil actor.
const actorHeader = "X-Actor-ID"

// Handlers groups everything the HTTP server dispatches to. The server owns
// no business logic: it parses requests, calls one handler and maps the
// error taxonomy to status codes.
type Handlers struct {
	CreateOrder        commands.CreateOrderCommandHandler
	ConfirmOrder       commands.ConfirmOrderCommandHandler
	ShipOrder          commands.ShipOrderCommandHandler
	MarkOutForDelivery commands.MarkOutForDeliveryCommandHandler
	MarkReadyForPickup commands.MarkReadyForPickupCommandHandler
	MarkPickedUp       commands.MarkPickedUpCommandHandler
	MarkDelivered      commands.MarkDeliveredCommandHandler
	MarkFailedAttempt  commands.MarkFailedAttemptCommandHandler
	MarkAsPaid         commands.MarkAsPaidCommandHandler
	CancelOrder        commands.CancelOrderCommandHandler
	ReturnOrder        commands.ReturnOrderCommandHandler
	ChangeDeliveryType commands.ChangeDeliveryTypeCommandHandler
	ResendNotification commands.ResendNotificationCommandHandler
	PaymentWebhook     commands.ProcessPaymentWebhookCommandHandler

	GetOrder                queries.GetOrderQueryHandler
	ListOrders              queries.ListOrdersQueryHandler
	ListFailedNotifications queries.ListFailedNotificationsQueryHandler
}

// Server exposes the order lifecycle API, the payment webhook endpoint and
// the operator queries over HTTP.
type Server struct {
	h Handlers
}

// NewServer creates an HTTP server dispatching to the given handlers.
func NewServer(h Handlers) *Server {
	return &Server{h: h}
}

// RegisterRoutes mounts every route on the echo instance. Lifecycle and
// query routes are tenant-scoped by path; the webhook route addresses the
// tenant by slug because that is what gets configured at the gateway.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.POST("/webhooks/payments/:tenantSlug", s.HandlePaymentWebhook)
	api.GET("/tenants/:tenantID/notifications/failed", s.HandleListFailedNotifications)

	orders := api.Group("/tenants/:tenantID/orders")
	orders.POST("", s.HandleCreateOrder)
	orders.GET("", s.HandleListOrders)
	orders.GET("/:orderID", s.HandleGetOrder)
	orders.GET("/code/:code", s.HandleGetOrderByCode)
	orders.POST("/:orderID/confirm", s.HandleConfirmOrder)
	orders.POST("/:orderID/ship", s.HandleShipOrder)
	orders.POST("/:orderID/out-for-delivery", s.HandleMarkOutForDelivery)
	orders.POST("/:orderID/ready-for-pickup", s.HandleMarkReadyForPickup)
	orders.POST("/:orderID/picked-up", s.HandleMarkPickedUp)
	orders.POST("/:orderID/delivered", s.HandleMarkDelivered)
	orders.POST("/:orderID/failed-attempt", s.HandleMarkFailedAttempt)
	orders.POST("/:orderID/paid", s.HandleMarkAsPaid)
	orders.POST("/:orderID/cancel", s.HandleCancelOrder)
	orders.POST("/:orderID/return", s.HandleReturnOrder)
	orders.POST("/:orderID/delivery-type", s.HandleChangeDeliveryType)
	orders.POST("/:orderID/notifications/resend", s.HandleResendNotification)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// Error is the JSON body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// fail maps a command or query error onto the HTTP taxonomy and writes it.
func fail(ctx echo.Context, err error) error {
	status := statusFor(err)
	return ctx.JSON(status, Error{Code: status, Message: err.Error()})
}

// badRequest writes a 400 with the given message. Used where the request
// never reached a command constructor (unparseable ids, broken JSON).
func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: message})
}

// statusFor classifies errors with errors.Is against the lifecycle
// taxonomy. Busy maps to 503 so well-behaved clients retry; transition and
// delivery-type violations map to 409 because retrying them verbatim can
// never succeed.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrInvalidSignature):
		return http.StatusUnauthorized
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrInvalidTransition),
		errors.Is(err, errs.ErrInvalidDeliveryType),
		errors.Is(err, errs.ErrTenantMismatch),
		errors.Is(err, tenant.ErrTenantIsInactive):
		return http.StatusConflict
	case errors.Is(err, errs.ErrBusy):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func tenantIDParam(ctx echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param("tenantID"))
}

func orderIDParam(ctx echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param("orderID"))
}

// actorIDParam reads the optional acting-user header. Returns nil when the
// header is absent.
func actorIDParam(ctx echo.Context) (*kernel.UUID, error) {
	raw := strings.TrimSpace(ctx.Request().Header.Get(actorHeader))
	if raw == "" {
		return nil, nil //nolint:nilnil //absent header means system actor
	}
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// parseDeliveryType accepts the wire names of the delivery types,
// case-insensitively.
func parseDeliveryType(raw string) (order.DeliveryType, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "pickup":
		return order.DeliveryTypePickup, nil
	case "motoboy":
		return order.DeliveryTypeMotoboy, nil
	case "sedex":
		return order.DeliveryTypeSedex, nil
	case "pac":
		return order.DeliveryTypePac, nil
	default:
		return order.DeliveryTypeUnknown, errs.NewValueIsInvalidError("delivery_type")
	}
}

// parseOrderStatus accepts the wire names of the order statuses,
// case-insensitively.
func parseOrderStatus(raw string) (order.OrderStatus, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "pending":
		return order.OrderStatusPending, nil
	case "confirmed":
		return order.OrderStatusConfirmed, nil
	case "completed":
		return order.OrderStatusCompleted, nil
	case "cancelled":
		return order.OrderStatusCancelled, nil
	case "returned":
		return order.OrderStatusReturned, nil
	default:
		return order.OrderStatusUnknown, errs.NewValueIsInvalidError("status")
	}
}
