package http

import (
	"net/http"
	"strconv"
	"time"

	"flowlog/internal/core/application/usecases/queries"
	"flowlog/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// OrderResponse is the read model of one order, histories included.
type OrderResponse struct {
	ID              string                 `json:"id"`
	Code            string                 `json:"code"`
	Status          string                 `json:"status"`
	PaymentStatus   string                 `json:"payment_status"`
	DeliveryType    string                 `json:"delivery_type"`
	DeliveryStatus  string                 `json:"delivery_status"`
	TotalValue      int64                  `json:"total_value"`
	CustomerName    string                 `json:"customer_name"`
	CustomerPhone   string                 `json:"customer_phone"`
	DeliveryAddress string                 `json:"delivery_address,omitempty"`
	TrackingCode    string                 `json:"tracking_code,omitempty"`
	PickupCode      string                 `json:"pickup_code,omitempty"`
	Attempts        int                    `json:"delivery_attempts"`
	CancelReason    string                 `json:"cancel_reason,omitempty"`
	ReturnReason    string                 `json:"return_reason,omitempty"`
	Notes           string                 `json:"notes,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
	ExpiresAt       *time.Time             `json:"expires_at,omitempty"`
	History         []OrderHistoryResponse `json:"history"`
}

// OrderHistoryResponse is one row of the order's audit trail.
type OrderHistoryResponse struct {
	Kind               string    `json:"kind"`
	Note               string    `json:"note,omitempty"`
	OrderStatusFrom    string    `json:"order_status_from"`
	OrderStatusTo      string    `json:"order_status_to"`
	PaymentStatusFrom  string    `json:"payment_status_from"`
	PaymentStatusTo    string    `json:"payment_status_to"`
	DeliveryStatusFrom string    `json:"delivery_status_from"`
	DeliveryStatusTo   string    `json:"delivery_status_to"`
	CreatedAt          time.Time `json:"created_at"`
}

// HandleGetOrder handles GET /api/v1/tenants/:tenantID/orders/:orderID.
func (s *Server) HandleGetOrder(ctx echo.Context) error {
	tenantID, err := tenantIDParam(ctx)
	if err != nil {
		return badRequest(ctx, "invalid tenant id")
	}
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	query, err := queries.NewGetOrderQueryByID(tenantID, orderID)
	if err != nil {
		return fail(ctx, err)
	}

	response, err := s.h.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toOrderResponse(response))
}

// HandleGetOrderByCode handles GET /api/v1/tenants/:tenantID/orders/code/:code.
func (s *Server) HandleGetOrderByCode(ctx echo.Context) error {
	tenantID, err := tenantIDParam(ctx)
	if err != nil {
		return badRequest(ctx, "invalid tenant id")
	}

	query, err := queries.NewGetOrderQueryByCode(tenantID, ctx.Param("code"))
	if err != nil {
		return fail(ctx, err)
	}

	response, err := s.h.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toOrderResponse(response))
}

// OrderListItemResponse is one row of the order listing.
type OrderListItemResponse struct {
	ID             string    `json:"id"`
	Code           string    `json:"code"`
	Status         string    `json:"status"`
	PaymentStatus  string    `json:"payment_status"`
	DeliveryType   string    `json:"delivery_type"`
	DeliveryStatus string    `json:"delivery_status"`
	TotalValue     int64     `json:"total_value"`
	CustomerName   string    `json:"customer_name"`
	CreatedAt      time.Time `json:"created_at"`
}

// HandleListOrders handles GET /api/v1/tenants/:tenantID/orders with
// optional ?status= and ?limit= parameters.
func (s *Server) HandleListOrders(ctx echo.Context) error {
	tenantID, err := tenantIDParam(ctx)
	if err != nil {
		return badRequest(ctx, "invalid tenant id")
	}

	var status *order.OrderStatus
	if raw := ctx.QueryParam("status"); raw != "" {
		parsed, parseErr := parseOrderStatus(raw)
		if parseErr != nil {
			return fail(ctx, parseErr)
		}
		status = &parsed
	}

	limit, err := limitParam(ctx)
	if err != nil {
		return badRequest(ctx, "invalid limit")
	}

	query, err := queries.NewListOrdersQuery(tenantID, status, limit)
	if err != nil {
		return fail(ctx, err)
	}

	rows, err := s.h.ListOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}

	response := make([]OrderListItemResponse, len(rows))
	for i, row := range rows {
		response[i] = OrderListItemResponse{
			ID:             row.ID.String(),
			Code:           row.Code,
			Status:         row.Status.String(),
			PaymentStatus:  row.PaymentStatus.String(),
			DeliveryType:   row.DeliveryType.String(),
			DeliveryStatus: row.DeliveryStatus.String(),
			TotalValue:     row.TotalValue.Centavos(),
			CustomerName:   row.CustomerName,
			CreatedAt:      row.CreatedAt,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

// FailedNotificationResponse is one permanently failed dispatch job.
type FailedNotificationResponse struct {
	JobID           string    `json:"job_id"`
	OrderID         string    `json:"order_id"`
	OrderCode       string    `json:"order_code"`
	Kind            string    `json:"kind"`
	RecipientMasked string    `json:"recipient"`
	Attempts        int       `json:"attempts"`
	LastError       string    `json:"last_error"`
	CreatedAt       time.Time `json:"created_at"`
}

// HandleListFailedNotifications handles
// GET /api/v1/tenants/:tenantID/notifications/failed with optional ?limit=.
func (s *Server) HandleListFailedNotifications(ctx echo.Context) error {
	tenantID, err := tenantIDParam(ctx)
	if err != nil {
		return badRequest(ctx, "invalid tenant id")
	}

	limit, err := limitParam(ctx)
	if err != nil {
		return badRequest(ctx, "invalid limit")
	}

	query, err := queries.NewListFailedNotificationsQuery(tenantID, limit)
	if err != nil {
		return fail(ctx, err)
	}

	rows, err := s.h.ListFailedNotifications.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}

	response := make([]FailedNotificationResponse, len(rows))
	for i, row := range rows {
		response[i] = FailedNotificationResponse{
			JobID:           row.JobID.String(),
			OrderID:         row.OrderID.String(),
			OrderCode:       row.OrderCode,
			Kind:            string(row.Kind),
			RecipientMasked: row.RecipientMasked,
			Attempts:        row.Attempts,
			LastError:       row.LastError,
			CreatedAt:       row.CreatedAt,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

// limitParam parses the optional ?limit= parameter; 0 lets the query apply
// its default page size.
func limitParam(ctx echo.Context) (int, error) {
	raw := ctx.QueryParam("limit")
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

func toOrderResponse(r queries.GetOrderQueryResponse) OrderResponse {
	history := make([]OrderHistoryResponse, len(r.History))
	for i, entry := range r.History {
		history[i] = OrderHistoryResponse{
			Kind:               string(entry.Kind),
			Note:               entry.Note,
			OrderStatusFrom:    entry.OrderStatusFrom.String(),
			OrderStatusTo:      entry.OrderStatusTo.String(),
			PaymentStatusFrom:  entry.PaymentStatusFrom.String(),
			PaymentStatusTo:    entry.PaymentStatusTo.String(),
			DeliveryStatusFrom: entry.DeliveryStatusFrom.String(),
			DeliveryStatusTo:   entry.DeliveryStatusTo.String(),
			CreatedAt:          entry.CreatedAt,
		}
	}

	return OrderResponse{
		ID:              r.ID.String(),
		Code:            r.Code,
		Status:          r.Status.String(),
		PaymentStatus:   r.PaymentStatus.String(),
		DeliveryType:    r.DeliveryType.String(),
		DeliveryStatus:  r.DeliveryStatus.String(),
		TotalValue:      r.TotalValue.Centavos(),
		CustomerName:    r.CustomerName,
		CustomerPhone:   r.CustomerPhone,
		DeliveryAddress: r.DeliveryAddress,
		TrackingCode:    r.TrackingCode,
		PickupCode:      r.PickupCode,
		Attempts:        r.Attempts,
		CancelReason:    r.CancelReason,
		ReturnReason:    r.ReturnReason,
		Notes:           r.Notes,
		CreatedAt:       r.CreatedAt,
		ExpiresAt:       r.ExpiresAt,
		History:         history,
	}
}
