package http

import (
	"encoding/json"
	"io"
	"net/http"

	"flowlog/internal/core/application/usecases/commands"

	"github.com/labstack/echo/v4"
)

// signatureHeader carries the gateway's HMAC-SHA256 of the raw body, hex
// encoded, keyed by the tenant's webhook secret.
const signatureHeader = "X-Webhook-Signature"

// webhookEnvelope is the part of the gateway payload the HTTP layer reads.
// The raw bytes travel to the command untouched: the signature is computed
// over them, and the reconciler parses the rest itself.
type webhookEnvelope struct {
	EventID string `json:"event_id"`
	Type    string `json:"type"`
}

// WebhookResponse acknowledges an accepted webhook delivery.
type WebhookResponse struct {
	Status string `json:"status"`
}

// HandlePaymentWebhook handles POST /api/v1/webhooks/payments/:tenantSlug.
// Replays and unknown event types are acknowledged with 200 so the gateway
// stops retrying; a bad signature gets 401 and causes no side effects.
func (s *Server) HandlePaymentWebhook(ctx echo.Context) error {
	body, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		return badRequest(ctx, "unreadable request body")
	}

	var env webhookEnvelope
	if err = json.Unmarshal(body, &env); err != nil {
		return badRequest(ctx, "malformed webhook payload")
	}

	cmd, err := commands.NewProcessPaymentWebhookCommand(
		ctx.Param("tenantSlug"),
		env.EventID,
		env.Type,
		body,
		ctx.Request().Header.Get(signatureHeader),
	)
	if err != nil {
		return fail(ctx, err)
	}

	if err = s.h.PaymentWebhook.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, WebhookResponse{Status: "accepted"})
}
