package commands

import (
	"errors"
	"strings"

	"flowlog/internal/pkg/errs"
	"flowlog/internal/pkg/guard"
)

var (
	ErrProcessPaymentWebhookCommandIsNotConstructed = errors.New(
		"ProcessPaymentWebhookCommand must be created via NewProcessPaymentWebhookCommand constructor",
	)
	// ErrEventIDIsRequired rejects webhooks without the gateway event id;
	// without it replays cannot be detected.
	ErrEventIDIsRequired = errs.NewValueIsRequiredError("eventID")
	// ErrEventTypeIsRequired rejects webhooks without an event type.
	ErrEventTypeIsRequired = errs.NewValueIsRequiredError("eventType")
	// ErrPayloadIsRequired rejects webhooks with an empty body; the
	// signature is computed over the raw bytes.
	ErrPayloadIsRequired = errs.NewValueIsRequiredError("payload")
)

// ProcessPaymentWebhookCommand represents one payment gateway webhook
// delivery addressed to a tenant by slug. The payload is kept raw: the
// HMAC signature covers the exact bytes the gateway sent.
type ProcessPaymentWebhookCommand struct { //nolint:recvcheck //using for validation
	tenantSlug string
	eventID    string
	eventType  string
	payload    []byte
	signature  string

	guard guard.ConstructorGuard
}

// NewProcessPaymentWebhookCommand creates a command to reconcile a gateway webhook.
func NewProcessPaymentWebhookCommand(
	tenantSlug string,
	eventID string,
	eventType string,
	payload []byte,
	signature string,
) (ProcessPaymentWebhookCommand, error) {
	cmd := ProcessPaymentWebhookCommand{
		guard: guard.NewConstructorGuard(),
	}

	tenantSlug = strings.TrimSpace(strings.ToLower(tenantSlug))
	if tenantSlug == "" {
		return ProcessPaymentWebhookCommand{}, errs.NewValueIsRequiredError("tenantSlug")
	}
	if strings.TrimSpace(eventID) == "" {
		return ProcessPaymentWebhookCommand{}, ErrEventIDIsRequired
	}
	if strings.TrimSpace(eventType) == "" {
		return ProcessPaymentWebhookCommand{}, ErrEventTypeIsRequired
	}
	if len(payload) == 0 {
		return ProcessPaymentWebhookCommand{}, ErrPayloadIsRequired
	}

	cmd.tenantSlug = tenantSlug
	cmd.eventID = strings.TrimSpace(eventID)
	cmd.eventType = strings.TrimSpace(eventType)
	cmd.payload = payload
	cmd.signature = strings.TrimSpace(signature)

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ProcessPaymentWebhookCommand) Validate() error {
	return c.guard.Validate(ErrProcessPaymentWebhookCommandIsNotConstructed)
}

// TenantSlug returns the tenant addressed by the webhook URL.
func (c ProcessPaymentWebhookCommand) TenantSlug() string { return c.tenantSlug }

// EventID returns the gateway's unique event id.
func (c ProcessPaymentWebhookCommand) EventID() string { return c.eventID }

// EventType returns the gateway event type ("charge.paid", ...).
func (c ProcessPaymentWebhookCommand) EventType() string { return c.eventType }

// Payload returns the raw webhook body.
func (c ProcessPaymentWebhookCommand) Payload() []byte { return c.payload }

// Signature returns the value of the gateway's signature header.
func (c ProcessPaymentWebhookCommand) Signature() string { return c.signature }
