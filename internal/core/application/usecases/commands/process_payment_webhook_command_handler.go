package commands

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"flowlog/internal/core/domain/model/kernel"
	"flowlog/internal/core/domain/model/order"
	"flowlog/internal/core/domain/services"
	"flowlog/internal/core/ports"
	"flowlog/internal/pkg/errs"

	"gorm.io/gorm"
)

// webhookBody is the subset of the gateway payload the reconciler reads.
// The tenant configures the gateway to echo the order code in the charge
// metadata; everything else in the payload is opaque.
type webhookBody struct {
	Data struct {
		OrderCode string `json:"order_code"`
	} `json:"data"`
}

// ProcessPaymentWebhookCommandHandler reconciles payment gateway webhooks
// against order state. The pipeline is: verify the HMAC signature before
// touching anything, deduplicate by gateway event id, map the event type to
// a payment operation and run it through the same locked path as manual
// commands. The processed-event marker commits in the same transaction as
// the order mutation, so a replay after a crash re-runs the event instead
// of losing it.
type ProcessPaymentWebhookCommandHandler struct {
	uowFactory WebhookUoWFactory
	queue      ports.DispatchQueue
	builder    services.SnapshotBuilder
	logger     *slog.Logger
	now        func() time.Time
}

// NewProcessPaymentWebhookCommandHandler creates a handler for payment webhooks.
func NewProcessPaymentWebhookCommandHandler(
	uowFactory WebhookUoWFactory,
	queue ports.DispatchQueue,
	logger *slog.Logger,
) ProcessPaymentWebhookCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return ProcessPaymentWebhookCommandHandler{
		uowFactory: uowFactory,
		queue:      queue,
		builder:    services.NewSnapshotBuilder(),
		logger:     logger.With("component", "payment_webhook"),
		now:        time.Now,
	}
}

// Handle processes one webhook delivery. It returns nil for replays and for
// unknown event types (the gateway must not retry those), an
// InvalidSignature error before any side effect on a bad signature, and the
// domain's transition errors when the event conflicts with order state.
func (h *ProcessPaymentWebhookCommandHandler) Handle(ctx context.Context, cmd ProcessPaymentWebhookCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := h.now()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	tn, err := uow.TenantRepository().GetBySlug(ctx, cmd.TenantSlug())
	if err != nil {
		return err
	}
	if err = tn.EnsureActive(); err != nil {
		return err
	}

	if err = verifySignature(tn.Settings().WebhookSecret, cmd.Payload(), cmd.Signature()); err != nil {
		return err
	}

	processed, err := uow.WebhookEventRepository().Exists(ctx, tn.ID(), cmd.EventID())
	if err != nil {
		return err
	}
	if processed {
		h.logger.Info("webhook replay ignored",
			"tenant", cmd.TenantSlug(), "event_id", cmd.EventID(), "event_type", cmd.EventType())
		return nil
	}

	apply, known := paymentOperation(cmd.EventType())
	if !known {
		h.logger.Info("unknown webhook event type accepted",
			"tenant", cmd.TenantSlug(), "event_id", cmd.EventID(), "event_type", cmd.EventType())
		if err = h.recordEvent(ctx, uow, tn.ID(), cmd, now); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return h.concedeToConcurrentDelivery(cmd)
			}
			return err
		}
		return uow.Commit(ctx)
	}

	var body webhookBody
	if err = json.Unmarshal(cmd.Payload(), &body); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("payload", err)
	}
	if body.Data.OrderCode == "" {
		return errs.NewValueIsInvalidError("payload: data.order_code")
	}

	orderRepo := uow.OrderRepository()
	found, err := orderRepo.GetByCode(ctx, tn.ID(), body.Data.OrderCode)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			// a gateway may deliver events for charges created outside
			// this system; accepting them stops the retry storm
			h.logger.Warn("webhook order not found",
				"tenant", cmd.TenantSlug(), "event_id", cmd.EventID(), "order_code", body.Data.OrderCode)
			return nil
		}
		return err
	}
	o, err := orderRepo.GetForUpdate(ctx, tn.ID(), found.ID())
	if err != nil {
		return err
	}

	transition, err := apply(o, completionPolicy(tn))
	if err != nil {
		return err
	}

	if err = h.recordEvent(ctx, uow, tn.ID(), cmd, now); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return h.concedeToConcurrentDelivery(cmd)
		}
		return err
	}

	if transition == nil {
		// effects already applied by an earlier event; keep only the
		// dedup marker
		return uow.Commit(ctx)
	}

	c, err := uow.CustomerRepository().Get(ctx, tn.ID(), o.CustomerID())
	if err != nil {
		return err
	}

	history, err := order.NewHistory(kernel.NewUUID(), o, nil, transition, now)
	if err != nil {
		return err
	}
	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}
	if err = uow.HistoryRepository().Add(ctx, history); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if h.queue != nil && transition.Kind != "" {
		if snapshot, buildErr := h.builder.Build(transition.Kind, o, c, tn, now); buildErr == nil {
			_ = h.queue.Enqueue(ctx, snapshot)
		}
	}

	return nil
}

// concedeToConcurrentDelivery acknowledges an event whose dedup marker was
// inserted by a concurrent delivery between the Exists pre-check and our
// insert. The deferred rollback discards this handler's mutation; the
// winner's transaction already applied it.
func (h *ProcessPaymentWebhookCommandHandler) concedeToConcurrentDelivery(cmd ProcessPaymentWebhookCommand) error {
	h.logger.Info("webhook replay ignored",
		"tenant", cmd.TenantSlug(), "event_id", cmd.EventID(), "event_type", cmd.EventType())
	return nil
}

func (h *ProcessPaymentWebhookCommandHandler) recordEvent(
	ctx context.Context,
	uow WebhookUoW,
	tenantID kernel.UUID,
	cmd ProcessPaymentWebhookCommand,
	now time.Time,
) error {
	return uow.WebhookEventRepository().Add(ctx, ports.WebhookEvent{
		ID:          kernel.NewUUID(),
		TenantID:    tenantID,
		EventID:     cmd.EventID(),
		EventType:   cmd.EventType(),
		ProcessedAt: now,
	})
}

// paymentOperation maps a gateway event type to the domain operation it
// drives. The second return value is false for event types the reconciler
// does not understand.
func paymentOperation(eventType string) (func(*order.Order, order.CompletionPolicy) (*order.Transition, error), bool) {
	switch eventType {
	case "charge.paid", "order.paid", "paymentlink.paid":
		return func(o *order.Order, policy order.CompletionPolicy) (*order.Transition, error) {
			return o.MarkPaid(policy)
		}, true
	case "charge.refunded":
		return func(o *order.Order, _ order.CompletionPolicy) (*order.Transition, error) {
			return o.RefundPayment()
		}, true
	case "charge.payment_failed":
		return func(o *order.Order, _ order.CompletionPolicy) (*order.Transition, error) {
			return o.MarkPaymentFailed()
		}, true
	default:
		return nil, false
	}
}

// verifySignature checks the hex HMAC-SHA256 of the raw payload. A tenant
// without a configured secret accepts no webhooks at all.
func verifySignature(secret string, payload []byte, signature string) error {
	if secret == "" {
		return errs.NewInvalidSignatureError("tenant has no webhook secret configured")
	}
	if signature == "" {
		return errs.NewInvalidSignatureError("signature header is missing")
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return errs.NewInvalidSignatureError("signature does not match payload")
	}
	return nil
}
