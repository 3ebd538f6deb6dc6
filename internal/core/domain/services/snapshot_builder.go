package services

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"flowlog/internal/core/domain/model/customer"
	"flowlog/internal/core/domain/model/notification"
	"flowlog/internal/core/domain/model/order"
	"flowlog/internal/core/domain/model/tenant"
)

// SnapshotBuilder is a domain service that freezes an order event into an
// immutable notification snapshot. The snapshot is built from aggregates the
// caller already holds in memory, straight after the transaction that applied
// the transition: whatever happens to the order afterwards, the message the
// customer receives describes the order as it was at event time.
//
// Key responsibilities:
//   - Rendering the tenant's message template for the event kind
//   - Substituting the placeholder vocabulary ({nome}, {codigo}, {valor}, ...)
//   - Hashing the rendered payload so replays and duplicates are detectable
//
// The builder is pure: no I/O, no clock reads (the caller passes now), and no
// mutation of its inputs.
type SnapshotBuilder struct{}

// NewSnapshotBuilder creates a new SnapshotBuilder instance.
func NewSnapshotBuilder() SnapshotBuilder {
	return SnapshotBuilder{}
}

// Build renders the notification snapshot for one event kind.
//
// Parameters:
//   - kind: Which lifecycle event to announce
//   - o: The order after the transition was applied (must be valid)
//   - c: The order's customer (must be valid, supplies name and phone)
//   - tn: The owning tenant (must be valid, supplies templates and store data)
//   - now: Event timestamp recorded on the snapshot
//
// Returns:
//   - notification.Snapshot: Immutable, ready to enqueue
//   - error: Validation error if any input is invalid
func (SnapshotBuilder) Build(
	kind notification.EventKind,
	o *order.Order,
	c *customer.Customer,
	tn *tenant.Tenant,
	now time.Time,
) (notification.Snapshot, error) {
	if err := kind.Validate(); err != nil {
		return notification.Snapshot{}, err
	}
	if err := o.Validate(); err != nil {
		return notification.Snapshot{}, err
	}
	if err := c.Validate(); err != nil {
		return notification.Snapshot{}, err
	}
	if err := tn.Validate(); err != nil {
		return notification.Snapshot{}, err
	}

	message := renderTemplate(tn.Settings().TemplateFor(kind), placeholders(o, c, tn))

	return notification.NewSnapshot(
		kind,
		tn.ID(),
		o.ID(),
		o.Code(),
		c.Name(),
		c.Phone(),
		message,
		payloadHash(kind, o, c, message),
		now,
	)
}

// placeholders assembles the full substitution vocabulary. Optional blocks
// ({rastreio_info}, {motivo_info}) collapse to empty strings when the order
// has nothing to say, so templates stay readable without conditionals.
func placeholders(o *order.Order, c *customer.Customer, tn *tenant.Tenant) map[string]string {
	address := tn.Address()
	if o.DeliveryAddress() != "" {
		address = o.DeliveryAddress()
	}
	if address == "" {
		address = "Consulte a loja"
	}

	trackingInfo := ""
	if o.TrackingCode() != "" {
		trackingInfo = fmt.Sprintf("Código de rastreio: *%s*\n\n", o.TrackingCode())
	}

	reason := o.CancelReason()
	if o.Status() == order.OrderStatusReturned {
		reason = o.ReturnReason()
	}
	reasonInfo := ""
	if reason != "" {
		reasonInfo = fmt.Sprintf("Motivo: %s\n\n", reason)
	}

	trackingLink := ""
	if base := tn.Settings().TrackingLinkBase; base != "" {
		trackingLink = strings.TrimRight(base, "/") + "/" + o.Code()
	}

	return map[string]string{
		"nome":          c.FirstName(),
		"codigo":        o.Code(),
		"valor":         o.TotalValue().Format(),
		"loja":          tn.Name(),
		"endereco":      address,
		"rastreio":      o.TrackingCode(),
		"rastreio_info": trackingInfo,
		"link_rastreio": trackingLink,
		"pickup_code":   o.PickupCode(),
		"motivo":        reason,
		"motivo_info":   reasonInfo,
		"tentativa":     fmt.Sprintf("%d", o.DeliveryAttempts()),
	}
}

// renderTemplate substitutes {key} markers. Unknown markers are left intact
// rather than erased; a tenant typo shows up verbatim in a test message
// instead of silently disappearing.
func renderTemplate(template string, values map[string]string) string {
	pairs := make([]string, 0, len(values)*2)
	for key, value := range values {
		pairs = append(pairs, "{"+key+"}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

func payloadHash(kind notification.EventKind, o *order.Order, c *customer.Customer, message string) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%s|%s|%s|%s", kind, o.TenantID(), o.ID(), c.Phone(), message)
	return hex.EncodeToString(h.Sum(nil))
}
