package notification

import (
	"time"

	"flowlog/internal/core/domain/model/kernel"
	"flowlog/internal/pkg/errs"
)

// ErrSnapshotIsNotConstructed is returned when a Snapshot was not created
// through NewSnapshot.
var ErrSnapshotIsNotConstructed = errs.NewValueIsRequiredError("Snapshot must be created via NewSnapshot")

// Snapshot is the immutable, self-contained payload for one notification,
// frozen at the instant its triggering transition committed. Everything the
// worker needs to deliver the message is captured here so that later
// mutations of the order can never leak into the rendered text.
//
// Snapshots are built exclusively by services.SnapshotBuilder from data
// already loaded inside the committed transaction; they are never re-read
// from the database.
type Snapshot struct {
	kind            EventKind
	tenantID        kernel.UUID
	orderID         kernel.UUID
	orderCode       string
	recipientName   string
	recipientPhone  kernel.Phone
	renderedMessage string
	payloadHash     string
	createdAt       time.Time

	isConstructed bool
}

// NewSnapshot assembles a Snapshot after validating its required parts.
// The payload hash is computed by the builder over the rendered content and
// is used by the dispatch log to detect duplicates.
func NewSnapshot(
	kind EventKind,
	tenantID kernel.UUID,
	orderID kernel.UUID,
	orderCode string,
	recipientName string,
	recipientPhone kernel.Phone,
	renderedMessage string,
	payloadHash string,
	createdAt time.Time,
) (Snapshot, error) {
	if err := kind.Validate(); err != nil {
		return Snapshot{}, err
	}
	if err := tenantID.Validate(); err != nil {
		return Snapshot{}, err
	}
	if err := orderID.Validate(); err != nil {
		return Snapshot{}, err
	}
	if orderCode == "" {
		return Snapshot{}, errs.NewValueIsRequiredError("order code")
	}
	if err := recipientPhone.Validate(); err != nil {
		return Snapshot{}, err
	}
	if renderedMessage == "" {
		return Snapshot{}, errs.NewValueIsRequiredError("rendered message")
	}
	if payloadHash == "" {
		return Snapshot{}, errs.NewValueIsRequiredError("payload hash")
	}

	return Snapshot{
		kind:            kind,
		tenantID:        tenantID,
		orderID:         orderID,
		orderCode:       orderCode,
		recipientName:   recipientName,
		recipientPhone:  recipientPhone,
		renderedMessage: renderedMessage,
		payloadHash:     payloadHash,
		createdAt:       createdAt,
		isConstructed:   true,
	}, nil
}

// Validate ensures the Snapshot was created through NewSnapshot.
func (s Snapshot) Validate() error {
	if !s.isConstructed {
		return ErrSnapshotIsNotConstructed
	}
	return nil
}

// Kind returns the event kind this snapshot notifies about.
func (s Snapshot) Kind() EventKind { return s.kind }

// TenantID returns the owning tenant.
func (s Snapshot) TenantID() kernel.UUID { return s.tenantID }

// OrderID returns the order the event belongs to.
func (s Snapshot) OrderID() kernel.UUID { return s.orderID }

// OrderCode returns the human-readable order code.
func (s Snapshot) OrderCode() string { return s.orderCode }

// RecipientName returns the customer display name at freeze time.
func (s Snapshot) RecipientName() string { return s.recipientName }

// RecipientPhone returns the normalized recipient phone at freeze time.
func (s Snapshot) RecipientPhone() kernel.Phone { return s.recipientPhone }

// RenderedMessage returns the fully substituted message text.
func (s Snapshot) RenderedMessage() string { return s.renderedMessage }

// PayloadHash returns the content hash used for duplicate detection.
func (s Snapshot) PayloadHash() string { return s.payloadHash }

// CreatedAt returns the freeze instant.
func (s Snapshot) CreatedAt() time.Time { return s.createdAt }
