package notification

import (
	"time"

	"flowlog/internal/core/domain/model/kernel"
	"flowlog/internal/pkg/errs"
)

// LogStatus is the outcome of one delivery attempt.
type LogStatus int

const (
	// LogStatusUnknown represents an invalid or undefined status.
	LogStatusUnknown LogStatus = iota

	// LogStatusSent means the external channel accepted the message.
	LogStatusSent

	// LogStatusFailed means the attempt failed; the dispatch job may retry.
	LogStatusFailed

	// LogStatusBlocked means the tenant's toggles suppressed the message.
	// Blocked entries are final and never retried.
	LogStatusBlocked
)

func getLogStatusStrings() map[LogStatus]string {
	return map[LogStatus]string{
		LogStatusUnknown: "Unknown",
		LogStatusSent:    "Sent",
		LogStatusFailed:  "Failed",
		LogStatusBlocked: "Blocked",
	}
}

// String implements fmt.Stringer. Safe to call on any value.
func (s LogStatus) String() string {
	if str, ok := getLogStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Log is one append-only record of an attempted external notification.
// The recipient phone is stored masked; the payload hash ties the record back
// to the snapshot it delivered so replays can be detected without comparing
// message bodies.
type Log struct {
	id                kernel.UUID
	tenantID          kernel.UUID
	orderID           kernel.UUID
	kind              EventKind
	status            LogStatus
	payloadHash       string
	recipientMasked   string
	messagePreview    string
	attempt           int
	providerMessageID string
	lastError         string
	createdAt         time.Time

	isConstructed bool
}

const messagePreviewLimit = 500

// NewLog records the outcome of one delivery attempt for a snapshot.
func NewLog(
	id kernel.UUID,
	snapshot Snapshot,
	status LogStatus,
	attempt int,
	providerMessageID string,
	lastError string,
	createdAt time.Time,
) (*Log, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := snapshot.Validate(); err != nil {
		return nil, err
	}
	if status == LogStatusUnknown {
		return nil, errs.NewValueIsInvalidError("log status")
	}
	if attempt < 1 {
		return nil, errs.NewValueIsOutOfRangeError("attempt", attempt, 1, 1<<30)
	}

	preview := snapshot.RenderedMessage()
	if len(preview) > messagePreviewLimit {
		preview = preview[:messagePreviewLimit]
	}

	return &Log{
		id:                id,
		tenantID:          snapshot.TenantID(),
		orderID:           snapshot.OrderID(),
		kind:              snapshot.Kind(),
		status:            status,
		payloadHash:       snapshot.PayloadHash(),
		recipientMasked:   snapshot.RecipientPhone().Masked(),
		messagePreview:    preview,
		attempt:           attempt,
		providerMessageID: providerMessageID,
		lastError:         lastError,
		createdAt:         createdAt,
		isConstructed:     true,
	}, nil
}

// RestoreLog rebuilds a Log from persistence without re-validating content.
func RestoreLog(
	id kernel.UUID,
	tenantID kernel.UUID,
	orderID kernel.UUID,
	kind EventKind,
	status LogStatus,
	payloadHash string,
	recipientMasked string,
	messagePreview string,
	attempt int,
	providerMessageID string,
	lastError string,
	createdAt time.Time,
) *Log {
	return &Log{
		id:                id,
		tenantID:          tenantID,
		orderID:           orderID,
		kind:              kind,
		status:            status,
		payloadHash:       payloadHash,
		recipientMasked:   recipientMasked,
		messagePreview:    messagePreview,
		attempt:           attempt,
		providerMessageID: providerMessageID,
		lastError:         lastError,
		createdAt:         createdAt,
		isConstructed:     true,
	}
}

// Validate ensures the Log was created through a constructor.
func (l *Log) Validate() error {
	if l == nil || !l.isConstructed {
		return errs.NewValueIsRequiredError("Log must be created via NewLog or RestoreLog")
	}
	return nil
}

// ID returns the log entry identifier.
func (l *Log) ID() kernel.UUID { return l.id }

// TenantID returns the owning tenant.
func (l *Log) TenantID() kernel.UUID { return l.tenantID }

// OrderID returns the related order.
func (l *Log) OrderID() kernel.UUID { return l.orderID }

// Kind returns the notified event kind.
func (l *Log) Kind() EventKind { return l.kind }

// Status returns the attempt outcome.
func (l *Log) Status() LogStatus { return l.status }

// PayloadHash returns the snapshot content hash.
func (l *Log) PayloadHash() string { return l.payloadHash }

// RecipientMasked returns the masked recipient phone ("***1234").
func (l *Log) RecipientMasked() string { return l.recipientMasked }

// MessagePreview returns the truncated message text.
func (l *Log) MessagePreview() string { return l.messagePreview }

// Attempt returns the 1-based attempt number this record describes.
func (l *Log) Attempt() int { return l.attempt }

// ProviderMessageID returns the channel's message id on success.
func (l *Log) ProviderMessageID() string { return l.providerMessageID }

// LastError returns the failure detail, empty on success.
func (l *Log) LastError() string { return l.lastError }

// CreatedAt returns when the attempt was recorded.
func (l *Log) CreatedAt() time.Time { return l.createdAt }
