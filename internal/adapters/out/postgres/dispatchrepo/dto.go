// Package dispatchrepo is the durable dispatch queue. Jobs are snapshot
// payloads flattened into one row plus retry bookkeeping; the worker claims
// due rows with FOR UPDATE SKIP LOCKED so concurrent workers never collide.
package dispatchrepo

import (
	"time"

	"flowlog/internal/core/domain/model/kernel"
	"flowlog/internal/core/domain/model/notification"

	"github.com/google/uuid"
)

// DispatchJobDTO is the database row for one queued notification. The
// snapshot is denormalized into columns: the worker must never re-read
// order state to render a message.
type DispatchJobDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID uuid.UUID `gorm:"type:uuid;index"`
	OrderID  uuid.UUID `gorm:"type:uuid;index"`

	OrderCode       string `gorm:"size:16"`
	Kind            string `gorm:"size:40"`
	RecipientName   string `gorm:"size:160"`
	RecipientPhone  string `gorm:"size:32"`
	RenderedMessage string
	PayloadHash     string `gorm:"size:64"`

	Status        int `gorm:"index:idx_dispatch_jobs_due"`
	Attempts      int
	NextAttemptAt time.Time `gorm:"index:idx_dispatch_jobs_due"`
	LastError     string

	CreatedAt time.Time
}

// TableName overrides GORM's default naming to use "dispatch_jobs".
func (DispatchJobDTO) TableName() string {
	return "dispatch_jobs"
}

func fromDomain(job *notification.Job) DispatchJobDTO {
	snapshot := job.Snapshot()
	return DispatchJobDTO{
		ID:              job.ID().Bytes(),
		TenantID:        snapshot.TenantID().Bytes(),
		OrderID:         snapshot.OrderID().Bytes(),
		OrderCode:       snapshot.OrderCode(),
		Kind:            string(snapshot.Kind()),
		RecipientName:   snapshot.RecipientName(),
		RecipientPhone:  snapshot.RecipientPhone().String(),
		RenderedMessage: snapshot.RenderedMessage(),
		PayloadHash:     snapshot.PayloadHash(),
		Status:          int(job.Status()),
		Attempts:        job.Attempts(),
		NextAttemptAt:   job.NextAttemptAt(),
		LastError:       job.LastError(),
		CreatedAt:       snapshot.CreatedAt(),
	}
}

func toDomain(dto DispatchJobDTO) (*notification.Job, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	tenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	phone, err := kernel.NewPhone(dto.RecipientPhone)
	if err != nil {
		return nil, err
	}

	snapshot, err := notification.NewSnapshot(
		notification.EventKind(dto.Kind),
		tenantID, orderID, dto.OrderCode,
		dto.RecipientName, phone,
		dto.RenderedMessage, dto.PayloadHash,
		dto.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return notification.RestoreJob(
		id, snapshot,
		notification.JobStatus(dto.Status),
		dto.Attempts, dto.NextAttemptAt, dto.LastError,
	), nil
}
