package dispatchrepo

import (
	"context"
	"errors"
	"time"

	"flowlog/internal/core/domain/model/kernel"
	"flowlog/internal/core/domain/model/notification"
	"flowlog/internal/pkg/errs"

	"gorm.io/gorm"
)

// claimLease is how long a claimed job stays invisible to other workers.
// A worker that crashes mid-attempt loses its claim when the lease runs
// out and the job becomes due again.
const claimLease = 2 * time.Minute

// GormDispatchJobRepository implements DispatchJobRepository using GORM.
type GormDispatchJobRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormDispatchJobRepository creates a new GORM dispatch job repository.
func NewGormDispatchJobRepository(db *gorm.DB) *GormDispatchJobRepository {
	return &GormDispatchJobRepository{
		db:  db,
		now: time.Now,
	}
}

// ClaimDueBatch atomically claims up to limit due pending jobs. The UPDATE
// pushes next_attempt_at forward by the claim lease, so the returned jobs
// stay invisible to concurrent workers; SKIP LOCKED keeps workers from
// queueing up behind each other on the same rows.
func (r *GormDispatchJobRepository) ClaimDueBatch(ctx context.Context, limit int) ([]*notification.Job, error) {
	if limit <= 0 {
		return nil, nil
	}

	now := r.now().UTC()

	var dtos []DispatchJobDTO
	err := r.db.WithContext(ctx).Raw(`
		UPDATE dispatch_jobs SET next_attempt_at = ?
		WHERE id IN (
			SELECT id FROM dispatch_jobs
			WHERE status = ? AND next_attempt_at <= ?
			ORDER BY next_attempt_at
			LIMIT ?
			FOR UPDATE SKIP LOCKED
		)
		RETURNING *`,
		now.Add(claimLease), int(notification.JobStatusPending), now, limit,
	).Scan(&dtos).Error
	if err != nil {
		return nil, err
	}

	jobs := make([]*notification.Job, 0, len(dtos))
	for _, dto := range dtos {
		job, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}

	return jobs, nil
}

// Save persists the job's post-attempt state.
func (r *GormDispatchJobRepository) Save(ctx context.Context, job *notification.Job) error {
	if err := job.Validate(); err != nil {
		return err
	}

	dto := fromDomain(job)
	result := r.db.WithContext(ctx).Model(&DispatchJobDTO{}).
		Where("id = ?", dto.ID).
		Select("status", "attempts", "next_attempt_at", "last_error").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// Get retrieves one job by id.
func (r *GormDispatchJobRepository) Get(ctx context.Context, id kernel.UUID) (*notification.Job, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DispatchJobDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("dispatch job", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// ListFailed returns the tenant's permanently failed jobs, newest first.
func (r *GormDispatchJobRepository) ListFailed(ctx context.Context, tenantID kernel.UUID, limit int) ([]*notification.Job, error) {
	if err := tenantID.Validate(); err != nil {
		return nil, err
	}

	var dtos []DispatchJobDTO
	query := r.db.WithContext(ctx).
		Where("tenant_id = ? AND status = ?", tenantID.Bytes(), int(notification.JobStatusFailed)).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&dtos).Error; err != nil {
		return nil, err
	}

	jobs := make([]*notification.Job, 0, len(dtos))
	for _, dto := range dtos {
		job, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}

	return jobs, nil
}
