package orderrepo

import (
	"context"
	"errors"
	"time"

	"flowlog/internal/core/domain/model/kernel"
	"flowlog/internal/core/domain/model/order"
	"flowlog/internal/core/ports"
	"flowlog/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockNotAvailable is the SQLSTATE Postgres raises when a row lock cannot
// be acquired within lock_timeout.
const lockNotAvailable = "55P03"

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order to the database.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	// Select("*") forces zero-valued columns through: expiry clears
	// expires_at, cancellation resets the pickup code, and so on.
	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND tenant_id = ?", dto.ID, dto.TenantID).
		Select("*").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID within the tenant.
func (r *GormOrderRepository) Get(ctx context.Context, tenantID, id kernel.UUID) (*order.Order, error) {
	if err := errors.Join(tenantID.Validate(), id.Validate()); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		First(&dto, "id = ? AND tenant_id = ?", id.Bytes(), tenantID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByCode retrieves an order by its human-facing code within the tenant.
func (r *GormOrderRepository) GetByCode(ctx context.Context, tenantID kernel.UUID, code string) (*order.Order, error) {
	if err := tenantID.Validate(); err != nil {
		return nil, err
	}
	if code == "" {
		return nil, errs.NewValueIsRequiredError("code")
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		First(&dto, "code = ? AND tenant_id = ?", code, tenantID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", code)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetForUpdate retrieves an order by ID within the tenant holding a row lock
// until the transaction ends. A lock wait that exceeds the connection's
// lock_timeout surfaces as a Busy error instead of blocking the request.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, tenantID, id kernel.UUID) (*order.Order, error) {
	if err := errors.Join(tenantID.Validate(), id.Validate()); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "id = ? AND tenant_id = ?", id.Bytes(), tenantID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == lockNotAvailable {
			return nil, errs.NewBusyErrorWithCause("order", err)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetExpiredPickupRefs lists pickup orders still waiting at the counter whose
// window elapsed before the cutoff, across all tenants.
func (r *GormOrderRepository) GetExpiredPickupRefs(ctx context.Context, cutoff time.Time, limit int) ([]ports.ExpiredPickupRef, error) {
	var dtos []OrderDTO
	query := r.db.WithContext(ctx).
		Select("id", "tenant_id").
		Where("delivery_status = ? AND expires_at IS NOT NULL AND expires_at < ?",
			int(order.DeliveryStatusReadyForPickup), cutoff).
		Order("expires_at")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&dtos).Error; err != nil {
		return nil, err
	}

	refs := make([]ports.ExpiredPickupRef, 0, len(dtos))
	for _, dto := range dtos {
		tenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
		if err != nil {
			return nil, err
		}
		orderID, err := kernel.UUIDFromBytes(dto.ID[:])
		if err != nil {
			return nil, err
		}
		refs = append(refs, ports.ExpiredPickupRef{TenantID: tenantID, OrderID: orderID})
	}

	return refs, nil
}
