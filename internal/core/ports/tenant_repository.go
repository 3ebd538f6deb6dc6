package ports

import (
	"context"

	"flowlog/internal/core/domain/model/kernel"
	"flowlog/internal/core/domain/model/tenant"
)

// TenantRepository defines the persistence contract for tenants and their
// settings. Tenants change rarely; there is no locked read.
type TenantRepository interface {
	// Add persists a new tenant.
	Add(ctx context.Context, aggregate *tenant.Tenant) error

	// Update persists changes to an existing tenant.
	Update(ctx context.Context, aggregate *tenant.Tenant) error

	// Get retrieves a tenant by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*tenant.Tenant, error)

	// GetBySlug retrieves a tenant by its URL slug. Used by public surfaces
	// such as the payment webhook endpoint.
	GetBySlug(ctx context.Context, slug string) (*tenant.Tenant, error)
}
