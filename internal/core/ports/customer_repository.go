package ports

import (
	"context"

	"flowlog/internal/core/domain/model/customer"
	"flowlog/internal/core/domain/model/kernel"
)

// CustomerRepository defines the persistence contract for customers.
// Customers are deduplicated per tenant by normalized phone number.
type CustomerRepository interface {
	// Add persists a new customer.
	Add(ctx context.Context, aggregate *customer.Customer) error

	// Update persists changes to an existing customer.
	Update(ctx context.Context, aggregate *customer.Customer) error

	// Get retrieves a customer by id within the tenant.
	Get(ctx context.Context, tenantID, id kernel.UUID) (*customer.Customer, error)

	// GetByPhone retrieves the tenant's customer with the given normalized
	// phone, or an object-not-found error when no such customer exists.
	GetByPhone(ctx context.Context, tenantID kernel.UUID, phone kernel.Phone) (*customer.Customer, error)
}
