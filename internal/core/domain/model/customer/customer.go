// Package customer contains the Customer entity. Customers are scoped to a
// tenant and deduplicated by normalized phone number: the storefront does
// not ask returning buyers to register twice.
package customer

import (
	"errors"
	"strings"

	"flowlog/internal/core/domain/model/kernel"
	"flowlog/internal/pkg/errs"
	"flowlog/internal/pkg/guard"
)

// Domain errors for customer operations.
var (
	// ErrNameIsRequired is returned when attempting to create a customer without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrCustomerIsNotConstructed is returned when using an improperly initialized Customer.
	ErrCustomerIsNotConstructed = errors.New("Customer must be created via NewCustomer or RestoreCustomer constructor")
)

// Customer is a buyer within one tenant, identified by normalized phone.
type Customer struct {
	id       kernel.UUID
	tenantID kernel.UUID
	name     string
	phone    kernel.Phone

	guard guard.ConstructorGuard
}

// NewCustomer creates a Customer within the given tenant.
func NewCustomer(id kernel.UUID, tenantID kernel.UUID, name string, phone kernel.Phone) (*Customer, error) {
	c := &Customer{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setTenantID(tenantID),
		c.setName(name),
		c.setPhone(phone),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// RestoreCustomer reconstructs a Customer from persistent storage.
func RestoreCustomer(id kernel.UUID, tenantID kernel.UUID, name string, phone kernel.Phone) (*Customer, error) {
	return NewCustomer(id, tenantID, name, phone)
}

// Rename updates the display name; order creation does this when a returning
// phone number arrives with a fresher name.
func (c *Customer) Rename(name string) error {
	return c.setName(name)
}

// FirstName returns the first word of the name for template greetings.
func (c *Customer) FirstName() string {
	fields := strings.Fields(c.name)
	if len(fields) == 0 {
		return c.name
	}
	return fields[0]
}

// Validate checks if the Customer was properly constructed via a constructor.
func (c *Customer) Validate() error {
	if c == nil {
		return ErrCustomerIsNotConstructed
	}
	return c.guard.Validate(ErrCustomerIsNotConstructed)
}

// IsEqual compares two customers by identity.
func (c *Customer) IsEqual(other *Customer) bool {
	if other == nil {
		return false
	}
	return c.id.IsEqual(other.id)
}

// ID returns the unique identifier of the customer.
func (c *Customer) ID() kernel.UUID { return c.id }

// TenantID returns the owning tenant.
func (c *Customer) TenantID() kernel.UUID { return c.tenantID }

// Name returns the customer's full name.
func (c *Customer) Name() string { return c.name }

// Phone returns the normalized phone number.
func (c *Customer) Phone() kernel.Phone { return c.phone }

func (c *Customer) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("id", err)
	}
	c.id = id
	return nil
}

func (c *Customer) setTenantID(tenantID kernel.UUID) error {
	if err := tenantID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("tenantID", err)
	}
	c.tenantID = tenantID
	return nil
}

func (c *Customer) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	c.name = name
	return nil
}

func (c *Customer) setPhone(phone kernel.Phone) error {
	if err := phone.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("phone", err)
	}
	c.phone = phone
	return nil
}
