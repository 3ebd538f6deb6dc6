package tenant

import (
	"errors"
	"strings"

	"flowlog/internal/core/domain/model/kernel"
	"flowlog/internal/pkg/errs"
	"flowlog/internal/pkg/guard"
)

// Domain errors for tenant operations.
var (
	// ErrNameIsRequired is returned when attempting to create a tenant without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrSlugIsRequired is returned when attempting to create a tenant without a slug.
	ErrSlugIsRequired = errs.NewValueIsRequiredError("slug")
	// ErrTenantIsNotConstructed is returned when using an improperly initialized Tenant.
	ErrTenantIsNotConstructed = errors.New("Tenant must be created via NewTenant or RestoreTenant constructor")
	// ErrTenantIsInactive is returned when a command targets a deactivated tenant.
	ErrTenantIsInactive = errors.New("tenant is inactive")
)

// Tenant is one isolated store. Every order, customer and notification row
// carries its id; nothing ever crosses tenants. The slug addresses the
// tenant on public surfaces such as the payment webhook URL.
type Tenant struct {
	id   kernel.UUID
	name string
	slug string
	// address is the physical store address rendered into pickup
	// notifications, may be empty.
	address string
	active  bool

	settings Settings

	guard guard.ConstructorGuard
}

// NewTenant creates an active Tenant with default settings.
func NewTenant(id kernel.UUID, name string, slug string, address string) (*Tenant, error) {
	t := &Tenant{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		t.setID(id),
		t.setName(name),
		t.setSlug(slug),
	); err != nil {
		return nil, err
	}

	t.address = strings.TrimSpace(address)
	t.active = true
	t.settings = DefaultSettings()

	return t, nil
}

// RestoreTenant reconstructs a Tenant from persistent storage.
func RestoreTenant(
	id kernel.UUID,
	name string,
	slug string,
	address string,
	active bool,
	settings Settings,
) (*Tenant, error) {
	t := &Tenant{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		t.setID(id),
		t.setName(name),
		t.setSlug(slug),
	); err != nil {
		return nil, err
	}

	t.address = address
	t.active = active
	t.settings = settings

	return t, nil
}

// Validate checks if the Tenant was properly constructed via a constructor.
func (t *Tenant) Validate() error {
	if t == nil {
		return ErrTenantIsNotConstructed
	}
	return t.guard.Validate(ErrTenantIsNotConstructed)
}

// EnsureActive rejects commands against a deactivated tenant.
func (t *Tenant) EnsureActive() error {
	if !t.active {
		return ErrTenantIsInactive
	}
	return nil
}

// Deactivate suspends the tenant; lifecycle commands start failing with
// ErrTenantIsInactive while historical data stays queryable.
func (t *Tenant) Deactivate() {
	t.active = false
}

// Activate re-enables a suspended tenant.
func (t *Tenant) Activate() {
	t.active = true
}

// UpdateSettings replaces the tenant's notification and policy settings.
func (t *Tenant) UpdateSettings(settings Settings) {
	t.settings = settings
}

// IsEqual compares two tenants by identity.
func (t *Tenant) IsEqual(other *Tenant) bool {
	if other == nil {
		return false
	}
	return t.id.IsEqual(other.id)
}

// ID returns the unique identifier of the tenant.
func (t *Tenant) ID() kernel.UUID { return t.id }

// Name returns the store name rendered into notifications.
func (t *Tenant) Name() string { return t.name }

// Slug returns the URL-safe identifier used on public endpoints.
func (t *Tenant) Slug() string { return t.slug }

// Address returns the physical store address, may be empty.
func (t *Tenant) Address() string { return t.address }

// IsActive reports whether the tenant accepts lifecycle commands.
func (t *Tenant) IsActive() bool { return t.active }

// Settings returns the tenant's notification and policy settings.
func (t *Tenant) Settings() Settings { return t.settings }

func (t *Tenant) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("id", err)
	}
	t.id = id
	return nil
}

func (t *Tenant) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	t.name = name
	return nil
}

func (t *Tenant) setSlug(slug string) error {
	slug = strings.TrimSpace(strings.ToLower(slug))
	if slug == "" {
		return ErrSlugIsRequired
	}
	t.slug = slug
	return nil
}
