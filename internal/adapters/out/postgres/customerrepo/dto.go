// Package customerrepo persists customer records. Phones are stored in
// their normalized form, so GetByPhone is a plain equality match.
package customerrepo

import (
	"flowlog/internal/core/domain/model/customer"
	"flowlog/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CustomerDTO is the database row for one customer. The (tenant_id, phone)
// pair is unique: a phone identifies exactly one customer per tenant.
type CustomerDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_customers_tenant_phone"`
	Name     string    `gorm:"size:160"`
	Phone    string    `gorm:"size:32;uniqueIndex:idx_customers_tenant_phone"`
}

// TableName overrides GORM's default naming to use "customers".
func (CustomerDTO) TableName() string {
	return "customers"
}

func fromDomain(aggregate *customer.Customer) CustomerDTO {
	return CustomerDTO{
		ID:       aggregate.ID().Bytes(),
		TenantID: aggregate.TenantID().Bytes(),
		Name:     aggregate.Name(),
		Phone:    aggregate.Phone().String(),
	}
}

func toDomain(dto CustomerDTO) (*customer.Customer, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	tenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}
	phone, err := kernel.NewPhone(dto.Phone)
	if err != nil {
		return nil, err
	}

	return customer.RestoreCustomer(id, tenantID, dto.Name, phone)
}
