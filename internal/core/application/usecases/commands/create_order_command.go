package commands

import (
	"errors"
	"strings"

	"flowlog/internal/core/domain/model/kernel"
	"flowlog/internal/core/domain/model/order"
	"flowlog/internal/pkg/errs"
	"flowlog/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	// ErrCustomerNameIsRequired rejects creating an order for an unnamed customer.
	ErrCustomerNameIsRequired = errs.NewValueIsRequiredError("customerName")
)

// CreateOrderCommand represents a request to register a new order. The
// customer is identified by normalized phone: a returning phone number
// reuses the existing customer record instead of creating a duplicate.
//
// Example:
//
//	phone, _ := kernel.NewPhone("+55 11 98765-4321")
//	total, _ := kernel.NewMoney(15990)
//	cmd, err := NewCreateOrderCommand(
//	    orderID, tenantID, nil,
//	    "Maria da Silva", phone, total,
//	    order.DeliveryTypeSedex, "Rua das Flores 123", "deliver after 18h",
//	)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	tenantID        kernel.UUID
	sellerID        *kernel.UUID
	customerName    string
	customerPhone   kernel.Phone
	totalValue      kernel.Money
	deliveryType    order.DeliveryType
	deliveryAddress string
	notes           string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
// Delivery-type address rules are enforced later by the order constructor;
// here only the identities and the customer contact are validated.
func NewCreateOrderCommand(
	orderID, tenantID kernel.UUID,
	sellerID *kernel.UUID,
	customerName string,
	customerPhone kernel.Phone,
	totalValue kernel.Money,
	deliveryType order.DeliveryType,
	deliveryAddress string,
	notes string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(orderID.Validate(), tenantID.Validate()); err != nil {
		return CreateOrderCommand{}, err
	}
	if sellerID != nil {
		if err := sellerID.Validate(); err != nil {
			return CreateOrderCommand{}, err
		}
	}
	customerName = strings.TrimSpace(customerName)
	if customerName == "" {
		return CreateOrderCommand{}, ErrCustomerNameIsRequired
	}
	if err := customerPhone.Validate(); err != nil {
		return CreateOrderCommand{}, err
	}
	if err := deliveryType.Validate(); err != nil {
		return CreateOrderCommand{}, err
	}

	cmd.orderID = orderID
	cmd.tenantID = tenantID
	cmd.sellerID = sellerID
	cmd.customerName = customerName
	cmd.customerPhone = customerPhone
	cmd.totalValue = totalValue
	cmd.deliveryType = deliveryType
	cmd.deliveryAddress = strings.TrimSpace(deliveryAddress)
	cmd.notes = strings.TrimSpace(notes)

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the id the new order will carry.
func (c CreateOrderCommand) OrderID() kernel.UUID { return c.orderID }

// TenantID returns the tenant the order belongs to.
func (c CreateOrderCommand) TenantID() kernel.UUID { return c.tenantID }

// SellerID returns the registering staff member, nil for integrations.
func (c CreateOrderCommand) SellerID() *kernel.UUID { return c.sellerID }

// CustomerName returns the customer's name.
func (c CreateOrderCommand) CustomerName() string { return c.customerName }

// CustomerPhone returns the customer's normalized phone.
func (c CreateOrderCommand) CustomerPhone() kernel.Phone { return c.customerPhone }

// TotalValue returns the order total.
func (c CreateOrderCommand) TotalValue() kernel.Money { return c.totalValue }

// DeliveryType returns how the order reaches the customer.
func (c CreateOrderCommand) DeliveryType() order.DeliveryType { return c.deliveryType }

// DeliveryAddress returns the destination address, empty for pickup.
func (c CreateOrderCommand) DeliveryAddress() string { return c.deliveryAddress }

// Notes returns free-form operator notes.
func (c CreateOrderCommand) Notes() string { return c.notes }
