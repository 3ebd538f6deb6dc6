package commands_test

import (
	"context"
	"testing"
	"time"

	"flowlog/internal/core/application/usecases/commands"
	"flowlog/internal/core/domain/model/customer"
	"flowlog/internal/core/domain/model/kernel"
	"flowlog/internal/core/domain/model/notification"
	"flowlog/internal/core/domain/model/order"
	"flowlog/internal/core/domain/model/tenant"
	"flowlog/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, tenantID, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByCode(ctx context.Context, tenantID kernel.UUID, code string) (*order.Order, error) {
	args := m.Called(ctx, tenantID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, tenantID, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetExpiredPickupRefs(ctx context.Context, cutoff time.Time, limit int) ([]ports.ExpiredPickupRef, error) {
	args := m.Called(ctx, cutoff, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.ExpiredPickupRef), args.Error(1)
}

type MockCustomerRepository struct{ mock.Mock }

func (m *MockCustomerRepository) Add(ctx context.Context, c *customer.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCustomerRepository) Update(ctx context.Context, c *customer.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCustomerRepository) Get(ctx context.Context, tenantID, id kernel.UUID) (*customer.Customer, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func (m *MockCustomerRepository) GetByPhone(ctx context.Context, tenantID kernel.UUID, phone kernel.Phone) (*customer.Customer, error) {
	args := m.Called(ctx, tenantID, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

type MockTenantRepository struct{ mock.Mock }

func (m *MockTenantRepository) Add(ctx context.Context, tn *tenant.Tenant) error {
	args := m.Called(ctx, tn)
	return args.Error(0)
}

func (m *MockTenantRepository) Update(ctx context.Context, tn *tenant.Tenant) error {
	args := m.Called(ctx, tn)
	return args.Error(0)
}

func (m *MockTenantRepository) Get(ctx context.Context, id kernel.UUID) (*tenant.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tenant.Tenant), args.Error(1)
}

func (m *MockTenantRepository) GetBySlug(ctx context.Context, slug string) (*tenant.Tenant, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tenant.Tenant), args.Error(1)
}

type MockHistoryRepository struct{ mock.Mock }

func (m *MockHistoryRepository) Add(ctx context.Context, h *order.History) error {
	args := m.Called(ctx, h)
	return args.Error(0)
}

func (m *MockHistoryRepository) ListByOrder(ctx context.Context, tenantID, orderID kernel.UUID) ([]*order.History, error) {
	args := m.Called(ctx, tenantID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.History), args.Error(1)
}

type MockWebhookEventRepository struct{ mock.Mock }

func (m *MockWebhookEventRepository) Add(ctx context.Context, event ports.WebhookEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockWebhookEventRepository) Exists(ctx context.Context, tenantID kernel.UUID, eventID string) (bool, error) {
	args := m.Called(ctx, tenantID, eventID)
	return args.Bool(0), args.Error(1)
}

type MockLifecycleUoW struct{ mock.Mock }

func (m *MockLifecycleUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockLifecycleUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockLifecycleUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockLifecycleUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockLifecycleUoW) CustomerRepository() ports.CustomerRepository {
	args := m.Called()
	return args.Get(0).(ports.CustomerRepository)
}

func (m *MockLifecycleUoW) TenantRepository() ports.TenantRepository {
	args := m.Called()
	return args.Get(0).(ports.TenantRepository)
}

func (m *MockLifecycleUoW) HistoryRepository() ports.HistoryRepository {
	args := m.Called()
	return args.Get(0).(ports.HistoryRepository)
}

type MockLifecycleUoWFactory struct{ mock.Mock }

func (m *MockLifecycleUoWFactory) Create() commands.LifecycleUoW {
	args := m.Called()
	return args.Get(0).(commands.LifecycleUoW)
}

type MockWebhookUoW struct{ MockLifecycleUoW }

func (m *MockWebhookUoW) WebhookEventRepository() ports.WebhookEventRepository {
	args := m.Called()
	return args.Get(0).(ports.WebhookEventRepository)
}

type MockWebhookUoWFactory struct{ mock.Mock }

func (m *MockWebhookUoWFactory) Create() commands.WebhookUoW {
	args := m.Called()
	return args.Get(0).(commands.WebhookUoW)
}

type MockDispatchQueue struct{ mock.Mock }

func (m *MockDispatchQueue) Enqueue(ctx context.Context, snapshot notification.Snapshot) ports.EnqueueResult {
	args := m.Called(ctx, snapshot)
	return args.Get(0).(ports.EnqueueResult)
}

func enqueued() ports.EnqueueResult {
	return ports.EnqueueResult{Outcome: ports.EnqueueOutcomeEnqueued}
}

func testClock() time.Time {
	return time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
}

func createTestTenant(t *testing.T, id kernel.UUID) *tenant.Tenant {
	t.Helper()
	tn, err := tenant.NewTenant(id, "Loja da Ana", "loja-da-ana", "Rua das Flores 10")
	require.NoError(t, err)
	settings := tn.Settings()
	settings.NotificationsEnabled = true
	settings.WebhookSecret = "shhh"
	tn.UpdateSettings(settings)
	return tn
}

func createTestCustomer(t *testing.T, tenantID kernel.UUID) *customer.Customer {
	t.Helper()
	phone, err := kernel.NewPhone("+55 11 98888-7777")
	require.NoError(t, err)
	c, err := customer.NewCustomer(kernel.NewUUID(), tenantID, "João Silva", phone)
	require.NoError(t, err)
	return c
}

func createTestOrder(t *testing.T, tenantID kernel.UUID, customerID kernel.UUID, deliveryType order.DeliveryType) *order.Order {
	t.Helper()
	total, err := kernel.NewMoney(12990)
	require.NoError(t, err)
	address := "Av. Paulista 1000"
	if deliveryType == order.DeliveryTypePickup {
		address = ""
	}
	o, err := order.NewOrder(kernel.NewUUID(), tenantID, customerID, nil,
		total, deliveryType, address, "", testClock())
	require.NoError(t, err)
	return o
}
