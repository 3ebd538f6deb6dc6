package http_test

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	adapter "flowlog/internal/adapters/in/http"
	"flowlog/internal/core/application/usecases/commands"
	"flowlog/internal/core/domain/model/customer"
	"flowlog/internal/core/domain/model/kernel"
	"flowlog/internal/core/domain/model/notification"
	"flowlog/internal/core/domain/model/order"
	"flowlog/internal/core/domain/model/tenant"
	"flowlog/internal/core/ports"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
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

func (m *MockHistoryRepository) Add(ctx context.Context, history *order.History) error {
	args := m.Called(ctx, history)
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

type MockWebhookUoW struct{ mock.Mock }

func (m *MockWebhookUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockWebhookUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockWebhookUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockWebhookUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockWebhookUoW) CustomerRepository() ports.CustomerRepository {
	args := m.Called()
	return args.Get(0).(ports.CustomerRepository)
}

func (m *MockWebhookUoW) TenantRepository() ports.TenantRepository {
	args := m.Called()
	return args.Get(0).(ports.TenantRepository)
}

func (m *MockWebhookUoW) HistoryRepository() ports.HistoryRepository {
	args := m.Called()
	return args.Get(0).(ports.HistoryRepository)
}

func (m *MockWebhookUoW) WebhookEventRepository() ports.WebhookEventRepository {
	args := m.Called()
	return args.Get(0).(ports.WebhookEventRepository)
}

type webhookUoWFactoryFunc func() commands.WebhookUoW

func (f webhookUoWFactoryFunc) Create() commands.WebhookUoW { return f() }

func newTestRouter(h adapter.Handlers) *echo.Echo {
	e := echo.New()
	adapter.NewServer(h).RegisterRoutes(e)
	return e
}

func do(e *echo.Echo, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestServer_Health(t *testing.T) {
	e := newTestRouter(adapter.Handlers{})

	rec := do(e, http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())
}

func TestServer_CreateOrder_InvalidTenantID(t *testing.T) {
	e := newTestRouter(adapter.Handlers{})

	rec := do(e, http.MethodPost, "/api/v1/tenants/not-a-uuid/orders",
		`{"customer_name":"Maria","customer_phone":"+55 11 98765-4321","total_value":12990,"delivery_type":"sedex","delivery_address":"Av. Paulista 1000"}`, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_CreateOrder_UnknownDeliveryType(t *testing.T) {
	e := newTestRouter(adapter.Handlers{})

	target := "/api/v1/tenants/" + kernel.NewUUID().String() + "/orders"
	rec := do(e, http.MethodPost, target,
		`{"customer_name":"Maria","customer_phone":"+55 11 98765-4321","total_value":12990,"delivery_type":"drone"}`, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_ShipOrder_EmptyTrackingCode(t *testing.T) {
	e := newTestRouter(adapter.Handlers{})

	target := "/api/v1/tenants/" + kernel.NewUUID().String() +
		"/orders/" + kernel.NewUUID().String() + "/ship"
	rec := do(e, http.MethodPost, target, `{"tracking_code":"  "}`, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_ListOrders_UnknownStatusFilter(t *testing.T) {
	e := newTestRouter(adapter.Handlers{})

	target := "/api/v1/tenants/" + kernel.NewUUID().String() + "/orders?status=sleeping"
	rec := do(e, http.MethodGet, target, "", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_LifecycleRoute_InvalidActorHeader(t *testing.T) {
	e := newTestRouter(adapter.Handlers{})

	target := "/api/v1/tenants/" + kernel.NewUUID().String() +
		"/orders/" + kernel.NewUUID().String() + "/confirm"
	rec := do(e, http.MethodPost, target, "", map[string]string{"X-Actor-ID": "nope"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_PaymentWebhook_MalformedBody(t *testing.T) {
	e := newTestRouter(adapter.Handlers{})

	rec := do(e, http.MethodPost, "/api/v1/webhooks/payments/loja-da-ana",
		`{"event_id": "evt-1", "type":`, map[string]string{"X-Webhook-Signature": "deadbeef"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_PaymentWebhook_InvalidSignature(t *testing.T) {
	tenantID := kernel.NewUUID()
	tn := createWebhookTenant(t, tenantID, "loja-da-ana", "s3cret")

	tenantRepo := new(MockTenantRepository)
	uow := new(MockWebhookUoW)
	uow.On("Begin", mock.Anything).Return(nil).Once()
	uow.On("TenantRepository").Return(tenantRepo).Once()
	tenantRepo.On("GetBySlug", mock.Anything, "loja-da-ana").Return(tn, nil).Once()
	uow.On("Rollback", mock.Anything).Return(nil).Once()

	e := newTestRouter(adapter.Handlers{
		PaymentWebhook: newWebhookHandler(uow),
	})

	body := `{"event_id":"evt-1","type":"charge.paid","data":{"order_code":"PED-AB2CD"}}`
	rec := do(e, http.MethodPost, "/api/v1/webhooks/payments/loja-da-ana", body,
		map[string]string{"X-Webhook-Signature": "0000000000000000"})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	uow.AssertExpectations(t)
}

func TestServer_PaymentWebhook_ReplayAcknowledged(t *testing.T) {
	tenantID := kernel.NewUUID()
	tn := createWebhookTenant(t, tenantID, "loja-da-ana", "s3cret")

	body := `{"event_id":"evt-1","type":"charge.paid","data":{"order_code":"PED-AB2CD"}}`
	mac := hmac.New(sha256.New, []byte("s3cret"))
	mac.Write([]byte(body))
	signature := hex.EncodeToString(mac.Sum(nil))

	tenantRepo := new(MockTenantRepository)
	eventRepo := new(MockWebhookEventRepository)
	uow := new(MockWebhookUoW)
	uow.On("Begin", mock.Anything).Return(nil).Once()
	uow.On("TenantRepository").Return(tenantRepo).Once()
	tenantRepo.On("GetBySlug", mock.Anything, "loja-da-ana").Return(tn, nil).Once()
	uow.On("WebhookEventRepository").Return(eventRepo).Once()
	eventRepo.On("Exists", mock.Anything, tenantID, "evt-1").Return(true, nil).Once()
	uow.On("Rollback", mock.Anything).Return(nil).Once()

	e := newTestRouter(adapter.Handlers{
		PaymentWebhook: newWebhookHandler(uow),
	})

	rec := do(e, http.MethodPost, "/api/v1/webhooks/payments/loja-da-ana", body,
		map[string]string{"X-Webhook-Signature": signature})

	require.Equal(t, http.StatusOK, rec.Code)

	var response adapter.WebhookResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "accepted", response.Status)
	uow.AssertExpectations(t)
	eventRepo.AssertExpectations(t)
}

func newWebhookHandler(uow *MockWebhookUoW) commands.ProcessPaymentWebhookCommandHandler {
	factory := webhookUoWFactoryFunc(func() commands.WebhookUoW { return uow })
	return commands.NewProcessPaymentWebhookCommandHandler(factory, noEnqueueQueue{}, nil)
}

// noEnqueueQueue fails the test if anything reaches the dispatch queue.
type noEnqueueQueue struct{}

func (noEnqueueQueue) Enqueue(context.Context, notification.Snapshot) ports.EnqueueResult {
	panic("unexpected enqueue")
}

func createWebhookTenant(t *testing.T, id kernel.UUID, slug, secret string) *tenant.Tenant {
	t.Helper()

	settings := tenant.DefaultSettings()
	settings.WebhookSecret = secret

	tn, err := tenant.RestoreTenant(id, "Loja da Ana", slug, "Rua A 1", true, settings)
	require.NoError(t, err)
	return tn
}
