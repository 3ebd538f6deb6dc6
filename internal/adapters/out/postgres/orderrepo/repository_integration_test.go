package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"flowlog/internal/adapters/out/postgres/orderrepo"
	"flowlog/internal/core/domain/model/kernel"
	"flowlog/internal/core/domain/model/order"
	"flowlog/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite provides integration tests for
// OrderRepository using PostgreSQL containers to verify persistence,
// tenant scoping and the pickup expiry scan.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ValidOrder_Success() {
	ctx := context.Background()

	testOrder := suite.createTestOrder(kernel.NewUUID(), order.DeliveryTypeMotoboy)

	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()

	err := suite.repository.Add(ctx, testOrder)
	suite.Require().NoError(err)

	suite.assertOrderCount(1)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_ExistingOrder_RoundTripsAllFields() {
	ctx := context.Background()

	tenantID := kernel.NewUUID()
	testOrder := suite.createTestOrder(tenantID, order.DeliveryTypeSedex)

	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	retrieved, err := suite.repository.Get(ctx, tenantID, testOrder.ID())
	suite.Require().NoError(err)

	suite.Equal(testOrder.ID(), retrieved.ID())
	suite.Equal(testOrder.TenantID(), retrieved.TenantID())
	suite.Equal(testOrder.CustomerID(), retrieved.CustomerID())
	suite.Equal(testOrder.Code(), retrieved.Code())
	suite.True(testOrder.TotalValue().IsEqual(retrieved.TotalValue()))
	suite.Equal(order.OrderStatusPending, retrieved.Status())
	suite.Equal(order.PaymentStatusPending, retrieved.PaymentStatus())
	suite.Equal(order.DeliveryTypeSedex, retrieved.DeliveryType())
	suite.Equal(order.DeliveryStatusPending, retrieved.DeliveryStatus())
	suite.Equal(testOrder.DeliveryAddress(), retrieved.DeliveryAddress())
	suite.Nil(retrieved.ExpiresAt())
	suite.Nil(retrieved.SellerID())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_WrongTenant_ReturnsNotFoundError() {
	ctx := context.Background()

	tenantID := kernel.NewUUID()
	testOrder := suite.createTestOrder(tenantID, order.DeliveryTypeMotoboy)

	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	retrieved, err := suite.repository.Get(ctx, kernel.NewUUID(), testOrder.ID())

	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetByCode_ExistingOrder_ReturnsOrder() {
	ctx := context.Background()

	tenantID := kernel.NewUUID()
	testOrder := suite.createTestOrder(tenantID, order.DeliveryTypeMotoboy)

	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	retrieved, err := suite.repository.GetByCode(ctx, tenantID, testOrder.Code())
	suite.Require().NoError(err)
	suite.Equal(testOrder.ID(), retrieved.ID())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetByCode_WrongTenant_ReturnsNotFoundError() {
	ctx := context.Background()

	testOrder := suite.createTestOrder(kernel.NewUUID(), order.DeliveryTypeMotoboy)

	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	retrieved, err := suite.repository.GetByCode(ctx, kernel.NewUUID(), testOrder.Code())

	suite.Nil(retrieved)
	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_TransitionedOrder_PersistsAllDimensions() {
	ctx := context.Background()

	tenantID := kernel.NewUUID()
	testOrder := suite.createTestOrder(tenantID, order.DeliveryTypeSedex)

	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	now := time.Now().UTC().Truncate(time.Second)
	_, err := testOrder.Ship("BR123456789", now)
	suite.Require().NoError(err)
	_, err = testOrder.MarkPaid(order.CompletionPolicy{})
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	retrieved, err := suite.repository.Get(ctx, tenantID, testOrder.ID())
	suite.Require().NoError(err)

	suite.Equal(order.OrderStatusConfirmed, retrieved.Status())
	suite.Equal(order.PaymentStatusPaid, retrieved.PaymentStatus())
	suite.Equal(order.DeliveryStatusShipped, retrieved.DeliveryStatus())
	suite.Equal("BR123456789", retrieved.TrackingCode())
	suite.NotNil(retrieved.ShippedAt())
	suite.Equal(testOrder.Version(), retrieved.Version())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_ExpiredPickup_ClearsExpiresAt() {
	ctx := context.Background()

	tenantID := kernel.NewUUID()
	testOrder := suite.createTestOrder(tenantID, order.DeliveryTypePickup)

	readyAt := time.Now().UTC().Add(-100 * time.Hour)
	_, err := testOrder.MarkReadyForPickup(readyAt, 72*time.Hour)
	suite.Require().NoError(err)

	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	_, err = testOrder.Expire(time.Now().UTC())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	retrieved, err := suite.repository.Get(ctx, tenantID, testOrder.ID())
	suite.Require().NoError(err)

	suite.Equal(order.DeliveryStatusExpired, retrieved.DeliveryStatus())
	suite.Equal(order.OrderStatusCancelled, retrieved.Status())
	suite.Nil(retrieved.ExpiresAt())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NonExistentOrder_ReturnsError() {
	ctx := context.Background()

	testOrder := suite.createTestOrder(kernel.NewUUID(), order.DeliveryTypeMotoboy)

	err := suite.repository.Update(ctx, testOrder)
	suite.Require().ErrorIs(err, gorm.ErrRecordNotFound)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetForUpdate_InsideTransaction_ReturnsOrder() {
	ctx := context.Background()

	tenantID := kernel.NewUUID()
	testOrder := suite.createTestOrder(tenantID, order.DeliveryTypeMotoboy)

	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	tx := suite.db.Begin()
	suite.Require().NoError(tx.Error)
	defer tx.Rollback()

	txRepo := orderrepo.NewGormOrderRepository(tx, suite.tracker)
	retrieved, err := txRepo.GetForUpdate(ctx, tenantID, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(testOrder.ID(), retrieved.ID())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetForUpdate_LockedRow_ReturnsBusyError() {
	ctx := context.Background()

	tenantID := kernel.NewUUID()
	testOrder := suite.createTestOrder(tenantID, order.DeliveryTypeMotoboy)

	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	// First transaction holds the row lock for the duration of the test.
	holder := suite.db.Begin()
	suite.Require().NoError(holder.Error)
	defer holder.Rollback()

	holderRepo := orderrepo.NewGormOrderRepository(holder, suite.tracker)
	_, err := holderRepo.GetForUpdate(ctx, tenantID, testOrder.ID())
	suite.Require().NoError(err)

	// Second transaction with a short lock_timeout must give up with Busy.
	contender := suite.db.Begin()
	suite.Require().NoError(contender.Error)
	defer contender.Rollback()
	suite.Require().NoError(contender.Exec("SET LOCAL lock_timeout = '100ms'").Error)

	contenderRepo := orderrepo.NewGormOrderRepository(contender, suite.tracker)
	_, err = contenderRepo.GetForUpdate(ctx, tenantID, testOrder.ID())
	suite.Require().Error(err)

	var busyErr *errs.BusyError
	suite.Require().ErrorAs(err, &busyErr)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetExpiredPickupRefs_FindsOnlyOverdueAcrossTenants() {
	ctx := context.Background()

	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Times(3)

	now := time.Now().UTC()

	overdueA := suite.createTestOrder(kernel.NewUUID(), order.DeliveryTypePickup)
	_, err := overdueA.MarkReadyForPickup(now.Add(-100*time.Hour), 72*time.Hour)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, overdueA))

	overdueB := suite.createTestOrder(kernel.NewUUID(), order.DeliveryTypePickup)
	_, err = overdueB.MarkReadyForPickup(now.Add(-80*time.Hour), 72*time.Hour)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, overdueB))

	// Still inside its window: must not be returned.
	fresh := suite.createTestOrder(kernel.NewUUID(), order.DeliveryTypePickup)
	_, err = fresh.MarkReadyForPickup(now.Add(-1*time.Hour), 72*time.Hour)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, fresh))

	refs, err := suite.repository.GetExpiredPickupRefs(ctx, now, 100)
	suite.Require().NoError(err)
	suite.Require().Len(refs, 2)

	// Ordered by expires_at: the one ready earliest expires first.
	suite.Equal(overdueA.ID(), refs[0].OrderID)
	suite.Equal(overdueA.TenantID(), refs[0].TenantID)
	suite.Equal(overdueB.ID(), refs[1].OrderID)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetExpiredPickupRefs_RespectsLimit() {
	ctx := context.Background()

	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Times(3)

	now := time.Now().UTC()
	for i := range 3 {
		overdue := suite.createTestOrder(kernel.NewUUID(), order.DeliveryTypePickup)
		_, err := overdue.MarkReadyForPickup(now.Add(-time.Duration(100+i)*time.Hour), 72*time.Hour)
		suite.Require().NoError(err)
		suite.Require().NoError(suite.repository.Add(ctx, overdue))
	}

	refs, err := suite.repository.GetExpiredPickupRefs(ctx, now, 2)
	suite.Require().NoError(err)
	suite.Len(refs, 2)

	suite.tracker.AssertExpectations(suite.T())
}

// createTestOrder creates a pending order for the tenant with default values.
func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder(
	tenantID kernel.UUID, deliveryType order.DeliveryType,
) *order.Order {
	totalValue, err := kernel.NewMoney(12990)
	suite.Require().NoError(err)

	address := "Av. Paulista 1000"
	if deliveryType == order.DeliveryTypePickup {
		address = ""
	}

	testOrder, err := order.NewOrder(
		kernel.NewUUID(), tenantID, kernel.NewUUID(), nil,
		totalValue, deliveryType, address, "",
		time.Now().UTC().Truncate(time.Second),
	)
	suite.Require().NoError(err)
	return testOrder
}

// assertOrderCount verifies the number of orders in the database.
func (suite *OrderRepositoryIntegrationTestSuite) assertOrderCount(expected int) {
	var count int64
	err := suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
