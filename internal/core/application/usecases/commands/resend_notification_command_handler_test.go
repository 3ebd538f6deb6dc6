package commands_test

import (
	"testing"
	"time"

	"flowlog/internal/core/application/usecases/commands"
	"flowlog/internal/core/domain/model/kernel"
	"flowlog/internal/core/domain/model/notification"
	"flowlog/internal/core/domain/model/order"
	"flowlog/internal/core/ports"
	"flowlog/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestResendNotificationCommand_RejectsUnknownKind(t *testing.T) {
	_, err := commands.NewResendNotificationCommand(
		kernel.NewUUID(), kernel.NewUUID(), nil, notification.EventKind("order_teleported"),
	)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestResendNotificationCommandHandler_Handle_EnqueuesFreshSnapshot(t *testing.T) {
	ctx := t.Context()

	tenantID := kernel.NewUUID()
	tn := createTestTenant(t, tenantID)
	c := createTestCustomer(t, tenantID)
	o := createTestOrder(t, tenantID, c.ID(), order.DeliveryTypeMotoboy)
	_, err := o.Confirm()
	require.NoError(t, err)

	cmd, err := commands.NewResendNotificationCommand(tenantID, o.ID(), nil, notification.KindOrderConfirmed)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	customerRepo := new(MockCustomerRepository)
	tenantRepo := new(MockTenantRepository)
	queue := new(MockDispatchQueue)
	uow := new(MockLifecycleUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("TenantRepository").Return(tenantRepo).Once(),
		tenantRepo.On("Get", ctx, tenantID).Return(tn, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, tenantID, o.ID()).Return(o, nil).Once(),
		uow.On("CustomerRepository").Return(customerRepo).Once(),
		customerRepo.On("Get", ctx, tenantID, c.ID()).Return(c, nil).Once(),
		queue.On("Enqueue", ctx, mock.AnythingOfType("notification.Snapshot")).Return(enqueued()).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockLifecycleUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewResendNotificationCommandHandler(factory, queue)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)

	snapshot := queue.Calls[0].Arguments[1].(notification.Snapshot)
	assert.Equal(t, notification.KindOrderConfirmed, snapshot.Kind())
	assert.Equal(t, o.Code(), snapshot.OrderCode())

	// the resend mutates nothing
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	queue.AssertExpectations(t)
}

func TestResendNotificationCommandHandler_Handle_DegradedQueueFails(t *testing.T) {
	ctx := t.Context()

	tenantID := kernel.NewUUID()
	tn := createTestTenant(t, tenantID)
	c := createTestCustomer(t, tenantID)
	o := createTestOrder(t, tenantID, c.ID(), order.DeliveryTypeMotoboy)

	cmd, err := commands.NewResendNotificationCommand(tenantID, o.ID(), nil, notification.KindOrderCreated)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	customerRepo := new(MockCustomerRepository)
	tenantRepo := new(MockTenantRepository)
	queue := new(MockDispatchQueue)
	uow := new(MockLifecycleUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("TenantRepository").Return(tenantRepo).Once(),
		tenantRepo.On("Get", ctx, tenantID).Return(tn, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, tenantID, o.ID()).Return(o, nil).Once(),
		uow.On("CustomerRepository").Return(customerRepo).Once(),
		customerRepo.On("Get", ctx, tenantID, c.ID()).Return(c, nil).Once(),
		queue.On("Enqueue", ctx, mock.AnythingOfType("notification.Snapshot")).
			Return(ports.EnqueueResult{Outcome: ports.EnqueueOutcomeDegraded, Reason: "dispatch disabled"}).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockLifecycleUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewResendNotificationCommandHandler(factory, queue)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorContains(t, err, "dispatch disabled")
}

func TestResendNotificationCommandHandler_Handle_CancelledOrderRejectsLifecycleKinds(t *testing.T) {
	ctx := t.Context()

	tenantID := kernel.NewUUID()
	tn := createTestTenant(t, tenantID)
	c := createTestCustomer(t, tenantID)
	o := createTestOrder(t, tenantID, c.ID(), order.DeliveryTypeMotoboy)
	_, err := o.Cancel("customer gave up", false, time.Now())
	require.NoError(t, err)

	cmd, err := commands.NewResendNotificationCommand(tenantID, o.ID(), nil, notification.KindOrderCreated)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	tenantRepo := new(MockTenantRepository)
	queue := new(MockDispatchQueue)
	uow := new(MockLifecycleUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("TenantRepository").Return(tenantRepo).Once(),
		tenantRepo.On("Get", ctx, tenantID).Return(tn, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, tenantID, o.ID()).Return(o, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockLifecycleUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewResendNotificationCommandHandler(factory, queue)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	queue.AssertNotCalled(t, "Enqueue", mock.Anything, mock.Anything)
}

func TestResendNotificationCommandHandler_Handle_CancelledOrderAllowsCancellationKind(t *testing.T) {
	ctx := t.Context()

	tenantID := kernel.NewUUID()
	tn := createTestTenant(t, tenantID)
	c := createTestCustomer(t, tenantID)
	o := createTestOrder(t, tenantID, c.ID(), order.DeliveryTypeMotoboy)
	_, err := o.Cancel("customer gave up", false, time.Now())
	require.NoError(t, err)

	cmd, err := commands.NewResendNotificationCommand(tenantID, o.ID(), nil, notification.KindOrderCancelled)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	customerRepo := new(MockCustomerRepository)
	tenantRepo := new(MockTenantRepository)
	queue := new(MockDispatchQueue)
	uow := new(MockLifecycleUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("TenantRepository").Return(tenantRepo).Once(),
		tenantRepo.On("Get", ctx, tenantID).Return(tn, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, tenantID, o.ID()).Return(o, nil).Once(),
		uow.On("CustomerRepository").Return(customerRepo).Once(),
		customerRepo.On("Get", ctx, tenantID, c.ID()).Return(c, nil).Once(),
		queue.On("Enqueue", ctx, mock.AnythingOfType("notification.Snapshot")).Return(enqueued()).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockLifecycleUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewResendNotificationCommandHandler(factory, queue)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)

	snapshot := queue.Calls[0].Arguments[1].(notification.Snapshot)
	assert.Equal(t, notification.KindOrderCancelled, snapshot.Kind())
	queue.AssertExpectations(t)
}
