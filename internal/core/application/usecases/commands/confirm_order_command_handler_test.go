package commands_test

import (
	"errors"
	"testing"

	"flowlog/internal/core/application/usecases/commands"
	"flowlog/internal/core/domain/model/kernel"
	"flowlog/internal/core/domain/model/notification"
	"flowlog/internal/core/domain/model/order"
	"flowlog/internal/core/domain/model/tenant"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestConfirmOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	tenantID := kernel.NewUUID()
	tn := createTestTenant(t, tenantID)
	c := createTestCustomer(t, tenantID)
	o := createTestOrder(t, tenantID, c.ID(), order.DeliveryTypeMotoboy)

	cmd, err := commands.NewConfirmOrderCommand(tenantID, o.ID(), nil)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	customerRepo := new(MockCustomerRepository)
	tenantRepo := new(MockTenantRepository)
	historyRepo := new(MockHistoryRepository)
	queue := new(MockDispatchQueue)
	uow := new(MockLifecycleUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("TenantRepository").Return(tenantRepo).Once(),
		tenantRepo.On("Get", ctx, tenantID).Return(tn, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", ctx, tenantID, o.ID()).Return(o, nil).Once(),
		uow.On("CustomerRepository").Return(customerRepo).Once(),
		customerRepo.On("Get", ctx, tenantID, c.ID()).Return(c, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("HistoryRepository").Return(historyRepo).Once(),
		historyRepo.On("Add", ctx, mock.AnythingOfType("*order.History")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		queue.On("Enqueue", ctx, mock.AnythingOfType("notification.Snapshot")).Return(enqueued()).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockLifecycleUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewConfirmOrderCommandHandler(factory, queue)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.OrderStatusConfirmed, o.Status())

	history := historyRepo.Calls[0].Arguments[1].(*order.History)
	assert.Equal(t, notification.KindOrderConfirmed, history.Kind())
	assert.Equal(t, order.OrderStatusPending, history.OrderStatusFrom())
	assert.Equal(t, order.OrderStatusConfirmed, history.OrderStatusTo())

	snapshot := queue.Calls[0].Arguments[1].(notification.Snapshot)
	assert.Equal(t, notification.KindOrderConfirmed, snapshot.Kind())
	assert.Equal(t, o.ID(), snapshot.OrderID())

	orderRepo.AssertExpectations(t)
	historyRepo.AssertExpectations(t)
	queue.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestConfirmOrderCommandHandler_Handle_AlreadyConfirmedIsNoOp(t *testing.T) {
	ctx := t.Context()

	tenantID := kernel.NewUUID()
	tn := createTestTenant(t, tenantID)
	c := createTestCustomer(t, tenantID)
	o := createTestOrder(t, tenantID, c.ID(), order.DeliveryTypeMotoboy)
	_, err := o.Confirm()
	require.NoError(t, err)

	cmd, err := commands.NewConfirmOrderCommand(tenantID, o.ID(), nil)
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
		orderRepo.On("GetForUpdate", ctx, tenantID, o.ID()).Return(o, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockLifecycleUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewConfirmOrderCommandHandler(factory, queue)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	queue.AssertNotCalled(t, "Enqueue", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.AssertExpectations(t)
}

func TestConfirmOrderCommandHandler_Handle_InactiveTenant(t *testing.T) {
	ctx := t.Context()

	tenantID := kernel.NewUUID()
	tn := createTestTenant(t, tenantID)
	tn.Deactivate()

	cmd, err := commands.NewConfirmOrderCommand(tenantID, kernel.NewUUID(), nil)
	require.NoError(t, err)

	tenantRepo := new(MockTenantRepository)
	queue := new(MockDispatchQueue)
	uow := new(MockLifecycleUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("TenantRepository").Return(tenantRepo).Once(),
		tenantRepo.On("Get", ctx, tenantID).Return(tn, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockLifecycleUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewConfirmOrderCommandHandler(factory, queue)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, tenant.ErrTenantIsInactive)
	queue.AssertNotCalled(t, "Enqueue", mock.Anything, mock.Anything)
}

func TestConfirmOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()

	factory := new(MockLifecycleUoWFactory)
	queue := new(MockDispatchQueue)

	handler := commands.NewConfirmOrderCommandHandler(factory, queue)
	err := handler.Handle(ctx, commands.ConfirmOrderCommand{})

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrConfirmOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestConfirmOrderCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()

	tenantID := kernel.NewUUID()
	tn := createTestTenant(t, tenantID)
	c := createTestCustomer(t, tenantID)
	o := createTestOrder(t, tenantID, c.ID(), order.DeliveryTypeMotoboy)

	cmd, err := commands.NewConfirmOrderCommand(tenantID, o.ID(), nil)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	customerRepo := new(MockCustomerRepository)
	tenantRepo := new(MockTenantRepository)
	historyRepo := new(MockHistoryRepository)
	queue := new(MockDispatchQueue)
	uow := new(MockLifecycleUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("TenantRepository").Return(tenantRepo).Once(),
		tenantRepo.On("Get", ctx, tenantID).Return(tn, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", ctx, tenantID, o.ID()).Return(o, nil).Once(),
		uow.On("CustomerRepository").Return(customerRepo).Once(),
		customerRepo.On("Get", ctx, tenantID, c.ID()).Return(c, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("HistoryRepository").Return(historyRepo).Once(),
		historyRepo.On("Add", ctx, mock.AnythingOfType("*order.History")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockLifecycleUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewConfirmOrderCommandHandler(factory, queue)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.EqualError(t, err, "commit error")
	queue.AssertNotCalled(t, "Enqueue", mock.Anything, mock.Anything)
}
