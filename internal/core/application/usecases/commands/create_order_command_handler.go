package commands

import (
	"context"
	"errors"
	"time"

	"flowlog/internal/core/domain/model/customer"
	"flowlog/internal/core/domain/model/kernel"
	"flowlog/internal/core/domain/model/notification"
	"flowlog/internal/core/domain/model/order"
	"flowlog/internal/core/domain/services"
	"flowlog/internal/core/ports"
	"flowlog/internal/pkg/errs"
)

// CreateOrderCommandHandler handles the business logic for order creation:
// find or create the customer by phone, build the order with a fresh code,
// write the creation audit row and announce the order to the customer.
type CreateOrderCommandHandler struct {
	uowFactory LifecycleUoWFactory
	queue      ports.DispatchQueue
	builder    services.SnapshotBuilder
	now        func() time.Time
}

// NewCreateOrderCommandHandler creates a handler for order creation.
func NewCreateOrderCommandHandler(uowFactory LifecycleUoWFactory, queue ports.DispatchQueue) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		queue:      queue,
		builder:    services.NewSnapshotBuilder(),
		now:        time.Now,
	}
}

// Handle processes the order creation command.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := h.now()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	tn, err := uow.TenantRepository().Get(ctx, cmd.TenantID())
	if err != nil {
		return err
	}
	if err = tn.EnsureActive(); err != nil {
		return err
	}

	c, err := h.findOrCreateCustomer(ctx, uow.CustomerRepository(), cmd)
	if err != nil {
		return err
	}

	o, err := order.NewOrder(
		cmd.OrderID(), cmd.TenantID(), c.ID(), cmd.SellerID(),
		cmd.TotalValue(), cmd.DeliveryType(), cmd.DeliveryAddress(), cmd.Notes(), now,
	)
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return err
	}

	// creation has no prior state, the audit row records the initial triple
	transition := &order.Transition{
		Kind:               notification.KindOrderCreated,
		OrderStatusFrom:    o.Status(),
		OrderStatusTo:      o.Status(),
		PaymentStatusFrom:  o.PaymentStatus(),
		PaymentStatusTo:    o.PaymentStatus(),
		DeliveryStatusFrom: o.DeliveryStatus(),
		DeliveryStatusTo:   o.DeliveryStatus(),
	}
	history, err := order.NewHistory(kernel.NewUUID(), o, cmd.SellerID(), transition, now)
	if err != nil {
		return err
	}
	if err = uow.HistoryRepository().Add(ctx, history); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if snapshot, buildErr := h.builder.Build(notification.KindOrderCreated, o, c, tn, now); buildErr == nil {
		_ = h.queue.Enqueue(ctx, snapshot)
	}

	return nil
}

func (h *CreateOrderCommandHandler) findOrCreateCustomer(
	ctx context.Context,
	repo ports.CustomerRepository,
	cmd CreateOrderCommand,
) (*customer.Customer, error) {
	existing, err := repo.GetByPhone(ctx, cmd.TenantID(), cmd.CustomerPhone())
	if err == nil {
		if existing.Name() != cmd.CustomerName() {
			if err = existing.Rename(cmd.CustomerName()); err != nil {
				return nil, err
			}
			if err = repo.Update(ctx, existing); err != nil {
				return nil, err
			}
		}
		return existing, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	created, err := customer.NewCustomer(kernel.NewUUID(), cmd.TenantID(), cmd.CustomerName(), cmd.CustomerPhone())
	if err != nil {
		return nil, err
	}
	if err = repo.Add(ctx, created); err != nil {
		return nil, err
	}
	return created, nil
}
