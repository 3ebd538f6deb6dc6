package commands

import (
	"context"
	"time"

	"flowlog/internal/core/domain/model/customer"
	"flowlog/internal/core/domain/model/kernel"
	"flowlog/internal/core/domain/model/notification"
	"flowlog/internal/core/domain/model/order"
	"flowlog/internal/core/domain/model/tenant"
	"flowlog/internal/core/domain/services"
	"flowlog/internal/core/ports"
)

// transitionFunc applies one lifecycle operation to a locked order. A nil
// Transition means the order was already in the target state.
type transitionFunc func(o *order.Order, tn *tenant.Tenant, now time.Time) (*order.Transition, error)

// transitionExecutor is the shared engine behind every single-order
// lifecycle command. The sequence is always the same:
//
//	resolve tenant (must be active) -> Begin -> lock the order row ->
//	verify tenant ownership -> apply the operation -> append history ->
//	Commit -> build snapshot from in-memory aggregates -> enqueue.
//
// Idempotent re-entry short-circuits after the lock: nothing is written,
// nothing is enqueued, and the command reports success.
type transitionExecutor struct {
	uowFactory LifecycleUoWFactory
	queue      ports.DispatchQueue
	builder    services.SnapshotBuilder
	now        func() time.Time
}

func newTransitionExecutor(
	uowFactory LifecycleUoWFactory,
	queue ports.DispatchQueue,
	now func() time.Time,
) transitionExecutor {
	if now == nil {
		now = time.Now
	}
	return transitionExecutor{
		uowFactory: uowFactory,
		queue:      queue,
		builder:    services.NewSnapshotBuilder(),
		now:        now,
	}
}

func (e transitionExecutor) execute(
	ctx context.Context,
	tenantID kernel.UUID,
	orderID kernel.UUID,
	actorID *kernel.UUID,
	apply transitionFunc,
) error {
	now := e.now()

	uow := e.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	tn, err := uow.TenantRepository().Get(ctx, tenantID)
	if err != nil {
		return err
	}
	if err = tn.EnsureActive(); err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, tenantID, orderID)
	if err != nil {
		return err
	}
	if err = o.EnsureTenant(tenantID); err != nil {
		return err
	}

	transition, err := apply(o, tn, now)
	if err != nil {
		return err
	}
	if transition == nil {
		// already in the target state, deferred rollback releases the lock
		return nil
	}

	c, err := uow.CustomerRepository().Get(ctx, tenantID, o.CustomerID())
	if err != nil {
		return err
	}

	history, err := order.NewHistory(kernel.NewUUID(), o, actorID, transition, now)
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}
	if err = uow.HistoryRepository().Add(ctx, history); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	e.enqueueTransition(ctx, transition, o, c, tn, now)
	return nil
}

// enqueueTransition freezes and enqueues the snapshots a committed
// transition calls for. Failures degrade inside the queue; the committed
// state change stands either way.
func (e transitionExecutor) enqueueTransition(
	ctx context.Context,
	transition *order.Transition,
	o *order.Order,
	c *customer.Customer,
	tn *tenant.Tenant,
	now time.Time,
) {
	e.enqueueKind(ctx, transition.Kind, o, c, tn, now)

	// a transition that refunded the payment as a side effect (cancel or
	// return with the refund flag) announces the refund separately
	refunded := transition.PaymentStatusFrom != order.PaymentStatusRefunded &&
		transition.PaymentStatusTo == order.PaymentStatusRefunded
	if refunded && transition.Kind != notification.KindPaymentRefunded {
		e.enqueueKind(ctx, notification.KindPaymentRefunded, o, c, tn, now)
	}
}

func (e transitionExecutor) enqueueKind(
	ctx context.Context,
	kind notification.EventKind,
	o *order.Order,
	c *customer.Customer,
	tn *tenant.Tenant,
	now time.Time,
) {
	if kind == "" || e.queue == nil {
		return
	}
	snapshot, err := e.builder.Build(kind, o, c, tn, now)
	if err != nil {
		return
	}
	_ = e.queue.Enqueue(ctx, snapshot)
}

// completionPolicy derives the order completion flags from tenant settings.
func completionPolicy(tn *tenant.Tenant) order.CompletionPolicy {
	settings := tn.Settings()
	return order.CompletionPolicy{
		AllowCashOnDelivery:   settings.AllowCodCompletion,
		AutoCompleteOnPayment: settings.AutoCompleteOnPayment,
	}
}
