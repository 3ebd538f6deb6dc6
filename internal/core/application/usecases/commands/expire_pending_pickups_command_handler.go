package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"flowlog/internal/core/domain/model/order"
	"flowlog/internal/core/domain/model/tenant"
	"flowlog/internal/core/ports"
	"flowlog/internal/pkg/errs"
)

// ExpirePendingPickupsCommandHandler sweeps pickup orders whose collection
// window elapsed and cancels them. The candidate scan runs without locks;
// each candidate is then expired through the regular locked transition path,
// one transaction per order, so a slow or contended order never stalls the
// rest of the sweep.
type ExpirePendingPickupsCommandHandler struct {
	executor transitionExecutor
	logger   *slog.Logger
}

// NewExpirePendingPickupsCommandHandler creates a handler for the pickup
// expiry sweep.
func NewExpirePendingPickupsCommandHandler(
	uowFactory LifecycleUoWFactory,
	queue ports.DispatchQueue,
	logger *slog.Logger,
) ExpirePendingPickupsCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return ExpirePendingPickupsCommandHandler{
		executor: newTransitionExecutor(uowFactory, queue, nil),
		logger:   logger.With("component", "pickup_expiry"),
	}
}

// Handle expires every candidate it can and reports how many were expired.
// Orders that lost the race (collected or cancelled after the scan), busy
// rows and inactive tenants are skipped, not treated as sweep failures.
func (h *ExpirePendingPickupsCommandHandler) Handle(ctx context.Context, cmd ExpirePendingPickupsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	now := h.executor.now()

	refs, err := h.scanCandidates(ctx, now, cmd.Limit())
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, ref := range refs {
		if ctx.Err() != nil {
			return expired, ctx.Err()
		}

		err = h.executor.execute(ctx, ref.TenantID, ref.OrderID, nil,
			func(o *order.Order, _ *tenant.Tenant, applyAt time.Time) (*order.Transition, error) {
				return o.Expire(applyAt)
			})

		switch {
		case err == nil:
			expired++
		case errors.Is(err, errs.ErrInvalidTransition),
			errors.Is(err, errs.ErrObjectNotFound),
			errors.Is(err, errs.ErrBusy),
			errors.Is(err, tenant.ErrTenantIsInactive):
			h.logger.Info("pickup expiry skipped",
				"tenant_id", ref.TenantID.String(), "order_id", ref.OrderID.String(), "reason", err)
		default:
			h.logger.Error("pickup expiry failed",
				"tenant_id", ref.TenantID.String(), "order_id", ref.OrderID.String(), "error", err)
		}
	}

	return expired, nil
}

// scanCandidates reads expired pickup refs in a short read-only transaction.
func (h *ExpirePendingPickupsCommandHandler) scanCandidates(
	ctx context.Context,
	cutoff time.Time,
	limit int,
) ([]ports.ExpiredPickupRef, error) {
	uow := h.executor.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return uow.OrderRepository().GetExpiredPickupRefs(ctx, cutoff, limit)
}
