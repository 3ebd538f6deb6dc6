package jobs

import (
	"context"
	"log/slog"

	"flowlog/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// defaultExpirySchedule runs the sweep at the top of every hour. Pickup
// windows are measured in days, so hourly resolution is plenty.
const defaultExpirySchedule = "0 0 * * * *"

// defaultSweepLimit caps one sweep run; leftovers are picked up next hour.
const defaultSweepLimit = 500

// PickupExpiryJob schedules the pickup expiry sweep.
type PickupExpiryJob struct {
	handler  commands.ExpirePendingPickupsCommandHandler
	cron     *cron.Cron
	schedule string
	limit    int
	logger   *slog.Logger
}

// NewPickupExpiryJob creates the scheduled sweep. An empty schedule or
// non-positive limit falls back to the defaults.
func NewPickupExpiryJob(
	handler commands.ExpirePendingPickupsCommandHandler,
	schedule string,
	limit int,
	logger *slog.Logger,
) *PickupExpiryJob {
	if schedule == "" {
		schedule = defaultExpirySchedule
	}
	if limit <= 0 {
		limit = defaultSweepLimit
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PickupExpiryJob{
		handler:  handler,
		cron:     cron.New(cron.WithSeconds()),
		schedule: schedule,
		limit:    limit,
		logger:   logger.With("component", "pickup_expiry_job"),
	}
}

// Start begins running the sweep on its schedule.
func (j *PickupExpiryJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()

		cmd, err := commands.NewExpirePendingPickupsCommand(j.limit)
		if err != nil {
			j.logger.ErrorContext(ctx, "Pickup expiry sweep could not be built", "error", err)
			return
		}

		expired, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Pickup expiry sweep failed", "error", err)
			return
		}
		if expired > 0 {
			j.logger.InfoContext(ctx, "Pickup expiry sweep finished", "expired", expired)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Pickup expiry job started", "schedule", j.schedule)
	return nil
}

// Stop stops the scheduled sweep.
func (j *PickupExpiryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Pickup expiry job stopped")
}
