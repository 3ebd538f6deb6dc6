package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"flowlog/internal/core/domain/model/kernel"
	"flowlog/internal/core/domain/model/notification"
	"flowlog/internal/core/ports"
	"flowlog/internal/pkg/errs"
)

// NotificationWorkerConfig tunes the dispatch worker. Zero values fall back
// to the defaults below.
type NotificationWorkerConfig struct {
	// PollInterval is how often the worker checks the queue for due jobs.
	PollInterval time.Duration
	// BatchSize caps how many jobs one poll claims.
	BatchSize int
	// PoolSize is how many jobs are delivered concurrently within a batch.
	PoolSize int
	// MaxAttempts is the retry budget before a job is failed for good.
	MaxAttempts int
	// BackoffBase is the delay before the first retry; it doubles per
	// attempt up to BackoffCap.
	BackoffBase time.Duration
	BackoffCap  time.Duration
}

const (
	defaultPollInterval = 5 * time.Second
	defaultBatchSize    = 20
	defaultPoolSize     = 4
	defaultMaxAttempts  = 5
	defaultBackoffBase  = 30 * time.Second
	defaultBackoffCap   = time.Hour
)

func (c NotificationWorkerConfig) withDefaults() NotificationWorkerConfig {
	if c.PollInterval <= 0 {
		c.PollInterval = defaultPollInterval
	}
	if c.BatchSize <= 0 {
		c.BatchSize = defaultBatchSize
	}
	if c.PoolSize <= 0 {
		c.PoolSize = defaultPoolSize
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = defaultMaxAttempts
	}
	if c.BackoffBase <= 0 {
		c.BackoffBase = defaultBackoffBase
	}
	if c.BackoffCap <= 0 {
		c.BackoffCap = defaultBackoffCap
	}
	return c
}

// NotificationWorker drains the dispatch queue: it claims due jobs in
// batches, re-checks the tenant's toggles at send time, delivers the frozen
// snapshot through the message channel and appends one log row per attempt.
//
// The tenant check runs at delivery time on purpose: a tenant that turned
// notifications off after a job was enqueued gets a blocked log entry, not
// a message.
type NotificationWorker struct {
	jobs    ports.DispatchJobRepository
	tenants ports.TenantRepository
	logs    ports.NotificationLogRepository
	client  ports.MessageClient
	cfg     NotificationWorkerConfig
	logger  *slog.Logger
	now     func() time.Time

	cancel context.CancelFunc
	done   chan struct{}
}

// NewNotificationWorker creates a dispatch worker.
func NewNotificationWorker(
	jobs ports.DispatchJobRepository,
	tenants ports.TenantRepository,
	logs ports.NotificationLogRepository,
	client ports.MessageClient,
	cfg NotificationWorkerConfig,
	logger *slog.Logger,
) *NotificationWorker {
	if logger == nil {
		logger = slog.Default()
	}
	return &NotificationWorker{
		jobs:    jobs,
		tenants: tenants,
		logs:    logs,
		client:  client,
		cfg:     cfg.withDefaults(),
		logger:  logger.With("component", "notification_worker"),
		now:     time.Now,
	}
}

// Start launches the polling loop in the background.
func (w *NotificationWorker) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel
	w.done = make(chan struct{})

	go w.run(ctx)

	w.logger.InfoContext(ctx, "Notification worker started",
		"poll_interval", w.cfg.PollInterval, "pool_size", w.cfg.PoolSize)
	return nil
}

// Stop halts polling and waits for in-flight deliveries to finish.
func (w *NotificationWorker) Stop() {
	if w.cancel == nil {
		return
	}
	w.cancel()
	<-w.done
	w.logger.Info("Notification worker stopped")
}

func (w *NotificationWorker) run(ctx context.Context) {
	defer close(w.done)

	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.drainDue(ctx)
		}
	}
}

// drainDue claims and processes batches until the queue has nothing due,
// so a backlog clears faster than one batch per poll interval.
func (w *NotificationWorker) drainDue(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}

		batch, err := w.jobs.ClaimDueBatch(ctx, w.cfg.BatchSize)
		if err != nil {
			w.logger.ErrorContext(ctx, "Claiming dispatch jobs failed", "error", err)
			return
		}
		if len(batch) == 0 {
			return
		}

		w.deliverBatch(ctx, batch)

		if len(batch) < w.cfg.BatchSize {
			return
		}
	}
}

func (w *NotificationWorker) deliverBatch(ctx context.Context, batch []*notification.Job) {
	queue := make(chan *notification.Job)
	var wg sync.WaitGroup

	for range w.cfg.PoolSize {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range queue {
				w.process(ctx, job)
			}
		}()
	}

	for _, job := range batch {
		queue <- job
	}
	close(queue)
	wg.Wait()
}

func (w *NotificationWorker) process(ctx context.Context, job *notification.Job) {
	snapshot := job.Snapshot()
	attempt := job.Attempts() + 1

	tn, err := w.tenants.Get(ctx, snapshot.TenantID())
	if err != nil {
		// Infrastructure failure, not a delivery verdict: retry later
		// without an audit row.
		w.logger.ErrorContext(ctx, "Tenant lookup failed",
			"order_code", snapshot.OrderCode(), "error", err)
		job.RecordFailure("tenant lookup failed: "+err.Error(), w.retryAt(attempt), w.cfg.MaxAttempts)
		w.save(ctx, job)
		return
	}

	if !tn.IsActive() || !tn.Settings().CanNotify(snapshot.Kind()) {
		w.record(ctx, snapshot, notification.LogStatusBlocked, attempt, "", "")
		job.Complete()
		w.save(ctx, job)
		return
	}

	receipt, err := w.client.SendText(ctx, snapshot.RecipientPhone().String(), snapshot.RenderedMessage())
	if err != nil {
		if attempt >= w.cfg.MaxAttempts {
			// The retry budget is spent: the verdict recorded alongside the
			// job names the exhausted attempts, not just the last transport
			// hiccup.
			err = errs.NewDeliveryFailedError(string(snapshot.Kind()), attempt, err)
		}
		w.logger.WarnContext(ctx, "Message delivery failed",
			"order_code", snapshot.OrderCode(), "kind", string(snapshot.Kind()),
			"attempt", attempt, "error", err)
		w.record(ctx, snapshot, notification.LogStatusFailed, attempt, "", err.Error())
		job.RecordFailure(err.Error(), w.retryAt(attempt), w.cfg.MaxAttempts)
		w.save(ctx, job)
		return
	}

	w.record(ctx, snapshot, notification.LogStatusSent, attempt, receipt.ProviderMessageID, "")
	job.Complete()
	w.save(ctx, job)
}

// retryAt schedules the next attempt with exponential backoff: base after
// the first failure, doubling per attempt, capped.
func (w *NotificationWorker) retryAt(attempt int) time.Time {
	delay := w.cfg.BackoffBase
	for i := 1; i < attempt; i++ {
		delay *= 2
		if delay >= w.cfg.BackoffCap {
			delay = w.cfg.BackoffCap
			break
		}
	}
	return w.now().UTC().Add(delay)
}

func (w *NotificationWorker) record(
	ctx context.Context,
	snapshot notification.Snapshot,
	status notification.LogStatus,
	attempt int,
	providerMessageID string,
	lastError string,
) {
	entry, err := notification.NewLog(
		kernel.NewUUID(), snapshot, status, attempt,
		providerMessageID, lastError, w.now().UTC(),
	)
	if err != nil {
		w.logger.ErrorContext(ctx, "Building notification log entry failed",
			"order_code", snapshot.OrderCode(), "error", err)
		return
	}
	if err := w.logs.Add(ctx, entry); err != nil {
		w.logger.ErrorContext(ctx, "Writing notification log entry failed",
			"order_code", snapshot.OrderCode(), "error", err)
	}
}

func (w *NotificationWorker) save(ctx context.Context, job *notification.Job) {
	if err := w.jobs.Save(ctx, job); err != nil {
		w.logger.ErrorContext(ctx, "Saving dispatch job failed",
			"job_id", job.ID().String(), "error", err)
	}
}
