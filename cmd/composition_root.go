package cmd

import (
	"log/slog"

	httpin "flowlog/internal/adapters/in/http"
	"flowlog/internal/adapters/out/postgres"
	"flowlog/internal/adapters/out/postgres/dispatchrepo"
	"flowlog/internal/adapters/out/postgres/notificationrepo"
	"flowlog/internal/adapters/out/postgres/tenantrepo"
	"flowlog/internal/adapters/out/whatsapp"
	"flowlog/internal/core/application/usecases/commands"
	"flowlog/internal/core/application/usecases/queries"
	"flowlog/internal/core/domain/model/kernel"
	"flowlog/internal/core/ports"
	"flowlog/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters into command handlers, query handlers and
// background jobs. One instance per process.
type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	queue      ports.DispatchQueue
	logger     *slog.Logger
}

// NewCompositionRoot creates the root over an open database handle.
func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	if logger == nil {
		logger = slog.Default()
	}
	return CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		queue:      dispatchrepo.NewGormDispatchQueue(gormDB, cfg.DispatchDisabled, logger),
		logger:     logger,
	}
}

func (c *CompositionRoot) lifecycleUoWFactory() commands.LifecycleUoWFactory {
	return FuncLifecycleUoWFactory(func() commands.LifecycleUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) webhookUoWFactory() commands.WebhookUoWFactory {
	return FuncWebhookUoWFactory(func() commands.WebhookUoW {
		return c.uowFactory.Create()
	})
}

// CreateHTTPHandlers builds the full handler set the HTTP server dispatches to.
func (c *CompositionRoot) CreateHTTPHandlers() httpin.Handlers {
	factory := c.lifecycleUoWFactory()

	return httpin.Handlers{
		CreateOrder:        commands.NewCreateOrderCommandHandler(factory, c.queue),
		ConfirmOrder:       commands.NewConfirmOrderCommandHandler(factory, c.queue),
		ShipOrder:          commands.NewShipOrderCommandHandler(factory, c.queue),
		MarkOutForDelivery: commands.NewMarkOutForDeliveryCommandHandler(factory, c.queue),
		MarkReadyForPickup: commands.NewMarkReadyForPickupCommandHandler(factory, c.queue),
		MarkPickedUp:       commands.NewMarkPickedUpCommandHandler(factory, c.queue),
		MarkDelivered:      commands.NewMarkDeliveredCommandHandler(factory, c.queue),
		MarkFailedAttempt:  commands.NewMarkFailedAttemptCommandHandler(factory, c.queue),
		MarkAsPaid:         commands.NewMarkAsPaidCommandHandler(factory, c.queue),
		CancelOrder:        commands.NewCancelOrderCommandHandler(factory, c.queue),
		ReturnOrder:        commands.NewReturnOrderCommandHandler(factory, c.queue),
		ChangeDeliveryType: commands.NewChangeDeliveryTypeCommandHandler(factory, c.queue),
		ResendNotification: commands.NewResendNotificationCommandHandler(factory, c.queue),
		PaymentWebhook:     commands.NewProcessPaymentWebhookCommandHandler(c.webhookUoWFactory(), c.queue, c.logger),

		GetOrder:                queries.NewGetOrderQueryHandler(c.gormDB),
		ListOrders:              queries.NewListOrdersQueryHandler(c.gormDB),
		ListFailedNotifications: queries.NewListFailedNotificationsQueryHandler(c.gormDB),
	}
}

// CreateJobManager builds the dispatch worker and the pickup expiry sweep.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	worker := jobs.NewNotificationWorker(
		dispatchrepo.NewGormDispatchJobRepository(c.gormDB),
		tenantrepo.NewGormTenantRepository(c.gormDB, noopTracker{}),
		notificationrepo.NewGormNotificationLogRepository(c.gormDB),
		whatsapp.NewClient(whatsapp.Config{
			BaseURL:  c.cfg.WhatsAppBaseURL,
			Instance: c.cfg.WhatsAppInstance,
			APIKey:   c.cfg.WhatsAppAPIKey,
			Timeout:  c.cfg.WhatsAppTimeout,
		}),
		jobs.NotificationWorkerConfig{
			PollInterval: c.cfg.WorkerPollInterval,
			BatchSize:    c.cfg.WorkerBatchSize,
			PoolSize:     c.cfg.WorkerPoolSize,
			MaxAttempts:  c.cfg.WorkerMaxAttempts,
			BackoffBase:  c.cfg.WorkerBackoffBase,
			BackoffCap:   c.cfg.WorkerBackoffCap,
		},
		c.logger,
	)

	expiryHandler := commands.NewExpirePendingPickupsCommandHandler(
		c.lifecycleUoWFactory(), c.queue, c.logger,
	)
	expiryJob := jobs.NewPickupExpiryJob(
		expiryHandler,
		c.cfg.PickupExpirySchedule,
		c.cfg.PickupExpirySweepLimit,
		c.logger,
	)

	return jobs.NewJobManager(worker, expiryJob)
}

// FuncLifecycleUoWFactory adapts a closure to commands.LifecycleUoWFactory.
type FuncLifecycleUoWFactory func() commands.LifecycleUoW

// Create returns a new lifecycle unit of work.
func (f FuncLifecycleUoWFactory) Create() commands.LifecycleUoW {
	return f()
}

// FuncWebhookUoWFactory adapts a closure to commands.WebhookUoWFactory.
type FuncWebhookUoWFactory func() commands.WebhookUoW

// Create returns a new webhook unit of work.
func (f FuncWebhookUoWFactory) Create() commands.WebhookUoW {
	return f()
}

// noopTracker backs repositories used outside a unit of work: the worker's
// tenant reads have no transaction to register aggregates with.
type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.UUID, any) {}
