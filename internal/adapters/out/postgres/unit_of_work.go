// Package postgres provides the GORM-based Unit of Work that binds the
// order, customer, tenant, history and webhook-event repositories to one
// database transaction. Every locked transition path in the application runs
// through a unit of work created here.
//
// Lock waits inside a transaction are bounded by lockTimeout; Postgres
// reports an exceeded wait as SQLSTATE 55P03, which the order repository
// translates into a retryable Busy error.
package postgres

import (
	"context"
	"fmt"

	"flowlog/internal/adapters/out/postgres/customerrepo"
	"flowlog/internal/adapters/out/postgres/historyrepo"
	"flowlog/internal/adapters/out/postgres/orderrepo"
	"flowlog/internal/adapters/out/postgres/tenantrepo"
	"flowlog/internal/adapters/out/postgres/webhookrepo"
	"flowlog/internal/core/domain/model/kernel"
	"flowlog/internal/core/ports"

	"gorm.io/gorm"
)

// lockTimeout bounds how long a transaction waits for a contended order row
// before the database gives up with SQLSTATE 55P03.
const lockTimeout = "3s"

// trackedAggregate records an aggregate modified during the unit of work,
// available after commit for post-transaction processing.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates unit of work instances over one shared GORM
// connection pool. Each business operation gets a fresh instance with its
// own transaction state.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory bound to the given connection.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork ready for one business transaction.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction across the
// repositories it hands out. Repositories obtained before Begin run on the
// base connection; after Begin they run inside the transaction.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin starts the transaction and applies the lock timeout to it. Calling
// Begin on an already-started unit of work is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	if err := tx.Exec(fmt.Sprintf("SET LOCAL lock_timeout = '%s'", lockTimeout)).Error; err != nil {
		_ = tx.Rollback().Error
		return err
	}

	uow.tx = tx
	return nil
}

// Commit finalizes the transaction. Returns gorm.ErrInvalidTransaction when
// no transaction is active.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards the transaction. After a successful Commit it returns
// gorm.ErrInvalidTransaction, which deferred callers ignore.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// OrderRepository returns an order repository bound to the current transaction.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

// CustomerRepository returns a customer repository bound to the current transaction.
func (uow *GormUnitOfWork) CustomerRepository() ports.CustomerRepository {
	return customerrepo.NewGormCustomerRepository(uow.conn(), uow)
}

// TenantRepository returns a tenant repository bound to the current transaction.
func (uow *GormUnitOfWork) TenantRepository() ports.TenantRepository {
	return tenantrepo.NewGormTenantRepository(uow.conn(), uow)
}

// HistoryRepository returns a history repository bound to the current transaction.
func (uow *GormUnitOfWork) HistoryRepository() ports.HistoryRepository {
	return historyrepo.NewGormHistoryRepository(uow.conn())
}

// WebhookEventRepository returns a webhook dedup store bound to the current transaction.
func (uow *GormUnitOfWork) WebhookEventRepository() ports.WebhookEventRepository {
	return webhookrepo.NewGormWebhookEventRepository(uow.conn())
}

// TrackAggregate registers a modified aggregate. Called by the repositories
// on Add and Update.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}
