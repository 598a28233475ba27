// Package start_sync is the trigger entry point for a customer sync run. It
// wraps the customer stage in the sync-lock guard: acquire at entry, release
// on every exit path, and silently skip when another run already holds the
// lock. Sub-tasks dispatched by the pipeline never re-acquire the lock; they
// inherit protection from this guard.
package start_sync

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/light-bringer/sapsync-service/internal/app/sync/contracts"
	"github.com/light-bringer/sapsync-service/internal/app/sync/domain"
	"github.com/light-bringer/sapsync-service/internal/app/sync/usecases/sync_customer"
)

// customerSyncer runs the customer stage; satisfied by
// sync_customer.Interactor and by fakes in tests.
type customerSyncer interface {
	Execute(ctx context.Context, req *sync_customer.Request) error
}

// Interactor handles the start-sync use case.
type Interactor struct {
	locker       contracts.SyncLocker
	customerSync customerSyncer
	logger       *slog.Logger
}

// NewInteractor creates a new start-sync interactor.
func NewInteractor(locker contracts.SyncLocker, customerSync customerSyncer, logger *slog.Logger) *Interactor {
	return &Interactor{
		locker:       locker,
		customerSync: customerSync,
		logger:       logger,
	}
}

// Execute triggers a sync run for one (salesOrg, customerID). A run already
// holding the lock makes this call a complete no-op: nothing is fetched,
// written, or dispatched, and no error is returned. Lock-store failures
// propagate rather than silently granting the lock.
func (i *Interactor) Execute(ctx context.Context, salesOrg, customerID string) error {
	lockID, err := domain.NewSyncLockID(salesOrg, customerID)
	if err != nil {
		return err
	}

	log := i.logger.With("customer_id", customerID, "sales_org", salesOrg, "lock_key", lockID.Key())

	acquired, err := i.locker.Acquire(ctx, lockID)
	if err != nil {
		return fmt.Errorf("acquire sync lock: %w", err)
	}
	if !acquired {
		log.Warn("sync already in progress, skipping")
		return nil
	}
	log.Info("sync lock acquired")

	defer func() {
		if err := i.locker.Release(ctx, lockID); err != nil {
			// The TTL reclaims the lock eventually; the next run is delayed,
			// not blocked forever.
			log.Error("failed to release sync lock", "error", err)
			return
		}
		log.Debug("sync lock released")
	}()

	return i.customerSync.Execute(ctx, &sync_customer.Request{
		SalesOrg:   salesOrg,
		CustomerID: customerID,
	})
}
