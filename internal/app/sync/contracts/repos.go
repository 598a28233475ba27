package contracts

import (
	"context"
	"time"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/sapsync-service/internal/app/sync/domain"
)

// CustomerRepository persists customers. Write methods return mutations for
// the caller's CommitPlan instead of applying them.
type CustomerRepository interface {
	// UpsertMut creates a mutation writing the full customer row.
	UpsertMut(customer *domain.Customer) (*spanner.Mutation, error)

	// GetBySapID retrieves a customer by its natural key.
	// Returns domain.ErrCustomerNotFound if absent.
	GetBySapID(ctx context.Context, sapCustomerID, salesOrg string) (*domain.Customer, error)
}

// MaterialRepository persists shared material master data.
type MaterialRepository interface {
	UpsertMut(material *domain.Material) (*spanner.Mutation, error)

	// GetBySapMaterialNumber retrieves a material by its globally unique number.
	// Returns domain.ErrMaterialNotFound if absent.
	GetBySapMaterialNumber(ctx context.Context, sapMaterialNumber string) (*domain.Material, error)
}

// CustomerMaterialRepository persists customer/material price associations.
type CustomerMaterialRepository interface {
	UpsertMut(cm *domain.CustomerMaterial) (*spanner.Mutation, error)

	// GetByCustomerAndMaterial retrieves the association scoped by sales org.
	// Returns domain.ErrCustomerMaterialNotFound if absent.
	GetByCustomerAndMaterial(ctx context.Context, customerID, materialID, salesOrg string) (*domain.CustomerMaterial, error)
}

// SyncProgressRepository persists sync-run trackers. IncrementProcessed is
// deliberately not mutation-based: many price tasks increment the same row
// concurrently, so the add must happen atomically inside the store.
type SyncProgressRepository interface {
	InsertMut(progress *domain.SyncProgress) (*spanner.Mutation, error)

	// GetByID returns domain.ErrSyncRunNotFound if absent.
	GetByID(ctx context.Context, syncID string) (*domain.SyncProgress, error)

	// GetLatestForCustomer returns the most recently started run for the
	// customer, or domain.ErrSyncRunNotFound.
	GetLatestForCustomer(ctx context.Context, customerID, salesOrg string) (*domain.SyncProgress, error)

	// IncrementProcessed atomically adds one to the processed counter and
	// marks the run completed in the same transaction when the counter
	// reaches the total. Returns the counter values after the add.
	IncrementProcessed(ctx context.Context, syncID string) (processed, total int, err error)

	// MarkFailed sets the run to failed with the given message.
	MarkFailed(ctx context.Context, syncID, message string) error

	// FailStaleRuns marks every in_progress run started before the cutoff as
	// failed and returns how many rows were affected.
	FailStaleRuns(ctx context.Context, cutoff time.Time) (int64, error)
}
