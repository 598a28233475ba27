package repo

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/sapsync-service/internal/app/sync/contracts"
	"github.com/light-bringer/sapsync-service/internal/app/sync/domain"
	"github.com/light-bringer/sapsync-service/internal/models/m_sync_progress"
	"github.com/light-bringer/sapsync-service/internal/pkg/clock"
)

// ProgressRepo implements SyncProgressRepository for Spanner.
type ProgressRepo struct {
	client *spanner.Client
	model  *m_sync_progress.Model
	clock  clock.Clock
}

// NewProgressRepo creates a new ProgressRepo.
func NewProgressRepo(client *spanner.Client, clk clock.Clock) contracts.SyncProgressRepository {
	return &ProgressRepo{
		client: client,
		model:  m_sync_progress.NewModel(),
		clock:  clk,
	}
}

// InsertMut creates a mutation inserting a new sync run row.
func (r *ProgressRepo) InsertMut(progress *domain.SyncProgress) (*spanner.Mutation, error) {
	if progress.ID() == "" {
		return nil, fmt.Errorf("sync progress is missing an id")
	}

	data := &m_sync_progress.Data{
		SyncID:             progress.ID(),
		CustomerID:         progress.CustomerID(),
		SalesOrg:           progress.SalesOrg(),
		TotalMaterials:     int64(progress.TotalMaterials()),
		ProcessedMaterials: int64(progress.ProcessedMaterials()),
		Status:             string(progress.Status()),
		StartedAt:          progress.StartedAt(),
		ErrorMessage:       progress.ErrorMessage(),
	}
	if !progress.CompletedAt().IsZero() {
		data.CompletedAt = spanner.NullTime{Time: progress.CompletedAt(), Valid: true}
	}

	return r.model.InsertMut(data), nil
}

// GetByID retrieves one sync run.
func (r *ProgressRepo) GetByID(ctx context.Context, syncID string) (*domain.SyncProgress, error) {
	stmt := spanner.Statement{
		SQL:    "SELECT * FROM sync_progress WHERE sync_id = @sync_id",
		Params: map[string]interface{}{"sync_id": syncID},
	}
	return r.queryOne(ctx, stmt)
}

// GetLatestForCustomer retrieves the most recently started run for a customer.
func (r *ProgressRepo) GetLatestForCustomer(ctx context.Context, customerID, salesOrg string) (*domain.SyncProgress, error) {
	stmt := spanner.Statement{
		SQL: "SELECT * FROM sync_progress " +
			"WHERE customer_id = @customer_id AND sales_org = @sales_org " +
			"ORDER BY started_at DESC LIMIT 1",
		Params: map[string]interface{}{
			"customer_id": customerID,
			"sales_org":   salesOrg,
		},
	}
	return r.queryOne(ctx, stmt)
}

// IncrementProcessed adds one to the processed counter with a single DML
// statement so concurrent price tasks never lose an increment, and flips the
// run to completed inside the same transaction once the counter reaches the
// total.
func (r *ProgressRepo) IncrementProcessed(ctx context.Context, syncID string) (int, int, error) {
	var processed, total int64

	_, err := r.client.ReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		update := spanner.Statement{
			SQL: "UPDATE sync_progress SET processed_materials = processed_materials + 1 " +
				"WHERE sync_id = @sync_id " +
				"THEN RETURN processed_materials, total_materials, status",
			Params: map[string]interface{}{"sync_id": syncID},
		}

		iter := txn.Query(ctx, update)
		defer iter.Stop()

		row, err := iter.Next()
		if err == iterator.Done {
			return domain.ErrSyncRunNotFound
		}
		if err != nil {
			return err
		}

		var status string
		if err := row.Columns(&processed, &total, &status); err != nil {
			return err
		}

		if processed >= total && status == string(domain.SyncInProgress) {
			complete := spanner.Statement{
				SQL: "UPDATE sync_progress SET status = @status, completed_at = @completed_at " +
					"WHERE sync_id = @sync_id",
				Params: map[string]interface{}{
					"status":       string(domain.SyncCompleted),
					"completed_at": r.clock.Now(),
					"sync_id":      syncID,
				},
			}
			if _, err := txn.Update(ctx, complete); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if err == domain.ErrSyncRunNotFound {
			return 0, 0, err
		}
		return 0, 0, fmt.Errorf("failed to increment sync progress: %w", err)
	}

	return int(processed), int(total), nil
}

// MarkFailed sets the run to failed with the terminal error message.
func (r *ProgressRepo) MarkFailed(ctx context.Context, syncID, message string) error {
	_, err := r.client.ReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		stmt := spanner.Statement{
			SQL: "UPDATE sync_progress SET status = @status, error_message = @message, completed_at = @completed_at " +
				"WHERE sync_id = @sync_id",
			Params: map[string]interface{}{
				"status":       string(domain.SyncFailed),
				"message":      message,
				"completed_at": r.clock.Now(),
				"sync_id":      syncID,
			},
		}
		count, err := txn.Update(ctx, stmt)
		if err != nil {
			return err
		}
		if count == 0 {
			return domain.ErrSyncRunNotFound
		}
		return nil
	})
	if err != nil {
		if err == domain.ErrSyncRunNotFound {
			return err
		}
		return fmt.Errorf("failed to mark sync run failed: %w", err)
	}
	return nil
}

// FailStaleRuns marks abandoned in_progress runs as failed. A run is
// abandoned when it started before the cutoff and never reached a terminal
// status, usually because the orchestrating process crashed mid-run.
func (r *ProgressRepo) FailStaleRuns(ctx context.Context, cutoff time.Time) (int64, error) {
	var affected int64

	_, err := r.client.ReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		stmt := spanner.Statement{
			SQL: "UPDATE sync_progress SET status = @failed, error_message = @message, completed_at = @completed_at " +
				"WHERE status = @in_progress AND started_at < @cutoff",
			Params: map[string]interface{}{
				"failed":       string(domain.SyncFailed),
				"message":      "sync run abandoned: no progress before stale cutoff",
				"completed_at": r.clock.Now(),
				"in_progress":  string(domain.SyncInProgress),
				"cutoff":       cutoff,
			},
		}
		count, err := txn.Update(ctx, stmt)
		if err != nil {
			return err
		}
		affected = count
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to reap stale sync runs: %w", err)
	}
	return affected, nil
}

func (r *ProgressRepo) queryOne(ctx context.Context, stmt spanner.Statement) (*domain.SyncProgress, error) {
	iter := r.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	if err == iterator.Done {
		return nil, domain.ErrSyncRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read sync progress: %w", err)
	}

	var data m_sync_progress.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse sync progress: %w", err)
	}

	var completedAt time.Time
	if data.CompletedAt.Valid {
		completedAt = data.CompletedAt.Time
	}

	return domain.ReconstructSyncProgress(
		data.SyncID, data.CustomerID, data.SalesOrg,
		int(data.TotalMaterials), int(data.ProcessedMaterials),
		domain.SyncStatus(data.Status),
		data.StartedAt, completedAt,
		data.ErrorMessage,
		r.clock,
	), nil
}
