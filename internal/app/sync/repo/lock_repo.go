package repo

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/sapsync-service/internal/app/sync/contracts"
	"github.com/light-bringer/sapsync-service/internal/app/sync/domain"
	"github.com/light-bringer/sapsync-service/internal/models/m_sync_lock"
	"github.com/light-bringer/sapsync-service/internal/pkg/clock"
)

// DefaultLockTTL is how long an acquired lock stays valid without release.
const DefaultLockTTL = 600 * time.Second

// LockRepo implements SyncLocker on a Spanner table. Acquire is a
// compare-and-swap inside a read-write transaction: read the existing row,
// fail on an unexpired record, otherwise write our own. Expired rows are
// reclaimed lazily by the next Acquire or IsLocked; no background sweep
// exists. The table is visible to every worker host, so the lock holds
// across processes.
type LockRepo struct {
	client *spanner.Client
	model  *m_sync_lock.Model
	ttl    time.Duration
	clock  clock.Clock
}

// NewLockRepo creates a LockRepo with the given TTL; ttl <= 0 selects
// DefaultLockTTL.
func NewLockRepo(client *spanner.Client, ttl time.Duration, clk clock.Clock) contracts.SyncLocker {
	if ttl <= 0 {
		ttl = DefaultLockTTL
	}
	return &LockRepo{
		client: client,
		model:  m_sync_lock.NewModel(),
		ttl:    ttl,
		clock:  clk,
	}
}

// errLockHeld flows out of the CAS transaction to signal contention; it is
// translated to (false, nil) and never escapes Acquire.
var errLockHeld = fmt.Errorf("lock held")

// Acquire takes the lock, returning false when an unexpired record exists.
func (r *LockRepo) Acquire(ctx context.Context, id domain.SyncLockID) (bool, error) {
	key := id.Key()

	_, err := r.client.ReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		row, err := txn.ReadRow(ctx, m_sync_lock.TableName, spanner.Key{key}, []string{m_sync_lock.AcquiredAt})
		switch {
		case err == nil:
			var acquiredAt time.Time
			if err := row.Column(0, &acquiredAt); err != nil {
				return err
			}
			if r.clock.Now().Sub(acquiredAt) < r.ttl {
				return errLockHeld
			}
			// Expired record: fall through and overwrite it.
		case spanner.ErrCode(err) == codes.NotFound:
			// No record: free to take.
		default:
			return err
		}

		return txn.BufferWrite([]*spanner.Mutation{
			r.model.UpsertMut(&m_sync_lock.Data{LockKey: key, AcquiredAt: r.clock.Now()}),
		})
	})
	if err != nil {
		if err == errLockHeld {
			return false, nil
		}
		return false, fmt.Errorf("failed to acquire sync lock %s: %w", key, err)
	}
	return true, nil
}

// Release drops the lock. The delete is derived purely from the key, so any
// process may release, and deleting an absent row is a no-op.
func (r *LockRepo) Release(ctx context.Context, id domain.SyncLockID) error {
	key := id.Key()
	if _, err := r.client.Apply(ctx, []*spanner.Mutation{r.model.DeleteMut(key)}); err != nil {
		return fmt.Errorf("failed to release sync lock %s: %w", key, err)
	}
	return nil
}

// IsLocked reports whether an unexpired lock record exists.
func (r *LockRepo) IsLocked(ctx context.Context, id domain.SyncLockID) (bool, error) {
	stmt := spanner.Statement{
		SQL:    "SELECT acquired_at FROM sync_locks WHERE lock_key = @lock_key",
		Params: map[string]interface{}{"lock_key": id.Key()},
	}

	iter := r.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	if err == iterator.Done {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check sync lock %s: %w", id.Key(), err)
	}

	var acquiredAt time.Time
	if err := row.Column(0, &acquiredAt); err != nil {
		return false, fmt.Errorf("failed to parse sync lock %s: %w", id.Key(), err)
	}

	return r.clock.Now().Sub(acquiredAt) < r.ttl, nil
}
