package start_sync

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/sapsync-service/internal/app/sync/domain"
	"github.com/light-bringer/sapsync-service/internal/app/sync/usecases/sync_customer"
	"github.com/light-bringer/sapsync-service/internal/pkg/logging"
)

type fakeLocker struct {
	held       map[string]bool
	acquireErr error
	releaseErr error
	released   []string
}

func newFakeLocker() *fakeLocker {
	return &fakeLocker{held: make(map[string]bool)}
}

func (f *fakeLocker) Acquire(ctx context.Context, id domain.SyncLockID) (bool, error) {
	if f.acquireErr != nil {
		return false, f.acquireErr
	}
	if f.held[id.Key()] {
		return false, nil
	}
	f.held[id.Key()] = true
	return true, nil
}

func (f *fakeLocker) Release(ctx context.Context, id domain.SyncLockID) error {
	if f.releaseErr != nil {
		return f.releaseErr
	}
	delete(f.held, id.Key())
	f.released = append(f.released, id.Key())
	return nil
}

func (f *fakeLocker) IsLocked(ctx context.Context, id domain.SyncLockID) (bool, error) {
	return f.held[id.Key()], nil
}

type fakeSyncer struct {
	calls []*sync_customer.Request
	err   error
}

func (f *fakeSyncer) Execute(ctx context.Context, req *sync_customer.Request) error {
	f.calls = append(f.calls, req)
	return f.err
}

func TestExecute_AcquiresRunsAndReleases(t *testing.T) {
	locker := newFakeLocker()
	syncer := &fakeSyncer{}
	i := NewInteractor(locker, syncer, logging.New("error"))

	err := i.Execute(context.Background(), "100", "CUST001")
	require.NoError(t, err)

	require.Len(t, syncer.calls, 1)
	assert.Equal(t, "CUST001", syncer.calls[0].CustomerID)
	assert.Equal(t, "100", syncer.calls[0].SalesOrg)

	// Released on the way out.
	assert.Equal(t, []string{"sync_lock_100_CUST001"}, locker.released)
	assert.False(t, locker.held["sync_lock_100_CUST001"])
}

func TestExecute_HeldLockIsNoOp(t *testing.T) {
	locker := newFakeLocker()
	locker.held["sync_lock_100_CUST001"] = true

	syncer := &fakeSyncer{}
	i := NewInteractor(locker, syncer, logging.New("error"))

	err := i.Execute(context.Background(), "100", "CUST001")
	require.NoError(t, err)

	assert.Empty(t, syncer.calls)
	// The foreign holder's lock is untouched.
	assert.True(t, locker.held["sync_lock_100_CUST001"])
	assert.Empty(t, locker.released)
}

func TestExecute_LockScopeIsPerCustomerAndOrg(t *testing.T) {
	locker := newFakeLocker()
	locker.held["sync_lock_100_CUST001"] = true

	syncer := &fakeSyncer{}
	i := NewInteractor(locker, syncer, logging.New("error"))

	// Same customer under a different sales org is a separate scope.
	err := i.Execute(context.Background(), "200", "CUST001")
	require.NoError(t, err)
	assert.Len(t, syncer.calls, 1)
}

func TestExecute_LockStoreFailurePropagates(t *testing.T) {
	locker := newFakeLocker()
	locker.acquireErr = errors.New("spanner unavailable")

	syncer := &fakeSyncer{}
	i := NewInteractor(locker, syncer, logging.New("error"))

	err := i.Execute(context.Background(), "100", "CUST001")
	require.Error(t, err)
	assert.Empty(t, syncer.calls)
}

func TestExecute_ReleasesEvenWhenSyncFails(t *testing.T) {
	locker := newFakeLocker()
	syncer := &fakeSyncer{err: errors.New("fetch failed")}
	i := NewInteractor(locker, syncer, logging.New("error"))

	err := i.Execute(context.Background(), "100", "CUST001")
	require.Error(t, err)
	assert.False(t, locker.held["sync_lock_100_CUST001"])
}

func TestExecute_ReleaseFailureDoesNotMaskResult(t *testing.T) {
	locker := newFakeLocker()
	locker.releaseErr = errors.New("spanner unavailable")

	syncer := &fakeSyncer{}
	i := NewInteractor(locker, syncer, logging.New("error"))

	// The TTL will reclaim the lock; the run itself succeeded.
	err := i.Execute(context.Background(), "100", "CUST001")
	assert.NoError(t, err)
}

func TestExecute_Validation(t *testing.T) {
	i := NewInteractor(newFakeLocker(), &fakeSyncer{}, logging.New("error"))

	err := i.Execute(context.Background(), "", "CUST001")
	assert.ErrorIs(t, err, domain.ErrEmptySalesOrg)

	err = i.Execute(context.Background(), "100", "")
	assert.ErrorIs(t, err, domain.ErrEmptyCustomerID)
}
