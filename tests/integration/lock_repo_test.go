//go:build integration

package integration

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/sapsync-service/internal/app/sync/domain"
	"github.com/light-bringer/sapsync-service/internal/app/sync/repo"
	"github.com/light-bringer/sapsync-service/internal/pkg/clock"
	"github.com/light-bringer/sapsync-service/tests/testutil"
)

func TestLockRepo_AcquireRelease(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	locker := repo.NewLockRepo(client, 10*time.Minute, clock.NewRealClock())

	id, err := domain.NewSyncLockID("100", "CUST001")
	require.NoError(t, err)

	acquired, err := locker.Acquire(ctx, id)
	require.NoError(t, err)
	assert.True(t, acquired)

	locked, err := locker.IsLocked(ctx, id)
	require.NoError(t, err)
	assert.True(t, locked)

	// Second attempt on the same scope must fail without error.
	acquired, err = locker.Acquire(ctx, id)
	require.NoError(t, err)
	assert.False(t, acquired)

	require.NoError(t, locker.Release(ctx, id))
	testutil.AssertRowCount(t, client, "sync_locks", 0)

	acquired, err = locker.Acquire(ctx, id)
	require.NoError(t, err)
	assert.True(t, acquired)
}

func TestLockRepo_ScopesAreIndependent(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	locker := repo.NewLockRepo(client, 10*time.Minute, clock.NewRealClock())

	first, err := domain.NewSyncLockID("100", "CUST001")
	require.NoError(t, err)
	second, err := domain.NewSyncLockID("200", "CUST001")
	require.NoError(t, err)

	acquired, err := locker.Acquire(ctx, first)
	require.NoError(t, err)
	require.True(t, acquired)

	// Same customer under another sales org is a different scope.
	acquired, err = locker.Acquire(ctx, second)
	require.NoError(t, err)
	assert.True(t, acquired)
}

func TestLockRepo_ExpiredLockIsReclaimed(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	clk := clock.NewMockClock(time.Now().UTC())
	locker := repo.NewLockRepo(client, 10*time.Minute, clk)

	id, err := domain.NewSyncLockID("100", "CUST001")
	require.NoError(t, err)

	acquired, err := locker.Acquire(ctx, id)
	require.NoError(t, err)
	require.True(t, acquired)

	// Simulate the original holder dying and the TTL passing.
	clk.Advance(11 * time.Minute)

	locked, err := locker.IsLocked(ctx, id)
	require.NoError(t, err)
	assert.False(t, locked)

	acquired, err = locker.Acquire(ctx, id)
	require.NoError(t, err)
	assert.True(t, acquired)
}

func TestLockRepo_ReleaseIsIdempotent(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	locker := repo.NewLockRepo(client, 10*time.Minute, clock.NewRealClock())

	id, err := domain.NewSyncLockID("100", "CUST001")
	require.NoError(t, err)

	assert.NoError(t, locker.Release(ctx, id))
	assert.NoError(t, locker.Release(ctx, id))
}

func TestLockRepo_ConcurrentAcquire(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	locker := repo.NewLockRepo(client, 10*time.Minute, clock.NewRealClock())

	id, err := domain.NewSyncLockID("100", "CUST001")
	require.NoError(t, err)

	const contenders = 8
	var wg sync.WaitGroup
	winners := make(chan bool, contenders)

	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			acquired, err := locker.Acquire(ctx, id)
			require.NoError(t, err)
			winners <- acquired
		}()
	}
	wg.Wait()
	close(winners)

	won := 0
	for acquired := range winners {
		if acquired {
			won++
		}
	}
	assert.Equal(t, 1, won, "exactly one contender should hold the lock")
}
