package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/sapsync-service/internal/pkg/clock"
)

func TestSyncProgressLifecycle(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	clk := clock.NewMockClock(start)

	sp := StartSyncProgress("sync-1", "CUST001", "100", 4, clk)
	assert.Equal(t, SyncInProgress, sp.Status())
	assert.Equal(t, 4, sp.TotalMaterials())
	assert.Equal(t, 0, sp.ProcessedMaterials())
	assert.Equal(t, start, sp.StartedAt())

	clk.Advance(10 * time.Second)
	sp.Complete()
	assert.Equal(t, SyncCompleted, sp.Status())
	assert.Equal(t, 4, sp.ProcessedMaterials())
	assert.Equal(t, start.Add(10*time.Second), sp.CompletedAt())
	assert.Equal(t, 100.0, sp.PercentComplete())
}

func TestSyncProgressFail(t *testing.T) {
	clk := clock.NewMockClock(time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))

	sp := StartSyncProgress("sync-1", "CUST001", "100", 4, clk)
	sp.Fail("material list fetch failed")

	assert.Equal(t, SyncFailed, sp.Status())
	assert.Equal(t, "material list fetch failed", sp.ErrorMessage())
	assert.False(t, sp.CompletedAt().IsZero())
}

func TestSyncProgressPercentComplete(t *testing.T) {
	clk := clock.NewMockClock(time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))

	t.Run("rounds to two decimals", func(t *testing.T) {
		sp := ReconstructSyncProgress("s", "c", "100", 3, 1,
			SyncInProgress, clk.Now(), time.Time{}, "", clk)
		assert.Equal(t, 33.33, sp.PercentComplete())
	})

	t.Run("an empty run counts as complete", func(t *testing.T) {
		sp := StartSyncProgress("s", "c", "100", 0, clk)
		assert.Equal(t, 100.0, sp.PercentComplete())
	})
}

func TestSyncProgressEstimatedRemaining(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	t.Run("no estimate before any progress", func(t *testing.T) {
		clk := clock.NewMockClock(start)
		sp := StartSyncProgress("s", "c", "100", 10, clk)
		_, ok := sp.EstimatedRemainingSeconds()
		assert.False(t, ok)
	})

	t.Run("extrapolates from throughput", func(t *testing.T) {
		clk := clock.NewMockClock(start)
		clk.Advance(20 * time.Second)
		// 4 of 10 done in 20s, so 6 more at 5s each.
		sp := ReconstructSyncProgress("s", "c", "100", 10, 4,
			SyncInProgress, start, time.Time{}, "", clk)

		remaining, ok := sp.EstimatedRemainingSeconds()
		require.True(t, ok)
		assert.Equal(t, 30, remaining)
	})

	t.Run("no estimate once terminal", func(t *testing.T) {
		clk := clock.NewMockClock(start)
		sp := ReconstructSyncProgress("s", "c", "100", 10, 10,
			SyncCompleted, start, start.Add(time.Minute), "", clk)
		_, ok := sp.EstimatedRemainingSeconds()
		assert.False(t, ok)
	})
}

func TestSyncProgressElapsedSeconds(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	clk := clock.NewMockClock(start)

	sp := StartSyncProgress("s", "c", "100", 10, clk)
	clk.Advance(42 * time.Second)
	assert.Equal(t, 42, sp.ElapsedSeconds())

	sp.Complete()
	clk.Advance(time.Hour)
	// Frozen at completion.
	assert.Equal(t, 42, sp.ElapsedSeconds())
}
