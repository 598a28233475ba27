package domain

import (
	"math"
	"time"

	"github.com/light-bringer/sapsync-service/internal/pkg/clock"
)

// SyncStatus is the lifecycle status of a sync run.
type SyncStatus string

const (
	SyncInProgress SyncStatus = "in_progress"
	SyncCompleted  SyncStatus = "completed"
	SyncFailed     SyncStatus = "failed"
)

// SyncProgress tracks one sync run: how many materials the run fanned out to
// and how many price tasks have reached a terminal outcome. totalMaterials is
// fixed at creation; processedMaterials only ever grows, and the storage
// layer is responsible for making each increment a single atomic add (many
// price tasks increment concurrently).
type SyncProgress struct {
	id           string
	customerID   string
	salesOrg     string
	total        int
	processed    int
	status       SyncStatus
	startedAt    time.Time
	completedAt  time.Time // zero while the run is open
	errorMessage string

	clock clock.Clock
}

// StartSyncProgress creates a tracker for a run that will fan out to
// totalMaterials price tasks.
func StartSyncProgress(id, customerID, salesOrg string, totalMaterials int, clk clock.Clock) *SyncProgress {
	return &SyncProgress{
		id:         id,
		customerID: customerID,
		salesOrg:   salesOrg,
		total:      totalMaterials,
		status:     SyncInProgress,
		startedAt:  clk.Now(),
		clock:      clk,
	}
}

// ReconstructSyncProgress reconstitutes a tracker from storage.
func ReconstructSyncProgress(
	id, customerID, salesOrg string,
	total, processed int,
	status SyncStatus,
	startedAt, completedAt time.Time,
	errorMessage string,
	clk clock.Clock,
) *SyncProgress {
	return &SyncProgress{
		id:           id,
		customerID:   customerID,
		salesOrg:     salesOrg,
		total:        total,
		processed:    processed,
		status:       status,
		startedAt:    startedAt,
		completedAt:  completedAt,
		errorMessage: errorMessage,
		clock:        clk,
	}
}

// Getters
func (sp *SyncProgress) ID() string             { return sp.id }
func (sp *SyncProgress) CustomerID() string     { return sp.customerID }
func (sp *SyncProgress) SalesOrg() string       { return sp.salesOrg }
func (sp *SyncProgress) TotalMaterials() int    { return sp.total }
func (sp *SyncProgress) ProcessedMaterials() int { return sp.processed }
func (sp *SyncProgress) Status() SyncStatus     { return sp.status }
func (sp *SyncProgress) StartedAt() time.Time   { return sp.startedAt }
func (sp *SyncProgress) CompletedAt() time.Time { return sp.completedAt }
func (sp *SyncProgress) ErrorMessage() string   { return sp.errorMessage }

// Complete marks the run finished and clamps processed to total.
func (sp *SyncProgress) Complete() {
	sp.status = SyncCompleted
	sp.processed = sp.total
	sp.completedAt = sp.clock.Now()
}

// Fail marks the run failed with the terminal error message.
func (sp *SyncProgress) Fail(message string) {
	sp.status = SyncFailed
	sp.errorMessage = message
	sp.completedAt = sp.clock.Now()
}

// PercentComplete returns progress as 0..100 rounded to two decimals.
// An empty run counts as fully complete.
func (sp *SyncProgress) PercentComplete() float64 {
	if sp.total == 0 {
		return 100.0
	}
	return math.Round(float64(sp.processed)/float64(sp.total)*10000) / 100
}

// ElapsedSeconds returns seconds from start until completion, or until now
// for a run still open.
func (sp *SyncProgress) ElapsedSeconds() int {
	end := sp.completedAt
	if end.IsZero() {
		end = sp.clock.Now()
	}
	return int(end.Sub(sp.startedAt).Seconds())
}

// EstimatedRemainingSeconds extrapolates from throughput so far. It returns
// false while nothing has been processed or once the run is terminal.
func (sp *SyncProgress) EstimatedRemainingSeconds() (int, bool) {
	if sp.processed == 0 || sp.status != SyncInProgress {
		return 0, false
	}
	perItem := float64(sp.ElapsedSeconds()) / float64(sp.processed)
	remaining := float64(sp.total - sp.processed)
	return int(math.Round(remaining * perItem)), true
}
