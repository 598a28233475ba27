package contracts

import "time"

// ProgressDTO is the read-side view of one sync run.
type ProgressDTO struct {
	SyncID                    string
	CustomerID                string
	SalesOrg                  string
	Status                    string
	TotalMaterials            int
	ProcessedMaterials        int
	PercentComplete           float64
	StartedAt                 time.Time
	ElapsedSeconds            int
	EstimatedRemainingSeconds *int // nil when no estimate is possible
	ErrorMessage              string
}
