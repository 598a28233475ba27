package m_sync_progress

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents the database model for the sync_progress table.
type Data struct {
	SyncID             string           `spanner:"sync_id"`
	CustomerID         string           `spanner:"customer_id"`
	SalesOrg           string           `spanner:"sales_org"`
	TotalMaterials     int64            `spanner:"total_materials"`
	ProcessedMaterials int64            `spanner:"processed_materials"`
	Status             string           `spanner:"status"`
	StartedAt          time.Time        `spanner:"started_at"`
	CompletedAt        spanner.NullTime `spanner:"completed_at"`
	ErrorMessage       string           `spanner:"error_message"`
}
