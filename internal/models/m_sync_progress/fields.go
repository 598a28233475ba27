package m_sync_progress

// Field name constants for the sync_progress table.
const (
	TableName = "sync_progress"

	SyncID             = "sync_id"
	CustomerID         = "customer_id"
	SalesOrg           = "sales_org"
	TotalMaterials     = "total_materials"
	ProcessedMaterials = "processed_materials"
	Status             = "status"
	StartedAt          = "started_at"
	CompletedAt        = "completed_at"
	ErrorMessage       = "error_message"
)

// Columns lists every column in insert order.
var Columns = []string{
	SyncID, CustomerID, SalesOrg,
	TotalMaterials, ProcessedMaterials, Status,
	StartedAt, CompletedAt, ErrorMessage,
}
