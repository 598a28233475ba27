package m_sync_lock

// Field name constants for the sync_locks table.
const (
	TableName = "sync_locks"

	LockKey    = "lock_key"
	AcquiredAt = "acquired_at"
)

// Columns lists every column in insert order.
var Columns = []string{LockKey, AcquiredAt}
