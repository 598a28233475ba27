package m_sync_lock

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents the database model for the sync_locks table.
type Data struct {
	LockKey    string    `spanner:"lock_key"`
	AcquiredAt time.Time `spanner:"acquired_at"`
}

// Model provides type-safe operations on the sync_locks table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// UpsertMut creates a mutation writing (or reclaiming) a lock row.
func (m *Model) UpsertMut(data *Data) *spanner.Mutation {
	return spanner.InsertOrUpdate(TableName, Columns, []interface{}{
		data.LockKey, data.AcquiredAt,
	})
}

// DeleteMut creates a mutation removing a lock row.
func (m *Model) DeleteMut(lockKey string) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{lockKey})
}
