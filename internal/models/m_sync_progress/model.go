package m_sync_progress

import "cloud.google.com/go/spanner"

// Model provides type-safe operations on the sync_progress table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a mutation inserting a new sync run row.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(TableName, Columns, []interface{}{
		data.SyncID, data.CustomerID, data.SalesOrg,
		data.TotalMaterials, data.ProcessedMaterials, data.Status,
		data.StartedAt, data.CompletedAt, data.ErrorMessage,
	})
}
