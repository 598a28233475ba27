package m_material

import "cloud.google.com/go/spanner"

// Model provides type-safe operations on the materials table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// UpsertMut creates a mutation writing the full material row.
func (m *Model) UpsertMut(data *Data) *spanner.Mutation {
	return spanner.InsertOrUpdate(TableName, Columns, []interface{}{
		data.ID, data.SapMaterialNumber, data.Description, data.DescriptionShort,
		data.MaterialType, data.MaterialGroup, data.BaseUnit,
		data.Weight, data.WeightUnit, data.Volume, data.VolumeUnit,
		data.IsActive, data.SourceData, data.LastSyncAt, data.CreatedAt, data.UpdatedAt,
	})
}
