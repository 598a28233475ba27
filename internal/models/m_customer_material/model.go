package m_customer_material

import "cloud.google.com/go/spanner"

// Model provides type-safe operations on the customer_materials table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// UpsertMut creates a mutation writing the full association row.
func (m *Model) UpsertMut(data *Data) *spanner.Mutation {
	return spanner.InsertOrUpdate(TableName, Columns, []interface{}{
		data.ID, data.CustomerID, data.MaterialID, data.SalesOrg, data.Posnr,
		data.Price, data.Currency, data.PriceUnit,
		data.Weight, data.WeightUnit, data.Volume, data.VolumeUnit,
		data.IsAvailable, data.MinOrderQty, data.LeadTimeDays,
		data.PriceData, data.PriceUpdatedAt, data.CreatedAt, data.UpdatedAt,
	})
}
