package m_customer

import "cloud.google.com/go/spanner"

// Model provides type-safe operations on the customers table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// UpsertMut creates a mutation writing the full customer row.
func (m *Model) UpsertMut(data *Data) *spanner.Mutation {
	return spanner.InsertOrUpdate(TableName, Columns, []interface{}{
		data.ID, data.SapCustomerID, data.SalesOrg,
		data.Name1, data.Name2, data.Street, data.City, data.PostalCode, data.Region, data.Country,
		data.Currency, data.Incoterms, data.ShippingCond, data.PaymentTerms, data.TaxClass, data.VatNumber,
		data.SourceData, data.LastSyncAt, data.CreatedAt, data.UpdatedAt,
	})
}
