package m_customer

import "time"

// Data represents the database model for the customers table.
type Data struct {
	ID            string    `spanner:"id"`
	SapCustomerID string    `spanner:"sap_customer_id"`
	SalesOrg      string    `spanner:"sales_org"`
	Name1         string    `spanner:"name1"`
	Name2         string    `spanner:"name2"`
	Street        string    `spanner:"street"`
	City          string    `spanner:"city"`
	PostalCode    string    `spanner:"postal_code"`
	Region        string    `spanner:"region"`
	Country       string    `spanner:"country"`
	Currency      string    `spanner:"currency"`
	Incoterms     string    `spanner:"incoterms"`
	ShippingCond  string    `spanner:"shipping_condition"`
	PaymentTerms  string    `spanner:"payment_terms"`
	TaxClass      string    `spanner:"tax_class"`
	VatNumber     string    `spanner:"vat_number"`
	SourceData    string    `spanner:"source_data"`
	LastSyncAt    time.Time `spanner:"last_sync_at"`
	CreatedAt     time.Time `spanner:"created_at"`
	UpdatedAt     time.Time `spanner:"updated_at"`
}
