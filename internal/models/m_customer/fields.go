package m_customer

// Field name constants for the customers table.
const (
	TableName = "customers"

	ID            = "id"
	SapCustomerID = "sap_customer_id"
	SalesOrg      = "sales_org"
	Name1         = "name1"
	Name2         = "name2"
	Street        = "street"
	City          = "city"
	PostalCode    = "postal_code"
	Region        = "region"
	Country       = "country"
	Currency      = "currency"
	Incoterms     = "incoterms"
	ShippingCond  = "shipping_condition"
	PaymentTerms  = "payment_terms"
	TaxClass      = "tax_class"
	VatNumber     = "vat_number"
	SourceData    = "source_data"
	LastSyncAt    = "last_sync_at"
	CreatedAt     = "created_at"
	UpdatedAt     = "updated_at"
)

// Columns lists every column in insert order.
var Columns = []string{
	ID, SapCustomerID, SalesOrg,
	Name1, Name2, Street, City, PostalCode, Region, Country,
	Currency, Incoterms, ShippingCond, PaymentTerms, TaxClass, VatNumber,
	SourceData, LastSyncAt, CreatedAt, UpdatedAt,
}
