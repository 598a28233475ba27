package m_customer_material

// Field name constants for the customer_materials table.
const (
	TableName = "customer_materials"

	ID             = "id"
	CustomerID     = "customer_id"
	MaterialID     = "material_id"
	SalesOrg       = "sales_org"
	Posnr          = "posnr"
	Price          = "price"
	Currency       = "currency"
	PriceUnit      = "price_unit"
	Weight         = "weight"
	WeightUnit     = "weight_unit"
	Volume         = "volume"
	VolumeUnit     = "volume_unit"
	IsAvailable    = "is_available"
	MinOrderQty    = "minimum_order_quantity"
	LeadTimeDays   = "lead_time_days"
	PriceData      = "price_data"
	PriceUpdatedAt = "price_updated_at"
	CreatedAt      = "created_at"
	UpdatedAt      = "updated_at"
)

// Columns lists every column in insert order.
var Columns = []string{
	ID, CustomerID, MaterialID, SalesOrg, Posnr,
	Price, Currency, PriceUnit,
	Weight, WeightUnit, Volume, VolumeUnit,
	IsAvailable, MinOrderQty, LeadTimeDays,
	PriceData, PriceUpdatedAt, CreatedAt, UpdatedAt,
}
