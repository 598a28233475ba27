package m_customer_material

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents the database model for the customer_materials table.
type Data struct {
	ID             string           `spanner:"id"`
	CustomerID     string           `spanner:"customer_id"`
	MaterialID     string           `spanner:"material_id"`
	SalesOrg       string           `spanner:"sales_org"`
	Posnr          spanner.NullString `spanner:"posnr"`
	Price          string           `spanner:"price"`
	Currency       string           `spanner:"currency"`
	PriceUnit      string           `spanner:"price_unit"`
	Weight         float64          `spanner:"weight"`
	WeightUnit     string           `spanner:"weight_unit"`
	Volume         float64          `spanner:"volume"`
	VolumeUnit     string           `spanner:"volume_unit"`
	IsAvailable    bool             `spanner:"is_available"`
	MinOrderQty    int64            `spanner:"minimum_order_quantity"`
	LeadTimeDays   int64            `spanner:"lead_time_days"`
	PriceData      string           `spanner:"price_data"`
	PriceUpdatedAt spanner.NullTime `spanner:"price_updated_at"`
	CreatedAt      time.Time        `spanner:"created_at"`
	UpdatedAt      time.Time        `spanner:"updated_at"`
}
