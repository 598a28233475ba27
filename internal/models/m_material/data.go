package m_material

import "time"

// Data represents the database model for the materials table.
type Data struct {
	ID                string    `spanner:"id"`
	SapMaterialNumber string    `spanner:"sap_material_number"`
	Description       string    `spanner:"description"`
	DescriptionShort  string    `spanner:"description_short"`
	MaterialType      string    `spanner:"material_type"`
	MaterialGroup     string    `spanner:"material_group"`
	BaseUnit          string    `spanner:"base_unit"`
	Weight            float64   `spanner:"weight"`
	WeightUnit        string    `spanner:"weight_unit"`
	Volume            float64   `spanner:"volume"`
	VolumeUnit        string    `spanner:"volume_unit"`
	IsActive          bool      `spanner:"is_active"`
	SourceData        string    `spanner:"source_data"`
	LastSyncAt        time.Time `spanner:"last_sync_at"`
	CreatedAt         time.Time `spanner:"created_at"`
	UpdatedAt         time.Time `spanner:"updated_at"`
}
