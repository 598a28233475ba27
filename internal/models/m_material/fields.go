package m_material

// Field name constants for the materials table.
const (
	TableName = "materials"

	ID                = "id"
	SapMaterialNumber = "sap_material_number"
	Description       = "description"
	DescriptionShort  = "description_short"
	MaterialType      = "material_type"
	MaterialGroup     = "material_group"
	BaseUnit          = "base_unit"
	Weight            = "weight"
	WeightUnit        = "weight_unit"
	Volume            = "volume"
	VolumeUnit        = "volume_unit"
	IsActive          = "is_active"
	SourceData        = "source_data"
	LastSyncAt        = "last_sync_at"
	CreatedAt         = "created_at"
	UpdatedAt         = "updated_at"
)

// Columns lists every column in insert order.
var Columns = []string{
	ID, SapMaterialNumber, Description, DescriptionShort,
	MaterialType, MaterialGroup, BaseUnit,
	Weight, WeightUnit, Volume, VolumeUnit,
	IsActive, SourceData, LastSyncAt, CreatedAt, UpdatedAt,
}
