package domain

import (
	"time"

	"github.com/light-bringer/sapsync-service/internal/pkg/clock"
)

// Material is shared master data: one row per sapMaterialNumber across the
// whole system, independent of which customer's sync first saw it.
type Material struct {
	id                string
	sapMaterialNumber string // MATNR
	description       string
	descriptionShort  string // MAKTX
	materialType      string // MTART
	materialGroup     string // MATKL
	baseUnit          string // MEINS
	weight            float64
	weightUnit        string // GEWEI
	volume            float64
	volumeUnit        string // VOLEH
	active            bool
	sourceData        string // raw payload, JSON
	lastSyncAt        time.Time
	createdAt         time.Time
	updatedAt         time.Time

	clock clock.Clock
}

// NewMaterial creates a material seeded with its identifying number.
func NewMaterial(id, sapMaterialNumber string, clk clock.Clock) (*Material, error) {
	if sapMaterialNumber == "" {
		return nil, ErrEmptyMaterialNumber
	}

	now := clk.Now()
	return &Material{
		id:                id,
		sapMaterialNumber: sapMaterialNumber,
		description:       "Unknown Material",
		active:            true,
		createdAt:         now,
		updatedAt:         now,
		lastSyncAt:        now,
		clock:             clk,
	}, nil
}

// ReconstructMaterial reconstitutes a Material from storage.
func ReconstructMaterial(
	id, sapMaterialNumber, description, descriptionShort string,
	materialType, materialGroup, baseUnit string,
	weight float64, weightUnit string,
	volume float64, volumeUnit string,
	active bool,
	sourceData string,
	lastSyncAt, createdAt, updatedAt time.Time,
	clk clock.Clock,
) *Material {
	return &Material{
		id:                id,
		sapMaterialNumber: sapMaterialNumber,
		description:       description,
		descriptionShort:  descriptionShort,
		materialType:      materialType,
		materialGroup:     materialGroup,
		baseUnit:          baseUnit,
		weight:            weight,
		weightUnit:        weightUnit,
		volume:            volume,
		volumeUnit:        volumeUnit,
		active:            active,
		sourceData:        sourceData,
		lastSyncAt:        lastSyncAt,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
		clock:             clk,
	}
}

// Getters
func (m *Material) ID() string                { return m.id }
func (m *Material) SapMaterialNumber() string { return m.sapMaterialNumber }
func (m *Material) Description() string       { return m.description }
func (m *Material) DescriptionShort() string  { return m.descriptionShort }
func (m *Material) MaterialType() string      { return m.materialType }
func (m *Material) MaterialGroup() string     { return m.materialGroup }
func (m *Material) BaseUnit() string          { return m.baseUnit }
func (m *Material) Weight() float64           { return m.weight }
func (m *Material) WeightUnit() string        { return m.weightUnit }
func (m *Material) Volume() float64           { return m.volume }
func (m *Material) VolumeUnit() string        { return m.volumeUnit }
func (m *Material) IsActive() bool            { return m.active }
func (m *Material) SourceData() string        { return m.sourceData }
func (m *Material) LastSyncAt() time.Time     { return m.lastSyncAt }
func (m *Material) CreatedAt() time.Time      { return m.createdAt }
func (m *Material) UpdatedAt() time.Time      { return m.updatedAt }

// UpdateFromSource fully overwrites the master-data fields from the fetched
// record and bumps lastSyncAt.
func (m *Material) UpdateFromSource(data Payload) {
	if desc := data.String("MAKTG"); desc != "" {
		m.description = desc
	}
	m.descriptionShort = data.String("MAKTX")
	m.materialType = data.String("MTART")
	m.materialGroup = data.String("MATKL")
	m.baseUnit = data.String("MEINS")
	m.weight, _ = data.Float("BRGEW")
	m.weightUnit = data.String("GEWEI")
	m.volume, _ = data.Float("VOLUM")
	m.volumeUnit = data.String("VOLEH")
	m.sourceData = data.JSON()

	now := m.clock.Now()
	m.lastSyncAt = now
	m.updatedAt = now
}

// Deactivate marks the material as no longer orderable.
func (m *Material) Deactivate() {
	m.active = false
	m.updatedAt = m.clock.Now()
}
