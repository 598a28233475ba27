package domain

import (
	"time"

	"github.com/light-bringer/sapsync-service/internal/pkg/clock"
)

// CustomerMaterial links a customer to a material with the customer-specific
// pricing returned by the source system. Uniqueness is enforced on
// (customerID, materialID, salesOrg). The row is created lazily the first
// time a price sync succeeds for the pair; afterwards only the price fields
// are mutated.
type CustomerMaterial struct {
	id          string
	customerID  string
	materialID  string
	salesOrg    string
	posnr       Posnr
	price       string // decimal as returned by the source, e.g. "12.50"
	currency    string // WAERK
	priceUnit   string // VRKME
	weight      float64
	weightUnit  string // GEWEI
	volume      float64
	volumeUnit  string // VOLEH
	available   bool
	minOrderQty int    // MINMENGE
	leadTimeDays int   // LPRIO
	priceData   string // raw price payload, JSON
	priceUpdatedAt time.Time
	createdAt   time.Time
	updatedAt   time.Time

	clock clock.Clock
}

// NewCustomerMaterial creates the association with no price yet.
func NewCustomerMaterial(id, customerID, materialID, salesOrg string, clk clock.Clock) *CustomerMaterial {
	now := clk.Now()
	return &CustomerMaterial{
		id:         id,
		customerID: customerID,
		materialID: materialID,
		salesOrg:   salesOrg,
		available:  true,
		createdAt:  now,
		updatedAt:  now,
		clock:      clk,
	}
}

// ReconstructCustomerMaterial reconstitutes an association from storage.
func ReconstructCustomerMaterial(
	id, customerID, materialID, salesOrg string,
	posnr Posnr,
	price, currency, priceUnit string,
	weight float64, weightUnit string,
	volume float64, volumeUnit string,
	available bool,
	minOrderQty, leadTimeDays int,
	priceData string,
	priceUpdatedAt, createdAt, updatedAt time.Time,
	clk clock.Clock,
) *CustomerMaterial {
	return &CustomerMaterial{
		id:             id,
		customerID:     customerID,
		materialID:     materialID,
		salesOrg:       salesOrg,
		posnr:          posnr,
		price:          price,
		currency:       currency,
		priceUnit:      priceUnit,
		weight:         weight,
		weightUnit:     weightUnit,
		volume:         volume,
		volumeUnit:     volumeUnit,
		available:      available,
		minOrderQty:    minOrderQty,
		leadTimeDays:   leadTimeDays,
		priceData:      priceData,
		priceUpdatedAt: priceUpdatedAt,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
		clock:          clk,
	}
}

// Getters
func (cm *CustomerMaterial) ID() string                { return cm.id }
func (cm *CustomerMaterial) CustomerID() string        { return cm.customerID }
func (cm *CustomerMaterial) MaterialID() string        { return cm.materialID }
func (cm *CustomerMaterial) SalesOrg() string          { return cm.salesOrg }
func (cm *CustomerMaterial) Posnr() Posnr              { return cm.posnr }
func (cm *CustomerMaterial) Price() string             { return cm.price }
func (cm *CustomerMaterial) Currency() string          { return cm.currency }
func (cm *CustomerMaterial) PriceUnit() string         { return cm.priceUnit }
func (cm *CustomerMaterial) Weight() float64           { return cm.weight }
func (cm *CustomerMaterial) WeightUnit() string        { return cm.weightUnit }
func (cm *CustomerMaterial) Volume() float64           { return cm.volume }
func (cm *CustomerMaterial) VolumeUnit() string        { return cm.volumeUnit }
func (cm *CustomerMaterial) IsAvailable() bool         { return cm.available }
func (cm *CustomerMaterial) MinOrderQty() int          { return cm.minOrderQty }
func (cm *CustomerMaterial) LeadTimeDays() int         { return cm.leadTimeDays }
func (cm *CustomerMaterial) PriceData() string         { return cm.priceData }
func (cm *CustomerMaterial) PriceUpdatedAt() time.Time { return cm.priceUpdatedAt }
func (cm *CustomerMaterial) CreatedAt() time.Time      { return cm.createdAt }
func (cm *CustomerMaterial) UpdatedAt() time.Time      { return cm.updatedAt }

// HasPosnr reports whether a position number has been recorded.
func (cm *CustomerMaterial) HasPosnr() bool { return !cm.posnr.IsZero() }

// SetPosnr records the position number used for the price lookup.
func (cm *CustomerMaterial) SetPosnr(p Posnr) {
	cm.posnr = p
	cm.updatedAt = cm.clock.Now()
}

// UpdatePrice overwrites the price fields from the fetched price payload and
// stamps priceUpdatedAt.
func (cm *CustomerMaterial) UpdatePrice(price, currency string, priceData Payload) {
	cm.price = price
	cm.currency = currency
	cm.priceUnit = priceData.String("VRKME")
	cm.weight, _ = priceData.Float("BRGEW")
	cm.weightUnit = priceData.String("GEWEI")
	cm.volume, _ = priceData.Float("VOLUM")
	cm.volumeUnit = priceData.String("VOLEH")
	cm.minOrderQty, _ = priceData.Int("MINMENGE")
	cm.leadTimeDays, _ = priceData.Int("LPRIO")
	cm.priceData = priceData.JSON()

	now := cm.clock.Now()
	cm.priceUpdatedAt = now
	cm.updatedAt = now
}

// MarkUnavailable flags the material as not orderable for this customer.
func (cm *CustomerMaterial) MarkUnavailable() {
	cm.available = false
	cm.updatedAt = cm.clock.Now()
}
