package domain

import (
	"time"

	"github.com/light-bringer/sapsync-service/internal/pkg/clock"
)

// Customer is the sold-to party as known by the source system. Identity is
// the natural composite key (sapCustomerID, salesOrg); a surrogate id exists
// only for storage convenience. Customers are created on first sync miss and
// from then on only ever overwritten by UpdateFromSource.
type Customer struct {
	id            string
	sapCustomerID string // KUNNR
	salesOrg      string // VKORG
	name1         string
	name2         string
	street        string // STRAS
	city          string // ORT01
	postalCode    string // PSTLZ
	region        string // REGIO
	country       string // LAND1
	currency      string // WAERK
	incoterms     string // INCO1
	shippingCond  string // VSBED
	paymentTerms  string // ZTERM
	taxClass      string // TAXK1
	vatNumber     string // STCEG
	sourceData    string // raw payload, JSON
	lastSyncAt    time.Time
	createdAt     time.Time
	updatedAt     time.Time

	clock clock.Clock
}

// NewCustomer creates a customer seeded with the minimal required fields.
// Derived fields are filled by the UpdateFromSource call that always follows.
func NewCustomer(id, sapCustomerID, salesOrg string, clk clock.Clock) (*Customer, error) {
	if sapCustomerID == "" {
		return nil, ErrEmptyCustomerID
	}
	if salesOrg == "" {
		return nil, ErrEmptySalesOrg
	}

	now := clk.Now()
	return &Customer{
		id:            id,
		sapCustomerID: sapCustomerID,
		salesOrg:      salesOrg,
		createdAt:     now,
		updatedAt:     now,
		lastSyncAt:    now,
		clock:         clk,
	}, nil
}

// ReconstructCustomer reconstitutes a Customer from storage.
func ReconstructCustomer(
	id, sapCustomerID, salesOrg string,
	name1, name2, street, city, postalCode, region, country string,
	currency, incoterms, shippingCond, paymentTerms, taxClass, vatNumber string,
	sourceData string,
	lastSyncAt, createdAt, updatedAt time.Time,
	clk clock.Clock,
) *Customer {
	return &Customer{
		id:            id,
		sapCustomerID: sapCustomerID,
		salesOrg:      salesOrg,
		name1:         name1,
		name2:         name2,
		street:        street,
		city:          city,
		postalCode:    postalCode,
		region:        region,
		country:       country,
		currency:      currency,
		incoterms:     incoterms,
		shippingCond:  shippingCond,
		paymentTerms:  paymentTerms,
		taxClass:      taxClass,
		vatNumber:     vatNumber,
		sourceData:    sourceData,
		lastSyncAt:    lastSyncAt,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		clock:         clk,
	}
}

// Getters
func (c *Customer) ID() string            { return c.id }
func (c *Customer) SapCustomerID() string { return c.sapCustomerID }
func (c *Customer) SalesOrg() string      { return c.salesOrg }
func (c *Customer) Country() string       { return c.country }
func (c *Customer) Currency() string      { return c.currency }
func (c *Customer) Incoterms() string     { return c.incoterms }
func (c *Customer) ShippingCond() string  { return c.shippingCond }
func (c *Customer) PaymentTerms() string  { return c.paymentTerms }
func (c *Customer) TaxClass() string      { return c.taxClass }
func (c *Customer) VatNumber() string     { return c.vatNumber }
func (c *Customer) Street() string        { return c.street }
func (c *Customer) City() string          { return c.city }
func (c *Customer) PostalCode() string    { return c.postalCode }
func (c *Customer) Region() string        { return c.region }
func (c *Customer) SourceData() string    { return c.sourceData }
func (c *Customer) LastSyncAt() time.Time { return c.lastSyncAt }
func (c *Customer) CreatedAt() time.Time  { return c.createdAt }
func (c *Customer) UpdatedAt() time.Time  { return c.updatedAt }

func (c *Customer) Name1() string { return c.name1 }
func (c *Customer) Name2() string { return c.name2 }

// Name joins the two name lines into a display name.
func (c *Customer) Name() string {
	if c.name2 == "" {
		return c.name1
	}
	return c.name1 + " " + c.name2
}

// UpdateFromSource fully overwrites all derived fields from the fetched
// payload and bumps lastSyncAt. Applying the same payload twice is
// idempotent apart from timestamps.
func (c *Customer) UpdateFromSource(data Payload) {
	c.name1 = data.StringOr("NAME1", "Unknown")
	c.name2 = data.String("NAME2")
	c.street = data.String("STRAS")
	c.city = data.String("ORT01")
	c.postalCode = data.String("PSTLZ")
	c.region = data.String("REGIO")
	c.country = data.StringOr("LAND1", "ES")
	c.currency = data.String("WAERK")
	c.incoterms = data.String("INCO1")
	c.shippingCond = data.String("VSBED")
	c.paymentTerms = data.String("ZTERM")
	c.taxClass = data.String("TAXK1")
	c.vatNumber = data.String("STCEG")
	c.sourceData = data.JSON()

	now := c.clock.Now()
	c.lastSyncAt = now
	c.updatedAt = now
}
