package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/sapsync-service/internal/app/sync/contracts"
	"github.com/light-bringer/sapsync-service/internal/app/sync/domain"
	"github.com/light-bringer/sapsync-service/internal/models/m_customer"
	"github.com/light-bringer/sapsync-service/internal/pkg/clock"
)

// CustomerRepo implements CustomerRepository for Spanner.
type CustomerRepo struct {
	client *spanner.Client
	model  *m_customer.Model
	clock  clock.Clock
}

// NewCustomerRepo creates a new CustomerRepo.
func NewCustomerRepo(client *spanner.Client, clk clock.Clock) contracts.CustomerRepository {
	return &CustomerRepo{
		client: client,
		model:  m_customer.NewModel(),
		clock:  clk,
	}
}

// UpsertMut creates a mutation writing the full customer row.
func (r *CustomerRepo) UpsertMut(customer *domain.Customer) (*spanner.Mutation, error) {
	if customer.ID() == "" {
		return nil, fmt.Errorf("customer is missing a surrogate id")
	}
	return r.model.UpsertMut(domainToCustomerData(customer)), nil
}

// GetBySapID retrieves a customer by its natural (sapCustomerID, salesOrg) key.
func (r *CustomerRepo) GetBySapID(ctx context.Context, sapCustomerID, salesOrg string) (*domain.Customer, error) {
	stmt := spanner.Statement{
		SQL: "SELECT * FROM customers WHERE sap_customer_id = @customer_id AND sales_org = @sales_org LIMIT 1",
		Params: map[string]interface{}{
			"customer_id": sapCustomerID,
			"sales_org":   salesOrg,
		},
	}

	iter := r.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	if err == iterator.Done {
		return nil, domain.ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read customer: %w", err)
	}

	var data m_customer.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse customer: %w", err)
	}

	return r.dataToDomain(&data), nil
}

func domainToCustomerData(c *domain.Customer) *m_customer.Data {
	return &m_customer.Data{
		ID:            c.ID(),
		SapCustomerID: c.SapCustomerID(),
		SalesOrg:      c.SalesOrg(),
		Name1:         c.Name1(),
		Name2:         c.Name2(),
		Street:        c.Street(),
		City:          c.City(),
		PostalCode:    c.PostalCode(),
		Region:        c.Region(),
		Country:       c.Country(),
		Currency:      c.Currency(),
		Incoterms:     c.Incoterms(),
		ShippingCond:  c.ShippingCond(),
		PaymentTerms:  c.PaymentTerms(),
		TaxClass:      c.TaxClass(),
		VatNumber:     c.VatNumber(),
		SourceData:    c.SourceData(),
		LastSyncAt:    c.LastSyncAt(),
		CreatedAt:     c.CreatedAt(),
		UpdatedAt:     c.UpdatedAt(),
	}
}

func (r *CustomerRepo) dataToDomain(data *m_customer.Data) *domain.Customer {
	return domain.ReconstructCustomer(
		data.ID, data.SapCustomerID, data.SalesOrg,
		data.Name1, data.Name2, data.Street, data.City, data.PostalCode, data.Region, data.Country,
		data.Currency, data.Incoterms, data.ShippingCond, data.PaymentTerms, data.TaxClass, data.VatNumber,
		data.SourceData,
		data.LastSyncAt, data.CreatedAt, data.UpdatedAt,
		r.clock,
	)
}
