package repo

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/sapsync-service/internal/app/sync/contracts"
	"github.com/light-bringer/sapsync-service/internal/app/sync/domain"
	"github.com/light-bringer/sapsync-service/internal/models/m_customer_material"
	"github.com/light-bringer/sapsync-service/internal/pkg/clock"
)

// CustomerMaterialRepo implements CustomerMaterialRepository for Spanner.
type CustomerMaterialRepo struct {
	client *spanner.Client
	model  *m_customer_material.Model
	clock  clock.Clock
}

// NewCustomerMaterialRepo creates a new CustomerMaterialRepo.
func NewCustomerMaterialRepo(client *spanner.Client, clk clock.Clock) contracts.CustomerMaterialRepository {
	return &CustomerMaterialRepo{
		client: client,
		model:  m_customer_material.NewModel(),
		clock:  clk,
	}
}

// UpsertMut creates a mutation writing the full association row.
func (r *CustomerMaterialRepo) UpsertMut(cm *domain.CustomerMaterial) (*spanner.Mutation, error) {
	if cm.ID() == "" {
		return nil, fmt.Errorf("customer material is missing a surrogate id")
	}

	data := &m_customer_material.Data{
		ID:           cm.ID(),
		CustomerID:   cm.CustomerID(),
		MaterialID:   cm.MaterialID(),
		SalesOrg:     cm.SalesOrg(),
		Price:        cm.Price(),
		Currency:     cm.Currency(),
		PriceUnit:    cm.PriceUnit(),
		Weight:       cm.Weight(),
		WeightUnit:   cm.WeightUnit(),
		Volume:       cm.Volume(),
		VolumeUnit:   cm.VolumeUnit(),
		IsAvailable:  cm.IsAvailable(),
		MinOrderQty:  int64(cm.MinOrderQty()),
		LeadTimeDays: int64(cm.LeadTimeDays()),
		PriceData:    cm.PriceData(),
		CreatedAt:    cm.CreatedAt(),
		UpdatedAt:    cm.UpdatedAt(),
	}
	if cm.HasPosnr() {
		data.Posnr = spanner.NullString{StringVal: cm.Posnr().Value(), Valid: true}
	}
	if !cm.PriceUpdatedAt().IsZero() {
		data.PriceUpdatedAt = spanner.NullTime{Time: cm.PriceUpdatedAt(), Valid: true}
	}

	return r.model.UpsertMut(data), nil
}

// GetByCustomerAndMaterial retrieves the association scoped by sales org.
func (r *CustomerMaterialRepo) GetByCustomerAndMaterial(ctx context.Context, customerID, materialID, salesOrg string) (*domain.CustomerMaterial, error) {
	stmt := spanner.Statement{
		SQL: "SELECT * FROM customer_materials " +
			"WHERE customer_id = @customer_id AND material_id = @material_id AND sales_org = @sales_org LIMIT 1",
		Params: map[string]interface{}{
			"customer_id": customerID,
			"material_id": materialID,
			"sales_org":   salesOrg,
		},
	}

	iter := r.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	if err == iterator.Done {
		return nil, domain.ErrCustomerMaterialNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read customer material: %w", err)
	}

	var data m_customer_material.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse customer material: %w", err)
	}

	return r.dataToDomain(&data)
}

func (r *CustomerMaterialRepo) dataToDomain(data *m_customer_material.Data) (*domain.CustomerMaterial, error) {
	var posnr domain.Posnr
	if data.Posnr.Valid {
		p, err := domain.NewPosnr(data.Posnr.StringVal)
		if err != nil {
			return nil, fmt.Errorf("stored posnr is invalid: %w", err)
		}
		posnr = p
	}

	var priceUpdatedAt time.Time
	if data.PriceUpdatedAt.Valid {
		priceUpdatedAt = data.PriceUpdatedAt.Time
	}

	return domain.ReconstructCustomerMaterial(
		data.ID, data.CustomerID, data.MaterialID, data.SalesOrg,
		posnr,
		data.Price, data.Currency, data.PriceUnit,
		data.Weight, data.WeightUnit,
		data.Volume, data.VolumeUnit,
		data.IsAvailable,
		int(data.MinOrderQty), int(data.LeadTimeDays),
		data.PriceData,
		priceUpdatedAt, data.CreatedAt, data.UpdatedAt,
		r.clock,
	), nil
}
