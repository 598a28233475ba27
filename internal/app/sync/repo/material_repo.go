package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/sapsync-service/internal/app/sync/contracts"
	"github.com/light-bringer/sapsync-service/internal/app/sync/domain"
	"github.com/light-bringer/sapsync-service/internal/models/m_material"
	"github.com/light-bringer/sapsync-service/internal/pkg/clock"
)

// MaterialRepo implements MaterialRepository for Spanner.
type MaterialRepo struct {
	client *spanner.Client
	model  *m_material.Model
	clock  clock.Clock
}

// NewMaterialRepo creates a new MaterialRepo.
func NewMaterialRepo(client *spanner.Client, clk clock.Clock) contracts.MaterialRepository {
	return &MaterialRepo{
		client: client,
		model:  m_material.NewModel(),
		clock:  clk,
	}
}

// UpsertMut creates a mutation writing the full material row.
func (r *MaterialRepo) UpsertMut(material *domain.Material) (*spanner.Mutation, error) {
	if material.ID() == "" {
		return nil, fmt.Errorf("material is missing a surrogate id")
	}
	return r.model.UpsertMut(&m_material.Data{
		ID:                material.ID(),
		SapMaterialNumber: material.SapMaterialNumber(),
		Description:       material.Description(),
		DescriptionShort:  material.DescriptionShort(),
		MaterialType:      material.MaterialType(),
		MaterialGroup:     material.MaterialGroup(),
		BaseUnit:          material.BaseUnit(),
		Weight:            material.Weight(),
		WeightUnit:        material.WeightUnit(),
		Volume:            material.Volume(),
		VolumeUnit:        material.VolumeUnit(),
		IsActive:          material.IsActive(),
		SourceData:        material.SourceData(),
		LastSyncAt:        material.LastSyncAt(),
		CreatedAt:         material.CreatedAt(),
		UpdatedAt:         material.UpdatedAt(),
	}), nil
}

// GetBySapMaterialNumber retrieves a material by its globally unique number.
func (r *MaterialRepo) GetBySapMaterialNumber(ctx context.Context, sapMaterialNumber string) (*domain.Material, error) {
	stmt := spanner.Statement{
		SQL:    "SELECT * FROM materials WHERE sap_material_number = @material_number LIMIT 1",
		Params: map[string]interface{}{"material_number": sapMaterialNumber},
	}

	iter := r.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	if err == iterator.Done {
		return nil, domain.ErrMaterialNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read material: %w", err)
	}

	var data m_material.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse material: %w", err)
	}

	return domain.ReconstructMaterial(
		data.ID, data.SapMaterialNumber, data.Description, data.DescriptionShort,
		data.MaterialType, data.MaterialGroup, data.BaseUnit,
		data.Weight, data.WeightUnit,
		data.Volume, data.VolumeUnit,
		data.IsActive,
		data.SourceData,
		data.LastSyncAt, data.CreatedAt, data.UpdatedAt,
		r.clock,
	), nil
}
