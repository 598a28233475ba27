//go:build integration

package integration

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/sapsync-service/internal/app/sync/domain"
	"github.com/light-bringer/sapsync-service/internal/app/sync/repo"
	"github.com/light-bringer/sapsync-service/internal/pkg/clock"
	"github.com/light-bringer/sapsync-service/tests/testutil"
)

func apply(t *testing.T, client *spanner.Client, mut *spanner.Mutation, err error) {
	t.Helper()
	require.NoError(t, err)
	_, err = client.Apply(context.Background(), []*spanner.Mutation{mut})
	require.NoError(t, err)
}

func TestCustomerRepo_RoundTrip(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	clk := clock.NewMockClock(time.Now().UTC().Truncate(time.Microsecond))
	customerRepo := repo.NewCustomerRepo(client, clk)

	customer, err := domain.NewCustomer("cust-id-1", "CUST001", "100", clk)
	require.NoError(t, err)
	customer.UpdateFromSource(domain.Payload{
		"NAME1": "ACME Corp",
		"LAND1": "DE",
		"WAERK": "EUR",
	})

	mut, err := customerRepo.UpsertMut(customer)
	apply(t, client, mut, err)
	testutil.AssertRowCount(t, client, "customers", 1)

	got, err := customerRepo.GetBySapID(ctx, "CUST001", "100")
	require.NoError(t, err)
	assert.Equal(t, "cust-id-1", got.ID())
	assert.Equal(t, "ACME Corp", got.Name1())
	assert.Equal(t, "DE", got.Country())
	assert.Equal(t, "EUR", got.Currency())

	// The natural key is scoped by sales org.
	_, err = customerRepo.GetBySapID(ctx, "CUST001", "200")
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
}

func TestCustomerRepo_UpsertOverwrites(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	clk := clock.NewMockClock(time.Now().UTC().Truncate(time.Microsecond))
	customerRepo := repo.NewCustomerRepo(client, clk)

	customer, err := domain.NewCustomer("cust-id-1", "CUST001", "100", clk)
	require.NoError(t, err)
	customer.UpdateFromSource(domain.Payload{"NAME1": "Old Name"})
	mut, err := customerRepo.UpsertMut(customer)
	apply(t, client, mut, err)

	customer.UpdateFromSource(domain.Payload{"NAME1": "New Name"})
	mut, err = customerRepo.UpsertMut(customer)
	apply(t, client, mut, err)

	testutil.AssertRowCount(t, client, "customers", 1)
	got, err := customerRepo.GetBySapID(ctx, "CUST001", "100")
	require.NoError(t, err)
	assert.Equal(t, "New Name", got.Name1())
}

func TestMaterialRepo_RoundTrip(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	clk := clock.NewMockClock(time.Now().UTC().Truncate(time.Microsecond))
	materialRepo := repo.NewMaterialRepo(client, clk)

	material, err := domain.NewMaterial("mat-id-1", "MAT-001", clk)
	require.NoError(t, err)
	material.UpdateFromSource(domain.Payload{
		"MAKTG": "Steel Bolt M8",
		"MEINS": "EA",
		"BRGEW": "0.012",
	})

	mut, err := materialRepo.UpsertMut(material)
	apply(t, client, mut, err)

	got, err := materialRepo.GetBySapMaterialNumber(ctx, "MAT-001")
	require.NoError(t, err)
	assert.Equal(t, "mat-id-1", got.ID())
	assert.Equal(t, "Steel Bolt M8", got.Description())
	assert.Equal(t, 0.012, got.Weight())
	assert.True(t, got.IsActive())

	_, err = materialRepo.GetBySapMaterialNumber(ctx, "MAT-999")
	assert.ErrorIs(t, err, domain.ErrMaterialNotFound)
}

func TestCustomerMaterialRepo_RoundTrip(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	clk := clock.NewMockClock(time.Now().UTC().Truncate(time.Microsecond))
	cmRepo := repo.NewCustomerMaterialRepo(client, clk)

	cm := domain.NewCustomerMaterial("cm-id-1", "cust-id-1", "mat-id-1", "100", clk)
	posnr, err := domain.NewPosnr("000010")
	require.NoError(t, err)
	cm.SetPosnr(posnr)
	cm.UpdatePrice("42.50", "EUR", domain.Payload{
		"VRKME":    "EA",
		"MINMENGE": "10",
	})

	mut, err := cmRepo.UpsertMut(cm)
	apply(t, client, mut, err)

	got, err := cmRepo.GetByCustomerAndMaterial(ctx, "cust-id-1", "mat-id-1", "100")
	require.NoError(t, err)
	assert.Equal(t, "42.50", got.Price())
	assert.Equal(t, "EUR", got.Currency())
	assert.Equal(t, "EA", got.PriceUnit())
	assert.Equal(t, 10, got.MinOrderQty())
	assert.Equal(t, "000010", got.Posnr().Value())
	assert.True(t, got.IsAvailable())
	assert.False(t, got.PriceUpdatedAt().IsZero())

	_, err = cmRepo.GetByCustomerAndMaterial(ctx, "cust-id-1", "mat-id-1", "200")
	assert.ErrorIs(t, err, domain.ErrCustomerMaterialNotFound)
}

func TestCustomerMaterialRepo_WithoutPosnr(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	clk := clock.NewMockClock(time.Now().UTC().Truncate(time.Microsecond))
	cmRepo := repo.NewCustomerMaterialRepo(client, clk)

	cm := domain.NewCustomerMaterial("cm-id-2", "cust-id-1", "mat-id-2", "100", clk)
	cm.UpdatePrice("0.00", "USD", domain.Payload{})

	mut, err := cmRepo.UpsertMut(cm)
	apply(t, client, mut, err)

	got, err := cmRepo.GetByCustomerAndMaterial(ctx, "cust-id-1", "mat-id-2", "100")
	require.NoError(t, err)
	assert.False(t, got.HasPosnr())
	assert.Equal(t, "0.00", got.Price())
}
