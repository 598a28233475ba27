package catalog

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/sapsync-service/internal/app/sync/contracts"
	"github.com/light-bringer/sapsync-service/internal/app/sync/domain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func entry(customerID, materialNumber, description string) *contracts.MaterialViewEntry {
	return &contracts.MaterialViewEntry{
		CustomerID:     customerID,
		SalesOrg:       "100",
		MaterialNumber: materialNumber,
		Description:    description,
		Price:          "10.00",
		Currency:       "EUR",
		Available:      true,
		UpdatedAt:      time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestUpsertMaterialView(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.UpsertMaterialView(ctx, entry("CUST001", "MAT-1", "Bolt")))

	result, err := store.List(ctx, ListRequest{CustomerID: "CUST001", SalesOrg: "100"})
	require.NoError(t, err)
	require.Len(t, result.Entries, 1)
	assert.Equal(t, "MAT-1", result.Entries[0].MaterialNumber)
	assert.Equal(t, "Bolt", result.Entries[0].Description)
	assert.Equal(t, "10.00", result.Entries[0].Price)
}

func TestUpsertMaterialView_OverwritesExistingRow(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.UpsertMaterialView(ctx, entry("CUST001", "MAT-1", "Bolt")))

	updated := entry("CUST001", "MAT-1", "Bolt M8")
	updated.Price = "12.50"
	require.NoError(t, store.UpsertMaterialView(ctx, updated))

	result, err := store.List(ctx, ListRequest{CustomerID: "CUST001", SalesOrg: "100"})
	require.NoError(t, err)
	require.Len(t, result.Entries, 1)
	assert.Equal(t, "Bolt M8", result.Entries[0].Description)
	assert.Equal(t, "12.50", result.Entries[0].Price)
	assert.Equal(t, 1, result.Total)
}

func TestUpsertMaterialView_NilEntry(t *testing.T) {
	store := openTestStore(t)
	assert.Error(t, store.UpsertMaterialView(context.Background(), nil))
}

func TestList_ScopedByCustomerAndSalesOrg(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.UpsertMaterialView(ctx, entry("CUST001", "MAT-1", "Bolt")))
	require.NoError(t, store.UpsertMaterialView(ctx, entry("CUST002", "MAT-2", "Nut")))

	other := entry("CUST001", "MAT-3", "Washer")
	other.SalesOrg = "200"
	require.NoError(t, store.UpsertMaterialView(ctx, other))

	result, err := store.List(ctx, ListRequest{CustomerID: "CUST001", SalesOrg: "100"})
	require.NoError(t, err)
	require.Len(t, result.Entries, 1)
	assert.Equal(t, "MAT-1", result.Entries[0].MaterialNumber)
}

func TestList_Search(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.UpsertMaterialView(ctx, entry("CUST001", "MAT-1", "Steel Bolt")))
	require.NoError(t, store.UpsertMaterialView(ctx, entry("CUST001", "MAT-2", "Brass Nut")))
	require.NoError(t, store.UpsertMaterialView(ctx, entry("CUST001", "BOLT-9", "Anchor")))

	t.Run("matches description case-insensitively", func(t *testing.T) {
		result, err := store.List(ctx, ListRequest{CustomerID: "CUST001", SalesOrg: "100", Search: "bolt"})
		require.NoError(t, err)
		// Matches MAT-1 by description and BOLT-9 by number.
		assert.Equal(t, 2, result.Total)
	})

	t.Run("no matches", func(t *testing.T) {
		result, err := store.List(ctx, ListRequest{CustomerID: "CUST001", SalesOrg: "100", Search: "titanium"})
		require.NoError(t, err)
		assert.Empty(t, result.Entries)
		assert.Equal(t, 0, result.Total)
	})
}

func TestList_Pagination(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		e := entry("CUST001", fmt.Sprintf("MAT-%d", i), "Part")
		require.NoError(t, store.UpsertMaterialView(ctx, e))
	}

	page1, err := store.List(ctx, ListRequest{CustomerID: "CUST001", SalesOrg: "100", Limit: 2})
	require.NoError(t, err)
	require.Len(t, page1.Entries, 2)
	assert.Equal(t, 5, page1.Total)
	assert.Equal(t, "MAT-1", page1.Entries[0].MaterialNumber)

	page3, err := store.List(ctx, ListRequest{CustomerID: "CUST001", SalesOrg: "100", Limit: 2, Offset: 4})
	require.NoError(t, err)
	require.Len(t, page3.Entries, 1)
	assert.Equal(t, "MAT-5", page3.Entries[0].MaterialNumber)
}

func TestList_Validation(t *testing.T) {
	store := openTestStore(t)

	_, err := store.List(context.Background(), ListRequest{SalesOrg: "100"})
	assert.ErrorIs(t, err, domain.ErrEmptyCustomerID)

	_, err = store.List(context.Background(), ListRequest{CustomerID: "CUST001"})
	assert.ErrorIs(t, err, domain.ErrEmptySalesOrg)
}
