package contracts

import (
	"context"
	"time"
)

// MaterialViewEntry is the denormalized catalog row projected after every
// successful price sync, keyed by (customerID, salesOrg, materialNumber).
type MaterialViewEntry struct {
	CustomerID     string
	SalesOrg       string
	MaterialNumber string
	Description    string
	Price          string
	Currency       string
	PriceUnit      string
	Posnr          string
	Available      bool
	UpdatedAt      time.Time
}

// CatalogProjection receives read-model updates from the sync pipeline.
// Projection failures must not fail the sync; callers log and move on.
type CatalogProjection interface {
	UpsertMaterialView(ctx context.Context, entry *MaterialViewEntry) error
}
