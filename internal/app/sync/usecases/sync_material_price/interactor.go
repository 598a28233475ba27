// Package sync_material_price implements one leaf of the fan-out: fetch the
// price for a single (customer, material) pair and store it. This is the
// bulkhead of the pipeline: nothing that happens here may abort sibling
// tasks or the batch, so no error ever leaves Execute.
package sync_material_price

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/light-bringer/sapsync-service/internal/app/sync/contracts"
	"github.com/light-bringer/sapsync-service/internal/app/sync/domain"
	"github.com/light-bringer/sapsync-service/internal/pkg/clock"
	"github.com/light-bringer/sapsync-service/internal/pkg/committer"
)

// Defaults applied when the price payload omits the sub-fields.
const (
	defaultPrice    = "0.00"
	defaultCurrency = "USD"
)

// Request carries everything one price task needs.
type Request struct {
	CustomerID     string
	MaterialNumber string
	SalesOrg       string
	Context        contracts.QueryContext
	Posnr          domain.Posnr
	SyncID         string
}

// Interactor handles the per-material price sync use case.
type Interactor struct {
	source       contracts.CustomerDataSource
	customerRepo contracts.CustomerRepository
	materialRepo contracts.MaterialRepository
	cmRepo       contracts.CustomerMaterialRepository
	progressRepo contracts.SyncProgressRepository
	projection   contracts.CatalogProjection
	committer    *committer.Committer
	clock        clock.Clock
	logger       *slog.Logger
}

// NewInteractor creates a new price sync interactor. projection may be nil
// when no read model is wired.
func NewInteractor(
	source contracts.CustomerDataSource,
	customerRepo contracts.CustomerRepository,
	materialRepo contracts.MaterialRepository,
	cmRepo contracts.CustomerMaterialRepository,
	progressRepo contracts.SyncProgressRepository,
	projection contracts.CatalogProjection,
	committer *committer.Committer,
	clock clock.Clock,
	logger *slog.Logger,
) *Interactor {
	return &Interactor{
		source:       source,
		customerRepo: customerRepo,
		materialRepo: materialRepo,
		cmRepo:       cmRepo,
		progressRepo: progressRepo,
		projection:   projection,
		committer:    committer,
		clock:        clock,
		logger:       logger,
	}
}

// Execute runs one price sync to a terminal outcome. Every failure is caught,
// logged with full context and swallowed; the progress counter is bumped on
// every terminal outcome (success, handled skip, or swallowed failure) so
// processedMaterials always converges to totalMaterials.
func (i *Interactor) Execute(ctx context.Context, req *Request) {
	log := i.logger.With(
		"customer_id", req.CustomerID,
		"material_number", req.MaterialNumber,
		"sales_org", req.SalesOrg,
	)
	log.Debug("starting material price sync", "posnr", req.Posnr.Value(), "sync_id", req.SyncID)

	if err := i.run(ctx, req, log); err != nil {
		log.Error("material price sync failed", "error", fmt.Sprintf("%v", err))
	}

	if req.SyncID != "" {
		processed, total, err := i.progressRepo.IncrementProcessed(ctx, req.SyncID)
		if err != nil {
			log.Error("failed to update sync progress", "sync_id", req.SyncID, "error", err)
			return
		}
		log.Debug("sync progress updated", "sync_id", req.SyncID, "processed", processed, "total", total)
	}
}

func (i *Interactor) run(ctx context.Context, req *Request, log *slog.Logger) error {
	// 1. Fetch the price payload, forwarding the position number so the
	// source resolves the right quote line.
	data, err := i.source.FetchMaterialPrice(ctx, req.CustomerID, req.MaterialNumber, req.Context, req.Posnr)
	if err != nil {
		return fmt.Errorf("fetch material price: %w", err)
	}

	// 2. Resolve the sales org, falling back to the query context.
	salesOrg := req.SalesOrg
	if salesOrg == "" {
		salesOrg = req.Context.SalesOrg()
	}
	if salesOrg == "" {
		log.Error("sales org unresolved, skipping price sync")
		return nil
	}

	// 3-4. Both sides of the association must already exist; their absence
	// is terminal for this task only.
	customer, err := i.customerRepo.GetBySapID(ctx, req.CustomerID, salesOrg)
	if err != nil {
		if err == domain.ErrCustomerNotFound {
			log.Error("customer not found, skipping price sync")
			return nil
		}
		return fmt.Errorf("look up customer: %w", err)
	}

	material, err := i.materialRepo.GetBySapMaterialNumber(ctx, req.MaterialNumber)
	if err != nil {
		if err == domain.ErrMaterialNotFound {
			log.Error("material not found, skipping price sync")
			return nil
		}
		return fmt.Errorf("look up material: %w", err)
	}

	// 5. Look up or lazily create the association.
	cm, err := i.cmRepo.GetByCustomerAndMaterial(ctx, customer.ID(), material.ID(), salesOrg)
	switch {
	case err == nil:
	case err == domain.ErrCustomerMaterialNotFound:
		cm = domain.NewCustomerMaterial(uuid.New().String(), customer.ID(), material.ID(), salesOrg, i.clock)
		log.Debug("creating new customer-material association")
	default:
		return fmt.Errorf("look up customer material: %w", err)
	}

	// 6. An empty price payload mutates nothing.
	priceData, ok := data.Sub("OUT_WA_MATNR")
	if !ok || len(priceData) == 0 {
		log.Warn("no price data in source response", "posnr", req.Posnr.Value())
		return nil
	}

	// 7. Extract price fields with documented defaults and persist.
	price := priceData.StringOr("NETPR", defaultPrice)
	currency := priceData.StringOr("WAERK", defaultCurrency)

	if !req.Posnr.IsZero() {
		cm.SetPosnr(req.Posnr)
	}
	cm.UpdatePrice(price, currency, priceData)

	plan := committer.NewPlan()
	mut, err := i.cmRepo.UpsertMut(cm)
	if err != nil {
		return err
	}
	plan.Add(mut)

	if err := i.committer.Apply(ctx, plan); err != nil {
		return fmt.Errorf("persist customer material: %w", err)
	}

	log.Debug("material price sync completed", "price", cm.Price(), "currency", cm.Currency())

	// Projection failures never fail the sync; the catalog view heals on
	// the next run.
	if i.projection != nil {
		entry := &contracts.MaterialViewEntry{
			CustomerID:     req.CustomerID,
			SalesOrg:       salesOrg,
			MaterialNumber: req.MaterialNumber,
			Description:    material.Description(),
			Price:          cm.Price(),
			Currency:       cm.Currency(),
			PriceUnit:      cm.PriceUnit(),
			Posnr:          cm.Posnr().Value(),
			Available:      cm.IsAvailable(),
			UpdatedAt:      i.clock.Now(),
		}
		if err := i.projection.UpsertMaterialView(ctx, entry); err != nil {
			log.Warn("failed to update catalog view", "error", err)
		}
	}

	return nil
}
