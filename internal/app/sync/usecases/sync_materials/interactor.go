// Package sync_materials implements the fan-out stage: fetch the material
// list for a customer, upsert each material, size a progress tracker to the
// list, and submit one price task per valid record.
package sync_materials

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

// Request carries the customer identity plus the query context forwarded
// from the customer stage.
type Request struct {
	CustomerID string
	SalesOrg   string
	Context    contracts.QueryContext
}

// Interactor handles the materials sync use case.
type Interactor struct {
	source       contracts.CustomerDataSource
	materialRepo contracts.MaterialRepository
	progressRepo contracts.SyncProgressRepository
	dispatcher   contracts.Dispatcher
	committer    *committer.Committer
	clock        clock.Clock
	logger       *slog.Logger
}

// NewInteractor creates a new materials sync interactor.
func NewInteractor(
	source contracts.CustomerDataSource,
	materialRepo contracts.MaterialRepository,
	progressRepo contracts.SyncProgressRepository,
	dispatcher contracts.Dispatcher,
	committer *committer.Committer,
	clock clock.Clock,
	logger *slog.Logger,
) *Interactor {
	return &Interactor{
		source:       source,
		materialRepo: materialRepo,
		progressRepo: progressRepo,
		dispatcher:   dispatcher,
		committer:    committer,
		clock:        clock,
		logger:       logger,
	}
}

// Execute runs the materials stage. Any failure past progress creation marks
// the run failed before the error propagates, so the progress query never
// reports a dead run as in_progress.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	log := i.logger.With("customer_id", req.CustomerID, "sales_org", req.SalesOrg)
	log.Info("starting materials sync")

	syncID, err := i.run(ctx, req, log)
	if err != nil {
		log.Error("materials sync failed", "error", err)
		if syncID != "" {
			if markErr := i.progressRepo.MarkFailed(ctx, syncID, err.Error()); markErr != nil {
				log.Error("failed to mark sync run failed", "sync_id", syncID, "error", markErr)
			}
		}
		return err
	}
	return nil
}

func (i *Interactor) run(ctx context.Context, req *Request, log *slog.Logger) (string, error) {
	// 1. Fetch the material list; fetch errors are fatal for this stage.
	resp, err := i.source.FetchMaterialList(ctx, req.Context)
	if err != nil {
		return "", fmt.Errorf("fetch material list: %w", err)
	}

	// 2. A response without a well-formed list is a valid terminal outcome.
	records, ok := resp.List("X_MAT_FOUND")
	if !ok {
		log.Warn("no materials returned from source")
		return "", nil
	}

	// 3. Persist the tracker before any fan-out so progress is visible
	// before the first price task completes.
	progress := domain.StartSyncProgress(
		"sync_"+uuid.New().String(),
		req.CustomerID,
		req.SalesOrg,
		len(records),
		i.clock,
	)

	plan := committer.NewPlan()
	mut, err := i.progressRepo.InsertMut(progress)
	if err != nil {
		return "", err
	}
	plan.Add(mut)
	if err := i.committer.Apply(ctx, plan); err != nil {
		return "", fmt.Errorf("persist sync progress: %w", err)
	}

	log.Info("sync progress tracker created", "sync_id", progress.ID(), "total_materials", len(records))

	// 4. Upsert each material and fan out one price task per valid record.
	dispatched := 0
	for _, record := range records {
		materialNumber := record.String("MATNR")
		if materialNumber == "" {
			log.Warn("material record without material number, skipping", "record", record.JSON())
			// A skipped record is a terminal outcome; count it so the run
			// still converges to total.
			if _, _, err := i.progressRepo.IncrementProcessed(ctx, progress.ID()); err != nil {
				log.Error("failed to count skipped record", "sync_id", progress.ID(), "error", err)
			}
			continue
		}

		if err := i.upsertMaterial(ctx, materialNumber, record); err != nil {
			return progress.ID(), err
		}

		task := contracts.SyncMaterialPriceTask{
			CustomerID:     req.CustomerID,
			MaterialNumber: materialNumber,
			SalesOrg:       req.SalesOrg,
			Context:        req.Context,
			SyncID:         progress.ID(),
		}
		if raw := record.String("POSNR"); raw != "" {
			posnr, err := domain.NewPosnr(raw)
			if err != nil {
				log.Warn("material record carries invalid position number, ignoring it",
					"material_number", materialNumber, "posnr", raw, "error", err)
			} else {
				task.Posnr = posnr
			}
		}

		if err := i.dispatcher.Submit(ctx, task); err != nil {
			return progress.ID(), fmt.Errorf("submit price sync for %s: %w", materialNumber, err)
		}
		dispatched++
	}

	log.Info("materials sync completed", "total_materials", len(records), "dispatched", dispatched)
	return progress.ID(), nil
}

func (i *Interactor) upsertMaterial(ctx context.Context, materialNumber string, record domain.Payload) error {
	material, err := i.materialRepo.GetBySapMaterialNumber(ctx, materialNumber)
	switch {
	case err == nil:
		// Seen before, possibly during another customer's sync.
	case err == domain.ErrMaterialNotFound:
		material, err = domain.NewMaterial(uuid.New().String(), materialNumber, i.clock)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("look up material %s: %w", materialNumber, err)
	}

	material.UpdateFromSource(record)

	plan := committer.NewPlan()
	mut, err := i.materialRepo.UpsertMut(material)
	if err != nil {
		return err
	}
	plan.Add(mut)

	if err := i.committer.Apply(ctx, plan); err != nil {
		return fmt.Errorf("persist material %s: %w", materialNumber, err)
	}
	return nil
}
