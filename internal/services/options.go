package services

import (
	"context"
	"fmt"
	"log/slog"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/sapsync-service/internal/app/catalog"
	"github.com/light-bringer/sapsync-service/internal/app/sync/contracts"
	"github.com/light-bringer/sapsync-service/internal/app/sync/queries/get_progress"
	"github.com/light-bringer/sapsync-service/internal/app/sync/repo"
	"github.com/light-bringer/sapsync-service/internal/app/sync/usecases/start_sync"
	"github.com/light-bringer/sapsync-service/internal/app/sync/usecases/sync_customer"
	"github.com/light-bringer/sapsync-service/internal/app/sync/usecases/sync_material_price"
	"github.com/light-bringer/sapsync-service/internal/app/sync/usecases/sync_materials"
	"github.com/light-bringer/sapsync-service/internal/config"
	"github.com/light-bringer/sapsync-service/internal/dispatch"
	"github.com/light-bringer/sapsync-service/internal/pkg/clock"
	"github.com/light-bringer/sapsync-service/internal/pkg/committer"
	"github.com/light-bringer/sapsync-service/internal/sap"
	httphandler "github.com/light-bringer/sapsync-service/internal/transport/http"
)

// ServiceOptions holds all dependencies for the application.
type ServiceOptions struct {
	SpannerClient *spanner.Client
	Catalog       *catalog.Store
	Dispatcher    *dispatch.Dispatcher
	HTTPHandler   *httphandler.Handler
}

// NewServiceOptions creates and wires up all application dependencies.
func NewServiceOptions(ctx context.Context, cfg config.Config, logger *slog.Logger) (*ServiceOptions, error) {
	// 1. Initialize Spanner client
	spannerClient, err := spanner.NewClient(ctx, cfg.SpannerDB)
	if err != nil {
		return nil, fmt.Errorf("failed to create Spanner client: %w", err)
	}

	// 2. Create infrastructure components
	clk := clock.NewRealClock()
	comm := committer.NewCommitter(spannerClient)
	source := sap.NewClient(sap.Config{
		BaseURL:  cfg.SAPBaseURL,
		Username: cfg.SAPUsername,
		Password: cfg.SAPPassword,
		Timeout:  cfg.SAPTimeout,
	}, logger)

	catalogStore, err := catalog.Open(cfg.CatalogDBPath)
	if err != nil {
		spannerClient.Close()
		return nil, fmt.Errorf("failed to open catalog read model: %w", err)
	}

	// 3. Create repositories
	customerRepo := repo.NewCustomerRepo(spannerClient, clk)
	materialRepo := repo.NewMaterialRepo(spannerClient, clk)
	cmRepo := repo.NewCustomerMaterialRepo(spannerClient, clk)
	progressRepo := repo.NewProgressRepo(spannerClient, clk)
	locker := repo.NewLockRepo(spannerClient, cfg.LockTTL, clk)

	// 4. Create the dispatcher and the use cases it drives
	dispatcher := dispatch.New(dispatch.Options{
		Workers:   cfg.Workers,
		QueueSize: cfg.QueueSize,
	}, logger)

	customerSync := sync_customer.NewInteractor(source, customerRepo, dispatcher, comm, clk, logger)
	materialsSync := sync_materials.NewInteractor(source, materialRepo, progressRepo, dispatcher, comm, clk, logger)
	priceSync := sync_material_price.NewInteractor(
		source, customerRepo, materialRepo, cmRepo, progressRepo, catalogStore, comm, clk, logger)
	startSync := start_sync.NewInteractor(locker, customerSync, logger)

	dispatcher.Register(contracts.KindSyncMaterials, func(ctx context.Context, task contracts.Task) error {
		t, ok := task.(contracts.SyncMaterialsTask)
		if !ok {
			return fmt.Errorf("unexpected task type %T", task)
		}
		return materialsSync.Execute(ctx, &sync_materials.Request{
			CustomerID: t.CustomerID,
			SalesOrg:   t.SalesOrg,
			Context:    t.Context,
		})
	})
	dispatcher.Register(contracts.KindSyncMaterialPrice, func(ctx context.Context, task contracts.Task) error {
		t, ok := task.(contracts.SyncMaterialPriceTask)
		if !ok {
			return fmt.Errorf("unexpected task type %T", task)
		}
		// The price stage swallows its own failures, so the handler never
		// triggers a redelivery.
		priceSync.Execute(ctx, &sync_material_price.Request{
			CustomerID:     t.CustomerID,
			MaterialNumber: t.MaterialNumber,
			SalesOrg:       t.SalesOrg,
			Context:        t.Context,
			Posnr:          t.Posnr,
			SyncID:         t.SyncID,
		})
		return nil
	})

	// 5. Create query use cases (read operations)
	getProgress := get_progress.NewQuery(progressRepo)

	// 6. Create HTTP handler
	handler := httphandler.NewHandler(startSync, getProgress, catalogStore, logger)

	return &ServiceOptions{
		SpannerClient: spannerClient,
		Catalog:       catalogStore,
		Dispatcher:    dispatcher,
		HTTPHandler:   handler,
	}, nil
}

// Close closes all resources.
func (s *ServiceOptions) Close() {
	if s.Dispatcher != nil {
		s.Dispatcher.Stop()
	}
	if s.Catalog != nil {
		s.Catalog.Close()
	}
	if s.SpannerClient != nil {
		s.SpannerClient.Close()
	}
}
