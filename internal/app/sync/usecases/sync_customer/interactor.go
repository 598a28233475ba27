// Package sync_customer implements the top-level pipeline step: fetch one
// customer from the source system, upsert it, and hand off to the materials
// stage when the payload carries the required query context.
package sync_customer

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

// Request identifies the customer to sync.
type Request struct {
	SalesOrg   string
	CustomerID string
}

// Interactor handles the customer sync use case. Failures here are fatal for
// the sync run: fetch and persistence errors propagate to the caller so the
// dispatcher's redelivery can retry the whole step.
type Interactor struct {
	source     contracts.CustomerDataSource
	repo       contracts.CustomerRepository
	dispatcher contracts.Dispatcher
	committer  *committer.Committer
	clock      clock.Clock
	logger     *slog.Logger
}

// NewInteractor creates a new customer sync interactor.
func NewInteractor(
	source contracts.CustomerDataSource,
	repo contracts.CustomerRepository,
	dispatcher contracts.Dispatcher,
	committer *committer.Committer,
	clock clock.Clock,
	logger *slog.Logger,
) *Interactor {
	return &Interactor{
		source:     source,
		repo:       repo,
		dispatcher: dispatcher,
		committer:  committer,
		clock:      clock,
		logger:     logger,
	}
}

// Execute runs the customer stage of the pipeline.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	if err := i.validate(req); err != nil {
		return err
	}

	log := i.logger.With("customer_id", req.CustomerID, "sales_org", req.SalesOrg)
	log.Info("starting customer sync")

	if err := i.run(ctx, req, log); err != nil {
		log.Error("customer sync failed", "error", err)
		return err
	}
	return nil
}

func (i *Interactor) run(ctx context.Context, req *Request, log *slog.Logger) error {
	// 1. Fetch the customer payload; fetch errors are fatal.
	data, err := i.source.FetchCustomer(ctx, req.SalesOrg, req.CustomerID)
	if err != nil {
		return fmt.Errorf("fetch customer: %w", err)
	}

	// 2. Create-then-update unifies both paths: a fresh customer holds only
	// the natural key until UpdateFromSource fills the derived fields.
	customer, err := i.repo.GetBySapID(ctx, req.CustomerID, req.SalesOrg)
	switch {
	case err == nil:
		log.Info("updating existing customer")
	case err == domain.ErrCustomerNotFound:
		customer, err = domain.NewCustomer(uuid.New().String(), req.CustomerID, req.SalesOrg, i.clock)
		if err != nil {
			return err
		}
		log.Info("creating new customer")
	default:
		return fmt.Errorf("look up customer: %w", err)
	}

	customer.UpdateFromSource(data)

	plan := committer.NewPlan()
	mut, err := i.repo.UpsertMut(customer)
	if err != nil {
		return err
	}
	plan.Add(mut)

	if err := i.committer.Apply(ctx, plan); err != nil {
		return fmt.Errorf("persist customer: %w", err)
	}

	log.Info("customer sync completed", "customer_name", customer.Name())

	// 3. The materials stage needs all three context structures. Their joint
	// presence is the sole gate; missing any stops the pipeline cleanly
	// after the customer update.
	qc, ok := extractQueryContext(data)
	if !ok {
		log.Warn("customer payload missing materials query context, sync stops here",
			"missing", missingContextKeys(data))
		return nil
	}

	log.Info("dispatching materials sync")
	if err := i.dispatcher.Submit(ctx, contracts.SyncMaterialsTask{
		CustomerID: req.CustomerID,
		SalesOrg:   req.SalesOrg,
		Context:    qc,
	}); err != nil {
		return fmt.Errorf("submit materials sync: %w", err)
	}

	return nil
}

func (i *Interactor) validate(req *Request) error {
	if req.CustomerID == "" {
		return domain.ErrEmptyCustomerID
	}
	if req.SalesOrg == "" {
		return domain.ErrEmptySalesOrg
	}
	return nil
}

// extractQueryContext pulls the nested structures forwarded to later stages.
// It returns ok only when the three required ones are all present.
func extractQueryContext(data domain.Payload) (contracts.QueryContext, bool) {
	tvko, ok1 := data.Sub("WA_TVKO")
	tvak, ok2 := data.Sub("WA_TVAK")
	soldTo, ok3 := data.Sub("WA_AG")
	if !ok1 || !ok2 || !ok3 {
		return contracts.QueryContext{}, false
	}

	qc := contracts.QueryContext{
		SalesArea: tvko,
		OrderType: tvak,
		SoldTo:    soldTo,
	}
	if shipTo, ok := data.Sub("WA_WE"); ok {
		qc.ShipTo = shipTo
	}
	if payer, ok := data.Sub("WA_RG"); ok {
		qc.Payer = payer
	}
	return qc, true
}

func missingContextKeys(data domain.Payload) []string {
	var missing []string
	for _, key := range []string{"WA_TVKO", "WA_TVAK", "WA_AG"} {
		if _, ok := data.Sub(key); !ok {
			missing = append(missing, key)
		}
	}
	return missing
}
