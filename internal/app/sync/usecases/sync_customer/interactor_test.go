package sync_customer

import (
	"context"
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/sapsync-service/internal/app/sync/contracts"
	"github.com/light-bringer/sapsync-service/internal/app/sync/domain"
	"github.com/light-bringer/sapsync-service/internal/pkg/clock"
	"github.com/light-bringer/sapsync-service/internal/pkg/committer"
	"github.com/light-bringer/sapsync-service/internal/pkg/logging"
)

type fakeSource struct {
	customerPayload domain.Payload
	customerErr     error
}

func (f *fakeSource) FetchCustomer(ctx context.Context, salesOrg, customerID string) (domain.Payload, error) {
	return f.customerPayload, f.customerErr
}

func (f *fakeSource) FetchMaterialList(ctx context.Context, qc contracts.QueryContext) (domain.Payload, error) {
	return nil, errors.New("not used")
}

func (f *fakeSource) FetchMaterialPrice(ctx context.Context, customerID, materialNumber string, qc contracts.QueryContext, posnr domain.Posnr) (domain.Payload, error) {
	return nil, errors.New("not used")
}

type fakeCustomerRepo struct {
	existing *domain.Customer
	getErr   error
	upserted []*domain.Customer
}

func (f *fakeCustomerRepo) UpsertMut(c *domain.Customer) (*spanner.Mutation, error) {
	f.upserted = append(f.upserted, c)
	return nil, nil
}

func (f *fakeCustomerRepo) GetBySapID(ctx context.Context, sapCustomerID, salesOrg string) (*domain.Customer, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.existing == nil {
		return nil, domain.ErrCustomerNotFound
	}
	return f.existing, nil
}

type fakeDispatcher struct {
	tasks     []contracts.Task
	submitErr error
}

func (f *fakeDispatcher) Submit(ctx context.Context, task contracts.Task) error {
	if f.submitErr != nil {
		return f.submitErr
	}
	f.tasks = append(f.tasks, task)
	return nil
}

func fullCustomerPayload() domain.Payload {
	return domain.Payload{
		"NAME1":   "ACME Corp",
		"LAND1":   "DE",
		"WA_TVKO": map[string]any{"VKORG": "100"},
		"WA_TVAK": map[string]any{"AUART": "TA"},
		"WA_AG":   map[string]any{"KUNNR": "CUST001"},
		"WA_WE":   map[string]any{"KUNNR": "CUST002"},
	}
}

func newTestInteractor(src *fakeSource, repo *fakeCustomerRepo, disp *fakeDispatcher) *Interactor {
	clk := clock.NewMockClock(time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))
	// Fake repos return nil mutations, so the plan stays empty and the
	// committer never reaches a real Spanner client.
	return NewInteractor(src, repo, disp, committer.NewCommitter(nil), clk, logging.New("error"))
}

func TestExecute_Validation(t *testing.T) {
	i := newTestInteractor(&fakeSource{}, &fakeCustomerRepo{}, &fakeDispatcher{})

	err := i.Execute(context.Background(), &Request{SalesOrg: "100"})
	assert.ErrorIs(t, err, domain.ErrEmptyCustomerID)

	err = i.Execute(context.Background(), &Request{CustomerID: "CUST001"})
	assert.ErrorIs(t, err, domain.ErrEmptySalesOrg)
}

func TestExecute_FetchFailureIsFatal(t *testing.T) {
	src := &fakeSource{customerErr: errors.New("gateway timeout")}
	repo := &fakeCustomerRepo{}
	disp := &fakeDispatcher{}
	i := newTestInteractor(src, repo, disp)

	err := i.Execute(context.Background(), &Request{SalesOrg: "100", CustomerID: "CUST001"})
	require.Error(t, err)
	assert.Empty(t, repo.upserted)
	assert.Empty(t, disp.tasks)
}

func TestExecute_CreatesNewCustomerAndDispatches(t *testing.T) {
	src := &fakeSource{customerPayload: fullCustomerPayload()}
	repo := &fakeCustomerRepo{}
	disp := &fakeDispatcher{}
	i := newTestInteractor(src, repo, disp)

	err := i.Execute(context.Background(), &Request{SalesOrg: "100", CustomerID: "CUST001"})
	require.NoError(t, err)

	require.Len(t, repo.upserted, 1)
	created := repo.upserted[0]
	assert.Equal(t, "CUST001", created.SapCustomerID())
	assert.Equal(t, "ACME Corp", created.Name1())
	assert.Equal(t, "DE", created.Country())
	assert.NotEmpty(t, created.ID())

	require.Len(t, disp.tasks, 1)
	task, ok := disp.tasks[0].(contracts.SyncMaterialsTask)
	require.True(t, ok)
	assert.Equal(t, "CUST001", task.CustomerID)
	assert.Equal(t, "100", task.SalesOrg)
	assert.Equal(t, "100", task.Context.SalesOrg())
	assert.Equal(t, "CUST002", task.Context.ShipTo.String("KUNNR"))
	assert.Nil(t, task.Context.Payer)
}

func TestExecute_UpdatesExistingCustomer(t *testing.T) {
	clk := clock.NewMockClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	existing, err := domain.NewCustomer("existing-id", "CUST001", "100", clk)
	require.NoError(t, err)

	src := &fakeSource{customerPayload: fullCustomerPayload()}
	repo := &fakeCustomerRepo{existing: existing}
	disp := &fakeDispatcher{}
	i := newTestInteractor(src, repo, disp)

	err = i.Execute(context.Background(), &Request{SalesOrg: "100", CustomerID: "CUST001"})
	require.NoError(t, err)

	require.Len(t, repo.upserted, 1)
	assert.Equal(t, "existing-id", repo.upserted[0].ID())
	assert.Equal(t, "ACME Corp", repo.upserted[0].Name1())
}

func TestExecute_MissingContextStopsPipelineCleanly(t *testing.T) {
	payload := fullCustomerPayload()
	delete(payload, "WA_TVAK")

	src := &fakeSource{customerPayload: payload}
	repo := &fakeCustomerRepo{}
	disp := &fakeDispatcher{}
	i := newTestInteractor(src, repo, disp)

	err := i.Execute(context.Background(), &Request{SalesOrg: "100", CustomerID: "CUST001"})
	require.NoError(t, err)

	// The customer update itself still went through.
	require.Len(t, repo.upserted, 1)
	assert.Empty(t, disp.tasks)
}

func TestExecute_LookupFailurePropagates(t *testing.T) {
	src := &fakeSource{customerPayload: fullCustomerPayload()}
	repo := &fakeCustomerRepo{getErr: errors.New("spanner unavailable")}
	disp := &fakeDispatcher{}
	i := newTestInteractor(src, repo, disp)

	err := i.Execute(context.Background(), &Request{SalesOrg: "100", CustomerID: "CUST001"})
	require.Error(t, err)
	assert.Empty(t, disp.tasks)
}

func TestExecute_SubmitFailurePropagates(t *testing.T) {
	src := &fakeSource{customerPayload: fullCustomerPayload()}
	repo := &fakeCustomerRepo{}
	disp := &fakeDispatcher{submitErr: errors.New("queue full")}
	i := newTestInteractor(src, repo, disp)

	err := i.Execute(context.Background(), &Request{SalesOrg: "100", CustomerID: "CUST001"})
	require.Error(t, err)
	// The customer write is not rolled back; only the fan-out failed.
	assert.Len(t, repo.upserted, 1)
}
