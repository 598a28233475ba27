// Package get_progress answers the read-only progress query: the status of
// the most recent sync run for a customer. Failures surface only here; there
// is no synchronous error channel back to whoever triggered the sync.
package get_progress

import (
	"context"

	"github.com/light-bringer/sapsync-service/internal/app/sync/contracts"
	"github.com/light-bringer/sapsync-service/internal/app/sync/domain"
)

// Query handles the get-progress read.
type Query struct {
	repo contracts.SyncProgressRepository
}

// NewQuery creates a new get-progress query.
func NewQuery(repo contracts.SyncProgressRepository) *Query {
	return &Query{repo: repo}
}

// Execute returns the latest run for the customer, or
// domain.ErrSyncRunNotFound when none exists.
func (q *Query) Execute(ctx context.Context, customerID, salesOrg string) (*contracts.ProgressDTO, error) {
	if customerID == "" {
		return nil, domain.ErrEmptyCustomerID
	}
	if salesOrg == "" {
		return nil, domain.ErrEmptySalesOrg
	}

	progress, err := q.repo.GetLatestForCustomer(ctx, customerID, salesOrg)
	if err != nil {
		return nil, err
	}

	dto := &contracts.ProgressDTO{
		SyncID:             progress.ID(),
		CustomerID:         progress.CustomerID(),
		SalesOrg:           progress.SalesOrg(),
		Status:             string(progress.Status()),
		TotalMaterials:     progress.TotalMaterials(),
		ProcessedMaterials: progress.ProcessedMaterials(),
		PercentComplete:    progress.PercentComplete(),
		StartedAt:          progress.StartedAt(),
		ElapsedSeconds:     progress.ElapsedSeconds(),
		ErrorMessage:       progress.ErrorMessage(),
	}
	if remaining, ok := progress.EstimatedRemainingSeconds(); ok {
		dto.EstimatedRemainingSeconds = &remaining
	}
	return dto, nil
}
