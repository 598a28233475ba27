package contracts

import (
	"context"

	"github.com/light-bringer/sapsync-service/internal/app/sync/domain"
)

// Task kinds as seen by the dispatcher.
const (
	KindSyncMaterials     = "sync_materials"
	KindSyncMaterialPrice = "sync_material_price"
)

// Task is a unit of asynchronous work submitted to the dispatcher.
type Task interface {
	Kind() string
}

// SyncMaterialsTask fans a customer sync out into the materials stage.
type SyncMaterialsTask struct {
	CustomerID string
	SalesOrg   string
	Context    QueryContext
}

func (SyncMaterialsTask) Kind() string { return KindSyncMaterials }

// SyncMaterialPriceTask fetches and stores the price for one
// (customer, material) pair. SyncID links back to the run's progress row;
// it may be empty when no tracking was set up.
type SyncMaterialPriceTask struct {
	CustomerID     string
	MaterialNumber string
	SalesOrg       string
	Context        QueryContext
	Posnr          domain.Posnr
	SyncID         string
}

func (SyncMaterialPriceTask) Kind() string { return KindSyncMaterialPrice }

// Dispatcher is the asynchronous task-submission capability: fire-and-forget,
// at-least-once delivery, no ordering guarantee between tasks and no
// synchronous result. Submit returns an error only when the task could not
// be accepted at all.
type Dispatcher interface {
	Submit(ctx context.Context, task Task) error
}
