package contracts

import (
	"context"

	"github.com/light-bringer/sapsync-service/internal/app/sync/domain"
)

// QueryContext carries the nested structures from the customer payload that
// the source system requires as query context on the follow-up calls. The
// first three must all be present for the pipeline to continue past the
// customer stage; ShipTo and Payer are optional.
type QueryContext struct {
	SalesArea domain.Payload // WA_TVKO
	OrderType domain.Payload // WA_TVAK
	SoldTo    domain.Payload // WA_AG
	ShipTo    domain.Payload // WA_WE
	Payer     domain.Payload // WA_RG
}

// SalesOrg extracts the sales org (VKORG) from the sales-area structure,
// or "" when it cannot be resolved.
func (qc QueryContext) SalesOrg() string {
	return qc.SalesArea.String("VKORG")
}

// CustomerDataSource is the capability for reaching the external ERP. All
// calls may block for the duration of the remote request; implementations
// must enforce a finite timeout. Transport and remote errors propagate to
// the caller unmodified.
type CustomerDataSource interface {
	// FetchCustomer retrieves the full customer payload.
	FetchCustomer(ctx context.Context, salesOrg, customerID string) (domain.Payload, error)

	// FetchMaterialList retrieves the material list for the customer described
	// by the query context. The list lives under the X_MAT_FOUND key.
	FetchMaterialList(ctx context.Context, qc QueryContext) (domain.Payload, error)

	// FetchMaterialPrice retrieves the price payload for one material. A
	// non-zero posnr is forwarded so the source resolves the correct quote
	// line. The price data lives under the OUT_WA_MATNR key.
	FetchMaterialPrice(ctx context.Context, customerID, materialNumber string, qc QueryContext, posnr domain.Posnr) (domain.Payload, error)
}
