// Package http exposes the sync service over HTTP: a trigger endpoint for
// starting a customer sync, a progress endpoint, and the catalog read
// endpoint served from the local read model.
package http

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/light-bringer/sapsync-service/internal/app/catalog"
	"github.com/light-bringer/sapsync-service/internal/app/sync/contracts"
	"github.com/light-bringer/sapsync-service/internal/app/sync/domain"
)

type syncStarter interface {
	Execute(ctx context.Context, salesOrg, customerID string) error
}

type progressGetter interface {
	Execute(ctx context.Context, customerID, salesOrg string) (*contracts.ProgressDTO, error)
}

type catalogLister interface {
	List(ctx context.Context, req catalog.ListRequest) (*catalog.ListResult, error)
}

// Handler serves the sync API.
type Handler struct {
	startSync   syncStarter
	getProgress progressGetter
	catalog     catalogLister
	logger      *slog.Logger
}

// NewHandler creates the HTTP handler.
func NewHandler(startSync syncStarter, getProgress progressGetter, cat catalogLister, logger *slog.Logger) *Handler {
	return &Handler{
		startSync:   startSync,
		getProgress: getProgress,
		catalog:     cat,
		logger:      logger,
	}
}

// Register mounts all routes on the app.
func (h *Handler) Register(app *fiber.App) {
	api := app.Group("/api/v1")
	api.Post("/sync", h.handleStartSync)
	api.Get("/customers/:customerID/sync/progress", h.handleGetProgress)
	api.Get("/customers/:customerID/catalog", h.handleListCatalog)
	app.Get("/healthz", h.handleHealth)
}

type startSyncRequest struct {
	SalesOrg   string `json:"sales_org"`
	CustomerID string `json:"customer_id"`
}

// handleStartSync triggers a sync run. The run executes the customer stage
// synchronously and fans the rest out to workers, so a 202 means the run was
// accepted, not that it finished. A concurrent run for the same customer
// makes this a no-op that still returns 202.
func (h *Handler) handleStartSync(c *fiber.Ctx) error {
	var req startSyncRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.startSync.Execute(c.Context(), req.SalesOrg, req.CustomerID); err != nil {
		return h.mapError(c, err)
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"status":      "accepted",
		"customer_id": req.CustomerID,
		"sales_org":   req.SalesOrg,
	})
}

type progressResponse struct {
	SyncID                    string  `json:"sync_id"`
	CustomerID                string  `json:"customer_id"`
	SalesOrg                  string  `json:"sales_org"`
	Status                    string  `json:"status"`
	TotalMaterials            int     `json:"total_materials"`
	ProcessedMaterials        int     `json:"processed_materials"`
	PercentComplete           float64 `json:"percent_complete"`
	StartedAt                 string  `json:"started_at"`
	ElapsedSeconds            int     `json:"elapsed_seconds"`
	EstimatedRemainingSeconds *int    `json:"estimated_remaining_seconds,omitempty"`
	ErrorMessage              string  `json:"error_message,omitempty"`
}

func (h *Handler) handleGetProgress(c *fiber.Ctx) error {
	customerID := c.Params("customerID")
	salesOrg := c.Query("sales_org")

	dto, err := h.getProgress.Execute(c.Context(), customerID, salesOrg)
	if err != nil {
		return h.mapError(c, err)
	}

	return c.JSON(progressResponse{
		SyncID:                    dto.SyncID,
		CustomerID:                dto.CustomerID,
		SalesOrg:                  dto.SalesOrg,
		Status:                    dto.Status,
		TotalMaterials:            dto.TotalMaterials,
		ProcessedMaterials:        dto.ProcessedMaterials,
		PercentComplete:           dto.PercentComplete,
		StartedAt:                 dto.StartedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		ElapsedSeconds:            dto.ElapsedSeconds,
		EstimatedRemainingSeconds: dto.EstimatedRemainingSeconds,
		ErrorMessage:              dto.ErrorMessage,
	})
}

type catalogEntryResponse struct {
	MaterialNumber string `json:"material_number"`
	Description    string `json:"description"`
	Price          string `json:"price"`
	Currency       string `json:"currency"`
	PriceUnit      string `json:"price_unit,omitempty"`
	Posnr          string `json:"posnr,omitempty"`
	Available      bool   `json:"available"`
	UpdatedAt      string `json:"updated_at"`
}

func (h *Handler) handleListCatalog(c *fiber.Ctx) error {
	result, err := h.catalog.List(c.Context(), catalog.ListRequest{
		CustomerID: c.Params("customerID"),
		SalesOrg:   c.Query("sales_org"),
		Search:     c.Query("search"),
		Limit:      c.QueryInt("limit"),
		Offset:     c.QueryInt("offset"),
	})
	if err != nil {
		return h.mapError(c, err)
	}

	entries := make([]catalogEntryResponse, 0, len(result.Entries))
	for _, e := range result.Entries {
		entries = append(entries, catalogEntryResponse{
			MaterialNumber: e.MaterialNumber,
			Description:    e.Description,
			Price:          e.Price,
			Currency:       e.Currency,
			PriceUnit:      e.PriceUnit,
			Posnr:          e.Posnr,
			Available:      e.Available,
			UpdatedAt:      e.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		})
	}

	return c.JSON(fiber.Map{
		"entries": entries,
		"total":   result.Total,
	})
}

func (h *Handler) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// mapError translates domain errors into HTTP status codes. Anything
// unrecognized is a 500 with a generic body; details go to the log only.
func (h *Handler) mapError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrEmptyCustomerID),
		errors.Is(err, domain.ErrEmptySalesOrg),
		errors.Is(err, domain.ErrInvalidLockKey):
		return respondError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrCustomerNotFound),
		errors.Is(err, domain.ErrSyncRunNotFound):
		return respondError(c, fiber.StatusNotFound, err.Error())
	default:
		h.logger.Error("request failed", "path", c.Path(), "error", err)
		return respondError(c, fiber.StatusInternalServerError, "internal error")
	}
}

func respondError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}
