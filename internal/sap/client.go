// Package sap implements the CustomerDataSource capability against the SAP
// ERP JSON gateway. Responses are loosely-typed key/value documents; all
// shape handling stays behind domain.Payload so the orchestrators never see
// raw JSON.
package sap

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/light-bringer/sapsync-service/internal/app/sync/contracts"
	"github.com/light-bringer/sapsync-service/internal/app/sync/domain"
)

// RFC-style gateway endpoints.
const (
	endpointCustomer    = "/ZSDO_EBU_ORDERS_ACCESS"
	endpointMaterials   = "/ZSDO_EBU_LOAD_MATERIALS"
	endpointPrice       = "/ZSDO_EBU_SHOW_MATERIAL_PRICE"
	defaultFetchTimeout = 30 * time.Second
)

// Config holds the gateway connection settings.
type Config struct {
	BaseURL  string
	Username string
	Password string
	// Timeout bounds every gateway call; zero selects the 30s default. The
	// bound is mandatory so a hung ERP never wedges a worker.
	Timeout time.Duration
}

// Client talks to the SAP gateway over HTTP.
type Client struct {
	cfg    Config
	http   *http.Client
	logger *slog.Logger
}

var _ contracts.CustomerDataSource = (*Client)(nil)

// NewClient creates a gateway client.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// FetchCustomer retrieves the full customer payload.
func (c *Client) FetchCustomer(ctx context.Context, salesOrg, customerID string) (domain.Payload, error) {
	c.logger.Info("fetching customer data from source", "sales_org", salesOrg, "customer_id", customerID)
	return c.post(ctx, endpointCustomer, map[string]any{
		"I_VKORG":       salesOrg,
		"I_FORCE_KUNNR": customerID,
	})
}

// FetchMaterialList retrieves the material list for the customer described
// by the query context.
func (c *Client) FetchMaterialList(ctx context.Context, qc contracts.QueryContext) (domain.Payload, error) {
	c.logger.Info("loading materials from source", "customer_id", qc.SoldTo.String("KUNNR"))
	return c.post(ctx, endpointMaterials, map[string]any{
		"I_WA_TVKO": qc.SalesArea,
		"I_WA_TVAK": qc.OrderType,
		"I_WA_AG":   qc.SoldTo,
		"I_WA_WE":   qc.ShipTo,
		"I_WA_RG":   qc.Payer,
	})
}

// FetchMaterialPrice retrieves the price payload for one material, forwarding
// the position number when present.
func (c *Client) FetchMaterialPrice(ctx context.Context, customerID, materialNumber string, qc contracts.QueryContext, posnr domain.Posnr) (domain.Payload, error) {
	c.logger.Info("fetching material price from source",
		"customer_id", customerID, "material_number", materialNumber, "posnr", posnr.Value())

	materialKey := map[string]any{"MATNR": materialNumber}
	if !posnr.IsZero() {
		materialKey["POSNR"] = posnr.Value()
	}

	return c.post(ctx, endpointPrice, map[string]any{
		"I_WA_TVKO":   qc.SalesArea,
		"I_WA_TVAK":   qc.OrderType,
		"I_WA_AG":     qc.SoldTo,
		"I_WA_WE":     qc.ShipTo,
		"I_WA_RG":     qc.Payer,
		"IN_WA_MATNR": materialKey,
	})
}

func (c *Client) post(ctx context.Context, endpoint string, payload map[string]any) (domain.Payload, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode gateway payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build gateway request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.cfg.Username, c.cfg.Password)

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("gateway call failed", "endpoint", endpoint, "error", err)
		return nil, fmt.Errorf("gateway call %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read gateway response %s: %w", endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("gateway returned error status", "endpoint", endpoint, "status", resp.StatusCode)
		return nil, fmt.Errorf("gateway call %s: unexpected status %d", endpoint, resp.StatusCode)
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode gateway response %s: %w", endpoint, err)
	}

	c.logger.Debug("gateway response", "endpoint", endpoint, "status", resp.StatusCode, "response_size", len(data))
	return domain.Payload(doc), nil
}
