// Package client holds HTTP clients for the collaborators the order saga
// calls. Each client implements the corresponding interface in internal/app,
// so tests can swap in in-memory fakes without touching transport code.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ordena/checkout-api/internal/domain"
)

const defaultTimeout = 5 * time.Second

type inventoryItem struct {
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
}

type inventoryItemsRequest struct {
	Items []inventoryItem `json:"items"`
}

// InventoryClient talks to the inventory service over HTTP with a bounded
// timeout. A timeout is indistinguishable from a refused connection: both
// surface as plain errors, which the saga maps to "unavailable".
type InventoryClient struct {
	baseURL string
	http    *http.Client
}

func NewInventoryClient(baseURL string) *InventoryClient {
	return &InventoryClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

func (c *InventoryClient) Reserve(ctx context.Context, lines []domain.ItemLine) error {
	resp, err := c.post(ctx, "/inventory/reserve", itemsPayload(lines))
	if err != nil {
		return fmt.Errorf("reserve inventory: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusBadRequest:
		var body struct {
			SKU string `json:"sku"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&body)
		return &domain.InsufficientStockError{SKU: body.SKU}
	default:
		return fmt.Errorf("reserve inventory: unexpected status %d", resp.StatusCode)
	}
}

func (c *InventoryClient) Release(ctx context.Context, lines []domain.ItemLine) error {
	resp, err := c.post(ctx, "/inventory/release", itemsPayload(lines))
	if err != nil {
		return fmt.Errorf("release inventory: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("release inventory: unexpected status %d", resp.StatusCode)
	}
	return nil
}

func (c *InventoryClient) post(ctx context.Context, path string, payload any) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.http.Do(req)
}

func itemsPayload(lines []domain.ItemLine) inventoryItemsRequest {
	items := make([]inventoryItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, inventoryItem{SKU: line.SKU, Quantity: line.Quantity})
	}
	return inventoryItemsRequest{Items: items}
}
