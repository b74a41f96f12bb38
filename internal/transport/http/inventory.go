package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ordena/checkout-api/internal/domain"
)

// InventoryService is the minimal interface the inventory endpoints need.
type InventoryService interface {
	SetStock(ctx context.Context, entries []domain.StockEntry) (int, error)
	Levels(ctx context.Context) ([]domain.StockEntry, error)
	Reserve(ctx context.Context, lines []domain.ItemLine) error
	Release(ctx context.Context, lines []domain.ItemLine) error
}

type stockItem struct {
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
}

type stockItemsRequest struct {
	Items []stockItem `json:"items"`
}

func (r stockItemsRequest) lines() []domain.ItemLine {
	lines := make([]domain.ItemLine, 0, len(r.Items))
	for _, item := range r.Items {
		lines = append(lines, domain.ItemLine{SKU: item.SKU, Quantity: item.Quantity})
	}
	return lines
}

// HandleSetStock serves POST /inventory/set_stock.
func HandleSetStock(svc InventoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req stockItemsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		entries := make([]domain.StockEntry, 0, len(req.Items))
		for _, item := range req.Items {
			entries = append(entries, domain.StockEntry{SKU: item.SKU, Quantity: item.Quantity})
		}

		updated, err := svc.SetStock(r.Context(), entries)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidItems) {
				writeError(w, http.StatusBadRequest, codeInvalidItems, err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]int{"updated": updated})
	}
}

// HandleLevels serves GET /inventory/levels.
func HandleLevels(svc InventoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		entries, err := svc.Levels(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			return
		}

		items := make([]stockItem, 0, len(entries))
		for _, e := range entries {
			items = append(items, stockItem{SKU: e.SKU, Quantity: e.Quantity})
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(stockItemsRequest{Items: items})
	}
}

// HandleReserve serves POST /inventory/reserve. An insufficient SKU answers
// 400 with the offending sku in the envelope so callers can tell a business
// rejection from a malformed request.
func HandleReserve(svc InventoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req stockItemsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		if err := svc.Reserve(r.Context(), req.lines()); err != nil {
			var insufficient *domain.InsufficientStockError
			switch {
			case errors.As(err, &insufficient):
				writeErrorResponse(w, http.StatusBadRequest, errorResponse{
					Error: insufficient.Error(),
					Code:  codeInsufficientStock,
					SKU:   insufficient.SKU,
				})
			case errors.Is(err, domain.ErrInvalidItems):
				writeError(w, http.StatusBadRequest, codeInvalidItems, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]bool{"reserved": true})
	}
}

// HandleRelease serves POST /inventory/release.
func HandleRelease(svc InventoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req stockItemsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		if err := svc.Release(r.Context(), req.lines()); err != nil {
			if errors.Is(err, domain.ErrInvalidItems) {
				writeError(w, http.StatusBadRequest, codeInvalidItems, err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]bool{"released": true})
	}
}
