package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ordena/checkout-api/internal/domain"
)

type stubInventoryService struct {
	reserveErr error
	releaseErr error
	setErr     error
	levels     []domain.StockEntry
	lastLines  []domain.ItemLine
}

func (s *stubInventoryService) SetStock(_ context.Context, entries []domain.StockEntry) (int, error) {
	if s.setErr != nil {
		return 0, s.setErr
	}
	return len(entries), nil
}

func (s *stubInventoryService) Levels(_ context.Context) ([]domain.StockEntry, error) {
	return s.levels, nil
}

func (s *stubInventoryService) Reserve(_ context.Context, lines []domain.ItemLine) error {
	s.lastLines = lines
	return s.reserveErr
}

func (s *stubInventoryService) Release(_ context.Context, lines []domain.ItemLine) error {
	s.lastLines = lines
	return s.releaseErr
}

func TestHandleReserve(t *testing.T) {
	t.Parallel()

	const body = `{"items":[{"sku":"ABC","quantity":2}]}`

	t.Run("success", func(t *testing.T) {
		svc := &stubInventoryService{}
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/inventory/reserve", strings.NewReader(body))

		HandleReserve(svc)(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if len(svc.lastLines) != 1 || svc.lastLines[0].SKU != "ABC" || svc.lastLines[0].Quantity != 2 {
			t.Fatalf("unexpected lines: %+v", svc.lastLines)
		}
	})

	t.Run("insufficient stock answers 400 with the sku", func(t *testing.T) {
		svc := &stubInventoryService{reserveErr: &domain.InsufficientStockError{SKU: "ABC"}}
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/inventory/reserve", strings.NewReader(body))

		HandleReserve(svc)(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		var resp errorResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.Code != codeInsufficientStock || resp.SKU != "ABC" {
			t.Fatalf("unexpected envelope: %+v", resp)
		}
	})

	t.Run("storage failure answers 500", func(t *testing.T) {
		svc := &stubInventoryService{reserveErr: errors.New("db down")}
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/inventory/reserve", strings.NewReader(body))

		HandleReserve(svc)(rec, req)

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
	})

	t.Run("malformed body answers 400", func(t *testing.T) {
		svc := &stubInventoryService{}
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/inventory/reserve", strings.NewReader(`not json`))

		HandleReserve(svc)(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestHandleRelease(t *testing.T) {
	t.Parallel()

	const body = `{"items":[{"sku":"ABC","quantity":2}]}`

	t.Run("success", func(t *testing.T) {
		svc := &stubInventoryService{}
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/inventory/release", strings.NewReader(body))

		HandleRelease(svc)(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("storage failure answers 500", func(t *testing.T) {
		svc := &stubInventoryService{releaseErr: errors.New("db down")}
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/inventory/release", strings.NewReader(body))

		HandleRelease(svc)(rec, req)

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
	})
}

func TestHandleSetStockAndLevels(t *testing.T) {
	t.Parallel()

	t.Run("set_stock reports updated count", func(t *testing.T) {
		svc := &stubInventoryService{}
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/inventory/set_stock",
			strings.NewReader(`{"items":[{"sku":"ABC","quantity":10},{"sku":"DEF","quantity":3}]}`))

		HandleSetStock(svc)(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var resp map[string]int
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp["updated"] != 2 {
			t.Fatalf("expected updated=2, got %+v", resp)
		}
	})

	t.Run("invalid items answer 400", func(t *testing.T) {
		svc := &stubInventoryService{setErr: domain.ErrInvalidItems}
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/inventory/set_stock",
			strings.NewReader(`{"items":[{"sku":"","quantity":-1}]}`))

		HandleSetStock(svc)(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("levels returns all entries", func(t *testing.T) {
		svc := &stubInventoryService{levels: []domain.StockEntry{
			{SKU: "ABC", Quantity: 8},
			{SKU: "DEF", Quantity: 0},
		}}
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/inventory/levels", nil)

		HandleLevels(svc)(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var resp stockItemsRequest
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if len(resp.Items) != 2 || resp.Items[0].SKU != "ABC" || resp.Items[0].Quantity != 8 {
			t.Fatalf("unexpected items: %+v", resp.Items)
		}
	})

	t.Run("levels rejects POST", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/inventory/levels", nil)

		HandleLevels(&stubInventoryService{})(rec, req)

		if rec.Code != http.StatusMethodNotAllowed {
			t.Fatalf("expected 405, got %d", rec.Code)
		}
	})
}
