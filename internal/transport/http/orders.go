package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/ordena/checkout-api/internal/app"
	"github.com/ordena/checkout-api/internal/domain"
)

// OrderService is the minimal interface the orders boundary needs.
type OrderService interface {
	CreateOrder(ctx context.Context, in app.CreateOrderInput) (app.CreateOrderResult, error)
	ListOrders(ctx context.Context) ([]domain.Order, error)
}

// HandleOrders serves POST /orders (run the saga) and GET /orders (newest
// first listing).
func HandleOrders(svc OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			createOrder(w, r, svc)
		case http.MethodGet:
			listOrders(w, r, svc)
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

type orderItemRequest struct {
	SKU      string  `json:"sku"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type createOrderRequest struct {
	CustomerID string             `json:"customer_id"`
	Items      []orderItemRequest `json:"items"`
}

type createOrderResponse struct {
	OrderID int64  `json:"order_id"`
	Status  string `json:"status"`
}

func createOrder(w http.ResponseWriter, r *http.Request, svc OrderService) {
	var req createOrderRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
		return
	}

	items := make([]domain.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, domain.OrderItem{
			SKU:      item.SKU,
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}

	result, err := svc.CreateOrder(r.Context(), app.CreateOrderInput{
		CustomerID: req.CustomerID,
		Items:      items,
	})
	if err != nil {
		var insufficient *domain.InsufficientStockError
		switch {
		case errors.As(err, &insufficient):
			writeErrorResponse(w, http.StatusBadRequest, errorResponse{
				Error: insufficient.Error(),
				Code:  codeInsufficientStock,
				SKU:   insufficient.SKU,
			})
		case errors.Is(err, domain.ErrCustomerIDRequired):
			writeError(w, http.StatusBadRequest, codeCustomerIDRequired, err.Error())
		case errors.Is(err, domain.ErrInvalidItems):
			writeError(w, http.StatusBadRequest, codeInvalidItems, err.Error())
		case errors.Is(err, domain.ErrPaymentDeclined):
			writeError(w, http.StatusPaymentRequired, codePaymentDeclined, err.Error())
		case errors.Is(err, domain.ErrInventoryUnavailable), errors.Is(err, domain.ErrPaymentUnavailable):
			writeError(w, http.StatusServiceUnavailable, codeServiceUnavailable, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(createOrderResponse{
		OrderID: result.OrderID,
		Status:  result.Status,
	})
}

type orderResponse struct {
	ID          int64     `json:"id"`
	CustomerID  string    `json:"customer_id"`
	Status      string    `json:"status"`
	TotalAmount float64   `json:"total_amount"`
	CreatedAt   time.Time `json:"created_at"`
}

type listOrdersResponse struct {
	Orders []orderResponse `json:"orders"`
}

func listOrders(w http.ResponseWriter, r *http.Request, svc OrderService) {
	orders, err := svc.ListOrders(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
		return
	}

	resp := listOrdersResponse{Orders: make([]orderResponse, 0, len(orders))}
	for _, o := range orders {
		resp.Orders = append(resp.Orders, orderResponse{
			ID:          o.ID,
			CustomerID:  o.CustomerID,
			Status:      o.Status,
			TotalAmount: o.TotalAmount,
			CreatedAt:   o.CreatedAt,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}
