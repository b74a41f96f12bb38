package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ordena/checkout-api/internal/app"
	"github.com/ordena/checkout-api/internal/domain"
)

// PaymentService is the minimal interface the payment endpoints need.
type PaymentService interface {
	Charge(ctx context.Context, in app.ChargeInput) (domain.PaymentResult, error)
	Refund(ctx context.Context, in app.RefundInput) (domain.PaymentResult, error)
}

type chargeRequest struct {
	CustomerID string  `json:"customer_id"`
	Amount     float64 `json:"amount"`
	OrderID    *int64  `json:"order_id"`
}

type refundRequest struct {
	OrderID int64   `json:"order_id"`
	Amount  float64 `json:"amount"`
}

type paymentResultResponse struct {
	Success       bool   `json:"success"`
	TransactionID int64  `json:"transaction_id"`
	Error         string `json:"error,omitempty"`
}

// HandleCharge serves POST /payments/charge. Declines answer 200 with
// success=false; only validation and ledger failures use error statuses.
func HandleCharge(svc PaymentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req chargeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		result, err := svc.Charge(r.Context(), app.ChargeInput{
			CustomerID: req.CustomerID,
			Amount:     req.Amount,
			OrderID:    req.OrderID,
		})
		if err != nil {
			if errors.Is(err, domain.ErrInvalidAmount) {
				writeError(w, http.StatusBadRequest, codeInvalidAmount, err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			return
		}

		writePaymentResult(w, result)
	}
}

// HandleRefund serves POST /payments/refund.
func HandleRefund(svc PaymentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req refundRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		result, err := svc.Refund(r.Context(), app.RefundInput{
			OrderID: req.OrderID,
			Amount:  req.Amount,
		})
		if err != nil {
			if errors.Is(err, domain.ErrInvalidAmount) {
				writeError(w, http.StatusBadRequest, codeInvalidAmount, err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			return
		}

		writePaymentResult(w, result)
	}
}

func writePaymentResult(w http.ResponseWriter, result domain.PaymentResult) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(paymentResultResponse{
		Success:       result.Success,
		TransactionID: result.TransactionID,
		Error:         result.Error,
	})
}
