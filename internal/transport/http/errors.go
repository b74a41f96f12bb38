package http

import (
	"encoding/json"
	"net/http"
)

const (
	codeMethodNotAllowed   = "method_not_allowed"
	codeNotFound           = "not_found"
	codeInvalidRequestBody = "invalid_request_body"
	codeInvalidItems       = "invalid_items"
	codeInvalidAmount      = "invalid_amount"
	codeCustomerIDRequired = "customer_id_required"
	codeInsufficientStock  = "insufficient_stock"
	codePaymentDeclined    = "payment_declined"
	codeServiceUnavailable = "service_unavailable"
	codeDivisionByZero     = "division_by_zero"
	codeNegativeSquareRoot = "negative_square_root"
	codeForbidden          = "forbidden"
	codeInternalError      = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
	SKU   string `json:"sku,omitempty"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeErrorResponse(w, status, errorResponse{Error: msg, Code: code})
}

func writeErrorResponse(w http.ResponseWriter, status int, resp errorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(resp)
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}
