package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ordena/checkout-api/internal/calc"
)

type operandsRequest struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
}

type singleOperandRequest struct {
	A float64 `json:"a"`
}

type resultResponse struct {
	Result float64 `json:"result"`
}

// HandleCalcBinary serves one two-operand calculator endpoint. Operation
// errors (division by zero) answer 400.
func HandleCalcBinary(op func(a, b float64) (float64, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req operandsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		res, err := op(req.A, req.B)
		if err != nil {
			code := codeInvalidRequestBody
			if errors.Is(err, calc.ErrDivisionByZero) {
				code = codeDivisionByZero
			}
			writeError(w, http.StatusBadRequest, code, err.Error())
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resultResponse{Result: res})
	}
}

// HandleCalcSqrt serves POST /sqrt.
func HandleCalcSqrt(c *calc.Calculator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req singleOperandRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		res, err := c.Sqrt(req.A)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeNegativeSquareRoot, err.Error())
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resultResponse{Result: res})
	}
}

// HandleCalcHistory serves GET /history.
func HandleCalcHistory(c *calc.Calculator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(c.History())
	}
}
