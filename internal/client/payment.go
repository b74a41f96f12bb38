package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ordena/checkout-api/internal/domain"
)

// PaymentClient talks to the payment service over HTTP. A 200 with
// success=false is a business decline and comes back as a result, not an
// error; everything else is a transport failure.
type PaymentClient struct {
	baseURL string
	http    *http.Client
}

func NewPaymentClient(baseURL string) *PaymentClient {
	return &PaymentClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

type chargeRequest struct {
	CustomerID string  `json:"customer_id"`
	Amount     float64 `json:"amount"`
	OrderID    *int64  `json:"order_id,omitempty"`
}

type paymentResponse struct {
	Success       bool   `json:"success"`
	TransactionID int64  `json:"transaction_id"`
	Error         string `json:"error,omitempty"`
}

func (c *PaymentClient) Charge(ctx context.Context, customerID string, amount float64, orderID *int64) (domain.PaymentResult, error) {
	payload := chargeRequest{CustomerID: customerID, Amount: amount, OrderID: orderID}

	body, err := json.Marshal(payload)
	if err != nil {
		return domain.PaymentResult{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/payments/charge", bytes.NewReader(body))
	if err != nil {
		return domain.PaymentResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.PaymentResult{}, fmt.Errorf("charge payment: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.PaymentResult{}, fmt.Errorf("charge payment: unexpected status %d", resp.StatusCode)
	}

	var decoded paymentResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.PaymentResult{}, fmt.Errorf("charge payment: decode response: %w", err)
	}

	return domain.PaymentResult{
		Success:       decoded.Success,
		TransactionID: decoded.TransactionID,
		Error:         decoded.Error,
	}, nil
}
