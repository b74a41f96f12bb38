package domain

import "time"

// LedgerEntry is one row of the append-only payment ledger. Charges are
// positive amounts, refunds negative; declines are recorded with Success=false
// rather than being dropped.
type LedgerEntry struct {
	ID        int64
	OrderID   *int64
	Amount    float64
	Success   bool
	CreatedAt time.Time
}

// PaymentResult is the synchronous outcome of a charge or refund attempt.
// A business decline is Success=false with a valid TransactionID; it is not
// an error.
type PaymentResult struct {
	Success       bool
	TransactionID int64
	Error         string
}
