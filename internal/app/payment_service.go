package app

import (
	"context"
	"math"
	"strings"

	"github.com/ordena/checkout-api/internal/clock"
	"github.com/ordena/checkout-api/internal/domain"
)

type PaymentRepository interface {
	AppendEntry(ctx context.Context, entry domain.LedgerEntry) (int64, error)
}

// RiskPolicy decides whether a charge for a customer is accepted. It models
// an injectable fraud predicate, not business law baked into the service.
type RiskPolicy interface {
	Approve(customerID string) bool
}

// BlockedPrefixPolicy declines customers whose id starts with Prefix,
// case-insensitively.
type BlockedPrefixPolicy struct {
	Prefix string
}

func (p BlockedPrefixPolicy) Approve(customerID string) bool {
	if p.Prefix == "" {
		return true
	}
	return !strings.HasPrefix(strings.ToUpper(customerID), strings.ToUpper(p.Prefix))
}

type PaymentService struct {
	repo   PaymentRepository
	policy RiskPolicy
	clock  clock.Clock
}

func NewPaymentService(repo PaymentRepository, policy RiskPolicy, clk clock.Clock) *PaymentService {
	return &PaymentService{
		repo:   repo,
		policy: policy,
		clock:  clk,
	}
}

type ChargeInput struct {
	CustomerID string
	Amount     float64
	OrderID    *int64
}

// Charge validates the amount, consults the risk policy and records the
// attempt in the ledger before answering. A decline is a successful call with
// Success=false; only a ledger-write failure is an error.
func (s *PaymentService) Charge(ctx context.Context, in ChargeInput) (domain.PaymentResult, error) {
	if in.Amount <= 0 {
		return domain.PaymentResult{}, domain.ErrInvalidAmount
	}

	approved := s.policy.Approve(in.CustomerID)

	id, err := s.repo.AppendEntry(ctx, domain.LedgerEntry{
		OrderID:   in.OrderID,
		Amount:    in.Amount,
		Success:   approved,
		CreatedAt: s.clock.Now(),
	})
	if err != nil {
		return domain.PaymentResult{}, err
	}

	if !approved {
		return domain.PaymentResult{
			Success:       false,
			TransactionID: id,
			Error:         domain.ErrPaymentDeclined.Error(),
		}, nil
	}
	return domain.PaymentResult{Success: true, TransactionID: id}, nil
}

type RefundInput struct {
	OrderID int64
	Amount  float64
}

// Refund appends a negative ledger entry. There is no check that a matching
// charge exists; pairing refunds with charges is out of scope.
func (s *PaymentService) Refund(ctx context.Context, in RefundInput) (domain.PaymentResult, error) {
	if in.Amount <= 0 {
		return domain.PaymentResult{}, domain.ErrInvalidAmount
	}

	orderID := in.OrderID
	id, err := s.repo.AppendEntry(ctx, domain.LedgerEntry{
		OrderID:   &orderID,
		Amount:    -math.Abs(in.Amount),
		Success:   true,
		CreatedAt: s.clock.Now(),
	})
	if err != nil {
		return domain.PaymentResult{}, err
	}
	return domain.PaymentResult{Success: true, TransactionID: id}, nil
}
