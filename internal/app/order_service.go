package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ordena/checkout-api/internal/clock"
	"github.com/ordena/checkout-api/internal/domain"
)

// InventoryCollaborator is the inventory contract the saga depends on.
// Reserve returns *domain.InsufficientStockError for a business rejection;
// any other error means the collaborator could not be reached.
type InventoryCollaborator interface {
	Reserve(ctx context.Context, lines []domain.ItemLine) error
	Release(ctx context.Context, lines []domain.ItemLine) error
}

// PaymentCollaborator is the payment contract the saga depends on. A business
// decline comes back as Success=false with err == nil.
type PaymentCollaborator interface {
	Charge(ctx context.Context, customerID string, amount float64, orderID *int64) (domain.PaymentResult, error)
}

type OrderRepository interface {
	Persist(ctx context.Context, customerID string, items []domain.OrderItem, total float64, now time.Time) (int64, error)
	List(ctx context.Context) ([]domain.Order, error)
}

// OrderService sequences the create-order saga: reserve stock, charge the
// customer, persist the order, releasing the reservation when the charge does
// not go through. It holds no state beyond one in-flight request.
type OrderService struct {
	inventory InventoryCollaborator
	payment   PaymentCollaborator
	orders    OrderRepository
	clock     clock.Clock
	logger    *zap.Logger
}

func NewOrderService(inventory InventoryCollaborator, payment PaymentCollaborator, orders OrderRepository, clk clock.Clock, logger *zap.Logger) *OrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{
		inventory: inventory,
		payment:   payment,
		orders:    orders,
		clock:     clk,
		logger:    logger,
	}
}

type CreateOrderInput struct {
	CustomerID string
	Items      []domain.OrderItem
}

type CreateOrderResult struct {
	OrderID int64
	Status  string
}

// CreateOrder runs the saga. Step outcomes map to errors as follows:
//
//	reserve rejected        -> *domain.InsufficientStockError (no compensation)
//	reserve unreachable     -> domain.ErrInventoryUnavailable (no compensation)
//	charge unreachable      -> release, then domain.ErrPaymentUnavailable
//	charge declined         -> release, then domain.ErrPaymentDeclined
//	persist failed          -> wrapped error; charge and stock stay as they are
//
// The release after a failed charge runs exactly once, and a failing release
// never replaces the error being reported.
func (s *OrderService) CreateOrder(ctx context.Context, in CreateOrderInput) (CreateOrderResult, error) {
	if err := validateCreateOrder(in); err != nil {
		return CreateOrderResult{}, err
	}

	total := orderTotal(in.Items)
	lines := reservationLines(in.Items)

	if err := s.inventory.Reserve(ctx, lines); err != nil {
		var insufficient *domain.InsufficientStockError
		if errors.As(err, &insufficient) {
			return CreateOrderResult{}, err
		}
		s.logger.Warn("inventory reserve failed", zap.Error(err))
		return CreateOrderResult{}, fmt.Errorf("%w: %w", domain.ErrInventoryUnavailable, err)
	}

	result, err := s.payment.Charge(ctx, in.CustomerID, total, nil)
	if err != nil {
		s.releaseReservation(ctx, lines)
		s.logger.Warn("payment charge failed", zap.Error(err))
		return CreateOrderResult{}, fmt.Errorf("%w: %w", domain.ErrPaymentUnavailable, err)
	}
	if !result.Success {
		s.releaseReservation(ctx, lines)
		return CreateOrderResult{}, domain.ErrPaymentDeclined
	}

	// A persistence failure past this point is reported as-is: the charge and
	// the stock decrement are intentionally left standing.
	orderID, err := s.orders.Persist(ctx, in.CustomerID, in.Items, total, s.clock.Now())
	if err != nil {
		s.logger.Error("order persistence failed after successful charge",
			zap.Int64("transaction_id", result.TransactionID),
			zap.Error(err))
		return CreateOrderResult{}, fmt.Errorf("persist order: %w", err)
	}

	s.logger.Info("order created",
		zap.Int64("order_id", orderID),
		zap.Int64("transaction_id", result.TransactionID),
		zap.Float64("total_amount", total))

	return CreateOrderResult{OrderID: orderID, Status: domain.OrderStatusCreated}, nil
}

func (s *OrderService) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return s.orders.List(ctx)
}

// releaseReservation is the saga's only compensating action. Its own failure
// is logged and swallowed so the caller still sees the original cause.
func (s *OrderService) releaseReservation(ctx context.Context, lines []domain.ItemLine) {
	if err := s.inventory.Release(ctx, lines); err != nil {
		s.logger.Error("inventory release failed, stock left decremented", zap.Error(err))
	}
}

func validateCreateOrder(in CreateOrderInput) error {
	if in.CustomerID == "" {
		return domain.ErrCustomerIDRequired
	}
	if len(in.Items) == 0 {
		return domain.ErrInvalidItems
	}
	for _, item := range in.Items {
		if item.SKU == "" || item.Quantity <= 0 || item.Price < 0 {
			return domain.ErrInvalidItems
		}
	}
	return nil
}

func orderTotal(items []domain.OrderItem) float64 {
	var total float64
	for _, item := range items {
		total += float64(item.Quantity) * item.Price
	}
	return total
}

func reservationLines(items []domain.OrderItem) []domain.ItemLine {
	lines := make([]domain.ItemLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, domain.ItemLine{SKU: item.SKU, Quantity: item.Quantity})
	}
	return lines
}
