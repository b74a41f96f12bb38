package app

import (
	"context"

	"github.com/ordena/checkout-api/internal/domain"
)

type InventoryRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	UpsertStock(ctx context.Context, entry domain.StockEntry) error
	ListStock(ctx context.Context) ([]domain.StockEntry, error)
	DecrementStock(ctx context.Context, line domain.ItemLine) error
	IncrementStock(ctx context.Context, line domain.ItemLine) error
}

type InventoryService struct {
	repo InventoryRepository
}

func NewInventoryService(repo InventoryRepository) *InventoryService {
	return &InventoryService{repo: repo}
}

// SetStock unconditionally replaces the quantity of every given SKU and
// returns how many rows were written.
func (s *InventoryService) SetStock(ctx context.Context, entries []domain.StockEntry) (int, error) {
	if err := validateStockEntries(entries); err != nil {
		return 0, err
	}

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		for _, entry := range entries {
			if err := s.repo.UpsertStock(txCtx, entry); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(entries), nil
}

func (s *InventoryService) Levels(ctx context.Context) ([]domain.StockEntry, error) {
	return s.repo.ListStock(ctx)
}

// Reserve decrements every requested line inside one transaction. The first
// line without enough stock aborts the whole reservation; decrements already
// applied for earlier lines roll back with it.
func (s *InventoryService) Reserve(ctx context.Context, lines []domain.ItemLine) error {
	if err := validateLines(lines); err != nil {
		return err
	}

	return s.repo.WithTx(ctx, func(txCtx context.Context) error {
		for _, line := range lines {
			if err := s.repo.DecrementStock(txCtx, line); err != nil {
				return err
			}
		}
		return nil
	})
}

// Release gives reserved quantities back. The caller guarantees at most one
// release per reservation; a storage failure here is fatal, not retried.
func (s *InventoryService) Release(ctx context.Context, lines []domain.ItemLine) error {
	if err := validateLines(lines); err != nil {
		return err
	}

	return s.repo.WithTx(ctx, func(txCtx context.Context) error {
		for _, line := range lines {
			if err := s.repo.IncrementStock(txCtx, line); err != nil {
				return err
			}
		}
		return nil
	})
}

func validateLines(lines []domain.ItemLine) error {
	if len(lines) == 0 {
		return domain.ErrInvalidItems
	}
	for _, line := range lines {
		if line.SKU == "" || line.Quantity <= 0 {
			return domain.ErrInvalidItems
		}
	}
	return nil
}

func validateStockEntries(entries []domain.StockEntry) error {
	if len(entries) == 0 {
		return domain.ErrInvalidItems
	}
	for _, entry := range entries {
		if entry.SKU == "" || entry.Quantity < 0 {
			return domain.ErrInvalidItems
		}
	}
	return nil
}
