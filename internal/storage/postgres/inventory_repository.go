package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ordena/checkout-api/internal/domain"
)

type InventoryRepository struct {
	pool *pgxpool.Pool
}

func NewInventoryRepository(pool *pgxpool.Pool) *InventoryRepository {
	return &InventoryRepository{pool: pool}
}

func (r *InventoryRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

// UpsertStock replaces the quantity for one SKU, creating the row if needed.
func (r *InventoryRepository) UpsertStock(ctx context.Context, entry domain.StockEntry) error {
	const stmt = `
INSERT INTO stock (sku, quantity)
VALUES ($1, $2)
ON CONFLICT (sku) DO UPDATE SET quantity = EXCLUDED.quantity`

	if _, err := r.exec(ctx, stmt, entry.SKU, entry.Quantity); err != nil {
		return fmt.Errorf("upsert stock %s: %w", entry.SKU, err)
	}
	return nil
}

func (r *InventoryRepository) ListStock(ctx context.Context) ([]domain.StockEntry, error) {
	const query = `SELECT sku, quantity FROM stock ORDER BY sku`

	rows, err := r.query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()

	var entries []domain.StockEntry
	for rows.Next() {
		var e domain.StockEntry
		if err := rows.Scan(&e.SKU, &e.Quantity); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	return entries, nil
}

// DecrementStock takes quantity units of a SKU if, and only if, that many are
// on hand. The conditional UPDATE makes check-then-decrement one statement, so
// two concurrent reservations cannot both observe sufficient stock.
func (r *InventoryRepository) DecrementStock(ctx context.Context, line domain.ItemLine) error {
	const stmt = `UPDATE stock SET quantity = quantity - $2 WHERE sku = $1 AND quantity >= $2`

	tag, err := r.exec(ctx, stmt, line.SKU, line.Quantity)
	if err != nil {
		if isCheckViolation(err) {
			return &domain.InsufficientStockError{SKU: line.SKU}
		}
		return fmt.Errorf("decrement stock %s: %w", line.SKU, err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.InsufficientStockError{SKU: line.SKU}
	}
	return nil
}

// IncrementStock gives quantity units back. A missing SKU is a no-op, matching
// the release contract: release never fails for business reasons.
func (r *InventoryRepository) IncrementStock(ctx context.Context, line domain.ItemLine) error {
	const stmt = `UPDATE stock SET quantity = quantity + $2 WHERE sku = $1`

	if _, err := r.exec(ctx, stmt, line.SKU, line.Quantity); err != nil {
		return fmt.Errorf("increment stock %s: %w", line.SKU, err)
	}
	return nil
}

func (r *InventoryRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *InventoryRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}
