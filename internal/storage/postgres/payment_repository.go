package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ordena/checkout-api/internal/domain"
)

type PaymentRepository struct {
	pool *pgxpool.Pool
}

func NewPaymentRepository(pool *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{pool: pool}
}

// AppendEntry records one charge or refund attempt and returns the assigned
// ledger id. The ledger is append-only; rows are never updated.
func (r *PaymentRepository) AppendEntry(ctx context.Context, entry domain.LedgerEntry) (int64, error) {
	const stmt = `
INSERT INTO payments (order_id, amount, success, created_at)
VALUES ($1, $2, $3, $4)
RETURNING id`

	var id int64
	err := r.queryRow(ctx, stmt, entry.OrderID, entry.Amount, entry.Success, entry.CreatedAt).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("append ledger entry: %w", err)
	}
	return id, nil
}

func (r *PaymentRepository) ListEntries(ctx context.Context) ([]domain.LedgerEntry, error) {
	const query = `SELECT id, order_id, amount, success, created_at FROM payments ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list ledger: %w", err)
	}
	defer rows.Close()

	var entries []domain.LedgerEntry
	for rows.Next() {
		var e domain.LedgerEntry
		if err := rows.Scan(&e.ID, &e.OrderID, &e.Amount, &e.Success, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list ledger: %w", err)
	}
	return entries, nil
}

func (r *PaymentRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
