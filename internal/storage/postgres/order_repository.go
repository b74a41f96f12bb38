package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ordena/checkout-api/internal/domain"
)

type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Persist writes the order row and every item in a single transaction and
// returns the new order id. Either all rows become visible or none do.
func (r *OrderRepository) Persist(ctx context.Context, customerID string, items []domain.OrderItem, total float64, now time.Time) (int64, error) {
	var orderID int64
	err := withTx(ctx, r.pool, func(txCtx context.Context) error {
		const orderStmt = `
INSERT INTO orders (customer_id, status, total_amount, created_at)
VALUES ($1, $2, $3, $4)
RETURNING id`

		if err := r.queryRow(txCtx, orderStmt, customerID, domain.OrderStatusCreated, total, now).Scan(&orderID); err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		const itemStmt = `
INSERT INTO order_items (order_id, sku, quantity, price)
VALUES ($1, $2, $3, $4)`

		for _, item := range items {
			if _, err := r.exec(txCtx, itemStmt, orderID, item.SKU, item.Quantity, item.Price); err != nil {
				return fmt.Errorf("insert order item %s: %w", item.SKU, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return orderID, nil
}

// List returns orders newest first.
func (r *OrderRepository) List(ctx context.Context) ([]domain.Order, error) {
	const query = `SELECT id, customer_id, status, total_amount, created_at FROM orders ORDER BY id DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.Status, &o.TotalAmount, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func (r *OrderRepository) ListItems(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	const query = `SELECT order_id, sku, quantity, price FROM order_items WHERE order_id = $1 ORDER BY id`

	rows, err := r.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var it domain.OrderItem
		if err := rows.Scan(&it.OrderID, &it.SKU, &it.Quantity, &it.Price); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	return items, nil
}

func (r *OrderRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *OrderRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
