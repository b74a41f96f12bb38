package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/ordena/checkout-api/internal/domain"
	"github.com/ordena/checkout-api/internal/testutil"
)

func TestPaymentRepository(t *testing.T) {
	pool := testutil.NewTestPool(t)
	repo := NewPaymentRepository(pool)
	testutil.ApplyMigrations(t, context.Background(), pool)

	now := time.Date(2025, 3, 4, 9, 0, 0, 0, time.UTC)

	t.Run("AppendEntry returns sequential ids", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		first, err := repo.AppendEntry(ctx, domain.LedgerEntry{Amount: 20.0, Success: true, CreatedAt: now})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		second, err := repo.AppendEntry(ctx, domain.LedgerEntry{Amount: 5.0, Success: false, CreatedAt: now})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if second <= first {
			t.Fatalf("expected id %d > %d", second, first)
		}
	})

	t.Run("ListEntries preserves amounts, flags and order ids", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		orderID := int64(7)
		if _, err := repo.AppendEntry(ctx, domain.LedgerEntry{Amount: 20.0, Success: true, CreatedAt: now}); err != nil {
			t.Fatalf("append charge: %v", err)
		}
		if _, err := repo.AppendEntry(ctx, domain.LedgerEntry{OrderID: &orderID, Amount: -20.0, Success: true, CreatedAt: now}); err != nil {
			t.Fatalf("append refund: %v", err)
		}

		entries, err := repo.ListEntries(ctx)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(entries) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(entries))
		}
		if entries[0].Amount != 20.0 || !entries[0].Success || entries[0].OrderID != nil {
			t.Fatalf("unexpected charge row: %+v", entries[0])
		}
		if entries[1].Amount != -20.0 || entries[1].OrderID == nil || *entries[1].OrderID != 7 {
			t.Fatalf("unexpected refund row: %+v", entries[1])
		}
		if !entries[0].CreatedAt.Equal(now) {
			t.Fatalf("expected created_at %v, got %v", now, entries[0].CreatedAt)
		}
	})
}
