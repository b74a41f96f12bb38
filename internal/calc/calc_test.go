package calc

import (
	"errors"
	"math"
	"testing"
)

func TestCalculator_Operations(t *testing.T) {
	t.Parallel()

	c := New()

	if got := c.Add(2, 3); got != 5 {
		t.Errorf("Add(2, 3) = %v, want 5", got)
	}
	if got := c.Subtract(2, 3); got != -1 {
		t.Errorf("Subtract(2, 3) = %v, want -1", got)
	}
	if got := c.Multiply(2, 3); got != 6 {
		t.Errorf("Multiply(2, 3) = %v, want 6", got)
	}
	if got := c.Power(2, 10); got != 1024 {
		t.Errorf("Power(2, 10) = %v, want 1024", got)
	}

	got, err := c.Divide(7, 2)
	if err != nil || got != 3.5 {
		t.Errorf("Divide(7, 2) = %v, %v, want 3.5", got, err)
	}

	root, err := c.Sqrt(2)
	if err != nil || math.Abs(root-math.Sqrt2) > 1e-12 {
		t.Errorf("Sqrt(2) = %v, %v", root, err)
	}
}

func TestCalculator_DivideByZero(t *testing.T) {
	t.Parallel()

	c := New()
	if _, err := c.Divide(1, 0); !errors.Is(err, ErrDivisionByZero) {
		t.Fatalf("expected ErrDivisionByZero, got %v", err)
	}
	if len(c.History()) != 0 {
		t.Fatal("failed operation must not be recorded")
	}
}

func TestCalculator_SqrtNegative(t *testing.T) {
	t.Parallel()

	c := New()
	if _, err := c.Sqrt(-4); !errors.Is(err, ErrNegativeSquareRoot) {
		t.Fatalf("expected ErrNegativeSquareRoot, got %v", err)
	}
	if len(c.History()) != 0 {
		t.Fatal("failed operation must not be recorded")
	}
}

func TestCalculator_History(t *testing.T) {
	t.Parallel()

	t.Run("newest first", func(t *testing.T) {
		c := New()
		c.Add(1, 1)
		c.Multiply(2, 2)

		items := c.History()
		if len(items) != 2 {
			t.Fatalf("expected 2 items, got %d", len(items))
		}
		if items[0].Operation != "multiply" || items[1].Operation != "add" {
			t.Fatalf("unexpected order: %+v", items)
		}
	})

	t.Run("capped at ten entries", func(t *testing.T) {
		c := New()
		for i := 0; i < 15; i++ {
			c.Add(float64(i), 0)
		}

		items := c.History()
		if len(items) != 10 {
			t.Fatalf("expected 10 items, got %d", len(items))
		}
		if items[0].A != 14 || items[9].A != 5 {
			t.Fatalf("expected operations 14..5, got first=%v last=%v", items[0].A, items[9].A)
		}
	})

	t.Run("unary operations have no second operand", func(t *testing.T) {
		c := New()
		if _, err := c.Sqrt(9); err != nil {
			t.Fatalf("sqrt: %v", err)
		}
		items := c.History()
		if items[0].B != nil {
			t.Fatalf("expected nil B, got %v", *items[0].B)
		}
	})

	t.Run("returned slice is a copy", func(t *testing.T) {
		c := New()
		c.Add(1, 2)
		items := c.History()
		items[0].Operation = "tampered"
		if c.History()[0].Operation != "add" {
			t.Fatal("history must not be mutable from outside")
		}
	})
}
