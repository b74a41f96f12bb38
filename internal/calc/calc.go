// Package calc implements the arithmetic sidecar: a handful of binary and
// unary operations with a short in-memory history of recent results.
package calc

import (
	"errors"
	"math"
	"sync"
)

var (
	ErrDivisionByZero     = errors.New("division by zero")
	ErrNegativeSquareRoot = errors.New("square root of negative number")
)

// HistoryItem is one recorded operation. B is nil for unary operations.
type HistoryItem struct {
	Operation string   `json:"operation"`
	A         float64  `json:"a"`
	B         *float64 `json:"b,omitempty"`
	Result    float64  `json:"result"`
}

const historySize = 10

// Calculator evaluates operations and keeps the last few results, newest
// first. Safe for concurrent use.
type Calculator struct {
	mu      sync.Mutex
	history []HistoryItem
}

func New() *Calculator {
	return &Calculator{}
}

func (c *Calculator) Add(a, b float64) float64 {
	return c.recordBinary("add", a, b, a+b)
}

func (c *Calculator) Subtract(a, b float64) float64 {
	return c.recordBinary("subtract", a, b, a-b)
}

func (c *Calculator) Multiply(a, b float64) float64 {
	return c.recordBinary("multiply", a, b, a*b)
}

func (c *Calculator) Divide(a, b float64) (float64, error) {
	if b == 0 {
		return 0, ErrDivisionByZero
	}
	return c.recordBinary("divide", a, b, a/b), nil
}

func (c *Calculator) Power(a, b float64) float64 {
	return c.recordBinary("power", a, b, math.Pow(a, b))
}

func (c *Calculator) Sqrt(a float64) (float64, error) {
	if a < 0 {
		return 0, ErrNegativeSquareRoot
	}
	res := math.Sqrt(a)
	c.record(HistoryItem{Operation: "sqrt", A: a, Result: res})
	return res, nil
}

// History returns the recorded operations, newest first.
func (c *Calculator) History() []HistoryItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]HistoryItem, len(c.history))
	copy(out, c.history)
	return out
}

func (c *Calculator) recordBinary(op string, a, b, res float64) float64 {
	operand := b
	c.record(HistoryItem{Operation: op, A: a, B: &operand, Result: res})
	return res
}

func (c *Calculator) record(item HistoryItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.history = append([]HistoryItem{item}, c.history...)
	if len(c.history) > historySize {
		c.history = c.history[:historySize]
	}
}
