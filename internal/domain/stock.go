package domain

// StockEntry is the per-SKU on-hand quantity. Quantity never goes negative;
// reserve/release are the only mutations after initial load.
type StockEntry struct {
	SKU      string
	Quantity int
}

// ItemLine is one (sku, quantity) pair of a reservation or release request.
// Lines are processed in input order and never persisted.
type ItemLine struct {
	SKU      string
	Quantity int
}
