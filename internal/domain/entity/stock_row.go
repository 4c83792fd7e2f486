package entity

import "time"

// StockRow representa la cantidad actual de un producto en una ubicación.
// Única por (ProductID, LocationID); Quantity nunca negativa.
// Quantity solo la muta el motor de movimientos; los endpoints de
// aprovisionamiento solo tocan los umbrales de reorden.
type StockRow struct {
	ProductID       string
	LocationID      string
	Quantity        int64
	ReorderLevel    int64
	ReorderQuantity int64
	LastUpdated     time.Time
}

// IsLowStock indica si la fila está en o por debajo de su nivel de reorden.
func (s *StockRow) IsLowStock() bool {
	return s.Quantity <= s.ReorderLevel
}
