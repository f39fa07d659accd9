package entity

import "time"

// Cotas por defecto al crear implícitamente una fila de inventario.
const (
	DefaultMinStock = 10
	DefaultMaxStock = 1000
)

// StockLedgerEntry es el registro autoritativo del stock de un producto en una
// bodega. Identidad de negocio: (WarehouseID, ProductID), con constraint único;
// el ID surrogate existe para los endpoints administrativos.
// Invariante tras toda operación exitosa: 0 <= Stock <= MaxStock y
// MinStock <= MaxStock.
type StockLedgerEntry struct {
	ID          string
	WarehouseID string
	ProductID   string
	Stock       int
	MinStock    int
	MaxStock    int
	UpdatedAt   time.Time
}

// BelowMinimum reporta si el stock está por debajo del mínimo configurado.
func (e *StockLedgerEntry) BelowMinimum() bool {
	return e.Stock < e.MinStock
}
