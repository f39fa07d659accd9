package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// Stock es el valor de exhibición/por defecto; el stock autoritativo por bodega
// vive en StockLedgerEntry una vez existen filas de inventario.
type Product struct {
	ID        string
	Name      string // único
	Category  string
	Price     decimal.Decimal // precio unitario
	Stock     int             // stock de referencia, no autoritativo
	CreatedAt time.Time
	UpdatedAt time.Time
}
