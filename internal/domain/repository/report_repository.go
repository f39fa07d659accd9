package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// WarehouseStock stock agregado y valorización de una bodega.
type WarehouseStock struct {
	WarehouseID   string
	WarehouseName string
	TotalUnits    int
	TotalValue    decimal.Decimal // Σ stock × precio
}

// MovedProduct total movido de un producto (suma de cantidades en renglones).
type MovedProduct struct {
	ProductID   string
	ProductName string
	TotalMoved  int
}

// CategorySummary agregado del catálogo por categoría.
type CategorySummary struct {
	Category   string
	Products   int
	TotalStock int
}

// ReportRepository define el puerto de consultas agregadas para reportes.
// Solo lectura; no participa en la consistencia del ledger.
type ReportRepository interface {
	StockByWarehouse(ctx context.Context) ([]*WarehouseStock, error)
	TopMovedProducts(ctx context.Context, limit int) ([]*MovedProduct, error)
	SummaryByCategory(ctx context.Context) ([]*CategorySummary, error)
}
