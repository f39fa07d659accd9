package dto

import "github.com/shopspring/decimal"

// WarehouseStockDTO stock agregado y valorización de una bodega.
type WarehouseStockDTO struct {
	WarehouseID   string          `json:"warehouse_id"`
	WarehouseName string          `json:"warehouse_name"`
	TotalUnits    int             `json:"total_units"`
	TotalValue    decimal.Decimal `json:"total_value"`
}

// MovedProductDTO producto con su total movido.
type MovedProductDTO struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	TotalMoved  int    `json:"total_moved"`
}

// CategorySummaryDTO agregado del catálogo por categoría.
type CategorySummaryDTO struct {
	Category   string `json:"category"`
	Products   int    `json:"products"`
	TotalStock int    `json:"total_stock"`
}

// ReportSummary resumen general de stock y movimientos.
type ReportSummary struct {
	StockByWarehouse []WarehouseStockDTO  `json:"stock_by_warehouse"`
	TopMoved         []MovedProductDTO    `json:"top_moved"`
	LowStock         []ProductResponse    `json:"low_stock"`
	ByCategory       []CategorySummaryDTO `json:"by_category"`
	Threshold        int                  `json:"threshold"`
}
