package dto

import "time"

// CreateLedgerEntryRequest body para aprovisionar inventario de un producto en una bodega.
type CreateLedgerEntryRequest struct {
	WarehouseID string `json:"warehouse_id"`
	ProductID   string `json:"product_id"`
	Stock       int    `json:"stock"`
	MinStock    int    `json:"min_stock"`
	MaxStock    int    `json:"max_stock"`
}

// UpdateLedgerEntryRequest body para actualización administrativa de una fila.
type UpdateLedgerEntryRequest struct {
	Stock    int `json:"stock"`
	MinStock int `json:"min_stock"`
	MaxStock int `json:"max_stock"`
}

// AdjustStockRequest ajuste directo de stock (positivo suma, negativo resta).
type AdjustStockRequest struct {
	Quantity int `json:"quantity"`
}

// LedgerEntryResponse fila del ledger en respuestas.
type LedgerEntryResponse struct {
	ID          string    `json:"id"`
	WarehouseID string    `json:"warehouse_id"`
	ProductID   string    `json:"product_id"`
	Stock       int       `json:"stock"`
	MinStock    int       `json:"min_stock"`
	MaxStock    int       `json:"max_stock"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TotalStockResponse stock total de un producto en todas las bodegas.
type TotalStockResponse struct {
	ProductID  string `json:"product_id"`
	TotalStock int    `json:"total_stock"`
}
