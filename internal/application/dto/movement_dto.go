package dto

import "time"

// MovementLineRequest renglón producto+cantidad de un movimiento.
type MovementLineRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// CreateMovementRequest body para POST /api/movements.
// Bodega origen: requerida para OUTBOUND/TRANSFER, prohibida para INBOUND.
// Bodega destino: requerida para INBOUND/TRANSFER, prohibida para OUTBOUND.
type CreateMovementRequest struct {
	Type              string                `json:"type"`
	UserID            string                `json:"user_id"`
	SourceWarehouseID string                `json:"source_warehouse_id,omitempty"`
	DestWarehouseID   string                `json:"dest_warehouse_id,omitempty"`
	Note              string                `json:"note,omitempty"`
	Lines             []MovementLineRequest `json:"lines"`
}

// MovementLineResponse renglón resuelto de la respuesta.
type MovementLineResponse struct {
	ID       string `json:"id"`
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
}

// MovementResponse proyección de un movimiento con nombres resueltos.
type MovementResponse struct {
	ID              string                 `json:"id"`
	Date            time.Time              `json:"date"`
	Type            string                 `json:"type"`
	User            string                 `json:"user"`
	SourceWarehouse string                 `json:"source_warehouse,omitempty"`
	DestWarehouse   string                 `json:"dest_warehouse,omitempty"`
	Lines           []MovementLineResponse `json:"lines"`
	Note            string                 `json:"note,omitempty"`
}
