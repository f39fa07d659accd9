package entity

import "time"

// MovementType clasifica un movimiento de inventario.
type MovementType string

// Tipos de movimiento.
const (
	MovementTypeInbound  MovementType = "INBOUND"  // entrada a bodega destino
	MovementTypeOutbound MovementType = "OUTBOUND" // salida desde bodega origen
	MovementTypeTransfer MovementType = "TRANSFER" // traslado entre bodegas
)

// Valid reporta si el tipo es uno de los tres conocidos.
func (t MovementType) Valid() bool {
	switch t {
	case MovementTypeInbound, MovementTypeOutbound, MovementTypeTransfer:
		return true
	}
	return false
}

// Movement es el registro inmutable de un evento de inventario.
// Una vez persistido solo admite eliminación explícita, que corrige el
// historial sin revertir el ledger.
type Movement struct {
	ID                string
	Date              time.Time
	Type              MovementType
	UserID            string
	SourceWarehouseID *string        // requerido para OUTBOUND/TRANSFER
	DestWarehouseID   *string        // requerido para INBOUND/TRANSFER
	Note              string
	Lines             []MovementLine // ciclo de vida en cascada con el movimiento
	CreatedAt         time.Time
}

// MovementLine es un renglón producto+cantidad dentro de un movimiento.
// Un producto aparece a lo sumo una vez por movimiento. LineNo preserva el
// orden de los renglones tal como se registraron (1-based).
type MovementLine struct {
	ID         string
	MovementID string
	LineNo     int
	ProductID  string
	Quantity   int // >= 1
}
