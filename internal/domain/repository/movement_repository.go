package repository

import (
	"context"
	"time"

	"github.com/logitrack/logitrack-api/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia para movimientos.
// Create persiste el encabezado junto con todos sus renglones como una unidad:
// dentro de una transacción nunca es observable un conjunto parcial de líneas.
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	GetByID(ctx context.Context, id string) (*entity.Movement, error)
	// Delete elimina el movimiento y sus renglones (cascada). Devuelve false
	// si el id no existe. No toca el ledger.
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Movement, error)
	ListByType(ctx context.Context, t entity.MovementType, limit, offset int) ([]*entity.Movement, error)
	// ListByWarehouse devuelve movimientos donde la bodega es origen o destino.
	ListByWarehouse(ctx context.Context, warehouseID string, limit, offset int) ([]*entity.Movement, error)
	// ListInboundByDest devuelve INBOUND cuyo destino es la bodega.
	ListInboundByDest(ctx context.Context, warehouseID string, limit, offset int) ([]*entity.Movement, error)
	// ListOutboundBySource devuelve OUTBOUND cuyo origen es la bodega.
	ListOutboundBySource(ctx context.Context, warehouseID string, limit, offset int) ([]*entity.Movement, error)
	// ListTransfersFrom devuelve TRANSFER que salen de la bodega.
	ListTransfersFrom(ctx context.Context, warehouseID string, limit, offset int) ([]*entity.Movement, error)
	// ListTransfersTo devuelve TRANSFER que llegan a la bodega.
	ListTransfersTo(ctx context.Context, warehouseID string, limit, offset int) ([]*entity.Movement, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Movement, error)
	ListByDates(ctx context.Context, from, to time.Time, limit, offset int) ([]*entity.Movement, error)
	ListLatest(ctx context.Context, n int) ([]*entity.Movement, error)
}
