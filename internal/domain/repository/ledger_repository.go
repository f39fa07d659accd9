package repository

import (
	"context"

	"github.com/logitrack/logitrack-api/internal/domain/entity"
)

// LedgerRepository define el puerto para el ledger de stock por (bodega, producto).
// Los Get* devuelven (nil, nil) cuando la fila no existe.
type LedgerRepository interface {
	Create(ctx context.Context, entry *entity.StockLedgerEntry) error
	// CreateIfAbsent inserta la fila solo si el par (bodega, producto) no
	// existe (ON CONFLICT DO NOTHING); no falla ante el duplicado. Permite la
	// creación implícita concurrente sin perder actualizaciones: tras llamar
	// CreateIfAbsent, GetByPairForUpdate siempre observa una fila.
	CreateIfAbsent(ctx context.Context, entry *entity.StockLedgerEntry) error
	GetByID(ctx context.Context, id string) (*entity.StockLedgerEntry, error)
	GetByPair(ctx context.Context, warehouseID, productID string) (*entity.StockLedgerEntry, error)
	// GetByPairForUpdate bloquea la fila (SELECT FOR UPDATE) para el ciclo
	// leer-calcular-escribir de ApplyDelta. Solo tiene sentido dentro de una tx.
	GetByPairForUpdate(ctx context.Context, warehouseID, productID string) (*entity.StockLedgerEntry, error)
	Save(ctx context.Context, entry *entity.StockLedgerEntry) error
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, limit, offset int) ([]*entity.StockLedgerEntry, error)
	ListByWarehouse(ctx context.Context, warehouseID string) ([]*entity.StockLedgerEntry, error)
	ListByProduct(ctx context.Context, productID string) ([]*entity.StockLedgerEntry, error)
	// ListBelowMinimum devuelve filas con stock < mínimo; warehouseID vacío = todas.
	ListBelowMinimum(ctx context.Context, warehouseID string) ([]*entity.StockLedgerEntry, error)
	TotalStockByProduct(ctx context.Context, productID string) (int, error)
}
