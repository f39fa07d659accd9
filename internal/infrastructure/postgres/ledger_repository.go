package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/logitrack/logitrack-api/internal/domain/entity"
	"github.com/logitrack/logitrack-api/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo implementación de LedgerRepository sobre PostgreSQL (usable con
// pool o tx). La tabla stock_ledger tiene constraint único sobre
// (warehouse_id, product_id); el id es clave sustituta.
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository construye el adaptador del ledger. Pasar pool o tx.
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

const ledgerColumns = `id, warehouse_id, product_id, stock, min_stock, max_stock, updated_at`

// Create inserta una fila nueva; falla ante par duplicado.
func (r *LedgerRepo) Create(ctx context.Context, entry *entity.StockLedgerEntry) error {
	query := `
		INSERT INTO stock_ledger (id, warehouse_id, product_id, stock, min_stock, max_stock, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		entry.ID, entry.WarehouseID, entry.ProductID,
		entry.Stock, entry.MinStock, entry.MaxStock, entry.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert ledger entry: par duplicado (bodega %s, producto %s)",
				entry.WarehouseID, entry.ProductID)
		}
		return fmt.Errorf("insert ledger entry: %w", err)
	}
	return nil
}

// CreateIfAbsent inserta la fila solo si el par no existe. No falla ante el
// duplicado: un insert concurrente del mismo par deja la fila del ganador.
func (r *LedgerRepo) CreateIfAbsent(ctx context.Context, entry *entity.StockLedgerEntry) error {
	query := `
		INSERT INTO stock_ledger (id, warehouse_id, product_id, stock, min_stock, max_stock, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (warehouse_id, product_id) DO NOTHING`
	_, err := r.q.Exec(ctx, query,
		entry.ID, entry.WarehouseID, entry.ProductID,
		entry.Stock, entry.MinStock, entry.MaxStock, entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert ledger entry if absent: %w", err)
	}
	return nil
}

// GetByID obtiene una fila por su clave sustituta.
func (r *LedgerRepo) GetByID(ctx context.Context, id string) (*entity.StockLedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM stock_ledger WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id))
}

// GetByPair obtiene la fila del par (bodega, producto).
func (r *LedgerRepo) GetByPair(ctx context.Context, warehouseID, productID string) (*entity.StockLedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM stock_ledger
		WHERE warehouse_id = $1 AND product_id = $2`
	return r.scanOne(r.q.QueryRow(ctx, query, warehouseID, productID))
}

// GetByPairForUpdate obtiene la fila del par y la bloquea (SELECT FOR UPDATE).
func (r *LedgerRepo) GetByPairForUpdate(ctx context.Context, warehouseID, productID string) (*entity.StockLedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM stock_ledger
		WHERE warehouse_id = $1 AND product_id = $2
		FOR UPDATE`
	return r.scanOne(r.q.QueryRow(ctx, query, warehouseID, productID))
}

// Save actualiza stock, mínimos y máximos de una fila existente.
func (r *LedgerRepo) Save(ctx context.Context, entry *entity.StockLedgerEntry) error {
	query := `
		UPDATE stock_ledger
		SET stock = $2, min_stock = $3, max_stock = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		entry.ID, entry.Stock, entry.MinStock, entry.MaxStock, entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update ledger entry: %w", err)
	}
	return nil
}

// Delete elimina una fila. Devuelve false si el id no existe.
func (r *LedgerRepo) Delete(ctx context.Context, id string) (bool, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM stock_ledger WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete ledger entry: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// List lista filas del ledger paginadas.
func (r *LedgerRepo) List(ctx context.Context, limit, offset int) ([]*entity.StockLedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM stock_ledger
		ORDER BY warehouse_id, product_id LIMIT $1 OFFSET $2`
	return r.queryEntries(ctx, query, limit, offset)
}

// ListByWarehouse lista el inventario de una bodega.
func (r *LedgerRepo) ListByWarehouse(ctx context.Context, warehouseID string) ([]*entity.StockLedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM stock_ledger
		WHERE warehouse_id = $1 ORDER BY product_id`
	return r.queryEntries(ctx, query, warehouseID)
}

// ListByProduct lista la distribución de un producto entre bodegas.
func (r *LedgerRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.StockLedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM stock_ledger
		WHERE product_id = $1 ORDER BY warehouse_id`
	return r.queryEntries(ctx, query, productID)
}

// ListBelowMinimum filas con stock por debajo del mínimo; warehouseID vacío = todas.
func (r *LedgerRepo) ListBelowMinimum(ctx context.Context, warehouseID string) ([]*entity.StockLedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM stock_ledger
		WHERE stock < min_stock AND ($1 = '' OR warehouse_id = $1)
		ORDER BY warehouse_id, product_id`
	return r.queryEntries(ctx, query, warehouseID)
}

// TotalStockByProduct suma el stock de un producto en todas las bodegas.
func (r *LedgerRepo) TotalStockByProduct(ctx context.Context, productID string) (int, error) {
	var total int
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(stock), 0) FROM stock_ledger WHERE product_id = $1`,
		productID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("total stock by product: %w", err)
	}
	return total, nil
}

func (r *LedgerRepo) scanOne(row pgx.Row) (*entity.StockLedgerEntry, error) {
	var e entity.StockLedgerEntry
	err := row.Scan(&e.ID, &e.WarehouseID, &e.ProductID, &e.Stock, &e.MinStock, &e.MaxStock, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ledger entry: %w", err)
	}
	return &e, nil
}

func (r *LedgerRepo) queryEntries(ctx context.Context, query string, args ...any) ([]*entity.StockLedgerEntry, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockLedgerEntry
	for rows.Next() {
		var e entity.StockLedgerEntry
		if err := rows.Scan(&e.ID, &e.WarehouseID, &e.ProductID, &e.Stock, &e.MinStock, &e.MaxStock, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
