package postgres

import (
	"context"
	"fmt"

	"github.com/logitrack/logitrack-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas agregadas de solo lectura para reportes.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de reportes. Pasar pool o tx.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// StockByWarehouse unidades totales y valorización (Σ stock × precio) por bodega.
// Las bodegas sin inventario aparecen con ceros.
func (r *ReportRepo) StockByWarehouse(ctx context.Context) ([]*repository.WarehouseStock, error) {
	query := `
		SELECT w.id, w.name,
		       COALESCE(SUM(l.stock), 0) AS total_units,
		       COALESCE(SUM(l.stock * p.price), 0) AS total_value
		FROM warehouses w
		LEFT JOIN stock_ledger l ON l.warehouse_id = w.id
		LEFT JOIN products p ON p.id = l.product_id
		GROUP BY w.id, w.name
		ORDER BY w.name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("stock by warehouse: %w", err)
	}
	defer rows.Close()
	var list []*repository.WarehouseStock
	for rows.Next() {
		var s repository.WarehouseStock
		if err := rows.Scan(&s.WarehouseID, &s.WarehouseName, &s.TotalUnits, &s.TotalValue); err != nil {
			return nil, fmt.Errorf("scan warehouse stock: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// TopMovedProducts productos ordenados por cantidad total movida (suma de
// cantidades en renglones, sin importar el tipo de movimiento).
func (r *ReportRepo) TopMovedProducts(ctx context.Context, limit int) ([]*repository.MovedProduct, error) {
	query := `
		SELECT p.id, p.name, SUM(ml.quantity) AS total_moved
		FROM movement_lines ml
		JOIN products p ON p.id = ml.product_id
		GROUP BY p.id, p.name
		ORDER BY total_moved DESC
		LIMIT $1`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("top moved products: %w", err)
	}
	defer rows.Close()
	var list []*repository.MovedProduct
	for rows.Next() {
		var m repository.MovedProduct
		if err := rows.Scan(&m.ProductID, &m.ProductName, &m.TotalMoved); err != nil {
			return nil, fmt.Errorf("scan moved product: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// SummaryByCategory conteo de productos y stock de referencia por categoría.
func (r *ReportRepo) SummaryByCategory(ctx context.Context) ([]*repository.CategorySummary, error) {
	query := `
		SELECT category, COUNT(*) AS products, COALESCE(SUM(stock), 0) AS total_stock
		FROM products
		GROUP BY category
		ORDER BY category`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("summary by category: %w", err)
	}
	defer rows.Close()
	var list []*repository.CategorySummary
	for rows.Next() {
		var c repository.CategorySummary
		if err := rows.Scan(&c.Category, &c.Products, &c.TotalStock); err != nil {
			return nil, fmt.Errorf("scan category summary: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
