package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/logitrack/logitrack-api/internal/domain/entity"
	"github.com/logitrack/logitrack-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación de MovementRepository sobre PostgreSQL (usable
// con pool o tx). El encabezado vive en movements y los renglones en
// movement_lines con FK ON DELETE CASCADE.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador de movimientos. Pasar pool o tx.
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = `id, date, type, user_id, source_warehouse_id, dest_warehouse_id, note, created_at`

// Create persiste el encabezado y todos sus renglones. Para que el conjunto
// sea atómico debe invocarse con un Querier transaccional.
func (r *MovementRepo) Create(ctx context.Context, movement *entity.Movement) error {
	query := `
		INSERT INTO movements (id, date, type, user_id, source_warehouse_id, dest_warehouse_id, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		movement.ID, movement.Date, movement.Type, movement.UserID,
		movement.SourceWarehouseID, movement.DestWarehouseID,
		movement.Note, movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	for _, line := range movement.Lines {
		_, err := r.q.Exec(ctx, `
			INSERT INTO movement_lines (id, movement_id, line_no, product_id, quantity)
			VALUES ($1, $2, $3, $4, $5)`,
			line.ID, line.MovementID, line.LineNo, line.ProductID, line.Quantity,
		)
		if err != nil {
			return fmt.Errorf("insert movement line: %w", err)
		}
	}
	return nil
}

// GetByID obtiene un movimiento con sus renglones.
func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE id = $1`
	var m entity.Movement
	err := r.q.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.Date, &m.Type, &m.UserID,
		&m.SourceWarehouseID, &m.DestWarehouseID, &m.Note, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	lines, err := r.loadLines(ctx, []string{m.ID})
	if err != nil {
		return nil, err
	}
	m.Lines = lines[m.ID]
	return &m, nil
}

// Delete elimina el movimiento; los renglones caen por cascada. Devuelve false
// si el id no existe. No toca el ledger.
func (r *MovementRepo) Delete(ctx context.Context, id string) (bool, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM movements WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete movement: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// List lista movimientos paginados, más recientes primero.
func (r *MovementRepo) List(ctx context.Context, limit, offset int) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements
		ORDER BY date DESC LIMIT $1 OFFSET $2`
	return r.queryMovements(ctx, query, limit, offset)
}

// ListByType lista movimientos de un tipo.
func (r *MovementRepo) ListByType(ctx context.Context, t entity.MovementType, limit, offset int) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements
		WHERE type = $1 ORDER BY date DESC LIMIT $2 OFFSET $3`
	return r.queryMovements(ctx, query, t, limit, offset)
}

// ListByWarehouse lista movimientos donde la bodega participa como origen o destino.
func (r *MovementRepo) ListByWarehouse(ctx context.Context, warehouseID string, limit, offset int) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements
		WHERE source_warehouse_id = $1 OR dest_warehouse_id = $1
		ORDER BY date DESC LIMIT $2 OFFSET $3`
	return r.queryMovements(ctx, query, warehouseID, limit, offset)
}

// ListInboundByDest lista entradas (INBOUND) con destino en la bodega.
func (r *MovementRepo) ListInboundByDest(ctx context.Context, warehouseID string, limit, offset int) ([]*entity.Movement, error) {
	return r.listByTypeAndColumn(ctx, entity.MovementTypeInbound, "dest_warehouse_id", warehouseID, limit, offset)
}

// ListOutboundBySource lista salidas (OUTBOUND) con origen en la bodega.
func (r *MovementRepo) ListOutboundBySource(ctx context.Context, warehouseID string, limit, offset int) ([]*entity.Movement, error) {
	return r.listByTypeAndColumn(ctx, entity.MovementTypeOutbound, "source_warehouse_id", warehouseID, limit, offset)
}

// ListTransfersFrom lista traslados que salen de la bodega.
func (r *MovementRepo) ListTransfersFrom(ctx context.Context, warehouseID string, limit, offset int) ([]*entity.Movement, error) {
	return r.listByTypeAndColumn(ctx, entity.MovementTypeTransfer, "source_warehouse_id", warehouseID, limit, offset)
}

// ListTransfersTo lista traslados que llegan a la bodega.
func (r *MovementRepo) ListTransfersTo(ctx context.Context, warehouseID string, limit, offset int) ([]*entity.Movement, error) {
	return r.listByTypeAndColumn(ctx, entity.MovementTypeTransfer, "dest_warehouse_id", warehouseID, limit, offset)
}

// listByTypeAndColumn filtra por tipo y por la columna de bodega indicada.
// La columna viene de un conjunto fijo interno, nunca de entrada del usuario.
func (r *MovementRepo) listByTypeAndColumn(ctx context.Context, t entity.MovementType, column, warehouseID string, limit, offset int) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements
		WHERE type = $1 AND ` + column + ` = $2
		ORDER BY date DESC LIMIT $3 OFFSET $4`
	return r.queryMovements(ctx, query, t, warehouseID, limit, offset)
}

// ListByUser lista movimientos registrados por un usuario.
func (r *MovementRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements
		WHERE user_id = $1 ORDER BY date DESC LIMIT $2 OFFSET $3`
	return r.queryMovements(ctx, query, userID, limit, offset)
}

// ListByDates lista movimientos dentro de un rango de fechas (inclusive).
func (r *MovementRepo) ListByDates(ctx context.Context, from, to time.Time, limit, offset int) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements
		WHERE date >= $1 AND date <= $2
		ORDER BY date DESC LIMIT $3 OFFSET $4`
	return r.queryMovements(ctx, query, from, to, limit, offset)
}

// ListLatest devuelve los n movimientos más recientes.
func (r *MovementRepo) ListLatest(ctx context.Context, n int) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements ORDER BY date DESC LIMIT $1`
	return r.queryMovements(ctx, query, n)
}

func (r *MovementRepo) queryMovements(ctx context.Context, query string, args ...any) ([]*entity.Movement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.Movement
	var ids []string
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(
			&m.ID, &m.Date, &m.Type, &m.UserID,
			&m.SourceWarehouseID, &m.DestWarehouseID, &m.Note, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
		ids = append(ids, m.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return list, nil
	}
	lines, err := r.loadLines(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, m := range list {
		m.Lines = lines[m.ID]
	}
	return list, nil
}

// loadLines carga los renglones de un conjunto de movimientos en una sola consulta.
func (r *MovementRepo) loadLines(ctx context.Context, movementIDs []string) (map[string][]entity.MovementLine, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, movement_id, line_no, product_id, quantity
		FROM movement_lines WHERE movement_id = ANY($1)
		ORDER BY movement_id, line_no`, movementIDs)
	if err != nil {
		return nil, fmt.Errorf("load movement lines: %w", err)
	}
	defer rows.Close()

	byMovement := make(map[string][]entity.MovementLine, len(movementIDs))
	for rows.Next() {
		var l entity.MovementLine
		if err := rows.Scan(&l.ID, &l.MovementID, &l.LineNo, &l.ProductID, &l.Quantity); err != nil {
			return nil, fmt.Errorf("scan movement line: %w", err)
		}
		byMovement[l.MovementID] = append(byMovement[l.MovementID], l)
	}
	return byMovement, rows.Err()
}
