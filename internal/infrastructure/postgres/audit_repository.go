package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/logitrack/logitrack-api/internal/domain/entity"
	"github.com/logitrack/logitrack-api/internal/domain/repository"
)

var _ repository.AuditRepository = (*AuditRepo)(nil)

// AuditRepo implementación de AuditRepository sobre PostgreSQL. El historial
// es append-only: solo Create y lecturas.
type AuditRepo struct {
	q Querier
}

// NewAuditRepository construye el adaptador de auditoría. Pasar pool o tx.
func NewAuditRepository(q Querier) *AuditRepo {
	return &AuditRepo{q: q}
}

const auditColumns = `id, operation, entity, entity_id, before, after, user_id, date`

// Create persiste un registro de auditoría.
func (r *AuditRepo) Create(ctx context.Context, record *entity.AuditRecord) error {
	query := `
		INSERT INTO audit_records (id, operation, entity, entity_id, before, after, user_id, date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		record.ID, record.Operation, record.Entity, record.EntityID,
		record.Before, record.After, record.UserID, record.Date,
	)
	if err != nil {
		return fmt.Errorf("insert audit record: %w", err)
	}
	return nil
}

// ListLatest devuelve los n registros más recientes.
func (r *AuditRepo) ListLatest(ctx context.Context, n int) ([]*entity.AuditRecord, error) {
	query := `SELECT ` + auditColumns + ` FROM audit_records ORDER BY date DESC LIMIT $1`
	return r.queryRecords(ctx, query, n)
}

// ListByEntity registros de un tipo de entidad.
func (r *AuditRepo) ListByEntity(ctx context.Context, entityName string) ([]*entity.AuditRecord, error) {
	query := `SELECT ` + auditColumns + ` FROM audit_records
		WHERE entity = $1 ORDER BY date DESC`
	return r.queryRecords(ctx, query, entityName)
}

// ListByEntityAndID historial completo de una entidad concreta.
func (r *AuditRepo) ListByEntityAndID(ctx context.Context, entityName, entityID string) ([]*entity.AuditRecord, error) {
	query := `SELECT ` + auditColumns + ` FROM audit_records
		WHERE entity = $1 AND entity_id = $2 ORDER BY date DESC`
	return r.queryRecords(ctx, query, entityName, entityID)
}

// ListByUser registros originados por un usuario.
func (r *AuditRepo) ListByUser(ctx context.Context, userID string) ([]*entity.AuditRecord, error) {
	query := `SELECT ` + auditColumns + ` FROM audit_records
		WHERE user_id = $1 ORDER BY date DESC`
	return r.queryRecords(ctx, query, userID)
}

// ListByOperation registros de una operación (INSERT, UPDATE, DELETE).
func (r *AuditRepo) ListByOperation(ctx context.Context, op entity.AuditOperation) ([]*entity.AuditRecord, error) {
	query := `SELECT ` + auditColumns + ` FROM audit_records
		WHERE operation = $1 ORDER BY date DESC`
	return r.queryRecords(ctx, query, op)
}

// ListByDates registros dentro de un rango de fechas (inclusive).
func (r *AuditRepo) ListByDates(ctx context.Context, from, to time.Time) ([]*entity.AuditRecord, error) {
	query := `SELECT ` + auditColumns + ` FROM audit_records
		WHERE date >= $1 AND date <= $2 ORDER BY date DESC`
	return r.queryRecords(ctx, query, from, to)
}

func (r *AuditRepo) queryRecords(ctx context.Context, query string, args ...any) ([]*entity.AuditRecord, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list audit records: %w", err)
	}
	defer rows.Close()
	var list []*entity.AuditRecord
	for rows.Next() {
		var rec entity.AuditRecord
		if err := rows.Scan(
			&rec.ID, &rec.Operation, &rec.Entity, &rec.EntityID,
			&rec.Before, &rec.After, &rec.UserID, &rec.Date,
		); err != nil {
			return nil, fmt.Errorf("scan audit record: %w", err)
		}
		list = append(list, &rec)
	}
	return list, rows.Err()
}
