package repository

import (
	"context"
	"time"

	"github.com/logitrack/logitrack-api/internal/domain/entity"
)

// AuditRepository define el puerto de persistencia para el historial de auditoría.
type AuditRepository interface {
	Create(ctx context.Context, record *entity.AuditRecord) error
	ListLatest(ctx context.Context, n int) ([]*entity.AuditRecord, error)
	ListByEntity(ctx context.Context, entityName string) ([]*entity.AuditRecord, error)
	ListByEntityAndID(ctx context.Context, entityName, entityID string) ([]*entity.AuditRecord, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.AuditRecord, error)
	ListByOperation(ctx context.Context, op entity.AuditOperation) ([]*entity.AuditRecord, error)
	ListByDates(ctx context.Context, from, to time.Time) ([]*entity.AuditRecord, error)
}
