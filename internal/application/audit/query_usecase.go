package audit

import (
	"context"
	"time"

	"github.com/logitrack/logitrack-api/internal/application/dto"
	"github.com/logitrack/logitrack-api/internal/domain/entity"
	"github.com/logitrack/logitrack-api/internal/domain/repository"
)

// QueryUseCase consultas de solo lectura sobre el historial de auditoría.
type QueryUseCase struct {
	repo repository.AuditRepository
}

// NewQueryUseCase construye el caso de uso de consultas.
func NewQueryUseCase(repo repository.AuditRepository) *QueryUseCase {
	return &QueryUseCase{repo: repo}
}

// Latest devuelve los últimos n registros (máximo 20 por defecto, como el resto
// de listados acotados).
func (uc *QueryUseCase) Latest(ctx context.Context, n int) ([]dto.AuditRecordResponse, error) {
	if n <= 0 || n > 20 {
		n = 20
	}
	records, err := uc.repo.ListLatest(ctx, n)
	if err != nil {
		return nil, err
	}
	return toResponses(records), nil
}

// ByEntity registros de una entidad (por nombre de tipo).
func (uc *QueryUseCase) ByEntity(ctx context.Context, entityName string) ([]dto.AuditRecordResponse, error) {
	records, err := uc.repo.ListByEntity(ctx, entityName)
	if err != nil {
		return nil, err
	}
	return toResponses(records), nil
}

// ByEntityAndID historial completo de una instancia concreta.
func (uc *QueryUseCase) ByEntityAndID(ctx context.Context, entityName, entityID string) ([]dto.AuditRecordResponse, error) {
	records, err := uc.repo.ListByEntityAndID(ctx, entityName, entityID)
	if err != nil {
		return nil, err
	}
	return toResponses(records), nil
}

// ByUser registros generados por un usuario.
func (uc *QueryUseCase) ByUser(ctx context.Context, userID string) ([]dto.AuditRecordResponse, error) {
	records, err := uc.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toResponses(records), nil
}

// ByOperation registros de una operación (INSERT/UPDATE/DELETE).
func (uc *QueryUseCase) ByOperation(ctx context.Context, op entity.AuditOperation) ([]dto.AuditRecordResponse, error) {
	records, err := uc.repo.ListByOperation(ctx, op)
	if err != nil {
		return nil, err
	}
	return toResponses(records), nil
}

// ByDates registros en un rango de fechas.
func (uc *QueryUseCase) ByDates(ctx context.Context, from, to time.Time) ([]dto.AuditRecordResponse, error) {
	records, err := uc.repo.ListByDates(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return toResponses(records), nil
}

func toResponses(records []*entity.AuditRecord) []dto.AuditRecordResponse {
	out := make([]dto.AuditRecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, dto.AuditRecordResponse{
			ID:        r.ID,
			Operation: string(r.Operation),
			Entity:    r.Entity,
			EntityID:  r.EntityID,
			Before:    r.Before,
			After:     r.After,
			UserID:    r.UserID,
			Date:      r.Date,
		})
	}
	return out
}
