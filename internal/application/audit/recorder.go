package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/logitrack/logitrack-api/internal/domain/entity"
	"github.com/logitrack/logitrack-api/internal/domain/repository"
	"github.com/logitrack/logitrack-api/pkg/logger"
)

// Event describe una escritura sobre una entidad observada. Los snapshots se
// serializan a JSON al persistir; Before es nil en INSERT y After en DELETE.
type Event struct {
	Operation entity.AuditOperation
	Entity    string
	EntityID  string
	Before    any
	After     any
	UserID    string // opcional, best-effort
}

// Recorder consume eventos de auditoría. La captura es un observador
// transversal: nunca participa en la consistencia del ledger y nunca hace
// fallar la operación que la origina.
type Recorder interface {
	Record(ctx context.Context, ev Event)
}

// Writer persiste eventos de auditoría en el repositorio. Los errores se
// registran en el log y se descartan.
type Writer struct {
	repo repository.AuditRepository
	log  *logger.Logger
}

var _ Recorder = (*Writer)(nil)

// NewWriter construye el escritor de auditoría.
func NewWriter(repo repository.AuditRepository, log *logger.Logger) *Writer {
	return &Writer{repo: repo, log: log}
}

// Record serializa los snapshots y persiste el registro.
func (w *Writer) Record(ctx context.Context, ev Event) {
	record := &entity.AuditRecord{
		ID:        uuid.New().String(),
		Operation: ev.Operation,
		Entity:    ev.Entity,
		EntityID:  ev.EntityID,
		Before:    marshalSnapshot(ev.Before),
		After:     marshalSnapshot(ev.After),
		Date:      time.Now(),
	}
	if ev.UserID != "" {
		record.UserID = &ev.UserID
	}
	if err := w.repo.Create(ctx, record); err != nil {
		w.log.Error().Err(err).
			Str("entity", ev.Entity).
			Str("entity_id", ev.EntityID).
			Str("operation", string(ev.Operation)).
			Msg("registro de auditoría falló")
	}
}

func marshalSnapshot(v any) json.RawMessage {
	if v == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return data
}

// NopRecorder descarta todos los eventos. Útil en tests.
type NopRecorder struct{}

var _ Recorder = NopRecorder{}

// Record no hace nada.
func (NopRecorder) Record(context.Context, Event) {}
