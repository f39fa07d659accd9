package entity

import (
	"encoding/json"
	"time"
)

// AuditOperation clasifica la operación auditada.
type AuditOperation string

// Operaciones auditadas.
const (
	AuditInsert AuditOperation = "INSERT"
	AuditUpdate AuditOperation = "UPDATE"
	AuditDelete AuditOperation = "DELETE"
)

// AuditRecord es la instantánea antes/después de una escritura sobre una
// entidad observada. El usuario es best-effort y puede faltar.
type AuditRecord struct {
	ID        string
	Operation AuditOperation
	Entity    string // nombre del tipo de entidad
	EntityID  string
	Before    json.RawMessage // nil en INSERT
	After     json.RawMessage // nil en DELETE
	UserID    *string
	Date      time.Time
}
