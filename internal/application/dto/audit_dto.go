package dto

import (
	"encoding/json"
	"time"
)

// AuditRecordResponse registro de auditoría en respuestas.
type AuditRecordResponse struct {
	ID        string          `json:"id"`
	Operation string          `json:"operation"`
	Entity    string          `json:"entity"`
	EntityID  string          `json:"entity_id"`
	Before    json.RawMessage `json:"before,omitempty"`
	After     json.RawMessage `json:"after,omitempty"`
	UserID    *string         `json:"user_id,omitempty"`
	Date      time.Time       `json:"date"`
}
