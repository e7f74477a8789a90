package model

import (
	"time"

	"roomdesk/shared/model"
)

const (
	TableName  = "audit_logs"
	EntityName = "audit"

	FieldID       = "id"
	FieldActor    = "actor"
	FieldAction   = "action"
	FieldTargetID = "target_id"
	FieldDetail   = "detail"
	FieldLoggedAt = "logged_at"
)

type AuditLog struct {
	ID       string    `db:"id"`
	Actor    string    `db:"actor"`
	Action   string    `db:"action"`
	TargetID string    `db:"target_id"`
	Detail   string    `db:"detail"`
	LoggedAt time.Time `db:"logged_at"`
	model.Metadata
}
