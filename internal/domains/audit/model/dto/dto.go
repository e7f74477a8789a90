package dto

import (
	"time"

	"roomdesk/internal/domains/audit/model"
	"roomdesk/shared"
)

type AuditLogResponse struct {
	ID       string    `json:"id"`
	Actor    string    `json:"actor"`
	Action   string    `json:"action"`
	TargetID string    `json:"target_id"`
	Detail   string    `json:"detail"`
	LoggedAt time.Time `json:"logged_at"`
}

func (r *AuditLogResponse) FromModel(mod model.AuditLog) {
	r.ID = mod.ID
	r.Actor = mod.Actor
	r.Action = mod.Action
	r.TargetID = mod.TargetID
	r.Detail = mod.Detail
	r.LoggedAt = mod.LoggedAt
}

type GetAuditLogsResponse struct {
	Logs      []AuditLogResponse `json:"logs"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetAuditLogsResponse) FromModels(models []model.AuditLog, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Logs = make([]AuditLogResponse, len(models))
	for i, mod := range models {
		r.Logs[i].FromModel(mod)
	}
}
