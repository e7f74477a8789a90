package dto

import (
	"math"
	"time"

	"roomdesk/internal/domains/request/model"
	"roomdesk/shared"
	"roomdesk/shared/constant"
)

type PendingRequestResponse struct {
	ID              string    `json:"id"`
	RoomID          string    `json:"room_id"`
	RoomName        string    `json:"room_name"`
	StudentID       string    `json:"student_id"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	Purpose         string    `json:"purpose"`
	DurationMinutes int       `json:"duration_minutes"`
	CreatedAt       time.Time `json:"created_at"`
}

func (r *PendingRequestResponse) FromModel(mod model.BookingRequest) {
	r.ID = mod.ID
	r.RoomID = mod.RoomID
	r.RoomName = mod.RoomName
	r.StudentID = mod.StudentID
	r.StartTime = mod.StartTime
	r.EndTime = mod.EndTime
	r.Purpose = mod.Purpose
	r.DurationMinutes = DurationMinutes(mod.StartTime, mod.EndTime)
	r.CreatedAt = mod.CreatedAt
}

// DurationMinutes rounds to the nearest whole minute, so a 90-second request
// reports 2 and a 30-second one reports 1 after rounding up from 0.5.
func DurationMinutes(start, end time.Time) int {
	ms := end.Sub(start).Milliseconds()

	return int(math.Round(float64(ms) / float64(constant.MillisecondsToMinutes)))
}

type GetPendingRequestsResponse struct {
	Requests  []PendingRequestResponse `json:"requests"`
	TotalPage int                      `json:"total_page"`
	TotalData int                      `json:"total_data"`
}

func (r *GetPendingRequestsResponse) FromModels(models []model.BookingRequest, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Requests = make([]PendingRequestResponse, len(models))
	for i, mod := range models {
		r.Requests[i].FromModel(mod)
	}
}
