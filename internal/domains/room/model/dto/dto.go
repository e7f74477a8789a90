package dto

import (
	"time"

	"roomdesk/internal/domains/room/model"
)

const (
	StatusAvailable = "available"
	StatusOccupied  = "occupied"
)

type CurrentBooking struct {
	BookingID string    `json:"booking_id"`
	StudentID string    `json:"student_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

type RoomStatusResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	AccessGroup    string          `json:"access_group"`
	Capacity       int             `json:"capacity"`
	Status         string          `json:"status"`
	CurrentBooking *CurrentBooking `json:"current_booking"`
}

func (r *RoomStatusResponse) FromModel(mod model.RoomStatus) {
	r.ID = mod.ID
	r.Name = mod.Name
	r.AccessGroup = mod.AccessGroup
	r.Capacity = mod.Capacity
	r.Status = StatusAvailable
	r.CurrentBooking = nil

	if mod.BookingID != nil {
		r.Status = StatusOccupied
		r.CurrentBooking = &CurrentBooking{
			BookingID: *mod.BookingID,
			StudentID: *mod.StudentID,
			StartTime: *mod.StartTime,
			EndTime:   *mod.EndTime,
		}
	}
}

type GetRoomStatusesResponse struct {
	Rooms []RoomStatusResponse `json:"rooms"`
}

func (r *GetRoomStatusesResponse) FromModels(models []model.RoomStatus) {
	r.Rooms = make([]RoomStatusResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
