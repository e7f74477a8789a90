package model

import (
	"time"

	"roomdesk/shared/model"
)

const (
	TableName  = "booking_requests"
	EntityName = "request"

	FieldID        = "id"
	FieldRoomID    = "room_id"
	FieldStudentID = "student_id"
	FieldStartTime = "start_time"
	FieldEndTime   = "end_time"
	FieldPurpose   = "purpose"
	FieldStatus    = "status"
	FieldDecidedBy = "decided_by"
	FieldDecidedAt = "decided_at"
)

type BookingRequest struct {
	ID        string     `db:"id"`
	RoomID    string     `db:"room_id"`
	StudentID string     `db:"student_id"`
	StartTime time.Time  `db:"start_time"`
	EndTime   time.Time  `db:"end_time"`
	Purpose   string     `db:"purpose"`
	Status    string     `db:"status"`
	DecidedBy *string    `db:"decided_by"`
	DecidedAt *time.Time `db:"decided_at"`
	RoomName  string     `db:"room_name" table:"rooms" column:"name"`
	model.Metadata
}

func (BookingRequest) GetJoinQuery() string {
	return "JOIN rooms ON rooms.id = booking_requests.room_id"
}
