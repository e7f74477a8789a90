package model

import (
	"time"

	"roomdesk/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID        = "id"
	FieldRequestID = "request_id"
	FieldRoomID    = "room_id"
	FieldStudentID = "student_id"
	FieldStartTime = "start_time"
	FieldEndTime   = "end_time"
)

type Booking struct {
	ID        string    `db:"id"`
	RequestID string    `db:"request_id"`
	RoomID    string    `db:"room_id"`
	StudentID string    `db:"student_id"`
	StartTime time.Time `db:"start_time"`
	EndTime   time.Time `db:"end_time"`
	model.Metadata
}
