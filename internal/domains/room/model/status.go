package model

import "time"

// RoomStatus is a room row joined with its booking in progress, if any.
// The booking columns are null when the room is free at the query time.
type RoomStatus struct {
	ID          string     `db:"id"`
	Name        string     `db:"name"`
	AccessGroup string     `db:"access_group"`
	Capacity    int        `db:"capacity"`
	BookingID   *string    `db:"booking_id"`
	StudentID   *string    `db:"student_id"`
	StartTime   *time.Time `db:"start_time"`
	EndTime     *time.Time `db:"end_time"`
}
