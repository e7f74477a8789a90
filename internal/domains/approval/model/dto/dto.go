package dto

import "time"

type RejectRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

type DecisionResponse struct {
	RequestID string    `json:"request_id"`
	Status    string    `json:"status"`
	BookingID *string   `json:"booking_id"`
	DecidedBy string    `json:"decided_by"`
	DecidedAt time.Time `json:"decided_at"`
}

// DecisionEvent is the payload published to the decision topic after a
// decision commits. Consumers must tolerate duplicates: publishing is
// best-effort and retried deliveries are possible.
type DecisionEvent struct {
	RequestID string    `json:"request_id"`
	RoomID    string    `json:"room_id"`
	StudentID string    `json:"student_id"`
	Status    string    `json:"status"`
	BookingID *string   `json:"booking_id"`
	Reason    string    `json:"reason,omitempty"`
	DecidedBy string    `json:"decided_by"`
	DecidedAt time.Time `json:"decided_at"`
}
