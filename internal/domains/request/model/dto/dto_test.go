package dto_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomdesk/internal/domains/request/model"
	"roomdesk/internal/domains/request/model/dto"
)

func TestDurationMinutes(t *testing.T) {
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		duration time.Duration
		expected int
	}{
		{
			name:     "whole hour",
			duration: time.Hour,
			expected: 60,
		},
		{
			name:     "ninety seconds rounds to two",
			duration: 90 * time.Second,
			expected: 2,
		},
		{
			name:     "thirty seconds rounds to one",
			duration: 30 * time.Second,
			expected: 1,
		},
		{
			name:     "twenty nine seconds rounds to zero",
			duration: 29 * time.Second,
			expected: 0,
		},
		{
			name:     "zero duration",
			duration: 0,
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := dto.DurationMinutes(base, base.Add(tt.duration))

			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestGetPendingRequestsResponse_FromModels(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	models := []model.BookingRequest{
		{
			ID:        "request-1",
			RoomID:    "room-1",
			RoomName:  "Room A",
			StudentID: "student-1",
			StartTime: start,
			EndTime:   start.Add(time.Hour),
			Purpose:   "study group",
		},
		{
			ID:        "request-2",
			RoomID:    "room-2",
			RoomName:  "Room B",
			StudentID: "student-2",
			StartTime: start,
			EndTime:   start.Add(30 * time.Minute),
		},
	}

	res := dto.GetPendingRequestsResponse{}
	res.FromModels(models, 25, 10)

	assert.Equal(t, 25, res.TotalData)
	assert.Equal(t, 3, res.TotalPage)
	require.Len(t, res.Requests, 2)

	assert.Equal(t, "request-1", res.Requests[0].ID)
	assert.Equal(t, "Room A", res.Requests[0].RoomName)
	assert.Equal(t, 60, res.Requests[0].DurationMinutes)

	assert.Equal(t, "request-2", res.Requests[1].ID)
	assert.Equal(t, 30, res.Requests[1].DurationMinutes)
}
