package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"roomdesk/config"
	"roomdesk/infras/otel/mocks"
	roomMocks "roomdesk/internal/domains/room/mocks"
	"roomdesk/internal/domains/room/model"
	"roomdesk/internal/domains/room/model/dto"
	"roomdesk/internal/domains/room/service"
	cacheMocks "roomdesk/shared/cache/mocks"
)

func TestRoomService_GetStatuses(t *testing.T) {
	ctx := context.Background()

	t.Run("maps occupied and free rooms on a cache miss", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockRepo := roomMocks.NewMockRoom(ctrl)
		mockCache := cacheMocks.NewMockRedisCache(ctrl)

		svc := service.New(mockRepo, &config.Config{}, mockCache, mocks.NewOtel())

		bookingID := "booking-1"
		studentID := "student-7"
		start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
		end := start.Add(time.Hour)

		statuses := []model.RoomStatus{
			{
				ID:          "room-1",
				Name:        "Room A",
				AccessGroup: "science",
				Capacity:    6,
				BookingID:   &bookingID,
				StudentID:   &studentID,
				StartTime:   &start,
				EndTime:     &end,
			},
			{
				ID:       "room-2",
				Name:     "Room B",
				Capacity: 4,
			},
		}

		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		mockRepo.EXPECT().GetStatuses(gomock.Any(), gomock.Any()).Return(statuses, nil)
		mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		res, err := svc.GetStatuses(ctx)

		assert.NoError(t, err)
		require.Len(t, res.Rooms, 2)

		occupied := res.Rooms[0]
		assert.Equal(t, dto.StatusOccupied, occupied.Status)
		require.NotNil(t, occupied.CurrentBooking)
		assert.Equal(t, "booking-1", occupied.CurrentBooking.BookingID)
		assert.Equal(t, "student-7", occupied.CurrentBooking.StudentID)

		free := res.Rooms[1]
		assert.Equal(t, dto.StatusAvailable, free.Status)
		assert.Nil(t, free.CurrentBooking)
	})

	t.Run("serves from cache when present", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockRepo := roomMocks.NewMockRoom(ctrl)
		mockCache := cacheMocks.NewMockRedisCache(ctrl)

		svc := service.New(mockRepo, &config.Config{}, mockCache, mocks.NewOtel())

		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		_, err := svc.GetStatuses(ctx)

		assert.NoError(t, err)
	})

	t.Run("propagates repository errors", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockRepo := roomMocks.NewMockRoom(ctrl)
		mockCache := cacheMocks.NewMockRedisCache(ctrl)

		svc := service.New(mockRepo, &config.Config{}, mockCache, mocks.NewOtel())

		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		mockRepo.EXPECT().GetStatuses(gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))

		_, err := svc.GetStatuses(ctx)

		assert.Error(t, err)
	})
}
