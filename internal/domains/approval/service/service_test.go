package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"roomdesk/config"
	"roomdesk/infras/otel/mocks"
	"roomdesk/infras/postgres"
	approvalDto "roomdesk/internal/domains/approval/model/dto"
	approvalMocks "roomdesk/internal/domains/approval/mocks"
	"roomdesk/internal/domains/approval/service"
	auditMocks "roomdesk/internal/domains/audit/mocks"
	bookingMocks "roomdesk/internal/domains/booking/mocks"
	requestMocks "roomdesk/internal/domains/request/mocks"
	requestModel "roomdesk/internal/domains/request/model"
	roomMocks "roomdesk/internal/domains/room/mocks"
	roomModel "roomdesk/internal/domains/room/model"
	cacheMocks "roomdesk/shared/cache/mocks"
	"roomdesk/shared/constant"
	gDto "roomdesk/shared/dto"
	"roomdesk/shared/failure"
	"roomdesk/shared/timezone"
)

type engineFixture struct {
	svc         service.Approval
	requestRepo *requestMocks.MockRequest
	roomRepo    *roomMocks.MockRoom
	bookingRepo *bookingMocks.MockBooking
	auditRepo   *auditMocks.MockAudit
	publisher   *approvalMocks.MockDecision
	cache       *cacheMocks.MockRedisCache
	sqlMock     sqlmock.Sqlmock
}

func newEngineFixture(t *testing.T, ctrl *gomock.Controller) *engineFixture {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "postgres")
	conn := &postgres.Connection{Read: sqlxDB, Write: sqlxDB}

	fixture := &engineFixture{
		requestRepo: requestMocks.NewMockRequest(ctrl),
		roomRepo:    roomMocks.NewMockRoom(ctrl),
		bookingRepo: bookingMocks.NewMockBooking(ctrl),
		auditRepo:   auditMocks.NewMockAudit(ctrl),
		publisher:   approvalMocks.NewMockDecision(ctrl),
		cache:       cacheMocks.NewMockRedisCache(ctrl),
		sqlMock:     mock,
	}

	fixture.svc = service.New(
		conn,
		fixture.requestRepo,
		fixture.roomRepo,
		fixture.bookingRepo,
		fixture.auditRepo,
		fixture.publisher,
		&config.Config{},
		fixture.cache,
		mocks.NewOtel(),
	)

	return fixture
}

// expectAfterDecision wires the background tail of a committed decision and
// returns a channel that closes once the decision event has been published.
func (f *engineFixture) expectAfterDecision(auditErr error) chan struct{} {
	published := make(chan struct{})

	f.auditRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(auditErr)
	f.publisher.EXPECT().
		PublishDecision(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, approvalDto.DecisionEvent) error {
			close(published)

			return nil
		})
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return published
}

func waitPublished(t *testing.T, published chan struct{}) {
	t.Helper()

	select {
	case <-published:
	case <-time.After(2 * time.Second):
		t.Fatal("decision event was not published")
	}
}

func pendingRequest(id string) requestModel.BookingRequest {
	start := timezone.Now().Add(time.Hour)

	return requestModel.BookingRequest{
		ID:        id,
		RoomID:    "room-1",
		StudentID: "student-7",
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Purpose:   "study group",
		Status:    constant.RequestStatusPending,
	}
}

func activeRoom(id string) roomModel.Room {
	return roomModel.Room{
		ID:     id,
		Name:   "Room A",
		Active: true,
	}
}

func TestApprovalService_Approve(t *testing.T) {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUsername, "admin")

	t.Run("approves a free slot and creates the booking", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newEngineFixture(t, ctrl)
		request := pendingRequest("req-1")

		f.sqlMock.ExpectBegin()
		f.requestRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), "req-1").Return(request, nil)
		f.roomRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), "room-1").Return(activeRoom("room-1"), nil)
		f.bookingRepo.EXPECT().
			ExistOverlapTx(gomock.Any(), gomock.Any(), "room-1", request.StartTime, request.EndTime).
			Return(false, nil)
		f.bookingRepo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.requestRepo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, mod map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, constant.RequestStatusApproved, mod[requestModel.FieldStatus])
				assert.Equal(t, "admin", mod[requestModel.FieldDecidedBy])

				return nil
			})
		f.sqlMock.ExpectCommit()

		published := f.expectAfterDecision(nil)

		res, err := f.svc.Approve(ctx, "req-1")

		assert.NoError(t, err)
		assert.Equal(t, constant.DecisionApproved, res.Status)
		assert.Equal(t, "req-1", res.RequestID)
		assert.Equal(t, "admin", res.DecidedBy)
		require.NotNil(t, res.BookingID)
		assert.NotEmpty(t, *res.BookingID)

		waitPublished(t, published)
		assert.NoError(t, f.sqlMock.ExpectationsWereMet())
	})

	t.Run("rejects as conflicting when the room is already booked", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newEngineFixture(t, ctrl)
		request := pendingRequest("req-2")

		f.sqlMock.ExpectBegin()
		f.requestRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), "req-2").Return(request, nil)
		f.roomRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), "room-1").Return(activeRoom("room-1"), nil)
		f.bookingRepo.EXPECT().
			ExistOverlapTx(gomock.Any(), gomock.Any(), "room-1", request.StartTime, request.EndTime).
			Return(true, nil)
		f.requestRepo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, mod map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, constant.RequestStatusRejected, mod[requestModel.FieldStatus])

				return nil
			})
		f.sqlMock.ExpectCommit()

		published := f.expectAfterDecision(nil)

		res, err := f.svc.Approve(ctx, "req-2")

		assert.NoError(t, err)
		assert.Equal(t, constant.DecisionRejectedConflict, res.Status)
		assert.Nil(t, res.BookingID)

		waitPublished(t, published)
		assert.NoError(t, f.sqlMock.ExpectationsWereMet())
	})

	t.Run("returns not found for a missing request", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newEngineFixture(t, ctrl)

		f.sqlMock.ExpectBegin()
		f.requestRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), "missing").
			Return(requestModel.BookingRequest{}, nil)
		f.sqlMock.ExpectRollback()

		_, err := f.svc.Approve(ctx, "missing")

		assert.Error(t, err)
		assert.True(t, failure.IsCode(err, http.StatusNotFound))
		assert.NoError(t, f.sqlMock.ExpectationsWereMet())
	})

	t.Run("returns not found for an already decided request", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newEngineFixture(t, ctrl)
		request := pendingRequest("req-3")
		request.Status = constant.RequestStatusApproved

		f.sqlMock.ExpectBegin()
		f.requestRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), "req-3").Return(request, nil)
		f.sqlMock.ExpectRollback()

		_, err := f.svc.Approve(ctx, "req-3")

		assert.Error(t, err)
		assert.True(t, failure.IsCode(err, http.StatusNotFound))
		assert.NoError(t, f.sqlMock.ExpectationsWereMet())
	})

	t.Run("returns not found when the room no longer exists", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newEngineFixture(t, ctrl)
		request := pendingRequest("req-4")

		f.sqlMock.ExpectBegin()
		f.requestRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), "req-4").Return(request, nil)
		f.roomRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), "room-1").Return(roomModel.Room{}, nil)
		f.sqlMock.ExpectRollback()

		_, err := f.svc.Approve(ctx, "req-4")

		assert.Error(t, err)
		assert.True(t, failure.IsCode(err, http.StatusNotFound))
		assert.NoError(t, f.sqlMock.ExpectationsWereMet())
	})

	t.Run("rolls back when the booking insert fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newEngineFixture(t, ctrl)
		request := pendingRequest("req-5")

		f.sqlMock.ExpectBegin()
		f.requestRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), "req-5").Return(request, nil)
		f.roomRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), "room-1").Return(activeRoom("room-1"), nil)
		f.bookingRepo.EXPECT().
			ExistOverlapTx(gomock.Any(), gomock.Any(), "room-1", request.StartTime, request.EndTime).
			Return(false, nil)
		f.bookingRepo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("insert failed"))
		f.sqlMock.ExpectRollback()

		_, err := f.svc.Approve(ctx, "req-5")

		assert.Error(t, err)
		assert.NoError(t, f.sqlMock.ExpectationsWereMet())
	})

	t.Run("a failed audit write does not undo the decision", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newEngineFixture(t, ctrl)
		request := pendingRequest("req-6")

		f.sqlMock.ExpectBegin()
		f.requestRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), "req-6").Return(request, nil)
		f.roomRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), "room-1").Return(activeRoom("room-1"), nil)
		f.bookingRepo.EXPECT().
			ExistOverlapTx(gomock.Any(), gomock.Any(), "room-1", request.StartTime, request.EndTime).
			Return(false, nil)
		f.bookingRepo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.requestRepo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.sqlMock.ExpectCommit()

		published := f.expectAfterDecision(errors.New("audit insert failed"))

		res, err := f.svc.Approve(ctx, "req-6")

		assert.NoError(t, err)
		assert.Equal(t, constant.DecisionApproved, res.Status)

		waitPublished(t, published)
	})
}

func TestApprovalService_Reject(t *testing.T) {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUsername, "admin")

	t.Run("rejects a pending request without touching the room", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newEngineFixture(t, ctrl)
		request := pendingRequest("req-1")

		f.sqlMock.ExpectBegin()
		f.requestRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), "req-1").Return(request, nil)
		f.requestRepo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, mod map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, constant.RequestStatusRejected, mod[requestModel.FieldStatus])

				return nil
			})
		f.sqlMock.ExpectCommit()

		published := f.expectAfterDecision(nil)

		res, err := f.svc.Reject(ctx, "req-1", approvalDto.RejectRequest{Reason: "room closed"})

		assert.NoError(t, err)
		assert.Equal(t, constant.DecisionRejected, res.Status)
		assert.Nil(t, res.BookingID)

		waitPublished(t, published)
		assert.NoError(t, f.sqlMock.ExpectationsWereMet())
	})

	t.Run("returns not found for an already decided request", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newEngineFixture(t, ctrl)
		request := pendingRequest("req-2")
		request.Status = constant.RequestStatusRejected

		f.sqlMock.ExpectBegin()
		f.requestRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), "req-2").Return(request, nil)
		f.sqlMock.ExpectRollback()

		_, err := f.svc.Reject(ctx, "req-2", approvalDto.RejectRequest{})

		assert.Error(t, err)
		assert.True(t, failure.IsCode(err, http.StatusNotFound))
		assert.NoError(t, f.sqlMock.ExpectationsWereMet())
	})
}

func TestApprovalService_ListPending(t *testing.T) {
	ctx := context.Background()

	t.Run("lists pending requests oldest first on a cache miss", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newEngineFixture(t, ctrl)

		first := pendingRequest("req-1")
		second := pendingRequest("req-2")
		second.StartTime = second.StartTime.Add(2 * time.Hour)
		second.EndTime = second.StartTime.Add(90 * time.Second)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		f.requestRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(2, nil)
		f.requestRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]requestModel.BookingRequest, error) {
				assert.Equal(t, "booking_requests.created_at", params.SortBy)
				assert.Equal(t, "ASC", params.SortDir)

				return []requestModel.BookingRequest{first, second}, nil
			})
		f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		res, err := f.svc.ListPending(ctx, gDto.QueryParams{Page: 1, Limit: 20})

		assert.NoError(t, err)
		assert.Equal(t, 2, res.TotalData)
		assert.Len(t, res.Requests, 2)
		assert.Equal(t, 60, res.Requests[0].DurationMinutes)
		assert.Equal(t, 2, res.Requests[1].DurationMinutes)
	})

	t.Run("serves from cache when present", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newEngineFixture(t, ctrl)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		_, err := f.svc.ListPending(ctx, gDto.QueryParams{Page: 1, Limit: 20})

		assert.NoError(t, err)
	})

	t.Run("propagates repository errors", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newEngineFixture(t, ctrl)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		f.requestRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, errors.New("db down"))

		_, err := f.svc.ListPending(ctx, gDto.QueryParams{Page: 1, Limit: 20})

		assert.Error(t, err)
	})
}
