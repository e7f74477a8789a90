package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"roomdesk/config"
	"roomdesk/infras/otel"
	"roomdesk/infras/postgres"
	"roomdesk/internal/domains/approval/model/dto"
	"roomdesk/internal/domains/approval/publisher"
	auditModel "roomdesk/internal/domains/audit/model"
	auditRepository "roomdesk/internal/domains/audit/repository"
	bookingModel "roomdesk/internal/domains/booking/model"
	bookingRepository "roomdesk/internal/domains/booking/repository"
	requestModel "roomdesk/internal/domains/request/model"
	requestDto "roomdesk/internal/domains/request/model/dto"
	requestRepository "roomdesk/internal/domains/request/repository"
	roomRepository "roomdesk/internal/domains/room/repository"
	"roomdesk/shared"
	"roomdesk/shared/cache"
	"roomdesk/shared/constant"
	gDto "roomdesk/shared/dto"
	"roomdesk/shared/failure"
	gModel "roomdesk/shared/model"
	"roomdesk/shared/timezone"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	cachePendingRequests = "request:pending"
	cacheRoomStatus      = "room:status"
)

type Approval interface {
	ListPending(ctx context.Context, params gDto.QueryParams) (requestDto.GetPendingRequestsResponse, error)
	Approve(ctx context.Context, requestID string) (dto.DecisionResponse, error)
	Reject(ctx context.Context, requestID string, req dto.RejectRequest) (dto.DecisionResponse, error)
}

type serviceImpl struct {
	db          *postgres.Connection
	requestRepo requestRepository.Request
	roomRepo    roomRepository.Room
	bookingRepo bookingRepository.Booking
	auditRepo   auditRepository.Audit
	publisher   publisher.Decision
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(
	db *postgres.Connection,
	requestRepo requestRepository.Request,
	roomRepo roomRepository.Room,
	bookingRepo bookingRepository.Booking,
	auditRepo auditRepository.Audit,
	publisher publisher.Decision,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Approval {
	return &serviceImpl{
		db:          db,
		requestRepo: requestRepo,
		roomRepo:    roomRepo,
		bookingRepo: bookingRepo,
		auditRepo:   auditRepo,
		publisher:   publisher,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

func (s *serviceImpl) ListPending(ctx context.Context, params gDto.QueryParams) (res requestDto.GetPendingRequestsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListPending")
	defer scope.End()
	defer scope.TraceIfError(err)

	// Oldest first, so long-waiting requests surface at the top of the queue.
	if params.SortBy == constant.Empty {
		params.SortBy = fmt.Sprintf("%s.%s", requestModel.TableName, gModel.FieldCreatedAt)
		params.SortDir = "ASC"
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: requestModel.FieldStatus, Table: requestModel.TableName, Operator: gDto.FilterOperatorEq, Value: constant.RequestStatusPending},
		},
	}

	cacheKey := shared.BuildCacheKeyWithQuery(cachePendingRequests, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for pending requests")

		return res, nil
	}

	total, err := s.requestRepo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count pending requests")

		return res, fmt.Errorf("failed to count pending requests: %w", err)
	}

	models, err := s.requestRepo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get pending requests")

		return res, fmt.Errorf("failed to get pending requests: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save pending requests to cache")
		}
	}()

	return res, nil
}

// Approve decides a pending request. It locks the request row first, then the
// room row, checks the room for an overlapping booking and either creates the
// booking or rejects the request as conflicting. A conflict is a committed
// outcome, not a rollback: the request ends up rejected either way.
func (s *serviceImpl) Approve(ctx context.Context, requestID string) (res dto.DecisionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Approve")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor, _ := ctx.Value(constant.ContextKeyUsername).(string)
	decidedAt := timezone.Now()

	var event dto.DecisionEvent

	err = s.db.WithTx(ctx, func(sqltx *sqlx.Tx) error {
		request, err := s.lockPendingRequest(ctx, sqltx, requestID)
		if err != nil {
			return err
		}

		room, err := s.roomRepo.GetForUpdateTx(ctx, sqltx, request.RoomID)
		if err != nil {
			return fmt.Errorf("failed to lock room: %w", err)
		}

		if room.ID == constant.Empty {
			return failure.NotFound("room not found")
		}

		overlap, err := s.bookingRepo.ExistOverlapTx(ctx, sqltx, request.RoomID, request.StartTime, request.EndTime)
		if err != nil {
			return fmt.Errorf("failed to check booking overlap: %w", err)
		}

		if overlap {
			if err := s.updateRequestStatusTx(ctx, sqltx, requestID, constant.RequestStatusRejected, actor, decidedAt); err != nil {
				return err
			}

			res = decisionResponse(requestID, constant.DecisionRejectedConflict, nil, actor, decidedAt)
			event = decisionEvent(request, res, "overlapping booking")

			return nil
		}

		booking := bookingModel.Booking{
			ID:        uuid.NewString(),
			RequestID: request.ID,
			RoomID:    request.RoomID,
			StudentID: request.StudentID,
			StartTime: request.StartTime,
			EndTime:   request.EndTime,
			Metadata: gModel.Metadata{
				CreatedAt:  decidedAt,
				ModifiedAt: decidedAt,
				CreatedBy:  actor,
				ModifiedBy: actor,
			},
		}

		if err := s.bookingRepo.InsertTx(ctx, sqltx, booking); err != nil {
			return fmt.Errorf("failed to insert booking: %w", err)
		}

		if err := s.updateRequestStatusTx(ctx, sqltx, requestID, constant.RequestStatusApproved, actor, decidedAt); err != nil {
			return err
		}

		res = decisionResponse(requestID, constant.DecisionApproved, &booking.ID, actor, decidedAt)
		event = decisionEvent(request, res, constant.Empty)

		return nil
	})
	if err != nil {
		// The datastore exclusion constraint is the last line of defense when
		// a booking lands through a path that bypassed the room lock.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeExclusionViolation {
			return res, failure.Conflict("room is already booked for this time window") //nolint:wrapcheck
		}

		return res, err
	}

	s.afterDecision(ctx, res, event)

	return res, nil
}

// Reject declines a pending request. No room lock or overlap check is needed:
// rejection only transitions the request row.
func (s *serviceImpl) Reject(ctx context.Context, requestID string, req dto.RejectRequest) (res dto.DecisionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reject")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor, _ := ctx.Value(constant.ContextKeyUsername).(string)
	decidedAt := timezone.Now()

	var event dto.DecisionEvent

	err = s.db.WithTx(ctx, func(sqltx *sqlx.Tx) error {
		request, err := s.lockPendingRequest(ctx, sqltx, requestID)
		if err != nil {
			return err
		}

		if err := s.updateRequestStatusTx(ctx, sqltx, requestID, constant.RequestStatusRejected, actor, decidedAt); err != nil {
			return err
		}

		res = decisionResponse(requestID, constant.DecisionRejected, nil, actor, decidedAt)
		event = decisionEvent(request, res, req.Reason)

		return nil
	})
	if err != nil {
		return res, err
	}

	s.afterDecision(ctx, res, event)

	return res, nil
}

func (s *serviceImpl) lockPendingRequest(ctx context.Context, sqltx *sqlx.Tx, requestID string) (requestModel.BookingRequest, error) {
	request, err := s.requestRepo.GetForUpdateTx(ctx, sqltx, requestID)
	if err != nil {
		return request, fmt.Errorf("failed to lock booking request: %w", err)
	}

	if request.ID == constant.Empty {
		return request, failure.NotFound("booking request not found") //nolint:wrapcheck
	}

	if request.Status != constant.RequestStatusPending {
		// Already decided requests are invisible to the decision endpoints.
		return request, failure.NotFound("booking request not found") //nolint:wrapcheck
	}

	return request, nil
}

func (s *serviceImpl) updateRequestStatusTx(ctx context.Context, sqltx *sqlx.Tx, requestID, status, actor string, decidedAt time.Time) error {
	mod := map[string]any{
		requestModel.FieldStatus:    status,
		requestModel.FieldDecidedBy: actor,
		requestModel.FieldDecidedAt: decidedAt,
		gModel.FieldModifiedAt:      decidedAt,
		gModel.FieldModifiedBy:      actor,
	}

	err := s.requestRepo.UpdateTx(ctx, sqltx, mod, shared.FilterByID(requestID, requestModel.FieldID, requestModel.TableName))
	if err != nil {
		return fmt.Errorf("failed to update booking request status: %w", err)
	}

	return nil
}

// afterDecision runs the best-effort tail of a committed decision: audit trail,
// decision event and cache invalidation. Failures here are logged and dropped,
// they never undo the decision.
func (s *serviceImpl) afterDecision(ctx context.Context, res dto.DecisionResponse, event dto.DecisionEvent) {
	go func() {
		c := context.WithoutCancel(ctx)

		action := constant.AuditActionApproveBooking
		if res.Status != constant.DecisionApproved {
			action = constant.AuditActionRejectBooking
		}

		auditLog := auditModel.AuditLog{
			ID:       uuid.NewString(),
			Actor:    res.DecidedBy,
			Action:   action,
			TargetID: res.RequestID,
			Detail:   res.Status,
			LoggedAt: res.DecidedAt,
			Metadata: gModel.Metadata{
				CreatedAt:  res.DecidedAt,
				ModifiedAt: res.DecidedAt,
				CreatedBy:  res.DecidedBy,
				ModifiedBy: res.DecidedBy,
			},
		}

		if err := s.auditRepo.Insert(c, auditLog); err != nil {
			log.Error().Err(err).Str("requestID", res.RequestID).Msg("failed to write audit log for decision")
		}

		if err := s.publisher.PublishDecision(c, event); err != nil {
			log.Error().Err(err).Str("requestID", res.RequestID).Msg("failed to publish decision event")
		}

		shared.InvalidateCaches(c, s.cache, cachePendingRequests)
		shared.InvalidateCaches(c, s.cache, cacheRoomStatus)
	}()
}

func decisionResponse(requestID, status string, bookingID *string, actor string, decidedAt time.Time) dto.DecisionResponse {
	return dto.DecisionResponse{
		RequestID: requestID,
		Status:    status,
		BookingID: bookingID,
		DecidedBy: actor,
		DecidedAt: decidedAt,
	}
}

func decisionEvent(request requestModel.BookingRequest, res dto.DecisionResponse, reason string) dto.DecisionEvent {
	return dto.DecisionEvent{
		RequestID: res.RequestID,
		RoomID:    request.RoomID,
		StudentID: request.StudentID,
		Status:    res.Status,
		BookingID: res.BookingID,
		Reason:    reason,
		DecidedBy: res.DecidedBy,
		DecidedAt: res.DecidedAt,
	}
}
