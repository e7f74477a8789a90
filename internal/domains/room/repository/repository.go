package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"roomdesk/infras/otel"
	"roomdesk/infras/postgres"
	"roomdesk/internal/domains/room/model"
	"roomdesk/shared/constant"
	gDto "roomdesk/shared/dto"
	"roomdesk/shared/logger"
	gRepo "roomdesk/shared/repository"

	"github.com/jmoiron/sqlx"
)

const (
	statusQuery = `SELECT rooms.id, rooms.name, rooms.access_group, rooms.capacity,
		bookings.id AS booking_id, bookings.student_id, bookings.start_time, bookings.end_time
		FROM rooms
		LEFT JOIN bookings ON bookings.room_id = rooms.id
			AND bookings.start_time <= :at AND bookings.end_time >= :at
		WHERE rooms.active = true
		ORDER BY rooms.id ASC`

	lockQuery = "SELECT id, name, access_group, capacity, active FROM rooms WHERE id = :id FOR UPDATE"
)

type Room interface {
	Insert(ctx context.Context, model model.Room) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Room, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Room, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	GetStatuses(ctx context.Context, at time.Time) ([]model.RoomStatus, error)
	GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, id string) (model.Room, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Room]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Room {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Room](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// GetStatuses returns every active room together with the booking that is in
// progress at the given instant. Bookings are inclusive on both boundaries, so
// a room is occupied from the exact start second to the exact end second.
func (repo *repositoryImpl) GetStatuses(ctx context.Context, at time.Time) ([]model.RoomStatus, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.GetStatuses")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, statusQuery)

	var statuses []model.RoomStatus

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, statusQuery)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return statuses, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	err = prepare.SelectContext(ctx, &statuses, map[string]any{"at": at})
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return statuses, fmt.Errorf("failed to get room statuses: %w", err)
	}

	return statuses, nil
}

// GetForUpdateTx locks the room row for the rest of the transaction. Decisions
// touching the same room queue up behind this lock, which keeps the conflict
// check and the booking insert a single serialized unit per room.
func (repo *repositoryImpl) GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, id string) (room model.Room, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.GetForUpdateTx")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, lockQuery)

	prepare, err := sqltx.PrepareNamedContext(ctx, lockQuery)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return room, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	err = prepare.GetContext(ctx, &room, map[string]any{"id": id})
	if errors.Is(err, sql.ErrNoRows) {
		return room, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return room, fmt.Errorf("failed to lock room: %w", err)
	}

	return room, nil
}
