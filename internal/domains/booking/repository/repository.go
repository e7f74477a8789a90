package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"time"

	"roomdesk/infras/otel"
	"roomdesk/infras/postgres"
	"roomdesk/internal/domains/booking/model"
	"roomdesk/shared/constant"
	gDto "roomdesk/shared/dto"
	gRepo "roomdesk/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	ExistOverlapTx(ctx context.Context, sqltx *sqlx.Tx, roomID string, startTime, endTime time.Time) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// ExistOverlapTx reports whether the room already has a booking touching the
// [startTime, endTime] window. Boundaries are inclusive on both sides: a
// booking that ends exactly when the window starts still counts as an overlap.
// Must run inside the transaction that holds the room lock, otherwise a
// concurrent decision could slip a booking in between the check and the insert.
func (repo *repositoryImpl) ExistOverlapTx(ctx context.Context, sqltx *sqlx.Tx, roomID string, startTime, endTime time.Time) (bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.ExistOverlapTx")
	defer scope.End()

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldRoomID, Operator: gDto.FilterOperatorEq, Value: roomID},
			gDto.Filter{Field: model.FieldStartTime, ArgName: "window_end", Operator: gDto.FilterOperatorLessEq, Value: endTime},
			gDto.Filter{Field: model.FieldEndTime, ArgName: "window_start", Operator: gDto.FilterOperatorGreaterEq, Value: startTime},
		},
	}

	return repo.ExistTx(ctx, sqltx, filter) //nolint:wrapcheck
}
