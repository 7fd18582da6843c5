package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"proctor/infras/otel"
	"proctor/infras/postgres"
	"proctor/internal/domains/reservation/model"
	gDto "proctor/shared/dto"
	gRepo "proctor/shared/repository"
)

type Reservation interface {
	InsertReturningID(ctx context.Context, model model.Reservation) (int64, error)
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Reservation, error)
	GetAll(ctx context.Context, filter gDto.FilterGroup, columns ...string) ([]model.Reservation, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	GetByPair(ctx context.Context, userID, scheduleID int64) (model.Reservation, error)
	ConfirmedCount(ctx context.Context, scheduleID int64) (int, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Reservation]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Reservation {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Reservation](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// GetByPair fetches the reservation on the natural key. A zero model with a
// nil error means the pair has no reservation.
func (repo *repositoryImpl) GetByPair(ctx context.Context, userID, scheduleID int64) (model.Reservation, error) {
	return repo.Get(ctx, PairFilter(userID, scheduleID))
}

// ConfirmedCount counts confirmed reservations for one schedule.
func (repo *repositoryImpl) ConfirmedCount(ctx context.Context, scheduleID int64) (int, error) {
	return repo.Count(ctx, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldExamScheduleID,
				Value:    scheduleID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldConfirmed,
				Value:    true,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	})
}

// PairFilter matches the (user, schedule) natural key.
func PairFilter(userID, scheduleID int64) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldUserID,
				Value:    userID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldExamScheduleID,
				Value:    scheduleID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}
}
