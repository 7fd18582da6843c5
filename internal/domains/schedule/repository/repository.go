package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"proctor/infras/otel"
	"proctor/infras/postgres"
	"proctor/internal/domains/schedule/model"
	"proctor/shared/constant"
	gDto "proctor/shared/dto"
	"proctor/shared/logger"
	gRepo "proctor/shared/repository"
	"time"
)

type Schedule interface {
	InsertReturningID(ctx context.Context, model model.ExamSchedule) (int64, error)
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.ExamSchedule, error)
	GetAll(ctx context.Context, filter gDto.FilterGroup, columns ...string) ([]model.ExamSchedule, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Available(ctx context.Context, userID int64, from, to time.Time) ([]model.ExamSchedule, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.ExamSchedule]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Schedule {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.ExamSchedule](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// Available lists schedules starting inside [from, to] that the user has not
// reserved yet, in any confirmation state.
func (repo *repositoryImpl) Available(ctx context.Context, userID int64, from, to time.Time) ([]model.ExamSchedule, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".schedule.Available")
	defer scope.End()

	query := `
		SELECT exam_schedules.id, exam_schedules.name, exam_schedules.start_time, exam_schedules.end_time,
		       exam_schedules.created_by, exam_schedules.modified_by
		FROM exam_schedules
		WHERE exam_schedules.start_time BETWEEN :from AND :to
		  AND NOT EXISTS (
			SELECT 1
			FROM reservations
			WHERE reservations.exam_schedule_id = exam_schedules.id
			  AND reservations.user_id = :user_id
		  )
		ORDER BY exam_schedules.id`
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	args := map[string]any{
		"from":    from,
		"to":      to,
		"user_id": userID,
	}

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to prepare statement (available schedules): %w", err)
	}
	defer prepare.Close()

	var schedules []model.ExamSchedule
	if err := prepare.SelectContext(ctx, &schedules, args); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to get available schedules: %w", err)
	}

	return schedules, nil
}
