package service

import (
	"context"
	"fmt"
	"proctor/config"
	"proctor/infras/otel"
	"proctor/internal/domains/reservation/repository"
	"proctor/internal/domains/schedule/model"
	"proctor/internal/domains/schedule/model/dto"
	scheduleRepo "proctor/internal/domains/schedule/repository"
	userModel "proctor/internal/domains/user/model"
	"proctor/shared"
	"proctor/shared/constant"
	gDto "proctor/shared/dto"
	"proctor/shared/failure"
	"proctor/shared/timezone"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	msgOnlyAdminCreates = "Only admin can make exam schedules"
	msgDuplicateName    = "Exam schedule's name must be unique. Please use other name."
)

type Schedule interface {
	GetSchedules(ctx context.Context) ([]dto.ScheduleResponse, error)
	CreateSchedule(ctx context.Context, req dto.CreateScheduleRequest) (dto.ScheduleResponse, error)
}

type serviceImpl struct {
	repo            scheduleRepo.Schedule
	reservationRepo repository.Reservation
	cfg             *config.Config
	otel            otel.Otel
}

func New(repo scheduleRepo.Schedule, reservationRepo repository.Reservation, cfg *config.Config, otel otel.Otel) Schedule {
	return &serviceImpl{
		repo:            repo,
		reservationRepo: reservationRepo,
		cfg:             cfg,
		otel:            otel,
	}
}

// GetSchedules lists schedules for the caller. Admins see everything; clients
// only see schedules starting inside the reservation window that they have not
// reserved yet. Every entry carries the remaining confirmed capacity.
func (s *serviceImpl) GetSchedules(ctx context.Context) (res []dto.ScheduleResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetSchedules")
	defer scope.End()
	defer scope.TraceIfError(err)

	caller, ok := userModel.CallerFromContext(ctx)
	if !ok {
		return res, failure.ForbiddenError // nolint:wrapcheck
	}

	var schedules []model.ExamSchedule

	if caller.IsAdmin() {
		schedules, err = s.repo.GetAll(ctx, gDto.FilterGroup{})
	} else {
		now := timezone.Now()
		until := now.Add(time.Duration(s.cfg.App.ReservationWindowHours) * time.Hour)
		schedules, err = s.repo.Available(ctx, caller.ID, now, until)
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to get schedules")

		return res, fmt.Errorf("failed to get schedules: %w", err)
	}

	res = make([]dto.ScheduleResponse, 0, len(schedules))

	for _, schedule := range schedules {
		remain, err := s.remainSlot(ctx, schedule.ID)
		if err != nil {
			return nil, err
		}

		res = append(res, dto.FromModel(schedule, remain))
	}

	return res, nil
}

// CreateSchedule persists a new schedule on behalf of an admin. Names must be
// unique, compared exactly.
func (s *serviceImpl) CreateSchedule(ctx context.Context, req dto.CreateScheduleRequest) (res dto.ScheduleResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateSchedule")
	defer scope.End()
	defer scope.TraceIfError(err)

	caller, ok := userModel.CallerFromContext(ctx)
	if !ok || !caller.IsAdmin() {
		return res, failure.Forbidden(msgOnlyAdminCreates) // nolint:wrapcheck
	}

	nameTaken, err := s.repo.Exist(ctx, shared.FilterEq(model.FieldName, model.TableName, req.Name))
	if err != nil {
		log.Error().Err(err).Msg("failed to check schedule name")

		return res, fmt.Errorf("failed to check schedule name: %w", err)
	}

	if nameTaken {
		return res, failure.BadRequestFromString(msgDuplicateName) // nolint:wrapcheck
	}

	schedule := req.ToModel(caller.Handle)

	id, err := s.repo.InsertReturningID(ctx, schedule)
	if err != nil {
		log.Error().Err(err).Msg("failed to create schedule")

		return res, fmt.Errorf("failed to create schedule: %w", err)
	}

	schedule.ID = id

	return dto.FromModel(schedule, s.cfg.App.MaxReservations), nil
}

func (s *serviceImpl) remainSlot(ctx context.Context, scheduleID int64) (int, error) {
	confirmed, err := s.reservationRepo.ConfirmedCount(ctx, scheduleID)
	if err != nil {
		log.Error().Err(err).Int64("scheduleID", scheduleID).Msg("failed to count confirmed reservations")

		return 0, fmt.Errorf("failed to count confirmed reservations: %w", err)
	}

	remain := s.cfg.App.MaxReservations - confirmed
	if remain < 0 {
		remain = 0
	}

	return remain, nil
}
