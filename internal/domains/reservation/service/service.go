package service

import (
	"context"
	"fmt"
	"proctor/config"
	"proctor/infras/otel"
	"proctor/infras/postgres"
	"proctor/internal/domains/reservation/model"
	"proctor/internal/domains/reservation/model/dto"
	"proctor/internal/domains/reservation/repository"
	scheduleModel "proctor/internal/domains/schedule/model"
	scheduleRepo "proctor/internal/domains/schedule/repository"
	userModel "proctor/internal/domains/user/model"
	userRepo "proctor/internal/domains/user/repository"
	"proctor/shared"
	"proctor/shared/constant"
	"proctor/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	msgOnlyClientsReserve    = "Only clients can make reservations"
	msgScheduleNotFound      = "Exam schedule not found"
	msgDuplicateReservation  = "User already has a reservation for this exam schedule"
	msgScheduleFull          = "Exam schedule has reached maximum reservations"
	msgOnlyClientsViewOwn    = "Only clients can view their reservations"
	msgOnlyAdminsViewUsers   = "Only admins can view user reservations"
	msgOnlyAdminsConfirm     = "Only admins can confirm reservations"
	msgReservationNotFound   = "Reservation not found"
	msgAlreadyConfirmed      = "Reservation already confirmed"
	msgConfirmed             = "Reservation confirmed successfully"
	msgEditConfirmed         = "Cannot edit confirmed reservation"
	msgEditOthers            = "Cannot edit other users' reservations"
	msgCommentUpdated        = "Reservation comment updated successfully"
	msgCannotDelete          = "Cannot delete this reservation"
	msgCannotDeleteConfirmed = "Cannot delete confirmed reservation"
	msgDeleted               = "Reservation deleted successfully"
)

type Reservation interface {
	Make(ctx context.Context, scheduleID int64, req dto.MakeReservationRequest) (dto.ReservationResponse, error)
	Mine(ctx context.Context) ([]dto.ReservationResponse, error)
	ForUser(ctx context.Context, userID int64) ([]dto.ReservationResponse, error)
	Confirm(ctx context.Context, req dto.ConfirmReservationRequest) (string, error)
	EditMine(ctx context.Context, req dto.EditMyReservationRequest) (string, error)
	EditForUser(ctx context.Context, req dto.EditUserReservationRequest) (string, error)
	Delete(ctx context.Context, reservationID int64) (string, error)
}

type serviceImpl struct {
	repo         repository.Reservation
	scheduleRepo scheduleRepo.Schedule
	userRepo     userRepo.User
	cfg          *config.Config
	otel         otel.Otel
}

func New(
	repo repository.Reservation,
	scheduleRepo scheduleRepo.Schedule,
	userRepo userRepo.User,
	cfg *config.Config,
	otel otel.Otel,
) Reservation {
	return &serviceImpl{
		repo:         repo,
		scheduleRepo: scheduleRepo,
		userRepo:     userRepo,
		cfg:          cfg,
		otel:         otel,
	}
}

// Make creates a pending reservation for the calling client. The duplicate
// and capacity checks here are fast paths; the unique constraint on the
// (user, schedule) pair is what actually guards against concurrent doubles.
func (s *serviceImpl) Make(ctx context.Context, scheduleID int64, req dto.MakeReservationRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".MakeReservation")
	defer scope.End()
	defer scope.TraceIfError(err)

	caller, ok := userModel.CallerFromContext(ctx)
	if !ok || !caller.IsClient() {
		return res, failure.Forbidden(msgOnlyClientsReserve) // nolint:wrapcheck
	}

	scheduleExists, err := s.scheduleRepo.Exist(ctx, shared.FilterByID(scheduleID, scheduleModel.FieldID, scheduleModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check schedule exists")

		return res, fmt.Errorf("failed to check schedule exists: %w", err)
	}

	if !scheduleExists {
		return res, failure.NotFound(msgScheduleNotFound) // nolint:wrapcheck
	}

	reserved, err := s.repo.Exist(ctx, repository.PairFilter(caller.ID, scheduleID))
	if err != nil {
		log.Error().Err(err).Msg("failed to check existing reservation")

		return res, fmt.Errorf("failed to check existing reservation: %w", err)
	}

	if reserved {
		return res, failure.BadRequestFromString(msgDuplicateReservation) // nolint:wrapcheck
	}

	confirmed, err := s.repo.ConfirmedCount(ctx, scheduleID)
	if err != nil {
		log.Error().Err(err).Msg("failed to count confirmed reservations")

		return res, fmt.Errorf("failed to count confirmed reservations: %w", err)
	}

	if confirmed >= s.cfg.App.MaxReservations {
		return res, failure.BadRequestFromString(msgScheduleFull) // nolint:wrapcheck
	}

	reservation := req.ToModel(caller.ID, scheduleID, caller.Handle)

	id, err := s.repo.InsertReturningID(ctx, reservation)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return res, failure.BadRequestFromString(msgDuplicateReservation) // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create reservation")

		return res, fmt.Errorf("failed to create reservation: %w", err)
	}

	reservation.ID = id

	return dto.FromModel(reservation), nil
}

// Mine lists the calling client's own reservations.
func (s *serviceImpl) Mine(ctx context.Context) (res []dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".MyReservations")
	defer scope.End()
	defer scope.TraceIfError(err)

	caller, ok := userModel.CallerFromContext(ctx)
	if !ok || !caller.IsClient() {
		return res, failure.Forbidden(msgOnlyClientsViewOwn) // nolint:wrapcheck
	}

	reservations, err := s.repo.GetAll(ctx, shared.FilterEq(model.FieldUserID, model.TableName, caller.ID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations")

		return res, fmt.Errorf("failed to get reservations: %w", err)
	}

	return dto.FromModels(reservations), nil
}

// ForUser lists any user's reservations for an admin audit.
func (s *serviceImpl) ForUser(ctx context.Context, userID int64) (res []dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UserReservations")
	defer scope.End()
	defer scope.TraceIfError(err)

	caller, ok := userModel.CallerFromContext(ctx)
	if !ok || !caller.IsAdmin() {
		return res, failure.Forbidden(msgOnlyAdminsViewUsers) // nolint:wrapcheck
	}

	userExists, err := s.userRepo.Exist(ctx, shared.FilterByID(userID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check user exists")

		return res, fmt.Errorf("failed to check user exists: %w", err)
	}

	if !userExists {
		return res, failure.BadRequestFromString(fmt.Sprintf("User with %d not found", userID)) // nolint:wrapcheck
	}

	reservations, err := s.repo.GetAll(ctx, shared.FilterEq(model.FieldUserID, model.TableName, userID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations")

		return res, fmt.Errorf("failed to get reservations: %w", err)
	}

	return dto.FromModels(reservations), nil
}

// Confirm marks a pending reservation confirmed. Capacity is not re-checked
// here, only when the reservation was made.
func (s *serviceImpl) Confirm(ctx context.Context, req dto.ConfirmReservationRequest) (msg string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ConfirmReservation")
	defer scope.End()
	defer scope.TraceIfError(err)

	caller, ok := userModel.CallerFromContext(ctx)
	if !ok || !caller.IsAdmin() {
		return "", failure.Forbidden(msgOnlyAdminsConfirm) // nolint:wrapcheck
	}

	reservation, err := s.repo.GetByPair(ctx, req.UserID, req.ExamScheduleID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return "", fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == 0 {
		return "", failure.NotFound(msgReservationNotFound) // nolint:wrapcheck
	}

	if reservation.Confirmed {
		return "", failure.BadRequestFromString(msgAlreadyConfirmed) // nolint:wrapcheck
	}

	fields := shared.UpdateFields(caller.Handle, map[string]any{
		model.FieldConfirmed: true,
	})

	if err := s.repo.Update(ctx, fields, shared.FilterByID(reservation.ID, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to confirm reservation")

		return "", fmt.Errorf("failed to confirm reservation: %w", err)
	}

	return msgConfirmed, nil
}

// EditMine updates the comment on the caller's own pending reservation.
func (s *serviceImpl) EditMine(ctx context.Context, req dto.EditMyReservationRequest) (msg string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".EditMyReservation")
	defer scope.End()
	defer scope.TraceIfError(err)

	caller, ok := userModel.CallerFromContext(ctx)
	if !ok {
		return "", failure.ForbiddenError // nolint:wrapcheck
	}

	return s.editComment(ctx, caller, caller.ID, req.ExamScheduleID, req.Comment)
}

// EditForUser updates the comment on any user's pending reservation. Clients
// going through this path still may only touch their own.
func (s *serviceImpl) EditForUser(ctx context.Context, req dto.EditUserReservationRequest) (msg string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".EditUserReservation")
	defer scope.End()
	defer scope.TraceIfError(err)

	caller, ok := userModel.CallerFromContext(ctx)
	if !ok {
		return "", failure.ForbiddenError // nolint:wrapcheck
	}

	return s.editComment(ctx, caller, req.UserID, req.ExamScheduleID, req.Comment)
}

// Delete removes a reservation. Clients may only delete their own pending
// ones; admins may delete anything not yet confirmed.
func (s *serviceImpl) Delete(ctx context.Context, reservationID int64) (msg string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteReservation")
	defer scope.End()
	defer scope.TraceIfError(err)

	caller, ok := userModel.CallerFromContext(ctx)
	if !ok {
		return "", failure.ForbiddenError // nolint:wrapcheck
	}

	reservation, err := s.repo.Get(ctx, shared.FilterByID(reservationID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return "", fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == 0 {
		return "", failure.NotFound(msgReservationNotFound) // nolint:wrapcheck
	}

	if caller.IsClient() && (reservation.UserID != caller.ID || reservation.Confirmed) {
		return "", failure.Forbidden(msgCannotDelete) // nolint:wrapcheck
	}

	if caller.IsAdmin() && reservation.Confirmed {
		return "", failure.Forbidden(msgCannotDeleteConfirmed) // nolint:wrapcheck
	}

	if err := s.repo.Delete(ctx, shared.FilterByID(reservation.ID, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete reservation")

		return "", fmt.Errorf("failed to delete reservation: %w", err)
	}

	return msgDeleted, nil
}

// editComment applies the shared edit rules. Missing beats confirmed beats
// ownership, in that order.
func (s *serviceImpl) editComment(ctx context.Context, caller userModel.Caller, ownerID, scheduleID int64, comment string) (string, error) {
	reservation, err := s.repo.GetByPair(ctx, ownerID, scheduleID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return "", fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == 0 {
		return "", failure.NotFound(msgReservationNotFound) // nolint:wrapcheck
	}

	if reservation.Confirmed {
		return "", failure.BadRequestFromString(msgEditConfirmed) // nolint:wrapcheck
	}

	if caller.IsClient() && reservation.UserID != caller.ID {
		return "", failure.Forbidden(msgEditOthers) // nolint:wrapcheck
	}

	fields := shared.UpdateFields(caller.Handle, map[string]any{
		model.FieldComment: comment,
	})

	if err := s.repo.Update(ctx, fields, shared.FilterByID(reservation.ID, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update reservation comment")

		return "", fmt.Errorf("failed to update reservation comment: %w", err)
	}

	return msgCommentUpdated, nil
}
