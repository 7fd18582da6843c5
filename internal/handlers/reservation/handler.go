package reservation

import (
	"net/http"
	"proctor/infras/otel"
	"proctor/internal/domains/reservation/model/dto"
	"proctor/internal/domains/reservation/service"
	"proctor/shared/constant"
	"proctor/shared/failure"
	"proctor/shared/validator"
	"proctor/transport/http/middleware"
	"proctor/transport/http/response"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Reservation
	auth    middleware.Auth
	otel    otel.Otel
}

func New(service service.Reservation, auth middleware.Auth, otel otel.Otel) Handler {
	return Handler{
		service: service,
		auth:    auth,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/reservation", func(routerGroup chi.Router) {
		routerGroup.Use(handler.auth.Auth)
		routerGroup.Post("/make_reservation/{scheduleId}", handler.MakeReservation)
		routerGroup.Get("/my_reservation", handler.MyReservations)
		routerGroup.Get("/user_reservation/{userId}", handler.UserReservations)
		routerGroup.Put("/confirm_reservation", handler.ConfirmReservation)
		routerGroup.Put("/edit_my_reservation", handler.EditMyReservation)
		routerGroup.Put("/edit_user_reservation", handler.EditUserReservation)
		routerGroup.Delete("/delete_reservation/{reservationId}", handler.DeleteReservation)
	})
}

// MakeReservation reserves a slot on an exam schedule for the calling client.
// @Summary Make a reservation
// @Tags Reservation
// @Accept json
// @Produce json
// @Param scheduleId path int true "Exam schedule id"
// @Param request body dto.MakeReservationRequest true "Make Reservation Request"
// @Success 201 {object} response.Data[dto.ReservationResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/reservation/make_reservation/{scheduleId} [post]
// @Security BearerAuth
func (handler *Handler) MakeReservation(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".MakeReservation")
	defer scope.End()

	scheduleID, err := pathID(request, constant.RequestParamScheduleID)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	req := dto.MakeReservationRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Make(ctx, scheduleID, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to make reservation")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusCreated, res)
}

// MyReservations lists the calling client's reservations.
// @Summary List own reservations
// @Tags Reservation
// @Produce json
// @Success 200 {object} response.Data[[]dto.ReservationResponse]
// @Failure 403 {object} response.Error
// @Router /v1/reservation/my_reservation [get]
// @Security BearerAuth
func (handler *Handler) MyReservations(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".MyReservations")
	defer scope.End()

	res, err := handler.service.Mine(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get reservations")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// UserReservations lists any user's reservations for an admin.
// @Summary List a user's reservations
// @Tags Reservation
// @Produce json
// @Param userId path int true "User id"
// @Success 200 {object} response.Data[[]dto.ReservationResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Router /v1/reservation/user_reservation/{userId} [get]
// @Security BearerAuth
func (handler *Handler) UserReservations(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UserReservations")
	defer scope.End()

	userID, err := pathID(request, constant.RequestParamUserID)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	res, err := handler.service.ForUser(ctx, userID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get user reservations")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// ConfirmReservation marks a reservation confirmed.
// @Summary Confirm a reservation
// @Tags Reservation
// @Accept json
// @Produce json
// @Param request body dto.ConfirmReservationRequest true "Confirm Reservation Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/reservation/confirm_reservation [put]
// @Security BearerAuth
func (handler *Handler) ConfirmReservation(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ConfirmReservation")
	defer scope.End()

	req := dto.ConfirmReservationRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	msg, err := handler.service.Confirm(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to confirm reservation")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, msg)
}

// EditMyReservation updates the comment on the caller's own reservation.
// @Summary Edit own reservation comment
// @Tags Reservation
// @Accept json
// @Produce json
// @Param request body dto.EditMyReservationRequest true "Edit My Reservation Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/reservation/edit_my_reservation [put]
// @Security BearerAuth
func (handler *Handler) EditMyReservation(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".EditMyReservation")
	defer scope.End()

	req := dto.EditMyReservationRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	msg, err := handler.service.EditMine(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to edit reservation")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, msg)
}

// EditUserReservation updates the comment on any user's reservation.
// @Summary Edit a user's reservation comment
// @Tags Reservation
// @Accept json
// @Produce json
// @Param request body dto.EditUserReservationRequest true "Edit User Reservation Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/reservation/edit_user_reservation [put]
// @Security BearerAuth
func (handler *Handler) EditUserReservation(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".EditUserReservation")
	defer scope.End()

	req := dto.EditUserReservationRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	msg, err := handler.service.EditForUser(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to edit user reservation")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, msg)
}

// DeleteReservation removes a reservation.
// @Summary Delete a reservation
// @Tags Reservation
// @Produce json
// @Param reservationId path int true "Reservation id"
// @Success 200 {object} response.Message
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/reservation/delete_reservation/{reservationId} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteReservation(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteReservation")
	defer scope.End()

	reservationID, err := pathID(request, constant.RequestParamReservationID)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	msg, err := handler.service.Delete(ctx, reservationID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete reservation")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, msg)
}

func pathID(request *http.Request, param string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(request, param), 10, 64)
	if err != nil {
		return 0, failure.BadRequestFromString("invalid " + param) // nolint:wrapcheck
	}

	return id, nil
}
