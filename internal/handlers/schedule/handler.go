package schedule

import (
	"net/http"
	"proctor/infras/otel"
	"proctor/internal/domains/schedule/model/dto"
	"proctor/internal/domains/schedule/service"
	"proctor/shared/constant"
	"proctor/shared/validator"
	"proctor/transport/http/middleware"
	"proctor/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Schedule
	auth    middleware.Auth
	otel    otel.Otel
}

func New(service service.Schedule, auth middleware.Auth, otel otel.Otel) Handler {
	return Handler{
		service: service,
		auth:    auth,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/exam_schedule", func(routerGroup chi.Router) {
		routerGroup.Use(handler.auth.Auth)
		routerGroup.Get("/", handler.GetSchedules)
		routerGroup.Post("/", handler.CreateSchedule)
	})
}

// GetSchedules lists exam schedules visible to the caller.
// @Summary List exam schedules
// @Description Admins see every schedule; clients see upcoming schedules they have not reserved.
// @Tags Schedule
// @Produce json
// @Success 200 {object} response.Data[[]dto.ScheduleResponse]
// @Failure 403 {object} response.Error
// @Router /v1/exam_schedule [get]
// @Security BearerAuth
func (handler *Handler) GetSchedules(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSchedules")
	defer scope.End()

	res, err := handler.service.GetSchedules(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get schedules")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// CreateSchedule creates a new exam schedule.
// @Summary Create an exam schedule
// @Description Create a uniquely named exam schedule with a future time window. Admin only.
// @Tags Schedule
// @Accept json
// @Produce json
// @Param request body dto.CreateScheduleRequest true "Create Schedule Request"
// @Success 201 {object} response.Data[dto.ScheduleResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 422 {object} response.Error
// @Router /v1/exam_schedule [post]
// @Security BearerAuth
func (handler *Handler) CreateSchedule(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateSchedule")
	defer scope.End()

	req := dto.CreateScheduleRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.CreateSchedule(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create schedule")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Schedule created: " + res.Name)

	response.WithJSON(writer, http.StatusCreated, res)
}
