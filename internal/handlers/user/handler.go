package user

import (
	"net/http"
	"proctor/infras/otel"
	"proctor/internal/domains/user/model/dto"
	"proctor/internal/domains/user/service"
	"proctor/shared/constant"
	"proctor/shared/validator"
	"proctor/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.User
	otel    otel.Otel
}

func New(service service.User, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/users", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.SearchUsers)
		routerGroup.Post("/login", handler.Login)
	})
}

// SearchUsers lists users matching the optional query filters.
// @Summary Search users
// @Tags User
// @Produce json
// @Param user_id query string false "Partial handle match"
// @Param role query string false "Exact role (client or admin)"
// @Success 200 {object} response.Data[[]dto.UserResponse]
// @Failure 400 {object} response.Error
// @Router /v1/users [get]
func (handler *Handler) SearchUsers(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SearchUsers")
	defer scope.End()

	handle := request.URL.Query().Get(constant.RequestQueryUserID)
	role := request.URL.Query().Get(constant.RequestQueryRole)

	res, err := handler.service.Search(ctx, handle, role)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to search users")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// Login exchanges credentials for a signed identity token.
// @Summary Log in
// @Tags User
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login Request"
// @Success 200 {object} response.Data[dto.LoginResponse]
// @Failure 400 {object} response.Error
// @Failure 422 {object} response.Error
// @Router /v1/users/login [post]
func (handler *Handler) Login(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Login")
	defer scope.End()

	req := dto.LoginRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Login(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Warn().Str("user", req.Handle).Msg("login rejected")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}
