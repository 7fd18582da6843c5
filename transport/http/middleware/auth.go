package middleware

import (
	"context"
	"net/http"
	"proctor/infras/jwt"
	"proctor/infras/otel"
	"proctor/internal/domains/user/model"
	"proctor/shared/constant"
	"proctor/shared/failure"
	"proctor/transport/http/response"

	"github.com/rs/zerolog/log"
)

// Auth guards routes behind a verified identity token.
type Auth interface {
	Auth(http.Handler) http.Handler
}

type authImpl struct {
	jwt  jwt.JWT
	otel otel.Otel
}

func NewAuth(jwt jwt.JWT, otel otel.Otel) Auth {
	return &authImpl{
		jwt:  jwt,
		otel: otel,
	}
}

// Auth verifies the bearer token and stamps the caller identity onto the
// request context. Every verification failure is surfaced as 403.
func (m *authImpl) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "auth.middleware")
		defer scope.End()

		token, err := jwt.ExtractTokenFromHeader(request.Header.Get(constant.RequestHeaderAuthorization))
		if err != nil {
			scope.TraceError(err)
			response.WithError(writer, failure.Forbidden(err.Error()))

			return
		}

		claims, err := m.jwt.Validate(token)
		if err != nil {
			scope.TraceError(err)
			log.Warn().Err(err).Msg("token verification failed")

			response.WithError(writer, failure.Forbidden(err.Error()))

			return
		}

		if !model.Role(claims.Role).Valid() {
			scope.TraceError(jwt.ErrInvalidClaim)
			log.Warn().Str("role", claims.Role).Msg("token carries unknown role")

			response.WithError(writer, failure.Forbidden(jwt.ErrInvalidClaim.Error()))

			return
		}

		ctx = context.WithValue(ctx, constant.ContextKeyUserID, claims.ID)
		ctx = context.WithValue(ctx, constant.ContextKeyUserHandle, claims.UserID)
		ctx = context.WithValue(ctx, constant.ContextKeyUserRole, claims.Role)

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}
