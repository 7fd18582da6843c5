package middleware

import (
	"context"
	"fmt"
	"net/http"
	"proctor/config"
	"proctor/infras/otel"
	"proctor/shared/constant"

	"github.com/google/uuid"
)

const (
	otelHTTPScopeName = "http"
)

// App carries the cross-cutting middlewares applied to every route.
type App interface {
	RequestID(http.Handler) http.Handler
	Tracing(http.Handler) http.Handler
}

type appImpl struct {
	otel   otel.Otel
	config *config.Config
}

func NewApp(otel otel.Otel, config *config.Config) App {
	return &appImpl{
		otel:   otel,
		config: config,
	}
}

// RequestID assigns each request an id, honoring one supplied by the caller.
func (a *appImpl) RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		requestID := request.Header.Get(constant.RequestHeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		ctx := context.WithValue(request.Context(), constant.ContextKeyRequestID, requestID)
		writer.Header().Set(constant.RequestHeaderRequestID, requestID)

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

// Tracing opens a span covering the whole request.
func (a *appImpl) Tracing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		spanName := fmt.Sprintf("%s %s", request.Method, request.URL.Path)

		ctx, scope := a.otel.NewScope(request.Context(), otelHTTPScopeName, spanName)
		defer scope.End()

		scope.SetAttributes(map[string]any{
			"app.name":        a.config.App.Name,
			"http.path":       request.URL.Path,
			"http.method":     request.Method,
			"http.user_agent": request.UserAgent(),
			"http.host":       request.Host,
			"http.source":     request.RemoteAddr,
		})

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}
