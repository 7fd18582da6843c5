package router

import (
	"proctor/internal/handlers/health"
	"proctor/internal/handlers/reservation"
	"proctor/internal/handlers/schedule"
	"proctor/internal/handlers/user"
	"proctor/transport/http/middleware"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Health      health.Handler
	User        user.Handler
	Schedule    schedule.Handler
	Reservation reservation.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	AppMiddleware  middleware.App
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Use(r.AppMiddleware.RequestID)
	router.Use(r.AppMiddleware.Tracing)

	r.DomainHandlers.Health.Router(router)

	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Schedule.Router(routerGroup)
		r.DomainHandlers.Reservation.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers, appMiddleware middleware.App) Router {
	return Router{
		DomainHandlers: domainHandlers,
		AppMiddleware:  appMiddleware,
	}
}
