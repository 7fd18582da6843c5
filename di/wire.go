//go:build wireinject
// +build wireinject

package di

import (
	"proctor/config"
	"proctor/infras/jwt"
	"proctor/infras/otel"
	"proctor/infras/postgres"
	"proctor/transport/http"
	"proctor/transport/http/middleware"
	"proctor/transport/http/router"

	reservationRepository "proctor/internal/domains/reservation/repository"
	reservationService "proctor/internal/domains/reservation/service"
	scheduleRepository "proctor/internal/domains/schedule/repository"
	scheduleService "proctor/internal/domains/schedule/service"
	userRepository "proctor/internal/domains/user/repository"
	userService "proctor/internal/domains/user/service"

	healthHandler "proctor/internal/handlers/health"
	reservationHandler "proctor/internal/handlers/reservation"
	scheduleHandler "proctor/internal/handlers/schedule"
	userHandler "proctor/internal/handlers/user"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	jwt.New,
)

var middlewares = wire.NewSet(
	middleware.NewApp,
	middleware.NewAuth,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
)

var scheduleDomain = wire.NewSet(
	scheduleRepository.New,
	scheduleService.New,
)

var reservationDomain = wire.NewSet(
	reservationRepository.New,
	reservationService.New,
)

var domains = wire.NewSet(
	userDomain,
	scheduleDomain,
	reservationDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	healthHandler.New,
	userHandler.New,
	scheduleHandler.New,
	reservationHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
