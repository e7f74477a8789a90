//go:build wireinject
// +build wireinject

package di

import (
	"roomdesk/config"
	"roomdesk/infras/jwt"
	"roomdesk/infras/kafka"
	"roomdesk/infras/otel"
	"roomdesk/infras/postgres"
	"roomdesk/infras/redis"
	"roomdesk/shared/cache"
	"roomdesk/transport/http"
	"roomdesk/transport/http/middleware"
	"roomdesk/transport/http/router"

	approvalPublisher "roomdesk/internal/domains/approval/publisher"
	approvalService "roomdesk/internal/domains/approval/service"
	auditRepository "roomdesk/internal/domains/audit/repository"
	auditService "roomdesk/internal/domains/audit/service"
	"roomdesk/internal/domains/auth/credential"
	authService "roomdesk/internal/domains/auth/service"
	bookingRepository "roomdesk/internal/domains/booking/repository"
	requestRepository "roomdesk/internal/domains/request/repository"
	roomRepository "roomdesk/internal/domains/room/repository"
	roomService "roomdesk/internal/domains/room/service"

	approvalHandler "roomdesk/internal/handlers/approval"
	auditHandler "roomdesk/internal/handlers/audit"
	authHandler "roomdesk/internal/handlers/auth"
	roomHandler "roomdesk/internal/handlers/room"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var authDomain = wire.NewSet(
	credential.NewConfigStore,
	authService.New,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
)

var approvalDomain = wire.NewSet(
	requestRepository.New,
	bookingRepository.New,
	approvalPublisher.New,
	approvalService.New,
)

var auditDomain = wire.NewSet(
	auditRepository.New,
	auditService.New,
)

var domains = wire.NewSet(
	authDomain,
	roomDomain,
	approvalDomain,
	auditDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	approvalHandler.New,
	roomHandler.New,
	auditHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
