//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"github.com/isaaccomputerscience/isaac-api-sub002/config"
	"github.com/isaaccomputerscience/isaac-api-sub002/infras/kafka"
	"github.com/isaaccomputerscience/isaac-api-sub002/infras/lock"
	"github.com/isaaccomputerscience/isaac-api-sub002/infras/otel"
	"github.com/isaaccomputerscience/isaac-api-sub002/infras/postgres"
	"github.com/isaaccomputerscience/isaac-api-sub002/infras/rabbitmq"
	"github.com/isaaccomputerscience/isaac-api-sub002/infras/redis"
	"github.com/isaaccomputerscience/isaac-api-sub002/shared/cache"
	"github.com/isaaccomputerscience/isaac-api-sub002/transport/http"
	"github.com/isaaccomputerscience/isaac-api-sub002/transport/http/middleware"
	"github.com/isaaccomputerscience/isaac-api-sub002/transport/http/router"

	bookingRepository "github.com/isaaccomputerscience/isaac-api-sub002/internal/domains/booking/repository"
	bookingScheduler "github.com/isaaccomputerscience/isaac-api-sub002/internal/domains/booking/scheduler"
	bookingService "github.com/isaaccomputerscience/isaac-api-sub002/internal/domains/booking/service"
	eventRepository "github.com/isaaccomputerscience/isaac-api-sub002/internal/domains/event/repository"
	eventService "github.com/isaaccomputerscience/isaac-api-sub002/internal/domains/event/service"
	notificationService "github.com/isaaccomputerscience/isaac-api-sub002/internal/domains/notification/service"
	userRepository "github.com/isaaccomputerscience/isaac-api-sub002/internal/domains/user/repository"
	userService "github.com/isaaccomputerscience/isaac-api-sub002/internal/domains/user/service"
	bookingHandler "github.com/isaaccomputerscience/isaac-api-sub002/internal/handlers/booking"
	eventHandler "github.com/isaaccomputerscience/isaac-api-sub002/internal/handlers/event"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	kafka.New,
	rabbitmq.New,
	lock.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewIdentityMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var eventDomain = wire.NewSet(
	eventRepository.New,
	eventService.New,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
)

var notificationDomain = wire.NewSet(
	notificationService.NewPublisher,
	notificationService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var domains = wire.NewSet(
	eventDomain,
	userDomain,
	notificationDomain,
	bookingDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	eventHandler.New,
	bookingHandler.New,
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

func InitializeScheduler() bookingScheduler.Scheduler {
	wire.Build(
		configurations,
		infrastructures,
		sharedHelpers,
		domains,
		bookingScheduler.New,
	)

	return nil
}
