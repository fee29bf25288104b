package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/isaaccomputerscience/isaac-api-sub002/config"
	"github.com/isaaccomputerscience/isaac-api-sub002/infras/otel"
	"github.com/isaaccomputerscience/isaac-api-sub002/internal/domains/event/model"
	"github.com/isaaccomputerscience/isaac-api-sub002/internal/domains/event/model/dto"
	"github.com/isaaccomputerscience/isaac-api-sub002/internal/domains/event/repository"
	"github.com/isaaccomputerscience/isaac-api-sub002/shared"
	"github.com/isaaccomputerscience/isaac-api-sub002/shared/cache"
	"github.com/isaaccomputerscience/isaac-api-sub002/shared/constant"
)

const (
	cacheGetEvent      = "event:get"
	cacheGetEventDates = "event:dates"
)

// Event exposes the read-only metadata booking logic needs.
type Event interface {
	// GetEventCapacity always reads the store, never the cache.
	GetEventCapacity(ctx context.Context, eventID string) (int, error)
	GetEventDates(ctx context.Context, eventID string) (model.Dates, error)
	Get(ctx context.Context, eventID string) (dto.EventResponse, error)
}

type serviceImpl struct {
	repo  repository.Event
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Event, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Event {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) GetEventCapacity(ctx context.Context, eventID string) (_ int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetEventCapacity")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	event, err := s.repo.GetFresh(ctx, shared.FilterByID(eventID, model.FieldID, model.TableName), model.FieldID, model.FieldCapacity)
	if err != nil {
		log.Error().Err(err).Str("eventID", eventID).Msg("failed to get event capacity")

		return 0, fmt.Errorf("failed to get event capacity: %w", err)
	}

	if event.ID == constant.Empty {
		return 0, fmt.Errorf("%w: %s", model.ErrEventNotFound, eventID)
	}

	return event.Capacity, nil
}

func (s *serviceImpl) GetEventDates(ctx context.Context, eventID string) (res model.Dates, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetEventDates")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetEventDates, eventID)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for event dates")

		return res, nil
	}

	event, err := s.get(ctx, eventID)
	if err != nil {
		return res, err
	}

	res = model.Dates{Start: event.StartDate, End: event.EndDate}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save event dates to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, eventID string) (res dto.EventResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetEvent, eventID)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for event")

		return res, nil
	}

	event, err := s.get(ctx, eventID)
	if err != nil {
		return res, err
	}

	res.FromModel(event)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save event to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) get(ctx context.Context, eventID string) (model.Event, error) {
	event, err := s.repo.Get(ctx, shared.FilterByID(eventID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("eventID", eventID).Msg("failed to get event")

		return event, fmt.Errorf("failed to get event: %w", err)
	}

	if event.ID == constant.Empty {
		return event, fmt.Errorf("%w: %s", model.ErrEventNotFound, eventID)
	}

	return event, nil
}

// StaleSince reports whether the event finished more than retention before now.
func StaleSince(dates model.Dates, retention time.Duration, now time.Time) bool {
	return dates.LastDay().Add(retention).Before(now)
}
