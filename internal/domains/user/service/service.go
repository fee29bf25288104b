package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/isaaccomputerscience/isaac-api-sub002/config"
	"github.com/isaaccomputerscience/isaac-api-sub002/infras/otel"
	"github.com/isaaccomputerscience/isaac-api-sub002/internal/domains/user/model"
	"github.com/isaaccomputerscience/isaac-api-sub002/internal/domains/user/repository"
	"github.com/isaaccomputerscience/isaac-api-sub002/shared"
	"github.com/isaaccomputerscience/isaac-api-sub002/shared/cache"
	"github.com/isaaccomputerscience/isaac-api-sub002/shared/constant"
)

const cacheGetUserSummary = "user:summary"

// Identity resolves opaque user ids to the details notifications need.
type Identity interface {
	ResolveUser(ctx context.Context, userID string) (model.UserSummary, error)
}

type serviceImpl struct {
	repo  repository.User
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.User, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Identity {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) ResolveUser(ctx context.Context, userID string) (res model.UserSummary, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ResolveUser")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetUserSummary, userID)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for user summary")

		return res, nil
	}

	user, err := s.repo.Get(ctx, shared.FilterByID(userID, model.FieldID, model.TableName),
		model.FieldID, model.FieldEmail, model.FieldGivenName, model.FieldFamilyName, model.FieldDeleted)
	if err != nil {
		log.Error().Err(err).Str("userID", userID).Msg("failed to resolve user")

		return res, fmt.Errorf("failed to resolve user: %w", err)
	}

	if user.ID == constant.Empty {
		return res, fmt.Errorf("%w: %s", model.ErrUserNotFound, userID)
	}

	res = user.Summary()

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save user summary to cache")
		}
	}()

	return res, nil
}
