package service

import (
	"context"
	"fmt"

	"roomdesk/config"
	"roomdesk/infras/otel"
	"roomdesk/internal/domains/room/model/dto"
	"roomdesk/internal/domains/room/repository"
	"roomdesk/shared"
	"roomdesk/shared/cache"
	"roomdesk/shared/constant"
	"roomdesk/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheRoomStatus = "room:status"
)

type Room interface {
	GetStatuses(ctx context.Context) (dto.GetRoomStatusesResponse, error)
}

type serviceImpl struct {
	repo  repository.Room
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Room, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Room {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) GetStatuses(ctx context.Context) (res dto.GetRoomStatusesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetStatuses")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheRoomStatus)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for room statuses")

		return res, nil
	}

	models, err := s.repo.GetStatuses(ctx, timezone.Now())
	if err != nil {
		log.Error().Err(err).Msg("failed to get room statuses")

		return res, fmt.Errorf("failed to get room statuses: %w", err)
	}

	res.FromModels(models)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room statuses to cache")
		}
	}()

	return res, nil
}
