package service

import (
	"context"
	"time"

	"github.com/QuillApp/web-service/internal/repository"
	"github.com/QuillApp/web-service/internal/repository/redisrepo"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const DEFAULT_PAGE_CACHE_TTL = time.Second * 20

type pageCacheService struct {
	logger *zap.Logger
	repo   *repository.Repository
}

func newPageCacheService(logger *zap.Logger, repo *repository.Repository) PageCache {
	return &pageCacheService{
		logger: logger,
		repo:   repo,
	}
}

func pageCacheTTL() time.Duration {
	ttl := viper.GetDuration("cache.index_ttl")
	if ttl <= 0 {
		ttl = DEFAULT_PAGE_CACHE_TTL
	}
	return ttl
}

// Get returns the cached render for path, or nil on a miss. A redis
// failure is treated as a miss so the page still renders.
func (s *pageCacheService) Get(ctx context.Context, path string) ([]byte, error) {
	body, err := s.repo.Redis.Default.Get(ctx, redisrepo.PageCacheKey(path)).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Sugar().Errorf("failed to get cached page(%s) from redis: %s", path, err.Error())
		}
		return nil, nil
	}

	return body, nil
}

func (s *pageCacheService) Set(ctx context.Context, path string, body []byte) error {
	if err := s.repo.Redis.Default.Set(ctx, redisrepo.PageCacheKey(path), body, pageCacheTTL()); err != nil {
		s.logger.Sugar().Errorf("failed to set cached page(%s) in redis: %s", path, err.Error())
		return ErrInternal
	}

	return nil
}

func (s *pageCacheService) Clear(ctx context.Context) error {
	keys, err := s.repo.Redis.Default.Keys(ctx, redisrepo.PAGE_CACHE_PATTERN).Result()
	if err != nil {
		s.logger.Sugar().Errorf("failed to list cached page keys: %s", err.Error())
		return ErrInternal
	}
	if len(keys) == 0 {
		return nil
	}

	if err := s.repo.Redis.Default.Del(ctx, keys...).Err(); err != nil {
		s.logger.Sugar().Errorf("failed to delete cached page keys: %s", err.Error())
		return ErrInternal
	}

	return nil
}
