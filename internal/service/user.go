package service

import (
	"context"
	"time"

	"github.com/QuillApp/web-service/internal/model"
	"github.com/QuillApp/web-service/internal/repository"
	"github.com/QuillApp/web-service/internal/repository/redisrepo"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const userCacheTTL = time.Hour

type userService struct {
	logger *zap.Logger
	repo   *repository.Repository
}

func newUserService(logger *zap.Logger, repo *repository.Repository) User {
	return &userService{
		logger: logger,
		repo:   repo,
	}
}

// FindByID resolves the session identity on every authenticated request,
// so it reads through the redis user cache before touching postgres.
func (s *userService) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	cachedUser, err := redisrepo.Get[model.User](s.repo.Redis.Default, ctx, redisrepo.UserCacheKey(id.String()))
	if err == nil {
		if cachedUser == nil {
			return nil, ErrUserNotFound
		}
		return cachedUser, nil
	}
	if err != redis.Nil {
		s.logger.Sugar().Errorf("failed to get cached user(%s) from redis: %s", id.String(), err.Error())
		return nil, ErrInternal
	}

	user, err := s.repo.Postgres.User.FindByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrUserNotFound
		}
		s.logger.Sugar().Errorf("failed to get user(%s) from postgres: %s", id.String(), err.Error())
		return nil, ErrInternal
	}

	if err := s.repo.Redis.Default.SetJSON(ctx, redisrepo.UserCacheKey(id.String()), user, userCacheTTL); err != nil {
		s.logger.Sugar().Errorf("failed to set user(%s) in redis: %s", id.String(), err.Error())
		return nil, ErrInternal
	}

	return user, nil
}

func (s *userService) FindAll(ctx context.Context) ([]*model.User, error) {
	users, err := s.repo.Postgres.User.FindAll(ctx)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find users from postgres: %s", err.Error())
		return nil, ErrInternal
	}

	return users, nil
}

func (s *userService) ProfileOf(ctx context.Context, username string, viewerID *uuid.UUID) (*model.Profile, error) {
	author, err := s.repo.Postgres.User.FindByUsername(ctx, username)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrUserNotFound
		}
		s.logger.Sugar().Errorf("failed to find user(%s) from postgres: %s", username, err.Error())
		return nil, ErrInternal
	}

	followers, err := s.repo.Postgres.Follow.FindFollowerUsernames(ctx, author.ID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find user(%s) followers: %s", username, err.Error())
		return nil, ErrInternal
	}

	following, err := s.repo.Postgres.Follow.FindFollowingUsernames(ctx, author.ID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find user(%s) followings: %s", username, err.Error())
		return nil, ErrInternal
	}

	profile := model.Profile{
		Author:    *author,
		Followers: followers,
		Following: following,
	}

	if viewerID != nil {
		follows, err := s.repo.Postgres.Follow.Exists(ctx, *viewerID, author.ID)
		if err != nil {
			s.logger.Sugar().Errorf("failed to check follow edge for user(%s): %s", username, err.Error())
			return nil, ErrInternal
		}
		profile.ViewerFollows = follows
	}

	return &profile, nil
}
