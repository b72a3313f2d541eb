package service

import (
	"context"

	"github.com/QuillApp/web-service/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type followService struct {
	logger *zap.Logger
	repo   *repository.Repository
}

func newFollowService(logger *zap.Logger, repo *repository.Repository) Follow {
	return &followService{
		logger: logger,
		repo:   repo,
	}
}

// Follow is idempotent; following yourself is silently skipped.
func (s *followService) Follow(ctx context.Context, userID uuid.UUID, authorUsername string) error {
	author, err := s.repo.Postgres.User.FindByUsername(ctx, authorUsername)
	if err != nil {
		if err == pgx.ErrNoRows {
			return ErrUserNotFound
		}
		s.logger.Sugar().Errorf("failed to find user(%s) from postgres: %s", authorUsername, err.Error())
		return ErrInternal
	}

	if author.ID == userID {
		return nil
	}

	if err := s.repo.Postgres.Follow.CreateIfNotExists(ctx, userID, author.ID); err != nil {
		s.logger.Sugar().Errorf("failed to create follow(%s -> %s): %s", userID.String(), authorUsername, err.Error())
		return ErrInternal
	}

	return nil
}

// Unfollow deletes every matching edge and is a no-op when none exist.
func (s *followService) Unfollow(ctx context.Context, userID uuid.UUID, authorUsername string) error {
	if err := s.repo.Postgres.Follow.DeleteByUserAndAuthorName(ctx, userID, authorUsername); err != nil {
		s.logger.Sugar().Errorf("failed to delete follow(%s -> %s): %s", userID.String(), authorUsername, err.Error())
		return ErrInternal
	}

	return nil
}
