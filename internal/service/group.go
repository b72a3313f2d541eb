package service

import (
	"context"

	"github.com/QuillApp/web-service/internal/model"
	"github.com/QuillApp/web-service/internal/repository"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type groupService struct {
	logger *zap.Logger
	repo   *repository.Repository
}

func newGroupService(logger *zap.Logger, repo *repository.Repository) Group {
	return &groupService{
		logger: logger,
		repo:   repo,
	}
}

func (s *groupService) FindBySlug(ctx context.Context, slug string) (*model.Group, error) {
	group, err := s.repo.Postgres.Group.FindBySlug(ctx, slug)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrGroupNotFound
		}
		s.logger.Sugar().Errorf("failed to find group(%s) from postgres: %s", slug, err.Error())
		return nil, ErrInternal
	}

	return group, nil
}

func (s *groupService) FindAll(ctx context.Context) ([]*model.Group, error) {
	groups, err := s.repo.Postgres.Group.FindAll(ctx)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find groups from postgres: %s", err.Error())
		return nil, ErrInternal
	}

	return groups, nil
}
