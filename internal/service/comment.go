package service

import (
	"context"

	"github.com/QuillApp/web-service/internal/dto"
	"github.com/QuillApp/web-service/internal/model"
	"github.com/QuillApp/web-service/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type commentService struct {
	logger *zap.Logger
	repo   *repository.Repository
}

func newCommentService(logger *zap.Logger, repo *repository.Repository) Comment {
	return &commentService{
		logger: logger,
		repo:   repo,
	}
}

func (s *commentService) Create(ctx context.Context, postID int64, authorID uuid.UUID, form dto.CommentForm) (*model.Comment, error) {
	if _, err := s.repo.Postgres.Post.FindByID(ctx, postID); err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrPostNotFound
		}
		s.logger.Sugar().Errorf("failed to find post(%d) from postgres: %s", postID, err.Error())
		return nil, ErrInternal
	}

	comment := model.Comment{
		PostID:   postID,
		AuthorID: authorID,
		Text:     form.Text,
	}

	createdComment, err := s.repo.Postgres.Comment.Create(ctx, comment)
	if err != nil {
		s.logger.Sugar().Errorf("failed to create user(%s) comment on post(%d): %s", authorID.String(), postID, err.Error())
		return nil, ErrInternal
	}

	return createdComment, nil
}

func (s *commentService) FindPostComments(ctx context.Context, postID int64) ([]*model.PostComment, error) {
	comments, err := s.repo.Postgres.Comment.FindPostComments(ctx, postID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find post(%d) comments from postgres: %s", postID, err.Error())
		return nil, ErrInternal
	}

	return comments, nil
}
