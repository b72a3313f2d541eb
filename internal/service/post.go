package service

import (
	"context"
	"mime/multipart"

	"github.com/QuillApp/web-service/internal/dto"
	"github.com/QuillApp/web-service/internal/model"
	"github.com/QuillApp/web-service/internal/pagination"
	"github.com/QuillApp/web-service/internal/repository"
	"github.com/QuillApp/web-service/internal/storage"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type postService struct {
	logger *zap.Logger
	repo   *repository.Repository
	images *storage.ImageStore
}

func newPostService(logger *zap.Logger, repo *repository.Repository, images *storage.ImageStore) Post {
	return &postService{
		logger: logger,
		repo:   repo,
		images: images,
	}
}

func postsPerPage() int {
	size := viper.GetInt("app.posts_per_page")
	if size <= 0 {
		size = DEFAULT_POSTS_PER_PAGE
	}
	return size
}

func (s *postService) Create(ctx context.Context, authorID uuid.UUID, form dto.PostForm, image *multipart.FileHeader) (*model.Post, error) {
	post := model.Post{
		Text:     form.Text,
		AuthorID: authorID,
		GroupID:  form.GroupID,
	}

	if image != nil {
		url, err := s.images.Save(image)
		if err != nil {
			if err == storage.ErrFileMustBeImage || err == storage.ErrFileMustHaveAValidExtension {
				return nil, err
			}
			s.logger.Sugar().Errorf("failed to store image for user(%s) post: %s", authorID.String(), err.Error())
			return nil, ErrInternal
		}
		post.ImageURL = &url
	}

	createdPost, err := s.repo.Postgres.Post.Create(ctx, post)
	if err != nil {
		s.logger.Sugar().Errorf("failed to create user(%s) post: %s", authorID.String(), err.Error())
		return nil, ErrInternal
	}

	return createdPost, nil
}

func (s *postService) Update(ctx context.Context, postID int64, userID uuid.UUID, form dto.PostForm, image *multipart.FileHeader) (*model.Post, error) {
	detail, err := s.findOwned(ctx, postID, userID)
	if err != nil {
		return nil, err
	}

	post := detail.Post
	post.Text = form.Text
	post.GroupID = form.GroupID

	if image != nil {
		url, err := s.images.Save(image)
		if err != nil {
			if err == storage.ErrFileMustBeImage || err == storage.ErrFileMustHaveAValidExtension {
				return nil, err
			}
			s.logger.Sugar().Errorf("failed to store image for post(%d): %s", postID, err.Error())
			return nil, ErrInternal
		}
		post.ImageURL = &url
	}

	if err := s.repo.Postgres.Post.Update(ctx, post); err != nil {
		s.logger.Sugar().Errorf("failed to update post(%d): %s", postID, err.Error())
		return nil, ErrInternal
	}

	return &post, nil
}

func (s *postService) Delete(ctx context.Context, postID int64, userID uuid.UUID) (*model.PostDetail, error) {
	detail, err := s.findOwned(ctx, postID, userID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Postgres.Post.Delete(ctx, postID); err != nil {
		s.logger.Sugar().Errorf("failed to delete post(%d): %s", postID, err.Error())
		return nil, ErrInternal
	}

	return detail, nil
}

func (s *postService) findOwned(ctx context.Context, postID int64, userID uuid.UUID) (*model.PostDetail, error) {
	detail, err := s.repo.Postgres.Post.FindByID(ctx, postID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrPostNotFound
		}
		s.logger.Sugar().Errorf("failed to find post(%d) from postgres: %s", postID, err.Error())
		return nil, ErrInternal
	}

	if detail.Post.AuthorID != userID {
		return nil, ErrNotPostAuthor
	}

	return detail, nil
}

func (s *postService) FindByID(ctx context.Context, id int64) (*model.PostDetail, error) {
	detail, err := s.repo.Postgres.Post.FindByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrPostNotFound
		}
		s.logger.Sugar().Errorf("failed to find post(%d) from postgres: %s", id, err.Error())
		return nil, ErrInternal
	}

	return detail, nil
}

func (s *postService) FindLatest(ctx context.Context, page string) (*model.PostPage, error) {
	return s.findPage(
		ctx,
		page,
		s.repo.Postgres.Post.CountAll,
		s.repo.Postgres.Post.FindLatest,
	)
}

func (s *postService) FindGroupPosts(ctx context.Context, groupID int64, page string) (*model.PostPage, error) {
	return s.findPage(
		ctx,
		page,
		func(ctx context.Context) (int, error) {
			return s.repo.Postgres.Post.CountByGroup(ctx, groupID)
		},
		func(ctx context.Context, limit int, offset int) ([]*model.PostDetail, error) {
			return s.repo.Postgres.Post.FindByGroup(ctx, groupID, limit, offset)
		},
	)
}

func (s *postService) FindAuthorPosts(ctx context.Context, authorID uuid.UUID, page string) (*model.PostPage, error) {
	return s.findPage(
		ctx,
		page,
		func(ctx context.Context) (int, error) {
			return s.repo.Postgres.Post.CountByAuthor(ctx, authorID)
		},
		func(ctx context.Context, limit int, offset int) ([]*model.PostDetail, error) {
			return s.repo.Postgres.Post.FindByAuthor(ctx, authorID, limit, offset)
		},
	)
}

func (s *postService) FindFeedPosts(ctx context.Context, userID uuid.UUID, page string) (*model.PostPage, error) {
	return s.findPage(
		ctx,
		page,
		func(ctx context.Context) (int, error) {
			return s.repo.Postgres.Post.CountFeed(ctx, userID)
		},
		func(ctx context.Context, limit int, offset int) ([]*model.PostDetail, error) {
			return s.repo.Postgres.Post.FindFeed(ctx, userID, limit, offset)
		},
	)
}

func (s *postService) findPage(
	ctx context.Context,
	page string,
	count func(ctx context.Context) (int, error),
	find func(ctx context.Context, limit int, offset int) ([]*model.PostDetail, error),
) (*model.PostPage, error) {
	total, err := count(ctx)
	if err != nil {
		s.logger.Sugar().Errorf("failed to count posts: %s", err.Error())
		return nil, ErrInternal
	}

	resolved := pagination.New(total, postsPerPage()).Resolve(page)

	posts, err := find(ctx, resolved.Limit, resolved.Offset)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find posts page(%d): %s", resolved.Number, err.Error())
		return nil, ErrInternal
	}

	return &model.PostPage{Posts: posts, Page: resolved}, nil
}
