package service

import (
	"context"
	"mime/multipart"

	"github.com/QuillApp/web-service/internal/dto"
	"github.com/QuillApp/web-service/internal/model"
	"github.com/QuillApp/web-service/internal/repository"
	"github.com/QuillApp/web-service/internal/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const DEFAULT_POSTS_PER_PAGE = 10

type Post interface {
	Create(ctx context.Context, authorID uuid.UUID, form dto.PostForm, image *multipart.FileHeader) (*model.Post, error)
	Update(ctx context.Context, postID int64, userID uuid.UUID, form dto.PostForm, image *multipart.FileHeader) (*model.Post, error)
	Delete(ctx context.Context, postID int64, userID uuid.UUID) (*model.PostDetail, error)
	FindByID(ctx context.Context, id int64) (*model.PostDetail, error)
	FindLatest(ctx context.Context, page string) (*model.PostPage, error)
	FindGroupPosts(ctx context.Context, groupID int64, page string) (*model.PostPage, error)
	FindAuthorPosts(ctx context.Context, authorID uuid.UUID, page string) (*model.PostPage, error)
	FindFeedPosts(ctx context.Context, userID uuid.UUID, page string) (*model.PostPage, error)
}

type Comment interface {
	Create(ctx context.Context, postID int64, authorID uuid.UUID, form dto.CommentForm) (*model.Comment, error)
	FindPostComments(ctx context.Context, postID int64) ([]*model.PostComment, error)
}

type Group interface {
	FindBySlug(ctx context.Context, slug string) (*model.Group, error)
	FindAll(ctx context.Context) ([]*model.Group, error)
}

type User interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindAll(ctx context.Context) ([]*model.User, error)
	ProfileOf(ctx context.Context, username string, viewerID *uuid.UUID) (*model.Profile, error)
}

type Follow interface {
	Follow(ctx context.Context, userID uuid.UUID, authorUsername string) error
	Unfollow(ctx context.Context, userID uuid.UUID, authorUsername string) error
}

// PageCache stores rendered listing pages keyed by request URI, query
// string included. Expiry is time-based only; writes do not invalidate it.
type PageCache interface {
	Get(ctx context.Context, path string) ([]byte, error)
	Set(ctx context.Context, path string, body []byte) error
	Clear(ctx context.Context) error
}

type Service struct {
	Post
	Comment
	Group
	User
	Follow
	PageCache
}

func New(logger *zap.Logger, repo *repository.Repository, images *storage.ImageStore) *Service {
	return &Service{
		Post:      newPostService(logger, repo, images),
		Comment:   newCommentService(logger, repo),
		Group:     newGroupService(logger, repo),
		User:      newUserService(logger, repo),
		Follow:    newFollowService(logger, repo),
		PageCache: newPageCacheService(logger, repo),
	}
}
