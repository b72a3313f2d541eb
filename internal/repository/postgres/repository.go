package postgres

import (
	"context"

	"github.com/QuillApp/web-service/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Post interface {
	Create(ctx context.Context, post model.Post) (*model.Post, error)
	Update(ctx context.Context, post model.Post) error
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*model.PostDetail, error)
	CountAll(ctx context.Context) (int, error)
	CountByGroup(ctx context.Context, groupID int64) (int, error)
	CountByAuthor(ctx context.Context, authorID uuid.UUID) (int, error)
	CountFeed(ctx context.Context, userID uuid.UUID) (int, error)
	FindLatest(ctx context.Context, limit int, offset int) ([]*model.PostDetail, error)
	FindByGroup(ctx context.Context, groupID int64, limit int, offset int) ([]*model.PostDetail, error)
	FindByAuthor(ctx context.Context, authorID uuid.UUID, limit int, offset int) ([]*model.PostDetail, error)
	FindFeed(ctx context.Context, userID uuid.UUID, limit int, offset int) ([]*model.PostDetail, error)
}

type Comment interface {
	Create(ctx context.Context, comment model.Comment) (*model.Comment, error)
	FindPostComments(ctx context.Context, postID int64) ([]*model.PostComment, error)
}

type Group interface {
	FindBySlug(ctx context.Context, slug string) (*model.Group, error)
	FindAll(ctx context.Context) ([]*model.Group, error)
}

type User interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindAll(ctx context.Context) ([]*model.User, error)
}

type Follow interface {
	CreateIfNotExists(ctx context.Context, userID uuid.UUID, authorID uuid.UUID) error
	DeleteByUserAndAuthorName(ctx context.Context, userID uuid.UUID, authorUsername string) error
	Exists(ctx context.Context, userID uuid.UUID, authorID uuid.UUID) (bool, error)
	FindFollowerUsernames(ctx context.Context, authorID uuid.UUID) ([]string, error)
	FindFollowingUsernames(ctx context.Context, userID uuid.UUID) ([]string, error)
}

type PostgresRepository struct {
	Post
	Comment
	Group
	User
	Follow
}

func New(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{
		Post:    newPostRepo(db),
		Comment: newCommentRepo(db),
		Group:   newGroupRepo(db),
		User:    newUserRepo(db),
		Follow:  newFollowRepo(db),
	}
}
