package postgres

import (
	"context"

	"github.com/QuillApp/web-service/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postRepo struct {
	db *pgxpool.Pool
}

func newPostRepo(db *pgxpool.Pool) Post {
	return &postRepo{
		db: db,
	}
}

// postDetailSelect joins every listing/detail query with the author and the
// optional group so templates never trigger follow-up lookups.
const postDetailSelect = `SELECT
	p.id, p.text, p.pub_date, p.author_id, p.group_id, p.image_url,
	u.username, u.display_name, u.avatar_url,
	g.title, g.slug, g.description
	FROM posts p
	JOIN users u ON p.author_id = u.id
	LEFT JOIN groups g ON p.group_id = g.id`

const postDetailOrder = " ORDER BY p.pub_date DESC, p.id DESC"

func scanPostDetail(row pgx.Row) (*model.PostDetail, error) {
	var (
		detail           model.PostDetail
		groupTitle       *string
		groupSlug        *string
		groupDescription *string
	)
	if err := row.Scan(
		&detail.Post.ID,
		&detail.Post.Text,
		&detail.Post.PubDate,
		&detail.Post.AuthorID,
		&detail.Post.GroupID,
		&detail.Post.ImageURL,
		&detail.Author.Username,
		&detail.Author.DisplayName,
		&detail.Author.AvatarURL,
		&groupTitle,
		&groupSlug,
		&groupDescription,
	); err != nil {
		return nil, err
	}

	detail.Author.ID = detail.Post.AuthorID

	if detail.Post.GroupID != nil {
		detail.Group = &model.Group{
			ID:          *detail.Post.GroupID,
			Title:       *groupTitle,
			Slug:        *groupSlug,
			Description: *groupDescription,
		}
	}

	return &detail, nil
}

func (r *postRepo) queryPostDetails(ctx context.Context, query string, args ...interface{}) ([]*model.PostDetail, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*model.PostDetail
	for rows.Next() {
		post, err := scanPostDetail(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}

func (r *postRepo) Create(ctx context.Context, post model.Post) (*model.Post, error) {
	if err := r.db.QueryRow(
		ctx,
		"INSERT INTO posts(text, author_id, group_id, image_url) VALUES($1, $2, $3, $4) RETURNING id, pub_date",
		post.Text,
		post.AuthorID,
		post.GroupID,
		post.ImageURL,
	).Scan(&post.ID, &post.PubDate); err != nil {
		return nil, err
	}

	return &post, nil
}

func (r *postRepo) Update(ctx context.Context, post model.Post) error {
	// pub_date is immutable: it is deliberately absent from the SET list.
	_, err := r.db.Exec(
		ctx,
		"UPDATE posts SET text = $1, group_id = $2, image_url = $3 WHERE id = $4",
		post.Text,
		post.GroupID,
		post.ImageURL,
		post.ID,
	)
	return err
}

func (r *postRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, "DELETE FROM posts WHERE id = $1", id)
	return err
}

func (r *postRepo) FindByID(ctx context.Context, id int64) (*model.PostDetail, error) {
	return scanPostDetail(r.db.QueryRow(ctx, postDetailSelect+" WHERE p.id = $1", id))
}

func (r *postRepo) CountAll(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM posts").Scan(&count)
	return count, err
}

func (r *postRepo) CountByGroup(ctx context.Context, groupID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM posts WHERE group_id = $1", groupID).Scan(&count)
	return count, err
}

func (r *postRepo) CountByAuthor(ctx context.Context, authorID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM posts WHERE author_id = $1", authorID).Scan(&count)
	return count, err
}

func (r *postRepo) CountFeed(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRow(
		ctx,
		"SELECT COUNT(*) FROM posts WHERE author_id IN (SELECT f.author_id FROM follows f WHERE f.user_id = $1)",
		userID,
	).Scan(&count)
	return count, err
}

func (r *postRepo) FindLatest(ctx context.Context, limit int, offset int) ([]*model.PostDetail, error) {
	return r.queryPostDetails(
		ctx,
		postDetailSelect+postDetailOrder+" LIMIT $1 OFFSET $2",
		limit,
		offset,
	)
}

func (r *postRepo) FindByGroup(ctx context.Context, groupID int64, limit int, offset int) ([]*model.PostDetail, error) {
	return r.queryPostDetails(
		ctx,
		postDetailSelect+" WHERE p.group_id = $1"+postDetailOrder+" LIMIT $2 OFFSET $3",
		groupID,
		limit,
		offset,
	)
}

func (r *postRepo) FindByAuthor(ctx context.Context, authorID uuid.UUID, limit int, offset int) ([]*model.PostDetail, error) {
	return r.queryPostDetails(
		ctx,
		postDetailSelect+" WHERE p.author_id = $1"+postDetailOrder+" LIMIT $2 OFFSET $3",
		authorID,
		limit,
		offset,
	)
}

func (r *postRepo) FindFeed(ctx context.Context, userID uuid.UUID, limit int, offset int) ([]*model.PostDetail, error) {
	return r.queryPostDetails(
		ctx,
		postDetailSelect+" WHERE p.author_id IN (SELECT f.author_id FROM follows f WHERE f.user_id = $1)"+postDetailOrder+" LIMIT $2 OFFSET $3",
		userID,
		limit,
		offset,
	)
}
