package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type followRepo struct {
	db *pgxpool.Pool
}

func newFollowRepo(db *pgxpool.Pool) Follow {
	return &followRepo{
		db: db,
	}
}

// CreateIfNotExists is the get-or-create half of the follow contract. The
// follows table has no unique constraint, so dedup happens here.
func (r *followRepo) CreateIfNotExists(ctx context.Context, userID uuid.UUID, authorID uuid.UUID) error {
	_, err := r.db.Exec(
		ctx,
		`INSERT INTO follows(user_id, author_id)
		SELECT $1, $2
		WHERE NOT EXISTS (SELECT 1 FROM follows WHERE user_id = $1 AND author_id = $2)`,
		userID,
		authorID,
	)
	return err
}

func (r *followRepo) DeleteByUserAndAuthorName(ctx context.Context, userID uuid.UUID, authorUsername string) error {
	_, err := r.db.Exec(
		ctx,
		"DELETE FROM follows f USING users u WHERE f.author_id = u.id AND f.user_id = $1 AND u.username = $2",
		userID,
		authorUsername,
	)
	return err
}

func (r *followRepo) Exists(ctx context.Context, userID uuid.UUID, authorID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(
		ctx,
		"SELECT EXISTS(SELECT 1 FROM follows WHERE user_id = $1 AND author_id = $2)",
		userID,
		authorID,
	).Scan(&exists)
	return exists, err
}

func (r *followRepo) FindFollowerUsernames(ctx context.Context, authorID uuid.UUID) ([]string, error) {
	return r.queryUsernames(
		ctx,
		"SELECT u.username FROM follows f JOIN users u ON f.user_id = u.id WHERE f.author_id = $1 ORDER BY u.username",
		authorID,
	)
}

func (r *followRepo) FindFollowingUsernames(ctx context.Context, userID uuid.UUID) ([]string, error) {
	return r.queryUsernames(
		ctx,
		"SELECT u.username FROM follows f JOIN users u ON f.author_id = u.id WHERE f.user_id = $1 ORDER BY u.username",
		userID,
	)
}

func (r *followRepo) queryUsernames(ctx context.Context, query string, args ...interface{}) ([]string, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var usernames []string
	for rows.Next() {
		var username string
		if err := rows.Scan(&username); err != nil {
			return nil, err
		}
		usernames = append(usernames, username)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return usernames, nil
}
