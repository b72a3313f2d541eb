package postgres

import (
	"context"

	"github.com/QuillApp/web-service/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

type groupRepo struct {
	db *pgxpool.Pool
}

func newGroupRepo(db *pgxpool.Pool) Group {
	return &groupRepo{
		db: db,
	}
}

func (r *groupRepo) FindBySlug(ctx context.Context, slug string) (*model.Group, error) {
	var group model.Group
	if err := r.db.QueryRow(
		ctx,
		"SELECT g.id, g.title, g.slug, g.description FROM groups g WHERE g.slug = $1",
		slug,
	).Scan(
		&group.ID,
		&group.Title,
		&group.Slug,
		&group.Description,
	); err != nil {
		return nil, err
	}

	return &group, nil
}

func (r *groupRepo) FindAll(ctx context.Context) ([]*model.Group, error) {
	rows, err := r.db.Query(ctx, "SELECT g.id, g.title, g.slug, g.description FROM groups g ORDER BY g.title")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []*model.Group
	for rows.Next() {
		var group model.Group
		if err := rows.Scan(
			&group.ID,
			&group.Title,
			&group.Slug,
			&group.Description,
		); err != nil {
			return nil, err
		}

		groups = append(groups, &group)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return groups, nil
}
