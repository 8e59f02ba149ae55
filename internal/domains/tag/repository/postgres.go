package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"dbtrain-backend/internal/domains/tag/model"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, t *model.Tag) (*model.Tag, error) {
	var created model.Tag
	err := r.pool.QueryRow(ctx,
		`INSERT INTO tags (name) VALUES ($1) RETURNING id, name`, t.Name,
	).Scan(&created.ID, &created.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}
	return &created, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]model.Tag, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM tags ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query tags: %w", err)
	}

	tags, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Tag])
	if err != nil {
		return nil, fmt.Errorf("failed to scan tags: %w", err)
	}
	return tags, nil
}

// Delete removes the tag and its entry links; the entries stay
func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM tags WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return model.ErrTagNotFound
	}
	return nil
}
