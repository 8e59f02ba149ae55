package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	authorModel "dbtrain-backend/internal/domains/author/model"
	"dbtrain-backend/internal/domains/profile/model"
	"dbtrain-backend/internal/infrastructure/database"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

// withAuthorName wraps a statement returning (id, author_id, stage) so the author's names come back too
func withAuthorName(statement string) string {
	return `
        WITH p AS (` + statement + `)
        SELECT p.id, p.author_id, p.stage, a.username, a.last_name, a.first_name, a.middle_name
        FROM p
        JOIN authors a ON a.id = p.author_id`
}

func scanProfile(row pgx.Row) (*model.Profile, error) {
	var p model.Profile
	err := row.Scan(&p.ID, &p.AuthorID, &p.Stage,
		&p.Author.Username, &p.Author.LastName, &p.Author.FirstName, &p.Author.MiddleName)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepository) Create(ctx context.Context, p *model.Profile) (*model.Profile, error) {
	query := withAuthorName(`
            INSERT INTO author_profiles (author_id, stage)
            VALUES ($1, $2)
            RETURNING id, author_id, stage`)

	created, err := scanProfile(r.pool.QueryRow(ctx, query, p.AuthorID, p.Stage))
	if err != nil {
		switch {
		case database.IsUniqueViolation(err, "author_id"):
			return nil, model.ErrProfileExists
		case database.IsForeignKeyViolation(err, "author_id"):
			return nil, authorModel.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to create author profile: %w", err)
	}

	return created, nil
}

func (r *postgresRepository) GetByAuthorID(ctx context.Context, authorID uuid.UUID) (*model.Profile, error) {
	query := withAuthorName(`SELECT id, author_id, stage FROM author_profiles WHERE author_id = $1`)

	p, err := scanProfile(r.pool.QueryRow(ctx, query, authorID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get author profile: %w", err)
	}

	return p, nil
}

func (r *postgresRepository) ExistsByAuthorID(ctx context.Context, authorID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM author_profiles WHERE author_id = $1)`, authorID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check author profile existence: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) UpdateStage(ctx context.Context, authorID uuid.UUID, stage int) (*model.Profile, error) {
	query := withAuthorName(`
            UPDATE author_profiles
            SET stage = $2
            WHERE author_id = $1
            RETURNING id, author_id, stage`)

	p, err := scanProfile(r.pool.QueryRow(ctx, query, authorID, stage))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to update author profile: %w", err)
	}

	return p, nil
}
