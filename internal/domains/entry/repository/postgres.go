package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	authorModel "dbtrain-backend/internal/domains/author/model"
	"dbtrain-backend/internal/domains/entry/model"
	tagModel "dbtrain-backend/internal/domains/tag/model"
	"dbtrain-backend/internal/infrastructure/database"
	pkgdb "dbtrain-backend/pkg/database"
)

// BaseSelect loads entries with their author username and tags aggregated as JSON.
// Callers append WHERE and must finish with GroupBy.
const BaseSelect = `
    SELECT e.id, e.author_id, a.username, e.text, e.created_at,
        COALESCE(
            json_agg(json_build_object('id', t.id, 'name', t.name) ORDER BY t.name, t.id)
                FILTER (WHERE t.id IS NOT NULL),
            '[]'::json
        ) AS tags
    FROM entries e
    JOIN authors a ON a.id = e.author_id
    LEFT JOIN entry_tags et ON et.entry_id = e.id
    LEFT JOIN tags t ON t.id = et.tag_id`

const GroupBy = ` GROUP BY e.id, a.username`

const (
	fkEntryAuthor = "entries_author_id_fkey"
	fkLinkEntry   = "entry_tags_entry_id_fkey"
	fkLinkTag     = "entry_tags_tag_id_fkey"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, e *model.Entry, tagIDs []uuid.UUID) (*model.Entry, error) {
	id, err := pkgdb.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (uuid.UUID, error) {
		var id uuid.UUID
		err := tx.QueryRow(ctx,
			`INSERT INTO entries (author_id, text) VALUES ($1, $2) RETURNING id`,
			e.AuthorID, e.Text,
		).Scan(&id)
		if err != nil {
			return uuid.Nil, mapLinkError(err)
		}

		if len(tagIDs) == 0 {
			return id, nil
		}
		if _, err := tx.Exec(ctx, insertLinksQuery, id, pq.Array(uuidStrings(tagIDs))); err != nil {
			return uuid.Nil, mapLinkError(err)
		}
		return id, nil
	})
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Entry, error) {
	e, err := ScanEntry(r.pool.QueryRow(ctx, BaseSelect+` WHERE e.id = $1`+GroupBy, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrEntryNotFound
		}
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}
	return e, nil
}

func (r *postgresRepository) ListByAuthor(ctx context.Context, authorID uuid.UUID, filter model.EntryFilter) ([]model.Entry, int64, error) {
	query := BaseSelect + ` WHERE e.author_id = $1` + GroupBy +
		` ORDER BY e.created_at DESC, e.id LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, authorID, filter.Limit, filter.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query entries: %w", err)
	}

	entries, err := CollectEntries(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	err = r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM entries WHERE author_id = $1`, authorID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count entries: %w", err)
	}

	return entries, total, nil
}

const insertLinksQuery = `
    INSERT INTO entry_tags (entry_id, tag_id)
    SELECT $1::uuid, tag_id::uuid FROM unnest($2::text[]) AS tag_id
    ON CONFLICT DO NOTHING`

// AttachTags links tags to an entry; links that already exist are kept as they are
func (r *postgresRepository) AttachTags(ctx context.Context, entryID uuid.UUID, tagIDs []uuid.UUID) error {
	if len(tagIDs) == 0 {
		return nil
	}
	if _, err := r.pool.Exec(ctx, insertLinksQuery, entryID, pq.Array(uuidStrings(tagIDs))); err != nil {
		return mapLinkError(err)
	}
	return nil
}

func (r *postgresRepository) DetachTag(ctx context.Context, entryID, tagID uuid.UUID) error {
	cmdTag, err := r.pool.Exec(ctx,
		`DELETE FROM entry_tags WHERE entry_id = $1 AND tag_id = $2`, entryID, tagID)
	if err != nil {
		return fmt.Errorf("failed to detach tag: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return model.ErrEntryTagNotFound
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return model.ErrEntryNotFound
	}
	return nil
}

// ScanEntry reads one row produced by BaseSelect
func ScanEntry(row pgx.Row) (*model.Entry, error) {
	var e model.Entry
	if err := row.Scan(&e.ID, &e.AuthorID, &e.AuthorUsername, &e.Text, &e.CreatedAt, &e.Tags); err != nil {
		return nil, err
	}
	if e.Tags == nil {
		e.Tags = []tagModel.Tag{}
	}
	return &e, nil
}

// CollectEntries drains rows produced by BaseSelect and closes them
func CollectEntries(rows pgx.Rows) ([]model.Entry, error) {
	defer rows.Close()

	entries := []model.Entry{}
	for rows.Next() {
		e, err := ScanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entries: %w", err)
	}
	return entries, nil
}

func mapLinkError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case database.IsForeignKeyViolation(err, fkEntryAuthor):
		return authorModel.ErrAuthorNotFound
	case database.IsForeignKeyViolation(err, fkLinkEntry):
		return model.ErrEntryNotFound
	case database.IsForeignKeyViolation(err, fkLinkTag):
		return tagModel.ErrTagNotFound
	}
	return fmt.Errorf("failed to write entry: %w", err)
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
