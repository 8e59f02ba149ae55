package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// AuthorRow is a raw authors row for seeding; zero values become NULL where the column allows it
type AuthorRow struct {
	Username   string
	Gender     string
	SelfEsteem string // decimal text, e.g. "4.5"
	Phone      string
	Age        *int
	StatusRule bool
}

// InsertAuthor writes an author row directly and returns its id
func InsertAuthor(t *testing.T, pool *pgxpool.Pool, row AuthorRow) uuid.UUID {
	t.Helper()

	var id uuid.UUID
	err := pool.QueryRow(context.Background(), `
        INSERT INTO authors (username, email, gender, self_esteem, phone_number, age, status_rule)
        VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, '')::numeric, NULLIF($5, ''), $6, $7)
        RETURNING id`,
		row.Username, row.Username+"@example.com", row.Gender, row.SelfEsteem, row.Phone, row.Age, row.StatusRule,
	).Scan(&id)
	require.NoError(t, err)
	return id
}

// InsertProfile links a profile with the given stage to an author
func InsertProfile(t *testing.T, pool *pgxpool.Pool, authorID uuid.UUID, stage int) uuid.UUID {
	t.Helper()

	var id uuid.UUID
	err := pool.QueryRow(context.Background(),
		`INSERT INTO author_profiles (author_id, stage) VALUES ($1, $2) RETURNING id`,
		authorID, stage,
	).Scan(&id)
	require.NoError(t, err)
	return id
}

func InsertTag(t *testing.T, pool *pgxpool.Pool, name string) uuid.UUID {
	t.Helper()

	var id uuid.UUID
	err := pool.QueryRow(context.Background(),
		`INSERT INTO tags (name) VALUES ($1) RETURNING id`, name,
	).Scan(&id)
	require.NoError(t, err)
	return id
}

// InsertEntry writes an entry and links the given tags
func InsertEntry(t *testing.T, pool *pgxpool.Pool, authorID uuid.UUID, text string, tagIDs ...uuid.UUID) uuid.UUID {
	t.Helper()
	ctx := context.Background()

	var id uuid.UUID
	err := pool.QueryRow(ctx,
		`INSERT INTO entries (author_id, text) VALUES ($1, $2) RETURNING id`, authorID, text,
	).Scan(&id)
	require.NoError(t, err)

	for _, tagID := range tagIDs {
		_, err := pool.Exec(ctx, `INSERT INTO entry_tags (entry_id, tag_id) VALUES ($1, $2)`, id, tagID)
		require.NoError(t, err)
	}
	return id
}

func IntPtr(i int) *int { return &i }
