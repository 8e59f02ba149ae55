package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	entryModel "dbtrain-backend/internal/domains/entry/model"
	entryRepo "dbtrain-backend/internal/domains/entry/repository"
	"dbtrain-backend/internal/domains/report/model"
	pkgdb "dbtrain-backend/pkg/database"
)

type postgresSnapshotSource struct {
	pool *pgxpool.Pool
}

func NewPostgresSnapshotSource(pool *pgxpool.Pool) SnapshotSource {
	return &postgresSnapshotSource{pool: pool}
}

// Read runs fn inside a REPEATABLE READ, READ ONLY transaction
func (s *postgresSnapshotSource) Read(ctx context.Context, fn func(Reader) error) error {
	return pkgdb.WithReadOnlySnapshot(ctx, s.pool, func(tx pgx.Tx) error {
		return fn(NewTxReader(tx))
	})
}

type txReader struct {
	tx pgx.Tx
}

func NewTxReader(tx pgx.Tx) Reader {
	return &txReader{tx: tx}
}

func (r *txReader) TopSelfEsteemUsernames(ctx context.Context) ([]string, error) {
	rows, err := r.tx.Query(ctx, `
        SELECT username FROM authors
        WHERE self_esteem = (SELECT MAX(self_esteem) FROM authors)
        ORDER BY username`)
	if err != nil {
		return nil, fmt.Errorf("failed to query top self esteem: %w", err)
	}

	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan usernames: %w", err)
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

// MostProlificAuthors derives the leaders from the per-author counts of the same snapshot
func (r *txReader) MostProlificAuthors(ctx context.Context) ([]model.AuthorEntryCount, error) {
	counts, err := r.EntryCountsPerAuthor(ctx)
	if err != nil {
		return nil, err
	}
	return model.TopByCount(counts), nil
}

// EntriesTagged returns each entry carrying at least one of the names once
func (r *txReader) EntriesTagged(ctx context.Context, names ...string) ([]entryModel.Entry, error) {
	query := entryRepo.BaseSelect + `
        WHERE e.id IN (
            SELECT et.entry_id FROM entry_tags et
            JOIN tags tt ON tt.id = et.tag_id
            WHERE tt.name = ANY($1::text[])
        )` + entryRepo.GroupBy + ` ORDER BY e.created_at, e.id`

	rows, err := r.tx.Query(ctx, query, pq.Array(names))
	if err != nil {
		return nil, fmt.Errorf("failed to query tagged entries: %w", err)
	}
	return entryRepo.CollectEntries(rows)
}

func (r *txReader) CountByGender(ctx context.Context, gender string) (int64, error) {
	var count int64
	if err := r.tx.QueryRow(ctx, `SELECT COUNT(*) FROM authors WHERE gender = $1`, gender).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count by gender: %w", err)
	}
	return count, nil
}

func (r *txReader) RuleAgreement(ctx context.Context) (model.RuleAgreement, error) {
	var agreed, total int64
	err := r.tx.QueryRow(ctx,
		`SELECT COUNT(*) FILTER (WHERE status_rule), COUNT(*) FROM authors`,
	).Scan(&agreed, &total)
	if err != nil {
		return model.RuleAgreement{}, fmt.Errorf("failed to count rule agreement: %w", err)
	}
	return model.AgreementRatio(agreed, total), nil
}

func (r *txReader) ProfilesByStage(ctx context.Context, min, max int) ([]model.ProfileStage, error) {
	rows, err := r.tx.Query(ctx, `
        SELECT p.id, p.author_id, a.username, p.stage
        FROM author_profiles p
        JOIN authors a ON a.id = p.author_id
        WHERE p.stage BETWEEN $1 AND $2
        ORDER BY p.stage, a.username`, min, max)
	if err != nil {
		return nil, fmt.Errorf("failed to query profiles by stage: %w", err)
	}

	profiles, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.ProfileStage, error) {
		var p model.ProfileStage
		err := row.Scan(&p.ProfileID, &p.AuthorID, &p.Username, &p.Stage)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan profiles: %w", err)
	}
	if profiles == nil {
		profiles = []model.ProfileStage{}
	}
	return profiles, nil
}

func (r *txReader) MaxAge(ctx context.Context) (*int, error) {
	var age *int
	if err := r.tx.QueryRow(ctx, `SELECT MAX(age) FROM authors`).Scan(&age); err != nil {
		return nil, fmt.Errorf("failed to query max age: %w", err)
	}
	return age, nil
}

func (r *txReader) CountWithPhone(ctx context.Context) (int64, error) {
	var count int64
	if err := r.tx.QueryRow(ctx, `SELECT COUNT(phone_number) FROM authors`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count phone numbers: %w", err)
	}
	return count, nil
}

// AuthorsYoungerThan skips authors without a known age
func (r *txReader) AuthorsYoungerThan(ctx context.Context, age int) ([]model.AuthorAge, error) {
	rows, err := r.tx.Query(ctx, `
        SELECT id, username, age FROM authors
        WHERE age IS NOT NULL AND age < $1
        ORDER BY age, username`, age)
	if err != nil {
		return nil, fmt.Errorf("failed to query young authors: %w", err)
	}

	authors, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.AuthorAge, error) {
		var a model.AuthorAge
		err := row.Scan(&a.AuthorID, &a.Username, &a.Age)
		return a, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan young authors: %w", err)
	}
	if authors == nil {
		authors = []model.AuthorAge{}
	}
	return authors, nil
}

// EntryCountsPerAuthor includes authors with no entries
func (r *txReader) EntryCountsPerAuthor(ctx context.Context) ([]model.AuthorEntryCount, error) {
	rows, err := r.tx.Query(ctx, `
        SELECT a.id, a.username, COUNT(e.id) AS entries
        FROM authors a
        LEFT JOIN entries e ON e.author_id = a.id
        GROUP BY a.id, a.username
        ORDER BY entries DESC, a.username ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query entry counts: %w", err)
	}

	counts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.AuthorEntryCount, error) {
		var c model.AuthorEntryCount
		err := row.Scan(&c.AuthorID, &c.Username, &c.Entries)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan entry counts: %w", err)
	}
	if counts == nil {
		counts = []model.AuthorEntryCount{}
	}
	return counts, nil
}
