package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"dbtrain-backend/internal/domains/author/model"
	"dbtrain-backend/internal/infrastructure/database"
	"dbtrain-backend/internal/shared"
	"dbtrain-backend/internal/shared/utils"
	"dbtrain-backend/pkg/cache"
)

// postgresRepository implements RepositoryInterface with pgxpool and a Redis read-through cache
type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) RepositoryInterface {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

const (
	authorCacheKeyPrefix = "author:"
	authorListKeyPrefix  = "author:list:"
	cacheTTL             = 15 * time.Minute
	listCacheTTL         = 5 * time.Minute

	authorColumns = `id, username, email, first_name, last_name, middle_name, gender,
        self_esteem, phone_number, city, bio, age, date_birth, status_rule, image,
        created_at, updated_at`
)

func (r *postgresRepository) Create(ctx context.Context, a *model.Author) (*model.Author, error) {
	query := `
        INSERT INTO authors (username, email, first_name, last_name, middle_name, gender,
            self_esteem, phone_number, city, bio, age, date_birth, status_rule, image)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
        RETURNING ` + authorColumns

	created, err := scanAuthor(r.pool.QueryRow(ctx, query,
		a.Username,
		a.Email,
		a.FirstName,
		a.LastName,
		a.MiddleName,
		a.Gender,
		nullDecimal(a.SelfEsteem),
		a.PhoneNumber,
		a.City,
		a.Bio,
		a.Age,
		a.DateBirth,
		a.StatusRule,
		a.Image,
	))
	if err != nil {
		if mapped := mapConstraintError(err); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("failed to create author: %w", err)
	}

	r.invalidateListCache(ctx)
	return created, nil
}

// GetByID reads through the cache
func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	cacheKey := authorCacheKeyPrefix + id.String()

	var cached model.Author
	if found, err := r.cache.Get(ctx, cacheKey, &cached); err == nil && found {
		return &cached, nil
	}

	query := `SELECT ` + authorColumns + ` FROM authors WHERE id = $1`

	a, err := scanAuthor(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to get author by id: %w", err)
	}

	if err := r.cache.Set(ctx, cacheKey, a, cacheTTL); err != nil {
		log.Warn().Err(err).Str("key", cacheKey).Msg("Failed to cache author")
	}

	return a, nil
}

func (r *postgresRepository) GetByUsername(ctx context.Context, username string) (*model.Author, error) {
	query := `SELECT ` + authorColumns + ` FROM authors WHERE username = $1`

	a, err := scanAuthor(r.pool.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to get author by username: %w", err)
	}
	return a, nil
}

// List expects a normalized filter; SortBy is whitelisted by AuthorFilter.Normalize
// cachedPage is the cached form of one List result
type cachedPage struct {
	Authors []model.Author `json:"authors"`
	Total   int64          `json:"total"`
}

func listCacheKey(f model.AuthorFilter) string {
	return fmt.Sprintf("%s%s:%s:%s:%s:%s:%d:%d",
		authorListKeyPrefix, f.Search, f.Gender, f.City, f.SortBy, f.Order, f.Limit, f.Offset)
}

// List reads pages through the cache; any author write drops every cached page
func (r *postgresRepository) List(ctx context.Context, filter model.AuthorFilter) ([]model.Author, int64, error) {
	cacheKey := listCacheKey(filter)
	var cached cachedPage
	if found, err := r.cache.Get(ctx, cacheKey, &cached); err == nil && found {
		return cached.Authors, cached.Total, nil
	}

	var where utils.Where
	if filter.Search != "" {
		where.Add("username ILIKE $%d", "%"+filter.Search+"%")
	}
	if filter.Gender != "" {
		where.Add("gender = $%d", filter.Gender)
	}
	if filter.City != "" {
		where.Add("city = $%d", filter.City)
	}
	args := where.Args()
	argPos := where.Next()

	sortColumn := "created_at"
	if model.AllowedSortColumns[filter.SortBy] {
		sortColumn = filter.SortBy
	}
	sortOrder := "DESC"
	if filter.Order == "ASC" {
		sortOrder = "ASC"
	}

	query := `SELECT ` + authorColumns + ` FROM authors` + where.String() +
		fmt.Sprintf(" ORDER BY %s %s NULLS LAST, username ASC LIMIT $%d OFFSET $%d", sortColumn, sortOrder, argPos, argPos+1)

	rows, err := r.pool.Query(ctx, query, append(args, filter.Limit, filter.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query authors: %w", err)
	}
	defer rows.Close()

	authors := []model.Author{}
	for rows.Next() {
		a, err := scanAuthor(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating authors: %w", err)
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM authors`+where.String(), args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count authors: %w", err)
	}

	if err := r.cache.Set(ctx, cacheKey, cachedPage{Authors: authors, Total: total}, listCacheTTL); err != nil {
		log.Warn().Err(err).Str("key", cacheKey).Msg("Failed to cache author list")
	}

	return authors, total, nil
}

func (r *postgresRepository) Update(ctx context.Context, a *model.Author) (*model.Author, error) {
	query := `
        UPDATE authors
        SET
            username = $1,
            email = $2,
            first_name = $3,
            last_name = $4,
            middle_name = $5,
            gender = $6,
            self_esteem = $7,
            phone_number = $8,
            city = $9,
            bio = $10,
            age = $11,
            date_birth = $12,
            status_rule = $13,
            image = $14,
            updated_at = NOW()
        WHERE id = $15
        RETURNING ` + authorColumns

	updated, err := scanAuthor(r.pool.QueryRow(ctx, query,
		a.Username,
		a.Email,
		a.FirstName,
		a.LastName,
		a.MiddleName,
		a.Gender,
		nullDecimal(a.SelfEsteem),
		a.PhoneNumber,
		a.City,
		a.Bio,
		a.Age,
		a.DateBirth,
		a.StatusRule,
		a.Image,
		a.ID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAuthorNotFound
		}
		if mapped := mapConstraintError(err); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("failed to update author: %w", err)
	}

	r.invalidateAuthorCache(ctx, a.ID)
	return updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete author: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return model.ErrAuthorNotFound
	}

	r.invalidateAuthorCache(ctx, id)
	return nil
}

func (r *postgresRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM authors WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check author existence: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) UniqueConflicts(ctx context.Context, a *model.Author, excludeID uuid.UUID) (model.UniqueConflicts, error) {
	query := `
        SELECT
            COALESCE(bool_or(username = $2), false),
            COALESCE(bool_or(email = $3), false),
            COALESCE(bool_or(phone_number = $4), false)
        FROM authors
        WHERE id <> $1
          AND (username = $2 OR email = $3 OR phone_number = $4)
    `

	var c model.UniqueConflicts
	err := r.pool.QueryRow(ctx, query, excludeID, a.Username, a.Email, a.PhoneNumber).
		Scan(&c.Username, &c.Email, &c.Phone)
	if err != nil {
		return model.UniqueConflicts{}, fmt.Errorf("failed to check author uniqueness: %w", err)
	}
	return c, nil
}

// scanAuthor reads one row selected with authorColumns
func scanAuthor(row pgx.Row) (*model.Author, error) {
	var (
		a      model.Author
		esteem decimal.NullDecimal
	)

	err := row.Scan(
		&a.ID,
		&a.Username,
		&a.Email,
		&a.FirstName,
		&a.LastName,
		&a.MiddleName,
		&a.Gender,
		&esteem,
		&a.PhoneNumber,
		&a.City,
		&a.Bio,
		&a.Age,
		&a.DateBirth,
		&a.StatusRule,
		&a.Image,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if esteem.Valid {
		a.SelfEsteem = &esteem.Decimal
	}
	return &a, nil
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

// checkedColumns are the authors columns guarded by a CHECK constraint
var checkedColumns = []string{"username", "gender", "self_esteem", "phone_number"}

// mapConstraintError turns unique and check violations on the authors table into field errors
func mapConstraintError(err error) error {
	switch {
	case database.IsUniqueViolation(err, "username"):
		return model.ErrDuplicateUsername
	case database.IsUniqueViolation(err, "email"):
		return model.ErrDuplicateEmail
	case database.IsUniqueViolation(err, "phone_number"):
		return model.ErrDuplicatePhone
	}
	for _, column := range checkedColumns {
		if database.IsCheckViolation(err, column) {
			return shared.NewFieldError(column, "value rejected by the database")
		}
	}
	return nil
}

func (r *postgresRepository) invalidateAuthorCache(ctx context.Context, id uuid.UUID) {
	if err := r.cache.Delete(ctx, authorCacheKeyPrefix+id.String()); err != nil {
		log.Warn().Err(err).Str("author_id", id.String()).Msg("Failed to invalidate author cache")
	}
	r.invalidateListCache(ctx)
}

func (r *postgresRepository) invalidateListCache(ctx context.Context) {
	if err := r.cache.DeletePattern(ctx, authorListKeyPrefix+"*"); err != nil {
		log.Warn().Err(err).Msg("Failed to invalidate author list cache")
	}
}
