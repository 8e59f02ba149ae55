package repository

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authorModel "dbtrain-backend/internal/domains/author/model"
	authorRepo "dbtrain-backend/internal/domains/author/repository"
	"dbtrain-backend/internal/domains/entry/model"
	tagModel "dbtrain-backend/internal/domains/tag/model"
	infraCache "dbtrain-backend/internal/infrastructure/cache"
	"dbtrain-backend/internal/testutil"
)

func TestPostgresRepository(t *testing.T) {
	pool := testutil.SetupPostgres(t)
	repo := NewPostgresRepository(pool)
	ctx := context.Background()

	t.Run("create with tags", func(t *testing.T) {
		defer testutil.Truncate(t, pool)

		authorID := testutil.InsertAuthor(t, pool, testutil.AuthorRow{Username: "anna"})
		music := testutil.InsertTag(t, pool, "Музыка")
		cinema := testutil.InsertTag(t, pool, "Кино")

		entry, err := repo.Create(ctx, &model.Entry{AuthorID: authorID, Text: "concert review"}, []uuid.UUID{music, cinema})
		require.NoError(t, err)

		assert.Equal(t, "anna", entry.AuthorUsername)
		require.Len(t, entry.Tags, 2)
		assert.Equal(t, "Кино", entry.Tags[0].Name)
		assert.Equal(t, "Музыка", entry.Tags[1].Name)
		assert.False(t, entry.CreatedAt.IsZero())
	})

	t.Run("create without tags returns an empty list", func(t *testing.T) {
		defer testutil.Truncate(t, pool)

		authorID := testutil.InsertAuthor(t, pool, testutil.AuthorRow{Username: "anna"})

		entry, err := repo.Create(ctx, &model.Entry{AuthorID: authorID, Text: "plain"}, nil)
		require.NoError(t, err)
		assert.NotNil(t, entry.Tags)
		assert.Empty(t, entry.Tags)
	})

	t.Run("unknown references roll back", func(t *testing.T) {
		defer testutil.Truncate(t, pool)

		_, err := repo.Create(ctx, &model.Entry{AuthorID: uuid.New(), Text: "orphan"}, nil)
		assert.ErrorIs(t, err, authorModel.ErrAuthorNotFound)

		authorID := testutil.InsertAuthor(t, pool, testutil.AuthorRow{Username: "anna"})
		_, err = repo.Create(ctx, &model.Entry{AuthorID: authorID, Text: "bad tag"}, []uuid.UUID{uuid.New()})
		assert.ErrorIs(t, err, tagModel.ErrTagNotFound)

		var count int
		require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM entries`).Scan(&count))
		assert.Zero(t, count)
	})

	t.Run("attach and detach tags", func(t *testing.T) {
		defer testutil.Truncate(t, pool)

		authorID := testutil.InsertAuthor(t, pool, testutil.AuthorRow{Username: "anna"})
		tagID := testutil.InsertTag(t, pool, "Кино")
		entryID := testutil.InsertEntry(t, pool, authorID, "film")

		require.NoError(t, repo.AttachTags(ctx, entryID, []uuid.UUID{tagID}))
		require.NoError(t, repo.AttachTags(ctx, entryID, []uuid.UUID{tagID}))

		entry, err := repo.GetByID(ctx, entryID)
		require.NoError(t, err)
		assert.Len(t, entry.Tags, 1)
		assert.True(t, entry.HasTag("Кино"))

		assert.ErrorIs(t, repo.AttachTags(ctx, uuid.New(), []uuid.UUID{tagID}), model.ErrEntryNotFound)

		require.NoError(t, repo.DetachTag(ctx, entryID, tagID))
		assert.ErrorIs(t, repo.DetachTag(ctx, entryID, tagID), model.ErrEntryTagNotFound)
	})

	t.Run("list by author pages newest first", func(t *testing.T) {
		defer testutil.Truncate(t, pool)

		anna := testutil.InsertAuthor(t, pool, testutil.AuthorRow{Username: "anna"})
		boris := testutil.InsertAuthor(t, pool, testutil.AuthorRow{Username: "boris"})
		first := testutil.InsertEntry(t, pool, anna, "first")
		second := testutil.InsertEntry(t, pool, anna, "second")
		testutil.InsertEntry(t, pool, boris, "other")
		_, err := pool.Exec(ctx, `UPDATE entries SET created_at = NOW() - INTERVAL '1 hour' WHERE id = $1`, first)
		require.NoError(t, err)

		entries, total, err := repo.ListByAuthor(ctx, anna, model.EntryFilter{Limit: 1})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		require.Len(t, entries, 1)
		assert.Equal(t, second, entries[0].ID)

		entries, _, err = repo.ListByAuthor(ctx, anna, model.EntryFilter{Limit: 1, Offset: 1})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, first, entries[0].ID)
	})

	t.Run("delete", func(t *testing.T) {
		defer testutil.Truncate(t, pool)

		authorID := testutil.InsertAuthor(t, pool, testutil.AuthorRow{Username: "anna"})
		entryID := testutil.InsertEntry(t, pool, authorID, "gone")

		require.NoError(t, repo.Delete(ctx, entryID))
		_, err := repo.GetByID(ctx, entryID)
		assert.ErrorIs(t, err, model.ErrEntryNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, entryID), model.ErrEntryNotFound)
	})

	t.Run("deleting the author removes entries and keeps tags", func(t *testing.T) {
		defer testutil.Truncate(t, pool)

		authors := authorRepo.NewPostgresRepository(pool, infraCache.NewRedisCache(miniredis.RunT(t).Addr(), "", 0))
		anna := testutil.InsertAuthor(t, pool, testutil.AuthorRow{Username: "anna"})
		boris := testutil.InsertAuthor(t, pool, testutil.AuthorRow{Username: "boris"})
		cinema := testutil.InsertTag(t, pool, "Кино")
		annaEntry := testutil.InsertEntry(t, pool, anna, "premiere", cinema)
		borisEntry := testutil.InsertEntry(t, pool, boris, "also cinema", cinema)

		require.NoError(t, authors.Delete(ctx, anna))

		_, err := repo.GetByID(ctx, annaEntry)
		assert.ErrorIs(t, err, model.ErrEntryNotFound)

		var tags int
		require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM tags WHERE id = $1`, cinema).Scan(&tags))
		assert.Equal(t, 1, tags)

		kept, err := repo.GetByID(ctx, borisEntry)
		require.NoError(t, err)
		require.Len(t, kept.Tags, 1)
		assert.Equal(t, cinema, kept.Tags[0].ID)
	})
}
