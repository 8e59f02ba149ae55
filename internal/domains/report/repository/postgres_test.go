package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dbtrain-backend/internal/domains/report/model"
	"dbtrain-backend/internal/testutil"
)

func TestSnapshotReader_EmptyDatabase(t *testing.T) {
	pool := testutil.SetupPostgres(t)
	testutil.Truncate(t, pool)
	ctx := context.Background()

	err := NewPostgresSnapshotSource(pool).Read(ctx, func(r Reader) error {
		names, err := r.TopSelfEsteemUsernames(ctx)
		require.NoError(t, err)
		assert.Empty(t, names)

		top, err := r.MostProlificAuthors(ctx)
		require.NoError(t, err)
		assert.Empty(t, top)

		agreement, err := r.RuleAgreement(ctx)
		require.NoError(t, err)
		assert.False(t, agreement.Defined)
		assert.Nil(t, agreement.Ratio)

		maxAge, err := r.MaxAge(ctx)
		require.NoError(t, err)
		assert.Nil(t, maxAge)
		return nil
	})
	require.NoError(t, err)
}

func TestSnapshotReader(t *testing.T) {
	pool := testutil.SetupPostgres(t)
	testutil.Truncate(t, pool)
	defer testutil.Truncate(t, pool)
	ctx := context.Background()

	anna := testutil.InsertAuthor(t, pool, testutil.AuthorRow{
		Username: "anna", Gender: "ж", SelfEsteem: "5.0", Phone: "+79001234567", Age: testutil.IntPtr(22), StatusRule: true,
	})
	boris := testutil.InsertAuthor(t, pool, testutil.AuthorRow{
		Username: "boris", Gender: "м", SelfEsteem: "5.0", Age: testutil.IntPtr(40),
	})
	vera := testutil.InsertAuthor(t, pool, testutil.AuthorRow{
		Username: "vera", Gender: "ж", SelfEsteem: "3.5", Age: testutil.IntPtr(25), StatusRule: true,
	})
	testutil.InsertAuthor(t, pool, testutil.AuthorRow{Username: "gleb", Gender: "м"})

	testutil.InsertProfile(t, pool, anna, 1)
	testutil.InsertProfile(t, pool, boris, 6)
	testutil.InsertProfile(t, pool, vera, 5)

	cinema := testutil.InsertTag(t, pool, "Кино")
	music := testutil.InsertTag(t, pool, "Музыка")
	other := testutil.InsertTag(t, pool, "Спорт")

	both := testutil.InsertEntry(t, pool, anna, "film with a soundtrack", cinema, music)
	testutil.InsertEntry(t, pool, anna, "match report", other)
	onlyMusic := testutil.InsertEntry(t, pool, boris, "album", music)
	testutil.InsertEntry(t, pool, boris, "untagged")

	err := NewPostgresSnapshotSource(pool).Read(ctx, func(r Reader) error {
		names, err := r.TopSelfEsteemUsernames(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"anna", "boris"}, names)

		top, err := r.MostProlificAuthors(ctx)
		require.NoError(t, err)
		require.Len(t, top, 2)
		assert.Equal(t, "anna", top[0].Username)
		assert.Equal(t, "boris", top[1].Username)
		assert.Equal(t, int64(2), top[0].Entries)

		tagged, err := r.EntriesTagged(ctx, model.TaggedNames...)
		require.NoError(t, err)
		require.Len(t, tagged, 2)
		ids := []any{tagged[0].ID, tagged[1].ID}
		assert.Contains(t, ids, both)
		assert.Contains(t, ids, onlyMusic)

		female, err := r.CountByGender(ctx, model.FemaleGender)
		require.NoError(t, err)
		assert.Equal(t, int64(2), female)

		agreement, err := r.RuleAgreement(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), agreement.Agreed)
		assert.Equal(t, int64(4), agreement.Total)
		require.NotNil(t, agreement.Ratio)
		assert.Equal(t, "0.5", agreement.Ratio.String())

		profiles, err := r.ProfilesByStage(ctx, model.StageMin, model.StageMax)
		require.NoError(t, err)
		require.Len(t, profiles, 2)
		assert.Equal(t, "anna", profiles[0].Username)
		assert.Equal(t, "vera", profiles[1].Username)

		maxAge, err := r.MaxAge(ctx)
		require.NoError(t, err)
		require.NotNil(t, maxAge)
		assert.Equal(t, 40, *maxAge)

		phones, err := r.CountWithPhone(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), phones)

		young, err := r.AuthorsYoungerThan(ctx, model.YoungAgeLimit)
		require.NoError(t, err)
		require.Len(t, young, 1)
		assert.Equal(t, "anna", young[0].Username)

		counts, err := r.EntryCountsPerAuthor(ctx)
		require.NoError(t, err)
		require.Len(t, counts, 4)
		got := make([]string, 0, len(counts))
		for _, c := range counts {
			got = append(got, c.Username)
		}
		assert.Equal(t, []string{"anna", "boris", "gleb", "vera"}, got)
		assert.Equal(t, int64(0), counts[3].Entries)
		return nil
	})
	require.NoError(t, err)
}
