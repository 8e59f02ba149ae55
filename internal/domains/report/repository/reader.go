package repository

import (
	"context"

	entryModel "dbtrain-backend/internal/domains/entry/model"
	"dbtrain-backend/internal/domains/report/model"
)

// Reader runs the report queries; every call on one Reader sees the same snapshot
type Reader interface {
	TopSelfEsteemUsernames(ctx context.Context) ([]string, error)
	MostProlificAuthors(ctx context.Context) ([]model.AuthorEntryCount, error)
	EntriesTagged(ctx context.Context, names ...string) ([]entryModel.Entry, error)
	CountByGender(ctx context.Context, gender string) (int64, error)
	RuleAgreement(ctx context.Context) (model.RuleAgreement, error)
	ProfilesByStage(ctx context.Context, min, max int) ([]model.ProfileStage, error)
	MaxAge(ctx context.Context) (*int, error)
	CountWithPhone(ctx context.Context) (int64, error)
	AuthorsYoungerThan(ctx context.Context, age int) ([]model.AuthorAge, error)
	EntryCountsPerAuthor(ctx context.Context) ([]model.AuthorEntryCount, error)
}

// SnapshotSource opens a read-only snapshot and hands a Reader bound to it to fn
type SnapshotSource interface {
	Read(ctx context.Context, fn func(Reader) error) error
}
