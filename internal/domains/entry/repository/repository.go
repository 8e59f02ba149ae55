package repository

import (
	"context"

	"github.com/google/uuid"

	"dbtrain-backend/internal/domains/entry/model"
)

// RepositoryInterface - data access for entries and their tag links
type RepositoryInterface interface {
	// Create inserts the entry and its tag links in one transaction
	Create(ctx context.Context, e *model.Entry, tagIDs []uuid.UUID) (*model.Entry, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Entry, error)
	ListByAuthor(ctx context.Context, authorID uuid.UUID, filter model.EntryFilter) ([]model.Entry, int64, error)
	AttachTags(ctx context.Context, entryID uuid.UUID, tagIDs []uuid.UUID) error
	DetachTag(ctx context.Context, entryID, tagID uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}
