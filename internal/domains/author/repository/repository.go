package repository

import (
	"context"

	"github.com/google/uuid"

	"dbtrain-backend/internal/domains/author/model"
)

// RepositoryInterface is the data access contract of the author domain
type RepositoryInterface interface {
	// Create inserts the author and returns it with id and timestamps.
	// Unique violations come back as field errors.
	Create(ctx context.Context, a *model.Author) (*model.Author, error)

	// GetByID returns model.ErrAuthorNotFound when missing
	GetByID(ctx context.Context, id uuid.UUID) (*model.Author, error)

	GetByUsername(ctx context.Context, username string) (*model.Author, error)

	// List returns a page of authors plus the total count
	List(ctx context.Context, filter model.AuthorFilter) ([]model.Author, int64, error)

	// Update persists every mutable column and refreshes updated_at
	Update(ctx context.Context, a *model.Author) (*model.Author, error)

	// Delete removes the author; profile and entries cascade in the database
	Delete(ctx context.Context, id uuid.UUID) error

	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)

	// UniqueConflicts reports which of username/email/phone are taken by an author other than excludeID
	UniqueConflicts(ctx context.Context, a *model.Author, excludeID uuid.UUID) (model.UniqueConflicts, error)
}
