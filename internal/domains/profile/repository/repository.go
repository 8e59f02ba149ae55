package repository

import (
	"context"

	"github.com/google/uuid"

	"dbtrain-backend/internal/domains/profile/model"
)

// RepositoryInterface - data access for author profiles
type RepositoryInterface interface {
	Create(ctx context.Context, p *model.Profile) (*model.Profile, error)
	GetByAuthorID(ctx context.Context, authorID uuid.UUID) (*model.Profile, error)
	ExistsByAuthorID(ctx context.Context, authorID uuid.UUID) (bool, error)
	UpdateStage(ctx context.Context, authorID uuid.UUID, stage int) (*model.Profile, error)
}
