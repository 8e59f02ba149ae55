package repository

import (
	"context"

	"github.com/google/uuid"

	"dbtrain-backend/internal/domains/tag/model"
)

type RepositoryInterface interface {
	Create(ctx context.Context, t *model.Tag) (*model.Tag, error)
	List(ctx context.Context) ([]model.Tag, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
