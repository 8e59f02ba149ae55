package service

import (
	"context"

	"github.com/google/uuid"

	"dbtrain-backend/internal/domains/profile/model"
)

// ServiceInterface - author profile business logic
type ServiceInterface interface {
	Create(ctx context.Context, authorID uuid.UUID, req *model.CreateProfileRequest) (*model.Profile, error)
	GetByAuthor(ctx context.Context, authorID uuid.UUID) (*model.Profile, error)
	UpdateStage(ctx context.Context, authorID uuid.UUID, req *model.UpdateStageRequest) (*model.Profile, error)
}

// AuthorLookup is the part of the author repository the profile service needs
type AuthorLookup interface {
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
}
