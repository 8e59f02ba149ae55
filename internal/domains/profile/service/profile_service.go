package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	authorModel "dbtrain-backend/internal/domains/author/model"
	"dbtrain-backend/internal/domains/profile/model"
	"dbtrain-backend/internal/domains/profile/repository"
)

type profileService struct {
	repo    repository.RepositoryInterface
	authors AuthorLookup
}

func NewProfileService(repo repository.RepositoryInterface, authors AuthorLookup) ServiceInterface {
	return &profileService{
		repo:    repo,
		authors: authors,
	}
}

// Create links a new profile to an existing author that has none yet
func (s *profileService) Create(ctx context.Context, authorID uuid.UUID, req *model.CreateProfileRequest) (*model.Profile, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.authors.ExistsByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, authorModel.ErrAuthorNotFound
	}

	linked, err := s.repo.ExistsByAuthorID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if linked {
		return nil, model.ErrProfileExists
	}

	created, err := s.repo.Create(ctx, req.ToEntity(authorID))
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("author_id", authorID.String()).
		Int("stage", created.Stage).
		Msg("Author profile created")
	return created, nil
}

func (s *profileService) GetByAuthor(ctx context.Context, authorID uuid.UUID) (*model.Profile, error) {
	if authorID == uuid.Nil {
		return nil, model.ErrProfileNotFound
	}
	return s.repo.GetByAuthorID(ctx, authorID)
}

func (s *profileService) UpdateStage(ctx context.Context, authorID uuid.UUID, req *model.UpdateStageRequest) (*model.Profile, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.repo.UpdateStage(ctx, authorID, *req.Stage)
}
