package service

import (
	"context"

	"github.com/google/uuid"

	"dbtrain-backend/internal/domains/tag/model"
	"dbtrain-backend/internal/domains/tag/repository"
)

type ServiceInterface interface {
	Create(ctx context.Context, req *model.CreateTagRequest) (*model.Tag, error)
	List(ctx context.Context) ([]model.Tag, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type tagService struct {
	repo repository.RepositoryInterface
}

func NewTagService(repo repository.RepositoryInterface) ServiceInterface {
	return &tagService{repo: repo}
}

// Create stores a tag; duplicate names are allowed
func (s *tagService) Create(ctx context.Context, req *model.CreateTagRequest) (*model.Tag, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, &model.Tag{Name: req.Name})
}

func (s *tagService) List(ctx context.Context) ([]model.Tag, error) {
	return s.repo.List(ctx)
}

func (s *tagService) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return model.ErrTagNotFound
	}
	return s.repo.Delete(ctx, id)
}
