package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"dbtrain-backend/internal/domains/author/model"
	"dbtrain-backend/internal/domains/author/repository"
	"dbtrain-backend/internal/infrastructure/storage"
)

const imageKeyPrefix = "foto_profile"

type authorService struct {
	repo      repository.RepositoryInterface
	images    ImageStore
	processor ImageProcessor
	now       func() time.Time
}

func NewAuthorService(repo repository.RepositoryInterface, images ImageStore, processor ImageProcessor) ServiceInterface {
	return &authorService{
		repo:      repo,
		images:    images,
		processor: processor,
		now:       time.Now,
	}
}

// Create validates the request, checks uniqueness and stores the author with a fresh age
func (s *authorService) Create(ctx context.Context, req *model.CreateAuthorRequest) (*model.Author, error) {
	req.Normalize()

	now := s.now()
	if err := req.Validate(now); err != nil {
		return nil, err
	}

	a := req.ToEntity()
	if err := s.checkUnique(ctx, a, uuid.Nil); err != nil {
		return nil, err
	}

	a.RecomputeAge(now)

	created, err := s.repo.Create(ctx, a)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("author_id", created.ID.String()).
		Str("username", created.Username).
		Msg("Author created")
	return created, nil
}

func (s *authorService) GetByID(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	if id == uuid.Nil {
		return nil, model.ErrAuthorNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *authorService) GetByUsername(ctx context.Context, username string) (*model.Author, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, model.ErrAuthorNotFound
	}
	return s.repo.GetByUsername(ctx, username)
}

func (s *authorService) List(ctx context.Context, filter model.AuthorFilter) ([]model.Author, int64, error) {
	if err := filter.Normalize(); err != nil {
		return nil, 0, err
	}
	return s.repo.List(ctx, filter)
}

// Update applies a partial change; omitted fields keep their stored values
func (s *authorService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateAuthorRequest) (*model.Author, error) {
	if id == uuid.Nil {
		return nil, model.ErrAuthorNotFound
	}

	req.Normalize()

	now := s.now()
	if err := req.Validate(now); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	req.ApplyToEntity(existing)
	if err := s.checkUnique(ctx, existing, id); err != nil {
		return nil, err
	}

	existing.RecomputeAge(now)

	return s.repo.Update(ctx, existing)
}

// Delete removes the author; profile, entries and tag links go with it in the store
func (s *authorService) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return model.ErrAuthorNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.images.DeleteByPrefix(ctx, imagePrefix(id)); err != nil {
		log.Warn().Err(err).Str("author_id", id.String()).Msg("Failed to remove author photos")
	}
	return nil
}

// UploadImage stores a normalized JPEG under foto_profile/<author>/ and replaces the previous photo
func (s *authorService) UploadImage(ctx context.Context, id uuid.UUID, data []byte) (*model.Author, error) {
	if id == uuid.Nil {
		return nil, model.ErrAuthorNotFound
	}

	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	normalized, err := s.processor.Normalize(data)
	if err != nil {
		if errors.Is(err, storage.ErrUnsupportedImage) {
			return nil, model.ErrInvalidImage
		}
		return nil, fmt.Errorf("failed to process image: %w", err)
	}

	key := fmt.Sprintf("%s%s.jpg", imagePrefix(id), uuid.New())
	url, err := s.images.Upload(ctx, key, normalized, "image/jpeg")
	if err != nil {
		return nil, err
	}

	previous := a.Image
	a.Image = &key
	a.RecomputeAge(s.now())

	updated, err := s.repo.Update(ctx, a)
	if err != nil {
		if delErr := s.images.Delete(ctx, key); delErr != nil {
			log.Warn().Err(delErr).Str("key", key).Msg("Failed to remove orphaned photo")
		}
		return nil, err
	}

	if previous != nil && *previous != "" && *previous != key {
		if err := s.images.Delete(ctx, *previous); err != nil {
			log.Warn().Err(err).Str("key", *previous).Msg("Failed to remove previous photo")
		}
	}

	log.Info().
		Str("author_id", id.String()).
		Str("url", url).
		Int("bytes", len(normalized)).
		Msg("Author photo uploaded")
	return updated, nil
}

func (s *authorService) checkUnique(ctx context.Context, a *model.Author, excludeID uuid.UUID) error {
	conflicts, err := s.repo.UniqueConflicts(ctx, a, excludeID)
	if err != nil {
		return err
	}
	return conflicts.Err()
}

func imagePrefix(id uuid.UUID) string {
	return fmt.Sprintf("%s/%s/", imageKeyPrefix, id)
}
