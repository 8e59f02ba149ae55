package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	authorModel "dbtrain-backend/internal/domains/author/model"
	"dbtrain-backend/internal/domains/entry/model"
	"dbtrain-backend/internal/domains/entry/repository"
)

// ServiceInterface - entry business logic
type ServiceInterface interface {
	Create(ctx context.Context, authorID uuid.UUID, req *model.CreateEntryRequest) (*model.Entry, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Entry, error)
	ListByAuthor(ctx context.Context, authorID uuid.UUID, filter model.EntryFilter) ([]model.Entry, int64, error)
	AttachTags(ctx context.Context, entryID uuid.UUID, req *model.AttachTagsRequest) (*model.Entry, error)
	DetachTag(ctx context.Context, entryID, tagID uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// AuthorLookup is the part of the author repository the entry service needs
type AuthorLookup interface {
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
}

type entryService struct {
	repo    repository.RepositoryInterface
	authors AuthorLookup
}

func NewEntryService(repo repository.RepositoryInterface, authors AuthorLookup) ServiceInterface {
	return &entryService{
		repo:    repo,
		authors: authors,
	}
}

// Create stores an entry for an existing author, optionally tagged
func (s *entryService) Create(ctx context.Context, authorID uuid.UUID, req *model.CreateEntryRequest) (*model.Entry, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if err := s.requireAuthor(ctx, authorID); err != nil {
		return nil, err
	}

	entry, err := s.repo.Create(ctx, &model.Entry{
		AuthorID: authorID,
		Text:     strings.TrimSpace(req.Text),
	}, model.UniqueIDs(req.TagIDs))
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("entry_id", entry.ID.String()).
		Str("author_id", authorID.String()).
		Int("tags", len(entry.Tags)).
		Msg("Entry created")
	return entry, nil
}

func (s *entryService) GetByID(ctx context.Context, id uuid.UUID) (*model.Entry, error) {
	if id == uuid.Nil {
		return nil, model.ErrEntryNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// ListByAuthor returns a page of the author's entries, newest first
func (s *entryService) ListByAuthor(ctx context.Context, authorID uuid.UUID, filter model.EntryFilter) ([]model.Entry, int64, error) {
	if err := s.requireAuthor(ctx, authorID); err != nil {
		return nil, 0, err
	}

	filter.Normalize()
	return s.repo.ListByAuthor(ctx, authorID, filter)
}

func (s *entryService) AttachTags(ctx context.Context, entryID uuid.UUID, req *model.AttachTagsRequest) (*model.Entry, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.AttachTags(ctx, entryID, model.UniqueIDs(req.TagIDs)); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, entryID)
}

func (s *entryService) DetachTag(ctx context.Context, entryID, tagID uuid.UUID) error {
	return s.repo.DetachTag(ctx, entryID, tagID)
}

func (s *entryService) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return model.ErrEntryNotFound
	}
	return s.repo.Delete(ctx, id)
}

func (s *entryService) requireAuthor(ctx context.Context, authorID uuid.UUID) error {
	if authorID == uuid.Nil {
		return authorModel.ErrAuthorNotFound
	}
	exists, err := s.authors.ExistsByID(ctx, authorID)
	if err != nil {
		return err
	}
	if !exists {
		return authorModel.ErrAuthorNotFound
	}
	return nil
}
