package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authorModel "dbtrain-backend/internal/domains/author/model"
	"dbtrain-backend/internal/domains/entry/model"
	tagModel "dbtrain-backend/internal/domains/tag/model"
	"dbtrain-backend/internal/shared"
)

type mockRepository struct {
	createFunc       func(ctx context.Context, e *model.Entry, tagIDs []uuid.UUID) (*model.Entry, error)
	getByIDFunc      func(ctx context.Context, id uuid.UUID) (*model.Entry, error)
	listByAuthorFunc func(ctx context.Context, authorID uuid.UUID, filter model.EntryFilter) ([]model.Entry, int64, error)
	attachTagsFunc   func(ctx context.Context, entryID uuid.UUID, tagIDs []uuid.UUID) error
	detachTagFunc    func(ctx context.Context, entryID, tagID uuid.UUID) error
	deleteFunc       func(ctx context.Context, id uuid.UUID) error
}

func (m *mockRepository) Create(ctx context.Context, e *model.Entry, tagIDs []uuid.UUID) (*model.Entry, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, e, tagIDs)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Entry, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRepository) ListByAuthor(ctx context.Context, authorID uuid.UUID, filter model.EntryFilter) ([]model.Entry, int64, error) {
	if m.listByAuthorFunc != nil {
		return m.listByAuthorFunc(ctx, authorID, filter)
	}
	return nil, 0, errors.New("not implemented")
}

func (m *mockRepository) AttachTags(ctx context.Context, entryID uuid.UUID, tagIDs []uuid.UUID) error {
	if m.attachTagsFunc != nil {
		return m.attachTagsFunc(ctx, entryID, tagIDs)
	}
	return errors.New("not implemented")
}

func (m *mockRepository) DetachTag(ctx context.Context, entryID, tagID uuid.UUID) error {
	if m.detachTagFunc != nil {
		return m.detachTagFunc(ctx, entryID, tagID)
	}
	return errors.New("not implemented")
}

func (m *mockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return errors.New("not implemented")
}

type mockAuthors struct {
	exists bool
}

func (m *mockAuthors) ExistsByID(context.Context, uuid.UUID) (bool, error) {
	return m.exists, nil
}

func TestCreate_DeduplicatesTags(t *testing.T) {
	authorID, tagID := uuid.New(), uuid.New()
	var gotTags []uuid.UUID
	repo := &mockRepository{
		createFunc: func(_ context.Context, e *model.Entry, tagIDs []uuid.UUID) (*model.Entry, error) {
			gotTags = tagIDs
			e.ID = uuid.New()
			e.Tags = []tagModel.Tag{{ID: tagID, Name: "Кино"}}
			return e, nil
		},
	}
	svc := NewEntryService(repo, &mockAuthors{exists: true})

	entry, err := svc.Create(context.Background(), authorID, &model.CreateEntryRequest{
		Text:   "  review  ",
		TagIDs: []uuid.UUID{tagID, tagID},
	})

	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{tagID}, gotTags)
	assert.Equal(t, "review", entry.Text)
	assert.Equal(t, authorID, entry.AuthorID)
}

func TestCreate_MissingAuthor(t *testing.T) {
	svc := NewEntryService(&mockRepository{}, &mockAuthors{exists: false})

	_, err := svc.Create(context.Background(), uuid.New(), &model.CreateEntryRequest{Text: "x"})

	assert.ErrorIs(t, err, authorModel.ErrAuthorNotFound)
}

func TestCreate_BlankText(t *testing.T) {
	svc := NewEntryService(&mockRepository{}, &mockAuthors{exists: true})

	_, err := svc.Create(context.Background(), uuid.New(), &model.CreateEntryRequest{Text: " "})

	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestCreate_UnknownTag(t *testing.T) {
	repo := &mockRepository{
		createFunc: func(context.Context, *model.Entry, []uuid.UUID) (*model.Entry, error) {
			return nil, tagModel.ErrTagNotFound
		},
	}
	svc := NewEntryService(repo, &mockAuthors{exists: true})

	_, err := svc.Create(context.Background(), uuid.New(), &model.CreateEntryRequest{Text: "x", TagIDs: []uuid.UUID{uuid.New()}})

	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestListByAuthor(t *testing.T) {
	authorID := uuid.New()
	var gotFilter model.EntryFilter
	repo := &mockRepository{
		listByAuthorFunc: func(_ context.Context, _ uuid.UUID, filter model.EntryFilter) ([]model.Entry, int64, error) {
			gotFilter = filter
			return []model.Entry{}, 0, nil
		},
	}

	_, _, err := NewEntryService(repo, &mockAuthors{exists: true}).ListByAuthor(context.Background(), authorID, model.EntryFilter{})
	require.NoError(t, err)
	assert.Equal(t, 20, gotFilter.Limit)

	_, _, err = NewEntryService(repo, &mockAuthors{exists: false}).ListByAuthor(context.Background(), authorID, model.EntryFilter{})
	assert.ErrorIs(t, err, authorModel.ErrAuthorNotFound)
}

func TestAttachTags(t *testing.T) {
	entryID, tagA, tagB := uuid.New(), uuid.New(), uuid.New()
	var attached []uuid.UUID
	repo := &mockRepository{
		attachTagsFunc: func(_ context.Context, _ uuid.UUID, tagIDs []uuid.UUID) error {
			attached = tagIDs
			return nil
		},
		getByIDFunc: func(_ context.Context, id uuid.UUID) (*model.Entry, error) {
			return &model.Entry{ID: id, Tags: []tagModel.Tag{{ID: tagA}, {ID: tagB}}}, nil
		},
	}
	svc := NewEntryService(repo, &mockAuthors{exists: true})

	entry, err := svc.AttachTags(context.Background(), entryID, &model.AttachTagsRequest{TagIDs: []uuid.UUID{tagA, tagB, tagA}})

	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{tagA, tagB}, attached)
	assert.Len(t, entry.Tags, 2)

	_, err = svc.AttachTags(context.Background(), entryID, &model.AttachTagsRequest{})
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestDetachTagAndDelete(t *testing.T) {
	repo := &mockRepository{
		detachTagFunc: func(context.Context, uuid.UUID, uuid.UUID) error { return model.ErrEntryTagNotFound },
		deleteFunc:    func(context.Context, uuid.UUID) error { return nil },
	}
	svc := NewEntryService(repo, &mockAuthors{exists: true})

	assert.ErrorIs(t, svc.DetachTag(context.Background(), uuid.New(), uuid.New()), shared.ErrNotFound)
	assert.NoError(t, svc.Delete(context.Background(), uuid.New()))
	assert.ErrorIs(t, svc.Delete(context.Background(), uuid.Nil), model.ErrEntryNotFound)
}
