package service

import (
	"context"

	"github.com/google/uuid"

	"dbtrain-backend/internal/domains/author/model"
)

// ServiceInterface - author business logic
type ServiceInterface interface {
	Create(ctx context.Context, req *model.CreateAuthorRequest) (*model.Author, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Author, error)
	GetByUsername(ctx context.Context, username string) (*model.Author, error)
	List(ctx context.Context, filter model.AuthorFilter) ([]model.Author, int64, error)
	Update(ctx context.Context, id uuid.UUID, req *model.UpdateAuthorRequest) (*model.Author, error)
	Delete(ctx context.Context, id uuid.UUID) error
	UploadImage(ctx context.Context, id uuid.UUID, data []byte) (*model.Author, error)
}

// ImageStore is the object storage used for author photos (MinIO in production)
type ImageStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	DeleteByPrefix(ctx context.Context, prefix string) error
}

// ImageProcessor validates and re-encodes an uploaded photo
type ImageProcessor interface {
	Normalize(data []byte) ([]byte, error)
}
