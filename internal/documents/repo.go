package documents

import (
	"context"
	"time"
)

// ListFilter narrows ListByOwner. Zero values mean "no filtering".
type ListFilter struct {
	Category string
	Search   string
}

// Repo persists document metadata.
type Repo interface {
	Create(ctx context.Context, doc Document) error
	GetByID(ctx context.Context, id string) (Document, error)
	ListByOwner(ctx context.Context, ownerID string, filter ListFilter) ([]Document, error)
	Update(ctx context.Context, doc Document) error
	UpdateExtraction(ctx context.Context, id, extractedText, category string, updatedAt time.Time) error
	Delete(ctx context.Context, id string) error
}
