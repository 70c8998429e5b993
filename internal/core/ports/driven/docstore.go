package driven

import (
	"context"

	"github.com/custodia-labs/rsvp-cli/internal/core/domain"
)

// DocumentStore persists documents and their segment lists.
// Backed by SQLite for metadata storage.
type DocumentStore interface {
	// SaveDocument stores or updates a document.
	SaveDocument(ctx context.Context, doc *domain.Document) error

	// GetDocument retrieves a document by ID.
	GetDocument(ctx context.Context, id string) (*domain.Document, error)

	// ListDocuments returns all documents, most recently updated first.
	ListDocuments(ctx context.Context) ([]domain.Document, error)

	// DeleteDocument removes a document and its segments.
	DeleteDocument(ctx context.Context, id string) error

	// SaveSegments replaces the segment list of a document.
	SaveSegments(ctx context.Context, documentID string, segments []domain.Segment) error

	// GetSegments retrieves the segment list of a document in ID order.
	GetSegments(ctx context.Context, documentID string) ([]domain.Segment, error)
}
