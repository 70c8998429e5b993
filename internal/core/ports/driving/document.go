package driving

import (
	"context"

	"github.com/custodia-labs/rsvp-cli/internal/core/domain"
)

// DocumentService manages the library of stored segment lists.
type DocumentService interface {
	// Load normalises a file and produces its segments without storing it.
	Load(ctx context.Context, raw *domain.RawDocument, override *domain.SettingsOverride) (*ImportResult, error)

	// Import normalises a file and stores it with its segments.
	// Text files are segmented with override; segment lists are stored as-is.
	Import(ctx context.Context, raw *domain.RawDocument, override *domain.SettingsOverride) (*ImportResult, error)

	// List returns every stored document, most recently updated first.
	List(ctx context.Context) ([]domain.Document, error)

	// Get retrieves a document by ID.
	Get(ctx context.Context, documentID string) (*domain.Document, error)

	// Segments returns the stored segments of a document.
	Segments(ctx context.Context, documentID string) ([]domain.Segment, error)

	// Delete removes a document and its segments.
	Delete(ctx context.Context, documentID string) error

	// Resegment segments a stored text again with new settings and replaces
	// its segments. Imported segment lists fail with domain.ErrInvalidInput.
	Resegment(ctx context.Context, documentID string, override *domain.SettingsOverride) (*ImportResult, error)
}

// ImportResult is a stored document with its segments.
type ImportResult struct {
	// Document is the stored document.
	Document domain.Document

	// Segments is the stored segment list.
	Segments []domain.Segment
}
