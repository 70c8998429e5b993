package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/custodia-labs/rsvp-cli/internal/core/domain"
	"github.com/custodia-labs/rsvp-cli/internal/core/ports/driven"
	"github.com/custodia-labs/rsvp-cli/internal/core/ports/driving"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService manages the library of stored segment lists.
type DocumentService struct {
	docStore    driven.DocumentStore
	normalisers driven.NormaliserRegistry
	segments    driving.SegmentService
	dictionary  domain.Dictionary
	logger      *zap.Logger
}

// NewDocumentService creates a new document service.
func NewDocumentService(
	docStore driven.DocumentStore,
	normalisers driven.NormaliserRegistry,
	segments driving.SegmentService,
	dictionary domain.Dictionary,
	logger *zap.Logger,
) *DocumentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DocumentService{
		docStore:    docStore,
		normalisers: normalisers,
		segments:    segments,
		dictionary:  dictionary,
		logger:      logger,
	}
}

// Load normalises a file and produces its segments without storing it.
func (s *DocumentService) Load(
	ctx context.Context,
	raw *domain.RawDocument,
	override *domain.SettingsOverride,
) (*driving.ImportResult, error) {
	if s.normalisers == nil {
		return nil, domain.ErrNotImplemented
	}

	normalised, err := s.normalisers.Normalise(ctx, raw)
	if err != nil {
		return nil, err
	}

	doc := normalised.Document
	segments := normalised.Segments
	if doc.Kind == domain.DocumentKindText {
		if s.segments == nil {
			return nil, domain.ErrNotImplemented
		}
		result, err := s.segments.Segment(ctx, doc.Content, override)
		if err != nil {
			return nil, err
		}
		segments = result.Segments
		doc.Settings = result.Settings
		doc.Dictionary = s.dictionary
	}
	doc.SegmentCount = len(segments)

	return &driving.ImportResult{Document: doc, Segments: segments}, nil
}

// Import normalises a file and stores it with its segments.
func (s *DocumentService) Import(
	ctx context.Context,
	raw *domain.RawDocument,
	override *domain.SettingsOverride,
) (*driving.ImportResult, error) {
	if s.docStore == nil {
		return nil, domain.ErrNotImplemented
	}

	result, err := s.Load(ctx, raw, override)
	if err != nil {
		return nil, err
	}

	if err := s.store(ctx, &result.Document, result.Segments); err != nil {
		return nil, err
	}

	s.logger.Info("imported document",
		zap.String("id", result.Document.ID),
		zap.String("kind", result.Document.Kind.String()),
		zap.Int("segments", len(result.Segments)))

	return result, nil
}

// List returns every stored document.
func (s *DocumentService) List(ctx context.Context) ([]domain.Document, error) {
	if s.docStore == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.docStore.ListDocuments(ctx)
}

// Get retrieves a document by ID.
func (s *DocumentService) Get(ctx context.Context, documentID string) (*domain.Document, error) {
	if s.docStore == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.docStore.GetDocument(ctx, documentID)
}

// Segments returns the stored segments of a document.
func (s *DocumentService) Segments(ctx context.Context, documentID string) ([]domain.Segment, error) {
	if s.docStore == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.docStore.GetSegments(ctx, documentID)
}

// Delete removes a document and its segments.
func (s *DocumentService) Delete(ctx context.Context, documentID string) error {
	if s.docStore == nil {
		return domain.ErrNotImplemented
	}
	return s.docStore.DeleteDocument(ctx, documentID)
}

// Resegment segments a stored text again with new settings.
func (s *DocumentService) Resegment(
	ctx context.Context,
	documentID string,
	override *domain.SettingsOverride,
) (*driving.ImportResult, error) {
	if s.docStore == nil || s.segments == nil {
		return nil, domain.ErrNotImplemented
	}

	doc, err := s.docStore.GetDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if !doc.CanResegment() {
		return nil, fmt.Errorf("document %s has no raw text to segment: %w", documentID, domain.ErrInvalidInput)
	}

	result, err := s.segments.Segment(ctx, doc.Content, override)
	if err != nil {
		return nil, err
	}

	doc.Settings = result.Settings
	doc.Dictionary = s.dictionary
	doc.UpdatedAt = time.Now()
	if err := s.store(ctx, doc, result.Segments); err != nil {
		return nil, err
	}

	return &driving.ImportResult{Document: *doc, Segments: result.Segments}, nil
}

// store saves a document and replaces its segments.
func (s *DocumentService) store(ctx context.Context, doc *domain.Document, segments []domain.Segment) error {
	doc.SegmentCount = len(segments)
	if err := s.docStore.SaveDocument(ctx, doc); err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	if err := s.docStore.SaveSegments(ctx, doc.ID, segments); err != nil {
		return fmt.Errorf("save segments: %w", err)
	}
	return nil
}
