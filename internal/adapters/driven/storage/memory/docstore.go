package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/rsvp-cli/internal/core/domain"
	"github.com/custodia-labs/rsvp-cli/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is an in-memory implementation of driven.DocumentStore.
// It backs tests and the MCP server when no library is configured.
type DocumentStore struct {
	mu        sync.RWMutex
	documents map[string]domain.Document
	segments  map[string][]domain.Segment
}

// NewDocumentStore creates a new in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		documents: make(map[string]domain.Document),
		segments:  make(map[string][]domain.Segment),
	}
}

// SaveDocument stores or updates a document.
func (s *DocumentStore) SaveDocument(_ context.Context, doc *domain.Document) error {
	if doc == nil || doc.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *doc
	if existing, ok := s.documents[doc.ID]; ok {
		stored.CreatedAt = existing.CreatedAt
	}
	s.documents[doc.ID] = stored
	return nil
}

// GetDocument retrieves a document by ID.
func (s *DocumentStore) GetDocument(_ context.Context, id string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.documents[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

// ListDocuments returns all documents, most recently updated first.
func (s *DocumentStore) ListDocuments(_ context.Context) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]domain.Document, 0, len(s.documents))
	for _, doc := range s.documents {
		docs = append(docs, doc)
	}
	sort.Slice(docs, func(i, j int) bool {
		if !docs[i].UpdatedAt.Equal(docs[j].UpdatedAt) {
			return docs[i].UpdatedAt.After(docs[j].UpdatedAt)
		}
		return docs[i].ID < docs[j].ID
	})
	return docs, nil
}

// DeleteDocument removes a document and its segments.
func (s *DocumentStore) DeleteDocument(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.documents[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.documents, id)
	delete(s.segments, id)
	return nil
}

// SaveSegments replaces the segment list of a document.
func (s *DocumentStore) SaveSegments(_ context.Context, documentID string, segments []domain.Segment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.documents[documentID]
	if !ok {
		return domain.ErrNotFound
	}
	s.segments[documentID] = domain.Renumber(segments)
	doc.SegmentCount = len(segments)
	s.documents[documentID] = doc
	return nil
}

// GetSegments retrieves the segment list of a document.
func (s *DocumentStore) GetSegments(_ context.Context, documentID string) ([]domain.Segment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.documents[documentID]; !ok {
		return nil, domain.ErrNotFound
	}
	return domain.Renumber(s.segments[documentID]), nil
}
