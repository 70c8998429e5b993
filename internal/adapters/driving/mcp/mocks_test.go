package mcp

import (
	"context"

	"github.com/custodia-labs/rsvp-cli/internal/core/domain"
	"github.com/custodia-labs/rsvp-cli/internal/core/ports/driving"
)

// mockSegmentService is a mock implementation of driving.SegmentService.
type mockSegmentService struct {
	result   *driving.SegmentResult
	err      error
	text     string
	override *domain.SettingsOverride
}

func (m *mockSegmentService) Segment(
	_ context.Context,
	text string,
	override *domain.SettingsOverride,
) (*driving.SegmentResult, error) {
	m.text = text
	m.override = override
	return m.result, m.err
}

func (m *mockSegmentService) EffectiveSettings(override *domain.SettingsOverride) domain.SegmentationSettings {
	return domain.NormalizeSettings(override)
}

// mockDocumentService is a mock implementation of driving.DocumentService.
type mockDocumentService struct {
	documents []domain.Document
	segments  map[string][]domain.Segment
	err       error
}

func (m *mockDocumentService) Load(
	_ context.Context,
	_ *domain.RawDocument,
	_ *domain.SettingsOverride,
) (*driving.ImportResult, error) {
	return nil, m.err
}

func (m *mockDocumentService) Import(
	_ context.Context,
	_ *domain.RawDocument,
	_ *domain.SettingsOverride,
) (*driving.ImportResult, error) {
	return nil, m.err
}

func (m *mockDocumentService) List(_ context.Context) ([]domain.Document, error) {
	return m.documents, m.err
}

func (m *mockDocumentService) Get(_ context.Context, id string) (*domain.Document, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.documents {
		if m.documents[i].ID == id {
			return &m.documents[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockDocumentService) Segments(_ context.Context, id string) ([]domain.Segment, error) {
	if m.err != nil {
		return nil, m.err
	}
	segments, ok := m.segments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return segments, nil
}

func (m *mockDocumentService) Delete(_ context.Context, _ string) error {
	return m.err
}

func (m *mockDocumentService) Resegment(
	_ context.Context,
	_ string,
	_ *domain.SettingsOverride,
) (*driving.ImportResult, error) {
	return nil, m.err
}

func newLibrary() *mockDocumentService {
	return &mockDocumentService{
		documents: []domain.Document{
			{ID: "doc-1", Title: "吾輩は猫である", URI: "/books/neko.txt", Kind: domain.DocumentKindText, SegmentCount: 2},
			{ID: "doc-2", Title: "segments", URI: "/books/list.json", Kind: domain.DocumentKindSegmentList, SegmentCount: 1},
		},
		segments: map[string][]domain.Segment{
			"doc-1": domain.NewSegments([]string{"吾輩は猫である。", "名前はまだ無い。"}),
			"doc-2": domain.NewSegments([]string{"こんにちは"}),
		},
	}
}
