package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestDocument_Fields tests Document structure fields
func TestDocument_Fields(t *testing.T) {
	now := time.Now()

	doc := Document{
		ID:           "doc-123",
		Title:        "吾輩は猫である",
		URI:          "/books/wagahai.txt",
		Kind:         DocumentKindText,
		Content:      "吾輩は猫である。名前はまだ無い。",
		Settings:     DefaultSegmentationSettings(),
		Dictionary:   DictionaryIPA,
		SegmentCount: 2,
		Metadata:     map[string]any{"author": "夏目漱石"},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	assert.Equal(t, "doc-123", doc.ID)
	assert.Equal(t, "吾輩は猫である", doc.Title)
	assert.Equal(t, DocumentKindText, doc.Kind)
	assert.Equal(t, 16, doc.Settings.MaxSegmentChars)
	assert.Equal(t, 2, doc.SegmentCount)
	assert.Equal(t, "夏目漱石", doc.Metadata["author"])
	assert.Equal(t, now, doc.CreatedAt)
}

func TestDocument_CanResegment(t *testing.T) {
	tests := []struct {
		name     string
		doc      Document
		expected bool
	}{
		{"text with content", Document{Kind: DocumentKindText, Content: "本文。"}, true},
		{"text without content", Document{Kind: DocumentKindText}, false},
		{"segment list", Document{Kind: DocumentKindSegmentList}, false},
		{"segment list with content", Document{Kind: DocumentKindSegmentList, Content: "x"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.doc.CanResegment())
		})
	}
}

func TestDocumentKind_IsValid(t *testing.T) {
	assert.True(t, DocumentKindText.IsValid())
	assert.True(t, DocumentKindSegmentList.IsValid())
	assert.False(t, DocumentKind("pdf").IsValid())
	assert.Equal(t, "segment_list", DocumentKindSegmentList.String())
}
