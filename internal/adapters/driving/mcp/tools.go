package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/rsvp-cli/internal/core/domain"
)

// SegmentTextInput is the input schema for the segment_text tool.
type SegmentTextInput struct {
	Text            string   `json:"text" jsonschema:"the Japanese text to split into reading segments"`
	MaxSegmentChars *float64 `json:"max_segment_chars,omitempty" jsonschema:"maximum characters per segment (6-32, default 16)"`
	MinJoinLength   *float64 `json:"min_join_length,omitempty" jsonschema:"fragments shorter than this are joined to a neighbour (default 4)"`
}

// SegmentTextOutput is the output schema for the segment_text tool.
type SegmentTextOutput struct {
	Segments        []SegmentOutput `json:"segments"`
	Count           int             `json:"count"`
	MaxSegmentChars int             `json:"max_segment_chars"`
	MinJoinLength   int             `json:"min_join_length"`
	Tokenizer       string          `json:"tokenizer"`
}

// SegmentOutput is a single reading segment.
type SegmentOutput struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

// ListDocumentsInput is the input schema for the list_documents tool.
type ListDocumentsInput struct{}

// ListDocumentsOutput is the output schema for the list_documents tool.
type ListDocumentsOutput struct {
	Documents []DocumentOutput `json:"documents"`
	Count     int              `json:"count"`
}

// DocumentOutput summarises a stored document.
type DocumentOutput struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	URI          string `json:"uri"`
	Kind         string `json:"kind"`
	SegmentCount int    `json:"segment_count"`
}

// GetSegmentsInput is the input schema for the get_segments tool.
type GetSegmentsInput struct {
	DocumentID string `json:"document_id" jsonschema:"the ID of a stored document"`
}

// GetSegmentsOutput is the output schema for the get_segments tool.
type GetSegmentsOutput struct {
	DocumentID string          `json:"document_id"`
	Segments   []SegmentOutput `json:"segments"`
	Count      int             `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "segment_text",
		Description: "Split Japanese text into short reading segments for rapid serial visual presentation",
	}, s.handleSegmentText)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_documents",
		Description: "List the documents stored in the rsvp library",
	}, s.handleListDocuments)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_segments",
		Description: "Get the stored reading segments of a document",
	}, s.handleGetSegments)
}

// handleSegmentText handles the segment_text tool invocation.
func (s *Server) handleSegmentText(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SegmentTextInput,
) (*mcp.CallToolResult, SegmentTextOutput, error) {
	override := &domain.SettingsOverride{
		MaxSegmentChars: input.MaxSegmentChars,
		MinJoinLength:   input.MinJoinLength,
	}

	result, err := s.ports.Segment.Segment(ctx, input.Text, override)
	if err != nil {
		return nil, SegmentTextOutput{}, err
	}

	return nil, SegmentTextOutput{
		Segments:        toSegmentOutputs(result.Segments),
		Count:           len(result.Segments),
		MaxSegmentChars: result.Settings.MaxSegmentChars,
		MinJoinLength:   result.Settings.MinJoinLength,
		Tokenizer:       result.Tokenizer,
	}, nil
}

// handleListDocuments handles the list_documents tool invocation.
func (s *Server) handleListDocuments(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListDocumentsInput,
) (*mcp.CallToolResult, ListDocumentsOutput, error) {
	if s.ports.Document == nil {
		return nil, ListDocumentsOutput{}, ErrDocumentsUnavailable
	}

	docs, err := s.ports.Document.List(ctx)
	if err != nil {
		return nil, ListDocumentsOutput{}, err
	}

	output := ListDocumentsOutput{
		Documents: make([]DocumentOutput, len(docs)),
		Count:     len(docs),
	}
	for i := range docs {
		output.Documents[i] = toDocumentOutput(&docs[i])
	}

	return nil, output, nil
}

// handleGetSegments handles the get_segments tool invocation.
func (s *Server) handleGetSegments(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetSegmentsInput,
) (*mcp.CallToolResult, GetSegmentsOutput, error) {
	if s.ports.Document == nil {
		return nil, GetSegmentsOutput{}, ErrDocumentsUnavailable
	}

	segments, err := s.ports.Document.Segments(ctx, input.DocumentID)
	if err != nil {
		return nil, GetSegmentsOutput{}, err
	}

	return nil, GetSegmentsOutput{
		DocumentID: input.DocumentID,
		Segments:   toSegmentOutputs(segments),
		Count:      len(segments),
	}, nil
}

func toSegmentOutputs(segments []domain.Segment) []SegmentOutput {
	out := make([]SegmentOutput, len(segments))
	for i, seg := range segments {
		out[i] = SegmentOutput{ID: seg.ID, Text: seg.Text}
	}
	return out
}

func toDocumentOutput(doc *domain.Document) DocumentOutput {
	return DocumentOutput{
		ID:           doc.ID,
		Title:        doc.Title,
		URI:          doc.URI,
		Kind:         doc.Kind.String(),
		SegmentCount: doc.SegmentCount,
	}
}
