package cli

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/rsvp-cli/internal/core/domain"
	"github.com/custodia-labs/rsvp-cli/internal/normalisers/segmentjson"
)

const timeFormat = "2006-01-02 15:04:05"

var documentCmd = &cobra.Command{
	Use:     "document",
	Aliases: []string{"doc"},
	Short:   "Manage stored documents",
	Long:    `List, view, export, re-segment or delete documents in the library.`,
}

var documentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored documents",
	Args:  cobra.NoArgs,
	RunE:  runDocumentList,
}

var documentShowCmd = &cobra.Command{
	Use:   "show [doc-id]",
	Short: "Show document info",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentShow,
}

var documentSegmentsCmd = &cobra.Command{
	Use:   "segments [doc-id]",
	Short: "Print the segments of a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentSegments,
}

var documentExportCmd = &cobra.Command{
	Use:   "export [doc-id]",
	Short: "Export segments as JSON",
	Long: `Export the segments of a document as a JSON array of strings, the
format accepted by "rsvp import". Use --with-ids to write {id,text} objects.`,
	Args: cobra.ExactArgs(1),
	RunE: runDocumentExport,
}

var documentApplyCmd = &cobra.Command{
	Use:   "apply [doc-id]",
	Short: "Segment a stored text again with new settings",
	Long: `Segment the stored text of a document again and replace its segments.

Only documents imported from text can be re-segmented; imported JSON
segment lists have no text to work from.`,
	Args: cobra.ExactArgs(1),
	RunE: runDocumentApply,
}

var documentDeleteCmd = &cobra.Command{
	Use:   "delete [doc-id]",
	Short: "Delete a document and its segments",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentDelete,
}

func init() {
	documentExportCmd.Flags().StringP("out", "o", "", "Write to a file instead of stdout (e.g. "+segmentjson.DefaultFileName+")")
	documentExportCmd.Flags().Bool("with-ids", false, "Write {id,text} objects instead of plain strings")
	addSettingsFlags(documentApplyCmd)

	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentShowCmd)
	documentCmd.AddCommand(documentSegmentsCmd)
	documentCmd.AddCommand(documentExportCmd)
	documentCmd.AddCommand(documentApplyCmd)
	documentCmd.AddCommand(documentDeleteCmd)
	rootCmd.AddCommand(documentCmd)
}

func runDocumentList(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errNoDocumentService
	}

	docs, err := documentService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if len(docs) == 0 {
		cmd.Println("No documents stored. Use 'rsvp import FILE' to add one.")
		return nil
	}

	cmd.Println("Documents:")
	cmd.Println()
	for i := range docs {
		cmd.Printf("  %s\n", docs[i].ID)
		cmd.Printf("    Title:    %s\n", docs[i].Title)
		cmd.Printf("    Kind:     %s\n", docs[i].Kind)
		cmd.Printf("    Segments: %d\n", docs[i].SegmentCount)
		cmd.Println()
	}

	cmd.Printf("Total: %d documents\n", len(docs))
	return nil
}

func runDocumentShow(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errNoDocumentService
	}

	doc, err := documentService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	cmd.Printf("Document: %s\n\n", doc.ID)
	cmd.Printf("  Title:    %s\n", doc.Title)
	if doc.URI != "" {
		cmd.Printf("  URI:      %s\n", doc.URI)
	}
	cmd.Printf("  Kind:     %s\n", doc.Kind)
	cmd.Printf("  Segments: %d\n", doc.SegmentCount)
	if doc.Kind == domain.DocumentKindText {
		cmd.Printf("  Settings: max %d, min join %d\n", doc.Settings.MaxSegmentChars, doc.Settings.MinJoinLength)
		cmd.Printf("  Tokenizer dictionary: %s\n", doc.Dictionary)
	}
	cmd.Printf("  Created:  %s\n", doc.CreatedAt.Format(timeFormat))
	cmd.Printf("  Updated:  %s\n", doc.UpdatedAt.Format(timeFormat))

	if len(doc.Metadata) > 0 {
		cmd.Println("\n  Metadata:")
		keys := make([]string, 0, len(doc.Metadata))
		for k := range doc.Metadata {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			cmd.Printf("    %s: %v\n", k, doc.Metadata[k])
		}
	}

	return nil
}

func runDocumentSegments(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errNoDocumentService
	}

	segments, err := documentService.Segments(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get segments: %w", err)
	}

	for _, seg := range segments {
		cmd.Printf("%4d  %s\n", seg.ID, seg.Text)
	}
	return nil
}

func runDocumentExport(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errNoDocumentService
	}

	segments, err := documentService.Segments(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get segments: %w", err)
	}

	format := segmentjson.ExportFlat
	if withIDs, _ := cmd.Flags().GetBool("with-ids"); withIDs {
		format = segmentjson.ExportWithIDs
	}

	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		return segmentjson.Export(cmd.OutOrStdout(), segments, format)
	}

	if err := writeSegmentFile(out, segments, format); err != nil {
		return err
	}
	cmd.Printf("Wrote %d segments to %s\n", len(segments), out)
	return nil
}

func runDocumentApply(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errNoDocumentService
	}

	override, err := overrideFromFlags(cmd)
	if err != nil {
		return err
	}

	result, err := documentService.Resegment(cmd.Context(), args[0], override)
	if errors.Is(err, domain.ErrInvalidInput) {
		return fmt.Errorf("failed to apply settings: document %s is an imported segment list: %w", args[0], err)
	}
	if err != nil {
		return fmt.Errorf("failed to apply settings: %w", err)
	}

	cmd.Printf("Re-segmented %s\n", result.Document.Title)
	cmd.Printf("  Settings: max %d, min join %d\n",
		result.Document.Settings.MaxSegmentChars, result.Document.Settings.MinJoinLength)
	cmd.Printf("  Segments: %d\n", len(result.Segments))
	warnIfEmpty(cmd, result.Segments)
	return nil
}

func runDocumentDelete(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errNoDocumentService
	}

	if err := documentService.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	cmd.Printf("Deleted document: %s\n", args[0])
	return nil
}
