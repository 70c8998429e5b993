package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/rsvp-cli/internal/core/domain"
	"github.com/custodia-labs/rsvp-cli/internal/logger"
	"github.com/custodia-labs/rsvp-cli/internal/normalisers"
)

// stdinPath names standard input on the command line.
const stdinPath = "-"

// readInput reads a file, or stdin when path is empty or "-".
func readInput(cmd *cobra.Command, path string) (*domain.RawDocument, error) {
	if path == "" || path == stdinPath {
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return &domain.RawDocument{
			URI:      stdinPath,
			MIMEType: domain.MIMETypeText,
			Content:  content,
		}, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	mimeType := normalisers.DetectMIMEType(path)
	logger.Debug("read %s (%d bytes, %s)", path, len(content), mimeType)

	return &domain.RawDocument{
		URI:      path,
		MIMEType: mimeType,
		Content:  content,
		Metadata: map[string]any{"file_name": filepath.Base(path)},
	}, nil
}

// addSettingsFlags registers the segmentation override flags.
func addSettingsFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("max", 0,
		fmt.Sprintf("Maximum characters per segment, %d-%d (default from settings)",
			domain.MinMaxSegmentChars, domain.MaxMaxSegmentChars))
	cmd.Flags().Float64("min-join", 0,
		"Fragments shorter than this join a neighbour (default from settings)")
}

// overrideFromFlags returns an override holding only the flags that were set.
func overrideFromFlags(cmd *cobra.Command) (*domain.SettingsOverride, error) {
	override := &domain.SettingsOverride{}

	if cmd.Flags().Changed("max") {
		v, err := cmd.Flags().GetFloat64("max")
		if err != nil {
			return nil, fmt.Errorf("getting max flag: %w", err)
		}
		override.MaxSegmentChars = &v
	}
	if cmd.Flags().Changed("min-join") {
		v, err := cmd.Flags().GetFloat64("min-join")
		if err != nil {
			return nil, fmt.Errorf("getting min-join flag: %w", err)
		}
		override.MinJoinLength = &v
	}

	return override, nil
}

// warnIfEmpty prints the empty-result warning and reports whether it did.
func warnIfEmpty(cmd *cobra.Command, segments []domain.Segment) bool {
	if len(segments) > 0 {
		return false
	}
	cmd.PrintErrln("Warning: could not extract meaningful segments from the text.")
	return true
}
