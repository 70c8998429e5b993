package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/rsvp-cli/internal/core/domain"
	"github.com/custodia-labs/rsvp-cli/internal/logger"
	"github.com/custodia-labs/rsvp-cli/internal/normalisers/segmentjson"
)

// watchDebounce coalesces the burst of events editors emit on save.
const watchDebounce = 150 * time.Millisecond

var segmentCmd = &cobra.Command{
	Use:   "segment [file|-]",
	Short: "Split a text into reading segments",
	Long: `Split a Japanese text into reading segments and print them.

The input may be a .txt or .md file, a JSON segment list, or "-" (the
default) for standard input. Segments are printed one per line unless
--json is given.

Examples:
  rsvp segment book.txt
  echo "今日は晴れです。明日は雨。" | rsvp segment --max 12
  rsvp segment book.txt --json --out rsvp-segments.json
  rsvp segment draft.md --watch`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSegment,
}

func init() {
	addSettingsFlags(segmentCmd)
	segmentCmd.Flags().Bool("json", false, "Print segments as a JSON array")
	segmentCmd.Flags().Bool("with-ids", false, "Write {id,text} objects instead of plain strings")
	segmentCmd.Flags().StringP("out", "o", "", "Write the JSON segment list to a file")
	segmentCmd.Flags().BoolP("watch", "w", false, "Segment again whenever the file changes")
	segmentCmd.Flags().Bool("save", false, "Store the text and its segments in the library (not with --watch)")
	rootCmd.AddCommand(segmentCmd)
}

// segmentOptions holds the output flags of the segment command.
type segmentOptions struct {
	asJSON  bool
	withIDs bool
	out     string
	save    bool
}

func runSegment(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errNoDocumentService
	}

	path := stdinPath
	if len(args) == 1 {
		path = args[0]
	}

	override, err := overrideFromFlags(cmd)
	if err != nil {
		return err
	}

	opts := segmentOptions{}
	opts.asJSON, _ = cmd.Flags().GetBool("json")
	opts.withIDs, _ = cmd.Flags().GetBool("with-ids")
	opts.out, _ = cmd.Flags().GetString("out")
	opts.save, _ = cmd.Flags().GetBool("save")
	watch, _ := cmd.Flags().GetBool("watch")

	if watch && path == stdinPath {
		return fmt.Errorf("--watch needs a file path")
	}
	if watch && opts.save {
		return fmt.Errorf("--save cannot be combined with --watch")
	}

	run := func() error {
		return segmentOnce(cmd, path, override, opts)
	}
	if err := run(); err != nil {
		return err
	}
	if !watch {
		return nil
	}

	cmd.PrintErrf("Watching %s for changes (Ctrl+C to stop)\n", path)
	return watchFile(cmd.Context(), path, func(change domain.ChangeType) error {
		cmd.PrintErrf("\n--- %s %s ---\n", path, change)
		if change == domain.ChangeDeleted {
			return nil
		}
		return run()
	}, cmd.ErrOrStderr())
}

func segmentOnce(cmd *cobra.Command, path string, override *domain.SettingsOverride, opts segmentOptions) error {
	raw, err := readInput(cmd, path)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	logger.Section("Segmentation")
	start := time.Now()

	load := documentService.Load
	if opts.save {
		load = documentService.Import
	}
	result, err := load(ctx, raw, override)
	if err != nil {
		return fmt.Errorf("failed to segment %s: %w", displayPath(path), err)
	}

	logger.Debug("%d segments in %s (max %d, min join %d)",
		len(result.Segments), time.Since(start),
		result.Document.Settings.MaxSegmentChars, result.Document.Settings.MinJoinLength)

	if warnIfEmpty(cmd, result.Segments) {
		return nil
	}

	format := segmentjson.ExportFlat
	if opts.withIDs {
		format = segmentjson.ExportWithIDs
	}

	switch {
	case opts.asJSON:
		if err := segmentjson.Export(cmd.OutOrStdout(), result.Segments, format); err != nil {
			return fmt.Errorf("failed to write JSON: %w", err)
		}
	default:
		printSegments(cmd.OutOrStdout(), result.Segments)
	}

	if opts.out != "" {
		if err := writeSegmentFile(opts.out, result.Segments, format); err != nil {
			return err
		}
		cmd.PrintErrf("Wrote %d segments to %s\n", len(result.Segments), opts.out)
	}

	if opts.save {
		cmd.PrintErrf("Saved as %s\n", result.Document.ID)
	}
	return nil
}

func printSegments(w io.Writer, segments []domain.Segment) {
	for _, seg := range segments {
		fmt.Fprintln(w, seg.Text)
	}
}

func writeSegmentFile(path string, segments []domain.Segment, format segmentjson.ExportFormat) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := segmentjson.Export(f, segments, format); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func displayPath(path string) string {
	if path == stdinPath {
		return "stdin"
	}
	return path
}

// watchFile calls onChange with the last change seen to path once events
// settle, until ctx is done. The parent directory is watched so editors
// that replace the file on save are still seen. Errors from onChange are
// reported and watching continues.
func watchFile(ctx context.Context, path string, onChange func(domain.ChangeType) error, errOut io.Writer) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}

	var (
		pending <-chan time.Time
		last    domain.ChangeType
	)
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			change, ok := changeOf(event)
			if !ok {
				continue
			}
			last = change
			pending = time.After(watchDebounce)

		case <-pending:
			pending = nil
			if err := onChange(last); err != nil {
				fmt.Fprintf(errOut, "Error: %v\n", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(errOut, "Watch error: %v\n", err)
		}
	}
}

// changeOf maps a filesystem event to a change type. Chmod alone is ignored.
func changeOf(event fsnotify.Event) (domain.ChangeType, bool) {
	switch {
	case event.Has(fsnotify.Create):
		return domain.ChangeCreated, true
	case event.Has(fsnotify.Write):
		return domain.ChangeUpdated, true
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return domain.ChangeDeleted, true
	default:
		return 0, false
	}
}
