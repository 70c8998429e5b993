package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/rsvp-cli/internal/adapters/driving/tui"
	"github.com/custodia-labs/rsvp-cli/internal/core/domain"
)

var playCmd = &cobra.Command{
	Use:   "play [doc-id|file|-]",
	Short: "Present segments one at a time",
	Long: `Present a text one segment at a time at a fixed interval.

The argument may be the ID of a stored document, a file to segment, or
"-" (the default) for standard input.

On a terminal the interactive reader starts:
  space   - Play / pause (plays again from the start when finished)
  ←/→     - Previous / next segment
  +/-     - Faster / slower
  r       - Restart
  ?       - Toggle help
  q       - Quit

With --plain, or when output is not a terminal, segments are printed one
per line at the playback interval.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	addSettingsFlags(playCmd)
	playCmd.Flags().Bool("plain", false, "Print segments line by line instead of starting the reader")
	playCmd.Flags().Int("interval", 0, "Milliseconds each segment is shown (default from settings)")
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	if player == nil {
		return errors.New("player not configured")
	}
	if documentService == nil {
		return errNoDocumentService
	}

	target := stdinPath
	if len(args) == 1 {
		target = args[0]
	}

	segments, title, err := loadForPlay(cmd, target)
	if err != nil {
		return err
	}
	if warnIfEmpty(cmd, segments) {
		return fmt.Errorf("failed to play: %w", domain.ErrNoSegments)
	}

	player.Load(segments)
	if cmd.Flags().Changed("interval") {
		ms, _ := cmd.Flags().GetInt("interval")
		player.SetInterval(time.Duration(ms) * time.Millisecond)
	}

	plain, _ := cmd.Flags().GetBool("plain")
	if !plain && isTerminal(cmd.OutOrStdout()) {
		return tui.Run(cmd.Context(), tui.NewPorts(player, settingsService), title)
	}
	return playPlain(cmd, title)
}

// loadForPlay resolves target as a file path, stdin or a stored document ID.
func loadForPlay(cmd *cobra.Command, target string) ([]domain.Segment, string, error) {
	ctx := cmd.Context()

	if target == stdinPath || isFile(target) {
		override, err := overrideFromFlags(cmd)
		if err != nil {
			return nil, "", err
		}
		raw, err := readInput(cmd, target)
		if err != nil {
			return nil, "", err
		}
		result, err := documentService.Load(ctx, raw, override)
		if err != nil {
			return nil, "", fmt.Errorf("failed to segment %s: %w", displayPath(target), err)
		}
		return result.Segments, result.Document.Title, nil
	}

	doc, err := documentService.Get(ctx, target)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get document: %w", err)
	}
	segments, err := documentService.Segments(ctx, doc.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get segments: %w", err)
	}
	return segments, doc.Title, nil
}

// playPlain prints each segment as it is shown.
func playPlain(cmd *cobra.Command, title string) error {
	if title != "" {
		cmd.PrintErrf("Playing %s (%d segments, %dms each)\n",
			title, player.Len(), player.Interval().Milliseconds())
	}

	out := cmd.OutOrStdout()
	err := player.Run(cmd.Context(), func(seg domain.Segment) {
		fmt.Fprintln(out, seg.Text)
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
