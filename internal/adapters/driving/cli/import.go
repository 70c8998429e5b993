package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import [file...]",
	Short: "Segment files and store them in the library",
	Long: `Segment one or more files and store each with its segments.

Text and Markdown files are segmented with the current settings (or the
--max and --min-join flags). JSON segment lists are stored as they are and
cannot be re-segmented later.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

func init() {
	addSettingsFlags(importCmd)
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errNoDocumentService
	}

	override, err := overrideFromFlags(cmd)
	if err != nil {
		return err
	}

	failed := 0
	for _, path := range args {
		raw, err := readInput(cmd, path)
		if err != nil {
			cmd.PrintErrf("Error: %v\n", err)
			failed++
			continue
		}

		result, err := documentService.Import(cmd.Context(), raw, override)
		if err != nil {
			cmd.PrintErrf("Error: failed to import %s: %v\n", displayPath(path), err)
			failed++
			continue
		}

		cmd.Printf("Imported %s\n", result.Document.Title)
		cmd.Printf("  ID:       %s\n", result.Document.ID)
		cmd.Printf("  Segments: %d\n", len(result.Segments))
		warnIfEmpty(cmd, result.Segments)
	}

	if failed > 0 {
		return fmt.Errorf("failed to import %d of %d files", failed, len(args))
	}
	return nil
}
