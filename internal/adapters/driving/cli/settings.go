package cli

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/rsvp-cli/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure segmentation, playback and tokenizer settings.

Use subcommands to change specific settings or run the interactive wizard.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to configure all settings step by step.`,
	RunE:  runSettingsWizard,
}

var settingsSegmentationCmd = &cobra.Command{
	Use:   "set-segmentation",
	Short: "Set segment length bounds",
	Long: fmt.Sprintf(`Set the segmentation bounds used when texts are segmented.

  --max       maximum characters per segment, clamped to %d-%d
  --min-join  fragments shorter than this join a neighbour, clamped to
              1..max-1

Values are rounded to whole characters. Flags that are not given keep
their stored value. Stored documents keep their segments until
'rsvp document apply' re-segments them.`, domain.MinMaxSegmentChars, domain.MaxMaxSegmentChars),
	RunE: runSettingsSegmentation,
}

var settingsSpeedCmd = &cobra.Command{
	Use:   "set-speed [milliseconds]",
	Short: "Set how long each segment is shown",
	Long: fmt.Sprintf(`Set the playback interval in milliseconds (%d-%d, in steps of %d).`,
		domain.MinPlaybackInterval.Milliseconds(),
		domain.MaxPlaybackInterval.Milliseconds(),
		domain.PlaybackIntervalStep.Milliseconds()),
	Args: cobra.ExactArgs(1),
	RunE: runSettingsSpeed,
}

var settingsDictionaryCmd = &cobra.Command{
	Use:       "set-dictionary [ipa|uni]",
	Short:     "Select the tokenizer dictionary",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(domain.DictionaryIPA), string(domain.DictionaryUni)},
	RunE:      runSettingsDictionary,
}

var settingsPostProcessorsCmd = &cobra.Command{
	Use:   "set-post-processors [name...]",
	Short: "Set the post-processing pipeline",
	Long: `Set the post-processors run after segments are built, in order.

Use "none" to disable post-processing. The default pipeline is "merger",
which joins punctuation-only and short fragments onto their neighbours.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSettingsPostProcessors,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore default settings",
	RunE:  runSettingsReset,
}

func init() {
	addSettingsFlags(settingsSegmentationCmd)

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	settingsCmd.AddCommand(settingsSegmentationCmd)
	settingsCmd.AddCommand(settingsSpeedCmd)
	settingsCmd.AddCommand(settingsDictionaryCmd)
	settingsCmd.AddCommand(settingsPostProcessorsCmd)
	settingsCmd.AddCommand(settingsResetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNoSettingsService
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Segmentation]")
	cmd.Printf("  Max segment chars: %d\n", settings.Segmentation.MaxSegmentChars)
	cmd.Printf("  Min join length: %d\n", settings.Segmentation.MinJoinLength)
	cmd.Printf("  Post-processors: %s\n", formatNames(settings.PostProcessors))
	cmd.Println()

	cmd.Println("[Playback]")
	cmd.Printf("  Interval: %dms\n", settings.Playback.Interval.Milliseconds())
	cmd.Println()

	cmd.Println("[Tokenizer]")
	cmd.Printf("  Dictionary: %s\n", settings.Tokenizer.Dictionary.Description())
	cmd.Println()

	cmd.Println("[Cache]")
	if settings.Cache.TTL > 0 {
		cmd.Printf("  TTL: %s\n", settings.Cache.TTL)
	} else {
		cmd.Println("  TTL: disabled")
	}

	return nil
}

func runSettingsSegmentation(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNoSettingsService
	}

	override, err := overrideFromFlags(cmd)
	if err != nil {
		return err
	}
	if override.MaxSegmentChars == nil && override.MinJoinLength == nil {
		return fmt.Errorf("nothing to set: use --max and/or --min-join")
	}

	applied, err := settingsService.SetSegmentation(override)
	if err != nil {
		return fmt.Errorf("failed to set segmentation: %w", err)
	}

	cmd.Printf("Segmentation set to max %d, min join %d\n", applied.MaxSegmentChars, applied.MinJoinLength)
	return nil
}

func runSettingsSpeed(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errNoSettingsService
	}

	ms, err := strconv.Atoi(strings.TrimSuffix(args[0], "ms"))
	if err != nil {
		return fmt.Errorf("invalid interval %q: expected milliseconds", args[0])
	}

	applied, err := settingsService.SetPlaybackInterval(time.Duration(ms) * time.Millisecond)
	if err != nil {
		return fmt.Errorf("failed to set speed: %w", err)
	}

	cmd.Printf("Playback interval set to %dms\n", applied.Milliseconds())
	return nil
}

func runSettingsDictionary(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errNoSettingsService
	}

	dictionary := domain.Dictionary(strings.ToLower(args[0]))
	if err := settingsService.SetDictionary(dictionary); err != nil {
		return fmt.Errorf("failed to set dictionary: %w", err)
	}

	cmd.Printf("Tokenizer dictionary set to: %s\n", dictionary.Description())
	return nil
}

func runSettingsPostProcessors(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errNoSettingsService
	}

	names := args
	if len(args) == 1 && args[0] == "none" {
		names = []string{}
	}

	if err := settingsService.SetPostProcessors(names); err != nil {
		return fmt.Errorf("failed to set post-processors: %w", err)
	}

	cmd.Printf("Post-processors set to: %s\n", formatNames(names))
	return nil
}

func runSettingsReset(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNoSettingsService
	}

	if err := settingsService.Reset(); err != nil {
		return fmt.Errorf("failed to reset settings: %w", err)
	}

	cmd.Println("Settings restored to defaults.")
	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNoSettingsService
	}

	current, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("rsvp Settings Wizard")
	cmd.Println("====================")
	cmd.Println()

	reader := bufio.NewReader(cmd.InOrStdin())

	// Step 1: Segmentation
	cmd.Println("Step 1: Segmentation")
	cmd.Println("--------------------")
	cmd.Printf("Max segment chars (%d-%d) [%d]: ",
		domain.MinMaxSegmentChars, domain.MaxMaxSegmentChars, current.Segmentation.MaxSegmentChars)
	maxChars := parseNumber(readLine(reader), current.Segmentation.MaxSegmentChars)
	cmd.Printf("Min join length [%d]: ", current.Segmentation.MinJoinLength)
	minJoin := parseNumber(readLine(reader), current.Segmentation.MinJoinLength)

	applied, err := settingsService.SetSegmentation(&domain.SettingsOverride{
		MaxSegmentChars: domain.Float(float64(maxChars)),
		MinJoinLength:   domain.Float(float64(minJoin)),
	})
	if err != nil {
		return fmt.Errorf("failed to set segmentation: %w", err)
	}
	cmd.Printf("Segmentation set to max %d, min join %d\n\n", applied.MaxSegmentChars, applied.MinJoinLength)

	// Step 2: Playback
	cmd.Println("Step 2: Playback")
	cmd.Println("----------------")
	cmd.Printf("Interval in ms (%d-%d) [%d]: ",
		domain.MinPlaybackInterval.Milliseconds(), domain.MaxPlaybackInterval.Milliseconds(),
		current.Playback.Interval.Milliseconds())
	ms := parseNumber(readLine(reader), int(current.Playback.Interval.Milliseconds()))

	interval, err := settingsService.SetPlaybackInterval(time.Duration(ms) * time.Millisecond)
	if err != nil {
		return fmt.Errorf("failed to set speed: %w", err)
	}
	cmd.Printf("Playback interval set to %dms\n\n", interval.Milliseconds())

	// Step 3: Dictionary
	cmd.Println("Step 3: Tokenizer Dictionary")
	cmd.Println("----------------------------")
	dictionaries := domain.AllDictionaries()
	defaultChoice := 1
	for i, d := range dictionaries {
		cmd.Printf("  %d. %s\n", i+1, d.Description())
		if d == current.Tokenizer.Dictionary {
			defaultChoice = i + 1
		}
	}
	cmd.Printf("\nEnter choice [%d]: ", defaultChoice)
	choice := parseChoice(readLine(reader), len(dictionaries), defaultChoice)
	selected := dictionaries[choice-1]

	if err := settingsService.SetDictionary(selected); err != nil {
		return fmt.Errorf("failed to set dictionary: %w", err)
	}
	cmd.Printf("Tokenizer dictionary set to: %s\n\n", selected.Description())

	cmd.Println("Settings saved.")
	return nil
}

func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

// parseNumber returns the integer in input, or defaultVal when input is
// empty or not a number. Range checks are left to the settings service.
func parseNumber(input string, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil {
		return defaultVal
	}
	return val
}

func formatNames(names []string) string {
	if len(names) == 0 {
		return "(none)"
	}
	return strings.Join(names, ", ")
}
