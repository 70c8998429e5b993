package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/rsvp-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/rsvp-cli/internal/core/domain"
	"github.com/custodia-labs/rsvp-cli/internal/core/services"
	"github.com/custodia-labs/rsvp-cli/internal/normalisers"
)

// sentenceSegmenter splits text after every "。" and drops bare full stops.
type sentenceSegmenter struct{}

func (sentenceSegmenter) Segment(_ context.Context, rawText string, _ *domain.SettingsOverride) ([]domain.Segment, error) {
	texts := []string{}
	for _, part := range strings.SplitAfter(rawText, "。") {
		if part = strings.TrimSpace(part); part != "" && part != "。" {
			texts = append(texts, part)
		}
	}
	return domain.NewSegments(texts), nil
}

func (sentenceSegmenter) TokenizerName() string { return "sentence" }

// testEnv holds the services wired for a test.
type testEnv struct {
	configStore *memory.ConfigStore
	docStore    *memory.DocumentStore
	player      *services.Player
}

// newTestServices wires core services over in-memory stores.
func newTestServices() (*Services, *testEnv) {
	env := &testEnv{
		configStore: memory.NewConfigStore(),
		docStore:    memory.NewDocumentStore(),
		player:      services.NewPlayer(domain.MinPlaybackInterval),
	}

	settings := services.NewSettingsService(env.configStore, func(name string) bool { return name == "merger" })
	segment := services.NewSegmentService(sentenceSegmenter{})
	documents := services.NewDocumentService(
		env.docStore,
		normalisers.NewDefaultRegistry(),
		segment,
		domain.DictionaryIPA,
		nil,
	)

	return &Services{
		Segment:  segment,
		Document: documents,
		Settings: settings,
		Player:   env.player,
	}, env
}

// setupTestServices injects in-memory services and clears them on cleanup.
func setupTestServices(t *testing.T) *testEnv {
	t.Helper()

	svcs, env := newTestServices()
	SetServices(svcs)
	t.Cleanup(func() { SetServices(nil) })
	return env
}

// execute runs the root command with args and stdin, returning stdout and stderr.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		resetFlags(rootCmd)
	}()

	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

// resetFlags restores every flag to its default so tests do not leak state.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, child := range cmd.Commands() {
		resetFlags(child)
	}
}

// importText stores a text document and returns its ID.
func importText(t *testing.T, name, content string) string {
	t.Helper()

	result, err := documentService.Import(context.Background(), &domain.RawDocument{
		URI:      name,
		MIMEType: normalisers.DetectMIMEType(name),
		Content:  []byte(content),
	}, nil)
	if err != nil {
		t.Fatalf("importing %s: %v", name, err)
	}
	return result.Document.ID
}

// newFlagCmd returns a bare command carrying the segmentation flags.
func newFlagCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	addSettingsFlags(cmd)
	return cmd
}
