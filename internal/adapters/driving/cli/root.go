// Package cli provides the rsvp command line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/rsvp-cli/internal/core/ports/driving"
	"github.com/custodia-labs/rsvp-cli/internal/logger"
)

// version is set at build time.
var version = "dev"

// Services used by the commands. They are set by SetServices, or built
// lazily by the service factory before a command runs.
var (
	segmentService  driving.SegmentService
	documentService driving.DocumentService
	settingsService driving.SettingsService
	player          driving.Player
)

// Services aggregates the driving ports the commands need.
type Services struct {
	Segment  driving.SegmentService
	Document driving.DocumentService
	Settings driving.SettingsService
	Player   driving.Player
}

// ServiceFactory builds the services and returns a cleanup function.
type ServiceFactory func() (*Services, func(), error)

var (
	serviceFactory  ServiceFactory
	cleanupServices func()
)

// skipServicesAnnotation marks commands that run without services.
const skipServicesAnnotation = "rsvp.skip-services"

// verbose enables debug output.
var verbose bool

var rootCmd = &cobra.Command{
	Use:   "rsvp",
	Short: "Read Japanese text one chunk at a time",
	Long: `rsvp splits Japanese text into short reading chunks and presents them
one at a time (rapid serial visual presentation).

Chunks follow morphological boundaries: sentence ends and commas always
break, particles and auxiliaries break softly, and nothing is longer than
the configured maximum unless a single word is.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		if cmd.Annotations[skipServicesAnnotation] == "true" {
			return nil
		}
		return initServices()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print debug output to stderr")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// SetServices injects the services used by the commands.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	segmentService = s.Segment
	documentService = s.Document
	settingsService = s.Settings
	player = s.Player
}

// SetServiceFactory sets the function that builds services on first use.
func SetServiceFactory(factory ServiceFactory) {
	serviceFactory = factory
}

// initServices builds services through the factory unless already set.
func initServices() error {
	if segmentService != nil || serviceFactory == nil {
		return nil
	}

	services, cleanup, err := serviceFactory()
	if err != nil {
		return fmt.Errorf("failed to initialise: %w", err)
	}
	SetServices(services)
	cleanupServices = cleanup
	return nil
}

// Execute runs the root command with ctx and releases services afterwards.
// Command output goes to stdout; cobra would otherwise print to stderr.
func Execute(ctx context.Context) error {
	defer func() {
		if cleanupServices != nil {
			cleanupServices()
			cleanupServices = nil
		}
	}()
	rootCmd.SetOut(os.Stdout)
	return rootCmd.ExecuteContext(ctx)
}

var errNoSegmentService = errors.New("segment service not configured")

var errNoDocumentService = errors.New("document service not configured")

var errNoSettingsService = errors.New("settings service not configured")
