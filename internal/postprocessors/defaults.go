package postprocessors

import (
	"go.uber.org/zap"

	"github.com/custodia-labs/rsvp-cli/internal/core/ports/driven"
	"github.com/custodia-labs/rsvp-cli/internal/postprocessors/merger"
)

// DefaultPipeline lists the processors run when none are configured.
var DefaultPipeline = []string{merger.Name}

// RegisterDefaults registers all built-in processors with the registry.
// Call this during application initialisation to enable standard processors.
func RegisterDefaults(r *Registry) {
	r.Register(merger.Name, buildMerger)
}

// buildMerger creates the punctuation and short-fragment merger.
func buildMerger(logger *zap.Logger) (driven.SegmentPostProcessor, error) {
	return merger.New(merger.WithLogger(logger.Named(merger.Name))), nil
}
