package postprocessors

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/custodia-labs/rsvp-cli/internal/core/ports/driven"
)

// BuilderFunc creates a SegmentPostProcessor.
// The logger is never nil.
type BuilderFunc func(logger *zap.Logger) (driven.SegmentPostProcessor, error)

// Registry maps processor names to their builders.
// It allows the pipeline to be assembled from configuration.
type Registry struct {
	builders map[string]BuilderFunc
}

// NewRegistry creates a new processor registry.
func NewRegistry() *Registry {
	return &Registry{
		builders: make(map[string]BuilderFunc),
	}
}

// Register adds a processor builder to the registry.
// Name should be unique and match the processor's Name() return value.
func (r *Registry) Register(name string, builder BuilderFunc) {
	r.builders[name] = builder
}

// Build creates a processor by name.
// Returns error if the processor name is not registered.
func (r *Registry) Build(name string, logger *zap.Logger) (driven.SegmentPostProcessor, error) {
	builder, ok := r.builders[name]
	if !ok {
		return nil, fmt.Errorf("unknown processor: %s", name)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return builder(logger)
}

// BuildPipeline creates a pipeline from processor names, in order.
func (r *Registry) BuildPipeline(names []string, logger *zap.Logger) (*Pipeline, error) {
	pipeline := NewPipeline()
	for _, name := range names {
		processor, err := r.Build(name, logger)
		if err != nil {
			return nil, err
		}
		pipeline.Add(processor)
	}
	return pipeline, nil
}

// Has returns true if a processor with the given name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.builders[name]
	return ok
}

// Names returns all registered processor names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
