// Package postprocessors provides segment list processing implementations.
package postprocessors

import (
	"context"
	"fmt"

	"github.com/custodia-labs/rsvp-cli/internal/core/domain"
	"github.com/custodia-labs/rsvp-cli/internal/core/ports/driven"
)

// Ensure Pipeline implements the interface.
var _ driven.SegmentPostProcessor = (*Pipeline)(nil)

// Pipeline chains multiple SegmentPostProcessors and runs them in order.
// A Pipeline is itself a SegmentPostProcessor.
type Pipeline struct {
	processors []driven.SegmentPostProcessor
}

// NewPipeline creates a new processing pipeline with the given processors.
// Processors are executed in the order provided.
func NewPipeline(processors ...driven.SegmentPostProcessor) *Pipeline {
	return &Pipeline{
		processors: processors,
	}
}

// Name returns the pipeline name.
func (p *Pipeline) Name() string {
	return "pipeline"
}

// Process runs the segments through all processors in order.
// Each processor receives the output of the previous one.
// An empty pipeline returns the input renumbered.
func (p *Pipeline) Process(ctx context.Context, segments []domain.Segment, settings domain.SegmentationSettings) ([]domain.Segment, error) {
	out := domain.Renumber(segments)

	for _, processor := range p.processors {
		var err error
		out, err = processor.Process(ctx, out, settings)
		if err != nil {
			return nil, fmt.Errorf("processor %s: %w", processor.Name(), err)
		}
	}

	return out, nil
}

// Add appends a processor to the pipeline.
func (p *Pipeline) Add(processor driven.SegmentPostProcessor) {
	p.processors = append(p.processors, processor)
}

// Len returns the number of processors in the pipeline.
func (p *Pipeline) Len() int {
	return len(p.processors)
}

// Names returns the processor names in execution order.
func (p *Pipeline) Names() []string {
	names := make([]string, len(p.processors))
	for i, processor := range p.processors {
		names[i] = processor.Name()
	}
	return names
}
