package driven

import (
	"context"

	"github.com/custodia-labs/rsvp-cli/internal/core/domain"
)

// Tokenizer splits a paragraph into tagged morphemes.
// Implementations must be safe for concurrent use once ready.
type Tokenizer interface {
	// Name returns the tokenizer name, including its dictionary.
	Name() string

	// WaitReady blocks until the tokenizer is initialised.
	// Initialisation happens at most once; later calls return the same result.
	WaitReady(ctx context.Context) error

	// Query tokenizes one paragraph. The paragraph contains no newlines.
	// An empty result is not an error.
	Query(ctx context.Context, paragraph string) ([]domain.Token, error)
}
