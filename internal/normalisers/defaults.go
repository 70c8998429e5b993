package normalisers

import (
	"github.com/custodia-labs/rsvp-cli/internal/normalisers/markdown"
	"github.com/custodia-labs/rsvp-cli/internal/normalisers/plaintext"
	"github.com/custodia-labs/rsvp-cli/internal/normalisers/segmentjson"
)

// NewDefaultRegistry returns a registry with every built-in normaliser.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(plaintext.New())
	r.Register(markdown.New())
	r.Register(segmentjson.New())
	return r
}
