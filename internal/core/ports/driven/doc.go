// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - Tokenizer: Morphological analysis of a paragraph (kagome)
//   - SegmentPostProcessor: Merges and splits raw chunks
//   - Normaliser: Transforms imported files into documents or segment lists
//   - DocumentStore: Document and segment list persistence
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - SegmentCache: Memoises segmentation results. Without it, every request
//     is tokenized again.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, normaliser, or post-processor package
package driven
