package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// ErrEmptyText indicates an imported text contains nothing but whitespace.
	ErrEmptyText = errors.New("text appears to be empty")

	// Tokenizer Errors.

	// ErrTokenizerUnavailable indicates the tokenizer could not be initialised.
	ErrTokenizerUnavailable = errors.New("tokenizer unavailable")

	// ErrUnsupportedDictionary indicates an unknown tokenizer dictionary name.
	ErrUnsupportedDictionary = errors.New("unsupported dictionary")

	// Segment List Errors.

	// ErrSegmentListNotArray indicates an imported segment list is not a JSON array.
	ErrSegmentListNotArray = errors.New("segment list must be an array")

	// ErrNoValidSegments indicates an imported segment list has no usable entries.
	ErrNoValidSegments = errors.New("segment list does not contain valid entries")

	// ErrNoSegments indicates playback was requested for an empty segment list.
	ErrNoSegments = errors.New("no segments to present")
)
