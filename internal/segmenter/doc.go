// Package segmenter turns raw Japanese text into reading chunks for rapid
// serial visual presentation.
//
// A run sanitizes the text, splits it into paragraphs, tokenizes each
// paragraph, accumulates tokens into raw chunks (package chunk) and hands
// the raw chunks to a post-processor that merges stray punctuation and
// short fragments and splits anything oversized.
//
// A Segmenter holds no per-run state and may be shared, provided the
// tokenizer is safe for concurrent use.
package segmenter
