// Package chunk implements the rule-based first pass of segmentation.
//
// It classifies tokens as chunk boundaries, accumulates them into raw
// chunks and splits text that exceeds the length limit. Every function in
// this package is pure; the Builder holds per-run state only.
//
// All lengths are measured in Unicode code points (domain.CharLen).
package chunk
