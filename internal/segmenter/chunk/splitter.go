package chunk

// SplitOversized cuts text into consecutive pieces of at most maxChars code
// points. Every piece but the last has exactly maxChars code points.
// Concatenating the pieces yields text again. A maxChars below 1 is
// treated as 1, and an empty text yields no pieces.
func SplitOversized(text string, maxChars int) []string {
	if text == "" {
		return nil
	}
	maxChars = max(1, maxChars)

	var pieces []string
	start, count := 0, 0
	for i := range text {
		if count == maxChars {
			pieces = append(pieces, text[start:i])
			start, count = i, 0
		}
		count++
	}
	return append(pieces, text[start:])
}
