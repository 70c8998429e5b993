package domain

// Token is one morpheme produced by the external tokenizer for a paragraph.
// Tokens are ephemeral: created per paragraph query and consumed immediately.
type Token struct {
	// Surface is the literal text of the token. It may carry surrounding
	// whitespace, which consumers trim before use.
	Surface string

	// POS is the coarse part-of-speech category (e.g. 名詞, 助詞, 記号).
	POS string

	// POSDetail1 is the first part-of-speech sub-classification.
	POSDetail1 string

	// POSDetail2 is the second part-of-speech sub-classification.
	POSDetail2 string

	// POSDetail3 is the third part-of-speech sub-classification.
	POSDetail3 string

	// Conjugation1 is the inflection type, when the dictionary provides one.
	Conjugation1 string

	// Conjugation2 is the inflection form, when the dictionary provides one.
	Conjugation2 string

	// BaseForm is the dictionary form of the token.
	BaseForm string

	// Reading is the katakana reading.
	Reading string

	// Pronunciation is the katakana pronunciation.
	Pronunciation string
}

// Boundary classifies how a token affects the current chunk.
type Boundary int

const (
	// BoundaryNone means the token does not end a chunk by itself.
	BoundaryNone Boundary = iota

	// BoundarySoft means the token may end a chunk once the soft-break
	// threshold is met.
	BoundarySoft

	// BoundaryHard means the token must end the current chunk.
	BoundaryHard
)

// String returns the string representation of the boundary.
func (b Boundary) String() string {
	switch b {
	case BoundaryNone:
		return "none"
	case BoundarySoft:
		return "soft"
	case BoundaryHard:
		return "hard"
	default:
		return "unknown"
	}
}
