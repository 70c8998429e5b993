package chunk

import (
	"strings"

	"github.com/custodia-labs/rsvp-cli/internal/core/domain"
)

// Part-of-speech tags used by the boundary rules (IPA dictionary names).
const (
	posSymbol     = "記号"
	posParticle   = "助詞"
	posAuxVerb    = "助動詞"
	detailPeriod  = "句点"
	detailComma   = "読点"
	detailEnding  = "終助詞"
	detailCase    = "格助詞"
	surfacePolite = "です"
)

// hardRunes end a chunk wherever they appear in a token.
var hardRunes = map[rune]struct{}{
	'。': {},
	'！': {},
	'？': {},
	'?': {},
	'!': {},
}

// softRunes may end a chunk once it is long enough.
var softRunes = map[rune]struct{}{
	'、': {},
	'，': {},
	',': {},
	'・': {},
	'；': {},
	';': {},
}

// Classify returns the boundary strength of a token.
// Hard takes precedence over soft; a token is never both.
func Classify(token domain.Token) domain.Boundary {
	if isHard(token) {
		return domain.BoundaryHard
	}
	if isSoft(token) {
		return domain.BoundarySoft
	}
	return domain.BoundaryNone
}

func isHard(token domain.Token) bool {
	if token.POS == posSymbol && (token.POSDetail1 == detailPeriod || token.POSDetail1 == detailComma) {
		return true
	}
	return containsAny(token.Surface, hardRunes)
}

func isSoft(token domain.Token) bool {
	if token.POS == posParticle && (token.POSDetail1 == detailEnding || token.POSDetail1 == detailCase) {
		return true
	}
	if token.POS == posAuxVerb && token.Surface == surfacePolite {
		return true
	}
	return containsAny(token.Surface, softRunes)
}

func containsAny(s string, set map[rune]struct{}) bool {
	return strings.IndexFunc(s, func(r rune) bool {
		_, ok := set[r]
		return ok
	}) >= 0
}

// IsPunctuationOnly reports whether s is non-empty and made up entirely of
// hard and soft punctuation runes.
func IsPunctuationOnly(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if _, ok := hardRunes[r]; ok {
			continue
		}
		if _, ok := softRunes[r]; ok {
			continue
		}
		return false
	}
	return true
}
