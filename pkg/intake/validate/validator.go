package validate

import (
	"strings"
	"unicode"
)

const (
	minLength          = 10
	minMeaningfulWords = 3
)

// Rejection reasons surfaced to the caller.
const (
	ReasonTooShort    = "description is too short, please describe the project in a sentence or two"
	ReasonNotWordLike = "description does not look like real words, please rephrase it"
)

// Check runs the gibberish heuristic over a project description.
// It rejects descriptions that are too short or contain fewer than three
// meaningful words. This is intentionally loose: word-shaped nonsense passes
// through and is left to the oracle's own validation step.
func Check(text string) (bool, string) {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) < minLength {
		return false, ReasonTooShort
	}

	meaningful := 0
	for _, token := range strings.Fields(trimmed) {
		if isMeaningful(token) {
			meaningful++
			if meaningful >= minMeaningfulWords {
				return true, ""
			}
		}
	}

	return false, ReasonNotWordLike
}

// isMeaningful strips non-alphabetic runes and requires length >= 2 plus at
// least one vowel.
func isMeaningful(token string) bool {
	var letters []rune
	for _, r := range token {
		if unicode.IsLetter(r) {
			letters = append(letters, unicode.ToLower(r))
		}
	}
	if len(letters) < 2 {
		return false
	}
	for _, r := range letters {
		switch r {
		case 'a', 'e', 'i', 'o', 'u':
			return true
		}
	}
	return false
}
