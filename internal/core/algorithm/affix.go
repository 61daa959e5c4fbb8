package algorithm

import (
	"regexp"
	"unicode/utf8"

	"crackInsightBackend/internal/core/domain"
)

// prefix of non-letters, a root that starts and ends with a letter,
// suffix of non-letters
var affixPattern = regexp.MustCompile(`(?s)^([^A-Za-z]*)([A-Za-z](?:.*[A-Za-z])?)([^A-Za-z]*)$`)

type Segments struct {
	Prefix  string
	Root    string
	Suffix  string
	Matched bool
}

// Segment splits plaintext into prefix, root and suffix by letter
// boundaries. Matched is false when plaintext has no letters.
func Segment(plaintext string) Segments {
	m := affixPattern.FindStringSubmatch(plaintext)
	if m == nil {
		return Segments{}
	}
	return Segments{Prefix: m[1], Root: m[2], Suffix: m[3], Matched: true}
}

// BaseWord returns the word recorded as a base word for plaintext, if any.
func (s Segments) BaseWord(plaintext string) (string, bool) {
	if s.Matched {
		if utf8.RuneCountInString(s.Root) >= domain.MinBaseWordRootLength {
			return s.Root, true
		}
		return "", false
	}
	if plaintext != "" && allLetters(plaintext) {
		return plaintext, true
	}
	return "", false
}

func allLetters(s string) bool {
	for _, r := range s {
		if c := classify(r); c != classLower && c != classUpper {
			return false
		}
	}
	return true
}
