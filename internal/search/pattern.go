package search

import (
	"strings"
	"unicode"
)

// CasePolicy controls how a literal pattern compares against source text.
type CasePolicy int

const (
	// CaseSmart matches case-sensitively only when the pattern itself
	// contains an uppercase rune.
	CaseSmart CasePolicy = iota
	CaseSensitive
	CaseInsensitive
)

// Pattern is a compiled literal search pattern. When CaseSensitive is
// false, Text has already been lowercased; the fold happens exactly once,
// in NewPattern.
type Pattern struct {
	Text          string
	CaseSensitive bool
	WholeWord     bool
}

// NewPattern applies the case policy to text and fixes the pattern's
// sensitivity. Callers must reject empty text before building a pattern.
func NewPattern(text string, policy CasePolicy, wholeWord bool) Pattern {
	sensitive := true
	switch policy {
	case CaseSmart:
		sensitive = strings.ContainsFunc(text, unicode.IsUpper)
		if !sensitive {
			text = strings.ToLower(text)
		}
	case CaseInsensitive:
		sensitive = false
		text = strings.ToLower(text)
	}
	return Pattern{Text: text, CaseSensitive: sensitive, WholeWord: wholeWord}
}
