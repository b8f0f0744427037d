package search

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// findOccurrences returns the byte offsets of every non-overlapping,
// leftmost-first occurrence of pattern in token, ascending. When matching
// case-insensitively the caller must pass a pre-lowercased pattern; the
// token is folded here, once.
//
// An identifier token searched with wholeWord is atomic: either the whole
// token equals the pattern ([0]) or there is no match. For other tokens
// wholeWord discards occurrences whose neighboring rune is alphabetic.
func findOccurrences(token, pattern string, isIdent, wholeWord, caseSensitive bool) []int {
	if !caseSensitive {
		if pattern != strings.ToLower(pattern) {
			panic(fmt.Sprintf("insensitive match with unfolded pattern %q", pattern))
		}
		token = strings.ToLower(token)
	}

	if isIdent && wholeWord {
		if token == pattern {
			return []int{0}
		}
		return nil
	}

	var offs []int
	for i := 0; ; {
		j := strings.Index(token[i:], pattern)
		if j < 0 {
			break
		}
		off := i + j
		if !wholeWord || wordBounds(token, off, off+len(pattern)) {
			offs = append(offs, off)
		}
		// Next scan starts past this occurrence, matched or not, so
		// overlapping hits are never produced.
		i = off + len(pattern)
	}
	return offs
}

// wordBounds reports whether text[begin:end] sits on word boundaries.
// A missing neighbor (token edge) counts as a boundary.
func wordBounds(text string, begin, end int) bool {
	if r, size := utf8.DecodeLastRuneInString(text[:begin]); size > 0 && unicode.IsLetter(r) {
		return false
	}
	if r, size := utf8.DecodeRuneInString(text[end:]); size > 0 && unicode.IsLetter(r) {
		return false
	}
	return true
}
