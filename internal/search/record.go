// Package search implements syntax-aware matching over parsed source trees.
// It walks a tree-sitter tree, classifies nodes into searchable categories,
// finds literal or structural matches, and emits position-annotated records
// for the reporter.
package search

// Category is the searchable class of a syntax node.
type Category int

const (
	// CategoryOther marks nodes that are never searched.
	CategoryOther Category = iota
	CategoryComment
	CategoryString
	CategoryIdentifier
)

func (c Category) String() string {
	switch c {
	case CategoryComment:
		return "comment"
	case CategoryString:
		return "string"
	case CategoryIdentifier:
		return "identifier"
	default:
		return "other"
	}
}

// Kinds selects which node categories a search visits.
type Kinds struct {
	Comment    bool
	String     bool
	Identifier bool
}

// Span is a byte range, start inclusive, end exclusive.
type Span struct {
	Start int
	End   int
}

// Record is one reported occurrence. Line and Col are 0-based; Col counts
// runes, ColByte is the byte offset of the same position within Text.
// In pattern mode Text is the raw source line containing the match and
// Spans is nil. In query mode Text is the full matched node and Spans
// holds the capture ranges to highlight, relative to Text, sorted by
// ascending start byte.
type Record struct {
	Path    string
	Line    int
	Col     int
	ColByte int
	Length  int
	Text    string
	Spans   []Span
}
