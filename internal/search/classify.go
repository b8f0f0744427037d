package search

import (
	"slices"

	sitter "github.com/smacker/go-tree-sitter"
)

// KindNames carries the grammar-specific node kind names a search needs.
// They come from the language registry, never from this package.
type KindNames struct {
	CommentKinds []string
	StringKinds  []string
}

// Classify labels a node for searching. A node is a comment or string
// literal when its kind name matches the grammar's designated kinds. It is
// an identifier when it is a non-comment leaf token and identifier search
// is enabled. Anything else is CategoryOther. Unknown kinds fall through
// to CategoryOther; there is no error case.
func Classify(node *sitter.Node, names KindNames, identifiers bool) Category {
	kind := node.Type()

	if slices.Contains(names.CommentKinds, kind) {
		return CategoryComment
	}
	if slices.Contains(names.StringKinds, kind) {
		return CategoryString
	}
	if identifiers && node.ChildCount() == 0 {
		return CategoryIdentifier
	}
	return CategoryOther
}
