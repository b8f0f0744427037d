package search

import (
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"go.uber.org/zap"
)

// Searcher runs per-file searches. It holds no per-file state; the same
// Searcher is reused sequentially across files, and a compiled Pattern or
// Query is safe to share because both are read-only after construction.
type Searcher struct {
	kinds Kinds
	names KindNames
	log   *zap.Logger
}

// New builds a Searcher for one language's kind names and the enabled
// search categories.
func New(kinds Kinds, names KindNames, log *zap.Logger) *Searcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Searcher{kinds: kinds, names: names, log: log}
}

// Literal walks the whole tree in pre-order document order, classifies
// each node, and collects pattern occurrences inside searchable tokens.
// Records come out in discovery order. Undecodable tokens are logged and
// skipped; the walk continues.
func (s *Searcher) Literal(root *sitter.Node, src []byte, path string, pat Pattern) []Record {
	var records []Record
	var ix *lineIndex

	work := []*sitter.Node{root}
	for len(work) > 0 {
		node := work[len(work)-1]
		work = work[:len(work)-1]

		if cat := Classify(node, s.names, s.kinds.Identifier); s.enabled(cat) {
			token, ok := s.nodeText(node, src, path)
			if ok {
				for _, off := range findOccurrences(token, pat.Text, cat == CategoryIdentifier, pat.WholeWord, pat.CaseSensitive) {
					if ix == nil {
						ix = newLineIndex(string(src))
					}
					if rec, ok := s.locate(node, token, off, len(pat.Text), path, ix); ok {
						records = append(records, rec)
					}
				}
			}
		}

		// Children pushed in reverse so the stack pops them in document
		// order.
		for i := int(node.ChildCount()) - 1; i >= 0; i-- {
			work = append(work, node.Child(i))
		}
	}
	return records
}

func (s *Searcher) enabled(cat Category) bool {
	switch cat {
	case CategoryComment:
		return s.kinds.Comment
	case CategoryString:
		return s.kinds.String
	case CategoryIdentifier:
		return s.kinds.Identifier
	default:
		return false
	}
}

// nodeText decodes a node's byte range. Invalid UTF-8 is a per-occurrence
// failure: warn and skip, never abort the file.
func (s *Searcher) nodeText(node *sitter.Node, src []byte, path string) (string, bool) {
	start, end := int(node.StartByte()), int(node.EndByte())
	if start < 0 || end > len(src) || start > end {
		s.log.Warn("node range out of bounds",
			zap.String("path", path), zap.Int("start", start), zap.Int("end", end))
		return "", false
	}
	seg := src[start:end]
	if !utf8.Valid(seg) {
		s.log.Warn("token is not valid utf-8",
			zap.String("path", path), zap.Int("offset", start))
		return "", false
	}
	return string(seg), true
}

// locate turns a byte offset inside a token into a line-addressed Record.
// The base line comes from the line index, not the tree provider: the
// index counts bare '\r' breaks the way the translator does, while
// provider rows only advance on '\n'.
func (s *Searcher) locate(node *sitter.Node, token string, off, length int, path string, ix *lineIndex) (Record, bool) {
	lineDelta, _, relColByte := tokenLineCol(token, off)
	line := ix.lineOf(int(node.StartByte())) + lineDelta

	text, ok := ix.line(line)
	if !ok {
		s.log.Warn("match line out of range",
			zap.String("path", path), zap.Int("line", line))
		return Record{}, false
	}

	colByte := relColByte
	if lineDelta == 0 {
		colByte += int(node.StartByte()) - ix.lineStart(line)
	}
	if colByte > len(text) {
		s.log.Warn("match column out of range",
			zap.String("path", path), zap.Int("line", line), zap.Int("column", colByte))
		return Record{}, false
	}

	return Record{
		Path:    path,
		Line:    line,
		Col:     utf8.RuneCountInString(text[:colByte]),
		ColByte: colByte,
		Length:  length,
		Text:    text,
	}, true
}
