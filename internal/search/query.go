package search

import (
	"errors"
	"fmt"
	"sort"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
)

// ErrNoCaptures means a structural query defines no captures, so there is
// nothing to report. Queries are rejected at compile time, before any file
// is searched.
var ErrNoCaptures = errors.New("query has no captures")

// Query is a compiled structural query. Immutable after CompileQuery, so
// one Query may be shared by concurrent per-file searches.
type Query struct {
	q            *sitter.Query
	captureNames []string
}

// CompileQuery compiles a tree-sitter query. Syntax errors fail fast: the
// query is never partially evaluated.
func CompileQuery(src string, lang *sitter.Language) (*Query, error) {
	q, err := sitter.NewQuery([]byte(src), lang)
	if err != nil {
		return nil, fmt.Errorf("compile query: %w", err)
	}

	n := int(q.CaptureCount())
	if n == 0 {
		return nil, ErrNoCaptures
	}

	names := make([]string, n)
	for i := range names {
		names[i] = q.CaptureNameForId(uint32(i))
	}
	return &Query{q: q, captureNames: names}, nil
}

// CaptureNames returns the query's capture names in declaration order.
func (q *Query) CaptureNames() []string {
	return q.captureNames
}

// Query evaluates a compiled structural query against the tree and emits
// one Record per reportable capture group. The first capture of a group is
// the rendered node; the remaining captures become highlight spans within
// it, sorted by ascending start byte (ties by end byte) so overlapping
// highlights never render out of order.
//
// filters maps capture names to expected literal values. A group is
// reported when at least one of its captures has no filter or equals its
// filter's value byte-for-byte.
func (s *Searcher) Query(root *sitter.Node, src []byte, path string, query *Query, filters map[string]string) []Record {
	var records []Record
	var ix *lineIndex

	cursor := sitter.NewQueryCursor()
	cursor.Exec(query.q, root)

	for {
		match, ok := cursor.NextMatch()
		if !ok {
			break
		}
		match = cursor.FilterPredicates(match, src)
		if len(match.Captures) == 0 {
			continue
		}
		if !reportable(match.Captures, query, src, filters) {
			continue
		}

		parent := match.Captures[0].Node
		text, ok := s.nodeText(parent, src, path)
		if !ok {
			continue
		}

		parentStart := int(parent.StartByte())
		var spans []Span
		for _, c := range match.Captures[1:] {
			spans = append(spans, Span{
				Start: int(c.Node.StartByte()) - parentStart,
				End:   int(c.Node.EndByte()) - parentStart,
			})
		}
		sort.Slice(spans, func(i, j int) bool {
			if spans[i].Start != spans[j].Start {
				return spans[i].Start < spans[j].Start
			}
			return spans[i].End < spans[j].End
		})

		if ix == nil {
			ix = newLineIndex(string(src))
		}
		line := ix.lineOf(parentStart)
		colByte := 0
		col := 0
		if lineText, ok := ix.line(line); ok {
			colByte = parentStart - ix.lineStart(line)
			if colByte >= 0 && colByte <= len(lineText) {
				col = utf8.RuneCountInString(lineText[:colByte])
			}
		}

		records = append(records, Record{
			Path:    path,
			Line:    line,
			Col:     col,
			ColByte: colByte,
			Length:  int(parent.EndByte()) - parentStart,
			Text:    text,
			Spans:   spans,
		})
	}
	return records
}

// reportable applies capture-value filters to one group. Filters are OR'ed
// across the group's captures; a capture without a filter always counts.
func reportable(captures []sitter.QueryCapture, query *Query, src []byte, filters map[string]string) bool {
	if len(filters) == 0 {
		return true
	}
	for _, c := range captures {
		want, filtered := filters[query.captureNames[c.Index]]
		if !filtered {
			return true
		}
		if c.Node.Content(src) == want {
			return true
		}
	}
	return false
}
