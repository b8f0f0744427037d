package search

import (
	"testing"

	"github.com/smacker/go-tree-sitter/golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const nestedFuncs = `package main

func outer() {
	inner := func() {}
	_ = inner
}

func second() {}
`

func TestCompileQuery(t *testing.T) {
	q, err := CompileQuery("(function_declaration name: (identifier) @id)", golang.GetLanguage())
	require.NoError(t, err)
	assert.Equal(t, []string{"id"}, q.CaptureNames())
}

func TestCompileQuerySyntaxError(t *testing.T) {
	_, err := CompileQuery("(function_declaration", golang.GetLanguage())
	require.Error(t, err)
}

func TestCompileQueryNoCaptures(t *testing.T) {
	_, err := CompileQuery("(function_declaration)", golang.GetLanguage())
	require.ErrorIs(t, err, ErrNoCaptures)
}

func TestQuerySearch(t *testing.T) {
	root, src := parseGo(t, nestedFuncs)
	q, err := CompileQuery("(function_declaration name: (identifier) @id)", golang.GetLanguage())
	require.NoError(t, err)

	s := New(allKinds(), goKinds, nil)
	records := s.Query(root, src, "f.go", q, nil)
	require.Len(t, records, 2)

	// Document order.
	assert.Equal(t, "outer", records[0].Text)
	assert.Equal(t, 2, records[0].Line)
	assert.Equal(t, 5, records[0].Col)
	assert.Equal(t, "second", records[1].Text)
	assert.Equal(t, 7, records[1].Line)
}

func TestQuerySearchParentAndHighlights(t *testing.T) {
	root, src := parseGo(t, "package main\n\nfunc one() {}\n")
	q, err := CompileQuery("(function_declaration name: (identifier) @name) @fn", golang.GetLanguage())
	require.NoError(t, err)

	s := New(allKinds(), goKinds, nil)
	records := s.Query(root, src, "f.go", q, nil)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "func one() {}", rec.Text)
	require.Len(t, rec.Spans, 1)
	// The @name capture is a sub-range of the rendered @fn node.
	assert.Equal(t, "one", rec.Text[rec.Spans[0].Start:rec.Spans[0].End])
}

func TestQuerySearchCaptureFilter(t *testing.T) {
	root, src := parseGo(t, nestedFuncs)
	q, err := CompileQuery("(function_declaration name: (identifier) @id)", golang.GetLanguage())
	require.NoError(t, err)

	s := New(allKinds(), goKinds, nil)

	records := s.Query(root, src, "f.go", q, map[string]string{"id": "second"})
	require.Len(t, records, 1)
	assert.Equal(t, "second", records[0].Text)

	// Exact comparison, no folding.
	records = s.Query(root, src, "f.go", q, map[string]string{"id": "Second"})
	assert.Empty(t, records)

	// A capture with no filter is always reportable.
	records = s.Query(root, src, "f.go", q, map[string]string{"other": "x"})
	assert.Len(t, records, 2)
}

func TestQuerySearchStable(t *testing.T) {
	root, src := parseGo(t, nestedFuncs)
	q, err := CompileQuery("(function_declaration name: (identifier) @id)", golang.GetLanguage())
	require.NoError(t, err)

	s := New(allKinds(), goKinds, nil)
	first := s.Query(root, src, "f.go", q, nil)
	second := s.Query(root, src, "f.go", q, nil)
	assert.Equal(t, first, second)
}
