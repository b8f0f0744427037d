package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oxhq/sgrep/internal/search"
)

func plainReporter(buf *bytes.Buffer, column, group bool) *Reporter {
	return New(buf, Options{Color: false, Column: column, Group: group})
}

func TestFileGrouped(t *testing.T) {
	var buf bytes.Buffer
	r := plainReporter(&buf, false, true)

	r.File("src/a.go", []search.Record{
		{Line: 2, ColByte: 8, Length: 4, Text: "// just testing"},
		{Line: 3, ColByte: 5, Length: 4, Text: "func test() {"},
	})

	assert.Equal(t,
		"src/a.go\n"+
			"3:// just testing\n"+
			"4:func test() {\n",
		buf.String())
}

func TestFileGroupedSeparatesFiles(t *testing.T) {
	var buf bytes.Buffer
	r := plainReporter(&buf, false, true)

	r.File("a.go", []search.Record{{Line: 0, Length: 1, Text: "x"}})
	r.File("b.go", []search.Record{{Line: 0, Length: 1, Text: "y"}})

	assert.Equal(t, "a.go\n1:x\n\nb.go\n1:y\n", buf.String())
}

func TestFileUngroupedPrefixesEveryLine(t *testing.T) {
	var buf bytes.Buffer
	r := plainReporter(&buf, false, false)

	r.File("a.go", []search.Record{{Line: 9, ColByte: 0, Length: 1, Text: "z"}})
	assert.Equal(t, "a.go:10:z\n", buf.String())
}

func TestFileColumn(t *testing.T) {
	var buf bytes.Buffer
	r := plainReporter(&buf, true, true)

	r.File("a.go", []search.Record{{Line: 0, Col: 4, ColByte: 4, Length: 3, Text: "let val = 1"}})
	assert.Equal(t, "a.go\n1:5:let val = 1\n", buf.String())
}

func TestFileNoRecordsPrintsNothing(t *testing.T) {
	var buf bytes.Buffer
	r := plainReporter(&buf, false, true)
	r.File("a.go", nil)
	assert.Zero(t, buf.Len())
}

func TestFileColorKeepsContent(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, Options{Color: true, Group: true})

	r.File("a.go", []search.Record{{Line: 0, ColByte: 4, Length: 4, Text: "var test = 1"}})
	out := buf.String()
	// Styling depends on the terminal profile; the text itself must
	// survive either way.
	assert.Contains(t, out, "var ")
	assert.Contains(t, out, "test")
	assert.Contains(t, out, " = 1")
}

func TestFileQueryNode(t *testing.T) {
	var buf bytes.Buffer
	r := plainReporter(&buf, false, true)

	rec := search.Record{
		Line:   4,
		Length: 13,
		Text:   "func one() {}",
		Spans:  []search.Span{{Start: 5, End: 8}},
	}
	r.File("a.go", []search.Record{rec})
	assert.Equal(t, "a.go\n5:func one() {}\n", buf.String())
}

func TestFileQueryNodeMultiline(t *testing.T) {
	var buf bytes.Buffer
	r := plainReporter(&buf, false, true)

	rec := search.Record{
		Line:   0,
		Length: 20,
		Text:   "func one() {\n\treturn\n}",
		Spans:  []search.Span{{Start: 5, End: 8}},
	}
	r.File("a.go", []search.Record{rec})

	lines := strings.Split(buf.String(), "\n")
	// Continuation lines align under the first line's text: the "1:"
	// prefix is two characters wide.
	assert.Equal(t, "1:func one() {", lines[1])
	assert.Equal(t, "  \treturn", lines[2])
	assert.Equal(t, "  }", lines[3])
}
