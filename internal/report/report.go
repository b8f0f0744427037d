// Package report renders match records for the terminal: grouped by file
// or prefixed per line, with styled paths, line numbers, and match
// highlights. All user-visible formatting lives here; the search core only
// produces records.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/oxhq/sgrep/internal/search"
)

// Options control rendering.
type Options struct {
	// Color toggles ANSI styling.
	Color bool
	// Column prints 1-based column numbers after the line number.
	Column bool
	// Group prints one file header above its matches instead of a path
	// prefix on every line.
	Group bool
}

// Reporter writes match records. Records for one file are passed together
// so grouping and header placement stay with the reporter, not the caller.
type Reporter struct {
	w    io.Writer
	opts Options

	pathStyle lipgloss.Style
	numStyle  lipgloss.Style
	hitStyle  lipgloss.Style

	printed bool
}

func New(w io.Writer, opts Options) *Reporter {
	return &Reporter{
		w:         w,
		opts:      opts,
		pathStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		numStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
		hitStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("3")),
	}
}

// File renders one file's records in discovery order. Files with no
// records print nothing.
func (r *Reporter) File(path string, records []search.Record) {
	if len(records) == 0 {
		return
	}

	if r.opts.Group {
		if r.printed {
			fmt.Fprintln(r.w)
		}
		fmt.Fprintln(r.w, r.styled(r.pathStyle, path))
	}
	r.printed = true

	for _, rec := range records {
		if rec.Spans == nil {
			r.line(path, rec)
		} else {
			r.node(path, rec)
		}
	}
}

// line prints a single-line pattern match with the hit highlighted.
func (r *Reporter) line(path string, rec search.Record) {
	prefix := r.prefix(path, rec)
	fmt.Fprint(r.w, prefix)

	begin, end := rec.ColByte, rec.ColByte+rec.Length
	if begin > len(rec.Text) {
		begin = len(rec.Text)
	}
	if end > len(rec.Text) {
		end = len(rec.Text)
	}
	fmt.Fprint(r.w, rec.Text[:begin])
	fmt.Fprint(r.w, r.styled(r.hitStyle, rec.Text[begin:end]))
	fmt.Fprintln(r.w, rec.Text[end:])
}

// node prints a query match: the whole captured node, possibly spanning
// many lines, with capture sub-ranges highlighted. Continuation lines are
// indented to align under the first line's text.
func (r *Reporter) node(path string, rec search.Record) {
	prefix := r.prefix(path, rec)
	fmt.Fprint(r.w, prefix)

	indent := strings.Repeat(" ", prefixWidth(path, rec, r.opts))
	pos := 0
	for _, span := range rec.Spans {
		if span.Start < pos || span.End > len(rec.Text) || span.Start > span.End {
			continue
		}
		fmt.Fprint(r.w, indentLines(rec.Text[pos:span.Start], indent))
		fmt.Fprint(r.w, r.styled(r.hitStyle, indentLines(rec.Text[span.Start:span.End], indent)))
		pos = span.End
	}
	fmt.Fprintln(r.w, indentLines(rec.Text[pos:], indent))
}

// prefix builds the path/line/column lead-in for one record.
func (r *Reporter) prefix(path string, rec search.Record) string {
	var b strings.Builder
	if !r.opts.Group {
		b.WriteString(r.styled(r.pathStyle, path))
		b.WriteByte(':')
	}
	b.WriteString(r.styled(r.numStyle, fmt.Sprintf("%d", rec.Line+1)))
	b.WriteByte(':')
	if r.opts.Column {
		fmt.Fprintf(&b, "%d:", rec.Col+1)
	}
	return b.String()
}

// prefixWidth is the visible width of the lead-in, used to indent
// continuation lines of multi-line nodes.
func prefixWidth(path string, rec search.Record, opts Options) int {
	n := len(fmt.Sprintf("%d", rec.Line+1)) + 1
	if !opts.Group {
		n += len(path) + 1
	}
	if opts.Column {
		n += len(fmt.Sprintf("%d", rec.Col+1)) + 1
	}
	return n
}

func indentLines(s, indent string) string {
	if indent == "" {
		return s
	}
	return strings.ReplaceAll(s, "\n", "\n"+indent)
}

func (r *Reporter) styled(style lipgloss.Style, s string) string {
	if !r.opts.Color {
		return s
	}
	return style.Render(s)
}
