package search

import "sort"

// lineIndex gives byte offsets and text for each line of a source file.
// Built once per file, on first use. Lines split on the same break set
// the position translator counts: "\n", "\r\n", and a bare "\r", so line
// numbers derived here always agree with translator deltas.
type lineIndex struct {
	starts []int
	lines  []string
}

func newLineIndex(src string) *lineIndex {
	idx := &lineIndex{}
	start := 0
	for i := 0; i < len(src); {
		switch src[i] {
		case '\n':
			idx.add(start, src[start:i])
			i++
			start = i
		case '\r':
			end := i
			i++
			if i < len(src) && src[i] == '\n' {
				i++
			}
			idx.add(start, src[start:end])
			start = i
		default:
			i++
		}
	}
	idx.add(start, src[start:])
	return idx
}

func (ix *lineIndex) add(start int, text string) {
	ix.starts = append(ix.starts, start)
	ix.lines = append(ix.lines, text)
}

// line returns the text of the 0-based line, or false when out of range.
func (ix *lineIndex) line(n int) (string, bool) {
	if n < 0 || n >= len(ix.lines) {
		return "", false
	}
	return ix.lines[n], true
}

// lineStart returns the byte offset of the 0-based line within the source.
func (ix *lineIndex) lineStart(n int) int {
	return ix.starts[n]
}

// lineOf returns the 0-based line containing the byte offset.
func (ix *lineIndex) lineOf(byteOff int) int {
	return sort.Search(len(ix.starts), func(i int) bool {
		return ix.starts[i] > byteOff
	}) - 1
}
