package search

import "unicode/utf8"

// tokenLineCol locates a byte offset inside a token relative to the token's
// start. It returns how many line breaks precede the offset, the rune
// column on that line, and the byte offset of that column within the line.
// On the token's first line both column values are relative to the token
// start; the caller adds the token's own line position.
//
// Line breaks: "\n", a bare "\r", and the pair "\r\n" each count once.
// Columns reset to zero immediately after a break, so an offset landing on
// the first character of a new line reports column 0.
func tokenLineCol(token string, byteOff int) (lineDelta, col, colByte int) {
	prevCR := false
	for i := 0; i < byteOff && i < len(token); {
		r, size := utf8.DecodeRuneInString(token[i:])
		switch {
		case r == '\n' && prevCR:
			// Second half of a CRLF pair; the break was already counted
			// at the '\r'.
			col, colByte = 0, 0
			prevCR = false
		case r == '\n':
			lineDelta++
			col, colByte = 0, 0
		case r == '\r':
			lineDelta++
			col, colByte = 0, 0
			prevCR = true
		default:
			col++
			colByte += size
			prevCR = false
		}
		i += size
	}
	return lineDelta, col, colByte
}
