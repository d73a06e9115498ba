package vimson

import "fmt"

// cursor is the parser's view over the input: an immutable buffer and a
// read offset. Lookahead helpers skip whitespace before looking; the raw
// helpers used inside string bodies do not.
type cursor struct {
	in  string
	pos int
}

func newCursor(in string) *cursor {
	return &cursor{in: in}
}

// skip advances over space, tab, CR and LF.
func (c *cursor) skip() {
	for c.pos < len(c.in) {
		switch c.in[c.pos] {
		case ' ', '\t', '\r', '\n':
			c.pos++
		default:
			return
		}
	}
}

// match skips whitespace and reports whether the next byte is ch.
func (c *cursor) match(ch byte) bool {
	return c.matchAt(ch, 0)
}

// matchAt skips whitespace and reports whether the byte off positions ahead
// is ch. Bytes between the current position and off are not skipped.
func (c *cursor) matchAt(ch byte, off int) bool {
	c.skip()
	b, ok := c.peekRaw(off)
	return ok && b == ch
}

// matchAny reports whether the next non-whitespace byte is one of chars.
func (c *cursor) matchAny(chars string) bool {
	for i := 0; i < len(chars); i++ {
		if c.match(chars[i]) {
			return true
		}
	}
	return false
}

// atEnd skips whitespace and reports whether the input is exhausted.
func (c *cursor) atEnd() bool {
	c.skip()
	return c.pos >= len(c.in)
}

// peekRaw returns the byte off positions ahead without skipping whitespace.
func (c *cursor) peekRaw(off int) (byte, bool) {
	i := c.pos + off
	if i < 0 || i >= len(c.in) {
		return 0, false
	}
	return c.in[i], true
}

// next consumes and returns one byte.
func (c *cursor) next() (byte, error) {
	if c.pos >= len(c.in) {
		return 0, c.fail(KindUnexpectedEOF, c.pos, "unexpected end of input")
	}
	ch := c.in[c.pos]
	c.pos++
	return ch, nil
}

func (c *cursor) advance(n int) {
	c.pos += n
	if c.pos > len(c.in) {
		c.pos = len(c.in)
	}
}

// position converts a byte offset into a line/column position.
func (c *cursor) position(offset int) Position {
	if offset > len(c.in) {
		offset = len(c.in)
	}
	line, col := 1, 1
	for i := 0; i < offset; i++ {
		if c.in[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return Position{Line: line, Column: col, Offset: offset}
}

func (c *cursor) fail(kind ErrorKind, offset int, format string, args ...interface{}) *ParseError {
	return &ParseError{
		Kind:    kind,
		Pos:     c.position(offset),
		Message: fmt.Sprintf(format, args...),
	}
}

func (c *cursor) expected(tok string, offset int) *ParseError {
	e := c.fail(KindExpectedToken, offset, "expected %s", tok)
	e.Token = tok
	return e
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}
