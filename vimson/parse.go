package vimson

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// DefaultMaxDepth is the container nesting limit used when ParseOptions
// leaves MaxDepth unset.
const DefaultMaxDepth = 512

// Tracer receives an event each time the parser enters a grammar
// production. It carries no semantics and exists for debugging.
type Tracer interface {
	Enter(production string, offset int)
}

// TracerFunc adapts a function to the Tracer interface.
type TracerFunc func(production string, offset int)

// Enter calls f.
func (f TracerFunc) Enter(production string, offset int) {
	f(production, offset)
}

// ParseOptions configures the parser behavior.
type ParseOptions struct {
	// MaxDepth bounds list/dict nesting. Zero means DefaultMaxDepth,
	// a negative value disables the limit.
	MaxDepth int

	// RejectTrailing fails the parse when anything but whitespace follows
	// the top-level value. By default trailing input is ignored.
	RejectTrailing bool

	// Tracer, if set, is notified on entry to every production.
	Tracer Tracer
}

// Parse parses VIMSON text into a Value.
func Parse(input string) (*Value, error) {
	return ParseWithOptions(input, ParseOptions{})
}

// ParseBytes parses VIMSON text held in a byte slice.
func ParseBytes(data []byte) (*Value, error) {
	return ParseWithOptions(string(data), ParseOptions{})
}

// ParseWithOptions parses with full options. On failure the returned error
// is a *ParseError and no partial value is returned.
func ParseWithOptions(input string, opts ParseOptions) (*Value, error) {
	maxDepth := opts.MaxDepth
	if maxDepth == 0 {
		maxDepth = DefaultMaxDepth
	}

	p := &parser{
		cur:      newCursor(input),
		maxDepth: maxDepth,
		tracer:   opts.Tracer,
	}

	v, err := p.parseValue(0)
	if err != nil {
		return nil, err
	}

	if opts.RejectTrailing && !p.cur.atEnd() {
		ch, _ := p.cur.peekRaw(0)
		return nil, p.cur.fail(KindTrailingData, p.cur.pos, "unexpected %q after value", ch)
	}

	return v, nil
}

// MustParse is like Parse but panics on error. Intended for literals in
// tests and initializers.
func MustParse(input string) *Value {
	v, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return v
}

type parser struct {
	cur      *cursor
	maxDepth int
	tracer   Tracer
}

func (p *parser) trace(production string) {
	if p.tracer != nil {
		p.tracer.Enter(production, p.cur.pos)
	}
}

// parseValue dispatches on the lookahead byte.
func (p *parser) parseValue(depth int) (*Value, error) {
	p.trace("value")

	switch {
	case p.cur.match('{'):
		return p.parseDict(depth + 1)
	case p.cur.match('['):
		return p.parseList(depth + 1)
	case p.cur.matchAny(`'"`):
		s, err := p.parseString()
		if err != nil {
			return nil, err
		}
		return Str(s), nil
	}
	return p.parseNumberOrFloat()
}

// parseNumberOrFloat scans the digit run without consuming it: a '.' inside
// the run makes the literal a float.
func (p *parser) parseNumberOrFloat() (*Value, error) {
	p.trace("number_or_float")
	p.cur.skip()

	off := 0
	if p.cur.matchAt('-', 0) {
		off = 1
	}
	for {
		ch, ok := p.cur.peekRaw(off)
		if !ok || (ch != '.' && !isDigit(ch)) {
			break
		}
		if ch == '.' {
			f, err := p.parseFloat()
			if err != nil {
				return nil, err
			}
			return Float(f), nil
		}
		off++
	}

	n, err := p.parseNumber()
	if err != nil {
		return nil, err
	}
	return Int(n), nil
}

// scanDigits consumes an optional '-' and a run of bytes accepted by allow,
// requiring the run to start with a digit. It returns the literal.
func (p *parser) scanDigits(allow func(byte) bool) (string, error) {
	p.cur.skip()
	start := p.cur.pos

	if p.cur.match('-') {
		p.cur.advance(1)
	}

	ch, ok := p.cur.peekRaw(0)
	if !ok {
		return "", p.cur.fail(KindUnexpectedEOF, p.cur.pos, "unexpected end of input")
	}
	if !isDigit(ch) {
		return "", p.cur.fail(KindMalformedNumber, p.cur.pos, "expected digit, got %q", ch)
	}

	for {
		ch, ok := p.cur.peekRaw(0)
		if !ok || !allow(ch) {
			break
		}
		p.cur.advance(1)
	}
	return p.cur.in[start:p.cur.pos], nil
}

// parseNumber parses '-'? digit+ as a 32-bit integer.
func (p *parser) parseNumber() (int32, error) {
	p.trace("number")

	lit, err := p.scanDigits(isDigit)
	if err != nil {
		return 0, err
	}
	start := p.cur.pos - len(lit)

	n, err := strconv.ParseInt(lit, 10, 32)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, p.cur.fail(KindNumericOverflow, start, "integer %s out of range", lit)
		}
		return 0, p.cur.fail(KindMalformedNumber, start, "malformed integer %s", lit)
	}
	return int32(n), nil
}

// parseFloat parses '-'? digit (digit | '.')* as a double. More than one
// '.' is rejected.
func (p *parser) parseFloat() (float64, error) {
	p.trace("float")

	lit, err := p.scanDigits(func(ch byte) bool { return isDigit(ch) || ch == '.' })
	if err != nil {
		return 0, err
	}
	start := p.cur.pos - len(lit)

	if strings.Count(lit, ".") > 1 {
		return 0, p.cur.fail(KindMalformedNumber, start, "malformed float %s", lit)
	}

	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) && math.IsInf(f, 0) {
			return 0, p.cur.fail(KindNumericOverflow, start, "float %s out of range", lit)
		}
		if !errors.Is(err, strconv.ErrRange) {
			return 0, p.cur.fail(KindMalformedNumber, start, "malformed float %s", lit)
		}
	}
	return f, nil
}

// parseString parses a single- or double-quoted string and returns the
// decoded content.
func (p *parser) parseString() (string, error) {
	p.trace("string")

	switch {
	case p.cur.match('\''):
		return p.parseSingleQuoted()
	case p.cur.match('"'):
		return p.parseDoubleQuoted()
	}
	return "", p.cur.expected(`' or "`, p.cur.pos)
}

// parseSingleQuoted reads '...' where '' stands for one quote.
func (p *parser) parseSingleQuoted() (string, error) {
	open := p.cur.pos
	p.cur.advance(1)

	var sb strings.Builder
	for {
		ch, ok := p.cur.peekRaw(0)
		if !ok {
			return "", p.unterminated('\'', open)
		}
		if ch == '\'' {
			if next, ok := p.cur.peekRaw(1); ok && next == '\'' {
				sb.WriteByte('\'')
				p.cur.advance(2)
				continue
			}
			p.cur.advance(1)
			return sb.String(), nil
		}
		sb.WriteByte(ch)
		p.cur.advance(1)
	}
}

// parseDoubleQuoted reads "..." with backslash escapes.
func (p *parser) parseDoubleQuoted() (string, error) {
	open := p.cur.pos
	p.cur.advance(1)

	var sb strings.Builder
	for {
		ch, ok := p.cur.peekRaw(0)
		if !ok {
			return "", p.unterminated('"', open)
		}
		switch ch {
		case '"':
			p.cur.advance(1)
			return sb.String(), nil
		case '\\':
			p.cur.advance(1)
			escPos := p.cur.pos
			esc, err := p.cur.next()
			if err != nil {
				return "", p.unterminated('"', open)
			}
			switch esc {
			case '\\':
				sb.WriteByte('\\')
			case '"':
				sb.WriteByte('"')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			case 'n':
				sb.WriteByte('\n')
			default:
				return "", p.cur.fail(KindIllegalEscape, escPos, "illegal escape character %q", esc)
			}
		default:
			sb.WriteByte(ch)
			p.cur.advance(1)
		}
	}
}

func (p *parser) unterminated(quote byte, open int) *ParseError {
	e := p.cur.fail(KindUnterminatedString, len(p.cur.in),
		"expected %c to close string opened at %s", quote, p.cur.position(open))
	e.Token = string(quote)
	return e
}

// parseList parses [ (value ','?)* ].
func (p *parser) parseList(depth int) (*Value, error) {
	p.trace("list")

	if !p.cur.match('[') {
		return nil, p.cur.expected("[", p.cur.pos)
	}
	if p.maxDepth > 0 && depth > p.maxDepth {
		return nil, p.cur.fail(KindDepthExceeded, p.cur.pos, "nesting exceeds %d levels", p.maxDepth)
	}
	p.cur.advance(1)

	items := []*Value{}
	for !p.cur.match(']') {
		if p.cur.atEnd() {
			return nil, p.cur.expected("]", p.cur.pos)
		}

		item, err := p.parseValue(depth)
		if err != nil {
			return nil, err
		}
		items = append(items, item)

		if p.cur.match(',') {
			p.cur.advance(1)
		}
	}
	p.cur.advance(1)

	return newList(items), nil
}

// parseDict parses { (string ':' value ','?)* }. Duplicate keys overwrite.
func (p *parser) parseDict(depth int) (*Value, error) {
	p.trace("dictionary")

	if !p.cur.match('{') {
		return nil, p.cur.expected("{", p.cur.pos)
	}
	if p.maxDepth > 0 && depth > p.maxDepth {
		return nil, p.cur.fail(KindDepthExceeded, p.cur.pos, "nesting exceeds %d levels", p.maxDepth)
	}
	p.cur.advance(1)

	dict := newDict()
	for !p.cur.match('}') {
		if p.cur.atEnd() {
			return nil, p.cur.expected("}", p.cur.pos)
		}

		key, err := p.parseString()
		if err != nil {
			return nil, err
		}

		if !p.cur.match(':') {
			return nil, p.cur.expected(":", p.cur.pos)
		}
		p.cur.advance(1)

		val, err := p.parseValue(depth)
		if err != nil {
			return nil, err
		}
		dict.put(key, val)

		if p.cur.match(',') {
			p.cur.advance(1)
		}
	}
	p.cur.advance(1)

	return dict, nil
}
