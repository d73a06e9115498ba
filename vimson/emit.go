package vimson

import (
	"io"
	"math"
	"strconv"
	"strings"
)

// Serialize converts a Value to canonical VIMSON text.
func (v *Value) Serialize() string {
	e := &emitter{}
	e.emit(v)
	return e.sb.String()
}

// WriteTo writes the canonical text of v to w.
func (v *Value) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, v.Serialize())
	return int64(n), err
}

// Serialize is shorthand for v.Serialize().
func Serialize(v *Value) string {
	return v.Serialize()
}

type emitter struct {
	sb strings.Builder
}

func (e *emitter) emit(v *Value) {
	switch v.Type() {
	case TypeInt:
		n, _ := v.AsInt()
		e.sb.WriteString(strconv.FormatInt(int64(n), 10))

	case TypeFloat:
		e.emitFloat(v.floatVal)

	case TypeStr:
		e.emitString(v.strVal)

	case TypeList:
		e.sb.WriteByte('[')
		for _, item := range v.listVal {
			e.emit(item)
			e.sb.WriteByte(',')
		}
		e.sb.WriteByte(']')

	case TypeDict:
		e.sb.WriteByte('{')
		it := v.dictVal.Iterator()
		for it.Next() {
			e.emitString(it.Key().(string))
			e.sb.WriteByte(':')
			e.emit(it.Value().(*Value))
			e.sb.WriteByte(',')
		}
		e.sb.WriteByte('}')
	}
}

// emitFloat writes the shortest decimal that round-trips, never in
// exponent form, and always with a '.' so it re-parses as a float.
func (e *emitter) emitFloat(f float64) {
	switch {
	case math.IsNaN(f):
		e.sb.WriteString("nan")
		return
	case math.IsInf(f, 1):
		e.sb.WriteString("inf")
		return
	case math.IsInf(f, -1):
		e.sb.WriteString("-inf")
		return
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	e.sb.WriteString(s)
}

// emitString writes s single-quoted.
func (e *emitter) emitString(s string) {
	e.sb.WriteByte('\'')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			e.sb.WriteString(`\\`)
		case '\'':
			e.sb.WriteString(`''`)
		case '\n':
			e.sb.WriteString(`\n`)
		case '\r':
			e.sb.WriteString(`\r`)
		case '\t':
			e.sb.WriteString(`\t`)
		default:
			e.sb.WriteByte(c)
		}
	}
	e.sb.WriteByte('\'')
}

// Quote returns s in canonical single-quoted form.
func Quote(s string) string {
	e := &emitter{}
	e.emitString(s)
	return e.sb.String()
}
