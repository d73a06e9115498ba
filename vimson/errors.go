package vimson

import (
	"errors"
	"fmt"
)

// Sentinel errors. Every *ParseError unwraps to the sentinel of its Kind.
var (
	ErrUnexpectedEOF      = errors.New("vimson: unexpected end of input")
	ErrExpectedToken      = errors.New("vimson: expected token")
	ErrIllegalEscape      = errors.New("vimson: illegal escape character")
	ErrUnterminatedString = errors.New("vimson: unterminated string")
	ErrNumericOverflow    = errors.New("vimson: numeric overflow")
	ErrMalformedNumber    = errors.New("vimson: malformed number")
	ErrDepthExceeded      = errors.New("vimson: nesting too deep")
	ErrTrailingData       = errors.New("vimson: trailing data after value")

	ErrTypeMismatch = errors.New("vimson: type mismatch")
	ErrIndexRange   = errors.New("vimson: index out of range")
	ErrUnsupported  = errors.New("vimson: unsupported value")
)

// ErrorKind classifies parse failures.
type ErrorKind uint8

const (
	KindUnexpectedEOF ErrorKind = iota + 1
	KindExpectedToken
	KindIllegalEscape
	KindUnterminatedString
	KindNumericOverflow
	KindMalformedNumber
	KindDepthExceeded
	KindTrailingData
)

// String returns the kind name.
func (k ErrorKind) String() string {
	switch k {
	case KindUnexpectedEOF:
		return "UnexpectedEndOfInput"
	case KindExpectedToken:
		return "ExpectedToken"
	case KindIllegalEscape:
		return "IllegalEscape"
	case KindUnterminatedString:
		return "UnterminatedString"
	case KindNumericOverflow:
		return "NumericOverflow"
	case KindMalformedNumber:
		return "MalformedNumber"
	case KindDepthExceeded:
		return "DepthExceeded"
	case KindTrailingData:
		return "TrailingData"
	default:
		return "Unknown"
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindUnexpectedEOF:
		return ErrUnexpectedEOF
	case KindExpectedToken:
		return ErrExpectedToken
	case KindIllegalEscape:
		return ErrIllegalEscape
	case KindUnterminatedString:
		return ErrUnterminatedString
	case KindNumericOverflow:
		return ErrNumericOverflow
	case KindMalformedNumber:
		return ErrMalformedNumber
	case KindDepthExceeded:
		return ErrDepthExceeded
	case KindTrailingData:
		return ErrTrailingData
	default:
		return nil
	}
}

// Position represents a source location.
type Position struct {
	Line   int // 1-based
	Column int // 1-based, in bytes
	Offset int // 0-based byte offset
}

// String returns position as "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// ParseError represents a parsing error with location.
type ParseError struct {
	Kind    ErrorKind
	Token   string // for KindExpectedToken: the token that was required
	Pos     Position
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at %s", e.Message, e.Pos)
}

// Unwrap returns the sentinel error for the error's Kind.
func (e *ParseError) Unwrap() error {
	return e.Kind.sentinel()
}

// TypeError reports access to a Value through the wrong variant.
type TypeError struct {
	Want string
	Got  Type
}

func mismatch(want, got Type) *TypeError {
	return &TypeError{Want: want.String(), Got: got}
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("vimson: expected %s, got %s", e.Want, e.Got)
}

// Unwrap returns ErrTypeMismatch.
func (e *TypeError) Unwrap() error {
	return ErrTypeMismatch
}

// IndexError reports a list index outside the list.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("vimson: index %d out of range [0:%d]", e.Index, e.Len)
}

// Unwrap returns ErrIndexRange.
func (e *IndexError) Unwrap() error {
	return ErrIndexRange
}
