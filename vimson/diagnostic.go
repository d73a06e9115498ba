package vimson

import (
	"errors"
	"strings"
)

// diagnosticRadius is how many bytes of context are shown on each side of
// the failure offset.
const diagnosticRadius = 5

// Diagnostic is the two-line report for a parse failure: a window of the
// input around the failure and a caret line pointing into it.
type Diagnostic struct {
	Context string // up to 11 bytes of input, control bytes shown as spaces
	Caret   string // padding, "^ " and the error message
}

// String joins the two lines.
func (d Diagnostic) String() string {
	return d.Context + "\n" + d.Caret
}

// NewDiagnostic builds the report for err against the input it came from.
func NewDiagnostic(input string, err *ParseError) Diagnostic {
	off := err.Pos.Offset
	if off < 0 {
		off = 0
	}
	if off > len(input) {
		off = len(input)
	}
	begin := max(off-diagnosticRadius, 0)
	end := min(off+diagnosticRadius+1, len(input))

	var ctx strings.Builder
	for i := begin; i < end; i++ {
		c := input[i]
		if c < 0x20 || c == 0x7f {
			c = ' '
		}
		ctx.WriteByte(c)
	}

	return Diagnostic{
		Context: ctx.String(),
		Caret:   strings.Repeat(" ", off-begin) + "^ " + err.Message,
	}
}

// FormatDiagnostic renders err for display. Errors that are not parse
// errors are returned as their message.
func FormatDiagnostic(input string, err error) string {
	var pe *ParseError
	if !errors.As(err, &pe) {
		return err.Error()
	}
	return NewDiagnostic(input, pe).String()
}
