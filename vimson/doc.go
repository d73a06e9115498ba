// Package vimson implements VIMSON, the JSON-like text format used by the
// Vim editor's native serialization (string(), :let, viminfo style data).
//
// # Data Model
//
// A Value holds exactly one of five variants:
//
//	Int    32-bit signed integer       42, -5
//	Float  64-bit IEEE double          3.14, -0.5
//	Str    raw byte string             'it''s', "tab\there"
//	List   ordered sequence of Values  [1, 'a', [2]]
//	Dict   string-keyed map            {'a': 1, "b": [2]}
//
// Dict keys are unique and iterate in byte-wise sorted order, not insertion
// order. Function references are not supported.
//
// # Text Syntax
//
// Single-quoted strings have one escape: a doubled quote ('') stands for a
// literal quote. Backslashes are literal. Double-quoted strings recognise
// \\, \", \t, \r and \n; any other escape is an error.
//
// Numbers are integers unless the digit run contains a '.', in which case
// the literal is a float. Exponents are not part of the grammar.
//
// Commas between elements are optional and whitespace (space, tab, CR, LF)
// may appear between any two tokens.
//
// # Canonical Form
//
// Serialize produces a single line with no whitespace: strings are always
// single-quoted, every list element and dict entry is followed by a comma,
// dict entries are emitted in key order, and floats always carry a '.':
//
//	{'a':[1,2.5,'it''s',],'b':{},}
//
// The output escapes backslash, LF, CR and TAB with backslash sequences,
// which single-quoted input does not decode; strings containing those bytes
// therefore do not survive a Serialize/Parse round trip unchanged.
//
// # Errors
//
// Parse failures are returned as *ParseError carrying a Kind, the byte
// offset and line:column of the failure. FormatDiagnostic renders the
// two-line caret report for display.
package vimson
