// Package header reads the preamble of VB6 class files: the VERSION line,
// the BEGIN ... END property block and the Attribute lines. Form, user
// control, property page and designer files have a preamble of their own,
// read by ParseFormHeader: the version, Object lines, the tree of control
// blocks and the same attributes.
//
// The parsers work on a source.Cursor directly rather than on tokens, since
// the preamble is line oriented and its values are not VB expressions. Each
// parser consumes what it recognizes and reports problems as diagnostics.
// Cosmetic deviations are warnings and never cost the value; structural ones
// leave the outcome empty.
package header

import (
	"path/filepath"
	"strings"

	"github.com/dhamidi/vbt/vb6/diag"
	"github.com/dhamidi/vbt/vb6/lexer"
	"github.com/dhamidi/vbt/vb6/source"
)

// KindForFile reports which header a file of the given name starts with.
// Standard modules have none.
func KindForFile(path string) (Kind, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".cls":
		return KindClass, true
	case ".frm", ".ctl", ".pag", ".dsr":
		return KindForm, true
	}
	return 0, false
}

type ClassHeader struct {
	Version    Version
	Properties Properties
	Attributes Attributes
}

// ParseClassHeader reads version, properties and attributes in order. The
// first part that comes back empty stops the header; the diagnostics of
// every part that ran are kept.
func ParseClassHeader(c *source.Cursor) diag.Outcome[ClassHeader] {
	var ds []diag.Diagnostic
	var h ClassHeader

	version := ParseVersion(c, KindClass)
	ds = append(ds, version.Diagnostics()...)
	v, ok := version.Get()
	if !ok {
		return diag.None[ClassHeader](ds)
	}
	h.Version = v

	props := ParseProperties(c)
	ds = append(ds, props.Diagnostics()...)
	p, ok := props.Get()
	if !ok {
		return diag.None[ClassHeader](ds)
	}
	h.Properties = p

	attrs := ParseAttributes(c)
	ds = append(ds, attrs.Diagnostics()...)
	a, ok := attrs.Get()
	if !ok {
		return diag.None[ClassHeader](ds)
	}
	h.Attributes = a

	return diag.Some(h, ds)
}

// Preamble is a class header together with the tokens of the code after it.
type Preamble struct {
	Header ClassHeader
	Tokens lexer.TokenStream
}

// ParsePreamble reads the class header of input and tokenizes the rest. When
// the header cannot be read the body is left alone and only the header
// diagnostics are returned.
func ParsePreamble(file string, input []byte) diag.Outcome[Preamble] {
	c := source.NewCursor(file, input)
	header := ParseClassHeader(c)
	h, ok := header.Get()
	if !ok {
		return diag.None[Preamble](header.Diagnostics())
	}

	tokens := lexer.TokenizeCursor(c)
	ds := append(append([]diag.Diagnostic(nil), header.Diagnostics()...), tokens.Diagnostics()...)
	return diag.Some(Preamble{Header: h, Tokens: tokens.Value()}, ds)
}
