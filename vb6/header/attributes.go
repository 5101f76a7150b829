package header

import (
	"strings"

	"github.com/dhamidi/vbt/vb6/diag"
	"github.com/dhamidi/vbt/vb6/source"
)

// Attributes are the "Attribute VB_* = value" lines that follow the
// properties block.
type Attributes struct {
	Name            string
	GlobalNameSpace bool
	Creatable       bool
	PredeclaredID   bool
	Exposed         bool
	Description     string
	// Ext holds VB_Ext_KEY pairs, keyed by their first string.
	Ext map[string]string
}

// DefaultAttributes returns the values VB6 assumes for a class whose
// attribute lines leave a flag unset.
func DefaultAttributes() Attributes {
	return Attributes{Creatable: true}
}

type attributeSetter func(r *reader, a *Attributes) bool

var attributeSetters = map[string]attributeSetter{
	"VB_Name": func(r *reader, a *Attributes) bool {
		v, ok := r.quoted()
		a.Name = v
		return ok && v != ""
	},
	"VB_GlobalNameSpace": boolAttribute(func(a *Attributes, v bool) { a.GlobalNameSpace = v }),
	"VB_Creatable":       boolAttribute(func(a *Attributes, v bool) { a.Creatable = v }),
	"VB_PredeclaredId":   boolAttribute(func(a *Attributes, v bool) { a.PredeclaredID = v }),
	"VB_Exposed":         boolAttribute(func(a *Attributes, v bool) { a.Exposed = v }),
	"VB_Description": func(r *reader, a *Attributes) bool {
		v, ok := r.quoted()
		a.Description = v
		return ok
	},
	"VB_Ext_KEY": func(r *reader, a *Attributes) bool {
		key, ok := r.quoted()
		if !ok {
			return false
		}
		r.c.TakeSpaces()
		if _, ok := r.c.Take(",", source.CaseSensitive); !ok {
			return false
		}
		r.c.TakeSpaces()
		value, ok := r.quoted()
		if !ok {
			return false
		}
		if a.Ext == nil {
			a.Ext = make(map[string]string)
		}
		a.Ext[key] = value
		return true
	},
}

// boolAttribute accepts the literals True and False. Another spelling of
// either is taken with a KeywordCase warning.
func boolAttribute(set func(a *Attributes, v bool)) attributeSetter {
	return func(r *reader, a *Attributes) bool {
		start := r.c.Offset()
		word, ok := r.c.TakeIdentifierChars()
		if !ok {
			return false
		}
		for _, lit := range []string{"True", "False"} {
			if !strings.EqualFold(string(word), lit) {
				continue
			}
			if string(word) != lit {
				r.diags.AddExpected(start, diag.CategoryKeywordCase, string(word), lit)
			}
			set(a, lit == "True")
			return true
		}
		return false
	}
}

// AttributeNames lists the attribute names ParseAttributes recognizes.
func AttributeNames() []string {
	return []string{"VB_Name", "VB_GlobalNameSpace", "VB_Creatable", "VB_PredeclaredId", "VB_Exposed", "VB_Description", "VB_Ext_KEY"}
}

// ParseAttributes reads consecutive Attribute lines. It stops at the first
// line that does not start with the Attribute keyword and leaves the cursor
// at the start of that line.
//
// An unknown name, a malformed value or a missing VB_Name leave the outcome
// without a value.
func ParseAttributes(c *source.Cursor) diag.Outcome[Attributes] {
	r := newReader(c)
	attrs := DefaultAttributes()
	named := false

	for r.atLineKeyword("Attribute") {
		c.TakeSpaces()
		r.keyword("Attribute")
		r.spaces()

		nameStart := c.Offset()
		name, ok := c.TakeIdentifierChars()
		if !ok {
			r.diags.Add(nameStart, diag.CategoryUnknownAttribute, r.peekWord())
			return diag.None[Attributes](r.diagnostics())
		}
		set, known := attributeSetters[string(name)]
		if !known {
			r.diags.Add(nameStart, diag.CategoryUnknownAttribute, string(name))
			return diag.None[Attributes](r.diagnostics())
		}

		c.TakeSpaces()
		if _, ok := c.Take("=", source.CaseSensitive); !ok {
			r.diags.AddExpected(c.Offset(), diag.CategoryKeywordMissing, r.peekWord(), "=")
			return diag.None[Attributes](r.diagnostics())
		}
		c.TakeSpaces()

		valueStart := c.Offset()
		if !set(r, &attrs) {
			r.diags.AddExpected(valueStart, diag.CategoryInvalidAttributeValue, r.restOfLine(valueStart), string(name))
			return diag.None[Attributes](r.diagnostics())
		}
		if string(name) == "VB_Name" {
			named = true
		}
		r.endLine()
	}

	if !named {
		r.diags.AddExpected(c.Offset(), diag.CategoryMissingClassName, "", "VB_Name")
		return diag.None[Attributes](r.diagnostics())
	}
	return diag.Some(attrs, r.diagnostics())
}

// atLineKeyword looks past leading blanks for word without consuming
// anything.
func (r *reader) atLineKeyword(word string) bool {
	i := 0
	for {
		b, ok := r.c.PeekByteAt(i)
		if !ok || !source.IsSpace(b) {
			break
		}
		i++
	}
	text, ok := r.c.Peek(i + len(word))
	if !ok || !matchesFold(text[i:], word) {
		return false
	}
	next, ok := r.c.PeekByteAt(i + len(word))
	return !ok || !source.IsIdentifierChar(next)
}

// restOfLine returns the text from start to the end of its line.
func (r *reader) restOfLine(start int) string {
	return string(r.c.Input()[start:r.c.EndOfLine(start)])
}
