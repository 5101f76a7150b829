package header

import (
	"strings"

	"github.com/dhamidi/vbt/vb6/diag"
	"github.com/dhamidi/vbt/vb6/source"
)

// FormHeader is the preamble of a form, user control, property page or
// designer file:
//
//	VERSION 5.00
//	Object = "{831FDD16-0C5C-11D2-A9FC-0000F8754DA1}#2.0#0"; "MSCOMCTL.OCX"
//	Begin VB.Form Form1
//	   Caption = "Form1"
//	   Begin VB.CommandButton Command1
//	      Caption = "OK"
//	   End
//	End
//	Attribute VB_Name = "Form1"
type FormHeader struct {
	Version    Version
	Objects    []ObjectReference
	Form       Control
	Attributes Attributes
}

// ObjectReference is an "Object =" line naming a component the form uses.
// Reference is the registry reference or relative project path, File the
// optional component file name.
type ObjectReference struct {
	Reference string
	File      string
}

// Property is one "key = value" line of a control. Value is kept as
// written, quotes included, without a trailing comment.
type Property struct {
	Key   string
	Value string
}

type PropertyGroup struct {
	Name string
	// GUID is the class id that may follow the group name, braces included.
	GUID       string
	Properties []Property
	Groups     []PropertyGroup
}

// Control is a Begin ... End block. Namespace and Type come from the
// qualified type such as VB.CommandButton; designers name their type with a
// class id instead, which is kept as Type with an empty Namespace.
type Control struct {
	Namespace  string
	Type       string
	Name       string
	Properties []Property
	Groups     []PropertyGroup
	Controls   []Control
}

// Property returns the raw value of the first property called key.
func (c Control) Property(key string) (string, bool) {
	for _, p := range c.Properties {
		if strings.EqualFold(p.Key, key) {
			return p.Value, true
		}
	}
	return "", false
}

// ParseFormHeader reads the version line, the Object lines, the top-level
// control block and the attributes. Like ParseClassHeader it stops at the
// first part that comes back empty and keeps the diagnostics of every part
// that ran.
func ParseFormHeader(c *source.Cursor) diag.Outcome[FormHeader] {
	var ds []diag.Diagnostic
	var h FormHeader

	version := ParseVersion(c, KindForm)
	ds = append(ds, version.Diagnostics()...)
	v, ok := version.Get()
	if !ok {
		return diag.None[FormHeader](ds)
	}
	h.Version = v

	r := newReader(c)
	h.Objects = r.objects()
	form, ok := r.topControl()
	ds = append(ds, r.diagnostics()...)
	if !ok {
		return diag.None[FormHeader](ds)
	}
	h.Form = form

	attrs := ParseAttributes(c)
	ds = append(ds, attrs.Diagnostics()...)
	a, ok := attrs.Get()
	if !ok {
		return diag.None[FormHeader](ds)
	}
	h.Attributes = a

	return diag.Some(h, ds)
}

func (r *reader) objects() []ObjectReference {
	var refs []ObjectReference
	for {
		r.skipBlankLines()
		if !r.atObjectLine() {
			return refs
		}
		r.c.TakeSpaces()
		r.keyword("Object")
		r.c.TakeSpaces()
		r.c.Take("=", source.CaseSensitive)
		r.c.TakeSpaces()

		var ref ObjectReference
		if v, ok := r.quoted(); ok {
			ref.Reference = v
		} else {
			raw, _ := r.c.TakeWhile(func(b byte) bool {
				return b != ';' && b != '\'' && !source.IsNewline(b)
			})
			ref.Reference = strings.TrimSpace(string(raw))
		}
		r.c.TakeSpaces()
		if _, ok := r.c.Take(";", source.CaseSensitive); ok {
			r.c.TakeSpaces()
			ref.File, _ = r.quoted()
		}
		refs = append(refs, ref)
		r.endLine()
	}
}

// atObjectLine reports whether the line is "Object =", which tells it
// apart from a statement that merely starts with the word.
func (r *reader) atObjectLine() bool {
	if !r.atLineKeyword("Object") {
		return false
	}
	rest := r.c.Input()[r.c.Offset():]
	i := strings.IndexFunc(string(rest), func(ch rune) bool { return ch != ' ' && ch != '\t' })
	if i < 0 {
		return false
	}
	after := strings.TrimLeft(string(rest[i+len("Object"):]), " \t")
	return strings.HasPrefix(after, "=")
}

func (r *reader) skipBlankLines() {
	for !r.c.IsEmpty() && r.atBlankLine() {
		r.endLine()
	}
}

func (r *reader) topControl() (Control, bool) {
	r.skipBlankLines()
	r.c.TakeSpaces()
	if !r.requireKeyword("Begin") {
		return Control{}, false
	}
	return r.control()
}

// control reads a block whose Begin keyword has been consumed.
func (r *reader) control() (Control, bool) {
	var ctl Control
	r.c.TakeSpaces()

	typeStart := r.c.Offset()
	qualified, ok := r.c.TakeWhile(isValueChar)
	if !ok {
		r.diags.AddExpected(typeStart, diag.CategoryKeywordMissing, r.peekWord(), "control type")
		return ctl, false
	}
	switch ns, typ, found := strings.Cut(string(qualified), "."); {
	case found && ns != "" && typ != "":
		ctl.Namespace, ctl.Type = ns, typ
	case strings.HasPrefix(string(qualified), "{"):
		ctl.Type = string(qualified)
	default:
		r.diags.AddExpected(typeStart, diag.CategoryKeywordMissing, string(qualified), ".")
		return ctl, false
	}

	r.c.TakeSpaces()
	nameStart := r.c.Offset()
	name, ok := r.c.TakeIdentifierChars()
	if !ok {
		r.diags.AddExpected(nameStart, diag.CategoryKeywordMissing, r.peekWord(), "control name")
		return ctl, false
	}
	ctl.Name = string(name)
	r.endLine()

	for {
		if r.c.IsEmpty() {
			r.diags.AddExpected(r.c.Offset(), diag.CategoryKeywordMissing, "", "End")
			return ctl, false
		}
		r.c.TakeSpaces()
		switch {
		case r.atBlankLine():
			r.endLine()
		case r.keyword("BeginProperty"):
			g, ok := r.propertyGroup()
			if !ok {
				return ctl, false
			}
			ctl.Groups = append(ctl.Groups, g)
		case r.keyword("Begin"):
			child, ok := r.control()
			if !ok {
				return ctl, false
			}
			ctl.Controls = append(ctl.Controls, child)
		case r.keyword("End"):
			r.endLine()
			return ctl, true
		default:
			p, ok := r.controlProperty()
			if !ok {
				return ctl, false
			}
			ctl.Properties = append(ctl.Properties, p)
		}
	}
}

// propertyGroup reads a BeginProperty ... EndProperty group whose keyword
// has been consumed.
func (r *reader) propertyGroup() (PropertyGroup, bool) {
	var g PropertyGroup
	r.c.TakeSpaces()
	nameStart := r.c.Offset()
	name, ok := r.c.TakeWhile(func(b byte) bool { return isValueChar(b) && b != '{' })
	if !ok {
		r.diags.AddExpected(nameStart, diag.CategoryKeywordMissing, r.peekWord(), "property name")
		return g, false
	}
	g.Name = string(name)
	r.c.TakeSpaces()
	if guid, ok := r.c.TakeWhile(isValueChar); ok && strings.HasPrefix(string(guid), "{") {
		g.GUID = string(guid)
	} else if ok {
		r.diags.Add(r.c.Offset()-len(guid), diag.CategoryUnexpectedText, string(guid))
	}
	r.endLine()

	for {
		if r.c.IsEmpty() {
			r.diags.AddExpected(r.c.Offset(), diag.CategoryKeywordMissing, "", "EndProperty")
			return g, false
		}
		r.c.TakeSpaces()
		switch {
		case r.atBlankLine():
			r.endLine()
		case r.keyword("EndProperty"):
			r.endLine()
			return g, true
		case r.keyword("BeginProperty"):
			sub, ok := r.propertyGroup()
			if !ok {
				return g, false
			}
			g.Groups = append(g.Groups, sub)
		default:
			p, ok := r.controlProperty()
			if !ok {
				return g, false
			}
			g.Properties = append(g.Properties, p)
		}
	}
}

// controlProperty reads "key = value". Keys may carry an index, as in
// TabCaption(0). Quoted values may contain apostrophes.
func (r *reader) controlProperty() (Property, bool) {
	keyStart := r.c.Offset()
	key, ok := r.c.TakeWhile(func(b byte) bool { return isValueChar(b) && b != '=' })
	if !ok {
		r.diags.Add(keyStart, diag.CategoryUnknownProperty, r.peekWord())
		return Property{}, false
	}

	r.c.TakeSpaces()
	if _, ok := r.c.Take("=", source.CaseSensitive); !ok {
		r.diags.AddExpected(r.c.Offset(), diag.CategoryKeywordMissing, r.peekWord(), "=")
		return Property{}, false
	}
	r.c.TakeSpaces()

	rest := r.c.Input()[r.c.Offset():]
	end, quoted := 0, false
	for end < len(rest) && !source.IsNewline(rest[end]) {
		if rest[end] == '"' {
			quoted = !quoted
		} else if rest[end] == '\'' && !quoted {
			break
		}
		end++
	}
	value := strings.TrimRight(string(rest[:end]), " \t")
	r.c.Forward(len(value))
	r.endLine()
	return Property{Key: string(key), Value: value}, true
}
