// Package vbp reads VB6 project files (.vbp). A project file is a list of
// "Key=Value" lines naming the project's members, references and build
// settings, optionally followed by bracketed sections that add-ins own:
//
//	Type=Exe
//	Reference=*\G{00020430-0000-0000-C000-000000000046}#2.0#0#stdole2.tlb#OLE Automation
//	Form=Form1.frm
//	Module=Module1; Module1.bas
//	Name="Project1"
//	[MS Transaction Server]
//	AutoRefresh=1
//
// Parsing never stops at a bad line. Every problem is reported as a
// diagnostic and the rest of the file is still read.
package vbp

import (
	"strconv"
	"strings"

	"github.com/dhamidi/vbt/vb6/diag"
	"github.com/dhamidi/vbt/vb6/source"
)

// Project is the content of a .vbp file. Member paths are kept as written,
// usually relative to the project file and with backslash separators.
type Project struct {
	Type          string
	References    []Reference
	Objects       []Object
	Modules       []Member
	Classes       []Member
	Forms         []string
	UserControls  []string
	UserDocuments []string
	PropertyPages []string
	Designers     []string
	RelatedDocs   []string
	Version       Version
	// Properties holds every other known key with quotes removed.
	Properties map[string]string
	// Sections maps a bracketed section name to its raw key/value pairs.
	Sections map[string]map[string]string
}

// Reference is a Reference line. Compiled references carry a type library
// id; sub-project references only a path to another .vbp.
type Reference struct {
	GUID        string
	Version     string
	LCID        string
	Path        string
	Description string
	SubProject  bool
}

// Object is an Object line naming an ActiveX component, or a sub-project
// when SubProject is set.
type Object struct {
	GUID       string
	Version    string
	LCID       string
	File       string
	SubProject bool
}

// Member is a "Name; path" line such as Module or Class.
type Member struct {
	Name string
	Path string
}

type Version struct {
	Major         int
	Minor         int
	Revision      int
	AutoIncrement bool
}

// Property returns the value of a key that has no field of its own, such
// as Name, Title or Startup.
func (p Project) Property(key string) (string, bool) {
	v, ok := p.Properties[key]
	return v, ok
}

// Members returns the paths of every source file the project lists, in
// the order modules, classes, forms, user controls, user documents,
// property pages and designers.
func (p Project) Members() []string {
	var out []string
	for _, m := range p.Modules {
		out = append(out, m.Path)
	}
	for _, m := range p.Classes {
		out = append(out, m.Path)
	}
	out = append(out, p.Forms...)
	out = append(out, p.UserControls...)
	out = append(out, p.UserDocuments...)
	out = append(out, p.PropertyPages...)
	out = append(out, p.Designers...)
	return out
}

type valueKind int

const (
	valueRaw valueKind = iota
	valueQuoted
	valueNumber
)

// properties are the keys VB6 writes besides members, references and the
// version numbers.
var properties = map[string]valueKind{
	"ResFile32":               valueQuoted,
	"IconForm":                valueQuoted,
	"Startup":                 valueQuoted,
	"HelpFile":                valueQuoted,
	"Title":                   valueQuoted,
	"ExeName32":               valueQuoted,
	"Path32":                  valueQuoted,
	"Command32":               valueQuoted,
	"Name":                    valueQuoted,
	"Description":             valueQuoted,
	"HelpContextID":           valueQuoted,
	"CompatibleMode":          valueQuoted,
	"VersionCompatible32":     valueQuoted,
	"CompatibleEXE32":         valueQuoted,
	"VersionCompanyName":      valueQuoted,
	"VersionFileDescription":  valueQuoted,
	"VersionLegalCopyright":   valueQuoted,
	"VersionLegalTrademarks":  valueQuoted,
	"VersionProductName":      valueQuoted,
	"VersionComments":         valueQuoted,
	"CondComp":                valueQuoted,
	"DllBaseAddress":          valueRaw,
	"RemoveUnusedControlInfo": valueNumber,
	"ThreadingModel":          valueNumber,
	"DebugStartupComponent":   valueRaw,
	"NoControlUpgrade":        valueNumber,
	"ServerSupportFiles":      valueNumber,
	"CompilationType":         valueNumber,
	"OptimizationType":        valueNumber,
	"FavorPentiumPro(tm)":     valueNumber,
	"CodeViewDebugInfo":       valueNumber,
	"NoAliasing":              valueNumber,
	"BoundsCheck":             valueNumber,
	"OverflowCheck":           valueNumber,
	"FlPointCheck":            valueNumber,
	"FDIVCheck":               valueNumber,
	"UnroundedFP":             valueNumber,
	"StartMode":               valueNumber,
	"Unattended":              valueNumber,
	"Retained":                valueNumber,
	"ThreadPerObject":         valueNumber,
	"MaxNumberOfThreads":      valueNumber,
	"DebugStartupOption":      valueNumber,
	"UseExistingBrowser":      valueNumber,
}

// projectTypes are the values of the Type key.
var projectTypes = []string{"Exe", "OleDll", "Control", "OleExe"}

type parser struct {
	c       *source.Cursor
	diags   *diag.Collector
	project Project
	section string
}

// Parse reads a whole project file. The outcome always carries a project;
// lines that could not be read leave their diagnostics behind.
func Parse(c *source.Cursor) diag.Outcome[Project] {
	p := &parser{
		c:     c,
		diags: diag.NewCollector(c.File()),
		project: Project{
			Type:       "Exe",
			Properties: map[string]string{},
			Sections:   map[string]map[string]string{},
		},
	}
	for !c.IsEmpty() {
		p.line()
	}
	return diag.Some(p.project, p.diags.Diagnostics())
}

func (p *parser) line() {
	p.c.TakeSpaces()
	start := p.c.Offset()
	body, _, _ := p.c.TakeLine()
	text := strings.TrimRight(string(body), " \t")
	if text == "" {
		return
	}

	if strings.HasPrefix(text, "[") {
		name, ok := strings.CutSuffix(text[1:], "]")
		if !ok {
			p.diags.AddExpected(start+len(text), diag.CategoryKeywordMissing, text, "]")
			return
		}
		p.section = name
		if p.project.Sections[name] == nil {
			p.project.Sections[name] = map[string]string{}
		}
		return
	}

	key, value, ok := strings.Cut(text, "=")
	if !ok {
		p.diags.AddExpected(start+len(text), diag.CategoryKeywordMissing, text, "=")
		return
	}
	valueStart := start + len(key) + 1
	if p.section != "" {
		p.project.Sections[p.section][key] = value
		return
	}
	p.property(start, key, valueStart, value)
}

func (p *parser) property(start int, key string, at int, value string) {
	switch key {
	case "Type":
		for _, t := range projectTypes {
			if value == t {
				p.project.Type = t
				return
			}
		}
		p.diags.Add(at, diag.CategoryInvalidPropertyValue, value)
	case "Reference":
		if ref, ok := p.reference(at, value); ok {
			p.project.References = append(p.project.References, ref)
		}
	case "Object":
		if obj, ok := p.object(at, value); ok {
			p.project.Objects = append(p.project.Objects, obj)
		}
	case "Module":
		if m, ok := p.member(at, value); ok {
			p.project.Modules = append(p.project.Modules, m)
		}
	case "Class":
		if m, ok := p.member(at, value); ok {
			p.project.Classes = append(p.project.Classes, m)
		}
	case "Form":
		p.path(at, value, &p.project.Forms)
	case "UserControl":
		p.path(at, value, &p.project.UserControls)
	case "UserDocument":
		p.path(at, value, &p.project.UserDocuments)
	case "PropertyPage":
		p.path(at, value, &p.project.PropertyPages)
	case "Designer":
		p.path(at, value, &p.project.Designers)
	case "RelatedDoc":
		p.path(at, value, &p.project.RelatedDocs)
	case "MajorVer":
		p.project.Version.Major, _ = p.number(at, value)
	case "MinorVer":
		p.project.Version.Minor, _ = p.number(at, value)
	case "RevisionVer":
		p.project.Version.Revision, _ = p.number(at, value)
	case "AutoIncrementVer":
		n, ok := p.number(at, value)
		p.project.Version.AutoIncrement = ok && n != 0
	default:
		kind, known := properties[key]
		if !known {
			p.diags.Add(start, diag.CategoryUnknownProperty, key)
			return
		}
		switch kind {
		case valueQuoted:
			if v, ok := p.unquote(at, value); ok {
				p.project.Properties[key] = v
			}
		case valueNumber:
			if _, ok := p.number(at, value); ok {
				p.project.Properties[key] = value
			}
		default:
			p.project.Properties[key] = value
		}
	}
}

// reference reads *\G{guid}#version#lcid#path#description or *\Apath.
func (p *parser) reference(at int, value string) (Reference, bool) {
	if path, ok := strings.CutPrefix(value, `*\A`); ok {
		return Reference{Path: path, SubProject: true}, true
	}
	rest, ok := strings.CutPrefix(value, `*\G`)
	if !ok {
		p.diags.AddExpected(at, diag.CategoryInvalidPropertyValue, value, `*\G`)
		return Reference{}, false
	}
	fields := strings.SplitN(rest, "#", 5)
	if len(fields) < 5 || !isGUID(fields[0]) {
		p.diags.Add(at, diag.CategoryInvalidPropertyValue, value)
		return Reference{}, false
	}
	return Reference{
		GUID:        fields[0],
		Version:     fields[1],
		LCID:        fields[2],
		Path:        fields[3],
		Description: fields[4],
	}, true
}

// object reads {guid}#version#lcid; file or a quoted *\A sub-project path.
func (p *parser) object(at int, value string) (Object, bool) {
	if strings.HasPrefix(value, `"*\A`) {
		path, ok := p.unquote(at, value)
		if !ok {
			return Object{}, false
		}
		return Object{File: strings.TrimPrefix(path, `*\A`), SubProject: true}, true
	}
	id, file, ok := strings.Cut(value, ";")
	if !ok {
		p.diags.AddExpected(at+len(value), diag.CategoryKeywordMissing, value, ";")
		return Object{}, false
	}
	fields := strings.Split(id, "#")
	if len(fields) != 3 || !isGUID(fields[0]) {
		p.diags.Add(at, diag.CategoryInvalidPropertyValue, id)
		return Object{}, false
	}
	return Object{
		GUID:    fields[0],
		Version: fields[1],
		LCID:    fields[2],
		File:    strings.TrimSpace(file),
	}, true
}

func (p *parser) member(at int, value string) (Member, bool) {
	name, path, ok := strings.Cut(value, ";")
	if !ok {
		p.diags.AddExpected(at+len(value), diag.CategoryKeywordMissing, value, ";")
		return Member{}, false
	}
	name, path = strings.TrimSpace(name), strings.TrimSpace(path)
	if name == "" || path == "" {
		p.diags.Add(at, diag.CategoryInvalidPropertyValue, value)
		return Member{}, false
	}
	return Member{Name: name, Path: path}, true
}

func (p *parser) path(at int, value string, into *[]string) {
	if strings.TrimSpace(value) == "" {
		p.diags.Add(at, diag.CategoryInvalidPropertyValue, value)
		return
	}
	*into = append(*into, value)
}

func (p *parser) number(at int, value string) (int, bool) {
	n, err := strconv.Atoi(value)
	if err != nil {
		p.diags.Add(at, diag.CategoryInvalidPropertyValue, value)
		return 0, false
	}
	return n, true
}

// unquote strips the surrounding quotes of a value. A bare value is taken
// as written with a warning.
func (p *parser) unquote(at int, value string) (string, bool) {
	opens := strings.HasPrefix(value, `"`)
	closes := len(value) > 1 && strings.HasSuffix(value, `"`)
	switch {
	case opens && closes:
		return value[1 : len(value)-1], true
	case opens || closes:
		p.diags.AddExpected(at, diag.CategoryInvalidPropertyValue, value, `"`)
		return "", false
	}
	p.diags.AddExpected(at, diag.CategoryUnexpectedText, value, `"`)
	return value, true
}

func isGUID(s string) bool {
	if len(s) != 38 || s[0] != '{' || s[37] != '}' {
		return false
	}
	for i, b := range []byte(s[1:37]) {
		switch i {
		case 8, 13, 18, 23:
			if b != '-' {
				return false
			}
		default:
			if !isHex(b) {
				return false
			}
		}
	}
	return true
}

func isHex(b byte) bool {
	return source.IsDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}
