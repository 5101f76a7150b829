package vbp

import (
	"reflect"
	"testing"

	"github.com/dhamidi/vbt/vb6/diag"
	"github.com/dhamidi/vbt/vb6/source"
)

const projectFile = "Type=Exe\r\n" +
	`Reference=*\G{00020430-0000-0000-C000-000000000046}#2.0#0#C:\Windows\System32\stdole2.tlb#OLE Automation` + "\r\n" +
	`Reference=*\A..\Shared\Shared.vbp` + "\r\n" +
	"Object={831FDD16-0C5C-11D2-A9FC-0000F8754DA1}#2.0#0; MSCOMCTL.OCX\r\n" +
	"Module=Module1; Module1.bas\r\n" +
	`Class=Widget; classes\Widget.cls` + "\r\n" +
	"Form=Form1.frm\r\n" +
	"Form=Form2.frm\r\n" +
	"UserControl=Gauge.ctl\r\n" +
	"UserDocument=Doc1.dob\r\n" +
	"\r\n" +
	"Startup=\"Form1\"\r\n" +
	"Name=\"Project1\"\r\n" +
	"ExeName32=\"Project1.exe\"\r\n" +
	"HelpContextID=\"0\"\r\n" +
	"MajorVer=1\r\n" +
	"MinorVer=2\r\n" +
	"RevisionVer=30\r\n" +
	"AutoIncrementVer=1\r\n" +
	"CompilationType=0\r\n" +
	"FavorPentiumPro(tm)=0\r\n" +
	"[MS Transaction Server]\r\n" +
	"AutoRefresh=1\r\n"

func categories(ds []diag.Diagnostic) []diag.Category {
	var out []diag.Category
	for _, d := range ds {
		out = append(out, d.Category)
	}
	return out
}

func parse(input string) diag.Outcome[Project] {
	return Parse(source.NewCursor("Project1.vbp", []byte(input)))
}

func TestParse(t *testing.T) {
	out := parse(projectFile)
	if ds := out.Diagnostics(); len(ds) != 0 {
		t.Fatalf("diagnostics = %v", ds)
	}
	p, ok := out.Get()
	if !ok {
		t.Fatal("no project")
	}

	if p.Type != "Exe" {
		t.Errorf("Type = %q, want Exe", p.Type)
	}
	wantRefs := []Reference{
		{
			GUID:        "{00020430-0000-0000-C000-000000000046}",
			Version:     "2.0",
			LCID:        "0",
			Path:        `C:\Windows\System32\stdole2.tlb`,
			Description: "OLE Automation",
		},
		{Path: `..\Shared\Shared.vbp`, SubProject: true},
	}
	if !reflect.DeepEqual(p.References, wantRefs) {
		t.Errorf("References = %+v, want %+v", p.References, wantRefs)
	}
	wantObjects := []Object{{
		GUID:    "{831FDD16-0C5C-11D2-A9FC-0000F8754DA1}",
		Version: "2.0",
		LCID:    "0",
		File:    "MSCOMCTL.OCX",
	}}
	if !reflect.DeepEqual(p.Objects, wantObjects) {
		t.Errorf("Objects = %+v, want %+v", p.Objects, wantObjects)
	}
	if want := []Member{{"Module1", "Module1.bas"}}; !reflect.DeepEqual(p.Modules, want) {
		t.Errorf("Modules = %v, want %v", p.Modules, want)
	}
	if want := []Member{{"Widget", `classes\Widget.cls`}}; !reflect.DeepEqual(p.Classes, want) {
		t.Errorf("Classes = %v, want %v", p.Classes, want)
	}
	if want := []string{"Form1.frm", "Form2.frm"}; !reflect.DeepEqual(p.Forms, want) {
		t.Errorf("Forms = %v, want %v", p.Forms, want)
	}

	if want := (Version{Major: 1, Minor: 2, Revision: 30, AutoIncrement: true}); p.Version != want {
		t.Errorf("Version = %+v, want %+v", p.Version, want)
	}
	for key, want := range map[string]string{
		"Startup":             "Form1",
		"Name":                "Project1",
		"ExeName32":           "Project1.exe",
		"HelpContextID":       "0",
		"FavorPentiumPro(tm)": "0",
	} {
		if got, _ := p.Property(key); got != want {
			t.Errorf("Property(%q) = %q, want %q", key, got, want)
		}
	}
	if got := p.Sections["MS Transaction Server"]["AutoRefresh"]; got != "1" {
		t.Errorf("AutoRefresh = %q, want 1", got)
	}
	if _, ok := p.Property("AutoRefresh"); ok {
		t.Error("section key leaked into the project properties")
	}

	wantMembers := []string{"Module1.bas", `classes\Widget.cls`, "Form1.frm", "Form2.frm", "Gauge.ctl", "Doc1.dob"}
	if got := p.Members(); !reflect.DeepEqual(got, wantMembers) {
		t.Errorf("Members() = %v, want %v", got, wantMembers)
	}
}

func TestParseDiagnostics(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []diag.Category
	}{
		{"unknown key", "Colour=Blue\r\n", []diag.Category{diag.CategoryUnknownProperty}},
		{"no equals", "Module1.bas\r\n", []diag.Category{diag.CategoryKeywordMissing}},
		{"bad type", "Type=Applet\r\n", []diag.Category{diag.CategoryInvalidPropertyValue}},
		{"bad number", "MajorVer=one\r\n", []diag.Category{diag.CategoryInvalidPropertyValue}},
		{"module without path", "Module=Module1\r\n", []diag.Category{diag.CategoryKeywordMissing}},
		{"bad reference", "Reference=stdole2.tlb\r\n", []diag.Category{diag.CategoryInvalidPropertyValue}},
		{"short reference", `Reference=*\G{00020430-0000-0000-C000-000000000046}#2.0` + "\r\n", []diag.Category{diag.CategoryInvalidPropertyValue}},
		{"bad object guid", "Object={831FDD16}#2.0#0; MSCOMCTL.OCX\r\n", []diag.Category{diag.CategoryInvalidPropertyValue}},
		{"unbalanced quote", "Title=\"Project1\r\n", []diag.Category{diag.CategoryInvalidPropertyValue}},
		{"bare quoted value", "Title=Project1\r\n", []diag.Category{diag.CategoryUnexpectedText}},
		{"unterminated section", "[MS Transaction Server\r\n", []diag.Category{diag.CategoryKeywordMissing}},
		{"several problems", "Colour=Blue\r\nForm=\r\nMinorVer=x\r\n", []diag.Category{
			diag.CategoryUnknownProperty,
			diag.CategoryInvalidPropertyValue,
			diag.CategoryInvalidPropertyValue,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := parse(tt.input)
			if !out.HasValue() {
				t.Fatal("no project")
			}
			if got := categories(out.Diagnostics()); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("categories = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseKeepsGoingAfterBadLine(t *testing.T) {
	out := parse("Colour=Blue\r\nForm=Form1.frm\r\n")
	p := out.Value()
	if len(p.Forms) != 1 || p.Forms[0] != "Form1.frm" {
		t.Errorf("Forms = %v, want [Form1.frm]", p.Forms)
	}
	ds := out.Diagnostics()
	if len(ds) != 1 || ds[0].Offset != 0 || ds[0].Text != "Colour" {
		t.Errorf("diagnostics = %v", ds)
	}
}

func TestParseBareValueKept(t *testing.T) {
	out := parse("Startup=Sub Main\n")
	if got, _ := out.Value().Property("Startup"); got != "Sub Main" {
		t.Errorf("Startup = %q, want %q", got, "Sub Main")
	}
	ds := out.Diagnostics()
	if len(ds) != 1 || ds[0].Offset != len("Startup=") || ds[0].Expected != `"` {
		t.Errorf("diagnostics = %v", ds)
	}
}

func TestParseEmpty(t *testing.T) {
	out := parse("")
	p, ok := out.Get()
	if !ok {
		t.Fatal("no project")
	}
	if p.Type != "Exe" || len(p.Members()) != 0 {
		t.Errorf("project = %+v", p)
	}
}
