package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseCommand(t *testing.T) {
	path := writeFixture(t, t.TempDir(), "Module1.bas", "Sub Main()\r\nEnd Sub\r\n")

	out, err := run(t, "parse", path)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !strings.HasPrefix(out, "Module\n") || !strings.Contains(out, "SubStatement") {
		t.Errorf("output = %q", out)
	}

	out, err = run(t, "parse", "--format", "json", path)
	if err != nil {
		t.Fatalf("parse --format json: %v", err)
	}
	if !json.Valid([]byte(out)) {
		t.Errorf("output is not JSON: %q", out)
	}

	if _, err := run(t, "parse", "--format", "xml", path); err == nil {
		t.Error("parse --format xml succeeded")
	}
}

func TestTokensCommand(t *testing.T) {
	path := writeFixture(t, t.TempDir(), "Module1.bas", "Dim x\r\n")

	out, err := run(t, "tokens", "--no-whitespace", path)
	if err != nil {
		t.Fatalf("tokens: %v", err)
	}
	want := "1:1\tDim\t\"Dim\"\n1:5\tIdentifier\t\"x\"\n1:6\tNewline\t\"\\r\\n\"\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestHeaderCommand(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "Widget.cls", "VERSION 1.0 CLASS\r\n"+
		"BEGIN\r\n  MultiUse = -1  'True\r\nEND\r\n"+
		"Attribute VB_Name = \"Widget\"\r\n")

	out, err := run(t, "header", path)
	if err != nil {
		t.Fatalf("header: %v", err)
	}
	if !strings.Contains(out, "name: Widget") {
		t.Errorf("output = %q", out)
	}

	bad := writeFixture(t, dir, "Bad.cls", "Option Explicit\r\n")
	if _, err := run(t, "header", bad); err == nil {
		t.Error("header of a file without one succeeded")
	}
}

func TestHeaderCommandForm(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "Form1.frm", "VERSION 5.00\r\n"+
		"Begin VB.Form Form1\r\n   Caption = \"Main\"\r\nEnd\r\n"+
		"Attribute VB_Name = \"Form1\"\r\n")

	out, err := run(t, "header", "--format", "json", path)
	if err != nil {
		t.Fatalf("header: %v\n%s", err, out)
	}
	if !strings.Contains(out, `"type": "VB.Form"`) {
		t.Errorf("output = %q", out)
	}

	mod := writeFixture(t, dir, "Module1.bas", "Sub Main()\r\nEnd Sub\r\n")
	if _, err := run(t, "header", mod); err == nil {
		t.Error("header of a standard module succeeded")
	}
}

func TestHeaderCommandProject(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "Project1.vbp", "Type=Exe\r\n"+
		"Module=Module1; Module1.bas\r\n"+
		"Name=\"Project1\"\r\n")

	out, err := run(t, "header", "--format", "json", path)
	if err != nil {
		t.Fatalf("header: %v\n%s", err, out)
	}
	for _, want := range []string{`"type": "Exe"`, `"path": "Module1.bas"`, `"Name": "Project1"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output = %q, want %s", out, want)
		}
	}
}

func TestCheckCommand(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "Good.bas", "Sub A()\r\nEnd Sub\r\n")

	out, err := run(t, "check", dir)
	if err != nil {
		t.Fatalf("check of a clean project: %v\n%s", err, out)
	}
	if out != "" {
		t.Errorf("output = %q, want none", out)
	}

	writeFixture(t, dir, "Bad.bas", "Sub B()\r\n    If x Then\r\nEnd Sub\r\n")
	out, err = run(t, "check", "--color", "never", dir)
	if err == nil {
		t.Fatal("check of a broken project succeeded")
	}
	if !strings.Contains(err.Error(), "Bad.bas: 1 errors") {
		t.Errorf("error = %v", err)
	}
	if !strings.Contains(out, "Bad.bas:2:5: error: block is not closed") {
		t.Errorf("output = %q", out)
	}
}

func TestCheckCommandWarningsPass(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "Widget.cls", "version 1.0 CLASS\r\n"+
		"BEGIN\r\n  MultiUse = -1\r\nEND\r\n"+
		"Attribute VB_Name = \"Widget\"\r\n")

	out, err := run(t, "check", "--color", "never", dir)
	if err != nil {
		t.Fatalf("check with warnings only: %v", err)
	}
	if !strings.Contains(out, "warning: keyword is not in its canonical case") {
		t.Errorf("output = %q", out)
	}
}

func TestRoundTripCommand(t *testing.T) {
	dir := t.TempDir()
	a := writeFixture(t, dir, "A.bas", "Sub A()\r\n  x = (1 + \r\nEnd Sub")
	b := writeFixture(t, dir, "B.bas", "\"unterminated\r\n")

	out, err := run(t, "roundtrip", a, b)
	if err != nil {
		t.Fatalf("roundtrip: %v\n%s", err, out)
	}
	if strings.Count(out, "[OK]") != 2 {
		t.Errorf("output = %q", out)
	}
}

func TestScanCommand(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "Module1.bas", "Public Sub Main()\r\nEnd Sub\r\n")
	writeFixture(t, dir, "Bad.bas", "Sub B(\r\nEnd Sub\r\n")

	out, err := run(t, "scan", "--symbols", dir)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	for _, want := range []string{"[ERROR] Bad.bas", "[OK] Module1.bas (1 symbols, 0 errors, 0 warnings)", "  sub Main (1:12)", "Files: 2"} {
		if !strings.Contains(out, want) {
			t.Errorf("output does not contain %q:\n%s", want, out)
		}
	}
}

func TestGrammarCommand(t *testing.T) {
	out, err := run(t, "grammar")
	if err != nil {
		t.Fatalf("grammar: %v", err)
	}
	if !strings.Contains(out, "Module = { ModuleItem } .") {
		t.Errorf("output does not contain the start production:\n%s", out)
	}

	if out, err := run(t, "grammar", "check"); err != nil {
		t.Fatalf("grammar check: %v\n%s", err, out)
	}

	dir := t.TempDir()
	good := writeFixture(t, dir, "good.ebnf", "Start = \"a\" Rest .\nRest = { \"b\" } .\n")
	if out, err := run(t, "grammar", "check", "--start", "Start", good); err != nil {
		t.Errorf("check %s: %v\n%s", good, err, out)
	}

	bad := writeFixture(t, dir, "bad.ebnf", "Start = Missing .\n")
	out, err = run(t, "grammar", "check", "--start", "Start", bad)
	if err == nil {
		t.Error("check of a grammar with an undefined production succeeded")
	}
	if !strings.Contains(out, "Missing") {
		t.Errorf("output = %q", out)
	}
}
