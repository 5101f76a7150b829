package source

import (
	"bytes"
	"testing"
)

func TestCursorPeek(t *testing.T) {
	c := NewCursor("test.bas", []byte("abc"))

	tests := []struct {
		n    int
		want string
		ok   bool
	}{
		{0, "", true},
		{1, "a", true},
		{3, "abc", true},
		{4, "", false},
		{-1, "", false},
	}

	for _, tt := range tests {
		got, ok := c.Peek(tt.n)
		if ok != tt.ok {
			t.Errorf("Peek(%d) ok = %v, want %v", tt.n, ok, tt.ok)
		}
		if string(got) != tt.want {
			t.Errorf("Peek(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
	if c.Offset() != 0 {
		t.Errorf("Offset = %d, want 0", c.Offset())
	}
}

func TestCursorTake(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		lit        string
		mode       CaseMode
		want       string
		ok         bool
		wantOffset int
	}{
		{"exact", "VERSION 1.0", "VERSION", CaseSensitive, "VERSION", true, 7},
		{"wrong case sensitive", "version 1.0", "VERSION", CaseSensitive, "", false, 0},
		{"wrong case insensitive", "version 1.0", "VERSION", CaseInsensitive, "version", true, 7},
		{"too short", "VER", "VERSION", CaseInsensitive, "", false, 0},
		{"empty literal", "abc", "", CaseSensitive, "", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCursor("", []byte(tt.input))
			got, ok := c.Take(tt.lit, tt.mode)
			if ok != tt.ok {
				t.Errorf("ok = %v, want %v", ok, tt.ok)
			}
			if string(got) != tt.want {
				t.Errorf("Take = %q, want %q", got, tt.want)
			}
			if c.Offset() != tt.wantOffset {
				t.Errorf("Offset = %d, want %d", c.Offset(), tt.wantOffset)
			}
		})
	}
}

func TestCursorTakeWhile(t *testing.T) {
	c := NewCursor("", []byte("123abc"))

	if got, ok := c.TakeWhile(IsLetter); ok || got != nil {
		t.Errorf("TakeWhile(IsLetter) = %q, %v, want nothing", got, ok)
	}
	if c.Offset() != 0 {
		t.Errorf("Offset = %d, want 0", c.Offset())
	}

	got, ok := c.TakeWhile(IsDigit)
	if !ok || string(got) != "123" {
		t.Errorf("TakeWhile(IsDigit) = %q, %v, want %q", got, ok, "123")
	}

	got, ok = c.TakeIdentifierChars()
	if !ok || string(got) != "abc" {
		t.Errorf("TakeIdentifierChars = %q, %v, want %q", got, ok, "abc")
	}
	if !c.IsEmpty() {
		t.Errorf("IsEmpty = false, want true")
	}
	if _, ok := c.TakeWhile(IsDigit); ok {
		t.Errorf("TakeWhile at end ok = true, want false")
	}
}

func TestCursorTakeUntil(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		lit         string
		mode        CaseMode
		wantSkipped string
		wantMatch   string
		ok          bool
		wantOffset  int
	}{
		{"found", "key = value", "=", CaseSensitive, "key ", "=", true, 4},
		{"at start", "=x", "=", CaseSensitive, "", "=", true, 0},
		{"missing", "key value", "=", CaseSensitive, "", "", false, 0},
		{"case insensitive", "Begin x eNd", "END", CaseInsensitive, "Begin x ", "eNd", true, 8},
		{"case sensitive miss", "Begin x eNd", "END", CaseSensitive, "", "", false, 0},
		{"multi-byte literal", "Hello, World", ", ", CaseSensitive, "Hello", ", ", true, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCursor("", []byte(tt.input))
			skipped, match, ok := c.TakeUntil(tt.lit, tt.mode)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if string(skipped) != tt.wantSkipped {
				t.Errorf("skipped = %q, want %q", skipped, tt.wantSkipped)
			}
			if string(match) != tt.wantMatch {
				t.Errorf("match = %q, want %q", match, tt.wantMatch)
			}
			if c.Offset() != tt.wantOffset {
				t.Errorf("Offset = %d, want %d", c.Offset(), tt.wantOffset)
			}
			if tt.ok {
				if next, _ := c.PeekText(len(tt.lit)); next != tt.wantMatch {
					t.Errorf("next = %q, want the literal %q", next, tt.wantMatch)
				}
			}
		})
	}
}

func TestCursorTakeLine(t *testing.T) {
	c := NewCursor("", []byte("one\r\ntwo\nthree\rfour"))

	want := []struct {
		body string
		term string
	}{
		{"one", "\r\n"},
		{"two", "\n"},
		{"three", "\r"},
		{"four", ""},
	}

	for i, w := range want {
		body, term, ok := c.TakeLine()
		if !ok {
			t.Fatalf("line %d: ok = false", i)
		}
		if string(body) != w.body {
			t.Errorf("line %d: body = %q, want %q", i, body, w.body)
		}
		if string(term) != w.term {
			t.Errorf("line %d: terminator = %q, want %q", i, term, w.term)
		}
	}

	if _, _, ok := c.TakeLine(); ok {
		t.Errorf("TakeLine at end ok = true, want false")
	}
}

func TestCursorTakeLineEmptyLines(t *testing.T) {
	c := NewCursor("", []byte("\r\n\n"))

	body, term, ok := c.TakeLine()
	if !ok || len(body) != 0 || string(term) != "\r\n" {
		t.Errorf("first line = %q, %q, %v", body, term, ok)
	}
	body, term, ok = c.TakeLine()
	if !ok || len(body) != 0 || string(term) != "\n" {
		t.Errorf("second line = %q, %q, %v", body, term, ok)
	}
}

func TestCursorLineBounds(t *testing.T) {
	c := NewCursor("", []byte("ab\r\ncd\nef"))

	tests := []struct {
		offset    int
		wantStart int
		wantEnd   int
	}{
		{0, 0, 2},
		{1, 0, 2},
		{4, 4, 6},
		{5, 4, 6},
		{7, 7, 9},
		{9, 7, 9},
		{100, 7, 9},
	}

	for _, tt := range tests {
		if got := c.StartOfLine(tt.offset); got != tt.wantStart {
			t.Errorf("StartOfLine(%d) = %d, want %d", tt.offset, got, tt.wantStart)
		}
		if got := c.EndOfLine(tt.offset); got != tt.wantEnd {
			t.Errorf("EndOfLine(%d) = %d, want %d", tt.offset, got, tt.wantEnd)
		}
	}
}

func TestCursorNeverMovesBackwards(t *testing.T) {
	input := []byte("Attribute VB_Name = \"Foo\"\r\n' done")
	c := NewCursor("", input)

	last := c.Offset()
	steps := []func(){
		func() { c.Take("attribute", CaseInsensitive) },
		func() { c.TakeSpaces() },
		func() { c.TakeUntil("=", CaseSensitive) },
		func() { c.Take("nope", CaseSensitive) },
		func() { c.TakeLine() },
		func() { c.Forward(2) },
		func() { c.TakeUntil("missing", CaseInsensitive) },
		func() { c.TakeLine() },
		func() { c.TakeLine() },
		func() { c.Forward(1) },
	}
	for i, step := range steps {
		step()
		if c.Offset() < last {
			t.Fatalf("step %d: offset moved from %d to %d", i, last, c.Offset())
		}
		if c.Offset() > len(input) {
			t.Fatalf("step %d: offset %d past end %d", i, c.Offset(), len(input))
		}
		last = c.Offset()
	}
	if !c.IsEmpty() {
		t.Errorf("IsEmpty = false after reading everything")
	}
}

func TestCursorZeroCopy(t *testing.T) {
	input := []byte("Dim x")
	c := NewCursor("", input)

	got, _ := c.TakeIdentifierChars()
	if &got[0] != &input[0] {
		t.Errorf("TakeIdentifierChars copied the input")
	}
	if !bytes.Equal(c.Input(), input) {
		t.Errorf("Input = %q, want %q", c.Input(), input)
	}
}
