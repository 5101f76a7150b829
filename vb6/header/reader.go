package header

import (
	"github.com/dhamidi/vbt/vb6/diag"
	"github.com/dhamidi/vbt/vb6/source"
)

// reader is the line-oriented view of a cursor the preamble parsers share.
// It reports every deviation it tolerates into diags.
type reader struct {
	c     *source.Cursor
	diags *diag.Collector
}

func newReader(c *source.Cursor) *reader {
	return &reader{c: c, diags: diag.NewCollector(c.File())}
}

func (r *reader) diagnostics() []diag.Diagnostic {
	return r.diags.Diagnostics()
}

// atKeyword reports, without consuming, whether word starts here in any
// case and is not the front of a longer name. A digit may follow directly,
// as in "VERSION1.0".
func (r *reader) atKeyword(word string) bool {
	text, ok := r.c.Peek(len(word))
	if !ok || !matchesFold(text, word) {
		return false
	}
	next, ok := r.c.PeekByteAt(len(word))
	return !ok || !(source.IsLetter(next) || next == '_')
}

// keyword consumes word in any case. A spelling other than word itself is
// accepted with a KeywordCase warning.
func (r *reader) keyword(word string) bool {
	if !r.atKeyword(word) {
		return false
	}
	start := r.c.Offset()
	text, _ := r.c.Take(word, source.CaseInsensitive)
	if string(text) != word {
		r.diags.AddExpected(start, diag.CategoryKeywordCase, string(text), word)
	}
	return true
}

// requireKeyword is keyword plus a KeywordMissing diagnostic on failure.
func (r *reader) requireKeyword(word string) bool {
	if r.keyword(word) {
		return true
	}
	r.diags.AddExpected(r.c.Offset(), diag.CategoryKeywordMissing, r.peekWord(), word)
	return false
}

// spaces consumes a run of blanks and warns when there is none.
func (r *reader) spaces() {
	if _, ok := r.c.TakeSpaces(); !ok {
		r.diags.Add(r.c.Offset(), diag.CategoryWhitespaceMissing, r.peekWord())
	}
}

// endLine finishes a header line: trailing blanks, an optional comment and
// the terminator. End of input is an acceptable end. Any other text is
// skipped with an UnexpectedText warning.
func (r *reader) endLine() {
	r.c.TakeSpaces()
	if b, ok := r.c.PeekByte(); ok && b == '\'' {
		r.c.TakeLine()
		return
	}
	if r.c.IsEmpty() {
		return
	}
	if _, ok := r.c.TakeNewline(); ok {
		return
	}
	start := r.c.Offset()
	body, _, _ := r.c.TakeLine()
	r.diags.Add(start, diag.CategoryUnexpectedText, string(body))
}

// atBlankLine reports whether the rest of the line holds only blanks or a
// comment.
func (r *reader) atBlankLine() bool {
	rest := r.c.Input()[r.c.Offset():]
	for _, b := range rest {
		switch {
		case source.IsSpace(b):
			continue
		case b == '\'' || source.IsNewline(b):
			return true
		default:
			return false
		}
	}
	return true
}

// peekWord returns the text up to the next blank or line end, for
// diagnostics.
func (r *reader) peekWord() string {
	rest := r.c.Input()[r.c.Offset():]
	end := 0
	for end < len(rest) && !source.IsSpace(rest[end]) && !source.IsNewline(rest[end]) {
		end++
	}
	return string(rest[:end])
}

// quoted consumes a "..." value, returning the text between the quotes.
func (r *reader) quoted() (string, bool) {
	if _, ok := r.c.Take(`"`, source.CaseSensitive); !ok {
		return "", false
	}
	body, ok := r.c.TakeWhile(func(b byte) bool {
		return b != '"' && !source.IsNewline(b)
	})
	if !ok {
		body = nil
	}
	if _, ok := r.c.Take(`"`, source.CaseSensitive); !ok {
		return "", false
	}
	return string(body), true
}

func matchesFold(b []byte, word string) bool {
	if len(b) != len(word) {
		return false
	}
	for i := range b {
		x, y := b[i], word[i]
		if x >= 'A' && x <= 'Z' {
			x += 'a' - 'A'
		}
		if y >= 'A' && y <= 'Z' {
			y += 'a' - 'A'
		}
		if x != y {
			return false
		}
	}
	return true
}

func isValueChar(b byte) bool {
	return !source.IsSpace(b) && !source.IsNewline(b) && b != '\''
}
