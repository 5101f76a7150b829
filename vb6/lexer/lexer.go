package lexer

import (
	"github.com/dhamidi/vbt/vb6/diag"
	"github.com/dhamidi/vbt/vb6/source"
)

// Lexer classifies the bytes under a cursor into tokens. It never stops on
// bad input: a byte it cannot classify becomes a TokenUnknown and an
// UnknownToken diagnostic, and scanning resumes at the next byte.
type Lexer struct {
	cursor *source.Cursor
	diags  *diag.Collector
}

func NewLexer(c *source.Cursor) *Lexer {
	return &Lexer{
		cursor: c,
		diags:  diag.NewCollector(c.File()),
	}
}

func (l *Lexer) Offset() int {
	return l.cursor.Offset()
}

func (l *Lexer) Diagnostics() []diag.Diagnostic {
	return l.diags.Diagnostics()
}

// NextToken returns the next token, or false once the input is exhausted.
// Every call that returns a token advances the cursor by at least one byte.
func (l *Lexer) NextToken() (Token, bool) {
	b, ok := l.cursor.PeekByte()
	if !ok {
		return Token{}, false
	}
	start := l.cursor.Offset()

	if _, ok := l.cursor.TakeNewline(); ok {
		return l.token(TokenNewline, start), true
	}

	switch {
	case b == '\'':
		return l.scanComment(start, TokenComment), true
	case l.atRem():
		return l.scanComment(start, TokenRemComment), true
	case b == '"':
		return l.scanString(start), true
	}

	if source.IsLetter(b) {
		if kind, ok := l.scanKeyword(); ok {
			return l.token(kind, start), true
		}
	}

	if kind, ok := LookupSymbol(b); ok {
		l.cursor.Forward(1)
		return l.token(kind, start), true
	}

	if _, ok := l.cursor.TakeDigits(); ok {
		return l.token(TokenNumber, start), true
	}

	if source.IsLetter(b) {
		l.cursor.TakeIdentifierChars()
		return l.token(TokenIdent, start), true
	}

	if _, ok := l.cursor.TakeSpaces(); ok {
		return l.token(TokenWhitespace, start), true
	}

	l.cursor.Forward(1)
	tok := l.token(TokenUnknown, start)
	l.diags.Add(start, diag.CategoryUnknownToken, tok.Literal)
	return tok, true
}

func (l *Lexer) token(kind TokenKind, start int) Token {
	span := l.cursor.SpanFrom(start)
	return Token{
		Kind:    kind,
		Span:    span,
		Literal: string(l.cursor.Input()[span.Start:span.End]),
	}
}

// atRem reports whether a REM comment starts here. REM must stand alone as
// a word so that identifiers such as Remove are not taken as comments.
func (l *Lexer) atRem() bool {
	text, ok := l.cursor.Peek(3)
	if !ok || !equalFold(text, "rem") {
		return false
	}
	next, ok := l.cursor.PeekByteAt(3)
	return !ok || !source.IsIdentifierChar(next)
}

// scanComment consumes to the end of the line. The terminator is left for
// the next call so it becomes its own newline token.
func (l *Lexer) scanComment(start int, kind TokenKind) Token {
	end := l.cursor.EndOfLine(start)
	l.cursor.Forward(end - start)
	return l.token(kind, start)
}

// scanString reads a double-quoted literal where "" stands for one quote.
// A string cut short by a line terminator or the end of input is still
// returned as a single token, with an UnterminatedString diagnostic.
func (l *Lexer) scanString(start int) Token {
	l.cursor.Forward(1)
	for {
		l.cursor.TakeWhile(func(b byte) bool {
			return b != '"' && !source.IsNewline(b)
		})
		if _, ok := l.cursor.Take(`""`, source.CaseSensitive); ok {
			continue
		}
		if _, ok := l.cursor.Take(`"`, source.CaseSensitive); ok {
			return l.token(TokenStringLiteral, start)
		}
		tok := l.token(TokenStringLiteral, start)
		l.diags.Add(start, diag.CategoryUnterminatedString, tok.Literal)
		return tok
	}
}

// scanKeyword tries keywordTable in order. The first spelling that matches
// decides: if an identifier character follows it the word is not a keyword
// at all and the caller falls through to identifier classification.
func (l *Lexer) scanKeyword() (TokenKind, bool) {
	for _, kw := range keywordTable {
		text, ok := l.cursor.Peek(len(kw.literal))
		if !ok || !equalFold(text, kw.literal) {
			continue
		}
		if next, ok := l.cursor.PeekByteAt(len(kw.literal)); ok && source.IsIdentifierChar(next) {
			return TokenUnknown, false
		}
		l.cursor.Forward(len(kw.literal))
		return kw.kind, true
	}
	return TokenUnknown, false
}

func equalFold(b []byte, s string) bool {
	if len(b) != len(s) {
		return false
	}
	for i := 0; i < len(b); i++ {
		if lower(b[i]) != lower(s[i]) {
			return false
		}
	}
	return true
}

func lower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}

// Tokenize classifies the whole input. The outcome always carries a
// stream; diagnostics report the bytes that could not be classified.
func Tokenize(file string, input []byte) diag.Outcome[TokenStream] {
	return TokenizeCursor(source.NewCursor(file, input))
}

// TokenizeCursor classifies everything from the cursor's current offset to
// the end of input.
func TokenizeCursor(c *source.Cursor) diag.Outcome[TokenStream] {
	l := NewLexer(c)
	stream := TokenStream{File: c.File()}
	for {
		tok, ok := l.NextToken()
		if !ok {
			break
		}
		stream.Tokens = append(stream.Tokens, tok)
	}
	return diag.Some(stream, l.Diagnostics())
}
