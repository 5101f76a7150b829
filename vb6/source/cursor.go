package source

import "bytes"

// CaseMode selects how Take and TakeUntil compare a literal against the input.
type CaseMode int

const (
	CaseSensitive CaseMode = iota
	CaseInsensitive
)

// Cursor is a forward-only reader over a borrowed byte slice. Every take
// either advances the offset by exactly the length it returns or leaves the
// cursor untouched, so a cursor can never move backwards or past the end.
type Cursor struct {
	file   string
	input  []byte
	offset int
}

func NewCursor(file string, input []byte) *Cursor {
	return &Cursor{file: file, input: input}
}

func (c *Cursor) File() string {
	return c.file
}

// Input returns the complete slice the cursor reads from.
func (c *Cursor) Input() []byte {
	return c.input
}

func (c *Cursor) Offset() int {
	return c.offset
}

// Remaining is the number of unread bytes.
func (c *Cursor) Remaining() int {
	return len(c.input) - c.offset
}

func (c *Cursor) IsEmpty() bool {
	return c.offset >= len(c.input)
}

// SpanFrom returns the span from start up to the current offset.
func (c *Cursor) SpanFrom(start int) Span {
	return Span{Start: start, End: c.offset}
}

func (c *Cursor) Peek(n int) ([]byte, bool) {
	if n < 0 || c.Remaining() < n {
		return nil, false
	}
	return c.input[c.offset : c.offset+n], true
}

func (c *Cursor) PeekByte() (byte, bool) {
	if c.IsEmpty() {
		return 0, false
	}
	return c.input[c.offset], true
}

// PeekByteAt looks n bytes past the current offset.
func (c *Cursor) PeekByteAt(n int) (byte, bool) {
	i := c.offset + n
	if n < 0 || i >= len(c.input) {
		return 0, false
	}
	return c.input[i], true
}

func (c *Cursor) PeekText(n int) (string, bool) {
	b, ok := c.Peek(n)
	if !ok {
		return "", false
	}
	return string(b), true
}

// Forward consumes exactly n bytes.
func (c *Cursor) Forward(n int) ([]byte, bool) {
	b, ok := c.Peek(n)
	if !ok || n == 0 {
		return nil, false
	}
	c.offset += n
	return b, true
}

// Take consumes lit if the upcoming bytes match it under mode.
func (c *Cursor) Take(lit string, mode CaseMode) ([]byte, bool) {
	if lit == "" {
		return nil, false
	}
	b, ok := c.Peek(len(lit))
	if !ok || !matches(b, lit, mode) {
		return nil, false
	}
	c.offset += len(lit)
	return b, true
}

// TakeWhile consumes the maximal run of bytes satisfying pred. An empty run
// consumes nothing and is reported as not ok.
func (c *Cursor) TakeWhile(pred func(byte) bool) ([]byte, bool) {
	end := c.offset
	for end < len(c.input) && pred(c.input[end]) {
		end++
	}
	if end == c.offset {
		return nil, false
	}
	b := c.input[c.offset:end]
	c.offset = end
	return b, true
}

// TakeUntil consumes everything up to, but not including, the first
// occurrence of lit. It returns the bytes skipped and the literal as it
// appears in the input; the cursor is left at the start of the literal. If
// lit never occurs the cursor does not move.
func (c *Cursor) TakeUntil(lit string, mode CaseMode) (skipped, match []byte, ok bool) {
	if lit == "" {
		return nil, nil, false
	}
	rest := c.input[c.offset:]
	i := index(rest, lit, mode)
	if i < 0 {
		return nil, nil, false
	}
	skipped = rest[:i]
	match = rest[i : i+len(lit)]
	c.offset += i
	return skipped, match, true
}

// TakeLine consumes one line. The terminator is nil when the input ended
// without one. It reports not ok only when nothing is left to read.
func (c *Cursor) TakeLine() (body, terminator []byte, ok bool) {
	if c.IsEmpty() {
		return nil, nil, false
	}
	start := c.offset
	end := c.EndOfLine(start)
	body = c.input[start:end]
	c.offset = end
	terminator, _ = c.TakeNewline()
	return body, terminator, true
}

// TakeNewline consumes a single line terminator, preferring "\r\n" over a
// lone "\n" or "\r".
func (c *Cursor) TakeNewline() ([]byte, bool) {
	if b, ok := c.Take("\r\n", CaseSensitive); ok {
		return b, true
	}
	if b, ok := c.Take("\n", CaseSensitive); ok {
		return b, true
	}
	return c.Take("\r", CaseSensitive)
}

// TakeSpaces consumes spaces and tabs. Line terminators are not whitespace
// here.
func (c *Cursor) TakeSpaces() ([]byte, bool) {
	return c.TakeWhile(IsSpace)
}

func (c *Cursor) TakeDigits() ([]byte, bool) {
	return c.TakeWhile(IsDigit)
}

// TakeIdentifierChars consumes letters, digits and underscores.
func (c *Cursor) TakeIdentifierChars() ([]byte, bool) {
	return c.TakeWhile(IsIdentifierChar)
}

// StartOfLine returns the offset of the first byte of the line containing
// offset.
func (c *Cursor) StartOfLine(offset int) int {
	offset = c.clamp(offset)
	for offset > 0 {
		b := c.input[offset-1]
		if b == '\n' || b == '\r' {
			break
		}
		offset--
	}
	return offset
}

// EndOfLine returns the offset of the terminator ending the line that
// contains offset, or the input length on the last line.
func (c *Cursor) EndOfLine(offset int) int {
	offset = c.clamp(offset)
	if i := bytes.IndexAny(c.input[offset:], "\r\n"); i >= 0 {
		return offset + i
	}
	return len(c.input)
}

func (c *Cursor) clamp(offset int) int {
	if offset < 0 {
		return 0
	}
	if offset > len(c.input) {
		return len(c.input)
	}
	return offset
}

func matches(b []byte, lit string, mode CaseMode) bool {
	if mode == CaseInsensitive {
		return bytes.EqualFold(b, []byte(lit))
	}
	return string(b) == lit
}

func index(haystack []byte, lit string, mode CaseMode) int {
	if mode == CaseSensitive {
		return bytes.Index(haystack, []byte(lit))
	}
	for i := 0; i+len(lit) <= len(haystack); i++ {
		if matches(haystack[i:i+len(lit)], lit, CaseInsensitive) {
			return i
		}
	}
	return -1
}

func IsSpace(b byte) bool {
	return b == ' ' || b == '\t'
}

func IsDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func IsLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func IsIdentifierChar(b byte) bool {
	return IsLetter(b) || IsDigit(b) || b == '_'
}

func IsNewline(b byte) bool {
	return b == '\n' || b == '\r'
}
