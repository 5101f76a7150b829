package source

import (
	"fmt"
	"sort"
)

// Span is a half-open byte range [Start, End) into the source.
type Span struct {
	Start int
	End   int
}

func (s Span) Len() int {
	return s.End - s.Start
}

func (s Span) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End
}

type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// LineIndex resolves byte offsets to 1-based line and column numbers.
// Columns count bytes, matching the offsets the cursor produces.
type LineIndex struct {
	file   string
	input  []byte
	starts []int
}

func NewLineIndex(file string, input []byte) *LineIndex {
	starts := []int{0}
	for i := 0; i < len(input); i++ {
		switch input[i] {
		case '\r':
			if i+1 < len(input) && input[i+1] == '\n' {
				i++
			}
			starts = append(starts, i+1)
		case '\n':
			starts = append(starts, i+1)
		}
	}
	return &LineIndex{file: file, input: input, starts: starts}
}

func (ix *LineIndex) LineCount() int {
	return len(ix.starts)
}

func (ix *LineIndex) Position(offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(ix.input) {
		offset = len(ix.input)
	}
	line := sort.Search(len(ix.starts), func(i int) bool {
		return ix.starts[i] > offset
	}) - 1
	return Position{
		File:   ix.file,
		Offset: offset,
		Line:   line + 1,
		Column: offset - ix.starts[line] + 1,
	}
}

// Line returns the text of the 1-based line n without its terminator.
func (ix *LineIndex) Line(n int) []byte {
	if n < 1 || n > len(ix.starts) {
		return nil
	}
	start := ix.starts[n-1]
	end := len(ix.input)
	if n < len(ix.starts) {
		end = ix.starts[n]
	}
	for end > start && IsNewline(ix.input[end-1]) {
		end--
	}
	return ix.input[start:end]
}
