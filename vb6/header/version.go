package header

import (
	"fmt"
	"strconv"

	"github.com/dhamidi/vbt/vb6/diag"
	"github.com/dhamidi/vbt/vb6/source"
)

// Kind selects which file kind's version line is expected.
type Kind int

const (
	// KindClass expects "VERSION 1.0 CLASS".
	KindClass Kind = iota
	// KindForm expects "VERSION 5.00", optionally followed by FORM.
	KindForm
)

func (k Kind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindForm:
		return "form"
	}
	return "unknown"
}

type Version struct {
	Major uint8
	Minor uint8
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// ParseVersion reads the VERSION line that opens class and form files.
//
// Wrong keyword case, a missing blank and a missing period are tolerated
// with warnings. A missing VERSION or CLASS keyword or an unreadable version
// number leaves the outcome without a value, since the file cannot be
// identified.
func ParseVersion(c *source.Cursor, kind Kind) diag.Outcome[Version] {
	r := newReader(c)
	c.TakeSpaces()

	if !r.requireKeyword("VERSION") {
		return diag.None[Version](r.diagnostics())
	}
	r.spaces()

	major, ok := r.versionNumber(diag.CategoryMajorVersionUnparseable)
	if !ok {
		return diag.None[Version](r.diagnostics())
	}

	if _, ok := c.Take(".", source.CaseSensitive); !ok {
		r.diags.AddExpected(c.Offset(), diag.CategoryPeriodMissing, r.peekWord(), ".")
		c.TakeSpaces()
	}

	minor, ok := r.versionNumber(diag.CategoryMinorVersionUnparseable)
	if !ok {
		return diag.None[Version](r.diagnostics())
	}

	switch kind {
	case KindClass:
		r.spaces()
		if !r.requireKeyword("CLASS") {
			return diag.None[Version](r.diagnostics())
		}
	case KindForm:
		c.TakeSpaces()
		r.keyword("FORM")
	}

	r.endLine()
	return diag.Some(Version{Major: major, Minor: minor}, r.diagnostics())
}

func (r *reader) versionNumber(cat diag.Category) (uint8, bool) {
	start := r.c.Offset()
	digits, ok := r.c.TakeDigits()
	if !ok {
		r.diags.Add(start, cat, r.peekWord())
		return 0, false
	}
	n, err := strconv.ParseUint(string(digits), 10, 8)
	if err != nil {
		r.diags.Add(start, cat, string(digits))
		return 0, false
	}
	return uint8(n), true
}
