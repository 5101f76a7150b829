// Package diag records position-anchored problems found while reading VB6
// source. Parsers append diagnostics instead of returning Go errors, so a
// single file can report many problems and still produce a result.
package diag

import (
	"fmt"
)

type Severity int

const (
	SeverityNote Severity = iota
	SeverityWarning
	SeverityError
)

var severityNames = map[Severity]string{
	SeverityNote:    "note",
	SeverityWarning: "warning",
	SeverityError:   "error",
}

func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}
	return "unknown"
}

// Category is the closed set of problems the front end can report. The
// severity of a diagnostic follows from its category.
type Category int

const (
	CategoryUnknownToken Category = iota
	CategoryUnterminatedString
	CategoryKeywordMissing
	CategoryKeywordCase
	CategoryWhitespaceMissing
	CategoryPeriodMissing
	CategoryMajorVersionUnparseable
	CategoryMinorVersionUnparseable
	CategoryUnexpectedText
	CategoryInvalidPropertyValue
	CategoryUnknownProperty
	CategoryUnknownAttribute
	CategoryInvalidAttributeValue
	CategoryMissingClassName
	CategoryUnexpectedToken
	CategoryExpectedToken
	CategoryUnclosedBlock
)

type categoryInfo struct {
	name        string
	severity    Severity
	description string
}

var categories = map[Category]categoryInfo{
	CategoryUnknownToken:            {"UnknownToken", SeverityError, "unknown token"},
	CategoryUnterminatedString:      {"UnterminatedString", SeverityError, "string literal is not terminated"},
	CategoryKeywordMissing:          {"KeywordMissing", SeverityError, "required keyword is missing"},
	CategoryKeywordCase:             {"KeywordCase", SeverityWarning, "keyword is not in its canonical case"},
	CategoryWhitespaceMissing:       {"WhitespaceMissing", SeverityWarning, "whitespace expected"},
	CategoryPeriodMissing:           {"PeriodMissing", SeverityWarning, "period expected in version number"},
	CategoryMajorVersionUnparseable: {"MajorVersionUnparseable", SeverityError, "major version is not a number"},
	CategoryMinorVersionUnparseable: {"MinorVersionUnparseable", SeverityError, "minor version is not a number"},
	CategoryUnexpectedText:          {"UnexpectedText", SeverityWarning, "unexpected text before end of line"},
	CategoryInvalidPropertyValue:    {"InvalidPropertyValue", SeverityError, "invalid property value"},
	CategoryUnknownProperty:         {"UnknownProperty", SeverityError, "unknown property"},
	CategoryUnknownAttribute:        {"UnknownAttribute", SeverityError, "unknown attribute"},
	CategoryInvalidAttributeValue:   {"InvalidAttributeValue", SeverityError, "invalid attribute value"},
	CategoryMissingClassName:        {"MissingClassName", SeverityError, "no VB_Name attribute"},
	CategoryUnexpectedToken:         {"UnexpectedToken", SeverityError, "unexpected token"},
	CategoryExpectedToken:           {"ExpectedToken", SeverityError, "expected token"},
	CategoryUnclosedBlock:           {"UnclosedBlock", SeverityError, "block is not closed"},
}

func (c Category) String() string {
	if info, ok := categories[c]; ok {
		return info.name
	}
	return "Unknown"
}

// Severity reports whether problems of this category are cosmetic
// warnings or errors.
func (c Category) Severity() Severity {
	if info, ok := categories[c]; ok {
		return info.severity
	}
	return SeverityError
}

func (c Category) Description() string {
	if info, ok := categories[c]; ok {
		return info.description
	}
	return "unknown problem"
}

// Categories lists every category in declaration order.
func Categories() []Category {
	out := make([]Category, 0, len(categories))
	for c := CategoryUnknownToken; c <= CategoryUnclosedBlock; c++ {
		out = append(out, c)
	}
	return out
}

// LookupCategory finds a category by its String name.
func LookupCategory(name string) (Category, bool) {
	for c, info := range categories {
		if info.name == name {
			return c, true
		}
	}
	return 0, false
}

// Diagnostic is one problem at a byte offset. Text carries the offending
// source text and Expected, when set, what would have been accepted.
type Diagnostic struct {
	File     string
	Offset   int
	Category Category
	Text     string
	Expected string
}

func (d Diagnostic) Severity() Severity {
	return d.Category.Severity()
}

func (d Diagnostic) IsError() bool {
	return d.Severity() == SeverityError
}

func (d Diagnostic) Error() string {
	msg := fmt.Sprintf("%s:%d: %s", d.File, d.Offset, d.Category.Description())
	if d.Expected != "" {
		msg += fmt.Sprintf(" (expected %q)", d.Expected)
	}
	if d.Text != "" {
		msg += fmt.Sprintf(": %q", d.Text)
	}
	return msg
}

// Collector accumulates diagnostics for one file. It is append-only.
type Collector struct {
	file  string
	items []Diagnostic
}

func NewCollector(file string) *Collector {
	return &Collector{file: file}
}

func (c *Collector) File() string {
	return c.file
}

func (c *Collector) Add(offset int, cat Category, text string) {
	c.items = append(c.items, Diagnostic{
		File:     c.file,
		Offset:   offset,
		Category: cat,
		Text:     text,
	})
}

func (c *Collector) AddExpected(offset int, cat Category, text, expected string) {
	c.items = append(c.items, Diagnostic{
		File:     c.file,
		Offset:   offset,
		Category: cat,
		Text:     text,
		Expected: expected,
	})
}

func (c *Collector) Append(ds ...Diagnostic) {
	c.items = append(c.items, ds...)
}

func (c *Collector) Len() int {
	return len(c.items)
}

// Diagnostics returns a copy of everything collected so far.
func (c *Collector) Diagnostics() []Diagnostic {
	if len(c.items) == 0 {
		return nil
	}
	out := make([]Diagnostic, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Collector) HasErrors() bool {
	return HasErrors(c.items)
}

func HasErrors(ds []Diagnostic) bool {
	for _, d := range ds {
		if d.IsError() {
			return true
		}
	}
	return false
}

// Filter returns the diagnostics whose category is not in skip.
func Filter(ds []Diagnostic, skip ...Category) []Diagnostic {
	if len(skip) == 0 {
		return ds
	}
	var out []Diagnostic
	for _, d := range ds {
		keep := true
		for _, s := range skip {
			if d.Category == s {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, d)
		}
	}
	return out
}
