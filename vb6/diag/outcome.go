package diag

import (
	"github.com/hashicorp/go-multierror"
)

// Outcome pairs an optional parse result with the diagnostics produced while
// computing it. A value can be present alongside diagnostics: warnings never
// remove it, and whether an error does is decided by the sub-parse that
// reported it.
type Outcome[T any] struct {
	value       T
	present     bool
	diagnostics []Diagnostic
}

func Some[T any](value T, ds []Diagnostic) Outcome[T] {
	return Outcome[T]{value: value, present: true, diagnostics: ds}
}

func None[T any](ds []Diagnostic) Outcome[T] {
	return Outcome[T]{diagnostics: ds}
}

func (o Outcome[T]) Get() (T, bool) {
	return o.value, o.present
}

// Value returns the result, or the zero value when it is absent.
func (o Outcome[T]) Value() T {
	return o.value
}

func (o Outcome[T]) HasValue() bool {
	return o.present
}

func (o Outcome[T]) Diagnostics() []Diagnostic {
	return o.diagnostics
}

func (o Outcome[T]) HasErrors() bool {
	return HasErrors(o.diagnostics)
}

func (o Outcome[T]) Errors() []Diagnostic {
	return o.bySeverity(SeverityError)
}

func (o Outcome[T]) Warnings() []Diagnostic {
	return o.bySeverity(SeverityWarning)
}

func (o Outcome[T]) bySeverity(s Severity) []Diagnostic {
	var out []Diagnostic
	for _, d := range o.diagnostics {
		if d.Severity() == s {
			out = append(out, d)
		}
	}
	return out
}

// Err folds the error-severity diagnostics into a single error. It returns
// nil when there are none, even if warnings were reported.
func (o Outcome[T]) Err() error {
	var result *multierror.Error
	for _, d := range o.Errors() {
		result = multierror.Append(result, d)
	}
	return result.ErrorOrNil()
}

// Map transforms a present value and keeps the diagnostics as they are.
func Map[T, U any](o Outcome[T], f func(T) U) Outcome[U] {
	if !o.present {
		return None[U](o.diagnostics)
	}
	return Some(f(o.value), o.diagnostics)
}

// WithDiagnostics returns a copy of o with ds appended after its own
// diagnostics.
func (o Outcome[T]) WithDiagnostics(ds ...Diagnostic) Outcome[T] {
	merged := make([]Diagnostic, 0, len(o.diagnostics)+len(ds))
	merged = append(merged, o.diagnostics...)
	merged = append(merged, ds...)
	o.diagnostics = merged
	return o
}
