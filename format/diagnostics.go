package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/dhamidi/vbt/vb6/diag"
	"github.com/dhamidi/vbt/vb6/source"
)

// DiagnosticWriter prints diagnostics as
//
//	file:line:col: severity: description [Category]
//	    source line
//	        ^
//
// Colors are only used when enabled, independent of the terminal.
type DiagnosticWriter struct {
	w            io.Writer
	errorColor   *color.Color
	warningColor *color.Color
	noteColor    *color.Color
	caretColor   *color.Color
	boldColor    *color.Color
}

func NewDiagnosticWriter(w io.Writer, useColor bool) *DiagnosticWriter {
	dw := &DiagnosticWriter{
		w:            w,
		errorColor:   color.New(color.FgRed, color.Bold),
		warningColor: color.New(color.FgYellow, color.Bold),
		noteColor:    color.New(color.FgCyan, color.Bold),
		caretColor:   color.New(color.FgGreen, color.Bold),
		boldColor:    color.New(color.Bold),
	}
	for _, c := range []*color.Color{dw.errorColor, dw.warningColor, dw.noteColor, dw.caretColor, dw.boldColor} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return dw
}

// Write prints ds, resolving offsets with lines. lines may be nil, in which
// case only byte offsets are shown.
func (dw *DiagnosticWriter) Write(lines *source.LineIndex, ds []diag.Diagnostic) error {
	text, err := dw.MarshalText(lines, ds)
	return writeText(dw.w, text, err)
}

func (dw *DiagnosticWriter) MarshalText(lines *source.LineIndex, ds []diag.Diagnostic) ([]byte, error) {
	var sb strings.Builder
	for _, d := range ds {
		dw.writeOne(&sb, lines, d)
	}
	return []byte(sb.String()), nil
}

func (dw *DiagnosticWriter) writeOne(sb *strings.Builder, lines *source.LineIndex, d diag.Diagnostic) {
	location := fmt.Sprintf("%s:%d", d.File, d.Offset)
	var pos source.Position
	if lines != nil {
		pos = lines.Position(d.Offset)
		location = pos.String()
	}

	fmt.Fprintf(sb, "%s %s %s [%s]\n",
		dw.boldColor.Sprint(location+":"),
		dw.severityColor(d.Severity()).Sprint(d.Severity().String()+":"),
		message(d),
		d.Category,
	)

	if lines == nil {
		return
	}
	line := string(lines.Line(pos.Line))
	fmt.Fprintf(sb, "    %s\n", line)
	fmt.Fprintf(sb, "    %s%s\n", caretPadding(line, pos.Column-1), dw.caretColor.Sprint(underline(d.Text)))
}

func (dw *DiagnosticWriter) severityColor(s diag.Severity) *color.Color {
	switch s {
	case diag.SeverityError:
		return dw.errorColor
	case diag.SeverityWarning:
		return dw.warningColor
	}
	return dw.noteColor
}

func message(d diag.Diagnostic) string {
	msg := d.Category.Description()
	if d.Expected != "" {
		msg += fmt.Sprintf(", expected %s", d.Expected)
	}
	if d.Text != "" && !strings.ContainsAny(d.Text, "\r\n") {
		msg += fmt.Sprintf(": %q", d.Text)
	}
	return msg
}

// caretPadding blanks out the first n bytes of line, keeping tabs so the
// caret lines up under the offending text.
func caretPadding(line string, n int) string {
	if n > len(line) {
		n = len(line)
	}
	var sb strings.Builder
	for _, r := range line[:n] {
		if r == '\t' {
			sb.WriteByte('\t')
		} else {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}

// underline is a caret followed by tildes for the rest of text's first
// line.
func underline(text string) string {
	if i := strings.IndexAny(text, "\r\n"); i >= 0 {
		text = text[:i]
	}
	width := len([]rune(text))
	if width <= 1 {
		return "^"
	}
	return "^" + strings.Repeat("~", width-1)
}

// DiagnosticJSONEncoder writes diagnostics as a JSON array.
type DiagnosticJSONEncoder struct {
	w io.Writer
}

func NewDiagnosticJSONEncoder(w io.Writer) *DiagnosticJSONEncoder {
	return &DiagnosticJSONEncoder{w: w}
}

type jsonDiagnostic struct {
	File     string `json:"file"`
	Offset   int    `json:"offset"`
	Line     int    `json:"line,omitempty"`
	Column   int    `json:"column,omitempty"`
	Severity string `json:"severity"`
	Category string `json:"category"`
	Message  string `json:"message"`
	Text     string `json:"text,omitempty"`
	Expected string `json:"expected,omitempty"`
}

func (e *DiagnosticJSONEncoder) Encode(lines *source.LineIndex, ds []diag.Diagnostic) error {
	text, err := e.MarshalText(lines, ds)
	if err == nil {
		text = append(text, '\n')
	}
	return writeText(e.w, text, err)
}

func (e *DiagnosticJSONEncoder) MarshalText(lines *source.LineIndex, ds []diag.Diagnostic) ([]byte, error) {
	out := make([]jsonDiagnostic, 0, len(ds))
	for _, d := range ds {
		jd := jsonDiagnostic{
			File:     d.File,
			Offset:   d.Offset,
			Severity: d.Severity().String(),
			Category: d.Category.String(),
			Message:  d.Category.Description(),
			Text:     d.Text,
			Expected: d.Expected,
		}
		if lines != nil {
			pos := lines.Position(d.Offset)
			jd.Line, jd.Column = pos.Line, pos.Column
		}
		out = append(out, jd)
	}
	return json.MarshalIndent(out, "", "  ")
}
