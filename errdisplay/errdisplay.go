// Package errdisplay renders parse errors for different consumers. It keeps
// presentation out of the parsing layer: the same []*ParseError renders as
// annotated source excerpts for the terminal or as structured JSON for
// tooling.
package errdisplay

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/ledgertools/beantree"
	"github.com/ledgertools/beantree/output"
)

// Renderer renders parse errors to a string.
type Renderer interface {
	// Render renders a single error.
	Render(err *beantree.ParseError) string

	// RenderAll renders multiple errors.
	RenderAll(errs []*beantree.ParseError) string
}

// TextRenderer renders errors as annotated source excerpts:
//
//	ledger.beancount:3:12: syntax error: expected account name, found STRING
//
//	   2014-05-05 open "oops"
//	              ^^^^^^^^^^^
type TextRenderer struct {
	source []byte
	styles *output.Styles
}

// TextOption configures a TextRenderer.
type TextOption func(*TextRenderer)

// WithSource provides the source text so excerpts can be shown under syntax
// errors. Without it only the message line is rendered.
func WithSource(source []byte) TextOption {
	return func(r *TextRenderer) {
		r.source = source
	}
}

// WithStyles enables terminal coloring.
func WithStyles(styles *output.Styles) TextOption {
	return func(r *TextRenderer) {
		r.styles = styles
	}
}

// NewTextRenderer creates a text renderer.
func NewTextRenderer(opts ...TextOption) *TextRenderer {
	r := &TextRenderer{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render renders a single error.
func (r *TextRenderer) Render(err *beantree.ParseError) string {
	var buf bytes.Buffer

	switch err.Kind {
	case beantree.IOError, beantree.EncodingError:
		buf.WriteString(r.label(err.Kind))
		buf.WriteString(": ")
		buf.WriteString(err.Error())
	default:
		pos := err.Span.Start
		buf.WriteString(pos.String())
		buf.WriteString(": ")
		buf.WriteString(r.label(err.Kind))
		buf.WriteString(": ")
		buf.WriteString(err.Message)

		if excerpt := r.excerpt(err); excerpt != "" {
			buf.WriteString("\n\n")
			buf.WriteString(excerpt)
		}
	}

	return buf.String()
}

// RenderAll renders multiple errors separated by blank lines.
func (r *TextRenderer) RenderAll(errs []*beantree.ParseError) string {
	if len(errs) == 0 {
		return ""
	}

	var buf bytes.Buffer
	for i, err := range errs {
		buf.WriteString(r.Render(err))
		if i < len(errs)-1 {
			buf.WriteString("\n\n")
		}
	}
	return buf.String()
}

func (r *TextRenderer) label(kind beantree.ErrorKind) string {
	s := kind.String()
	if r.styles != nil {
		return r.styles.Error(s)
	}
	return s
}

// excerpt renders the offending source line with a caret run underneath the
// error span. Caret alignment uses display width, so excerpts line up even
// when the source contains wide runes.
func (r *TextRenderer) excerpt(err *beantree.ParseError) string {
	if r.source == nil {
		return ""
	}

	lines := strings.Split(string(r.source), "\n")
	lineNo := err.Span.Start.Line
	if lineNo < 1 || lineNo > len(lines) {
		return ""
	}
	line := lines[lineNo-1]

	startCol := err.Span.Start.Column
	if startCol < 1 || startCol > len(line)+1 {
		startCol = 1
	}
	endCol := err.Span.End.Column
	if err.Span.End.Line != lineNo || endCol <= startCol {
		endCol = startCol + 1
	}
	if endCol > len(line)+1 {
		endCol = len(line) + 1
	}

	pad := runewidth.StringWidth(line[:startCol-1])
	width := runewidth.StringWidth(line[startCol-1 : endCol-1])
	if width < 1 {
		width = 1
	}

	carets := strings.Repeat("^", width)
	if r.styles != nil {
		carets = r.styles.Caret(carets)
	}

	var buf bytes.Buffer
	buf.WriteString("   ")
	buf.WriteString(line)
	buf.WriteByte('\n')
	buf.WriteString("   ")
	buf.WriteString(strings.Repeat(" ", pad))
	buf.WriteString(carets)
	return buf.String()
}

// JSONRenderer renders errors as structured JSON.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSON renderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// ErrorJSON is the wire shape of a single rendered error.
type ErrorJSON struct {
	Kind     string        `json:"kind"`
	Message  string        `json:"message"`
	Path     string        `json:"path,omitempty"`
	Position *PositionJSON `json:"position,omitempty"`
}

// PositionJSON is the wire shape of a source position.
type PositionJSON struct {
	Filename string `json:"filename"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
}

// Render renders a single error as a JSON object.
func (r *JSONRenderer) Render(err *beantree.ParseError) string {
	data, _ := json.Marshal(r.toJSON(err))
	return string(data)
}

// RenderAll renders multiple errors as an indented JSON array.
func (r *JSONRenderer) RenderAll(errs []*beantree.ParseError) string {
	out := make([]ErrorJSON, 0, len(errs))
	for _, err := range errs {
		out = append(out, r.toJSON(err))
	}
	data, _ := json.MarshalIndent(out, "", "  ")
	return string(data)
}

func (r *JSONRenderer) toJSON(err *beantree.ParseError) ErrorJSON {
	out := ErrorJSON{
		Kind:    err.Kind.String(),
		Message: err.Message,
		Path:    err.Path,
	}
	if err.Kind == beantree.SyntaxError {
		pos := err.Span.Start
		out.Position = &PositionJSON{
			Filename: pos.Filename,
			Line:     pos.Line,
			Column:   pos.Column,
		}
	}
	return out
}
