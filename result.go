package beantree

import (
	"fmt"

	"github.com/ledgertools/beantree/ast"
)

// ErrorKind classifies parse errors into the three failure categories a
// caller can meaningfully distinguish: malformed input, unreadable files, and
// non-UTF-8 bytes.
type ErrorKind uint8

const (
	// SyntaxError reports malformed input. The Span locates the offending
	// region of the source.
	SyntaxError ErrorKind = iota
	// IOError reports a file that could not be read. Path names the file
	// and the underlying error is available through Unwrap.
	IOError
	// EncodingError reports input that is not valid UTF-8.
	EncodingError
)

func (k ErrorKind) String() string {
	switch k {
	case SyntaxError:
		return "syntax error"
	case IOError:
		return "io error"
	case EncodingError:
		return "encoding error"
	default:
		return "unknown error"
	}
}

// ParseError is a single error produced while parsing. Syntax errors carry a
// span into the source; IO errors carry the path and the wrapped cause.
type ParseError struct {
	Kind    ErrorKind
	Span    ast.Span
	Message string
	Path    string
	Err     error
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case IOError:
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	case EncodingError:
		return e.Message
	default:
		return fmt.Sprintf("%s: %s", e.Span.Start, e.Message)
	}
}

// Unwrap exposes the underlying cause of IO errors to errors.Is and
// errors.As.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseResult is the complete outcome of parsing one source: every directive
// that could be recovered, in source order, and every error encountered.
// A result can carry both; a malformed statement produces an error while the
// statements around it still convert.
type ParseResult struct {
	Filename   string
	Source     []byte
	Directives ast.Directives
	Errors     []*ParseError
}

// HasErrors reports whether any error was recorded during the parse.
func (r *ParseResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// Options returns the option directives keyed by name. Later declarations of
// the same option win, matching file evaluation order.
func (r *ParseResult) Options() map[string]string {
	opts := make(map[string]string)
	for _, d := range r.Directives.OfKind(ast.KindOption) {
		o := d.(*ast.Option)
		opts[o.Name] = o.Value
	}
	return opts
}

// Includes returns the paths named by include directives, in source order.
func (r *ParseResult) Includes() []string {
	var paths []string
	for _, d := range r.Directives.OfKind(ast.KindInclude) {
		paths = append(paths, d.(*ast.Include).Filename)
	}
	return paths
}

// Transactions returns the transaction directives, in source order.
func (r *ParseResult) Transactions() []*ast.Transaction {
	var txns []*ast.Transaction
	for _, d := range r.Directives.OfKind(ast.KindTransaction) {
		txns = append(txns, d.(*ast.Transaction))
	}
	return txns
}
