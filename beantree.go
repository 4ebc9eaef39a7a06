// Package beantree parses Beancount ledger files into an immutable object
// model. Parsing never panics on malformed input and never stops at the
// first problem: the result carries every directive that could be recovered
// together with every error encountered, so callers can report all problems
// in one pass.
//
// Example usage:
//
//	result := beantree.ParseString(ctx, `2014-05-05 * "Coffee"
//	  Expenses:Food  4.50 USD
//	  Assets:Cash`)
//	for _, d := range result.Directives {
//	    fmt.Println(d.Kind(), d.Pos())
//	}
package beantree

import (
	"context"
	"os"
	"unicode/utf8"

	"golang.org/x/exp/slices"

	"github.com/ledgertools/beantree/ast"
	"github.com/ledgertools/beantree/internal/grammar"
	"github.com/ledgertools/beantree/telemetry"
)

// StdinFilename is the filename recorded on positions when parsing sources
// that have no file behind them.
const StdinFilename = "<string>"

// ParseString parses Beancount source held in a string.
func ParseString(ctx context.Context, source string) *ParseResult {
	return ParseBytes(ctx, StdinFilename, []byte(source))
}

// ParseFile reads and parses the file at path. A file that cannot be read
// yields a result with a single IO error; a file that is not valid UTF-8
// yields a single encoding error. The behavior is otherwise identical to
// parsing the file's bytes directly.
func ParseFile(ctx context.Context, path string) *ParseResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return &ParseResult{
			Filename: path,
			Errors: []*ParseError{{
				Kind:    IOError,
				Path:    path,
				Message: err.Error(),
				Err:     err,
			}},
		}
	}
	return ParseBytes(ctx, path, data)
}

// ParseBytes parses source, recording filename on every position. This is
// the single entry point both ParseString and ParseFile funnel through.
func ParseBytes(ctx context.Context, filename string, source []byte) *ParseResult {
	collector := telemetry.FromContext(ctx)
	timer := collector.Start("parse " + filename)
	defer timer.End()

	result := &ParseResult{Filename: filename, Source: source}

	if !utf8.Valid(source) {
		result.Errors = append(result.Errors, &ParseError{
			Kind:    EncodingError,
			Path:    filename,
			Message: "source is not valid UTF-8",
		})
		return result
	}

	lexParse := timer.Child("lex+parse")
	parser := grammar.NewParser(source, filename)
	nodes, syntaxErrors := parser.Parse()
	lexParse.End()

	conv := newConverter(source, filename, parser.Interner())

	convertTimer := timer.Child("convert")
	result.Directives = conv.convertAll(nodes)
	convertTimer.End()

	for _, e := range syntaxErrors {
		result.Errors = append(result.Errors, &ParseError{
			Kind: SyntaxError,
			Span: ast.Span{
				Start: conv.position(e.Span.Start),
				End:   conv.position(e.Span.End),
			},
			Message: e.Message,
		})
	}
	result.Errors = append(result.Errors, conv.errors...)

	// Grammar and conversion errors interleave in the file; report them in
	// source order regardless of which stage found them.
	slices.SortStableFunc(result.Errors, func(a, b *ParseError) int {
		return a.Span.Start.Offset - b.Span.Start.Offset
	})

	return result
}
