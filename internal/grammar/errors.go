package grammar

import "fmt"

// Error is a syntax error with its source location. The parser records
// errors and resynchronizes instead of stopping at the first problem, so a
// single parse can report every malformed statement in the file.
type Error struct {
	Span    Span
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Span.Start.Line, e.Span.Start.Column, e.Message)
}

func errorAt(tok Token, format string, args ...any) *Error {
	return &Error{
		Span:    Span{Start: tok.Pos(), End: tok.EndPos()},
		Message: fmt.Sprintf(format, args...),
	}
}
