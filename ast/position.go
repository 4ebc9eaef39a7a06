package ast

import "fmt"

// Position represents a location in the source file.
type Position struct {
	Filename string
	Offset   int // Byte offset
	Line     int // Line number (1-indexed)
	Column   int // Column number (1-indexed)
}

// IsZero returns true if this is an uninitialized position.
func (p Position) IsZero() bool {
	return p == Position{}
}

// String returns a human-readable representation of the position.
func (p Position) String() string {
	if p.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// GoString returns a Go-syntax representation of the position.
func (p Position) GoString() string {
	return fmt.Sprintf("Position{Filename: %q, Line: %d, Column: %d}", p.Filename, p.Line, p.Column)
}

// Span represents a range in the source file, from the start of the first
// token of a syntax element up to (but not including) the byte after its last
// token. Invariant: End.Offset >= Start.Offset.
type Span struct {
	Start Position // First byte (inclusive)
	End   Position // Byte after the last one (exclusive)
}

// IsZero returns true if this is an uninitialized span.
func (s Span) IsZero() bool {
	return s.Start.IsZero() && s.End.IsZero()
}

// Len returns the length of the span in bytes.
func (s Span) Len() int {
	return s.End.Offset - s.Start.Offset
}

// Text extracts the source text for this span (zero-copy slice).
// Returns empty string if the span is invalid or does not fit the source.
func (s Span) Text(source []byte) string {
	start, end := s.Start.Offset, s.End.Offset
	if s.IsZero() || start < 0 || end < start || end > len(source) {
		return ""
	}
	return string(source[start:end])
}

// String returns the start position, the conventional anchor for diagnostics.
func (s Span) String() string {
	return s.Start.String()
}
