package ast

// Token is a raw lexical unit preserved for diagnostics. Unlike the tokens
// used inside the parsing engine, which store only offsets into a shared
// source buffer, an exported Token carries its text so that it remains
// meaningful after the source buffer is gone.
//
// Tokens are created once during conversion and never mutated.
type Token struct {
	Kind string // Stable kind tag, e.g. "DATE", "ACCOUNT", "NUMBER", "STRING"
	Span Span
	Text string // Verbatim source text, including any quotes or prefixes
}

// IsZero returns true if this is an uninitialized token.
func (t Token) IsZero() bool {
	return t.Kind == "" && t.Span.IsZero() && t.Text == ""
}

func (t Token) String() string {
	return t.Text
}
