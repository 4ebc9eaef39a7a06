package grammar

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func scan(t *testing.T, source string) []Token {
	t.Helper()
	return NewLexer([]byte(source), "test.beancount").ScanAll()
}

func types(tokens []Token) []TokenType {
	out := make([]TokenType, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Type
	}
	return out
}

func TestScanDirectiveLine(t *testing.T) {
	tokens := scan(t, `2014-05-05 open Assets:Cash USD "STRICT"`)

	assert.Equal(t, []TokenType{DATE, OPEN, ACCOUNT, IDENT, STRING, EOF}, types(tokens))
	assert.Equal(t, "2014-05-05", tokens[0].String([]byte(`2014-05-05 open Assets:Cash USD "STRICT"`)))
}

func TestScanDateVersusNumber(t *testing.T) {
	source := `2014-05-05 2014.05 -12.34 +7 1234`
	tokens := scan(t, source)

	assert.Equal(t, []TokenType{DATE, NUMBER, NUMBER, NUMBER, NUMBER, EOF}, types(tokens))
	assert.Equal(t, "-12.34", tokens[2].String([]byte(source)))
	assert.Equal(t, "+7", tokens[3].String([]byte(source)))
}

func TestScanSymbols(t *testing.T) {
	tokens := scan(t, `* ! : , @ @@ { } {{ }} ~`)

	assert.Equal(t, []TokenType{
		ASTERISK, EXCLAIM, COLON, COMMA, AT, ATAT,
		LBRACE, RBRACE, LDBRACE, RDBRACE, TILDE, EOF,
	}, types(tokens))
}

func TestScanExpressionOperators(t *testing.T) {
	tokens := scan(t, `(2 + 3) * 4.00 / 2 - 1`)

	assert.Equal(t, []TokenType{
		LPAREN, NUMBER, PLUS, NUMBER, RPAREN,
		ASTERISK, NUMBER, SLASH, NUMBER, MINUS, NUMBER, EOF,
	}, types(tokens))

	// A sign glued to a digit is part of the number, not an operator.
	tokens = scan(t, "2 -1")
	assert.Equal(t, []TokenType{NUMBER, NUMBER, EOF}, types(tokens))
}

func TestScanTagsAndLinks(t *testing.T) {
	source := `#trip-europe ^invoice-123`
	tokens := scan(t, source)

	assert.Equal(t, []TokenType{TAG, LINK, EOF}, types(tokens))
	assert.Equal(t, "#trip-europe", tokens[0].String([]byte(source)))
	assert.Equal(t, "^invoice-123", tokens[1].String([]byte(source)))
}

func TestScanStringEscapes(t *testing.T) {
	source := `"with \"escaped\" quotes"`
	tokens := scan(t, source)

	assert.Equal(t, []TokenType{STRING, EOF}, types(tokens))
	assert.Equal(t, source, tokens[0].String([]byte(source)))
}

func TestScanKeywordsAndIdents(t *testing.T) {
	tokens := scan(t, "open close banana pushtag")
	assert.Equal(t, []TokenType{OPEN, CLOSE, IDENT, PUSHTAG, EOF}, types(tokens))
}

func TestFullLineCommentKept(t *testing.T) {
	source := "; top comment\n2014-05-05 close Assets:Cash ; trailing comment\n"
	tokens := scan(t, source)

	assert.Equal(t, []TokenType{COMMENT, DATE, CLOSE, ACCOUNT, EOF}, types(tokens))
	assert.Equal(t, "; top comment", tokens[0].String([]byte(source)))
}

func TestIndentedCommentKept(t *testing.T) {
	// A line holding only a comment is kept even when indented.
	source := "2014-05-05 close Assets:Cash\n  ; note to self\n"
	tokens := scan(t, source)

	assert.Equal(t, []TokenType{DATE, CLOSE, ACCOUNT, COMMENT, EOF}, types(tokens))
}

func TestLineAndColumnTracking(t *testing.T) {
	source := "option \"a\" \"b\"\n  key: 42\n"
	tokens := scan(t, source)

	assert.Equal(t, 1, tokens[0].Line)
	assert.Equal(t, 1, tokens[0].Column)

	// "key" starts line 2 column 3.
	key := tokens[3]
	assert.Equal(t, IDENT, key.Type)
	assert.Equal(t, 2, key.Line)
	assert.Equal(t, 3, key.Column)
	assert.Equal(t, 2, key.EndLine)
	assert.Equal(t, 6, key.EndColumn)
}

func TestScanUnicodeAccount(t *testing.T) {
	source := "Assets:Bank:Курс"
	tokens := scan(t, source)

	assert.Equal(t, []TokenType{ACCOUNT, EOF}, types(tokens))
	assert.Equal(t, source, tokens[0].String([]byte(source)))
}

func TestScanIllegal(t *testing.T) {
	tokens := scan(t, "%")
	assert.Equal(t, []TokenType{ILLEGAL, EOF}, types(tokens))
}

func TestInternerReuse(t *testing.T) {
	in := NewInterner(4)
	a := in.Intern("USD")
	b := in.InternBytes([]byte("USD"))
	assert.Equal(t, a, b)
	assert.Equal(t, 1, in.Size())
}
