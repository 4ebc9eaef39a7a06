package grammar

// Lexer implements a zero-copy lexer for Beancount files.
//
// The zero-copy approach:
// - Tokens store byte offsets, not string values
// - No intermediate token format conversions
// - String interning for repeated values
// - Pre-allocated token buffer
//
// Full-line comments (a ';' in the first column, or a line containing only a
// comment) are emitted as COMMENT tokens so they survive into the syntax
// tree; trailing comments on directive lines are skipped.
type Lexer struct {
	source   []byte
	filename string
	pos      int // Current byte position
	line     int // Current line (1-indexed)
	column   int // Current column (1-indexed)
	tokens   []Token
	interner *Interner
}

// NewLexer creates a new lexer for the given source.
func NewLexer(source []byte, filename string) *Lexer {
	// Empirically ~1 token per 20 bytes; pre-allocation eliminates most
	// slice growth during the scan.
	estimatedTokens := len(source)/20 + 1000

	internerCap := len(source) / 40
	if internerCap < 2000 {
		internerCap = 2000
	}

	return &Lexer{
		source:   source,
		filename: filename,
		line:     1,
		column:   1,
		tokens:   make([]Token, 0, estimatedTokens),
		interner: NewInterner(internerCap),
	}
}

// Interner returns the string interner, shared with the parser.
func (l *Lexer) Interner() *Interner {
	return l.interner
}

// ScanAll lexes the entire source file and returns all tokens.
// This is a single-pass scanner with no backtracking.
func (l *Lexer) ScanAll() []Token {
	for l.pos < len(l.source) {
		l.skipWhitespace()

		if l.pos >= len(l.source) {
			break
		}

		if l.peek() == ';' {
			// Comments at the start of a line are kept; trailing
			// comments after tokens on the same line are not.
			if l.atLineStart() {
				l.tokens = append(l.tokens, l.scanComment())
			} else {
				l.skipComment()
			}
			continue
		}

		tok := l.scanToken()
		l.tokens = append(l.tokens, tok)
	}

	l.tokens = append(l.tokens, Token{
		Type: EOF, Start: l.pos, End: l.pos,
		Line: l.line, Column: l.column,
		EndLine: l.line, EndColumn: l.column,
	})

	return l.tokens
}

// atLineStart reports whether no token has been emitted yet on the current line.
func (l *Lexer) atLineStart() bool {
	n := len(l.tokens)
	return n == 0 || l.tokens[n-1].EndLine < l.line
}

// scanToken scans the next token from the current position.
func (l *Lexer) scanToken() Token {
	start := l.pos
	startLine := l.line
	startCol := l.column

	ch := l.advance()

	switch {
	// Dates must be checked before numbers: both start with a digit.
	case ch >= '0' && ch <= '9':
		if l.isDatePattern(start) {
			return l.scanDate(start, startLine, startCol)
		}
		return l.scanNumber(start, startLine, startCol)
	case (ch == '-' || ch == '+') && l.peekIsDigit():
		return l.scanNumber(start, startLine, startCol)

	// Strings: "..."
	case ch == '"':
		return l.scanString(start, startLine, startCol)

	// Tags: #tag
	case ch == '#':
		return l.scanTag(start, startLine, startCol)

	// Links: ^link
	case ch == '^':
		return l.scanLink(start, startLine, startCol)

	// Accounts (start with capital) or identifiers.
	// Non-ASCII bytes may be Unicode uppercase or other letters.
	case ch >= 'A' && ch <= 'Z' || ch >= 0x80:
		return l.scanAccountOrIdent(start, startLine, startCol)

	// Keywords or identifiers (start with lowercase)
	case ch >= 'a' && ch <= 'z':
		return l.scanKeywordOrIdent(start, startLine, startCol)

	case ch == '*':
		return l.token(ASTERISK, start, startLine, startCol)
	case ch == '!':
		return l.token(EXCLAIM, start, startLine, startCol)
	case ch == ':':
		return l.token(COLON, start, startLine, startCol)
	case ch == ',':
		return l.token(COMMA, start, startLine, startCol)
	case ch == '~':
		return l.token(TILDE, start, startLine, startCol)

	// Operators in amount expressions. A sign directly followed by a digit
	// was already consumed as part of a number above.
	case ch == '+':
		return l.token(PLUS, start, startLine, startCol)
	case ch == '-':
		return l.token(MINUS, start, startLine, startCol)
	case ch == '/':
		return l.token(SLASH, start, startLine, startCol)
	case ch == '(':
		return l.token(LPAREN, start, startLine, startCol)
	case ch == ')':
		return l.token(RPAREN, start, startLine, startCol)

	case ch == '{':
		if l.peek() == '{' {
			l.advance()
			return l.token(LDBRACE, start, startLine, startCol)
		}
		return l.token(LBRACE, start, startLine, startCol)

	case ch == '}':
		if l.peek() == '}' {
			l.advance()
			return l.token(RDBRACE, start, startLine, startCol)
		}
		return l.token(RBRACE, start, startLine, startCol)

	case ch == '@':
		if l.peek() == '@' {
			l.advance()
			return l.token(ATAT, start, startLine, startCol)
		}
		return l.token(AT, start, startLine, startCol)

	default:
		return l.token(ILLEGAL, start, startLine, startCol)
	}
}

// token finalizes a token spanning from start to the current position.
func (l *Lexer) token(tt TokenType, start, line, col int) Token {
	return Token{
		Type: tt, Start: start, End: l.pos,
		Line: line, Column: col,
		EndLine: l.line, EndColumn: l.column,
	}
}

// isDatePattern checks if the position starts a date pattern YYYY-MM-DD.
func (l *Lexer) isDatePattern(start int) bool {
	if start+10 > len(l.source) {
		return false
	}

	src := l.source[start:]
	return src[0] >= '0' && src[0] <= '9' &&
		src[1] >= '0' && src[1] <= '9' &&
		src[2] >= '0' && src[2] <= '9' &&
		src[3] >= '0' && src[3] <= '9' &&
		src[4] == '-' &&
		src[5] >= '0' && src[5] <= '9' &&
		src[6] >= '0' && src[6] <= '9' &&
		src[7] == '-' &&
		src[8] >= '0' && src[8] <= '9' &&
		src[9] >= '0' && src[9] <= '9'
}

// scanDate scans a date: YYYY-MM-DD. First digit already consumed.
func (l *Lexer) scanDate(start, line, col int) Token {
	for i := 0; i < 9; i++ {
		l.advance()
	}
	return l.token(DATE, start, line, col)
}

// scanNumber scans a number: [-+]?[0-9]+(\.[0-9]+)?
func (l *Lexer) scanNumber(start, line, col int) Token {
	for l.pos < len(l.source) && l.source[l.pos] >= '0' && l.source[l.pos] <= '9' {
		l.advance()
	}

	// Optional decimal part; the dot must be followed by a digit.
	if l.pos < len(l.source) && l.source[l.pos] == '.' {
		if l.pos+1 < len(l.source) && l.source[l.pos+1] >= '0' && l.source[l.pos+1] <= '9' {
			l.advance()
			for l.pos < len(l.source) && l.source[l.pos] >= '0' && l.source[l.pos] <= '9' {
				l.advance()
			}
		}
	}

	return l.token(NUMBER, start, line, col)
}

// scanString scans a quoted string: "...". Opening quote already consumed.
func (l *Lexer) scanString(start, line, col int) Token {
	for l.pos < len(l.source) {
		ch := l.source[l.pos]
		if ch == '"' {
			l.advance()
			break
		}
		if ch == '\n' {
			// Strings don't span lines in Beancount
			break
		}
		if ch == '\\' && l.pos+1 < len(l.source) {
			l.advance()
			l.advance()
		} else {
			l.advance()
		}
	}

	return l.token(STRING, start, line, col)
}

// scanTag scans a tag: #[A-Za-z0-9_-]+
func (l *Lexer) scanTag(start, line, col int) Token {
	l.scanNameChars()
	return l.token(TAG, start, line, col)
}

// scanLink scans a link: ^[A-Za-z0-9_-]+
func (l *Lexer) scanLink(start, line, col int) Token {
	l.scanNameChars()
	return l.token(LINK, start, line, col)
}

func (l *Lexer) scanNameChars() {
	for l.pos < len(l.source) {
		ch := l.source[l.pos]
		if (ch < 'A' || ch > 'Z') && (ch < 'a' || ch > 'z') &&
			(ch < '0' || ch > '9') && ch != '_' && ch != '-' {
			break
		}
		l.advance()
	}
}

// scanComment scans a full-line comment up to (not including) the newline.
func (l *Lexer) scanComment() Token {
	start := l.pos
	startLine := l.line
	startCol := l.column
	for l.pos < len(l.source) && l.source[l.pos] != '\n' {
		l.advance()
	}
	return l.token(COMMENT, start, startLine, startCol)
}

// scanAccountOrIdent scans an account name or identifier starting with a
// capital letter or Unicode character. Accounts contain colons
// (Assets:Bank:Checking), identifiers don't (USD).
func (l *Lexer) scanAccountOrIdent(start, line, col int) Token {
	hasColon := false

	for l.pos < len(l.source) {
		ch := l.source[l.pos]

		// Accept letters (ASCII or UTF-8 multi-byte), digits, colons, hyphens.
		isASCIILetter := (ch >= 'A' && ch <= 'Z') || (ch >= 'a' && ch <= 'z')
		isDigit := ch >= '0' && ch <= '9'
		isUTF8 := ch >= 0x80
		isSpecial := ch == ':' || ch == '-'

		if !isASCIILetter && !isDigit && !isUTF8 && !isSpecial {
			break
		}

		if ch == ':' {
			hasColon = true
		}
		l.advance()
	}

	if hasColon {
		return l.token(ACCOUNT, start, line, col)
	}

	return l.token(IDENT, start, line, col)
}

// scanKeywordOrIdent scans a keyword or identifier starting with a lowercase letter.
func (l *Lexer) scanKeywordOrIdent(start, line, col int) Token {
	for l.pos < len(l.source) {
		ch := l.source[l.pos]
		if (ch < 'a' || ch > 'z') && (ch < 'A' || ch > 'Z') &&
			(ch < '0' || ch > '9') && ch != '_' && ch != '-' {
			break
		}
		l.advance()
	}

	word := l.interner.InternBytes(l.source[start:l.pos])
	if tt, ok := keywords[word]; ok {
		return l.token(tt, start, line, col)
	}

	return l.token(IDENT, start, line, col)
}

// skipWhitespace skips whitespace and updates line/column tracking.
func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.source) {
		ch := l.source[l.pos]
		if ch != ' ' && ch != '\t' && ch != '\n' && ch != '\r' {
			break
		}
		if ch == '\n' {
			l.line++
			l.column = 1
			l.pos++
		} else {
			l.column++
			l.pos++
		}
	}
}

// skipComment skips a trailing comment up to the end of line.
func (l *Lexer) skipComment() {
	for l.pos < len(l.source) && l.source[l.pos] != '\n' {
		l.advance()
	}
}

// Helper methods

func (l *Lexer) peek() byte {
	if l.pos >= len(l.source) {
		return 0
	}
	return l.source[l.pos]
}

func (l *Lexer) peekIsDigit() bool {
	if l.pos >= len(l.source) {
		return false
	}
	ch := l.source[l.pos]
	return ch >= '0' && ch <= '9'
}

func (l *Lexer) advance() byte {
	if l.pos >= len(l.source) {
		return 0
	}
	ch := l.source[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return ch
}
