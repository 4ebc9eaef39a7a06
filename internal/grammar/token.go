package grammar

// TokenType represents the type of token scanned from the input.
type TokenType uint8

const (
	// Special tokens
	EOF TokenType = iota
	ILLEGAL

	// Keywords - directive types
	TXN       // txn
	BALANCE   // balance
	OPEN      // open
	CLOSE     // close
	COMMODITY // commodity
	PAD       // pad
	NOTE      // note
	DOCUMENT  // document
	PRICE     // price
	EVENT     // event
	QUERY     // query
	CUSTOM    // custom
	OPTION    // option
	INCLUDE   // include
	PLUGIN    // plugin
	PUSHTAG   // pushtag
	POPTAG    // poptag
	PUSHMETA  // pushmeta
	POPMETA   // popmeta

	// Literals
	DATE    // YYYY-MM-DD
	ACCOUNT // Assets:Bank:Checking
	STRING  // "quoted string"
	NUMBER  // 123.45 or -123.45
	IDENT   // USD, TRUE, FALSE, currency codes, metadata keys

	// Special literals
	TAG     // #tag
	LINK    // ^link
	COMMENT // ; full-line comment

	// Symbols
	ASTERISK // *
	EXCLAIM  // !
	COLON    // :
	COMMA    // ,
	AT       // @
	ATAT     // @@
	LBRACE   // {
	RBRACE   // }
	LDBRACE  // {{
	RDBRACE  // }}
	TILDE    // ~ (balance tolerance)

	// Arithmetic operators in amount expressions
	PLUS   // +
	MINUS  // -
	SLASH  // /
	LPAREN // (
	RPAREN // )
)

var tokenNames = map[TokenType]string{
	EOF:     "EOF",
	ILLEGAL: "ILLEGAL",

	TXN:       "txn",
	BALANCE:   "balance",
	OPEN:      "open",
	CLOSE:     "close",
	COMMODITY: "commodity",
	PAD:       "pad",
	NOTE:      "note",
	DOCUMENT:  "document",
	PRICE:     "price",
	EVENT:     "event",
	QUERY:     "query",
	CUSTOM:    "custom",
	OPTION:    "option",
	INCLUDE:   "include",
	PLUGIN:    "plugin",
	PUSHTAG:   "pushtag",
	POPTAG:    "poptag",
	PUSHMETA:  "pushmeta",
	POPMETA:   "popmeta",

	DATE:    "DATE",
	ACCOUNT: "ACCOUNT",
	STRING:  "STRING",
	NUMBER:  "NUMBER",
	IDENT:   "IDENT",

	TAG:     "TAG",
	LINK:    "LINK",
	COMMENT: "COMMENT",

	ASTERISK: "*",
	EXCLAIM:  "!",
	COLON:    ":",
	COMMA:    ",",
	AT:       "@",
	ATAT:     "@@",
	LBRACE:   "{",
	RBRACE:   "}",
	LDBRACE:  "{{",
	RDBRACE:  "}}",
	TILDE:    "~",

	PLUS:   "+",
	MINUS:  "-",
	SLASH:  "/",
	LPAREN: "(",
	RPAREN: ")",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// keywords maps lowercase identifiers to their keyword token types.
var keywords = map[string]TokenType{
	"txn":       TXN,
	"balance":   BALANCE,
	"open":      OPEN,
	"close":     CLOSE,
	"commodity": COMMODITY,
	"pad":       PAD,
	"note":      NOTE,
	"document":  DOCUMENT,
	"price":     PRICE,
	"event":     EVENT,
	"query":     QUERY,
	"custom":    CUSTOM,
	"option":    OPTION,
	"include":   INCLUDE,
	"plugin":    PLUGIN,
	"pushtag":   PUSHTAG,
	"poptag":    POPTAG,
	"pushmeta":  PUSHMETA,
	"popmeta":   POPMETA,
}

// Token represents a lexical token with zero-copy semantics. Instead of
// storing the token text as a string (which would allocate), it stores byte
// offsets into the original source buffer.
type Token struct {
	Type      TokenType
	Start     int // Byte offset into source buffer
	End       int // End offset (exclusive)
	Line      int // Line number (1-indexed)
	Column    int // Column number (1-indexed)
	EndLine   int // Line of the byte after the token
	EndColumn int // Column of the byte after the token
}

// String materializes the token text from the source buffer. The allocation
// only happens when the text is actually needed, not during lexing.
func (t Token) String(source []byte) string {
	if t.Start >= len(source) || t.End > len(source) || t.Start > t.End {
		return ""
	}
	return string(source[t.Start:t.End])
}

// Bytes returns a zero-copy view of the token text.
func (t Token) Bytes(source []byte) []byte {
	if t.Start >= len(source) || t.End > len(source) || t.Start > t.End {
		return nil
	}
	return source[t.Start:t.End]
}

// Len returns the length of the token in bytes.
func (t Token) Len() int {
	return t.End - t.Start
}

// IsZero reports whether the token is the zero value, used for optional
// token slots in nodes.
func (t Token) IsZero() bool {
	return t == Token{}
}
