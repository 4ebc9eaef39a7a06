package grammar

// Parser is a recursive descent parser over the token stream. Statements
// start at column 1; postings and metadata are indented continuation lines.
// There are no newline tokens, so line boundaries are recovered from the
// line and column recorded on each token.
//
// The parser never stops at the first error. Each malformed statement is
// recorded as an Error and the parser resynchronizes to the next line that
// starts at column 1, so one pass reports every problem in the file and
// still yields every well-formed directive around them.
type Parser struct {
	source   []byte
	tokens   []Token
	pos      int
	interner *Interner
	errors   []*Error
}

// NewParser creates a parser for the given source. Lexing happens eagerly so
// the parser works over a fully materialized token slice.
func NewParser(source []byte, filename string) *Parser {
	lexer := NewLexer(source, filename)
	return &Parser{
		source:   source,
		tokens:   lexer.ScanAll(),
		interner: lexer.Interner(),
	}
}

// Interner exposes the shared string pool for the conversion layer.
func (p *Parser) Interner() *Interner {
	return p.interner
}

// Parse consumes the whole token stream and returns the raw nodes in source
// order together with every syntax error encountered.
func (p *Parser) Parse() ([]Node, []*Error) {
	var nodes []Node

	for !p.atEOF() {
		node := p.parseStatement()
		if node != nil {
			nodes = append(nodes, node)
		}
	}

	return nodes, p.errors
}

func (p *Parser) parseStatement() Node {
	tok := p.current()

	if tok.Column != 1 {
		p.errorf(tok, "unexpected indented line")
		p.synchronize()
		return nil
	}

	switch tok.Type {
	case COMMENT:
		p.advance()
		return &CommentNode{baseNode: spanned(tok, tok), Text: tok}
	case DATE:
		return p.parseDated()
	case OPTION:
		return p.parseOption()
	case INCLUDE:
		return p.parseInclude()
	case PLUGIN:
		return p.parsePlugin()
	case PUSHTAG:
		return p.parsePushtag()
	case POPTAG:
		return p.parsePoptag()
	case PUSHMETA:
		return p.parsePushmeta()
	case POPMETA:
		return p.parsePopmeta()
	default:
		p.errorf(tok, "unexpected token %s at start of statement", tok.Type)
		// The bad token sits at column 1, so skip it before
		// resynchronizing or the parser would not make progress.
		p.advance()
		p.synchronize()
		return nil
	}
}

// parseDated dispatches the directives that begin with a date.
func (p *Parser) parseDated() Node {
	date := p.advance()
	kw := p.current()

	switch kw.Type {
	case TXN, ASTERISK, EXCLAIM:
		return p.parseTransaction(date)
	case OPEN:
		return p.parseOpen(date)
	case CLOSE:
		return p.parseClose(date)
	case COMMODITY:
		return p.parseCommodity(date)
	case PAD:
		return p.parsePad(date)
	case BALANCE:
		return p.parseBalance(date)
	case NOTE:
		return p.parseNote(date)
	case DOCUMENT:
		return p.parseDocument(date)
	case PRICE:
		return p.parsePrice(date)
	case EVENT:
		return p.parseEvent(date)
	case QUERY:
		return p.parseQuery(date)
	case CUSTOM:
		return p.parseCustom(date)
	default:
		p.errorf(kw, "expected directive keyword after date, found %s", kw.Type)
		p.synchronize()
		return nil
	}
}

func (p *Parser) parseOpen(date Token) Node {
	p.advance() // open keyword

	account, ok := p.expect(ACCOUNT, "expected account name")
	if !ok {
		p.synchronize()
		return nil
	}

	node := &OpenNode{Date: date, Account: account}

	for p.check(IDENT) {
		node.Currencies = append(node.Currencies, p.advance())
		if !p.match(COMMA) {
			break
		}
	}

	if p.check(STRING) {
		node.BookingMethod = p.advance()
	}

	if !p.endOfLine(date.Line) {
		return nil
	}

	node.Metadata = p.parseMetadataBlock()
	node.Span = SpanBetween(date, p.previous())
	return node
}

func (p *Parser) parseClose(date Token) Node {
	p.advance()

	account, ok := p.expect(ACCOUNT, "expected account name")
	if !ok {
		p.synchronize()
		return nil
	}

	node := &CloseNode{Date: date, Account: account}
	if !p.endOfLine(date.Line) {
		return nil
	}

	node.Metadata = p.parseMetadataBlock()
	node.Span = SpanBetween(date, p.previous())
	return node
}

func (p *Parser) parseCommodity(date Token) Node {
	p.advance()

	currency, ok := p.expect(IDENT, "expected currency code")
	if !ok {
		p.synchronize()
		return nil
	}

	node := &CommodityNode{Date: date, Currency: currency}
	if !p.endOfLine(date.Line) {
		return nil
	}

	node.Metadata = p.parseMetadataBlock()
	node.Span = SpanBetween(date, p.previous())
	return node
}

func (p *Parser) parsePad(date Token) Node {
	p.advance()

	account, ok := p.expect(ACCOUNT, "expected account name")
	if !ok {
		p.synchronize()
		return nil
	}
	accountPad, ok := p.expect(ACCOUNT, "expected source account name")
	if !ok {
		p.synchronize()
		return nil
	}

	node := &PadNode{Date: date, Account: account, AccountPad: accountPad}
	if !p.endOfLine(date.Line) {
		return nil
	}

	node.Metadata = p.parseMetadataBlock()
	node.Span = SpanBetween(date, p.previous())
	return node
}

func (p *Parser) parseBalance(date Token) Node {
	p.advance()

	account, ok := p.expect(ACCOUNT, "expected account name")
	if !ok {
		p.synchronize()
		return nil
	}

	first := p.current()
	var number Token
	var expr Expr
	if p.atExpression() {
		expr, ok = p.parseExpression()
		if !ok {
			return nil
		}
	} else {
		number, ok = p.expect(NUMBER, "expected amount")
		if !ok {
			p.synchronize()
			return nil
		}
	}

	var tolerance Token
	if p.match(TILDE) {
		tolerance, ok = p.expect(NUMBER, "expected tolerance after ~")
		if !ok {
			p.synchronize()
			return nil
		}
	}

	currency, ok := p.expect(IDENT, "expected currency code")
	if !ok {
		p.synchronize()
		return nil
	}

	node := &BalanceNode{
		Date:    date,
		Account: account,
		Amount: AmountNode{
			Span:     SpanBetween(first, currency),
			Number:   number,
			Expr:     expr,
			Currency: currency,
		},
		Tolerance: tolerance,
	}
	if !p.endOfLine(date.Line) {
		return nil
	}

	node.Metadata = p.parseMetadataBlock()
	node.Span = SpanBetween(date, p.previous())
	return node
}

func (p *Parser) parseTransaction(date Token) Node {
	keyword := p.advance() // txn, * or !

	node := &TransactionNode{Date: date, Keyword: keyword}

	// One string is the narration, two strings are payee then narration.
	if p.check(STRING) {
		first := p.advance()
		if p.check(STRING) {
			node.Payee = first
			node.Narration = p.advance()
		} else {
			node.Narration = first
		}
	}

	for {
		if p.check(TAG) {
			node.Tags = append(node.Tags, p.advance())
		} else if p.check(LINK) {
			node.Links = append(node.Links, p.advance())
		} else {
			break
		}
	}

	if !p.endOfLine(date.Line) {
		return nil
	}

	// Indented block: metadata lines before the first posting belong to the
	// transaction, metadata after a posting belongs to that posting.
	for p.atIndented() {
		if p.check(COMMENT) {
			p.advance()
			continue
		}
		if p.atKeyLine() {
			meta, ok := p.parseMetaLine()
			if !ok {
				continue
			}
			if n := len(node.Postings); n > 0 {
				node.Postings[n-1].Metadata = append(node.Postings[n-1].Metadata, meta)
			} else {
				node.Metadata = append(node.Metadata, meta)
			}
			continue
		}

		posting, ok := p.parsePosting()
		if !ok {
			continue
		}
		node.Postings = append(node.Postings, posting)
	}

	node.Span = SpanBetween(date, p.previous())
	return node
}

func (p *Parser) parsePosting() (PostingNode, bool) {
	start := p.current()
	line := start.Line

	var posting PostingNode

	if p.check(ASTERISK) || p.check(EXCLAIM) {
		posting.Flag = p.advance()
	}

	account, ok := p.expect(ACCOUNT, "expected account name in posting")
	if !ok {
		p.synchronize()
		return PostingNode{}, false
	}
	posting.Account = account

	if p.check(NUMBER) || p.atExpression() {
		amount, ok := p.parseAmount()
		if !ok {
			return PostingNode{}, false
		}
		posting.Amount = amount
	}

	if p.check(LBRACE) || p.check(LDBRACE) {
		cost, ok := p.parseCost()
		if !ok {
			return PostingNode{}, false
		}
		posting.Cost = cost
	}

	if p.check(AT) || p.check(ATAT) {
		posting.PriceTotal = p.advance().Type == ATAT
		price, ok := p.parseAmount()
		if !ok {
			return PostingNode{}, false
		}
		posting.Price = price
	}

	if !p.endOfLine(line) {
		return PostingNode{}, false
	}

	posting.Span = SpanBetween(start, p.previous())
	return posting, true
}

func (p *Parser) parseAmount() (*AmountNode, bool) {
	if p.atExpression() {
		start := p.current()
		expr, ok := p.parseExpression()
		if !ok {
			return nil, false
		}
		currency, ok := p.expect(IDENT, "expected currency code after amount")
		if !ok {
			p.synchronize()
			return nil, false
		}
		return &AmountNode{
			Span:     SpanBetween(start, currency),
			Expr:     expr,
			Currency: currency,
		}, true
	}

	number, ok := p.expect(NUMBER, "expected amount")
	if !ok {
		p.synchronize()
		return nil, false
	}
	currency, ok := p.expect(IDENT, "expected currency code after amount")
	if !ok {
		p.synchronize()
		return nil, false
	}
	return &AmountNode{
		Span:     SpanBetween(number, currency),
		Number:   number,
		Currency: currency,
	}, true
}

// atExpression reports whether the current token starts an arithmetic
// expression rather than a plain number: an opening parenthesis, a standalone
// sign, or a number followed on the same line by an operator.
func (p *Parser) atExpression() bool {
	tok := p.current()
	switch tok.Type {
	case LPAREN, PLUS, MINUS:
		return true
	case NUMBER:
		next := p.peekNext()
		if next.Line != tok.Line {
			return false
		}
		switch next.Type {
		case PLUS, MINUS, ASTERISK, SLASH:
			return true
		}
	}
	return false
}

// Expression grammar, precedence low to high:
//
//	expression → term (('+' | '-') term)*
//	term       → factor (('*' | '/') factor)*
//	factor     → NUMBER | '-' factor | '(' expression ')'
//
// Expressions never span lines; an operator on the next line belongs to the
// next statement.
func (p *Parser) parseExpression() (Expr, bool) {
	left, ok := p.parseTerm()
	if !ok {
		return nil, false
	}

	for p.atOperator(PLUS) || p.atOperator(MINUS) {
		op := p.advance()
		right, ok := p.parseTerm()
		if !ok {
			return nil, false
		}
		left = &BinaryExpr{Left: left, Op: op, Right: right}
	}

	return left, true
}

func (p *Parser) parseTerm() (Expr, bool) {
	left, ok := p.parseFactor()
	if !ok {
		return nil, false
	}

	for p.atOperator(ASTERISK) || p.atOperator(SLASH) {
		op := p.advance()
		right, ok := p.parseFactor()
		if !ok {
			return nil, false
		}
		left = &BinaryExpr{Left: left, Op: op, Right: right}
	}

	return left, true
}

func (p *Parser) parseFactor() (Expr, bool) {
	tok := p.current()

	switch tok.Type {
	case NUMBER:
		p.advance()
		return &NumberExpr{Token: tok}, true
	case MINUS:
		op := p.advance()
		operand, ok := p.parseFactor()
		if !ok {
			return nil, false
		}
		return &UnaryExpr{Op: op, Operand: operand}, true
	case LPAREN:
		open := p.advance()
		inner, ok := p.parseExpression()
		if !ok {
			return nil, false
		}
		closing, ok := p.expect(RPAREN, "expected ) to close expression")
		if !ok {
			p.synchronize()
			return nil, false
		}
		return &ParenExpr{Open: open, Close: closing, Inner: inner}, true
	default:
		p.errorf(tok, "expected number or ( in expression, found %s", tok.Type)
		p.synchronize()
		return nil, false
	}
}

// atOperator reports whether the current token is the given operator on the
// same line as the token before it.
func (p *Parser) atOperator(tt TokenType) bool {
	return p.check(tt) && p.current().Line == p.previous().Line
}

// parseCost parses a cost basis specification in braces. Components (amount,
// date, label) may appear in any order, separated by commas.
func (p *Parser) parseCost() (*CostNode, bool) {
	open := p.advance() // { or {{
	total := open.Type == LDBRACE
	closing := RBRACE
	if total {
		closing = RDBRACE
	}

	cost := &CostNode{IsTotal: total}

	for !p.check(closing) && !p.atEOF() {
		switch {
		case p.check(ASTERISK):
			// {*} merges all lots.
			p.advance()
			cost.IsMerge = true
		case p.check(NUMBER) || p.atExpression():
			amount, ok := p.parseAmount()
			if !ok {
				return nil, false
			}
			cost.Amount = amount
		case p.check(DATE):
			cost.Date = p.advance()
		case p.check(STRING):
			cost.Label = p.advance()
		default:
			p.errorf(p.current(), "unexpected token %s in cost specification", p.current().Type)
			p.synchronize()
			return nil, false
		}

		if !p.match(COMMA) {
			break
		}
	}

	end, ok := p.expect(closing, "expected %s to close cost specification", closing)
	if !ok {
		p.synchronize()
		return nil, false
	}

	cost.Span = SpanBetween(open, end)
	return cost, true
}

func (p *Parser) parseNote(date Token) Node {
	p.advance()

	account, ok := p.expect(ACCOUNT, "expected account name")
	if !ok {
		p.synchronize()
		return nil
	}
	description, ok := p.expect(STRING, "expected note description")
	if !ok {
		p.synchronize()
		return nil
	}

	node := &NoteNode{Date: date, Account: account, Description: description}
	if !p.endOfLine(date.Line) {
		return nil
	}

	node.Metadata = p.parseMetadataBlock()
	node.Span = SpanBetween(date, p.previous())
	return node
}

func (p *Parser) parseDocument(date Token) Node {
	p.advance()

	account, ok := p.expect(ACCOUNT, "expected account name")
	if !ok {
		p.synchronize()
		return nil
	}
	path, ok := p.expect(STRING, "expected document path")
	if !ok {
		p.synchronize()
		return nil
	}

	node := &DocumentNode{Date: date, Account: account, Path: path}

	for {
		if p.check(TAG) {
			node.Tags = append(node.Tags, p.advance())
		} else if p.check(LINK) {
			node.Links = append(node.Links, p.advance())
		} else {
			break
		}
	}

	if !p.endOfLine(date.Line) {
		return nil
	}

	node.Metadata = p.parseMetadataBlock()
	node.Span = SpanBetween(date, p.previous())
	return node
}

func (p *Parser) parsePrice(date Token) Node {
	p.advance()

	commodity, ok := p.expect(IDENT, "expected commodity code")
	if !ok {
		p.synchronize()
		return nil
	}
	amount, ok := p.parseAmount()
	if !ok {
		return nil
	}

	node := &PriceNode{Date: date, Commodity: commodity, Amount: *amount}
	if !p.endOfLine(date.Line) {
		return nil
	}

	node.Metadata = p.parseMetadataBlock()
	node.Span = SpanBetween(date, p.previous())
	return node
}

func (p *Parser) parseEvent(date Token) Node {
	p.advance()

	name, ok := p.expect(STRING, "expected event name")
	if !ok {
		p.synchronize()
		return nil
	}
	value, ok := p.expect(STRING, "expected event value")
	if !ok {
		p.synchronize()
		return nil
	}

	node := &EventNode{Date: date, Name: name, Value: value}
	if !p.endOfLine(date.Line) {
		return nil
	}

	node.Metadata = p.parseMetadataBlock()
	node.Span = SpanBetween(date, p.previous())
	return node
}

func (p *Parser) parseQuery(date Token) Node {
	p.advance()

	name, ok := p.expect(STRING, "expected query name")
	if !ok {
		p.synchronize()
		return nil
	}
	contents, ok := p.expect(STRING, "expected query contents")
	if !ok {
		p.synchronize()
		return nil
	}

	node := &QueryNode{Date: date, Name: name, Contents: contents}
	if !p.endOfLine(date.Line) {
		return nil
	}

	node.Metadata = p.parseMetadataBlock()
	node.Span = SpanBetween(date, p.previous())
	return node
}

func (p *Parser) parseCustom(date Token) Node {
	p.advance()

	typ, ok := p.expect(STRING, "expected custom directive type")
	if !ok {
		p.synchronize()
		return nil
	}

	node := &CustomNode{Date: date, Type: typ}

	for p.current().Line == date.Line && !p.atEOF() {
		value, ok := p.parseValue()
		if !ok {
			return nil
		}
		node.Values = append(node.Values, value)
	}

	node.Metadata = p.parseMetadataBlock()
	node.Span = SpanBetween(date, p.previous())
	return node
}

// parseValue parses a polymorphic literal: a string, date, account, tag,
// link, boolean, currency, bare number or amount.
func (p *Parser) parseValue() (ValueNode, bool) {
	tok := p.current()

	switch tok.Type {
	case STRING, DATE, ACCOUNT, TAG, LINK:
		p.advance()
		return ValueNode{Span: SpanBetween(tok, tok), Token: tok}, true
	case NUMBER:
		p.advance()
		// A currency on the same line makes it an amount.
		if p.check(IDENT) && p.current().Line == tok.Line {
			currency := p.advance()
			return ValueNode{
				Span: SpanBetween(tok, currency),
				Amount: &AmountNode{
					Span:     SpanBetween(tok, currency),
					Number:   tok,
					Currency: currency,
				},
			}, true
		}
		return ValueNode{Span: SpanBetween(tok, tok), Token: tok}, true
	case IDENT:
		// Booleans and bare currency codes.
		p.advance()
		return ValueNode{Span: SpanBetween(tok, tok), Token: tok}, true
	default:
		p.errorf(tok, "unexpected token %s in value position", tok.Type)
		p.synchronize()
		return ValueNode{}, false
	}
}

func (p *Parser) parseOption() Node {
	kw := p.advance()

	name, ok := p.expect(STRING, "expected option name")
	if !ok {
		p.synchronize()
		return nil
	}
	value, ok := p.expect(STRING, "expected option value")
	if !ok {
		p.synchronize()
		return nil
	}

	if !p.endOfLine(kw.Line) {
		return nil
	}
	return &OptionNode{baseNode: spanned(kw, value), Name: name, Value: value}
}

func (p *Parser) parseInclude() Node {
	kw := p.advance()

	filename, ok := p.expect(STRING, "expected include path")
	if !ok {
		p.synchronize()
		return nil
	}

	if !p.endOfLine(kw.Line) {
		return nil
	}
	return &IncludeNode{baseNode: spanned(kw, filename), Filename: filename}
}

func (p *Parser) parsePlugin() Node {
	kw := p.advance()

	name, ok := p.expect(STRING, "expected plugin name")
	if !ok {
		p.synchronize()
		return nil
	}

	node := &PluginNode{Name: name}
	last := name
	if p.check(STRING) {
		node.Config = p.advance()
		last = node.Config
	}

	if !p.endOfLine(kw.Line) {
		return nil
	}
	node.baseNode = spanned(kw, last)
	return node
}

func (p *Parser) parsePushtag() Node {
	kw := p.advance()

	tag, ok := p.expect(TAG, "expected tag")
	if !ok {
		p.synchronize()
		return nil
	}

	if !p.endOfLine(kw.Line) {
		return nil
	}
	return &PushtagNode{baseNode: spanned(kw, tag), Tag: tag}
}

func (p *Parser) parsePoptag() Node {
	kw := p.advance()

	tag, ok := p.expect(TAG, "expected tag")
	if !ok {
		p.synchronize()
		return nil
	}

	if !p.endOfLine(kw.Line) {
		return nil
	}
	return &PoptagNode{baseNode: spanned(kw, tag), Tag: tag}
}

func (p *Parser) parsePushmeta() Node {
	kw := p.advance()

	key, ok := p.expectKey("expected metadata key")
	if !ok {
		p.synchronize()
		return nil
	}
	if _, ok := p.expect(COLON, "expected : after metadata key"); !ok {
		p.synchronize()
		return nil
	}

	value, ok := p.parseValue()
	if !ok {
		return nil
	}

	if !p.endOfLine(kw.Line) {
		return nil
	}
	return &PushmetaNode{baseNode: spanned(kw, p.previous()), Key: key, Value: value}
}

func (p *Parser) parsePopmeta() Node {
	kw := p.advance()

	key, ok := p.expectKey("expected metadata key")
	if !ok {
		p.synchronize()
		return nil
	}
	colon, ok := p.expect(COLON, "expected : after metadata key")
	if !ok {
		p.synchronize()
		return nil
	}

	if !p.endOfLine(kw.Line) {
		return nil
	}
	return &PopmetaNode{baseNode: spanned(kw, colon), Key: key}
}

// parseMetadataBlock consumes the indented key-value lines following a
// directive line.
func (p *Parser) parseMetadataBlock() []MetaNode {
	var metadata []MetaNode

	for p.atIndented() {
		if p.check(COMMENT) {
			p.advance()
			continue
		}
		if !p.atKeyLine() {
			p.errorf(p.current(), "expected metadata key on indented line")
			p.synchronize()
			continue
		}
		meta, ok := p.parseMetaLine()
		if !ok {
			continue
		}
		metadata = append(metadata, meta)
	}

	return metadata
}

func (p *Parser) parseMetaLine() (MetaNode, bool) {
	key := p.advance()
	p.advance() // colon, guaranteed by atKeyLine

	value, ok := p.parseValue()
	if !ok {
		return MetaNode{}, false
	}

	if !p.endOfLine(key.Line) {
		return MetaNode{}, false
	}
	return MetaNode{
		Span:  SpanBetween(key, p.previous()),
		Key:   key,
		Value: value,
	}, true
}

// Helper methods

func (p *Parser) current() Token {
	return p.tokens[p.pos]
}

func (p *Parser) peekNext() Token {
	if p.pos+1 < len(p.tokens) {
		return p.tokens[p.pos+1]
	}
	return p.tokens[len(p.tokens)-1]
}

func (p *Parser) previous() Token {
	if p.pos == 0 {
		return p.tokens[0]
	}
	return p.tokens[p.pos-1]
}

func (p *Parser) advance() Token {
	tok := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) atEOF() bool {
	return p.current().Type == EOF
}

func (p *Parser) check(tt TokenType) bool {
	return p.current().Type == tt
}

func (p *Parser) match(tt TokenType) bool {
	if p.check(tt) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expect(tt TokenType, format string, args ...any) (Token, bool) {
	if p.check(tt) {
		return p.advance(), true
	}
	p.errorf(p.current(), format+", found %s", append(args, p.current().Type)...)
	return Token{}, false
}

// expectKey accepts an identifier or a directive keyword as a metadata key,
// since keys like "note" or "document" lex as keywords.
func (p *Parser) expectKey(msg string) (Token, bool) {
	tok := p.current()
	if tok.Type == IDENT || isKeyword(tok.Type) {
		return p.advance(), true
	}
	p.errorf(tok, "%s, found %s", msg, tok.Type)
	return Token{}, false
}

func isKeyword(tt TokenType) bool {
	return tt >= TXN && tt <= POPMETA
}

// atIndented reports whether the current token starts an indented
// continuation line.
func (p *Parser) atIndented() bool {
	return !p.atEOF() && p.current().Column > 1
}

// atKeyLine reports whether the current token begins a metadata line: a key
// immediately followed by a colon.
func (p *Parser) atKeyLine() bool {
	tok := p.current()
	if tok.Type != IDENT && !isKeyword(tok.Type) {
		return false
	}
	next := p.peekNext()
	return next.Type == COLON && next.Start == tok.End
}

// endOfLine checks that the statement line holds no trailing tokens. On
// failure the error is recorded and the parser resynchronizes.
func (p *Parser) endOfLine(line int) bool {
	if p.atEOF() || p.current().Line != line {
		return true
	}
	p.errorf(p.current(), "unexpected token %s at end of line", p.current().Type)
	p.synchronize()
	return false
}

// synchronize skips tokens until the next statement boundary: a token in
// column 1 or the end of input.
func (p *Parser) synchronize() {
	for !p.atEOF() && p.current().Column != 1 {
		p.advance()
	}
}

func (p *Parser) errorf(tok Token, format string, args ...any) {
	p.errors = append(p.errors, errorAt(tok, format, args...))
}

func spanned(first, last Token) baseNode {
	return baseNode{Span: SpanBetween(first, last)}
}
