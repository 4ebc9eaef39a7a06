package beantree

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ledgertools/beantree/ast"
	"github.com/ledgertools/beantree/internal/grammar"
)

// The converter is the boundary between the parsing engine and the public
// object model. Raw nodes reference tokens in the source buffer; conversion
// materializes the strings, validates the literals (dates, accounts,
// numbers) and produces immutable records. Validation failures become
// syntax errors spanning the offending token, and the rest of the node's
// statement is dropped while conversion of the surrounding statements
// continues.

// kindForNode maps parser node kinds to the public classification tags. The
// array lengths are checked against each other at compile time, so adding a
// node kind without mapping it does not build.
var kindForNode = [grammar.NodeKindCount]ast.Kind{
	grammar.NodeOpen:        ast.KindOpen,
	grammar.NodeClose:       ast.KindClose,
	grammar.NodeCommodity:   ast.KindCommodity,
	grammar.NodePad:         ast.KindPad,
	grammar.NodeBalance:     ast.KindBalance,
	grammar.NodeTransaction: ast.KindTransaction,
	grammar.NodeNote:        ast.KindNote,
	grammar.NodeDocument:    ast.KindDocument,
	grammar.NodePrice:       ast.KindPrice,
	grammar.NodeEvent:       ast.KindEvent,
	grammar.NodeQuery:       ast.KindQuery,
	grammar.NodeCustom:      ast.KindCustom,
	grammar.NodeOption:      ast.KindOption,
	grammar.NodeInclude:     ast.KindInclude,
	grammar.NodePlugin:      ast.KindPlugin,
	grammar.NodePushtag:     ast.KindPushtag,
	grammar.NodePoptag:      ast.KindPoptag,
	grammar.NodePushmeta:    ast.KindPushmeta,
	grammar.NodePopmeta:     ast.KindPopmeta,
	grammar.NodeComment:     ast.KindComment,
}

// Both enumerations must stay in lockstep.
var _ = kindForNode[ast.KindCount-1]
var _ [ast.KindCount]struct{} = [grammar.NodeKindCount]struct{}{}

type converter struct {
	source   []byte
	filename string
	interner *grammar.Interner
	errors   []*ParseError
}

func newConverter(source []byte, filename string, interner *grammar.Interner) *converter {
	return &converter{source: source, filename: filename, interner: interner}
}

// convertAll maps every raw node to its public record. Nodes whose literals
// fail validation are dropped after recording a syntax error; output order
// follows node order, which is source order.
func (c *converter) convertAll(nodes []grammar.Node) ast.Directives {
	directives := make(ast.Directives, 0, len(nodes))
	for _, n := range nodes {
		if d := c.convert(n); d != nil {
			directives = append(directives, d)
		}
	}
	return directives
}

func (c *converter) convert(n grammar.Node) ast.Directive {
	switch node := n.(type) {
	case *grammar.OpenNode:
		return c.convertOpen(node)
	case *grammar.CloseNode:
		return c.convertClose(node)
	case *grammar.CommodityNode:
		return c.convertCommodity(node)
	case *grammar.PadNode:
		return c.convertPad(node)
	case *grammar.BalanceNode:
		return c.convertBalance(node)
	case *grammar.TransactionNode:
		return c.convertTransaction(node)
	case *grammar.NoteNode:
		return c.convertNote(node)
	case *grammar.DocumentNode:
		return c.convertDocument(node)
	case *grammar.PriceNode:
		return c.convertPrice(node)
	case *grammar.EventNode:
		return c.convertEvent(node)
	case *grammar.QueryNode:
		return c.convertQuery(node)
	case *grammar.CustomNode:
		return c.convertCustom(node)
	case *grammar.OptionNode:
		return c.convertOption(node)
	case *grammar.IncludeNode:
		return c.convertInclude(node)
	case *grammar.PluginNode:
		return c.convertPlugin(node)
	case *grammar.PushtagNode:
		return c.convertPushtag(node)
	case *grammar.PoptagNode:
		return c.convertPoptag(node)
	case *grammar.PushmetaNode:
		return c.convertPushmeta(node)
	case *grammar.PopmetaNode:
		return c.convertPopmeta(node)
	case *grammar.CommentNode:
		return c.convertComment(node)
	default:
		// An unmapped node kind must never vanish silently; kindForNode
		// catches new kinds at compile time, this catches nodes built
		// outside the parser.
		c.syntaxErrorSpan(n.Bounds(), "no conversion for %s node", n.Kind())
		return nil
	}
}

func (c *converter) convertOpen(n *grammar.OpenNode) ast.Directive {
	date, ok := c.date(n.Date)
	if !ok {
		return nil
	}
	account, ok := c.account(n.Account)
	if !ok {
		return nil
	}

	out := &ast.Open{Date: date, Account: account}
	for _, cur := range n.Currencies {
		out.ConstraintCurrencies = append(out.ConstraintCurrencies, c.intern(cur))
	}
	if !n.BookingMethod.IsZero() {
		out.BookingMethod = c.unquote(n.BookingMethod)
	}
	c.finish(&out.Span, &out.Metadata, n.Span, n.Metadata)
	return out
}

func (c *converter) convertClose(n *grammar.CloseNode) ast.Directive {
	date, ok := c.date(n.Date)
	if !ok {
		return nil
	}
	account, ok := c.account(n.Account)
	if !ok {
		return nil
	}

	out := &ast.Close{Date: date, Account: account}
	c.finish(&out.Span, &out.Metadata, n.Span, n.Metadata)
	return out
}

func (c *converter) convertCommodity(n *grammar.CommodityNode) ast.Directive {
	date, ok := c.date(n.Date)
	if !ok {
		return nil
	}

	out := &ast.Commodity{Date: date, Currency: c.intern(n.Currency)}
	c.finish(&out.Span, &out.Metadata, n.Span, n.Metadata)
	return out
}

func (c *converter) convertPad(n *grammar.PadNode) ast.Directive {
	date, ok := c.date(n.Date)
	if !ok {
		return nil
	}
	account, ok := c.account(n.Account)
	if !ok {
		return nil
	}
	accountPad, ok := c.account(n.AccountPad)
	if !ok {
		return nil
	}

	out := &ast.Pad{Date: date, Account: account, AccountPad: accountPad}
	c.finish(&out.Span, &out.Metadata, n.Span, n.Metadata)
	return out
}

func (c *converter) convertBalance(n *grammar.BalanceNode) ast.Directive {
	date, ok := c.date(n.Date)
	if !ok {
		return nil
	}
	account, ok := c.account(n.Account)
	if !ok {
		return nil
	}
	amount, ok := c.amount(&n.Amount)
	if !ok {
		return nil
	}

	out := &ast.Balance{Date: date, Account: account, Amount: amount}
	if !n.Tolerance.IsZero() {
		out.Tolerance = n.Tolerance.String(c.source)
	}
	c.finish(&out.Span, &out.Metadata, n.Span, n.Metadata)
	return out
}

func (c *converter) convertTransaction(n *grammar.TransactionNode) ast.Directive {
	date, ok := c.date(n.Date)
	if !ok {
		return nil
	}

	out := &ast.Transaction{Date: date, Flag: c.flag(n.Keyword)}
	if !n.Payee.IsZero() {
		out.Payee = c.unquote(n.Payee)
	}
	if !n.Narration.IsZero() {
		out.Narration = c.unquote(n.Narration)
	}
	for _, t := range n.Tags {
		out.Tags = append(out.Tags, ast.Tag(c.stripPrefix(t)))
	}
	for _, l := range n.Links {
		out.Links = append(out.Links, ast.Link(c.stripPrefix(l)))
	}
	for i := range n.Postings {
		posting, ok := c.convertPosting(&n.Postings[i])
		if !ok {
			return nil
		}
		out.Postings = append(out.Postings, posting)
	}
	c.finish(&out.Span, &out.Metadata, n.Span, n.Metadata)
	return out
}

func (c *converter) convertPosting(n *grammar.PostingNode) (*ast.Posting, bool) {
	account, ok := c.account(n.Account)
	if !ok {
		return nil, false
	}

	posting := &ast.Posting{
		Span:    c.span(n.Span),
		Account: account,
	}
	if !n.Flag.IsZero() {
		posting.Flag = n.Flag.String(c.source)
	}
	if n.Amount != nil {
		amount, ok := c.amount(n.Amount)
		if !ok {
			return nil, false
		}
		posting.Amount = amount
	}
	if n.Cost != nil {
		cost, ok := c.convertCost(n.Cost)
		if !ok {
			return nil, false
		}
		posting.Cost = cost
	}
	if n.Price != nil {
		price, ok := c.amount(n.Price)
		if !ok {
			return nil, false
		}
		posting.PriceTotal = n.PriceTotal
		posting.Price = price
	}
	metadata, ok := c.metadata(n.Metadata)
	if !ok {
		return nil, false
	}
	posting.Metadata = metadata
	return posting, true
}

func (c *converter) convertCost(n *grammar.CostNode) (*ast.Cost, bool) {
	cost := &ast.Cost{
		Span:    c.span(n.Span),
		IsTotal: n.IsTotal,
		IsMerge: n.IsMerge,
	}
	if n.Amount != nil {
		amount, ok := c.amount(n.Amount)
		if !ok {
			return nil, false
		}
		cost.Amount = amount
	}
	if !n.Date.IsZero() {
		date, ok := c.date(n.Date)
		if !ok {
			return nil, false
		}
		cost.Date = date
	}
	if !n.Label.IsZero() {
		cost.Label = c.unquote(n.Label)
	}
	return cost, true
}

func (c *converter) convertNote(n *grammar.NoteNode) ast.Directive {
	date, ok := c.date(n.Date)
	if !ok {
		return nil
	}
	account, ok := c.account(n.Account)
	if !ok {
		return nil
	}

	out := &ast.Note{Date: date, Account: account, Description: c.unquote(n.Description)}
	c.finish(&out.Span, &out.Metadata, n.Span, n.Metadata)
	return out
}

func (c *converter) convertDocument(n *grammar.DocumentNode) ast.Directive {
	date, ok := c.date(n.Date)
	if !ok {
		return nil
	}
	account, ok := c.account(n.Account)
	if !ok {
		return nil
	}

	out := &ast.Document{Date: date, Account: account, Path: c.unquote(n.Path)}
	for _, t := range n.Tags {
		out.Tags = append(out.Tags, ast.Tag(c.stripPrefix(t)))
	}
	for _, l := range n.Links {
		out.Links = append(out.Links, ast.Link(c.stripPrefix(l)))
	}
	c.finish(&out.Span, &out.Metadata, n.Span, n.Metadata)
	return out
}

func (c *converter) convertPrice(n *grammar.PriceNode) ast.Directive {
	date, ok := c.date(n.Date)
	if !ok {
		return nil
	}
	amount, ok := c.amount(&n.Amount)
	if !ok {
		return nil
	}

	out := &ast.Price{Date: date, Commodity: c.intern(n.Commodity), Amount: amount}
	c.finish(&out.Span, &out.Metadata, n.Span, n.Metadata)
	return out
}

func (c *converter) convertEvent(n *grammar.EventNode) ast.Directive {
	date, ok := c.date(n.Date)
	if !ok {
		return nil
	}

	out := &ast.Event{Date: date, Name: c.unquote(n.Name), Value: c.unquote(n.Value)}
	c.finish(&out.Span, &out.Metadata, n.Span, n.Metadata)
	return out
}

func (c *converter) convertQuery(n *grammar.QueryNode) ast.Directive {
	date, ok := c.date(n.Date)
	if !ok {
		return nil
	}

	out := &ast.Query{Date: date, Name: c.unquote(n.Name), Contents: c.unquote(n.Contents)}
	c.finish(&out.Span, &out.Metadata, n.Span, n.Metadata)
	return out
}

func (c *converter) convertCustom(n *grammar.CustomNode) ast.Directive {
	date, ok := c.date(n.Date)
	if !ok {
		return nil
	}

	out := &ast.Custom{Date: date, Type: c.unquote(n.Type)}
	for i := range n.Values {
		value, ok := c.customValue(&n.Values[i])
		if !ok {
			return nil
		}
		out.Values = append(out.Values, value)
	}
	c.finish(&out.Span, &out.Metadata, n.Span, n.Metadata)
	return out
}

func (c *converter) convertOption(n *grammar.OptionNode) ast.Directive {
	out := &ast.Option{Name: c.unquote(n.Name), Value: c.unquote(n.Value)}
	out.Span = c.span(n.Bounds())
	return out
}

func (c *converter) convertInclude(n *grammar.IncludeNode) ast.Directive {
	out := &ast.Include{Filename: c.unquote(n.Filename)}
	out.Span = c.span(n.Bounds())
	return out
}

func (c *converter) convertPlugin(n *grammar.PluginNode) ast.Directive {
	out := &ast.Plugin{Name: c.unquote(n.Name)}
	if !n.Config.IsZero() {
		out.Config = c.unquote(n.Config)
	}
	out.Span = c.span(n.Bounds())
	return out
}

func (c *converter) convertPushtag(n *grammar.PushtagNode) ast.Directive {
	out := &ast.Pushtag{Tag: ast.Tag(c.stripPrefix(n.Tag))}
	out.Span = c.span(n.Bounds())
	return out
}

func (c *converter) convertPoptag(n *grammar.PoptagNode) ast.Directive {
	out := &ast.Poptag{Tag: ast.Tag(c.stripPrefix(n.Tag))}
	out.Span = c.span(n.Bounds())
	return out
}

func (c *converter) convertPushmeta(n *grammar.PushmetaNode) ast.Directive {
	value, ok := c.metadataValue(&n.Value)
	if !ok {
		return nil
	}

	out := &ast.Pushmeta{Key: c.intern(n.Key), Value: value}
	out.Span = c.span(n.Bounds())
	return out
}

func (c *converter) convertPopmeta(n *grammar.PopmetaNode) ast.Directive {
	out := &ast.Popmeta{Key: c.intern(n.Key)}
	out.Span = c.span(n.Bounds())
	return out
}

func (c *converter) convertComment(n *grammar.CommentNode) ast.Directive {
	out := &ast.Comment{Content: n.Text.String(c.source)}
	out.Span = c.span(n.Bounds())
	return out
}

// Literal conversion

// date validates a DATE token as a real calendar date. 2023-13-01 and
// 2023-02-30 lex fine but fail here.
func (c *converter) date(tok grammar.Token) (*ast.Date, bool) {
	d, err := ast.NewDate(tok.String(c.source))
	if err != nil {
		c.syntaxError(tok, "%s", err.Error())
		return nil, false
	}
	return d, true
}

func (c *converter) account(tok grammar.Token) (ast.Account, bool) {
	a, err := ast.NewAccount(c.intern(tok))
	if err != nil {
		c.syntaxError(tok, "%s", err.Error())
		return "", false
	}
	return a, true
}

func (c *converter) amount(n *grammar.AmountNode) (*ast.Amount, bool) {
	if n.Expr != nil {
		return c.exprAmount(n)
	}

	a, err := ast.NewAmount(n.Number.String(c.source), c.intern(n.Currency))
	if err != nil {
		c.syntaxError(n.Number, "%s", err.Error())
		return nil, false
	}
	a.Raw = c.token(n.Number)
	return a, true
}

// exprAmount evaluates an arithmetic amount expression with exact decimal
// arithmetic. The verbatim expression text is kept alongside the computed
// value, so nothing is lost to the evaluation.
func (c *converter) exprAmount(n *grammar.AmountNode) (*ast.Amount, bool) {
	value, ok := c.evalExpr(n.Expr)
	if !ok {
		return nil, false
	}

	bounds := n.Expr.Bounds()
	a := &ast.Amount{
		Value:      value.String(),
		Currency:   c.intern(n.Currency),
		Expression: c.sliceSpan(bounds),
		Raw: ast.Token{
			Kind: grammar.NUMBER.String(),
			Span: c.span(bounds),
			Text: c.sliceSpan(bounds),
		},
	}
	return a, true
}

func (c *converter) evalExpr(e grammar.Expr) (decimal.Decimal, bool) {
	switch expr := e.(type) {
	case *grammar.NumberExpr:
		d, err := decimal.NewFromString(expr.Token.String(c.source))
		if err != nil {
			c.syntaxError(expr.Token, "%s", err.Error())
			return decimal.Zero, false
		}
		return d, true
	case *grammar.UnaryExpr:
		v, ok := c.evalExpr(expr.Operand)
		if !ok {
			return decimal.Zero, false
		}
		return v.Neg(), true
	case *grammar.ParenExpr:
		return c.evalExpr(expr.Inner)
	case *grammar.BinaryExpr:
		left, ok := c.evalExpr(expr.Left)
		if !ok {
			return decimal.Zero, false
		}
		right, ok := c.evalExpr(expr.Right)
		if !ok {
			return decimal.Zero, false
		}
		switch expr.Op.Type {
		case grammar.PLUS:
			return left.Add(right), true
		case grammar.MINUS:
			return left.Sub(right), true
		case grammar.ASTERISK:
			return left.Mul(right), true
		case grammar.SLASH:
			if right.IsZero() {
				c.syntaxError(expr.Op, "division by zero")
				return decimal.Zero, false
			}
			return left.Div(right), true
		}
		c.syntaxError(expr.Op, "unsupported operator %s in expression", expr.Op.Type)
		return decimal.Zero, false
	default:
		c.syntaxErrorSpan(e.Bounds(), "unsupported expression")
		return decimal.Zero, false
	}
}

func (c *converter) metadata(nodes []grammar.MetaNode) ([]*ast.Metadata, bool) {
	var out []*ast.Metadata
	for i := range nodes {
		value, ok := c.metadataValue(&nodes[i].Value)
		if !ok {
			return nil, false
		}
		out = append(out, &ast.Metadata{
			Span:  c.span(nodes[i].Span),
			Key:   c.intern(nodes[i].Key),
			Value: value,
		})
	}
	return out, true
}

// metadataValue classifies a raw literal into the typed union. The token
// type decides the branch; bare identifiers split into booleans (TRUE or
// FALSE) and currency codes.
func (c *converter) metadataValue(n *grammar.ValueNode) (*ast.MetadataValue, bool) {
	if n.Amount != nil {
		amount, ok := c.amount(n.Amount)
		if !ok {
			return nil, false
		}
		return &ast.MetadataValue{Amount: amount}, true
	}

	tok := n.Token
	switch tok.Type {
	case grammar.STRING:
		s := c.unquote(tok)
		return &ast.MetadataValue{StringValue: &s}, true
	case grammar.DATE:
		d, ok := c.date(tok)
		if !ok {
			return nil, false
		}
		return &ast.MetadataValue{Date: d}, true
	case grammar.ACCOUNT:
		a, ok := c.account(tok)
		if !ok {
			return nil, false
		}
		return &ast.MetadataValue{Account: &a}, true
	case grammar.TAG:
		t := ast.Tag(c.stripPrefix(tok))
		return &ast.MetadataValue{Tag: &t}, true
	case grammar.LINK:
		l := ast.Link(c.stripPrefix(tok))
		return &ast.MetadataValue{Link: &l}, true
	case grammar.NUMBER:
		s := tok.String(c.source)
		return &ast.MetadataValue{Number: &s}, true
	case grammar.IDENT:
		s := c.intern(tok)
		switch s {
		case "TRUE":
			b := true
			return &ast.MetadataValue{Boolean: &b}, true
		case "FALSE":
			b := false
			return &ast.MetadataValue{Boolean: &b}, true
		}
		return &ast.MetadataValue{Currency: &s}, true
	default:
		c.syntaxError(tok, "unexpected %s in value position", tok.Type)
		return nil, false
	}
}

// customValue classifies a custom directive argument. The custom union is
// narrower than the metadata one; tags, links and bare identifiers fall back
// to their raw text.
func (c *converter) customValue(n *grammar.ValueNode) (*ast.CustomValue, bool) {
	out := &ast.CustomValue{Span: c.span(n.Span)}

	if n.Amount != nil {
		amount, ok := c.amount(n.Amount)
		if !ok {
			return nil, false
		}
		out.Amount = amount
		return out, true
	}

	tok := n.Token
	switch tok.Type {
	case grammar.STRING:
		s := c.unquote(tok)
		out.String = &s
	case grammar.DATE:
		d, ok := c.date(tok)
		if !ok {
			return nil, false
		}
		out.Date = d
	case grammar.ACCOUNT:
		a, ok := c.account(tok)
		if !ok {
			return nil, false
		}
		out.Account = &a
	case grammar.NUMBER:
		s := tok.String(c.source)
		out.Number = &s
	case grammar.IDENT:
		s := c.intern(tok)
		switch s {
		case "TRUE":
			b := true
			out.Boolean = &b
		case "FALSE":
			b := false
			out.Boolean = &b
		default:
			out.String = &s
		}
	default:
		s := tok.String(c.source)
		out.String = &s
	}
	return out, true
}

// Helpers

// finish stamps the span and converts the metadata block shared by every
// dated directive.
func (c *converter) finish(span *ast.Span, meta *[]*ast.Metadata, s grammar.Span, nodes []grammar.MetaNode) {
	*span = c.span(s)
	if converted, ok := c.metadata(nodes); ok {
		*meta = converted
	}
}

func (c *converter) position(p grammar.Pos) ast.Position {
	return ast.Position{
		Filename: c.filename,
		Offset:   p.Offset,
		Line:     p.Line,
		Column:   p.Column,
	}
}

func (c *converter) span(s grammar.Span) ast.Span {
	return ast.Span{Start: c.position(s.Start), End: c.position(s.End)}
}

func (c *converter) token(tok grammar.Token) ast.Token {
	return ast.Token{
		Kind: tok.Type.String(),
		Span: ast.Span{Start: c.position(tok.Pos()), End: c.position(tok.EndPos())},
		Text: tok.String(c.source),
	}
}

func (c *converter) intern(tok grammar.Token) string {
	return c.interner.InternBytes(tok.Bytes(c.source))
}

// stripPrefix drops the leading # or ^ from a tag or link token.
func (c *converter) stripPrefix(tok grammar.Token) string {
	s := tok.String(c.source)
	if len(s) > 0 && (s[0] == '#' || s[0] == '^') {
		s = s[1:]
	}
	return c.interner.Intern(s)
}

// flag maps the transaction keyword to its flag character. A bare txn
// keyword defaults to the completed flag.
func (c *converter) flag(tok grammar.Token) string {
	if tok.Type == grammar.TXN {
		return "*"
	}
	return tok.String(c.source)
}

// unquote strips the surrounding quotes from a string token and processes
// the escape sequences \" \\ \n \t.
func (c *converter) unquote(tok grammar.Token) string {
	s := tok.String(c.source)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	} else if len(s) >= 1 && s[0] == '"' {
		s = s[1:]
	}
	if !strings.ContainsRune(s, '\\') {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 == len(s) {
			b.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case '"', '\\':
			b.WriteByte(s[i])
		default:
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// sliceSpan materializes the source text a span delimits.
func (c *converter) sliceSpan(s grammar.Span) string {
	if s.Start.Offset < 0 || s.End.Offset > len(c.source) || s.Start.Offset > s.End.Offset {
		return ""
	}
	return string(c.source[s.Start.Offset:s.End.Offset])
}

func (c *converter) syntaxError(tok grammar.Token, format string, args ...any) {
	c.errors = append(c.errors, &ParseError{
		Kind: SyntaxError,
		Span: ast.Span{
			Start: c.position(tok.Pos()),
			End:   c.position(tok.EndPos()),
		},
		Message: fmt.Sprintf(format, args...),
	})
}

func (c *converter) syntaxErrorSpan(s grammar.Span, format string, args ...any) {
	c.errors = append(c.errors, &ParseError{
		Kind:    SyntaxError,
		Span:    c.span(s),
		Message: fmt.Sprintf(format, args...),
	})
}
