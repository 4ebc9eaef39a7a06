package grammar

// Nodes are the parser's raw output: token-centric records that reference
// slices of the source buffer rather than materialized strings. The public
// object model is built from these in a separate conversion step, so the
// parser never allocates strings for text it only needs to delimit.

// Pos is a position in the source buffer.
type Pos struct {
	Offset int
	Line   int
	Column int
}

// Span delimits a contiguous region of the source buffer.
type Span struct {
	Start Pos
	End   Pos
}

// Pos returns the starting position of the token.
func (t Token) Pos() Pos {
	return Pos{Offset: t.Start, Line: t.Line, Column: t.Column}
}

// EndPos returns the position just past the token.
func (t Token) EndPos() Pos {
	return Pos{Offset: t.End, Line: t.EndLine, Column: t.EndColumn}
}

// SpanBetween builds the span from the start of first to the end of last.
func SpanBetween(first, last Token) Span {
	return Span{Start: first.Pos(), End: last.EndPos()}
}

// NodeKind discriminates the concrete node types produced by the parser.
type NodeKind uint8

const (
	NodeOpen NodeKind = iota
	NodeClose
	NodeCommodity
	NodePad
	NodeBalance
	NodeTransaction
	NodeNote
	NodeDocument
	NodePrice
	NodeEvent
	NodeQuery
	NodeCustom
	NodeOption
	NodeInclude
	NodePlugin
	NodePushtag
	NodePoptag
	NodePushmeta
	NodePopmeta
	NodeComment

	numNodeKinds
)

// NodeKindCount is the number of node kinds the parser can produce.
const NodeKindCount = int(numNodeKinds)

var nodeKindNames = [numNodeKinds]string{
	NodeOpen:        "open",
	NodeClose:       "close",
	NodeCommodity:   "commodity",
	NodePad:         "pad",
	NodeBalance:     "balance",
	NodeTransaction: "transaction",
	NodeNote:        "note",
	NodeDocument:    "document",
	NodePrice:       "price",
	NodeEvent:       "event",
	NodeQuery:       "query",
	NodeCustom:      "custom",
	NodeOption:      "option",
	NodeInclude:     "include",
	NodePlugin:      "plugin",
	NodePushtag:     "pushtag",
	NodePoptag:      "poptag",
	NodePushmeta:    "pushmeta",
	NodePopmeta:     "popmeta",
	NodeComment:     "comment",
}

func (k NodeKind) String() string {
	if int(k) < len(nodeKindNames) {
		return nodeKindNames[k]
	}
	return "unknown"
}

// Node is a raw parse node. Concrete node fields are accessed through type
// switches in the conversion layer.
type Node interface {
	Kind() NodeKind
	Bounds() Span
}

type baseNode struct {
	Span Span
}

func (b *baseNode) Bounds() Span { return b.Span }

// ValueNode is a polymorphic literal as it appears in metadata entries,
// pushmeta declarations and custom directive arguments. Either Token alone is
// set, or Amount for the two-token number-currency form.
type ValueNode struct {
	Span   Span
	Token  Token
	Amount *AmountNode
}

// AmountNode is a number followed by a currency token. The number is either a
// single NUMBER token or an arithmetic expression; exactly one of Number and
// Expr is set.
type AmountNode struct {
	Span     Span
	Number   Token
	Expr     Expr
	Currency Token
}

// Expr is an arithmetic expression written in amount position, kept as a raw
// token tree. Evaluation happens in the conversion layer.
type Expr interface {
	Bounds() Span
}

// NumberExpr is a literal number leaf.
type NumberExpr struct {
	Token Token
}

func (e *NumberExpr) Bounds() Span { return SpanBetween(e.Token, e.Token) }

// UnaryExpr is a negated operand: -(2 + 3).
type UnaryExpr struct {
	Op      Token
	Operand Expr
}

func (e *UnaryExpr) Bounds() Span {
	return Span{Start: e.Op.Pos(), End: e.Operand.Bounds().End}
}

// BinaryExpr applies an infix operator: + - * /.
type BinaryExpr struct {
	Left  Expr
	Op    Token
	Right Expr
}

func (e *BinaryExpr) Bounds() Span {
	return Span{Start: e.Left.Bounds().Start, End: e.Right.Bounds().End}
}

// ParenExpr is a parenthesized group.
type ParenExpr struct {
	Open  Token
	Close Token
	Inner Expr
}

func (e *ParenExpr) Bounds() Span { return SpanBetween(e.Open, e.Close) }

// CostNode is a cost specification in braces on a posting.
type CostNode struct {
	Span    Span
	IsTotal bool // {{...}} total cost
	IsMerge bool // {*}
	Amount  *AmountNode
	Date    Token
	Label   Token
}

// MetaNode is an indented key-value metadata line.
type MetaNode struct {
	Span  Span
	Key   Token
	Value ValueNode
}

// PostingNode is an indented posting line within a transaction.
type PostingNode struct {
	Span       Span
	Flag       Token
	Account    Token
	Amount     *AmountNode
	Cost       *CostNode
	PriceTotal bool // true for @@, false for @
	Price      *AmountNode
	Metadata   []MetaNode
}

type OpenNode struct {
	baseNode
	Date          Token
	Account       Token
	Currencies    []Token
	BookingMethod Token
	Metadata      []MetaNode
}

func (n *OpenNode) Kind() NodeKind { return NodeOpen }

type CloseNode struct {
	baseNode
	Date     Token
	Account  Token
	Metadata []MetaNode
}

func (n *CloseNode) Kind() NodeKind { return NodeClose }

type CommodityNode struct {
	baseNode
	Date     Token
	Currency Token
	Metadata []MetaNode
}

func (n *CommodityNode) Kind() NodeKind { return NodeCommodity }

type PadNode struct {
	baseNode
	Date       Token
	Account    Token
	AccountPad Token
	Metadata   []MetaNode
}

func (n *PadNode) Kind() NodeKind { return NodePad }

type BalanceNode struct {
	baseNode
	Date      Token
	Account   Token
	Amount    AmountNode
	Tolerance Token // optional, set when written as "10.00 ~ 0.05 USD"
	Metadata  []MetaNode
}

func (n *BalanceNode) Kind() NodeKind { return NodeBalance }

type TransactionNode struct {
	baseNode
	Date      Token
	Keyword   Token // txn keyword or flag symbol
	Payee     Token // optional, only with two strings
	Narration Token
	Tags      []Token
	Links     []Token
	Postings  []PostingNode
	Metadata  []MetaNode
}

func (n *TransactionNode) Kind() NodeKind { return NodeTransaction }

type NoteNode struct {
	baseNode
	Date        Token
	Account     Token
	Description Token
	Metadata    []MetaNode
}

func (n *NoteNode) Kind() NodeKind { return NodeNote }

type DocumentNode struct {
	baseNode
	Date     Token
	Account  Token
	Path     Token
	Tags     []Token
	Links    []Token
	Metadata []MetaNode
}

func (n *DocumentNode) Kind() NodeKind { return NodeDocument }

type PriceNode struct {
	baseNode
	Date      Token
	Commodity Token
	Amount    AmountNode
	Metadata  []MetaNode
}

func (n *PriceNode) Kind() NodeKind { return NodePrice }

type EventNode struct {
	baseNode
	Date     Token
	Name     Token
	Value    Token
	Metadata []MetaNode
}

func (n *EventNode) Kind() NodeKind { return NodeEvent }

type QueryNode struct {
	baseNode
	Date     Token
	Name     Token
	Contents Token
	Metadata []MetaNode
}

func (n *QueryNode) Kind() NodeKind { return NodeQuery }

type CustomNode struct {
	baseNode
	Date     Token
	Type     Token
	Values   []ValueNode
	Metadata []MetaNode
}

func (n *CustomNode) Kind() NodeKind { return NodeCustom }

type OptionNode struct {
	baseNode
	Name  Token
	Value Token
}

func (n *OptionNode) Kind() NodeKind { return NodeOption }

type IncludeNode struct {
	baseNode
	Filename Token
}

func (n *IncludeNode) Kind() NodeKind { return NodeInclude }

type PluginNode struct {
	baseNode
	Name   Token
	Config Token // optional second string
}

func (n *PluginNode) Kind() NodeKind { return NodePlugin }

type PushtagNode struct {
	baseNode
	Tag Token
}

func (n *PushtagNode) Kind() NodeKind { return NodePushtag }

type PoptagNode struct {
	baseNode
	Tag Token
}

func (n *PoptagNode) Kind() NodeKind { return NodePoptag }

type PushmetaNode struct {
	baseNode
	Key   Token
	Value ValueNode
}

func (n *PushmetaNode) Kind() NodeKind { return NodePushmeta }

type PopmetaNode struct {
	baseNode
	Key Token
}

func (n *PopmetaNode) Kind() NodeKind { return NodePopmeta }

type CommentNode struct {
	baseNode
	Text Token
}

func (n *CommentNode) Kind() NodeKind { return NodeComment }
