package grammar

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func parse(t *testing.T, source string) ([]Node, []*Error) {
	t.Helper()
	return NewParser([]byte(source), "test.beancount").Parse()
}

func parseOne(t *testing.T, source string) Node {
	t.Helper()
	nodes, errs := parse(t, source)
	assert.Equal(t, 0, len(errs))
	assert.Equal(t, 1, len(nodes))
	return nodes[0]
}

func text(t *testing.T, source string, tok Token) string {
	t.Helper()
	return tok.String([]byte(source))
}

func TestParseOpen(t *testing.T) {
	source := `2014-05-01 open Assets:Checking USD,EUR "STRICT"`
	node := parseOne(t, source).(*OpenNode)

	assert.Equal(t, "2014-05-01", text(t, source, node.Date))
	assert.Equal(t, "Assets:Checking", text(t, source, node.Account))
	assert.Equal(t, 2, len(node.Currencies))
	assert.Equal(t, "USD", text(t, source, node.Currencies[0]))
	assert.Equal(t, "EUR", text(t, source, node.Currencies[1]))
	assert.Equal(t, `"STRICT"`, text(t, source, node.BookingMethod))
}

func TestParseClose(t *testing.T) {
	source := `2014-05-01 close Assets:Checking`
	node := parseOne(t, source).(*CloseNode)

	assert.Equal(t, "Assets:Checking", text(t, source, node.Account))
	assert.Equal(t, 1, node.Bounds().Start.Column)
	assert.Equal(t, len(source), node.Bounds().End.Offset)
}

func TestParseBalanceWithTolerance(t *testing.T) {
	source := `2014-05-01 balance Assets:Checking 100.10 ~ 0.05 USD`
	node := parseOne(t, source).(*BalanceNode)

	assert.Equal(t, "100.10", text(t, source, node.Amount.Number))
	assert.Equal(t, "0.05", text(t, source, node.Tolerance))
	assert.Equal(t, "USD", text(t, source, node.Amount.Currency))
}

func TestParseTransaction(t *testing.T) {
	source := `2014-05-05 * "Cafe Mogador" "Lamb tagine" #trip ^receipt-1
  note: "dinner"
  Expenses:Restaurant  37.45 USD
    confirmation: "X-123"
  ! Assets:Cash
`
	node := parseOne(t, source).(*TransactionNode)

	assert.Equal(t, ASTERISK, node.Keyword.Type)
	assert.Equal(t, `"Cafe Mogador"`, text(t, source, node.Payee))
	assert.Equal(t, `"Lamb tagine"`, text(t, source, node.Narration))
	assert.Equal(t, 1, len(node.Tags))
	assert.Equal(t, 1, len(node.Links))

	// Metadata before the first posting belongs to the transaction.
	assert.Equal(t, 1, len(node.Metadata))
	assert.Equal(t, "note", text(t, source, node.Metadata[0].Key))

	assert.Equal(t, 2, len(node.Postings))
	first := node.Postings[0]
	assert.Equal(t, "Expenses:Restaurant", text(t, source, first.Account))
	assert.Equal(t, "37.45", text(t, source, first.Amount.Number))
	assert.Equal(t, 1, len(first.Metadata))
	assert.Equal(t, "confirmation", text(t, source, first.Metadata[0].Key))

	second := node.Postings[1]
	assert.Equal(t, EXCLAIM, second.Flag.Type)
	assert.True(t, second.Amount == nil)
}

func TestParsePostingCostAndPrice(t *testing.T) {
	source := `2014-05-05 * "Buy stock"
  Assets:Broker  10 HOOL {518.73 USD, 2014-05-01, "first-lot"} @@ 5187.30 USD
  Assets:Cash
`
	node := parseOne(t, source).(*TransactionNode)
	posting := node.Postings[0]

	assert.Equal(t, "518.73", text(t, source, posting.Cost.Amount.Number))
	assert.Equal(t, "2014-05-01", text(t, source, posting.Cost.Date))
	assert.Equal(t, `"first-lot"`, text(t, source, posting.Cost.Label))
	assert.False(t, posting.Cost.IsMerge)

	assert.True(t, posting.PriceTotal)
	assert.Equal(t, "5187.30", text(t, source, posting.Price.Number))
}

func TestParseCostVariants(t *testing.T) {
	source := `2014-05-05 * "Sell"
  Assets:Broker  -5 HOOL {}
  Assets:Other  -5 HOOL {*}
  Assets:Third  -5 HOOL {{1000.00 USD}}
  Assets:Cash
`
	node := parseOne(t, source).(*TransactionNode)

	empty := node.Postings[0].Cost
	assert.True(t, empty.Amount == nil)
	assert.False(t, empty.IsMerge)
	assert.False(t, empty.IsTotal)

	merge := node.Postings[1].Cost
	assert.True(t, merge.IsMerge)
	assert.False(t, merge.IsTotal)

	// {{...}} is a total cost, not a merge.
	total := node.Postings[2].Cost
	assert.True(t, total.IsTotal)
	assert.False(t, total.IsMerge)
	assert.Equal(t, "1000.00", text(t, source, total.Amount.Number))
}

func TestParseExpressionAmount(t *testing.T) {
	source := `2014-05-05 * "Split four ways"
  Assets:Cash  (2 + 3) * 4.00 USD
  Expenses:Misc
`
	node := parseOne(t, source).(*TransactionNode)
	amount := node.Postings[0].Amount

	assert.True(t, amount.Number.IsZero())
	assert.Equal(t, "USD", text(t, source, amount.Currency))

	mul, ok := amount.Expr.(*BinaryExpr)
	assert.True(t, ok)
	assert.Equal(t, ASTERISK, mul.Op.Type)

	group, ok := mul.Left.(*ParenExpr)
	assert.True(t, ok)
	add := group.Inner.(*BinaryExpr)
	assert.Equal(t, PLUS, add.Op.Type)

	right := mul.Right.(*NumberExpr)
	assert.Equal(t, "4.00", text(t, source, right.Token))
}

func TestParseNegatedExpression(t *testing.T) {
	source := `2014-05-05 * "Refund"
  Assets:Cash  -(2 + 3) USD
  Expenses:Misc
`
	node := parseOne(t, source).(*TransactionNode)
	amount := node.Postings[0].Amount

	neg, ok := amount.Expr.(*UnaryExpr)
	assert.True(t, ok)
	assert.Equal(t, MINUS, neg.Op.Type)
}

func TestParseExpressionInBalance(t *testing.T) {
	source := `2014-05-01 balance Assets:Checking 40.00 / 4 USD`
	node := parseOne(t, source).(*BalanceNode)

	div, ok := node.Amount.Expr.(*BinaryExpr)
	assert.True(t, ok)
	assert.Equal(t, SLASH, div.Op.Type)
	assert.Equal(t, "USD", text(t, source, node.Amount.Currency))
}

func TestParseUnclosedExpression(t *testing.T) {
	source := `2014-05-05 * "Bad"
  Assets:Cash  (2 + 3 USD
  Expenses:Misc
`
	nodes, errs := parse(t, source)
	assert.Equal(t, 1, len(errs))
	assert.Equal(t, 1, len(nodes))
}

func TestParseDirectivesWithStrings(t *testing.T) {
	source := `2014-07-09 note Assets:Checking "Called the bank"
2014-07-09 document Assets:Checking "/docs/2014-07.pdf" #statements
2014-07-09 event "location" "New York"
2014-07-09 query "cash" "SELECT account"
2014-07-09 price USD 1.08 CAD
2014-07-09 pad Assets:Checking Equity:Opening-Balances
2014-07-09 commodity HOOL
`
	nodes, errs := parse(t, source)
	assert.Equal(t, 0, len(errs))
	assert.Equal(t, 7, len(nodes))

	assert.Equal(t, NodeNote, nodes[0].Kind())
	doc := nodes[1].(*DocumentNode)
	assert.Equal(t, 1, len(doc.Tags))
	assert.Equal(t, NodeEvent, nodes[2].Kind())
	query := nodes[3].(*QueryNode)
	assert.Equal(t, `"SELECT account"`, text(t, source, query.Contents))
	price := nodes[4].(*PriceNode)
	assert.Equal(t, "1.08", text(t, source, price.Amount.Number))
	pad := nodes[5].(*PadNode)
	assert.Equal(t, "Equity:Opening-Balances", text(t, source, pad.AccountPad))
	assert.Equal(t, NodeCommodity, nodes[6].Kind())
}

func TestParseCustomValues(t *testing.T) {
	source := `2014-07-09 custom "budget" "monthly" TRUE 45.30 USD 2014-01-01 Assets:Cash 7`
	node := parseOne(t, source).(*CustomNode)

	assert.Equal(t, `"budget"`, text(t, source, node.Type))
	assert.Equal(t, 6, len(node.Values))
	assert.Equal(t, STRING, node.Values[0].Token.Type)
	assert.Equal(t, IDENT, node.Values[1].Token.Type)
	assert.True(t, node.Values[2].Amount != nil)
	assert.Equal(t, DATE, node.Values[3].Token.Type)
	assert.Equal(t, ACCOUNT, node.Values[4].Token.Type)
	assert.Equal(t, NUMBER, node.Values[5].Token.Type)
}

func TestParseFileLevelDirectives(t *testing.T) {
	source := `option "title" "Example"
include "accounts.beancount"
plugin "beancount.plugins.auto" "cfg"
pushtag #trip
poptag #trip
pushmeta location: "NYC"
popmeta location:
; a comment
`
	nodes, errs := parse(t, source)
	assert.Equal(t, 0, len(errs))
	assert.Equal(t, 8, len(nodes))

	assert.Equal(t, NodeOption, nodes[0].Kind())
	assert.Equal(t, NodeInclude, nodes[1].Kind())
	plugin := nodes[2].(*PluginNode)
	assert.Equal(t, `"cfg"`, text(t, source, plugin.Config))
	assert.Equal(t, NodePushtag, nodes[3].Kind())
	assert.Equal(t, NodePoptag, nodes[4].Kind())
	pushmeta := nodes[5].(*PushmetaNode)
	assert.Equal(t, "location", text(t, source, pushmeta.Key))
	assert.Equal(t, STRING, pushmeta.Value.Token.Type)
	assert.Equal(t, NodePopmeta, nodes[6].Kind())
	assert.Equal(t, NodeComment, nodes[7].Kind())
}

func TestParseRecoversAfterError(t *testing.T) {
	source := `2014-05-01 open "not an account"
2014-05-02 close Assets:Checking
`
	nodes, errs := parse(t, source)

	// The malformed statement is reported and the next one still parses.
	assert.Equal(t, 1, len(errs))
	assert.Equal(t, 1, errs[0].Span.Start.Line)
	assert.Equal(t, 1, len(nodes))
	assert.Equal(t, NodeClose, nodes[0].Kind())
}

func TestParseReportsEveryError(t *testing.T) {
	source := `2014-05-01 open "oops"
banana
2014-05-03 close Assets:Checking extra
2014-05-04 note Assets:Checking "fine"
`
	nodes, errs := parse(t, source)

	assert.Equal(t, 3, len(errs))
	assert.Equal(t, 1, len(nodes))
	assert.Equal(t, NodeNote, nodes[0].Kind())
}

func TestParseUnexpectedIndent(t *testing.T) {
	source := "  Assets:Cash  1 USD\n"
	nodes, errs := parse(t, source)

	assert.Equal(t, 0, len(nodes))
	assert.Equal(t, 1, len(errs))
}

func TestParseEmptySource(t *testing.T) {
	nodes, errs := parse(t, "")
	assert.Equal(t, 0, len(nodes))
	assert.Equal(t, 0, len(errs))
}

func TestErrorMessageIncludesPosition(t *testing.T) {
	_, errs := parse(t, "banana\n")
	assert.Equal(t, 1, len(errs))
	assert.Equal(t, "1:1: unexpected token IDENT at start of statement", errs[0].Error())
}
