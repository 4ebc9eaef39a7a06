package beantree_test

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/ledgertools/beantree"
	"github.com/ledgertools/beantree/ast"
)

const sampleLedger = `option "title" "Example Ledger"
option "operating_currency" "USD"

plugin "beancount.plugins.auto_accounts"

2014-05-01 open Assets:US:BofA:Checking USD,EUR "STRICT"
2014-05-01 open Expenses:Restaurant

2014-05-05 * "Cafe Mogador" "Lamb tagine" #trip ^receipt-1
  invoice: "INV-001"
  Expenses:Restaurant  37.45 USD
    confirmation: "X-123"
  Assets:US:BofA:Checking  -37.45 USD

2014-05-06 balance Assets:US:BofA:Checking 100.10 ~ 0.05 USD

2014-05-07 price USD 1.08 CAD

; year-end wrap up
2014-12-31 close Expenses:Restaurant
`

func TestParseStringKindsAndOrder(t *testing.T) {
	result := beantree.ParseString(context.Background(), sampleLedger)

	assert.False(t, result.HasErrors())
	assert.True(t, result.Directives.InSourceOrder())

	kinds := make([]ast.Kind, len(result.Directives))
	for i, d := range result.Directives {
		kinds[i] = d.Kind()
	}
	assert.Equal(t, []ast.Kind{
		ast.KindOption, ast.KindOption, ast.KindPlugin,
		ast.KindOpen, ast.KindOpen,
		ast.KindTransaction, ast.KindBalance, ast.KindPrice,
		ast.KindComment, ast.KindClose,
	}, kinds)
}

func TestParseStringTransaction(t *testing.T) {
	result := beantree.ParseString(context.Background(), sampleLedger)
	txns := result.Transactions()
	assert.Equal(t, 1, len(txns))

	txn := txns[0]
	assert.Equal(t, "2014-05-05", txn.Date.String())
	assert.Equal(t, "*", txn.Flag)
	assert.Equal(t, "Cafe Mogador", txn.Payee)
	assert.Equal(t, "Lamb tagine", txn.Narration)
	assert.Equal(t, []ast.Tag{"trip"}, txn.Tags)
	assert.Equal(t, []ast.Link{"receipt-1"}, txn.Links)

	assert.Equal(t, 1, len(txn.Meta()))
	assert.Equal(t, "invoice", txn.Meta()[0].Key)
	assert.Equal(t, "string", txn.Meta()[0].Value.Type())

	assert.Equal(t, 2, len(txn.Postings))
	first := txn.Postings[0]
	assert.Equal(t, ast.Account("Expenses:Restaurant"), first.Account)
	assert.Equal(t, "37.45", first.Amount.Value)
	assert.Equal(t, 1, len(first.Metadata))
	assert.Equal(t, "confirmation", first.Metadata[0].Key)

	second := txn.Postings[1]
	assert.Equal(t, "-37.45", second.Amount.Value)
}

func TestNumericFidelity(t *testing.T) {
	result := beantree.ParseString(context.Background(),
		"2014-05-06 balance Assets:Checking 100.10 USD\n")
	assert.False(t, result.HasErrors())

	balance := result.Directives[0].(*ast.Balance)

	// Trailing zeros survive; 100.10 never becomes 100.1.
	assert.Equal(t, "100.10", balance.Amount.Value)
	assert.Equal(t, "100.10", balance.Amount.Raw.Text)
	assert.Equal(t, "NUMBER", balance.Amount.Raw.Kind)
}

func TestBalanceTolerance(t *testing.T) {
	result := beantree.ParseString(context.Background(), sampleLedger)
	balances := result.Directives.OfKind(ast.KindBalance)
	assert.Equal(t, 1, len(balances))
	assert.Equal(t, "0.05", balances[0].(*ast.Balance).Tolerance)
}

func TestOpenDirectiveFields(t *testing.T) {
	result := beantree.ParseString(context.Background(), sampleLedger)
	opens := result.Directives.OfKind(ast.KindOpen)
	assert.Equal(t, 2, len(opens))

	first := opens[0].(*ast.Open)
	assert.Equal(t, "2014-05-01", first.Date.String())
	assert.Equal(t, ast.Account("Assets:US:BofA:Checking"), first.Account)
	assert.Equal(t, []string{"USD", "EUR"}, first.ConstraintCurrencies)
	assert.Equal(t, "STRICT", first.BookingMethod)
	assert.Equal(t, 0, len(first.Meta()))

	second := opens[1].(*ast.Open)
	assert.Zero(t, second.ConstraintCurrencies)
	assert.Equal(t, "", second.BookingMethod)
	assert.Equal(t, 0, len(second.Meta()))
}

func TestCommentPreserved(t *testing.T) {
	result := beantree.ParseString(context.Background(), sampleLedger)
	comments := result.Directives.OfKind(ast.KindComment)
	assert.Equal(t, 1, len(comments))
	assert.Equal(t, "; year-end wrap up", comments[0].(*ast.Comment).Content)
}

func TestSpansCoverDirectives(t *testing.T) {
	result := beantree.ParseString(context.Background(), sampleLedger)

	for _, d := range result.Directives {
		span := ast.SpanOf(d)
		assert.False(t, span.IsZero())
		assert.True(t, span.Start.Offset < span.End.Offset)
		assert.Equal(t, beantree.StdinFilename, span.Start.Filename)

		// The span's text is exactly the directive's source slice.
		assert.Equal(t, sampleLedger[span.Start.Offset:span.End.Offset],
			span.Text([]byte(sampleLedger)))
	}
}

func TestMetadataValueClassification(t *testing.T) {
	source := `2014-05-05 * "Narration"
  str: "text"
  when: 2014-01-15
  acct: Assets:Checking
  cur: USD
  cat: #vacation
  ref: ^invoice123
  qty: 42
  budget: 1000.00 USD
  active: TRUE
  inactive: FALSE
  Assets:Checking  1.00 USD
  Expenses:Misc
`
	result := beantree.ParseString(context.Background(), source)
	assert.False(t, result.HasErrors())

	meta := result.Directives[0].Meta()
	types := make(map[string]string)
	for _, m := range meta {
		types[m.Key] = m.Value.Type()
	}

	assert.Equal(t, map[string]string{
		"str":      "string",
		"when":     "date",
		"acct":     "account",
		"cur":      "currency",
		"cat":      "tag",
		"ref":      "link",
		"qty":      "number",
		"budget":   "amount",
		"active":   "boolean",
		"inactive": "boolean",
	}, types)

	for _, m := range meta {
		if m.Key == "active" {
			assert.True(t, *m.Value.Boolean)
		}
		if m.Key == "inactive" {
			assert.False(t, *m.Value.Boolean)
		}
		if m.Key == "budget" {
			assert.Equal(t, "1000.00", m.Value.Amount.Value)
		}
	}
}

func TestDeterminism(t *testing.T) {
	first := beantree.ParseString(context.Background(), sampleLedger)
	second := beantree.ParseString(context.Background(), sampleLedger)

	assert.Equal(t, ast.Dump(first.Directives), ast.Dump(second.Directives))
	assert.Equal(t, len(first.Errors), len(second.Errors))
}

func TestInvalidDateReportsSingleError(t *testing.T) {
	result := beantree.ParseString(context.Background(),
		"2023-13-01 open Assets:Checking\n")

	assert.Equal(t, 0, len(result.Directives))
	assert.Equal(t, 1, len(result.Errors))

	err := result.Errors[0]
	assert.Equal(t, beantree.SyntaxError, err.Kind)

	// The span covers exactly the date token.
	assert.Equal(t, 1, err.Span.Start.Line)
	assert.Equal(t, 1, err.Span.Start.Column)
	assert.Equal(t, 0, err.Span.Start.Offset)
	assert.Equal(t, 10, err.Span.End.Offset)
}

func TestInvalidCalendarDay(t *testing.T) {
	result := beantree.ParseString(context.Background(),
		"2023-02-30 close Assets:Checking\n")

	assert.Equal(t, 0, len(result.Directives))
	assert.Equal(t, 1, len(result.Errors))
}

func TestPartialRecovery(t *testing.T) {
	source := `2014-05-01 open Assets:Checking
2014-05-02 open "oops"
2014-05-03 close Assets:Checking
`
	result := beantree.ParseString(context.Background(), source)

	// The bad statement is reported, the good ones still convert.
	assert.Equal(t, 2, len(result.Directives))
	assert.Equal(t, 1, len(result.Errors))
	assert.Equal(t, 2, result.Errors[0].Span.Start.Line)
	assert.Equal(t, ast.KindOpen, result.Directives[0].Kind())
	assert.Equal(t, ast.KindClose, result.Directives[1].Kind())
}

func TestErrorsInSourceOrder(t *testing.T) {
	source := `2014-05-01 open "oops"
2023-13-01 close Assets:Checking
banana
`
	result := beantree.ParseString(context.Background(), source)
	assert.Equal(t, 3, len(result.Errors))

	for i := 1; i < len(result.Errors); i++ {
		assert.True(t, result.Errors[i-1].Span.Start.Offset <= result.Errors[i].Span.Start.Offset)
	}
}

func TestErrorTotalityOnGarbage(t *testing.T) {
	inputs := []string{
		"%%%%%",
		"2014-05-05",
		"2014-05-05 *",
		"open open open",
		"\"unterminated",
		"2014-05-05 balance Assets:X 1.0",
		"pushmeta key:",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			// Must not panic, and must classify problems as errors.
			result := beantree.ParseString(context.Background(), input)
			assert.True(t, result != nil)
		})
	}
}

func TestEncodingError(t *testing.T) {
	result := beantree.ParseBytes(context.Background(), "bad.beancount",
		[]byte{0x32, 0x30, 0xff, 0xfe, 0x31})

	assert.Equal(t, 0, len(result.Directives))
	assert.Equal(t, 1, len(result.Errors))
	assert.Equal(t, beantree.EncodingError, result.Errors[0].Kind)
}

func TestParseFileMissing(t *testing.T) {
	result := beantree.ParseFile(context.Background(),
		filepath.Join(t.TempDir(), "does-not-exist.beancount"))

	assert.Equal(t, 1, len(result.Errors))
	err := result.Errors[0]
	assert.Equal(t, beantree.IOError, err.Kind)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestParseFileMatchesParseBytes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.beancount")
	assert.NoError(t, os.WriteFile(path, []byte(sampleLedger), 0o644))

	fromFile := beantree.ParseFile(context.Background(), path)
	fromBytes := beantree.ParseBytes(context.Background(), path, []byte(sampleLedger))

	assert.False(t, fromFile.HasErrors())
	assert.Equal(t, ast.Dump(fromBytes.Directives), ast.Dump(fromFile.Directives))
}

func TestResultOptions(t *testing.T) {
	result := beantree.ParseString(context.Background(), sampleLedger)
	opts := result.Options()
	assert.Equal(t, "Example Ledger", opts["title"])
	assert.Equal(t, "USD", opts["operating_currency"])
}

func TestResultIncludes(t *testing.T) {
	result := beantree.ParseString(context.Background(),
		"include \"a.beancount\"\ninclude \"b.beancount\"\n")
	assert.Equal(t, []string{"a.beancount", "b.beancount"}, result.Includes())
}

func TestTransactionAccounts(t *testing.T) {
	result := beantree.ParseString(context.Background(), sampleLedger)
	txn := result.Transactions()[0]

	accounts := txn.Accounts()
	assert.Equal(t, []ast.Account{
		"Expenses:Restaurant", "Assets:US:BofA:Checking",
	}, accounts)
}

func TestPushPopDirectives(t *testing.T) {
	source := `pushtag #trip
pushmeta location: "NYC"
popmeta location:
poptag #trip
`
	result := beantree.ParseString(context.Background(), source)
	assert.False(t, result.HasErrors())
	assert.Equal(t, 4, len(result.Directives))

	pushtag := result.Directives[0].(*ast.Pushtag)
	assert.Equal(t, ast.Tag("trip"), pushtag.Tag)

	pushmeta := result.Directives[1].(*ast.Pushmeta)
	assert.Equal(t, "location", pushmeta.Key)
	assert.Equal(t, "NYC", *pushmeta.Value.StringValue)

	popmeta := result.Directives[2].(*ast.Popmeta)
	assert.Equal(t, "location", popmeta.Key)

	poptag := result.Directives[3].(*ast.Poptag)
	assert.Equal(t, ast.Tag("trip"), poptag.Tag)
}

func TestCustomDirective(t *testing.T) {
	result := beantree.ParseString(context.Background(),
		`2014-07-09 custom "budget" "monthly" TRUE 45.30 USD`+"\n")
	assert.False(t, result.HasErrors())

	custom := result.Directives[0].(*ast.Custom)
	assert.Equal(t, "budget", custom.Type)
	assert.Equal(t, 3, len(custom.Values))
	assert.Equal(t, "monthly", *custom.Values[0].String)
	assert.True(t, *custom.Values[1].Boolean)
	assert.Equal(t, "45.30", custom.Values[2].Amount.Value)
}

func TestCostConversion(t *testing.T) {
	source := `2014-05-05 * "Buy"
  Assets:Broker  10 HOOL {518.73 USD, 2014-05-01, "first-lot"}
  Assets:Cash  -5187.30 USD
`
	result := beantree.ParseString(context.Background(), source)
	assert.False(t, result.HasErrors())

	cost := result.Transactions()[0].Postings[0].Cost
	assert.Equal(t, "518.73", cost.Amount.Value)
	assert.Equal(t, "2014-05-01", cost.Date.String())
	assert.Equal(t, "first-lot", cost.Label)
	assert.False(t, cost.IsEmpty())
}

func TestExpressionAmount(t *testing.T) {
	source := `2014-05-05 * "Split four ways"
  Assets:Cash  (2 + 3) * 4.00 USD
  Expenses:Misc
`
	result := beantree.ParseString(context.Background(), source)
	assert.False(t, result.HasErrors())

	amount := result.Transactions()[0].Postings[0].Amount
	assert.Equal(t, "20.00", amount.Value)
	assert.Equal(t, "(2 + 3) * 4.00", amount.Expression)
	assert.Equal(t, "USD", amount.Currency)

	// The raw token keeps the verbatim expression for diagnostics.
	assert.Equal(t, "(2 + 3) * 4.00", amount.Raw.Text)
}

func TestExpressionPrecedence(t *testing.T) {
	result := beantree.ParseString(context.Background(),
		"2014-05-06 balance Assets:Checking 2 + 3 * 4 USD\n")
	assert.False(t, result.HasErrors())

	balance := result.Directives[0].(*ast.Balance)
	assert.Equal(t, "14", balance.Amount.Value)
	assert.Equal(t, "2 + 3 * 4", balance.Amount.Expression)
}

func TestExpressionDivisionByZero(t *testing.T) {
	source := `2014-05-05 * "Bad math"
  Assets:Cash  1 / 0 USD
  Expenses:Misc
`
	result := beantree.ParseString(context.Background(), source)

	assert.Equal(t, 0, len(result.Directives))
	assert.Equal(t, 1, len(result.Errors))
	assert.Equal(t, beantree.SyntaxError, result.Errors[0].Kind)
	assert.Equal(t, "division by zero", result.Errors[0].Message)
}

func TestTotalCostConversion(t *testing.T) {
	source := `2014-05-05 * "Buy"
  Assets:Broker  10 HOOL {{5187.30 USD}}
  Assets:Cash  -5187.30 USD
`
	result := beantree.ParseString(context.Background(), source)
	assert.False(t, result.HasErrors())

	cost := result.Transactions()[0].Postings[0].Cost
	assert.True(t, cost.IsTotal)
	assert.False(t, cost.IsMerge)
	assert.Equal(t, "5187.30", cost.Amount.Value)
}

func TestStringEscapes(t *testing.T) {
	result := beantree.ParseString(context.Background(),
		`2014-05-05 * "He said \"hi\"" `+"\n  Assets:Cash  1.00 USD\n  Expenses:Misc\n")
	assert.False(t, result.HasErrors())
	assert.Equal(t, `He said "hi"`, result.Transactions()[0].Narration)
}
