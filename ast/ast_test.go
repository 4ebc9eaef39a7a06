package ast

import (
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func at(offset int) Span {
	return Span{
		Start: Position{Filename: "test.beancount", Offset: offset, Line: 1, Column: offset + 1},
		End:   Position{Filename: "test.beancount", Offset: offset + 10, Line: 1, Column: offset + 11},
	}
}

func TestDirectivesInSourceOrder(t *testing.T) {
	open := &Open{}
	open.Span = at(0)
	txn := &Transaction{}
	txn.Span = at(20)
	note := &Note{}
	note.Span = at(40)

	ordered := Directives{open, txn, note}
	assert.True(t, ordered.InSourceOrder())

	shuffled := Directives{txn, open, note}
	assert.False(t, shuffled.InSourceOrder())

	shuffled.SortBySource()
	assert.True(t, shuffled.InSourceOrder())
	assert.Equal(t, KindOpen, shuffled[0].Kind())

	assert.True(t, Directives{}.InSourceOrder())
}

func TestDirectivesOfKind(t *testing.T) {
	open := &Open{}
	txn1 := &Transaction{Narration: "first"}
	txn2 := &Transaction{Narration: "second"}

	ds := Directives{open, txn1, txn2}
	txns := ds.OfKind(KindTransaction)
	assert.Equal(t, 2, len(txns))
	assert.Equal(t, "first", txns[0].(*Transaction).Narration)
	assert.Equal(t, "second", txns[1].(*Transaction).Narration)

	assert.Equal(t, 0, len(ds.OfKind(KindBalance)))
}

func TestSpanOf(t *testing.T) {
	open := &Open{}
	open.Span = at(5)
	assert.Equal(t, open.Span, SpanOf(open))
	assert.Equal(t, 5, open.Pos().Offset)
	assert.Equal(t, 15, open.End().Offset)
}

func TestBareNodeMeta(t *testing.T) {
	var d Directive = &Option{Name: "title", Value: "Test"}
	assert.Zero(t, d.Meta())
}

func TestDumpDeterministic(t *testing.T) {
	date, err := NewDate("2014-05-05")
	assert.NoError(t, err)
	amount, err := NewAmount("4.50", "USD")
	assert.NoError(t, err)

	txn := &Transaction{
		Date:      date,
		Flag:      "*",
		Narration: "Coffee",
		Postings: []*Posting{
			{Account: "Expenses:Food", Amount: amount},
			{Account: "Assets:Cash"},
		},
	}

	first := Dump(txn)
	second := Dump(txn)
	assert.Equal(t, first, second)
	assert.True(t, strings.Contains(first, "Coffee"))
	assert.True(t, strings.Contains(first, "Expenses:Food"))
}
