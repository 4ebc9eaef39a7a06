package beantree

import (
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/ledgertools/beantree/internal/grammar"
)

// stubNode has a node kind the converter carries no case for.
type stubNode struct{}

func (stubNode) Kind() grammar.NodeKind { return grammar.NodeKind(grammar.NodeKindCount) }
func (stubNode) Bounds() grammar.Span   { return grammar.Span{} }

func TestConvertRejectsUnknownNode(t *testing.T) {
	conv := newConverter(nil, StdinFilename, grammar.NewInterner(16))
	directives := conv.convertAll([]grammar.Node{stubNode{}})

	// An unmapped node is reported, never silently dropped.
	assert.Equal(t, 0, len(directives))
	assert.Equal(t, 1, len(conv.errors))
	assert.Equal(t, SyntaxError, conv.errors[0].Kind)
}
