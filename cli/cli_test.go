package cli

import (
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/ledgertools/beantree/ast"
)

func TestFileOrStdin(t *testing.T) {
	f := FileOrStdin{Filename: "<stdin>", Contents: []byte("option \"a\" \"b\"\n")}
	assert.True(t, f.IsStdin())
	assert.Equal(t, "<stdin>", f.AbsoluteFilename())

	source, err := f.SourceContent()
	assert.NoError(t, err)
	assert.Equal(t, f.Contents, source)

	g := FileOrStdin{Filename: "ledger.beancount"}
	assert.False(t, g.IsStdin())
	assert.True(t, filepath.IsAbs(g.AbsoluteFilename()))
}

func TestKindByName(t *testing.T) {
	k, ok := kindByName("transaction")
	assert.True(t, ok)
	assert.Equal(t, ast.KindTransaction, k)

	k, ok = kindByName("open")
	assert.True(t, ok)
	assert.Equal(t, ast.KindOpen, k)

	_, ok = kindByName("nonsense")
	assert.False(t, ok)
}
