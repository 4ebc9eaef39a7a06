package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ledgertools/beantree"
	"github.com/ledgertools/beantree/ast"
	"github.com/ledgertools/beantree/errdisplay"
)

// ParseCmd parses a ledger and dumps the resulting directives, either as an
// indented tree for inspection or as JSON for tooling.
type ParseCmd struct {
	File   FileOrStdin `help:"Beancount input filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	Kind   string      `help:"Only dump directives of this kind (e.g. transaction, open)."`
	Output string      `help:"Write the dump to a file instead of stdout." short:"o" type:"path"`
}

func (cmd *ParseCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	var result *beantree.ParseResult
	if cmd.File.IsStdin() {
		result = beantree.ParseBytes(context.Background(), cmd.File.Filename, cmd.File.Contents)
	} else {
		result = beantree.ParseFile(context.Background(), cmd.File.AbsoluteFilename())
	}

	directives := result.Directives
	if cmd.Kind != "" {
		kind, ok := kindByName(cmd.Kind)
		if !ok {
			return fmt.Errorf("unknown directive kind %q", cmd.Kind)
		}
		directives = directives.OfKind(kind)
	}

	var dump string
	if globals.JSON {
		data, err := json.MarshalIndent(directives, "", "  ")
		if err != nil {
			return err
		}
		dump = string(data)
	} else {
		dump = ast.Dump(directives)
	}

	if cmd.Output != "" {
		if _, err := os.Stat(cmd.Output); err == nil {
			overwrite, err := promptYesNo(fmt.Sprintf("Overwrite %s?", cmd.Output))
			if err != nil {
				return err
			}
			if !overwrite {
				printInfof(ctx.Stderr, "left %s untouched", cmd.Output)
				return nil
			}
		}
		if err := os.WriteFile(cmd.Output, []byte(dump+"\n"), 0o644); err != nil {
			return err
		}
		printSuccess(ctx.Stdout, fmt.Sprintf("wrote %d directive(s) to %s", len(directives), cmd.Output))
	} else {
		fmt.Fprintln(ctx.Stdout, dump)
	}

	if result.HasErrors() {
		source, _ := cmd.File.SourceContent()
		renderer := errdisplay.NewTextRenderer(errdisplay.WithSource(source))
		fmt.Fprintln(ctx.Stderr, renderer.RenderAll(result.Errors))
		os.Exit(1)
	}
	return nil
}

func kindByName(name string) (ast.Kind, bool) {
	for _, k := range ast.Kinds() {
		if k.String() == name {
			return k, true
		}
	}
	return 0, false
}
