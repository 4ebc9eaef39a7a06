package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/ledgertools/beantree"
	"github.com/ledgertools/beantree/errdisplay"
	"github.com/ledgertools/beantree/loader"
	"github.com/ledgertools/beantree/output"
	"github.com/ledgertools/beantree/telemetry"
)

// CheckCmd parses a ledger and reports every syntax, IO and encoding error
// found, with source excerpts. It exits non-zero when any error is present.
type CheckCmd struct {
	File           FileOrStdin `help:"Beancount input filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	FollowIncludes bool        `help:"Recursively check included files too." default:"true" negatable:""`
}

func (cmd *CheckCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	runCtx := context.Background()

	var collector telemetry.Collector
	if globals.Telemetry {
		collector = telemetry.NewTimingCollector()
		runCtx = telemetry.WithCollector(runCtx, collector)
	}

	result, err := cmd.parse(runCtx)
	if err != nil {
		return err
	}

	if collector != nil {
		fmt.Fprintln(ctx.Stderr)
		collector.Report(ctx.Stderr, output.NewStyles(ctx.Stderr))
	}

	if result.HasErrors() {
		if globals.JSON {
			fmt.Fprintln(ctx.Stdout, errdisplay.NewJSONRenderer().RenderAll(result.Errors))
		} else {
			source, _ := cmd.File.SourceContent()
			renderer := errdisplay.NewTextRenderer(
				errdisplay.WithSource(source),
				errdisplay.WithStyles(output.NewStyles(ctx.Stderr)),
			)
			fmt.Fprintln(ctx.Stderr, renderer.RenderAll(result.Errors))
			fmt.Fprintln(ctx.Stderr)
			printError(ctx.Stderr, fmt.Sprintf("%d error(s) found", len(result.Errors)))
		}
		os.Exit(1)
	}

	printSuccess(ctx.Stdout, fmt.Sprintf("Check passed, %d directive(s)", len(result.Directives)))
	return nil
}

func (cmd *CheckCmd) parse(ctx context.Context) (*beantree.ParseResult, error) {
	timer := telemetry.FromContext(ctx).Start("check " + filepath.Base(cmd.File.Filename))
	defer timer.End()

	if cmd.File.IsStdin() {
		return beantree.ParseBytes(ctx, cmd.File.Filename, cmd.File.Contents), nil
	}

	var opts []loader.Option
	if cmd.FollowIncludes {
		opts = append(opts, loader.WithFollowIncludes())
	}
	return loader.New(opts...).Load(ctx, cmd.File.AbsoluteFilename())
}
