package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fsnotify/fsnotify"

	"github.com/ledgertools/beantree"
	"github.com/ledgertools/beantree/errdisplay"
	"github.com/ledgertools/beantree/output"
)

// WatchCmd re-parses a ledger whenever it changes on disk and reports the
// errors of each run. Editors often replace files instead of writing in
// place, so the watch is on the containing directory rather than the file.
type WatchCmd struct {
	File string `help:"Beancount input filename." arg:"" type:"existingfile"`
}

func (cmd *WatchCmd) Run(ctx *kong.Context, globals *Globals) error {
	absPath, err := filepath.Abs(cmd.File)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(absPath), err)
	}

	printInfof(ctx.Stdout, "watching %s", cmd.File)
	cmd.checkOnce(ctx, absPath)

	// Editors fire several events per save; coalesce bursts before
	// re-parsing.
	var pending <-chan time.Time
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != absPath {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			pending = time.After(100 * time.Millisecond)
		case <-pending:
			pending = nil
			cmd.checkOnce(ctx, absPath)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			printError(ctx.Stderr, err.Error())
		}
	}
}

func (cmd *WatchCmd) checkOnce(ctx *kong.Context, path string) {
	result := beantree.ParseFile(context.Background(), path)

	if result.HasErrors() {
		renderer := errdisplay.NewTextRenderer(
			errdisplay.WithSource(result.Source),
			errdisplay.WithStyles(output.NewStyles(ctx.Stderr)),
		)
		fmt.Fprintln(ctx.Stderr, renderer.RenderAll(result.Errors))
		printError(ctx.Stderr, fmt.Sprintf("%d error(s) found", len(result.Errors)))
		return
	}

	printSuccess(ctx.Stdout, fmt.Sprintf("Check passed, %d directive(s)", len(result.Directives)))
}
