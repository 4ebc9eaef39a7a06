// Package loader loads Beancount files with support for include directives.
// It can recursively resolve included files and merge everything into a
// single parse result, resolving relative paths against the including file
// and deduplicating files that are included more than once.
//
// Example usage:
//
//	// Parse a single file, includes left unresolved.
//	result, err := loader.New().Load(ctx, "main.beancount")
//
//	// Recursively load every included file.
//	result, err := loader.New(loader.WithFollowIncludes()).Load(ctx, "main.beancount")
package loader

import (
	"context"
	"path/filepath"

	"github.com/ledgertools/beantree"
	"github.com/ledgertools/beantree/telemetry"
)

// Loader loads and parses Beancount files with optional include resolution.
type Loader struct {
	// FollowIncludes determines whether included files are recursively
	// loaded and merged. When false only the named file is parsed and its
	// include directives are left in the result untouched.
	FollowIncludes bool
}

// Option configures how files are loaded.
type Option func(*Loader)

// WithFollowIncludes makes the loader recursively resolve and load every
// include directive. Relative include paths resolve against the directory of
// the including file; a file included more than once is loaded once.
func WithFollowIncludes() Option {
	return func(l *Loader) {
		l.FollowIncludes = true
	}
}

// New creates a Loader with the given options.
func New(opts ...Option) *Loader {
	l := &Loader{}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load parses filename. IO, encoding and syntax problems are reported inside
// the result; the returned error is reserved for context cancellation.
func (l *Loader) Load(ctx context.Context, filename string) (*beantree.ParseResult, error) {
	timer := telemetry.FromContext(ctx).Start("load " + filename)
	defer timer.End()

	if !l.FollowIncludes {
		return beantree.ParseFile(ctx, filename), nil
	}

	state := &loaderState{visited: make(map[string]bool)}
	return state.loadRecursive(ctx, filename)
}

type loaderState struct {
	visited map[string]bool // absolute paths already loaded
}

func (l *loaderState) loadRecursive(ctx context.Context, filename string) (*beantree.ParseResult, error) {
	absPath, err := filepath.Abs(filename)
	if err != nil {
		absPath = filename
	}

	if l.visited[absPath] {
		return &beantree.ParseResult{Filename: filename}, nil
	}
	l.visited[absPath] = true

	result := beantree.ParseFile(ctx, filename)

	includes := result.Includes()
	if len(includes) == 0 {
		return result, nil
	}

	baseDir := filepath.Dir(absPath)
	for _, inc := range includes {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		includePath := inc
		if !filepath.IsAbs(includePath) {
			includePath = filepath.Join(baseDir, includePath)
		}

		included, err := l.loadRecursive(ctx, includePath)
		if err != nil {
			return nil, err
		}

		// Merge: directives from included files follow the including
		// file's, matching evaluation order. Errors merge too, so one
		// load reports problems across the whole file tree.
		result.Directives = append(result.Directives, included.Directives...)
		result.Errors = append(result.Errors, included.Errors...)
	}

	return result, nil
}
