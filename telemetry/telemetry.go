// Package telemetry provides hierarchical timing collection for parse
// operations. Collectors travel through context so the parsing pipeline can
// be instrumented without changing function signatures; when no collector is
// installed the instrumentation costs nothing.
//
// Example usage:
//
//	collector := telemetry.NewTimingCollector()
//	ctx := telemetry.WithCollector(context.Background(), collector)
//
//	timer := telemetry.FromContext(ctx).Start("parse ledger.beancount")
//	lexTimer := timer.Child("lex")
//	// ... work ...
//	lexTimer.End()
//	timer.End()
//
//	collector.Report(os.Stderr, nil)
package telemetry

import (
	"context"
	"io"
)

type contextKey struct{}

var collectorKey = contextKey{}

// Collector gathers telemetry for a pipeline run.
type Collector interface {
	// Start begins timing an operation and returns a Timer that must be
	// ended when the operation completes.
	Start(name string) Timer

	// Report writes the collected telemetry. The styles parameter is an
	// optional *output.Styles for terminal coloring; pass nil for plain
	// text.
	Report(w io.Writer, styles interface{})
}

// Timer tracks a single operation. Timers nest via Child, producing the
// phase tree shown by Report.
type Timer interface {
	// End stops the timer and records the duration.
	End()

	// Child creates a nested timer under this one.
	Child(name string) Timer
}

// WithCollector installs a collector on the context.
func WithCollector(ctx context.Context, collector Collector) context.Context {
	return context.WithValue(ctx, collectorKey, collector)
}

// FromContext extracts the collector from the context, or a no-op collector
// when none is installed.
func FromContext(ctx context.Context) Collector {
	if collector, ok := ctx.Value(collectorKey).(Collector); ok {
		return collector
	}
	return noOpCollector{}
}

type noOpCollector struct{}

func (noOpCollector) Start(name string) Timer                { return noOpTimer{} }
func (noOpCollector) Report(w io.Writer, styles interface{}) {}

type noOpTimer struct{}

func (noOpTimer) End()                    {}
func (noOpTimer) Child(name string) Timer { return noOpTimer{} }
