// Package ast declares the exported, immutable record types that represent a
// parsed Beancount file: directives, transactions, postings, and the literal
// values they carry, each annotated with its source span and raw tokens.
//
// The types in this package mirror the parsing engine's node variants one to
// one. They are created once during conversion, are never mutated afterwards,
// and contain no cycles: spans and tokens reference positions in the source
// text, not other nodes. Equality is structural over all fields; the textual
// representation produced by Dump is derived mechanically, so both stay in
// lockstep with the field set by construction.
package ast

import (
	"github.com/alecthomas/repr"
	"golang.org/x/exp/slices"
)

// Directive is the capability interface implemented by every directive
// variant. It is the stable contract for generic, variant-agnostic traversal:
// callers that only need classification, location, or attached metadata never
// have to enumerate concrete types.
type Directive interface {
	// Kind returns the stable classification tag for this variant.
	Kind() Kind
	// Pos returns the position of the directive's first byte.
	Pos() Position
	// End returns the position just past the directive's last byte.
	End() Position
	// Meta returns the attached metadata entries in source order.
	// Variants that cannot carry metadata return nil.
	Meta() []*Metadata
}

// SpanOf returns the full source span of a directive.
func SpanOf(d Directive) Span {
	return Span{Start: d.Pos(), End: d.End()}
}

// node is the embeddable base shared by every directive variant. Span and
// Metadata are exported through field promotion; the accessors satisfy the
// Directive interface.
type node struct {
	Span     Span
	Metadata []*Metadata
}

func (n *node) Pos() Position     { return n.Span.Start }
func (n *node) End() Position     { return n.Span.End }
func (n *node) Meta() []*Metadata { return n.Metadata }

// bareNode is the base for variants that cannot carry metadata
// (option, include, plugin, push/pop directives, comments).
type bareNode struct {
	Span Span
}

func (n *bareNode) Pos() Position     { return n.Span.Start }
func (n *bareNode) End() Position     { return n.Span.End }
func (n *bareNode) Meta() []*Metadata { return nil }

// Directives is an ordered sequence of directives. The converter emits them
// in source order; the order is stable and never re-sorted.
type Directives []Directive

// InSourceOrder reports whether the sequence is non-decreasing in start
// offset, the invariant guaranteed for converter output.
func (d Directives) InSourceOrder() bool {
	for i := 1; i < len(d); i++ {
		if d[i].Pos().Offset < d[i-1].Pos().Offset {
			return false
		}
	}
	return true
}

// OfKind returns the directives matching the given kind, preserving order.
func (d Directives) OfKind(k Kind) Directives {
	var out Directives
	for _, dir := range d {
		if dir.Kind() == k {
			out = append(out, dir)
		}
	}
	return out
}

// SortBySource sorts a manually assembled sequence into source order.
// Converter output is already sorted; this is a no-op for it.
func (d Directives) SortBySource() {
	slices.SortStableFunc(d, func(a, b Directive) int {
		return a.Pos().Offset - b.Pos().Offset
	})
}

// Dump returns a deterministic, human-readable representation of any node in
// this package, suitable for debugging and golden tests. The output is
// derived mechanically from the struct fields, never maintained by hand.
func Dump(v any) string {
	return repr.String(v, repr.Indent("  "), repr.OmitEmpty(true))
}
