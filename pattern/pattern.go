// Package pattern provides the structural query language and matcher for
// the Graft rewriting engine.
//
// A pattern is a tree: each node carries a type matcher (exact op type, "*"
// wildcard, or "A|B" alternation), an optional capture name, and an ordered
// list of child patterns constraining the producers of the matched node's
// inputs. Patterns are built once and reused across many match attempts.
//
// # Example Usage
//
//	p := pattern.NewPattern("BiasAdd").In(
//	    pattern.NewPattern("MatMul").In(
//	        pattern.NewPattern("ConcatV2|Concat").Named("xh"),
//	        pattern.NewPattern("*").Named("kernel"),
//	    ),
//	    pattern.NewPattern("*").Named("bias"),
//	)
//
//	m, ok := pattern.MatchPattern(g, p, anchor)
//	if ok {
//	    kernel := m.Node("kernel")
//	    ...
//	}
//
// When one capture name appears at several pattern positions, a match
// succeeds only if every occurrence binds the identical graph node. Mark
// commutative combinations with AnyOrder to let the matcher try input
// permutations; traversal stays fully deterministic.
package pattern

import (
	"github.com/graft-ml/graft/graph"
	internalpattern "github.com/graft-ml/graft/internal/pattern"
)

// Pattern is one node of a structural query tree.
type Pattern = internalpattern.Pattern

// TypeMatcher is the closed tagged variant deciding type acceptance:
// Exact, Any, or OneOf.
type TypeMatcher = internalpattern.TypeMatcher

// Match holds the capture bindings of one successful match attempt.
type Match = internalpattern.Match

// NewPattern creates a pattern node from the compact type syntax:
// "*" is the wildcard, "A|B|C" an alternation, anything else an exact type.
func NewPattern(types string) *Pattern {
	return internalpattern.NewPattern(types)
}

// NewPatternFor creates a pattern node from an explicit TypeMatcher.
func NewPatternFor(m TypeMatcher) *Pattern {
	return internalpattern.NewPatternFor(m)
}

// Exact matches exactly one operation type.
func Exact(opType string) TypeMatcher {
	return internalpattern.Exact(opType)
}

// Any is the wildcard matcher accepting every operation type.
func Any() TypeMatcher {
	return internalpattern.Any()
}

// OneOf matches any of the listed operation types.
func OneOf(opTypes ...string) TypeMatcher {
	return internalpattern.OneOf(opTypes...)
}

// ParseTypes builds a TypeMatcher from the compact string syntax.
func ParseTypes(s string) TypeMatcher {
	return internalpattern.ParseTypes(s)
}

// MatchPattern attempts to match the pattern tree rooted at anchor. It
// returns (nil, false) when the structure does not conform; structural
// non-conformance is never an error.
func MatchPattern(g *graph.Graph, p *Pattern, anchor *graph.Node) (*Match, bool) {
	return internalpattern.MatchPattern(g, p, anchor)
}
