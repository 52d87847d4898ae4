package pattern

import "strings"

// matcherKind discriminates the closed set of type matcher variants.
type matcherKind int

const (
	kindExact matcherKind = iota
	kindAny
	kindOneOf
)

// TypeMatcher decides whether a pattern position accepts a graph node's
// operation type. It is a closed tagged variant: Exact, Any, or OneOf.
type TypeMatcher struct {
	kind  matcherKind
	types []string
}

// Exact matches exactly one operation type.
func Exact(opType string) TypeMatcher {
	return TypeMatcher{kind: kindExact, types: []string{opType}}
}

// Any is the wildcard matcher: it accepts every operation type.
func Any() TypeMatcher {
	return TypeMatcher{kind: kindAny}
}

// OneOf matches any of the listed operation types.
func OneOf(opTypes ...string) TypeMatcher {
	return TypeMatcher{kind: kindOneOf, types: append([]string(nil), opTypes...)}
}

// ParseTypes builds a TypeMatcher from the compact string syntax:
// "*" is the wildcard, "A|B|C" an alternation, anything else an exact type.
func ParseTypes(s string) TypeMatcher {
	if s == "*" {
		return Any()
	}
	if strings.ContainsRune(s, '|') {
		return OneOf(strings.Split(s, "|")...)
	}
	return Exact(s)
}

// Accepts reports whether the matcher accepts the operation type.
func (m TypeMatcher) Accepts(opType string) bool {
	switch m.kind {
	case kindAny:
		return true
	case kindExact:
		return m.types[0] == opType
	case kindOneOf:
		for _, t := range m.types {
			if t == opType {
				return true
			}
		}
		return false
	default:
		panic("pattern: unknown type matcher kind")
	}
}

// String renders the matcher in the compact syntax accepted by ParseTypes.
func (m TypeMatcher) String() string {
	switch m.kind {
	case kindAny:
		return "*"
	default:
		return strings.Join(m.types, "|")
	}
}

// Pattern is one node of a structural query tree.
//
// A pattern with no children leaves the matched node's inputs unconstrained;
// otherwise the node must have exactly one input per child pattern, each
// child matching the producer of the corresponding input. Build patterns
// once and reuse them; they must not be mutated after the first match.
type Pattern struct {
	typ      TypeMatcher
	capture  string
	children []*Pattern
	anyOrder bool
}

// NewPattern creates a pattern node from the compact type syntax
// (see ParseTypes).
func NewPattern(types string) *Pattern {
	return &Pattern{typ: ParseTypes(types)}
}

// NewPatternFor creates a pattern node from an explicit TypeMatcher.
func NewPatternFor(m TypeMatcher) *Pattern {
	return &Pattern{typ: m}
}

// Named sets the capture name and returns the pattern for chaining.
// When the same name appears at several positions of one pattern tree, all
// of them must bind the identical graph node for a match to succeed.
func (p *Pattern) Named(name string) *Pattern {
	p.capture = name
	return p
}

// In sets the child patterns and returns the pattern for chaining.
func (p *Pattern) In(children ...*Pattern) *Pattern {
	p.children = children
	return p
}

// AnyOrder declares the children order-independent: the matcher may try
// input permutations. Use for commutative ops whose stored input order is
// not semantically fixed.
func (p *Pattern) AnyOrder() *Pattern {
	p.anyOrder = true
	return p
}

// Type returns the pattern's type matcher.
func (p *Pattern) Type() TypeMatcher { return p.typ }

// Capture returns the capture name, or "" when the position is unnamed.
func (p *Pattern) Capture() string { return p.capture }

// Children returns the child patterns.
func (p *Pattern) Children() []*Pattern { return p.children }

// OrderIndependent reports whether the children may match in any order.
func (p *Pattern) OrderIndependent() bool { return p.anyOrder }
