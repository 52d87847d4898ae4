// Package pattern implements the tree-structured query language and the
// structural matcher used to find motifs in a dataflow graph.
//
// A Pattern node carries a type matcher (exact op type, wildcard, or
// alternation), an optional capture name, and an ordered list of child
// patterns constraining the producers of the node's inputs. Patterns are
// built once and matched many times; they are not mutated after construction.
//
// Example (a bias-added matrix multiply, capturing the weight producer):
//
//	p := pattern.NewPattern("BiasAdd").In(
//	    pattern.NewPattern("MatMul").In(
//	        pattern.NewPattern("*").Named("x"),
//	        pattern.NewPattern("*").Named("w"),
//	    ),
//	    pattern.NewPattern("*").Named("b"),
//	)
//
//	if m, ok := pattern.MatchPattern(g, p, anchor); ok {
//	    weight := m.Node("w")
//	    ...
//	}
package pattern
