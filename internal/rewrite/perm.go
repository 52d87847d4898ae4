package rewrite

import (
	"github.com/pkg/errors"

	"github.com/graft-ml/graft/internal/graph"
	"github.com/graft-ml/graft/internal/ops"
)

// timeMajorPerm is the transpose permutation that swaps batch and time axes
// of a rank-3 sequence tensor.
var timeMajorPerm = []int64{1, 0, 2}

// LooksLikePermutation reports whether node evaluates to the given constant
// permutation vector. A directly resolvable constant is compared as-is. The
// one recognized non-folded form is a two-operand concatenation of the
// constant prefix [1, 0] with a Range(2, 3, 1) node, which always evaluates
// to [1, 0, 2]. Every other shape is ErrUnsupportedStructure: callers must
// not guess a permutation.
func LooksLikePermutation(g *graph.Graph, n *graph.Node, want []int64) (bool, error) {
	return looksLikePermutation(ops.Default, g, n, want)
}

func looksLikePermutation(reg *ops.Registry, g *graph.Graph, n *graph.Node, want []int64) (bool, error) {
	if vals, err := constInts(reg, g, n); err == nil {
		return int64sEqual(vals, want), nil
	}
	derived, err := unfoldedPerm(reg, g, n)
	if err != nil {
		return false, err
	}
	return int64sEqual(derived, want), nil
}

// unfoldedPerm recognizes the concat+range construction of [1, 0, 2] that
// upstream constant folding sometimes leaves behind. Anything else raises:
// returning a guessed permutation would silently corrupt sequence ordering.
func unfoldedPerm(reg *ops.Registry, g *graph.Graph, n *graph.Node) ([]int64, error) {
	if (n.OpType != "ConcatV2" && n.OpType != "Concat") || len(n.Inputs) != 3 {
		return nil, errors.Wrapf(ErrUnsupportedStructure,
			"node %s: permutation producer is %s with %d inputs, want a two-operand concat or a constant",
			n.Name, n.OpType, len(n.Inputs))
	}

	prefixNode := g.ProducerOfInput(n, 0)
	if prefixNode == nil {
		return nil, errors.Wrapf(ErrUnsupportedStructure, "node %s: missing concat operand", n.Name)
	}
	prefix, err := constInts(reg, g, prefixNode)
	if err != nil {
		return nil, errors.Wrapf(ErrUnsupportedStructure, "node %s: concat prefix is not constant", n.Name)
	}
	if !int64sEqual(prefix, []int64{1, 0}) {
		return nil, errors.Wrapf(ErrUnsupportedStructure,
			"node %s: concat prefix is %v, want [1 0]", n.Name, prefix)
	}

	rangeNode := g.ProducerOfInput(n, 1)
	if rangeNode == nil || rangeNode.OpType != "Range" || len(rangeNode.Inputs) != 3 {
		return nil, errors.Wrapf(ErrUnsupportedStructure,
			"node %s: second concat operand is not a range generator", n.Name)
	}
	var bounds [3]int64
	for i := range bounds {
		v, err := constScalarInt(reg, g, g.ProducerOfInput(rangeNode, i))
		if err != nil {
			return nil, errors.Wrapf(ErrUnsupportedStructure,
				"range node %s input %d is not a constant scalar", rangeNode.Name, i)
		}
		bounds[i] = v
	}
	if bounds != [3]int64{2, 3, 1} {
		return nil, errors.Wrapf(ErrUnsupportedStructure,
			"range node %s has bounds %v, the only recognized form is (2, 3, 1)", rangeNode.Name, bounds)
	}

	// Range(2, 3, 1) yields the single value 2, so the concat evaluates to
	// the fixed permutation below.
	return []int64{1, 0, 2}, nil
}

// IsTimeMajorTranspose inspects the node feeding the motif from outside.
// A transpose carrying the [1, 0, 2] permutation (folded or not) asserts a
// time-major layout; a non-transpose implies batch-major. A transpose with
// any other permutation is ErrUnsupportedStructure, fatal to the pass.
func IsTimeMajorTranspose(g *graph.Graph, n *graph.Node) (bool, error) {
	return isTimeMajorTranspose(ops.Default, g, n)
}

func isTimeMajorTranspose(reg *ops.Registry, g *graph.Graph, n *graph.Node) (bool, error) {
	if n == nil || n.OpType != "Transpose" {
		return false, nil
	}
	// The permutation is the transpose's second input.
	permNode := g.ProducerOfInput(n, 1)
	if permNode == nil {
		return false, errors.Wrapf(ErrUnsupportedStructure, "transpose %s has no permutation input", n.Name)
	}
	ok, err := looksLikePermutation(reg, g, permNode, timeMajorPerm)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, errors.Wrapf(ErrUnsupportedStructure,
			"transpose %s: unsupported permutation, want %v", n.Name, timeMajorPerm)
	}
	return true, nil
}

func int64sEqual(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
