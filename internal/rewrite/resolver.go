package rewrite

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/graft-ml/graft/internal/graph"
	"github.com/graft-ml/graft/internal/ops"
)

var log = logrus.WithField("component", "rewrite")

// ResolveConstant resolves a node to its constant tensor value and element
// type, transparently skipping pass-through (Identity) indirections. The
// element type comes from the producer's declared dtype attribute, translated
// through the fixed type-mapping table.
//
// Resolution failure is a non-fatal condition (ErrUnresolvedConstant);
// callers skip the current motif.
func ResolveConstant(g *graph.Graph, n *graph.Node) (*graph.Tensor, graph.DataType, error) {
	return resolveConstant(ops.Default, g, n)
}

func resolveConstant(reg *ops.Registry, g *graph.Graph, n *graph.Node) (*graph.Tensor, graph.DataType, error) {
	cur := n
	// The graph is acyclic, so the chain terminates; the hop limit is a
	// defensive guard only.
	for hops := g.Len() + 1; reg.IsPassThrough(cur.OpType); hops-- {
		if hops <= 0 {
			return nil, 0, errors.Wrapf(ErrUnresolvedConstant, "identity chain from %s did not terminate", n.Name)
		}
		next := g.ProducerOfInput(cur, 0)
		if next == nil {
			return nil, 0, errors.Wrapf(ErrUnresolvedConstant, "identity chain broken at %s", cur.Name)
		}
		cur = next
	}

	if !reg.IsConstant(cur.OpType) {
		return nil, 0, errors.Wrapf(ErrUnresolvedConstant, "node %s has type %s", cur.Name, cur.OpType)
	}
	val := cur.Value
	if val == nil {
		val = cur.AttrTensor("value")
	}
	if val == nil {
		return nil, 0, errors.Wrapf(ErrUnresolvedConstant, "constant node %s carries no tensor", cur.Name)
	}

	dtype, err := graph.DataTypeFromProto(cur.AttrInt("dtype", val.DType.ProtoCode()))
	if err != nil {
		return nil, 0, errors.Wrapf(ErrUnresolvedConstant, "node %s: %v", cur.Name, err)
	}
	log.Debugf("resolved constant %s via %s", cur.Name, n.Name)
	return val, dtype, nil
}

// constInts resolves a node to an int64 vector.
func constInts(reg *ops.Registry, g *graph.Graph, n *graph.Node) ([]int64, error) {
	val, _, err := resolveConstant(reg, g, n)
	if err != nil {
		return nil, err
	}
	ints, err := val.Int64s()
	if err != nil {
		return nil, errors.Wrapf(ErrUnresolvedConstant, "node %s: %v", n.Name, err)
	}
	return ints, nil
}

// constScalarInt resolves a node to a single int64 value. Both scalar and
// one-element vector encodings are accepted.
func constScalarInt(reg *ops.Registry, g *graph.Graph, n *graph.Node) (int64, error) {
	ints, err := constInts(reg, g, n)
	if err != nil {
		return 0, err
	}
	if len(ints) != 1 {
		return 0, errors.Wrapf(ErrUnresolvedConstant, "node %s: expected scalar, got %d elements", n.Name, len(ints))
	}
	return ints[0], nil
}
