// Package rewrite provides the motif rewrite passes of the Graft engine.
//
// A pass scans a graph for anchor candidates, matches a cell pattern at
// each, extracts semantic parameters (weights, biases, initial states) from
// matched constant-producing subgraphs, and splices a single fused node in
// place of each occurrence. External consumers keep seeing the same logical
// outputs.
//
// # Example Usage
//
//	r := rewrite.NewLSTMRewriter(g)
//	sum, err := r.Run()
//	if err != nil {
//	    // ErrUnsupportedStructure: a recognized-but-unhandled variant;
//	    // the pass never guesses a default.
//	    log.Fatal(err)
//	}
//	fmt.Printf("%d rewritten, %d skipped, %d failed\n",
//	    sum.Rewritten, sum.Skipped, sum.Failed)
//
// Each anchor yields Skip (motif absent), OK (rewrite applied), or Fail
// (motif present but malformed). A motif is either fully spliced or left
// entirely untouched; re-running a pass over a rewritten region yields Skip.
package rewrite

import (
	"github.com/sirupsen/logrus"

	"github.com/graft-ml/graft/graph"
	internalrewrite "github.com/graft-ml/graft/internal/rewrite"
)

// Result is the tri-state outcome of one rewrite attempt.
type Result = internalrewrite.Result

// Per-anchor outcomes.
const (
	Skip = internalrewrite.Skip
	OK   = internalrewrite.OK
	Fail = internalrewrite.Fail
)

// Summary aggregates per-anchor outcomes into a pass-level result.
type Summary = internalrewrite.Summary

// CellType identifies a recurrent cell motif.
type CellType = internalrewrite.CellType

// Known cell types. GRUCell is a declared extension point without a
// registered pattern.
const (
	LSTMCell = internalrewrite.LSTMCell
	GRUCell  = internalrewrite.GRUCell
)

// CellRewriter runs one motif pass over a graph.
type CellRewriter = internalrewrite.CellRewriter

// Option configures a CellRewriter.
type Option = internalrewrite.Option

// FusedLSTMOp is the op type of the spliced replacement node.
const FusedLSTMOp = internalrewrite.FusedLSTMOp

// Sentinel errors; classify with errors.Is.
var (
	ErrUnresolvedConstant   = internalrewrite.ErrUnresolvedConstant
	ErrUnsupportedStructure = internalrewrite.ErrUnsupportedStructure
)

// WithLogger overrides the pass logger.
func WithLogger(log *logrus.Entry) Option {
	return internalrewrite.WithLogger(log)
}

// NewLSTMRewriter creates the LSTM cell rewriter for g.
func NewLSTMRewriter(g *graph.Graph, opts ...Option) *CellRewriter {
	return internalrewrite.NewLSTMRewriter(g, opts...)
}

// NewCellRewriter creates a rewriter for the given cell type; cell types
// without a registered pattern are rejected.
func NewCellRewriter(g *graph.Graph, cell CellType, opts ...Option) (*CellRewriter, error) {
	return internalrewrite.NewCellRewriter(g, cell, opts...)
}

// ResolveConstant resolves a node to its constant tensor value and element
// type, skipping identity indirections.
func ResolveConstant(g *graph.Graph, n *graph.Node) (*graph.Tensor, graph.DataType, error) {
	return internalrewrite.ResolveConstant(g, n)
}

// LooksLikePermutation reports whether a node evaluates to the given
// constant permutation vector, recognizing the one non-folded concat+range
// form. Unrecognized shapes are ErrUnsupportedStructure.
func LooksLikePermutation(g *graph.Graph, n *graph.Node, want []int64) (bool, error) {
	return internalrewrite.LooksLikePermutation(g, n, want)
}

// IsTimeMajorTranspose reports whether the node feeding a motif is a
// batch/time-swapping transpose.
func IsTimeMajorTranspose(g *graph.Graph, n *graph.Node) (bool, error) {
	return internalrewrite.IsTimeMajorTranspose(g, n)
}
