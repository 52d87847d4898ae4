package rewrite

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/graft-ml/graft/internal/graph"
	"github.com/graft-ml/graft/internal/ops"
	"github.com/graft-ml/graft/internal/pattern"
)

// FusedLSTMOp is the op type of the replacement node a successful rewrite
// splices in.
const FusedLSTMOp = "LSTM"

// CellRewriter runs one motif pass over a graph: it scans anchor candidates,
// matches the cell pattern, extracts weights and layout, and splices a fused
// node per occurrence. The rewriter is the sole mutator of the graph; each
// splice completes atomically before the next anchor is considered.
type CellRewriter struct {
	g    *graph.Graph
	cell CellType
	pat  *pattern.Pattern
	reg  *ops.Registry
	log  *logrus.Entry
}

// Option configures a CellRewriter.
type Option func(*CellRewriter)

// WithRegistry overrides the op-trait registry.
func WithRegistry(reg *ops.Registry) Option {
	return func(r *CellRewriter) { r.reg = reg }
}

// WithLogger overrides the pass logger.
func WithLogger(log *logrus.Entry) Option {
	return func(r *CellRewriter) { r.log = log }
}

// NewCellRewriter creates a rewriter for the given cell type. Cell types
// without a registered pattern (currently GRUCell) are rejected.
func NewCellRewriter(g *graph.Graph, cell CellType, opts ...Option) (*CellRewriter, error) {
	pat, ok := CellPattern(cell)
	if !ok {
		return nil, errors.Errorf("no pattern registered for cell type %s", cell)
	}
	r := &CellRewriter{
		g:    g,
		cell: cell,
		pat:  pat,
		reg:  ops.Default,
		log:  log.WithField("pass", cell.String()),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// NewLSTMRewriter creates the LSTM cell rewriter.
func NewLSTMRewriter(g *graph.Graph, opts ...Option) *CellRewriter {
	r, err := NewCellRewriter(g, LSTMCell, opts...)
	if err != nil {
		panic("rewrite: " + err.Error()) // LSTMCell always has a pattern
	}
	return r
}

// Run scans every anchor candidate once, in deterministic graph order, and
// aggregates the per-anchor outcomes. ErrUnsupportedStructure aborts the
// pass; a motif is either fully spliced or left entirely untouched.
func (r *CellRewriter) Run() (Summary, error) {
	var sum Summary
	// Snapshot: splices remove nodes while we scan.
	for _, n := range r.g.Nodes() {
		if r.g.Node(n.Name) == nil {
			continue // removed by an earlier splice
		}
		if !r.pat.Type().Accepts(n.OpType) {
			continue
		}
		res, err := r.rewriteAt(n)
		if err != nil {
			return sum, errors.Wrapf(err, "anchor %s", n.Name)
		}
		sum.Record(res)
		if res == Fail {
			r.log.Errorf("anchor %s: cell motif present but malformed, not rewritten", n.Name)
		}
	}
	r.log.Debugf("pass done: %d rewritten, %d skipped, %d failed",
		sum.Rewritten, sum.Skipped, sum.Failed)
	return sum, nil
}

// rewriteAt attempts one rewrite rooted at the anchor.
func (r *CellRewriter) rewriteAt(anchor *graph.Node) (Result, error) {
	m, ok := pattern.MatchPattern(r.g, r.pat, anchor)
	if !ok {
		return Skip, nil
	}

	weights, ok := r.resolveWeights(m)
	if !ok {
		return Skip, nil
	}

	props, res, err := r.buildProperties(m, weights)
	if err != nil || res != OK {
		return res, err
	}
	if !props.Valid() {
		return Skip, nil
	}

	r.splice(m, props)
	return OK, nil
}

// resolveWeights resolves the kernel, bias, and forget-gate bias captures.
// Any resolution failure skips the anchor with a diagnostic naming the node.
func (r *CellRewriter) resolveWeights(m *pattern.Match) (CellWeights, bool) {
	var w CellWeights
	for _, entry := range []struct {
		capture string
		dst     *CellWeight
	}{
		{"cell_kernel", &w.Kernel},
		{"cell_bias", &w.Bias},
		{"ft_bias", &w.ForgetBias},
	} {
		n := m.Node(entry.capture)
		val, dtype, err := resolveConstant(r.reg, r.g, n)
		if err != nil {
			r.log.Errorf("weight %s could not be resolved, skip: %v", n.Name, err)
			return w, false
		}
		*entry.dst = CellWeight{Node: n, Value: val, DType: dtype}
	}
	return w, true
}

// buildProperties derives layout, sizes, and initializers from a match.
// It returns OK when a rewrite may proceed, Skip or Fail otherwise;
// ErrUnsupportedStructure propagates as a pass-fatal error.
func (r *CellRewriter) buildProperties(m *pattern.Match, weights CellWeights) (*CellProperties, Result, error) {
	xh := m.Node("xh")
	if len(xh.Inputs) < 2 {
		r.log.Errorf("concat %s has %d inputs, cannot locate x and h, skip", xh.Name, len(xh.Inputs))
		return nil, Skip, nil
	}
	xID, hID := xh.Inputs[0], xh.Inputs[1]

	xProducer := r.g.Producer(xID)
	if xProducer == nil {
		return nil, Skip, nil
	}
	if r.reg.IsReverse(xProducer.OpType) {
		r.log.Errorf("sequence input of %s is reversed by %s, skip", xh.Name, xProducer.Name)
		return nil, Skip, nil
	}

	timeMajor, err := isTimeMajorTranspose(r.reg, r.g, xProducer)
	if err != nil {
		return nil, Fail, err
	}
	seqInput := xID
	if timeMajor {
		seqInput = xProducer.Inputs[0]
	}

	hidden, inputSize, res := r.deriveSizes(weights)
	if res != OK {
		return nil, res, nil
	}

	cInput, ok := r.cellStateInput(m)
	if !ok {
		return nil, Skip, nil
	}

	props := &CellProperties{
		SequenceInput: seqInput,
		TimeMajor:     timeMajor,
		InputSize:     inputSize,
		HiddenSize:    hidden,
		Weights:       weights,
		Initializers:  NewCellInitializers(cInput, hID),
	}
	return props, OK, nil
}

// deriveSizes computes hidden and input sizes from the kernel's row/column
// split across the four concatenated gates. Inconsistency is a Fail: the
// motif is present but its weights are malformed.
func (r *CellRewriter) deriveSizes(weights CellWeights) (hidden, inputSize int, res Result) {
	kShape := weights.Kernel.Value.Shape
	if len(kShape) != 2 {
		r.log.Errorf("kernel %s has shape %v, want a matrix", weights.Kernel.Node.Name, kShape)
		return 0, 0, Fail
	}
	rows, cols := kShape[0], kShape[1]
	if rows%4 != 0 {
		r.log.Errorf("kernel %s has %d rows, not divisible across 4 gates", weights.Kernel.Node.Name, rows)
		return 0, 0, Fail
	}
	hidden = rows / 4
	inputSize = cols - hidden
	if inputSize <= 0 {
		r.log.Errorf("kernel %s shape %v implies non-positive input size", weights.Kernel.Node.Name, kShape)
		return 0, 0, Fail
	}
	if weights.Bias.Value.NumElements() != rows {
		r.log.Errorf("bias %s has %d elements, want %d (4 gates x hidden %d)",
			weights.Bias.Node.Name, weights.Bias.Value.NumElements(), rows, hidden)
		return 0, 0, Fail
	}
	return hidden, inputSize, OK
}

// cellStateInput locates the output id that feeds the previous cell state
// into the forget-gate multiply.
func (r *CellRewriter) cellStateInput(m *pattern.Match) (string, bool) {
	mul := m.Node("forget_mul")
	cPrev := m.Node("c_prev")
	for _, id := range mul.Inputs {
		if r.g.Producer(id) == cPrev {
			return id, true
		}
	}
	r.log.Errorf("cell state producer %s not found among inputs of %s, skip", cPrev.Name, mul.Name)
	return "", false
}

// forgetBiasValue extracts the scalar forget-gate bias.
func (r *CellRewriter) forgetBiasValue(w CellWeight) (float32, bool) {
	vals, err := w.Value.Float32s()
	if err != nil || len(vals) != 1 {
		r.log.Errorf("forget bias %s is not a float scalar", w.Node.Name)
		return 0, false
	}
	return vals[0], true
}

// splice builds the fused node, redirects the motif's external consumers to
// it, and removes the now-orphaned motif interior. Shared nodes (weights or
// intermediates with external consumers) survive.
func (r *CellRewriter) splice(m *pattern.Match, props *CellProperties) {
	attrs := []graph.Attribute{
		{Name: "hidden_size", I: int64(props.HiddenSize)},
		{Name: "input_size", I: int64(props.InputSize)},
	}
	if fb, ok := r.forgetBiasValue(props.Weights.ForgetBias); ok {
		attrs = append(attrs, graph.Attribute{Name: "forget_bias", F: fb})
	}
	if props.TimeMajor {
		attrs = append(attrs, graph.Attribute{Name: "time_major", I: 1})
	}

	inputs := []string{
		props.SequenceInput,
		props.Weights.Kernel.Node.Output(0),
		props.Weights.Bias.Node.Output(0),
	}
	inputs = append(inputs, props.Initializers.Inputs()...)

	fused := r.g.MakeNode(FusedLSTMOp, inputs, attrs, 2)

	ht := m.Node("ht")
	moved := r.g.RedirectConsumers(ht.Output(0), fused.Output(0))
	r.log.Debugf("spliced %s for %s, moved %d consumer edges", fused.Name, ht.Name, moved)

	r.removeOrphaned(m, fused)

	// Splice invariant: no dangling consumer references may survive a
	// completed rewrite. A violation is a programming defect.
	if err := r.g.Check(); err != nil {
		panic("rewrite: splice invariant violated: " + err.Error())
	}
}

// removeOrphaned removes matched nodes that no longer have any consumer,
// iterating to a fixpoint so interior chains unravel from the terminal node
// down. Matched nodes still consumed outside the motif are kept.
func (r *CellRewriter) removeOrphaned(m *pattern.Match, fused *graph.Node) {
	for changed := true; changed; {
		changed = false
		for _, n := range m.Nodes() {
			if n == fused || r.g.Node(n.Name) == nil {
				continue
			}
			if r.g.HasConsumers(n) {
				continue
			}
			if err := r.g.Remove(n.Name); err != nil {
				panic("rewrite: splice invariant violated: " + err.Error())
			}
			changed = true
		}
	}
}
