package rewrite

import (
	"github.com/graft-ml/graft/internal/graph"
	"github.com/graft-ml/graft/internal/pattern"
)

// CellType identifies a recurrent cell motif.
type CellType int

const (
	// LSTMCell covers both the plain and the "basic" LSTM cell variants;
	// they share one computation graph shape.
	LSTMCell CellType = iota
	// GRUCell is a declared extension point: no pattern is registered for
	// it yet and its structure is deliberately not inferred from the LSTM
	// motif.
	GRUCell
)

// String returns the cell type name.
func (c CellType) String() string {
	switch c {
	case LSTMCell:
		return "LSTMCell"
	case GRUCell:
		return "GRUCell"
	default:
		return "UnknownCell"
	}
}

// newXCPattern builds the shared gate-input sub-pattern: the four gate
// computations all read one Split of a bias-added matrix multiply over the
// concatenated [x, h] input. The same *Pattern value is referenced from all
// four gate positions; capture-binding consistency then enforces that every
// gate reads the identical Split node.
func newXCPattern() *pattern.Pattern {
	return pattern.NewPattern("Split").In(
		pattern.NewPattern("Const"), // split axis
		pattern.NewPattern("BiasAdd").Named("bias_add").In(
			pattern.NewPattern("MatMul").In(
				pattern.NewPattern("ConcatV2|Concat").Named("xh"),
				pattern.NewPattern("*").Named("cell_kernel"),
			),
			pattern.NewPattern("*").Named("cell_bias"),
		),
	)
}

// newLSTMCellPattern builds the full LSTM cell gate-equation pattern:
//
//	ht = sigmoid(ot) * tanh(ct)
//	ct = sigmoid(ft + ft_bias) * c_prev + sigmoid(it) * tanh(gt)
//
// with ot/ft/it/gt all split from the shared xc sub-pattern. Additive and
// multiplicative combinations are order-independent.
func newLSTMCellPattern() *pattern.Pattern {
	xc := newXCPattern()
	return pattern.NewPattern("Mul").Named("ht").AnyOrder().In(
		pattern.NewPattern("Sigmoid").Named("ot").In(xc),
		pattern.NewPattern("Tanh").In(
			pattern.NewPattern("Add").Named("ct").AnyOrder().In(
				pattern.NewPattern("Mul").Named("forget_mul").AnyOrder().In(
					pattern.NewPattern("Sigmoid").Named("ft").In(
						pattern.NewPattern("Add").AnyOrder().In(
							xc,
							pattern.NewPattern("*").Named("ft_bias"),
						),
					),
					pattern.NewPattern("*").Named("c_prev"),
				),
				pattern.NewPattern("Mul").AnyOrder().In(
					pattern.NewPattern("Sigmoid").Named("it").In(xc),
					pattern.NewPattern("Tanh").Named("gt").In(xc),
				),
			),
		),
	)
}

// cellPatterns maps each cell type to its match pattern. A nil entry marks a
// declared-but-unimplemented cell.
var cellPatterns = map[CellType]*pattern.Pattern{
	LSTMCell: newLSTMCellPattern(),
	GRUCell:  nil,
}

// CellPattern returns the match pattern for a cell type. The second return
// is false for cell types without a registered pattern.
func CellPattern(c CellType) (*pattern.Pattern, bool) {
	p, ok := cellPatterns[c]
	return p, ok && p != nil
}

// CellWeight is a resolved weight: the node the motif referenced, its
// constant value, and the element type from the type-mapping table.
type CellWeight struct {
	Node  *graph.Node
	Value *graph.Tensor
	DType graph.DataType
}

// CellWeights carries the three constants an LSTM cell rewrite extracts.
type CellWeights struct {
	Kernel     CellWeight
	Bias       CellWeight
	ForgetBias CellWeight
}

// CellInitializers carries the initial-state inputs of a matched cell:
// either one shared initializer feeding both states, or separate cell and
// hidden initializers.
type CellInitializers struct {
	Shared      bool
	SharedInput string // output id, when Shared
	CInput      string // cell-state output id, when split
	HInput      string // hidden-state output id, when split
}

// NewCellInitializers classifies the two state inputs: identical ids mean a
// single shared initializer.
func NewCellInitializers(cInput, hInput string) CellInitializers {
	if cInput == hInput {
		return CellInitializers{Shared: true, SharedInput: cInput}
	}
	return CellInitializers{CInput: cInput, HInput: hInput}
}

// Inputs returns the initializer output ids in fused-node input order.
func (ci CellInitializers) Inputs() []string {
	if ci.Shared {
		return []string{ci.SharedInput}
	}
	return []string{ci.CInput, ci.HInput}
}

// CellProperties is the per-match intermediate state consumed by the fused
// node construction.
type CellProperties struct {
	SequenceInput string // output id feeding the motif from outside
	TimeMajor     bool
	InputSize     int
	HiddenSize    int
	Weights       CellWeights
	Initializers  CellInitializers
}

// Valid reports whether the properties are complete enough to rewrite.
func (p *CellProperties) Valid() bool {
	if p.SequenceInput == "" {
		log.Error("no external input found for current cell, skip")
		return false
	}
	return true
}
