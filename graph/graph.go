// Package graph provides the dataflow graph model for the Graft rewriting
// engine.
//
// A Graph is an arena of typed operation nodes with ordered inputs, named
// attributes, and, for constant-producing nodes, embedded materialized
// tensors. The graph maintains output-id -> consumer bookkeeping so rewrite
// passes can redirect and remove nodes without dangling references.
//
// # Example Usage
//
//	import "github.com/graft-ml/graft/graph"
//
//	g := graph.New(nil)
//
//	w := graph.NewNode("w", "Const", nil, 1)
//	w.Value, _ = graph.NewFloatTensor(graph.Shape{8, 4}, kernelData)
//	if err := g.Add(w); err != nil {
//	    log.Fatal(err)
//	}
//
//	mm := graph.NewNode("mm", "MatMul", []string{"x:0", "w:0"}, 1)
//	_ = g.Add(mm)
//
//	// Consumer edges are tracked per output id.
//	edges := g.Consumers("w:0") // -> [{mm 1}]
//
// The graph must stay acyclic; Check verifies that plus the absence of
// dangling input references.
package graph

import (
	internalgraph "github.com/graft-ml/graft/internal/graph"
)

// Graph is an arena of nodes with consumer-edge bookkeeping.
type Graph = internalgraph.Graph

// Node is a single operation with ordered inputs and attributes.
type Node = internalgraph.Node

// Edge identifies one consumer of an output id.
type Edge = internalgraph.Edge

// Attribute is a typed node attribute.
type Attribute = internalgraph.Attribute

// Tensor is a materialized constant payload.
type Tensor = internalgraph.Tensor

// Shape represents tensor dimensions.
type Shape = internalgraph.Shape

// DataType represents runtime element type information.
type DataType = internalgraph.DataType

// Supported element types.
const (
	Float32 = internalgraph.Float32
	Float64 = internalgraph.Float64
	Int32   = internalgraph.Int32
	Int64   = internalgraph.Int64
	Uint8   = internalgraph.Uint8
	Bool    = internalgraph.Bool
)

// Wire-format element type codes, as declared on constant nodes by the
// import collaborator.
const (
	ProtoFloat  = internalgraph.ProtoFloat
	ProtoDouble = internalgraph.ProtoDouble
	ProtoInt32  = internalgraph.ProtoInt32
	ProtoInt64  = internalgraph.ProtoInt64
	ProtoUint8  = internalgraph.ProtoUint8
	ProtoBool   = internalgraph.ProtoBool
)

// NameGen produces fresh node identifiers.
type NameGen = internalgraph.NameGen

// New creates an empty graph. A nil NameGen selects the UUID default.
func New(namegen NameGen) *Graph {
	return internalgraph.New(namegen)
}

// NewNode creates a node with output ids derived from its name.
func NewNode(name, opType string, inputs []string, outputCount int) *Node {
	return internalgraph.NewNode(name, opType, inputs, outputCount)
}

// NewFloatTensor creates a float32 constant tensor.
func NewFloatTensor(shape Shape, data []float32) (*Tensor, error) {
	return internalgraph.NewFloatTensor(shape, data)
}

// NewIntTensor creates an int64 constant tensor.
func NewIntTensor(shape Shape, data []int64) (*Tensor, error) {
	return internalgraph.NewIntTensor(shape, data)
}

// NewNameGen returns the default UUID-backed name generator.
func NewNameGen() NameGen {
	return internalgraph.NewNameGen()
}

// NewSequentialNameGen returns a deterministic per-prefix counter generator,
// useful in tests and reproducible pipelines.
func NewSequentialNameGen() *internalgraph.SequentialNameGen {
	return internalgraph.NewSequentialNameGen()
}

// DataTypeFromProto translates a wire-format element type code through the
// fixed type-mapping table.
func DataTypeFromProto(code int64) (DataType, error) {
	return internalgraph.DataTypeFromProto(code)
}
