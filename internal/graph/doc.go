// Package graph provides the dataflow graph model the rest of the engine
// queries and mutates.
//
// A Graph owns a set of typed operation Nodes. Each node has a unique name,
// an op-type tag (e.g. "MatMul", "Const", "Identity"), an ordered list of
// input references ("producer:port" output ids), named attributes, and, for
// constant-producing nodes, an embedded materialized Tensor.
//
// Key components:
//   - Node: single operation with ordered inputs and attributes
//   - Graph: arena of nodes plus output-id -> consumer edge bookkeeping
//   - Tensor: constant payload (element type + shape + data)
//   - NameGen: fresh, collision-free node name generation
//
// Input order is semantically significant: the graph never reorders inputs.
// Commutativity is a property of individual op types and is handled by the
// pattern matcher, not by the graph model.
package graph
