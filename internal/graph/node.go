package graph

import (
	"fmt"
	"strconv"
	"strings"
)

// Attribute represents a typed node attribute. Exactly one payload field is
// meaningful for a given attribute; callers use the typed getters on Node.
type Attribute struct {
	Name   string
	I      int64
	F      float32
	S      string
	Ints   []int64
	Floats []float32
	T      *Tensor
}

// Node represents a single operation in the graph.
//
// Inputs are ordered output ids of the form "producer:port"; that order is
// semantically significant and is never reordered by the graph model.
type Node struct {
	Name    string               // Unique within the owning graph
	OpType  string               // Operation type tag (e.g. "MatMul", "Const")
	Inputs  []string             // Ordered input output-ids
	Outputs []string             // Output ids, "name:0" .. "name:n-1"
	Attrs   map[string]Attribute // Named attributes
	Value   *Tensor              // Embedded constant, for constant-bearing ops
}

// NewNode creates a node with output ids derived from its name.
func NewNode(name, opType string, inputs []string, outputCount int) *Node {
	outputs := make([]string, outputCount)
	for i := range outputs {
		outputs[i] = name + ":" + strconv.Itoa(i)
	}
	return &Node{
		Name:    name,
		OpType:  opType,
		Inputs:  append([]string(nil), inputs...),
		Outputs: outputs,
		Attrs:   make(map[string]Attribute),
	}
}

// Output returns the output id for the given port.
func (n *Node) Output(port int) string {
	return n.Outputs[port]
}

// SetAttr stores an attribute, keyed by its name.
func (n *Node) SetAttr(a Attribute) {
	if n.Attrs == nil {
		n.Attrs = make(map[string]Attribute)
	}
	n.Attrs[a.Name] = a
}

// AttrInt returns an integer attribute or the default value.
func (n *Node) AttrInt(name string, defaultVal int64) int64 {
	if a, ok := n.Attrs[name]; ok {
		return a.I
	}
	return defaultVal
}

// AttrFloat returns a float attribute or the default value.
func (n *Node) AttrFloat(name string, defaultVal float32) float32 {
	if a, ok := n.Attrs[name]; ok {
		return a.F
	}
	return defaultVal
}

// AttrString returns a string attribute or the default value.
func (n *Node) AttrString(name, defaultVal string) string {
	if a, ok := n.Attrs[name]; ok {
		return a.S
	}
	return defaultVal
}

// AttrInts returns an integer array attribute, or nil when absent.
func (n *Node) AttrInts(name string) []int64 {
	if a, ok := n.Attrs[name]; ok {
		return a.Ints
	}
	return nil
}

// AttrTensor returns a tensor attribute, or nil when absent.
func (n *Node) AttrTensor(name string) *Tensor {
	if a, ok := n.Attrs[name]; ok {
		return a.T
	}
	return nil
}

// String returns a short description for diagnostics.
func (n *Node) String() string {
	return fmt.Sprintf("%s(%s)", n.Name, n.OpType)
}

// SplitOutputID splits an output id into producer name and port.
// An id without an explicit port refers to port 0.
func SplitOutputID(id string) (name string, port int, err error) {
	idx := strings.LastIndexByte(id, ':')
	if idx < 0 {
		return id, 0, nil
	}
	port, err = strconv.Atoi(id[idx+1:])
	if err != nil {
		return "", 0, fmt.Errorf("malformed output id %q: %w", id, err)
	}
	return id[:idx], port, nil
}
