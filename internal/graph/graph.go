package graph

import (
	"github.com/pkg/errors"
)

// Edge identifies one consumer of an output id: the consuming node and the
// position in its input list.
type Edge struct {
	Node  *Node
	Index int
}

// Graph is an arena of nodes addressed by name, with incrementally maintained
// output-id -> producer and output-id -> consumer-edge mappings.
//
// The graph must stay acyclic; Check verifies that plus the absence of
// dangling input references.
type Graph struct {
	nodes     map[string]*Node
	order     []string // insertion order, drives deterministic enumeration
	producers map[string]*Node
	consumers map[string][]Edge
	namegen   NameGen
}

// New creates an empty graph. A nil namegen falls back to the UUID default.
func New(namegen NameGen) *Graph {
	if namegen == nil {
		namegen = NewNameGen()
	}
	return &Graph{
		nodes:     make(map[string]*Node),
		producers: make(map[string]*Node),
		consumers: make(map[string][]Edge),
		namegen:   namegen,
	}
}

// Add inserts a node into the graph. Input references may point at producers
// added later; Check validates the finished graph.
func (g *Graph) Add(n *Node) error {
	if _, ok := g.nodes[n.Name]; ok {
		return errors.Errorf("duplicate node name %q", n.Name)
	}
	for _, out := range n.Outputs {
		if _, ok := g.producers[out]; ok {
			return errors.Errorf("duplicate output id %q", out)
		}
	}
	g.nodes[n.Name] = n
	g.order = append(g.order, n.Name)
	for _, out := range n.Outputs {
		g.producers[out] = n
	}
	for i, in := range n.Inputs {
		g.consumers[in] = append(g.consumers[in], Edge{Node: n, Index: i})
	}
	return nil
}

// MakeNode creates a node with a fresh collision-free name, inserts it, and
// returns it.
func (g *Graph) MakeNode(opType string, inputs []string, attrs []Attribute, outputCount int) *Node {
	name := g.namegen.Make(opType)
	for {
		if _, taken := g.nodes[name]; !taken {
			break
		}
		name = g.namegen.Make(opType)
	}
	n := NewNode(name, opType, inputs, outputCount)
	for _, a := range attrs {
		n.SetAttr(a)
	}
	// Name is fresh, Add cannot fail.
	if err := g.Add(n); err != nil {
		panic("graph: " + err.Error())
	}
	return n
}

// Node returns the node with the given name, or nil.
func (g *Graph) Node(name string) *Node {
	return g.nodes[name]
}

// Len returns the number of nodes in the graph.
func (g *Graph) Len() int {
	return len(g.order)
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, 0, len(g.order))
	for _, name := range g.order {
		out = append(out, g.nodes[name])
	}
	return out
}

// Producer returns the node producing the given output id, or nil.
func (g *Graph) Producer(outputID string) *Node {
	if n, ok := g.producers[outputID]; ok {
		return n
	}
	// An id without an explicit port refers to port 0.
	name, port, err := SplitOutputID(outputID)
	if err != nil {
		return nil
	}
	if n, ok := g.nodes[name]; ok && port < len(n.Outputs) {
		return n
	}
	return nil
}

// ProducerOfInput returns the node feeding input i of n, or nil.
func (g *Graph) ProducerOfInput(n *Node, i int) *Node {
	if i < 0 || i >= len(n.Inputs) {
		return nil
	}
	return g.Producer(n.Inputs[i])
}

// Consumers returns the consumer edges of an output id, in a stable order.
func (g *Graph) Consumers(outputID string) []Edge {
	edges := g.consumers[outputID]
	out := make([]Edge, len(edges))
	copy(out, edges)
	return out
}

// HasConsumers reports whether any output of n is consumed.
func (g *Graph) HasConsumers(n *Node) bool {
	for _, out := range n.Outputs {
		if len(g.consumers[out]) > 0 {
			return true
		}
	}
	return false
}

// ReplaceInput repoints input i of n to a new output id, keeping the
// consumer bookkeeping consistent.
func (g *Graph) ReplaceInput(n *Node, i int, newID string) error {
	if i < 0 || i >= len(n.Inputs) {
		return errors.Errorf("node %s has no input %d", n.Name, i)
	}
	oldID := n.Inputs[i]
	if oldID == newID {
		return nil
	}
	g.dropConsumerEdge(oldID, n, i)
	n.Inputs[i] = newID
	g.consumers[newID] = append(g.consumers[newID], Edge{Node: n, Index: i})
	return nil
}

// RedirectConsumers repoints every consumer of oldID to newID and returns the
// number of edges moved.
func (g *Graph) RedirectConsumers(oldID, newID string) int {
	edges := g.Consumers(oldID)
	for _, e := range edges {
		// ReplaceInput cannot fail here: the edge index came from the
		// consumer bookkeeping itself.
		if err := g.ReplaceInput(e.Node, e.Index, newID); err != nil {
			panic("graph: " + err.Error())
		}
	}
	return len(edges)
}

// Remove deletes a node. Removing a node that still has live consumers is
// illegal; redirect them first.
func (g *Graph) Remove(name string) error {
	n, ok := g.nodes[name]
	if !ok {
		return errors.Errorf("no node named %q", name)
	}
	if g.HasConsumers(n) {
		return errors.Errorf("node %q still has consumers", name)
	}
	for i, in := range n.Inputs {
		g.dropConsumerEdge(in, n, i)
	}
	for _, out := range n.Outputs {
		delete(g.producers, out)
		delete(g.consumers, out)
	}
	delete(g.nodes, name)
	for i, nm := range g.order {
		if nm == name {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}
	return nil
}

func (g *Graph) dropConsumerEdge(outputID string, n *Node, index int) {
	edges := g.consumers[outputID]
	for i, e := range edges {
		if e.Node == n && e.Index == index {
			g.consumers[outputID] = append(edges[:i], edges[i+1:]...)
			return
		}
	}
}

// Check verifies graph consistency: every input of every node references an
// output some node in the graph produces, and the graph is acyclic.
func (g *Graph) Check() error {
	for _, name := range g.order {
		n := g.nodes[name]
		for i, in := range n.Inputs {
			if g.Producer(in) == nil {
				return errors.Errorf("node %s input %d references unknown output %q", n.Name, i, in)
			}
		}
	}
	if g.HasCycle() {
		return errors.New("graph contains a cycle")
	}
	return nil
}

// HasCycle reports whether the graph contains a directed cycle.
func (g *Graph) HasCycle() bool {
	const (
		unvisited = 0
		visiting  = 1
		done      = 2
	)
	state := make(map[string]int, len(g.nodes))

	var visit func(n *Node) bool
	visit = func(n *Node) bool {
		switch state[n.Name] {
		case visiting:
			return true
		case done:
			return false
		}
		state[n.Name] = visiting
		for i := range n.Inputs {
			if p := g.ProducerOfInput(n, i); p != nil && visit(p) {
				return true
			}
		}
		state[n.Name] = done
		return false
	}

	for _, name := range g.order {
		if visit(g.nodes[name]) {
			return true
		}
	}
	return false
}
