package pattern

import (
	"sort"

	"github.com/graft-ml/graft/internal/graph"
)

// Match is the result of one successful match attempt: the capture bindings
// plus the full set of graph nodes the pattern touched (the motif membership
// a later splice needs).
type Match struct {
	captures map[string]*graph.Node
	matched  map[string]*graph.Node
}

// Node returns the graph node bound to a capture name, or nil.
func (m *Match) Node(name string) *graph.Node {
	return m.captures[name]
}

// Captures returns the capture names in sorted order.
func (m *Match) Captures() []string {
	names := make([]string, 0, len(m.captures))
	for name := range m.captures {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Contains reports whether the named graph node was part of the match.
func (m *Match) Contains(nodeName string) bool {
	_, ok := m.matched[nodeName]
	return ok
}

// Nodes returns every matched graph node, sorted by name.
func (m *Match) Nodes() []*graph.Node {
	names := make([]string, 0, len(m.matched))
	for name := range m.matched {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]*graph.Node, len(names))
	for i, name := range names {
		out[i] = m.matched[name]
	}
	return out
}

// trailEntry records one map insertion so a failed sub-attempt can be
// rolled back.
type trailEntry struct {
	key     string
	capture bool
}

// matchState is the in-progress state of a single match attempt.
type matchState struct {
	g     *graph.Graph
	m     *Match
	trail []trailEntry
}

// MatchPattern attempts to match the pattern tree rooted at anchor.
// It returns (match, true) on success and (nil, false) when the structure
// does not conform; structural non-conformance is never an error.
//
// Matching is deterministic: child traversal is in input order and, for
// order-independent pattern nodes, input permutations are tried in
// lexicographic index order, the first fully matching one winning.
func MatchPattern(g *graph.Graph, p *Pattern, anchor *graph.Node) (*Match, bool) {
	if p == nil || anchor == nil {
		return nil, false
	}
	st := &matchState{
		g: g,
		m: &Match{
			captures: make(map[string]*graph.Node),
			matched:  make(map[string]*graph.Node),
		},
	}
	if !st.matchNode(p, anchor) {
		return nil, false
	}
	return st.m, true
}

// matchNode matches a single pattern node against a graph node, recursing
// into children. On failure all bindings made by this call are undone.
func (st *matchState) matchNode(p *Pattern, n *graph.Node) bool {
	if !p.typ.Accepts(n.OpType) {
		return false
	}
	mark := len(st.trail)

	if p.capture != "" {
		if bound, ok := st.m.captures[p.capture]; ok {
			// Binding-consistency invariant: the same capture name must
			// resolve to the identical node, not a lookalike.
			if bound != n {
				return false
			}
		} else {
			st.m.captures[p.capture] = n
			st.trail = append(st.trail, trailEntry{key: p.capture, capture: true})
		}
	}
	if _, ok := st.m.matched[n.Name]; !ok {
		st.m.matched[n.Name] = n
		st.trail = append(st.trail, trailEntry{key: n.Name})
	}

	if len(p.children) == 0 {
		return true // Inputs unconstrained.
	}
	if len(n.Inputs) != len(p.children) {
		st.rollback(mark)
		return false
	}

	if !p.anyOrder {
		for i, child := range p.children {
			producer := st.g.ProducerOfInput(n, i)
			if producer == nil || !st.matchNode(child, producer) {
				st.rollback(mark)
				return false
			}
		}
		return true
	}

	for _, perm := range permutations(len(p.children)) {
		sub := len(st.trail)
		ok := true
		for i, child := range p.children {
			producer := st.g.ProducerOfInput(n, perm[i])
			if producer == nil || !st.matchNode(child, producer) {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
		st.rollback(sub)
	}
	st.rollback(mark)
	return false
}

// rollback undoes bindings recorded after the given trail mark.
func (st *matchState) rollback(mark int) {
	for i := len(st.trail) - 1; i >= mark; i-- {
		e := st.trail[i]
		if e.capture {
			delete(st.m.captures, e.key)
		} else {
			delete(st.m.matched, e.key)
		}
	}
	st.trail = st.trail[:mark]
}

// permutations returns all permutations of 0..n-1 in lexicographic order.
func permutations(n int) [][]int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	var out [][]int
	var build func(prefix []int, rest []int)
	build = func(prefix []int, rest []int) {
		if len(rest) == 0 {
			out = append(out, append([]int(nil), prefix...))
			return
		}
		for i, v := range rest {
			next := make([]int, 0, len(rest)-1)
			next = append(next, rest[:i]...)
			next = append(next, rest[i+1:]...)
			grown := make([]int, len(prefix)+1)
			copy(grown, prefix)
			grown[len(prefix)] = v
			build(grown, next)
		}
	}
	build(nil, idx)
	return out
}
