package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graft-ml/graft/internal/graph"
)

func addNode(t *testing.T, g *graph.Graph, name, opType string, inputs ...string) *graph.Node {
	t.Helper()
	n := graph.NewNode(name, opType, inputs, 1)
	require.NoError(t, g.Add(n))
	return n
}

func TestTypeMatcherWildcard(t *testing.T) {
	m := ParseTypes("*")
	for _, op := range []string{"MatMul", "Const", "SomethingExotic", ""} {
		assert.True(t, m.Accepts(op), "wildcard should accept %q", op)
	}
	assert.Equal(t, "*", m.String())
}

func TestTypeMatcherAlternation(t *testing.T) {
	m := ParseTypes("ConcatV2|Concat")
	assert.True(t, m.Accepts("ConcatV2"))
	assert.True(t, m.Accepts("Concat"))
	assert.False(t, m.Accepts("Split"))
	assert.False(t, m.Accepts("Concat3"))
	assert.Equal(t, "ConcatV2|Concat", m.String())
}

func TestTypeMatcherExact(t *testing.T) {
	m := ParseTypes("MatMul")
	assert.True(t, m.Accepts("MatMul"))
	assert.False(t, m.Accepts("matmul"))
}

func TestMatchSimpleTree(t *testing.T) {
	g := graph.New(nil)
	addNode(t, g, "x", "Placeholder")
	addNode(t, g, "w", "Const")
	addNode(t, g, "mm", "MatMul", "x:0", "w:0")
	addNode(t, g, "b", "Const")
	ba := addNode(t, g, "ba", "BiasAdd", "mm:0", "b:0")

	p := NewPattern("BiasAdd").In(
		NewPattern("MatMul").In(
			NewPattern("*").Named("x"),
			NewPattern("*").Named("w"),
		),
		NewPattern("Const").Named("b"),
	)

	m, ok := MatchPattern(g, p, ba)
	require.True(t, ok)
	assert.Equal(t, "x", m.Node("x").Name)
	assert.Equal(t, "w", m.Node("w").Name)
	assert.Equal(t, "b", m.Node("b").Name)
	assert.True(t, m.Contains("mm"))
	assert.True(t, m.Contains("ba"))
	assert.False(t, m.Contains("missing"))
	assert.Equal(t, []string{"b", "w", "x"}, m.Captures())
}

func TestMatchNoChildrenLeavesInputsUnconstrained(t *testing.T) {
	g := graph.New(nil)
	addNode(t, g, "a", "Placeholder")
	addNode(t, g, "b", "Placeholder")
	addNode(t, g, "c", "Placeholder")
	cc := addNode(t, g, "cc", "ConcatV2", "a:0", "b:0", "c:0")

	p := NewPattern("ConcatV2|Concat").Named("xh")
	m, ok := MatchPattern(g, p, cc)
	require.True(t, ok)
	assert.Equal(t, "cc", m.Node("xh").Name)
}

func TestMatchInputCountMismatch(t *testing.T) {
	g := graph.New(nil)
	addNode(t, g, "a", "Placeholder")
	add := addNode(t, g, "add", "Add", "a:0", "a:0")

	p := NewPattern("Add").In(NewPattern("*"))
	_, ok := MatchPattern(g, p, add)
	assert.False(t, ok, "two-input node must not match one-child pattern")
}

func TestMatchTypeFailureAbortsAttempt(t *testing.T) {
	g := graph.New(nil)
	addNode(t, g, "x", "Placeholder")
	relu := addNode(t, g, "relu", "Relu", "x:0")

	p := NewPattern("Relu").Named("r").In(NewPattern("Const"))
	m, ok := MatchPattern(g, p, relu)
	assert.False(t, ok)
	assert.Nil(t, m, "failed attempt must not return a partial match")
}

func TestCaptureConsistencySameNode(t *testing.T) {
	// shared:0 feeds both inputs; the repeated capture binds one node.
	g := graph.New(nil)
	addNode(t, g, "shared", "Const")
	add := addNode(t, g, "add", "Add", "shared:0", "shared:0")

	p := NewPattern("Add").In(
		NewPattern("*").Named("v"),
		NewPattern("*").Named("v"),
	)
	m, ok := MatchPattern(g, p, add)
	require.True(t, ok)
	assert.Equal(t, "shared", m.Node("v").Name)
}

func TestCaptureConsistencyConflict(t *testing.T) {
	// Two distinct producers under one capture name: structural sharing is
	// required, coincidental equality is not enough.
	g := graph.New(nil)
	addNode(t, g, "c1", "Const")
	addNode(t, g, "c2", "Const")
	add := addNode(t, g, "add", "Add", "c1:0", "c2:0")

	p := NewPattern("Add").In(
		NewPattern("*").Named("v"),
		NewPattern("*").Named("v"),
	)
	_, ok := MatchPattern(g, p, add)
	assert.False(t, ok)
}

func TestCommutativeMatching(t *testing.T) {
	// Graph stores Mul(tanh, sigmoid); the pattern lists sigmoid first.
	g := graph.New(nil)
	addNode(t, g, "x", "Placeholder")
	addNode(t, g, "s", "Sigmoid", "x:0")
	addNode(t, g, "th", "Tanh", "x:0")
	mul := addNode(t, g, "mul", "Mul", "th:0", "s:0")

	ordered := NewPattern("Mul").In(
		NewPattern("Sigmoid").Named("gate"),
		NewPattern("Tanh"),
	)
	_, ok := MatchPattern(g, ordered, mul)
	assert.False(t, ok, "ordered pattern must respect stored input order")

	anyOrder := NewPattern("Mul").In(
		NewPattern("Sigmoid").Named("gate"),
		NewPattern("Tanh"),
	).AnyOrder()
	m, ok := MatchPattern(g, anyOrder, mul)
	require.True(t, ok)
	assert.Equal(t, "s", m.Node("gate").Name)
}

func TestCommutativeBacktrackingRollsBackBindings(t *testing.T) {
	// First permutation binds the wildcard to the sigmoid and then fails
	// deeper in the tree; the rollback must clear that binding so the
	// second permutation can succeed.
	g := graph.New(nil)
	addNode(t, g, "x", "Placeholder")
	addNode(t, g, "c", "Const")
	addNode(t, g, "s", "Sigmoid", "c:0")
	mul := addNode(t, g, "mul", "Mul", "s:0", "x:0")

	p := NewPattern("Mul").In(
		NewPattern("*").Named("other"),
		NewPattern("Sigmoid").Named("gate").In(NewPattern("Const").Named("c")),
	).AnyOrder()

	m, ok := MatchPattern(g, p, mul)
	require.True(t, ok)
	assert.Equal(t, "x", m.Node("other").Name)
	assert.Equal(t, "s", m.Node("gate").Name)
	assert.Equal(t, "c", m.Node("c").Name)
}

func TestSharedSubpatternBindsOneSubgraph(t *testing.T) {
	// The same sub-pattern value appears twice; captures must bind the
	// identical split node, rejecting a graph with two parallel splits.
	g := graph.New(nil)
	addNode(t, g, "x", "Placeholder")
	addNode(t, g, "split", "Split", "x:0")
	addNode(t, g, "s", "Sigmoid", "split:0")
	addNode(t, g, "th", "Tanh", "split:0")
	mul := addNode(t, g, "mul", "Mul", "s:0", "th:0")

	shared := NewPattern("Split").Named("xc")
	p := NewPattern("Mul").In(
		NewPattern("Sigmoid").In(shared),
		NewPattern("Tanh").In(shared),
	)
	m, ok := MatchPattern(g, p, mul)
	require.True(t, ok)
	assert.Equal(t, "split", m.Node("xc").Name)

	// Second graph: the two gates read different splits.
	g2 := graph.New(nil)
	addNode(t, g2, "x", "Placeholder")
	addNode(t, g2, "split1", "Split", "x:0")
	addNode(t, g2, "split2", "Split", "x:0")
	addNode(t, g2, "s", "Sigmoid", "split1:0")
	addNode(t, g2, "th", "Tanh", "split2:0")
	mul2 := addNode(t, g2, "mul", "Mul", "s:0", "th:0")

	_, ok = MatchPattern(g2, p, mul2)
	assert.False(t, ok)
}

func TestPermutationsLexicographic(t *testing.T) {
	got := permutations(3)
	want := [][]int{
		{0, 1, 2}, {0, 2, 1},
		{1, 0, 2}, {1, 2, 0},
		{2, 0, 1}, {2, 1, 0},
	}
	require.Equal(t, want, got)
}
