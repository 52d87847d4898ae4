package rewrite

import (
	"testing"

	"github.com/pkg/errors"
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

func addFloatConst(t *testing.T, g *graph.Graph, name string, shape graph.Shape, data []float32) *graph.Node {
	t.Helper()
	n := addNode(t, g, name, "Const")
	val, err := graph.NewFloatTensor(shape, data)
	require.NoError(t, err)
	n.Value = val
	n.SetAttr(graph.Attribute{Name: "dtype", I: graph.ProtoFloat})
	return n
}

func addIntConst(t *testing.T, g *graph.Graph, name string, shape graph.Shape, data []int64) *graph.Node {
	t.Helper()
	n := addNode(t, g, name, "Const")
	val, err := graph.NewIntTensor(shape, data)
	require.NoError(t, err)
	n.Value = val
	n.SetAttr(graph.Attribute{Name: "dtype", I: graph.ProtoInt64})
	return n
}

func TestResolveConstantDirect(t *testing.T) {
	g := graph.New(nil)
	c := addFloatConst(t, g, "w", graph.Shape{3}, []float32{1, 2, 3})

	val, dtype, err := ResolveConstant(g, c)
	require.NoError(t, err)
	assert.Equal(t, graph.Float32, dtype)
	data, err := val.Float32s()
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2, 3}, data)
}

func TestResolveConstantThroughIdentityChain(t *testing.T) {
	g := graph.New(nil)
	addFloatConst(t, g, "w", graph.Shape{3}, []float32{1, 2, 3})
	addNode(t, g, "id1", "Identity", "w:0")
	addNode(t, g, "id2", "Identity", "id1:0")
	id3 := addNode(t, g, "id3", "Identity", "id2:0")

	val, dtype, err := ResolveConstant(g, id3)
	require.NoError(t, err)
	assert.Equal(t, graph.Float32, dtype)
	data, err := val.Float32s()
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2, 3}, data)
}

func TestResolveConstantNonConstProducer(t *testing.T) {
	g := graph.New(nil)
	addNode(t, g, "x", "Placeholder")
	addNode(t, g, "id1", "Identity", "x:0")
	id2 := addNode(t, g, "id2", "Identity", "id1:0")

	_, _, err := ResolveConstant(g, id2)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnresolvedConstant))
	assert.Contains(t, err.Error(), "x", "diagnostic should name the offending node")
}

func TestResolveConstantBrokenChain(t *testing.T) {
	g := graph.New(nil)
	id := addNode(t, g, "id", "Identity", "ghost:0")

	_, _, err := ResolveConstant(g, id)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnresolvedConstant))
}

func TestResolveConstantDtypeMapping(t *testing.T) {
	// The declared dtype attribute wins over the embedded tensor's type tag
	// when translating through the mapping table.
	g := graph.New(nil)
	c := addIntConst(t, g, "perm", graph.Shape{3}, []int64{1, 0, 2})

	_, dtype, err := ResolveConstant(g, c)
	require.NoError(t, err)
	assert.Equal(t, graph.Int64, dtype)
}

func TestResolveConstantUnmappedDtype(t *testing.T) {
	g := graph.New(nil)
	c := addFloatConst(t, g, "w", graph.Shape{1}, []float32{1})
	c.SetAttr(graph.Attribute{Name: "dtype", I: graph.ProtoString})

	_, _, err := ResolveConstant(g, c)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnresolvedConstant))
}
