package diagram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/ssflowgo/internal/algebra"
	"github.com/vk/ssflowgo/internal/model"
)

// symbolicModel is the canonical controllable form of a second-order system:
// A=[[0,1],[-a0,-a1]], b=[0,1], c=[b0,b1], d=0.
func symbolicModel(t *testing.T) *model.Realisation {
	t.Helper()
	vars := []string{"a0", "a1", "b0", "b1"}
	parse := func(src string) algebra.Value {
		v, err := algebra.Parse(src, vars)
		require.NoError(t, err)
		return v
	}
	m, err := model.New("canon",
		[][]algebra.Value{
			{algebra.Zero, algebra.One},
			{parse("-a0"), parse("-a1")},
		},
		[]algebra.Value{algebra.Zero, algebra.One},
		[]algebra.Value{parse("b0"), parse("b1")},
		algebra.Zero,
	)
	require.NoError(t, err)
	return m
}

func numericModel(t *testing.T, d float64) *model.Realisation {
	t.Helper()
	m, err := model.New("demo",
		[][]algebra.Value{
			{algebra.Number(0), algebra.Number(1)},
			{algebra.Number(-2), algebra.Number(-3)},
		},
		[]algebra.Value{algebra.Number(0), algebra.Number(1)},
		[]algebra.Value{algebra.Number(1), algebra.Number(0)},
		algebra.Number(d),
	)
	require.NoError(t, err)
	return m
}

func nodeIDs(g *Graph) []string {
	ids := make([]string, 0, len(g.Nodes()))
	for _, n := range g.Nodes() {
		ids = append(ids, n.ID)
	}
	return ids
}

func edgePairs(g *Graph) [][2]string {
	pairs := make([][2]string, 0, len(g.Edges()))
	for _, e := range g.Edges() {
		pairs = append(pairs, [2]string{e.From, e.To})
	}
	return pairs
}

func TestBuildSignalFlowRoundTrip(t *testing.T) {
	g, err := BuildSignalFlow(symbolicModel(t), false)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"u", "y", "x1", "x2", "xdot1", "xdot2"}, nodeIDs(g))

	e, ok := g.Edge("x1", "xdot2")
	require.True(t, ok)
	assert.Equal(t, "-a0", e.Label)

	e, ok = g.Edge("x2", "xdot2")
	require.True(t, ok)
	assert.Equal(t, "-a1", e.Label)

	e, ok = g.Edge("x1", "xdot1")
	require.True(t, ok, "zero-gain coupling edges stay until pruning")
	assert.True(t, e.Gain.IsZero())

	e, ok = g.Edge("u", "xdot2")
	require.True(t, ok)
	assert.Equal(t, "1", e.Label)

	for _, id := range []string{"1", "2"} {
		e, ok = g.Edge("xdot"+id, "x"+id)
		require.True(t, ok)
		assert.Equal(t, "1/s", e.Label)
		assert.True(t, e.Structural)
	}

	e, ok = g.Edge("x1", "y")
	require.True(t, ok)
	assert.Equal(t, "b0", e.Label)
	e, ok = g.Edge("x2", "y")
	require.True(t, ok)
	assert.Equal(t, "b1", e.Label)

	_, ok = g.Edge("u", "y")
	assert.False(t, ok, "no feedthrough edge for structurally zero d")
}

func TestBuildSignalFlowEdgeCount(t *testing.T) {
	// n^2 A edges + n input + n integrator + n output, plus one when d != 0.
	g, err := BuildSignalFlow(numericModel(t, 0), false)
	require.NoError(t, err)
	assert.Len(t, g.Edges(), 4+2+2+2)

	g, err = BuildSignalFlow(numericModel(t, 5), false)
	require.NoError(t, err)
	assert.Len(t, g.Edges(), 4+2+2+2+1)
	_, ok := g.Edge("u", "y")
	assert.True(t, ok)
}

func TestBuildSignalFlowEmissionOrder(t *testing.T) {
	g, err := BuildSignalFlow(numericModel(t, 1), false)
	require.NoError(t, err)
	want := [][2]string{
		{"x1", "xdot1"}, {"x2", "xdot1"}, {"x1", "xdot2"}, {"x2", "xdot2"},
		{"u", "xdot1"}, {"u", "xdot2"},
		{"xdot1", "x1"}, {"xdot2", "x2"},
		{"x1", "y"}, {"x2", "y"},
		{"u", "y"},
	}
	assert.Equal(t, want, edgePairs(g))
}

func TestBuildIntegratorTopology(t *testing.T) {
	g, err := BuildIntegrator(numericModel(t, 2), false)
	require.NoError(t, err)

	assert.ElementsMatch(t,
		[]string{"u", "y", "ysum", "sum1", "int1", "x1", "sum2", "int2", "x2"},
		nodeIDs(g))

	for _, pair := range [][2]string{{"sum1", "int1"}, {"int1", "x1"}, {"ysum", "y"}} {
		e, ok := g.Edge(pair[0], pair[1])
		require.True(t, ok, "%v", pair)
		assert.True(t, e.Structural, "%v must be structural", pair)
	}

	e, ok := g.Edge("int1", "x1")
	require.True(t, ok)
	assert.Equal(t, "1/s", e.Label)

	e, ok = g.Edge("ysum", "y")
	require.True(t, ok)
	assert.Equal(t, "1", e.Label)

	e, ok = g.Edge("u", "ysum")
	require.True(t, ok, "feedthrough goes into the output sum")
	assert.Equal(t, "2", e.Label)

	_, ok = g.Edge("u", "y")
	assert.False(t, ok)
}

func TestBuildDeterministic(t *testing.T) {
	m := symbolicModel(t)
	for _, style := range []Style{StyleSignalFlow, StyleIntegrator} {
		g1, err := Build(m, style, false)
		require.NoError(t, err)
		g2, err := Build(m, style, false)
		require.NoError(t, err)
		assert.Equal(t, nodeIDs(g1), nodeIDs(g2))
		assert.Equal(t, edgePairs(g1), edgePairs(g2))
	}
}

func TestBuildUnicodeLabels(t *testing.T) {
	g, err := BuildSignalFlow(numericModel(t, 0), true)
	require.NoError(t, err)
	n, ok := g.Node("xdot1")
	require.True(t, ok)
	assert.Equal(t, "x\u03071", n.Label)
	e, _ := g.Edge("xdot1", "x1")
	assert.Equal(t, "s⁻¹", e.Label)

	g, err = BuildIntegrator(numericModel(t, 0), true)
	require.NoError(t, err)
	n, ok = g.Node("sum1")
	require.True(t, ok)
	assert.Equal(t, "Σ1", n.Label)
	n, ok = g.Node("ysum")
	require.True(t, ok)
	assert.Equal(t, "Σ_y", n.Label)
}

func TestParseStyle(t *testing.T) {
	s, err := ParseStyle("sfg")
	require.NoError(t, err)
	assert.Equal(t, StyleSignalFlow, s)
	s, err = ParseStyle("integrator")
	require.NoError(t, err)
	assert.Equal(t, StyleIntegrator, s)
	_, err = ParseStyle("fancy")
	require.Error(t, err)
}

func TestDuplicateEdgeIsInvariantViolation(t *testing.T) {
	g := newGraph()
	require.NoError(t, g.addNode(Node{ID: "a", Kind: KindState}))
	require.NoError(t, g.addNode(Node{ID: "b", Kind: KindState}))
	require.NoError(t, g.addEdge(Edge{From: "a", To: "b", Gain: algebra.One, Label: "1"}))

	err := g.addEdge(Edge{From: "a", To: "b", Gain: algebra.Zero, Label: "0"})
	var inv *InvariantError
	require.ErrorAs(t, err, &inv)
	assert.Contains(t, inv.Error(), "duplicate edge")
}

func TestEdgeEndpointsMustExist(t *testing.T) {
	g := newGraph()
	require.NoError(t, g.addNode(Node{ID: "a", Kind: KindState}))
	err := g.addEdge(Edge{From: "a", To: "missing", Gain: algebra.One})
	var inv *InvariantError
	require.ErrorAs(t, err, &inv)
}
