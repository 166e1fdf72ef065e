package dot

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/ssflowgo/internal/algebra"
	"github.com/vk/ssflowgo/internal/diagram"
	"github.com/vk/ssflowgo/internal/model"
)

func demoModel(t *testing.T) *model.Realisation {
	t.Helper()
	m, err := model.New("demo",
		[][]algebra.Value{
			{algebra.Number(0), algebra.Number(1)},
			{algebra.Number(-2), algebra.Number(-3)},
		},
		[]algebra.Value{algebra.Number(0), algebra.Number(1)},
		[]algebra.Value{algebra.Number(1), algebra.Number(0)},
		algebra.Zero,
	)
	require.NoError(t, err)
	return m
}

func TestMarshalDeterministic(t *testing.T) {
	m := demoModel(t)
	for _, style := range []diagram.Style{diagram.StyleSignalFlow, diagram.StyleIntegrator} {
		g1, err := diagram.Build(m, style, false)
		require.NoError(t, err)
		g2, err := diagram.Build(m, style, false)
		require.NoError(t, err)
		out1 := Marshal(g1, Options{Name: m.Name()})
		out2 := Marshal(g2, Options{Name: m.Name()})
		assert.Equal(t, out1, out2, "style %s", style)
		assert.Equal(t, out1, Marshal(g1, Options{Name: m.Name()}), "re-serialization must be byte-identical")
	}
}

func TestMarshalHeaderAndRankdir(t *testing.T) {
	g, err := diagram.Build(demoModel(t), diagram.StyleSignalFlow, false)
	require.NoError(t, err)

	out := Marshal(g, Options{Name: "demo"})
	assert.True(t, strings.HasPrefix(out, "digraph \"demo\" {\n  rankdir=LR;\n"), out)

	out = Marshal(g, Options{Name: "demo", RankDir: "TB"})
	assert.Contains(t, out, "rankdir=TB;")
}

func TestMarshalNodeOrderAndVocabulary(t *testing.T) {
	g, err := diagram.Build(demoModel(t), diagram.StyleSignalFlow, false)
	require.NoError(t, err)
	out := Marshal(g, Options{Name: "demo"})

	wantLines := []string{
		`  u [label="u", shape=circle, style=filled, fillcolor="#dbeafe"];`,
		`  x1 [label="x1", shape=circle];`,
		`  x2 [label="x2", shape=circle];`,
		`  xdot1 [label="x_dot1", shape=circle, style=dashed];`,
		`  xdot2 [label="x_dot2", shape=circle, style=dashed];`,
		`  y [label="y", shape=doublecircle, style=filled, fillcolor="#dcfce7"];`,
	}
	var got []string
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "label=") && !strings.Contains(line, "->") {
			got = append(got, line)
		}
	}
	assert.Equal(t, wantLines, got)
}

func TestMarshalIntegratorNodeOrder(t *testing.T) {
	g, err := diagram.Build(demoModel(t), diagram.StyleIntegrator, false)
	require.NoError(t, err)
	out := Marshal(g, Options{Name: "demo"})

	// ysum has no state index and sorts after the indexed sums; the
	// integrator boxes come after all sums.
	iSum1 := strings.Index(out, "\n  sum1 ")
	iSum2 := strings.Index(out, "\n  sum2 ")
	iYsum := strings.Index(out, "\n  ysum ")
	iInt1 := strings.Index(out, "\n  int1 ")
	require.NotEqual(t, -1, iSum1)
	require.NotEqual(t, -1, iSum2)
	require.NotEqual(t, -1, iYsum)
	require.NotEqual(t, -1, iInt1)
	assert.Less(t, iSum1, iSum2)
	assert.Less(t, iSum2, iYsum)
	assert.Less(t, iYsum, iInt1)

	assert.Contains(t, out, `int1 [label="1/s", shape=box];`)
	assert.Contains(t, out, `ysum [label="sum_y", shape=circle, style=filled, fillcolor="#fef3c7"];`)
}

func TestMarshalEdgesKeepConstructionOrder(t *testing.T) {
	g, err := diagram.Build(demoModel(t), diagram.StyleSignalFlow, false)
	require.NoError(t, err)
	out := Marshal(g, Options{Name: "demo"})

	first := strings.Index(out, `x1 -> xdot1 [label="0"];`)
	second := strings.Index(out, `x2 -> xdot1 [label="1"];`)
	last := strings.Index(out, `x2 -> y [label="0"];`)
	require.NotEqual(t, -1, first)
	require.NotEqual(t, -1, second)
	require.NotEqual(t, -1, last)
	assert.Less(t, first, second)
	assert.Less(t, second, last)
}

func TestMarshalQuotesLabels(t *testing.T) {
	assert.Equal(t, `"a \"b\""`, quote(`a "b"`))
	assert.Equal(t, `"a\\b"`, quote(`a\b`))
}

func TestNodeStylesCoverEveryKind(t *testing.T) {
	kinds := []diagram.Kind{
		diagram.KindInput, diagram.KindOutput, diagram.KindState,
		diagram.KindDerivative, diagram.KindSum, diagram.KindIntegrator,
	}
	for _, k := range kinds {
		st, ok := NodeStyles[k]
		assert.True(t, ok, "missing style for %s", k)
		assert.NotEmpty(t, st.Shape, "missing shape for %s", k)
	}
}
