// Package dot serializes a built diagram to Graphviz DOT text. Output is
// deterministic: nodes are sorted by a declared (type rank, state index, id)
// key and edges keep their construction order, so unchanged input always
// diffs clean. The per-kind visual vocabulary is a presentation contract
// exposed as the NodeStyles table.
package dot

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/vk/ssflowgo/internal/diagram"
)

// Style is the fixed visual treatment of one node kind.
type Style struct {
	Shape     string
	Style     string
	FillColor string
}

// NodeStyles maps every node kind to its shape vocabulary. The table applies
// uniformly regardless of diagram style.
var NodeStyles = map[diagram.Kind]Style{
	diagram.KindInput:      {Shape: "circle", Style: "filled", FillColor: "#dbeafe"},
	diagram.KindOutput:     {Shape: "doublecircle", Style: "filled", FillColor: "#dcfce7"},
	diagram.KindState:      {Shape: "circle"},
	diagram.KindDerivative: {Shape: "circle", Style: "dashed"},
	diagram.KindSum:        {Shape: "circle", Style: "filled", FillColor: "#fef3c7"},
	diagram.KindIntegrator: {Shape: "box"},
}

// kindRank is the declared serialization order of node kinds.
var kindRank = map[diagram.Kind]int{
	diagram.KindInput:      0,
	diagram.KindState:      1,
	diagram.KindDerivative: 2,
	diagram.KindSum:        3,
	diagram.KindIntegrator: 4,
	diagram.KindOutput:     5,
}

// Options configures serialization. RankDir is a pass-through layout hint
// (LR or TB) and has no effect on graph content.
type Options struct {
	Name    string
	RankDir string
}

// Marshal renders the graph as DOT text. Serializing the same graph twice
// yields byte-identical output.
func Marshal(g *diagram.Graph, opts Options) string {
	name := opts.Name
	if name == "" {
		name = "diagram"
	}
	rankdir := opts.RankDir
	if rankdir == "" {
		rankdir = "LR"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "digraph %s {\n", quote(name))
	fmt.Fprintf(&sb, "  rankdir=%s;\n", rankdir)

	for _, n := range sortedNodes(g.Nodes()) {
		sb.WriteString("  ")
		sb.WriteString(n.ID)
		sb.WriteString(" [")
		sb.WriteString("label=" + quote(n.Label))
		st := NodeStyles[n.Kind]
		if st.Shape != "" {
			sb.WriteString(", shape=" + st.Shape)
		}
		if st.Style != "" {
			sb.WriteString(", style=" + st.Style)
		}
		if st.FillColor != "" {
			sb.WriteString(", fillcolor=" + quote(st.FillColor))
		}
		sb.WriteString("];\n")
	}

	for _, e := range g.Edges() {
		fmt.Fprintf(&sb, "  %s -> %s [label=%s];\n", e.From, e.To, quote(e.Label))
	}

	sb.WriteString("}\n")
	return sb.String()
}

// sortedNodes orders nodes by (kind rank, state index, id). Nodes without a
// state index (u, y, ysum) sort after indexed nodes of the same kind.
func sortedNodes(nodes []diagram.Node) []diagram.Node {
	out := make([]diagram.Node, len(nodes))
	copy(out, nodes)
	sort.SliceStable(out, func(a, b int) bool {
		na, nb := out[a], out[b]
		if kindRank[na.Kind] != kindRank[nb.Kind] {
			return kindRank[na.Kind] < kindRank[nb.Kind]
		}
		ia, ib := sortIndex(na), sortIndex(nb)
		if ia != ib {
			return ia < ib
		}
		return na.ID < nb.ID
	})
	return out
}

func sortIndex(n diagram.Node) int {
	if n.Index == 0 {
		return math.MaxInt
	}
	return n.Index
}

// quote wraps a DOT string literal, escaping embedded quotes and backslashes.
func quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `"` + r.Replace(s) + `"`
}
