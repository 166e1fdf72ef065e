package diagram

import (
	"fmt"

	"github.com/vk/ssflowgo/internal/algebra"
	"github.com/vk/ssflowgo/internal/model"
)

// Style selects one of the two diagram topologies.
type Style string

const (
	// StyleSignalFlow is the compact signal-flow graph: integration is a
	// single 1/s edge from each derivative node to its state node.
	StyleSignalFlow Style = "sfg"

	// StyleIntegrator is the textbook topology with explicit summation and
	// integrator stages per state and a shared output sum.
	StyleIntegrator Style = "integrator"
)

// ParseStyle validates a style name from configuration.
func ParseStyle(s string) (Style, error) {
	switch Style(s) {
	case StyleSignalFlow, StyleIntegrator:
		return Style(s), nil
	default:
		return "", fmt.Errorf("diagram: unknown style %q (want sfg or integrator)", s)
	}
}

// integratorGain is the Laplace-domain transfer of an integration stage.
var integratorGain = algebra.MustParse("1/s", "s")

// IntegratorLabel returns the display label of an integration stage.
func IntegratorLabel(unicode bool) string {
	if unicode {
		return "s⁻¹"
	}
	return "1/s"
}

// Build constructs the diagram for the requested style. The unicode flag
// only affects display labels (derivative overdots, sum sigmas, the
// integrator factor), never the topology.
func Build(m *model.Realisation, style Style, unicode bool) (*Graph, error) {
	switch style {
	case StyleSignalFlow:
		return BuildSignalFlow(m, unicode)
	case StyleIntegrator:
		return BuildIntegrator(m, unicode)
	default:
		return nil, fmt.Errorf("diagram: unknown style %q", style)
	}
}

// BuildSignalFlow emits the compact signal-flow topology. Node order is u,
// y, then x{i}/xdot{i} per state; edge order is A row-major, b, the
// integrator links, c, then the optional feedthrough edge. This order is
// fixed and is the basis for diff-stable output.
func BuildSignalFlow(m *model.Realisation, unicode bool) (*Graph, error) {
	n := m.Order()
	if n < 1 {
		return nil, &InvariantError{Reason: "realisation has no states"}
	}
	g := newGraph()
	if err := g.addNode(Node{ID: "u", Kind: KindInput, Label: "u"}); err != nil {
		return nil, err
	}
	if err := g.addNode(Node{ID: "y", Kind: KindOutput, Label: "y"}); err != nil {
		return nil, err
	}
	for i := 1; i <= n; i++ {
		if err := g.addNode(Node{ID: stateID(i), Kind: KindState, Label: stateID(i), Index: i}); err != nil {
			return nil, err
		}
		if err := g.addNode(Node{ID: xdotID(i), Kind: KindDerivative, Label: xdotLabel(i, unicode), Index: i}); err != nil {
			return nil, err
		}
	}
	if err := addCouplingEdges(g, m, xdotID); err != nil {
		return nil, err
	}
	for i := 1; i <= n; i++ {
		err := g.addEdge(Edge{
			From:       xdotID(i),
			To:         stateID(i),
			Gain:       integratorGain,
			Label:      IntegratorLabel(unicode),
			Structural: true,
		})
		if err != nil {
			return nil, err
		}
	}
	for i := 1; i <= n; i++ {
		if err := addGainEdge(g, stateID(i), "y", m.C(i-1)); err != nil {
			return nil, err
		}
	}
	if err := addFeedthrough(g, m, "y"); err != nil {
		return nil, err
	}
	return g, nil
}

// BuildIntegrator emits the explicit topology: per state a sum stage feeding
// an integrator feeding the state node, plus a shared output sum. The
// sum->int, int->state and ysum->y links are structural units and survive
// every transform pass.
func BuildIntegrator(m *model.Realisation, unicode bool) (*Graph, error) {
	n := m.Order()
	if n < 1 {
		return nil, &InvariantError{Reason: "realisation has no states"}
	}
	g := newGraph()
	if err := g.addNode(Node{ID: "u", Kind: KindInput, Label: "u"}); err != nil {
		return nil, err
	}
	if err := g.addNode(Node{ID: "y", Kind: KindOutput, Label: "y"}); err != nil {
		return nil, err
	}
	if err := g.addNode(Node{ID: "ysum", Kind: KindSum, Label: ysumLabel(unicode)}); err != nil {
		return nil, err
	}
	for i := 1; i <= n; i++ {
		if err := g.addNode(Node{ID: sumID(i), Kind: KindSum, Label: sumLabel(i, unicode), Index: i}); err != nil {
			return nil, err
		}
		if err := g.addNode(Node{ID: intID(i), Kind: KindIntegrator, Label: IntegratorLabel(unicode), Index: i}); err != nil {
			return nil, err
		}
		if err := g.addNode(Node{ID: stateID(i), Kind: KindState, Label: stateID(i), Index: i}); err != nil {
			return nil, err
		}
	}
	if err := addCouplingEdges(g, m, sumID); err != nil {
		return nil, err
	}
	for i := 1; i <= n; i++ {
		if err := addUnitEdge(g, sumID(i), intID(i)); err != nil {
			return nil, err
		}
		err := g.addEdge(Edge{
			From:       intID(i),
			To:         stateID(i),
			Gain:       algebra.One,
			Label:      IntegratorLabel(unicode),
			Structural: true,
		})
		if err != nil {
			return nil, err
		}
	}
	for i := 1; i <= n; i++ {
		if err := addGainEdge(g, stateID(i), "ysum", m.C(i-1)); err != nil {
			return nil, err
		}
	}
	if err := addUnitEdge(g, "ysum", "y"); err != nil {
		return nil, err
	}
	if err := addFeedthrough(g, m, "ysum"); err != nil {
		return nil, err
	}
	return g, nil
}

// addCouplingEdges emits the A-matrix edges row-major, then the b edges, into
// whichever per-state collection node the topology uses.
func addCouplingEdges(g *Graph, m *model.Realisation, target func(int) string) error {
	n := m.Order()
	for i := 1; i <= n; i++ {
		for j := 1; j <= n; j++ {
			if err := addGainEdge(g, stateID(j), target(i), m.A(i-1, j-1)); err != nil {
				return err
			}
		}
	}
	for i := 1; i <= n; i++ {
		if err := addGainEdge(g, "u", target(i), m.B(i-1)); err != nil {
			return err
		}
	}
	return nil
}

// addFeedthrough emits the u -> target edge when d is not structurally zero
// at construction time. Later pruning never resurrects or removes this
// decision retroactively.
func addFeedthrough(g *Graph, m *model.Realisation, target string) error {
	if m.D().IsZero() {
		return nil
	}
	return addGainEdge(g, "u", target, m.D())
}

func addGainEdge(g *Graph, from, to string, gain algebra.Value) error {
	return g.addEdge(Edge{From: from, To: to, Gain: gain, Label: gain.String()})
}

func addUnitEdge(g *Graph, from, to string) error {
	return g.addEdge(Edge{From: from, To: to, Gain: algebra.One, Label: "1", Structural: true})
}

func stateID(i int) string { return fmt.Sprintf("x%d", i) }
func xdotID(i int) string  { return fmt.Sprintf("xdot%d", i) }
func sumID(i int) string   { return fmt.Sprintf("sum%d", i) }
func intID(i int) string   { return fmt.Sprintf("int%d", i) }

func xdotLabel(i int, unicode bool) string {
	if unicode {
		return fmt.Sprintf("x\u0307%d", i)
	}
	return fmt.Sprintf("x_dot%d", i)
}

func sumLabel(i int, unicode bool) string {
	if unicode {
		return fmt.Sprintf("Σ%d", i)
	}
	return fmt.Sprintf("sum%d", i)
}

func ysumLabel(unicode bool) string {
	if unicode {
		return "Σ_y"
	}
	return "sum_y"
}
