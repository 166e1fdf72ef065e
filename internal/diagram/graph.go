package diagram

import (
	"fmt"

	"github.com/vk/ssflowgo/internal/algebra"
)

// Kind classifies a node for styling and serialization ordering.
type Kind int

const (
	KindInput Kind = iota
	KindState
	KindDerivative
	KindSum
	KindIntegrator
	KindOutput
)

func (k Kind) String() string {
	switch k {
	case KindInput:
		return "input"
	case KindState:
		return "state"
	case KindDerivative:
		return "derivative"
	case KindSum:
		return "sum"
	case KindIntegrator:
		return "integrator"
	case KindOutput:
		return "output"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Node is a vertex of the diagram. Index is the 1-based state index for
// per-state nodes and 0 for shared nodes (u, y, ysum).
type Node struct {
	ID    string
	Kind  Kind
	Label string
	Index int
}

// Edge is a directed, gain-labeled connection. Structural edges carry a unit
// or integrator gain fixed by the topology itself rather than a model
// coefficient; they are exempt from zero-pruning and label reformatting.
type Edge struct {
	From       string
	To         string
	Gain       algebra.Value
	Label      string
	Structural bool
}

// InvariantError reports a broken construction invariant, such as a
// duplicate edge between the same ordered node pair. It always signals an
// upstream contract violation and is never recovered from inside this
// package.
type InvariantError struct {
	Reason string
}

func (e *InvariantError) Error() string {
	return "diagram: invariant violated: " + e.Reason
}

// Graph owns the node and edge sets for one build. It is discarded after
// serialization and never shared between builds.
type Graph struct {
	nodes []Node
	edges []Edge
	pairs map[[2]string]struct{}
}

func newGraph() *Graph {
	return &Graph{pairs: make(map[[2]string]struct{})}
}

// Nodes returns the node set in emission order. The slice is owned by the
// graph and must not be modified.
func (g *Graph) Nodes() []Node { return g.nodes }

// Edges returns the edge set in construction order. The slice is owned by
// the graph and must not be modified.
func (g *Graph) Edges() []Edge { return g.edges }

// Node looks up a node by id.
func (g *Graph) Node(id string) (Node, bool) {
	for _, n := range g.nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Edge looks up an edge by its ordered endpoint pair.
func (g *Graph) Edge(from, to string) (Edge, bool) {
	for _, e := range g.edges {
		if e.From == from && e.To == to {
			return e, true
		}
	}
	return Edge{}, false
}

func (g *Graph) addNode(n Node) error {
	if _, ok := g.Node(n.ID); ok {
		return &InvariantError{Reason: fmt.Sprintf("duplicate node %q", n.ID)}
	}
	g.nodes = append(g.nodes, n)
	return nil
}

// addEdge appends an edge, rejecting a second edge for the same ordered
// (from, to) pair.
func (g *Graph) addEdge(e Edge) error {
	key := [2]string{e.From, e.To}
	if _, ok := g.pairs[key]; ok {
		return &InvariantError{Reason: fmt.Sprintf("duplicate edge %s -> %s", e.From, e.To)}
	}
	if _, ok := g.Node(e.From); !ok {
		return &InvariantError{Reason: fmt.Sprintf("edge source %q not in graph", e.From)}
	}
	if _, ok := g.Node(e.To); !ok {
		return &InvariantError{Reason: fmt.Sprintf("edge target %q not in graph", e.To)}
	}
	g.pairs[key] = struct{}{}
	g.edges = append(g.edges, e)
	return nil
}
