package diagram

// TransformOptions selects the optional passes applied to a built graph.
// FloatSigFigs <= 0 disables numeric reformatting.
type TransformOptions struct {
	Simplify     bool
	PruneZeros   bool
	FloatSigFigs int
	Unicode      bool
}

// ApplyTransforms runs the enabled passes in their fixed order: simplify,
// then prune, then float formatting. Pruning therefore always judges exact
// (possibly simplified, never rounded) gains, and rounding can never turn a
// nonzero gain into a pruned edge or vice versa.
func ApplyTransforms(g *Graph, opts TransformOptions) {
	if opts.Simplify {
		SimplifyGains(g)
	}
	if opts.PruneZeros {
		PruneZeros(g)
	}
	if opts.FloatSigFigs > 0 {
		FormatFloats(g, opts.FloatSigFigs, opts.Unicode)
	}
}

// SimplifyGains replaces every non-structural edge gain with its canonical
// simplified form and regenerates the label from the new gain.
func SimplifyGains(g *Graph) {
	for i := range g.edges {
		e := &g.edges[i]
		if e.Structural {
			continue
		}
		e.Gain = e.Gain.Simplify()
		e.Label = e.Gain.String()
	}
}

// PruneZeros removes every edge whose gain is exactly zero, keeping
// structural edges unconditionally. Endpoint nodes are never removed: an
// orphaned node means "no coupling", not "node absent".
func PruneZeros(g *Graph) {
	kept := g.edges[:0]
	for _, e := range g.edges {
		if !e.Structural && e.Gain.IsZero() {
			delete(g.pairs, [2]string{e.From, e.To})
			continue
		}
		kept = append(kept, e)
	}
	g.edges = kept
}

// FormatFloats regenerates the labels of numeric, non-structural edges to
// the requested significant-figure count. Symbolic labels are untouched;
// gains keep their exact values.
func FormatFloats(g *Graph, sigFigs int, unicode bool) {
	for i := range g.edges {
		e := &g.edges[i]
		if e.Structural || !e.Gain.IsNumeric() {
			continue
		}
		e.Label = e.Gain.Format(sigFigs, unicode)
	}
}
