// Package diagram builds the directed block-diagram graph for a realisation
// and applies the optional transform passes. Two topologies are supported: a
// compact signal-flow graph, where integration is a single labeled edge, and
// the textbook integrator diagram with explicit summation and integration
// stages. Both builders are deterministic: node and edge emission order is
// fixed, so the same model always yields the same graph and the same
// serialized output.
package diagram
