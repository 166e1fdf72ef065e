// Package app wires the whole pipeline together: it validates the run
// configuration, builds the logger, loads the model document, constructs the
// diagram, applies the transform passes, and writes or renders the result.
package app
