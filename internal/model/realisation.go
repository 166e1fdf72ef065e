// Package model holds the validated state-space realisation consumed by the
// topology builders: x' = Ax + bu, y = cx + du. A realisation is constructed
// once from parsed input and is read-only afterwards.
package model

import (
	"fmt"

	"github.com/vk/ssflowgo/internal/algebra"
)

// Realisation is a validated (A, b, c, d) tuple plus a display name. All
// accessors are 0-based; n is A's dimension.
type Realisation struct {
	name string
	a    [][]algebra.Value
	b    []algebra.Value
	c    []algebra.Value
	d    algebra.Value
}

// New validates dimensions and builds an immutable realisation: A must be
// square and non-empty, b and c must have A's dimension. A zero d means no
// feedthrough edge.
func New(name string, a [][]algebra.Value, b, c []algebra.Value, d algebra.Value) (*Realisation, error) {
	n := len(a)
	if n == 0 {
		return nil, fmt.Errorf("model: matrix A must have at least one row")
	}
	for i, row := range a {
		if len(row) != n {
			return nil, fmt.Errorf("model: matrix A row %d has %d columns, want %d", i+1, len(row), n)
		}
	}
	if len(b) != n {
		return nil, fmt.Errorf("model: vector b has length %d, want %d", len(b), n)
	}
	if len(c) != n {
		return nil, fmt.Errorf("model: vector c has length %d, want %d", len(c), n)
	}
	if name == "" {
		name = "state-space-model"
	}
	return &Realisation{name: name, a: a, b: b, c: c, d: d}, nil
}

// Name returns the display name of the realisation.
func (r *Realisation) Name() string { return r.name }

// Order returns the state dimension n.
func (r *Realisation) Order() int { return len(r.a) }

// A returns the system matrix entry A[i,j], 0-based.
func (r *Realisation) A(i, j int) algebra.Value { return r.a[i][j] }

// B returns the input vector entry b[i], 0-based.
func (r *Realisation) B(i int) algebra.Value { return r.b[i] }

// C returns the output vector entry c[i], 0-based.
func (r *Realisation) C(i int) algebra.Value { return r.c[i] }

// D returns the scalar feedthrough term.
func (r *Realisation) D() algebra.Value { return r.d }
