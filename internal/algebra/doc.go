// Package algebra implements the scalar values that populate a realisation's
// matrices: exact numbers, or symbolic expressions over a declared set of
// free variables. Expressions are parsed with HCL's native syntax and
// evaluated with cty's arbitrary-precision number arithmetic, which keeps
// zero-detection exact and constant folding loss-free.
package algebra
