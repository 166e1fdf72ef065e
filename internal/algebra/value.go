package algebra

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
)

// Value is a single matrix entry: either an exact number or a symbolic
// expression over a declared set of free variables. Values are immutable;
// Simplify returns a new Value and never mutates the receiver.
type Value struct {
	num  cty.Value            // exact number, valid when expr is nil
	expr hclsyntax.Expression // non-nil for symbolic values
	vars []string             // declared free variables of a symbolic value
}

// Zero is the exact numeric zero.
var Zero = Value{num: cty.NumberIntVal(0)}

// One is the exact numeric one, used for structural unit gains.
var One = Value{num: cty.NumberIntVal(1)}

// Number returns an exact numeric value.
func Number(f float64) Value {
	return Value{num: cty.NumberFloatVal(f)}
}

// Int returns an exact numeric value from an integer literal.
func Int(i int64) Value {
	return Value{num: cty.NumberIntVal(i)}
}

// IsNumeric reports whether the value is an exact number rather than a
// symbolic expression.
func (v Value) IsNumeric() bool {
	return v.expr == nil
}

// IsZero reports whether the value is exactly zero. A symbolic value is zero
// only when constant folding decides the literal zero; an indeterminate
// expression is never treated as zero, so pruning stays conservative.
func (v Value) IsZero() bool {
	if v.expr == nil {
		return v.num.AsBigFloat().Sign() == 0
	}
	folded, diags := v.expr.Value(unknownContext(v.vars))
	if diags.HasErrors() || !folded.IsKnown() {
		return false
	}
	return folded.AsBigFloat().Sign() == 0
}

// Simplify returns an equivalent value in canonical simplified form. Numeric
// values return themselves; symbolic values have every decidable
// subexpression constant-folded, and collapse to a numeric value when the
// whole expression is decidable. Simplify is idempotent.
func (v Value) Simplify() Value {
	if v.expr == nil {
		return v
	}
	ctx := unknownContext(v.vars)
	if folded, diags := v.expr.Value(ctx); !diags.HasErrors() && folded.IsKnown() {
		return Value{num: folded}
	}
	return Value{expr: fold(v.expr, ctx), vars: v.vars}
}

// Format renders the value for display. When sigFigs is positive, numeric
// values are rounded to that many significant figures and integral results
// keep a trailing ".0" so rounded output is visibly floating-point. A
// non-positive sigFigs renders full precision. Symbolic values render as a
// canonical ASCII expression; with unicode set, the Laplace integrator
// factor 1/s is shown with a superscript inverse instead.
func (v Value) Format(sigFigs int, unicode bool) string {
	if v.expr == nil {
		return formatNumber(v.num.AsBigFloat(), sigFigs)
	}
	s := renderExpr(v.expr)
	if unicode && s == "1/s" {
		return "s⁻¹"
	}
	return s
}

// String renders the value at full precision in ASCII.
func (v Value) String() string {
	return v.Format(0, false)
}

// unknownContext builds an evaluation context where every declared free
// variable is an unknown number, so evaluation decides exactly the
// subexpressions that do not depend on them.
func unknownContext(vars []string) *hcl.EvalContext {
	vals := make(map[string]cty.Value, len(vars))
	for _, name := range vars {
		vals[name] = cty.UnknownVal(cty.Number)
	}
	return &hcl.EvalContext{Variables: vals}
}

// fold rewrites an expression with every decidable subexpression replaced by
// its literal result. Parentheses nodes are dropped; the renderer reinserts
// them from operator precedence.
func fold(expr hclsyntax.Expression, ctx *hcl.EvalContext) hclsyntax.Expression {
	if val, diags := expr.Value(ctx); !diags.HasErrors() && val.IsKnown() {
		return &hclsyntax.LiteralValueExpr{Val: val}
	}
	switch e := expr.(type) {
	case *hclsyntax.ParenthesesExpr:
		return fold(e.Expression, ctx)
	case *hclsyntax.UnaryOpExpr:
		return &hclsyntax.UnaryOpExpr{Op: e.Op, Val: fold(e.Val, ctx)}
	case *hclsyntax.BinaryOpExpr:
		return &hclsyntax.BinaryOpExpr{LHS: fold(e.LHS, ctx), Op: e.Op, RHS: fold(e.RHS, ctx)}
	default:
		return expr
	}
}

// formatNumber renders an exact number. Full precision keeps integers free
// of a decimal point; significant-figure rounding appends ".0" to integral
// results.
func formatNumber(bf *big.Float, sigFigs int) string {
	if sigFigs > 0 {
		f, _ := bf.Float64()
		s := strconv.FormatFloat(f, 'g', sigFigs, 64)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		return s
	}
	if bf.IsInt() {
		return bf.Text('f', 0)
	}
	f, _ := bf.Float64()
	return strconv.FormatFloat(f, 'g', -1, 64)
}
