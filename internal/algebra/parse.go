package algebra

import (
	"fmt"
	"slices"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
)

// Parse builds a Value from an expression string. The expression may use
// numbers, the declared free variables, unary minus, and the arithmetic
// operators + - * / %. A syntactically invalid expression, an undeclared
// variable reference, or any other construct yields a *ParseError carrying
// the offending text and position. An expression with no free occurrences of
// the declared variables folds to an exact numeric Value immediately.
func Parse(src string, vars []string) (Value, error) {
	expr, diags := hclsyntax.ParseExpression([]byte(src), "expr", hcl.InitialPos)
	if diags.HasErrors() {
		return Value{}, parseErrorFromDiags(src, diags)
	}
	if err := checkSyntax(src, expr, vars); err != nil {
		return Value{}, err
	}
	ctx := unknownContext(vars)
	val, evalDiags := expr.Value(ctx)
	if !evalDiags.HasErrors() && val.IsKnown() {
		return Value{num: val}, nil
	}
	return Value{expr: expr, vars: slices.Clone(vars)}, nil
}

// MustParse is Parse for static expressions known to be valid; it panics on
// error.
func MustParse(src string, vars ...string) Value {
	v, err := Parse(src, vars)
	if err != nil {
		panic(err)
	}
	return v
}

// checkSyntax restricts expressions to the arithmetic subset the renderer
// understands and verifies every variable reference is declared.
func checkSyntax(src string, expr hclsyntax.Expression, vars []string) error {
	switch e := expr.(type) {
	case *hclsyntax.LiteralValueExpr:
		if !e.Val.Type().Equals(cty.Number) {
			return positionError(src, e.Range(), "only numeric literals are allowed")
		}
		return nil
	case *hclsyntax.ScopeTraversalExpr:
		if len(e.Traversal) != 1 {
			return positionError(src, e.Range(), "attribute and index access are not allowed")
		}
		name := e.Traversal.RootName()
		if !slices.Contains(vars, name) {
			return positionError(src, e.Range(), fmt.Sprintf("undeclared variable %q", name))
		}
		return nil
	case *hclsyntax.ParenthesesExpr:
		return checkSyntax(src, e.Expression, vars)
	case *hclsyntax.UnaryOpExpr:
		if e.Op != hclsyntax.OpNegate {
			return positionError(src, e.Range(), "unsupported unary operator")
		}
		return checkSyntax(src, e.Val, vars)
	case *hclsyntax.BinaryOpExpr:
		switch e.Op {
		case hclsyntax.OpAdd, hclsyntax.OpSubtract, hclsyntax.OpMultiply, hclsyntax.OpDivide, hclsyntax.OpModulo:
		default:
			return positionError(src, e.Range(), "unsupported binary operator")
		}
		if err := checkSyntax(src, e.LHS, vars); err != nil {
			return err
		}
		return checkSyntax(src, e.RHS, vars)
	default:
		return positionError(src, expr.Range(), "unsupported expression syntax")
	}
}

func parseErrorFromDiags(src string, diags hcl.Diagnostics) *ParseError {
	first := diags[0]
	pe := &ParseError{Expr: src, Line: 1, Column: 1, Detail: first.Summary}
	if first.Detail != "" {
		pe.Detail = fmt.Sprintf("%s: %s", first.Summary, first.Detail)
	}
	if first.Subject != nil {
		pe.Line = first.Subject.Start.Line
		pe.Column = first.Subject.Start.Column
	}
	return pe
}

func positionError(src string, rng hcl.Range, detail string) *ParseError {
	return &ParseError{Expr: src, Line: rng.Start.Line, Column: rng.Start.Column, Detail: detail}
}
