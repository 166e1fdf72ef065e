package algebra

import (
	"strings"

	"github.com/hashicorp/hcl/v2/hclsyntax"
)

// Operator precedence levels for rendering. Atoms bind tightest.
const (
	precAddSub = 1
	precMulDiv = 2
	precUnary  = 3
	precAtom   = 4
)

// renderExpr prints an expression in canonical ASCII form: additive
// operators spaced, multiplicative operators tight, parentheses inserted
// only where precedence demands them. The same expression always renders to
// the same string, which keeps edge labels diff-stable.
func renderExpr(expr hclsyntax.Expression) string {
	var sb strings.Builder
	writeExpr(&sb, expr)
	return sb.String()
}

func writeExpr(sb *strings.Builder, expr hclsyntax.Expression) {
	switch e := expr.(type) {
	case *hclsyntax.LiteralValueExpr:
		sb.WriteString(formatNumber(e.Val.AsBigFloat(), 0))
	case *hclsyntax.ScopeTraversalExpr:
		sb.WriteString(e.Traversal.RootName())
	case *hclsyntax.ParenthesesExpr:
		writeExpr(sb, e.Expression)
	case *hclsyntax.UnaryOpExpr:
		sb.WriteByte('-')
		writeOperand(sb, e.Val, precUnary, false)
	case *hclsyntax.BinaryOpExpr:
		prec, op, spaced := binaryOp(e)
		writeOperand(sb, e.LHS, prec, false)
		if spaced {
			sb.WriteString(" " + op + " ")
		} else {
			sb.WriteString(op)
		}
		// Same-precedence right operands of - / % need parentheses to
		// preserve left associativity.
		writeOperand(sb, e.RHS, prec, op == "-" || op == "/" || op == "%")
	default:
		// checkSyntax rejects everything else at construction time.
		sb.WriteString("<unsupported>")
	}
}

func writeOperand(sb *strings.Builder, expr hclsyntax.Expression, parentPrec int, strict bool) {
	p := exprPrecedence(expr)
	if p < parentPrec || (strict && p == parentPrec) {
		sb.WriteByte('(')
		writeExpr(sb, expr)
		sb.WriteByte(')')
		return
	}
	writeExpr(sb, expr)
}

func exprPrecedence(expr hclsyntax.Expression) int {
	switch e := expr.(type) {
	case *hclsyntax.ParenthesesExpr:
		return exprPrecedence(e.Expression)
	case *hclsyntax.UnaryOpExpr:
		return precUnary
	case *hclsyntax.BinaryOpExpr:
		p, _, _ := binaryOp(e)
		return p
	default:
		return precAtom
	}
}

func binaryOp(e *hclsyntax.BinaryOpExpr) (prec int, op string, spaced bool) {
	switch e.Op {
	case hclsyntax.OpAdd:
		return precAddSub, "+", true
	case hclsyntax.OpSubtract:
		return precAddSub, "-", true
	case hclsyntax.OpMultiply:
		return precMulDiv, "*", false
	case hclsyntax.OpDivide:
		return precMulDiv, "/", false
	default:
		return precMulDiv, "%", false
	}
}
