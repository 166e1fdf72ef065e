package algebra

import "fmt"

// ParseError reports a malformed expression or a reference to a variable
// outside the declared free-variable set. It carries the offending source
// text and the position the problem was detected at.
type ParseError struct {
	Expr   string // the expression text as given
	Line   int
	Column int
	Detail string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("algebra: cannot parse %q at %d:%d: %s", e.Expr, e.Line, e.Column, e.Detail)
}
