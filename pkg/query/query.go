// Package query implements the set-expression language the CLI and server
// expose over commit graphs.
//
// Expressions name vertices directly or call graph functions, and combine
// results with set operators:
//
//	ancestors(release) - ancestors(main)
//	(heads() | roots()) & descendants("v1.0")
//
// Functions: all(), heads(), roots(), ancestors(x), descendants(x),
// range(x, y). Operators, loosest first: `|` (union), then `&`
// (intersection) and `-` (difference) at equal precedence, left
// associative. Bare names may contain letters, digits, `_`, `.`, `/` and
// `+`; anything else needs double quotes.
//
// Parsing and evaluation are separate steps: a parsed Expr renders back to
// a canonical string, which callers use as a cache key, and evaluates
// lazily against any graph.
package query

import (
	"strings"

	"github.com/mhollstein/revset/pkg/errors"
	"github.com/mhollstein/revset/pkg/namedag"
	"github.com/mhollstein/revset/pkg/nameset"
	"github.com/mhollstein/revset/pkg/vertex"
)

// Expr is a parsed set expression.
type Expr interface {
	// Eval resolves the expression against a graph. The returned set is
	// lazy; combination nodes evaluate on iteration.
	Eval(d *namedag.NameDag) (nameset.Set, error)

	// String renders the canonical form of the expression. Two expressions
	// with the same canonical form evaluate identically.
	String() string
}

// Eval parses src and evaluates it against d in one step.
func Eval(d *namedag.NameDag, src string) (nameset.Set, error) {
	expr, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return expr.Eval(d)
}

// =============================================================================
// AST Nodes
// =============================================================================

// nameExpr selects a single vertex by name.
type nameExpr struct {
	name string
}

func (e *nameExpr) Eval(d *namedag.NameDag) (nameset.Set, error) {
	n := vertex.NameFromString(e.name)
	if !d.Contains(n) {
		return nil, errors.New(errors.ErrCodeVertexNotFound, "vertex %q is not in the graph", e.name)
	}
	return nameset.NewStaticSet(n), nil
}

func (e *nameExpr) String() string {
	if isBareName(e.name) {
		return e.name
	}
	return quoteName(e.name)
}

// funcExpr applies a graph function. Arity is checked at parse time.
type funcExpr struct {
	fn   string
	args []Expr
}

func (e *funcExpr) Eval(d *namedag.NameDag) (nameset.Set, error) {
	switch e.fn {
	case "all":
		return d.All(), nil
	case "heads":
		return d.Heads(), nil
	case "roots":
		return d.Roots(), nil
	case "ancestors":
		names, err := argNames(d, e.args[0])
		if err != nil {
			return nil, err
		}
		return d.Ancestors(names...)
	case "descendants":
		names, err := argNames(d, e.args[0])
		if err != nil {
			return nil, err
		}
		return d.Descendants(names...)
	case "range":
		roots, err := argNames(d, e.args[0])
		if err != nil {
			return nil, err
		}
		heads, err := argNames(d, e.args[1])
		if err != nil {
			return nil, err
		}
		return d.Range(roots, heads)
	}
	return nil, errors.New(errors.ErrCodeInternal, "unreachable function %q", e.fn)
}

func (e *funcExpr) String() string {
	args := make([]string, len(e.args))
	for i, a := range e.args {
		args[i] = a.String()
	}
	return e.fn + "(" + strings.Join(args, ", ") + ")"
}

// argNames evaluates a function argument and flattens it to vertex names.
// Arguments are full expressions, so ancestors(heads()) works.
func argNames(d *namedag.NameDag, arg Expr) ([]vertex.Name, error) {
	s, err := arg.Eval(d)
	if err != nil {
		return nil, err
	}
	return nameset.Names(s)
}

// binExpr combines two sub-expressions with a set operator.
type binExpr struct {
	op       string // "|", "&" or "-"
	lhs, rhs Expr
}

func (e *binExpr) Eval(d *namedag.NameDag) (nameset.Set, error) {
	lhs, err := e.lhs.Eval(d)
	if err != nil {
		return nil, err
	}
	rhs, err := e.rhs.Eval(d)
	if err != nil {
		return nil, err
	}
	switch e.op {
	case "|":
		return nameset.Union(lhs, rhs), nil
	case "&":
		return nameset.Intersection(lhs, rhs), nil
	case "-":
		return nameset.Difference(lhs, rhs), nil
	}
	return nil, errors.New(errors.ErrCodeInternal, "unreachable operator %q", e.op)
}

func (e *binExpr) String() string {
	return renderOperand(e.lhs, e.op, false) + " " + e.op + " " + renderOperand(e.rhs, e.op, true)
}

// renderOperand parenthesizes a child only where precedence or left
// associativity requires it, keeping the canonical form minimal.
func renderOperand(child Expr, parentOp string, isRight bool) string {
	b, ok := child.(*binExpr)
	if !ok {
		return child.String()
	}
	if precedence(b.op) < precedence(parentOp) || (isRight && precedence(b.op) == precedence(parentOp)) {
		return "(" + b.String() + ")"
	}
	return b.String()
}

func precedence(op string) int {
	if op == "|" {
		return 1
	}
	return 2 // & and -
}
