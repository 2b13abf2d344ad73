package transform

import (
	"github.com/sqlshift/sqlshift/ir"
)

// TypeDeriver is the capability the external validator supplies: derive
// an expression's type by validating a synthetic single-column projection
// of it against one enclosing query block's scope.
type TypeDeriver interface {
	DeriveInScope(expr ir.Expr, scope *ir.Select) (ir.DataType, error)
}

// Context carries the state scoped to one tree walk: the stack of
// enclosing SELECT blocks used to re-derive types for synthesized nodes,
// the UDF usage report, and one-shot flags consumed by individual rules.
// A Context must not be reused across conversions.
type Context struct {
	deriver TypeDeriver
	report  *Report

	// Enclosing SELECT blocks, outermost first. Accumulated over the
	// walk and never popped: an older scope can still type a node after
	// the walk has moved past it.
	selects []*ir.Select

	outermostAliased bool
	applied          []string
}

func NewContext(deriver TypeDeriver, report *Report) *Context {
	if report == nil {
		report = NewReport()
	}
	return &Context{deriver: deriver, report: report}
}

// Report returns the side-channel UDF usage collector.
func (c *Context) Report() *Report { return c.report }

// EnterSelect records a query block as an enclosing scope for type
// derivation. Called by the walker before the chain sees the block.
func (c *Context) EnterSelect(s *ir.Select) {
	c.selects = append(c.selects, s)
}

// TypeOf derives the semantic type of expr. Newly synthesized nodes have
// no attached type, so derivation walks the enclosing scopes from
// innermost to outermost, validating a synthetic projection of expr
// against each; failure against one scope is expected and tries the next.
// Only exhaustion of all scopes is an error.
func (c *Context) TypeOf(expr ir.Expr) (ir.DataType, error) {
	if c.deriver == nil {
		return ir.Unknown(), &TypeDerivationError{Node: expr}
	}
	for i := len(c.selects) - 1; i >= 0; i-- {
		t, err := c.deriver.DeriveInScope(expr, c.selects[i])
		if err == nil {
			return t, nil
		}
	}
	return ir.Unknown(), &TypeDerivationError{Node: expr}
}

// OutermostAliased reports whether the alias re-attachment one-shot has
// fired.
func (c *Context) OutermostAliased() bool { return c.outermostAliased }

// MarkOutermostAliased consumes the alias re-attachment one-shot.
func (c *Context) MarkOutermostAliased() { c.outermostAliased = true }

// AppliedRules returns the names of rules that fired, in order.
func (c *Context) AppliedRules() []string { return c.applied }

func (c *Context) noteApplied(name string) {
	c.applied = append(c.applied, name)
}
