package transform

import (
	"github.com/sqlshift/sqlshift/function"
	"github.com/sqlshift/sqlshift/ir"
)

// ExplicitAliasRule re-attaches caller-supplied column names to the
// outermost projection: each projected expression is wrapped (or
// re-wrapped) in an AS with the corresponding supplied name. The walker's
// outermost-first order means the first SELECT the chain sees is the
// top-level one; the rule consumes a one-shot flag on that SELECT whether
// or not the projection is eligible, so an ineligible outermost
// projection (star item, arity mismatch) never leaks the aliases to an
// inner SELECT.
type ExplicitAliasRule struct {
	aliases []string
}

func NewExplicitAliasRule(aliases []string) *ExplicitAliasRule {
	return &ExplicitAliasRule{aliases: aliases}
}

func (r *ExplicitAliasRule) Name() string { return "ExplicitAlias" }

func (r *ExplicitAliasRule) Condition(node ir.Expr, ctx *Context) (bool, error) {
	sel, ok := node.(*ir.Select)
	if !ok || ctx.OutermostAliased() {
		return false, nil
	}
	// This is the outermost SELECT. Consumed here, not in Rewrite: inner
	// SELECTs must stay out of reach even when this one is ineligible.
	ctx.MarkOutermostAliased()

	if r.aliases == nil || len(sel.Projection) == 0 {
		return false, nil
	}
	for _, item := range sel.Projection {
		if _, star := item.(*ir.Star); star {
			return false, nil
		}
	}
	return len(r.aliases) == len(sel.Projection), nil
}

func (r *ExplicitAliasRule) Rewrite(node ir.Expr, ctx *Context) (ir.Expr, error) {
	sel := node.(*ir.Select)
	for i, item := range sel.Projection {
		sel.Projection[i] = withAlias(item, r.aliases[i])
	}
	return sel, nil
}

func withAlias(item ir.Expr, alias string) ir.Expr {
	if call, ok := item.(*ir.Call); ok && call.Op.Kind() == ir.OpAs {
		// Replace a pre-existing alias with the supplied one.
		return ir.NewCall(function.AsOp, call.Operand(0), ir.NewIdentifier(alias))
	}
	return ir.NewCall(function.AsOp, item, ir.NewIdentifier(alias))
}
