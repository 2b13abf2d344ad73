package transform

import (
	"github.com/sqlshift/sqlshift/ir"
)

// RedundantCastInCaseRule removes casts a CASE expression no longer
// needs: once any branch casts a NULL literal to type T, T is the agreed
// type of the whole expression, so every other branch's cast to the same
// T is unwrapped to its inner expression. The NULL-literal cast itself is
// kept, since it is what establishes the type.
type RedundantCastInCaseRule struct {
	// Target type of the CAST(NULL AS T) branch found by Condition,
	// remembered for Rewrite. Per-conversion instance state.
	castNullTo *ir.TypeSpec
}

func NewRedundantCastInCaseRule() *RedundantCastInCaseRule {
	return &RedundantCastInCaseRule{}
}

func (r *RedundantCastInCaseRule) Name() string { return "RedundantCastInCase" }

func (r *RedundantCastInCaseRule) Condition(node ir.Expr, ctx *Context) (bool, error) {
	caseExpr, ok := node.(*ir.Case)
	if !ok {
		return false, nil
	}
	branches := make([]ir.Expr, 0, len(caseExpr.Thens)+1)
	branches = append(branches, caseExpr.Thens...)
	if caseExpr.Else != nil {
		branches = append(branches, caseExpr.Else)
	}
	for _, branch := range branches {
		if spec, ok := castOfNullLiteral(branch); ok {
			// Clone before remembering: the type spec is compared
			// against sibling branches and must not alias the tree.
			r.castNullTo = &ir.TypeSpec{Type: spec.Type.Clone()}
			return true, nil
		}
	}
	return false, nil
}

func (r *RedundantCastInCaseRule) Rewrite(node ir.Expr, ctx *Context) (ir.Expr, error) {
	caseExpr := node.(*ir.Case)
	for i, then := range caseExpr.Thens {
		caseExpr.Thens[i] = r.stripRedundantCast(then)
	}
	if caseExpr.Else != nil {
		caseExpr.Else = r.stripRedundantCast(caseExpr.Else)
	}
	return caseExpr, nil
}

func (r *RedundantCastInCaseRule) stripRedundantCast(branch ir.Expr) ir.Expr {
	call, ok := branch.(*ir.Call)
	if !ok || (call.Op.Kind() != ir.OpCast && call.Op.Kind() != ir.OpTryCast) || len(call.Operands) != 2 {
		return branch
	}
	spec, ok := call.Operand(1).(*ir.TypeSpec)
	if !ok || !spec.Type.Equal(r.castNullTo.Type) {
		return branch
	}
	if lit, isLit := call.Operand(0).(*ir.Literal); isLit && lit.IsNull() {
		// The type-establishing branch stays.
		return branch
	}
	return call.Operand(0)
}

func castOfNullLiteral(e ir.Expr) (*ir.TypeSpec, bool) {
	call, ok := e.(*ir.Call)
	if !ok || (call.Op.Kind() != ir.OpCast && call.Op.Kind() != ir.OpTryCast) || len(call.Operands) != 2 {
		return nil, false
	}
	lit, ok := call.Operand(0).(*ir.Literal)
	if !ok || !lit.IsNull() {
		return nil, false
	}
	spec, ok := call.Operand(1).(*ir.TypeSpec)
	if !ok {
		return nil, false
	}
	return spec, true
}
