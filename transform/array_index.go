package transform

import (
	"github.com/sqlshift/sqlshift/function"
	"github.com/sqlshift/sqlshift/ir"
)

// OneBasedIndexRule converts zero-based array element access to the
// target dialect's one-based convention: a literal index is replaced by
// literal+1, a non-literal index expression is wrapped in an addition by
// one. The conversion is purely syntactic; the index expression is never
// evaluated, since it may contain non-constant or side-effecting
// sub-expressions.
type OneBasedIndexRule struct {
	// Nodes this instance already converted. Nothing on the node itself
	// marks it as converted, so the rule tracks its own output to keep
	// its condition false on it.
	converted map[*ir.Call]struct{}
}

func NewOneBasedIndexRule() *OneBasedIndexRule {
	return &OneBasedIndexRule{converted: make(map[*ir.Call]struct{})}
}

func (r *OneBasedIndexRule) Name() string { return "OneBasedIndex" }

func (r *OneBasedIndexRule) Condition(node ir.Expr, ctx *Context) (bool, error) {
	call, ok := node.(*ir.Call)
	if !ok || call.Op.Kind() != ir.OpItem || len(call.Operands) != 2 {
		return false, nil
	}
	if _, done := r.converted[call]; done {
		return false, nil
	}
	t, err := ctx.TypeOf(call.Operand(0))
	if err != nil {
		return false, err
	}
	return t.Family() == ir.FamilyArray, nil
}

func (r *OneBasedIndexRule) Rewrite(node ir.Expr, ctx *Context) (ir.Expr, error) {
	call := node.(*ir.Call)
	index := call.Operand(1)
	if lit, ok := index.(*ir.Literal); ok {
		if v, isInt := lit.IntValue(); isInt {
			call.SetOperand(1, ir.NewIntLiteral(v+1))
			r.converted[call] = struct{}{}
			return call, nil
		}
	}
	call.SetOperand(1, ir.NewCall(function.PlusOp, index, ir.NewIntLiteral(1)))
	r.converted[call] = struct{}{}
	return call, nil
}
