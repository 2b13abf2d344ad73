package transform

import (
	"strings"

	"github.com/sqlshift/sqlshift/function"
	"github.com/sqlshift/sqlshift/ir"
)

// ConcatCastRule homogenizes variadic string concatenation: the target
// dialect requires every CONCAT operand to be a character type, so each
// operand of any other type gets an explicit cast to VARCHAR.
type ConcatCastRule struct{}

func NewConcatCastRule() *ConcatCastRule { return &ConcatCastRule{} }

func (r *ConcatCastRule) Name() string { return "ConcatCast" }

func (r *ConcatCastRule) Condition(node ir.Expr, ctx *Context) (bool, error) {
	call, ok := node.(*ir.Call)
	return ok && strings.EqualFold(call.Op.Name(), "concat"), nil
}

func (r *ConcatCastRule) Rewrite(node ir.Expr, ctx *Context) (ir.Expr, error) {
	call := node.(*ir.Call)
	for i, operand := range call.Operands {
		t, err := ctx.TypeOf(operand)
		if err != nil {
			return nil, err
		}
		if t.Family() == ir.FamilyCharacter {
			continue
		}
		call.SetOperand(i, ir.NewCall(function.CastOp, operand, &ir.TypeSpec{Type: ir.Varchar()}))
	}
	return call, nil
}
