package transform

import (
	"github.com/sqlshift/sqlshift/function"
	"github.com/sqlshift/sqlshift/ir"
)

// castableFamilies maps a "source" type family to the families the source
// dialect compares implicitly but the target dialect does not. The side
// whose family is the key is the side that gets the cast.
var castableFamilies = map[ir.TypeFamily][]ir.TypeFamily{
	ir.FamilyCharacter: {ir.FamilyBoolean, ir.FamilyNumeric, ir.FamilyDate, ir.FamilyTime, ir.FamilyTimestamp},
	ir.FamilyNumeric:   {ir.FamilyDate, ir.FamilyTime, ir.FamilyTimestamp},
	ir.FamilyBoolean:   {ir.FamilyNumeric},
	ir.FamilyBinary:    {ir.FamilyCharacter, ir.FamilyNumeric},
}

func familiesCastable(from, to ir.TypeFamily) bool {
	for _, f := range castableFamilies[from] {
		if f == to {
			return true
		}
	}
	return false
}

// RelationalCastRule inserts an explicit non-failing cast for comparison
// operands whose type families the target dialect does not implicitly
// compare, e.g. `"0" = 1` becomes `TRY_CAST("0" AS INTEGER) = 1`. An
// operand already wrapped in a TRY_CAST from an earlier pass is unwrapped
// before re-deciding, so repeated passes never stack casts.
type RelationalCastRule struct {
	// Decided by Condition against the compatibility table, consumed by
	// Rewrite. Per-conversion instance state.
	castSide int
	castType ir.DataType
}

func NewRelationalCastRule() *RelationalCastRule { return &RelationalCastRule{} }

func (r *RelationalCastRule) Name() string { return "RelationalCast" }

func (r *RelationalCastRule) Condition(node ir.Expr, ctx *Context) (bool, error) {
	call, ok := node.(*ir.Call)
	if !ok || !call.Op.Kind().IsRelational() || len(call.Operands) != 2 {
		return false, nil
	}
	leftType, err := ctx.TypeOf(unwrapTryCast(call.Operand(0)))
	if err != nil {
		return false, err
	}
	rightType, err := ctx.TypeOf(unwrapTryCast(call.Operand(1)))
	if err != nil {
		return false, err
	}
	switch {
	case familiesCastable(leftType.Family(), rightType.Family()):
		r.castSide, r.castType = 0, rightType
	case familiesCastable(rightType.Family(), leftType.Family()):
		r.castSide, r.castType = 1, leftType
	default:
		return false, nil
	}
	return true, nil
}

func (r *RelationalCastRule) Rewrite(node ir.Expr, ctx *Context) (ir.Expr, error) {
	call := node.(*ir.Call)
	target := unwrapTryCast(call.Operand(r.castSide))
	other := unwrapTryCast(call.Operand(1 - r.castSide))
	call.SetOperand(r.castSide, tryCastTo(target, r.castType))
	call.SetOperand(1-r.castSide, other)
	return call, nil
}

func unwrapTryCast(e ir.Expr) ir.Expr {
	if call, ok := e.(*ir.Call); ok && call.Op.Kind() == ir.OpTryCast {
		return call.Operand(0)
	}
	return e
}

func tryCastTo(e ir.Expr, t ir.DataType) ir.Expr {
	return ir.NewCall(function.TryCastOp, e, &ir.TypeSpec{Type: t.Clone()})
}
