package transform

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sqlshift/sqlshift/function"
	"github.com/sqlshift/sqlshift/ir"
)

// applyRelationalCast mirrors the chain's condition-then-rewrite contract.
func applyRelationalCast(t *testing.T, rule *RelationalCastRule, node ir.Expr, ctx *Context) ir.Expr {
	t.Helper()
	ok, err := rule.Condition(node, ctx)
	require.NoError(t, err)
	require.True(t, ok)
	out, err := rule.Rewrite(node, ctx)
	require.NoError(t, err)
	return out
}

func TestRelationalCast_CharacterComparedToNumeric(t *testing.T) {
	ctx, _ := testScope()
	rule := NewRelationalCastRule()

	cmp := ir.NewCall(function.EqualsOp, col("name"), col("id"))
	out := applyRelationalCast(t, rule, cmp, ctx)

	// The character side gets the non-failing cast to the numeric type.
	cast, isCall := out.(*ir.Call).Operand(0).(*ir.Call)
	require.True(t, isCall)
	require.Equal(t, ir.OpTryCast, cast.Op.Kind())
	require.Equal(t, "name", cast.Operand(0).(*ir.Identifier).Name)
	require.Equal(t, ir.Integer(), cast.Operand(1).(*ir.TypeSpec).Type)

	// The numeric side is untouched.
	require.Equal(t, "id", out.(*ir.Call).Operand(1).(*ir.Identifier).Name)
}

func TestRelationalCast_CastSideMatrix(t *testing.T) {
	tests := []struct {
		name     string
		left     string
		right    string
		castSide int // operand index that gets the cast, -1 for none
	}{
		{"character vs boolean", "name", "flag", 0},
		{"character vs numeric", "name", "id", 0},
		{"character vs date", "name", "birthday", 0},
		{"character vs timestamp", "name", "created", 0},
		{"numeric vs date", "id", "birthday", 0},
		{"numeric vs timestamp", "id", "created", 0},
		{"boolean vs numeric", "flag", "id", 0},
		{"binary vs character", "raw", "name", 0},
		{"binary vs numeric", "raw", "id", 0},
		{"numeric vs character mirrored", "id", "name", 1},
		{"timestamp vs numeric mirrored", "created", "id", 1},
		{"same family", "id", "amount", -1},
		{"character vs character", "name", "name", -1},
		{"date vs numeric not castable", "birthday", "id", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _ := testScope()
			rule := NewRelationalCastRule()

			cmp := ir.NewCall(function.LessThanOp, col(tt.left), col(tt.right))
			ok, err := rule.Condition(cmp, ctx)
			require.NoError(t, err)
			if tt.castSide < 0 {
				require.False(t, ok, "pair outside the compatibility table should not match")
				return
			}
			require.True(t, ok)

			out, err := rule.Rewrite(cmp, ctx)
			require.NoError(t, err)

			call := out.(*ir.Call)
			for i := 0; i < 2; i++ {
				operand, isCast := call.Operand(i).(*ir.Call)
				if i == tt.castSide {
					require.True(t, isCast, "operand %d should be cast", i)
					require.Equal(t, ir.OpTryCast, operand.Op.Kind())
				} else {
					require.False(t, isCast, "operand %d should not be cast", i)
				}
			}
		})
	}
}

func TestRelationalCast_DoesNotStackCasts(t *testing.T) {
	ctx, _ := testScope()
	rule := NewRelationalCastRule()

	cmp := ir.NewCall(function.EqualsOp, col("name"), col("id"))
	out := applyRelationalCast(t, rule, cmp, ctx)
	out = applyRelationalCast(t, rule, out, ctx)

	cast := out.(*ir.Call).Operand(0).(*ir.Call)
	require.Equal(t, ir.OpTryCast, cast.Op.Kind())
	// The inner operand is the bare column, not another cast.
	_, isIdent := cast.Operand(0).(*ir.Identifier)
	require.True(t, isIdent)
}

func TestRelationalCast_LiteralComparison(t *testing.T) {
	ctx, _ := testScope()
	rule := NewRelationalCastRule()

	// '0' = 1
	cmp := ir.NewCall(function.EqualsOp, ir.NewStringLiteral("0"), ir.NewIntLiteral(1))
	out := applyRelationalCast(t, rule, cmp, ctx)

	cast := out.(*ir.Call).Operand(0).(*ir.Call)
	require.Equal(t, ir.OpTryCast, cast.Op.Kind())
	require.Equal(t, ir.Integer(), cast.Operand(1).(*ir.TypeSpec).Type)
}

func TestRelationalCast_SameFamilyNotRecordedAsApplied(t *testing.T) {
	ctx, _ := testScope()
	walker := NewWalker(NewChain(NewRelationalCastRule()), ctx)

	cmp := ir.NewCall(function.EqualsOp, col("id"), col("amount"))
	_, err := walker.Rewrite(cmp)
	require.NoError(t, err)

	// No cast was needed, so the rule must not show up as applied.
	require.Empty(t, ctx.AppliedRules())
}

func TestRelationalCast_NotApplicableToNonRelational(t *testing.T) {
	ctx, _ := testScope()
	rule := NewRelationalCastRule()

	add := ir.NewCall(function.PlusOp, col("id"), col("amount"))
	ok, err := rule.Condition(add, ctx)
	require.NoError(t, err)
	require.False(t, ok)
}
