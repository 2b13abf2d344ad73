package transform

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sqlshift/sqlshift/function"
	"github.com/sqlshift/sqlshift/ir"
	"github.com/sqlshift/sqlshift/render"
)

func TestConcatCast_CastsNonCharacterOperands(t *testing.T) {
	ctx, _ := testScope()
	rule := NewConcatCastRule()

	concat := ir.NewCall(function.NewScalar("concat", function.Variadic(1), ir.Varchar()),
		col("name"), col("id"), ir.NewStringLiteral("-"), col("created"))

	ok, err := rule.Condition(concat, ctx)
	require.NoError(t, err)
	require.True(t, ok)

	out, err := rule.Rewrite(concat, ctx)
	require.NoError(t, err)
	require.Equal(t,
		"concat(name, CAST(id AS VARCHAR), '-', CAST(created AS VARCHAR))",
		render.Render(out))
}

func TestConcatCast_AllCharacterIsNoop(t *testing.T) {
	ctx, _ := testScope()
	rule := NewConcatCastRule()

	concat := ir.NewCall(function.NewScalar("concat", function.Variadic(1), ir.Varchar()),
		col("name"), ir.NewStringLiteral("x"))
	out, err := rule.Rewrite(concat, ctx)
	require.NoError(t, err)
	require.Equal(t, "concat(name, 'x')", render.Render(out))
}

func TestConcatCast_OtherFunctionsNotEligible(t *testing.T) {
	ctx, _ := testScope()
	rule := NewConcatCastRule()

	call := ir.NewCall(function.NewScalar("lower", function.Exactly(1), ir.Varchar()), col("name"))
	ok, err := rule.Condition(call, ctx)
	require.NoError(t, err)
	require.False(t, ok)
}
