package transform

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sqlshift/sqlshift/function"
	"github.com/sqlshift/sqlshift/ir"
	"github.com/sqlshift/sqlshift/render"
)

func fromUnixtimeCall(operands ...ir.Expr) *ir.Call {
	op := function.NewScalar("from_unixtime", function.Between(1, 2), ir.Timestamp())
	return ir.NewCall(op, operands...)
}

func TestFromUnixtime_SingleArgument(t *testing.T) {
	ctx, _ := testScope()
	rule := NewFromUnixtimeRule()

	call := fromUnixtimeCall(col("ts"))
	ok, err := rule.Condition(call, ctx)
	require.NoError(t, err)
	require.True(t, ok)

	out, err := rule.Rewrite(call, ctx)
	require.NoError(t, err)
	require.Equal(t, "format_datetime(from_unixtime(ts), 'yyyy-MM-dd HH:mm:ss')", render.Render(out))
}

func TestFromUnixtime_ExplicitFormatKept(t *testing.T) {
	ctx, _ := testScope()
	rule := NewFromUnixtimeRule()

	call := fromUnixtimeCall(col("ts"), ir.NewStringLiteral("yyyy-MM-dd"))
	out, err := rule.Rewrite(call, ctx)
	require.NoError(t, err)
	require.Equal(t, "format_datetime(from_unixtime(ts), 'yyyy-MM-dd')", render.Render(out))
}

func TestFromUnixtime_SynthesizedInnerCallNotReExpanded(t *testing.T) {
	ctx, _ := testScope()
	rule := NewFromUnixtimeRule()

	call := fromUnixtimeCall(col("ts"))
	out, err := rule.Rewrite(call, ctx)
	require.NoError(t, err)

	// The replacement's inner call carries the same operator name; the
	// rule must not fire on it again when the walker descends.
	inner := out.(*ir.Call).Operand(0)
	ok, err := rule.Condition(inner, ctx)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestFromUnixtime_EndToEndThroughWalker(t *testing.T) {
	ctx, sel := testScope()
	sel.Projection = []ir.Expr{fromUnixtimeCall(col("ts"))}

	walker := NewWalker(NewChain(NewFromUnixtimeRule()), ctx)
	out, err := walker.Rewrite(sel)
	require.NoError(t, err)

	require.Equal(t,
		"SELECT format_datetime(from_unixtime(ts), 'yyyy-MM-dd HH:mm:ss') FROM db1.tbl1",
		render.Render(out))
	require.Equal(t, []string{"FromUnixtime"}, ctx.AppliedRules())
}
