package transform

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sqlshift/sqlshift/function"
	"github.com/sqlshift/sqlshift/ir"
)

func versionedCall(class, alias string, deps []string, operands ...ir.Expr) *ir.Call {
	base := function.NewDescriptor(class, ir.OpFunction, function.Exactly(len(operands)), function.ReturnsDeferred())
	return ir.NewCall(function.NewVersioned(base, deps, alias), operands...)
}

func TestFallback_RecordsAndRenames(t *testing.T) {
	ctx, _ := testScope()
	rule := NewFallbackRule(nil)

	call := versionedCall("shadedudf_1_0_0.com.acme.MyFunc", "myFunc", []string{"ivy://acme:udf:1.0"}, col("id"))
	ok, err := rule.Condition(call, ctx)
	require.NoError(t, err)
	require.True(t, ok)

	out, err := rule.Rewrite(call, ctx)
	require.NoError(t, err)

	// The call now targets the version-suffixed alias and is no longer
	// versioned, so a second chain pass skips it.
	require.Equal(t, "myFunc_1_0_0", out.(*ir.Call).Op.Name())
	_, stillVersioned := out.(*ir.Call).Op.(*function.Versioned)
	require.False(t, stillVersioned)

	records := ctx.Report().Records()
	require.Len(t, records, 1)
	require.Equal(t, RecordFallback, records[0].Kind)
	require.Equal(t, "shadedudf_1_0_0.com.acme.MyFunc", records[0].Operator)
	require.Equal(t, "myFunc_1_0_0", records[0].Target)
	require.Equal(t, []string{"ivy://acme:udf:1.0"}, records[0].Dependencies)
}

func TestFallback_DenylistedClassFailsConversion(t *testing.T) {
	ctx, _ := testScope()
	rule := NewFallbackRule([]string{"com.acme.Forbidden"})

	call := versionedCall("com.acme.Forbidden", "forbidden", nil, col("id"))
	_, err := rule.Rewrite(call, ctx)

	var unsupported *UnsupportedUDFError
	require.ErrorAs(t, err, &unsupported)
	require.Equal(t, "com.acme.Forbidden", unsupported.Name)
	// A failed conversion leaves no usage record behind.
	require.Empty(t, ctx.Report().Records())
}

func TestFallback_BuiltInDenylist(t *testing.T) {
	ctx, _ := testScope()
	rule := NewFallbackRule(nil)

	call := versionedCall("com.acme.udf.portallookup.hive.PortalLookup", "lookup", nil, col("id"))
	_, err := rule.Rewrite(call, ctx)
	var unsupported *UnsupportedUDFError
	require.ErrorAs(t, err, &unsupported)
}

func TestFallback_SkipsUnqualifiedNames(t *testing.T) {
	ctx, _ := testScope()
	rule := NewFallbackRule(nil)

	// A builtin-backed view function has no class to fall back to.
	call := versionedCall("concat", "myConcat", nil, col("name"))
	ok, err := rule.Condition(call, ctx)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestTransport_DeclaredMappingWins(t *testing.T) {
	ctx, _ := testScope()
	transport := NewTransportRule(map[string]TransportTarget{
		"com.acme.MyFunc": {Class: "native_my_func", Coordinates: []string{"ivy://acme:native:2.0"}},
	})
	fallback := NewFallbackRule(nil)

	call := versionedCall("shadedudf_1_0_0.com.acme.MyFunc", "myFunc", []string{"ivy://acme:udf:1.0"}, col("id"))

	// Transport runs first and strips the versioned operator.
	ok, err := transport.Condition(call, ctx)
	require.NoError(t, err)
	require.True(t, ok)
	out, err := transport.Rewrite(call, ctx)
	require.NoError(t, err)
	require.Equal(t, "native_my_func", out.(*ir.Call).Op.Name())

	// Fallback then has nothing to do.
	ok, err = fallback.Condition(out, ctx)
	require.NoError(t, err)
	require.False(t, ok)

	records := ctx.Report().Records()
	require.Len(t, records, 1)
	require.Equal(t, RecordTransported, records[0].Kind)
	require.Equal(t, "native_my_func", records[0].Target)
	require.Equal(t, []string{"ivy://acme:native:2.0"}, records[0].Dependencies)
}

func TestTransport_UndeclaredClassNotEligible(t *testing.T) {
	ctx, _ := testScope()
	transport := NewTransportRule(map[string]TransportTarget{})

	call := versionedCall("com.acme.MyFunc", "myFunc", nil, col("id"))
	ok, err := transport.Condition(call, ctx)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestNativeUDF_RecordsBuiltinBackedAlias(t *testing.T) {
	ctx, _ := testScope()
	rule := NewNativeUDFRule()

	call := versionedCall("concat", "myConcat", nil, col("name"))
	ok, err := rule.Condition(call, ctx)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = rule.Rewrite(call, ctx)
	require.NoError(t, err)

	records := ctx.Report().Records()
	require.Len(t, records, 1)
	require.Equal(t, RecordNative, records[0].Kind)
	require.Equal(t, "concat", records[0].Operator)
	require.Empty(t, records[0].Dependencies)
}

func TestOperatorRename(t *testing.T) {
	ctx, _ := testScope()
	rule := NewOperatorRenameRule(map[string]string{"size": "cardinality"})

	call := ir.NewCall(function.NewScalar("size", function.Exactly(1), ir.Integer()), col("tags"))
	ok, err := rule.Condition(call, ctx)
	require.NoError(t, err)
	require.True(t, ok)

	out, err := rule.Rewrite(call, ctx)
	require.NoError(t, err)
	require.Equal(t, "cardinality", out.(*ir.Call).Op.Name())

	// Already-renamed calls are not eligible again.
	ok, err = rule.Condition(out, ctx)
	require.NoError(t, err)
	require.False(t, ok)
}
