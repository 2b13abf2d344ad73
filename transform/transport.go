package transform

import (
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/sqlshift/sqlshift/function"
	"github.com/sqlshift/sqlshift/ir"
)

// TransportTarget is one declared class-to-class substitution: the
// target-native implementing class plus its external dependency
// coordinates, one per target-platform variant.
type TransportTarget struct {
	Class       string
	Coordinates []string
}

// TransportRule substitutes a view-declared UDF class with its declared
// target-native equivalent. Only versioned operators whose name is a
// fully qualified class name are eligible; the mapping is keyed by the
// unshaded class name, resolved by a single lookup. Must run before the
// fallback rule so a missing mapping degrades instead of being masked.
type TransportRule struct {
	mappings map[string]TransportTarget
}

// NewTransportRule builds the rule from a class→target mapping. Keys are
// matched against unshaded class names.
func NewTransportRule(mappings map[string]TransportTarget) *TransportRule {
	return &TransportRule{mappings: mappings}
}

func (r *TransportRule) Name() string { return "TransportUDF" }

func (r *TransportRule) Condition(node ir.Expr, ctx *Context) (bool, error) {
	call, ok := node.(*ir.Call)
	if !ok {
		return false, nil
	}
	op, ok := call.Op.(*function.Versioned)
	if !ok || !isQualifiedClassName(op.Name()) {
		return false, nil
	}
	_, declared := r.mappings[function.RemoveShadingPrefix(op.Name())]
	return declared, nil
}

func (r *TransportRule) Rewrite(node ir.Expr, ctx *Context) (ir.Expr, error) {
	call := node.(*ir.Call)
	op := call.Op.(*function.Versioned)
	target := r.mappings[function.RemoveShadingPrefix(op.Name())]

	ctx.Report().Add(UDFRecord{
		Operator:     op.Name(),
		Target:       target.Class,
		Dependencies: target.Coordinates,
		Kind:         RecordTransported,
	})

	// The replacement is a plain descriptor: once transported, the call
	// is no longer a candidate for the fallback rule.
	replacement := function.NewDescriptor(target.Class, ir.OpFunction, op.Signature(), op.ReturnInference())
	call.SetOperator(replacement)
	return call, nil
}

// isQualifiedClassName reports whether name looks like a fully qualified
// implementing class rather than a bare function name.
func isQualifiedClassName(name string) bool {
	return strings.Contains(name, ".") && name != "."
}

// NativeUDFRule records view-declared UDFs that resolved to a builtin the
// target dialect understands directly. The call itself is left untouched;
// the record lets downstream packaging distinguish "nothing to ship" from
// a transported or fallback UDF.
type NativeUDFRule struct{}

func NewNativeUDFRule() *NativeUDFRule { return &NativeUDFRule{} }

func (r *NativeUDFRule) Name() string { return "NativeUDF" }

func (r *NativeUDFRule) Condition(node ir.Expr, ctx *Context) (bool, error) {
	call, ok := node.(*ir.Call)
	if !ok {
		return false, nil
	}
	op, ok := call.Op.(*function.Versioned)
	return ok && !isQualifiedClassName(op.Name()), nil
}

func (r *NativeUDFRule) Rewrite(node ir.Expr, ctx *Context) (ir.Expr, error) {
	call := node.(*ir.Call)
	op := call.Op.(*function.Versioned)
	log.Debug().Str("function", op.Name()).Str("alias", op.ViewAlias()).
		Msg("view UDF is builtin-backed, no dependency to record")
	ctx.Report().Add(UDFRecord{
		Operator:     op.Name(),
		Target:       op.Name(),
		Dependencies: []string{},
		Kind:         RecordNative,
	})
	return call, nil
}
