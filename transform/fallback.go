package transform

import (
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/sqlshift/sqlshift/function"
	"github.com/sqlshift/sqlshift/ir"
)

// hardDenylistedClasses always fail the conversion. These classes compile
// under the fallback runtime but fail during execution, so translating
// them would trade a clean native run for a broken one; the caller must
// execute the whole query in the source dialect instead.
var hardDenylistedClasses = map[string]struct{}{
	"com.acme.udf.userinterfacelookup.hive.UserInterfaceLookup": {},
	"com.acme.udf.portallookup.hive.PortalLookup":               {},
}

// FallbackRule re-emits a versioned UDF call against its original class
// when no transport mapping was declared for it, recording the declared
// dependency coordinates for downstream packaging. Runs after
// TransportRule; transported calls no longer carry a versioned operator
// and are skipped.
type FallbackRule struct {
	denylist map[string]struct{}
}

// NewFallbackRule builds the rule. extraDenylist extends the built-in
// denylist with configured class names.
func NewFallbackRule(extraDenylist []string) *FallbackRule {
	denylist := make(map[string]struct{}, len(hardDenylistedClasses)+len(extraDenylist))
	for class := range hardDenylistedClasses {
		denylist[class] = struct{}{}
	}
	for _, class := range extraDenylist {
		denylist[class] = struct{}{}
	}
	return &FallbackRule{denylist: denylist}
}

func (r *FallbackRule) Name() string { return "FallbackUDF" }

func (r *FallbackRule) Condition(node ir.Expr, ctx *Context) (bool, error) {
	call, ok := node.(*ir.Call)
	if !ok {
		return false, nil
	}
	op, ok := call.Op.(*function.Versioned)
	return ok && isQualifiedClassName(op.Name()), nil
}

func (r *FallbackRule) Rewrite(node ir.Expr, ctx *Context) (ir.Expr, error) {
	call := node.(*ir.Call)
	op := call.Op.(*function.Versioned)
	className := op.Name()

	if _, denied := r.denylist[className]; denied {
		return nil, &UnsupportedUDFError{Name: className}
	}

	versionedName := op.VersionedAlias()
	dependencies := op.Dependencies()
	log.Info().Str("function", className).Strs("dependencies", dependencies).
		Msg("no transport mapping declared, falling back to original UDF class")

	ctx.Report().Add(UDFRecord{
		Operator:     className,
		Target:       versionedName,
		Dependencies: dependencies,
		Kind:         RecordFallback,
	})

	replacement := function.NewDescriptor(versionedName, ir.OpFunction, op.Signature(), op.ReturnInference())
	call.SetOperator(replacement)
	return call, nil
}

// OperatorRenameRule maps source-dialect operator names straight to their
// target-dialect spelling, resolved by a single case-folded lookup, e.g.
// size → cardinality.
type OperatorRenameRule struct {
	renames map[string]string
}

func NewOperatorRenameRule(renames map[string]string) *OperatorRenameRule {
	folded := make(map[string]string, len(renames))
	for from, to := range renames {
		folded[strings.ToLower(from)] = to
	}
	return &OperatorRenameRule{renames: folded}
}

func (r *OperatorRenameRule) Name() string { return "OperatorRename" }

func (r *OperatorRenameRule) Condition(node ir.Expr, ctx *Context) (bool, error) {
	call, ok := node.(*ir.Call)
	if !ok || call.Op.Kind() != ir.OpFunction {
		return false, nil
	}
	target, declared := r.renames[strings.ToLower(call.Op.Name())]
	return declared && !strings.EqualFold(target, call.Op.Name()), nil
}

func (r *OperatorRenameRule) Rewrite(node ir.Expr, ctx *Context) (ir.Expr, error) {
	call := node.(*ir.Call)
	target := r.renames[strings.ToLower(call.Op.Name())]
	if desc, ok := call.Op.(*function.Descriptor); ok {
		call.SetOperator(desc.WithName(target))
	} else {
		call.SetOperator(function.NewScalar(target, function.Variadic(0), ir.Unknown()))
	}
	return call, nil
}
