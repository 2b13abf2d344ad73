package function

import (
	"strings"

	"github.com/sqlshift/sqlshift/catalog"
	"github.com/sqlshift/sqlshift/ir"
)

// Resolver maps textual function and operator names to concrete
// descriptors. Static lookups go against the injected read-only registry;
// names declared on views resolve through catalog metadata, with unknown
// implementing classes synthesized on the fly and memoized in the shared
// dynamic registry.
type Resolver struct {
	registry *Registry
	dynamic  *DynamicRegistry
}

func NewResolver(registry *Registry, dynamic *DynamicRegistry) *Resolver {
	return &Resolver{registry: registry, dynamic: dynamic}
}

// Registry returns the static registry the resolver binds against.
func (r *Resolver) Registry() *Registry { return r.registry }

// ResolveUnaryOperator resolves name against the prefix-operator table.
// `!` always maps to logical NOT.
func (r *Resolver) ResolveUnaryOperator(name string) (ir.Operator, error) {
	if name == "!" {
		return NotOp, nil
	}
	var matches []*Descriptor
	for _, op := range prefixOperators {
		if strings.EqualFold(op.Name(), name) {
			matches = append(matches, op)
		}
	}
	switch len(matches) {
	case 0:
		return nil, &UnknownOperatorError{Name: name}
	case 1:
		return matches[0], nil
	}
	return nil, &AmbiguousOperatorError{Name: name}
}

// ResolveBinaryOperator resolves name against the infix/special operator
// table, case-insensitively. `+` and `-` each match both the arithmetic
// and the date-arithmetic operator; the arithmetic one always wins. Zero
// table matches fall through to a two-operand function lookup.
func (r *Resolver) ResolveBinaryOperator(name string) (ir.Operator, error) {
	if name == "+" {
		return PlusOp, nil
	}
	if name == "-" {
		return MinusOp, nil
	}
	var matches []*Descriptor
	for _, op := range infixOperators {
		if strings.EqualFold(op.Name(), name) {
			matches = append(matches, op)
		}
	}
	if len(matches) == 0 {
		if f, err := r.TryResolve(name, nil, 2); err == nil {
			return f, nil
		}
		return nil, &UnknownOperatorError{Name: name}
	}
	if len(matches) > 1 {
		return nil, &AmbiguousOperatorError{Name: name}
	}
	return matches[0], nil
}

// Resolve returns the descriptors registered under name, handling shaded
// class names: the lookup strips the shading prefix, and a hit is
// re-wrapped so its visible name stays the original shaded one, which
// signals to later stages that the shaded class is legitimate. When the
// static table has no entry, the dynamic registry is consulted.
func (r *Resolver) Resolve(name string) []ir.Operator {
	static := r.registry.Lookup(RemoveShadingPrefix(name))
	if len(static) > 0 {
		out := make([]ir.Operator, 0, len(static))
		if IsShaded(name) {
			for _, d := range static {
				out = append(out, d.WithName(name))
			}
		} else {
			for _, d := range static {
				out = append(out, d)
			}
		}
		return out
	}
	if op, ok := r.dynamic.Load(name); ok {
		return []ir.Operator{op}
	}
	return nil
}

// TryResolve resolves a function name to a single operator. The static
// registry is tried first (shading-aware); if it has no entry and a
// catalog table handle was supplied, the name is treated as a declared
// view function. Overloaded names resolve to an unresolved placeholder;
// concrete overload selection belongs to a later validation phase.
// numOperands sizes the operand checker of dynamically synthesized
// operators.
func (r *Resolver) TryResolve(name string, table catalog.Table, numOperands int) (ir.Operator, error) {
	candidates := r.resolveStatic(name)
	if len(candidates) == 0 && table != nil {
		var err error
		candidates, err = r.tryResolveViewFunction(name, table, numOperands)
		if err != nil {
			return nil, err
		}
	}
	switch len(candidates) {
	case 0:
		return nil, &UnknownFunctionError{Name: name}
	case 1:
		return candidates[0], nil
	}
	return NewUnresolved(candidates[0].Name()), nil
}

func (r *Resolver) resolveStatic(name string) []ir.Operator {
	static := r.registry.Lookup(RemoveShadingPrefix(name))
	if len(static) == 0 {
		return nil
	}
	out := make([]ir.Operator, 0, len(static))
	if IsShaded(name) {
		for _, d := range static {
			out = append(out, d.WithName(name))
		}
	} else {
		for _, d := range static {
			out = append(out, d)
		}
	}
	return out
}

// tryResolveViewFunction resolves name as a view-declared function alias
// of the form `<db>_<table>_<alias>`; the `<db>_<table>_` prefix is
// optional. The alias maps to an implementing class through the table's
// declared function parameters. An undeclared alias yields an empty
// result, which the caller surfaces as unresolved.
func (r *Resolver) tryResolveViewFunction(name string, table catalog.Table, numOperands int) ([]ir.Operator, error) {
	prefix := table.Database() + "_" + table.Name() + "_"
	base := name
	if strings.HasPrefix(strings.ToLower(name), strings.ToLower(prefix)) {
		base = name[len(prefix):]
	}
	className, ok := table.FunctionClass(base)
	if !ok {
		return nil, nil
	}

	static := r.registry.Lookup(RemoveShadingPrefix(className))
	if len(static) == 0 {
		op, err := r.resolveDynamically(base, className, table, numOperands)
		if err != nil {
			return nil, err
		}
		return []ir.Operator{op}, nil
	}

	deps := table.Dependencies()
	out := make([]ir.Operator, 0, len(static))
	if IsShaded(className) {
		// The registry holds the unshaded class; re-wrap under the shaded
		// name so the shaded/unshaded distinction survives resolution.
		for _, d := range static {
			out = append(out, NewVersioned(d.WithName(className), deps, base))
		}
	} else {
		for _, d := range static {
			out = append(out, NewVersioned(d, deps, base))
		}
	}
	return out, nil
}

// resolveDynamically synthesizes an operator for a class unknown to the
// static table: its return type stays deferred until a downstream
// consumer inspects the dependency metadata, and it accepts numOperands
// operands of any type. The result is memoized by class name; a second
// resolution of the same class returns the cached descriptor.
func (r *Resolver) resolveDynamically(alias, className string, table catalog.Table, numOperands int) (*Versioned, error) {
	if op, ok := r.dynamic.Load(className); ok {
		return op, nil
	}
	base := NewDescriptor(className, ir.OpFunction, Exactly(numOperands), ReturnsDeferred())
	op := NewVersioned(base, table.Dependencies(), alias)
	memoized, _ := r.dynamic.LoadOrStore(className, op)
	return memoized, nil
}
