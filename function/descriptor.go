package function

import "github.com/sqlshift/sqlshift/ir"

// ReturnTypeInference derives a call's result type from its argument
// types.
type ReturnTypeInference func(args []ir.DataType) ir.DataType

// ReturnsFixed always infers the given type.
func ReturnsFixed(t ir.DataType) ReturnTypeInference {
	return func([]ir.DataType) ir.DataType { return t }
}

// ReturnsArg infers the type of the i-th argument.
func ReturnsArg(i int) ReturnTypeInference {
	return func(args []ir.DataType) ir.DataType {
		if i < len(args) {
			return args[i]
		}
		return ir.Unknown()
	}
}

// ReturnsNumericPromotion infers the wider numeric type of the first two
// arguments, defaulting to BIGINT.
func ReturnsNumericPromotion() ReturnTypeInference {
	rank := func(t ir.DataType) int {
		switch t.Name {
		case ir.TypeDouble, ir.TypeFloat, ir.TypeDecimal:
			return 2
		case ir.TypeBigint:
			return 1
		}
		return 0
	}
	return func(args []ir.DataType) ir.DataType {
		out := ir.Integer()
		best := -1
		for _, a := range args {
			if a.Family() != ir.FamilyNumeric {
				continue
			}
			if r := rank(a); r > best {
				best = r
				out = a
			}
		}
		return out
	}
}

// ReturnsDeferred is the generic, dependency-aware inference attached to
// dynamically synthesized operators: the type stays unknown until a later
// consumer inspects the operator's dependency metadata.
func ReturnsDeferred() ReturnTypeInference {
	return func([]ir.DataType) ir.DataType { return ir.Unknown() }
}

// Signature constrains the operand count of a descriptor. Max of -1 means
// variadic.
type Signature struct {
	Min int
	Max int
}

// Exactly builds a signature accepting exactly n operands.
func Exactly(n int) Signature { return Signature{Min: n, Max: n} }

// Between builds a signature accepting between lo and hi operands.
func Between(lo, hi int) Signature { return Signature{Min: lo, Max: hi} }

// Variadic builds a signature accepting at least lo operands.
func Variadic(lo int) Signature { return Signature{Min: lo, Max: -1} }

// Accepts reports whether n operands satisfy the signature.
func (s Signature) Accepts(n int) bool {
	if n < s.Min {
		return false
	}
	return s.Max < 0 || n <= s.Max
}

// Descriptor is one resolvable callable: a name, an operand-count
// constraint, a return-type inference rule, and an opaque implementation
// handle (the class name that eventually executes the call). Descriptors
// are immutable once constructed; AST nodes reference them without owning
// them.
type Descriptor struct {
	name string
	kind ir.OpKind
	sig  Signature
	ret  ReturnTypeInference
	impl string
}

func NewDescriptor(name string, kind ir.OpKind, sig Signature, ret ReturnTypeInference) *Descriptor {
	if ret == nil {
		ret = ReturnsFixed(ir.Unknown())
	}
	return &Descriptor{name: name, kind: kind, sig: sig, ret: ret, impl: name}
}

// NewScalar builds a plain function descriptor with a fixed return type.
func NewScalar(name string, sig Signature, ret ir.DataType) *Descriptor {
	return NewDescriptor(name, ir.OpFunction, sig, ReturnsFixed(ret))
}

// NewUnresolved builds the placeholder descriptor returned for overloaded
// names; concrete overload selection happens in a later validation phase.
func NewUnresolved(name string) *Descriptor {
	return NewDescriptor(name, ir.OpUnresolved, Variadic(0), ReturnsFixed(ir.Unknown()))
}

func (d *Descriptor) Name() string           { return d.name }
func (d *Descriptor) Kind() ir.OpKind        { return d.kind }
func (d *Descriptor) Signature() Signature   { return d.sig }
func (d *Descriptor) Implementation() string { return d.impl }

// ReturnType infers the call's result type from its argument types.
func (d *Descriptor) ReturnType(args []ir.DataType) ir.DataType { return d.ret(args) }

// ReturnInference exposes the inference rule so a rewrite can re-attach it
// to a renamed operator.
func (d *Descriptor) ReturnInference() ReturnTypeInference { return d.ret }

// WithName re-wraps the descriptor under a different visible name, keeping
// the inference rule, signature and implementation handle. Used to surface
// shaded class names as legitimate operators.
func (d *Descriptor) WithName(name string) *Descriptor {
	return &Descriptor{name: name, kind: d.kind, sig: d.sig, ret: d.ret, impl: d.impl}
}
