package function

import "github.com/sqlshift/sqlshift/ir"

// Shared operator descriptors. These are the fixed, process-wide
// callables referenced by resolved trees and synthesized by rewrite
// rules; all are immutable.
var (
	EqualsOp             = NewDescriptor("=", ir.OpEquals, Exactly(2), ReturnsFixed(ir.Boolean()))
	NotEqualsOp          = NewDescriptor("<>", ir.OpNotEquals, Exactly(2), ReturnsFixed(ir.Boolean()))
	LessThanOp           = NewDescriptor("<", ir.OpLessThan, Exactly(2), ReturnsFixed(ir.Boolean()))
	LessThanOrEqualOp    = NewDescriptor("<=", ir.OpLessThanOrEqual, Exactly(2), ReturnsFixed(ir.Boolean()))
	GreaterThanOp        = NewDescriptor(">", ir.OpGreaterThan, Exactly(2), ReturnsFixed(ir.Boolean()))
	GreaterThanOrEqualOp = NewDescriptor(">=", ir.OpGreaterThanOrEqual, Exactly(2), ReturnsFixed(ir.Boolean()))

	PlusOp     = NewDescriptor("+", ir.OpPlus, Exactly(2), ReturnsNumericPromotion())
	MinusOp    = NewDescriptor("-", ir.OpMinus, Exactly(2), ReturnsNumericPromotion())
	MultiplyOp = NewDescriptor("*", ir.OpMultiply, Exactly(2), ReturnsNumericPromotion())
	DivideOp   = NewDescriptor("/", ir.OpDivide, Exactly(2), ReturnsFixed(ir.Double()))
	ModuloOp   = NewDescriptor("%", ir.OpModulo, Exactly(2), ReturnsNumericPromotion())

	// Date arithmetic shares the textual names of PLUS and MINUS; kept in
	// the operator table but never preferred over the arithmetic pair.
	DatetimePlusOp  = NewDescriptor("+", ir.OpPlus, Exactly(2), ReturnsFixed(ir.Timestamp()))
	DatetimeMinusOp = NewDescriptor("-", ir.OpMinus, Exactly(2), ReturnsFixed(ir.Timestamp()))

	UnaryMinusOp = NewDescriptor("-", ir.OpUnaryMinus, Exactly(1), ReturnsArg(0))
	UnaryPlusOp  = NewDescriptor("+", ir.OpUnaryPlus, Exactly(1), ReturnsArg(0))
	NotOp        = NewDescriptor("NOT", ir.OpNot, Exactly(1), ReturnsFixed(ir.Boolean()))
	AndOp        = NewDescriptor("AND", ir.OpAnd, Exactly(2), ReturnsFixed(ir.Boolean()))
	OrOp         = NewDescriptor("OR", ir.OpOr, Exactly(2), ReturnsFixed(ir.Boolean()))

	IsNullOp    = NewDescriptor("IS NULL", ir.OpIsNull, Exactly(1), ReturnsFixed(ir.Boolean()))
	IsNotNullOp = NewDescriptor("IS NOT NULL", ir.OpIsNotNull, Exactly(1), ReturnsFixed(ir.Boolean()))
	LikeOp      = NewDescriptor("LIKE", ir.OpLike, Exactly(2), ReturnsFixed(ir.Boolean()))
	RegexpOp    = NewDescriptor("REGEXP", ir.OpRegexp, Exactly(2), ReturnsFixed(ir.Boolean()))
	RLikeOp     = NewDescriptor("RLIKE", ir.OpRegexp, Exactly(2), ReturnsFixed(ir.Boolean()))

	ItemOp = NewDescriptor("ITEM", ir.OpItem, Exactly(2), func(args []ir.DataType) ir.DataType {
		if len(args) > 0 && args[0].Elem != nil {
			return *args[0].Elem
		}
		return ir.Unknown()
	})

	CastOp = NewDescriptor("CAST", ir.OpCast, Exactly(2), ReturnsArg(1))

	// TRY_CAST returns NULL instead of failing on an inconvertible value;
	// the relational cast-insertion rule relies on that.
	TryCastOp = NewDescriptor("TRY_CAST", ir.OpTryCast, Exactly(2), ReturnsArg(1))

	AsOp = NewDescriptor("AS", ir.OpAs, Exactly(2), ReturnsArg(0))
)

// infixOperators is the fixed operator table for binary and special
// operators, matched case-insensitively by ResolveBinaryOperator.
var infixOperators = []*Descriptor{
	EqualsOp, NotEqualsOp, LessThanOp, LessThanOrEqualOp, GreaterThanOp, GreaterThanOrEqualOp,
	PlusOp, MinusOp, MultiplyOp, DivideOp, ModuloOp,
	DatetimePlusOp, DatetimeMinusOp,
	AndOp, OrOp, LikeOp, RegexpOp, RLikeOp,
	ItemOp,
}

// prefixOperators is the fixed operator table for unary prefix operators.
var prefixOperators = []*Descriptor{
	UnaryMinusOp, UnaryPlusOp, NotOp,
}
