// Package ir defines the dialect-neutral SQL expression tree that the
// rewrite pipeline operates on. The node set is closed: every shape a
// transform rule can encounter is one of the variants below, and rules
// dispatch with a single type switch instead of open-ended inspection.
//
// Nodes are mutable. The rewrite primitive is replacing a child reference
// in place (SetOperand and friends); the tree owner never deletes nodes.
package ir

import (
	"fmt"
	"strings"
)

// OpKind tags an operator with its dispatch class. Rules and the renderer
// switch on the kind, never on the operator's runtime type.
type OpKind int

const (
	OpFunction   OpKind = iota // generic named function call
	OpUnresolved               // overloaded name deferred to later validation

	OpEquals
	OpNotEquals
	OpLessThan
	OpLessThanOrEqual
	OpGreaterThan
	OpGreaterThanOrEqual

	OpPlus
	OpMinus
	OpMultiply
	OpDivide
	OpModulo

	OpUnaryMinus
	OpUnaryPlus
	OpNot
	OpAnd
	OpOr

	OpIsNull
	OpIsNotNull
	OpLike
	OpRegexp

	OpItem // array/map element access: a[i]
	OpCast
	OpTryCast
	OpAs // expr AS alias
)

// IsRelational reports whether the kind is a binary comparison operator.
func (k OpKind) IsRelational() bool {
	switch k {
	case OpEquals, OpNotEquals, OpLessThan, OpLessThanOrEqual, OpGreaterThan, OpGreaterThanOrEqual:
		return true
	}
	return false
}

// Operator is the resolved callable a Call node references. Concrete
// descriptors live in the function package; the tree only needs the name
// and the dispatch kind.
type Operator interface {
	Name() string
	Kind() OpKind
}

// Node is any element of the expression tree.
type Node interface {
	node()
}

// Expr is a node that produces a value.
type Expr interface {
	Node
	expr()
}

// TableRef is a FROM-clause relation.
type TableRef interface {
	Node
	tableRef()
}

// Call is an operator application: a resolved operator plus ordered
// operands. Operands and the operator reference may be replaced in place
// by rewrite rules.
type Call struct {
	Op       Operator
	Operands []Expr
}

func NewCall(op Operator, operands ...Expr) *Call {
	return &Call{Op: op, Operands: operands}
}

func (c *Call) Operand(i int) Expr { return c.Operands[i] }

func (c *Call) SetOperand(i int, e Expr) { c.Operands[i] = e }

func (c *Call) SetOperator(op Operator) { c.Op = op }

// Case is a searched or simple CASE expression. Operand is nil for the
// searched form. Whens[i] pairs with Thens[i]; Else may be nil.
type Case struct {
	Operand Expr
	Whens   []Expr
	Thens   []Expr
	Else    Expr
}

// Identifier is a (possibly qualified) column reference.
type Identifier struct {
	Qualifier string
	Name      string
}

func NewIdentifier(name string) *Identifier { return &Identifier{Name: name} }

func (i *Identifier) String() string {
	if i.Qualifier != "" {
		return i.Qualifier + "." + i.Name
	}
	return i.Name
}

// Literal is a typed constant.
type Literal struct {
	Type  DataType
	Value any
}

func NewIntLiteral(v int64) *Literal     { return &Literal{Type: Integer(), Value: v} }
func NewStringLiteral(v string) *Literal { return &Literal{Type: Varchar(), Value: v} }
func NewBoolLiteral(v bool) *Literal     { return &Literal{Type: Boolean(), Value: v} }
func NewFloatLiteral(v float64) *Literal { return &Literal{Type: Double(), Value: v} }
func NewNullLiteral() *Literal           { return &Literal{Type: Null()} }

func (l *Literal) IsNull() bool { return l.Type.Name == TypeNull }

// IntValue returns the literal's integer value if it holds one.
func (l *Literal) IntValue() (int64, bool) {
	v, ok := l.Value.(int64)
	return v, ok
}

// TypeSpec is the target-type operand of a CAST/TRY_CAST call.
type TypeSpec struct {
	Type DataType
}

// Star is the `*` projection item.
type Star struct{}

// Subquery is a parenthesized SELECT used as a scalar expression or a
// derived table.
type Subquery struct {
	Select *Select
	Alias  string
}

// Table is a catalog table or view reference.
type Table struct {
	DB    string
	Name  string
	Alias string
}

// OrderItem is one ORDER BY entry.
type OrderItem struct {
	Expr Expr
	Desc bool
}

// Select is a query block. It doubles as the scope unit for type
// re-derivation: the walker stacks enclosing Selects and validates
// synthesized nodes against them.
type Select struct {
	Distinct   bool
	Projection []Expr
	From       TableRef
	Where      Expr
	GroupBy    []Expr
	Having     Expr
	OrderBy    []OrderItem
	Limit      Expr
}

func (*Call) node()       {}
func (*Case) node()       {}
func (*Identifier) node() {}
func (*Literal) node()    {}
func (*TypeSpec) node()   {}
func (*Star) node()       {}
func (*Subquery) node()   {}
func (*Table) node()      {}
func (*Select) node()     {}

func (*Call) expr()       {}
func (*Case) expr()       {}
func (*Identifier) expr() {}
func (*Literal) expr()    {}
func (*TypeSpec) expr()   {}
func (*Star) expr()       {}
func (*Subquery) expr()   {}
func (*Select) expr()     {}

func (*Table) tableRef()    {}
func (*Subquery) tableRef() {}

// Summary renders a short, single-line description of a node for error
// messages and logs.
func Summary(n Node) string {
	switch v := n.(type) {
	case *Call:
		args := make([]string, len(v.Operands))
		for i, o := range v.Operands {
			args[i] = Summary(o)
		}
		return v.Op.Name() + "(" + strings.Join(args, ", ") + ")"
	case *Case:
		return "CASE"
	case *Identifier:
		return v.String()
	case *Literal:
		if v.IsNull() {
			return "NULL"
		}
		return fmt.Sprintf("%v", v.Value)
	case *TypeSpec:
		return v.Type.String()
	case *Star:
		return "*"
	case *Subquery:
		return "(subquery)"
	case *Table:
		if v.DB != "" {
			return v.DB + "." + v.Name
		}
		return v.Name
	case *Select:
		return "SELECT"
	}
	return "?"
}
