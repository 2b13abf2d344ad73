package transform

import (
	"fmt"

	"github.com/sqlshift/sqlshift/ir"
)

// TypeDerivationError is returned when a node's type cannot be derived
// against any enclosing scope. Outside the scoped retry loop this is an
// invariant violation: a rule produced a node the validator cannot make
// sense of.
type TypeDerivationError struct {
	Node ir.Expr
}

func (e *TypeDerivationError) Error() string {
	return fmt.Sprintf("cannot derive type for %s", ir.Summary(e.Node))
}

// UnsupportedUDFError is returned for denylisted UDF classes: translating
// them compiles but fails at execution, so the conversion fails fast and
// the caller must run the whole query natively in the source dialect.
type UnsupportedUDFError struct {
	Name string
}

func (e *UnsupportedUDFError) Error() string {
	return fmt.Sprintf("unsupported UDF: %s", e.Name)
}
