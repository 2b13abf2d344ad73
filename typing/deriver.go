// Package typing derives the semantic type of IR expressions against a
// query block's scope, backed by catalog column metadata. It stands in
// for the external validator: the transform context hands it a synthetic
// single-column projection of a node plus one enclosing SELECT, and it
// either types the node in that scope or reports that the scope cannot.
package typing

import (
	"fmt"
	"strings"

	"github.com/sqlshift/sqlshift/catalog"
	"github.com/sqlshift/sqlshift/function"
	"github.com/sqlshift/sqlshift/ir"
)

// Deriver types expressions against catalog metadata.
type Deriver struct {
	cat catalog.Catalog
}

func NewDeriver(cat catalog.Catalog) *Deriver {
	return &Deriver{cat: cat}
}

// DeriveInScope returns the type expr would have as a single projected
// column of scope. Failure means this scope cannot type the node; the
// caller is expected to retry against an older enclosing scope.
func (d *Deriver) DeriveInScope(expr ir.Expr, scope *ir.Select) (ir.DataType, error) {
	return d.derive(expr, scope)
}

func (d *Deriver) derive(expr ir.Expr, scope *ir.Select) (ir.DataType, error) {
	switch e := expr.(type) {
	case *ir.Literal:
		return e.Type, nil

	case *ir.Identifier:
		return d.columnType(e, scope)

	case *ir.TypeSpec:
		return e.Type, nil

	case *ir.Call:
		return d.deriveCall(e, scope)

	case *ir.Case:
		return d.deriveCase(e, scope)

	case *ir.Subquery:
		if e.Select != nil && len(e.Select.Projection) == 1 {
			return d.derive(e.Select.Projection[0], e.Select)
		}
		return ir.Unknown(), fmt.Errorf("typing: cannot type subquery")

	case *ir.Select:
		if len(e.Projection) == 1 {
			return d.derive(e.Projection[0], e)
		}
		return ir.Unknown(), fmt.Errorf("typing: multi-column select has no scalar type")
	}
	return ir.Unknown(), fmt.Errorf("typing: cannot type %s", ir.Summary(expr))
}

func (d *Deriver) deriveCall(call *ir.Call, scope *ir.Select) (ir.DataType, error) {
	// CAST targets carry their type; no need to type the inner operand.
	switch call.Op.Kind() {
	case ir.OpCast, ir.OpTryCast:
		if len(call.Operands) == 2 {
			if spec, ok := call.Operand(1).(*ir.TypeSpec); ok {
				return spec.Type, nil
			}
		}
		return ir.Unknown(), fmt.Errorf("typing: malformed cast")
	case ir.OpAs:
		return d.derive(call.Operand(0), scope)
	}

	args := make([]ir.DataType, len(call.Operands))
	for i, operand := range call.Operands {
		t, err := d.derive(operand, scope)
		if err != nil {
			return ir.Unknown(), err
		}
		args[i] = t
	}

	if desc, ok := call.Op.(interface {
		ReturnType(args []ir.DataType) ir.DataType
	}); ok {
		t := desc.ReturnType(args)
		if t.Name == ir.TypeUnknown && call.Op.Kind() != ir.OpFunction {
			return t, fmt.Errorf("typing: cannot infer result of %s", call.Op.Name())
		}
		return t, nil
	}
	return ir.Unknown(), fmt.Errorf("typing: operator %s carries no inference", call.Op.Name())
}

func (d *Deriver) deriveCase(e *ir.Case, scope *ir.Select) (ir.DataType, error) {
	branches := make([]ir.Expr, 0, len(e.Thens)+1)
	branches = append(branches, e.Thens...)
	if e.Else != nil {
		branches = append(branches, e.Else)
	}
	// The expression's type is the first branch that isn't a bare NULL.
	for _, branch := range branches {
		if lit, ok := branch.(*ir.Literal); ok && lit.IsNull() {
			continue
		}
		return d.derive(branch, scope)
	}
	return ir.Null(), nil
}

func (d *Deriver) columnType(id *ir.Identifier, scope *ir.Select) (ir.DataType, error) {
	if scope == nil || scope.From == nil {
		return ir.Unknown(), fmt.Errorf("typing: no scope for column %s", id)
	}
	switch from := scope.From.(type) {
	case *ir.Table:
		if id.Qualifier != "" && !strings.EqualFold(id.Qualifier, from.Name) && !strings.EqualFold(id.Qualifier, from.Alias) {
			return ir.Unknown(), fmt.Errorf("typing: qualifier %s does not match scope", id.Qualifier)
		}
		tbl, err := d.cat.Table(from.DB, from.Name)
		if err != nil {
			return ir.Unknown(), err
		}
		if t, ok := tbl.Column(id.Name); ok {
			return t, nil
		}
		return ir.Unknown(), fmt.Errorf("typing: unknown column %s in %s.%s", id.Name, from.DB, from.Name)

	case *ir.Subquery:
		inner := from.Select
		for _, item := range inner.Projection {
			switch proj := item.(type) {
			case *ir.Identifier:
				if strings.EqualFold(proj.Name, id.Name) {
					return d.derive(proj, inner)
				}
			case *ir.Call:
				if proj.Op.Kind() == ir.OpAs {
					if alias, ok := proj.Operand(1).(*ir.Identifier); ok && strings.EqualFold(alias.Name, id.Name) {
						return d.derive(proj.Operand(0), inner)
					}
				}
			}
		}
		return ir.Unknown(), fmt.Errorf("typing: unknown column %s in derived table", id.Name)
	}
	return ir.Unknown(), fmt.Errorf("typing: unsupported FROM shape")
}

// Ensure Descriptor and Versioned satisfy the inference lookup used in
// deriveCall.
var (
	_ interface {
		ReturnType(args []ir.DataType) ir.DataType
	} = (*function.Descriptor)(nil)
	_ interface {
		ReturnType(args []ir.DataType) ir.DataType
	} = (*function.Versioned)(nil)
)
