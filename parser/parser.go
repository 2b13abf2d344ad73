// Package parser is the source-dialect front-end: it parses SQL text
// with the vitess parser and converts the resulting AST into the IR the
// rewrite pipeline operates on, binding function names to concrete
// operators through the resolver as it goes. Queries arriving as
// already-built IR (the embedding case) skip this package entirely.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"vitess.io/vitess/go/vt/sqlparser"

	"github.com/sqlshift/sqlshift/catalog"
	"github.com/sqlshift/sqlshift/function"
	"github.com/sqlshift/sqlshift/ir"
)

// Parser converts SQL text to bound IR.
type Parser struct {
	parser   *sqlparser.Parser
	resolver *function.Resolver
	catalog  catalog.Catalog
}

func New(resolver *function.Resolver, cat catalog.Catalog) (*Parser, error) {
	p, err := sqlparser.New(sqlparser.Options{})
	if err != nil {
		return nil, err
	}
	return &Parser{parser: p, resolver: resolver, catalog: cat}, nil
}

// Parse parses a single SELECT statement and binds it to IR. Statement
// shapes outside the translatable subset fail with an error rather than
// producing a partial tree.
func (p *Parser) Parse(sql string) (*ir.Select, error) {
	stmt, err := p.parser.Parse(sql)
	if err != nil {
		return nil, fmt.Errorf("parser: %w", err)
	}
	sel, ok := stmt.(*sqlparser.Select)
	if !ok {
		return nil, fmt.Errorf("parser: unsupported statement %T", stmt)
	}
	return p.convertSelect(sel)
}

type scope struct {
	table catalog.Table // nil when FROM is absent or not catalog-backed
}

func (p *Parser) convertSelect(sel *sqlparser.Select) (*ir.Select, error) {
	out := &ir.Select{Distinct: sel.Distinct}
	sc := &scope{}

	if len(sel.From) > 1 {
		return nil, fmt.Errorf("parser: joins are not supported")
	}
	if len(sel.From) == 1 {
		from, err := p.convertTableExpr(sel.From[0], sc)
		if err != nil {
			return nil, err
		}
		out.From = from
	}

	if sel.SelectExprs != nil {
		for _, se := range sel.SelectExprs.Exprs {
			item, err := p.convertSelectExpr(se, sc)
			if err != nil {
				return nil, err
			}
			out.Projection = append(out.Projection, item)
		}
	}

	if sel.Where != nil {
		where, err := p.convertExpr(sel.Where.Expr, sc)
		if err != nil {
			return nil, err
		}
		out.Where = where
	}
	if sel.GroupBy != nil {
		for _, g := range sel.GroupBy.Exprs {
			expr, err := p.convertExpr(g, sc)
			if err != nil {
				return nil, err
			}
			out.GroupBy = append(out.GroupBy, expr)
		}
	}
	if sel.Having != nil {
		having, err := p.convertExpr(sel.Having.Expr, sc)
		if err != nil {
			return nil, err
		}
		out.Having = having
	}
	for _, o := range sel.OrderBy {
		expr, err := p.convertExpr(o.Expr, sc)
		if err != nil {
			return nil, err
		}
		out.OrderBy = append(out.OrderBy, ir.OrderItem{Expr: expr, Desc: o.Direction == sqlparser.DescOrder})
	}
	if sel.Limit != nil && sel.Limit.Rowcount != nil {
		limit, err := p.convertExpr(sel.Limit.Rowcount, sc)
		if err != nil {
			return nil, err
		}
		out.Limit = limit
	}
	return out, nil
}

func (p *Parser) convertTableExpr(te sqlparser.TableExpr, sc *scope) (ir.TableRef, error) {
	aliased, ok := te.(*sqlparser.AliasedTableExpr)
	if !ok {
		return nil, fmt.Errorf("parser: unsupported table expression %T", te)
	}
	switch expr := aliased.Expr.(type) {
	case sqlparser.TableName:
		tbl := &ir.Table{
			DB:    expr.Qualifier.String(),
			Name:  expr.Name.String(),
			Alias: aliased.As.String(),
		}
		if p.catalog != nil && tbl.DB != "" {
			if handle, err := p.catalog.Table(tbl.DB, tbl.Name); err == nil {
				sc.table = handle
			}
		}
		return tbl, nil
	case *sqlparser.DerivedTable:
		inner, ok := expr.Select.(*sqlparser.Select)
		if !ok {
			return nil, fmt.Errorf("parser: unsupported derived table %T", expr.Select)
		}
		converted, err := p.convertSelect(inner)
		if err != nil {
			return nil, err
		}
		return &ir.Subquery{Select: converted, Alias: aliased.As.String()}, nil
	}
	return nil, fmt.Errorf("parser: unsupported table expression %T", aliased.Expr)
}

func (p *Parser) convertSelectExpr(se sqlparser.SelectExpr, sc *scope) (ir.Expr, error) {
	switch expr := se.(type) {
	case *sqlparser.StarExpr:
		return &ir.Star{}, nil
	case *sqlparser.AliasedExpr:
		converted, err := p.convertExpr(expr.Expr, sc)
		if err != nil {
			return nil, err
		}
		if expr.As.String() != "" {
			return ir.NewCall(function.AsOp, converted, ir.NewIdentifier(expr.As.String())), nil
		}
		return converted, nil
	}
	return nil, fmt.Errorf("parser: unsupported select expression %T", se)
}

func (p *Parser) convertExpr(e sqlparser.Expr, sc *scope) (ir.Expr, error) {
	switch expr := e.(type) {
	case *sqlparser.ColName:
		return &ir.Identifier{Qualifier: expr.Qualifier.Name.String(), Name: expr.Name.String()}, nil

	case *sqlparser.Literal:
		return convertLiteral(expr)

	case *sqlparser.NullVal:
		return ir.NewNullLiteral(), nil

	case sqlparser.BoolVal:
		return ir.NewBoolLiteral(bool(expr)), nil

	case *sqlparser.ComparisonExpr:
		return p.convertBinary(expr.Operator.ToString(), expr.Left, expr.Right, sc)

	case *sqlparser.BinaryExpr:
		return p.convertBinary(expr.Operator.ToString(), expr.Left, expr.Right, sc)

	case *sqlparser.UnaryExpr:
		op, err := p.resolver.ResolveUnaryOperator(expr.Operator.ToString())
		if err != nil {
			return nil, err
		}
		operand, err := p.convertExpr(expr.Expr, sc)
		if err != nil {
			return nil, err
		}
		return ir.NewCall(op, operand), nil

	case *sqlparser.AndExpr:
		return p.convertPair(function.AndOp, expr.Left, expr.Right, sc)

	case *sqlparser.OrExpr:
		return p.convertPair(function.OrOp, expr.Left, expr.Right, sc)

	case *sqlparser.NotExpr:
		operand, err := p.convertExpr(expr.Expr, sc)
		if err != nil {
			return nil, err
		}
		return ir.NewCall(function.NotOp, operand), nil

	case *sqlparser.FuncExpr:
		return p.convertFunc(expr, sc)

	case *sqlparser.CastExpr:
		return p.convertCast(expr.Expr, expr.Type, sc)

	case *sqlparser.ConvertExpr:
		return p.convertCast(expr.Expr, expr.Type, sc)

	case *sqlparser.CaseExpr:
		return p.convertCase(expr, sc)

	case *sqlparser.Subquery:
		inner, ok := expr.Select.(*sqlparser.Select)
		if !ok {
			return nil, fmt.Errorf("parser: unsupported subquery %T", expr.Select)
		}
		converted, err := p.convertSelect(inner)
		if err != nil {
			return nil, err
		}
		return &ir.Subquery{Select: converted}, nil
	}
	return nil, fmt.Errorf("parser: unsupported expression %T", e)
}

func (p *Parser) convertPair(op ir.Operator, left, right sqlparser.Expr, sc *scope) (ir.Expr, error) {
	l, err := p.convertExpr(left, sc)
	if err != nil {
		return nil, err
	}
	r, err := p.convertExpr(right, sc)
	if err != nil {
		return nil, err
	}
	return ir.NewCall(op, l, r), nil
}

func (p *Parser) convertBinary(name string, left, right sqlparser.Expr, sc *scope) (ir.Expr, error) {
	op, err := p.resolver.ResolveBinaryOperator(name)
	if err != nil {
		return nil, err
	}
	return p.convertPair(op, left, right, sc)
}

func (p *Parser) convertFunc(expr *sqlparser.FuncExpr, sc *scope) (ir.Expr, error) {
	operands := make([]ir.Expr, 0, len(expr.Exprs))
	for _, arg := range expr.Exprs {
		converted, err := p.convertExpr(arg, sc)
		if err != nil {
			return nil, err
		}
		operands = append(operands, converted)
	}
	op, err := p.resolver.TryResolve(expr.Name.String(), sc.table, len(operands))
	if err != nil {
		return nil, err
	}
	return ir.NewCall(op, operands...), nil
}

func (p *Parser) convertCast(inner sqlparser.Expr, typ *sqlparser.ConvertType, sc *scope) (ir.Expr, error) {
	operand, err := p.convertExpr(inner, sc)
	if err != nil {
		return nil, err
	}
	return ir.NewCall(function.CastOp, operand, &ir.TypeSpec{Type: mapTypeName(typ.Type)}), nil
}

func (p *Parser) convertCase(expr *sqlparser.CaseExpr, sc *scope) (ir.Expr, error) {
	out := &ir.Case{}
	if expr.Expr != nil {
		operand, err := p.convertExpr(expr.Expr, sc)
		if err != nil {
			return nil, err
		}
		out.Operand = operand
	}
	for _, when := range expr.Whens {
		cond, err := p.convertExpr(when.Cond, sc)
		if err != nil {
			return nil, err
		}
		val, err := p.convertExpr(when.Val, sc)
		if err != nil {
			return nil, err
		}
		out.Whens = append(out.Whens, cond)
		out.Thens = append(out.Thens, val)
	}
	if expr.Else != nil {
		elseExpr, err := p.convertExpr(expr.Else, sc)
		if err != nil {
			return nil, err
		}
		out.Else = elseExpr
	}
	return out, nil
}

func convertLiteral(lit *sqlparser.Literal) (ir.Expr, error) {
	switch lit.Type {
	case sqlparser.IntVal:
		v, err := strconv.ParseInt(string(lit.Val), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parser: bad integer literal %q", lit.Val)
		}
		return ir.NewIntLiteral(v), nil
	case sqlparser.FloatVal, sqlparser.DecimalVal:
		v, err := strconv.ParseFloat(string(lit.Val), 64)
		if err != nil {
			return nil, fmt.Errorf("parser: bad numeric literal %q", lit.Val)
		}
		return ir.NewFloatLiteral(v), nil
	case sqlparser.StrVal:
		return ir.NewStringLiteral(string(lit.Val)), nil
	}
	return nil, fmt.Errorf("parser: unsupported literal type %v", lit.Type)
}

func mapTypeName(name string) ir.DataType {
	switch strings.ToLower(name) {
	case "bool", "boolean":
		return ir.Boolean()
	case "tinyint":
		return ir.DataType{Name: ir.TypeTinyint}
	case "smallint":
		return ir.DataType{Name: ir.TypeSmallint}
	case "int", "integer", "signed":
		return ir.Integer()
	case "bigint":
		return ir.Bigint()
	case "float", "real":
		return ir.DataType{Name: ir.TypeFloat}
	case "double":
		return ir.Double()
	case "decimal", "numeric":
		return ir.DataType{Name: ir.TypeDecimal}
	case "char", "nchar":
		return ir.DataType{Name: ir.TypeChar}
	case "varchar", "nvarchar", "text", "string":
		return ir.Varchar()
	case "date":
		return ir.Date()
	case "time":
		return ir.DataType{Name: ir.TypeTime}
	case "timestamp", "datetime":
		return ir.Timestamp()
	case "binary", "varbinary", "blob":
		return ir.Varbinary()
	}
	return ir.Unknown()
}
