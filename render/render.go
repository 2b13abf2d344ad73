// Package render serializes a rewritten IR tree to target-dialect SQL
// text. It is the downstream emitter of the pipeline; it performs no
// further rewriting.
package render

import (
	"fmt"
	"strings"

	"github.com/sqlshift/sqlshift/ir"
)

// Render returns the SQL text for the tree rooted at node.
func Render(node ir.Node) string {
	var b strings.Builder
	writeNode(&b, node)
	return b.String()
}

func writeNode(b *strings.Builder, node ir.Node) {
	switch n := node.(type) {
	case *ir.Select:
		writeSelect(b, n)
	case ir.Expr:
		writeExpr(b, n)
	case *ir.Table:
		writeTable(b, n)
	}
}

func writeSelect(b *strings.Builder, s *ir.Select) {
	b.WriteString("SELECT ")
	if s.Distinct {
		b.WriteString("DISTINCT ")
	}
	for i, item := range s.Projection {
		if i > 0 {
			b.WriteString(", ")
		}
		writeExpr(b, item)
	}
	if s.From != nil {
		b.WriteString(" FROM ")
		switch from := s.From.(type) {
		case *ir.Table:
			writeTable(b, from)
		case *ir.Subquery:
			b.WriteString("(")
			writeSelect(b, from.Select)
			b.WriteString(")")
			if from.Alias != "" {
				b.WriteString(" AS " + from.Alias)
			}
		}
	}
	if s.Where != nil {
		b.WriteString(" WHERE ")
		writeExpr(b, s.Where)
	}
	if len(s.GroupBy) > 0 {
		b.WriteString(" GROUP BY ")
		for i, g := range s.GroupBy {
			if i > 0 {
				b.WriteString(", ")
			}
			writeExpr(b, g)
		}
	}
	if s.Having != nil {
		b.WriteString(" HAVING ")
		writeExpr(b, s.Having)
	}
	if len(s.OrderBy) > 0 {
		b.WriteString(" ORDER BY ")
		for i, o := range s.OrderBy {
			if i > 0 {
				b.WriteString(", ")
			}
			writeExpr(b, o.Expr)
			if o.Desc {
				b.WriteString(" DESC")
			}
		}
	}
	if s.Limit != nil {
		b.WriteString(" LIMIT ")
		writeExpr(b, s.Limit)
	}
}

func writeTable(b *strings.Builder, t *ir.Table) {
	if t.DB != "" {
		b.WriteString(t.DB + "." + t.Name)
	} else {
		b.WriteString(t.Name)
	}
	if t.Alias != "" {
		b.WriteString(" AS " + t.Alias)
	}
}

func writeExpr(b *strings.Builder, e ir.Expr) {
	switch n := e.(type) {
	case *ir.Literal:
		writeLiteral(b, n)
	case *ir.Identifier:
		b.WriteString(n.String())
	case *ir.Star:
		b.WriteString("*")
	case *ir.TypeSpec:
		b.WriteString(n.Type.String())
	case *ir.Subquery:
		b.WriteString("(")
		writeSelect(b, n.Select)
		b.WriteString(")")
	case *ir.Select:
		writeSelect(b, n)
	case *ir.Case:
		writeCase(b, n)
	case *ir.Call:
		writeCall(b, n)
	}
}

func writeCase(b *strings.Builder, c *ir.Case) {
	b.WriteString("CASE")
	if c.Operand != nil {
		b.WriteString(" ")
		writeExpr(b, c.Operand)
	}
	for i := range c.Whens {
		b.WriteString(" WHEN ")
		writeExpr(b, c.Whens[i])
		b.WriteString(" THEN ")
		writeExpr(b, c.Thens[i])
	}
	if c.Else != nil {
		b.WriteString(" ELSE ")
		writeExpr(b, c.Else)
	}
	b.WriteString(" END")
}

func writeCall(b *strings.Builder, c *ir.Call) {
	kind := c.Op.Kind()
	switch {
	case kind == ir.OpItem:
		writeOperand(b, c.Operand(0))
		b.WriteString("[")
		writeExpr(b, c.Operand(1))
		b.WriteString("]")

	case kind == ir.OpCast || kind == ir.OpTryCast:
		b.WriteString(c.Op.Name())
		b.WriteString("(")
		writeExpr(b, c.Operand(0))
		b.WriteString(" AS ")
		writeExpr(b, c.Operand(1))
		b.WriteString(")")

	case kind == ir.OpAs:
		writeExpr(b, c.Operand(0))
		b.WriteString(" AS ")
		writeExpr(b, c.Operand(1))

	case kind == ir.OpIsNull:
		writeOperand(b, c.Operand(0))
		b.WriteString(" IS NULL")

	case kind == ir.OpIsNotNull:
		writeOperand(b, c.Operand(0))
		b.WriteString(" IS NOT NULL")

	case kind == ir.OpNot:
		b.WriteString("NOT ")
		writeOperand(b, c.Operand(0))

	case kind == ir.OpUnaryMinus:
		b.WriteString("-")
		writeOperand(b, c.Operand(0))

	case kind == ir.OpUnaryPlus:
		writeOperand(b, c.Operand(0))

	case isInfix(kind) && len(c.Operands) == 2:
		writeOperand(b, c.Operand(0))
		b.WriteString(" " + c.Op.Name() + " ")
		writeOperand(b, c.Operand(1))

	default:
		writeFunctionName(b, c.Op.Name())
		b.WriteString("(")
		for i, operand := range c.Operands {
			if i > 0 {
				b.WriteString(", ")
			}
			writeExpr(b, operand)
		}
		b.WriteString(")")
	}
}

// writeOperand parenthesizes compound operands so the rendered text keeps
// the tree's grouping.
func writeOperand(b *strings.Builder, e ir.Expr) {
	if call, ok := e.(*ir.Call); ok && isInfix(call.Op.Kind()) && len(call.Operands) == 2 {
		b.WriteString("(")
		writeExpr(b, e)
		b.WriteString(")")
		return
	}
	writeExpr(b, e)
}

// writeFunctionName quotes class-like function names, which carry dots.
func writeFunctionName(b *strings.Builder, name string) {
	if strings.Contains(name, ".") {
		b.WriteString("\"" + name + "\"")
		return
	}
	b.WriteString(name)
}

func isInfix(kind ir.OpKind) bool {
	switch kind {
	case ir.OpEquals, ir.OpNotEquals, ir.OpLessThan, ir.OpLessThanOrEqual,
		ir.OpGreaterThan, ir.OpGreaterThanOrEqual,
		ir.OpPlus, ir.OpMinus, ir.OpMultiply, ir.OpDivide, ir.OpModulo,
		ir.OpAnd, ir.OpOr, ir.OpLike, ir.OpRegexp:
		return true
	}
	return false
}

func writeLiteral(b *strings.Builder, l *ir.Literal) {
	if l.IsNull() {
		b.WriteString("NULL")
		return
	}
	switch v := l.Value.(type) {
	case string:
		b.WriteString("'" + strings.ReplaceAll(v, "'", "''") + "'")
	case bool:
		if v {
			b.WriteString("TRUE")
		} else {
			b.WriteString("FALSE")
		}
	default:
		b.WriteString(fmt.Sprintf("%v", v))
	}
}
