package render

import (
	"testing"

	"github.com/sqlshift/sqlshift/function"
	"github.com/sqlshift/sqlshift/ir"
)

func TestRender_Expressions(t *testing.T) {
	tests := []struct {
		name     string
		node     ir.Node
		expected string
	}{
		{
			name:     "string literal escaping",
			node:     ir.NewStringLiteral("it's"),
			expected: "'it''s'",
		},
		{
			name:     "null literal",
			node:     ir.NewNullLiteral(),
			expected: "NULL",
		},
		{
			name:     "boolean literal",
			node:     ir.NewBoolLiteral(true),
			expected: "TRUE",
		},
		{
			name:     "qualified identifier",
			node:     &ir.Identifier{Qualifier: "t", Name: "id"},
			expected: "t.id",
		},
		{
			name:     "infix comparison",
			node:     ir.NewCall(function.EqualsOp, ir.NewIdentifier("id"), ir.NewIntLiteral(3)),
			expected: "id = 3",
		},
		{
			name: "compound operand parenthesized",
			node: ir.NewCall(function.MultiplyOp,
				ir.NewCall(function.PlusOp, ir.NewIdentifier("a"), ir.NewIdentifier("b")),
				ir.NewIntLiteral(2)),
			expected: "(a + b) * 2",
		},
		{
			name:     "element access",
			node:     ir.NewCall(function.ItemOp, ir.NewIdentifier("tags"), ir.NewIntLiteral(1)),
			expected: "tags[1]",
		},
		{
			name: "try cast",
			node: ir.NewCall(function.TryCastOp, ir.NewIdentifier("name"),
				&ir.TypeSpec{Type: ir.Integer()}),
			expected: "TRY_CAST(name AS INTEGER)",
		},
		{
			name: "array type spec",
			node: ir.NewCall(function.CastOp, ir.NewIdentifier("tags"),
				&ir.TypeSpec{Type: ir.Array(ir.Varchar())}),
			expected: "CAST(tags AS ARRAY(VARCHAR))",
		},
		{
			name:     "is null",
			node:     ir.NewCall(function.IsNullOp, ir.NewIdentifier("id")),
			expected: "id IS NULL",
		},
		{
			name:     "not",
			node:     ir.NewCall(function.NotOp, ir.NewIdentifier("flag")),
			expected: "NOT flag",
		},
		{
			name:     "unary minus",
			node:     ir.NewCall(function.UnaryMinusOp, ir.NewIdentifier("id")),
			expected: "-id",
		},
		{
			name: "function call",
			node: ir.NewCall(function.NewScalar("lower", function.Exactly(1), ir.Varchar()),
				ir.NewIdentifier("name")),
			expected: "lower(name)",
		},
		{
			name: "class-named function quoted",
			node: ir.NewCall(function.NewScalar("com.acme.MyFunc", function.Exactly(1), ir.Varchar()),
				ir.NewIdentifier("id")),
			expected: "\"com.acme.MyFunc\"(id)",
		},
		{
			name: "case expression",
			node: &ir.Case{
				Whens: []ir.Expr{ir.NewCall(function.GreaterThanOp, ir.NewIdentifier("id"), ir.NewIntLiteral(0))},
				Thens: []ir.Expr{ir.NewStringLiteral("pos")},
				Else:  ir.NewStringLiteral("neg"),
			},
			expected: "CASE WHEN id > 0 THEN 'pos' ELSE 'neg' END",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Render(tt.node); got != tt.expected {
				t.Errorf("\nExpected: %s\nGot:      %s", tt.expected, got)
			}
		})
	}
}

func TestRender_SelectClauses(t *testing.T) {
	sel := &ir.Select{
		Distinct: true,
		Projection: []ir.Expr{
			ir.NewCall(function.AsOp, ir.NewIdentifier("id"), ir.NewIdentifier("user_id")),
			ir.NewIdentifier("name"),
		},
		From:    &ir.Table{DB: "db1", Name: "tbl1", Alias: "t"},
		Where:   ir.NewCall(function.GreaterThanOp, ir.NewIdentifier("id"), ir.NewIntLiteral(10)),
		GroupBy: []ir.Expr{ir.NewIdentifier("name")},
		Having: ir.NewCall(function.GreaterThanOp,
			ir.NewCall(function.NewScalar("count", function.Variadic(0), ir.Bigint()), &ir.Star{}),
			ir.NewIntLiteral(1)),
		OrderBy: []ir.OrderItem{{Expr: ir.NewIdentifier("name"), Desc: true}},
		Limit:   ir.NewIntLiteral(5),
	}

	expected := "SELECT DISTINCT id AS user_id, name FROM db1.tbl1 AS t WHERE id > 10 " +
		"GROUP BY name HAVING count(*) > 1 ORDER BY name DESC LIMIT 5"
	if got := Render(sel); got != expected {
		t.Errorf("\nExpected: %s\nGot:      %s", expected, got)
	}
}

func TestRender_DerivedTable(t *testing.T) {
	inner := &ir.Select{
		Projection: []ir.Expr{ir.NewIdentifier("id")},
		From:       &ir.Table{DB: "db1", Name: "tbl1"},
	}
	outer := &ir.Select{
		Projection: []ir.Expr{ir.NewIdentifier("id")},
		From:       &ir.Subquery{Select: inner, Alias: "t"},
	}

	expected := "SELECT id FROM (SELECT id FROM db1.tbl1) AS t"
	if got := Render(outer); got != expected {
		t.Errorf("\nExpected: %s\nGot:      %s", expected, got)
	}
}
