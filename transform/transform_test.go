package transform

import (
	"github.com/sqlshift/sqlshift/catalog"
	"github.com/sqlshift/sqlshift/ir"
	"github.com/sqlshift/sqlshift/typing"
)

// testCatalog declares one table with a column of every family the cast
// rules care about.
func testCatalog() *catalog.MemoryCatalog {
	cat := catalog.NewMemoryCatalog()
	cat.AddTable(&catalog.MemoryTable{
		DB:        "db1",
		TableName: "tbl1",
		Cols: []catalog.Column{
			{Name: "id", Type: ir.Integer()},
			{Name: "amount", Type: ir.Double()},
			{Name: "name", Type: ir.Varchar()},
			{Name: "flag", Type: ir.Boolean()},
			{Name: "created", Type: ir.Timestamp()},
			{Name: "birthday", Type: ir.Date()},
			{Name: "raw", Type: ir.Varbinary()},
			{Name: "tags", Type: ir.Array(ir.Varchar())},
			{Name: "ts", Type: ir.Bigint()},
		},
	})
	return cat
}

// testScope returns a context with one enclosing SELECT over the test
// table, mirroring what the walker establishes before rules run.
func testScope() (*Context, *ir.Select) {
	sel := &ir.Select{From: &ir.Table{DB: "db1", Name: "tbl1"}}
	ctx := NewContext(typing.NewDeriver(testCatalog()), nil)
	ctx.EnterSelect(sel)
	return ctx, sel
}

func col(name string) *ir.Identifier { return ir.NewIdentifier(name) }
