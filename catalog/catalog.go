// Package catalog defines the read interface over table/view metadata
// the resolver and type deriver consume. Persistent metastore access sits
// behind these interfaces; the in-memory implementation here backs tests
// and embedded use.
package catalog

import (
	"fmt"
	"strings"

	"github.com/sqlshift/sqlshift/ir"
)

// Column is one declared column of a table or view.
type Column struct {
	Name string
	Type ir.DataType
}

// FunctionMapping is one declared function alias on a view: the short
// name used inside the view text mapped to the implementing class name.
type FunctionMapping struct {
	Alias string
	Class string
}

// Table is a handle to one table or view's metadata.
type Table interface {
	Database() string
	Name() string

	// FunctionClass returns the implementing class declared for alias.
	FunctionClass(alias string) (string, bool)

	// FunctionMappings returns the declared alias mappings in
	// declaration order.
	FunctionMappings() []FunctionMapping

	// Dependencies returns the external dependency coordinates declared
	// on the table, e.g. "ivy://com.acme:udfs:1.0". Never nil.
	Dependencies() []string

	// Column returns the declared type of the named column.
	Column(name string) (ir.DataType, bool)

	Columns() []Column
}

// Catalog resolves table identities to metadata handles.
type Catalog interface {
	Table(db, name string) (Table, error)
}

// MemoryTable is a self-contained Table implementation.
type MemoryTable struct {
	DB        string
	TableName string
	Cols      []Column
	Functions []FunctionMapping
	Deps      []string
}

func (t *MemoryTable) Database() string { return t.DB }
func (t *MemoryTable) Name() string     { return t.TableName }

func (t *MemoryTable) FunctionClass(alias string) (string, bool) {
	for _, m := range t.Functions {
		if strings.EqualFold(m.Alias, alias) {
			return m.Class, true
		}
	}
	return "", false
}

func (t *MemoryTable) FunctionMappings() []FunctionMapping { return t.Functions }

func (t *MemoryTable) Dependencies() []string {
	if t.Deps == nil {
		return []string{}
	}
	return t.Deps
}

func (t *MemoryTable) Column(name string) (ir.DataType, bool) {
	for _, c := range t.Cols {
		if strings.EqualFold(c.Name, name) {
			return c.Type, true
		}
	}
	return ir.Unknown(), false
}

func (t *MemoryTable) Columns() []Column { return t.Cols }

// MemoryCatalog is a map-backed catalog for tests and embedded use.
type MemoryCatalog struct {
	tables map[string]*MemoryTable
}

func NewMemoryCatalog() *MemoryCatalog {
	return &MemoryCatalog{tables: make(map[string]*MemoryTable)}
}

func key(db, name string) string {
	return strings.ToLower(db) + "." + strings.ToLower(name)
}

func (c *MemoryCatalog) AddTable(t *MemoryTable) *MemoryCatalog {
	c.tables[key(t.DB, t.TableName)] = t
	return c
}

func (c *MemoryCatalog) Table(db, name string) (Table, error) {
	if t, ok := c.tables[key(db, name)]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("catalog: table %s.%s not found", db, name)
}
