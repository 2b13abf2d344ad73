package function

import (
	"strings"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/sqlshift/sqlshift/ir"
)

// Registry is the static function table: a read-only, case-insensitive
// mapping from function name to its descriptor overloads. It is built
// once and injected into resolvers; it is never mutated afterwards.
type Registry struct {
	funcs map[string][]*Descriptor
}

func NewRegistry() *Registry {
	return &Registry{funcs: make(map[string][]*Descriptor)}
}

// Register adds a descriptor under its own name. Only called while the
// registry is being built.
func (r *Registry) Register(d *Descriptor) *Registry {
	key := strings.ToLower(d.Name())
	r.funcs[key] = append(r.funcs[key], d)
	return r
}

// Lookup returns all overloads registered under name, case-insensitively.
func (r *Registry) Lookup(name string) []*Descriptor {
	return r.funcs[strings.ToLower(name)]
}

// NewBuiltinRegistry builds the static table of source-dialect builtins
// the rewrite rules and the parser bind against.
func NewBuiltinRegistry() *Registry {
	r := NewRegistry()

	register := func(name string, sig Signature, ret ReturnTypeInference) {
		r.Register(NewDescriptor(name, ir.OpFunction, sig, ret))
	}

	str := ReturnsFixed(ir.Varchar())
	i64 := ReturnsFixed(ir.Bigint())
	i32 := ReturnsFixed(ir.Integer())
	ts := ReturnsFixed(ir.Timestamp())
	boolean := ReturnsFixed(ir.Boolean())
	dbl := ReturnsFixed(ir.Double())

	register("from_unixtime", Between(1, 2), ts)
	register("format_datetime", Exactly(2), str)
	register("unix_timestamp", Between(0, 2), i64)
	register("to_date", Exactly(1), ReturnsFixed(ir.Date()))
	register("date_add", Exactly(2), str)
	register("date_sub", Exactly(2), str)
	register("datediff", Exactly(2), i32)
	register("year", Exactly(1), i32)
	register("month", Exactly(1), i32)
	register("day", Exactly(1), i32)
	register("hour", Exactly(1), i32)
	register("minute", Exactly(1), i32)
	register("second", Exactly(1), i32)
	register("current_timestamp", Exactly(0), ts)
	register("current_date", Exactly(0), ReturnsFixed(ir.Date()))

	register("concat", Variadic(1), str)
	register("concat_ws", Variadic(2), str)
	register("lower", Exactly(1), str)
	register("upper", Exactly(1), str)
	register("trim", Exactly(1), str)
	register("ltrim", Exactly(1), str)
	register("rtrim", Exactly(1), str)
	register("length", Exactly(1), i32)
	register("substr", Between(2, 3), str)
	register("substring", Between(2, 3), str)
	register("replace", Exactly(3), str)
	register("split", Exactly(2), ReturnsFixed(ir.Array(ir.Varchar())))
	register("regexp_replace", Exactly(3), str)
	register("regexp_extract", Between(2, 3), str)
	register("reverse", Exactly(1), str)
	register("instr", Exactly(2), i32)
	register("md5", Exactly(1), str)
	register("sha1", Exactly(1), str)
	register("base64", Exactly(1), str)
	register("unbase64", Exactly(1), ReturnsFixed(ir.Varbinary()))

	register("abs", Exactly(1), ReturnsArg(0))
	register("ceil", Exactly(1), i64)
	register("ceiling", Exactly(1), i64)
	register("floor", Exactly(1), i64)
	register("round", Between(1, 2), ReturnsArg(0))
	register("sqrt", Exactly(1), dbl)
	register("pow", Exactly(2), dbl)
	register("power", Exactly(2), dbl)
	register("exp", Exactly(1), dbl)
	register("ln", Exactly(1), dbl)
	register("log", Between(1, 2), dbl)
	register("rand", Between(0, 1), dbl)

	register("coalesce", Variadic(1), ReturnsArg(0))
	register("nvl", Exactly(2), ReturnsArg(0))
	register("if", Exactly(3), ReturnsArg(1))
	register("isnull", Exactly(1), boolean)
	register("isnotnull", Exactly(1), boolean)
	register("nullif", Exactly(2), ReturnsArg(0))

	register("size", Exactly(1), i32)
	register("cardinality", Exactly(1), i32)
	register("array_contains", Exactly(2), boolean)
	register("sort_array", Exactly(1), ReturnsArg(0))
	register("map_keys", Exactly(1), func(args []ir.DataType) ir.DataType {
		if len(args) > 0 && args[0].Key != nil {
			return ir.Array(*args[0].Key)
		}
		return ir.Unknown()
	})
	register("map_values", Exactly(1), func(args []ir.DataType) ir.DataType {
		if len(args) > 0 && args[0].Elem != nil {
			return ir.Array(*args[0].Elem)
		}
		return ir.Unknown()
	})

	register("count", Variadic(0), i64)
	register("sum", Exactly(1), ReturnsNumericPromotion())
	register("min", Exactly(1), ReturnsArg(0))
	register("max", Exactly(1), ReturnsArg(0))
	register("avg", Exactly(1), dbl)

	return r
}

// DynamicRegistry memoizes operators synthesized for catalog-declared
// functions whose implementing class is unknown to the static table. It
// is keyed by class name and may be shared by concurrently running
// conversions; insertion is idempotent and duplicate synthesis on a race
// is harmless since descriptors for the same class are equal.
type DynamicRegistry struct {
	entries *xsync.MapOf[string, *Versioned]
}

func NewDynamicRegistry() *DynamicRegistry {
	return &DynamicRegistry{entries: xsync.NewMapOf[string, *Versioned]()}
}

// Load returns the memoized operator for className, if any.
func (r *DynamicRegistry) Load(className string) (*Versioned, bool) {
	return r.entries.Load(className)
}

// LoadOrStore memoizes op under className, returning the existing entry
// when one is already present.
func (r *DynamicRegistry) LoadOrStore(className string, op *Versioned) (*Versioned, bool) {
	return r.entries.LoadOrStore(className, op)
}

// Len returns the number of memoized entries.
func (r *DynamicRegistry) Len() int {
	return r.entries.Size()
}

// Range iterates over all entries.
func (r *DynamicRegistry) Range(fn func(className string, op *Versioned) bool) {
	r.entries.Range(fn)
}
