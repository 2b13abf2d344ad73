package ir

import "strings"

// TypeName identifies a concrete SQL data type.
type TypeName int

const (
	TypeUnknown TypeName = iota
	TypeNull
	TypeBoolean
	TypeTinyint
	TypeSmallint
	TypeInteger
	TypeBigint
	TypeFloat
	TypeDouble
	TypeDecimal
	TypeChar
	TypeVarchar
	TypeDate
	TypeTime
	TypeTimestamp
	TypeVarbinary
	TypeArray
	TypeMap
	TypeRow
	TypeAny
)

var typeNames = map[TypeName]string{
	TypeUnknown:   "UNKNOWN",
	TypeNull:      "NULL",
	TypeBoolean:   "BOOLEAN",
	TypeTinyint:   "TINYINT",
	TypeSmallint:  "SMALLINT",
	TypeInteger:   "INTEGER",
	TypeBigint:    "BIGINT",
	TypeFloat:     "REAL",
	TypeDouble:    "DOUBLE",
	TypeDecimal:   "DECIMAL",
	TypeChar:      "CHAR",
	TypeVarchar:   "VARCHAR",
	TypeDate:      "DATE",
	TypeTime:      "TIME",
	TypeTimestamp: "TIMESTAMP",
	TypeVarbinary: "VARBINARY",
	TypeArray:     "ARRAY",
	TypeMap:       "MAP",
	TypeRow:       "ROW",
	TypeAny:       "ANY",
}

func (n TypeName) String() string {
	if s, ok := typeNames[n]; ok {
		return s
	}
	return "UNKNOWN"
}

// TypeFamily groups data types for implicit-compatibility decisions.
type TypeFamily int

const (
	FamilyUnknown TypeFamily = iota
	FamilyNull
	FamilyBoolean
	FamilyNumeric
	FamilyCharacter
	FamilyDate
	FamilyTime
	FamilyTimestamp
	FamilyBinary
	FamilyArray
	FamilyMap
	FamilyStruct
	FamilyAny
)

func (f TypeFamily) String() string {
	switch f {
	case FamilyNull:
		return "NULL"
	case FamilyBoolean:
		return "BOOLEAN"
	case FamilyNumeric:
		return "NUMERIC"
	case FamilyCharacter:
		return "CHARACTER"
	case FamilyDate:
		return "DATE"
	case FamilyTime:
		return "TIME"
	case FamilyTimestamp:
		return "TIMESTAMP"
	case FamilyBinary:
		return "BINARY"
	case FamilyArray:
		return "ARRAY"
	case FamilyMap:
		return "MAP"
	case FamilyStruct:
		return "STRUCT"
	case FamilyAny:
		return "ANY"
	}
	return "UNKNOWN"
}

// Field is one named member of a ROW type.
type Field struct {
	Name string
	Type DataType
}

// DataType is the semantic type of an expression. For ARRAY types Elem is
// the element type; for MAP types Key and Elem are the key and value types.
type DataType struct {
	Name   TypeName
	Elem   *DataType
	Key    *DataType
	Fields []Field
}

func (t DataType) Family() TypeFamily {
	switch t.Name {
	case TypeNull:
		return FamilyNull
	case TypeBoolean:
		return FamilyBoolean
	case TypeTinyint, TypeSmallint, TypeInteger, TypeBigint, TypeFloat, TypeDouble, TypeDecimal:
		return FamilyNumeric
	case TypeChar, TypeVarchar:
		return FamilyCharacter
	case TypeDate:
		return FamilyDate
	case TypeTime:
		return FamilyTime
	case TypeTimestamp:
		return FamilyTimestamp
	case TypeVarbinary:
		return FamilyBinary
	case TypeArray:
		return FamilyArray
	case TypeMap:
		return FamilyMap
	case TypeRow:
		return FamilyStruct
	case TypeAny:
		return FamilyAny
	}
	return FamilyUnknown
}

func (t DataType) String() string {
	switch t.Name {
	case TypeArray:
		if t.Elem != nil {
			return "ARRAY(" + t.Elem.String() + ")"
		}
		return "ARRAY"
	case TypeMap:
		if t.Key != nil && t.Elem != nil {
			return "MAP(" + t.Key.String() + ", " + t.Elem.String() + ")"
		}
		return "MAP"
	case TypeRow:
		if len(t.Fields) > 0 {
			parts := make([]string, len(t.Fields))
			for i, f := range t.Fields {
				parts[i] = f.Name + " " + f.Type.String()
			}
			return "ROW(" + strings.Join(parts, ", ") + ")"
		}
		return "ROW"
	}
	return t.Name.String()
}

// Equal reports deep equality of two data types.
func (t DataType) Equal(o DataType) bool {
	if t.Name != o.Name {
		return false
	}
	if (t.Elem == nil) != (o.Elem == nil) || (t.Key == nil) != (o.Key == nil) {
		return false
	}
	if t.Elem != nil && !t.Elem.Equal(*o.Elem) {
		return false
	}
	if t.Key != nil && !t.Key.Equal(*o.Key) {
		return false
	}
	if len(t.Fields) != len(o.Fields) {
		return false
	}
	for i := range t.Fields {
		if t.Fields[i].Name != o.Fields[i].Name || !t.Fields[i].Type.Equal(o.Fields[i].Type) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy, so a stored type spec can be propagated
// without aliasing the original.
func (t DataType) Clone() DataType {
	out := DataType{Name: t.Name}
	if t.Elem != nil {
		e := t.Elem.Clone()
		out.Elem = &e
	}
	if t.Key != nil {
		k := t.Key.Clone()
		out.Key = &k
	}
	if len(t.Fields) > 0 {
		out.Fields = make([]Field, len(t.Fields))
		for i, f := range t.Fields {
			out.Fields[i] = Field{Name: f.Name, Type: f.Type.Clone()}
		}
	}
	return out
}

// Convenience constructors for the common scalar types.

func Boolean() DataType   { return DataType{Name: TypeBoolean} }
func Integer() DataType   { return DataType{Name: TypeInteger} }
func Bigint() DataType    { return DataType{Name: TypeBigint} }
func Double() DataType    { return DataType{Name: TypeDouble} }
func Varchar() DataType   { return DataType{Name: TypeVarchar} }
func Date() DataType      { return DataType{Name: TypeDate} }
func Timestamp() DataType { return DataType{Name: TypeTimestamp} }
func Varbinary() DataType { return DataType{Name: TypeVarbinary} }
func Null() DataType      { return DataType{Name: TypeNull} }
func Any() DataType       { return DataType{Name: TypeAny} }
func Unknown() DataType   { return DataType{Name: TypeUnknown} }

func Array(elem DataType) DataType {
	return DataType{Name: TypeArray, Elem: &elem}
}

func Map(key, value DataType) DataType {
	return DataType{Name: TypeMap, Key: &key, Elem: &value}
}
