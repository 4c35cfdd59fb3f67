package octomap

import (
	"fmt"
	"strings"
)

type TypeID int

const (
	TypeIDNull TypeID = iota
	TypeIDBoolean
	TypeIDInt
	TypeIDBigInt
	TypeIDFloat
	TypeIDDouble
	TypeIDString
	TypeIDList
	TypeIDStruct
	TypeIDMap
)

func (t TypeID) String() string {
	switch t {
	case TypeIDNull:
		return "NULL"
	case TypeIDBoolean:
		return "BOOLEAN"
	case TypeIDInt:
		return "INTEGER"
	case TypeIDBigInt:
		return "BIGINT"
	case TypeIDFloat:
		return "FLOAT"
	case TypeIDDouble:
		return "DOUBLE"
	case TypeIDString:
		return "VARCHAR"
	case TypeIDList:
		return "LIST"
	case TypeIDStruct:
		return "STRUCT"
	case TypeIDMap:
		return "MAP"
	}
	return fmt.Sprintf("TypeID(%d)", int(t))
}

// Type is a tagged variant, only the field matching TypeID is meaningful.
// Null doubles as the untyped placeholder.
type Type struct {
	TypeID TypeID
	List   struct {
		Element *Type
	}
	Struct struct {
		Fields []StructField
	}
	Map struct {
		Key   *Type
		Value *Type
	}
}

type StructField struct {
	Name string
	Type Type
}

var (
	Null    Type = Type{TypeID: TypeIDNull}
	Boolean Type = Type{TypeID: TypeIDBoolean}
	Int     Type = Type{TypeID: TypeIDInt}
	BigInt  Type = Type{TypeID: TypeIDBigInt}
	Float   Type = Type{TypeID: TypeIDFloat}
	Double  Type = Type{TypeID: TypeIDDouble}
	String  Type = Type{TypeID: TypeIDString}
)

func NewListType(element Type) Type {
	out := Type{TypeID: TypeIDList}
	out.List.Element = &element
	return out
}

func NewStructType(fields ...StructField) Type {
	out := Type{TypeID: TypeIDStruct}
	out.Struct.Fields = fields
	return out
}

func NewMapType(key, value Type) Type {
	out := Type{TypeID: TypeIDMap}
	out.Map.Key = &key
	out.Map.Value = &value
	return out
}

func (t Type) IsScalar() bool {
	return t.TypeID < TypeIDList
}

func (t Type) IsNumeric() bool {
	switch t.TypeID {
	case TypeIDInt, TypeIDBigInt, TypeIDFloat, TypeIDDouble:
		return true
	}
	return false
}

// FieldIndex returns the position of the named field, or -1.
func (t Type) FieldIndex(name string) int {
	for i := range t.Struct.Fields {
		if t.Struct.Fields[i].Name == name {
			return i
		}
	}
	return -1
}

// Resolved reports whether the type contains no untyped placeholder.
func (t Type) Resolved() bool {
	switch t.TypeID {
	case TypeIDNull:
		return false
	case TypeIDList:
		return t.List.Element.Resolved()
	case TypeIDStruct:
		for i := range t.Struct.Fields {
			if !t.Struct.Fields[i].Type.Resolved() {
				return false
			}
		}
		return true
	case TypeIDMap:
		return t.Map.Key.Resolved() && t.Map.Value.Resolved()
	}
	return true
}

func (t Type) Equal(other Type) bool {
	if t.TypeID != other.TypeID {
		return false
	}
	switch t.TypeID {
	case TypeIDList:
		return t.List.Element.Equal(*other.List.Element)
	case TypeIDStruct:
		if len(t.Struct.Fields) != len(other.Struct.Fields) {
			return false
		}
		for i := range t.Struct.Fields {
			if t.Struct.Fields[i].Name != other.Struct.Fields[i].Name {
				return false
			}
			if !t.Struct.Fields[i].Type.Equal(other.Struct.Fields[i].Type) {
				return false
			}
		}
		return true
	case TypeIDMap:
		return t.Map.Key.Equal(*other.Map.Key) && t.Map.Value.Equal(*other.Map.Value)
	}
	return true
}

func (t Type) String() string {
	switch t.TypeID {
	case TypeIDList:
		return fmt.Sprintf("%s[]", *t.List.Element)
	case TypeIDStruct:
		fieldStrings := make([]string, len(t.Struct.Fields))
		for i, field := range t.Struct.Fields {
			fieldStrings[i] = fmt.Sprintf("%s %s", field.Name, field.Type)
		}
		return fmt.Sprintf("STRUCT(%s)", strings.Join(fieldStrings, ", "))
	case TypeIDMap:
		return fmt.Sprintf("MAP(%s, %s)", *t.Map.Key, *t.Map.Value)
	}
	return t.TypeID.String()
}

// MapSchema is the key and value type of a MAP column.
type MapSchema struct {
	Key   Type
	Value Type
}

// UntypedSchema is what inference yields when there is nothing to infer from.
var UntypedSchema = MapSchema{Key: Null, Value: Null}

func (s MapSchema) Type() Type {
	return NewMapType(s.Key, s.Value)
}

func (s MapSchema) Resolved() bool {
	return s.Key.Resolved() && s.Value.Resolved()
}

func (s MapSchema) String() string {
	return s.Type().String()
}

// SchemaOf extracts the MapSchema of a MAP type.
func SchemaOf(t Type) (MapSchema, bool) {
	if t.TypeID != TypeIDMap {
		return MapSchema{}, false
	}
	return MapSchema{Key: *t.Map.Key, Value: *t.Map.Value}, true
}
