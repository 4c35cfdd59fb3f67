package octomap

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

var ZeroValue = Value{}

// Value is a typed engine value. For MAP values Keys and Values are parallel slices,
// which is the columnar layout of a single map row.
type Value struct {
	Type    Type
	Null    bool
	Boolean bool
	Int     int64
	Float   float64
	Str     string
	List    []Value
	Struct  []Value
	Keys    []Value
	Values  []Value
}

func NewNull() Value {
	return Value{Type: Null, Null: true}
}

// NewTypedNull is a NULL which already belongs to a column of type t.
func NewTypedNull(t Type) Value {
	return Value{Type: t, Null: true}
}

func (value Value) IsNull() bool {
	return value.Null || value.Type.TypeID == TypeIDNull
}

func NewBoolean(value bool) Value {
	return Value{Type: Boolean, Boolean: value}
}

func NewInt(value int32) Value {
	return Value{Type: Int, Int: int64(value)}
}

func NewBigInt(value int64) Value {
	return Value{Type: BigInt, Int: value}
}

func NewFloat(value float32) Value {
	return Value{Type: Float, Float: float64(value)}
}

func NewDouble(value float64) Value {
	return Value{Type: Double, Float: value}
}

func NewString(value string) Value {
	return Value{Type: String, Str: value}
}

func NewList(element Type, values []Value) Value {
	return Value{Type: NewListType(element), List: values}
}

// NewStruct expects fieldValues in the order of t's fields.
func NewStruct(t Type, fieldValues []Value) Value {
	return Value{Type: t, Struct: fieldValues}
}

func NewMap(schema MapSchema, keys, values []Value) Value {
	return Value{Type: schema.Type(), Keys: keys, Values: values}
}

// Len is the number of entries of a MAP, or elements of a LIST.
func (value Value) Len() int {
	switch value.Type.TypeID {
	case TypeIDMap:
		return len(value.Keys)
	case TypeIDList:
		return len(value.List)
	}
	return 0
}

// Compare orders values of the same type. Numbers of different widths compare by value.
func (value Value) Compare(other Value) int {
	if value.IsNull() || other.IsNull() {
		switch {
		case value.IsNull() && other.IsNull():
			return 0
		case value.IsNull():
			return -1
		default:
			return 1
		}
	}
	if value.Type.IsNumeric() && other.Type.IsNumeric() && value.Type.TypeID != other.Type.TypeID {
		return compareFloats(value.asFloat(), other.asFloat())
	}
	if value.Type.TypeID != other.Type.TypeID {
		if value.Type.TypeID < other.Type.TypeID {
			return -1
		}
		return 1
	}

	switch value.Type.TypeID {
	case TypeIDBoolean:
		if value.Boolean == other.Boolean {
			return 0
		} else if !value.Boolean {
			return -1
		}
		return 1

	case TypeIDInt, TypeIDBigInt:
		if value.Int < other.Int {
			return -1
		} else if value.Int > other.Int {
			return 1
		}
		return 0

	case TypeIDFloat, TypeIDDouble:
		return compareFloats(value.Float, other.Float)

	case TypeIDString:
		return strings.Compare(value.Str, other.Str)

	case TypeIDList:
		return compareSlices(value.List, other.List)

	case TypeIDStruct:
		return compareSlices(value.Struct, other.Struct)

	case TypeIDMap:
		if comp := compareSlices(value.Keys, other.Keys); comp != 0 {
			return comp
		}
		return compareSlices(value.Values, other.Values)
	}
	panic("impossible, type switch bug")
}

// compareFloats is a total order: NaN equals NaN and sorts above every number.
func compareFloats(a, b float64) int {
	aNaN, bNaN := math.IsNaN(a), math.IsNaN(b)
	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return 1
	case bNaN:
		return -1
	}
	if a < b {
		return -1
	} else if a > b {
		return 1
	}
	return 0
}

func compareSlices(a, b []Value) int {
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}

	for i := 0; i < maxLen; i++ {
		if i == len(a) {
			return -1
		} else if i == len(b) {
			return 1
		}

		if comp := a[i].Compare(b[i]); comp != 0 {
			return comp
		}
	}
	return 0
}

func (value Value) asFloat() float64 {
	switch value.Type.TypeID {
	case TypeIDInt, TypeIDBigInt:
		return float64(value.Int)
	}
	return value.Float
}

func (value Value) String() string {
	builder := &strings.Builder{}
	value.append(builder)
	return builder.String()
}

// Text is the VARCHAR rendering of the value: top-level strings aren't quoted.
func (value Value) Text() string {
	if value.Type.TypeID == TypeIDString && !value.IsNull() {
		return value.Str
	}
	return value.String()
}

func (value Value) append(builder *strings.Builder) {
	if value.IsNull() {
		builder.WriteString("NULL")
		return
	}
	switch value.Type.TypeID {
	case TypeIDBoolean:
		builder.WriteString(strconv.FormatBool(value.Boolean))

	case TypeIDInt, TypeIDBigInt:
		builder.WriteString(strconv.FormatInt(value.Int, 10))

	case TypeIDFloat:
		builder.WriteString(FormatFloat(value.Float, 32))

	case TypeIDDouble:
		builder.WriteString(FormatFloat(value.Float, 64))

	case TypeIDString:
		builder.WriteString(fmt.Sprintf("'%s'", value.Str))

	case TypeIDList:
		builder.WriteString("[")
		for i, v := range value.List {
			v.append(builder)
			if i != len(value.List)-1 {
				builder.WriteString(", ")
			}
		}
		builder.WriteString("]")

	case TypeIDStruct:
		builder.WriteString("{")
		for i, v := range value.Struct {
			builder.WriteString(fmt.Sprintf("'%s': ", value.Type.Struct.Fields[i].Name))
			v.append(builder)
			if i != len(value.Struct)-1 {
				builder.WriteString(", ")
			}
		}
		builder.WriteString("}")

	case TypeIDMap:
		builder.WriteString("{")
		for i := range value.Keys {
			value.Keys[i].append(builder)
			builder.WriteString("=")
			value.Values[i].append(builder)
			if i != len(value.Keys)-1 {
				builder.WriteString(", ")
			}
		}
		builder.WriteString("}")

	default:
		panic("impossible, type switch bug")
	}
}

// FormatFloat prints integral floats with a trailing ".0", the way the engine prints them.
func FormatFloat(f float64, bitSize int) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'g', -1, bitSize)
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatFloat(f, 'f', 1, bitSize)
	}
	return strconv.FormatFloat(f, 'g', -1, bitSize)
}
