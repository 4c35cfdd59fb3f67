// Package host models the dynamically typed containers of the data-frame side:
// None, booleans, integers, floats, strings, lists and insertion-ordered dicts.
//
// Everything crossing into the engine is one of these tagged values, so the
// conversion code never has to branch on Go runtime types.
package host

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

type Kind int

const (
	KindNone Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindList
	KindDict
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "NoneType"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "str"
	case KindList:
		return "list"
	case KindDict:
		return "dict"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

type Value struct {
	Kind    Kind
	Bool    bool
	Int     int64
	Float   float64
	Str     string
	List    []Value
	Entries []Entry
}

// Entry is a single dict item. Keys may be any value, including lists and dicts.
type Entry struct {
	Key   Value
	Value Value
}

// The names of the two lists making up the paired-list form of a map.
const (
	PairsKeyField   = "key"
	PairsValueField = "value"
)

func None() Value {
	return Value{Kind: KindNone}
}

func Bool(b bool) Value {
	return Value{Kind: KindBool, Bool: b}
}

func Int(i int64) Value {
	return Value{Kind: KindInt, Int: i}
}

func Float(f float64) Value {
	return Value{Kind: KindFloat, Float: f}
}

func Str(s string) Value {
	return Value{Kind: KindString, Str: s}
}

func List(values ...Value) Value {
	if values == nil {
		values = []Value{}
	}
	return Value{Kind: KindList, List: values}
}

func Dict(entries ...Entry) Value {
	if entries == nil {
		entries = []Entry{}
	}
	return Value{Kind: KindDict, Entries: entries}
}

// E is shorthand for building dict entries.
func E(key, value Value) Entry {
	return Entry{Key: key, Value: value}
}

// Pairs builds the paired-list form {'key': [...], 'value': [...]}.
func Pairs(keys, values []Value) Value {
	return Dict(
		E(Str(PairsKeyField), List(keys...)),
		E(Str(PairsValueField), List(values...)),
	)
}

// AsPairs reports whether v has the shape of the paired-list form.
// The two lists aren't required to have equal length here.
func (v Value) AsPairs() (keys, values []Value, ok bool) {
	if v.Kind != KindDict || len(v.Entries) != 2 {
		return nil, nil, false
	}
	k, okKey := v.Get(PairsKeyField)
	val, okValue := v.Get(PairsValueField)
	if !okKey || !okValue || k.Kind != KindList || val.Kind != KindList {
		return nil, nil, false
	}
	return k.List, val.List, true
}

// Get looks up a string key in a dict.
func (v Value) Get(key string) (Value, bool) {
	for i := len(v.Entries) - 1; i >= 0; i-- {
		if v.Entries[i].Key.Kind == KindString && v.Entries[i].Key.Str == key {
			return v.Entries[i].Value, true
		}
	}
	return Value{}, false
}

// IsScalar is true for values usable as native dictionary keys.
func (v Value) IsScalar() bool {
	return v.Kind != KindList && v.Kind != KindDict
}

// Equal follows data-frame semantics: 1 == 1.0, and dicts compare regardless of entry order.
func (v Value) Equal(other Value) bool {
	if v.isNumber() && other.isNumber() {
		return v.number() == other.number()
	}
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case KindNone:
		return true
	case KindString:
		return v.Str == other.Str
	case KindList:
		if len(v.List) != len(other.List) {
			return false
		}
		for i := range v.List {
			if !v.List[i].Equal(other.List[i]) {
				return false
			}
		}
		return true
	case KindDict:
		if len(v.Entries) != len(other.Entries) {
			return false
		}
	entryLoop:
		for i := range v.Entries {
			for j := range other.Entries {
				if v.Entries[i].Key.Equal(other.Entries[j].Key) {
					if !v.Entries[i].Value.Equal(other.Entries[j].Value) {
						return false
					}
					continue entryLoop
				}
			}
			return false
		}
		return true
	}
	panic("impossible, kind switch bug")
}

func (v Value) isNumber() bool {
	return v.Kind == KindBool || v.Kind == KindInt || v.Kind == KindFloat
}

func (v Value) number() float64 {
	switch v.Kind {
	case KindBool:
		if v.Bool {
			return 1
		}
		return 0
	case KindInt:
		return float64(v.Int)
	}
	return v.Float
}

func (v Value) String() string {
	builder := &strings.Builder{}
	v.append(builder)
	return builder.String()
}

func (v Value) append(builder *strings.Builder) {
	switch v.Kind {
	case KindNone:
		builder.WriteString("None")
	case KindBool:
		if v.Bool {
			builder.WriteString("True")
		} else {
			builder.WriteString("False")
		}
	case KindInt:
		builder.WriteString(strconv.FormatInt(v.Int, 10))
	case KindFloat:
		if v.Float == math.Trunc(v.Float) && math.Abs(v.Float) < 1e16 {
			builder.WriteString(strconv.FormatFloat(v.Float, 'f', 1, 64))
		} else {
			builder.WriteString(strconv.FormatFloat(v.Float, 'g', -1, 64))
		}
	case KindString:
		builder.WriteString(strconv.Quote(v.Str))
	case KindList:
		builder.WriteString("[")
		for i := range v.List {
			v.List[i].append(builder)
			if i != len(v.List)-1 {
				builder.WriteString(", ")
			}
		}
		builder.WriteString("]")
	case KindDict:
		builder.WriteString("{")
		for i := range v.Entries {
			v.Entries[i].Key.append(builder)
			builder.WriteString(": ")
			v.Entries[i].Value.append(builder)
			if i != len(v.Entries)-1 {
				builder.WriteString(", ")
			}
		}
		builder.WriteString("}")
	default:
		panic("impossible, kind switch bug")
	}
}
