// Package columnar lays engine values out as Apache Arrow arrays.
// A MAP column becomes an arrow map array: one offsets buffer plus parallel key and item children.
package columnar

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/pkg/errors"

	"github.com/cube2222/octomap/octomap"
)

func ArrowType(t octomap.Type) (arrow.DataType, error) {
	switch t.TypeID {
	case octomap.TypeIDNull:
		return arrow.Null, nil
	case octomap.TypeIDBoolean:
		return arrow.FixedWidthTypes.Boolean, nil
	case octomap.TypeIDInt:
		return arrow.PrimitiveTypes.Int32, nil
	case octomap.TypeIDBigInt:
		return arrow.PrimitiveTypes.Int64, nil
	case octomap.TypeIDFloat:
		return arrow.PrimitiveTypes.Float32, nil
	case octomap.TypeIDDouble:
		return arrow.PrimitiveTypes.Float64, nil
	case octomap.TypeIDString:
		return arrow.BinaryTypes.String, nil
	case octomap.TypeIDList:
		element, err := ArrowType(*t.List.Element)
		if err != nil {
			return nil, err
		}
		return arrow.ListOf(element), nil
	case octomap.TypeIDStruct:
		fields := make([]arrow.Field, len(t.Struct.Fields))
		for i, field := range t.Struct.Fields {
			fieldType, err := ArrowType(field.Type)
			if err != nil {
				return nil, errors.Wrapf(err, "field '%s'", field.Name)
			}
			fields[i] = arrow.Field{
				Name:     field.Name,
				Type:     fieldType,
				Nullable: true,
			}
		}
		return arrow.StructOf(fields...), nil
	case octomap.TypeIDMap:
		if t.Map.Key.TypeID == octomap.TypeIDNull {
			return nil, errors.Errorf("map key type of %s is unresolved", t)
		}
		key, err := ArrowType(*t.Map.Key)
		if err != nil {
			return nil, errors.Wrap(err, "map key")
		}
		value, err := ArrowType(*t.Map.Value)
		if err != nil {
			return nil, errors.Wrap(err, "map value")
		}
		return arrow.MapOf(key, value), nil
	}
	return nil, errors.Errorf("invalid type: %v", t)
}

// BuildArray appends all values, which must be of type t, into a new arrow array.
func BuildArray(mem memory.Allocator, t octomap.Type, values []octomap.Value) (arrow.Array, error) {
	dt, err := ArrowType(t)
	if err != nil {
		return nil, err
	}
	builder := array.NewBuilder(mem, dt)
	defer builder.Release()

	for i := range values {
		if err := appendValue(builder, t, values[i]); err != nil {
			return nil, errors.Wrapf(err, "row %d", i)
		}
	}
	return builder.NewArray(), nil
}

func appendValue(builder array.Builder, t octomap.Type, v octomap.Value) error {
	if v.IsNull() {
		builder.AppendNull()
		return nil
	}
	if v.Type.TypeID != t.TypeID {
		return errors.Errorf("value %s of type %s doesn't match column type %s", v, v.Type, t)
	}

	switch b := builder.(type) {
	case *array.BooleanBuilder:
		b.Append(v.Boolean)
	case *array.Int32Builder:
		b.Append(int32(v.Int))
	case *array.Int64Builder:
		b.Append(v.Int)
	case *array.Float32Builder:
		b.Append(float32(v.Float))
	case *array.Float64Builder:
		b.Append(v.Float)
	case *array.StringBuilder:
		b.Append(v.Str)
	case *array.MapBuilder:
		b.Append(true)
		kb := b.KeyBuilder()
		ib := b.ItemBuilder()
		for i := range v.Keys {
			if err := appendValue(kb, *t.Map.Key, v.Keys[i]); err != nil {
				return errors.Wrap(err, "map key")
			}
			if err := appendValue(ib, *t.Map.Value, v.Values[i]); err != nil {
				return errors.Wrap(err, "map value")
			}
		}
	case *array.ListBuilder:
		b.Append(true)
		vb := b.ValueBuilder()
		for i := range v.List {
			if err := appendValue(vb, *t.List.Element, v.List[i]); err != nil {
				return errors.Wrap(err, "list element")
			}
		}
	case *array.StructBuilder:
		b.Append(true)
		for i, field := range t.Struct.Fields {
			if err := appendValue(b.FieldBuilder(i), field.Type, v.Struct[i]); err != nil {
				return errors.Wrapf(err, "struct field '%s'", field.Name)
			}
		}
	default:
		return fmt.Errorf("unsupported arrow builder %T for type %s", builder, t)
	}
	return nil
}

// ReadArray reads every row of arr back as values of type t.
func ReadArray(t octomap.Type, arr arrow.Array) ([]octomap.Value, error) {
	out := make([]octomap.Value, arr.Len())
	for i := range out {
		v, err := readValue(t, arr, i)
		if err != nil {
			return nil, errors.Wrapf(err, "row %d", i)
		}
		out[i] = v
	}
	return out, nil
}

func readValue(t octomap.Type, arr arrow.Array, i int) (octomap.Value, error) {
	if arr.IsNull(i) {
		return octomap.NewTypedNull(t), nil
	}

	switch a := arr.(type) {
	case *array.Null:
		return octomap.NewTypedNull(t), nil
	case *array.Boolean:
		return octomap.NewBoolean(a.Value(i)), nil
	case *array.Int32:
		return octomap.NewInt(a.Value(i)), nil
	case *array.Int64:
		return octomap.NewBigInt(a.Value(i)), nil
	case *array.Float32:
		return octomap.NewFloat(a.Value(i)), nil
	case *array.Float64:
		return octomap.NewDouble(a.Value(i)), nil
	case *array.String:
		return octomap.NewString(a.Value(i)), nil
	case *array.Map:
		schema, ok := octomap.SchemaOf(t)
		if !ok {
			return octomap.ZeroValue, errors.Errorf("arrow map array read as %s", t)
		}
		start, end := a.ValueOffsets(i)
		keys := make([]octomap.Value, 0, end-start)
		values := make([]octomap.Value, 0, end-start)
		for j := int(start); j < int(end); j++ {
			key, err := readValue(schema.Key, a.Keys(), j)
			if err != nil {
				return octomap.ZeroValue, errors.Wrap(err, "map key")
			}
			value, err := readValue(schema.Value, a.Items(), j)
			if err != nil {
				return octomap.ZeroValue, errors.Wrap(err, "map value")
			}
			keys = append(keys, key)
			values = append(values, value)
		}
		return octomap.NewMap(schema, keys, values), nil
	case *array.List:
		if t.TypeID != octomap.TypeIDList {
			return octomap.ZeroValue, errors.Errorf("arrow list array read as %s", t)
		}
		start, end := a.ValueOffsets(i)
		elements := make([]octomap.Value, 0, end-start)
		for j := int(start); j < int(end); j++ {
			element, err := readValue(*t.List.Element, a.ListValues(), j)
			if err != nil {
				return octomap.ZeroValue, errors.Wrap(err, "list element")
			}
			elements = append(elements, element)
		}
		return octomap.NewList(*t.List.Element, elements), nil
	case *array.Struct:
		if t.TypeID != octomap.TypeIDStruct {
			return octomap.ZeroValue, errors.Errorf("arrow struct array read as %s", t)
		}
		fields := make([]octomap.Value, len(t.Struct.Fields))
		for k, field := range t.Struct.Fields {
			fieldValue, err := readValue(field.Type, a.Field(k), i)
			if err != nil {
				return octomap.ZeroValue, errors.Wrapf(err, "struct field '%s'", field.Name)
			}
			fields[k] = fieldValue
		}
		return octomap.NewStruct(t, fields), nil
	}
	return octomap.ZeroValue, fmt.Errorf("unsupported arrow array %T for type %s", arr, t)
}
