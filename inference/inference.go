// Package inference derives engine types from host values.
//
// Inference is always whole-batch: every observed key and value of every row
// is folded through octomap.Unify, so whether inference succeeds and the resulting
// schema are independent of row order. The one exception is the field order of
// inferred structs, which follows their first occurrence. A declared schema
// always wins over an inferred one.
package inference

import (
	"math"

	"github.com/pkg/errors"

	"github.com/cube2222/octomap/host"
	"github.com/cube2222/octomap/octomap"
)

// InferType returns the type a single host value would get without any pushed-down target.
func InferType(v host.Value) (octomap.Type, error) {
	switch v.Kind {
	case host.KindNone:
		return octomap.Null, nil
	case host.KindBool:
		return octomap.Boolean, nil
	case host.KindInt:
		if v.Int < math.MinInt32 || v.Int > math.MaxInt32 {
			return octomap.BigInt, nil
		}
		return octomap.Int, nil
	case host.KindFloat:
		return octomap.Double, nil
	case host.KindString:
		return octomap.String, nil
	case host.KindList:
		element, err := inferFold(v.List)
		if err != nil {
			return octomap.Type{}, errors.Wrap(err, "couldn't infer list element type")
		}
		return octomap.NewListType(element), nil
	case host.KindDict:
		return inferDict(v)
	}
	panic("impossible, kind switch bug")
}

func inferDict(v host.Value) (octomap.Type, error) {
	if keys, values, ok := v.AsPairs(); ok && len(keys) == len(values) {
		return inferMap(keys, values)
	}

	if len(v.Entries) > 0 && allStringKeys(v.Entries) {
		fields := make([]octomap.StructField, 0, len(v.Entries))
		for _, entry := range v.Entries {
			t, err := InferType(entry.Value)
			if err != nil {
				return octomap.Type{}, errors.Wrapf(err, "couldn't infer type of field '%s'", entry.Key.Str)
			}
			if i := octomap.NewStructType(fields...).FieldIndex(entry.Key.Str); i != -1 {
				if fields[i].Type, err = octomap.Unify(fields[i].Type, t); err != nil {
					return octomap.Type{}, err
				}
				continue
			}
			fields = append(fields, octomap.StructField{Name: entry.Key.Str, Type: t})
		}
		return octomap.NewStructType(fields...), nil
	}

	keys := make([]host.Value, len(v.Entries))
	values := make([]host.Value, len(v.Entries))
	for i := range v.Entries {
		keys[i], values[i] = v.Entries[i].Key, v.Entries[i].Value
	}
	return inferMap(keys, values)
}

func inferMap(keys, values []host.Value) (octomap.Type, error) {
	keyType, err := inferFold(keys)
	if err != nil {
		return octomap.Type{}, errors.Wrap(err, "couldn't infer map key type")
	}
	valueType, err := inferFold(values)
	if err != nil {
		return octomap.Type{}, errors.Wrap(err, "couldn't infer map value type")
	}
	return octomap.NewMapType(keyType, valueType), nil
}

func allStringKeys(entries []host.Entry) bool {
	for i := range entries {
		if entries[i].Key.Kind != host.KindString {
			return false
		}
	}
	return true
}

func inferFold(values []host.Value) (octomap.Type, error) {
	out := octomap.Null
	for i := range values {
		t, err := InferType(values[i])
		if err != nil {
			return octomap.Type{}, err
		}
		if out, err = octomap.Unify(out, t); err != nil {
			return octomap.Type{}, err
		}
	}
	return out, nil
}

// InferColumn unifies the types of all values of a column.
func InferColumn(values []host.Value) (octomap.Type, error) {
	out := octomap.Null
	for i := range values {
		t, err := InferType(values[i])
		if err != nil {
			return octomap.Type{}, errors.Wrapf(err, "row %d", i)
		}
		if out, err = octomap.Unify(out, t); err != nil {
			return octomap.Type{}, errors.Wrapf(err, "row %d", i)
		}
	}
	return out, nil
}

// InferSchema computes the MAP schema of a batch of map-shaped rows.
// With a declared schema inference is bypassed and the declared schema is returned as is.
// Without one, an empty batch yields octomap.UntypedSchema.
func InferSchema(rows []host.Value, declared *octomap.MapSchema) (octomap.MapSchema, error) {
	if declared != nil {
		return *declared, nil
	}

	out := octomap.UntypedSchema
	for i, row := range rows {
		keys, values, err := Entries(row)
		if err != nil {
			return octomap.MapSchema{}, errors.Wrapf(err, "row %d", i)
		}
		for j := range keys {
			keyType, err := InferType(keys[j])
			if err != nil {
				return octomap.MapSchema{}, errors.Wrapf(err, "row %d key %d", i, j)
			}
			if out.Key, err = octomap.Unify(out.Key, keyType); err != nil {
				return octomap.MapSchema{}, errors.Wrapf(err, "row %d key %d", i, j)
			}
			valueType, err := InferType(values[j])
			if err != nil {
				return octomap.MapSchema{}, errors.Wrapf(err, "row %d value %d", i, j)
			}
			if out.Value, err = octomap.Unify(out.Value, valueType); err != nil {
				return octomap.MapSchema{}, errors.Wrapf(err, "row %d value %d", i, j)
			}
		}
	}
	return out, nil
}

// Entries splits a map-shaped host value into its keys and values.
// Dicts yield their entries in order, the paired-list form yields its two lists,
// None yields nothing.
func Entries(row host.Value) (keys, values []host.Value, err error) {
	switch row.Kind {
	case host.KindNone:
		return nil, nil, nil
	case host.KindDict:
		if keys, values, ok := row.AsPairs(); ok {
			if len(keys) != len(values) {
				return nil, nil, octomap.NewConversionError(octomap.Null, octomap.UntypedSchema.Type(),
					"map key list and value list have different lengths (%d != %d)", len(keys), len(values))
			}
			return keys, values, nil
		}
		keys = make([]host.Value, len(row.Entries))
		values = make([]host.Value, len(row.Entries))
		for i := range row.Entries {
			keys[i], values[i] = row.Entries[i].Key, row.Entries[i].Value
		}
		return keys, values, nil
	}

	t, err := InferType(row)
	if err != nil {
		return nil, nil, err
	}
	return nil, nil, octomap.NewTypeMismatch(t, octomap.UntypedSchema.Type())
}

// Resolve replaces every untyped placeholder left in t with VARCHAR,
// which is what a column of only NULLs is materialized as.
func Resolve(t octomap.Type) octomap.Type {
	switch t.TypeID {
	case octomap.TypeIDNull:
		return octomap.String
	case octomap.TypeIDList:
		return octomap.NewListType(Resolve(*t.List.Element))
	case octomap.TypeIDStruct:
		fields := make([]octomap.StructField, len(t.Struct.Fields))
		for i, field := range t.Struct.Fields {
			fields[i] = octomap.StructField{Name: field.Name, Type: Resolve(field.Type)}
		}
		return octomap.NewStructType(fields...)
	case octomap.TypeIDMap:
		return octomap.NewMapType(Resolve(*t.Map.Key), Resolve(*t.Map.Value))
	}
	return t
}
