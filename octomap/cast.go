package octomap

import (
	"math"
	"strconv"
	"strings"
)

// Cast converts a value into the target type. Paths that don't exist at all,
// like STRUCT -> MAP, fail with an unimplemented cast ConversionException.
func Cast(v Value, target Type) (Value, error) {
	if v.IsNull() {
		return NewTypedNull(target), nil
	}
	if target.TypeID == TypeIDNull {
		return ZeroValue, NewConversionError(v.Type, target, "can't cast %s to an untyped NULL", v.Type)
	}
	if v.Type.Equal(target) {
		return v, nil
	}

	switch target.TypeID {
	case TypeIDString:
		return NewString(v.Text()), nil

	case TypeIDBoolean:
		return castToBoolean(v, target)

	case TypeIDInt, TypeIDBigInt, TypeIDFloat, TypeIDDouble:
		return castToNumber(v, target)

	case TypeIDList:
		if v.Type.TypeID != TypeIDList {
			break
		}
		out := make([]Value, len(v.List))
		for i := range v.List {
			element, err := Cast(v.List[i], *target.List.Element)
			if err != nil {
				return ZeroValue, err
			}
			out[i] = element
		}
		return NewList(*target.List.Element, out), nil

	case TypeIDStruct:
		if v.Type.TypeID != TypeIDStruct {
			break
		}
		if len(v.Type.Struct.Fields) != len(target.Struct.Fields) {
			return ZeroValue, NewConversionError(v.Type, target, "can't cast %s to %s: field count differs", v.Type, target)
		}
		out := make([]Value, len(target.Struct.Fields))
		for i, field := range target.Struct.Fields {
			j := v.Type.FieldIndex(field.Name)
			if j == -1 {
				return ZeroValue, NewConversionError(v.Type, target, "can't cast %s to %s: missing field '%s'", v.Type, target, field.Name)
			}
			fieldValue, err := Cast(v.Struct[j], field.Type)
			if err != nil {
				return ZeroValue, err
			}
			out[i] = fieldValue
		}
		return NewStruct(target, out), nil

	case TypeIDMap:
		if v.Type.TypeID != TypeIDMap {
			break
		}
		schema, _ := SchemaOf(target)
		keys := make([]Value, len(v.Keys))
		values := make([]Value, len(v.Values))
		for i := range v.Keys {
			if v.Keys[i].IsNull() {
				return ZeroValue, NewConversionError(v.Type, target, "map keys can not be NULL")
			}
			key, err := Cast(v.Keys[i], schema.Key)
			if err != nil {
				return ZeroValue, err
			}
			value, err := Cast(v.Values[i], schema.Value)
			if err != nil {
				return ZeroValue, err
			}
			keys[i], values[i] = key, value
		}
		return NewMap(schema, keys, values), nil
	}

	return ZeroValue, NewUnimplementedCast(v.Type, target)
}

func castToBoolean(v Value, target Type) (Value, error) {
	switch v.Type.TypeID {
	case TypeIDInt, TypeIDBigInt:
		return NewBoolean(v.Int != 0), nil
	case TypeIDFloat, TypeIDDouble:
		return NewBoolean(v.Float != 0), nil
	case TypeIDString:
		switch strings.ToLower(strings.TrimSpace(v.Str)) {
		case "true", "t", "1":
			return NewBoolean(true), nil
		case "false", "f", "0":
			return NewBoolean(false), nil
		}
		return ZeroValue, NewConversionError(v.Type, target, "Could not convert string '%s' to %s", v.Str, target)
	}
	return ZeroValue, NewUnimplementedCast(v.Type, target)
}

func castToNumber(v Value, target Type) (Value, error) {
	switch v.Type.TypeID {
	case TypeIDBoolean:
		if v.Boolean {
			return numberFromInt(1, v, target)
		}
		return numberFromInt(0, v, target)
	case TypeIDInt, TypeIDBigInt:
		return numberFromInt(v.Int, v, target)
	case TypeIDFloat, TypeIDDouble:
		return numberFromFloat(v.Float, v, target)
	case TypeIDString:
		text := strings.TrimSpace(v.Str)
		if target.TypeID == TypeIDInt || target.TypeID == TypeIDBigInt {
			if i, err := strconv.ParseInt(text, 10, 64); err == nil {
				return numberFromInt(i, v, target)
			}
		}
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return ZeroValue, NewConversionError(v.Type, target, "Could not convert string '%s' to %s", v.Str, target)
		}
		return numberFromFloat(f, v, target)
	}
	return ZeroValue, NewUnimplementedCast(v.Type, target)
}

func numberFromInt(i int64, source Value, target Type) (Value, error) {
	switch target.TypeID {
	case TypeIDInt:
		if i < math.MinInt32 || i > math.MaxInt32 {
			return ZeroValue, outOfRange(source, target)
		}
		return NewInt(int32(i)), nil
	case TypeIDBigInt:
		return NewBigInt(i), nil
	case TypeIDFloat:
		return NewFloat(float32(i)), nil
	case TypeIDDouble:
		return NewDouble(float64(i)), nil
	}
	panic("impossible, type switch bug")
}

func numberFromFloat(f float64, source Value, target Type) (Value, error) {
	switch target.TypeID {
	case TypeIDInt, TypeIDBigInt:
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return ZeroValue, outOfRange(source, target)
		}
		rounded := math.Round(f)
		if rounded < math.MinInt64 || rounded >= math.MaxInt64 {
			return ZeroValue, outOfRange(source, target)
		}
		return numberFromInt(int64(rounded), source, target)
	case TypeIDFloat:
		if !math.IsInf(f, 0) && math.Abs(f) > math.MaxFloat32 {
			return ZeroValue, outOfRange(source, target)
		}
		return NewFloat(float32(f)), nil
	case TypeIDDouble:
		return NewDouble(f), nil
	}
	panic("impossible, type switch bug")
}

func outOfRange(source Value, target Type) error {
	return NewConversionError(source.Type, target, "Type %s with value %s can't be cast because the value is out of range for the destination type %s", source.Type, source.Text(), target)
}
