package codec

import (
	"github.com/cube2222/octomap/host"
	"github.com/cube2222/octomap/inference"
	"github.com/cube2222/octomap/octomap"
)

// FromHost converts a host value into an engine value of type t.
// Scalars go through octomap.Cast, so an explicit target type wins over
// what the value would be inferred as: the string "3" becomes FLOAT 3.0.
func FromHost(v host.Value, t octomap.Type) (octomap.Value, error) {
	if v.Kind == host.KindNone {
		return octomap.NewTypedNull(t), nil
	}
	if t.TypeID == octomap.TypeIDNull {
		source, _ := inference.InferType(v)
		return octomap.ZeroValue, octomap.NewConversionError(source, t, "can't convert %s into an untyped NULL", v)
	}

	switch v.Kind {
	case host.KindBool:
		return octomap.Cast(octomap.NewBoolean(v.Bool), t)
	case host.KindInt:
		return octomap.Cast(octomap.NewBigInt(v.Int), t)
	case host.KindFloat:
		return octomap.Cast(octomap.NewDouble(v.Float), t)
	case host.KindString:
		return octomap.Cast(octomap.NewString(v.Str), t)
	case host.KindList:
		if t.TypeID == octomap.TypeIDList {
			out := make([]octomap.Value, len(v.List))
			for i := range v.List {
				element, err := FromHost(v.List[i], *t.List.Element)
				if err != nil {
					return octomap.ZeroValue, err
				}
				out[i] = element
			}
			return octomap.NewList(*t.List.Element, out), nil
		}
	case host.KindDict:
		switch t.TypeID {
		case octomap.TypeIDMap:
			schema, _ := octomap.SchemaOf(t)
			return fromHostMap(v, schema)
		case octomap.TypeIDStruct:
			return fromHostStruct(v, t)
		}
	}

	if t.TypeID == octomap.TypeIDString {
		natural, err := Natural(v)
		if err != nil {
			return octomap.ZeroValue, err
		}
		return octomap.Cast(natural, t)
	}

	source, err := inference.InferType(v)
	if err != nil {
		return octomap.ZeroValue, err
	}
	return octomap.ZeroValue, octomap.NewUnimplementedCast(source, t)
}

// Natural converts a host value under its own inferred type.
func Natural(v host.Value) (octomap.Value, error) {
	t, err := inference.InferType(v)
	if err != nil {
		return octomap.ZeroValue, err
	}
	if v.Kind == host.KindNone {
		return octomap.NewNull(), nil
	}
	return FromHost(v, t)
}

func fromHostMap(v host.Value, schema octomap.MapSchema) (octomap.Value, error) {
	hostKeys, hostValues, err := inference.Entries(v)
	if err != nil {
		if e, ok := octomap.AsError(err); ok {
			e.Target = schema.Type()
		}
		return octomap.ZeroValue, err
	}
	keys := make([]octomap.Value, len(hostKeys))
	values := make([]octomap.Value, len(hostValues))
	for i := range hostKeys {
		if hostKeys[i].Kind == host.KindNone {
			return octomap.ZeroValue, octomap.NewConversionError(octomap.Null, schema.Key, "map keys can not be NULL")
		}
		if keys[i], err = FromHost(hostKeys[i], schema.Key); err != nil {
			return octomap.ZeroValue, err
		}
		if values[i], err = FromHost(hostValues[i], schema.Value); err != nil {
			return octomap.ZeroValue, err
		}
	}
	return octomap.NewMap(schema, keys, values), nil
}

func fromHostStruct(v host.Value, t octomap.Type) (octomap.Value, error) {
	for _, entry := range v.Entries {
		if entry.Key.Kind != host.KindString || t.FieldIndex(entry.Key.Str) == -1 {
			source, _ := inference.InferType(v)
			return octomap.ZeroValue, octomap.NewConversionError(source, t, "key %s doesn't match any field of %s", entry.Key, t)
		}
	}
	out := make([]octomap.Value, len(t.Struct.Fields))
	for i, field := range t.Struct.Fields {
		fieldValue, ok := v.Get(field.Name)
		if !ok {
			out[i] = octomap.NewTypedNull(field.Type)
			continue
		}
		var err error
		if out[i], err = FromHost(fieldValue, field.Type); err != nil {
			return octomap.ZeroValue, err
		}
	}
	return octomap.NewStruct(t, out), nil
}

// ToHost converts an engine value back into a host value.
// Maps nested anywhere inside follow the same dual representation rule as Decode.
func ToHost(v octomap.Value) host.Value {
	if v.IsNull() {
		return host.None()
	}
	switch v.Type.TypeID {
	case octomap.TypeIDBoolean:
		return host.Bool(v.Boolean)
	case octomap.TypeIDInt, octomap.TypeIDBigInt:
		return host.Int(v.Int)
	case octomap.TypeIDFloat, octomap.TypeIDDouble:
		return host.Float(v.Float)
	case octomap.TypeIDString:
		return host.Str(v.Str)
	case octomap.TypeIDList:
		out := make([]host.Value, len(v.List))
		for i := range v.List {
			out[i] = ToHost(v.List[i])
		}
		return host.List(out...)
	case octomap.TypeIDStruct:
		entries := make([]host.Entry, len(v.Struct))
		for i := range v.Struct {
			entries[i] = host.E(host.Str(v.Type.Struct.Fields[i].Name), ToHost(v.Struct[i]))
		}
		return host.Dict(entries...)
	case octomap.TypeIDMap:
		return decodeMap(v)
	}
	panic("impossible, type switch bug")
}
