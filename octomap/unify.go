package octomap

var numericRank = map[TypeID]int{
	TypeIDInt:    1,
	TypeIDBigInt: 2,
	TypeIDFloat:  3,
	TypeIDDouble: 4,
}

// UnifyScalar returns the least upper bound of two scalar types.
// Numbers widen INTEGER < BIGINT < FLOAT < DOUBLE, NULL is the identity,
// and anything else that differs meets at VARCHAR.
func UnifyScalar(a, b TypeID) TypeID {
	if a == TypeIDNull {
		return b
	}
	if b == TypeIDNull {
		return a
	}
	if a == b {
		return a
	}
	rankA, numericA := numericRank[a]
	rankB, numericB := numericRank[b]
	if numericA && numericB {
		if rankA > rankB {
			return a
		}
		return b
	}
	return TypeIDString
}

// Unify returns the least general type both a and b can be represented as.
// It is commutative and associative, except that struct fields keep the order of a.
func Unify(a, b Type) (Type, error) {
	if a.TypeID == TypeIDNull {
		return b, nil
	}
	if b.TypeID == TypeIDNull {
		return a, nil
	}
	if a.IsScalar() && b.IsScalar() {
		return Type{TypeID: UnifyScalar(a.TypeID, b.TypeID)}, nil
	}
	// The VARCHAR fallback applies to scalars only.
	if a.TypeID != b.TypeID {
		return Type{}, NewTypeMismatch(a, b)
	}

	switch a.TypeID {
	case TypeIDList:
		element, err := Unify(*a.List.Element, *b.List.Element)
		if err != nil {
			return Type{}, err
		}
		return NewListType(element), nil

	case TypeIDStruct:
		if len(a.Struct.Fields) != len(b.Struct.Fields) {
			return Type{}, NewSchemaMismatch(a, b)
		}
		fields := make([]StructField, len(a.Struct.Fields))
		for i, field := range a.Struct.Fields {
			j := b.FieldIndex(field.Name)
			if j == -1 {
				return Type{}, NewSchemaMismatch(a, b)
			}
			fieldType, err := Unify(field.Type, b.Struct.Fields[j].Type)
			if err != nil {
				return Type{}, err
			}
			fields[i] = StructField{Name: field.Name, Type: fieldType}
		}
		return NewStructType(fields...), nil

	case TypeIDMap:
		key, err := Unify(*a.Map.Key, *b.Map.Key)
		if err != nil {
			return Type{}, err
		}
		value, err := Unify(*a.Map.Value, *b.Map.Value)
		if err != nil {
			return Type{}, err
		}
		return NewMapType(key, value), nil
	}
	panic("impossible, type switch bug")
}

// UnifyAll folds Unify over types, starting from the untyped placeholder.
func UnifyAll(types ...Type) (Type, error) {
	out := Null
	for i := range types {
		var err error
		if out, err = Unify(out, types[i]); err != nil {
			return Type{}, err
		}
	}
	return out, nil
}
