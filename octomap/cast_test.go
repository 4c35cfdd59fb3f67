package octomap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCast(t *testing.T) {
	tests := []struct {
		name     string
		value    Value
		target   Type
		want     Value
		wantKind ErrorKind
	}{
		{
			name:   "null becomes a typed null",
			value:  NewNull(),
			target: NewMapType(String, Int),
			want:   NewTypedNull(NewMapType(String, Int)),
		},
		{
			name:   "int to double",
			value:  NewInt(3),
			target: Double,
			want:   NewDouble(3),
		},
		{
			name:   "string to float",
			value:  NewString("3"),
			target: Float,
			want:   NewFloat(3),
		},
		{
			name:   "string to integer",
			value:  NewString(" 42 "),
			target: Int,
			want:   NewInt(42),
		},
		{
			name:   "double to integer rounds",
			value:  NewDouble(2.5),
			target: BigInt,
			want:   NewBigInt(3),
		},
		{
			name:   "string to boolean",
			value:  NewString("True"),
			target: Boolean,
			want:   NewBoolean(true),
		},
		{
			name:   "double to varchar",
			value:  NewDouble(1),
			target: String,
			want:   NewString("1.0"),
		},
		{
			name:   "list to varchar",
			value:  NewList(String, []Value{NewString("a"), NewString("b")}),
			target: String,
			want:   NewString("['a', 'b']"),
		},
		{
			name:   "list element-wise",
			value:  NewList(Int, []Value{NewInt(1), NewInt(2)}),
			target: NewListType(Double),
			want:   NewList(Double, []Value{NewDouble(1), NewDouble(2)}),
		},
		{
			name:   "map entry-wise",
			value:  NewMap(MapSchema{Key: Int, Value: String}, []Value{NewInt(1)}, []Value{NewString("a")}),
			target: NewMapType(Float, String),
			want:   NewMap(MapSchema{Key: Float, Value: String}, []Value{NewFloat(1)}, []Value{NewString("a")}),
		},
		{
			name: "struct by field name",
			value: NewStruct(
				NewStructType(StructField{Name: "b", Type: Int}, StructField{Name: "a", Type: String}),
				[]Value{NewInt(1), NewString("x")},
			),
			target: NewStructType(StructField{Name: "a", Type: String}, StructField{Name: "b", Type: BigInt}),
			want: NewStruct(
				NewStructType(StructField{Name: "a", Type: String}, StructField{Name: "b", Type: BigInt}),
				[]Value{NewString("x"), NewBigInt(1)},
			),
		},
		{
			name:     "integer out of range",
			value:    NewBigInt(1 << 40),
			target:   Int,
			wantKind: ConversionException,
		},
		{
			name:     "unparseable string",
			value:    NewString("abc"),
			target:   Int,
			wantKind: ConversionException,
		},
		{
			name:     "null map key",
			value:    NewMap(MapSchema{Key: Int, Value: Int}, []Value{NewNull()}, []Value{NewInt(1)}),
			target:   NewMapType(BigInt, Int),
			wantKind: ConversionException,
		},
		{
			name:     "struct to map",
			value:    NewStruct(NewStructType(StructField{Name: "duckdb", Type: Int}), []Value{NewInt(130)}),
			target:   NewMapType(String, Int),
			wantKind: ConversionException,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Cast(tt.value, tt.target)
			if tt.wantKind != 0 {
				assert.True(t, IsKind(err, tt.wantKind), "got error %v", err)
				return
			}
			assert.NoError(t, err)
			assert.True(t, got.Type.Equal(tt.want.Type), "got type %s, want %s", got.Type, tt.want.Type)
			assert.Equal(t, tt.want.IsNull(), got.IsNull())
			assert.Equal(t, 0, got.Compare(tt.want), "got %s, want %s", got, tt.want)
		})
	}
}

func TestUnimplementedCastMessage(t *testing.T) {
	source := NewStruct(NewStructType(StructField{Name: "duckdb", Type: Int}), []Value{NewInt(130)})

	_, err := Cast(source, NewMapType(String, Int))
	assert.EqualError(t, err, "Conversion Error: Unimplemented type for cast (STRUCT(duckdb INTEGER) -> MAP(VARCHAR, INTEGER))")

	e, ok := AsError(err)
	assert.True(t, ok)
	assert.Equal(t, TypeIDStruct, e.Source.TypeID)
	assert.Equal(t, TypeIDMap, e.Target.TypeID)
}
