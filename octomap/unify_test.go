package octomap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var scalarTypeIDs = []TypeID{
	TypeIDNull,
	TypeIDBoolean,
	TypeIDInt,
	TypeIDBigInt,
	TypeIDFloat,
	TypeIDDouble,
	TypeIDString,
}

func TestUnifyScalar(t *testing.T) {
	tests := []struct {
		a, b TypeID
		want TypeID
	}{
		{TypeIDNull, TypeIDInt, TypeIDInt},
		{TypeIDString, TypeIDNull, TypeIDString},
		{TypeIDInt, TypeIDInt, TypeIDInt},
		{TypeIDInt, TypeIDBigInt, TypeIDBigInt},
		{TypeIDInt, TypeIDFloat, TypeIDFloat},
		{TypeIDDouble, TypeIDInt, TypeIDDouble},
		{TypeIDFloat, TypeIDBigInt, TypeIDFloat},
		{TypeIDFloat, TypeIDDouble, TypeIDDouble},
		{TypeIDInt, TypeIDString, TypeIDString},
		{TypeIDBoolean, TypeIDInt, TypeIDString},
		{TypeIDBoolean, TypeIDBoolean, TypeIDBoolean},
	}
	for _, tt := range tests {
		t.Run(tt.a.String()+"_"+tt.b.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, UnifyScalar(tt.a, tt.b))
		})
	}
}

func TestUnifyScalarLaws(t *testing.T) {
	for _, a := range scalarTypeIDs {
		assert.Equal(t, a, UnifyScalar(a, a), "idempotent for %s", a)
		for _, b := range scalarTypeIDs {
			assert.Equal(t, UnifyScalar(a, b), UnifyScalar(b, a), "commutative for %s, %s", a, b)
			for _, c := range scalarTypeIDs {
				assert.Equal(t,
					UnifyScalar(UnifyScalar(a, b), c),
					UnifyScalar(a, UnifyScalar(b, c)),
					"associative for %s, %s, %s", a, b, c,
				)
			}
		}
	}
}

func TestUnify(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Type
		want     Type
		wantKind ErrorKind
	}{
		{
			name: "null is the identity for composites",
			a:    Null,
			b:    NewListType(Int),
			want: NewListType(Int),
		},
		{
			name: "list elements widen",
			a:    NewListType(Int),
			b:    NewListType(Double),
			want: NewListType(Double),
		},
		{
			name:     "varchar and list",
			a:        NewListType(Int),
			b:        String,
			wantKind: TypeMismatch,
		},
		{
			name: "structs unify field-wise in the order of the left operand",
			a: NewStructType(
				StructField{Name: "a", Type: Int},
				StructField{Name: "b", Type: String},
			),
			b: NewStructType(
				StructField{Name: "b", Type: Null},
				StructField{Name: "a", Type: BigInt},
			),
			want: NewStructType(
				StructField{Name: "a", Type: BigInt},
				StructField{Name: "b", Type: String},
			),
		},
		{
			name: "maps unify keys and values",
			a:    NewMapType(Int, String),
			b:    NewMapType(Float, Null),
			want: NewMapType(Float, String),
		},
		{
			name:     "different struct field names",
			a:        NewStructType(StructField{Name: "a", Type: Int}),
			b:        NewStructType(StructField{Name: "b", Type: Int}),
			wantKind: SchemaMismatch,
		},
		{
			name:     "different struct field counts",
			a:        NewStructType(StructField{Name: "a", Type: Int}),
			b:        NewStructType(StructField{Name: "a", Type: Int}, StructField{Name: "b", Type: Int}),
			wantKind: SchemaMismatch,
		},
		{
			name:     "list and struct",
			a:        NewListType(Int),
			b:        NewStructType(StructField{Name: "a", Type: Int}),
			wantKind: TypeMismatch,
		},
		{
			name:     "scalar and list",
			a:        Int,
			b:        NewListType(Int),
			wantKind: TypeMismatch,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Unify(tt.a, tt.b)
			if tt.wantKind != 0 {
				assert.True(t, IsKind(err, tt.wantKind), "got error %v", err)
				return
			}
			assert.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %s, want %s", got, tt.want)
		})
	}
}

func TestUnifyAll(t *testing.T) {
	got, err := UnifyAll()
	assert.NoError(t, err)
	assert.Equal(t, TypeIDNull, got.TypeID)

	got, err = UnifyAll(Int, Null, BigInt, Float)
	assert.NoError(t, err)
	assert.Equal(t, TypeIDFloat, got.TypeID)

	got, err = UnifyAll(NewListType(Int), NewListType(String), NewListType(Null))
	assert.NoError(t, err)
	assert.Equal(t, "VARCHAR[]", got.String())
}

func TestUnifyLaws(t *testing.T) {
	types := []Type{
		Null,
		Int,
		Double,
		String,
		NewListType(Int),
		NewListType(String),
		NewListType(Null),
		NewStructType(StructField{Name: "a", Type: Int}),
		NewStructType(StructField{Name: "a", Type: Null}),
		NewMapType(Int, String),
		NewMapType(Double, Null),
	}
	unify := func(a, b Type) (Type, bool) {
		out, err := Unify(a, b)
		return out, err == nil
	}
	sameResult := func(a Type, okA bool, b Type, okB bool) bool {
		if okA != okB {
			return false
		}
		return !okA || a.Equal(b)
	}

	for _, a := range types {
		for _, b := range types {
			ab, okAB := unify(a, b)
			ba, okBA := unify(b, a)
			assert.True(t, sameResult(ab, okAB, ba, okBA), "commutative for %s, %s", a, b)

			for _, c := range types {
				left, okLeft := Type{}, false
				if ab, ok := unify(a, b); ok {
					left, okLeft = unify(ab, c)
				}
				right, okRight := Type{}, false
				if bc, ok := unify(b, c); ok {
					right, okRight = unify(a, bc)
				}
				assert.True(t, sameResult(left, okLeft, right, okRight), "associative for %s, %s, %s", a, b, c)
			}
		}
	}
}
