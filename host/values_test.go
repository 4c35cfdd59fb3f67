package host

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValueEqual(t *testing.T) {
	tests := []struct {
		name        string
		left, right Value
		want        bool
	}{
		{
			name:  "int and float",
			left:  Int(1),
			right: Float(1.0),
			want:  true,
		},
		{
			name:  "different strings",
			left:  Str("a"),
			right: Str("b"),
			want:  false,
		},
		{
			name:  "string and int",
			left:  Str("1"),
			right: Int(1),
			want:  false,
		},
		{
			name:  "dicts regardless of order",
			left:  Dict(E(Str("a"), Int(1)), E(Str("b"), Int(2))),
			right: Dict(E(Str("b"), Int(2)), E(Str("a"), Int(1))),
			want:  true,
		},
		{
			name:  "dicts with different values",
			left:  Dict(E(Str("a"), Int(1))),
			right: Dict(E(Str("a"), Int(2))),
			want:  false,
		},
		{
			name:  "lists are ordered",
			left:  List(Int(1), Int(2)),
			right: List(Int(2), Int(1)),
			want:  false,
		},
		{
			name:  "none",
			left:  None(),
			right: None(),
			want:  true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.left.Equal(tt.right))
			assert.Equal(t, tt.want, tt.right.Equal(tt.left))
		})
	}
}

func TestValueString(t *testing.T) {
	v := Dict(
		E(Str("a"), List(Int(1), Float(2), None())),
		E(Int(3), Bool(true)),
	)
	assert.Equal(t, `{"a": [1, 2.0, None], 3: True}`, v.String())
}

func TestAsPairs(t *testing.T) {
	keys, values, ok := Pairs([]Value{Str("a")}, []Value{Int(1)}).AsPairs()
	assert.True(t, ok)
	assert.Equal(t, []Value{Str("a")}, keys)
	assert.Equal(t, []Value{Int(1)}, values)

	_, _, ok = Dict(E(Str("key"), List()), E(Str("other"), List())).AsPairs()
	assert.False(t, ok)

	_, _, ok = Dict(E(Str("key"), Int(1)), E(Str("value"), List())).AsPairs()
	assert.False(t, ok)
}

func TestNewFrame(t *testing.T) {
	frame, err := NewFrame(
		Column{Name: "id", Values: []Value{Int(1), Int(2)}},
		Column{Name: "data", Values: []Value{None(), Str("x")}},
	)
	assert.NoError(t, err)
	assert.Equal(t, 2, frame.Len())
	assert.Equal(t, []Value{Int(2), Str("x")}, frame.Row(1))

	v, ok := frame.Value("data", 1)
	assert.True(t, ok)
	assert.Equal(t, Str("x"), v)
	_, ok = frame.Value("missing", 0)
	assert.False(t, ok)

	_, err = NewFrame(
		Column{Name: "id", Values: []Value{Int(1)}},
		Column{Name: "data", Values: nil},
	)
	assert.Error(t, err)

	_, err = NewFrame(
		Column{Name: "id", Values: nil},
		Column{Name: "id", Values: nil},
	)
	assert.Error(t, err)
}
