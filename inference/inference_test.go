package inference

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cube2222/octomap/host"
	"github.com/cube2222/octomap/octomap"
)

func TestInferType(t *testing.T) {
	tests := []struct {
		name  string
		value host.Value
		want  string
	}{
		{
			name:  "small int",
			value: host.Int(3),
			want:  "INTEGER",
		},
		{
			name:  "big int",
			value: host.Int(1 << 40),
			want:  "BIGINT",
		},
		{
			name:  "float",
			value: host.Float(2.5),
			want:  "DOUBLE",
		},
		{
			name:  "list of mixed numbers",
			value: host.List(host.Int(1), host.Float(2.5), host.None()),
			want:  "DOUBLE[]",
		},
		{
			name:  "string keyed dict is a struct",
			value: host.Dict(host.E(host.Str("duckdb"), host.Int(130))),
			want:  "STRUCT(duckdb INTEGER)",
		},
		{
			name: "mixed key dict is a map",
			value: host.Dict(
				host.E(host.Int(1), host.Str("int")),
				host.E(host.Float(2.5), host.Str("float")),
			),
			want: "MAP(DOUBLE, VARCHAR)",
		},
		{
			name: "paired-list form is a map",
			value: host.Pairs(
				[]host.Value{host.List(host.Str("list")), host.List(host.Str("lost"))},
				[]host.Value{host.Int(4), host.Int(2)},
			),
			want: "MAP(VARCHAR[], INTEGER)",
		},
		{
			name:  "empty dict",
			value: host.Dict(),
			want:  "MAP(NULL, NULL)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := InferType(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestInferColumn(t *testing.T) {
	got, err := InferColumn([]host.Value{host.None(), host.Int(1), host.Float(1.5)})
	require.NoError(t, err)
	assert.Equal(t, octomap.TypeIDDouble, got.TypeID)

	_, err = InferColumn([]host.Value{
		host.Dict(host.E(host.Str("a"), host.Int(1))),
		host.Dict(host.E(host.Str("b"), host.Int(1))),
	})
	assert.True(t, octomap.IsKind(err, octomap.SchemaMismatch), "got error %v", err)
}

func TestInferSchema(t *testing.T) {
	rows := []host.Value{
		host.Dict(host.E(host.Int(1), host.Str("int"))),
		host.None(),
		host.Dict(host.E(host.Float(2.5), host.Str("float")), host.E(host.Str("3"), host.Str("string"))),
	}

	t.Run("inferred", func(t *testing.T) {
		got, err := InferSchema(rows, nil)
		require.NoError(t, err)
		assert.Equal(t, "MAP(VARCHAR, VARCHAR)", got.String())
	})

	t.Run("independent of row order", func(t *testing.T) {
		reversed := []host.Value{rows[2], rows[1], rows[0]}
		a, err := InferSchema(rows, nil)
		require.NoError(t, err)
		b, err := InferSchema(reversed, nil)
		require.NoError(t, err)
		assert.True(t, a.Type().Equal(b.Type()))
	})

	t.Run("declared wins", func(t *testing.T) {
		declared := octomap.MapSchema{Key: octomap.Float, Value: octomap.String}
		got, err := InferSchema(rows, &declared)
		require.NoError(t, err)
		assert.Equal(t, "MAP(FLOAT, VARCHAR)", got.String())
	})

	t.Run("empty batch", func(t *testing.T) {
		got, err := InferSchema(nil, nil)
		require.NoError(t, err)
		assert.False(t, got.Resolved())
	})

	t.Run("non-dict row", func(t *testing.T) {
		_, err := InferSchema([]host.Value{host.Int(1)}, nil)
		assert.True(t, octomap.IsKind(err, octomap.TypeMismatch), "got error %v", err)
	})
}

func TestEntries(t *testing.T) {
	keys, values, err := Entries(host.Dict(host.E(host.Str("a"), host.Int(1))))
	require.NoError(t, err)
	assert.Equal(t, []host.Value{host.Str("a")}, keys)
	assert.Equal(t, []host.Value{host.Int(1)}, values)

	keys, values, err = Entries(host.None())
	require.NoError(t, err)
	assert.Empty(t, keys)
	assert.Empty(t, values)

	_, _, err = Entries(host.Pairs([]host.Value{host.Int(1), host.Int(2)}, []host.Value{host.Int(1)}))
	assert.True(t, octomap.IsKind(err, octomap.ConversionException), "got error %v", err)
}

func TestResolve(t *testing.T) {
	got := Resolve(octomap.NewMapType(octomap.Null, octomap.NewListType(octomap.Null)))
	assert.Equal(t, "MAP(VARCHAR, VARCHAR[])", got.String())
	assert.True(t, got.Resolved())
}

func permutations(rows []host.Value) [][]host.Value {
	if len(rows) <= 1 {
		return [][]host.Value{rows}
	}
	var out [][]host.Value
	for i := range rows {
		rest := make([]host.Value, 0, len(rows)-1)
		rest = append(rest, rows[:i]...)
		rest = append(rest, rows[i+1:]...)
		for _, p := range permutations(rest) {
			out = append(out, append([]host.Value{rows[i]}, p...))
		}
	}
	return out
}

func TestInferSchemaRowOrder(t *testing.T) {
	t.Run("list, integer and varchar values fail in every order", func(t *testing.T) {
		rows := []host.Value{
			host.Dict(host.E(host.Int(1), host.List(host.Int(1)))),
			host.Dict(host.E(host.Int(2), host.Int(2))),
			host.Dict(host.E(host.Int(3), host.Str("x"))),
		}
		for _, p := range permutations(rows) {
			_, err := InferSchema(p, nil)
			assert.True(t, octomap.IsKind(err, octomap.TypeMismatch), "rows %v: got error %v", p, err)
		}
	})

	t.Run("scalar values give the same schema in every order", func(t *testing.T) {
		rows := []host.Value{
			host.Dict(host.E(host.Int(1), host.Int(1))),
			host.Dict(host.E(host.Float(2.5), host.Float(2.5))),
			host.Dict(host.E(host.Str("3"), host.None())),
			host.Dict(host.E(host.Int(1<<40), host.Bool(true))),
		}
		for _, p := range permutations(rows) {
			got, err := InferSchema(p, nil)
			require.NoError(t, err)
			assert.Equal(t, "MAP(VARCHAR, VARCHAR)", got.String(), "rows %v", p)
		}
	})
}
