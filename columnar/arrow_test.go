package columnar

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cube2222/octomap/octomap"
)

func TestArrowType(t *testing.T) {
	dt, err := ArrowType(octomap.NewMapType(octomap.NewListType(octomap.String), octomap.Int))
	require.NoError(t, err)
	assert.Equal(t, arrow.MAP, dt.ID())
	mt := dt.(*arrow.MapType)
	assert.Equal(t, arrow.LIST, mt.KeyType().ID())
	assert.Equal(t, arrow.INT32, mt.ItemType().ID())

	_, err = ArrowType(octomap.UntypedSchema.Type())
	assert.Error(t, err)
}

func TestBuildArrayMap(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	schema := octomap.MapSchema{Key: octomap.String, Value: octomap.Int}
	values := []octomap.Value{
		octomap.NewMap(schema, []octomap.Value{octomap.NewString("a")}, []octomap.Value{octomap.NewInt(1)}),
		octomap.NewTypedNull(schema.Type()),
		octomap.NewMap(schema, nil, nil),
		octomap.NewMap(schema,
			[]octomap.Value{octomap.NewString("x"), octomap.NewString("y")},
			[]octomap.Value{octomap.NewInt(10), octomap.NewTypedNull(octomap.Int)},
		),
	}

	arr, err := BuildArray(mem, schema.Type(), values)
	require.NoError(t, err)
	defer arr.Release()

	m := arr.(*array.Map)
	assert.Equal(t, 4, m.Len())
	assert.True(t, m.IsNull(1))
	start, end := m.ValueOffsets(2)
	assert.Equal(t, start, end)
	start, end = m.ValueOffsets(3)
	assert.Equal(t, int64(2), end-start)
	assert.Equal(t, "x", m.Keys().(*array.String).Value(int(start)))

	got, err := ReadArray(schema.Type(), arr)
	require.NoError(t, err)
	require.Len(t, got, len(values))
	for i := range values {
		assert.Equal(t, 0, got[i].Compare(values[i]), "row %d: got %s, want %s", i, got[i], values[i])
		assert.Equal(t, values[i].IsNull(), got[i].IsNull())
	}
}

func TestRecordRoundTrip(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	keyType := octomap.NewStructType(
		octomap.StructField{Name: "i", Type: octomap.Int},
		octomap.StructField{Name: "j", Type: octomap.Int},
	)
	schema := octomap.MapSchema{Key: keyType, Value: octomap.String}
	fields := []Field{
		{Name: "id", Type: octomap.BigInt},
		{Name: "data", Type: schema.Type()},
		{Name: "tags", Type: octomap.NewListType(octomap.Double)},
	}
	rows := [][]octomap.Value{
		{
			octomap.NewBigInt(1),
			octomap.NewMap(schema,
				[]octomap.Value{octomap.NewStruct(keyType, []octomap.Value{octomap.NewInt(5), octomap.NewInt(7)})},
				[]octomap.Value{octomap.NewString("struct")},
			),
			octomap.NewList(octomap.Double, []octomap.Value{octomap.NewDouble(1.5)}),
		},
		{
			octomap.NewBigInt(2),
			octomap.NewTypedNull(schema.Type()),
			octomap.NewTypedNull(octomap.NewListType(octomap.Double)),
		},
	}

	record, err := NewRecord(mem, fields, rows)
	require.NoError(t, err)
	defer record.Release()
	assert.Equal(t, int64(2), record.NumRows())
	assert.Equal(t, int64(3), record.NumCols())

	got, err := ReadRecord(fields, record)
	require.NoError(t, err)
	require.Len(t, got, len(rows))
	for i := range rows {
		for j := range rows[i] {
			assert.Equal(t, 0, got[i][j].Compare(rows[i][j]), "row %d column %d: got %s, want %s", i, j, got[i][j], rows[i][j])
		}
	}
	assert.Equal(t, "{{'i': 5, 'j': 7}='struct'}", got[0][1].String())
}

func TestNewRecordTypeMismatch(t *testing.T) {
	fields := []Field{{Name: "data", Type: octomap.NewMapType(octomap.String, octomap.Int)}}
	_, err := NewRecord(memory.NewGoAllocator(), fields, [][]octomap.Value{{octomap.NewInt(1)}})
	assert.Error(t, err)
}
