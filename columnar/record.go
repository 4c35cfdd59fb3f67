package columnar

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/pkg/errors"

	"github.com/cube2222/octomap/octomap"
)

type Field struct {
	Name string
	Type octomap.Type
}

func Schema(fields []Field) (*arrow.Schema, error) {
	arrowFields := make([]arrow.Field, len(fields))
	for i, field := range fields {
		dt, err := ArrowType(field.Type)
		if err != nil {
			return nil, errors.Wrapf(err, "column '%s'", field.Name)
		}
		arrowFields[i] = arrow.Field{
			Name:     field.Name,
			Type:     dt,
			Nullable: true,
		}
	}
	return arrow.NewSchema(arrowFields, nil), nil
}

// NewRecord builds a record batch out of rows, each holding one value per field.
func NewRecord(mem memory.Allocator, fields []Field, rows [][]octomap.Value) (arrow.RecordBatch, error) {
	schema, err := Schema(fields)
	if err != nil {
		return nil, err
	}
	builder := array.NewRecordBuilder(mem, schema)
	defer builder.Release()

	for i, row := range rows {
		if len(row) != len(fields) {
			return nil, errors.Errorf("row %d has %d values, expected %d", i, len(row), len(fields))
		}
		for j := range row {
			if err := appendValue(builder.Field(j), fields[j].Type, row[j]); err != nil {
				return nil, errors.Wrapf(err, "row %d column '%s'", i, fields[j].Name)
			}
		}
	}
	return builder.NewRecordBatch(), nil
}

// ReadRecord is the inverse of NewRecord.
func ReadRecord(fields []Field, record arrow.RecordBatch) ([][]octomap.Value, error) {
	if int(record.NumCols()) != len(fields) {
		return nil, errors.Errorf("record has %d columns, expected %d", record.NumCols(), len(fields))
	}
	rows := make([][]octomap.Value, record.NumRows())
	for i := range rows {
		rows[i] = make([]octomap.Value, len(fields))
	}
	for j, field := range fields {
		values, err := ReadArray(field.Type, record.Column(j))
		if err != nil {
			return nil, errors.Wrapf(err, "column '%s'", field.Name)
		}
		for i := range values {
			rows[i][j] = values[i]
		}
	}
	return rows, nil
}
