package host

import (
	"github.com/pkg/errors"
)

// Frame is a set of named, equally long columns.
type Frame struct {
	Columns []Column
}

type Column struct {
	Name   string
	Values []Value
}

func NewFrame(columns ...Column) (*Frame, error) {
	for i := range columns {
		if len(columns[i].Values) != len(columns[0].Values) {
			return nil, errors.Errorf("column '%s' has %d values, but column '%s' has %d", columns[i].Name, len(columns[i].Values), columns[0].Name, len(columns[0].Values))
		}
		for j := 0; j < i; j++ {
			if columns[j].Name == columns[i].Name {
				return nil, errors.Errorf("duplicate column name '%s'", columns[i].Name)
			}
		}
	}
	return &Frame{Columns: columns}, nil
}

func (f *Frame) Len() int {
	if len(f.Columns) == 0 {
		return 0
	}
	return len(f.Columns[0].Values)
}

func (f *Frame) Column(name string) (Column, bool) {
	for i := range f.Columns {
		if f.Columns[i].Name == name {
			return f.Columns[i], true
		}
	}
	return Column{}, false
}

// Value returns the cell of the named column in row i.
func (f *Frame) Value(name string, i int) (Value, bool) {
	column, ok := f.Column(name)
	if !ok || i < 0 || i >= len(column.Values) {
		return Value{}, false
	}
	return column.Values[i], true
}

func (f *Frame) Row(i int) []Value {
	out := make([]Value, len(f.Columns))
	for j := range f.Columns {
		out[j] = f.Columns[j].Values[i]
	}
	return out
}
