package formats

import (
	"encoding/csv"
	"io"

	"github.com/cube2222/octomap/columnar"
	"github.com/cube2222/octomap/host"
)

type CSVFormatter struct {
	writer *csv.Writer
}

func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{
		writer: csv.NewWriter(w),
	}
}

func (t *CSVFormatter) SetSchema(fields []columnar.Field) {
	header := make([]string, len(fields))
	for i := range fields {
		header[i] = fields[i].Name
	}
	t.writer.Write(header)
}

func (t *CSVFormatter) Write(values []host.Value) error {
	row := make([]string, len(values))
	for i := range values {
		if values[i].Kind == host.KindString {
			row[i] = values[i].Str
			continue
		}
		row[i] = values[i].String()
	}
	return t.writer.Write(row)
}

func (t *CSVFormatter) Close() error {
	t.writer.Flush()
	return t.writer.Error()
}
