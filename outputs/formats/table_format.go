package formats

import (
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/cube2222/octomap/columnar"
	"github.com/cube2222/octomap/host"
)

type TableFormatter struct {
	table *tablewriter.Table
}

func NewTableFormatter(w io.Writer) *TableFormatter {
	table := tablewriter.NewWriter(w)
	table.SetColWidth(48)
	table.SetRowLine(false)

	return &TableFormatter{
		table: table,
	}
}

func (t *TableFormatter) SetSchema(fields []columnar.Field) {
	header := make([]string, len(fields))
	for i := range fields {
		header[i] = fields[i].Name
	}
	t.table.SetHeader(header)
	t.table.SetAutoFormatHeaders(false)
}

func (t *TableFormatter) Write(values []host.Value) error {
	row := make([]string, len(values))
	for i := range values {
		row[i] = values[i].String()
	}
	t.table.Append(row)
	return nil
}

func (t *TableFormatter) Close() error {
	t.table.Render()
	return nil
}

// DescribeSchema prints the name and type of every field.
func DescribeSchema(w io.Writer, fields []columnar.Field) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"name", "type"})
	table.SetAutoFormatHeaders(false)
	for i := range fields {
		table.Append([]string{fields[i].Name, fields[i].Type.String()})
	}
	table.Render()
}
