package formats

import (
	"io"

	"github.com/pkg/errors"

	"github.com/cube2222/octomap/columnar"
	"github.com/cube2222/octomap/host"
)

type Format interface {
	SetSchema(fields []columnar.Field)
	Write(values []host.Value) error
	Close() error
}

var Formats = map[string]func(io.Writer) Format{
	"table": func(w io.Writer) Format { return NewTableFormatter(w) },
	"json":  func(w io.Writer) Format { return NewJSONFormatter(w) },
	"csv":   func(w io.Writer) Format { return NewCSVFormatter(w) },
}

// WriteFrame writes a whole frame using the named output format.
func WriteFrame(w io.Writer, format string, fields []columnar.Field, frame *host.Frame) error {
	newFormat, ok := Formats[format]
	if !ok {
		return errors.Errorf("unknown output format '%s'", format)
	}
	f := newFormat(w)
	f.SetSchema(fields)
	for i := 0; i < frame.Len(); i++ {
		if err := f.Write(frame.Row(i)); err != nil {
			return errors.Wrapf(err, "couldn't write row %d", i)
		}
	}
	return f.Close()
}
