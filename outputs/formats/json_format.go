package formats

import (
	"io"

	"github.com/valyala/fastjson"

	"github.com/cube2222/octomap/columnar"
	"github.com/cube2222/octomap/host"
)

type JSONFormatter struct {
	buf    []byte
	arena  *fastjson.Arena
	w      io.Writer
	fields []columnar.Field
}

func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{
		buf:   make([]byte, 0, 1024),
		arena: new(fastjson.Arena),
		w:     w,
	}
}

func (t *JSONFormatter) SetSchema(fields []columnar.Field) {
	t.fields = fields
}

func (t *JSONFormatter) Write(values []host.Value) error {
	obj := t.arena.NewObject()
	for i := range t.fields {
		obj.Set(t.fields[i].Name, ValueToJson(t.arena, values[i]))
	}

	t.buf = obj.MarshalTo(t.buf)
	t.buf = append(t.buf, '\n')
	_, err := t.w.Write(t.buf)
	t.buf = t.buf[:0]
	t.arena.Reset()
	return err
}

// ValueToJson renders dicts as objects. Keys which aren't strings use their printed form.
func ValueToJson(arena *fastjson.Arena, value host.Value) *fastjson.Value {
	switch value.Kind {
	case host.KindNone:
		return arena.NewNull()
	case host.KindBool:
		if value.Bool {
			return arena.NewTrue()
		}
		return arena.NewFalse()
	case host.KindInt:
		return arena.NewNumberInt(int(value.Int))
	case host.KindFloat:
		return arena.NewNumberFloat64(value.Float)
	case host.KindString:
		return arena.NewString(value.Str)
	case host.KindList:
		arr := arena.NewArray()
		for i := range value.List {
			arr.SetArrayItem(i, ValueToJson(arena, value.List[i]))
		}
		return arr
	case host.KindDict:
		obj := arena.NewObject()
		for _, entry := range value.Entries {
			key := entry.Key.Str
			if entry.Key.Kind != host.KindString {
				key = entry.Key.String()
			}
			obj.Set(key, ValueToJson(arena, entry.Value))
		}
		return obj
	}
	panic("impossible, kind switch bug")
}

func (t *JSONFormatter) Close() error {
	return nil
}
