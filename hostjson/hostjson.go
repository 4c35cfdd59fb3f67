// Package hostjson reads host frames from JSON lines, one object per row.
package hostjson

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/valyala/fastjson"

	"github.com/cube2222/octomap/host"
)

// ReadFrame reads every line of r as a row. Columns appear in order of first
// occurrence; rows missing a column get None there.
func ReadFrame(r io.Reader) (*host.Frame, error) {
	sc := bufio.NewScanner(bufio.NewReaderSize(r, 4096*1024))
	sc.Buffer(nil, 1024*1024)

	var columns []host.Column
	index := make(map[string]int)
	rows := 0

	var p fastjson.Parser
	for sc.Scan() {
		if len(bytes.TrimSpace(sc.Bytes())) == 0 {
			continue
		}
		v, err := p.ParseBytes(sc.Bytes())
		if err != nil {
			return nil, fmt.Errorf("couldn't parse json: %w", err)
		}
		o, err := v.Object()
		if err != nil {
			return nil, fmt.Errorf("expected JSON object, got '%s'", sc.Text())
		}

		o.Visit(func(key []byte, v *fastjson.Value) {
			i, ok := index[string(key)]
			if !ok {
				i = len(columns)
				index[string(key)] = i
				values := make([]host.Value, rows, rows+1)
				for j := range values {
					values[j] = host.None()
				}
				columns = append(columns, host.Column{Name: string(key), Values: values})
			}
			// A repeated key within one object overwrites the earlier one.
			if len(columns[i].Values) > rows {
				columns[i].Values[rows] = FromJSON(v)
				return
			}
			columns[i].Values = append(columns[i].Values, FromJSON(v))
		})
		rows++
		for i := range columns {
			if len(columns[i].Values) < rows {
				columns[i].Values = append(columns[i].Values, host.None())
			}
		}
	}
	if sc.Err() != nil {
		return nil, fmt.Errorf("couldn't scan lines: %w", sc.Err())
	}
	return host.NewFrame(columns...)
}

// ParseValue parses a single JSON document into a host value.
func ParseValue(s string) (host.Value, error) {
	var p fastjson.Parser
	v, err := p.Parse(s)
	if err != nil {
		return host.Value{}, fmt.Errorf("couldn't parse json: %w", err)
	}
	return FromJSON(v), nil
}

// FromJSON converts a parsed JSON value. Numbers written without a fraction or
// exponent become ints, all others floats.
func FromJSON(value *fastjson.Value) host.Value {
	switch value.Type() {
	case fastjson.TypeNull:
		return host.None()
	case fastjson.TypeTrue:
		return host.Bool(true)
	case fastjson.TypeFalse:
		return host.Bool(false)
	case fastjson.TypeString:
		v, _ := value.StringBytes()
		return host.Str(string(v))
	case fastjson.TypeNumber:
		raw := value.MarshalTo(nil)
		if !bytes.ContainsAny(raw, ".eE") {
			if i, err := value.Int64(); err == nil {
				return host.Int(i)
			}
		}
		f, _ := value.Float64()
		return host.Float(f)
	case fastjson.TypeArray:
		arr, _ := value.Array()
		values := make([]host.Value, len(arr))
		for i := range arr {
			values[i] = FromJSON(arr[i])
		}
		return host.List(values...)
	case fastjson.TypeObject:
		obj, _ := value.Object()
		entries := make([]host.Entry, 0, obj.Len())
		obj.Visit(func(key []byte, v *fastjson.Value) {
			entries = append(entries, host.E(host.Str(string(key)), FromJSON(v)))
		})
		return host.Dict(entries...)
	}

	panic(fmt.Sprintf("unexhaustive json input value match: %s %+v", value.Type().String(), value))
}
