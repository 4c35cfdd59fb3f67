// Package literal parses type names like MAP(VARCHAR, INTEGER) and literal
// expressions like MAP {[1, 2, 3]: 'array'} into engine types and values.
package literal

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/cube2222/octomap/octomap"
)

var scalarTypeNames = map[string]octomap.Type{
	"BOOLEAN": octomap.Boolean,
	"BOOL":    octomap.Boolean,
	"INTEGER": octomap.Int,
	"INT":     octomap.Int,
	"INT4":    octomap.Int,
	"BIGINT":  octomap.BigInt,
	"INT8":    octomap.BigInt,
	"LONG":    octomap.BigInt,
	"FLOAT":   octomap.Float,
	"FLOAT4":  octomap.Float,
	"REAL":    octomap.Float,
	"DOUBLE":  octomap.Double,
	"FLOAT8":  octomap.Double,
	"VARCHAR": octomap.String,
	"TEXT":    octomap.String,
	"STRING":  octomap.String,
}

// ParseType parses a type name. Names are case-insensitive.
func ParseType(input string) (octomap.Type, error) {
	p, err := newParser(input)
	if err != nil {
		return octomap.Type{}, errors.Wrapf(err, "couldn't parse type '%s'", input)
	}
	t, err := p.parseType()
	if err != nil {
		return octomap.Type{}, errors.Wrapf(err, "couldn't parse type '%s'", input)
	}
	if err := p.expectEOF(); err != nil {
		return octomap.Type{}, errors.Wrapf(err, "couldn't parse type '%s'", input)
	}
	return t, nil
}

// ParseMapSchema parses a type name which has to be a MAP.
func ParseMapSchema(input string) (octomap.MapSchema, error) {
	t, err := ParseType(input)
	if err != nil {
		return octomap.MapSchema{}, err
	}
	schema, ok := octomap.SchemaOf(t)
	if !ok {
		return octomap.MapSchema{}, errors.Errorf("type '%s' is not a MAP", input)
	}
	return schema, nil
}

func (p *parser) parseType() (octomap.Type, error) {
	name := p.peek()
	if name.kind != tokenIdent {
		return octomap.Type{}, p.unexpected("type name")
	}
	p.next()

	var out octomap.Type
	switch upper := strings.ToUpper(name.text); upper {
	case "STRUCT", "ROW":
		fields, err := p.parseStructFields()
		if err != nil {
			return octomap.Type{}, err
		}
		out = octomap.NewStructType(fields...)

	case "MAP":
		if err := p.expectPunct("("); err != nil {
			return octomap.Type{}, err
		}
		key, err := p.parseType()
		if err != nil {
			return octomap.Type{}, err
		}
		if err := p.expectPunct(","); err != nil {
			return octomap.Type{}, err
		}
		value, err := p.parseType()
		if err != nil {
			return octomap.Type{}, err
		}
		if err := p.expectPunct(")"); err != nil {
			return octomap.Type{}, err
		}
		out = octomap.NewMapType(key, value)

	default:
		t, ok := scalarTypeNames[upper]
		if !ok {
			return octomap.Type{}, errors.Errorf("unknown type name '%s'", name.text)
		}
		out = t
		// VARCHAR(255) and friends: the length doesn't matter.
		if p.isPunct("(") && out.TypeID == octomap.TypeIDString {
			p.next()
			if p.peek().kind != tokenNumber {
				return octomap.Type{}, p.unexpected("length")
			}
			p.next()
			if err := p.expectPunct(")"); err != nil {
				return octomap.Type{}, err
			}
		}
	}

	for p.isPunct("[") {
		p.next()
		if err := p.expectPunct("]"); err != nil {
			return octomap.Type{}, err
		}
		out = octomap.NewListType(out)
	}
	return out, nil
}

func (p *parser) parseStructFields() ([]octomap.StructField, error) {
	if err := p.expectPunct("("); err != nil {
		return nil, err
	}
	var fields []octomap.StructField
	for {
		name := p.peek()
		if name.kind != tokenIdent && name.kind != tokenString {
			return nil, p.unexpected("field name")
		}
		p.next()
		for i := range fields {
			if fields[i].Name == name.text {
				return nil, errors.Errorf("duplicate struct field name '%s'", name.text)
			}
		}
		t, err := p.parseType()
		if err != nil {
			return nil, errors.Wrapf(err, "field '%s'", name.text)
		}
		fields = append(fields, octomap.StructField{Name: name.text, Type: t})

		if p.isPunct(")") {
			p.next()
			return fields, nil
		}
		if err := p.expectPunct(","); err != nil {
			return nil, err
		}
	}
}
