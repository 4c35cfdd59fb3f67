package literal

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/cube2222/octomap/octomap"
)

// ParseValue parses a literal expression:
//   MAP {key: value, ...}, {'field': value, ...}, [value, ...],
//   'string', 42, 2.5, TRUE, FALSE and NULL.
// Collections get the unified type of their elements.
func ParseValue(input string) (octomap.Value, error) {
	p, err := newParser(input)
	if err != nil {
		return octomap.ZeroValue, errors.Wrapf(err, "couldn't parse literal '%s'", input)
	}
	v, err := p.parseValue()
	if err != nil {
		return octomap.ZeroValue, errors.Wrapf(err, "couldn't parse literal '%s'", input)
	}
	if err := p.expectEOF(); err != nil {
		return octomap.ZeroValue, errors.Wrapf(err, "couldn't parse literal '%s'", input)
	}
	return v, nil
}

// ParseRow parses a comma separated list of literals, as in VALUES(...).
func ParseRow(input string) ([]octomap.Value, error) {
	p, err := newParser(input)
	if err != nil {
		return nil, errors.Wrapf(err, "couldn't parse row '%s'", input)
	}
	var out []octomap.Value
	for {
		v, err := p.parseValue()
		if err != nil {
			return nil, errors.Wrapf(err, "couldn't parse row '%s'", input)
		}
		out = append(out, v)
		if !p.isPunct(",") {
			break
		}
		p.next()
	}
	if err := p.expectEOF(); err != nil {
		return nil, errors.Wrapf(err, "couldn't parse row '%s'", input)
	}
	return out, nil
}

func (p *parser) parseValue() (octomap.Value, error) {
	t := p.peek()
	switch {
	case p.isKeyword("MAP"):
		p.next()
		return p.parseMap()
	case p.isKeyword("NULL"):
		p.next()
		return octomap.NewNull(), nil
	case p.isKeyword("TRUE"):
		p.next()
		return octomap.NewBoolean(true), nil
	case p.isKeyword("FALSE"):
		p.next()
		return octomap.NewBoolean(false), nil
	case t.kind == tokenString:
		p.next()
		return octomap.NewString(t.text), nil
	case t.kind == tokenNumber:
		p.next()
		return parseNumber(t.text, false)
	case p.isPunct("-"):
		p.next()
		number := p.peek()
		if number.kind != tokenNumber {
			return octomap.ZeroValue, p.unexpected("number")
		}
		p.next()
		return parseNumber(number.text, true)
	case p.isPunct("["):
		p.next()
		return p.parseList()
	case p.isPunct("{"):
		p.next()
		return p.parseStruct()
	}
	return octomap.ZeroValue, p.unexpected("literal")
}

func parseNumber(text string, negative bool) (octomap.Value, error) {
	if negative {
		text = "-" + text
	}
	if !strings.ContainsAny(text, ".eE") {
		i, err := strconv.ParseInt(text, 10, 64)
		if err == nil {
			if i < math.MinInt32 || i > math.MaxInt32 {
				return octomap.NewBigInt(i), nil
			}
			return octomap.NewInt(int32(i)), nil
		}
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return octomap.ZeroValue, errors.Errorf("invalid number '%s'", text)
	}
	return octomap.NewDouble(f), nil
}

func (p *parser) parseList() (octomap.Value, error) {
	var elements []octomap.Value
	for !p.isPunct("]") {
		v, err := p.parseValue()
		if err != nil {
			return octomap.ZeroValue, err
		}
		elements = append(elements, v)
		if !p.isPunct(",") {
			break
		}
		p.next()
	}
	if err := p.expectPunct("]"); err != nil {
		return octomap.ZeroValue, err
	}

	elementType, elements, err := unifyValues(elements)
	if err != nil {
		return octomap.ZeroValue, errors.Wrap(err, "list elements")
	}
	return octomap.NewList(elementType, elements), nil
}

func (p *parser) parseStruct() (octomap.Value, error) {
	var fields []octomap.StructField
	var values []octomap.Value
	for !p.isPunct("}") {
		name := p.peek()
		if name.kind != tokenString && name.kind != tokenIdent {
			return octomap.ZeroValue, p.unexpected("field name")
		}
		p.next()
		if err := p.expectPunct(":"); err != nil {
			return octomap.ZeroValue, err
		}
		v, err := p.parseValue()
		if err != nil {
			return octomap.ZeroValue, err
		}
		if octomap.NewStructType(fields...).FieldIndex(name.text) != -1 {
			return octomap.ZeroValue, errors.Errorf("duplicate struct field name '%s'", name.text)
		}
		fields = append(fields, octomap.StructField{Name: name.text, Type: v.Type})
		values = append(values, v)
		if !p.isPunct(",") {
			break
		}
		p.next()
	}
	if err := p.expectPunct("}"); err != nil {
		return octomap.ZeroValue, err
	}
	if len(fields) == 0 {
		return octomap.ZeroValue, errors.New("empty struct literals are not allowed")
	}
	return octomap.NewStruct(octomap.NewStructType(fields...), values), nil
}

func (p *parser) parseMap() (octomap.Value, error) {
	if err := p.expectPunct("{"); err != nil {
		return octomap.ZeroValue, err
	}
	var keys, values []octomap.Value
	for !p.isPunct("}") {
		key, err := p.parseValue()
		if err != nil {
			return octomap.ZeroValue, err
		}
		if key.IsNull() {
			return octomap.ZeroValue, octomap.NewConversionError(octomap.Null, octomap.UntypedSchema.Type(), "map keys can not be NULL")
		}
		if err := p.expectPunct(":"); err != nil {
			return octomap.ZeroValue, err
		}
		value, err := p.parseValue()
		if err != nil {
			return octomap.ZeroValue, err
		}
		keys = append(keys, key)
		values = append(values, value)
		if !p.isPunct(",") {
			break
		}
		p.next()
	}
	if err := p.expectPunct("}"); err != nil {
		return octomap.ZeroValue, err
	}

	keyType, keys, err := unifyValues(keys)
	if err != nil {
		return octomap.ZeroValue, errors.Wrap(err, "map keys")
	}
	valueType, values, err := unifyValues(values)
	if err != nil {
		return octomap.ZeroValue, errors.Wrap(err, "map values")
	}
	return octomap.NewMap(octomap.MapSchema{Key: keyType, Value: valueType}, keys, values), nil
}

// unifyValues casts every value to the unified type of all of them.
func unifyValues(values []octomap.Value) (octomap.Type, []octomap.Value, error) {
	types := make([]octomap.Type, len(values))
	for i := range values {
		types[i] = values[i].Type
	}
	t, err := octomap.UnifyAll(types...)
	if err != nil {
		return octomap.Type{}, nil, err
	}
	out := make([]octomap.Value, len(values))
	for i := range values {
		if out[i], err = octomap.Cast(values[i], t); err != nil {
			return octomap.Type{}, nil, err
		}
	}
	return t, out, nil
}
