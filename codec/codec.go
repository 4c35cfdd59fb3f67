// Package codec converts between host containers and engine MAP values.
//
// Encoding accepts dicts and the paired-list form {'key': [...], 'value': [...]}
// and casts every entry into a fixed MAP schema. Decoding produces a dict when
// the key type is a plain scalar and the paired-list form otherwise, because
// lists and structs can't serve as native dictionary keys on the host side.
package codec

import (
	"github.com/pkg/errors"
	"github.com/tidwall/btree"

	"github.com/cube2222/octomap/host"
	"github.com/cube2222/octomap/inference"
	"github.com/cube2222/octomap/octomap"
)

type DuplicateKeys int

const (
	// DuplicateKeysAllow passes duplicate keys through; a dict decode keeps the last one.
	DuplicateKeysAllow DuplicateKeys = iota
	// DuplicateKeysReject fails encoding of any row with a repeated key.
	DuplicateKeysReject
)

func (d DuplicateKeys) String() string {
	switch d {
	case DuplicateKeysAllow:
		return "allow"
	case DuplicateKeysReject:
		return "reject"
	}
	return "unknown"
}

type Option func(options *options)

type options struct {
	duplicateKeys DuplicateKeys
}

func WithDuplicateKeys(policy DuplicateKeys) Option {
	return func(options *options) {
		options.duplicateKeys = policy
	}
}

type Encoder struct {
	schema        octomap.MapSchema
	duplicateKeys DuplicateKeys
}

func NewEncoder(schema octomap.MapSchema, opts ...Option) (*Encoder, error) {
	if !schema.Resolved() {
		return nil, errors.Errorf("can't encode into unresolved schema %s", schema)
	}
	options := &options{
		duplicateKeys: DuplicateKeysAllow,
	}
	for _, opt := range opts {
		opt(options)
	}

	return &Encoder{
		schema:        schema,
		duplicateKeys: options.duplicateKeys,
	}, nil
}

func (e *Encoder) Schema() octomap.MapSchema {
	return e.schema
}

// Encode turns a single dict, paired-list form or None into a MAP value.
// Entry order is preserved.
func (e *Encoder) Encode(v host.Value) (octomap.Value, error) {
	if v.Kind == host.KindNone {
		return octomap.NewTypedNull(e.schema.Type()), nil
	}
	if v.Kind != host.KindDict {
		return octomap.ZeroValue, e.mismatch(v)
	}

	out, err := fromHostMap(v, e.schema)
	if err != nil {
		return octomap.ZeroValue, err
	}
	if e.duplicateKeys == DuplicateKeysReject {
		if i := firstDuplicate(out.Keys); i != -1 {
			return octomap.ZeroValue, octomap.NewConversionError(e.schema.Key, e.schema.Type(), "duplicate key %s in map", out.Keys[i])
		}
	}
	return out, nil
}

// EncodeBatch encodes all values, or none of them if any fails.
func (e *Encoder) EncodeBatch(values []host.Value) ([]octomap.Value, error) {
	out := make([]octomap.Value, len(values))
	for i := range values {
		v, err := e.Encode(values[i])
		if err != nil {
			return nil, errors.Wrapf(err, "row %d", i)
		}
		out[i] = v
	}
	return out, nil
}

// mismatch reports a non-dict value. Values whose own type can't be inferred,
// like [1, [2]], are reported by their shape.
func (e *Encoder) mismatch(v host.Value) error {
	source, err := inference.InferType(v)
	if err != nil {
		source = octomap.Null
		if v.Kind == host.KindList {
			source = octomap.NewListType(octomap.Null)
		}
	}
	return octomap.NewUnimplementedCast(source, e.schema.Type())
}

// Decode turns a MAP value back into a host container.
func Decode(v octomap.Value) (host.Value, error) {
	if v.Type.TypeID != octomap.TypeIDMap && !v.IsNull() {
		return host.Value{}, octomap.NewTypeMismatch(v.Type, octomap.UntypedSchema.Type())
	}
	if v.IsNull() {
		return host.None(), nil
	}
	return decodeMap(v), nil
}

// DecodeBatch decodes every row of a MAP column.
func DecodeBatch(values []octomap.Value) ([]host.Value, error) {
	out := make([]host.Value, len(values))
	for i := range values {
		v, err := Decode(values[i])
		if err != nil {
			return nil, errors.Wrapf(err, "row %d", i)
		}
		out[i] = v
	}
	return out, nil
}

func decodeMap(v octomap.Value) host.Value {
	if !v.Type.Map.Key.IsScalar() {
		keys := make([]host.Value, len(v.Keys))
		values := make([]host.Value, len(v.Values))
		for i := range v.Keys {
			keys[i] = ToHost(v.Keys[i])
			values[i] = ToHost(v.Values[i])
		}
		return host.Pairs(keys, values)
	}

	// Duplicates keep the position of their first occurrence and the value of the last one.
	positions := btree.NewGenericOptions(func(a, b keyPosition) bool {
		return a.key.Compare(b.key) == -1
	}, btree.Options{NoLocks: true})
	entries := make([]host.Entry, 0, len(v.Keys))
	for i := range v.Keys {
		if existing, ok := positions.Get(keyPosition{key: v.Keys[i]}); ok {
			entries[existing.index].Value = ToHost(v.Values[i])
			continue
		}
		positions.Set(keyPosition{key: v.Keys[i], index: len(entries)})
		entries = append(entries, host.E(ToHost(v.Keys[i]), ToHost(v.Values[i])))
	}
	return host.Dict(entries...)
}

type keyPosition struct {
	key   octomap.Value
	index int
}

func firstDuplicate(keys []octomap.Value) int {
	seen := btree.NewGenericOptions(func(a, b octomap.Value) bool {
		return a.Compare(b) == -1
	}, btree.Options{NoLocks: true})
	for i := range keys {
		if _, ok := seen.Get(keys[i]); ok {
			return i
		}
		seen.Set(keys[i])
	}
	return -1
}
