// Package memtable is the statement boundary around the codec: an in-memory
// table with declared column types, which pushes those types down into
// inference and encoding on INSERT and decodes them again on SELECT.
//
// Every insert is a single statement. The whole batch is converted before
// anything is committed, so a failing row leaves the table unchanged.
package memtable

import (
	"crypto/rand"
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/oklog/ulid/v2"
	"github.com/pkg/errors"
	"github.com/tidwall/btree"

	"github.com/cube2222/octomap/codec"
	"github.com/cube2222/octomap/columnar"
	"github.com/cube2222/octomap/host"
	"github.com/cube2222/octomap/inference"
	"github.com/cube2222/octomap/octomap"
)

// Column is a declared table column.
type Column = columnar.Field

type Option func(options *options)

type options struct {
	encoderOptions []codec.Option
	allocator      memory.Allocator
	logger         *log.Logger
}

func WithEncoderOptions(opts ...codec.Option) Option {
	return func(options *options) {
		options.encoderOptions = append(options.encoderOptions, opts...)
	}
}

func WithAllocator(allocator memory.Allocator) Option {
	return func(options *options) {
		options.allocator = allocator
	}
}

// WithLogger enables logging of committed statements.
func WithLogger(logger *log.Logger) Option {
	return func(options *options) {
		options.logger = logger
	}
}

type Table struct {
	name           string
	columns        []Column
	encoderOptions []codec.Option
	allocator      memory.Allocator
	logger         *log.Logger

	mu      sync.Mutex
	entropy io.Reader
	chunks  *btree.Generic[*chunk]
}

// chunk is the record batch committed by a single statement.
type chunk struct {
	id     ulid.ULID
	record arrow.RecordBatch
}

func newChunkTree() *btree.Generic[*chunk] {
	return btree.NewGenericOptions(func(a, b *chunk) bool {
		return a.id.Compare(b.id) == -1
	}, btree.Options{NoLocks: true})
}

func New(name string, columns []Column, opts ...Option) (*Table, error) {
	if len(columns) == 0 {
		return nil, errors.Errorf("table '%s' must have at least one column", name)
	}
	options := &options{
		allocator: memory.NewGoAllocator(),
	}
	for _, opt := range opts {
		opt(options)
	}

	for i, column := range columns {
		if !column.Type.Resolved() {
			return nil, errors.Errorf("column '%s' has unresolved type %s", column.Name, column.Type)
		}
		for j := 0; j < i; j++ {
			if columns[j].Name == column.Name {
				return nil, errors.Errorf("duplicate column name '%s'", column.Name)
			}
		}
	}
	// Validates that every column type has a columnar layout.
	if _, err := columnar.Schema(columns); err != nil {
		return nil, errors.Wrapf(err, "table '%s'", name)
	}

	return &Table{
		name:           name,
		columns:        columns,
		encoderOptions: options.encoderOptions,
		allocator:      options.allocator,
		logger:         options.logger,
		entropy:        ulid.Monotonic(rand.Reader, 0),
		chunks:         newChunkTree(),
	}, nil
}

func (t *Table) Name() string {
	return t.name
}

func (t *Table) Columns() []Column {
	return t.columns
}

// InsertFrame is INSERT INTO table SELECT * FROM frame. Frame columns map to table columns by position.
func (t *Table) InsertFrame(frame *host.Frame) (int, error) {
	if len(frame.Columns) != len(t.columns) {
		return 0, errors.Errorf("table '%s' has %d columns but %d values were supplied", t.name, len(t.columns), len(frame.Columns))
	}

	converted := make([][]octomap.Value, len(t.columns))
	for i, column := range t.columns {
		values, err := t.convertColumn(column, frame.Columns[i].Values)
		if err != nil {
			return 0, errors.Wrapf(err, "couldn't insert into column '%s'", column.Name)
		}
		converted[i] = values
	}

	rows := make([][]octomap.Value, frame.Len())
	for i := range rows {
		rows[i] = make([]octomap.Value, len(t.columns))
		for j := range t.columns {
			rows[i][j] = converted[j][i]
		}
	}
	if err := t.commit(rows); err != nil {
		return 0, err
	}
	return len(rows), nil
}

func (t *Table) convertColumn(column Column, values []host.Value) ([]octomap.Value, error) {
	if declared, ok := octomap.SchemaOf(column.Type); ok {
		schema, err := inference.InferSchema(values, &declared)
		if err != nil {
			return nil, err
		}
		encoder, err := codec.NewEncoder(schema, t.encoderOptions...)
		if err != nil {
			return nil, err
		}
		return encoder.EncodeBatch(values)
	}

	out := make([]octomap.Value, len(values))
	for i := range values {
		v, err := codec.FromHost(values[i], column.Type)
		if err != nil {
			return nil, errors.Wrapf(err, "row %d", i)
		}
		out[i] = v
	}
	return out, nil
}

// InsertValues is INSERT INTO table VALUES (...), (...), with literal values cast to the column types.
func (t *Table) InsertValues(rows ...[]octomap.Value) (int, error) {
	out := make([][]octomap.Value, len(rows))
	for i, row := range rows {
		if len(row) != len(t.columns) {
			return 0, errors.Errorf("table '%s' has %d columns but %d values were supplied", t.name, len(t.columns), len(row))
		}
		out[i] = make([]octomap.Value, len(row))
		for j := range row {
			v, err := octomap.Cast(row[j], t.columns[j].Type)
			if err != nil {
				return 0, errors.Wrapf(err, "couldn't insert into column '%s'", t.columns[j].Name)
			}
			out[i][j] = v
		}
	}
	if err := t.commit(out); err != nil {
		return 0, err
	}
	return len(out), nil
}

func (t *Table) commit(rows [][]octomap.Value) error {
	if len(rows) == 0 {
		return nil
	}
	record, err := columnar.NewRecord(t.allocator, t.columns, rows)
	if err != nil {
		return errors.Wrap(err, "couldn't build record batch")
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	id, err := ulid.New(ulid.Now(), t.entropy)
	if err != nil {
		record.Release()
		return errors.Wrap(err, "couldn't generate chunk id")
	}
	t.chunks.Set(&chunk{id: id, record: record})

	if t.logger != nil {
		t.logger.Printf("table %s: committed %d rows in chunk %s", t.name, len(rows), id)
	}
	return nil
}

// Len is the number of committed rows.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := 0
	t.chunks.Scan(func(item *chunk) bool {
		out += int(item.record.NumRows())
		return true
	})
	return out
}

// Rows returns all rows in insertion order.
func (t *Table) Rows() ([][]octomap.Value, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var out [][]octomap.Value
	var outErr error
	t.chunks.Scan(func(item *chunk) bool {
		rows, err := columnar.ReadRecord(t.columns, item.record)
		if err != nil {
			outErr = fmt.Errorf("couldn't read chunk %s: %w", item.id, err)
			return false
		}
		out = append(out, rows...)
		return true
	})
	if outErr != nil {
		return nil, outErr
	}
	return out, nil
}

// Fetch is SELECT * FROM table materialized as a host frame.
func (t *Table) Fetch() (*host.Frame, error) {
	rows, err := t.Rows()
	if err != nil {
		return nil, err
	}
	columns := make([]host.Column, len(t.columns))
	for j, column := range t.columns {
		values := make([]host.Value, len(rows))
		for i := range rows {
			values[i] = codec.ToHost(rows[i][j])
		}
		columns[j] = host.Column{Name: column.Name, Values: values}
	}
	return host.NewFrame(columns...)
}

// Close releases all committed record batches.
func (t *Table) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.chunks.Scan(func(item *chunk) bool {
		item.record.Release()
		return true
	})
	t.chunks = newChunkTree()
}
