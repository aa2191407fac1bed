package csv

import (
	"fmt"
	"strings"
)

// Record is one data row. Values line up with the columns of the shared schema.
type Record struct {
	schema *Schema
	values []string
}

func newRecord(schema *Schema, values []string) *Record {
	return &Record{
		schema: schema,
		values: values,
	}
}

// Schema returns the schema the record is bound to.
func (r *Record) Schema() *Schema {
	return r.schema
}

// Len returns the number of values held.
func (r *Record) Len() int {
	return len(r.values)
}

// Values returns a copy of the cell values in column order.
func (r *Record) Values() []string {
	return append([]string(nil), r.values...)
}

// Append adds a value at the end of the row. It is meant for building a row
// and does not re-check the column count.
func (r *Record) Append(value string) {
	r.values = append(r.values, value)
}

// ByIndex returns the value at pos.
func (r *Record) ByIndex(pos int) (string, error) {
	if pos < 0 || pos >= len(r.values) {
		return "", indexError("value", pos, len(r.values))
	}
	return r.values[pos], nil
}

// ByName returns the value under the first column named name.
func (r *Record) ByName(name string) (string, error) {
	pos, ok := r.schema.Index(name)
	if !ok {
		return "", fmt.Errorf("%q: %w", name, ErrColumnNotFound)
	}
	return r.ByIndex(pos)
}

// Set overwrites the value under the first column named name.
// It reports false when the column does not exist.
func (r *Record) Set(name, value string) bool {
	pos, ok := r.schema.Index(name)
	if !ok || pos >= len(r.values) {
		return false
	}
	r.values[pos] = value
	return true
}

// String renders the values for console display, each followed by " | ".
func (r *Record) String() string {
	var b strings.Builder
	for _, v := range r.values {
		b.WriteString(v)
		b.WriteString(" | ")
	}
	return b.String()
}

func (r *Record) join(sep byte) string {
	return strings.Join(r.values, string(sep))
}
