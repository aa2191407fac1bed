// Package csv parses delimited text into an in-memory table and writes it back.
//
// The first non-empty line is the header. Every following non-empty line is
// a row and must tokenize to exactly as many cells as the header has
// columns; a single malformed row fails the whole load. Quotes make the
// separator literal on read, but values are written back as stored, so a
// value holding an unquoted separator does not survive a round trip.
package csv

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
)

// Table owns a schema and an ordered sequence of records.
type Table struct {
	schema *Schema
	rows   []*Record
	sep    byte
	path   string // source file, empty for in-memory text
}

// Parse builds a table from in-memory text.
func Parse(text string, sep byte) (*Table, error) {
	lines, numbers := contentLines(text)

	// A header without rows carries no catalog data.
	if len(lines) < 2 {
		return nil, fmt.Errorf("no data rows in content: %w", ErrEmptyInput)
	}

	schema := NewSchema(splitHeader(lines[0], sep))
	rows := make([]*Record, 0, len(lines)-1)

	for i, line := range lines[1:] {
		cells := Tokenize(line, sep)
		if len(cells) != schema.Len() {
			return nil, &RowShapeError{Line: numbers[i+1], Want: schema.Len(), Got: len(cells)}
		}
		rows = append(rows, newRecord(schema, cells))
	}

	return &Table{
		schema: schema,
		rows:   rows,
		sep:    sep,
	}, nil
}

// Load reads r to the end and parses the result. A leading UTF-8 BOM is
// dropped and invalid UTF-8 is replaced before tokenizing.
func Load(r io.Reader, sep byte) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading content: %w", err)
	}
	return Parse(normalize(data), sep)
}

// LoadFile parses the file at path. The table remembers the path for Sync.
func LoadFile(path string, sep byte) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFileOpen, path, err)
	}
	defer f.Close()

	t, err := Load(f, sep)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	t.path = path
	return t, nil
}

// contentLines splits text into lines, dropping blank and whitespace-only
// lines. It also returns the 1-based line number of each kept line.
func contentLines(text string) ([]string, []int) {
	var lines []string
	var numbers []int

	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
		numbers = append(numbers, i+1)
	}
	return lines, numbers
}

// Schema returns the shared header schema.
func (t *Table) Schema() *Schema { return t.schema }

// Separator returns the cell separator used for reading and writing.
func (t *Table) Separator() byte { return t.sep }

// Path returns the source file, or "" when the table came from text.
func (t *Table) Path() string { return t.path }

// RowCount returns the number of data rows.
func (t *Table) RowCount() int { return len(t.rows) }

// ColumnCount returns the number of header columns.
func (t *Table) ColumnCount() int { return t.schema.Len() }

// Header returns a copy of the column names.
func (t *Table) Header() []string { return t.schema.Columns() }

// HeaderAt returns the column name at pos.
func (t *Table) HeaderAt(pos int) (string, error) {
	return t.schema.Column(pos)
}

// Row returns the record at pos. The record is shared with the table, so
// Set on it edits the table.
func (t *Table) Row(pos int) (*Record, error) {
	if pos < 0 || pos >= len(t.rows) {
		return nil, indexError("row", pos, len(t.rows))
	}
	return t.rows[pos], nil
}

// Rows returns the records in row order.
func (t *Table) Rows() []*Record {
	return slices.Clone(t.rows)
}

// DeleteRow removes the row at pos and reports whether it existed.
func (t *Table) DeleteRow(pos int) bool {
	if pos < 0 || pos >= len(t.rows) {
		return false
	}
	t.rows = slices.Delete(t.rows, pos, pos+1)
	return true
}

// InsertRow inserts values as a new row at pos; pos == RowCount appends.
// The value count is not checked against the schema.
func (t *Table) InsertRow(pos int, values []string) bool {
	if pos < 0 || pos > len(t.rows) {
		return false
	}
	rec := newRecord(t.schema, append([]string(nil), values...))
	t.rows = slices.Insert(t.rows, pos, rec)
	return true
}

// WriteTo writes the header and every row joined by the separator, each
// followed by a newline. Values are written unquoted.
func (t *Table) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64

	write := func(line string) error {
		m, err := bw.WriteString(line)
		n += int64(m)
		if err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
		n++
		return nil
	}

	if err := write(strings.Join(t.schema.columns, string(t.sep))); err != nil {
		return n, err
	}
	for _, rec := range t.rows {
		if err := write(rec.join(t.sep)); err != nil {
			return n, err
		}
	}
	return n, bw.Flush()
}

// Serialize returns the WriteTo output as a string.
func (t *Table) Serialize() string {
	var b strings.Builder
	t.WriteTo(&b) // strings.Builder never fails
	return b.String()
}

// Sync rewrites the source file with the current contents. Tables parsed
// from text have no file and Sync does nothing.
func (t *Table) Sync() error {
	if t.path == "" {
		return nil
	}

	f, err := os.OpenFile(t.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrFileOpen, t.path, err)
	}

	if _, err := t.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", t.path, err)
	}
	return f.Close()
}
