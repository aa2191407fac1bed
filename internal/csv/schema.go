package csv

// Schema is the ordered list of column names taken from the header line.
// It is immutable and shared by every Record of a Table.
type Schema struct {
	columns []string
}

// NewSchema builds a schema from column names. The slice is copied.
func NewSchema(columns []string) *Schema {
	return &Schema{columns: append([]string(nil), columns...)}
}

// Len returns the number of columns.
func (s *Schema) Len() int {
	return len(s.columns)
}

// Columns returns a copy of the column names.
func (s *Schema) Columns() []string {
	return append([]string(nil), s.columns...)
}

// Column returns the name at pos.
func (s *Schema) Column(pos int) (string, error) {
	if pos < 0 || pos >= len(s.columns) {
		return "", indexError("column", pos, len(s.columns))
	}
	return s.columns[pos], nil
}

// Index returns the position of the first column named name.
// Column names need not be unique; the first match wins.
func (s *Schema) Index(name string) (int, bool) {
	for i, col := range s.columns {
		if col == name {
			return i, true
		}
	}
	return -1, false
}
