package csv

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCatalog = "id,title,prereq\nCSCI100,Intro,\nCSCI250,Advanced,CSCI100"

func TestParse(t *testing.T) {
	tbl, err := Parse(sampleCatalog, ',')
	require.NoError(t, err)

	assert.Equal(t, 2, tbl.RowCount())
	assert.Equal(t, 3, tbl.ColumnCount())
	assert.Equal(t, []string{"id", "title", "prereq"}, tbl.Header())
	assert.Equal(t, "", tbl.Path())

	row, err := tbl.Row(1)
	require.NoError(t, err)
	title, err := row.ByName("title")
	require.NoError(t, err)
	assert.Equal(t, "Advanced", title)

	for _, rec := range tbl.Rows() {
		assert.Equal(t, tbl.ColumnCount(), rec.Len())
		assert.Same(t, tbl.Schema(), rec.Schema())
	}
}

func TestParse_RowCount(t *testing.T) {
	tests := []struct {
		name  string
		input string
		rows  int
	}{
		{"two rows", sampleCatalog, 2},
		{"blank lines dropped", "\n\nid,title\n\nA,a\n   \nB,b\n\n", 2},
		{"crlf line endings", "id,title\r\nA,a\r\nB,b\r\n", 2},
		{"quoted cells", "id,title\nA,\"x,y\"\n", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := Parse(tt.input, ',')
			require.NoError(t, err)
			assert.Equal(t, tt.rows, tbl.RowCount())
		})
	}
}

func TestParse_EmptyInput(t *testing.T) {
	for _, input := range []string{"", "\n\n", "   \n\t\n", "id,title,prereq", "id,title\n\n"} {
		_, err := Parse(input, ',')
		assert.ErrorIs(t, err, ErrEmptyInput, "input %q", input)
	}
}

func TestParse_RowShapeMismatch(t *testing.T) {
	input := "id,title,prereq\nCSCI100,Intro,\n\nCSCI250,Advanced\n"

	tbl, err := Parse(input, ',')
	assert.Nil(t, tbl)
	require.ErrorIs(t, err, ErrRowShape)

	var shapeErr *RowShapeError
	require.True(t, errors.As(err, &shapeErr))
	assert.Equal(t, 4, shapeErr.Line)
	assert.Equal(t, 3, shapeErr.Want)
	assert.Equal(t, 2, shapeErr.Got)
}

func TestParse_TooManyCells(t *testing.T) {
	_, err := Parse("id,title\nA,b,c\n", ',')
	assert.ErrorIs(t, err, ErrRowShape)
}

func TestParse_HeaderIsNotQuoteAware(t *testing.T) {
	// The header splits into three columns, the row into two cells.
	_, err := Parse("\"a,b\",c\nx,y\n", ',')
	assert.ErrorIs(t, err, ErrRowShape)
}

func TestLoad_StripsBOMAndInvalidUTF8(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("id,title\nA,caf\xff\n")...)

	tbl, err := Load(strings.NewReader(string(data)), ',')
	require.NoError(t, err)

	assert.Equal(t, "id", tbl.Header()[0])
	row, err := tbl.Row(0)
	require.NoError(t, err)
	title, err := row.ByIndex(1)
	require.NoError(t, err)
	assert.Equal(t, "caf?", title)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "courses.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCatalog), 0o644))

	tbl, err := LoadFile(path, ',')
	require.NoError(t, err)
	assert.Equal(t, path, tbl.Path())
	assert.Equal(t, 2, tbl.RowCount())
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.csv"), ',')
	assert.ErrorIs(t, err, ErrFileOpen)
}

func TestLoadFile_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	_, err := LoadFile(path, ',')
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestTable_HeaderAt(t *testing.T) {
	tbl, err := Parse(sampleCatalog, ',')
	require.NoError(t, err)

	name, err := tbl.HeaderAt(2)
	require.NoError(t, err)
	assert.Equal(t, "prereq", name)

	_, err = tbl.HeaderAt(3)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	_, err = tbl.Row(2)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestTable_DeleteRow(t *testing.T) {
	tbl, err := Parse("id\nA\nB\nC\n", ',')
	require.NoError(t, err)

	assert.False(t, tbl.DeleteRow(3))
	assert.False(t, tbl.DeleteRow(-1))
	assert.True(t, tbl.DeleteRow(1))

	assert.Equal(t, "id\nA\nC\n", tbl.Serialize())
}

func TestTable_InsertRow(t *testing.T) {
	tbl, err := Parse("id,title\nA,a\nC,c\n", ',')
	require.NoError(t, err)

	assert.True(t, tbl.InsertRow(1, []string{"B", "b"}))
	assert.True(t, tbl.InsertRow(3, []string{"D", "d"}))
	assert.False(t, tbl.InsertRow(5, []string{"X", "x"}))
	assert.False(t, tbl.InsertRow(-1, []string{"X", "x"}))

	assert.Equal(t, "id,title\nA,a\nB,b\nC,c\nD,d\n", tbl.Serialize())

	row, err := tbl.Row(1)
	require.NoError(t, err)
	assert.Same(t, tbl.Schema(), row.Schema())
}

func TestTable_InsertRowSkipsShapeCheck(t *testing.T) {
	tbl, err := Parse("id,title\nA,a\n", ',')
	require.NoError(t, err)

	assert.True(t, tbl.InsertRow(0, []string{"only-id"}))
	row, err := tbl.Row(0)
	require.NoError(t, err)
	assert.Equal(t, 1, row.Len())
}

func TestTable_SerializeRoundTrip(t *testing.T) {
	tbl, err := Parse(sampleCatalog, ',')
	require.NoError(t, err)

	out := tbl.Serialize()
	assert.Equal(t, "id,title,prereq\nCSCI100,Intro,\nCSCI250,Advanced,CSCI100\n", out)

	again, err := Parse(out, ',')
	require.NoError(t, err)
	require.Equal(t, tbl.RowCount(), again.RowCount())
	for i := range tbl.Rows() {
		a, _ := tbl.Row(i)
		b, _ := again.Row(i)
		assert.Equal(t, a.Values(), b.Values())
	}
}

func TestTable_SerializeKeepsStoredQuotes(t *testing.T) {
	tbl, err := Parse("id,title\nA,\"x,y\"\n", ',')
	require.NoError(t, err)

	out := tbl.Serialize()
	assert.Equal(t, "id,title\nA,\"x,y\"\n", out)

	again, err := Parse(out, ',')
	require.NoError(t, err)
	row, _ := again.Row(0)
	assert.Equal(t, []string{"A", `"x,y"`}, row.Values())
}

func TestTable_SerializeDoesNotQuote(t *testing.T) {
	tbl, err := Parse("id,title\nA,a\n", ',')
	require.NoError(t, err)

	row, _ := tbl.Row(0)
	require.True(t, row.Set("title", "x,y"))

	out := tbl.Serialize()
	assert.Equal(t, "id,title\nA,x,y\n", out)

	_, err = Parse(out, ',')
	assert.ErrorIs(t, err, ErrRowShape)
}

func TestTable_SerializeCustomSeparator(t *testing.T) {
	tbl, err := Parse("id;title\nA;a\n", ';')
	require.NoError(t, err)
	assert.Equal(t, byte(';'), tbl.Separator())
	assert.Equal(t, "id;title\nA;a\n", tbl.Serialize())
}

func TestTable_Sync(t *testing.T) {
	path := filepath.Join(t.TempDir(), "courses.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCatalog), 0o644))

	tbl, err := LoadFile(path, ',')
	require.NoError(t, err)

	row, err := tbl.Row(0)
	require.NoError(t, err)
	require.True(t, row.Set("title", "Introduction"))
	require.True(t, tbl.DeleteRow(1))
	require.NoError(t, tbl.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "id,title,prereq\nCSCI100,Introduction,\n", string(data))
}

func TestTable_SyncInMemoryIsNoop(t *testing.T) {
	tbl, err := Parse(sampleCatalog, ',')
	require.NoError(t, err)
	assert.NoError(t, tbl.Sync())
}

func TestTable_WriteToCountsBytes(t *testing.T) {
	tbl, err := Parse(sampleCatalog, ',')
	require.NoError(t, err)

	var b strings.Builder
	n, err := tbl.WriteTo(&b)
	require.NoError(t, err)
	assert.Equal(t, int64(b.Len()), n)
}
