package csv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRecord() *Record {
	schema := NewSchema([]string{"id", "title", "prereq", "title"})
	return newRecord(schema, []string{"CSCI250", "Advanced", "CSCI100", "Shadow"})
}

func TestRecord_ByIndex(t *testing.T) {
	rec := newTestRecord()

	v, err := rec.ByIndex(1)
	require.NoError(t, err)
	assert.Equal(t, "Advanced", v)

	for _, pos := range []int{-1, 4, 100} {
		_, err := rec.ByIndex(pos)
		assert.ErrorIs(t, err, ErrIndexOutOfRange, "pos %d", pos)
	}
}

func TestRecord_ByName(t *testing.T) {
	rec := newTestRecord()

	v, err := rec.ByName("prereq")
	require.NoError(t, err)
	assert.Equal(t, "CSCI100", v)

	t.Run("first duplicate column wins", func(t *testing.T) {
		v, err := rec.ByName("title")
		require.NoError(t, err)
		assert.Equal(t, "Advanced", v)
	})

	t.Run("exact match only", func(t *testing.T) {
		_, err := rec.ByName("Title")
		assert.ErrorIs(t, err, ErrColumnNotFound)
	})

	t.Run("missing column", func(t *testing.T) {
		_, err := rec.ByName("amount")
		assert.ErrorIs(t, err, ErrColumnNotFound)
	})
}

func TestRecord_Set(t *testing.T) {
	rec := newTestRecord()

	assert.True(t, rec.Set("title", "Advanced Topics"))
	assert.Equal(t, []string{"CSCI250", "Advanced Topics", "CSCI100", "Shadow"}, rec.Values())

	assert.False(t, rec.Set("amount", "10"))
	assert.Equal(t, 4, rec.Len())
}

func TestRecord_SetShortRow(t *testing.T) {
	rec := newRecord(NewSchema([]string{"id", "title"}), []string{"CSCI100"})
	assert.False(t, rec.Set("title", "Intro"))
}

func TestRecord_Append(t *testing.T) {
	rec := newRecord(NewSchema([]string{"id", "title"}), nil)
	rec.Append("CSCI100")
	rec.Append("Intro")
	rec.Append("extra")

	assert.Equal(t, 3, rec.Len())
	assert.Equal(t, []string{"CSCI100", "Intro", "extra"}, rec.Values())
}

func TestRecord_ValuesIsCopy(t *testing.T) {
	rec := newTestRecord()
	vals := rec.Values()
	vals[0] = "changed"

	v, err := rec.ByIndex(0)
	require.NoError(t, err)
	assert.Equal(t, "CSCI250", v)
}

func TestRecord_String(t *testing.T) {
	rec := newRecord(NewSchema([]string{"id", "title"}), []string{"CSCI100", "Intro"})
	assert.Equal(t, "CSCI100 | Intro | ", rec.String())
}

func TestSchema(t *testing.T) {
	cols := []string{"id", "title"}
	schema := NewSchema(cols)
	cols[0] = "mutated"

	assert.Equal(t, 2, schema.Len())
	assert.Equal(t, []string{"id", "title"}, schema.Columns())

	name, err := schema.Column(1)
	require.NoError(t, err)
	assert.Equal(t, "title", name)

	_, err = schema.Column(2)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	pos, ok := schema.Index("title")
	assert.True(t, ok)
	assert.Equal(t, 1, pos)

	_, ok = schema.Index("missing")
	assert.False(t, ok)
}
