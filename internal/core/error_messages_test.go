package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/JonMunkholm/coursecatalog/internal/csv"
	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"nil error returns empty", nil, ""},
		{"file open", fmt.Errorf("%w: courses.csv: no such file", csv.ErrFileOpen), "FILE001"},
		{"empty input", fmt.Errorf("courses.csv: %w", csv.ErrEmptyInput), "FILE002"},
		{"row shape", &csv.RowShapeError{Line: 3, Want: 3, Got: 2}, "CSV001"},
		{"wrapped row shape", fmt.Errorf("load: %w", &csv.RowShapeError{Line: 3, Want: 3, Got: 4}), "CSV001"},
		{"index", fmt.Errorf("row 1: %w", csv.ErrIndexOutOfRange), "CSV002"},
		{"column", fmt.Errorf("%q: %w", "prereq", csv.ErrColumnNotFound), "CSV003"},
		{"course not found", fmt.Errorf("%q: %w", "X", ErrCourseNotFound), "CAT001"},
		{"not loaded", ErrNotLoaded, "CAT002"},
		{"algorithm", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, "bubble"), "CAT003"},
		{"invalid value", fmt.Errorf("%q: %w", "a\nb", ErrInvalidValue), "CAT004"},
		{"snapshot", fmt.Errorf("snapshot x: %w", ErrSnapshotNotFound), "CAT005"},
		{"connection refused", errors.New("dial tcp 127.0.0.1:5432: connect: Connection Refused"), "DB004"},
		{"unknown", errors.New("some random internal error"), "ERR000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			assert.Equal(t, tt.wantCode, got.Code)
			if tt.err != nil {
				assert.NotEmpty(t, got.Message)
				assert.NotEmpty(t, got.Action)
			}
		})
	}
}

func TestErrorCodesAreConsistent(t *testing.T) {
	messages := map[string]string{}
	for _, k := range errorKinds {
		if prev, ok := messages[k.msg.Code]; ok {
			assert.Equal(t, prev, k.msg.Message, "code %s has two messages", k.msg.Code)
		}
		messages[k.msg.Code] = k.msg.Message
	}
}

func TestFormatUserError(t *testing.T) {
	assert.Equal(t, "", FormatUserError(MapError(nil)))
	assert.Equal(t,
		"No catalog is loaded. Load the courses first (CAT002)",
		FormatUserError(MapError(ErrNotLoaded)))
	assert.Equal(t, "Oops (X1)", FormatUserError(UserMessage{Message: "Oops", Code: "X1"}))
}

func TestParseSortAlgorithm(t *testing.T) {
	algo, err := ParseSortAlgorithm(" Quick ")
	assert.NoError(t, err)
	assert.Equal(t, AlgoQuick, algo)

	algo, err = ParseSortAlgorithm("selection")
	assert.NoError(t, err)
	assert.Equal(t, AlgoSelection, algo)

	_, err = ParseSortAlgorithm("bubble")
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)
}
