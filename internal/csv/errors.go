package csv

import (
	"errors"
	"fmt"
)

// Error kinds returned by the parser and the row accessors. Callers match
// them with errors.Is; the returned errors carry additional context.
var (
	ErrFileOpen        = errors.New("file open failed")
	ErrEmptyInput      = errors.New("empty input")
	ErrRowShape        = errors.New("row shape mismatch")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrColumnNotFound  = errors.New("column not found")
)

// RowShapeError reports a content line whose cell count differs from the header.
type RowShapeError struct {
	Line int // 1-based physical line number in the source
	Want int // header cell count
	Got  int // cells produced by the tokenizer
}

func (e *RowShapeError) Error() string {
	return fmt.Sprintf("row shape mismatch at line %d: expected %d cells, got %d", e.Line, e.Want, e.Got)
}

// Is makes errors.Is(err, ErrRowShape) match.
func (e *RowShapeError) Is(target error) bool {
	return target == ErrRowShape
}

func indexError(what string, pos, size int) error {
	return fmt.Errorf("%s %d (size %d): %w", what, pos, size, ErrIndexOutOfRange)
}
