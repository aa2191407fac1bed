package core

import (
	"fmt"
	"strings"
	"time"
)

// SortAlgorithm names one of the catalog sorts.
type SortAlgorithm string

const (
	AlgoSelection SortAlgorithm = "selection"
	AlgoQuick     SortAlgorithm = "quick"
)

// ParseSortAlgorithm accepts "selection" or "quick", case-insensitively.
func ParseSortAlgorithm(s string) (SortAlgorithm, error) {
	switch algo := SortAlgorithm(strings.ToLower(strings.TrimSpace(s))); algo {
	case AlgoSelection, AlgoQuick:
		return algo, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
	}
}

// LoadResult describes one successful load pass.
type LoadResult struct {
	LoadID   string        `json:"loadId"`
	Path     string        `json:"path,omitempty"` // empty for in-memory text
	Courses  int           `json:"courses"`
	Duration time.Duration `json:"duration"`
}

// SortResult describes one sort pass.
type SortResult struct {
	Algorithm SortAlgorithm `json:"algorithm"`
	Courses   int           `json:"courses"`
	Duration  time.Duration `json:"duration"`
}
