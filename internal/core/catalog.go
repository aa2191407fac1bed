package core

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/JonMunkholm/coursecatalog/internal/csv"
	"github.com/JonMunkholm/coursecatalog/internal/logging"
	"github.com/google/uuid"
)

// Snapshotter stores a copy of each loaded course sequence.
type Snapshotter interface {
	SaveSnapshot(ctx context.Context, loadID uuid.UUID, courses []Course) error
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithSeparator sets the cell separator used to read and write the file.
func WithSeparator(sep byte) Option {
	return func(c *Catalog) { c.sep = sep }
}

// WithMapping sets how rows map to courses.
func WithMapping(m Mapping) Option {
	return func(c *Catalog) { c.mapping = m }
}

// WithSnapshotter saves every successful load through s.
func WithSnapshotter(s Snapshotter) Option {
	return func(c *Catalog) { c.snap = s }
}

// Catalog owns the loaded table and the course sequence derived from it.
//
// Sorting reorders the course sequence only. Edits go to the table rows and
// then rebuild the sequence in row order, so an edit discards a prior sort.
type Catalog struct {
	sep     byte
	mapping Mapping
	snap    Snapshotter

	mu      sync.RWMutex
	table   *csv.Table
	courses []Course
	loadID  uuid.UUID
}

// NewCatalog creates an empty catalog. Without options it reads
// comma-separated files with DefaultMapping.
func NewCatalog(opts ...Option) *Catalog {
	c := &Catalog{
		sep:     csv.DefaultSeparator,
		mapping: DefaultMapping(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load replaces the catalog with the courses in the file at path. On error
// the previously loaded courses are kept.
func (c *Catalog) Load(ctx context.Context, path string) (LoadResult, error) {
	return c.load(ctx, path, func() (*csv.Table, error) {
		return csv.LoadFile(path, c.sep)
	})
}

// LoadText replaces the catalog with the courses in text. Text is cleaned
// the same way as file content: a leading BOM is dropped.
func (c *Catalog) LoadText(ctx context.Context, text string) (LoadResult, error) {
	return c.load(ctx, "", func() (*csv.Table, error) {
		return csv.Load(strings.NewReader(text), c.sep)
	})
}

func (c *Catalog) load(ctx context.Context, path string, parse func() (*csv.Table, error)) (LoadResult, error) {
	start := time.Now()
	loadID := uuid.New()
	ctx = logging.WithLoadID(ctx, loadID.String())
	logger := logging.FromContext(ctx)

	tbl, err := parse()
	if err != nil {
		logger.Error("catalog load failed", "path", path, "error", err)
		return LoadResult{}, err
	}

	courses, err := c.mapping.Courses(tbl)
	if err != nil {
		logger.Error("catalog mapping failed", "path", path, "error", err)
		return LoadResult{}, fmt.Errorf("mapping courses: %w", err)
	}

	c.mu.Lock()
	c.table = tbl
	c.courses = courses
	c.loadID = loadID
	c.mu.Unlock()

	result := LoadResult{
		LoadID:   loadID.String(),
		Path:     path,
		Courses:  len(courses),
		Duration: time.Since(start),
	}
	logger.Info("catalog loaded",
		"path", path,
		"courses", result.Courses,
		"duration_ms", result.Duration.Milliseconds(),
	)

	if c.snap != nil {
		if err := c.snap.SaveSnapshot(ctx, loadID, slices.Clone(courses)); err != nil {
			logger.Warn("catalog snapshot failed", "error", err)
		}
	}

	return result, nil
}

// Loaded reports whether a load has succeeded.
func (c *Catalog) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.table != nil
}

// LoadID returns the ID of the current load pass, or "" before the first load.
func (c *Catalog) LoadID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.table == nil {
		return ""
	}
	return c.loadID.String()
}

// Path returns the file the catalog was loaded from.
func (c *Catalog) Path() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.table == nil {
		return ""
	}
	return c.table.Path()
}

// Len returns the number of loaded courses.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.courses)
}

// Courses returns a copy of the courses in their current order.
func (c *Catalog) Courses() []Course {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.courses)
}

// Sort reorders the courses by title with the given algorithm.
// Sorting an empty catalog does nothing.
func (c *Catalog) Sort(ctx context.Context, algo SortAlgorithm) (SortResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	start := time.Now()
	switch algo {
	case AlgoSelection:
		SelectionSort(c.courses)
	case AlgoQuick:
		QuickSort(c.courses, 0, len(c.courses)-1)
	default:
		return SortResult{}, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, algo)
	}

	result := SortResult{
		Algorithm: algo,
		Courses:   len(c.courses),
		Duration:  time.Since(start),
	}
	logging.WithFields(ctx, "algorithm", string(algo)).Info("catalog sorted",
		"courses", result.Courses,
		"duration_ms", result.Duration.Milliseconds(),
	)
	return result, nil
}

// Find returns the first course with the given id in the current order.
func (c *Catalog) Find(id string) (Course, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Search(c.courses, id)
}

// UpdateCourse sets column to value in the row of course id and returns the
// course as it reads after the edit. column is a header name of the catalog
// file. A value that would not read back as the same single cell is
// rejected with ErrInvalidValue.
func (c *Catalog) UpdateCourse(ctx context.Context, id, column, value string) (Course, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	pos, err := c.rowOf(id)
	if err != nil {
		return Course{}, err
	}

	rec, err := c.table.Row(pos)
	if err != nil {
		return Course{}, err
	}
	if err := c.checkCell(value); err != nil {
		return Course{}, err
	}
	if c.table.ColumnCount() == 1 && strings.TrimSpace(value) == "" {
		return Course{}, fmt.Errorf("blank row: %w", ErrInvalidValue)
	}
	old, _ := rec.ByName(column)
	if !rec.Set(column, value) {
		return Course{}, fmt.Errorf("%q: %w", column, csv.ErrColumnNotFound)
	}

	if err := c.rebuild(); err != nil {
		rec.Set(column, old)
		return Course{}, err
	}

	logging.FromContext(ctx).Info("course updated", "course_id", id, "column", column)
	return c.courses[pos], nil
}

// AddCourse appends a row built from values. The row must have one value
// per header column, each value must read back as a single cell, and the
// row must map to a course.
func (c *Catalog) AddCourse(ctx context.Context, values []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.table == nil {
		return ErrNotLoaded
	}

	pos := c.table.RowCount()
	if err := c.checkRow(pos, values); err != nil {
		return err
	}
	c.table.InsertRow(pos, values)

	if err := c.rebuild(); err != nil {
		c.table.DeleteRow(pos)
		return err
	}

	logging.FromContext(ctx).Info("course added", "row", pos)
	return nil
}

// RemoveCourse deletes the row of course id.
func (c *Catalog) RemoveCourse(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	pos, err := c.rowOf(id)
	if err != nil {
		return err
	}

	rec, err := c.table.Row(pos)
	if err != nil {
		return err
	}
	c.table.DeleteRow(pos)

	if err := c.rebuild(); err != nil {
		c.table.InsertRow(pos, rec.Values())
		return err
	}

	logging.FromContext(ctx).Info("course removed", "course_id", id)
	return nil
}

// Save writes the table back to the file it was loaded from. A catalog
// loaded from text has no file and Save does nothing.
func (c *Catalog) Save(ctx context.Context) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.table == nil {
		return ErrNotLoaded
	}
	if err := c.table.Sync(); err != nil {
		return err
	}

	logging.FromContext(ctx).Info("catalog saved", "path", c.table.Path(), "rows", c.table.RowCount())
	return nil
}

// Export returns the table in its delimited text form.
func (c *Catalog) Export() (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.table == nil {
		return "", ErrNotLoaded
	}
	return c.table.Serialize(), nil
}

// rowOf returns the table row of the first course with the given id.
// Callers hold c.mu.
func (c *Catalog) rowOf(id string) (int, error) {
	if c.table == nil {
		return -1, ErrNotLoaded
	}

	for i, rec := range c.table.Rows() {
		got, err := c.mapping.ID.read(rec)
		if err == nil && got == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%q: %w", id, ErrCourseNotFound)
}

// checkRow reports whether values, stored at row pos, would be written by
// Save as one line that loads back into the same cells.
// Callers hold c.mu.
func (c *Catalog) checkRow(pos int, values []string) error {
	if want := c.table.ColumnCount(); len(values) != want {
		// Header is line 1 of a saved file.
		return &csv.RowShapeError{Line: pos + 2, Want: want, Got: len(values)}
	}

	for _, v := range values {
		if err := c.checkCell(v); err != nil {
			return err
		}
	}

	// Blank lines are skipped on load.
	if strings.TrimSpace(strings.Join(values, string(c.sep))) == "" {
		return fmt.Errorf("blank row: %w", ErrInvalidValue)
	}
	return nil
}

// checkCell reports whether v reads back as exactly one cell.
func (c *Catalog) checkCell(v string) error {
	if strings.ContainsAny(v, "\r\n") ||
		strings.Count(v, string(csv.Quote))%2 != 0 ||
		len(csv.Tokenize(v, c.sep)) != 1 {
		return fmt.Errorf("%q: %w", v, ErrInvalidValue)
	}
	return nil
}

// rebuild remaps the course sequence from the table rows.
// Callers hold c.mu for writing.
func (c *Catalog) rebuild() error {
	courses, err := c.mapping.Courses(c.table)
	if err != nil {
		return err
	}
	c.courses = courses
	return nil
}
