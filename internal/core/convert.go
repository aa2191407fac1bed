package core

// convert.go maps parsed csv records to courses.
//
// Columns are picked by header name when one is configured and by position
// otherwise. The amount column is optional; amounts are parsed leniently and
// fall back to 0 the way the catalog has always treated blank prices.

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/JonMunkholm/coursecatalog/internal/csv"
)

// Column selects a record value by header name, or by position when Name is empty.
// A Column with no name and a negative position is unmapped.
type Column struct {
	Name string
	Pos  int
}

// ByName selects the first column with the given header.
func ByName(name string) Column { return Column{Name: name, Pos: -1} }

// ByPos selects the column at pos.
func ByPos(pos int) Column { return Column{Pos: pos} }

// Unmapped returns a Column that is never read.
func Unmapped() Column { return Column{Pos: -1} }

func (c Column) mapped() bool { return c.Name != "" || c.Pos >= 0 }

func (c Column) String() string {
	if c.Name != "" {
		return c.Name
	}
	return strconv.Itoa(c.Pos)
}

func (c Column) read(rec *csv.Record) (string, error) {
	if c.Name != "" {
		return rec.ByName(c.Name)
	}
	return rec.ByIndex(c.Pos)
}

// Mapping tells which record columns hold each Course field.
type Mapping struct {
	ID            Column
	Title         Column
	Prerequisites Column
	Amount        Column
}

// DefaultMapping reads id, title and prerequisites from the first three
// columns and leaves Amount unmapped.
func DefaultMapping() Mapping {
	return Mapping{
		ID:            ByPos(0),
		Title:         ByPos(1),
		Prerequisites: ByPos(2),
		Amount:        Unmapped(),
	}
}

// Course builds a Course from one record.
func (m Mapping) Course(rec *csv.Record) (Course, error) {
	var c Course
	var err error

	if c.ID, err = m.ID.read(rec); err != nil {
		return Course{}, fmt.Errorf("course id column %s: %w", m.ID, err)
	}
	if c.Title, err = m.Title.read(rec); err != nil {
		return Course{}, fmt.Errorf("title column %s: %w", m.Title, err)
	}
	if c.Prerequisites, err = m.Prerequisites.read(rec); err != nil {
		return Course{}, fmt.Errorf("prerequisites column %s: %w", m.Prerequisites, err)
	}
	if m.Amount.mapped() {
		raw, err := m.Amount.read(rec)
		if err != nil {
			return Course{}, fmt.Errorf("amount column %s: %w", m.Amount, err)
		}
		c.Amount = ParseAmount(raw)
	}

	return c, nil
}

// Courses maps every row of t, in row order. Any unreadable row fails the
// whole mapping.
func (m Mapping) Courses(t *csv.Table) ([]Course, error) {
	rows := t.Rows()
	courses := make([]Course, 0, len(rows))

	for i, rec := range rows {
		c, err := m.Course(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		courses = append(courses, c)
	}
	return courses, nil
}

// ParseAmount converts a price cell to a float. It strips surrounding
// quotes, currency symbols and thousands separators, reads "(12.50)" as
// negative, and returns 0 for anything it cannot parse.
func ParseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"`)
	s = strings.TrimSpace(s)

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	s = strings.NewReplacer("$", "", "€", "", "£", "", ",", "").Replace(s)
	s = strings.TrimSpace(s)

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	if negative {
		v = -v
	}
	return v
}
