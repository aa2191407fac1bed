package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/JonMunkholm/coursecatalog/internal/core"
	tea "github.com/charmbracelet/bubbletea"
)

// ActionTimeout bounds a single menu action.
const ActionTimeout = 30 * time.Second

// Actions runs catalog operations as bubbletea commands.
type Actions struct {
	Catalog     *core.Catalog
	DefaultPath string
}

// Load replaces the catalog with the courses in path.
func (a *Actions) Load(path string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), ActionTimeout)
		defer cancel()

		path = strings.TrimSpace(path)
		if path == "" {
			path = a.DefaultPath
		}

		res, err := a.Catalog.Load(ctx, path)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return DoneMsg(fmt.Sprintf("Loaded %d courses from %s in %s", res.Courses, res.Path, res.Duration))
	}
}

// Display lists every course in the current order.
func (a *Actions) Display() tea.Cmd {
	return func() tea.Msg {
		if !a.Catalog.Loaded() {
			return ErrMsg{Err: core.ErrNotLoaded}
		}

		courses := a.Catalog.Courses()
		lines := make([]string, len(courses))
		for i, c := range courses {
			lines[i] = c.String()
		}
		return ListMsg{Title: fmt.Sprintf("%d courses", len(courses)), Lines: lines}
	}
}

// Sort orders the catalog by title.
func (a *Actions) Sort(algo core.SortAlgorithm) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), ActionTimeout)
		defer cancel()

		if !a.Catalog.Loaded() {
			return ErrMsg{Err: core.ErrNotLoaded}
		}

		res, err := a.Catalog.Sort(ctx, algo)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return DoneMsg(fmt.Sprintf("Sorted %d courses with %s sort in %s", res.Courses, res.Algorithm, res.Duration))
	}
}

// Find looks up one course by id.
func (a *Actions) Find(id string) tea.Cmd {
	return func() tea.Msg {
		if !a.Catalog.Loaded() {
			return ErrMsg{Err: core.ErrNotLoaded}
		}

		id = strings.TrimSpace(id)
		course, found := a.Catalog.Find(id)
		if !found {
			return DoneMsg("Could not find course " + id)
		}
		return ListMsg{Title: "Course " + id, Lines: []string{course.Detail()}}
	}
}

// Save writes the catalog back to its file.
func (a *Actions) Save() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), ActionTimeout)
		defer cancel()

		if err := a.Catalog.Save(ctx); err != nil {
			return ErrMsg{Err: err}
		}
		if a.Catalog.Path() == "" {
			return DoneMsg("Catalog has no file; nothing saved")
		}
		return DoneMsg("Saved catalog to " + a.Catalog.Path())
	}
}
