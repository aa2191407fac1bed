package application

import (
	"github.com/JonMunkholm/coursecatalog/internal/core"
	tea "github.com/charmbracelet/bubbletea"
)

/* ----------------------------------------
	MENU TREE
---------------------------------------- */

type MenuItem struct {
	Label  string
	Action func() tea.Cmd
	Prompt *Prompt
}

type Menu struct {
	Title string
	Items []MenuItem
}

// Prompt asks for one line of input before running an action.
type Prompt struct {
	Label       string
	Placeholder string
	Initial     func() string
	Submit      func(value string) tea.Cmd
}

/* ----------------------------------------
	MENU DEFINITION
---------------------------------------- */

func buildMenu(a *Actions) *Menu {
	return &Menu{
		Title: "Course Catalog",
		Items: []MenuItem{
			{Label: "Load courses", Prompt: &Prompt{
				Label:       "File to load",
				Placeholder: a.DefaultPath,
				Initial:     func() string { return a.DefaultPath },
				Submit:      a.Load,
			}},
			{Label: "Display all courses", Action: a.Display},
			{Label: "Selection sort all courses", Action: func() tea.Cmd {
				return a.Sort(core.AlgoSelection)
			}},
			{Label: "Quick sort all courses", Action: func() tea.Cmd {
				return a.Sort(core.AlgoQuick)
			}},
			{Label: "Find course", Prompt: &Prompt{
				Label:       "Course id",
				Placeholder: "CSCI100",
				Submit:      a.Find,
			}},
			{Label: "Save catalog", Action: a.Save},
			{Label: "Exit", Action: func() tea.Cmd { return tea.Quit }},
		},
	}
}
