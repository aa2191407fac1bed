// Package application is the terminal menu over a course catalog.
package application

import (
	"fmt"
	"strings"

	"github.com/JonMunkholm/coursecatalog/internal/core"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Model is the bubbletea model for the catalog menu.
type Model struct {
	menu   *Menu
	cursor int

	input  textinput.Model
	prompt *Prompt

	status string
	failed bool
	title  string
	output []string
}

// New builds the menu model over actions.
func New(actions *Actions) Model {
	input := textinput.New()
	input.CharLimit = 256

	return Model{
		menu:   buildMenu(actions),
		input:  input,
		status: "Select an option",
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.prompt != nil {
			return m.updatePrompt(msg)
		}
		return m.updateMenu(msg)

	case DoneMsg:
		m.status, m.failed = string(msg), false
		return m, nil

	case ErrMsg:
		m.status, m.failed = core.FormatUserError(core.MapError(msg.Err)), true
		return m, nil

	case ListMsg:
		m.title, m.output = msg.Title, msg.Lines
		m.status, m.failed = "", false
		return m, nil
	}

	if m.prompt != nil {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.menu.Items)-1 {
			m.cursor++
		}
	case "enter", " ":
		return m.choose(m.cursor)
	default:
		// Number keys pick an item directly, as in a numbered menu.
		if s := msg.String(); len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
			if i := int(s[0] - '1'); i < len(m.menu.Items) {
				m.cursor = i
				return m.choose(i)
			}
		}
	}
	return m, nil
}

func (m Model) choose(i int) (tea.Model, tea.Cmd) {
	item := m.menu.Items[i]

	if item.Prompt != nil {
		m.prompt = item.Prompt
		m.input.Reset()
		m.input.Placeholder = item.Prompt.Placeholder
		if item.Prompt.Initial != nil {
			m.input.SetValue(item.Prompt.Initial())
		}
		return m, m.input.Focus()
	}

	if item.Action == nil {
		return m, nil
	}
	return m, item.Action()
}

func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		m.prompt = nil
		m.input.Blur()
		return m, nil
	case tea.KeyEnter:
		submit := m.prompt.Submit
		value := m.input.Value()
		m.prompt = nil
		m.input.Blur()
		return m, submit(value)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.menu.Title + "\n\n")
	for i, item := range m.menu.Items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		fmt.Fprintf(&b, "%s%d. %s\n", cursor, i+1, item.Label)
	}

	if m.prompt != nil {
		fmt.Fprintf(&b, "\n%s: %s\n", m.prompt.Label, m.input.View())
		b.WriteString("(enter to confirm, esc to cancel)\n")
	}

	if m.status != "" {
		prefix := ""
		if m.failed {
			prefix = "Error: "
		}
		fmt.Fprintf(&b, "\n%s%s\n", prefix, m.status)
	}

	if len(m.output) > 0 {
		fmt.Fprintf(&b, "\n%s\n", m.title)
		for _, line := range m.output {
			b.WriteString("  " + line + "\n")
		}
	}

	fmt.Fprintf(&b, "\nup/down or 1-%d to choose, enter to run, q to quit\n", len(m.menu.Items))
	return b.String()
}
