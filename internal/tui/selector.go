package tui

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrAborted is returned when the user quits a selector without choosing.
var ErrAborted = errors.New("selection aborted")

type model struct {
	label    string
	choices  []string
	cursor   int
	selected bool
	aborted  bool
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.choices)-1 {
				m.cursor++
			}
		case "enter":
			m.selected = true
			return m, tea.Quit
		case "ctrl+c", "esc", "q":
			m.aborted = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(m.label)
	b.WriteString("\n\n")
	for i, choice := range m.choices {
		cursor := " "
		if m.cursor == i {
			cursor = ">"
		}
		b.WriteString(cursor + " " + choice + "\n")
	}
	if m.selected {
		b.WriteString("\n" + m.choices[m.cursor] + "\n")
	}
	return b.String()
}

// Select shows choices under label and returns the chosen one. The cursor
// starts on initial when it is one of the choices.
func Select(label string, choices []string, initial string, opts ...tea.ProgramOption) (string, error) {
	if len(choices) == 0 {
		return "", errors.New("nothing to select")
	}

	start := 0
	for i, c := range choices {
		if c == initial {
			start = i
		}
	}

	p := tea.NewProgram(model{label: label, choices: choices, cursor: start}, opts...)
	final, err := p.Run()
	if err != nil {
		return "", err
	}

	m := final.(model)
	if m.aborted || !m.selected {
		return "", ErrAborted
	}
	return m.choices[m.cursor], nil
}
