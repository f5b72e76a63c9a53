package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type step int

const (
	stepConfirm step = iota
	stepSummary
)

// CreateResult is the outcome of the create-category prompt.
type CreateResult struct {
	Create  bool
	Summary string
}

// CreateModel asks whether a missing category should be created and, if so,
// for an optional first task.
type CreateModel struct {
	category string
	step     step
	input    textinput.Model
	result   CreateResult
	status   string
}

func NewCreateModel(category string) CreateModel {
	ti := textinput.New()
	ti.Placeholder = "First task (optional)"
	ti.CharLimit = 256
	ti.Width = 40

	return CreateModel{
		category: category,
		step:     stepConfirm,
		input:    ti,
	}
}

// Result is valid once the program has quit.
func (m CreateModel) Result() CreateResult {
	return m.result
}

func (m CreateModel) Init() tea.Cmd {
	return nil
}

func (m CreateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		key := msg.String()
		if key == "ctrl+c" || key == "esc" {
			m.result = CreateResult{}
			m.status = "Cancelled"
			return m, tea.Quit
		}
		if m.step == stepConfirm {
			return m.updateConfirm(key)
		}
		return m.updateSummary(key, msg)
	case tea.WindowSizeMsg:
		m.input.Width = msg.Width - 10
	}
	return m, nil
}

func (m CreateModel) updateConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "y", "Y":
		m.step = stepSummary
		m.status = "Enter to create, Esc to cancel"
		return m, m.input.Focus()
	case "n", "N":
		m.result = CreateResult{}
		m.status = "Cancelled"
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m CreateModel) updateSummary(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key == "enter" {
		m.result = CreateResult{Create: true, Summary: strings.TrimSpace(m.input.Value())}
		m.input.Blur()
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m CreateModel) View() string {
	var b strings.Builder
	if m.step == stepConfirm {
		b.WriteString(fmt.Sprintf("Category %q does not exist. Create it? (y/n)", m.category))
	} else {
		b.WriteString(fmt.Sprintf("New category %q\n\n", m.category))
		b.WriteString(m.input.View())
	}
	if m.status != "" {
		b.WriteString("\n\n")
		b.WriteString(m.status)
	}
	b.WriteString("\n")
	return b.String()
}

// PromptCreate runs the create prompt on the given terminal streams.
func PromptCreate(category string, in io.Reader, out io.Writer) (CreateResult, error) {
	program := tea.NewProgram(NewCreateModel(category), tea.WithInput(in), tea.WithOutput(out))
	final, err := program.Run()
	if err != nil {
		return CreateResult{}, err
	}
	return final.(CreateModel).Result(), nil
}
