// Package ui renders tasks and agendas for the terminal and hosts the
// interactive prompts.
package ui

import (
	"github.com/charmbracelet/lipgloss"

	"todo/internal/task"
)

// Class is the visual grouping of a task state.
type Class int

const (
	ClassActive Class = iota
	ClassPending
	ClassBlocked
	ClassDone
	ClassInactive
)

// ClassOf maps a state to its display class. handled marks a task that is
// shown as finished for this view only.
func ClassOf(state task.State, handled bool) Class {
	switch {
	case state == task.StateDone || (handled && !state.IsDone()):
		return ClassDone
	case state.IsActive():
		return ClassActive
	case state == task.StateTodo || state == task.StateEvent:
		return ClassPending
	case state == task.StateWaiting || state == task.StateHeld:
		return ClassBlocked
	}
	return ClassInactive
}

// Style pairs the look of the state token with that of the summary.
type Style struct {
	Token   lipgloss.Style
	Summary lipgloss.Style
}

// StyleFor returns the style of class bound to r.
func StyleFor(r *lipgloss.Renderer, class Class) Style {
	plain := r.NewStyle()
	dim := r.NewStyle().Faint(true)
	switch class {
	case ClassActive:
		return Style{Token: r.NewStyle().Foreground(lipgloss.Color("2")), Summary: plain}
	case ClassPending:
		return Style{Token: r.NewStyle().Foreground(lipgloss.Color("3")), Summary: plain}
	case ClassBlocked:
		return Style{Token: r.NewStyle().Foreground(lipgloss.Color("1")), Summary: plain}
	case ClassDone:
		return Style{Token: r.NewStyle().Foreground(lipgloss.Color("4")), Summary: dim}
	default:
		return Style{Token: dim, Summary: dim}
	}
}

type theme struct {
	date      lipgloss.Style
	heading   lipgloss.Style
	empty     lipgloss.Style
	dim       lipgloss.Style
	checked   lipgloss.Style
	unchecked lipgloss.Style
}

func newTheme(r *lipgloss.Renderer) theme {
	return theme{
		date:      r.NewStyle().Foreground(lipgloss.Color("4")),
		heading:   r.NewStyle().Foreground(lipgloss.Color("3")),
		empty:     r.NewStyle().Foreground(lipgloss.Color("2")),
		dim:       r.NewStyle().Faint(true),
		checked:   r.NewStyle().Foreground(lipgloss.Color("2")),
		unchecked: r.NewStyle().Foreground(lipgloss.Color("1")),
	}
}
