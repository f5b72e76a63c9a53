// Package task defines the in-memory task model built from category files.
package task

import (
	"fmt"
	"time"
)

// State is the leading keyword of a task line.
type State string

const (
	StateDoing     State = "DOING"
	StateNext      State = "NEXT"
	StateTodo      State = "TODO"
	StateEvent     State = "EVENT"
	StateWaiting   State = "WAITING"
	StateHeld      State = "HELD"
	StateBacklog   State = "BACKLOG"
	StateDone      State = "DONE"
	StateCancelled State = "CANCELLED"
)

var states = []State{
	StateDoing, StateNext, StateTodo, StateEvent, StateWaiting,
	StateHeld, StateBacklog, StateDone, StateCancelled,
}

// States returns every known state in declaration order.
func States() []State {
	out := make([]State, len(states))
	copy(out, states)
	return out
}

// ParseState matches s exactly against the known state names.
func ParseState(s string) (State, bool) {
	for _, st := range states {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

// IsActive reports whether the state is being worked on now.
func (s State) IsActive() bool {
	return s == StateDoing || s == StateNext
}

// IsDone reports whether the state is finished, either way.
func (s State) IsDone() bool {
	return s == StateDone || s == StateCancelled
}

// Period is the unit a recurrence advances by.
type Period string

const (
	Daily   Period = "d"
	Weekly  Period = "w"
	Monthly Period = "m"
	Yearly  Period = "y"
)

// ParsePeriod maps a suffix letter to a Period.
func ParsePeriod(s string) (Period, bool) {
	switch Period(s) {
	case Daily, Weekly, Monthly, Yearly:
		return Period(s), true
	}
	return "", false
}

// Noun returns the unit name, e.g. "week".
func (p Period) Noun() string {
	switch p {
	case Daily:
		return "day"
	case Weekly:
		return "week"
	case Monthly:
		return "month"
	case Yearly:
		return "year"
	}
	return string(p)
}

// Recurrence repeats a scheduled task every Interval Periods.
type Recurrence struct {
	Period   Period
	Interval int
}

func (r Recurrence) String() string {
	if r.Interval == 1 {
		return "every " + r.Period.Noun()
	}
	return fmt.Sprintf("every %d %ss", r.Interval, r.Period.Noun())
}

// ChecklistEntry is one "[x]" or "[]" line.
type ChecklistEntry struct {
	Done  bool
	Label string
}

// Task is one record of a category file. Optional fields are nil when unset.
type Task struct {
	Category     string
	State        State
	Summary      string
	Scheduled    *time.Time
	Deadline     *time.Time
	Recurrence   *Recurrence
	LastOccurred *time.Time
	Priority     *int
	Notes        []string
	Checklist    []ChecklistEntry
}

// New returns a task with no metadata.
func New(category string, state State, summary string) Task {
	return Task{Category: category, State: state, Summary: summary}
}

// IsRecurring reports whether the recurrence rule applies. A rule without a
// scheduled anchor, or with a non-positive interval, is ignored.
func (t *Task) IsRecurring() bool {
	return t.Scheduled != nil && t.Recurrence != nil && t.Recurrence.Interval > 0
}

// HasDates reports whether the task is scheduled or has a deadline.
func (t *Task) HasDates() bool {
	return t.Scheduled != nil || t.Deadline != nil
}
