// Package agenda buckets tasks for a single day's view.
package agenda

import (
	"sort"
	"time"

	"todo/internal/dates"
	"todo/internal/recurrence"
	"todo/internal/task"
)

// DefaultWarningDays is how far ahead deadlines are listed.
const DefaultWarningDays = 7

// Entry is a task as seen by one agenda. Done includes recurring tasks whose
// latest occurrence was already handled; the task itself is never modified.
type Entry struct {
	Task task.Task
	Done bool
}

// Agenda holds the buckets for Date. Active and Overdue are only meaningful
// when Today is set.
type Agenda struct {
	Date      time.Time
	Today     bool
	Active    []Entry
	Overdue   []Entry
	Scheduled []Entry
	Deadlines []Entry
}

// Options tunes Build.
type Options struct {
	WarningDays int
}

// Build computes the agenda of tasks for date. now is the run's clock and
// decides whether date is today.
func Build(tasks []task.Task, date, now time.Time, opts Options) Agenda {
	warn := opts.WarningDays
	if warn <= 0 {
		warn = DefaultWarningDays
	}

	a := Agenda{Date: date, Today: dates.SameDay(date, now)}
	for _, t := range tasks {
		e := Entry{Task: t, Done: handled(&t, date)}

		if a.Today && t.State.IsActive() {
			a.Active = append(a.Active, e)
		}

		overdue := false
		if t.Scheduled != nil {
			if recurrence.OccursOn(&t, date) {
				a.Scheduled = append(a.Scheduled, e)
			} else if !e.Done && due(&t).Before(date) {
				overdue = true
			}
		}

		if t.Deadline != nil {
			days := dates.DaysUntil(date, *t.Deadline)
			if dates.SameDay(*t.Deadline, date) || (days >= 0 && days < warn) {
				a.Deadlines = append(a.Deadlines, e)
			} else if !e.Done && t.Deadline.Before(date) {
				overdue = true
			}
		}

		if overdue {
			a.Overdue = append(a.Overdue, e)
		}
	}

	sort.SliceStable(a.Scheduled, func(i, j int) bool {
		return timeOfDay(*a.Scheduled[i].Task.Scheduled) < timeOfDay(*a.Scheduled[j].Task.Scheduled)
	})
	sort.SliceStable(a.Deadlines, func(i, j int) bool {
		return a.Deadlines[i].Task.Deadline.Before(*a.Deadlines[j].Task.Deadline)
	})
	return a
}

// handled reports whether t counts as done when viewed on date.
func handled(t *task.Task, date time.Time) bool {
	if t.State.IsDone() {
		return true
	}
	if !t.IsRecurring() || t.LastOccurred == nil {
		return false
	}
	return dates.SameDay(*t.LastOccurred, date) || t.LastOccurred.After(date)
}

// due is the pending occurrence of a scheduled task.
func due(t *task.Task) time.Time {
	if t.IsRecurring() {
		return recurrence.Next(t)
	}
	return *t.Scheduled
}

func timeOfDay(t time.Time) time.Duration {
	return t.Sub(dates.StartOfDay(t))
}
