// Package recurrence computes occurrences of repeating scheduled tasks.
//
// Occurrence n of a task is its anchor (the scheduled date) advanced by
// n*interval periods. Months and years are added on the calendar and clamped
// to the end of shorter months, so a rule anchored on 31 Jan falls on 28 Feb
// (or 29 Feb) and then 31 Mar again. Comparisons are made per calendar day.
package recurrence

import (
	"time"

	"todo/internal/dates"
	"todo/internal/task"
)

// Occurrence returns occurrence n of rule anchored at anchor.
func Occurrence(anchor time.Time, rule task.Recurrence, n int) time.Time {
	steps := n * rule.Interval
	switch rule.Period {
	case task.Daily:
		return anchor.AddDate(0, 0, steps)
	case task.Weekly:
		return anchor.AddDate(0, 0, 7*steps)
	case task.Monthly:
		return addMonths(anchor, steps)
	case task.Yearly:
		return addMonths(anchor, 12*steps)
	}
	return anchor
}

func addMonths(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(months), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	if last := daysIn(first); d > last {
		d = last
	}
	return first.AddDate(0, 0, d-1)
}

func daysIn(firstOfMonth time.Time) int {
	return firstOfMonth.AddDate(0, 1, -1).Day()
}

// OccursOn reports whether t has an occurrence on the calendar day of date.
// A task without a usable rule occurs only on its scheduled day. The scan is
// linear from the anchor, so date should stay within a small horizon.
func OccursOn(t *task.Task, date time.Time) bool {
	if t.Scheduled == nil {
		return false
	}
	if !t.IsRecurring() {
		return dates.SameDay(*t.Scheduled, date)
	}
	day := dates.StartOfDay(date)
	for n := 0; ; n++ {
		occ := Occurrence(*t.Scheduled, *t.Recurrence, n)
		if dates.StartOfDay(occ).After(day) {
			return false
		}
		if dates.SameDay(occ, date) {
			return true
		}
	}
}

// Next returns the first occurrence on a day after LastOccurred, or the
// anchor itself when the task has never been marked as handled.
// It returns the zero time when t has no scheduled date.
func Next(t *task.Task) time.Time {
	if t.Scheduled == nil {
		return time.Time{}
	}
	if t.LastOccurred == nil || !t.IsRecurring() {
		return *t.Scheduled
	}
	last := dates.StartOfDay(*t.LastOccurred)
	for n := 0; ; n++ {
		occ := Occurrence(*t.Scheduled, *t.Recurrence, n)
		if dates.StartOfDay(occ).After(last) {
			return occ
		}
	}
}
