// Package classify groups tasks into display strata and orders them.
package classify

import (
	"sort"
	"time"

	"todo/internal/recurrence"
	"todo/internal/task"
)

// Stratum is one of the fixed display groups, in display order.
type Stratum int

const (
	Active Stratum = iota
	Prioritized
	Scheduled
	Plain
	Backlog
	Done
)

var stratumNames = [...]string{"active", "prioritized", "scheduled", "plain", "backlog", "done"}

func (s Stratum) String() string {
	if s < 0 || int(s) >= len(stratumNames) {
		return "unknown"
	}
	return stratumNames[s]
}

// Classify returns the stratum of t. Done and Backlog are checked first, so a
// finished task with a priority is still Done.
func Classify(t *task.Task) Stratum {
	switch {
	case t.State.IsDone():
		return Done
	case t.State == task.StateBacklog:
		return Backlog
	case t.State.IsActive():
		return Active
	case t.Priority != nil:
		return Prioritized
	case t.HasDates():
		return Scheduled
	}
	return Plain
}

// Key is the date Scheduled tasks are ordered by: the next occurrence for
// recurring tasks, else the scheduled date, else the deadline.
func Key(t *task.Task) time.Time {
	switch {
	case t.IsRecurring():
		return recurrence.Next(t)
	case t.Scheduled != nil:
		return *t.Scheduled
	case t.Deadline != nil:
		return *t.Deadline
	}
	return time.Time{}
}

// Group splits tasks into strata, keeping input order within each. Each
// group is then sorted as Sort describes.
func Group(tasks []task.Task) [][]task.Task {
	groups := make([][]task.Task, Done+1)
	for _, t := range tasks {
		s := Classify(&t)
		groups[s] = append(groups[s], t)
	}
	prio := groups[Prioritized]
	sort.SliceStable(prio, func(i, j int) bool {
		return *prio[i].Priority < *prio[j].Priority
	})
	sched := groups[Scheduled]
	sort.SliceStable(sched, func(i, j int) bool {
		return Key(&sched[i]).Before(Key(&sched[j]))
	})
	return groups
}

// Sort returns tasks in display order: Active, Prioritized (ascending
// priority), Scheduled (ascending Key), Plain, Backlog, Done. Ties keep their
// input order. The input slice is not modified.
func Sort(tasks []task.Task) []task.Task {
	out := make([]task.Task, 0, len(tasks))
	for _, g := range Group(tasks) {
		out = append(out, g...)
	}
	return out
}
