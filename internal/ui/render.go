package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"todo/internal/agenda"
	"todo/internal/classify"
	"todo/internal/dates"
	"todo/internal/parser"
	"todo/internal/recurrence"
	"todo/internal/task"
)

// Printer writes tasks to w. Colors follow what w supports, so a buffer or
// pipe gets plain text.
type Printer struct {
	w     io.Writer
	r     *lipgloss.Renderer
	theme theme
	now   time.Time
}

// NewPrinter returns a Printer that formats relative dates against now.
func NewPrinter(w io.Writer, now time.Time) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{w: w, r: r, theme: newTheme(r), now: now}
}

type taskView struct {
	short       bool
	ignoreDates bool
	handled     bool
}

func (p *Printer) println(a ...any) {
	fmt.Fprintln(p.w, a...)
}

func (p *Printer) headline(t *task.Task, handled bool) string {
	st := StyleFor(p.r, ClassOf(t.State, handled))
	return st.Token.Render(string(t.State)) + " " + st.Summary.Render(t.Summary)
}

func (p *Printer) task(prefix string, t *task.Task, v taskView) {
	p.println(prefix + p.headline(t, v.handled))
	if v.short {
		return
	}

	for _, c := range t.Checklist {
		mark := p.theme.unchecked.Render("○")
		if c.Done {
			mark = p.theme.checked.Render("●")
		}
		p.println("  " + mark + " " + c.Label)
	}
	for _, n := range t.Notes {
		p.println(p.theme.dim.Render("  - " + n))
	}
	if t.Priority != nil {
		p.println(fmt.Sprintf("  Priority %d", *t.Priority))
	}
	if v.ignoreDates {
		return
	}
	if t.Scheduled != nil {
		line := "  Scheduled " + dates.FormatRelative(*t.Scheduled, p.now)
		if t.IsRecurring() {
			line += ", repeats " + t.Recurrence.String()
			if t.LastOccurred != nil {
				line += ", next " + dates.FormatRelative(recurrence.Next(t), p.now)
			}
		}
		p.println(line)
	}
	if t.Deadline != nil {
		p.println("  Due " + dates.FormatRelative(*t.Deadline, p.now))
	}
}

// Tasks prints tasks in classifier order.
func (p *Printer) Tasks(tasks []task.Task) {
	for _, t := range classify.Sort(tasks) {
		p.task("", &t, taskView{})
	}
}

// Categories prints each category under its upper-cased name.
func (p *Printer) Categories(results []parser.Result) {
	for i, res := range results {
		if i > 0 {
			p.println()
		}
		p.println(p.theme.heading.Render(strings.ToUpper(res.Category)))
		p.println()
		p.Tasks(res.Tasks)
	}
}

// Agenda prints a built agenda. Active and Overdue appear only for today.
func (p *Printer) Agenda(a agenda.Agenda) {
	p.println(p.theme.date.Render(a.Date.Format("Mon 02 Jan 2006")))

	if a.Today && len(a.Active) > 0 {
		p.section("Active")
		for _, e := range a.Active {
			p.task(p.theme.dim.Render(e.Task.Category)+" ", &e.Task, taskView{short: true, handled: e.Done})
		}
	}

	if a.Today && len(a.Overdue) > 0 {
		p.section("Overdue")
		for _, e := range a.Overdue {
			when := dates.FormatRelative(overdueSince(&e.Task, a.Date), p.now)
			p.task(when+" "+p.theme.dim.Render(e.Task.Category)+" ", &e.Task, taskView{short: true, handled: e.Done})
		}
	}

	if len(a.Scheduled) > 0 {
		p.section("Agenda")
		for _, e := range a.Scheduled {
			prefix := dates.FormatTime(*e.Task.Scheduled) + " " + p.theme.dim.Render(e.Task.Category) + " "
			p.task(prefix, &e.Task, taskView{ignoreDates: true, handled: e.Done})
		}
	} else {
		p.println()
		p.println(p.theme.empty.Render("No scheduled items"))
	}

	if len(a.Deadlines) > 0 {
		p.section("Upcoming deadlines")
		for _, e := range a.Deadlines {
			prefix := dates.FormatRelative(*e.Task.Deadline, p.now) + " " + p.theme.dim.Render(e.Task.Category) + " "
			p.task(prefix, &e.Task, taskView{short: true, handled: e.Done})
		}
	} else {
		p.println()
		p.println(p.theme.empty.Render("No upcoming deadlines"))
	}
}

func (p *Printer) section(title string) {
	p.println()
	p.println(p.theme.heading.Render(title))
}

// overdueSince picks the earliest missed date of an overdue task.
func overdueSince(t *task.Task, date time.Time) time.Time {
	var since time.Time
	if t.Scheduled != nil {
		since = recurrence.Next(t)
	}
	if t.Deadline != nil && t.Deadline.Before(date) && (since.IsZero() || t.Deadline.Before(since)) {
		since = *t.Deadline
	}
	return since
}
