// Package parser turns the text of a category file into tasks.
//
// Parsing is best effort: malformed metadata produces a Warning and the
// affected field is left unset, but the file is always read to the end.
package parser

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"todo/internal/dates"
	"todo/internal/task"
)

const metadataMarker = "*"

var recurrenceRegex = regexp.MustCompile(`^(\d+)([dwmy])$`)

// Warning is a non-fatal problem found on one line.
type Warning struct {
	Category string
	Line     int
	Message  string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s:%d: %s", w.Category, w.Line, w.Message)
}

// Result holds the tasks of one category in file order plus any warnings.
type Result struct {
	Category string
	Tasks    []task.Task
	Warnings []Warning
}

// ParseFile reads and parses the file at path.
func ParseFile(path, category string) (Result, error) {
	file, err := os.Open(path)
	if err != nil {
		return Result{Category: category}, err
	}
	defer file.Close()
	return Parse(file, category)
}

// Parse reads r line by line. Lines have no length limit; only read errors
// from r are returned.
func Parse(r io.Reader, category string) (Result, error) {
	p := &fileParser{res: Result{Category: category}, current: -1}

	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			p.line++
			p.parseLine(line)
		}
		if err == io.EOF {
			return p.res, nil
		}
		if err != nil {
			return p.res, fmt.Errorf("read %s: %w", category, err)
		}
	}
}

type fileParser struct {
	res     Result
	current int // index into res.Tasks, -1 before the first task line
	line    int
}

func (p *fileParser) warnf(format string, args ...any) {
	p.res.Warnings = append(p.res.Warnings, Warning{
		Category: p.res.Category,
		Line:     p.line,
		Message:  fmt.Sprintf(format, args...),
	})
}

func (p *fileParser) parseLine(raw string) {
	tokens := strings.Fields(raw)
	if len(tokens) == 0 {
		return
	}

	if state, ok := task.ParseState(tokens[0]); ok {
		summary := strings.Join(tokens[1:], " ")
		if summary == "" {
			p.warnf("task %s has no summary", state)
			p.current = -1
			return
		}
		p.res.Tasks = append(p.res.Tasks, task.New(p.res.Category, state, summary))
		p.current = len(p.res.Tasks) - 1
		return
	}

	if tokens[0] != metadataMarker || p.current < 0 || len(tokens) < 2 {
		return
	}
	p.parseMetadata(&p.res.Tasks[p.current], strings.ToLower(tokens[1]), strings.Join(tokens[2:], " "))
}

func (p *fileParser) parseMetadata(t *task.Task, key, value string) {
	switch key {
	case "scheduled:":
		datePart, rule, ok := splitRecurrence(value)
		if !ok {
			p.warnf("invalid recurrence in %q", value)
		}
		t.Recurrence = rule
		if d, err := dates.ParseAbsolute(datePart); err == nil {
			t.Scheduled = &d
		} else {
			p.warnf("invalid schedule date %q", datePart)
		}

	case "deadline:":
		if d, err := dates.ParseAbsolute(value); err == nil {
			t.Deadline = &d
		} else {
			p.warnf("invalid deadline date %q", value)
		}

	case "repeated:":
		if d, err := dates.ParseAbsolute(value); err == nil {
			t.LastOccurred = &d
		} else {
			p.warnf("invalid repeated date %q", value)
		}

	case "priority:":
		if n, err := strconv.Atoi(value); err == nil {
			t.Priority = &n
		} else {
			p.warnf("invalid priority %q", value)
		}

	case "note:":
		t.Notes = append(t.Notes, value)

	case "[x]", "[]":
		t.Checklist = append(t.Checklist, task.ChecklistEntry{Done: key == "[x]", Label: value})

	default:
		p.warnf("unknown property %q", key)
	}
}

// splitRecurrence separates a trailing "+ <N><unit>" suffix from a scheduled
// value. ok is false only when a suffix is present but malformed; the date
// part is returned either way.
func splitRecurrence(value string) (datePart string, rule *task.Recurrence, ok bool) {
	i := strings.LastIndex(value, "+")
	if i < 0 {
		return value, nil, true
	}
	datePart = strings.TrimSpace(value[:i])
	m := recurrenceRegex.FindStringSubmatch(strings.ToLower(strings.TrimSpace(value[i+1:])))
	if m == nil {
		return datePart, nil, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return datePart, nil, false
	}
	period, _ := task.ParsePeriod(m[2])
	return datePart, &task.Recurrence{Period: period, Interval: n}, true
}
