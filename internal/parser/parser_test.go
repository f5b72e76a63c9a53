package parser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"todo/internal/task"
)

func parseString(t *testing.T, s string) Result {
	t.Helper()
	res, err := Parse(strings.NewReader(s), "personal")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return res
}

func TestParseBasicTask(t *testing.T) {
	res := parseString(t, "TODO Buy milk\n* deadline: 1 Jan 2021\n* [x] pick brand\n* [] pay\n")

	if len(res.Tasks) != 1 {
		t.Fatalf("Tasks count: got %d, want 1", len(res.Tasks))
	}
	tk := res.Tasks[0]
	if tk.Summary != "Buy milk" {
		t.Errorf("Summary: got %q", tk.Summary)
	}
	if tk.State != task.StateTodo {
		t.Errorf("State: got %s", tk.State)
	}
	if tk.Category != "personal" {
		t.Errorf("Category: got %q", tk.Category)
	}
	if tk.Deadline == nil || !tk.Deadline.Equal(time.Date(2021, 1, 1, 0, 0, 0, 0, time.Local)) {
		t.Errorf("Deadline: got %v", tk.Deadline)
	}
	if len(tk.Checklist) != 2 {
		t.Fatalf("Checklist count: got %d, want 2", len(tk.Checklist))
	}
	if !tk.Checklist[0].Done || tk.Checklist[0].Label != "pick brand" {
		t.Errorf("Checklist[0]: got %+v", tk.Checklist[0])
	}
	if tk.Checklist[1].Done || tk.Checklist[1].Label != "pay" {
		t.Errorf("Checklist[1]: got %+v", tk.Checklist[1])
	}
	if len(res.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", res.Warnings)
	}
}

func TestParseOrphanMetadata(t *testing.T) {
	res := parseString(t, "* note: orphan\n")
	if len(res.Tasks) != 0 {
		t.Errorf("Tasks count: got %d, want 0", len(res.Tasks))
	}
	if len(res.Warnings) != 0 {
		t.Errorf("orphan metadata should be silently ignored, got %v", res.Warnings)
	}
}

func TestParseIgnoresNoise(t *testing.T) {
	input := `

some free text
*
NEXT   Call   the  bank
* NOTE: bring card number
   * Priority: 2
random line
`
	res := parseString(t, input)
	if len(res.Tasks) != 1 {
		t.Fatalf("Tasks count: got %d, want 1", len(res.Tasks))
	}
	tk := res.Tasks[0]
	if tk.Summary != "Call the bank" {
		t.Errorf("Summary: got %q", tk.Summary)
	}
	if len(tk.Notes) != 1 || tk.Notes[0] != "bring card number" {
		t.Errorf("Notes: got %v", tk.Notes)
	}
	if tk.Priority == nil || *tk.Priority != 2 {
		t.Errorf("Priority: got %v", tk.Priority)
	}
}

func TestParseMetadataAttachesToLatestTask(t *testing.T) {
	res := parseString(t, "TODO first\n* note: a\nDOING second\n* note: b\n* note: c\n")
	if len(res.Tasks) != 2 {
		t.Fatalf("Tasks count: got %d", len(res.Tasks))
	}
	if len(res.Tasks[0].Notes) != 1 || res.Tasks[0].Notes[0] != "a" {
		t.Errorf("first notes: %v", res.Tasks[0].Notes)
	}
	if got := res.Tasks[1].Notes; len(got) != 2 || got[0] != "b" || got[1] != "c" {
		t.Errorf("second notes: %v", got)
	}
}

func TestParseScheduledRecurrence(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		wantDate  time.Time
		wantRule  *task.Recurrence
		wantWarns int
	}{
		{
			name:     "plain date",
			value:    "1 Jan 2021",
			wantDate: time.Date(2021, 1, 1, 0, 0, 0, 0, time.Local),
		},
		{
			name:     "spaced suffix",
			value:    "1 Jan 2021 + 2w",
			wantDate: time.Date(2021, 1, 1, 0, 0, 0, 0, time.Local),
			wantRule: &task.Recurrence{Period: task.Weekly, Interval: 2},
		},
		{
			name:     "tight suffix with time",
			value:    "5 March 2021 08:30 +1d",
			wantDate: time.Date(2021, 3, 5, 8, 30, 0, 0, time.Local),
			wantRule: &task.Recurrence{Period: task.Daily, Interval: 1},
		},
		{
			name:      "bad suffix keeps date",
			value:     "1 Jan 2021 + often",
			wantDate:  time.Date(2021, 1, 1, 0, 0, 0, 0, time.Local),
			wantWarns: 1,
		},
		{
			name:      "zero interval",
			value:     "1 Jan 2021 + 0m",
			wantDate:  time.Date(2021, 1, 1, 0, 0, 0, 0, time.Local),
			wantWarns: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := parseString(t, "TODO thing\n* scheduled: "+tt.value+"\n")
			tk := res.Tasks[0]
			if tk.Scheduled == nil || !tk.Scheduled.Equal(tt.wantDate) {
				t.Errorf("Scheduled: got %v, want %v", tk.Scheduled, tt.wantDate)
			}
			switch {
			case tt.wantRule == nil && tk.Recurrence != nil:
				t.Errorf("Recurrence: got %+v, want none", *tk.Recurrence)
			case tt.wantRule != nil && (tk.Recurrence == nil || *tk.Recurrence != *tt.wantRule):
				t.Errorf("Recurrence: got %v, want %+v", tk.Recurrence, *tt.wantRule)
			}
			if len(res.Warnings) != tt.wantWarns {
				t.Errorf("Warnings: got %v, want %d", res.Warnings, tt.wantWarns)
			}
		})
	}
}

func TestParseFieldWarnings(t *testing.T) {
	input := `TODO broken
* scheduled: someday
* deadline: 2021-01-01
* repeated: yesterday
* priority: high
* colour: red
* repeated: 3 Jan 2021
`
	res := parseString(t, input)
	if len(res.Tasks) != 1 {
		t.Fatalf("Tasks count: got %d", len(res.Tasks))
	}
	tk := res.Tasks[0]
	if tk.Scheduled != nil || tk.Deadline != nil || tk.Priority != nil {
		t.Errorf("invalid fields should stay unset: %+v", tk)
	}
	if tk.LastOccurred == nil || !tk.LastOccurred.Equal(time.Date(2021, 1, 3, 0, 0, 0, 0, time.Local)) {
		t.Errorf("LastOccurred: got %v", tk.LastOccurred)
	}
	if len(res.Warnings) != 5 {
		t.Fatalf("Warnings: got %d, want 5: %v", len(res.Warnings), res.Warnings)
	}
	if w := res.Warnings[0]; w.Line != 2 || w.Category != "personal" {
		t.Errorf("first warning: %+v", w)
	}
	if !strings.Contains(res.Warnings[4].Message, "colour:") {
		t.Errorf("unknown key warning: %q", res.Warnings[4].Message)
	}
}

func TestParseEmptySummary(t *testing.T) {
	res := parseString(t, "TODO ok\nDONE\n* note: lost\n")
	if len(res.Tasks) != 1 {
		t.Fatalf("Tasks count: got %d, want 1", len(res.Tasks))
	}
	if len(res.Tasks[0].Notes) != 0 {
		t.Errorf("note after rejected task line attached to previous task: %v", res.Tasks[0].Notes)
	}
	if len(res.Warnings) != 1 {
		t.Errorf("Warnings: got %v", res.Warnings)
	}
}

func TestParseAllStates(t *testing.T) {
	var b strings.Builder
	for _, st := range task.States() {
		b.WriteString(string(st) + " item\n")
	}
	res := parseString(t, b.String())
	if len(res.Tasks) != len(task.States()) {
		t.Fatalf("Tasks count: got %d", len(res.Tasks))
	}
	for i, st := range task.States() {
		if res.Tasks[i].State != st {
			t.Errorf("task %d: got %s, want %s", i, res.Tasks[i].State, st)
		}
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "work.txt")
	if err := os.WriteFile(path, []byte("WAITING reply from Bob\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	res, err := ParseFile(path, "work")
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if len(res.Tasks) != 1 || res.Tasks[0].Category != "work" {
		t.Errorf("unexpected result: %+v", res)
	}

	if _, err := ParseFile(filepath.Join(dir, "missing.txt"), "missing"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestParseLongLine(t *testing.T) {
	long := strings.Repeat("x", 2*1024*1024)
	res := parseString(t, "TODO keep me\n* note: "+long+"\nTODO after\n")

	if len(res.Tasks) != 2 {
		t.Fatalf("Tasks count: got %d, want 2", len(res.Tasks))
	}
	if got := res.Tasks[0].Notes; len(got) != 1 || got[0] != long {
		t.Errorf("long note not kept intact")
	}
	if res.Tasks[1].Summary != "after" {
		t.Errorf("Summary: got %q, want %q", res.Tasks[1].Summary, "after")
	}
}

func TestParseNoTrailingNewline(t *testing.T) {
	res := parseString(t, "TODO a\n* priority: 3")
	if len(res.Tasks) != 1 || res.Tasks[0].Priority == nil || *res.Tasks[0].Priority != 3 {
		t.Errorf("last line without newline not parsed: %+v", res.Tasks)
	}
}
