// Package dates parses and formats the date expressions used in task files
// and on the command line. All values are naive local times.
package dates

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidFormat is returned when a string matches none of the accepted layouts.
var ErrInvalidFormat = errors.New("invalid date format")

// Accepted absolute layouts, tried in order.
var layouts = []string{
	"2 Jan 2006",
	"2 January 2006",
	"2 Jan 2006 15:04",
	"2 January 2006 15:04",
}

const (
	dateLayout = "Mon 02 Jan 2006"
	timeLayout = "15:04"
)

// ParseAbsolute parses values like "1 Jan 2021" or "1 January 2021 09:00".
func ParseAbsolute(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: absolute date %q", ErrInvalidFormat, s)
}

// ParseRelative accepts an absolute date or a signed day offset from now.
func ParseRelative(s string, now time.Time) (time.Time, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if t, err := ParseAbsolute(s); err == nil {
		return t, nil
	}
	days, err := strconv.Atoi(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: relative date %q", ErrInvalidFormat, s)
	}
	return now.AddDate(0, 0, days), nil
}

// HasTime reports whether t carries a time of day other than midnight.
func HasTime(t time.Time) bool {
	return t.Hour() != 0 || t.Minute() != 0
}

// FormatAbsolute renders "Fri 01 Jan 2021", adding " 09:00" when a time is set.
func FormatAbsolute(t time.Time) string {
	if !HasTime(t) {
		return t.Format(dateLayout)
	}
	return t.Format(dateLayout + " " + timeLayout)
}

// FormatRelative renders "Today" for dates on the same day as now and
// falls back to FormatAbsolute otherwise.
func FormatRelative(t, now time.Time) string {
	if !SameDay(t, now) {
		return FormatAbsolute(t)
	}
	if !HasTime(t) {
		return "Today"
	}
	return "Today " + t.Format(timeLayout)
}

// FormatTime renders the time of day, or "--:--" for all-day values.
func FormatTime(t time.Time) string {
	if !HasTime(t) {
		return "--:--"
	}
	return t.Format(timeLayout)
}

// SameDay reports whether a and b share year, month and day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// StartOfDay truncates t to local midnight.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DaysUntil returns the whole number of days from from to to, rounded down,
// so a moment later on the same day is 0 and anything earlier is negative.
// Only wall-clock fields count, so a DST shift does not change the result.
func DaysUntil(from, to time.Time) int {
	return int(math.Floor(wallClock(to).Sub(wallClock(from)).Hours() / 24))
}

func wallClock(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}
