// Package logging builds the console logger and reports parse warnings.
package logging

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"todo/internal/parser"
)

// New returns a leveled text logger prefixed with "todo".
func New(w io.Writer, level string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           ParseLevel(level),
		Formatter:       log.TextFormatter,
		ReportTimestamp: false,
		Prefix:          "todo",
	})
}

// ParseLevel maps a level name to a log.Level, defaulting to info.
func ParseLevel(s string) log.Level {
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// Warnings logs every warning of results at warn level.
func Warnings(logger *log.Logger, results ...parser.Result) {
	for _, res := range results {
		for _, w := range res.Warnings {
			logger.Warn(w.Message, "category", w.Category, "line", w.Line)
		}
	}
}
