// Package editor runs the user's editor on a category file.
package editor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// Command builds the editor invocation. editor may carry arguments,
// e.g. "code --wait".
func Command(ctx context.Context, editor, path string) (*exec.Cmd, error) {
	fields := strings.Fields(editor)
	if len(fields) == 0 {
		return nil, errors.New("no editor configured")
	}
	args := append(fields[1:], path)
	return exec.CommandContext(ctx, fields[0], args...), nil
}

// Open runs editor on path attached to the given terminal streams and waits
// for it to exit.
func Open(ctx context.Context, editor, path string, stdin io.Reader, stdout, stderr io.Writer) error {
	cmd, err := Command(ctx, editor, path)
	if err != nil {
		return err
	}
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("run editor %s: %w", cmd.Path, err)
	}
	return nil
}
