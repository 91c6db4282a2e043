// Package editor launches the user's text editor on configuration and
// profile files.
package editor

import (
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/thoreinstein/edmx/internal/config"
	"github.com/thoreinstein/edmx/internal/errors"
)

// Editor runs an editor command attached to the given streams.
type Editor struct {
	// Command is the editor to run. It may carry arguments, as in "code --wait".
	Command string
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
}

// New returns an Editor for the detected command attached to the process
// streams.
func New() *Editor {
	return &Editor{
		Command: Detect(),
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
}

// Open runs the editor on path and waits for it to exit.
func (e *Editor) Open(ctx context.Context, path string) error {
	fields := strings.Fields(e.Command)
	if len(fields) == 0 {
		return errors.New("no editor configured")
	}

	cmd := exec.CommandContext(ctx, fields[0], append(fields[1:], path)...)
	cmd.Stdin = e.Stdin
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr

	if err := cmd.Run(); err != nil {
		return errors.WithHint(
			errors.Wrapf(err, "running editor %s", fields[0]),
			"set EDITOR or "+config.EnvPrefix+"_EDITOR to an installed editor",
		)
	}
	return nil
}

// Detect returns the editor command. Fallback chain:
// $EDMX_EDITOR → $EDITOR → $VISUAL → nano → vi
func Detect() string {
	for _, env := range []string{config.EnvPrefix + "_EDITOR", "EDITOR", "VISUAL"} {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			return v
		}
	}

	// nano is easier for beginners
	if _, err := exec.LookPath("nano"); err == nil {
		return "nano"
	}
	return "vi"
}
