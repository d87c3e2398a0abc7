// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

type (
	// Launcher spawns one command and waits for it to finish. argv must be
	// non-empty. env is the complete environment for the child, or nil to
	// inherit the parent's environment unchanged.
	Launcher interface {
		Launch(ctx context.Context, argv []string, env []string) (ExitCode, error)
	}

	// ExecLauncher runs commands through os/exec, wiring the child to the
	// hosting process's standard streams.
	ExecLauncher struct {
		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
	}
)

// NewExecLauncher creates an ExecLauncher attached to the process streams.
func NewExecLauncher() *ExecLauncher {
	return &ExecLauncher{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Launch runs argv synchronously and returns the child's exit code.
// A non-zero child exit is a normal outcome, not an error; the error return
// is reserved for spawn failures (command not found, context canceled).
func (l *ExecLauncher) Launch(ctx context.Context, argv []string, env []string) (ExitCode, error) {
	if len(argv) == 0 {
		return 1, fmt.Errorf("empty argument vector")
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Env = env
	cmd.Stdin = l.Stdin
	cmd.Stdout = l.Stdout
	cmd.Stderr = l.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return ExitCode(exitErr.ExitCode()), nil
		}
		return 1, fmt.Errorf("failed to execute %q: %w", argv[0], err)
	}

	return 0, nil
}
