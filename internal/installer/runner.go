package installer

import (
	"context"
	"errors"
	"io"
	"os/exec"
)

// Command is a child process invocation.
type Command struct {
	Name   string
	Args   []string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// CommandRunner runs a child process to completion. A child that ran but
// failed is reported with an error implementing ExitCode() int.
type CommandRunner interface {
	Run(ctx context.Context, c Command) error
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, c Command) error {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Stdin = c.Stdin
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr
	return cmd.Run()
}

// exitCode extracts the child's exit status from err. ok is false when the
// child never ran.
func exitCode(err error) (code int, ok bool) {
	var ec interface{ ExitCode() int }
	if !errors.As(err, &ec) {
		return 0, false
	}
	return ec.ExitCode(), true
}
