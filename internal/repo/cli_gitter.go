package repo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// CLIGitter is the concrete implementation of Gitter using the git CLI.
type CLIGitter struct {
	dir string
}

// NewCLIGitter creates a CLIGitter running git inside dir.
func NewCLIGitter(dir string) *CLIGitter {
	return &CLIGitter{dir: dir}
}

func (g *CLIGitter) git(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = g.dir
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()
	return strings.TrimSpace(out.String()), err
}

func (g *CLIGitter) TagExists(ctx context.Context, tag string) (bool, error) {
	out, err := g.git(ctx, "rev-parse", "--quiet", "--verify", "refs/tags/"+tag)
	if err == nil {
		return true, nil
	}
	// rev-parse --verify exits 1 without output for an unknown ref.
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 && out == "" {
		return false, nil
	}
	return false, fmt.Errorf("git rev-parse failed: %w (output: %s)", err, out)
}

func (g *CLIGitter) TagRelease(ctx context.Context, tag, message string) error {
	exists, err := g.TagExists(ctx, tag)
	if err != nil {
		return err
	}
	if exists {
		return &TagExistsError{Tag: tag}
	}

	if out, tErr := g.git(ctx, "tag", "-a", tag, "-m", message); tErr != nil {
		return fmt.Errorf("failed to create git tag: %w (output: %s)", tErr, out)
	}
	return nil
}

func (g *CLIGitter) PushTag(ctx context.Context, remote, tag string) error {
	if out, err := g.git(ctx, "push", remote, "refs/tags/"+tag); err != nil {
		return fmt.Errorf("failed to push git tag to %s: %w (output: %s)", remote, err, out)
	}
	return nil
}
