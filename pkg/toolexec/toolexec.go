// Package toolexec runs external command-line tools behind a small interface
// so callers can be tested against canned output.
package toolexec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/go-stack/stack"
)

// Runner executes a command in dir and returns its stdout.
// Arguments are passed through as a list; nothing is interpreted by a shell.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) ([]byte, error)
}

// ExecRunner is the os/exec backed Runner.
type ExecRunner struct{}

// Run executes name with args. A non-zero exit or a failure to start is
// returned as a *ToolError.
func (ExecRunner) Run(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return stdout.Bytes(), &ToolError{
			Command:  name,
			Args:     args,
			ExitCode: exitCode(err),
			Stderr:   strings.TrimSpace(stderr.String()),
			Err:      err,
			Stack:    stack.Trace().TrimRuntime(),
		}
	}
	return stdout.Bytes(), nil
}

// ToolError describes a tool that could not be started or exited non-zero.
type ToolError struct {
	Command  string
	Args     []string
	ExitCode int // -1 when the process never ran
	Stderr   string
	Err      error
	Stack    stack.CallStack // call stack at the point of failure
}

func (e *ToolError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s", e.Command, strings.Join(e.Args, " "))
	if e.ExitCode >= 0 {
		fmt.Fprintf(&sb, ": exit status %d", e.ExitCode)
	} else {
		fmt.Fprintf(&sb, ": %v", e.Err)
	}
	if e.Stderr != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Stderr)
	}
	return sb.String()
}

func (e *ToolError) Unwrap() error { return e.Err }

// Trace formats the captured call stack, one frame per line.
func (e *ToolError) Trace() string {
	var sb strings.Builder
	for _, c := range e.Stack {
		fmt.Fprintf(&sb, "  %+n\n    %+v\n", c, c)
	}
	return sb.String()
}

func exitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

// IsCommandNotFound checks if the error indicates the command was not found.
// This handles exec.ErrNotFound and platform-specific string fallbacks.
func IsCommandNotFound(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, exec.ErrNotFound) {
		return true
	}
	errStr := err.Error()
	if strings.Contains(errStr, "executable file not found") {
		return true
	}
	return false
}
