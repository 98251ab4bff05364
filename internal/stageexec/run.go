// Package stageexec runs a single external pipeline stage as a subprocess
// and reports its exit status. Output streams through unmodified so the
// tools' own progress indicators stay visible; best-effort stages can ask
// for suppressed output instead. The CommandRunner interface exists so the
// pipeline can be tested against scripted fakes.
package stageexec

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// Invocation describes one external tool call.
type Invocation struct {
	Stage  string
	Binary string
	Args   []string
	// Env is the full environment for the subprocess. Nil inherits the
	// orchestrator's environment.
	Env []string
	// Quiet discards the tool's output instead of streaming it through.
	Quiet bool
}

// Result is the outcome of one stage invocation. Only the exit status is
// examined; the tool's diagnostic text is never parsed.
type Result struct {
	Stage    string
	ExitCode int
	Err      error
}

// Success reports whether the stage exited cleanly.
func (r Result) Success() bool {
	return r.Err == nil && r.ExitCode == 0
}

// CommandRunner executes stage invocations. The process-backed
// implementation below is the only one outside tests.
type CommandRunner interface {
	Run(ctx context.Context, inv Invocation) Result
}

// ProcessRunner runs invocations as blocking subprocesses.
type ProcessRunner struct {
	Stdout io.Writer
	Stderr io.Writer
}

// NewProcessRunner returns a runner streaming to the orchestrator's own
// stdout and stderr.
func NewProcessRunner() *ProcessRunner {
	return &ProcessRunner{Stdout: os.Stdout, Stderr: os.Stderr}
}

// Run launches the tool and waits for it to exit. A non-zero exit or a
// launch failure yields an unsuccessful Result; each stage runs at most
// once per video per batch invocation.
func (p *ProcessRunner) Run(ctx context.Context, inv Invocation) Result {
	cmd := exec.CommandContext(ctx, inv.Binary, inv.Args...) //nolint:gosec
	if inv.Env != nil {
		cmd.Env = inv.Env
	}
	if inv.Quiet {
		cmd.Stdout = io.Discard
		cmd.Stderr = io.Discard
	} else {
		cmd.Stdout = p.stdout()
		cmd.Stderr = p.stderr()
	}

	err := cmd.Run()
	if err == nil {
		return Result{Stage: inv.Stage}
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return Result{
			Stage:    inv.Stage,
			ExitCode: exitErr.ExitCode(),
			Err:      fmt.Errorf("%s exited with status %d", inv.Stage, exitErr.ExitCode()),
		}
	}
	return Result{
		Stage:    inv.Stage,
		ExitCode: -1,
		Err:      fmt.Errorf("launch %s (%s): %w", inv.Stage, inv.Binary, err),
	}
}

func (p *ProcessRunner) stdout() io.Writer {
	if p.Stdout != nil {
		return p.Stdout
	}
	return os.Stdout
}

func (p *ProcessRunner) stderr() io.Writer {
	if p.Stderr != nil {
		return p.Stderr
	}
	return os.Stderr
}
